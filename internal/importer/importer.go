// Package importer loads catalog CSV exports into the remote store.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"shopfront/internal/domain"
)

// ProductWriter is the slice of the product repository the importer
// needs. Rows matching an existing product by name become updates.
type ProductWriter interface {
	List(ctx context.Context) ([]domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, id string, p domain.Product) (*domain.Product, error)
}

// CSVImporter reads catalog CSV exports and creates or updates products.
type CSVImporter struct {
	reader      *csv.Reader
	productRepo ProductWriter
}

func NewCSVImporter(r io.Reader, repo ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:      csvr,
		productRepo: repo,
	}
}

// Run parses CSV rows and writes products through the repository. It
// returns the number of rows imported.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	existing, err := i.productRepo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list existing products: %w", err)
	}
	byName := make(map[string]string, len(existing))
	for _, p := range existing {
		byName[p.Name] = p.ID
	}

	imported := 0
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		product, err := parseRow(record, index)
		if err != nil {
			return imported, err
		}
		if product == nil {
			continue
		}

		if id, ok := byName[product.Name]; ok {
			if _, err := i.productRepo.Update(ctx, id, *product); err != nil {
				return imported, fmt.Errorf("update product %q: %w", product.Name, err)
			}
		} else {
			created, err := i.productRepo.Create(ctx, *product)
			if err != nil {
				return imported, fmt.Errorf("create product %q: %w", product.Name, err)
			}
			byName[created.Name] = created.ID
		}
		imported++
	}

	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) (*domain.Product, error) {
	name := pick(record, index, "name")
	if name == "" {
		return nil, nil
	}

	category := pick(record, index, "category")
	centStr := pick(record, index, "priceCents")
	if category == "" || centStr == "" {
		return nil, fmt.Errorf("row %q: category and priceCents required", name)
	}
	cents, err := strconv.ParseInt(centStr, 10, 64)
	if err != nil || cents <= 0 {
		return nil, fmt.Errorf("row %q: invalid priceCents %q", name, centStr)
	}

	stock := 0
	if stockStr := pick(record, index, "stock"); stockStr != "" {
		stock, err = strconv.Atoi(stockStr)
		if err != nil || stock < 0 {
			return nil, fmt.Errorf("row %q: invalid stock %q", name, stockStr)
		}
	}

	return &domain.Product{
		Name:        name,
		Description: pick(record, index, "description"),
		Category:    category,
		PriceCents:  cents,
		Stock:       stock,
		Image:       pick(record, index, "image"),
	}, nil
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
