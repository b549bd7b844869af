package importer

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"shopfront/internal/domain"
)

type stubProductRepo struct {
	existing []domain.Product
	created  []domain.Product
	updated  map[string]domain.Product
}

func (s *stubProductRepo) List(_ context.Context) ([]domain.Product, error) {
	return s.existing, nil
}

func (s *stubProductRepo) Create(_ context.Context, p domain.Product) (*domain.Product, error) {
	p.ID = fmt.Sprintf("p-%d", len(s.created)+1)
	s.created = append(s.created, p)
	return &p, nil
}

func (s *stubProductRepo) Update(_ context.Context, id string, p domain.Product) (*domain.Product, error) {
	if s.updated == nil {
		s.updated = map[string]domain.Product{}
	}
	s.updated[id] = p
	p.ID = id
	return &p, nil
}

func TestCSVImporter_Run(t *testing.T) {
	csvData := `name,description,category,priceCents,stock,image
Trail Runner,Lightweight trail shoe,Sneakers,7999,24,https://example.com/runner.jpg
Wool Beanie,Merino wool,Hats,1899,60,
,,,,,
Canvas Tote,,Bags,2499,,`

	repo := &stubProductRepo{}
	imp := NewCSVImporter(strings.NewReader(csvData), repo)

	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 rows imported, got %d", count)
	}
	if len(repo.created) != 3 {
		t.Fatalf("expected 3 products created, got %d", len(repo.created))
	}

	first := repo.created[0]
	if first.Name != "Trail Runner" || first.Category != "Sneakers" || first.PriceCents != 7999 || first.Stock != 24 {
		t.Fatalf("unexpected product data: %+v", first)
	}
	if first.Image != "https://example.com/runner.jpg" {
		t.Fatalf("expected image carried over, got %q", first.Image)
	}
	if repo.created[2].Stock != 0 {
		t.Fatalf("expected missing stock to default to 0, got %d", repo.created[2].Stock)
	}
}

func TestCSVImporter_RunUpdatesExistingByName(t *testing.T) {
	csvData := `name,category,priceCents,stock
Wool Beanie,Hats,2099,10`

	repo := &stubProductRepo{
		existing: []domain.Product{{ID: "p-77", Name: "Wool Beanie", Category: "Hats", PriceCents: 1899}},
	}
	imp := NewCSVImporter(strings.NewReader(csvData), repo)

	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 row imported, got %d", count)
	}
	if len(repo.created) != 0 {
		t.Fatalf("expected no creates, got %d", len(repo.created))
	}
	updated, ok := repo.updated["p-77"]
	if !ok {
		t.Fatalf("expected update of p-77, got %v", repo.updated)
	}
	if updated.PriceCents != 2099 {
		t.Fatalf("expected repriced product, got %d", updated.PriceCents)
	}
}

func TestCSVImporter_RunRejectsBadRows(t *testing.T) {
	cases := []string{
		"name,category,priceCents\nBad Row,,100",
		"name,category,priceCents\nBad Row,Hats,",
		"name,category,priceCents\nBad Row,Hats,free",
		"name,category,priceCents\nBad Row,Hats,-5",
		"name,category,priceCents,stock\nBad Row,Hats,100,minus",
	}
	for i, data := range cases {
		imp := NewCSVImporter(strings.NewReader(data), &stubProductRepo{})
		if _, err := imp.Run(context.Background()); err == nil {
			t.Fatalf("case %d: expected error", i)
		}
	}
}
