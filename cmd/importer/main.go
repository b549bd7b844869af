package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"shopfront/internal/config"
	"shopfront/internal/importer"
	productrepo "shopfront/internal/repository/product"
	"shopfront/internal/rest"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to product CSV export")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	logger := logrus.New()

	f, err := os.Open(filePath)
	if err != nil {
		logger.Fatalf("open file: %v", err)
	}
	defer f.Close()

	client := rest.New(cfg.StoreURL, cfg.RequestTimeout, logger)
	imp := importer.NewCSVImporter(f, productrepo.NewHTTP(client, logger))

	start := time.Now()
	count, err := imp.Run(context.Background())
	if err != nil {
		logger.Fatalf("import failed: %v", err)
	}

	fmt.Printf("Imported %d products in %s\n", count, time.Since(start).Truncate(time.Millisecond))
}
