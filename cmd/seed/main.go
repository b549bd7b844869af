package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"

	"shopfront/internal/config"
	categoryrepo "shopfront/internal/repository/category"
	productrepo "shopfront/internal/repository/product"
	userrepo "shopfront/internal/repository/user"
	"shopfront/internal/rest"
	"shopfront/internal/seed"
)

func main() {
	cfg := config.FromEnv()
	logger := logrus.New()

	client := rest.New(cfg.StoreURL, cfg.RequestTimeout, logger)

	deps := seed.Deps{
		Products:   productrepo.NewHTTP(client, logger),
		Categories: categoryrepo.NewHTTP(client),
		Users:      userrepo.NewHTTP(client, logger),
	}

	if err := seed.Apply(context.Background(), deps, os.Getenv("SEED_ADMIN_PASSWORD"), logger); err != nil {
		logger.Fatalf("seed apply: %v", err)
	}
	logger.Info("seed applied")
}
