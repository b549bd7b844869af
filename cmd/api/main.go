package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"shopfront/internal/config"
	"shopfront/internal/httpserver"
	analyticsrepo "shopfront/internal/repository/analytics"
	cartrepo "shopfront/internal/repository/cart"
	categoryrepo "shopfront/internal/repository/category"
	orderrepo "shopfront/internal/repository/order"
	productrepo "shopfront/internal/repository/product"
	userrepo "shopfront/internal/repository/user"
	"shopfront/internal/rest"
	"shopfront/internal/session"
	"shopfront/internal/shop"
)

func main() {
	cfg := config.FromEnv()
	logger := newLogger(cfg.LogLevel)

	sessions, err := session.Open(cfg.SessionDBPath)
	if err != nil {
		logger.Fatalf("open session store: %v", err)
	}
	defer sessions.Close()

	client := rest.New(cfg.StoreURL, cfg.RequestTimeout, logger)

	manager := shop.New(shop.Deps{
		Products:   productrepo.NewHTTP(client, logger),
		Categories: categoryrepo.NewHTTP(client),
		Users:      userrepo.NewHTTP(client, logger),
		Orders:     orderrepo.NewHTTP(client, logger),
		Carts:      cartrepo.NewHTTP(client, logger),
		Analytics:  analyticsrepo.NewHTTP(client),
		Sessions:   sessions,
	}, logger)
	manager.Initialize(context.Background())

	srv, err := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		Manager: manager,
		Pinger:  client,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof("starting http server on %s (store %s)", cfg.HTTPAddr, cfg.StoreURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Infof("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Errorf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	} else {
		logger.Info("server stopped")
	}
}

func newLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)
	return logger
}
