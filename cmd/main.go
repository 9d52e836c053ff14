package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"book-store-api/configs"
	"book-store-api/internal/audit"
	"book-store-api/internal/db"
	"book-store-api/internal/handlers"
	"book-store-api/internal/logging"
	"book-store-api/internal/router"
	"book-store-api/internal/store"
	"book-store-api/internal/store/badgerstore"
	"book-store-api/internal/store/mongostore"
)

func main() {
	cfg, err := configs.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	bookStore, auditor, closer, err := openStore(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to the document store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer func() {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close the document store", zap.Error(err))
		}
	}()
	logger.Info("Connected to the document store successfully", zap.String("driver", cfg.StoreDriver))

	bookHandler := handlers.NewBookHandler(bookStore, auditor, logger)
	rootHandler := handlers.NewRootHandler(bookStore, logger)

	var server = http.Server{
		Addr:    cfg.Addr(),
		Handler: router.New(bookHandler, rootHandler, logger),
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("App is listening", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case <-stop:
	case err := <-serveErr:
		logger.Error("Server failed", zap.Error(err))
	}

	logger.Info("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
		return
	}
	logger.Info("Server shut down.")
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// openStore connects the configured backend before the listener starts.
func openStore(cfg configs.Config, logger *zap.Logger) (store.BookStore, handlers.Auditor, io.Closer, error) {
	switch cfg.StoreDriver {
	case configs.DriverBadger:
		bdb, err := db.OpenBadger(cfg.BadgerPath)
		if err != nil {
			return nil, nil, nil, err
		}

		var auditor handlers.Auditor
		if cfg.AuditEnabled {
			auditor = &audit.ZapLogger{Logger: logger.Named("audit")}
		}
		return badgerstore.NewBookStore(bdb, cfg.BookCollection), auditor, bdb, nil

	default:
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
		defer cancel()

		client, err := db.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, nil, err
		}

		var auditor handlers.Auditor
		if cfg.AuditEnabled {
			auditor = &audit.MongoLogger{Collection: db.GetCollection(client, cfg.DBName, "audit_logs")}
		}

		bookColl := db.GetCollection(client, cfg.DBName, cfg.BookCollection)
		disconnect := closerFunc(func() error {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			return client.Disconnect(ctx)
		})
		return mongostore.NewBookStore(bookColl), auditor, disconnect, nil
	}
}
