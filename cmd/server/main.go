package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"imageservice/internal/config"
	"imageservice/internal/database"
	"imageservice/internal/router"
	"imageservice/internal/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.Load()

	db, err := database.NewSQLiteDB(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	store, err := newStorage(cfg)
	if err != nil {
		slog.Error("failed to configure storage", "error", err)
		os.Exit(1)
	}

	// Bucket bootstrap happens once at startup; the per-request path
	// assumes the bucket exists. A failure here is logged, not fatal,
	// so the service can come up before the object store does.
	if err := store.EnsureBucket(context.Background()); err != nil {
		slog.Error("failed to initialize bucket", "error", err)
	}

	srv := router.New(db, store, cfg)

	slog.Info("starting server", "addr", cfg.ListenAddr, "storage", cfg.StorageBackend)
	if err := http.ListenAndServe(cfg.ListenAddr, srv.Router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func newStorage(cfg *config.Config) (storage.Storage, error) {
	switch cfg.StorageBackend {
	case "s3":
		return storage.NewS3(cfg.S3)
	case "filesystem":
		return storage.NewFileSystem(cfg.StoragePath, cfg.BaseURL), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
