package storage

import (
	"ModelHub/config"
	"log"
	"log/slog"
)

// InitStorage builds Default from the storage config.
func InitStorage() {
	cfg := config.StorageConfigInstance
	switch cfg.Backend {
	case config.StorageBackendMinio:
		store, err := NewMinioStoreFromConfig(cfg.Minio)
		if err != nil {
			log.Fatalln("minio error:", err)
		}
		Default = store
		slog.Info("init storage success", "backend", cfg.Backend, "bucket", cfg.Minio.Bucket)
	default:
		store, err := NewLocalStore(cfg.UploadDir)
		if err != nil {
			log.Fatalln("local storage error:", err)
		}
		Default = store
		slog.Info("init storage success", "backend", cfg.Backend, "dir", cfg.UploadDir)
	}
}
