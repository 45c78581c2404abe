package config

import (
	"strings"
	"sync"
)

const (
	StorageBackendLocal = "local"
	StorageBackendMinio = "minio"
)

// StorageConfig holds the settings of the model file store.
type StorageConfig struct {
	Backend   string      `json:"backend"`    // local or minio
	UploadDir string      `json:"upload_dir"` // root directory for the local backend
	Minio     MinioConfig `json:"minio"`
}

// MinioConfig describes the MinIO endpoint used by the minio backend.
type MinioConfig struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	Bucket   string `json:"bucket"`
	UseSSL   bool   `json:"use_ssl"`
}

var StorageConfigInstance *StorageConfig
var storageConfigOnce sync.Once

// InitStorageConfig initializes storage config.
func InitStorageConfig() {
	storageConfigOnce.Do(func() {
		backend := strings.ToLower(strings.TrimSpace(getEnv("STORAGE_BACKEND", StorageBackendLocal)))
		if backend != StorageBackendMinio {
			backend = StorageBackendLocal
		}
		StorageConfigInstance = &StorageConfig{
			Backend:   backend,
			UploadDir: getEnv("UPLOAD_DIR", "uploads"),
			Minio: MinioConfig{
				Host:     getEnv("MINIO_HOST", "localhost"),
				Port:     getEnv("MINIO_PORT", "9000"),
				Username: getEnv("MINIO_USERNAME", "minioadmin"),
				Password: getEnv("MINIO_PASSWORD", "minioadmin"),
				Bucket:   getEnv("BUCKET_NAME", "modelos"),
				UseSSL:   getEnvBool("MINIO_USE_SSL", false),
			},
		}
	})
}
