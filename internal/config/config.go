package config

import (
	"os"
	"strconv"
	"time"
)

// S3Config holds the object-store connection settings. Endpoint may point at
// any S3-compatible server (MinIO, localstack, real S3).
type S3Config struct {
	Endpoint  string
	Bucket    string
	AccessKey string
	SecretKey string
	Region    string
}

type Config struct {
	ListenAddr string
	DBPath     string

	// StorageBackend selects the blob store: "s3" or "filesystem".
	StorageBackend string
	StoragePath    string
	BaseURL        string

	S3 S3Config

	AuthToken string

	// BackendTimeout bounds every single blob-store or database round trip.
	BackendTimeout time.Duration

	// MaxUploadBytes caps the parsed size of one multipart upload request.
	MaxUploadBytes int64
}

func Load() *Config {
	return &Config{
		ListenAddr:     getEnv("IMG_LISTEN_ADDR", ":8080"),
		DBPath:         getEnv("IMG_DB_PATH", "/data/db/images.db"),
		StorageBackend: getEnv("IMG_STORAGE_BACKEND", "s3"),
		StoragePath:    getEnv("IMG_STORAGE_PATH", "/data/images"),
		BaseURL:        getEnv("IMG_BASE_URL", "http://localhost:8080"),
		S3: S3Config{
			Endpoint:  getEnv("IMG_S3_ENDPOINT", "http://localhost:9000"),
			Bucket:    getEnv("IMG_S3_BUCKET", "images"),
			AccessKey: getEnv("IMG_S3_ACCESS_KEY", ""),
			SecretKey: getEnv("IMG_S3_SECRET_KEY", ""),
			Region:    getEnv("IMG_S3_REGION", "us-east-1"),
		},
		AuthToken:      getEnv("IMG_AUTH_TOKEN", ""),
		BackendTimeout: getEnvDuration("IMG_BACKEND_TIMEOUT", 10*time.Second),
		MaxUploadBytes: int64(getEnvInt("IMG_MAX_UPLOAD_MB", 32)) << 20,
	}
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}
