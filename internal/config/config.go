package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"filedex/internal/storage"
)

// Config holds all runtime settings. Environment variables carry the
// deployment-specific values; an optional YAML file overrides the upload
// policy and object-store settings.
type Config struct {
	Port        string
	Environment string
	DatabaseURL string
	CORSOrigins string
	TablePrefix string
	// Storage
	StorageBackend string // "local" or "minio"
	UploadDir      string
	MinIO          storage.MinIOConfig
	// Upload policy
	MaxUploadBytes int64
	AllowedMIME    []string
	// Logging
	LogDir      string
	MaxLogFiles int
}

// fileOverrides is the shape of the optional YAML config file
type fileOverrides struct {
	Upload struct {
		MaxSizeBytes     int64    `yaml:"max_size_bytes"`
		AllowedMimeTypes []string `yaml:"allowed_mime_types"`
	} `yaml:"upload"`
	MinIO storage.MinIOConfig `yaml:"minio"`
}

const defaultMaxUploadBytes = 10 << 20 // 10 MB

// defaultAllowedMIME mirrors the upload whitelist the API shipped with;
// override via the YAML config file.
var defaultAllowedMIME = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"text/plain",
}

// Load reads configuration from the environment, then applies the YAML file
// named by CONFIG_FILE (default config.yaml) if it exists.
func Load() (*Config, error) {
	env := getEnv("ENVIRONMENT", "dev")

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Environment:    env,
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		CORSOrigins:    getEnv("CORS_ORIGINS", "http://localhost:3000"),
		TablePrefix:    getTablePrefix(env),
		StorageBackend: getEnv("STORAGE_BACKEND", "local"),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		MaxUploadBytes: getEnvInt64("MAX_UPLOAD_BYTES", defaultMaxUploadBytes),
		AllowedMIME:    defaultAllowedMIME,
		LogDir:         getEnv("LOG_DIR", ""),
		MaxLogFiles:    int(getEnvInt64("MAX_LOG_FILES", 10)),
		MinIO: storage.MinIOConfig{
			Endpoint:        getEnv("MINIO_ENDPOINT", ""),
			AccessKeyID:     getEnv("MINIO_ACCESS_KEY", ""),
			SecretAccessKey: getEnv("MINIO_SECRET_KEY", ""),
			BucketName:      getEnv("MINIO_BUCKET", "filedex"),
			UseSSL:          getEnv("MINIO_USE_SSL", "false") == "true",
		},
	}

	if err := cfg.applyFile(getEnv("CONFIG_FILE", "config.yaml")); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyFile merges YAML overrides on top of the env-derived config. A missing
// file is not an error.
func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	var ov fileOverrides
	if err := yaml.Unmarshal(data, &ov); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if ov.Upload.MaxSizeBytes > 0 {
		c.MaxUploadBytes = ov.Upload.MaxSizeBytes
	}
	if len(ov.Upload.AllowedMimeTypes) > 0 {
		c.AllowedMIME = ov.Upload.AllowedMimeTypes
	}
	if ov.MinIO.Endpoint != "" {
		c.MinIO = ov.MinIO
	}

	return nil
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return defaultValue
	}
	return n
}
