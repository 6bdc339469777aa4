package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	DriverMemory  = "memory"
	DriverSpanner = "spanner"
	DriverS3      = "s3"
)

// Config holds application configuration read from the environment.
type Config struct {
	Environment string `env:"ENVIRONMENT" env-default:"development"`
	HTTPPort    string `env:"HTTP_PORT" env-default:"8080"`

	Store  StoreConfig
	Paging PagingConfig
	Auth   AuthConfig
	Blob   BlobConfig
}

type StoreConfig struct {
	Driver    string `env:"STORE_DRIVER" env-default:"memory"`
	SpannerDB string `env:"SPANNER_DATABASE" env-default:"projects/test-project/instances/dev-instance/databases/decoration-db"`
	// SeedDemo loads a few categories and users into the memory store.
	SeedDemo bool `env:"STORE_SEED_DEMO" env-default:"true"`
}

type PagingConfig struct {
	DefaultSize int `env:"PAGE_DEFAULT_SIZE" env-default:"12"`
	MaxSize     int `env:"PAGE_MAX_SIZE" env-default:"100"`
	// AdminQueueSize is the default page size of the moderation queue.
	AdminQueueSize int `env:"PAGE_ADMIN_QUEUE_SIZE" env-default:"10"`
}

type AuthConfig struct {
	JWTSecret string `env:"JWT_SECRET" env-default:"dev-secret-change-me"`
}

type BlobConfig struct {
	Driver         string   `env:"BLOB_DRIVER" env-default:"memory"`
	PublicBaseURL  string   `env:"BLOB_PUBLIC_BASE_URL" env-default:"/files"`
	MaxBytes       int64    `env:"BLOB_MAX_BYTES" env-default:"10485760"`
	AllowedTypes   []string `env:"BLOB_ALLOWED_TYPES" env-separator:"," env-default:"image/jpeg,image/png,image/gif,image/webp,image/bmp"`
	ThumbnailWidth int      `env:"THUMBNAIL_WIDTH" env-default:"300"`
	S3             S3Config
}

type S3Config struct {
	Endpoint        string `env:"AWS_S3_ENDPOINT" env-default:"http://localhost:9000"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID" env-default:"minioadmin"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" env-default:"minioadmin"`
	Bucket          string `env:"AWS_S3_BUCKET" env-default:"materials"`
	Region          string `env:"AWS_S3_REGION" env-default:"us-east-1"`
	UsePathStyle    bool   `env:"AWS_S3_USE_PATH_STYLE" env-default:"true"`
}

// Load reads an optional .env file and then the process environment.
func Load(dotenvFiles ...string) (*Config, error) {
	if len(dotenvFiles) == 0 {
		dotenvFiles = []string{".env"}
	}
	for _, file := range dotenvFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks driver names and numeric bounds.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverMemory, DriverSpanner:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}
	switch c.Blob.Driver {
	case DriverMemory, DriverS3:
	default:
		return fmt.Errorf("unknown BLOB_DRIVER %q", c.Blob.Driver)
	}
	if c.Paging.DefaultSize < 1 || c.Paging.MaxSize < c.Paging.DefaultSize {
		return fmt.Errorf("invalid page sizes: default %d, max %d", c.Paging.DefaultSize, c.Paging.MaxSize)
	}
	if c.Blob.ThumbnailWidth < 1 {
		return fmt.Errorf("invalid THUMBNAIL_WIDTH %d", c.Blob.ThumbnailWidth)
	}
	return nil
}
