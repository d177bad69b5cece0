// Package config loads the process configuration once at startup.
//
// Values come from the environment, optionally seeded from a .env file:
//
//	cfg, err := config.Load(".env")
//
// The returned *Config is passed explicitly to everything that needs it;
// nothing in this package keeps global state.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	EnvLocal      = "local"
	EnvProduction = "production"
)

// Config is the full set of runtime settings.
type Config struct {
	App     AppConfig
	Mongo   MongoConfig
	Token   TokenConfig
	Storage StorageConfig
	Redis   RedisConfig
	HTTP    HTTPConfig
}

type AppConfig struct {
	Env           string   `envconfig:"APP_ENV" default:"local"`
	Port          string   `envconfig:"APP_PORT" default:"4000"`
	LogLevel      string   `envconfig:"LOG_LEVEL" default:"info"`
	LogCollection string   `envconfig:"LOG_COLLECTION"`
	AdminPhones   []string `envconfig:"ADMIN_PHONES"`
}

// IsProduction reports whether APP_ENV names a production deployment.
func (a AppConfig) IsProduction() bool {
	switch strings.ToLower(a.Env) {
	case EnvProduction, "prod":
		return true
	}
	return false
}

type MongoConfig struct {
	URI            string        `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	Database       string        `envconfig:"MONGO_DATABASE" default:"HolisticAgro"`
	ConnectTimeout time.Duration `envconfig:"MONGO_CONNECT_TIMEOUT" default:"10s"`
	MaxPoolSize    uint64        `envconfig:"MONGO_MAX_POOL_SIZE" default:"50"`
}

type TokenConfig struct {
	Secret string        `envconfig:"ACCESS_KEY_TOKEN" default:"change-me-in-production"`
	TTL    time.Duration `envconfig:"TOKEN_TTL" default:"240h"`
}

type StorageConfig struct {
	Disk      string `envconfig:"STORAGE_DISK" default:"local"`
	LocalRoot string `envconfig:"STORAGE_LOCAL_ROOT" default:"files"`
	URL       string `envconfig:"STORAGE_URL" default:"http://localhost:4000/files"`

	S3Bucket   string `envconfig:"S3_BUCKET"`
	S3Region   string `envconfig:"S3_REGION" default:"us-east-1"`
	S3Key      string `envconfig:"S3_KEY"`
	S3Secret   string `envconfig:"S3_SECRET"`
	S3Endpoint string `envconfig:"S3_ENDPOINT"`
	S3URL      string `envconfig:"S3_URL"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type HTTPConfig struct {
	CORSOrigins         []string      `envconfig:"CORS_ORIGINS" default:"http://localhost:3000"`
	RateLimitPerMinute  int           `envconfig:"RATE_LIMIT_PER_MINUTE" default:"200"`
	AuthRateLimitPerMin int           `envconfig:"AUTH_RATE_LIMIT_PER_MINUTE" default:"20"`
	MaxBodyBytes        int64         `envconfig:"MAX_BODY_BYTES" default:"4194304"`
	MaxUploadBytes      int64         `envconfig:"MAX_UPLOAD_BYTES" default:"10485760"`
	ReadTimeout         time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"30s"`
	WriteTimeout        time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"60s"`
	ShutdownTimeout     time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// Load reads envFile (if it exists) into the process environment without
// overriding variables that are already set, then parses the environment.
// An empty envFile skips the file step.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: read %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: parse environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Token.Secret) == "" {
		return errors.New("config: ACCESS_KEY_TOKEN must not be empty")
	}
	if c.Token.TTL <= 0 {
		return errors.New("config: TOKEN_TTL must be positive")
	}
	switch c.Storage.Disk {
	case "local":
	case "s3":
		if c.Storage.S3Bucket == "" {
			return errors.New("config: STORAGE_DISK=s3 requires S3_BUCKET")
		}
	default:
		return fmt.Errorf("config: unsupported STORAGE_DISK %q (supported: local, s3)", c.Storage.Disk)
	}
	if c.App.IsProduction() && c.Token.Secret == "change-me-in-production" {
		return errors.New("config: ACCESS_KEY_TOKEN must be set in production")
	}
	return nil
}

// Addr is the listen address derived from APP_PORT.
func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(c.App.Port, ":")
}
