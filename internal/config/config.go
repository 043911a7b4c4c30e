package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	S3     S3Config
	Log    LogConfig
	CORS   CORSConfig
	Ingest IngestConfig
	Cache  CacheConfig
}

// IngestConfig holds declaration import settings.
type IngestConfig struct {
	Concurrency int           `mapstructure:"concurrency"`
	DryRun      bool          `mapstructure:"dry_run"`
	PDFPassword string        `mapstructure:"pdf_password"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// CacheConfig holds read-side cache settings.
type CacheConfig struct {
	StatsTTL time.Duration `mapstructure:"stats_ttl"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds object storage settings. AuditBucket receives the
// normalized line dump of every ingested document when set.
type S3Config struct {
	Region      string `mapstructure:"region"`
	Bucket      string `mapstructure:"bucket"`
	Endpoint    string `mapstructure:"endpoint"`
	AccessKey   string `mapstructure:"access_key"`
	SecretKey   string `mapstructure:"secret_key"`
	AuditBucket string `mapstructure:"audit_bucket"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the POTHEN_
// prefix, after loading an optional .env file from the working directory.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("POTHEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "pothen")
	v.SetDefault("db.password", "pothen_secret")
	v.SetDefault("db.name", "pothen_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "eu-central-1")
	v.SetDefault("s3.bucket", "pothen-declarations")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.audit_bucket", "")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Ingest defaults
	v.SetDefault("ingest.concurrency", 4)
	v.SetDefault("ingest.dry_run", false)
	v.SetDefault("ingest.pdf_password", "")
	v.SetDefault("ingest.timeout", "2m")

	v.SetDefault("cache.stats_ttl", "1m")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":          "POTHEN_SERVER_PORT",
		"server.read_timeout":  "POTHEN_SERVER_READ_TIMEOUT",
		"server.write_timeout": "POTHEN_SERVER_WRITE_TIMEOUT",
		"server.environment":   "POTHEN_SERVER_ENVIRONMENT",
		"db.host":              "POTHEN_DB_HOST",
		"db.port":              "POTHEN_DB_PORT",
		"db.user":              "POTHEN_DB_USER",
		"db.password":          "POTHEN_DB_PASSWORD",
		"db.name":              "POTHEN_DB_NAME",
		"db.sslmode":           "POTHEN_DB_SSLMODE",
		"db.max_open":          "POTHEN_DB_MAX_OPEN",
		"db.max_idle":          "POTHEN_DB_MAX_IDLE",
		"s3.region":            "POTHEN_S3_REGION",
		"s3.bucket":            "POTHEN_S3_BUCKET",
		"s3.endpoint":          "POTHEN_S3_ENDPOINT",
		"s3.access_key":        "POTHEN_S3_ACCESS_KEY",
		"s3.secret_key":        "POTHEN_S3_SECRET_KEY",
		"s3.audit_bucket":      "POTHEN_S3_AUDIT_BUCKET",
		"log.level":            "POTHEN_LOG_LEVEL",
		"log.format":           "POTHEN_LOG_FORMAT",
		"cors.allowed_origins": "POTHEN_CORS_ALLOWED_ORIGINS",
		"ingest.concurrency":   "POTHEN_INGEST_CONCURRENCY",
		"ingest.dry_run":       "POTHEN_INGEST_DRY_RUN",
		"ingest.pdf_password":  "POTHEN_INGEST_PDF_PASSWORD",
		"ingest.timeout":       "POTHEN_INGEST_TIMEOUT",
		"cache.stats_ttl":      "POTHEN_CACHE_STATS_TTL",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("POTHEN_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:      v.GetString("s3.region"),
		Bucket:      v.GetString("s3.bucket"),
		Endpoint:    v.GetString("s3.endpoint"),
		AccessKey:   v.GetString("s3.access_key"),
		SecretKey:   v.GetString("s3.secret_key"),
		AuditBucket: v.GetString("s3.audit_bucket"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.Ingest = IngestConfig{
		Concurrency: v.GetInt("ingest.concurrency"),
		DryRun:      v.GetBool("ingest.dry_run"),
		PDFPassword: v.GetString("ingest.pdf_password"),
		Timeout:     v.GetDuration("ingest.timeout"),
	}
	if cfg.Ingest.Concurrency < 1 {
		cfg.Ingest.Concurrency = 1
	}
	cfg.Cache = CacheConfig{
		StatsTTL: v.GetDuration("cache.stats_ttl"),
	}

	return cfg, nil
}

// splitList parses a comma-separated setting, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
