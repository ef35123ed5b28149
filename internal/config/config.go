package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	MongoURI    string        `mapstructure:"MONGO_URI" validate:"required,startswith=mongodb"`
	MongoDB     string        `mapstructure:"MONGO_DB" validate:"required"`
	TaskTimeout time.Duration `mapstructure:"TASK_TIMEOUT" validate:"gte=0"`
	ReplaceMode string        `mapstructure:"REPLACE_MODE" validate:"oneof=merge document"`

	LogLevel  string `mapstructure:"LOG_LEVEL" validate:"oneof=trace debug info warn error"`
	LogFormat string `mapstructure:"LOG_FORMAT" validate:"oneof=console json"`

	Port      string `mapstructure:"PORT" validate:"required,numeric"`
	JWTSecret string `mapstructure:"JWT_SECRET"`

	MinioEndpoint  string `mapstructure:"MINIO_ENDPOINT"`
	MinioAccessKey string `mapstructure:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `mapstructure:"MINIO_SECRET_KEY"`
	MinioUseSSL    bool   `mapstructure:"MINIO_USE_SSL"`
	ReportBucket   string `mapstructure:"REPORT_BUCKET" validate:"required"`
}

var defaults = map[string]interface{}{
	"MONGO_URI":        "mongodb://localhost:27017",
	"MONGO_DB":         "tasks",
	"TASK_TIMEOUT":     "10s",
	"REPLACE_MODE":     "merge",
	"LOG_LEVEL":        "info",
	"LOG_FORMAT":       "console",
	"PORT":             "8080",
	"JWT_SECRET":       "",
	"MINIO_ENDPOINT":   "",
	"MINIO_ACCESS_KEY": "minioadmin",
	"MINIO_SECRET_KEY": "minioadmin",
	"MINIO_USE_SSL":    false,
	"REPORT_BUCKET":    "task-reports",
}

// New returns a viper instance with defaults and environment binding set up.
// Callers may bind flags on it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()
	return v
}

// LoadDotEnv loads path into the process environment. Already set variables
// win. A missing file is reported as an error the caller may ignore.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Load resolves flags, environment and defaults from v and validates the
// result.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// MinioEnabled reports whether a report sink is configured.
func (c *Config) MinioEnabled() bool {
	return c.MinioEndpoint != ""
}
