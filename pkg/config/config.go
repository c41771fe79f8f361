package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the process configuration, read from the environment and an optional .env file.
type Config struct {
	Env  string `mapstructure:"ENV"`
	Port string `mapstructure:"PORT"`

	Database DBConfig       `mapstructure:",squash"`
	Firebase FirebaseConfig `mapstructure:",squash"`
	HTTP     HTTPConfig     `mapstructure:",squash"`
	Paging   PagingConfig   `mapstructure:",squash"`
}

type DBConfig struct {
	PostgresURL     string        `mapstructure:"POSTGRES_URL"`
	QueryTimeout    time.Duration `mapstructure:"DB_QUERY_TIMEOUT"`
	MaxOpenConns    int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `mapstructure:"DB_CONN_MAX_LIFETIME"`
	AutoMigrate     bool          `mapstructure:"AUTO_MIGRATE"`
}

type FirebaseConfig struct {
	CredentialsPath string `mapstructure:"FIREBASE_CREDENTIALS_PATH"`
	ProjectID       string `mapstructure:"FIREBASE_PROJECT_ID"`
}

type HTTPConfig struct {
	CORSAllowedOrigins []string `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

type PagingConfig struct {
	PostsPageSize         int `mapstructure:"POSTS_PAGE_SIZE"`
	NotificationsPageSize int `mapstructure:"NOTIFICATIONS_PAGE_SIZE"`
}

var defaults = map[string]any{
	"ENV":                       "development",
	"PORT":                      "8080",
	"POSTGRES_URL":              "",
	"DB_QUERY_TIMEOUT":          "5s",
	"DB_MAX_OPEN_CONNS":         20,
	"DB_MAX_IDLE_CONNS":         5,
	"DB_CONN_MAX_LIFETIME":      "30m",
	"AUTO_MIGRATE":              false,
	"FIREBASE_CREDENTIALS_PATH": "./firebase_credentials.json",
	"FIREBASE_PROJECT_ID":       "",
	"CORS_ALLOWED_ORIGINS":      "http://localhost:3000,http://localhost:5173",
	"POSTS_PAGE_SIZE":           6,
	"NOTIFICATIONS_PAGE_SIZE":   10,
}

// Load reads .env (if present) and the environment. Variables already set in the
// environment win over .env.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if origins := v.GetString("CORS_ALLOWED_ORIGINS"); origins != "" {
		v.Set("CORS_ALLOWED_ORIGINS", splitList(origins))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c *Config) validate() error {
	var errs []error
	if c.Database.PostgresURL == "" {
		errs = append(errs, errors.New("POSTGRES_URL is required"))
	}
	if c.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	if c.Database.QueryTimeout <= 0 {
		errs = append(errs, errors.New("DB_QUERY_TIMEOUT must be positive"))
	}
	if c.Database.MaxOpenConns < 0 || c.Database.MaxIdleConns < 0 {
		errs = append(errs, errors.New("DB_MAX_OPEN_CONNS and DB_MAX_IDLE_CONNS must not be negative"))
	}
	if c.Paging.PostsPageSize <= 0 || c.Paging.NotificationsPageSize <= 0 {
		errs = append(errs, errors.New("page sizes must be positive"))
	}
	return errors.Join(errs...)
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "prod" || c.Env == "production"
}
