package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

type Config struct {
	Env       string          `yaml:"env" env:"ENV" env-default:"local"`
	LogLevel  string          `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	JWT       JWTConfig       `yaml:"jwt"`
	TLS       TLSConfig       `yaml:"tls"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

type ServerConfig struct {
	Port         string   `yaml:"port" env:"PORT" env-default:"8080"`
	Host         string   `yaml:"host" env:"HOST" env-default:"0.0.0.0"`
	AllowedHosts []string `yaml:"allowed_hosts" env:"ALLOWED_HOSTS" env-separator:","`
}

type DatabaseConfig struct {
	Host        string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port        int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User        string `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password    string `yaml:"password" env:"DB_PASSWORD"`
	DBName      string `yaml:"name" env:"DB_NAME" env-default:"expense_manager"`
	SSLMode     string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
	AutoMigrate bool   `yaml:"auto_migrate" env:"DB_AUTO_MIGRATE" env-default:"false"`
}

type JWTConfig struct {
	Secret string        `yaml:"secret" env:"JWT_SECRET"`
	TTL    time.Duration `yaml:"ttl" env:"JWT_TTL" env-default:"24h"`
}

type TLSConfig struct {
	Enabled      bool   `yaml:"enabled" env:"TLS_ENABLED" env-default:"false"`
	CertPath     string `yaml:"cert_path" env:"TLS_CERT_PATH"`
	KeyPath      string `yaml:"key_path" env:"TLS_KEY_PATH"`
	RedirectHTTP bool   `yaml:"redirect_http" env:"TLS_REDIRECT_HTTP" env-default:"false"`
}

type TelemetryConfig struct {
	Enabled      bool   `yaml:"enabled" env:"OTEL_ENABLED" env-default:"false"`
	ServiceName  string `yaml:"service_name" env:"OTEL_SERVICE_NAME" env-default:"expense-manager-api"`
	OTLPEndpoint string `yaml:"otlp_endpoint" env:"OTEL_EXPORTER_ENDPOINT" env-default:"localhost:4317"`
	MetricsPort  string `yaml:"metrics_port" env:"METRICS_PORT" env-default:"9090"`
}

// Load reads the configuration from the YAML file named by CONFIG_PATH, with
// environment variables taking precedence, or from the environment alone.
func Load() (*Config, error) {
	var cfg Config
	var err error

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.Server.AllowedHosts = trimHosts(cfg.Server.AllowedHosts)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required")
	}

	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("ENV must be one of %s, %s, %s; got %q", EnvLocal, EnvDev, EnvProd, c.Env)
	}

	if c.TLS.Enabled {
		if c.TLS.CertPath == "" {
			return errors.New("TLS_CERT_PATH is required when TLS_ENABLED=true")
		}
		if c.TLS.KeyPath == "" {
			return errors.New("TLS_KEY_PATH is required when TLS_ENABLED=true")
		}
	}
	return nil
}

func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// URL returns the connection string in URL form, as golang-migrate expects it.
func (c *DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

func trimHosts(hosts []string) []string {
	var out []string
	for _, h := range hosts {
		if h = strings.TrimSpace(h); h != "" {
			out = append(out, h)
		}
	}
	return out
}
