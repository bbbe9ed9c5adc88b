package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config struct to hold the configuration settings
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Postgres PostgresConfig `yaml:"postgres"`
	NATS     NATSConfig     `yaml:"nats"`
	JWT      JWTConfig      `yaml:"jwt"`
	Admin    AdminConfig    `yaml:"admin"`
	Payment  PaymentConfig  `yaml:"payment"`
	Log      LogConfig      `yaml:"log"`
}

// HTTPConfig holds the HTTP server configuration.
type HTTPConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// NATSConfig holds NATS configuration. An empty URL disables the external
// publisher; events still flow through the in-process bus.
type NATSConfig struct {
	URL string `yaml:"url"`
}

// JWTConfig holds JWT configuration for admin session tokens.
type JWTConfig struct {
	Secret     string        `yaml:"secret"`
	Issuer     string        `yaml:"issuer"`
	DefaultTTL time.Duration `yaml:"default_ttl"`
}

// AdminConfig holds the administrator credential pair.
type AdminConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// PaymentConfig holds the fixed external payment contacts shown to reservants:
// the PIX routing key and the WhatsApp number that receives payment proof.
type PaymentConfig struct {
	PixKey         string `yaml:"pix_key"`
	WhatsAppNumber string `yaml:"whatsapp_number"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `yaml:"level"`
}

// LoadConfig loads the configuration from a YAML file.
func LoadConfig(filename string) (*Config, error) {
	// Try reading configuration from the file first
	data, err := os.ReadFile(filename)
	if err != nil {
		// If the file is not found, try loading from environment variables
		return loadConfigFromEnv()
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadConfigFromEnv loads configuration from environment variables.
func loadConfigFromEnv() (*Config, error) {
	cfg := &Config{
		HTTP: HTTPConfig{
			Addr:           os.Getenv("HTTP_ADDR"),
			AllowedOrigins: splitNonEmpty(os.Getenv("HTTP_ALLOWED_ORIGINS")),
		},
		Postgres: PostgresConfig{
			DSN: os.Getenv("POSTGRES_DSN"),
		},
		NATS: NATSConfig{
			URL: os.Getenv("NATS_URL"),
		},
		JWT: JWTConfig{
			Secret: os.Getenv("JWT_SECRET"),
			Issuer: os.Getenv("JWT_ISSUER"),
		},
		Admin: AdminConfig{
			Username: os.Getenv("ADMIN_USERNAME"),
			Password: os.Getenv("ADMIN_PASSWORD"),
		},
		Payment: PaymentConfig{
			PixKey:         os.Getenv("PAYMENT_PIX_KEY"),
			WhatsAppNumber: os.Getenv("PAYMENT_WHATSAPP_NUMBER"),
		},
		Log: LogConfig{
			Level: os.Getenv("LOG_LEVEL"),
		},
	}

	if ttlStr := os.Getenv("JWT_DEFAULT_TTL_MINUTES"); ttlStr != "" {
		minutes, err := strconv.Atoi(ttlStr)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_DEFAULT_TTL_MINUTES: %w", err)
		}
		cfg.JWT.DefaultTTL = time.Duration(minutes) * time.Minute
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.JWT.Issuer == "" {
		cfg.JWT.Issuer = "stake-reservations"
	}
	if cfg.JWT.DefaultTTL == 0 {
		cfg.JWT.DefaultTTL = 12 * time.Hour
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

func (cfg *Config) validate() error {
	if cfg.Postgres.DSN == "" {
		return fmt.Errorf("postgres DSN is required (postgres.dsn or POSTGRES_DSN)")
	}
	if cfg.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required (jwt.secret or JWT_SECRET)")
	}
	if cfg.Admin.Username == "" || cfg.Admin.Password == "" {
		return fmt.Errorf("admin credentials are required (admin.username/admin.password)")
	}
	return nil
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
