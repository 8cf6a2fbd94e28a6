package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// devJWTSecret signs tokens in development when JWT_SECRET is unset.
const devJWTSecret = "whatsapp_integration_secret"

type Config struct {
	Port      string `env:"PORT,      default=5001"`
	Env       string `env:"ENV,       default=production"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	JWTSecret string `env:"JWT_SECRET"`

	Auth     AuthConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	WhatsApp WhatsAppConfig
	Inbound  InboundConfig

	devSecret bool
}

type AuthConfig struct {
	TokenTTL        time.Duration `env:"JWT_EXPIRES_IN,            default=720h"`
	ResetTokenTTL   time.Duration `env:"RESET_TOKEN_TTL,           default=30m"`
	HashConcurrency int           `env:"PASSWORD_HASH_CONCURRENCY, default=4"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=whatsapp_integration"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	DB       int    `env:"REDIS_DB,       default=0"`
	Password string `env:"REDIS_PASSWORD"`
}

type WhatsAppConfig struct {
	Enabled      bool          `env:"WHATSAPP_ENABLED,           default=true"`
	SessionDir   string        `env:"WHATSAPP_SESSION_DATA_PATH, default=./whatsapp-session"`
	Headless     bool          `env:"WHATSAPP_HEADLESS,          default=true"`
	ChromePath   string        `env:"WHATSAPP_CHROME_PATH"`
	SendTimeout  time.Duration `env:"WHATSAPP_SEND_TIMEOUT,      default=45s"`
	PollInterval time.Duration `env:"WHATSAPP_POLL_INTERVAL,     default=5s"`
}

type InboundConfig struct {
	Workers           int      `env:"INBOUND_WORKERS,     default=4"`
	AutoReplyKeywords []string `env:"AUTO_REPLY_KEYWORDS, delimiter=;, default=olá;ola"`
	AutoReplyText     string   `env:"AUTO_REPLY_TEXT,     default=Olá! Como posso ajudar você hoje?"`
}

// Load reads an optional .env file and then the process environment.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith resolves the configuration from lookuper.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}

	if cfg.JWTSecret == "" {
		if !cfg.IsDevelopment() {
			return nil, errors.New("JWT_SECRET is required outside development")
		}
		cfg.JWTSecret = devJWTSecret
		cfg.devSecret = true
	}
	if cfg.Auth.HashConcurrency <= 0 {
		return nil, fmt.Errorf("PASSWORD_HASH_CONCURRENCY must be positive, got %d", cfg.Auth.HashConcurrency)
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool { return c.Env == "development" }

// DevSecretInUse reports whether tokens are signed with the built-in
// development secret.
func (c *Config) DevSecretInUse() bool { return c.devSecret }
