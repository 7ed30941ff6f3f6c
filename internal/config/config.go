package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds the whole application configuration.
// It is populated from environment variables (optionally loaded from .env).
type Config struct {
	App    AppConfig
	Redis  RedisConfig
	JWT    JWTConfig
	Wallet WalletConfig
	Solana SolanaConfig
	MinIO  MinIOConfig
	CORS   CORSConfig
	Jobs   JobConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret      string
	TokenExpiry int // hours
}

// WalletConfig controls the wallet-signature sign in.
type WalletConfig struct {
	SignInMessage string
	RequireAuth   bool // protect mutating event routes with the wallet token
}

// SolanaConfig is handed to the browser for the mint flow.
type SolanaConfig struct {
	Cluster     string // devnet, testnet, mainnet-beta
	RPCURL      string
	MetadataURI string
	Symbol      string
}

type MinIOConfig struct {
	Endpoint  string // localhost:9000
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Enabled   bool
	PublicURL string // base for links handed to clients; defaults to the endpoint
}

type CORSConfig struct {
	AllowedOrigins []string
}

// JobConfig drives the asynq producer in the API and the worker schedule
type JobConfig struct {
	Enabled          bool
	ImageSweepCron   string
	OrphanGraceHours int
	Concurrency      int
}

const defaultJWTSecret = "your-secret-key-change-in-production"

// Load reads config from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Events Manager"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", defaultJWTSecret),
			TokenExpiry: getEnvInt("JWT_EXPIRY_HOURS", 24),
		},
		Wallet: WalletConfig{
			SignInMessage: getEnv("WALLET_SIGNIN_MESSAGE", "Sign in to Events Manager"),
			RequireAuth:   getEnvBool("AUTH_REQUIRE_WALLET", false),
		},
		Solana: SolanaConfig{
			Cluster:     getEnv("SOLANA_CLUSTER", "devnet"),
			RPCURL:      getEnv("SOLANA_RPC_URL", "https://api.devnet.solana.com"),
			MetadataURI: getEnv("SOLANA_METADATA_URI", "https://jsonplaceholder.typicode.com/posts/1"),
			Symbol:      getEnv("SOLANA_NFT_SYMBOL", "EVENT"),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "events"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
			Enabled:   getEnvBool("MINIO_ENABLED", true),
			PublicURL: getEnv("MINIO_PUBLIC_URL", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Jobs: JobConfig{
			Enabled:          getEnvBool("JOBS_ENABLED", true),
			ImageSweepCron:   getEnv("JOBS_IMAGE_SWEEP_CRON", "0 3 * * *"),
			OrphanGraceHours: getEnvInt("JOBS_ORPHAN_GRACE_HOURS", 24),
			Concurrency:      getEnvInt("JOBS_CONCURRENCY", 5),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks settings that must never reach production with defaults
func (c *Config) Validate() error {
	if c.App.Port == "" {
		return fmt.Errorf("APP_PORT must not be empty")
	}
	if c.JWT.TokenExpiry <= 0 {
		return fmt.Errorf("JWT_EXPIRY_HOURS must be positive")
	}
	if c.Jobs.OrphanGraceHours <= 0 {
		return fmt.Errorf("JOBS_ORPHAN_GRACE_HOURS must be positive")
	}

	if c.App.Environment == "production" {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if os.Getenv("DB_PASSWORD") == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}

	return nil
}

// IsProduction reports whether the app runs with APP_ENV=production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvList splits a comma separated variable, dropping empty items
func getEnvList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(valueStr, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
