package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Stripe   StripeConfig
	AI       AIConfig
	Storage  StorageConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	PublicURL   string
	LogLevel    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	TTL      time.Duration
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

type StripeConfig struct {
	SecretKey      string
	WebhookSecret  string
	StarterPriceID string
	GrowthPriceID  string
	Currency       string
	PlansFile      string
	Timeout        time.Duration
}

type AIConfig struct {
	// Provider is one of "anthropic", "gemini" or "" (skill overlap only).
	Provider        string
	AnthropicAPIKey string
	AnthropicModel  string
	GeminiAPIKey    string
	GeminiModel     string
	Timeout         time.Duration
}

type StorageConfig struct {
	Bucket  string
	Timeout time.Duration
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

// Load reads the process environment. A .env file in the working directory is
// applied first when present; real environment variables win.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
		PublicURL:   orDefault(opt("APP_PUBLIC_URL"), "http://localhost:3000"),
		LogLevel:    opt("LOG_LEVEL"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:                opt("DB_HOST"),
		DBPort:                opt("DB_PORT"),
		DBName:                opt("DB_NAME"),
		DBUser:                opt("DB_USER"),
		DBPassword:            opt("DB_PASSWORD"),
		DBSSLMode:             orDefault(opt("DB_SSL_MODE"), "disable"),
		ConnectTimeout:        seconds(opt("DB_CONNECT_TIMEOUT_SECONDS"), 5),
		PoolMaxConns:          int32(intOr(opt("DB_POOL_MAX_CONNS"), 10)),
		PoolMinConns:          int32(intOr(opt("DB_POOL_MIN_CONNS"), 0)),
		PoolMaxConnLifetime:   seconds(opt("DB_POOL_MAX_CONN_LIFETIME_SECONDS"), 1800),
		PoolMaxConnIdleTime:   seconds(opt("DB_POOL_MAX_CONN_IDLE_SECONDS"), 300),
		PoolHealthCheckPeriod: seconds(opt("DB_POOL_HEALTH_CHECK_SECONDS"), 60),
	}

	cfg.Redis = RedisConfig{
		Addr:     opt("REDIS_ADDR"),
		Password: opt("REDIS_PASSWORD"),
		TTL:      seconds(opt("REDIS_TTL"), 600),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     req("JWT_ACCESS_SECRET"),
		RefreshSecret:    req("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  seconds(opt("JWT_ACCESS_EXPIRES_SECONDS"), 900),
		RefreshExpiresIn: seconds(opt("JWT_REFRESH_EXPIRES_SECONDS"), 7*24*3600),
	}

	cfg.Stripe = StripeConfig{
		SecretKey:      opt("STRIPE_SECRET_KEY"),
		WebhookSecret:  opt("STRIPE_WEBHOOK_SECRET"),
		StarterPriceID: opt("STRIPE_STARTER_PRICE_ID"),
		GrowthPriceID:  opt("STRIPE_GROWTH_PRICE_ID"),
		Currency:       orDefault(strings.ToLower(opt("STRIPE_CURRENCY")), "cad"),
		PlansFile:      opt("PLANS_FILE"),
		Timeout:        seconds(opt("STRIPE_TIMEOUT_SECONDS"), 15),
	}

	cfg.AI = AIConfig{
		Provider:        strings.ToLower(opt("AI_PROVIDER")),
		AnthropicAPIKey: opt("ANTHROPIC_API_KEY"),
		AnthropicModel:  orDefault(opt("ANTHROPIC_MODEL"), "claude-sonnet-4-5-20250929"),
		GeminiAPIKey:    opt("GEMINI_API_KEY"),
		GeminiModel:     opt("GEMINI_MODEL"),
		Timeout:         seconds(opt("AI_TIMEOUT_SECONDS"), 30),
	}

	cfg.Storage = StorageConfig{
		Bucket:  opt("GCS_BUCKET"),
		Timeout: seconds(opt("STORAGE_TIMEOUT_SECONDS"), 30),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	switch cfg.AI.Provider {
	case "", "anthropic", "gemini":
	default:
		return Config{}, fmt.Errorf("unsupported AI_PROVIDER %q", cfg.AI.Provider)
	}

	return cfg, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func intOr(raw string, def int) int {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	return v
}

func seconds(raw string, def int) time.Duration {
	return time.Duration(intOr(raw, def)) * time.Second
}
