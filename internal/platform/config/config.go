package config

import (
	"log"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	RedisURL     string
	Port         string
	IsProduction bool

	// Rate engine
	PivotCurrency       string
	SupportedCurrencies []string
	ConversionMargin    decimal.Decimal

	// External rate provider
	ProviderBaseURL string
	ProviderAPIKey  string
	ProviderName    string

	// Ingestion schedule and retry policy
	IngestInterval         time.Duration
	IngestFetchTimeout     time.Duration
	IngestRetryBaseDelay   time.Duration
	IngestRetryMaxDelay    time.Duration
	IngestRetryMaxAttempts int

	RateCacheTTL time.Duration

	// Formatted ulule/limiter rate for the conversion endpoint, e.g. "60-M".
	ConversionRateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("PIVOT_CURRENCY", "EUR")
	viper.SetDefault("SUPPORTED_CURRENCIES", "USD,GBP,NGN,JPY,CAD,CNY,GHS,KES,ZAR")
	viper.SetDefault("CONVERSION_MARGIN", "0.005")
	viper.SetDefault("PROVIDER_BASE_URL", "https://api.exchangeratesapi.io/v1")
	viper.SetDefault("PROVIDER_API_KEY", "")
	viper.SetDefault("PROVIDER_NAME", "exchangeratesapi")
	viper.SetDefault("INGEST_INTERVAL", "1h")
	viper.SetDefault("INGEST_FETCH_TIMEOUT", "10s")
	viper.SetDefault("INGEST_RETRY_BASE_DELAY", "30s")
	viper.SetDefault("INGEST_RETRY_MAX_DELAY", "5m")
	viper.SetDefault("INGEST_RETRY_MAX_ATTEMPTS", 3)
	viper.SetDefault("RATE_CACHE_TTL", "65m")
	viper.SetDefault("CONVERSION_RATE_LIMIT", "60-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.PivotCurrency = strings.ToUpper(strings.TrimSpace(viper.GetString("PIVOT_CURRENCY")))
	cfg.SupportedCurrencies = splitCurrencyList(viper.GetString("SUPPORTED_CURRENCIES"))

	marginStr := viper.GetString("CONVERSION_MARGIN")
	margin, err := decimal.NewFromString(marginStr)
	if err != nil {
		margin = decimal.NewFromFloat(0.005)
		log.Printf("Warning: Invalid value for CONVERSION_MARGIN (%q). Defaulting to %s.\n", marginStr, margin.String())
	}
	cfg.ConversionMargin = margin

	cfg.ProviderBaseURL = viper.GetString("PROVIDER_BASE_URL")
	cfg.ProviderAPIKey = viper.GetString("PROVIDER_API_KEY")
	if cfg.ProviderAPIKey == "" {
		log.Println("Warning: PROVIDER_API_KEY not set. Rate ingestion will likely be rejected upstream.")
	}
	cfg.ProviderName = viper.GetString("PROVIDER_NAME")

	cfg.IngestInterval = parseDurationOr("INGEST_INTERVAL", time.Hour)
	cfg.IngestFetchTimeout = parseDurationOr("INGEST_FETCH_TIMEOUT", 10*time.Second)
	cfg.IngestRetryBaseDelay = parseDurationOr("INGEST_RETRY_BASE_DELAY", 30*time.Second)
	cfg.IngestRetryMaxDelay = parseDurationOr("INGEST_RETRY_MAX_DELAY", 5*time.Minute)
	cfg.IngestRetryMaxAttempts = viper.GetInt("INGEST_RETRY_MAX_ATTEMPTS")
	cfg.RateCacheTTL = parseDurationOr("RATE_CACHE_TTL", 65*time.Minute)
	cfg.ConversionRateLimit = viper.GetString("CONVERSION_RATE_LIMIT")

	return cfg, nil
}

// parseDurationOr reads a duration key, falling back to the given default on
// parse failure.
func parseDurationOr(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s (%q). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}

// splitCurrencyList turns "USD, GBP,NGN" into ["USD" "GBP" "NGN"].
// Env vars arrive as a single string, so the list is comma-separated.
func splitCurrencyList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		code := strings.ToUpper(strings.TrimSpace(p))
		if code != "" {
			out = append(out, code)
		}
	}
	return out
}

// Validate checks every engine-critical setting and reports all problems at
// once rather than failing on the first.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.DatabaseURL == "" {
		result = multierror.Append(result, errMissing("PGSQL_URL"))
	}
	if c.RedisURL == "" {
		result = multierror.Append(result, errMissing("REDIS_URL"))
	}
	if len(c.PivotCurrency) != 3 {
		result = multierror.Append(result, errInvalid("PIVOT_CURRENCY", c.PivotCurrency, "must be a 3-letter code"))
	}
	if len(c.SupportedCurrencies) == 0 {
		result = multierror.Append(result, errMissing("SUPPORTED_CURRENCIES"))
	}
	for _, code := range c.SupportedCurrencies {
		if len(code) != 3 {
			result = multierror.Append(result, errInvalid("SUPPORTED_CURRENCIES", code, "must be a 3-letter code"))
		}
	}
	if c.ConversionMargin.IsNegative() || c.ConversionMargin.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		result = multierror.Append(result, errInvalid("CONVERSION_MARGIN", c.ConversionMargin.String(), "must be in [0, 1)"))
	}
	if c.ProviderBaseURL == "" {
		result = multierror.Append(result, errMissing("PROVIDER_BASE_URL"))
	}
	if c.IngestInterval <= 0 {
		result = multierror.Append(result, errInvalid("INGEST_INTERVAL", c.IngestInterval.String(), "must be positive"))
	}
	if c.IngestFetchTimeout <= 0 {
		result = multierror.Append(result, errInvalid("INGEST_FETCH_TIMEOUT", c.IngestFetchTimeout.String(), "must be positive"))
	}
	if c.IngestRetryBaseDelay <= 0 {
		result = multierror.Append(result, errInvalid("INGEST_RETRY_BASE_DELAY", c.IngestRetryBaseDelay.String(), "must be positive"))
	}
	if c.IngestRetryMaxDelay < c.IngestRetryBaseDelay {
		result = multierror.Append(result, errInvalid("INGEST_RETRY_MAX_DELAY", c.IngestRetryMaxDelay.String(), "must be >= INGEST_RETRY_BASE_DELAY"))
	}
	if c.IngestRetryMaxAttempts < 1 {
		result = multierror.Append(result, errInvalid("INGEST_RETRY_MAX_ATTEMPTS", "", "must be at least 1"))
	}
	if c.RateCacheTTL <= 0 {
		result = multierror.Append(result, errInvalid("RATE_CACHE_TTL", c.RateCacheTTL.String(), "must be positive"))
	}

	return result.ErrorOrNil()
}

func errMissing(key string) error {
	return &configError{key: key, reason: "is required"}
}

func errInvalid(key, value, reason string) error {
	return &configError{key: key, value: value, reason: reason}
}

type configError struct {
	key    string
	value  string
	reason string
}

func (e *configError) Error() string {
	if e.value != "" {
		return "config " + e.key + "=" + e.value + " " + e.reason
	}
	return "config " + e.key + " " + e.reason
}
