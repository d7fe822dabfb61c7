package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// GuestTxLimitUSD is the guest transaction ceiling; injected here so the
	// policy stays testable instead of living as a constant in the engine.
	GuestTxLimitUSD     decimal.Decimal
	SupportedCurrencies []string

	BitcoinAppAddress string
	AMQPURL           string
	PosthogAPIKey     string
	RateLimit         string // ulule/limiter format, e.g. "100-M"
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "kahawapay-backend")
	viper.SetDefault("GUEST_TX_LIMIT_USD", "100")
	viper.SetDefault("SUPPORTED_CURRENCIES", "KES,UGX,TZS")
	viper.SetDefault("BITCOIN_APP_ADDRESS", "")
	viper.SetDefault("AMQP_URL", "")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	jwtSecret := viper.GetString("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour * 1
		if jwtExpiryStr != "" {
			log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
		}
	}

	jwtIssuer := viper.GetString("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "kahawapay-backend"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", jwtIssuer)
	}

	limitStr := viper.GetString("GUEST_TX_LIMIT_USD")
	limit, err := decimal.NewFromString(limitStr)
	if err != nil || limit.Sign() <= 0 {
		limit = decimal.NewFromInt(100)
		log.Printf("Warning: Invalid value for GUEST_TX_LIMIT_USD ('%s'). Defaulting to %s.\n", limitStr, limit.String())
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.JWTSecret = jwtSecret
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = jwtIssuer
	cfg.GuestTxLimitUSD = limit
	cfg.SupportedCurrencies = parseCurrencyList(viper.GetString("SUPPORTED_CURRENCIES"))
	cfg.BitcoinAppAddress = viper.GetString("BITCOIN_APP_ADDRESS")
	cfg.AMQPURL = viper.GetString("AMQP_URL")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	if cfg.BitcoinAppAddress == "" {
		log.Println("Warning: BITCOIN_APP_ADDRESS not set. Deposit address endpoint will fail.")
	}
	if cfg.AMQPURL == "" {
		log.Println("Warning: AMQP_URL not set. Transaction events will not be published.")
	}

	return cfg, nil
}

// parseCurrencyList splits a comma-separated currency list, uppercasing and
// dropping empty entries; falls back to KES/UGX/TZS.
func parseCurrencyList(raw string) []string {
	parts := strings.Split(raw, ",")
	currencies := make([]string, 0, len(parts))
	for _, p := range parts {
		code := strings.ToUpper(strings.TrimSpace(p))
		if code != "" {
			currencies = append(currencies, code)
		}
	}
	if len(currencies) == 0 {
		currencies = []string{"KES", "UGX", "TZS"}
	}
	return currencies
}
