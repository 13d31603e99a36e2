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
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Exchange rate provider
	RateProviderURL     string
	RateRequestTimeout  time.Duration
	ExchangeFeePercent  decimal.Decimal

	// Bank feed
	BankFeedURL string

	// Event publishing; empty list disables Kafka
	KafkaBrokers []string
	KafkaTopic   string
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
	viper.SetDefault("JWT_ISSUER", "ledger-backend")
	viper.SetDefault("RATE_PROVIDER_URL", "https://api.exchangerate-api.com/v4/latest")
	viper.SetDefault("RATE_REQUEST_TIMEOUT", "5s")
	viper.SetDefault("EXCHANGE_FEE_PERCENT", "0.5")
	viper.SetDefault("BANK_FEED_URL", "")
	viper.SetDefault("KAFKA_BROKERS", "")
	viper.SetDefault("KAFKA_TOPIC", "ledger.transactions.completed")

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
		jwtIssuer = "ledger-backend"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", jwtIssuer)
	}

	rateTimeoutStr := viper.GetString("RATE_REQUEST_TIMEOUT")
	rateTimeout, err := time.ParseDuration(rateTimeoutStr)
	if err != nil {
		rateTimeout = 5 * time.Second
		if rateTimeoutStr != "" {
			log.Printf("Warning: Invalid value for RATE_REQUEST_TIMEOUT ('%s'). Defaulting to %s.\n", rateTimeoutStr, rateTimeout.String())
		}
	}

	feeStr := viper.GetString("EXCHANGE_FEE_PERCENT")
	feePercent, err := decimal.NewFromString(feeStr)
	if err != nil || feePercent.IsNegative() {
		feePercent = decimal.NewFromFloat(0.5)
		if feeStr != "" {
			log.Printf("Warning: Invalid value for EXCHANGE_FEE_PERCENT ('%s'). Defaulting to %s.\n", feeStr, feePercent.String())
		}
	}

	var brokers []string
	if brokersStr := viper.GetString("KAFKA_BROKERS"); brokersStr != "" {
		for _, b := range strings.Split(brokersStr, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}
	if len(brokers) == 0 {
		log.Println("Warning: KAFKA_BROKERS not set. Transaction events will not be published.")
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.JWTSecret = jwtSecret
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = jwtIssuer
	cfg.RateProviderURL = viper.GetString("RATE_PROVIDER_URL")
	cfg.RateRequestTimeout = rateTimeout
	cfg.ExchangeFeePercent = feePercent
	cfg.BankFeedURL = viper.GetString("BANK_FEED_URL")
	cfg.KafkaBrokers = brokers
	cfg.KafkaTopic = viper.GetString("KAFKA_TOPIC")

	return cfg, nil
}
