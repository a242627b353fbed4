package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// CardMethodKeywords is the card-identifying vocabulary: a payment method
	// whose label contains any of these substrings defers to the next period.
	CardMethodKeywords []string

	// CardGoals maps card names to their monthly usage goal amounts.
	CardGoals map[string]decimal.Decimal

	// RateLimit is a ulule/limiter formatted rate, e.g. "100-M".
	RateLimit string

	// AllowedOrigins is the CORS origin allowlist; "*" allows any origin.
	AllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("CARD_METHOD_KEYWORDS", "카드")
	viper.SetDefault("CARD_GOALS", "")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("ALLOWED_ORIGINS", "*")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set. Falling back to the in-memory period store; data will not survive a restart.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.CardMethodKeywords = splitList(viper.GetString("CARD_METHOD_KEYWORDS"))
	if len(cfg.CardMethodKeywords) == 0 {
		cfg.CardMethodKeywords = []string{"카드"}
	}

	goals, err := parseCardGoals(viper.GetString("CARD_GOALS"))
	if err != nil {
		log.Printf("Warning: Invalid CARD_GOALS value (%v). No card goals configured.\n", err)
		goals = map[string]decimal.Decimal{}
	}
	cfg.CardGoals = goals

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.AllowedOrigins = splitList(viper.GetString("ALLOWED_ORIGINS"))

	return cfg, nil
}

// splitList parses a comma separated list, dropping empty elements.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseCardGoals parses "카드명:목표액,카드명:목표액" into a goals map.
func parseCardGoals(s string) (map[string]decimal.Decimal, error) {
	goals := make(map[string]decimal.Decimal)
	for _, pair := range splitList(s) {
		name, amount, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, fmt.Errorf("card goal entry must be name:amount, got %q", pair)
		}
		d, err := decimal.NewFromString(strings.TrimSpace(amount))
		if err != nil {
			return nil, err
		}
		goals[strings.TrimSpace(name)] = d
	}
	return goals, nil
}
