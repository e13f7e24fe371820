package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fastcountdown/internal/domain"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv           string
	Port             string
	DatabaseURL      string
	StoreDriver      string
	ConfirmSecret    string
	NATSURL          string
	EventSubject     string
	Currency         string
	DefaultLocale    string
	AllowedOrigins   []string
	Campaign         domain.Campaign
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	RateLimitPerMin  int
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "3000"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		StoreDriver:      strings.ToLower(getEnv("STORE_DRIVER", StoreDriverPostgres)),
		ConfirmSecret:    os.Getenv("CONFIRM_SECRET"),
		NATSURL:          os.Getenv("NATS_URL"),
		EventSubject:     getEnv("NATS_SUBJECT", "fast.donation.applied"),
		Currency:         strings.ToUpper(getEnv("DONATION_CURRENCY", "EUR")),
		DefaultLocale:    getEnv("DEFAULT_LOCALE", "en"),
		AllowedOrigins:   getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:  getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
	}

	campaign, err := LoadCampaign()
	if err != nil {
		return nil, err
	}
	cfg.Campaign = campaign

	switch cfg.StoreDriver {
	case StoreDriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	case StoreDriverMemory:
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.StoreDriver)
	}

	if cfg.ConfirmSecret == "" {
		return nil, fmt.Errorf("CONFIRM_SECRET is required")
	}

	return cfg, nil
}

// LoadCampaign reads the countdown constants fixed at deploy time.
func LoadCampaign() (domain.Campaign, error) {
	start, err := time.Parse(time.RFC3339, getEnv("FAST_START", "2025-04-10T00:00:00Z"))
	if err != nil {
		return domain.Campaign{}, fmt.Errorf("%w: FAST_START: %v", domain.ErrInvalidConfig, err)
	}
	rate, err := decimal.NewFromString(getEnv("DONATION_MINUTES_RATE", "1"))
	if err != nil {
		return domain.Campaign{}, fmt.Errorf("%w: DONATION_MINUTES_RATE: %v", domain.ErrInvalidConfig, err)
	}
	campaign := domain.Campaign{
		Start:               start.UTC(),
		InitialMinutes:      int64(getEnvInt("INITIAL_FAST_MINUTES", 5*24*60)),
		MaxTotalMinutes:     int64(getEnvInt("MAX_FAST_MINUTES", 7*24*60)),
		DonationMinutesRate: rate,
	}
	if err := campaign.Validate(); err != nil {
		return domain.Campaign{}, err
	}
	return campaign, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	var items []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	if len(items) == 0 {
		return fallback
	}
	return items
}
