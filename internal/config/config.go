package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultMinCatalogSize is the expected minimum number of purchasable
	// skins on the wiki. The true catalog grows over time, so it is a
	// config value rather than a hard floor baked into the verifier.
	DefaultMinCatalogSize = 496

	defaultWikiURL      = "https://valorant.fandom.com/wiki/Weapon_Skins"
	defaultRatesBaseURL = "https://open.er-api.com/v6/latest"
	defaultUserAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// Config holds all application configuration
type Config struct {
	Port     string
	LogLevel string

	WikiURL      string
	RatesBaseURL string
	UserAgent    string

	CacheDir      string
	SkinCacheTTL  time.Duration
	RatesCacheTTL time.Duration

	MinCatalogSize int

	HTTPTimeout    time.Duration
	BrowserTimeout time.Duration

	// Outbound request pacing against the wiki
	ScrapeRateLimitRPS float64

	DBPath          string
	RefreshInterval time.Duration

	CORSAllowedOrigins string
}

// Load reads configuration from the environment, with a .env file if present
func Load() (*Config, error) {
	_ = godotenv.Load()

	return &Config{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		WikiURL:      getEnv("WIKI_URL", defaultWikiURL),
		RatesBaseURL: getEnv("RATES_API_BASE_URL", defaultRatesBaseURL),
		UserAgent:    getEnv("SCRAPE_USER_AGENT", defaultUserAgent),

		CacheDir:      getEnv("CACHE_DIR", "./cache"),
		SkinCacheTTL:  secondsEnv("SKIN_CACHE_TTL_SECONDS", 21600),
		RatesCacheTTL: secondsEnv("RATES_CACHE_TTL_SECONDS", 86400),

		MinCatalogSize: intEnv("MIN_CATALOG_SIZE", DefaultMinCatalogSize),

		HTTPTimeout:    secondsEnv("HTTP_TIMEOUT_SECONDS", 10),
		BrowserTimeout: secondsEnv("BROWSER_TIMEOUT_SECONDS", 30),

		ScrapeRateLimitRPS: floatEnv("SCRAPE_RATE_LIMIT_RPS", 1),

		DBPath:          getEnv("DB_PATH", "./skin_tracker.db"),
		RefreshInterval: time.Duration(intEnv("REFRESH_INTERVAL_MINUTES", 60)) * time.Minute,

		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", ""),
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func floatEnv(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func secondsEnv(key string, fallback int) time.Duration {
	return time.Duration(intEnv(key, fallback)) * time.Second
}
