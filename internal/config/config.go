package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Scrape    ScrapeConfig
	Match     MatchConfig
	Extractor ExtractorConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	LogJSON     bool
	LogDebug    bool
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

type ScrapeConfig struct {
	// Concurrency bounds how many adapters run at once.
	Concurrency int
	// AdapterTimeout is the hard per-adapter deadline.
	AdapterTimeout time.Duration
	// RequestDelay is the minimum spacing between requests issued by
	// one adapter instance.
	RequestDelay time.Duration
	MaxResults   int
	// Headless enables the browser-rendered fallback strategy on
	// adapters that carry one.
	Headless bool
}

type MatchConfig struct {
	// SkillThreshold is the per-requirement similarity (0-100) needed
	// to count a requirement as matched.
	SkillThreshold int
	// DisplayThreshold is the minimum match score for a job to appear
	// in ranked output.
	DisplayThreshold int
	// TopGaps caps the skill-gap report length.
	TopGaps int
}

type ExtractorConfig struct {
	BaseURL string
	Timeout time.Duration
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
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
		LogJSON:     optBool("LOG_JSON", false),
		LogDebug:    optBool("LOG_DEBUG", false),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST"),
		DBPort:     opt("DB_PORT"),
		DBName:     opt("DB_NAME"),
		DBUser:     opt("DB_USER"),
		DBPassword: opt("DB_PASSWORD"),
		DBSSLMode:  opt("DB_SSL_MODE"),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     opt("REDIS_PORT"),
		Password: opt("REDIS_PASSWORD"),
		TTL:      optDuration("CACHE_TTL", 10*time.Minute),
	}

	cfg.Scrape = ScrapeConfig{
		Concurrency:    optInt("SCRAPE_CONCURRENCY", 3),
		AdapterTimeout: optDuration("SCRAPE_ADAPTER_TIMEOUT", 30*time.Second),
		RequestDelay:   optDuration("SCRAPE_REQUEST_DELAY", 2*time.Second),
		MaxResults:     optInt("SCRAPE_MAX_RESULTS", 25),
		Headless:       optBool("SCRAPE_HEADLESS", false),
	}

	cfg.Match = MatchConfig{
		SkillThreshold:   optInt("MATCH_SKILL_THRESHOLD", 80),
		DisplayThreshold: optInt("MATCH_DISPLAY_THRESHOLD", 50),
		TopGaps:          optInt("GAP_TOP_N", 5),
	}

	cfg.Extractor = ExtractorConfig{
		BaseURL: opt("EXTRACTOR_BASE_URL"),
		Timeout: optDuration("EXTRACTOR_TIMEOUT", 15*time.Second),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func optInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func optBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func optDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
