package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/event-agenda/internal/domain/category"
	"github.com/riskibarqy/event-agenda/internal/platform/logging"
	"github.com/riskibarqy/event-agenda/internal/platform/resilience"
)

const (
	PublishStoreMemory   = "memory"
	PublishStorePostgres = "postgres"
)

// Config stores runtime configuration for a collector run.
type Config struct {
	AppEnv      string
	ServiceName string
	LogLevel    logging.Level

	InputPath    string
	OutputPath   string
	FixEventPath string
	MovieDBPath  string
	MovieDBFTS   bool

	PublishStore string
	DBURL        string

	MaxPrice             map[category.Category]float64
	DefaultMaxPrice      float64
	MaxSessions          int
	AvoidWorkingSessions bool
	Categories           []category.Category
	KOPlaces             []string
	SessionDomains       []string
	FixWorkers           int
	FixMaxPasses         int
	CacheTTL             time.Duration

	OwnDomain          string
	TrustedMoreDomains []string

	GoodReads    LookupConfig
	FilmAffinity LookupConfig
}

// LookupConfig configures one of the catalogue scrapers.
type LookupConfig struct {
	Enabled        bool
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	CircuitBreaker resilience.CircuitBreakerConfig
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	logLevel, err := logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_LOG_LEVEL: %w", err)
	}

	cfg := Config{
		AppEnv:             appEnv,
		ServiceName:        strings.TrimSpace(getEnv("APP_SERVICE_NAME", "event-agenda")),
		LogLevel:           logLevel,
		InputPath:          strings.TrimSpace(getEnv("INPUT_PATH", "-")),
		OutputPath:         strings.TrimSpace(getEnv("OUTPUT_PATH", "-")),
		FixEventPath:       strings.TrimSpace(getEnv("FIX_EVENT_PATH", "")),
		MovieDBPath:        strings.TrimSpace(getEnv("MOVIE_DB_PATH", "")),
		DBURL:              strings.TrimSpace(getEnv("DB_URL", "")),
		OwnDomain:          strings.ToLower(strings.TrimSpace(getEnv("OWN_DOMAIN", "madrid.es"))),
		KOPlaces:           splitCSV(getEnv("KO_PLACES", "")),
		SessionDomains:     splitCSV(getEnv("SESSION_DOMAINS", "tienda.madrid-destino.com")),
		TrustedMoreDomains: splitCSV(getEnv("TRUSTED_MORE_DOMAINS", "")),
	}

	if cfg.MovieDBFTS, err = strconv.ParseBool(getEnv("MOVIE_DB_FTS", "false")); err != nil {
		return Config{}, fmt.Errorf("parse MOVIE_DB_FTS: %w", err)
	}

	cfg.PublishStore = strings.ToLower(strings.TrimSpace(getEnv("PUBLISH_STORE", PublishStoreMemory)))
	switch cfg.PublishStore {
	case PublishStoreMemory:
	case PublishStorePostgres:
		if cfg.DBURL == "" {
			return Config{}, fmt.Errorf("DB_URL is required when PUBLISH_STORE=%s", PublishStorePostgres)
		}
	default:
		return Config{}, fmt.Errorf("invalid PUBLISH_STORE %q: valid values are %s, %s", cfg.PublishStore, PublishStoreMemory, PublishStorePostgres)
	}

	if cfg.MaxPrice, cfg.DefaultMaxPrice, err = parseMaxPrice(getEnv("MAX_PRICE", "*:10")); err != nil {
		return Config{}, fmt.Errorf("parse MAX_PRICE: %w", err)
	}

	if cfg.MaxSessions, err = getEnvAsInt("MAX_SESSIONS", 0); err != nil {
		return Config{}, fmt.Errorf("parse MAX_SESSIONS: %w", err)
	}
	if cfg.MaxSessions < 0 {
		return Config{}, fmt.Errorf("MAX_SESSIONS must be >= 0")
	}

	if cfg.AvoidWorkingSessions, err = strconv.ParseBool(getEnv("AVOID_WORKING_SESSIONS", "true")); err != nil {
		return Config{}, fmt.Errorf("parse AVOID_WORKING_SESSIONS: %w", err)
	}

	for _, name := range splitCSV(getEnv("CATEGORIES", "")) {
		c, err := category.Parse(name)
		if err != nil {
			return Config{}, fmt.Errorf("parse CATEGORIES: %w", err)
		}
		cfg.Categories = append(cfg.Categories, c)
	}

	if cfg.FixWorkers, err = getEnvAsInt("FIX_WORKERS", 8); err != nil {
		return Config{}, fmt.Errorf("parse FIX_WORKERS: %w", err)
	}
	if cfg.FixWorkers <= 0 {
		return Config{}, fmt.Errorf("FIX_WORKERS must be > 0")
	}

	if cfg.FixMaxPasses, err = getEnvAsInt("FIX_MAX_PASSES", 50); err != nil {
		return Config{}, fmt.Errorf("parse FIX_MAX_PASSES: %w", err)
	}
	if cfg.FixMaxPasses <= 0 {
		return Config{}, fmt.Errorf("FIX_MAX_PASSES must be > 0")
	}

	if cfg.CacheTTL, err = time.ParseDuration(getEnv("CACHE_TTL", "1h")); err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cfg.CacheTTL < 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be >= 0")
	}

	if cfg.GoodReads, err = loadLookup("GOODREADS"); err != nil {
		return Config{}, err
	}
	if cfg.FilmAffinity, err = loadLookup("FILMAFFINITY"); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// loadLookup reads PREFIX_ENABLED, PREFIX_BASE_URL, PREFIX_TIMEOUT,
// PREFIX_MAX_RETRIES and the PREFIX_CIRCUIT_* breaker settings.
func loadLookup(prefix string) (LookupConfig, error) {
	var (
		out LookupConfig
		err error
	)
	if out.Enabled, err = strconv.ParseBool(getEnv(prefix+"_ENABLED", "false")); err != nil {
		return LookupConfig{}, fmt.Errorf("parse %s_ENABLED: %w", prefix, err)
	}
	out.BaseURL = strings.TrimSpace(getEnv(prefix+"_BASE_URL", ""))

	if out.Timeout, err = time.ParseDuration(getEnv(prefix+"_TIMEOUT", "15s")); err != nil {
		return LookupConfig{}, fmt.Errorf("parse %s_TIMEOUT: %w", prefix, err)
	}
	if out.Timeout <= 0 {
		return LookupConfig{}, fmt.Errorf("%s_TIMEOUT must be > 0", prefix)
	}
	if out.MaxRetries, err = getEnvAsInt(prefix+"_MAX_RETRIES", 1); err != nil {
		return LookupConfig{}, fmt.Errorf("parse %s_MAX_RETRIES: %w", prefix, err)
	}
	if out.MaxRetries < 0 {
		return LookupConfig{}, fmt.Errorf("%s_MAX_RETRIES must be >= 0", prefix)
	}

	defaults := resilience.DefaultCircuitBreakerConfig()
	breaker := resilience.CircuitBreakerConfig{}
	if breaker.Enabled, err = strconv.ParseBool(getEnv(prefix+"_CIRCUIT_ENABLED", "true")); err != nil {
		return LookupConfig{}, fmt.Errorf("parse %s_CIRCUIT_ENABLED: %w", prefix, err)
	}
	if breaker.FailureThreshold, err = getEnvAsInt(prefix+"_CIRCUIT_FAILURE_COUNT", defaults.FailureThreshold); err != nil {
		return LookupConfig{}, fmt.Errorf("parse %s_CIRCUIT_FAILURE_COUNT: %w", prefix, err)
	}
	if breaker.OpenTimeout, err = time.ParseDuration(getEnv(prefix+"_CIRCUIT_OPEN_TIMEOUT", defaults.OpenTimeout.String())); err != nil {
		return LookupConfig{}, fmt.Errorf("parse %s_CIRCUIT_OPEN_TIMEOUT: %w", prefix, err)
	}
	if breaker.HalfOpenMaxReq, err = getEnvAsInt(prefix+"_CIRCUIT_HALF_OPEN_MAX_REQ", defaults.HalfOpenMaxReq); err != nil {
		return LookupConfig{}, fmt.Errorf("parse %s_CIRCUIT_HALF_OPEN_MAX_REQ: %w", prefix, err)
	}
	out.CircuitBreaker = resilience.NormalizeCircuitBreakerConfig(breaker)

	return out, nil
}

// parseMaxPrice reads "category:price" items. The "*" category sets the cap
// of categories missing from the list; "inf" lifts a cap.
func parseMaxPrice(raw string) (map[category.Category]float64, float64, error) {
	out := make(map[category.Category]float64)
	fallback := 0.0
	for _, item := range splitCSV(raw) {
		segments := strings.SplitN(item, ":", 2)
		if len(segments) != 2 {
			return nil, 0, fmt.Errorf("invalid item %q, expected category:price", item)
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(segments[1]), 64)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid price in item %q: %w", item, err)
		}
		if value < 0 || math.IsNaN(value) {
			return nil, 0, fmt.Errorf("price must be >= 0 in item %q", item)
		}

		key := strings.TrimSpace(segments[0])
		if key == "*" {
			fallback = value
			continue
		}
		c, err := category.Parse(key)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid category in item %q: %w", item, err)
		}
		out[c] = value
	}
	return out, fallback, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
