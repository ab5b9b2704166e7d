package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/LovationAdmin/giftfinder-api/utils"
)

const DefaultCustomSearchEndpoint = "https://www.googleapis.com/customsearch/v1"

// Config regroupe toute la configuration du service.
// Elle est construite une fois au démarrage puis injectée dans les services.
type Config struct {
	Port        string
	FrontendURL string

	// Google Custom Search
	CSEID          string
	CSEAPIKey      string
	CSEEndpoint    string
	SearchTimeout  time.Duration
	PersistTimeout time.Duration

	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	KafkaBroker string
	KafkaTopic  string

	JWTSecret          string
	RateLimitPerMinute int
	RulesFile          string
	RetentionDays      int

	LogLevel  string
	LogFormat string
}

// SearchConfigured indique si les identifiants Custom Search sont présents.
func (c Config) SearchConfigured() bool {
	return c.CSEID != "" && c.CSEAPIKey != ""
}

// Load lit la configuration depuis l'environnement (.env chargé au préalable).
func Load() Config {
	return Config{
		Port:        getEnv("PORT", "8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),

		CSEID:          strings.TrimSpace(os.Getenv("GOOGLE_CSE_ID")),
		CSEAPIKey:      strings.TrimSpace(os.Getenv("GOOGLE_API_KEY")),
		CSEEndpoint:    getEnv("GOOGLE_CSE_ENDPOINT", DefaultCustomSearchEndpoint),
		SearchTimeout:  getDuration("SEARCH_TIMEOUT", 8*time.Second),
		PersistTimeout: getDuration("PERSIST_TIMEOUT", 3*time.Second),

		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),

		RedisAddr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getInt("REDIS_DB", 0),
		CacheTTL:      getDuration("CACHE_TTL", 6*time.Hour),

		KafkaBroker: strings.TrimSpace(os.Getenv("KAFKA_BROKER")),
		KafkaTopic:  getEnv("KAFKA_TOPIC", "gift.search.completed"),

		JWTSecret:          os.Getenv("JWT_SECRET"),
		RateLimitPerMinute: getInt("RATE_LIMIT_PER_MINUTE", 100),
		RulesFile:          strings.TrimSpace(os.Getenv("RULES_FILE")),
		RetentionDays:      getInt("SEARCH_RETENTION_DAYS", 0),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		utils.SafeWarn("[Config] invalid %s=%q, using %s", key, raw, def)
		return def
	}
	return d
}

func getInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		utils.SafeWarn("[Config] invalid %s=%q, using %d", key, raw, def)
		return def
	}
	return n
}
