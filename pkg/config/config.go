package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Feed     FeedConfig
	Map      MapConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port           string
	RequestTimeout time.Duration
	AllowOrigins   []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	SecretKey string
	TTL       time.Duration
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

// FeedConfig holds the activity feed blend sizes.
type FeedConfig struct {
	SocialLimit    int
	CommunityLimit int
	DefaultLimit   int
}

type MapConfig struct {
	DefaultRadiusMiles float64
	GeocoderURL        string
	GeocoderUserAgent  string
	GeocodeCacheTTL    time.Duration
	SearchRatePerSec   float64
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var errs []error
	intEnv := func(key string, def int) int {
		v, err := getEnvInt(key, def)
		errs = append(errs, err)
		return v
	}
	floatEnv := func(key string, def float64) float64 {
		v, err := getEnvFloat(key, def)
		errs = append(errs, err)
		return v
	}
	durEnv := func(key string, def time.Duration) time.Duration {
		v, err := getEnvDuration(key, def)
		errs = append(errs, err)
		return v
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "cur8tr"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			RequestTimeout: durEnv("REQUEST_TIMEOUT", 10*time.Second),
			AllowOrigins:   []string{getEnv("CORS_ORIGIN", "http://localhost:5173")},
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "cur8tr"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
			TTL:       durEnv("JWT_TTL", 7*24*time.Hour),
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       intEnv("REDIS_DB", 0),
		},
		Feed: FeedConfig{
			SocialLimit:    intEnv("FEED_SOCIAL_LIMIT", 15),
			CommunityLimit: intEnv("FEED_COMMUNITY_LIMIT", 10),
			DefaultLimit:   intEnv("FEED_DEFAULT_LIMIT", 20),
		},
		Map: MapConfig{
			DefaultRadiusMiles: floatEnv("MAP_DEFAULT_RADIUS_MILES", 50),
			GeocoderURL:        getEnv("GEOCODER_URL", "https://nominatim.openstreetmap.org"),
			GeocoderUserAgent:  getEnv("GEOCODER_USER_AGENT", "Cur8tr/1.0"),
			GeocodeCacheTTL:    durEnv("GEOCODE_CACHE_TTL", 24*time.Hour),
			SearchRatePerSec:   floatEnv("MAP_SEARCH_RATE", 5),
		},
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("missing jwt secret")
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	if cfg.Feed.SocialLimit <= 0 || cfg.Feed.CommunityLimit <= 0 || cfg.Feed.DefaultLimit <= 0 {
		return nil, errors.New("feed limits must be positive")
	}

	if cfg.Map.DefaultRadiusMiles <= 0 {
		return nil, errors.New("map default radius must be positive")
	}

	if cfg.Map.SearchRatePerSec <= 0 {
		return nil, errors.New("map search rate must be positive")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, defaultVal float64) (float64, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
