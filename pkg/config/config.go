package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Feed     FeedConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

type JWTConfig struct {
	SecretKey string
}

// FeedConfig tunes the composition engine. The weight fields override the
// built-in scoring defaults only when set above zero.
type FeedConfig struct {
	ProductsPerCarousel int
	CarouselsPerLoad    int
	OptimalStock        int
	CostRatio           float64

	WSalesVelocity  float64
	WRatingQuality  float64
	WEngagementRate float64
	WProfitMargin   float64
	WStockScore     float64
	WFreshnessScore float64
	WCampaignBoost  float64
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Anda Market Feed API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "anda_market"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
		},
		Feed: FeedConfig{
			ProductsPerCarousel: getEnvInt("FEED_PRODUCTS_PER_CAROUSEL", 8),
			CarouselsPerLoad:    getEnvInt("FEED_CAROUSELS_PER_LOAD", 3),
			OptimalStock:        getEnvInt("FEED_OPTIMAL_STOCK", 50),
			CostRatio:           getEnvFloat("FEED_COST_RATIO", 0.6),

			WSalesVelocity:  getEnvFloat("FEED_W_SALES_VELOCITY", 0),
			WRatingQuality:  getEnvFloat("FEED_W_RATING_QUALITY", 0),
			WEngagementRate: getEnvFloat("FEED_W_ENGAGEMENT_RATE", 0),
			WProfitMargin:   getEnvFloat("FEED_W_PROFIT_MARGIN", 0),
			WStockScore:     getEnvFloat("FEED_W_STOCK_SCORE", 0),
			WFreshnessScore: getEnvFloat("FEED_W_FRESHNESS_SCORE", 0),
			WCampaignBoost:  getEnvFloat("FEED_W_CAMPAIGN_BOOST", 0),
		},
	}

	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("missing jwt secret")
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}

	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}

	return defaultVal
}
