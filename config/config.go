package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Persistence: "mongo" or "memory".
	StoreDriver  string `mapstructure:"STORE_DRIVER"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisLockDB   int    `mapstructure:"REDIS_LOCK_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Entity locks: "redis" or "local".
	LockDriver string        `mapstructure:"LOCK_DRIVER"`
	LockTTL    time.Duration `mapstructure:"LOCK_TTL"`
	LockWait   time.Duration `mapstructure:"LOCK_WAIT"`
	LockRetry  time.Duration `mapstructure:"LOCK_RETRY"`

	// Payments. An empty key selects the mock gateway.
	StripeSecretKey string        `mapstructure:"STRIPE_SECRET_KEY"`
	PaymentCurrency string        `mapstructure:"PAYMENT_CURRENCY"`
	PaymentTimeout  time.Duration `mapstructure:"PAYMENT_TIMEOUT"`

	// Discovery.
	DefaultRadiusMeters int `mapstructure:"DEFAULT_RADIUS_METERS"`
	DiscoveryMaxResults int `mapstructure:"DISCOVERY_MAX_RESULTS"`

	// Notifications.
	NotificationsEnabled    bool `mapstructure:"NOTIFICATIONS_ENABLED"`
	NotificationConcurrency int  `mapstructure:"NOTIFICATION_CONCURRENCY"`
}

var AppConfig Config

func LoadConfig() {
	v := viper.GetViper()
	// Look for a config file named "config.yaml" in the current and "config" directory.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	cfg, err := load(v)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

// load applies env binding and defaults to v and decodes the result.
// Every key needs a default so Unmarshal picks up its environment variable.
func load(v *viper.Viper) (Config, error) {
	v.AutomaticEnv()
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)

	v.SetDefault("STORE_DRIVER", "mongo")
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "servicehub")

	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_LOCK_DB", 0)
	v.SetDefault("REDIS_QUEUE_DB", 1)

	v.SetDefault("LOCK_DRIVER", "redis")
	v.SetDefault("LOCK_TTL", "30s")
	v.SetDefault("LOCK_WAIT", "5s")
	v.SetDefault("LOCK_RETRY", "50ms")

	v.SetDefault("STRIPE_SECRET_KEY", "")
	v.SetDefault("PAYMENT_CURRENCY", "usd")
	v.SetDefault("PAYMENT_TIMEOUT", "10s")

	v.SetDefault("DEFAULT_RADIUS_METERS", 10000)
	v.SetDefault("DISCOVERY_MAX_RESULTS", 100)

	v.SetDefault("NOTIFICATIONS_ENABLED", true)
	v.SetDefault("NOTIFICATION_CONCURRENCY", 10)
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// UseMemoryStore reports whether persistence runs in-process instead of on MongoDB.
func UseMemoryStore() bool {
	return AppConfig.StoreDriver == "memory"
}
