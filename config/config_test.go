package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "mongo", cfg.StoreDriver)
	assert.Equal(t, "servicehub", cfg.DatabaseName)
	assert.Equal(t, "redis", cfg.LockDriver)
	assert.Equal(t, 30*time.Second, cfg.LockTTL)
	assert.Equal(t, 5*time.Second, cfg.LockWait)
	assert.Equal(t, 50*time.Millisecond, cfg.LockRetry)
	assert.Equal(t, "usd", cfg.PaymentCurrency)
	assert.Equal(t, 10*time.Second, cfg.PaymentTimeout)
	assert.Equal(t, 10000, cfg.DefaultRadiusMeters)
	assert.Equal(t, 100, cfg.DiscoveryMaxResults)
	assert.True(t, cfg.NotificationsEnabled)
	assert.Equal(t, 10, cfg.NotificationConcurrency)
	assert.Empty(t, cfg.StripeSecretKey)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("LOCK_DRIVER", "local")
	t.Setenv("PAYMENT_TIMEOUT", "250ms")
	t.Setenv("DEFAULT_RADIUS_METERS", "2500")
	t.Setenv("NOTIFICATIONS_ENABLED", "false")
	t.Setenv("ENV", "production")

	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.StoreDriver)
	assert.Equal(t, "local", cfg.LockDriver)
	assert.Equal(t, 250*time.Millisecond, cfg.PaymentTimeout)
	assert.Equal(t, 2500, cfg.DefaultRadiusMeters)
	assert.False(t, cfg.NotificationsEnabled)

	AppConfig = cfg
	t.Cleanup(func() { AppConfig = Config{} })
	assert.True(t, IsProduction())
	assert.True(t, UseMemoryStore())
}
