package utils

import "time"

// Lock key prefixes; the entity id is appended.
const (
	BookingLockPrefix  = "booking:"
	ProviderLockPrefix = "provider:"
)

// NotificationQueue is the asynq queue carrying domain events.
const NotificationQueue = "notifications"

// HealthCheckInterval is how often StartHealthMonitor pings its dependencies.
const HealthCheckInterval = 60 * time.Second

// TokenTTL is the lifetime of tokens minted by GenerateToken in tooling.
const TokenTTL = 24 * time.Hour
