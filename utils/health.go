package utils

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Pinger is any dependency that can report its reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a function to Pinger.
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Status    string          `json:"status"`
	Checks    map[string]bool `json:"checks"`
	CheckedAt time.Time       `json:"checkedAt"`
}

var (
	currentHealth = HealthStatus{Status: "starting", Checks: map[string]bool{}}
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	checks := make(map[string]bool, len(currentHealth.Checks))
	for k, v := range currentHealth.Checks {
		checks[k] = v
	}
	return HealthStatus{Status: currentHealth.Status, Checks: checks, CheckedAt: currentHealth.CheckedAt}
}

// CheckHealth pings every dependency once and stores the snapshot.
func CheckHealth(ctx context.Context, deps map[string]Pinger) HealthStatus {
	checks := make(map[string]bool, len(deps))
	status := "ok"
	for name, dep := range deps {
		pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := dep.Ping(pctx)
		cancel()
		checks[name] = err == nil
		if err != nil {
			status = "degraded"
			GetLogger().Warn("Health check failed", zap.String("dependency", name), zap.Error(err))
		}
	}

	snapshot := HealthStatus{Status: status, Checks: checks, CheckedAt: time.Now()}
	mu.Lock()
	currentHealth = snapshot
	mu.Unlock()
	return snapshot
}

// StartHealthMonitor performs periodic health checks and updates in-memory state
// until ctx is cancelled.
func StartHealthMonitor(ctx context.Context, deps map[string]Pinger) {
	CheckHealth(ctx, deps)
	go func() {
		ticker := time.NewTicker(HealthCheckInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				CheckHealth(ctx, deps)
			}
		}
	}()
}
