// Package payment charges visit fees through a single backend chosen at startup.
package payment

import (
	"context"
	"time"

	"servicehub/models"

	"go.uber.org/zap"
)

// Gateway takes a charge. An error or a result with Success == false both mean
// the charge did not happen.
type Gateway interface {
	Charge(ctx context.Context, req models.ChargeRequest) (*models.ChargeResult, error)
}

// Config selects and tunes the payment backend.
type Config struct {
	StripeSecretKey string
	Timeout         time.Duration
}

// NewGateway returns the Stripe gateway when a secret key is configured and the
// mock gateway otherwise, wrapped with the configured timeout.
func NewGateway(cfg Config, logger *zap.Logger) Gateway {
	var backend Gateway
	if cfg.StripeSecretKey == "" {
		logger.Warn("STRIPE_SECRET_KEY not set, using mock payment gateway")
		backend = NewMockGateway()
	} else {
		backend = NewStripeGateway(cfg.StripeSecretKey, logger)
	}
	return NewTimeoutGateway(backend, cfg.Timeout)
}

// Succeeded reports whether a Charge call produced a usable transaction.
func Succeeded(res *models.ChargeResult, err error) bool {
	return err == nil && res != nil && res.Success && res.TransactionID != ""
}
