package payment

import (
	"context"
	"fmt"
	"time"

	"servicehub/models"
)

// ErrTimeout is returned when the backend does not answer within the timeout.
var ErrTimeout = fmt.Errorf("payment gateway timed out")

// TimeoutGateway fails closed: a backend that does not answer in time is
// treated as a failed charge even if it ignores ctx.
type TimeoutGateway struct {
	next    Gateway
	timeout time.Duration
}

func NewTimeoutGateway(next Gateway, timeout time.Duration) *TimeoutGateway {
	return &TimeoutGateway{next: next, timeout: timeout}
}

type chargeOutcome struct {
	res *models.ChargeResult
	err error
}

func (g *TimeoutGateway) Charge(ctx context.Context, req models.ChargeRequest) (*models.ChargeResult, error) {
	if g.timeout <= 0 {
		return g.next.Charge(ctx, req)
	}
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	done := make(chan chargeOutcome, 1)
	go func() {
		res, err := g.next.Charge(ctx, req)
		done <- chargeOutcome{res: res, err: err}
	}()

	select {
	case out := <-done:
		return out.res, out.err
	case <-ctx.Done():
		return nil, fmt.Errorf("%w after %s: %v", ErrTimeout, g.timeout, ctx.Err())
	}
}
