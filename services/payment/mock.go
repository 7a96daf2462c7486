package payment

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"servicehub/models"
)

// MockGateway always succeeds. It stands in for a real processor in development.
type MockGateway struct {
	seq atomic.Int64
}

func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

func (g *MockGateway) Charge(ctx context.Context, req models.ChargeRequest) (*models.ChargeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n := g.seq.Add(1)
	return &models.ChargeResult{
		Success:       true,
		TransactionID: fmt.Sprintf("mock_txn_%d_%d", time.Now().UnixMilli(), n),
	}, nil
}
