package providerRepo

import (
	"context"

	"servicehub/models"
)

// NearQuery describes a radius-bounded, nearest-first provider search.
type NearQuery struct {
	Lat               float64
	Lng               float64
	MaxDistanceMeters int
	Category          string // exact match against one category
	Text              string // case-insensitive literal substring
	ApprovedOnly      bool
	Limit             int
}

// ProviderRepository defines methods for provider data access.
type ProviderRepository interface {
	// Create inserts a new provider record. A second provider for the same user fails with ErrDuplicate.
	Create(ctx context.Context, provider *models.Provider) error
	// GetByID retrieves a provider by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Provider, error)
	// FindNear returns providers inside the query radius, nearest first.
	FindNear(ctx context.Context, q NearQuery) ([]models.Provider, error)
	// ListByApproval returns providers with the given approval flag, oldest request first.
	ListByApproval(ctx context.Context, approved bool) ([]models.Provider, error)
	// SetApproved flips the approval flag and returns the updated provider.
	SetApproved(ctx context.Context, id string, approved bool) (*models.Provider, error)
}
