package reviewRepo

import (
	"context"

	"servicehub/models"
)

// ReviewRepository defines methods for review data access.
type ReviewRepository interface {
	// AddWithAggregate inserts review and folds its rating into the provider's
	// aggregate fields atomically. It returns the updated provider.
	// A second review by the same author fails with ErrDuplicate and changes nothing.
	AddWithAggregate(ctx context.Context, review *models.Review) (*models.Provider, error)
	// ListByProvider returns the provider's reviews, newest first.
	ListByProvider(ctx context.Context, providerID string) ([]models.Review, error)
}
