package memory

import (
	"context"
	"fmt"
	"sort"

	"servicehub/database"
	reviewRepo "servicehub/database/repository/review"
	"servicehub/models"
)

// ReviewRepo implements reviewRepo.ReviewRepository in memory.
type ReviewRepo struct {
	s *Store
}

var _ reviewRepo.ReviewRepository = (*ReviewRepo)(nil)

func (r *ReviewRepo) AddWithAggregate(ctx context.Context, review *models.Review) (*models.Provider, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.providers[review.ProviderID]
	if !ok {
		return nil, fmt.Errorf("provider with id %s: %w", review.ProviderID, database.ErrNotFound)
	}
	key := review.ProviderID + "/" + review.UserID
	if _, dup := r.s.reviewKeys[key]; dup {
		return nil, fmt.Errorf("review by %s for provider %s: %w", review.UserID, review.ProviderID, database.ErrDuplicate)
	}
	if _, dup := r.s.reviews[review.ID]; dup {
		return nil, fmt.Errorf("review %s: %w", review.ID, database.ErrDuplicate)
	}

	c := *review
	r.s.reviews[review.ID] = &c
	r.s.reviewKeys[key] = struct{}{}
	r.s.insertedAt(review.ID)

	p.ApplyRating(review.Rating)
	p.UpdatedAt = review.CreatedAt
	return cloneProvider(p), nil
}

func (r *ReviewRepo) ListByProvider(ctx context.Context, providerID string) ([]models.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	reviews := []models.Review{}
	for _, rv := range r.s.reviews {
		if rv.ProviderID == providerID {
			reviews = append(reviews, *rv)
		}
	}
	sort.Slice(reviews, func(i, j int) bool {
		if !reviews[i].CreatedAt.Equal(reviews[j].CreatedAt) {
			return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
		}
		return r.s.order[reviews[i].ID] > r.s.order[reviews[j].ID]
	})
	return reviews, nil
}
