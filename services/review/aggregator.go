// Package review records reviews and keeps each provider's rating equal to the
// mean of its reviews.
package review

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"servicehub/database/repository"
	"servicehub/models"
	"servicehub/services/lock"
	"servicehub/services/notification"
	"servicehub/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AddInput struct {
	ProviderID string `json:"providerId"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment,omitempty"`
}

type Aggregator struct {
	reviews   repository.ReviewRepository
	providers repository.ProviderRepository
	locker    lock.Locker
	publisher notification.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

func NewAggregator(
	reviews repository.ReviewRepository,
	providers repository.ProviderRepository,
	locker lock.Locker,
	publisher notification.Publisher,
	logger *zap.Logger,
) *Aggregator {
	if publisher == nil {
		publisher = notification.NoopPublisher{}
	}
	return &Aggregator{
		reviews:   reviews,
		providers: providers,
		locker:    locker,
		publisher: publisher,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// AddReview stores the principal's review and folds it into the provider's
// aggregate in one store transaction.
func (a *Aggregator) AddReview(ctx context.Context, principal models.Principal, in AddInput) (*models.Review, error) {
	if principal.UserID == "" {
		return nil, models.ErrNotAuthorized
	}
	if in.Rating < models.MinRating || in.Rating > models.MaxRating {
		return nil, models.ErrInvalidRating.WithField("rating")
	}
	if utf8.RuneCountInString(in.Comment) > models.MaxCommentLength {
		return nil, models.ErrInvalidComment.WithField("comment")
	}
	providerID := strings.TrimSpace(in.ProviderID)

	if _, err := a.providers.GetByID(ctx, providerID); err != nil {
		return nil, providerError(err)
	}

	r := &models.Review{
		ID:         uuid.New().String(),
		ProviderID: providerID,
		UserID:     principal.UserID,
		Rating:     in.Rating,
		Comment:    strings.TrimSpace(in.Comment),
		CreatedAt:  a.now(),
	}
	provider, err := a.store(ctx, r)
	if err != nil {
		return nil, err
	}

	a.logger.Info("Review added",
		zap.String("review_id", r.ID),
		zap.String("provider_id", providerID),
		zap.String("user_id", principal.UserID),
		zap.Int("rating", r.Rating),
		zap.Float64("provider_rating", provider.Rating),
		zap.Int("review_count", provider.ReviewCount))

	a.publisher.Publish(ctx, models.DomainEvent{
		Type:       models.EventReviewAdded,
		UserID:     principal.UserID,
		ProviderID: providerID,
		ReviewID:   r.ID,
		Data:       map[string]string{"rating": strconv.Itoa(r.Rating)},
		OccurredAt: r.CreatedAt,
	})
	return r, nil
}

// store writes the review and folds it into the provider aggregate under the
// provider's lock. The lock is released on return.
func (a *Aggregator) store(ctx context.Context, r *models.Review) (*models.Provider, error) {
	release, err := a.locker.Acquire(ctx, utils.ProviderLockPrefix+r.ProviderID)
	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			return nil, models.ErrConcurrentModification.Wrap(err)
		}
		return nil, models.ErrStoreUnavailable.Wrap(err)
	}
	defer release()

	provider, err := a.reviews.AddWithAggregate(ctx, r)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, models.ErrDuplicateReview.Wrap(err)
		}
		return nil, providerError(err)
	}
	return provider, nil
}

// ListForProvider returns the provider's reviews, newest first.
func (a *Aggregator) ListForProvider(ctx context.Context, providerID string) ([]models.Review, error) {
	reviews, err := a.reviews.ListByProvider(ctx, strings.TrimSpace(providerID))
	if err != nil {
		a.logger.Error("Failed to list reviews", zap.String("provider_id", providerID), zap.Error(err))
		return nil, models.ErrStoreUnavailable.Wrap(err)
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return reviews, nil
}

func providerError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return models.ErrProviderNotFound.Wrap(err)
	}
	return models.ErrStoreUnavailable.Wrap(err)
}
