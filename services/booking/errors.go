package booking

import (
	"context"
	"errors"

	"servicehub/database/repository"
	"servicehub/models"
	"servicehub/services/lock"
)

// storeError maps a repository failure onto the domain error callers see.
// conflict is the state error of the operation that attempted the write.
func storeError(err error, conflict *models.DomainError) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return models.ErrBookingNotFound.Wrap(err)
	case errors.Is(err, repository.ErrStatusConflict):
		return conflict.Wrap(err)
	default:
		return models.ErrStoreUnavailable.Wrap(err)
	}
}

func lockError(err error) error {
	if errors.Is(err, lock.ErrNotAcquired) || errors.Is(err, context.DeadlineExceeded) {
		return models.ErrConcurrentModification.Wrap(err)
	}
	return models.ErrStoreUnavailable.Wrap(err)
}
