package provider

import (
	"context"
	"errors"
	"strings"

	"servicehub/database/repository"
	"servicehub/models"

	"go.uber.org/zap"
)

// ListPending returns unapproved providers, oldest request first. Admin only.
func (s *DefaultProviderService) ListPending(ctx context.Context, principal models.Principal) ([]models.Provider, error) {
	if principal.Role != models.RoleAdmin {
		return nil, models.ErrNotAuthorized
	}
	providers, err := s.Repo.ListByApproval(ctx, false)
	if err != nil {
		s.logger.Error("Failed to list pending providers", zap.Error(err))
		return nil, models.ErrStoreUnavailable.Wrap(err)
	}
	if providers == nil {
		providers = []models.Provider{}
	}
	return providers, nil
}

// SetApproval flips the provider's approval flag. Existing bookings are left alone.
func (s *DefaultProviderService) SetApproval(ctx context.Context, principal models.Principal, providerID string, approved bool) (*models.Provider, error) {
	if principal.Role != models.RoleAdmin {
		return nil, models.ErrNotAuthorized
	}
	p, err := s.Repo.SetApproved(ctx, strings.TrimSpace(providerID), approved)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, models.ErrProviderNotFound.Wrap(err)
		}
		return nil, models.ErrStoreUnavailable.Wrap(err)
	}

	s.logger.Info("Provider approval updated",
		zap.String("provider_id", p.ID),
		zap.String("admin_id", principal.UserID),
		zap.Bool("approved", approved))
	return p, nil
}
