package provider

import (
	"context"
	"fmt"

	"servicehub/database/repository"
	"servicehub/models"

	"go.uber.org/zap"
)

// RequestInput is a user's application to become a provider. Coordinates and
// visit charge are pointers so an omitted field is told apart from zero.
type RequestInput struct {
	BusinessName string   `json:"businessName"`
	Categories   []string `json:"categories"`
	Address      string   `json:"address"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	VisitCharge  *float64 `json:"visitCharge"`
	Details      string   `json:"details,omitempty"`
}

// ProviderService handles provider onboarding and admin approval.
type ProviderService interface {
	Request(ctx context.Context, principal models.Principal, in RequestInput) (*models.Provider, error)
	ListPending(ctx context.Context, principal models.Principal) ([]models.Provider, error)
	SetApproval(ctx context.Context, principal models.Principal, providerID string, approved bool) (*models.Provider, error)
}

// DefaultProviderService is the production implementation.
type DefaultProviderService struct {
	Repo   repository.ProviderRepository
	logger *zap.Logger
}

func NewDefaultProviderService(repo repository.ProviderRepository, logger *zap.Logger) (*DefaultProviderService, error) {
	if repo == nil || logger == nil {
		return nil, fmt.Errorf("provider service initialization error: one or more dependencies are nil")
	}
	return &DefaultProviderService{Repo: repo, logger: logger}, nil
}
