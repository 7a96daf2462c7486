package provider

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"servicehub/database/repository"
	"servicehub/models"
	"servicehub/services/geo"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	minBusinessNameLength = 2
	maxBusinessNameLength = 100
)

// Request records an unapproved provider owned by the principal.
func (s *DefaultProviderService) Request(ctx context.Context, principal models.Principal, in RequestInput) (*models.Provider, error) {
	if principal.UserID == "" {
		return nil, models.ErrNotAuthorized
	}
	p, err := buildProvider(principal.UserID, in)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, models.ErrProviderAlreadyRequested.Wrap(err)
		}
		s.logger.Error("Failed to create provider request", zap.String("user_id", principal.UserID), zap.Error(err))
		return nil, models.ErrStoreUnavailable.Wrap(err)
	}

	s.logger.Info("Provider requested",
		zap.String("provider_id", p.ID),
		zap.String("user_id", p.UserID),
		zap.Strings("categories", p.Categories))
	return p, nil
}

func buildProvider(userID string, in RequestInput) (*models.Provider, error) {
	name := strings.TrimSpace(in.BusinessName)
	if n := utf8.RuneCountInString(name); n < minBusinessNameLength || n > maxBusinessNameLength {
		return nil, models.ErrInvalidProvider.WithField("businessName").
			WithMessage("business name must be between 2 and 100 characters")
	}

	var categories []string
	seen := map[string]bool{}
	for _, c := range in.Categories {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		categories = append(categories, c)
	}
	if len(categories) == 0 {
		return nil, models.ErrInvalidProvider.WithField("categories").
			WithMessage("at least one category is required")
	}

	address := strings.TrimSpace(in.Address)
	if address == "" {
		return nil, models.ErrInvalidProvider.WithField("address").WithMessage("address is required")
	}
	if in.Latitude == nil {
		return nil, models.ErrInvalidCoordinates.WithField("latitude").WithMessage("latitude is required")
	}
	if in.Longitude == nil {
		return nil, models.ErrInvalidCoordinates.WithField("longitude").WithMessage("longitude is required")
	}
	lat, lng := *in.Latitude, *in.Longitude
	if err := geo.ValidateCoordinates(lat, lng); err != nil {
		return nil, requestField(err)
	}
	if in.VisitCharge == nil {
		return nil, models.ErrInvalidProvider.WithField("visitCharge").WithMessage("visit charge is required")
	}
	charge := *in.VisitCharge
	if math.IsNaN(charge) || math.IsInf(charge, 0) || charge < 0 {
		return nil, models.ErrInvalidProvider.WithField("visitCharge").
			WithMessage("visit charge must be a non-negative amount")
	}

	now := time.Now().UTC()
	return &models.Provider{
		ID:           uuid.New().String(),
		UserID:       userID,
		BusinessName: name,
		Categories:   categories,
		Address:      address,
		Location:     models.NewGeoPoint(lat, lng),
		Approved:     false,
		VisitCharge:  charge,
		Details:      strings.TrimSpace(in.Details),
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// requestField renames the coordinate fields reported by geo to the request body's names.
func requestField(err error) error {
	de, ok := models.AsDomainError(err)
	if !ok {
		return err
	}
	switch de.Field {
	case "lat":
		return de.WithField("latitude")
	case "lng":
		return de.WithField("longitude")
	}
	return de
}
