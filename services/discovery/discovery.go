// Package discovery finds approved providers near a point.
package discovery

import (
	"context"
	"strings"

	"servicehub/database/repository"
	"servicehub/models"
	"servicehub/services/geo"

	"go.uber.org/zap"
)

const (
	DefaultRadiusMeters = 10000
	DefaultMaxResults   = 100
)

// NearbyQuery is a discovery request. RadiusMeters == 0 selects the default radius.
type NearbyQuery struct {
	Lat          float64
	Lng          float64
	RadiusMeters int
	Category     string
	Text         string
}

type Config struct {
	DefaultRadiusMeters int
	MaxResults          int
}

type Service struct {
	providers repository.ProviderRepository
	cfg       Config
	logger    *zap.Logger
}

func NewService(providers repository.ProviderRepository, cfg Config, logger *zap.Logger) *Service {
	if cfg.DefaultRadiusMeters <= 0 {
		cfg.DefaultRadiusMeters = DefaultRadiusMeters
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultMaxResults
	}
	return &Service{providers: providers, cfg: cfg, logger: logger}
}

// FindNearby returns approved providers within the radius, nearest first, each
// annotated with its distance in km.
func (s *Service) FindNearby(ctx context.Context, q NearbyQuery) ([]models.ProviderSummary, error) {
	if err := geo.ValidateCoordinates(q.Lat, q.Lng); err != nil {
		return nil, err
	}
	if q.RadiusMeters < 0 {
		return nil, models.ErrInvalidRadius.WithField("radiusMeters")
	}
	radius := q.RadiusMeters
	if radius == 0 {
		radius = s.cfg.DefaultRadiusMeters
	}

	providers, err := s.providers.FindNear(ctx, repository.NearQuery{
		Lat:               q.Lat,
		Lng:               q.Lng,
		MaxDistanceMeters: radius,
		Category:          q.Category,
		Text:              strings.TrimSpace(q.Text),
		ApprovedOnly:      true,
		Limit:             s.cfg.MaxResults,
	})
	if err != nil {
		s.logger.Error("Provider search failed",
			zap.Float64("lat", q.Lat), zap.Float64("lng", q.Lng), zap.Int("radius_m", radius), zap.Error(err))
		return nil, models.ErrStoreUnavailable.Wrap(err)
	}

	results := make([]models.ProviderSummary, 0, len(providers))
	for _, p := range providers {
		// The index may use a slightly different earth model; re-check with ours.
		d, err := geo.DistanceKm(q.Lat, q.Lng, p.Location.Lat(), p.Location.Lng())
		if err != nil {
			s.logger.Warn("Skipping provider with invalid location", zap.String("provider_id", p.ID), zap.Error(err))
			continue
		}
		if !p.Approved || !geo.WithinRadius(d, radius) {
			continue
		}
		results = append(results, models.NewProviderSummary(p, geo.DisplayKm(d)))
	}

	s.logger.Debug("Nearby providers found",
		zap.Float64("lat", q.Lat), zap.Float64("lng", q.Lng),
		zap.Int("radius_m", radius), zap.Int("count", len(results)))
	return results, nil
}
