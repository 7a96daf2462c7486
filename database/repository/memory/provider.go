package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"servicehub/database"
	providerRepo "servicehub/database/repository/provider"
	"servicehub/models"
	"servicehub/services/geo"
)

// ProviderRepo implements providerRepo.ProviderRepository in memory.
type ProviderRepo struct {
	s *Store
}

var _ providerRepo.ProviderRepository = (*ProviderRepo)(nil)

func (r *ProviderRepo) Create(ctx context.Context, provider *models.Provider) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.providers[provider.ID]; ok {
		return fmt.Errorf("provider %s: %w", provider.ID, database.ErrDuplicate)
	}
	if _, ok := r.s.owners[provider.UserID]; ok {
		return fmt.Errorf("provider for user %s: %w", provider.UserID, database.ErrDuplicate)
	}
	r.s.providers[provider.ID] = cloneProvider(provider)
	r.s.owners[provider.UserID] = provider.ID
	r.s.insertedAt(provider.ID)
	return nil
}

func (r *ProviderRepo) GetByID(ctx context.Context, id string) (*models.Provider, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.providers[id]
	if !ok {
		return nil, fmt.Errorf("provider with id %s: %w", id, database.ErrNotFound)
	}
	return cloneProvider(p), nil
}

type scored struct {
	p    *models.Provider
	dist float64
}

func (r *ProviderRepo) FindNear(ctx context.Context, q providerRepo.NearQuery) ([]models.Provider, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := geo.ValidateCoordinates(q.Lat, q.Lng); err != nil {
		return nil, fmt.Errorf("invalid search origin: %w", err)
	}
	text := strings.ToLower(q.Text)

	r.s.mu.RLock()
	var hits []scored
	for _, p := range r.s.providers {
		if q.ApprovedOnly && !p.Approved {
			continue
		}
		if q.Category != "" && !p.HasCategory(q.Category) {
			continue
		}
		if text != "" && !matchesText(p, text) {
			continue
		}
		d, err := geo.DistanceKm(q.Lat, q.Lng, p.Location.Lat(), p.Location.Lng())
		if err != nil || !geo.WithinRadius(d, q.MaxDistanceMeters) {
			continue
		}
		hits = append(hits, scored{p: cloneProvider(p), dist: d})
	}
	order := r.s.order
	sort.Slice(hits, func(i, j int) bool {
		if math.Abs(hits[i].dist-hits[j].dist) > 1e-12 {
			return hits[i].dist < hits[j].dist
		}
		return order[hits[i].p.ID] < order[hits[j].p.ID]
	})
	r.s.mu.RUnlock()

	if q.Limit > 0 && len(hits) > q.Limit {
		hits = hits[:q.Limit]
	}
	providers := make([]models.Provider, 0, len(hits))
	for _, h := range hits {
		providers = append(providers, *h.p)
	}
	return providers, nil
}

func matchesText(p *models.Provider, text string) bool {
	fields := append([]string{p.BusinessName, p.Details, p.Address}, p.Categories...)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), text) {
			return true
		}
	}
	return false
}

func (r *ProviderRepo) ListByApproval(ctx context.Context, approved bool) ([]models.Provider, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	providers := []models.Provider{}
	for _, p := range r.s.providers {
		if p.Approved == approved {
			providers = append(providers, *cloneProvider(p))
		}
	}
	sort.Slice(providers, func(i, j int) bool {
		return r.s.order[providers[i].ID] < r.s.order[providers[j].ID]
	})
	return providers, nil
}

func (r *ProviderRepo) SetApproved(ctx context.Context, id string, approved bool) (*models.Provider, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.providers[id]
	if !ok {
		return nil, fmt.Errorf("provider with id %s: %w", id, database.ErrNotFound)
	}
	p.Approved = approved
	p.UpdatedAt = time.Now().UTC()
	return cloneProvider(p), nil
}
