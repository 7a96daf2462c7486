// Package memory is an in-process implementation of the provider, booking and
// review repositories. All three share one mutex so the review insert and the
// provider aggregate update happen atomically.
package memory

import (
	"context"
	"sync"

	"servicehub/models"
)

type Store struct {
	mu         sync.RWMutex
	providers  map[string]*models.Provider
	bookings   map[string]*models.Booking
	reviews    map[string]*models.Review
	reviewKeys map[string]struct{} // providerID + "/" + userID
	owners     map[string]string   // userID -> providerID
	seq        int64               // insertion order for stable sorting
	order      map[string]int64
}

func New() *Store {
	return &Store{
		providers:  make(map[string]*models.Provider),
		bookings:   make(map[string]*models.Booking),
		reviews:    make(map[string]*models.Review),
		reviewKeys: make(map[string]struct{}),
		owners:     make(map[string]string),
		order:      make(map[string]int64),
	}
}

func (s *Store) Providers() *ProviderRepo { return &ProviderRepo{s: s} }

func (s *Store) Bookings() *BookingRepo { return &BookingRepo{s: s} }

func (s *Store) Reviews() *ReviewRepo { return &ReviewRepo{s: s} }

// Ping always succeeds; it lets the store take part in health checks.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// insertedAt records id's insertion rank. Callers hold s.mu.
func (s *Store) insertedAt(id string) {
	s.seq++
	s.order[id] = s.seq
}

func cloneProvider(p *models.Provider) *models.Provider {
	c := *p
	c.Categories = append([]string(nil), p.Categories...)
	c.Location.Coordinates = append([]float64(nil), p.Location.Coordinates...)
	return &c
}

func cloneBooking(b *models.Booking) *models.Booking {
	c := *b
	if b.CompletedAt != nil {
		t := *b.CompletedAt
		c.CompletedAt = &t
	}
	if b.CancelledAt != nil {
		t := *b.CancelledAt
		c.CancelledAt = &t
	}
	return &c
}
