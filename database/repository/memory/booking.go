package memory

import (
	"context"
	"fmt"
	"sort"

	"servicehub/database"
	bookingRepo "servicehub/database/repository/booking"
	"servicehub/models"
)

// BookingRepo implements bookingRepo.BookingRepository in memory.
type BookingRepo struct {
	s *Store
}

var _ bookingRepo.BookingRepository = (*BookingRepo)(nil)

func (r *BookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.bookings[booking.ID]; ok {
		return fmt.Errorf("booking %s: %w", booking.ID, database.ErrDuplicate)
	}
	r.s.bookings[booking.ID] = cloneBooking(booking)
	r.s.insertedAt(booking.ID)
	return nil
}

func (r *BookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking with id %s: %w", id, database.ErrNotFound)
	}
	return cloneBooking(b), nil
}

func (r *BookingRepo) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	bookings := []models.Booking{}
	for _, b := range r.s.bookings {
		if b.UserID == userID {
			bookings = append(bookings, *cloneBooking(b))
		}
	}
	sort.Slice(bookings, func(i, j int) bool {
		if !bookings[i].CreatedAt.Equal(bookings[j].CreatedAt) {
			return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
		}
		return r.s.order[bookings[i].ID] > r.s.order[bookings[j].ID]
	})
	return bookings, nil
}

func (r *BookingRepo) Transition(ctx context.Context, id string, from models.BookingStatus, change bookingRepo.StatusChange) (*models.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking with id %s: %w", id, database.ErrNotFound)
	}
	if b.Status != from {
		return nil, fmt.Errorf("booking %s is no longer %s: %w", id, from, database.ErrStatusConflict)
	}
	change.Apply(b)
	return cloneBooking(b), nil
}
