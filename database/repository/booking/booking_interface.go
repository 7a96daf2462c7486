package bookingRepo

import (
	"context"
	"time"

	"servicehub/models"
)

// StatusChange is a conditional status write. Fields beyond the status are
// derived from the target status.
type StatusChange struct {
	To models.BookingStatus
	At time.Time
	// VisitChargeTransactionID marks the visit charge paid when set.
	VisitChargeTransactionID string
}

// Apply mutates b as the store would.
func (c StatusChange) Apply(b *models.Booking) {
	at := c.At
	b.Status = c.To
	b.UpdatedAt = at
	if c.VisitChargeTransactionID != "" {
		b.VisitChargePaid = true
		b.VisitChargeTransactionID = c.VisitChargeTransactionID
	}
	switch c.To {
	case models.BookingStatusCompleted:
		b.CompletedAt = &at
	case models.BookingStatusCancelled:
		b.CancelledAt = &at
	}
}

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// ListByUser returns the user's bookings, newest first.
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
	// Transition applies change only if the booking is still in status from.
	// It fails with ErrStatusConflict otherwise and ErrNotFound for unknown ids.
	Transition(ctx context.Context, id string, from models.BookingStatus, change StatusChange) (*models.Booking, error)
}
