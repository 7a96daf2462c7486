package booking

import (
	"context"

	"servicehub/models"
)

// CreateInput is a booking request. Timeslot is an RFC 3339 timestamp.
type CreateInput struct {
	ProviderID  string `json:"providerId"`
	Category    string `json:"category"`
	SubCategory string `json:"subCategory,omitempty"`
	Timeslot    string `json:"timeslot"`
	Address     string `json:"address"`
	Notes       string `json:"notes,omitempty"`
}

// BookingService drives a booking through pending → confirmed → completed,
// or pending → cancelled.
type BookingService interface {
	Create(ctx context.Context, principal models.Principal, in CreateInput) (*models.Booking, error)
	PayVisitCharge(ctx context.Context, bookingID string, principal models.Principal) (*models.Booking, error)
	Complete(ctx context.Context, bookingID string, principal models.Principal) (*models.Booking, error)
	Cancel(ctx context.Context, bookingID string, principal models.Principal) (*models.Booking, error)
	ListForUser(ctx context.Context, principal models.Principal) ([]models.Booking, error)
}
