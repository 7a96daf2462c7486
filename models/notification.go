package models

import "time"

// Event types published to the notification queue.
const (
	EventBookingCreated   = "booking:created"
	EventBookingConfirmed = "booking:confirmed"
	EventBookingCompleted = "booking:completed"
	EventBookingCancelled = "booking:cancelled"
	EventReviewAdded      = "review:added"
)

// DomainEvent is the payload consumed by the notification collaborator.
type DomainEvent struct {
	Type          string            `json:"type"`
	UserID        string            `json:"userId"`
	ProviderID    string            `json:"providerId"`
	BookingID     string            `json:"bookingId,omitempty"`
	ReviewID      string            `json:"reviewId,omitempty"`
	Status        BookingStatus     `json:"status,omitempty"`
	TransactionID string            `json:"transactionId,omitempty"`
	Data          map[string]string `json:"data,omitempty"`
	OccurredAt    time.Time         `json:"occurredAt"`
}

// NewBookingEvent builds an event describing the booking's current state.
func NewBookingEvent(eventType string, b *Booking) DomainEvent {
	return DomainEvent{
		Type:          eventType,
		UserID:        b.UserID,
		ProviderID:    b.ProviderID,
		BookingID:     b.ID,
		Status:        b.Status,
		TransactionID: b.VisitChargeTransactionID,
		OccurredAt:    b.UpdatedAt,
	}
}
