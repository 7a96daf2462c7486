package notification

import (
	"context"
	"fmt"

	"servicehub/models"

	"go.uber.org/zap"
)

// LogNotificationService renders each event into a message and logs it.
// Push/email transports plug in behind NotificationService.
type LogNotificationService struct {
	logger *zap.Logger
}

func NewLogNotificationService(logger *zap.Logger) *LogNotificationService {
	return &LogNotificationService{logger: logger}
}

func (s *LogNotificationService) Deliver(ctx context.Context, event models.DomainEvent) error {
	title, body, err := Render(event)
	if err != nil {
		return err
	}
	s.logger.Info("Notification delivered",
		zap.String("event", event.Type),
		zap.String("user_id", event.UserID),
		zap.String("provider_id", event.ProviderID),
		zap.String("title", title),
		zap.String("body", body))
	return nil
}

// Render builds the user-facing title and body for event.
func Render(event models.DomainEvent) (title, body string, err error) {
	switch event.Type {
	case models.EventBookingCreated:
		return "Booking requested", fmt.Sprintf("Booking %s was created and awaits its visit charge.", event.BookingID), nil
	case models.EventBookingConfirmed:
		return "Booking confirmed", fmt.Sprintf("Visit charge paid for booking %s (transaction %s).", event.BookingID, event.TransactionID), nil
	case models.EventBookingCompleted:
		return "Booking completed", fmt.Sprintf("Booking %s is complete. Leave a review for your provider!", event.BookingID), nil
	case models.EventBookingCancelled:
		return "Booking cancelled", fmt.Sprintf("Booking %s was cancelled.", event.BookingID), nil
	case models.EventReviewAdded:
		return "New review", fmt.Sprintf("Provider %s received a %s-star review.", event.ProviderID, event.Data["rating"]), nil
	default:
		return "", "", fmt.Errorf("unknown event type %q", event.Type)
	}
}
