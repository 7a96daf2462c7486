package models

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// MaxNotesLength bounds Booking.Notes.
const MaxNotesLength = 500

// Booking is a scheduled service engagement between a user and a provider.
type Booking struct {
	ID                        string        `bson:"id" json:"id"`
	UserID                    string        `bson:"userId" json:"userId"`
	ProviderID                string        `bson:"providerId" json:"providerId"`
	Category                  string        `bson:"category" json:"category"`
	SubCategory               string        `bson:"subCategory,omitempty" json:"subCategory,omitempty"`
	Timeslot                  time.Time     `bson:"timeslot" json:"timeslot"`
	Address                   string        `bson:"address" json:"address"`
	Notes                     string        `bson:"notes,omitempty" json:"notes,omitempty"`
	VisitChargePaid           bool          `bson:"visitChargePaid" json:"visitChargePaid"`
	VisitChargeTransactionID  string        `bson:"visitChargeTransactionId,omitempty" json:"visitChargeTransactionId,omitempty"`
	FinalPaymentPaid          bool          `bson:"finalPaymentPaid" json:"finalPaymentPaid"`
	FinalPaymentTransactionID string        `bson:"finalPaymentTransactionId,omitempty" json:"finalPaymentTransactionId,omitempty"`
	Status                    BookingStatus `bson:"status" json:"status"`
	CompletedAt               *time.Time    `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	CancelledAt               *time.Time    `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
	CreatedAt                 time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt                 time.Time     `bson:"updatedAt" json:"updatedAt"`
}
