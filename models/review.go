package models

import "time"

const (
	MinRating        = 1
	MaxRating        = 5
	MaxCommentLength = 500
)

// Review is immutable once created; at most one exists per (ProviderID, UserID).
type Review struct {
	ID         string    `bson:"id" json:"id"`
	ProviderID string    `bson:"providerId" json:"providerId"`
	UserID     string    `bson:"userId" json:"userId"`
	Rating     int       `bson:"rating" json:"rating"`
	Comment    string    `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}
