package models

import (
	"time"
)

type Provider struct {
	ID           string    `bson:"id" json:"id"`
	UserID       string    `bson:"userId" json:"userId"` // owning user
	BusinessName string    `bson:"businessName" json:"businessName"`
	Categories   []string  `bson:"categories" json:"categories"`
	Address      string    `bson:"address" json:"address"`
	Location     GeoPoint  `bson:"location" json:"location"`
	Approved     bool      `bson:"approved" json:"approved"`
	VisitCharge  float64   `bson:"visitCharge" json:"visitCharge"`
	Details      string    `bson:"details" json:"details,omitempty"`
	Rating       float64   `bson:"rating" json:"rating"` // mean of review ratings, 0 without reviews
	ReviewCount  int       `bson:"reviewCount" json:"reviewCount"`
	RatingTotal  int       `bson:"ratingTotal" json:"-"` // sum of review ratings backing Rating
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// HasCategory reports whether category exactly matches one of the provider's categories.
func (p *Provider) HasCategory(category string) bool {
	for _, c := range p.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// ApplyRating folds one more review rating into the aggregate fields.
func (p *Provider) ApplyRating(rating int) {
	p.RatingTotal += rating
	p.ReviewCount++
	p.Rating = float64(p.RatingTotal) / float64(p.ReviewCount)
}

// ProviderSummary is the discovery view of an approved provider.
type ProviderSummary struct {
	ID           string   `json:"id"`
	UserID       string   `json:"userId"`
	BusinessName string   `json:"businessName"`
	Categories   []string `json:"categories"`
	Address      string   `json:"address"`
	Distance     float64  `json:"distance"` // kilometres
	VisitCharge  float64  `json:"visitCharge"`
	Details      string   `json:"details,omitempty"`
	Rating       float64  `json:"rating"`
	ReviewCount  int      `json:"reviewCount"`
	Location     GeoPoint `json:"location"`
}

// NewProviderSummary projects a provider with an already computed distance.
func NewProviderSummary(p Provider, distanceKm float64) ProviderSummary {
	return ProviderSummary{
		ID:           p.ID,
		UserID:       p.UserID,
		BusinessName: p.BusinessName,
		Categories:   p.Categories,
		Address:      p.Address,
		Distance:     distanceKm,
		VisitCharge:  p.VisitCharge,
		Details:      p.Details,
		Rating:       p.Rating,
		ReviewCount:  p.ReviewCount,
		Location:     p.Location,
	}
}
