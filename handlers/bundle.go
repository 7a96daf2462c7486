package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the endpoint handlers registered under /api/v1.
type HandlerBundle struct {
	// JWT secret for the bearer-token middleware.
	JWTSecret string

	// Health
	HealthHandler gin.HandlerFunc

	// Provider endpoints
	NearbyProvidersHandler  gin.HandlerFunc
	RequestProviderHandler  gin.HandlerFunc
	PendingProvidersHandler gin.HandlerFunc
	SetApprovalHandler      gin.HandlerFunc

	// Booking endpoints
	CreateBookingHandler   gin.HandlerFunc
	PayVisitChargeHandler  gin.HandlerFunc
	CompleteBookingHandler gin.HandlerFunc
	CancelBookingHandler   gin.HandlerFunc
	MyBookingsHandler      gin.HandlerFunc

	// Review endpoints
	AddReviewHandler       gin.HandlerFunc
	ProviderReviewsHandler gin.HandlerFunc
}
