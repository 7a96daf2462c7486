package routes

import (
	"time"

	"servicehub/handlers"
	"servicehub/middleware"
	"servicehub/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoute registers the health-check endpoint.
func RegisterHealthRoute(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api.GET("/health", hb.HealthHandler)
}

// RegisterProviderRoutes registers discovery, onboarding and approval endpoints.
func RegisterProviderRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	providers := api.Group("/providers")
	{
		providers.GET("/nearby", hb.NearbyProvidersHandler)

		protected := providers.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.JWTSecret))
		protected.POST("/request", middleware.RequireRole(models.RoleUser), hb.RequestProviderHandler)

		admin := protected.Group("")
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		admin.GET("/pending", hb.PendingProvidersHandler)
		admin.PUT("/:providerId/request", hb.SetApprovalHandler)
	}
}

// RegisterBookingRoutes registers the booking lifecycle endpoints.
func RegisterBookingRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	bookings := api.Group("/bookings")
	{
		bookings.Use(middleware.JWTAuthMiddleware(hb.JWTSecret))
		bookings.POST("", hb.CreateBookingHandler)
		bookings.GET("/my-bookings", hb.MyBookingsHandler)
		bookings.POST("/:bookingId/pay-visit-charge", hb.PayVisitChargeHandler)
		bookings.PUT("/:bookingId/complete", hb.CompleteBookingHandler)
		bookings.PUT("/:bookingId/cancel", hb.CancelBookingHandler)
	}
}

// RegisterReviewRoutes registers review endpoints. Listing is public.
func RegisterReviewRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	reviews := api.Group("/reviews")
	{
		reviews.GET("/:providerId", hb.ProviderReviewsHandler)
		reviews.POST("", middleware.JWTAuthMiddleware(hb.JWTSecret), hb.AddReviewHandler)
	}
}

// RegisterRoutes centralizes registration of all endpoints under /api/v1.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api/v1")
	RegisterHealthRoute(api, hb)
	RegisterProviderRoutes(api, hb)
	RegisterBookingRoutes(api, hb)
	RegisterReviewRoutes(api, hb)
}
