package handlers

import (
	"context"
	"encoding/json"
	"math"
	"net/http"

	"servicehub/models"
	"servicehub/services/review"

	"github.com/gin-gonic/gin"
)

// ReviewService is what the review handler needs from review.Aggregator.
type ReviewService interface {
	AddReview(ctx context.Context, principal models.Principal, in review.AddInput) (*models.Review, error)
	ListForProvider(ctx context.Context, providerID string) ([]models.Review, error)
}

type ReviewHandler struct {
	Service ReviewService
}

func NewReviewHandler(svc ReviewService) *ReviewHandler {
	return &ReviewHandler{Service: svc}
}

// AddReviewHandler handles POST /reviews.
func (h *ReviewHandler) AddReviewHandler(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	// Rating is decoded as a number literal so fractional values surface
	// as InvalidRating instead of a decode failure. 4.0 is accepted as 4.
	var input struct {
		ProviderID string      `json:"providerId"`
		Rating     json.Number `json:"rating"`
		Comment    string      `json:"comment"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err)
		return
	}
	rating, err := parseRating(input.Rating)
	if err != nil {
		respondError(c, err)
		return
	}

	r, err := h.Service.AddReview(c.Request.Context(), p, review.AddInput{
		ProviderID: input.ProviderID,
		Rating:     rating,
		Comment:    input.Comment,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// parseRating accepts any whole number in the rating range, whatever its
// JSON spelling.
func parseRating(n json.Number) (int, error) {
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || f < models.MinRating || f > models.MaxRating {
		return 0, models.ErrInvalidRating.WithField("rating")
	}
	return int(f), nil
}

// ProviderReviewsHandler handles GET /reviews/:providerId.
func (h *ReviewHandler) ProviderReviewsHandler(c *gin.Context) {
	reviews, err := h.Service.ListForProvider(c.Request.Context(), c.Param("providerId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews, "count": len(reviews)})
}
