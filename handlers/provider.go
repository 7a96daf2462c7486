package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"servicehub/models"
	"servicehub/services/discovery"
	"servicehub/services/provider"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Finder is the discovery operation the provider handler depends on.
type Finder interface {
	FindNearby(ctx context.Context, q discovery.NearbyQuery) ([]models.ProviderSummary, error)
}

// ProviderHandler serves discovery and provider onboarding.
type ProviderHandler struct {
	Discovery       Finder
	ProviderService provider.ProviderService
}

func NewProviderHandler(finder Finder, ps provider.ProviderService) *ProviderHandler {
	return &ProviderHandler{Discovery: finder, ProviderService: ps}
}

// NearbyProvidersHandler handles GET /providers/nearby.
func (h *ProviderHandler) NearbyProvidersHandler(c *gin.Context) {
	q, err := parseNearbyQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}

	providers, err := h.Discovery.FindNearby(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"providers": providers, "count": len(providers)})
}

func parseNearbyQuery(c *gin.Context) (discovery.NearbyQuery, error) {
	var q discovery.NearbyQuery

	lat, err := strconv.ParseFloat(strings.TrimSpace(c.Query("lat")), 64)
	if err != nil {
		return q, models.ErrInvalidCoordinates.WithField("lat")
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(c.Query("lng")), 64)
	if err != nil {
		return q, models.ErrInvalidCoordinates.WithField("lng")
	}
	q.Lat, q.Lng = lat, lng

	if raw, ok := c.GetQuery("radiusMeters"); ok {
		radius, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || radius <= 0 {
			return q, models.ErrInvalidRadius.WithField("radiusMeters")
		}
		q.RadiusMeters = radius
	}
	q.Category = c.Query("category")
	q.Text = c.Query("search")
	return q, nil
}

// RequestProviderHandler handles POST /providers/request.
func (h *ProviderHandler) RequestProviderHandler(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var input provider.RequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err)
		return
	}

	created, err := h.ProviderService.Request(c.Request.Context(), p, input)
	if err != nil {
		respondError(c, err)
		return
	}
	getLogger(c).Info("Provider request submitted", zap.String("provider_id", created.ID))
	c.JSON(http.StatusCreated, created)
}
