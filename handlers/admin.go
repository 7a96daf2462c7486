package handlers

import (
	"net/http"

	"servicehub/services/provider"
	"servicehub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler encapsulates elevated admin-level operations.
type AdminHandler struct {
	ProviderService provider.ProviderService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(ps provider.ProviderService) *AdminHandler {
	return &AdminHandler{ProviderService: ps}
}

// PendingProvidersHandler returns providers awaiting approval.
func (ah *AdminHandler) PendingProvidersHandler(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	providers, err := ah.ProviderService.ListPending(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"providers": providers, "count": len(providers)})
}

// SetApprovalHandler approves or revokes a provider.
func (ah *AdminHandler) SetApprovalHandler(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var input struct {
		Approved *bool `json:"approved"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err)
		return
	}
	if input.Approved == nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, utils.ErrorResponse{
			Code:    codeInvalidRequest,
			Message: "approved is required",
			Field:   "approved",
		})
		return
	}

	providerID := c.Param("providerId")
	updated, err := ah.ProviderService.SetApproval(c.Request.Context(), p, providerID, *input.Approved)
	if err != nil {
		respondError(c, err)
		return
	}
	getLogger(c).Info("Provider approval changed",
		zap.String("provider_id", providerID),
		zap.Bool("approved", updated.Approved),
		zap.String("admin_id", p.UserID))
	c.JSON(http.StatusOK, updated)
}
