package handlers

import (
	"net/http"

	"servicehub/middleware"
	"servicehub/models"
	"servicehub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const codeInvalidRequest = "InvalidRequest"

// statusFor maps a domain error to its HTTP status.
func statusFor(de *models.DomainError) int {
	switch de.Code {
	case models.ErrPaymentFailed.Code:
		return http.StatusPaymentRequired
	case models.ErrStoreUnavailable.Code:
		return http.StatusServiceUnavailable
	}
	switch de.Kind {
	case models.KindValidation:
		return http.StatusBadRequest
	case models.KindNotFound:
		return http.StatusNotFound
	case models.KindAuthorization:
		return http.StatusForbidden
	case models.KindConflict:
		return http.StatusConflict
	case models.KindUpstream:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// respondError writes err as an ErrorResponse. Anything that is not a
// DomainError is reported as an opaque 500.
func respondError(c *gin.Context, err error) {
	logger := getLogger(c)
	de, ok := models.AsDomainError(err)
	if !ok {
		logger.Error("Unexpected error", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, utils.ErrorResponse{
			Message: "Internal Server Error",
		})
		return
	}

	status := statusFor(de)
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", zap.String("code", de.Code), zap.Error(err))
	} else {
		logger.Debug("Request rejected", zap.String("code", de.Code), zap.Error(err))
	}
	c.AbortWithStatusJSON(status, utils.ErrorResponse{
		Code:    de.Code,
		Message: de.Message,
		Field:   de.Field,
		State:   string(de.State),
	})
}

// respondBadRequest reports a body that could not be decoded.
func respondBadRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, utils.ErrorResponse{
		Code:    codeInvalidRequest,
		Message: "invalid request body",
		Details: err.Error(),
	})
}

// principal returns the authenticated caller. Routes guarded by
// JWTAuthMiddleware always have one.
func principal(c *gin.Context) (models.Principal, bool) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: "authentication required"})
	}
	return p, ok
}
