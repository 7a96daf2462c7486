package handlers

import (
	"net/http"

	"servicehub/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last snapshot taken by the health monitor.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if status.Status == "degraded" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}
