package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"servicehub/models"
	"servicehub/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const secret = "middleware-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(t *testing.T, handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(RequestLogger(zaptest.NewLogger(t)))
	r.GET("/", append(handlers, func(c *gin.Context) {
		p, _ := GetPrincipal(c)
		c.JSON(http.StatusOK, gin.H{"userId": p.UserID})
	})...)
	return r
}

func bearer(t *testing.T, sub string, role models.Role) string {
	token, err := utils.GenerateToken(sub, role, secret, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestJWTAuthMiddleware(t *testing.T) {
	r := newRouter(t, JWTAuthMiddleware(secret))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", bearer(t, "u1", models.RoleUser))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userId":"u1"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestRequireRole(t *testing.T) {
	r := newRouter(t, JWTAuthMiddleware(secret), RequireRole(models.RoleAdmin))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", bearer(t, "u1", models.RoleUser))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", bearer(t, "a1", models.RoleAdmin))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoleWithoutAuth(t *testing.T) {
	r := newRouter(t, RequireRole(models.RoleAdmin))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	r := newRouter(t, RateLimitMiddleware(2))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// a different client has its own bucket
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Real-IP", "198.51.100.1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetClientIPIgnoresGarbageHeaders(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = "192.0.2.10:5555"
	c.Request.Header.Set("X-Forwarded-For", "not-an-ip")

	assert.Equal(t, "192.0.2.10", getClientIP(c))
}
