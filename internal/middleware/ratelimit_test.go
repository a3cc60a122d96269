package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/transaction_records_app/internal/dto"
	"github.com/SscSPs/transaction_records_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimitedRouter(t *testing.T, rate string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	limiterInstance, err := middleware.NewRateLimiter(rate)
	require.NoError(t, err)

	r := gin.New()
	r.Use(middleware.RateLimit(limiterInstance))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func get(r *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit_RejectsOverLimit(t *testing.T) {
	r := newLimitedRouter(t, "1-S")

	first := get(r, "10.0.0.1:1234")
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", first.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, first.Header().Get("X-RateLimit-Reset"))

	second := get(r, "10.0.0.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, second.Code)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &body))
	assert.Equal(t, dto.StatusError, body.Status)
	assert.Equal(t, "Too many requests. Please try again later.", body.Message)
}

func TestRateLimit_CountsPerClientIP(t *testing.T) {
	r := newLimitedRouter(t, "1-M")

	assert.Equal(t, http.StatusOK, get(r, "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusOK, get(r, "10.0.0.2:1234").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(r, "10.0.0.1:5678").Code)
}

func TestNewRateLimiter_InvalidFormat(t *testing.T) {
	for _, rate := range []string{"", "abc", "10-X", "-M"} {
		_, err := middleware.NewRateLimiter(rate)
		assert.Error(t, err, "rate %q", rate)
	}
}
