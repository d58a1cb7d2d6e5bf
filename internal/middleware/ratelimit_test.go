package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/opsdesk/caseflow_app/internal/middleware"
)

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rate, err := limiter.NewRateFromFormatted("2-M")
	require.NoError(t, err)
	ipLimiter := limiter.New(memory.NewStore(), rate)

	r := gin.New()
	r.POST("/login", middleware.RateLimit(ipLimiter), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	doRequest := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "203.0.113.7:51000"
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, doRequest().Code)
	assert.Equal(t, http.StatusOK, doRequest().Code)

	w := doRequest()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Too many requests")
}
