package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func serve(h gin.HandlerFunc, header string) int {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", h, func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestAuth(t *testing.T) {
	m := New(0, 0)

	tests := []struct {
		name     string
		expected string
		header   string
		want     int
	}{
		{name: "valid token", expected: "secret", header: "Bearer secret", want: http.StatusOK},
		{name: "wrong token", expected: "secret", header: "Bearer nope", want: http.StatusUnauthorized},
		{name: "no header", expected: "secret", want: http.StatusUnauthorized},
		{name: "basic scheme", expected: "secret", header: "Basic secret", want: http.StatusUnauthorized},
		{name: "open when unset", expected: "", want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, serve(m.Auth(tt.expected), tt.header))
		})
	}
}

func TestRateLimit(t *testing.T) {
	m := New(2, time.Hour)
	h := m.RateLimit()

	assert.Equal(t, http.StatusOK, serve(h, ""))
	assert.Equal(t, http.StatusOK, serve(h, ""))
	assert.Equal(t, http.StatusTooManyRequests, serve(h, ""))

	unlimited := New(0, 0).RateLimit()
	for range 5 {
		assert.Equal(t, http.StatusOK, serve(unlimited, ""))
	}
}
