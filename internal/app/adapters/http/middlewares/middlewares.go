package middlewares

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"net/http"
	"time"
)

type Middlewares struct {
	limiter *rate.Limiter
}

// New builds the shared middlewares. requests == 0 disables rate limiting.
func New(requests int, per time.Duration) *Middlewares {
	m := &Middlewares{}
	if requests > 0 && per > 0 {
		m.limiter = rate.NewLimiter(rate.Every(per/time.Duration(requests)), requests)
	}
	return m
}

func (m *Middlewares) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.limiter != nil && !m.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
