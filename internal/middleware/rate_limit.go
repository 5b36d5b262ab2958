package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"go-portal/internal/shared/apperror"
	"go-portal/internal/shared/response"
)

// keyedLimiter menyimpan satu token bucket per key (IP atau user ID).
type keyedLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	r        rate.Limit // request per detik
	b        int        // burst
}

func newKeyedLimiter(r rate.Limit, b int) *keyedLimiter {
	return &keyedLimiter{
		limiters: make(map[string]*rate.Limiter),
		r:        r,
		b:        b,
	}
}

func (k *keyedLimiter) get(key string) *rate.Limiter {
	k.mu.Lock()
	defer k.mu.Unlock()

	limiter, ok := k.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(k.r, k.b)
		k.limiters[key] = limiter
	}
	return limiter
}

func rejectTooMany(c *gin.Context, message string) {
	response.Error(c, http.StatusTooManyRequests, apperror.CodeTooManyRequests, message, nil)
	c.Abort()
}

// RateLimitByIP membatasi request per alamat IP. Dipakai di endpoint publik
// yang tidak punya identitas user.
func RateLimitByIP(r rate.Limit, b int) gin.HandlerFunc {
	limiter := newKeyedLimiter(r, b)
	return func(c *gin.Context) {
		if !limiter.get(c.ClientIP()).Allow() {
			rejectTooMany(c, "Too many requests from this IP")
			return
		}
		c.Next()
	}
}

// RateLimitByUser membatasi request per user ID. Request tanpa user_id
// (belum login) diteruskan, biar auth middleware yang menolak.
func RateLimitByUser(r rate.Limit, b int) gin.HandlerFunc {
	limiter := newKeyedLimiter(r, b)
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.Next()
			return
		}
		if !limiter.get(userID).Allow() {
			rejectTooMany(c, "Too many requests, slow down")
			return
		}
		c.Next()
	}
}
