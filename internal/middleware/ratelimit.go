package middleware

import (
	"net/http"
	"sync"
	"time"

	"project-tracker/internal/config"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware applies a per-client-IP token bucket. Idle buckets are
// swept on the request path once per cleanup interval, so the map does not
// grow without bound and no background goroutine is needed.
func RateLimitMiddleware(cfg config.RateLimitConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}

	var mu sync.Mutex
	clients := make(map[string]*clientLimiter)
	perSecond := rate.Limit(float64(cfg.RequestsPerMin) / 60.0)
	lastSweep := time.Now()

	return func(c *gin.Context) {
		ip := c.ClientIP()

		mu.Lock()
		if time.Since(lastSweep) > cfg.CleanupEvery {
			for addr, client := range clients {
				if time.Since(client.lastSeen) > cfg.CleanupEvery {
					delete(clients, addr)
				}
			}
			lastSweep = time.Now()
		}

		client, exists := clients[ip]
		if !exists {
			client = &clientLimiter{limiter: rate.NewLimiter(perSecond, cfg.BurstSize)}
			clients[ip] = client
		}
		client.lastSeen = time.Now()
		mu.Unlock()

		if !client.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   "rate_limited",
				"message": "Too many requests, slow down",
			})
			return
		}
		c.Next()
	}
}
