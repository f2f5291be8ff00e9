package monitoring

import (
	"context"
	"net/http"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type Metrics struct {
	mu            sync.RWMutex
	RequestCount  int64            `json:"request_count"`
	ErrorCount    int64            `json:"error_count"`
	StatusCodes   map[string]int64 `json:"status_codes"`
	Endpoints     map[string]int64 `json:"endpoint_calls"`
	StartTime     time.Time        `json:"start_time"`
	LastRequest   time.Time        `json:"last_request"`
	totalDuration time.Duration
}

var globalMetrics = &Metrics{
	StatusCodes: make(map[string]int64),
	Endpoints:   make(map[string]int64),
	StartTime:   time.Now(),
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		globalMetrics.mu.Lock()
		globalMetrics.RequestCount++
		globalMetrics.totalDuration += duration
		globalMetrics.LastRequest = time.Now()
		globalMetrics.StatusCodes[strconv.Itoa(c.Writer.Status())]++
		globalMetrics.Endpoints[c.Request.Method+" "+c.FullPath()]++
		if c.Writer.Status() >= 500 {
			globalMetrics.ErrorCount++
		}
		globalMetrics.mu.Unlock()
	}
}

func MetricsHandler(c *gin.Context) {
	globalMetrics.mu.RLock()
	defer globalMetrics.mu.RUnlock()

	var avgDuration time.Duration
	if globalMetrics.RequestCount > 0 {
		avgDuration = globalMetrics.totalDuration / time.Duration(globalMetrics.RequestCount)
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	c.JSON(http.StatusOK, gin.H{
		"request_count":    globalMetrics.RequestCount,
		"error_count":      globalMetrics.ErrorCount,
		"avg_request_ms":   avgDuration.Milliseconds(),
		"status_codes":     globalMetrics.StatusCodes,
		"endpoint_calls":   globalMetrics.Endpoints,
		"uptime_seconds":   int64(time.Since(globalMetrics.StartTime).Seconds()),
		"goroutines":       runtime.NumGoroutine(),
		"heap_alloc_bytes": memStats.HeapAlloc,
		"last_request":     globalMetrics.LastRequest,
	})
}

// HealthCheckFunc probes one dependency.
type HealthCheckFunc func(ctx context.Context) error

// HealthHandler runs the given checks with a short timeout and reports 503
// when any dependency is down.
func HealthHandler(checks map[string]HealthCheckFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		results := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				results[name] = "down: " + err.Error()
				status = http.StatusServiceUnavailable
			} else {
				results[name] = "ok"
			}
		}

		c.JSON(status, gin.H{
			"status": http.StatusText(status),
			"checks": results,
		})
	}
}
