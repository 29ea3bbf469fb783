package api

import (
	"math/rand"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	traceHeader      = "X-Trace-ID"
	loggerContextKey = "logger"
)

// RequestLogger tags every request with a trace id, taken from the
// X-Trace-ID header when it is a valid UUID, and logs its completion.
func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(traceHeader)
		if _, err := uuid.Parse(traceID); err != nil {
			traceID = uuid.New().String()
		}

		entry := logger.WithField("trace_id", traceID)
		c.Set(loggerContextKey, entry)
		c.Header(traceHeader, traceID)

		start := time.Now()
		c.Next()

		entry.WithFields(logrus.Fields{
			"http_method": c.Request.Method,
			"http_path":   c.Request.URL.Path,
			"query":       c.Request.URL.RawQuery,
			"status_code": c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
			"remote_addr": c.ClientIP(),
		}).Info("Request finished")
	}
}

// CORS allows read-only cross-origin access. A single "*" origin allows any origin.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", traceHeader},
		ExposeHeaders: []string{traceHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(allowedOrigins) == 0 || (len(allowedOrigins) == 1 && allowedOrigins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowedOrigins
	}
	return cors.New(cfg)
}

// ResponseDelay holds each request for a random duration in
// [minDelay, maxDelay] before handling it, to mimic a slow backing store.
// The wait ends early when the client goes away.
func ResponseDelay(minDelay, maxDelay time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		delay := minDelay
		if maxDelay > minDelay {
			delay += time.Duration(rand.Int63n(int64(maxDelay - minDelay + 1)))
		}
		if delay <= 0 {
			c.Next()
			return
		}

		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-timer.C:
			c.Next()
		case <-c.Request.Context().Done():
			c.Abort()
		}
	}
}
