// Package http provides the HTTP server, router, and middleware for the vault API.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	"github.com/jamesandrewmyers/memento/internal/httputil"
)

// CustomLoggerMiddleware logs HTTP requests with slog, including the request
// id assigned by the requestid middleware.
func CustomLoggerMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.Info("http request",
			slog.String("request_id", requestid.Get(c)),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.String("client_ip", c.ClientIP()),
		)
	}
}

// HealthHandler returns a simple health check handler.
func HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		httputil.MakeJSONResponse(c.Writer, http.StatusOK, map[string]string{"status": "healthy"})
	}
}

// ReadinessHandler returns a readiness check handler that reports not ready
// once the application context is cancelled (shutdown in progress).
func ReadinessHandler(done <-chan struct{}) gin.HandlerFunc {
	return func(c *gin.Context) {
		select {
		case <-done:
			httputil.MakeJSONResponse(
				c.Writer,
				http.StatusServiceUnavailable,
				map[string]string{"status": "not ready"},
			)
		default:
			httputil.MakeJSONResponse(c.Writer, http.StatusOK, map[string]string{"status": "ready"})
		}
	}
}
