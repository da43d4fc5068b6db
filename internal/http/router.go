package http

import (
	"log/slog"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	attachmentsHTTP "github.com/jamesandrewmyers/memento/internal/attachments/http"
	cryptoHTTP "github.com/jamesandrewmyers/memento/internal/crypto/http"
	exportHTTP "github.com/jamesandrewmyers/memento/internal/export/http"
	notesHTTP "github.com/jamesandrewmyers/memento/internal/notes/http"
)

// RouterConfig carries the HTTP-facing parts of the application configuration.
type RouterConfig struct {
	CORSEnabled            bool
	CORSAllowOrigins       string
	RateLimitExportEnabled bool
	RateLimitExportRPS     float64
	RateLimitExportBurst   int
}

// Handlers groups the per-domain HTTP handlers mounted on the router.
type Handlers struct {
	Note       *notesHTTP.NoteHandler
	Attachment *attachmentsHTTP.AttachmentHandler
	Export     *exportHTTP.ExportHandler
	Identity   *cryptoHTTP.IdentityHandler
}

// NewRouter builds the Gin engine with middleware and all API routes.
// The done channel flips the readiness endpoint once shutdown begins.
func NewRouter(cfg RouterConfig, handlers Handlers, logger *slog.Logger, done <-chan struct{}) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New())
	router.Use(CustomLoggerMiddleware(logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", HealthHandler())
	router.GET("/ready", ReadinessHandler(done))

	v1 := router.Group("/v1")
	{
		v1.POST("/notes", handlers.Note.CreateHandler)
		v1.GET("/notes/:id", handlers.Note.GetHandler)
		v1.PUT("/notes/:id", handlers.Note.UpdateHandler)

		v1.POST("/notes/:id/attachments", handlers.Attachment.CreateHandler)
		v1.GET("/notes/:id/attachments", handlers.Attachment.ListHandler)
		v1.GET("/attachments/:id", handlers.Attachment.GetHandler)

		exports := v1.Group("/notes/:id/exports")
		if cfg.RateLimitExportEnabled {
			exports.Use(ExportRateLimitMiddleware(cfg.RateLimitExportRPS, cfg.RateLimitExportBurst, logger))
		}
		exports.POST("", handlers.Export.CreateHandler)

		v1.GET("/identity/public-key", handlers.Identity.PublicKeyHandler)
	}

	return router
}
