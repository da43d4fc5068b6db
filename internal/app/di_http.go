package app

import (
	"fmt"
	"sync"

	attachmentsHTTP "github.com/jamesandrewmyers/memento/internal/attachments/http"
	cryptoHTTP "github.com/jamesandrewmyers/memento/internal/crypto/http"
	exportHTTP "github.com/jamesandrewmyers/memento/internal/export/http"
	"github.com/jamesandrewmyers/memento/internal/http"
	notesHTTP "github.com/jamesandrewmyers/memento/internal/notes/http"
)

// serverComponents groups the HTTP-facing dependencies.
type serverComponents struct {
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	httpServerInit    sync.Once
	metricsServerInit sync.Once
}

// HTTPServer returns the API server instance, assembling the router and all
// domain handlers on first access.
func (c *Container) HTTPServer() (*http.Server, error) {
	c.servers.httpServerInit.Do(func() {
		server, err := c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
			return
		}
		c.servers.httpServer = server
	})
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.servers.httpServer, nil
}

// MetricsServer returns the metrics server instance, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	c.servers.metricsServerInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["metricsServer"] = fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
			return
		}
		if provider == nil {
			return
		}
		c.servers.metricsServer = http.NewMetricsServer(
			c.config.ServerHost,
			c.config.MetricsPort,
			c.Logger(),
			provider,
		)
	})
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.servers.metricsServer, nil
}

// initHTTPServer creates the HTTP server with all its dependencies.
func (c *Container) initHTTPServer() (*http.Server, error) {
	logger := c.Logger()

	noteUseCase, err := c.NoteUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get note use case for http server: %w", err)
	}

	attachmentUseCase, err := c.AttachmentUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get attachment use case for http server: %w", err)
	}

	worker, err := c.ExportWorker()
	if err != nil {
		return nil, fmt.Errorf("failed to get export worker for http server: %w", err)
	}

	keyManager, err := c.KeyManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get key manager for http server: %w", err)
	}

	handlers := http.Handlers{
		Note:       notesHTTP.NewNoteHandler(noteUseCase, logger),
		Attachment: attachmentsHTTP.NewAttachmentHandler(attachmentUseCase, logger),
		Export:     exportHTTP.NewExportHandler(worker, logger),
		Identity:   cryptoHTTP.NewIdentityHandler(keyManager, logger),
	}

	routerConfig := http.RouterConfig{
		CORSEnabled:            c.config.CORSEnabled,
		CORSAllowOrigins:       c.config.CORSAllowOrigins,
		RateLimitExportEnabled: c.config.RateLimitExportEnabled,
		RateLimitExportRPS:     c.config.RateLimitExportRequestsPerSec,
		RateLimitExportBurst:   c.config.RateLimitExportBurst,
	}

	router := http.NewRouter(routerConfig, handlers, logger, c.shutdownCh)

	return http.NewServer(
		c.config.ServerHost,
		c.config.ServerPort,
		logger,
		router,
	), nil
}
