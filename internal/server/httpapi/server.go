// Package httpapi is the fiber transport for the file store: routing, token
// and Basic authentication, error rendering, request logging and metrics.
package httpapi

import (
	"context"
	"sort"
	"time"

	"github.com/dmitrijs2005/filekeeper/internal/logging"
	"github.com/gofiber/fiber/v2"
)

// Middleware is a fiber handler with an ordering priority. Higher priorities
// run first.
type Middleware struct {
	Priority int
	Handler  fiber.Handler
}

type byPriority []Middleware

func (b byPriority) Len() int           { return len(b) }
func (b byPriority) Swap(i, j int)      { b[i], b[j] = b[j], b[i] }
func (b byPriority) Less(i, j int) bool { return b[i].Priority > b[j].Priority }

func applyMiddlewares(app *fiber.App, middlewares []Middleware) {
	sort.Stable(byPriority(middlewares))
	for _, mw := range middlewares {
		if mw.Handler == nil {
			continue
		}
		app.Use(mw.Handler)
	}
}

// Options configures an HTTPServer.
type Options struct {
	Address         string
	BodyLimit       int
	ShutdownTimeout time.Duration
}

type HTTPServer struct {
	opts   Options
	app    *fiber.App
	logger logging.Logger
}

// NewHTTPServer builds the fiber app, applies middlewares in priority order
// and registers routes through register.
func NewHTTPServer(opts Options, logger logging.Logger, middlewares []Middleware, register func(r fiber.Router)) *HTTPServer {
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}

	app := fiber.New(fiber.Config{
		BodyLimit:             opts.BodyLimit,
		ErrorHandler:          errorHandler(logger),
		DisableStartupMessage: true,
		Immutable:             true,
	})

	applyMiddlewares(app, middlewares)
	register(app)

	return &HTTPServer{opts: opts, app: app, logger: logger.With("module", "http_server")}
}

// App exposes the fiber app, mainly for app.Test in tests.
func (s *HTTPServer) App() *fiber.App {
	return s.app
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.opts.Address)
		errCh <- s.app.Listen(s.opts.Address)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info(ctx, "Stopping HTTP server...")
		if err := s.app.ShutdownWithTimeout(s.opts.ShutdownTimeout); err != nil {
			return err
		}
		return <-errCh
	}
}
