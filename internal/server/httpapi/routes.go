package httpapi

import "github.com/gofiber/fiber/v2"

// RouteOptions carries the pieces of routing that depend on configuration.
type RouteOptions struct {
	LoginRatePerSecond float64
	LoginBurst         int
	Metrics            *Metrics
}

// Routes returns the register callback for NewHTTPServer.
func Routes(h *Handlers, resolver TokenResolver, opts RouteOptions) func(r fiber.Router) {
	return func(r fiber.Router) {
		auth := RequireToken(resolver)

		r.Get("/status", h.Status)
		r.Get("/stats", h.Stats)
		if opts.Metrics != nil {
			r.Get("/metrics", opts.Metrics.Handler())
		}

		r.Post("/users", h.PostUser)
		r.Get("/connect", NewLoginRateLimit(opts.LoginRatePerSecond, opts.LoginBurst), h.Connect)
		r.Get("/disconnect", auth, h.Disconnect)

		r.Post("/files", auth, h.PostFile)
		r.Get("/files", auth, h.ListFiles)
		r.Get("/files/:id/data", OptionalToken(resolver), h.GetData)
		r.Get("/files/:id", auth, h.GetFile)
		r.Put("/files/:id/publish", auth, h.Publish)
		r.Put("/files/:id/unpublish", auth, h.Unpublish)
	}
}
