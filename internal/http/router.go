package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"designforge/internal/http/handlers"
	"designforge/internal/middleware"
)

// RouterOptions tunes the middleware stack.
type RouterOptions struct {
	Logger          zerolog.Logger
	RateLimitPerMin int
	// StaticDir, when set, is served under /static for filesystem-backed
	// asset storage.
	StaticDir string
}

func NewRouter(app *handlers.App, opts RouterOptions) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, chimiddleware.RealIP, chimiddleware.Recoverer)
	r.Use(middleware.Logger(opts.Logger))
	if opts.RateLimitPerMin > 0 {
		r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))
	}

	r.Get("/v1/healthz", app.Health)

	r.Route("/v1/sessions", func(r chi.Router) {
		r.Post("/", app.SessionCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", app.SessionGet)
			r.Post("/messages", app.SessionMessage)
			r.Post("/generate", app.Generate)
			r.Delete("/images/{imageID}", app.PoolImageDelete)
		})
	})

	r.Post("/v1/render", app.RenderDocument)

	if opts.StaticDir != "" {
		r.Handle("/static/*", stdhttp.StripPrefix("/static/", stdhttp.FileServer(stdhttp.Dir(opts.StaticDir))))
	}

	return r
}
