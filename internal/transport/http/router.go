// Package http exposes the services over HTTP/JSON.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/AstroPolly/LyfeStylerWebApp-main/internal/metrics"
)

// AuthService is everything the auth routes need.
type AuthService interface {
	Registerer
	EmailVerifier
	LoginService
	Authenticator
}

// RouterConfig wires services and middleware settings into the router.
type RouterConfig struct {
	Auth          AuthService
	Events        EventService
	Ready         Pinger
	CORSOrigins   []string
	AuthRateLimit int
	Logger        zerolog.Logger
}

// NewRouter builds the HTTP handler tree.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(Recoverer)
	r.Use(RequestID)
	r.Use(CORS(cfg.CORSOrigins))
	r.Use(metrics.HTTP())
	r.Use(RequestLogger(cfg.Logger))

	r.NotFound(NotFoundHandler().ServeHTTP)
	r.MethodNotAllowed(MethodNotAllowedHandler().ServeHTTP)

	r.Get("/health", HealthHandler)
	if cfg.Ready != nil {
		r.Get("/ready", HandleReady(cfg.Ready))
	}
	r.Handle("/metrics", metrics.Handler())

	r.Group(func(r chi.Router) {
		if cfg.AuthRateLimit > 0 {
			r.Use(AuthRateLimit(cfg.AuthRateLimit))
		}
		r.Post("/register", HandleRegister(cfg.Auth))
		r.Post("/verify", HandleVerify(cfg.Auth))
		r.Post("/token", HandleToken(cfg.Auth))
	})

	r.Group(func(r chi.Router) {
		r.Use(RequireAuth(cfg.Auth))

		r.Get("/me", HandleMe())
		r.Route("/events", func(r chi.Router) {
			r.Post("/", HandleCreateEvent(cfg.Events))
			r.Get("/", HandleListEvents(cfg.Events))
			r.Get("/stats", HandleStats(cfg.Events))
			r.Get("/calendar.ics", HandleCalendarICS(cfg.Events))
			r.Get("/occurrences", HandleOccurrences(cfg.Events))

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", HandleGetEvent(cfg.Events))
				r.Put("/", HandleUpdateEvent(cfg.Events))
				r.Delete("/", HandleDeleteEvent(cfg.Events))
				r.Post("/start", HandleStartTimer(cfg.Events))
				r.Post("/stop", HandleStopTimer(cfg.Events))
			})
		})
	})

	return r
}
