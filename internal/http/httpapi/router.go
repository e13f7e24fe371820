package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"fastcountdown/internal/http/handlers"
	"fastcountdown/internal/middleware"
)

// Options carries the request pipeline settings.
type Options struct {
	ConfirmSecret   string
	AllowedOrigins  []string
	DefaultLocale   string
	RateLimitPerMin int
	Clock           clockwork.Clock
	Logger          zerolog.Logger
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(opts.Logger),
		middleware.CORS(opts.AllowedOrigins),
		middleware.Locale(opts.DefaultLocale),
	)
	if opts.RateLimitPerMin > 0 {
		r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute, opts.Clock))
	}

	// Health
	r.Get("/v1/healthz", app.Health)
	r.Get("/v1/openapi.json", app.OpenAPIJSON)
	r.Get("/v1/docs", app.OpenAPIDocs)

	r.Get("/v1/fast-end", app.FastEnd)
	r.Get("/v1/leaderboard", app.LeaderboardList)

	// Paths polled by the original countdown page.
	r.Get("/fast-end", app.FastEnd)
	r.Get("/leaderboard", app.LegacyLeaderboard)

	r.Route("/v1/donations", func(r chi.Router) {
		r.Use(middleware.AuthService(opts.ConfirmSecret))
		r.Post("/confirmed", app.DonationsConfirm)
	})

	return r
}
