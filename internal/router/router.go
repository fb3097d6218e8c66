package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"

	"github.com/careervisualizer/backend/internal/auth"
	"github.com/careervisualizer/backend/internal/health"
	"github.com/careervisualizer/backend/internal/middleware"
	"github.com/careervisualizer/backend/internal/record"
	"github.com/careervisualizer/backend/internal/transcribe"
)

type Deps struct {
	Log                zerolog.Logger
	AllowedOrigins     []string
	RateLimitPerMinute int

	Auth       *auth.Handler
	Record     *record.Handler
	Transcribe *transcribe.Handler
	Health     *health.Status
}

func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(middleware.Recoverer(d.Log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	if d.RateLimitPerMinute > 0 {
		r.Use(httprate.LimitByIP(d.RateLimitPerMinute, time.Minute))
	}

	r.Get("/health", d.Health.Handler())

	r.Post("/login", d.Auth.Login)
	r.Post("/record", d.Record.Record)
	r.Post("/transcribe", d.Transcribe.Transcribe)

	return r
}
