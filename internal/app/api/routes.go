package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/oforha-backend/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/oforha-backend/internal/http/handlers/auth/profile"
	"github.com/magabrotheeeer/oforha-backend/internal/http/handlers/auth/signup"
	"github.com/magabrotheeeer/oforha-backend/internal/http/handlers/form/listing"
	"github.com/magabrotheeeer/oforha-backend/internal/http/handlers/form/submit"
	"github.com/magabrotheeeer/oforha-backend/internal/http/handlers/health"
	"github.com/magabrotheeeer/oforha-backend/internal/http/handlers/subscriber/bulk"
	"github.com/magabrotheeeer/oforha-backend/internal/http/handlers/subscriber/list"
	"github.com/magabrotheeeer/oforha-backend/internal/http/handlers/subscriber/subscribe"
	"github.com/magabrotheeeer/oforha-backend/internal/http/handlers/subscriber/unsubscribe"
	"github.com/magabrotheeeer/oforha-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/oforha-backend/internal/metrics"
	"github.com/magabrotheeeer/oforha-backend/internal/ratelimit"
)

// AuthService — всё, что маршрутам нужно от сервиса учётных записей.
type AuthService interface {
	signup.Service
	login.Service
	profile.Service
	middlewarectx.TokenVerifier
}

// SubscriberService — всё, что маршрутам нужно от сервиса рассылки.
type SubscriberService interface {
	subscribe.Service
	unsubscribe.Service
	list.Service
	bulk.Service
}

// FormService — всё, что маршрутам нужно от сервиса форм.
type FormService interface {
	submit.Service
	listing.Service
}

// Deps — зависимости маршрутизатора. Nil-лимитер отключает ограничение для своей группы.
type Deps struct {
	Log            *slog.Logger
	Auth           AuthService
	Subscribers    SubscriberService
	Forms          FormService
	Metrics        *metrics.Metrics
	APILimiter     ratelimit.Limiter
	HealthLimiter  ratelimit.Limiter
	AllowedOrigins []string
}

// NewRouter регистрирует все маршруты приложения.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	log := d.Log

	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		d.Metrics.Middleware,
		middleware.Logger,
		middlewarectx.Recoverer(log),
		cors.Handler(cors.Options{
			AllowedOrigins: d.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
			ExposedHeaders: []string{"Retry-After", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
			MaxAge:         300,
		}),
	)
	r.NotFound(middlewarectx.NotFound)
	r.MethodNotAllowed(middlewarectx.MethodNotAllowed)

	requireAuth := middlewarectx.RequireAuth(d.Auth, log)

	r.Route("/api", func(r chi.Router) {
		if d.APILimiter != nil {
			r.Use(middlewarectx.RateLimit("api", d.APILimiter, d.Metrics, log))
		}

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", signup.New(log, d.Auth).ServeHTTP)
			r.Post("/login", login.New(log, d.Auth).ServeHTTP)
			r.With(requireAuth).Get("/profile", profile.New(log, d.Auth).ServeHTTP)
		})

		r.Route("/subscribers", func(r chi.Router) {
			r.Post("/subscribe", subscribe.New(log, d.Subscribers).ServeHTTP)
			r.Post("/unsubscribe", unsubscribe.New(log, d.Subscribers).ServeHTTP)

			// Группа с JWT аутентификацией
			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Get("/subscribers", list.New(log, d.Subscribers).ServeHTTP)
				r.Post("/bulk-subscribe", bulk.New(log, d.Subscribers).ServeHTTP)
			})
		})

		r.Route("/forms", func(r chi.Router) {
			r.With(middlewarectx.OptionalAuth(d.Auth)).Post("/submit", submit.New(log, d.Forms).ServeHTTP)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Get("/forms/{form_type}", listing.NewByType(log, d.Forms).ServeHTTP)
				r.Get("/my-forms", listing.NewMine(log, d.Forms).ServeHTTP)
			})
		})
	})

	healthRoute := r.With()
	if d.HealthLimiter != nil {
		healthRoute = r.With(middlewarectx.RateLimit("health", d.HealthLimiter, d.Metrics, log))
	}
	healthRoute.Get("/health", health.New(log).ServeHTTP)

	r.Handle("/metrics", d.Metrics.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)

	return r
}
