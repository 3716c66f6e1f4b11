package middlewarectx

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/oforha-backend/internal/http/response"
	"github.com/magabrotheeeer/oforha-backend/internal/lib/sl"
	"github.com/magabrotheeeer/oforha-backend/internal/ratelimit"
)

// RejectionCounter учитывает отказы лимитера.
type RejectionCounter interface {
	RateLimited(name, rule string)
}

// clientKey — адрес сокета клиента. Заголовки X-Forwarded-For и X-Real-IP
// не учитываются: их задаёт сам клиент.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimit ограничивает частоту запросов с одного IP. Ошибка лимитера
// логируется, а запрос пропускается.
func RateLimit(name string, limiter ratelimit.Limiter, counter RejectionCounter, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RateLimit"

			d, err := limiter.Allow(r.Context(), clientKey(r))
			if err != nil {
				log.Error("rate limiter unavailable, request allowed",
					slog.String("op", op),
					slog.String("limiter", name),
					slog.String("request_id", middleware.GetReqID(r.Context())),
					sl.Err(err),
				)
				next.ServeHTTP(w, r)
				return
			}

			if d.Rule.Limit > 0 {
				w.Header().Set("X-RateLimit-Limit", strconv.Itoa(d.Rule.Limit))
				w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
			}
			if d.Allowed {
				next.ServeHTTP(w, r)
				return
			}

			retryAfter := d.RetryAfterSeconds()
			counter.RateLimited(name, d.Rule.String())
			log.Info("rate limit exceeded",
				slog.String("op", op),
				slog.String("limiter", name),
				slog.String("rule", d.Rule.String()),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			response.JSON(w, r, http.StatusTooManyRequests, response.RateLimited(d.Rule.String(), retryAfter, d.Rule.Limit))
		})
	}
}
