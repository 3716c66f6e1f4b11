// Package middlewarectx содержит HTTP middleware сервиса: проверку токена доступа,
// ограничение частоты запросов и JSON-ответы для паник и неизвестных маршрутов.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/oforha-backend/internal/http/response"
	"github.com/magabrotheeeer/oforha-backend/internal/lib/jwt"
	"github.com/magabrotheeeer/oforha-backend/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// Claims — ключ для данных токена в контексте.
const Claims Key = "claims"

// TokenVerifier проверяет токен доступа.
type TokenVerifier interface {
	VerifyToken(token string) (*jwt.CustomClaims, error)
}

// ClaimsFromContext возвращает данные токена, положенные RequireAuth или OptionalAuth.
func ClaimsFromContext(ctx context.Context) (*jwt.CustomClaims, bool) {
	claims, ok := ctx.Value(Claims).(*jwt.CustomClaims)
	return claims, ok && claims != nil
}

// bearerToken достаёт токен из заголовка Authorization. Префикс "Bearer " необязателен.
func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}

// RequireAuth пропускает запрос только с действительным токеном и кладёт его данные в контекст.
func RequireAuth(verifier TokenVerifier, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RequireAuth"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			token := bearerToken(r)
			if token == "" {
				log.Info("missing token")
				response.JSON(w, r, http.StatusUnauthorized, response.Error("Token is missing"))
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				log.Info("invalid or expired token", sl.Err(err))
				response.JSON(w, r, http.StatusUnauthorized, response.Error("Invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), Claims, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth кладёт в контекст данные действительного токена. Отсутствующий
// или недействительный токен не мешает запросу.
func OptionalAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := bearerToken(r); token != "" {
				if claims, err := verifier.VerifyToken(token); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), Claims, claims))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
