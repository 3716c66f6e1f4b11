package middlewarectx

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/oforha-backend/internal/http/response"
)

// Recoverer перехватывает панику обработчика и отвечает 500 без подробностей.
func Recoverer(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Error("panic recovered",
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.String("panic", fmt.Sprint(rec)),
					slog.String("stack", string(debug.Stack())),
				)
				response.JSON(w, r, http.StatusInternalServerError, response.Error("Internal server error"))
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// NotFound отвечает JSON-ошибкой на неизвестный маршрут.
func NotFound(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusNotFound, response.Error("Resource not found"))
}

// MethodNotAllowed отвечает JSON-ошибкой на неподдерживаемый метод.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusMethodNotAllowed, response.Error("Method not allowed"))
}
