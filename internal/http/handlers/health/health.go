// Package health реализует HTTP-обработчик проверки живости процесса.
package health

import (
	"log/slog"
	"net/http"

	"github.com/magabrotheeeer/oforha-backend/internal/http/response"
)

// Response — тело ответа /health.
type Response struct {
	Status string `json:"status" example:"healthy"`
}

// Handler отвечает на /health.
type Handler struct {
	log *slog.Logger
}

// New создаёт Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{
		log: log,
	}
}

// ServeHTTP всегда отвечает 200: маршрут проверяет только то, что процесс принимает запросы.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, Response{Status: "healthy"})
}
