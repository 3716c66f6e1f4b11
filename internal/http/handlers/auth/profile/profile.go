// Package profile реализует HTTP-обработчик профиля текущей учётной записи.
package profile

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/oforha-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/oforha-backend/internal/http/response"
	"github.com/magabrotheeeer/oforha-backend/internal/lib/sl"
	"github.com/magabrotheeeer/oforha-backend/internal/models"
	"github.com/magabrotheeeer/oforha-backend/internal/services/auth"
)

// Service описывает получение профиля.
type Service interface {
	Profile(ctx context.Context, accountID string) (models.AccountView, error)
}

// Handler обрабатывает запросы профиля.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создаёт Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Профиль
// @Description Возвращает профиль владельца токена.
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response "Профиль пользователя"
// @Failure 401 {object} response.ErrorResponse "Нет токена или токен недействителен"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Router /auth/profile [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.profile"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	claims, ok := middlewarectx.ClaimsFromContext(r.Context())
	if !ok {
		log.Error("claims not found in context")
		response.JSON(w, r, http.StatusUnauthorized, response.Error("Token is missing"))
		return
	}

	view, err := h.service.Profile(r.Context(), claims.UserID)
	if errors.Is(err, auth.ErrAccountNotFound) {
		response.JSON(w, r, http.StatusNotFound, response.Error("User not found"))
		return
	}
	if err != nil {
		log.Error("failed to load profile", sl.Err(err))
		response.JSON(w, r, http.StatusInternalServerError, response.Error("Internal server error"))
		return
	}

	response.JSON(w, r, http.StatusOK, response.OK("", map[string]any{
		"user": view,
	}))
}
