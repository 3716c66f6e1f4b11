// Package login реализует HTTP-обработчик входа по почте и паролю.
package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/oforha-backend/internal/http/request"
	"github.com/magabrotheeeer/oforha-backend/internal/http/response"
	"github.com/magabrotheeeer/oforha-backend/internal/lib/sl"
	"github.com/magabrotheeeer/oforha-backend/internal/lib/validate"
	"github.com/magabrotheeeer/oforha-backend/internal/models"
	"github.com/magabrotheeeer/oforha-backend/internal/services/auth"
)

// Request описывает тело запроса входа.
type Request struct {
	Email    string `json:"email" validate:"required,email" example:"alice@example.com"`
	Password string `json:"password" validate:"required" example:"secret1"`
}

// Service описывает бизнес-логику входа.
type Service interface {
	Login(ctx context.Context, email, password string) (*models.Account, string, error)
}

// Handler обрабатывает запросы входа.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создаёт Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validate.New(),
	}
}

// ServeHTTP godoc
// @Summary Вход
// @Description Проверяет пароль и возвращает токен доступа.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body login.Request true "Почта и пароль"
// @Success 200 {object} response.Response "Успешный вход"
// @Failure 400 {object} response.ErrorResponse "Некорректные данные"
// @Failure 401 {object} response.ErrorResponse "Неверный пароль"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /auth/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if resp, err := request.Decode(r, &req, h.validate); err != nil {
		log.Info("invalid request", sl.Err(err))
		response.JSON(w, r, http.StatusBadRequest, resp)
		return
	}

	account, token, err := h.service.Login(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, auth.ErrAccountNotFound):
		response.JSON(w, r, http.StatusNotFound, response.Error("User not found"))
		return
	case errors.Is(err, auth.ErrInvalidPassword):
		log.Info("invalid password")
		response.JSON(w, r, http.StatusUnauthorized, response.Error("Invalid password"))
		return
	case err != nil:
		log.Error("failed to login", sl.Err(err))
		response.JSON(w, r, http.StatusInternalServerError, response.Error("Internal server error"))
		return
	}

	log.Info("login successful", slog.String("account_id", account.ID))
	response.JSON(w, r, http.StatusOK, response.OK("Login successful", map[string]any{
		"token": token,
		"user":  account.View(),
	}))
}
