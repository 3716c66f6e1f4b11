// Package signup реализует HTTP-обработчик регистрации учётной записи.
//
// Handler принимает имя пользователя, почту и пароль, создаёт учётную запись
// и сразу возвращает токен доступа вместе с публичным представлением пользователя.
package signup

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

// Request описывает тело запроса регистрации.
type Request struct {
	Username string `json:"username" validate:"required,max=50" example:"alice"`
	Email    string `json:"email" validate:"required,email" example:"alice@example.com"`
	Password string `json:"password" validate:"required,min=6" example:"secret1"`
}

// Service описывает бизнес-логику регистрации.
type Service interface {
	Signup(ctx context.Context, username, email, password string) (*models.Account, string, error)
}

// Handler обрабатывает запросы регистрации.
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
// @Summary Регистрация
// @Description Создаёт учётную запись и возвращает токен доступа.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body signup.Request true "Данные учётной записи"
// @Success 201 {object} response.Response "Учётная запись создана"
// @Failure 400 {object} response.ErrorResponse "Некорректные данные, почта или имя заняты"
// @Failure 429 {object} response.RateLimitResponse "Превышен лимит запросов"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /auth/signup [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.signup"
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

	account, token, err := h.service.Signup(r.Context(), req.Username, req.Email, req.Password)
	switch {
	case errors.Is(err, auth.ErrEmailTaken):
		log.Info("email already registered")
		response.JSON(w, r, http.StatusBadRequest, response.Error("Email already registered"))
		return
	case errors.Is(err, auth.ErrUsernameTaken):
		log.Info("username already taken")
		response.JSON(w, r, http.StatusBadRequest, response.Error("Username already taken"))
		return
	case err != nil:
		log.Error("failed to create account", sl.Err(err))
		response.JSON(w, r, http.StatusInternalServerError, response.Error("Error creating user"))
		return
	}

	log.Info("account created", slog.String("account_id", account.ID))
	response.JSON(w, r, http.StatusCreated, response.OK("User created successfully", map[string]any{
		"token": token,
		"user":  account.View(),
	}))
}
