// Package subscribe реализует HTTP-обработчик подписки на рассылку.
package subscribe

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
	"github.com/magabrotheeeer/oforha-backend/internal/services/subscriber"
)

// Request описывает тело запроса подписки.
type Request struct {
	Email string `json:"email" validate:"required,email" example:"alice@example.com"`
	Name  string `json:"name,omitempty" validate:"max=100" example:"Alice"`
}

// Service описывает бизнес-логику подписки.
type Service interface {
	Subscribe(ctx context.Context, email, name string) (*models.Subscriber, subscriber.Outcome, error)
}

// Handler обрабатывает запросы подписки.
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
// @Summary Подписка на рассылку
// @Description Добавляет адрес в рассылку или возвращает в неё отписавшийся адрес.
// @Tags Subscribers
// @Accept json
// @Produce json
// @Param request body subscribe.Request true "Адрес и имя"
// @Success 200 {object} response.Response "Подписка возобновлена"
// @Success 201 {object} response.Response "Подписка оформлена"
// @Failure 400 {object} response.ErrorResponse "Некорректные данные или адрес уже подписан"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subscribers/subscribe [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscriber.subscribe"
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

	sub, outcome, err := h.service.Subscribe(r.Context(), req.Email, req.Name)
	if errors.Is(err, subscriber.ErrAlreadySubscribed) {
		response.JSON(w, r, http.StatusBadRequest, response.Error("Already subscribed"))
		return
	}
	if err != nil {
		log.Error("failed to subscribe", sl.Err(err))
		response.JSON(w, r, http.StatusInternalServerError, response.Error("Internal server error"))
		return
	}

	status, msg := http.StatusCreated, "Subscribed successfully"
	if outcome == subscriber.Reactivated {
		status, msg = http.StatusOK, "Resubscribed successfully"
	}
	log.Info(msg, slog.String("subscriber_id", sub.ID))
	response.JSON(w, r, status, response.OK(msg, map[string]any{
		"subscriber": sub.View(),
	}))
}
