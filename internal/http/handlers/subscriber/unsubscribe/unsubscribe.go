// Package unsubscribe реализует HTTP-обработчик отписки от рассылки.
package unsubscribe

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
	"github.com/magabrotheeeer/oforha-backend/internal/services/subscriber"
)

// Request описывает тело запроса отписки.
type Request struct {
	Email string `json:"email" validate:"required,email" example:"alice@example.com"`
}

// Service описывает бизнес-логику отписки.
type Service interface {
	Unsubscribe(ctx context.Context, email string) error
}

// Handler обрабатывает запросы отписки.
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
// @Summary Отписка от рассылки
// @Tags Subscribers
// @Accept json
// @Produce json
// @Param request body unsubscribe.Request true "Адрес"
// @Success 200 {object} response.Response "Отписка выполнена"
// @Failure 400 {object} response.ErrorResponse "Некорректные данные"
// @Failure 404 {object} response.ErrorResponse "Подписчик не найден"
// @Router /subscribers/unsubscribe [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscriber.unsubscribe"
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

	err := h.service.Unsubscribe(r.Context(), req.Email)
	if errors.Is(err, subscriber.ErrSubscriberNotFound) {
		response.JSON(w, r, http.StatusNotFound, response.Error("Subscriber not found"))
		return
	}
	if err != nil {
		log.Error("failed to unsubscribe", sl.Err(err))
		response.JSON(w, r, http.StatusInternalServerError, response.Error("Internal server error"))
		return
	}

	response.JSON(w, r, http.StatusOK, response.OK("Unsubscribed successfully", nil))
}
