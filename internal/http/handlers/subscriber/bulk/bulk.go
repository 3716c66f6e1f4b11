// Package bulk реализует HTTP-обработчик массовой подписки.
package bulk

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/oforha-backend/internal/http/request"
	"github.com/magabrotheeeer/oforha-backend/internal/http/response"
	"github.com/magabrotheeeer/oforha-backend/internal/lib/sl"
	"github.com/magabrotheeeer/oforha-backend/internal/lib/validate"
)

// Request описывает тело запроса массовой подписки.
type Request struct {
	Emails []string `json:"emails" example:"alice@example.com,bob@example.com"`
}

// InvalidEmailsResponse — ответ 400 со списком некорректных адресов.
type InvalidEmailsResponse struct {
	Status        string   `json:"status" example:"Error"`
	Error         string   `json:"error" example:"Invalid email format(s)"`
	InvalidEmails []string `json:"invalid_emails"`
}

// Service описывает массовую подписку.
type Service interface {
	BulkSubscribe(ctx context.Context, emails []string) (int, error)
}

// Handler обрабатывает запросы массовой подписки.
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
// @Summary Массовая подписка
// @Description Подписывает список адресов. Уже активные адреса пропускаются.
// @Tags Subscribers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body bulk.Request true "Список адресов"
// @Success 200 {object} response.Response "Число подписанных адресов"
// @Failure 400 {object} bulk.InvalidEmailsResponse "Пустой список или некорректные адреса"
// @Failure 401 {object} response.ErrorResponse "Нет токена или токен недействителен"
// @Router /subscribers/bulk-subscribe [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscriber.bulk"
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
	if len(req.Emails) == 0 {
		response.JSON(w, r, http.StatusBadRequest, response.Error("List of emails is required"))
		return
	}

	var invalid []string
	for _, email := range req.Emails {
		if !validate.Email(h.validate, email) {
			invalid = append(invalid, email)
		}
	}
	if len(invalid) > 0 {
		response.JSON(w, r, http.StatusBadRequest, InvalidEmailsResponse{
			Status:        response.StatusError,
			Error:         "Invalid email format(s)",
			InvalidEmails: invalid,
		})
		return
	}

	count, err := h.service.BulkSubscribe(r.Context(), req.Emails)
	if err != nil {
		log.Error("failed to bulk subscribe", sl.Err(err), slog.Int("subscribed", count))
		response.JSON(w, r, http.StatusInternalServerError, response.Error("Internal server error"))
		return
	}

	log.Info("bulk subscribe finished", slog.Int("count", count), slog.Int("requested", len(req.Emails)))
	response.JSON(w, r, http.StatusOK, response.OK(fmt.Sprintf("Successfully subscribed %d users", count), map[string]any{
		"count": count,
	}))
}
