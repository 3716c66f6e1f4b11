// Package list реализует HTTP-обработчик постраничного списка подписчиков.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/oforha-backend/internal/http/request"
	"github.com/magabrotheeeer/oforha-backend/internal/http/response"
	"github.com/magabrotheeeer/oforha-backend/internal/lib/sl"
	"github.com/magabrotheeeer/oforha-backend/internal/models"
	"github.com/magabrotheeeer/oforha-backend/internal/services/subscriber"
)

// Service описывает выборку подписчиков.
type Service interface {
	List(ctx context.Context, status models.SubscriberStatus, page, perPage int) (subscriber.Page, error)
}

// Handler обрабатывает запросы списка подписчиков.
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
// @Summary Список подписчиков
// @Description Возвращает подписчиков с указанным статусом, новые первыми.
// @Tags Subscribers
// @Produce json
// @Security BearerAuth
// @Param status query string false "active, unsubscribed или bounced" default(active)
// @Param page query int false "Номер страницы" default(1)
// @Param per_page query int false "Размер страницы (1-100)" default(10)
// @Success 200 {object} response.Response "Страница подписчиков"
// @Failure 400 {object} response.ErrorResponse "Некорректные параметры"
// @Failure 401 {object} response.ErrorResponse "Нет токена или токен недействителен"
// @Router /subscribers/subscribers [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscriber.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	status := models.StatusActive
	if raw := r.URL.Query().Get("status"); raw != "" {
		status = models.SubscriberStatus(raw)
	}
	if !status.Valid() {
		response.JSON(w, r, http.StatusBadRequest, response.Error("Invalid status. Must be one of: active, unsubscribed, bounced"))
		return
	}

	page, perPage, err := request.Page(r)
	if err != nil {
		response.JSON(w, r, http.StatusBadRequest, response.Error(err.Error()))
		return
	}

	result, err := h.service.List(r.Context(), status, page, perPage)
	if err != nil {
		log.Error("failed to list subscribers", sl.Err(err))
		response.JSON(w, r, http.StatusInternalServerError, response.Error("Internal server error"))
		return
	}

	views := make([]models.SubscriberView, 0, len(result.Subscribers))
	for _, sub := range result.Subscribers {
		views = append(views, sub.View())
	}
	response.JSON(w, r, http.StatusOK, response.OK("", map[string]any{
		"subscribers": views,
		"total":       result.Total,
		"page":        page,
		"per_page":    perPage,
	}))
}
