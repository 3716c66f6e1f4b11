// Package listing реализует HTTP-обработчики постраничной выдачи форм:
// по типу формы и по владельцу токена.
package listing

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/oforha-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/oforha-backend/internal/http/request"
	"github.com/magabrotheeeer/oforha-backend/internal/http/response"
	"github.com/magabrotheeeer/oforha-backend/internal/lib/sl"
	"github.com/magabrotheeeer/oforha-backend/internal/models"
	"github.com/magabrotheeeer/oforha-backend/internal/services/form"
)

// Service описывает выборку форм.
type Service interface {
	ListByType(ctx context.Context, formType string, page, perPage int) (form.Page, error)
	ListMine(ctx context.Context, userID string, page, perPage int) (form.Page, error)
}

// ByTypeHandler отдаёт формы одного типа.
type ByTypeHandler struct {
	log     *slog.Logger
	service Service
}

// NewByType создаёт ByTypeHandler.
func NewByType(log *slog.Logger, service Service) *ByTypeHandler {
	return &ByTypeHandler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Формы по типу
// @Tags Forms
// @Produce json
// @Security BearerAuth
// @Param form_type path string true "contact, feedback или support"
// @Param page query int false "Номер страницы" default(1)
// @Param per_page query int false "Размер страницы (1-100)" default(10)
// @Success 200 {object} response.Response "Страница форм"
// @Failure 400 {object} response.ErrorResponse "Неизвестный тип или некорректные параметры"
// @Failure 401 {object} response.ErrorResponse "Нет токена или токен недействителен"
// @Router /forms/forms/{form_type} [get]
func (h *ByTypeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.form.listing.ByType"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	page, perPage, err := request.Page(r)
	if err != nil {
		response.JSON(w, r, http.StatusBadRequest, response.Error(err.Error()))
		return
	}

	result, err := h.service.ListByType(r.Context(), chi.URLParam(r, "form_type"), page, perPage)
	if errors.Is(err, form.ErrInvalidFormType) {
		response.JSON(w, r, http.StatusBadRequest, response.Error(form.InvalidFormTypeMessage()))
		return
	}
	if err != nil {
		log.Error("failed to list forms", sl.Err(err))
		response.JSON(w, r, http.StatusInternalServerError, response.Error("Internal server error"))
		return
	}

	writePage(w, r, result, page, perPage)
}

// MineHandler отдаёт формы владельца токена.
type MineHandler struct {
	log     *slog.Logger
	service Service
}

// NewMine создаёт MineHandler.
func NewMine(log *slog.Logger, service Service) *MineHandler {
	return &MineHandler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Мои формы
// @Tags Forms
// @Produce json
// @Security BearerAuth
// @Param page query int false "Номер страницы" default(1)
// @Param per_page query int false "Размер страницы (1-100)" default(10)
// @Success 200 {object} response.Response "Страница форм"
// @Failure 400 {object} response.ErrorResponse "Некорректные параметры"
// @Failure 401 {object} response.ErrorResponse "Нет токена или токен недействителен"
// @Router /forms/my-forms [get]
func (h *MineHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.form.listing.Mine"
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

	page, perPage, err := request.Page(r)
	if err != nil {
		response.JSON(w, r, http.StatusBadRequest, response.Error(err.Error()))
		return
	}

	result, err := h.service.ListMine(r.Context(), claims.UserID, page, perPage)
	if err != nil {
		log.Error("failed to list forms", sl.Err(err))
		response.JSON(w, r, http.StatusInternalServerError, response.Error("Internal server error"))
		return
	}

	writePage(w, r, result, page, perPage)
}

func writePage(w http.ResponseWriter, r *http.Request, result form.Page, page, perPage int) {
	views := make([]models.FormView, 0, len(result.Forms))
	for _, f := range result.Forms {
		views = append(views, f.View())
	}
	response.JSON(w, r, http.StatusOK, response.OK("", map[string]any{
		"forms":    views,
		"total":    result.Total,
		"page":     page,
		"per_page": perPage,
	}))
}
