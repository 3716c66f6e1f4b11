// Package submit реализует HTTP-обработчик отправки формы.
package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/oforha-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/oforha-backend/internal/http/request"
	"github.com/magabrotheeeer/oforha-backend/internal/http/response"
	"github.com/magabrotheeeer/oforha-backend/internal/lib/sl"
	"github.com/magabrotheeeer/oforha-backend/internal/lib/validate"
	"github.com/magabrotheeeer/oforha-backend/internal/models"
	"github.com/magabrotheeeer/oforha-backend/internal/services/form"
)

// Request описывает тело отправки формы. Набор полей data зависит от form_type.
type Request struct {
	FormType string          `json:"form_type" example:"contact"`
	Data     json.RawMessage `json:"data" swaggertype:"object"`
}

// Service описывает приём форм.
type Service interface {
	Submit(ctx context.Context, formType string, data json.RawMessage, userID string) (*models.Form, error)
}

// Handler обрабатывает отправку форм.
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
// @Summary Отправка формы
// @Description Сохраняет форму. Действительный токен привязывает форму к учётной записи.
// @Tags Forms
// @Accept json
// @Produce json
// @Param request body submit.Request true "Тип формы и данные"
// @Success 201 {object} response.Response "Форма сохранена"
// @Failure 400 {object} response.ErrorResponse "Некорректная форма"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /forms/submit [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.form.submit"
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
	if bytes.Equal(bytes.TrimSpace(req.Data), []byte("null")) {
		req.Data = nil
	}

	var userID string
	if claims, ok := middlewarectx.ClaimsFromContext(r.Context()); ok {
		userID = claims.UserID
	}

	f, err := h.service.Submit(r.Context(), req.FormType, req.Data, userID)
	var verr *form.ValidationError
	if errors.As(err, &verr) {
		log.Info("form rejected", slog.String("reason", verr.Message))
		response.JSON(w, r, http.StatusBadRequest, response.Error(verr.Message))
		return
	}
	if err != nil {
		log.Error("failed to submit form", sl.Err(err))
		response.JSON(w, r, http.StatusInternalServerError, response.Error("Internal server error"))
		return
	}

	log.Info("form submitted", slog.String("form_id", f.ID), slog.String("form_type", string(f.FormType)))
	response.JSON(w, r, http.StatusCreated, response.OK("Form submitted successfully", map[string]any{
		"form_id": f.ID,
	}))
}
