// Package form принимает отправки форм произвольного типа и выдаёт их списки.
// Для известных типов проверяется наличие обязательных полей в данных формы.
package form

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/magabrotheeeer/oforha-backend/internal/events"
	"github.com/magabrotheeeer/oforha-backend/internal/models"
	"github.com/magabrotheeeer/oforha-backend/internal/storage/repository"
)

// ErrInvalidFormType возвращается при выборке по неизвестному типу формы.
var ErrInvalidFormType = errors.New("invalid form type")

// InvalidFormTypeMessage — текст ошибки для клиента со списком известных типов.
func InvalidFormTypeMessage() string {
	names := make([]string, len(models.KnownFormTypes))
	for i, t := range models.KnownFormTypes {
		names[i] = string(t)
	}
	return "Invalid form type. Must be one of: " + strings.Join(names, ", ")
}

// ValidationError описывает отклонённую отправку. Message отдаётся клиенту как есть.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// Repository описывает хранилище форм.
type Repository interface {
	SaveForm(ctx context.Context, form *models.Form) error
	ListForms(ctx context.Context, filter repository.FormFilter, page, perPage int) ([]*models.Form, error)
	CountForms(ctx context.Context, filter repository.FormFilter) (int64, error)
}

// Service принимает и выдаёт формы.
type Service struct {
	log    *slog.Logger
	forms  Repository
	events events.Publisher
}

// New создаёт сервис форм.
func New(log *slog.Logger, forms Repository, publisher events.Publisher) *Service {
	return &Service{
		log:    log,
		forms:  forms,
		events: publisher,
	}
}

// Submit проверяет и сохраняет форму. data — исходный JSON поля data запроса,
// пустой срез означает, что поле отсутствовало. Пустой userID — анонимная отправка.
func (s *Service) Submit(ctx context.Context, formType string, data json.RawMessage, userID string) (*models.Form, error) {
	const op = "services.form.Submit"

	if formType == "" {
		return nil, invalid("Form type is required")
	}
	if len(data) == 0 {
		return nil, invalid("Form data is required")
	}
	parsed := gjson.ParseBytes(data)
	if !parsed.IsObject() {
		return nil, invalid("Form data must be a JSON object")
	}

	t := models.FormType(formType)
	var missing []string
	for _, field := range t.RequiredFields() {
		if !parsed.Get(gjson.Escape(field)).Exists() {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, invalid("Missing required fields for %s form: %s", formType, strings.Join(missing, ", "))
	}

	fields, err := decodeFields(data)
	if err != nil {
		return nil, invalid("Form data must be a JSON object")
	}

	form := models.NewForm(t, fields, userID)
	if err := s.forms.SaveForm(ctx, form); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	events.Emit(ctx, s.log, s.events, events.FormSubmitted, map[string]any{
		"form_id":   form.ID,
		"form_type": form.FormType,
		"user_id":   form.UserID,
	})
	return form, nil
}

// decodeFields разбирает объект данных формы без потери точности чисел:
// целые становятся int64, остальные float64.
func decodeFields(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, errors.New("not an object")
	}
	for k, v := range fields {
		fields[k] = normalizeNumbers(v)
	}
	return fields, nil
}

func normalizeNumbers(v any) any {
	switch x := v.(type) {
	case json.Number:
		if i, err := strconv.ParseInt(x.String(), 10, 64); err == nil {
			return i
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case map[string]any:
		for k, item := range x {
			x[k] = normalizeNumbers(item)
		}
		return x
	case []any:
		for i, item := range x {
			x[i] = normalizeNumbers(item)
		}
		return x
	}
	return v
}

// Page — страница форм.
type Page struct {
	Forms []*models.Form
	Total int64
}

// ListByType возвращает формы известного типа, новые первыми.
func (s *Service) ListByType(ctx context.Context, formType string, page, perPage int) (Page, error) {
	const op = "services.form.ListByType"

	t := models.FormType(formType)
	if !t.Known() {
		return Page{}, ErrInvalidFormType
	}
	result, err := s.list(ctx, repository.FormFilter{FormType: t}, page, perPage)
	if err != nil {
		return Page{}, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListMine возвращает формы, отправленные учётной записью userID, новые первыми.
func (s *Service) ListMine(ctx context.Context, userID string, page, perPage int) (Page, error) {
	const op = "services.form.ListMine"

	if userID == "" {
		return Page{}, fmt.Errorf("%s: %w", op, errors.New("empty user id"))
	}
	result, err := s.list(ctx, repository.FormFilter{UserID: userID}, page, perPage)
	if err != nil {
		return Page{}, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func (s *Service) list(ctx context.Context, filter repository.FormFilter, page, perPage int) (Page, error) {
	forms, err := s.forms.ListForms(ctx, filter, page, perPage)
	if err != nil {
		return Page{}, err
	}
	total, err := s.forms.CountForms(ctx, filter)
	if err != nil {
		return Page{}, err
	}
	return Page{Forms: forms, Total: total}, nil
}
