// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков: успешных ответов, ошибок,
// сообщений валидации и отказов лимитера.
package response

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"
)

const (
	// StatusOK — значение статуса для успешного ответа.
	StatusOK = "OK"
	// StatusError — значение статуса для ответа с ошибкой.
	StatusError = "Error"
)

// Response описывает стандартную структуру JSON‑ответа сервера.
type Response struct {
	Status  string `json:"status" example:"OK"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse — структура ошибки для Swagger-документации.
type ErrorResponse struct {
	Status string `json:"status" example:"Error"`
	Error  string `json:"error" example:"invalid request body"`
}

// RateLimitResponse — тело ответа 429.
type RateLimitResponse struct {
	Status      string `json:"status" example:"Error"`
	Error       string `json:"error" example:"Rate limit exceeded"`
	Description string `json:"description" example:"50 per 1 hour"`
	RetryAfter  int    `json:"retry_after" example:"3600"`
	Limit       int    `json:"limit" example:"50"`
	Remaining   int    `json:"remaining" example:"0"`
}

// OK возвращает успешный Response с сообщением и данными.
func OK(msg string, data any) Response {
	return Response{
		Status:  StatusOK,
		Message: msg,
		Data:    data,
	}
}

// Error возвращает ответ с ошибкой и переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Status: StatusError,
		Error:  msg,
	}
}

// RateLimited возвращает тело отказа лимитера.
func RateLimited(description string, retryAfter, limit int) RateLimitResponse {
	return RateLimitResponse{
		Status:      StatusError,
		Error:       "Rate limit exceeded",
		Description: description,
		RetryAfter:  retryAfter,
		Limit:       limit,
		Remaining:   0,
	}
}

// JSON пишет v с HTTP-статусом status.
func JSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

// ValidationError формирует ответ на основе ошибок валидации.
// Каждое нарушение формируется в человеко‑читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) ErrorResponse {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email address", err.Field()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be at least %s characters long", err.Field(), err.Param()))
		case "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be at most %s characters long", err.Field(), err.Param()))
		case "oneof":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be one of: %s", err.Field(), err.Param()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return Error(strings.Join(errsMsgs, ", "))
}
