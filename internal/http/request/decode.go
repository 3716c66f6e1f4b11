package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/oforha-backend/internal/http/response"
)

// Decode читает JSON-тело запроса в v и проверяет его валидатором.
// При ошибке возвращает тело ответа 400 для клиента.
func Decode(r *http.Request, v any, validate *validator.Validate) (response.ErrorResponse, error) {
	const op = "request.Decode"

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return response.Error("invalid request body"), fmt.Errorf("%s: %w", op, err)
	}
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return response.ValidationError(verrs), fmt.Errorf("%s: %w", op, err)
		}
		return response.Error("invalid request body"), fmt.Errorf("%s: %w", op, err)
	}
	return response.ErrorResponse{}, nil
}
