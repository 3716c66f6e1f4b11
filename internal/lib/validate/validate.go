// Package validate настраивает валидатор тел запросов.
package validate

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator"
)

// New возвращает валидатор, который называет поля по их json-тегам.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Email сообщает, похожа ли строка на адрес электронной почты.
func Email(v *validator.Validate, email string) bool {
	return v.Var(email, "required,email") == nil
}
