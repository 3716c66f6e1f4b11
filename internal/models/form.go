package models

import (
	"time"

	"github.com/google/uuid"
)

// FormType — тег типа формы. Значение произвольное; для известных типов
// задан фиксированный набор обязательных полей.
type FormType string

const (
	FormContact  FormType = "contact"
	FormFeedback FormType = "feedback"
	FormSupport  FormType = "support"
)

// KnownFormTypes перечисляет известные типы в порядке, в котором они выводятся в сообщениях.
var KnownFormTypes = []FormType{FormContact, FormFeedback, FormSupport}

var requiredFormFields = map[FormType][]string{
	FormContact:  {"name", "email", "message"},
	FormFeedback: {"rating", "comment"},
	FormSupport:  {"subject", "description", "priority"},
}

// Known сообщает, является ли тип одним из известных.
func (t FormType) Known() bool {
	_, ok := requiredFormFields[t]
	return ok
}

// RequiredFields возвращает обязательные поля для типа; для неизвестных типов — nil.
func (t FormType) RequiredFields() []string {
	fields := requiredFormFields[t]
	if fields == nil {
		return nil
	}
	out := make([]string, len(fields))
	copy(out, fields)
	return out
}

// Form представляет отправленную форму. После создания не изменяется.
type Form struct {
	ID          string         `bson:"_id" json:"_id"`
	FormType    FormType       `bson:"form_type" json:"form_type"`
	Data        map[string]any `bson:"data" json:"data"`
	UserID      *string        `bson:"user_id" json:"user_id"`
	SubmittedAt time.Time      `bson:"submitted_at" json:"submitted_at"`
}

// FormView — публичное представление формы.
type FormView struct {
	ID          string         `json:"id"`
	FormType    FormType       `json:"form_type"`
	Data        map[string]any `json:"data"`
	UserID      *string        `json:"user_id,omitempty"`
	SubmittedAt time.Time      `json:"submitted_at"`
}

// NewForm создаёт запись формы. Пустой userID означает анонимную отправку.
func NewForm(formType FormType, data map[string]any, userID string) *Form {
	f := &Form{
		ID:          uuid.NewString(),
		FormType:    formType,
		Data:        data,
		SubmittedAt: Now(),
	}
	if userID != "" {
		f.UserID = &userID
	}
	return f
}

// View возвращает публичное представление формы.
func (f *Form) View() FormView {
	return FormView{
		ID:          f.ID,
		FormType:    f.FormType,
		Data:        f.Data,
		UserID:      f.UserID,
		SubmittedAt: f.SubmittedAt,
	}
}
