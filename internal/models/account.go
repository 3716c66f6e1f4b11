// Package models содержит записи предметной области: учётную запись, подписчика
// рассылки и отправленную форму. Каждая запись получает идентификатор при создании,
// поэтому сохранение в хранилище — идемпотентный upsert по этому идентификатору.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Account представляет зарегистрированного пользователя системы.
type Account struct {
	ID           string    `bson:"_id" json:"_id"`                     // Уникальный идентификатор
	Username     string    `bson:"username" json:"username"`           // Имя пользователя (уникальное)
	Email        string    `bson:"email" json:"email"`                 // Электронная почта (уникальная)
	PasswordHash string    `bson:"password_hash" json:"password_hash"` // bcrypt-хэш пароля
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`       // Дата создания
}

// AccountView — публичное представление учётной записи для ответов API.
type AccountView struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// NewAccount создаёт учётную запись с новым идентификатором.
func NewAccount(username, email, passwordHash string) *Account {
	return &Account{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    Now(),
	}
}

// View возвращает представление без даты создания (ответы signup/login).
func (a *Account) View() AccountView {
	return AccountView{
		ID:       a.ID,
		Username: a.Username,
		Email:    a.Email,
	}
}

// Profile возвращает полное публичное представление (ответ profile).
func (a *Account) Profile() AccountView {
	v := a.View()
	createdAt := a.CreatedAt
	v.CreatedAt = &createdAt
	return v
}

// Now возвращает текущее время в UTC с точностью до секунды.
// Все временные метки записей берутся отсюда, чтобы строковое представление
// времени сортировалось хронологически в любом драйвере хранилища.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
