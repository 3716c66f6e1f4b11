package models

import (
	"time"

	"github.com/google/uuid"
)

// SubscriberStatus — состояние подписчика рассылки.
type SubscriberStatus string

const (
	StatusActive       SubscriberStatus = "active"
	StatusUnsubscribed SubscriberStatus = "unsubscribed"
	StatusBounced      SubscriberStatus = "bounced"
)

// Valid сообщает, является ли статус одним из известных.
func (s SubscriberStatus) Valid() bool {
	switch s {
	case StatusActive, StatusUnsubscribed, StatusBounced:
		return true
	}
	return false
}

// Subscriber представляет адрес в списке рассылки.
type Subscriber struct {
	ID             string           `bson:"_id" json:"_id"`
	Email          string           `bson:"email" json:"email"`
	Name           *string          `bson:"name" json:"name"`
	SubscribedAt   time.Time        `bson:"subscribed_at" json:"subscribed_at"`
	Status         SubscriberStatus `bson:"status" json:"status"`
	UnsubscribedAt *time.Time       `bson:"unsubscribed_at,omitempty" json:"unsubscribed_at,omitempty"`
}

// SubscriberView — публичное представление подписчика.
type SubscriberView struct {
	Email        string           `json:"email"`
	Name         *string          `json:"name"`
	SubscribedAt time.Time        `json:"subscribed_at"`
	Status       SubscriberStatus `json:"status"`
}

// NewSubscriber создаёт активного подписчика. Пустое имя сохраняется как отсутствующее.
func NewSubscriber(email, name string) *Subscriber {
	s := &Subscriber{
		ID:           uuid.NewString(),
		Email:        email,
		SubscribedAt: Now(),
		Status:       StatusActive,
	}
	if name != "" {
		s.Name = &name
	}
	return s
}

// IsActive сообщает, активна ли подписка.
func (s *Subscriber) IsActive() bool {
	return s.Status == StatusActive
}

// Unsubscribe переводит подписчика в статус unsubscribed.
func (s *Subscriber) Unsubscribe() {
	now := Now()
	s.Status = StatusUnsubscribed
	s.UnsubscribedAt = &now
}

// Reactivate возвращает неактивного подписчика в рассылку. Новое имя, если передано, заменяет старое.
func (s *Subscriber) Reactivate(name string) {
	s.Status = StatusActive
	s.UnsubscribedAt = nil
	if name != "" {
		s.Name = &name
	}
}

// View возвращает публичное представление подписчика.
func (s *Subscriber) View() SubscriberView {
	return SubscriberView{
		Email:        s.Email,
		Name:         s.Name,
		SubscribedAt: s.SubscribedAt,
		Status:       s.Status,
	}
}
