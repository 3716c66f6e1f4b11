// Package subscriber управляет списком рассылки: подпиской, отпиской,
// повторной активацией и массовым добавлением адресов.
package subscriber

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/oforha-backend/internal/events"
	"github.com/magabrotheeeer/oforha-backend/internal/models"
	"github.com/magabrotheeeer/oforha-backend/internal/storage/repository"
)

var (
	ErrAlreadySubscribed  = errors.New("already subscribed")
	ErrSubscriberNotFound = errors.New("subscriber not found")
)

// Outcome — чем закончилась подписка адреса.
type Outcome int

const (
	// Created — создан новый подписчик.
	Created Outcome = iota
	// Reactivated — неактивный подписчик возвращён в рассылку.
	Reactivated
)

// Repository описывает хранилище подписчиков.
type Repository interface {
	SaveSubscriber(ctx context.Context, sub *models.Subscriber) error
	GetSubscriberByEmail(ctx context.Context, email string) (*models.Subscriber, error)
	ListSubscribers(ctx context.Context, status models.SubscriberStatus, page, perPage int) ([]*models.Subscriber, error)
	CountSubscribers(ctx context.Context, status models.SubscriberStatus) (int64, error)
}

// Service реализует операции над списком рассылки.
type Service struct {
	log         *slog.Logger
	subscribers Repository
	events      events.Publisher
}

// New создаёт сервис подписок.
func New(log *slog.Logger, subscribers Repository, publisher events.Publisher) *Service {
	return &Service{
		log:         log,
		subscribers: subscribers,
		events:      publisher,
	}
}

// Subscribe добавляет адрес в рассылку. Активный адрес даёт ErrAlreadySubscribed,
// неактивный активируется повторно без создания новой записи.
func (s *Service) Subscribe(ctx context.Context, email, name string) (*models.Subscriber, Outcome, error) {
	const op = "services.subscriber.Subscribe"

	sub, outcome, err := s.subscribe(ctx, email, name)
	if err != nil {
		if errors.Is(err, ErrAlreadySubscribed) {
			return nil, 0, err
		}
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	s.emit(ctx, sub, outcome)
	return sub, outcome, nil
}

func (s *Service) subscribe(ctx context.Context, email, name string) (*models.Subscriber, Outcome, error) {
	existing, err := s.subscribers.GetSubscriberByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.IsActive() {
			return nil, 0, ErrAlreadySubscribed
		}
		existing.Reactivate(name)
		if err = s.subscribers.SaveSubscriber(ctx, existing); err != nil {
			return nil, 0, err
		}
		return existing, Reactivated, nil
	case errors.Is(err, repository.ErrNotFound):
		sub := models.NewSubscriber(email, name)
		if err = s.subscribers.SaveSubscriber(ctx, sub); err != nil {
			return nil, 0, err
		}
		return sub, Created, nil
	default:
		return nil, 0, err
	}
}

func (s *Service) emit(ctx context.Context, sub *models.Subscriber, outcome Outcome) {
	key := events.SubscriberSubscribed
	if outcome == Reactivated {
		key = events.SubscriberResubscribed
	}
	events.Emit(ctx, s.log, s.events, key, sub.View())
}

// Unsubscribe переводит адрес в статус unsubscribed. Повторная отписка не ошибка.
func (s *Service) Unsubscribe(ctx context.Context, email string) error {
	const op = "services.subscriber.Unsubscribe"

	sub, err := s.subscribers.GetSubscriberByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSubscriberNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	sub.Unsubscribe()
	if err = s.subscribers.SaveSubscriber(ctx, sub); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	events.Emit(ctx, s.log, s.events, events.SubscriberUnsubscribed, sub.View())
	return nil
}

// Page — страница подписчиков.
type Page struct {
	Subscribers []*models.Subscriber
	Total       int64
}

// List возвращает страницу подписчиков со статусом status, новые первыми.
func (s *Service) List(ctx context.Context, status models.SubscriberStatus, page, perPage int) (Page, error) {
	const op = "services.subscriber.List"

	subs, err := s.subscribers.ListSubscribers(ctx, status, page, perPage)
	if err != nil {
		return Page{}, fmt.Errorf("%s: %w", op, err)
	}
	total, err := s.subscribers.CountSubscribers(ctx, status)
	if err != nil {
		return Page{}, fmt.Errorf("%s: %w", op, err)
	}
	return Page{Subscribers: subs, Total: total}, nil
}

// BulkSubscribe подписывает список адресов по правилам Subscribe: активные
// пропускаются, неактивные активируются, новые создаются. Повторы адреса
// в списке учитываются один раз. Возвращает число созданных и активированных.
func (s *Service) BulkSubscribe(ctx context.Context, emails []string) (int, error) {
	const op = "services.subscriber.BulkSubscribe"

	seen := make(map[string]struct{}, len(emails))
	count := 0
	for _, email := range emails {
		if _, dup := seen[email]; dup {
			continue
		}
		seen[email] = struct{}{}

		sub, outcome, err := s.subscribe(ctx, email, "")
		if errors.Is(err, ErrAlreadySubscribed) {
			continue
		}
		if err != nil {
			return count, fmt.Errorf("%s: %s: %w", op, email, err)
		}
		s.emit(ctx, sub, outcome)
		count++
	}
	return count, nil
}
