package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/oforha-backend/internal/docstore"
	"github.com/magabrotheeeer/oforha-backend/internal/models"
)

// SaveSubscriber сохраняет подписчика (upsert по ID).
func (s *Storage) SaveSubscriber(ctx context.Context, sub *models.Subscriber) error {
	const op = "storage.SaveSubscriber"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	if err := s.subscribers.Upsert(ctx, sub.ID, sub); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetSubscriberByEmail возвращает подписчика по почте.
func (s *Storage) GetSubscriberByEmail(ctx context.Context, email string) (*models.Subscriber, error) {
	const op = "storage.GetSubscriberByEmail"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	var sub models.Subscriber
	if err := s.subscribers.FindOne(ctx, docstore.Filter{"email": email}, &sub); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &sub, nil
}

// ListSubscribers возвращает страницу подписчиков с данным статусом, новые первыми.
func (s *Storage) ListSubscribers(ctx context.Context, status models.SubscriberStatus, page, perPage int) ([]*models.Subscriber, error) {
	const op = "storage.ListSubscribers"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	skip, limit := docstore.Page(page, perPage)
	var result []*models.Subscriber
	err := s.subscribers.Find(ctx, docstore.Filter{"status": string(status)}, docstore.FindOptions{
		SortBy:     "subscribed_at",
		Descending: true,
		Skip:       skip,
		Limit:      limit,
	}, &result)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountSubscribers возвращает число подписчиков с данным статусом.
func (s *Storage) CountSubscribers(ctx context.Context, status models.SubscriberStatus) (int64, error) {
	const op = "storage.CountSubscribers"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}
	n, err := s.subscribers.Count(ctx, docstore.Filter{"status": string(status)})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}
