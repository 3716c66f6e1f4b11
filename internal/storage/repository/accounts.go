package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/oforha-backend/internal/docstore"
	"github.com/magabrotheeeer/oforha-backend/internal/models"
)

// SaveAccount сохраняет учётную запись (upsert по ID).
func (s *Storage) SaveAccount(ctx context.Context, account *models.Account) error {
	const op = "storage.SaveAccount"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	if err := s.users.Upsert(ctx, account.ID, account); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetAccountByID возвращает учётную запись по идентификатору.
func (s *Storage) GetAccountByID(ctx context.Context, id string) (*models.Account, error) {
	return s.findAccount(ctx, "storage.GetAccountByID", docstore.Filter{"_id": id})
}

// GetAccountByEmail возвращает учётную запись по почте.
func (s *Storage) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	return s.findAccount(ctx, "storage.GetAccountByEmail", docstore.Filter{"email": email})
}

// GetAccountByUsername возвращает учётную запись по имени пользователя.
func (s *Storage) GetAccountByUsername(ctx context.Context, username string) (*models.Account, error) {
	return s.findAccount(ctx, "storage.GetAccountByUsername", docstore.Filter{"username": username})
}

func (s *Storage) findAccount(ctx context.Context, op string, filter docstore.Filter) (*models.Account, error) {
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	var account models.Account
	if err := s.users.FindOne(ctx, filter, &account); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &account, nil
}
