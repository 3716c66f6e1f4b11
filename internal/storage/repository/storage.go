// Package repository хранит записи предметной области в документном хранилище:
// поиск по уникальным полям и идемпотентный upsert по идентификатору записи.
package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/oforha-backend/internal/docstore"
)

// ErrNotFound возвращается, если запись не найдена.
var ErrNotFound = docstore.ErrNotFound

// Storage объединяет коллекции users, subscribers и forms.
type Storage struct {
	users       docstore.Collection
	subscribers docstore.Collection
	forms       docstore.Collection
}

// New создаёт Storage поверх шлюза хранилища.
func New(gw docstore.Gateway) *Storage {
	return &Storage{
		users:       gw.Collection(docstore.CollectionUsers),
		subscribers: gw.Collection(docstore.CollectionSubscribers),
		forms:       gw.Collection(docstore.CollectionForms),
	}
}

func checkCtx(ctx context.Context, op string) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
		return nil
	}
}
