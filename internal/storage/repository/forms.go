package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/oforha-backend/internal/docstore"
	"github.com/magabrotheeeer/oforha-backend/internal/models"
)

// FormFilter задаёт выборку форм. Пустые поля не участвуют в фильтре.
type FormFilter struct {
	FormType models.FormType
	UserID   string
}

func (f FormFilter) toDocstore() docstore.Filter {
	filter := docstore.Filter{}
	if f.FormType != "" {
		filter["form_type"] = string(f.FormType)
	}
	if f.UserID != "" {
		filter["user_id"] = f.UserID
	}
	return filter
}

// SaveForm сохраняет отправленную форму.
func (s *Storage) SaveForm(ctx context.Context, form *models.Form) error {
	const op = "storage.SaveForm"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	if err := s.forms.Upsert(ctx, form.ID, form); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListForms возвращает страницу форм под фильтр, новые первыми.
func (s *Storage) ListForms(ctx context.Context, filter FormFilter, page, perPage int) ([]*models.Form, error) {
	const op = "storage.ListForms"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	skip, limit := docstore.Page(page, perPage)
	var result []*models.Form
	err := s.forms.Find(ctx, filter.toDocstore(), docstore.FindOptions{
		SortBy:     "submitted_at",
		Descending: true,
		Skip:       skip,
		Limit:      limit,
	}, &result)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountForms возвращает число форм под фильтр.
func (s *Storage) CountForms(ctx context.Context, filter FormFilter) (int64, error) {
	const op = "storage.CountForms"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}
	n, err := s.forms.Count(ctx, filter.toDocstore())
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}
