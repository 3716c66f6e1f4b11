// Package docstore описывает шлюз к документному хранилищу: именованные коллекции,
// поиск по точному совпадению полей верхнего уровня и upsert по идентификатору.
// Конкретные драйверы живут в подпакетах mongo и postgres.
package docstore

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
)

// Имена коллекций.
const (
	CollectionUsers       = "users"
	CollectionSubscribers = "subscribers"
	CollectionForms       = "forms"
)

// ErrNotFound возвращается FindOne, если ни один документ не подошёл под фильтр.
var ErrNotFound = errors.New("document not found")

// ErrInvalidField возвращается для имени поля сортировки вне [A-Za-z0-9_].
var ErrInvalidField = errors.New("invalid field name")

// Filter — условия на равенство полей верхнего уровня, объединённые через AND.
type Filter map[string]any

// FindOptions задаёт сортировку и страницу выборки. Нулевой Limit — без ограничения.
type FindOptions struct {
	SortBy     string
	Descending bool
	Skip       int64
	Limit      int64
}

// Collection — операции над одной коллекцией документов.
type Collection interface {
	// FindOne декодирует первый подходящий документ в out или возвращает ErrNotFound.
	FindOne(ctx context.Context, filter Filter, out any) error
	// Find декодирует подходящие документы в out — указатель на срез.
	Find(ctx context.Context, filter Filter, opts FindOptions, out any) error
	// Count возвращает число подходящих документов.
	Count(ctx context.Context, filter Filter) (int64, error)
	// Upsert вставляет документ или заменяет существующий с тем же идентификатором.
	Upsert(ctx context.Context, id string, doc any) error
}

// Gateway — подключение к хранилищу.
type Gateway interface {
	Collection(name string) Collection
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

var fieldName = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// ValidateField проверяет имя поля, используемого для сортировки.
func ValidateField(name string) error {
	if !fieldName.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidField, name)
	}
	return nil
}

// Page переводит номер страницы (с 1) и её размер в Skip/Limit.
func Page(page, perPage int) (skip, limit int64) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		return 0, 0
	}
	if int64(page-1) > math.MaxInt64/int64(perPage) {
		return math.MaxInt64, int64(perPage)
	}
	return int64(page-1) * int64(perPage), int64(perPage)
}
