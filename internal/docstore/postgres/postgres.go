// Package postgres реализует docstore.Gateway поверх PostgreSQL: все коллекции
// хранятся в одной таблице documents, тело документа — jsonb.
// Схема создаётся миграциями из каталога migrations.
package postgres

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/magabrotheeeer/oforha-backend/internal/docstore"
)

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	DB *sql.DB
}

// New открывает пул соединений и проверяет доступность базы.
func New(ctx context.Context, connectionString string) (*Storage, error) {
	const op = "docstore.postgres.New"

	db, err := sql.Open("pgx", connectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Storage{DB: db}, nil
}

// NewWithDB оборачивает уже открытый *sql.DB.
func NewWithDB(db *sql.DB) *Storage {
	return &Storage{DB: db}
}

// Collection возвращает коллекцию по имени.
func (s *Storage) Collection(name string) docstore.Collection {
	return &Collection{db: s.DB, name: name}
}

// Ping проверяет доступность базы.
func (s *Storage) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

// Close закрывает пул соединений.
func (s *Storage) Close(_ context.Context) error {
	return s.DB.Close()
}

// Collection — одна логическая коллекция в таблице documents.
type Collection struct {
	db   *sql.DB
	name string
}

// decode сохраняет числа без потери точности: в полях any они остаются json.Number.
func decode(data []byte, out any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(out)
}

func filterJSON(filter docstore.Filter) ([]byte, error) {
	if filter == nil {
		filter = docstore.Filter{}
	}
	return json.Marshal(filter)
}

// FindOne декодирует первый документ под фильтр.
func (c *Collection) FindOne(ctx context.Context, filter docstore.Filter, out any) error {
	const op = "docstore.postgres.FindOne"

	f, err := filterJSON(filter)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT body FROM documents
			  WHERE collection = $1 AND body @> $2::jsonb
			  LIMIT 1`
	var body []byte
	err = c.db.QueryRowContext(ctx, query, c.name, string(f)).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return docstore.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := decode(body, out); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Find декодирует документы под фильтр в срез out.
func (c *Collection) Find(ctx context.Context, filter docstore.Filter, opts docstore.FindOptions, out any) error {
	const op = "docstore.postgres.Find"

	if rv := reflect.ValueOf(out); rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("%s: out must be a pointer to a slice, got %T", op, out)
	}

	f, err := filterJSON(filter)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	args := []any{c.name, string(f)}
	query := `SELECT body FROM documents
			  WHERE collection = $1 AND body @> $2::jsonb`
	if opts.SortBy != "" {
		if err := docstore.ValidateField(opts.SortBy); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		args = append(args, opts.SortBy)
		query += fmt.Sprintf(" ORDER BY body->>$%d", len(args))
		if opts.Descending {
			query += " DESC"
		}
		query += ", id"
	}
	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if opts.Skip > 0 {
		args = append(args, opts.Skip)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	bodies := make([]json.RawMessage, 0)
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		bodies = append(bodies, json.RawMessage(body))
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	// Срез тел документов собирается в один JSON-массив и декодируется разом.
	raw, err := json.Marshal(bodies)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := decode(raw, out); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Count возвращает число документов под фильтр.
func (c *Collection) Count(ctx context.Context, filter docstore.Filter) (int64, error) {
	const op = "docstore.postgres.Count"

	f, err := filterJSON(filter)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT COUNT(*) FROM documents
			  WHERE collection = $1 AND body @> $2::jsonb`
	var n int64
	if err := c.db.QueryRowContext(ctx, query, c.name, string(f)).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// Upsert вставляет документ или заменяет тело существующего с тем же id.
func (c *Collection) Upsert(ctx context.Context, id string, doc any) error {
	const op = "docstore.postgres.Upsert"

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO documents (collection, id, body)
			  VALUES ($1, $2, $3::jsonb)
			  ON CONFLICT (collection, id)
			  DO UPDATE SET body = EXCLUDED.body, updated_at = NOW()`
	if _, err := c.db.ExecContext(ctx, query, c.name, id, string(body)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
