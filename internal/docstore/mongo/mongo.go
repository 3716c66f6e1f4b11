// Package mongo реализует docstore.Gateway поверх MongoDB.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/magabrotheeeer/oforha-backend/internal/docstore"
)

// Store — подключение к базе MongoDB.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// New подключается к MongoDB по uri и проверяет соединение.
func New(ctx context.Context, uri, database string, timeout time.Duration) (*Store, error) {
	const op = "docstore.mongo.New"

	opts := options.Client().
		ApplyURI(uri).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})
	if timeout > 0 {
		opts.SetServerSelectionTimeout(timeout).SetConnectTimeout(timeout)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Store{client: client, db: client.Database(database)}, nil
}

// Collection возвращает коллекцию по имени.
func (s *Store) Collection(name string) docstore.Collection {
	return NewCollection(s.db.Collection(name))
}

// Ping проверяет доступность primary.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close закрывает пул соединений.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Collection реализует docstore.Collection над *mongo.Collection.
type Collection struct {
	coll *mongo.Collection
}

// NewCollection оборачивает коллекцию драйвера.
func NewCollection(coll *mongo.Collection) *Collection {
	return &Collection{coll: coll}
}

func toBSON(filter docstore.Filter) bson.M {
	m := bson.M{}
	for k, v := range filter {
		m[k] = v
	}
	return m
}

// FindOne декодирует первый документ под фильтр.
func (c *Collection) FindOne(ctx context.Context, filter docstore.Filter, out any) error {
	const op = "docstore.mongo.FindOne"
	err := c.coll.FindOne(ctx, toBSON(filter)).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return docstore.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Find декодирует все документы под фильтр в срез out.
func (c *Collection) Find(ctx context.Context, filter docstore.Filter, opts docstore.FindOptions, out any) error {
	const op = "docstore.mongo.Find"

	findOpts := options.Find()
	if opts.SortBy != "" {
		if err := docstore.ValidateField(opts.SortBy); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		direction := 1
		if opts.Descending {
			direction = -1
		}
		// _id разрешает равные значения, иначе страницы могут пересекаться
		findOpts.SetSort(bson.D{{Key: opts.SortBy, Value: direction}, {Key: "_id", Value: direction}})
	}
	if opts.Skip > 0 {
		findOpts.SetSkip(opts.Skip)
	}
	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}

	cursor, err := c.coll.Find(ctx, toBSON(filter), findOpts)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Count возвращает число документов под фильтр.
func (c *Collection) Count(ctx context.Context, filter docstore.Filter) (int64, error) {
	const op = "docstore.mongo.Count"
	n, err := c.coll.CountDocuments(ctx, toBSON(filter))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// Upsert заменяет документ с данным _id или вставляет новый.
func (c *Collection) Upsert(ctx context.Context, id string, doc any) error {
	const op = "docstore.mongo.Upsert"
	_, err := c.coll.ReplaceOne(ctx, bson.M{"_id": id}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
