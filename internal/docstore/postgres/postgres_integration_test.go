//go:build integration

package postgres

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/oforha-backend/internal/docstore"
	"github.com/magabrotheeeer/oforha-backend/internal/migrations"
)

type record struct {
	ID          string    `json:"_id"`
	Email       string    `json:"email"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submitted_at"`
}

func setupStorage(t *testing.T) *Storage {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("docs"),
		tcpostgres.WithUsername("user"),
		tcpostgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForListeningPort(nat.Port("5432/tcp")).WithStartupTimeout(60*time.Second),
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	store, err := New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(ctx) })

	root, err := filepath.Abs("../../..")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(store.DB, filepath.Join(root, "migrations")))
	return store
}

func TestStorage_RoundTrip(t *testing.T) {
	store := setupStorage(t)
	ctx := context.Background()
	coll := store.Collection(docstore.CollectionSubscribers)

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		r := record{
			ID:          fmt.Sprintf("id-%d", i),
			Email:       fmt.Sprintf("u%d@example.com", i),
			Status:      "active",
			SubmittedAt: base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, coll.Upsert(ctx, r.ID, r))
	}

	// Повторный upsert не создаёт дубликат.
	require.NoError(t, coll.Upsert(ctx, "id-0", record{ID: "id-0", Email: "u0@example.com", Status: "unsubscribed", SubmittedAt: base}))

	n, err := coll.Count(ctx, docstore.Filter{"status": "active"})
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	var one record
	require.NoError(t, coll.FindOne(ctx, docstore.Filter{"email": "u0@example.com"}, &one))
	assert.Equal(t, "unsubscribed", one.Status)

	var page []record
	require.NoError(t, coll.Find(ctx, docstore.Filter{"status": "active"},
		docstore.FindOptions{SortBy: "submitted_at", Descending: true, Limit: 2, Skip: 1}, &page))
	require.Len(t, page, 2)
	assert.Equal(t, "id-3", page[0].ID)
	assert.Equal(t, "id-2", page[1].ID)

	err = store.Collection(docstore.CollectionUsers).FindOne(ctx, docstore.Filter{"email": "u0@example.com"}, &one)
	assert.ErrorIs(t, err, docstore.ErrNotFound)
}
