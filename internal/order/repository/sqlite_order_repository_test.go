package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/msmkdenis/yap-foodorder/internal/clock"
	db "github.com/msmkdenis/yap-foodorder/internal/database"
	"github.com/msmkdenis/yap-foodorder/internal/order/model"
)

var createdAt = time.Date(2026, 10, 16, 12, 30, 0, 123000000, time.UTC)

func openSQLite(t *testing.T, path string) *db.SQLite {
	t.Helper()
	logger := zap.NewNop()

	sqlite, err := db.NewSQLite(path, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close() })

	migrations, err := db.NewSQLiteMigrations(sqlite, logger)
	require.NoError(t, err)
	require.NoError(t, migrations.MigrateUp())

	return sqlite
}

func testOrder(name string) model.Order {
	return model.Order{
		Name:       name,
		Email:      "jane@x.com",
		CardNumber: "************4444",
		Expiry:     "08/27",
		CVV:        "***",
	}
}

func TestSQLiteInsertAssignsIncreasingIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteOrderRepository(openSQLite(t, filepath.Join(t.TempDir(), "orders.db")), clock.NewFixed(createdAt), zap.NewNop())

	first, err := repo.Insert(ctx, testOrder("first"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), first)

	second, err := repo.Insert(ctx, testOrder("second"))
	require.NoError(t, err)
	assert.Greater(t, second, first)

	orders, err := repo.SelectAll(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	assert.Equal(t, first, orders[0].ID)
	assert.Equal(t, "first", orders[0].Name)
	assert.Equal(t, second, orders[1].ID)
	assert.True(t, createdAt.Equal(orders[0].CreatedAt))
	assert.Equal(t, "************4444", orders[1].CardNumber)
}

func TestSQLiteSelectAllEmpty(t *testing.T) {
	repo := NewSQLiteOrderRepository(openSQLite(t, filepath.Join(t.TempDir(), "orders.db")), clock.NewSystem(), zap.NewNop())

	orders, err := repo.SelectAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestSQLiteConcurrentInsertsNeverCollide(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteOrderRepository(openSQLite(t, filepath.Join(t.TempDir(), "orders.db")), clock.NewSystem(), zap.NewNop())

	const writers = 20
	ids := make(chan int64, writers)

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, err := repo.Insert(ctx, testOrder(fmt.Sprintf("writer-%d", i)))
			assert.NoError(t, err)
			ids <- id
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]struct{}, writers)
	for id := range ids {
		_, dup := seen[id]
		assert.False(t, dup, "duplicate id %d", id)
		seen[id] = struct{}{}
	}

	orders, err := repo.SelectAll(ctx)
	require.NoError(t, err)
	require.Len(t, orders, writers)
	for i := 1; i < len(orders); i++ {
		assert.Greater(t, orders[i].ID, orders[i-1].ID)
	}
}

func TestSQLiteReinitializationKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "orders.db")

	repo := NewSQLiteOrderRepository(openSQLite(t, path), clock.NewSystem(), zap.NewNop())
	id, err := repo.Insert(ctx, testOrder("before"))
	require.NoError(t, err)

	reopened := NewSQLiteOrderRepository(openSQLite(t, path), clock.NewSystem(), zap.NewNop())

	orders, err := reopened.SelectAll(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, id, orders[0].ID)
	assert.Equal(t, "before", orders[0].Name)

	next, err := reopened.Insert(ctx, testOrder("after"))
	require.NoError(t, err)
	assert.Greater(t, next, id)
}
