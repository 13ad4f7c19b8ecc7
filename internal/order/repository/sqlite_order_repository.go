package repository

import (
	"context"
	_ "embed"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/msmkdenis/yap-foodorder/internal/apperrors"
	"github.com/msmkdenis/yap-foodorder/internal/clock"
	db "github.com/msmkdenis/yap-foodorder/internal/database"
	"github.com/msmkdenis/yap-foodorder/internal/order/model"
	"github.com/msmkdenis/yap-foodorder/internal/utils"
)

//go:embed queries/sqlite/insert_order.sql
var sqliteInsertOrder string

//go:embed queries/sqlite/select_all_orders.sql
var sqliteSelectAllOrders string

type SQLiteOrderRepository struct {
	sqlite *db.SQLite
	clock  clock.Clock
	logger *zap.Logger
	mu     sync.Mutex
}

func NewSQLiteOrderRepository(sqlite *db.SQLite, clock clock.Clock, logger *zap.Logger) *SQLiteOrderRepository {
	return &SQLiteOrderRepository{
		sqlite: sqlite,
		clock:  clock,
		logger: logger,
	}
}

// Insert serialises writers. AUTOINCREMENT never reuses an id, so ids keep
// growing even after rows are removed out of band.
func (r *SQLiteOrderRepository) Insert(ctx context.Context, order model.Order) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result, err := r.sqlite.DB.ExecContext(ctx, sqliteInsertOrder,
		order.Name,
		order.Email,
		order.CardNumber,
		order.Expiry,
		order.CVV,
		r.clock.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, apperrors.NewValueError("insert failed", utils.Caller(), err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, apperrors.NewValueError("unable to get order id", utils.Caller(), err)
	}

	return id, nil
}

func (r *SQLiteOrderRepository) SelectAll(ctx context.Context) ([]model.Order, error) {
	rows, err := r.sqlite.DB.QueryContext(ctx, sqliteSelectAllOrders)
	if err != nil {
		return nil, apperrors.NewValueError("query failed", utils.Caller(), err)
	}
	defer rows.Close()

	orders := make([]model.Order, 0)
	for rows.Next() {
		var (
			order     model.Order
			createdAt string
		)
		if err = rows.Scan(&order.ID, &order.Name, &order.Email, &order.CardNumber, &order.Expiry, &order.CVV, &createdAt); err != nil {
			return nil, apperrors.NewValueError("unable to scan row", utils.Caller(), err)
		}

		order.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, apperrors.NewValueError("unable to parse created_at", utils.Caller(), err)
		}

		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, apperrors.NewValueError("unable to read rows", utils.Caller(), err)
	}

	return orders, nil
}
