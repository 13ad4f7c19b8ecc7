package repository

import (
	"context"
	_ "embed"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/msmkdenis/yap-foodorder/internal/apperrors"
	"github.com/msmkdenis/yap-foodorder/internal/clock"
	db "github.com/msmkdenis/yap-foodorder/internal/database"
	"github.com/msmkdenis/yap-foodorder/internal/order/model"
	"github.com/msmkdenis/yap-foodorder/internal/utils"
)

//go:embed queries/postgres/insert_order.sql
var insertOrder string

//go:embed queries/postgres/select_all_orders.sql
var selectAllOrders string

type PostgresOrderRepository struct {
	postgresPool *db.PostgresPool
	clock        clock.Clock
	logger       *zap.Logger
}

func NewPostgresOrderRepository(postgresPool *db.PostgresPool, clock clock.Clock, logger *zap.Logger) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		postgresPool: postgresPool,
		clock:        clock,
		logger:       logger,
	}
}

// Insert relies on the identity column for ids, concurrent inserts never collide.
func (r *PostgresOrderRepository) Insert(ctx context.Context, order model.Order) (int64, error) {
	var id int64
	err := r.postgresPool.DB.QueryRow(ctx, insertOrder,
		order.Name,
		order.Email,
		order.CardNumber,
		order.Expiry,
		order.CVV,
		r.clock.Now(),
	).Scan(&id)

	var e *pgconn.PgError
	if errors.As(err, &e) && e.Code == pgerrcode.UndefinedTable {
		return 0, apperrors.NewValueError("orders table is missing, migrations not applied", utils.Caller(), err)
	}
	if err != nil {
		return 0, apperrors.NewValueError("insert failed", utils.Caller(), err)
	}

	return id, nil
}

func (r *PostgresOrderRepository) SelectAll(ctx context.Context) ([]model.Order, error) {
	queryRows, err := r.postgresPool.DB.Query(ctx, selectAllOrders)
	if err != nil {
		return nil, apperrors.NewValueError("query failed", utils.Caller(), err)
	}
	defer queryRows.Close()

	orders, err := pgx.CollectRows(queryRows, pgx.RowToStructByName[model.Order])
	if err != nil {
		return nil, apperrors.NewValueError("unable to collect rows", utils.Caller(), err)
	}

	return orders, nil
}
