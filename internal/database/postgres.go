package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/msmkdenis/yap-foodorder/internal/apperrors"
	"github.com/msmkdenis/yap-foodorder/internal/utils"
)

type PostgresPool struct {
	DB     *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgresPool(connection string, logger *zap.Logger) (*PostgresPool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, connection)
	if err != nil {
		return nil, apperrors.NewValueError("unable to create pool", utils.Caller(), err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, apperrors.NewValueError("unable to ping database", utils.Caller(), err)
	}

	logger.Info("Successful connection", zap.String("database", pool.Config().ConnConfig.Database))

	return &PostgresPool{
		DB:     pool,
		logger: logger,
	}, nil
}

func (p *PostgresPool) Close() error {
	p.DB.Close()
	return nil
}
