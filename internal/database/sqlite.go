package database

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"
	_ "modernc.org/sqlite" // pure Go driver registered as "sqlite"

	"github.com/msmkdenis/yap-foodorder/internal/apperrors"
	"github.com/msmkdenis/yap-foodorder/internal/utils"
)

type SQLite struct {
	DB     *sql.DB
	logger *zap.Logger
}

// NewSQLite opens (or creates) the database file at path in WAL mode with a
// single connection, so writers never interleave.
func NewSQLite(path string, logger *zap.Logger) (*SQLite, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, apperrors.NewValueError("unable to open sqlite", utils.Caller(), err)
	}
	db.SetMaxOpenConns(1)

	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, apperrors.NewValueError("unable to ping sqlite", utils.Caller(), err)
	}

	logger.Info("Successful connection", zap.String("sqlite", path))

	return &SQLite{
		DB:     db,
		logger: logger,
	}, nil
}

func (s *SQLite) Close() error {
	return s.DB.Close()
}
