package database

import (
	"embed"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"

	"github.com/msmkdenis/yap-foodorder/internal/apperrors"
	"github.com/msmkdenis/yap-foodorder/internal/utils"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationFiles embed.FS

type Migrations struct {
	migrate *migrate.Migrate
	owned   bool
	logger  *zap.Logger
}

// NewPostgresMigrations opens its own connection from a postgres:// URL.
func NewPostgresMigrations(connection string, logger *zap.Logger) (*Migrations, error) {
	source, err := iofs.New(migrationFiles, "migrations/postgres")
	if err != nil {
		return nil, apperrors.NewValueError("unable to read migrations", utils.Caller(), err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, connection)
	if err != nil {
		return nil, apperrors.NewValueError("unable to create migrations", utils.Caller(), err)
	}

	return &Migrations{migrate: m, owned: true, logger: logger}, nil
}

// NewSQLiteMigrations runs on the already opened database. The driver closes the
// database together with itself, so Close leaves it alone.
func NewSQLiteMigrations(sqlite *SQLite, logger *zap.Logger) (*Migrations, error) {
	source, err := iofs.New(migrationFiles, "migrations/sqlite")
	if err != nil {
		return nil, apperrors.NewValueError("unable to read migrations", utils.Caller(), err)
	}

	driver, err := migratesqlite.WithInstance(sqlite.DB, &migratesqlite.Config{})
	if err != nil {
		return nil, apperrors.NewValueError("unable to create sqlite driver", utils.Caller(), err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return nil, apperrors.NewValueError("unable to create migrations", utils.Caller(), err)
	}

	return &Migrations{migrate: m, logger: logger}, nil
}

// MigrateUp applies pending migrations. Running it on an up to date schema is a no-op.
func (m *Migrations) MigrateUp() error {
	err := m.migrate.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		m.logger.Info("Orders schema is up to date")
		return nil
	}
	if err != nil {
		return apperrors.NewValueError("unable to apply migrations", utils.Caller(), err)
	}

	m.logger.Info("Orders schema migrated")
	return nil
}

func (m *Migrations) Close() error {
	if !m.owned {
		return nil
	}
	sourceErr, dbErr := m.migrate.Close()
	return errors.Join(sourceErr, dbErr)
}
