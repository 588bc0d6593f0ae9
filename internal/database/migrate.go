package database

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
)

// Migrate applies every pending up migration found under dir in migrations.
func Migrate(db *sqlx.DB, migrations fs.FS, dir string) error {
	source, err := iofs.New(migrations, dir)
	if err != nil {
		return fmt.Errorf("iofs.New(%s) > %w", dir, err)
	}

	driver, err := migratemysql.WithInstance(db.DB, &migratemysql.Config{})
	if err != nil {
		return fmt.Errorf("mysql.WithInstance() > %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "mysql", driver)
	if err != nil {
		return fmt.Errorf("migrate.NewWithInstance() > %w", err)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			slog.Default().Info("database schema is up to date")
			return nil
		}
		return fmt.Errorf("m.Up() > %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("m.Version() > %w", err)
	}
	slog.Default().Info("migrated database schema", "version", version, "dirty", dirty)
	return nil
}
