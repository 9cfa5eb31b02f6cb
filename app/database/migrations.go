package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var schemaFS embed.FS

const schemaTable = "schema_migrations"

// RunMigrations brings the contact message schema up to date. The migrate
// instance is not closed since that would close the shared *sql.DB.
func RunMigrations(db *DB) (version uint, dirty bool, err error) {
	driver, err := sqlite.WithInstance(db.DB, &sqlite.Config{MigrationsTable: schemaTable})
	if err != nil {
		return 0, false, fmt.Errorf("failed to prepare sqlite schema driver for %s: %w", db.path, err)
	}

	scripts, err := iofs.New(schemaFS, "migrations")
	if err != nil {
		return 0, false, fmt.Errorf("failed to read embedded contact schema: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", scripts, "sqlite", driver)
	if err != nil {
		return 0, false, fmt.Errorf("failed to set up contact schema migration: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, false, fmt.Errorf("failed to migrate contact schema: %w", err)
	}

	version, dirty, err = m.Version()
	if err != nil {
		return 0, false, fmt.Errorf("failed to read contact schema version: %w", err)
	}

	return version, dirty, nil
}
