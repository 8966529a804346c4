package migrate

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"gorm.io/gorm"

	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

// MigrationsTable keeps this service's schema version apart from other
// services sharing the database.
const MigrationsTable = "topup_schema_migrations"

var ErrDirtySchema = errors.New("schema is dirty")

func RunMigrations(db *gorm.DB, migrationPath string) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{MigrationsTable: MigrationsTable})
	if err != nil {
		return fmt.Errorf("postgres migrate driver: %w", err)
	}

	source, err := sourceURL(migrationPath)
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance(source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("migrate instance for %s: %w", source, err)
	}

	before, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("read schema version: %w", err)
	}
	if dirty {
		return fmt.Errorf("%w at version %d, fix it manually before starting", ErrDirtySchema, before)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			slog.Info("schema up to date", "version", before)
			return nil
		}
		return fmt.Errorf("apply migrations: %w", err)
	}

	after, _, _ := m.Version()
	slog.Info("migrations applied", "from", before, "to", after)
	return nil
}

func sourceURL(migrationPath string) (string, error) {
	if migrationPath == "" {
		return "", errors.New("migrations path is empty")
	}
	abs, err := filepath.Abs(migrationPath)
	if err != nil {
		return "", fmt.Errorf("resolve migrations path: %w", err)
	}
	return "file://" + filepath.ToSlash(abs), nil
}
