package bootstrap

import (
	"log/slog"
	"strings"

	"goeat-api/internal/pkg/config"
	"goeat-api/migrations"

	"github.com/cockroachdb/errors"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// RunMigrations applies the embedded schema migrations before the server
// accepts traffic.
func RunMigrations(cfg config.Config) error {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return errors.Wrap(err, "failed to load embedded migrations")
	}

	// golang-migrate selects its pgx/v5 driver by URL scheme.
	dsn := strings.Replace(cfg.DB.BuildDSN(), "postgres://", "pgx5://", 1)

	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		return errors.Wrap(err, "failed to init migrator")
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "failed to apply migrations")
	}

	version, _, err := m.Version()
	if err == nil {
		slog.Info("database schema ready", "version", version)
	}
	return nil
}
