package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bnema/navtree/internal/logging"
)

// migrations are applied in order; the schema version lives in SQLite's
// user_version pragma.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS journal_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		seq INTEGER NOT NULL,
		op TEXT NOT NULL,
		dest_kind TEXT NOT NULL DEFAULT '',
		dest_route TEXT NOT NULL DEFAULT '',
		removed_count INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_journal_events_op ON journal_events(op)`,
	`CREATE INDEX IF NOT EXISTS idx_journal_events_created_at ON journal_events(created_at)`,
}

// RunMigrations applies all pending migrations to the database.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	log := logging.FromContext(ctx)

	var version int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	if version >= len(migrations) {
		log.Debug().Int("version", version).Msg("journal schema up to date")
		return nil
	}

	for i := version; i < len(migrations); i++ {
		if _, err := db.ExecContext(ctx, migrations[i]); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", len(migrations))); err != nil {
		return fmt.Errorf("failed to store schema version: %w", err)
	}

	log.Info().
		Int("from_version", version).
		Int("to_version", len(migrations)).
		Msg("journal migrations applied")
	return nil
}
