package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bnema/navtree/internal/domain/repository"
	"github.com/bnema/navtree/internal/logging"
)

type journalRepo struct {
	db *sql.DB
}

// NewJournalRepository creates a new SQLite-backed journal repository.
func NewJournalRepository(db *sql.DB) repository.JournalRepository {
	return &journalRepo{db: db}
}

func (r *journalRepo) Append(ctx context.Context, event repository.JournalEvent) error {
	log := logging.FromContext(ctx)
	log.Debug().Str("op", event.Op).Uint64("seq", event.Seq).Msg("appending journal event")

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO journal_events (seq, op, dest_kind, dest_route, removed_count, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		event.Seq, event.Op, event.DestKind, event.DestRoute, event.RemovedCount, event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append journal event: %w", err)
	}
	return nil
}

func (r *journalRepo) List(ctx context.Context, limit int) ([]repository.JournalEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, seq, op, dest_kind, dest_route, removed_count, created_at
		 FROM journal_events ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []repository.JournalEvent
	for rows.Next() {
		var event repository.JournalEvent
		if err := rows.Scan(&event.ID, &event.Seq, &event.Op, &event.DestKind,
			&event.DestRoute, &event.RemovedCount, &event.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan journal event: %w", err)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func (r *journalRepo) Stats(ctx context.Context) (repository.JournalStats, error) {
	stats := repository.JournalStats{ByOp: make(map[string]int64)}

	rows, err := r.db.QueryContext(ctx,
		`SELECT op, COUNT(*) FROM journal_events GROUP BY op`)
	if err != nil {
		return stats, fmt.Errorf("failed to read journal stats: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var op string
		var count int64
		if err := rows.Scan(&op, &count); err != nil {
			return stats, fmt.Errorf("failed to scan journal stats: %w", err)
		}
		stats.ByOp[op] = count
		stats.Total += count
	}
	return stats, rows.Err()
}

func (r *journalRepo) Purge(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM journal_events`); err != nil {
		return fmt.Errorf("failed to purge journal: %w", err)
	}
	return nil
}
