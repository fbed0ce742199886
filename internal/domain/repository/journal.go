// Package repository defines persistence interfaces for the domain.
// Implementations live under internal/infrastructure/persistence.
package repository

import (
	"context"
	"time"
)

//go:generate mockgen -source=journal.go -destination=mocks/journal_mock.go -package=mocks

// JournalEvent records one applied navigation operation.
type JournalEvent struct {
	ID           int64
	Seq          uint64
	Op           string
	DestKind     string
	DestRoute    string
	RemovedCount int
	CreatedAt    time.Time
}

// JournalStats summarises the journal.
type JournalStats struct {
	Total int64
	ByOp  map[string]int64
}

// JournalRepository persists the navigation journal. Appends are
// best-effort: the navigator logs failures and keeps going.
type JournalRepository interface {
	Append(ctx context.Context, event JournalEvent) error
	List(ctx context.Context, limit int) ([]JournalEvent, error)
	Stats(ctx context.Context) (JournalStats, error)
	Purge(ctx context.Context) error
}
