package navigator

import (
	"context"

	"github.com/bnema/navtree/internal/domain/repository"
	"github.com/bnema/navtree/internal/logging"
	"golang.org/x/sync/errgroup"
)

const journalBuffer = 128

// JournalWriter drains navigation events into a JournalRepository off the
// write goroutine. Appends are best-effort: failures are logged and
// dropped, never surfaced to navigation.
type JournalWriter struct {
	events chan repository.JournalEvent
	group  *errgroup.Group
	cancel context.CancelFunc
}

// NewJournalWriter starts the background flush loop and returns the writer.
// Attach it with nav.OnEvent(writer.Record).
func NewJournalWriter(ctx context.Context, repo repository.JournalRepository) *JournalWriter {
	ctx, cancel := context.WithCancel(ctx)
	group, ctx := errgroup.WithContext(ctx)

	w := &JournalWriter{
		events: make(chan repository.JournalEvent, journalBuffer),
		group:  group,
		cancel: cancel,
	}

	group.Go(func() error {
		log := logging.FromContext(ctx)
		for {
			select {
			case <-ctx.Done():
				// Drain whatever is buffered before shutting down.
				for {
					select {
					case event := <-w.events:
						if err := repo.Append(context.Background(), event); err != nil {
							log.Warn().Err(err).Msg("journal append failed during drain")
						}
					default:
						return nil
					}
				}
			case event := <-w.events:
				if err := repo.Append(ctx, event); err != nil {
					log.Warn().Err(err).Str("op", event.Op).Msg("journal append failed")
				}
			}
		}
	})

	return w
}

// Record enqueues an event. A full buffer drops the event; the journal is
// an observability aid, not a source of truth.
func (w *JournalWriter) Record(event repository.JournalEvent) {
	select {
	case w.events <- event:
	default:
	}
}

// Close stops the flush loop after draining buffered events.
func (w *JournalWriter) Close() error {
	w.cancel()
	return w.group.Wait()
}
