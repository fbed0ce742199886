package cli

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bnema/navtree/internal/domain/repository"
	"github.com/bnema/navtree/internal/infrastructure/persistence/sqlite"
)

const defaultJournalLimit = 20

// NewJournalCmd creates the journal command group.
func NewJournalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Inspect the navigation journal",
		RunE:  listJournal,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recent navigation events",
		RunE:  listJournal,
	}
	listCmd.Flags().IntP("limit", "n", defaultJournalLimit, "Number of events to show")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show navigation event counts per operation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withJournal(cmd, func(repo repository.JournalRepository) error {
				stats, err := repo.Stats(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Printf("total events: %d\n", stats.Total)
				ops := make([]string, 0, len(stats.ByOp))
				for op := range stats.ByOp {
					ops = append(ops, op)
				}
				sort.Strings(ops)
				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				for _, op := range ops {
					fmt.Fprintf(w, "%s\t%d\n", op, stats.ByOp[op])
				}
				return w.Flush()
			})
		},
	}

	purgeCmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete all journal events",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withJournal(cmd, func(repo repository.JournalRepository) error {
				if err := repo.Purge(cmd.Context()); err != nil {
					return err
				}
				fmt.Println("journal purged")
				return nil
			})
		},
	}

	cmd.AddCommand(listCmd, statsCmd, purgeCmd)
	return cmd
}

func listJournal(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	if limit == 0 {
		limit = defaultJournalLimit
	}
	return withJournal(cmd, func(repo repository.JournalRepository) error {
		events, err := repo.List(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			fmt.Println("journal is empty")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "SEQ\tOP\tDESTINATION\tREMOVED\tAT")
		for _, event := range events {
			dest := event.DestKind
			if dest == "" {
				dest = "-"
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n",
				event.Seq, event.Op, dest, event.RemovedCount,
				event.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		return w.Flush()
	})
}

func withJournal(cmd *cobra.Command, fn func(repository.JournalRepository) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := newContext(cfg)

	db, err := sqlite.NewConnection(ctx, cfg.Journal.Path)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer func() {
		if closeErr := sqlite.Close(db); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close journal: %v\n", closeErr)
		}
	}()

	cmd.SetContext(ctx)
	return fn(sqlite.NewJournalRepository(db))
}
