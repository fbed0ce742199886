// Package cli provides the command-line interface for navtree.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/navtree/internal/infrastructure/config"
	"github.com/bnema/navtree/internal/logging"
)

// NewRootCmd creates the root command for navtree.
func NewRootCmd(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "navtree",
		Short: "Navigation tree core playground",
		Long: `navtree models application navigation as an immutable tree of stacks,
tabs and adaptive panes. This CLI hosts an interactive demo of the tree,
a scripted flow replayer and the navigation journal.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("navtree %s\n", version)
			fmt.Printf("commit: %s\n", commit)
			fmt.Printf("built: %s\n", buildDate)
		},
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(NewDemoCmd())
	rootCmd.AddCommand(NewReplayCmd())
	rootCmd.AddCommand(NewJournalCmd())
	rootCmd.AddCommand(NewConfigCmd())

	return rootCmd
}

// loadManager creates a config manager with the configuration loaded.
// Long-running commands keep it around to watch for changes.
func loadManager() (*config.Manager, error) {
	manager, err := config.NewManager()
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}
	if err := manager.Load(); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return manager, nil
}

// loadConfig loads the resolved configuration for one-shot commands.
func loadConfig() (*config.Config, error) {
	manager, err := loadManager()
	if err != nil {
		return nil, err
	}
	return manager.Get(), nil
}

// newContext builds the base context carrying the configured logger.
func newContext(cfg *config.Config) context.Context {
	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	return logging.WithContext(context.Background(), logger)
}
