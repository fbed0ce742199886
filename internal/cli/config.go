package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/navtree/internal/infrastructure/config"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			fmt.Printf("logging.level = %q\n", cfg.Logging.Level)
			fmt.Printf("logging.format = %q\n", cfg.Logging.Format)
			fmt.Printf("journal.enabled = %t\n", cfg.Journal.Enabled)
			fmt.Printf("journal.path = %q\n", cfg.Journal.Path)
			fmt.Printf("layout.window_size_class = %q\n", cfg.Layout.WindowSizeClass)
			fmt.Printf("layout.animation_duration_ms = %d\n", cfg.Layout.AnimationDurationMS)
			fmt.Printf("demo.show_keys = %t\n", cfg.Demo.ShowKeys)
			fmt.Printf("demo.show_journal = %t\n", cfg.Demo.ShowJournal)
			return nil
		},
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		RunE: func(_ *cobra.Command, _ []string) error {
			path, err := config.GetConfigFile()
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	}

	cmd.AddCommand(showCmd, pathCmd)
	return cmd
}
