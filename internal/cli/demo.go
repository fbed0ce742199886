package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/navtree/internal/cli/model"
	"github.com/bnema/navtree/internal/infrastructure/config"
	"github.com/bnema/navtree/internal/logging"
)

// NewDemoCmd creates the demo command: an interactive tree inspector built
// on the sample registries. The config file is watched while the demo
// runs; edits to the demo options apply live.
func NewDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the interactive navigation demo",
		Long: `Boot a navigator with the sample registries (three main tabs plus a
product flow container) and drive it from the keyboard while watching the
tree, the derived signals and the transition machine. Changes to the
[demo] section of the config file are picked up while running.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			manager, err := loadManager()
			if err != nil {
				return err
			}
			cfg := manager.Get()
			ctx := newContext(cfg)
			log := logging.FromContext(ctx)

			nav, closeJournal, err := newSampleNavigator(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := closeJournal(); closeErr != nil {
					fmt.Fprintf(os.Stderr, "Warning: failed to close journal: %v\n", closeErr)
				}
			}()

			program := tea.NewProgram(model.NewDemoModel(ctx, nav, cfg.Demo), tea.WithAltScreen())

			manager.OnConfigChange(func(reloaded *config.Config) {
				program.Send(model.ConfigReloadedMsg{Demo: reloaded.Demo})
			})
			if err := manager.Watch(); err != nil {
				log.Warn().Err(err).Msg("config watch unavailable; live reload disabled")
			}

			if _, err := program.Run(); err != nil {
				return fmt.Errorf("demo failed: %w", err)
			}
			return nil
		},
	}
}
