package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/navtree/internal/script"
)

// NewReplayCmd creates the replay command: evaluate a JavaScript flow file
// against a sample navigator.
func NewReplayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replay <flow.js>",
		Short: "Replay a scripted navigation flow",
		Long: `Evaluate a JavaScript flow file against a navigator wired with the
sample registries. Flows can navigate deep links, drive back gestures and
scrub transitions:

  navigate("app://products/42")
  back()
  switchTab(2)
  seek("fade", 0.5); progress(1.0); complete()`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx := newContext(cfg)

			src, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read flow file: %w", err)
			}

			nav, closeJournal, err := newSampleNavigator(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := closeJournal(); closeErr != nil {
					fmt.Fprintf(os.Stderr, "Warning: failed to close journal: %v\n", closeErr)
				}
			}()

			engine, err := script.NewEngine(ctx, nav)
			if err != nil {
				return err
			}
			if err := engine.Run(string(src)); err != nil {
				return err
			}

			fmt.Printf("flow complete; active route: %s\n", nav.CurrentDestination().Current().Route)
			return nil
		},
	}
}
