package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/navtree/internal/app/navigator"
	"github.com/bnema/navtree/internal/app/sample"
	"github.com/bnema/navtree/internal/domain/entity"
	"github.com/bnema/navtree/internal/domain/service"
	"github.com/bnema/navtree/internal/infrastructure/config"
	"github.com/bnema/navtree/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/navtree/internal/logging"
)

// newSampleNavigator wires the sample registries into a navigator, with the
// journal attached when enabled. The returned close func flushes and closes
// the journal.
func newSampleNavigator(ctx context.Context, cfg *config.Config) (*navigator.Navigator, func() error, error) {
	log := logging.FromContext(ctx)

	counter := uint64(0)
	generateKey := func() entity.NodeKey {
		counter++
		return entity.NodeKey(fmt.Sprintf("n%d", counter))
	}

	nav := navigator.New(navigator.Config{
		Scopes:              sample.Scopes(),
		Containers:          sample.Containers(),
		DeepLinks:           sample.DeepLinks(),
		SizeClass:           sizeClassFromConfig(cfg),
		InitialRoot:         sample.InitialTree(generateKey),
		GenerateKey:         generateKey,
		AnimationDurationMS: cfg.Layout.AnimationDurationMS,
		Logger:              log,
	})

	closeFn := func() error { return nil }
	if cfg.Journal.Enabled {
		db, err := sqlite.NewConnection(ctx, cfg.Journal.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open journal: %w", err)
		}
		writer := navigator.NewJournalWriter(ctx, sqlite.NewJournalRepository(db))
		nav.OnEvent(writer.Record)
		closeFn = func() error {
			if err := writer.Close(); err != nil {
				_ = sqlite.Close(db)
				return err
			}
			return sqlite.Close(db)
		}
	}

	return nav, closeFn, nil
}

func sizeClassFromConfig(cfg *config.Config) service.WindowSizeClass {
	if strings.EqualFold(cfg.Layout.WindowSizeClass, "expanded") {
		return service.SizeExpanded
	}
	return service.SizeCompact
}
