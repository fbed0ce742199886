// Package script embeds a JavaScript engine for scripted navigation flows:
// reproduce a reported trace, drive the transition machine's seeking phase,
// or sanity-check a registry table without booting a UI host.
package script

import (
	"context"
	"fmt"

	"github.com/grafana/sobek"

	"github.com/bnema/navtree/internal/app/navigator"
	"github.com/bnema/navtree/internal/domain/entity"
	"github.com/bnema/navtree/internal/logging"
)

// Engine binds a navigator into a sobek runtime.
type Engine struct {
	vm  *sobek.Runtime
	nav *navigator.Navigator
}

// NewEngine creates the runtime and installs the flow bindings.
func NewEngine(ctx context.Context, nav *navigator.Navigator) (*Engine, error) {
	log := logging.FromContext(ctx)
	vm := sobek.New()
	e := &Engine{vm: vm, nav: nav}

	bindings := map[string]any{
		"navigate": func(uri string) bool {
			return nav.HandleDeepLink(uri)
		},
		"back": func() bool {
			return nav.NavigateBack()
		},
		"switchTab": func(index int) {
			root := nav.State().Current()
			tab := entity.FindFirstTab(root)
			if tab == nil {
				return
			}
			nav.SwitchTab(tab.NodeKey, index)
		},
		"seek": func(transition string, progress float64) {
			nav.SeekTransition(transition, progress)
		},
		"progress": func(p float64) {
			nav.UpdateTransitionProgress(p)
		},
		"complete": func() {
			nav.CompleteTransition()
		},
		"startBack": func() {
			nav.StartPredictiveBack()
		},
		"updateBack": func(p, x, y float64) {
			nav.UpdatePredictiveBack(p, x, y)
		},
		"commitBack": func() {
			nav.CommitPredictiveBack()
		},
		"cancelBack": func() {
			nav.CancelPredictiveBack()
		},
		"activeRoute": func() string {
			return nav.CurrentDestination().Current().Route
		},
		"canGoBack": func() bool {
			return nav.CanNavigateBack().Current()
		},
		"log": func(message string) {
			log.Info().Str("source", "flow-script").Msg(message)
		},
	}
	for name, fn := range bindings {
		if err := vm.Set(name, fn); err != nil {
			return nil, fmt.Errorf("failed to bind %q: %w", name, err)
		}
	}

	return e, nil
}

// Run evaluates a flow script.
func (e *Engine) Run(src string) error {
	if _, err := e.vm.RunString(src); err != nil {
		return fmt.Errorf("flow script failed: %w", err)
	}
	return nil
}
