package navigator

import (
	"errors"
	"fmt"

	"github.com/bnema/navtree/internal/domain/entity"
	"github.com/bnema/navtree/internal/domain/service"
)

// ErrNoActivePane is reported when a pane operation runs while the active
// path crosses no pane container.
var ErrNoActivePane = errors.New("no pane container on the active path")

// Navigate performs the scope-aware push of dest. When dest declares a
// container and the active path is not already inside it, the container is
// materialised instead of a plain push and opens on the first screen its
// factory seeds; dest itself is not pushed. transition names the animation;
// "" falls back to the destination's own transition.
func (n *Navigator) Navigate(dest entity.Destination, transition string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	old := n.state.Current()
	var newRoot entity.NavNode

	if info, ok := n.containers.ContainerInfoOf(dest); ok && service.ActiveContainerScope(old) != info.ScopeKey {
		built, err := n.mutator.PushContainer(old, info)
		if err != nil {
			n.onError("navigate", &dest, err)
			return
		}
		newRoot = built
	} else {
		newRoot = n.mutator.Push(old, dest)
	}
	if newRoot == old {
		return
	}

	if transition == "" {
		transition = dest.Transition
	}
	n.apply("navigate", &dest, old, newRoot,
		n.inProgress(transition, activeLeafKey(old), activeLeafKey(newRoot)))
}

// NavigateBack consumes one back action and reports whether anything
// handled it. Screen-registered back handlers run first; then the tree
// resolver cascades, with the compact pane fallback after a decline. False
// means the host should delegate to the system.
func (n *Navigator) NavigateBack() bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.backHandlers.Handle() {
		n.logger.Debug().Msg("back consumed by screen handler")
		return true
	}

	old := n.state.Current()
	result := n.resolver.Resolve(old)
	if result.Resolution == service.ResolutionCannotHandle {
		result = n.resolver.ResolveCompact(old)
	}
	if result.Resolution != service.ResolutionHandled {
		n.logger.Debug().Msg("back delegated to system")
		return false
	}

	n.apply("navigate_back", nil, old, result.Root,
		n.inProgress("back", activeLeafKey(old), activeLeafKey(result.Root)))
	return true
}

// NavigateAndClearTo pops the active stack to clearRoute (dropping the
// matching screen too when inclusive; clearing to the stack bottom when
// clearRoute is empty) and pushes dest, in one atomic step.
func (n *Navigator) NavigateAndClearTo(dest entity.Destination, clearRoute string, inclusive bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	old := n.state.Current()
	cleared := n.mutator.PopToRoute(old, clearRoute, inclusive)
	newRoot := n.mutator.Push(cleared, dest)
	if newRoot == old {
		return
	}
	n.apply("navigate_and_clear_to", &dest, old, newRoot,
		n.inProgress(dest.Transition, activeLeafKey(old), activeLeafKey(newRoot)))
}

// NavigateAndReplace swaps the current screen for dest: one key dies, one
// is born.
func (n *Navigator) NavigateAndReplace(dest entity.Destination, transition string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	old := n.state.Current()
	newRoot := n.mutator.ReplaceCurrent(old, dest)
	if newRoot == old {
		return
	}
	if transition == "" {
		transition = dest.Transition
	}
	n.apply("navigate_and_replace", &dest, old, newRoot,
		n.inProgress(transition, activeLeafKey(old), activeLeafKey(newRoot)))
}

// NavigateAndClearAll replaces the active stack's content with a single
// screen of dest.
func (n *Navigator) NavigateAndClearAll(dest entity.Destination) {
	n.mu.Lock()
	defer n.mu.Unlock()

	old := n.state.Current()
	newRoot := n.mutator.ClearAndPush(old, dest)
	if newRoot == old {
		return
	}
	n.apply("navigate_and_clear_all", &dest, old, newRoot,
		n.inProgress(dest.Transition, activeLeafKey(old), activeLeafKey(newRoot)))
}

// SwitchTab selects a tab on the named TabNode. The previous tab's stack is
// preserved verbatim. Tab switches publish no transition; the renderer owns
// tab crossfades.
func (n *Navigator) SwitchTab(tabKey entity.NodeKey, index int) {
	n.mu.Lock()
	defer n.mu.Unlock()

	old := n.state.Current()
	newRoot, err := n.mutator.SwitchTab(old, tabKey, index)
	if err != nil {
		n.onError("switch_tab", nil, err)
		return
	}
	if newRoot == old {
		return
	}
	n.apply("switch_tab", nil, old, newRoot, idleTransition())
}

// SwitchActivePane selects the active role on the innermost pane container.
func (n *Navigator) SwitchActivePane(role entity.PaneRole) {
	n.mu.Lock()
	defer n.mu.Unlock()

	old := n.state.Current()
	pane := service.ActivePane(old)
	if pane == nil {
		n.onError("switch_active_pane", nil, ErrNoActivePane)
		return
	}
	newRoot, err := n.mutator.SwitchActivePane(old, pane.NodeKey, role)
	if err != nil {
		n.onError("switch_active_pane", nil, err)
		return
	}
	if newRoot == old {
		return
	}
	n.apply("switch_active_pane", nil, old, newRoot, idleTransition())
}

// NavigateToPane pushes dest onto the named role of the innermost pane
// container, growing a fresh stack when the role is not configured yet.
func (n *Navigator) NavigateToPane(dest entity.Destination, role entity.PaneRole) {
	n.mu.Lock()
	defer n.mu.Unlock()

	old := n.state.Current()
	pane := service.ActivePane(old)
	if pane == nil {
		n.onError("navigate_to_pane", &dest, ErrNoActivePane)
		return
	}
	newRoot, err := n.mutator.PushPane(old, pane.NodeKey, role, dest)
	if err != nil {
		n.onError("navigate_to_pane", &dest, err)
		return
	}
	n.apply("navigate_to_pane", &dest, old, newRoot,
		n.inProgress(dest.Transition, activeLeafKey(old), activeLeafKey(newRoot)))
}

// NavigateBackInPane pops one screen from the named role's stack on the
// innermost pane container. False means that stack is already at its last
// screen; the caller decides whether to propagate further.
func (n *Navigator) NavigateBackInPane(role entity.PaneRole) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	old := n.state.Current()
	pane := service.ActivePane(old)
	if pane == nil {
		n.onError("navigate_back_in_pane", nil, ErrNoActivePane)
		return false
	}
	newRoot, popped, err := n.mutator.PopPane(old, pane.NodeKey, role)
	if err != nil {
		n.onError("navigate_back_in_pane", nil, err)
		return false
	}
	if !popped {
		return false
	}
	n.apply("navigate_back_in_pane", nil, old, newRoot,
		n.inProgress("back", activeLeafKey(old), activeLeafKey(newRoot)))
	return true
}

// ClearPane removes the named role's configuration from the innermost pane
// container. The last remaining configuration cannot be cleared.
func (n *Navigator) ClearPane(role entity.PaneRole) {
	n.mu.Lock()
	defer n.mu.Unlock()

	old := n.state.Current()
	pane := service.ActivePane(old)
	if pane == nil {
		n.onError("clear_pane", nil, ErrNoActivePane)
		return
	}
	newRoot, err := n.mutator.ClearPane(old, pane.NodeKey, role)
	if err != nil {
		n.onError("clear_pane", nil, err)
		return
	}
	n.apply("clear_pane", nil, old, newRoot, idleTransition())
}

// HandleDeepLink resolves uri against the deep-link registry and navigates
// to the match. False means no registered pattern matched.
func (n *Navigator) HandleDeepLink(uri string) bool {
	dest, ok := n.deepLinks.Resolve(uri)
	if !ok {
		n.logger.Debug().Str("uri", uri).Msg("deep link unmatched")
		return false
	}
	n.logger.Debug().Str("uri", uri).Str("dest_kind", dest.Kind).Msg("deep link matched")
	n.Navigate(dest, "")
	return true
}

// Expect registers interest in the result of the screen identified by key.
// Subscribe before pushing the child so removal can never race the
// subscription.
func (n *Navigator) Expect(key entity.NodeKey) <-chan Result {
	return n.results.Expect(key)
}

// Deliver resolves the pending result future for key.
func (n *Navigator) Deliver(key entity.NodeKey, value any) bool {
	return n.results.Deliver(key, value)
}

// String renders a short description of the current state for diagnostics.
func (n *Navigator) String() string {
	root := n.state.Current()
	return fmt.Sprintf("navigator{nodes=%d active=%q}", entity.CountNodes(root), activeLeafKey(root))
}
