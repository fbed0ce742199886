package service

import (
	"github.com/bnema/navtree/internal/domain/entity"
)

// WindowSizeClass selects how adaptive pane containers behave. It is fixed
// at navigator construction.
type WindowSizeClass int

const (
	// SizeCompact renders one pane at a time; pane containers back like a
	// single stack.
	SizeCompact WindowSizeClass = iota
	// SizeExpanded renders panes side by side; each pane's configured
	// BackBehavior applies.
	SizeExpanded
)

// BackResolution classifies the outcome of back resolution.
type BackResolution int

const (
	// ResolutionHandled means the tree mutated and a back transition
	// should animate.
	ResolutionHandled BackResolution = iota
	// ResolutionCannotHandle means this resolver declined; the caller
	// should try the pane-adaptive fallback.
	ResolutionCannotHandle
	// ResolutionDelegateToSystem means nothing is left to pop; the host
	// should close the surrounding window.
	ResolutionDelegateToSystem
)

// BackResult carries the resolution and, when handled, the new root.
type BackResult struct {
	Resolution BackResolution
	Root       entity.NavNode
}

// Resolver implements the tree-aware back-navigation policy: pop the deepest
// active stack, return tab containers to their initial tab, apply pane back
// behaviour, and cascade upward until something gives or the root is
// reached. The resolver only decides and rebuilds; transitions and
// publication are the navigator's business.
type Resolver struct {
	sizeClass WindowSizeClass
}

// NewResolver creates a resolver for the given window size class.
func NewResolver(sizeClass WindowSizeClass) *Resolver {
	return &Resolver{sizeClass: sizeClass}
}

type backOutcome int

const (
	backUnhandled backOutcome = iota
	backHandled
	backDeclined
)

// Resolve walks the active path leaf-first and returns the first handling
// level's rebuilt tree.
func (r *Resolver) Resolve(root entity.NavNode) BackResult {
	if root == nil {
		return BackResult{Resolution: ResolutionDelegateToSystem, Root: root}
	}
	rebuilt, outcome := r.resolveNode(root)
	switch outcome {
	case backHandled:
		return BackResult{Resolution: ResolutionHandled, Root: rebuilt}
	case backDeclined:
		return BackResult{Resolution: ResolutionCannotHandle, Root: root}
	default:
		return BackResult{Resolution: ResolutionDelegateToSystem, Root: root}
	}
}

// ResolveCompact resolves with compact semantics forced, regardless of the
// configured size class. The navigator uses it as the pane-adaptive
// fallback after ResolutionCannotHandle.
func (r *Resolver) ResolveCompact(root entity.NavNode) BackResult {
	fallback := Resolver{sizeClass: SizeCompact}
	return fallback.Resolve(root)
}

// resolveNode recurses to the deepest active node first; the deepest level
// able to handle the back wins and the chain above it is rebuilt on the way
// out.
func (r *Resolver) resolveNode(node entity.NavNode) (entity.NavNode, backOutcome) {
	switch n := node.(type) {
	case *entity.StackNode:
		return r.resolveStack(n)
	case *entity.TabNode:
		return r.resolveTab(n)
	case *entity.PaneNode:
		return r.resolvePane(n)
	default:
		return node, backUnhandled
	}
}

func (r *Resolver) resolveStack(stack *entity.StackNode) (entity.NavNode, backOutcome) {
	top := stack.Top()
	if top == nil {
		return stack, backUnhandled
	}

	if rebuilt, outcome := r.resolveNode(top); outcome != backUnhandled {
		if outcome == backDeclined {
			return stack, backDeclined
		}
		children := make([]entity.NavNode, len(stack.Children))
		copy(children, stack.Children)
		children[len(children)-1] = entity.Reparent(rebuilt, stack.NodeKey)
		return stack.WithChildren(children), backHandled
	}

	if len(stack.Children) > 1 {
		return stack.WithChildren(stack.Children[:len(stack.Children)-1]), backHandled
	}
	return stack, backUnhandled
}

func (r *Resolver) resolveTab(tab *entity.TabNode) (entity.NavNode, backOutcome) {
	active := tab.ActiveStack()
	if active != nil {
		if rebuilt, outcome := r.resolveNode(active); outcome != backUnhandled {
			if outcome == backDeclined {
				return tab, backDeclined
			}
			rebuiltStack, ok := rebuilt.(*entity.StackNode)
			if !ok {
				return tab, backUnhandled
			}
			stacks := make([]*entity.StackNode, len(tab.Stacks))
			copy(stacks, tab.Stacks)
			stacks[tab.ActiveStackIndex] = rebuiltStack
			return tab.WithStacks(stacks), backHandled
		}
	}

	if tab.ActiveStackIndex != tab.InitialStackIndex {
		return tab.WithActiveIndex(tab.InitialStackIndex), backHandled
	}
	// On the initial tab with a single-screen stack: the walk continues
	// upward and the surrounding stack may pop the container itself.
	return tab, backUnhandled
}

func (r *Resolver) resolvePane(pane *entity.PaneNode) (entity.NavNode, backOutcome) {
	if r.sizeClass == SizeCompact {
		return r.resolvePaneCompact(pane)
	}

	switch pane.BackBehavior {
	case entity.PopUntilScaffoldValueChange:
		// First a plain pop in the active pane; when that pane is down
		// to its last screen, removing its configuration changes the
		// visible scaffold.
		if rebuilt, outcome := r.resolveRoleContent(pane, pane.ActiveRole); outcome == backHandled {
			return rebuilt, backHandled
		}
		if len(pane.Configurations) > 1 {
			return pane.WithoutConfiguration(pane.ActiveRole), backHandled
		}
		return pane, backUnhandled
	case entity.PopPrimaryPane:
		if rebuilt, outcome := r.resolveRoleContent(pane, entity.RolePrimary); outcome == backHandled {
			return rebuilt, backHandled
		}
		return pane, backUnhandled
	case entity.DelegateToPrimary:
		if rebuilt, outcome := r.resolveRoleContent(pane, entity.RolePrimary); outcome == backHandled {
			return rebuilt, backHandled
		}
		// The primary pane had nothing to pop; decline so the caller
		// can fall back to compact semantics.
		return pane, backDeclined
	default:
		return pane, backUnhandled
	}
}

// resolvePaneCompact treats the pane as a single stack: pop the active
// pane's stack, and once that is exhausted leave removal of the pane itself
// to the surrounding stack.
func (r *Resolver) resolvePaneCompact(pane *entity.PaneNode) (entity.NavNode, backOutcome) {
	if rebuilt, outcome := r.resolveRoleContent(pane, pane.ActiveRole); outcome == backHandled {
		return rebuilt, backHandled
	}
	return pane, backUnhandled
}

// resolveRoleContent recurses into one role's content and rebuilds the pane
// when the content handled the back.
func (r *Resolver) resolveRoleContent(pane *entity.PaneNode, role entity.PaneRole) (entity.NavNode, backOutcome) {
	content := pane.ContentOf(role)
	if content == nil {
		return pane, backUnhandled
	}
	rebuilt, outcome := r.resolveNode(content)
	if outcome != backHandled {
		return pane, outcome
	}
	return pane.WithConfiguration(role, entity.PaneConfiguration{Content: rebuilt}), backHandled
}
