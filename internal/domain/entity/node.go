// Package entity contains domain entities representing core navigation concepts.
// These entities are pure Go types with no infrastructure dependencies.
//
// Navigation trees are value snapshots: once a root has been published, none
// of its nodes may be mutated. All changes go through service.Mutator, which
// rebuilds the chain from the changed node to the root and shares every
// untouched subtree by reference.
package entity

// NodeKey uniquely identifies a node within a navigation tree. Keys are
// stable for a node's lifetime; identity across snapshots is by key, not by
// structural position.
type NodeKey string

// NavNode is a node in the navigation tree. It is one of *ScreenNode,
// *StackNode, *TabNode or *PaneNode.
type NavNode interface {
	// Key returns the node's unique identifier.
	Key() NodeKey
	// ParentKey returns the key of the structurally containing node,
	// or "" for the root. Parent keys are lookup denormalisations,
	// never ownership edges.
	ParentKey() NodeKey
}

// ScreenNode is a leaf presenting a single destination.
type ScreenNode struct {
	NodeKey     NodeKey
	Parent      NodeKey
	Destination Destination
}

func (n *ScreenNode) Key() NodeKey       { return n.NodeKey }
func (n *ScreenNode) ParentKey() NodeKey { return n.Parent }

// WithParent returns a copy parented under the given key.
func (n *ScreenNode) WithParent(parent NodeKey) *ScreenNode {
	if n.Parent == parent {
		return n
	}
	c := *n
	c.Parent = parent
	return &c
}

// StackNode is an ordered sequence of child nodes. The last child is the
// active one ("top of stack"). Empty stacks exist only transiently during
// construction.
type StackNode struct {
	NodeKey  NodeKey
	Parent   NodeKey
	Children []NavNode
}

func (n *StackNode) Key() NodeKey       { return n.NodeKey }
func (n *StackNode) ParentKey() NodeKey { return n.Parent }

// Top returns the active (last) child, or nil for an empty stack.
func (n *StackNode) Top() NavNode {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[len(n.Children)-1]
}

// WithChildren returns a copy of the stack holding the given children.
// The slice is owned by the new node; callers must not retain it.
func (n *StackNode) WithChildren(children []NavNode) *StackNode {
	c := *n
	c.Children = children
	return &c
}

// WithParent returns a copy parented under the given key.
func (n *StackNode) WithParent(parent NodeKey) *StackNode {
	if n.Parent == parent {
		return n
	}
	c := *n
	c.Parent = parent
	return &c
}

// TabItem describes a tab's appearance and route. It lives on the tree
// because deep-link reconstruction and back resolution need it without
// re-entering the registry.
type TabItem struct {
	Label string
	Icon  string
	Route string
}

// TabNode is a container of parallel stacks, one per tab.
type TabNode struct {
	NodeKey NodeKey
	Parent  NodeKey
	Stacks  []*StackNode
	Items   []TabItem

	// ActiveStackIndex selects the visible tab; always in [0, len(Stacks)).
	ActiveStackIndex int
	// InitialStackIndex is the tab the container opened on. Back
	// navigation returns here before propagating further up.
	InitialStackIndex int

	// ScopeKey names the destination set this container hosts; empty
	// means unscoped (hosts anything).
	ScopeKey string
	// WrapperKey names the UI chrome rendered around the stacks.
	WrapperKey string
}

func (n *TabNode) Key() NodeKey       { return n.NodeKey }
func (n *TabNode) ParentKey() NodeKey { return n.Parent }

// ActiveStack returns the stack selected by ActiveStackIndex.
func (n *TabNode) ActiveStack() *StackNode {
	if n.ActiveStackIndex < 0 || n.ActiveStackIndex >= len(n.Stacks) {
		return nil
	}
	return n.Stacks[n.ActiveStackIndex]
}

// WithStacks returns a copy holding the given stacks.
func (n *TabNode) WithStacks(stacks []*StackNode) *TabNode {
	c := *n
	c.Stacks = stacks
	return &c
}

// WithActiveIndex returns a copy with the active tab changed.
func (n *TabNode) WithActiveIndex(index int) *TabNode {
	if n.ActiveStackIndex == index {
		return n
	}
	c := *n
	c.ActiveStackIndex = index
	return &c
}

// WithParent returns a copy parented under the given key.
func (n *TabNode) WithParent(parent NodeKey) *TabNode {
	if n.Parent == parent {
		return n
	}
	c := *n
	c.Parent = parent
	return &c
}

// PaneRole identifies a well-known pane in an adaptive layout.
type PaneRole string

const (
	RolePrimary    PaneRole = "primary"
	RoleSupporting PaneRole = "supporting"
	RoleExtra      PaneRole = "extra"
)

// PaneBackBehavior selects how a PaneNode responds to back navigation in
// expanded layouts. In compact layouts the pane always behaves as a single
// stack regardless of this setting.
type PaneBackBehavior int

const (
	// PopUntilScaffoldValueChange pops whichever pane stack would cause
	// the visible layout to change.
	PopUntilScaffoldValueChange PaneBackBehavior = iota
	// PopPrimaryPane always pops the primary pane's stack.
	PopPrimaryPane
	// DelegateToPrimary routes back handling to the primary pane's
	// content and never touches the other panes.
	DelegateToPrimary
)

// PaneConfiguration holds the content shown in one pane role.
type PaneConfiguration struct {
	Content NavNode
}

// PaneNode is an adaptive multi-pane container mapping roles to content.
type PaneNode struct {
	NodeKey NodeKey
	Parent  NodeKey

	Configurations map[PaneRole]PaneConfiguration
	// ActiveRole selects the pane that owns the active path; always a
	// key of Configurations.
	ActiveRole   PaneRole
	BackBehavior PaneBackBehavior

	// ScopeKey names the destination set this container hosts; empty
	// means unscoped.
	ScopeKey string
}

func (n *PaneNode) Key() NodeKey       { return n.NodeKey }
func (n *PaneNode) ParentKey() NodeKey { return n.Parent }

// ActiveConfiguration returns the configuration for the active role.
func (n *PaneNode) ActiveConfiguration() (PaneConfiguration, bool) {
	cfg, ok := n.Configurations[n.ActiveRole]
	return cfg, ok
}

// ContentOf returns the content node for a role, or nil if the role is not
// configured.
func (n *PaneNode) ContentOf(role PaneRole) NavNode {
	cfg, ok := n.Configurations[role]
	if !ok {
		return nil
	}
	return cfg.Content
}

// Roles returns the configured roles in stable order: primary, supporting,
// extra, then anything else.
func (n *PaneNode) Roles() []PaneRole {
	ordered := []PaneRole{RolePrimary, RoleSupporting, RoleExtra}
	roles := make([]PaneRole, 0, len(n.Configurations))
	for _, r := range ordered {
		if _, ok := n.Configurations[r]; ok {
			roles = append(roles, r)
		}
	}
	for r := range n.Configurations {
		if r != RolePrimary && r != RoleSupporting && r != RoleExtra {
			roles = append(roles, r)
		}
	}
	return roles
}

// WithConfiguration returns a copy with the role's configuration inserted or
// replaced. The configuration map is copied; untouched contents are shared.
func (n *PaneNode) WithConfiguration(role PaneRole, cfg PaneConfiguration) *PaneNode {
	c := *n
	c.Configurations = make(map[PaneRole]PaneConfiguration, len(n.Configurations)+1)
	for r, existing := range n.Configurations {
		c.Configurations[r] = existing
	}
	c.Configurations[role] = cfg
	return &c
}

// WithoutConfiguration returns a copy with the role removed. If the removed
// role was active, the first remaining role (in Roles order) becomes active.
func (n *PaneNode) WithoutConfiguration(role PaneRole) *PaneNode {
	c := *n
	c.Configurations = make(map[PaneRole]PaneConfiguration, len(n.Configurations))
	for r, existing := range n.Configurations {
		if r != role {
			c.Configurations[r] = existing
		}
	}
	if c.ActiveRole == role {
		for _, r := range c.Roles() {
			c.ActiveRole = r
			break
		}
	}
	return &c
}

// WithActiveRole returns a copy with the active role changed.
func (n *PaneNode) WithActiveRole(role PaneRole) *PaneNode {
	if n.ActiveRole == role {
		return n
	}
	c := *n
	c.ActiveRole = role
	return &c
}

// WithParent returns a copy parented under the given key.
func (n *PaneNode) WithParent(parent NodeKey) *PaneNode {
	if n.Parent == parent {
		return n
	}
	c := *n
	c.Parent = parent
	return &c
}

// Reparent returns node parented under the given key, copying only when the
// parent actually changes.
func Reparent(node NavNode, parent NodeKey) NavNode {
	switch n := node.(type) {
	case *ScreenNode:
		return n.WithParent(parent)
	case *StackNode:
		return n.WithParent(parent)
	case *TabNode:
		return n.WithParent(parent)
	case *PaneNode:
		return n.WithParent(parent)
	default:
		return node
	}
}
