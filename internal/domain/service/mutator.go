// Package service contains the pure domain services operating on navigation
// trees: the mutation algebra, the back-navigation resolver and the
// lifecycle diff. Everything here is a pure function of its inputs; the
// navigator facade owns sequencing, logging and publication.
package service

import (
	"errors"
	"fmt"

	"github.com/bnema/navtree/internal/domain/entity"
	"github.com/bnema/navtree/internal/domain/registry"
)

// ErrNodeNotFound is returned when a node lookup fails.
var ErrNodeNotFound = errors.New("node not found")

// ErrWrongVariant is returned when a keyed operation targets a node of the
// wrong variant.
var ErrWrongVariant = errors.New("wrong node variant")

// ErrIndexOutOfRange is returned for tab indices outside the stack range.
var ErrIndexOutOfRange = errors.New("tab index out of range")

// ErrUnknownPaneRole is returned when a pane operation names a role the
// pane does not configure.
var ErrUnknownPaneRole = errors.New("unknown pane role")

// Mutator implements the tree mutation algebra. Every method is a pure
// function from one root to another: the input tree is never modified, the
// chain from the changed node to the root is rebuilt, and every untouched
// subtree is shared by reference with the input.
type Mutator struct {
	scopes      registry.ScopeRegistry
	paneRoles   registry.PaneRoleRegistry
	generateKey func() entity.NodeKey
}

// NewMutator creates a mutator. generateKey must yield keys never used in
// any tree this mutator touches.
func NewMutator(scopes registry.ScopeRegistry, paneRoles registry.PaneRoleRegistry, generateKey func() entity.NodeKey) *Mutator {
	return &Mutator{
		scopes:      scopes,
		paneRoles:   paneRoles,
		generateKey: generateKey,
	}
}

// newScreen builds a leaf for dest parented under parent.
func (m *Mutator) newScreen(parent entity.NodeKey, dest entity.Destination) *entity.ScreenNode {
	return &entity.ScreenNode{
		NodeKey:     m.generateKey(),
		Parent:      parent,
		Destination: dest,
	}
}

// appendChild returns a copy of stack with node appended and reparented.
func appendChild(stack *entity.StackNode, node entity.NavNode) *entity.StackNode {
	children := make([]entity.NavNode, 0, len(stack.Children)+1)
	children = append(children, stack.Children...)
	children = append(children, entity.Reparent(node, stack.NodeKey))
	return stack.WithChildren(children)
}

// Push performs the scope-aware push of dest into root. A nil root grows a
// fresh single-screen root stack. The decision is made by the innermost
// container on the active path: a PaneNode routes the destination to a pane
// stack via the pane-role registry; a scoped container that declines the
// destination receives a sibling stack in its surrounding StackNode instead,
// leaving the container (and its chrome) underneath for back-restoration.
func (m *Mutator) Push(root entity.NavNode, dest entity.Destination) entity.NavNode {
	if root == nil {
		rootKey := m.generateKey()
		return &entity.StackNode{
			NodeKey:  rootKey,
			Children: []entity.NavNode{m.newScreen(rootKey, dest)},
		}
	}

	path := entity.ActivePath(root)
	active := entity.ActiveStack(root)
	if active == nil {
		// Root exists but holds no stack on the active path. A StackNode
		// root is always on its own active path, so only a root of another
		// variant gets here, and it is returned unchanged.
		if s, ok := root.(*entity.StackNode); ok {
			out, _ := ReplaceNode(root, s.NodeKey, appendChild(s, m.newScreen(s.NodeKey, dest)))
			return out
		}
		return root
	}

	container := innermostContainer(path)

	if pane, ok := container.(*entity.PaneNode); ok {
		return m.pushIntoPane(root, pane, dest)
	}

	if container != nil {
		scopeKey := containerScope(container)
		if scopeKey != "" && !m.scopes.IsInScope(scopeKey, dest) {
			return m.pushSibling(root, path, container, dest)
		}
	}

	out, _ := ReplaceNode(root, active.NodeKey, appendChild(active, m.newScreen(active.NodeKey, dest)))
	return out
}

// pushIntoPane routes dest to a pane stack. A registered role wins; an
// unregistered destination lands on the active pane. Missing role content
// grows a fresh single-screen stack.
func (m *Mutator) pushIntoPane(root entity.NavNode, pane *entity.PaneNode, dest entity.Destination) entity.NavNode {
	role := pane.ActiveRole
	if assigned, ok := m.paneRoles.RoleOf(dest); ok {
		role = assigned
	}

	content := pane.ContentOf(role)
	switch c := content.(type) {
	case *entity.StackNode:
		out, _ := ReplaceNode(root, c.NodeKey, appendChild(c, m.newScreen(c.NodeKey, dest)))
		return out
	case nil:
		stackKey := m.generateKey()
		stack := &entity.StackNode{
			NodeKey:  stackKey,
			Parent:   pane.NodeKey,
			Children: []entity.NavNode{m.newScreen(stackKey, dest)},
		}
		out, _ := ReplaceNode(root, pane.NodeKey, pane.WithConfiguration(role, entity.PaneConfiguration{Content: stack}))
		return out
	default:
		// Bare (stackless) pane content: wrap it together with the new
		// screen so the pane keeps its history.
		stackKey := m.generateKey()
		stack := &entity.StackNode{
			NodeKey:  stackKey,
			Parent:   pane.NodeKey,
			Children: []entity.NavNode{entity.Reparent(content, stackKey), m.newScreen(stackKey, dest)},
		}
		out, _ := ReplaceNode(root, pane.NodeKey, pane.WithConfiguration(role, entity.PaneConfiguration{Content: stack}))
		return out
	}
}

// pushSibling pushes a fresh single-screen stack next to container inside
// the StackNode that contains it, so the new destination covers the
// container instead of entering it.
func (m *Mutator) pushSibling(root entity.NavNode, path []entity.NavNode, container entity.NavNode, dest entity.Destination) entity.NavNode {
	surrounding := stackContaining(path, container)
	if surrounding == nil {
		// No stack above the container; grow a new root stack over
		// everything.
		rootKey := m.generateKey()
		siblingKey := m.generateKey()
		sibling := &entity.StackNode{
			NodeKey:  siblingKey,
			Parent:   rootKey,
			Children: []entity.NavNode{m.newScreen(siblingKey, dest)},
		}
		return &entity.StackNode{
			NodeKey:  rootKey,
			Children: []entity.NavNode{entity.Reparent(root, rootKey), sibling},
		}
	}

	siblingKey := m.generateKey()
	sibling := &entity.StackNode{
		NodeKey:  siblingKey,
		Parent:   surrounding.NodeKey,
		Children: []entity.NavNode{m.newScreen(siblingKey, dest)},
	}
	out, _ := ReplaceNode(root, surrounding.NodeKey, appendChild(surrounding, sibling))
	return out
}

// Pop removes the top screen of the active stack. It reports false when the
// active stack holds at most one element; callers then consult the back
// resolver instead.
func (m *Mutator) Pop(root entity.NavNode) (entity.NavNode, bool) {
	active := entity.ActiveStack(root)
	if active == nil || len(active.Children) <= 1 {
		return root, false
	}
	popped := active.WithChildren(active.Children[:len(active.Children)-1])
	out, _ := ReplaceNode(root, active.NodeKey, popped)
	return out, true
}

// PopToRoute truncates the active stack at the topmost screen whose route
// matches route, dropping the screen too when inclusive. An empty route
// clears down to the stack's first child. An unmatched route leaves the
// tree untouched.
func (m *Mutator) PopToRoute(root entity.NavNode, route string, inclusive bool) entity.NavNode {
	active := entity.ActiveStack(root)
	if active == nil {
		return root
	}
	if route == "" {
		if len(active.Children) <= 1 {
			return root
		}
		out, _ := ReplaceNode(root, active.NodeKey, active.WithChildren(active.Children[:1]))
		return out
	}
	for i := len(active.Children) - 1; i >= 0; i-- {
		screen, ok := active.Children[i].(*entity.ScreenNode)
		if !ok || screen.Destination.Route != route {
			continue
		}
		end := i + 1
		if inclusive {
			end = i
		}
		if end == len(active.Children) {
			return root
		}
		children := make([]entity.NavNode, end)
		copy(children, active.Children[:end])
		out, _ := ReplaceNode(root, active.NodeKey, active.WithChildren(children))
		return out
	}
	return root
}

// ReplaceCurrent swaps the top of the active stack for a fresh screen of
// dest: exactly one key dies and one is born, which the lifecycle diff
// observes as one removal plus one insertion.
func (m *Mutator) ReplaceCurrent(root entity.NavNode, dest entity.Destination) entity.NavNode {
	active := entity.ActiveStack(root)
	if active == nil || len(active.Children) == 0 {
		return m.Push(root, dest)
	}
	children := make([]entity.NavNode, len(active.Children))
	copy(children, active.Children)
	children[len(children)-1] = m.newScreen(active.NodeKey, dest)
	out, _ := ReplaceNode(root, active.NodeKey, active.WithChildren(children))
	return out
}

// ClearAndPush replaces the active stack's entire content with a single
// fresh screen. The stack keeps its key and every ancestor (sibling tabs
// included) is preserved.
func (m *Mutator) ClearAndPush(root entity.NavNode, dest entity.Destination) entity.NavNode {
	active := entity.ActiveStack(root)
	if active == nil {
		return m.Push(root, dest)
	}
	cleared := active.WithChildren([]entity.NavNode{m.newScreen(active.NodeKey, dest)})
	out, _ := ReplaceNode(root, active.NodeKey, cleared)
	return out
}

// SwitchTab selects the stack at index on the named TabNode. The previously
// active stack is retained verbatim.
func (m *Mutator) SwitchTab(root entity.NavNode, tabKey entity.NodeKey, index int) (entity.NavNode, error) {
	node := entity.FindByKey(root, tabKey)
	if node == nil {
		return root, fmt.Errorf("switch tab %q: %w", tabKey, ErrNodeNotFound)
	}
	tab, ok := node.(*entity.TabNode)
	if !ok {
		return root, fmt.Errorf("switch tab %q: %w: %T", tabKey, ErrWrongVariant, node)
	}
	if index < 0 || index >= len(tab.Stacks) {
		return root, fmt.Errorf("switch tab %q to %d of %d: %w", tabKey, index, len(tab.Stacks), ErrIndexOutOfRange)
	}
	if tab.ActiveStackIndex == index {
		return root, nil
	}
	out, _ := ReplaceNode(root, tabKey, tab.WithActiveIndex(index))
	return out, nil
}

// SwitchActivePane selects the active role on the named PaneNode. The role
// must already be configured.
func (m *Mutator) SwitchActivePane(root entity.NavNode, paneKey entity.NodeKey, role entity.PaneRole) (entity.NavNode, error) {
	pane, err := findPane(root, paneKey)
	if err != nil {
		return root, fmt.Errorf("switch pane %q: %w", paneKey, err)
	}
	if _, ok := pane.Configurations[role]; !ok {
		return root, fmt.Errorf("switch pane %q to role %q: %w", paneKey, role, ErrUnknownPaneRole)
	}
	if pane.ActiveRole == role {
		return root, nil
	}
	out, _ := ReplaceNode(root, paneKey, pane.WithActiveRole(role))
	return out, nil
}

// SetPaneConfiguration inserts or replaces the configuration for role on the
// named PaneNode. A newly added role does not become active.
func (m *Mutator) SetPaneConfiguration(root entity.NavNode, paneKey entity.NodeKey, role entity.PaneRole, cfg entity.PaneConfiguration) (entity.NavNode, error) {
	pane, err := findPane(root, paneKey)
	if err != nil {
		return root, fmt.Errorf("set pane configuration %q: %w", paneKey, err)
	}
	if cfg.Content != nil {
		cfg.Content = entity.Reparent(cfg.Content, pane.NodeKey)
	}
	out, _ := ReplaceNode(root, paneKey, pane.WithConfiguration(role, cfg))
	return out, nil
}

// PopPane pops the top screen from the stack configured for role on the
// named PaneNode. It reports false when that stack holds a single element,
// leaving propagation to the caller.
func (m *Mutator) PopPane(root entity.NavNode, paneKey entity.NodeKey, role entity.PaneRole) (entity.NavNode, bool, error) {
	pane, err := findPane(root, paneKey)
	if err != nil {
		return root, false, fmt.Errorf("pop pane %q: %w", paneKey, err)
	}
	content := pane.ContentOf(role)
	if content == nil {
		return root, false, fmt.Errorf("pop pane %q role %q: %w", paneKey, role, ErrUnknownPaneRole)
	}
	stack, ok := content.(*entity.StackNode)
	if !ok {
		return root, false, fmt.Errorf("pop pane %q role %q: %w: %T", paneKey, role, ErrWrongVariant, content)
	}
	if len(stack.Children) <= 1 {
		return root, false, nil
	}
	popped := stack.WithChildren(stack.Children[:len(stack.Children)-1])
	out, _ := ReplaceNode(root, stack.NodeKey, popped)
	return out, true, nil
}

// PushPane pushes dest onto the stack configured for role on the named
// PaneNode. An unconfigured role recovers by growing a fresh single-screen
// stack for it, without changing the active role.
func (m *Mutator) PushPane(root entity.NavNode, paneKey entity.NodeKey, role entity.PaneRole, dest entity.Destination) (entity.NavNode, error) {
	pane, err := findPane(root, paneKey)
	if err != nil {
		return root, fmt.Errorf("push pane %q: %w", paneKey, err)
	}

	content := pane.ContentOf(role)
	if stack, ok := content.(*entity.StackNode); ok {
		out, _ := ReplaceNode(root, stack.NodeKey, appendChild(stack, m.newScreen(stack.NodeKey, dest)))
		return out, nil
	}

	stackKey := m.generateKey()
	children := make([]entity.NavNode, 0, 2)
	if content != nil {
		children = append(children, entity.Reparent(content, stackKey))
	}
	stack := &entity.StackNode{NodeKey: stackKey, Parent: pane.NodeKey}
	stack.Children = append(children, m.newScreen(stackKey, dest))
	out, _ := ReplaceNode(root, pane.NodeKey, pane.WithConfiguration(role, entity.PaneConfiguration{Content: stack}))
	return out, nil
}

// ClearPane removes the configuration for role from the named PaneNode.
// The last remaining configuration cannot be cleared; panes never become
// empty.
func (m *Mutator) ClearPane(root entity.NavNode, paneKey entity.NodeKey, role entity.PaneRole) (entity.NavNode, error) {
	pane, err := findPane(root, paneKey)
	if err != nil {
		return root, fmt.Errorf("clear pane %q: %w", paneKey, err)
	}
	if _, ok := pane.Configurations[role]; !ok {
		return root, fmt.Errorf("clear pane %q role %q: %w", paneKey, role, ErrUnknownPaneRole)
	}
	if len(pane.Configurations) <= 1 {
		return root, fmt.Errorf("clear pane %q role %q: last configuration", paneKey, role)
	}
	out, _ := ReplaceNode(root, paneKey, pane.WithoutConfiguration(role))
	return out, nil
}

// ReplaceNode rebuilds the chain from root to target, substituting
// replacement there and sharing every sibling subtree by reference. The
// replacement inherits the target's parent back-reference.
func ReplaceNode(root entity.NavNode, target entity.NodeKey, replacement entity.NavNode) (entity.NavNode, error) {
	out, found := replaceIn(root, target, replacement)
	if !found {
		return root, fmt.Errorf("replace %q: %w", target, ErrNodeNotFound)
	}
	return out, nil
}

func replaceIn(node entity.NavNode, target entity.NodeKey, replacement entity.NavNode) (entity.NavNode, bool) {
	if node.Key() == target {
		return entity.Reparent(replacement, node.ParentKey()), true
	}

	switch n := node.(type) {
	case *entity.StackNode:
		for i, child := range n.Children {
			rebuilt, found := replaceIn(child, target, replacement)
			if !found {
				continue
			}
			children := make([]entity.NavNode, len(n.Children))
			copy(children, n.Children)
			children[i] = rebuilt
			return n.WithChildren(children), true
		}
	case *entity.TabNode:
		for i, stack := range n.Stacks {
			rebuilt, found := replaceIn(stack, target, replacement)
			if !found {
				continue
			}
			rebuiltStack, ok := rebuilt.(*entity.StackNode)
			if !ok {
				return node, false
			}
			stacks := make([]*entity.StackNode, len(n.Stacks))
			copy(stacks, n.Stacks)
			stacks[i] = rebuiltStack
			return n.WithStacks(stacks), true
		}
	case *entity.PaneNode:
		for role, cfg := range n.Configurations {
			if cfg.Content == nil {
				continue
			}
			rebuilt, found := replaceIn(cfg.Content, target, replacement)
			if !found {
				continue
			}
			cfg.Content = rebuilt
			return n.WithConfiguration(role, cfg), true
		}
	}
	return node, false
}

// PushContainer materialises a container destination: the built container
// node is pushed into the StackNode surrounding the current innermost
// container, or into the deepest active stack when the active path crosses
// no container, or into the root stack when neither exists. A nil root
// becomes a fresh root stack holding only the container; a root that is not
// a StackNode and offers no surrounding stack is reported as an error.
func (m *Mutator) PushContainer(root entity.NavNode, info registry.ContainerInfo) (entity.NavNode, error) {
	if info.Build == nil {
		return root, fmt.Errorf("push container: nil factory")
	}

	if root == nil {
		rootKey := m.generateKey()
		node := info.Build(m.generateKey(), rootKey, m.generateKey)
		return &entity.StackNode{
			NodeKey:  rootKey,
			Children: []entity.NavNode{entity.Reparent(node, rootKey)},
		}, nil
	}

	path := entity.ActivePath(root)
	var target *entity.StackNode
	if container := innermostContainer(path); container != nil {
		target = stackContaining(path, container)
	} else {
		target = entity.ActiveStack(root)
	}
	if target == nil {
		if s, ok := root.(*entity.StackNode); ok {
			target = s
		} else {
			return root, fmt.Errorf("push container: no surrounding stack")
		}
	}

	node := info.Build(m.generateKey(), target.NodeKey, m.generateKey)
	out, err := ReplaceNode(root, target.NodeKey, appendChild(target, node))
	if err != nil {
		return root, err
	}
	return out, nil
}

// ActiveContainerScope returns the scope key declared by the innermost
// container on the active path, or "" when the path crosses no container or
// the container is unscoped.
func ActiveContainerScope(root entity.NavNode) string {
	if root == nil {
		return ""
	}
	container := innermostContainer(entity.ActivePath(root))
	if container == nil {
		return ""
	}
	return containerScope(container)
}

// ActivePane returns the innermost PaneNode on the active path, or nil.
func ActivePane(root entity.NavNode) *entity.PaneNode {
	if root == nil {
		return nil
	}
	var pane *entity.PaneNode
	for _, node := range entity.ActivePath(root) {
		if p, ok := node.(*entity.PaneNode); ok {
			pane = p
		}
	}
	return pane
}

// innermostContainer returns the deepest TabNode or PaneNode on the active
// path, or nil.
func innermostContainer(path []entity.NavNode) entity.NavNode {
	for i := len(path) - 1; i >= 0; i-- {
		switch path[i].(type) {
		case *entity.TabNode, *entity.PaneNode:
			return path[i]
		}
	}
	return nil
}

// stackContaining returns the StackNode directly above node on the path.
func stackContaining(path []entity.NavNode, node entity.NavNode) *entity.StackNode {
	for i, candidate := range path {
		if candidate.Key() != node.Key() {
			continue
		}
		for j := i - 1; j >= 0; j-- {
			if s, ok := path[j].(*entity.StackNode); ok {
				return s
			}
		}
		return nil
	}
	return nil
}

// containerScope returns the scope key declared by a container node.
func containerScope(node entity.NavNode) string {
	switch n := node.(type) {
	case *entity.TabNode:
		return n.ScopeKey
	case *entity.PaneNode:
		return n.ScopeKey
	default:
		return ""
	}
}

func findPane(root entity.NavNode, paneKey entity.NodeKey) (*entity.PaneNode, error) {
	node := entity.FindByKey(root, paneKey)
	if node == nil {
		return nil, ErrNodeNotFound
	}
	pane, ok := node.(*entity.PaneNode)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrWrongVariant, node)
	}
	return pane, nil
}
