package entity

import "fmt"

// activeChild returns the child selected by a node's activity rule, or nil
// for leaves and empty containers.
func activeChild(node NavNode) NavNode {
	switch n := node.(type) {
	case *StackNode:
		return n.Top()
	case *TabNode:
		if s := n.ActiveStack(); s != nil {
			return s
		}
		return nil
	case *PaneNode:
		if cfg, ok := n.ActiveConfiguration(); ok {
			return cfg.Content
		}
		return nil
	default:
		return nil
	}
}

// ActivePath returns the walk from root to the active leaf, root first.
// The path ends early if a container on it is empty.
func ActivePath(root NavNode) []NavNode {
	var path []NavNode
	for node := root; node != nil; node = activeChild(node) {
		path = append(path, node)
	}
	return path
}

// ActiveLeaf returns the unique active ScreenNode, following each
// container's activity rule, or nil if the root stack is empty.
func ActiveLeaf(root NavNode) *ScreenNode {
	path := ActivePath(root)
	if len(path) == 0 {
		return nil
	}
	leaf, _ := path[len(path)-1].(*ScreenNode)
	return leaf
}

// ActiveStack returns the deepest StackNode on the active path, or nil.
func ActiveStack(root NavNode) *StackNode {
	var deepest *StackNode
	for _, node := range ActivePath(root) {
		if s, ok := node.(*StackNode); ok {
			deepest = s
		}
	}
	return deepest
}

// children returns a node's structural children in order. Pane children use
// the stable Roles order so walks are deterministic.
func children(node NavNode) []NavNode {
	switch n := node.(type) {
	case *StackNode:
		return n.Children
	case *TabNode:
		kids := make([]NavNode, len(n.Stacks))
		for i, s := range n.Stacks {
			kids[i] = s
		}
		return kids
	case *PaneNode:
		kids := make([]NavNode, 0, len(n.Configurations))
		for _, role := range n.Roles() {
			if c := n.ContentOf(role); c != nil {
				kids = append(kids, c)
			}
		}
		return kids
	default:
		return nil
	}
}

// Walk visits every node pre-order. Returning false from visit stops the
// walk.
func Walk(root NavNode, visit func(NavNode) bool) bool {
	if root == nil {
		return true
	}
	if !visit(root) {
		return false
	}
	for _, child := range children(root) {
		if !Walk(child, visit) {
			return false
		}
	}
	return true
}

// FindByKey returns the node with the given key, or nil. O(n) tree walk.
func FindByKey(root NavNode, key NodeKey) NavNode {
	var found NavNode
	Walk(root, func(n NavNode) bool {
		if n.Key() == key {
			found = n
			return false
		}
		return true
	})
	return found
}

// FindFirstTab returns the first TabNode in pre-order, or nil.
func FindFirstTab(root NavNode) *TabNode {
	var found *TabNode
	Walk(root, func(n NavNode) bool {
		if t, ok := n.(*TabNode); ok {
			found = t
			return false
		}
		return true
	})
	return found
}

// FindFirstPane returns the first PaneNode in pre-order, or nil.
func FindFirstPane(root NavNode) *PaneNode {
	var found *PaneNode
	Walk(root, func(n NavNode) bool {
		if p, ok := n.(*PaneNode); ok {
			found = p
			return false
		}
		return true
	})
	return found
}

// ScreenKeys collects the keys of every ScreenNode in the tree.
func ScreenKeys(root NavNode) map[NodeKey]struct{} {
	keys := make(map[NodeKey]struct{})
	Walk(root, func(n NavNode) bool {
		if _, ok := n.(*ScreenNode); ok {
			keys[n.Key()] = struct{}{}
		}
		return true
	})
	return keys
}

// CountNodes returns the number of nodes in the tree.
func CountNodes(root NavNode) int {
	count := 0
	Walk(root, func(NavNode) bool {
		count++
		return true
	})
	return count
}

// Validate checks the structural invariants of a tree rooted at root:
// parent back-references match containment, keys are unique, tab and pane
// selectors are in range, and the root is a StackNode. It returns the first
// violation found. Well-formed mutator output always validates; a failure
// indicates a programming error.
func Validate(root NavNode) error {
	if root == nil {
		return fmt.Errorf("nil root")
	}
	if _, ok := root.(*StackNode); !ok {
		return fmt.Errorf("root %q is %T, want *StackNode", root.Key(), root)
	}
	if root.ParentKey() != "" {
		return fmt.Errorf("root %q has parent %q, want none", root.Key(), root.ParentKey())
	}
	seen := make(map[NodeKey]struct{})
	return validateNode(root, seen)
}

func validateNode(node NavNode, seen map[NodeKey]struct{}) error {
	if node.Key() == "" {
		return fmt.Errorf("%T with empty key", node)
	}
	if _, dup := seen[node.Key()]; dup {
		return fmt.Errorf("duplicate key %q", node.Key())
	}
	seen[node.Key()] = struct{}{}

	switch n := node.(type) {
	case *TabNode:
		if len(n.Stacks) == 0 {
			return fmt.Errorf("tab node %q has no stacks", n.NodeKey)
		}
		if n.ActiveStackIndex < 0 || n.ActiveStackIndex >= len(n.Stacks) {
			return fmt.Errorf("tab node %q active index %d out of range [0,%d)",
				n.NodeKey, n.ActiveStackIndex, len(n.Stacks))
		}
		if n.InitialStackIndex < 0 || n.InitialStackIndex >= len(n.Stacks) {
			return fmt.Errorf("tab node %q initial index %d out of range [0,%d)",
				n.NodeKey, n.InitialStackIndex, len(n.Stacks))
		}
	case *PaneNode:
		if len(n.Configurations) == 0 {
			return fmt.Errorf("pane node %q has no configurations", n.NodeKey)
		}
		if _, ok := n.Configurations[n.ActiveRole]; !ok {
			return fmt.Errorf("pane node %q active role %q not configured", n.NodeKey, n.ActiveRole)
		}
	}

	for _, child := range children(node) {
		if child.ParentKey() != node.Key() {
			return fmt.Errorf("node %q has parent back-reference %q, contained by %q",
				child.Key(), child.ParentKey(), node.Key())
		}
		if err := validateNode(child, seen); err != nil {
			return err
		}
	}
	return nil
}
