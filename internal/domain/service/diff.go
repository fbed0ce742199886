package service

import "github.com/bnema/navtree/internal/domain/entity"

// DiffResult reports what one mutation destroyed.
type DiffResult struct {
	// RemovedScreenKeys holds every ScreenNode key present in the old
	// tree and absent from the new one.
	RemovedScreenKeys map[entity.NodeKey]struct{}
	// RemovedLifecycleNodes lists every removed node whose variant opts
	// in to lifecycle notifications (screens, tab containers, pane
	// containers), ordered leaf-to-root within each removed subtree.
	RemovedLifecycleNodes []entity.NavNode
}

// Empty reports whether the diff removed nothing.
func (d DiffResult) Empty() bool {
	return len(d.RemovedScreenKeys) == 0 && len(d.RemovedLifecycleNodes) == 0
}

// Diff compares two tree snapshots and reports the removals. One traversal
// of each tree: the new tree is walked once to collect live keys, the old
// tree once to classify what vanished.
func Diff(oldRoot, newRoot entity.NavNode) DiffResult {
	result := DiffResult{RemovedScreenKeys: make(map[entity.NodeKey]struct{})}

	live := make(map[entity.NodeKey]struct{})
	entity.Walk(newRoot, func(n entity.NavNode) bool {
		live[n.Key()] = struct{}{}
		return true
	})

	walkPostorder(oldRoot, func(n entity.NavNode) {
		if _, alive := live[n.Key()]; alive {
			return
		}
		switch n.(type) {
		case *entity.ScreenNode:
			result.RemovedScreenKeys[n.Key()] = struct{}{}
			result.RemovedLifecycleNodes = append(result.RemovedLifecycleNodes, n)
		case *entity.TabNode, *entity.PaneNode:
			result.RemovedLifecycleNodes = append(result.RemovedLifecycleNodes, n)
		}
	})

	return result
}

// walkPostorder visits children before their parent so detach callbacks run
// leaf-to-root.
func walkPostorder(node entity.NavNode, visit func(entity.NavNode)) {
	if node == nil {
		return
	}
	switch n := node.(type) {
	case *entity.StackNode:
		for _, child := range n.Children {
			walkPostorder(child, visit)
		}
	case *entity.TabNode:
		for _, stack := range n.Stacks {
			walkPostorder(stack, visit)
		}
	case *entity.PaneNode:
		for _, role := range n.Roles() {
			walkPostorder(n.ContentOf(role), visit)
		}
	}
	visit(node)
}
