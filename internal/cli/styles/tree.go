package styles

import (
	"fmt"
	"strings"

	"github.com/bnema/navtree/internal/domain/entity"
)

// RenderTree renders a navigation tree as an indented outline, highlighting
// the active path.
func (t *Theme) RenderTree(root entity.NavNode) string {
	if root == nil {
		return t.Node.Render("(empty tree)")
	}

	onPath := make(map[entity.NodeKey]bool)
	for _, node := range entity.ActivePath(root) {
		onPath[node.Key()] = true
	}

	var b strings.Builder
	t.renderNode(&b, root, onPath, 0)
	return b.String()
}

func (t *Theme) renderNode(b *strings.Builder, node entity.NavNode, onPath map[entity.NodeKey]bool, depth int) {
	indent := strings.Repeat("  ", depth)
	label := describeNode(node)

	style := t.Node
	switch {
	case onPath[node.Key()] && isLeaf(node):
		style = t.ActiveNode
	case isContainer(node):
		style = t.Container
	}
	marker := " "
	if onPath[node.Key()] {
		marker = "›"
	}
	fmt.Fprintf(b, "%s%s %s\n", indent, marker, style.Render(label))

	switch n := node.(type) {
	case *entity.StackNode:
		for _, child := range n.Children {
			t.renderNode(b, child, onPath, depth+1)
		}
	case *entity.TabNode:
		for i, stack := range n.Stacks {
			tabLabel := fmt.Sprintf("tab %d", i)
			if i < len(n.Items) && n.Items[i].Label != "" {
				tabLabel = n.Items[i].Label
			}
			if i == n.ActiveStackIndex {
				tabLabel += " *"
			}
			fmt.Fprintf(b, "%s  %s\n", indent, t.Signal.Render(tabLabel))
			t.renderNode(b, stack, onPath, depth+2)
		}
	case *entity.PaneNode:
		for _, role := range n.Roles() {
			roleLabel := string(role)
			if role == n.ActiveRole {
				roleLabel += " *"
			}
			fmt.Fprintf(b, "%s  %s\n", indent, t.Signal.Render(roleLabel))
			if content := n.ContentOf(role); content != nil {
				t.renderNode(b, content, onPath, depth+2)
			}
		}
	}
}

func describeNode(node entity.NavNode) string {
	switch n := node.(type) {
	case *entity.ScreenNode:
		return fmt.Sprintf("screen %s [%s]", n.NodeKey, n.Destination.Route)
	case *entity.StackNode:
		return fmt.Sprintf("stack %s (%d)", n.NodeKey, len(n.Children))
	case *entity.TabNode:
		return fmt.Sprintf("tabs %s scope=%s", n.NodeKey, n.ScopeKey)
	case *entity.PaneNode:
		return fmt.Sprintf("panes %s scope=%s", n.NodeKey, n.ScopeKey)
	default:
		return fmt.Sprintf("%T %s", node, node.Key())
	}
}

func isLeaf(node entity.NavNode) bool {
	_, ok := node.(*entity.ScreenNode)
	return ok
}

func isContainer(node entity.NavNode) bool {
	switch node.(type) {
	case *entity.TabNode, *entity.PaneNode:
		return true
	default:
		return false
	}
}
