package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/navtree/internal/domain/entity"
)

func TestResolvePopsDeepestActiveStack(t *testing.T) {
	m := newTestMutator()
	root := m.Push(mainTabsTree(), destDetail)

	r := NewResolver(SizeCompact)
	result := r.Resolve(root)
	require.Equal(t, ResolutionHandled, result.Resolution)
	require.NoError(t, entity.Validate(result.Root))
	assert.Equal(t, destHome, entity.ActiveLeaf(result.Root).Destination)
}

func TestResolveRemovesSiblingStackAboveContainer(t *testing.T) {
	m := newTestMutator()
	root := m.Push(mainTabsTree(), destDetail) // Home: [home, detail]
	root = m.Push(root, destProduct)           // sibling stack over the tabs

	r := NewResolver(SizeCompact)
	result := r.Resolve(root)
	require.Equal(t, ResolutionHandled, result.Resolution)
	require.NoError(t, entity.Validate(result.Root))

	// Back lands on the preserved detail screen inside the Home tab.
	assert.Equal(t, destDetail, entity.ActiveLeaf(result.Root).Destination)
	assert.Len(t, result.Root.(*entity.StackNode).Children, 1)
}

func TestResolveReturnsTabToInitial(t *testing.T) {
	m := newTestMutator()
	root, err := m.SwitchTab(mainTabsTree(), "tabs", 2)
	require.NoError(t, err)

	r := NewResolver(SizeCompact)
	result := r.Resolve(root)
	require.Equal(t, ResolutionHandled, result.Resolution)
	assert.Equal(t, destHome, entity.ActiveLeaf(result.Root).Destination)
	tab := entity.FindFirstTab(result.Root)
	assert.Equal(t, tab.InitialStackIndex, tab.ActiveStackIndex)
}

func TestResolveHonoursExplicitInitialTab(t *testing.T) {
	root := mainTabsTree()
	tab := entity.FindFirstTab(root)
	tab.InitialStackIndex = 1
	tab.ActiveStackIndex = 1

	r := NewResolver(SizeCompact)
	result := r.Resolve(root)
	assert.Equal(t, ResolutionDelegateToSystem, result.Resolution,
		"on the configured initial tab with a single screen there is nothing to pop")
}

func TestResolveDelegatesAtInitialTabSingleScreen(t *testing.T) {
	r := NewResolver(SizeCompact)
	result := r.Resolve(mainTabsTree())
	assert.Equal(t, ResolutionDelegateToSystem, result.Resolution)
}

func TestResolveTabPopsBeforeSwitching(t *testing.T) {
	m := newTestMutator()
	root, err := m.SwitchTab(mainTabsTree(), "tabs", 2)
	require.NoError(t, err)
	root = m.Push(root, destDetail) // Profile: [profile, detail]

	r := NewResolver(SizeCompact)
	result := r.Resolve(root)
	require.Equal(t, ResolutionHandled, result.Resolution)

	tab := entity.FindFirstTab(result.Root)
	assert.Equal(t, 2, tab.ActiveStackIndex, "pop wins over tab switch")
	assert.Equal(t, destProfile, entity.ActiveLeaf(result.Root).Destination)
}

func TestResolvePaneCompactPopsActivePane(t *testing.T) {
	root := paneTree(entity.PopUntilScaffoldValueChange)

	r := NewResolver(SizeCompact)
	result := r.Resolve(root)
	require.Equal(t, ResolutionHandled, result.Resolution)

	primary := entity.FindFirstPane(result.Root).ContentOf(entity.RolePrimary).(*entity.StackNode)
	assert.Len(t, primary.Children, 1)
}

func TestResolvePaneCompactRemovesExhaustedPane(t *testing.T) {
	// Root stack: [plain screen stack, pane with single-screen panes].
	pane := paneTree(entity.PopUntilScaffoldValueChange)
	paneNode := entity.FindFirstPane(pane)
	trimmed := paneNode.WithConfiguration(entity.RolePrimary, entity.PaneConfiguration{
		Content: &entity.StackNode{
			NodeKey: "pst-primary",
			Parent:  "pane",
			Children: []entity.NavNode{
				&entity.ScreenNode{NodeKey: "psc-list", Parent: "pst-primary", Destination: destProduct},
			},
		},
	})
	root := &entity.StackNode{
		NodeKey: "root",
		Children: []entity.NavNode{
			&entity.StackNode{
				NodeKey: "base",
				Parent:  "root",
				Children: []entity.NavNode{
					&entity.ScreenNode{NodeKey: "base-screen", Parent: "base", Destination: destHome},
				},
			},
			trimmed.WithParent("root"),
		},
	}

	r := NewResolver(SizeCompact)
	result := r.Resolve(root)
	require.Equal(t, ResolutionHandled, result.Resolution)
	require.NoError(t, entity.Validate(result.Root))
	assert.Nil(t, entity.FindFirstPane(result.Root), "the exhausted pane is removed")
	assert.Equal(t, destHome, entity.ActiveLeaf(result.Root).Destination)
}

func TestResolvePaneExpandedScaffoldValueChange(t *testing.T) {
	r := NewResolver(SizeExpanded)

	t.Run("pops active pane stack first", func(t *testing.T) {
		result := r.Resolve(paneTree(entity.PopUntilScaffoldValueChange))
		require.Equal(t, ResolutionHandled, result.Resolution)
		primary := entity.FindFirstPane(result.Root).ContentOf(entity.RolePrimary).(*entity.StackNode)
		assert.Len(t, primary.Children, 1)
	})

	t.Run("removes active role once its stack bottoms out", func(t *testing.T) {
		first := r.Resolve(paneTree(entity.PopUntilScaffoldValueChange))
		require.Equal(t, ResolutionHandled, first.Resolution)
		second := r.Resolve(first.Root)
		require.Equal(t, ResolutionHandled, second.Resolution)

		pane := entity.FindFirstPane(second.Root)
		require.NotNil(t, pane)
		assert.Nil(t, pane.ContentOf(entity.RolePrimary), "primary configuration removed")
		assert.Equal(t, entity.RoleSupporting, pane.ActiveRole)
	})
}

func TestResolvePaneExpandedPopPrimary(t *testing.T) {
	root := paneTree(entity.PopPrimaryPane)
	pane := entity.FindFirstPane(root)
	pane.ActiveRole = entity.RoleSupporting

	r := NewResolver(SizeExpanded)
	result := r.Resolve(root)
	require.Equal(t, ResolutionHandled, result.Resolution)

	primary := entity.FindFirstPane(result.Root).ContentOf(entity.RolePrimary).(*entity.StackNode)
	assert.Len(t, primary.Children, 1, "primary pops even while supporting is active")
}

func TestResolvePaneExpandedDelegateToPrimaryDeclines(t *testing.T) {
	root := paneTree(entity.DelegateToPrimary)
	pane := entity.FindFirstPane(root)
	// Exhaust the primary stack so delegation has nothing to pop.
	exhausted := pane.WithConfiguration(entity.RolePrimary, entity.PaneConfiguration{
		Content: &entity.StackNode{
			NodeKey: "pst-primary",
			Parent:  "pane",
			Children: []entity.NavNode{
				&entity.ScreenNode{NodeKey: "psc-list", Parent: "pst-primary", Destination: destProduct},
			},
		},
	})
	root = &entity.StackNode{NodeKey: "root", Children: []entity.NavNode{exhausted.WithParent("root")}}

	r := NewResolver(SizeExpanded)
	result := r.Resolve(root)
	require.Equal(t, ResolutionCannotHandle, result.Resolution)

	// The compact fallback still finds nothing in the active pane's
	// single-screen stack, so the cascade surfaces DelegateToSystem.
	fallback := r.ResolveCompact(root)
	assert.Equal(t, ResolutionDelegateToSystem, fallback.Resolution)
}

func TestResolveNilRoot(t *testing.T) {
	r := NewResolver(SizeCompact)
	assert.Equal(t, ResolutionDelegateToSystem, r.Resolve(nil).Resolution)
}
