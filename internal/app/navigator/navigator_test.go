package navigator

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/navtree/internal/app/sample"
	"github.com/bnema/navtree/internal/domain/entity"
	"github.com/bnema/navtree/internal/domain/repository"
	"github.com/bnema/navtree/internal/domain/service"
)

type capturedError struct {
	op  string
	err error
}

type testHarness struct {
	nav    *Navigator
	errors *[]capturedError
}

func newTestNavigator(t *testing.T, sizeClass service.WindowSizeClass) testHarness {
	t.Helper()

	counter := 0
	generateKey := func() entity.NodeKey {
		counter++
		return entity.NodeKey(fmt.Sprintf("t%d", counter))
	}

	var errors []capturedError
	nav := New(Config{
		Scopes:      sample.Scopes(),
		Containers:  sample.Containers(),
		DeepLinks:   sample.DeepLinks(),
		SizeClass:   sizeClass,
		InitialRoot: sample.InitialTree(generateKey),
		GenerateKey: generateKey,
		ErrorHandler: func(op string, _ *entity.Destination, err error) {
			errors = append(errors, capturedError{op: op, err: err})
		},
	})
	return testHarness{nav: nav, errors: &errors}
}

func TestNavigateInScopePushesIntoActiveTab(t *testing.T) {
	h := newTestNavigator(t, service.SizeCompact)

	h.nav.Navigate(sample.HomeDetail("7"), "")

	root := h.nav.State().Current()
	require.NoError(t, entity.Validate(root))
	assert.Len(t, root.(*entity.StackNode).Children, 1, "no sibling: detail is in scope")

	tab := entity.FindFirstTab(root)
	assert.Equal(t, 0, tab.ActiveStackIndex)
	assert.Len(t, tab.Stacks[0].Children, 2)
	assert.Equal(t, sample.KindHomeDetail, h.nav.CurrentDestination().Current().Kind)
	assert.True(t, h.nav.CanNavigateBack().Current())
	assert.Empty(t, *h.errors)
}

func TestNavigateOutOfScopeCoversContainer(t *testing.T) {
	h := newTestNavigator(t, service.SizeCompact)
	h.nav.Navigate(sample.HomeDetail("7"), "")

	h.nav.Navigate(sample.ProductDetail("42"), "")

	root := h.nav.State().Current()
	require.NoError(t, entity.Validate(root))
	require.Len(t, root.(*entity.StackNode).Children, 2, "product detail covers the tabs")

	tab := entity.FindFirstTab(root)
	assert.Len(t, tab.Stacks[0].Children, 2, "home stack untouched underneath")
	assert.Equal(t, sample.KindProductDetail, h.nav.CurrentDestination().Current().Kind)
}

func TestNavigateBackRestoresCoveredContainer(t *testing.T) {
	h := newTestNavigator(t, service.SizeCompact)
	h.nav.Navigate(sample.HomeDetail("7"), "")
	h.nav.Navigate(sample.ProductDetail("42"), "")

	consumed := h.nav.NavigateBack()

	assert.True(t, consumed)
	root := h.nav.State().Current()
	assert.Len(t, root.(*entity.StackNode).Children, 1)
	assert.Equal(t, sample.KindHomeDetail, h.nav.CurrentDestination().Current().Kind,
		"the tab state survived under the sibling")
}

func TestSwitchTabPreservesStacks(t *testing.T) {
	h := newTestNavigator(t, service.SizeCompact)
	h.nav.Navigate(sample.HomeDetail("7"), "")

	tab := entity.FindFirstTab(h.nav.State().Current())
	h.nav.SwitchTab(tab.NodeKey, 2)

	root := h.nav.State().Current()
	got := entity.FindFirstTab(root)
	assert.Equal(t, 2, got.ActiveStackIndex)
	assert.Equal(t, sample.KindProfileRoot, h.nav.CurrentDestination().Current().Kind)
	assert.Len(t, got.Stacks[0].Children, 2, "home keeps its detail")

	t.Run("invalid index goes to the error handler", func(t *testing.T) {
		h.nav.SwitchTab(tab.NodeKey, 9)
		require.NotEmpty(t, *h.errors)
		assert.Equal(t, "switch_tab", (*h.errors)[len(*h.errors)-1].op)
		assert.Same(t, root, h.nav.State().Current(), "tree unchanged on precondition failure")
	})
}

func TestNavigateBackDelegatesOnInitialTabRoot(t *testing.T) {
	h := newTestNavigator(t, service.SizeCompact)
	assert.False(t, h.nav.NavigateBack())
	assert.False(t, h.nav.CanNavigateBack().Current())
}

func TestDeepLinkMaterialisesContainer(t *testing.T) {
	h := newTestNavigator(t, service.SizeCompact)

	ok := h.nav.HandleDeepLink("app://products/42")

	require.True(t, ok)
	root := h.nav.State().Current()
	require.NoError(t, entity.Validate(root))
	require.Len(t, root.(*entity.StackNode).Children, 2, "flow container is a sibling of the tabs")

	flow, isTab := root.(*entity.StackNode).Children[1].(*entity.TabNode)
	require.True(t, isTab)
	assert.Equal(t, sample.ScopeProductFlow, flow.ScopeKey)
	assert.Equal(t, sample.KindProductDetail, h.nav.CurrentDestination().Current().Kind)
}

func TestDeepLinkUnmatched(t *testing.T) {
	h := newTestNavigator(t, service.SizeCompact)
	before := h.nav.State().Current()
	assert.False(t, h.nav.HandleDeepLink("app://unknown/path/here"))
	assert.Same(t, before, h.nav.State().Current())
}

func TestDeepLinkInsideMatchingContainerPushesInPlace(t *testing.T) {
	h := newTestNavigator(t, service.SizeCompact)
	require.True(t, h.nav.HandleDeepLink("app://products/42"))
	rootBefore := h.nav.State().Current()

	// Already inside the ProductFlow container: a second flow deep link
	// pushes within it instead of stacking another container.
	require.True(t, h.nav.HandleDeepLink("app://products/43"))
	root := h.nav.State().Current()
	assert.Len(t, root.(*entity.StackNode).Children,
		len(rootBefore.(*entity.StackNode).Children))
}

func TestNavigateAndReplaceSwapsOneKey(t *testing.T) {
	h := newTestNavigator(t, service.SizeCompact)
	h.nav.Navigate(sample.HomeDetail("1"), "")
	oldLeaf := entity.ActiveLeaf(h.nav.State().Current())

	var cancelled bool
	future := h.nav.Expect(oldLeaf.NodeKey)

	h.nav.NavigateAndReplace(sample.HomeDetail("2"), "")

	root := h.nav.State().Current()
	tab := entity.FindFirstTab(root)
	assert.Len(t, tab.Stacks[0].Children, 2, "stack depth unchanged")
	assert.Equal(t, "2", h.nav.CurrentDestination().Current().Arg("id"))

	select {
	case result := <-future:
		cancelled = result.Cancelled
	default:
	}
	assert.True(t, cancelled, "replaced screen's pending result is cancelled")
}

func TestNavigateAndClearAll(t *testing.T) {
	h := newTestNavigator(t, service.SizeCompact)
	h.nav.Navigate(sample.HomeDetail("1"), "")
	h.nav.Navigate(sample.HomeDetail("2"), "")

	h.nav.NavigateAndClearAll(sample.Settings())

	tab := entity.FindFirstTab(h.nav.State().Current())
	require.Len(t, tab.Stacks[0].Children, 1)
	assert.Equal(t, sample.KindSettings, h.nav.CurrentDestination().Current().Kind)
	assert.Len(t, tab.Stacks[1].Children, 1, "sibling tabs untouched")
}

func TestNavigateAndClearTo(t *testing.T) {
	h := newTestNavigator(t, service.SizeCompact)
	h.nav.Navigate(sample.HomeDetail("1"), "")
	h.nav.Navigate(sample.HomeDetail("2"), "")

	h.nav.NavigateAndClearTo(sample.Settings(), "home", false)

	tab := entity.FindFirstTab(h.nav.State().Current())
	require.Len(t, tab.Stacks[0].Children, 2, "home root plus settings")
	assert.Equal(t, sample.KindSettings, h.nav.CurrentDestination().Current().Kind)
	assert.Equal(t, sample.KindHomeRoot, h.nav.PreviousDestination().Current().Kind)
}

func TestTransitionOrderingGuarantee(t *testing.T) {
	h := newTestNavigator(t, service.SizeCompact)

	var sequence []string
	var lastRoot entity.NavNode
	unsubState := h.nav.State().Subscribe(func(root entity.NavNode) {
		lastRoot = root
		sequence = append(sequence, "state")
	})
	defer unsubState()
	unsubTransition := h.nav.TransitionState().Subscribe(func(ts TransitionState) {
		sequence = append(sequence, "transition")
		if ts.Phase == PhaseInProgress {
			require.NotNil(t, entity.FindByKey(lastRoot, ts.ToKey),
				"transition target must already be in the published tree")
		}
	})
	defer unsubTransition()
	sequence = nil // drop the subscription replays

	h.nav.Navigate(sample.HomeDetail("1"), "slide")

	require.Equal(t, []string{"state", "transition"}, sequence)
	ts := h.nav.TransitionState().Current()
	assert.Equal(t, PhaseInProgress, ts.Phase)
	assert.Equal(t, "slide", ts.Transition)
	assert.Equal(t, entity.ActiveLeaf(h.nav.State().Current()).NodeKey, ts.ToKey)

	h.nav.CompleteTransition()
	assert.Equal(t, PhaseIdle, h.nav.TransitionState().Current().Phase)
}

func TestTransitionCarriesDurationHint(t *testing.T) {
	counter := 0
	generateKey := func() entity.NodeKey {
		counter++
		return entity.NodeKey(fmt.Sprintf("d%d", counter))
	}
	nav := New(Config{
		Scopes:              sample.Scopes(),
		InitialRoot:         sample.InitialTree(generateKey),
		GenerateKey:         generateKey,
		AnimationDurationMS: 250,
	})

	nav.Navigate(sample.HomeDetail("1"), "")
	assert.Equal(t, 250, nav.TransitionState().Current().DurationMS)

	nav.CompleteTransition()
	assert.Zero(t, nav.TransitionState().Current().DurationMS, "idle carries no hint")

	require.True(t, nav.NavigateBack())
	assert.Equal(t, 250, nav.TransitionState().Current().DurationMS)
}

func TestDetachRunsOncePerRemovedNode(t *testing.T) {
	h := newTestNavigator(t, service.SizeCompact)
	h.nav.Navigate(sample.HomeDetail("1"), "")

	detached := make(map[entity.NodeKey]int)
	h.nav.OnDetach(func(node entity.NavNode) {
		detached[node.Key()]++
	})

	removed := entity.ActiveLeaf(h.nav.State().Current()).NodeKey
	require.True(t, h.nav.NavigateBack())

	require.Len(t, detached, 1)
	assert.Equal(t, 1, detached[removed])
}

func TestPredictiveBackCancelLeavesTreeUntouched(t *testing.T) {
	h := newTestNavigator(t, service.SizeCompact)
	h.nav.Navigate(sample.HomeDetail("1"), "")
	h.nav.CompleteTransition()

	before := h.nav.State().Current()

	h.nav.StartPredictiveBack()
	ts := h.nav.TransitionState().Current()
	require.Equal(t, PhasePredictiveBack, ts.Phase)
	assert.Equal(t, entity.ActiveLeaf(before).NodeKey, ts.CurrentKey)
	assert.NotEmpty(t, ts.PreviousKey)

	h.nav.UpdatePredictiveBack(0.3, 0.1, 0.5)
	h.nav.UpdatePredictiveBack(1.7, -0.2, 2.0)
	ts = h.nav.TransitionState().Current()
	assert.Equal(t, 1.0, ts.Progress, "progress clamps to [0,1]")
	assert.Equal(t, 0.0, ts.TouchX)

	h.nav.CancelPredictiveBack()
	assert.Equal(t, PhaseIdle, h.nav.TransitionState().Current().Phase)
	assert.Same(t, before, h.nav.State().Current(), "cancel restores nothing because nothing moved")
}

func TestPredictiveBackCommitPopsAtomically(t *testing.T) {
	h := newTestNavigator(t, service.SizeCompact)
	h.nav.Navigate(sample.HomeDetail("1"), "")
	h.nav.CompleteTransition()

	var sequence []string
	unsubState := h.nav.State().Subscribe(func(entity.NavNode) {
		sequence = append(sequence, "state")
	})
	defer unsubState()
	unsubTransition := h.nav.TransitionState().Subscribe(func(TransitionState) {
		sequence = append(sequence, "transition")
	})
	defer unsubTransition()
	sequence = nil

	h.nav.StartPredictiveBack()
	h.nav.UpdatePredictiveBack(0.9, 0.0, 0.5)
	h.nav.CommitPredictiveBack()

	assert.Equal(t, PhaseIdle, h.nav.TransitionState().Current().Phase)
	assert.Equal(t, sample.KindHomeRoot, h.nav.CurrentDestination().Current().Kind)
	// start + update publish transitions; commit publishes state then idle.
	require.NotEmpty(t, sequence)
	assert.Equal(t, []string{"transition", "transition", "state", "transition"}, sequence)
}

func TestPredictiveBackDeclinedWhenNothingToPop(t *testing.T) {
	h := newTestNavigator(t, service.SizeCompact)
	h.nav.StartPredictiveBack()
	assert.Equal(t, PhaseIdle, h.nav.TransitionState().Current().Phase)
}

func TestTransitionIllegalMovesReported(t *testing.T) {
	h := newTestNavigator(t, service.SizeCompact)

	h.nav.UpdatePredictiveBack(0.5, 0, 0)
	h.nav.CommitPredictiveBack()
	h.nav.CancelPredictiveBack()
	h.nav.UpdateTransitionProgress(0.5)

	require.Len(t, *h.errors, 4)
	for _, captured := range *h.errors {
		assert.ErrorIs(t, captured.err, ErrIllegalTransition)
	}
}

func TestSeekingReservedForHarnesses(t *testing.T) {
	h := newTestNavigator(t, service.SizeCompact)

	h.nav.SeekTransition("fade", 0.25)
	ts := h.nav.TransitionState().Current()
	require.Equal(t, PhaseSeeking, ts.Phase)
	assert.Equal(t, 0.25, ts.Progress)

	h.nav.UpdateTransitionProgress(0.8)
	assert.Equal(t, 0.8, h.nav.TransitionState().Current().Progress)

	h.nav.CompleteTransition()
	assert.Equal(t, PhaseIdle, h.nav.TransitionState().Current().Phase)
}

func TestBackHandlerShortCircuitsResolution(t *testing.T) {
	h := newTestNavigator(t, service.SizeCompact)
	h.nav.Navigate(sample.HomeDetail("1"), "")
	before := h.nav.State().Current()

	remove := h.nav.BackHandlers().Register(func() bool { return true })
	defer remove()

	assert.True(t, h.nav.NavigateBack())
	assert.Same(t, before, h.nav.State().Current(), "the screen handled back itself")

	remove()
	assert.True(t, h.nav.NavigateBack())
	assert.NotSame(t, before, h.nav.State().Current())
}

func TestJournalEventsEmitted(t *testing.T) {
	h := newTestNavigator(t, service.SizeCompact)

	var ops []string
	h.nav.OnEvent(func(event repository.JournalEvent) {
		ops = append(ops, event.Op)
	})

	h.nav.Navigate(sample.HomeDetail("1"), "")
	h.nav.NavigateBack()

	assert.Equal(t, []string{"navigate", "navigate_back"}, ops)
}
