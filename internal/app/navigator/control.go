package navigator

import (
	"fmt"

	"github.com/bnema/navtree/internal/domain/service"
)

// Transition control methods, invoked by the renderer and gesture layer.
// Legal moves only; anything else goes to the error handler and leaves the
// machine untouched.

// UpdateTransitionProgress scrubs an InProgress or Seeking transition.
// Progress is clamped to [0,1].
func (n *Navigator) UpdateTransitionProgress(progress float64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	current := n.transition.Current()
	switch current.Phase {
	case PhaseInProgress, PhaseSeeking:
		current.Progress = clamp01(progress)
		n.transition.publish(current)
	default:
		n.onError("update_transition_progress", nil,
			fmt.Errorf("%w: update in %s", ErrIllegalTransition, current.Phase))
	}
}

// CompleteTransition finishes an InProgress or Seeking transition and
// returns the machine to Idle.
func (n *Navigator) CompleteTransition() {
	n.mu.Lock()
	defer n.mu.Unlock()

	current := n.transition.Current()
	switch current.Phase {
	case PhaseInProgress, PhaseSeeking:
		n.transition.publish(idleTransition())
	case PhaseIdle:
		// Completing an already idle machine is a harmless renderer
		// race.
	default:
		n.onError("complete_transition", nil,
			fmt.Errorf("%w: complete in %s", ErrIllegalTransition, current.Phase))
	}
}

// StartPredictiveBack begins a back gesture. The tree is not touched; the
// previous key is computed from a dry resolver run so the renderer can
// reveal the surface underneath.
func (n *Navigator) StartPredictiveBack() {
	n.mu.Lock()
	defer n.mu.Unlock()

	current := n.transition.Current()
	if current.Phase != PhaseIdle {
		n.onError("start_predictive_back", nil,
			fmt.Errorf("%w: start in %s", ErrIllegalTransition, current.Phase))
		return
	}

	root := n.state.Current()
	result := n.resolver.Resolve(root)
	if result.Resolution == service.ResolutionCannotHandle {
		result = n.resolver.ResolveCompact(root)
	}
	if result.Resolution != service.ResolutionHandled {
		n.logger.Debug().Msg("predictive back declined: nothing to pop")
		return
	}

	n.transition.publish(TransitionState{
		Phase:       PhasePredictiveBack,
		CurrentKey:  activeLeafKey(root),
		PreviousKey: activeLeafKey(result.Root),
	})
}

// UpdatePredictiveBack advances the gesture. Progress and touch
// coordinates are clamped to [0,1].
func (n *Navigator) UpdatePredictiveBack(progress, touchX, touchY float64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	current := n.transition.Current()
	if current.Phase != PhasePredictiveBack {
		n.onError("update_predictive_back", nil,
			fmt.Errorf("%w: update in %s", ErrIllegalTransition, current.Phase))
		return
	}
	current.Progress = clamp01(progress)
	current.TouchX = clamp01(touchX)
	current.TouchY = clamp01(touchY)
	n.transition.publish(current)
}

// CancelPredictiveBack abandons the gesture. The tree is exactly the tree
// observed when the gesture started; nothing was ever mutated.
func (n *Navigator) CancelPredictiveBack() {
	n.mu.Lock()
	defer n.mu.Unlock()

	current := n.transition.Current()
	if current.Phase != PhasePredictiveBack {
		n.onError("cancel_predictive_back", nil,
			fmt.Errorf("%w: cancel in %s", ErrIllegalTransition, current.Phase))
		return
	}
	n.transition.publish(idleTransition())
}

// CommitPredictiveBack performs the back the gesture previewed: the tree
// mutates through the back resolver and the machine returns to Idle, in one
// atomic step. The new tree is observable before the Idle transition state.
func (n *Navigator) CommitPredictiveBack() {
	n.mu.Lock()
	defer n.mu.Unlock()

	current := n.transition.Current()
	if current.Phase != PhasePredictiveBack {
		n.onError("commit_predictive_back", nil,
			fmt.Errorf("%w: commit in %s", ErrIllegalTransition, current.Phase))
		return
	}

	old := n.state.Current()
	result := n.resolver.Resolve(old)
	if result.Resolution == service.ResolutionCannotHandle {
		result = n.resolver.ResolveCompact(old)
	}
	if result.Resolution != service.ResolutionHandled {
		// The start-time preview guaranteed a pop; only a mutation that
		// slipped in between could void it, and the write goroutine
		// forbids that.
		n.onError("commit_predictive_back", nil,
			fmt.Errorf("%w: tree no longer poppable", ErrIllegalTransition))
		n.transition.publish(idleTransition())
		return
	}

	n.apply("commit_predictive_back", nil, old, result.Root, idleTransition())
}

// SeekTransition enters the Seeking phase from Idle. Reserved for test and
// replay harnesses.
func (n *Navigator) SeekTransition(transition string, progress float64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	current := n.transition.Current()
	if current.Phase != PhaseIdle && current.Phase != PhaseSeeking {
		n.onError("seek_transition", nil,
			fmt.Errorf("%w: seek in %s", ErrIllegalTransition, current.Phase))
		return
	}
	n.transition.publish(TransitionState{
		Phase:      PhaseSeeking,
		Transition: transition,
		Progress:   clamp01(progress),
	})
}
