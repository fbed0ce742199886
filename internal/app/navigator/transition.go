package navigator

import (
	"errors"
	"fmt"

	"github.com/bnema/navtree/internal/domain/entity"
)

// ErrIllegalTransition is reported when a transition-control call arrives
// in a phase that does not permit it.
var ErrIllegalTransition = errors.New("illegal transition state change")

// TransitionPhase enumerates the states of the transition machine.
type TransitionPhase int

const (
	// PhaseIdle means no animation is running.
	PhaseIdle TransitionPhase = iota
	// PhaseInProgress is a navigation-driven animation.
	PhaseInProgress
	// PhasePredictiveBack is a user-driven back gesture tentatively
	// revealing the previous screen.
	PhasePredictiveBack
	// PhaseSeeking is a scrubbed transition, reserved for test and
	// replay harnesses.
	PhaseSeeking
)

func (p TransitionPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseInProgress:
		return "in-progress"
	case PhasePredictiveBack:
		return "predictive-back"
	case PhaseSeeking:
		return "seeking"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// TransitionState is the immutable snapshot published on the transition
// signal. Only the fields relevant to the current phase are meaningful.
type TransitionState struct {
	Phase TransitionPhase

	// InProgress and Seeking.
	Transition string
	Progress   float64
	FromKey    entity.NodeKey
	ToKey      entity.NodeKey
	// DurationMS is the host-configured animation duration hint. The
	// core imposes no timing; renderers read it off the emitted state.
	DurationMS int

	// PredictiveBack.
	TouchX      float64
	TouchY      float64
	CurrentKey  entity.NodeKey
	PreviousKey entity.NodeKey
	IsCommitted bool
}

func idleTransition() TransitionState {
	return TransitionState{Phase: PhaseIdle}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
