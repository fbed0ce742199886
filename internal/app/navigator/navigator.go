package navigator

import (
	"fmt"
	"sync"
	"time"

	"github.com/bnema/navtree/internal/domain/entity"
	"github.com/bnema/navtree/internal/domain/registry"
	"github.com/bnema/navtree/internal/domain/repository"
	"github.com/bnema/navtree/internal/domain/service"
	"github.com/bnema/navtree/internal/logging"
	"github.com/rs/zerolog"
)

// ErrorHandler receives recoverable operation failures. dest is nil when
// the operation carries no destination. The default handler logs and
// returns; hosts may escalate.
type ErrorHandler func(op string, dest *entity.Destination, err error)

// DetachFunc is invoked exactly once per removed lifecycle node, in
// leaf-to-root order, after the new tree has been published and pending
// results cancelled.
type DetachFunc func(node entity.NavNode)

// EventFunc observes applied operations, e.g. for journaling or analytics.
type EventFunc func(event repository.JournalEvent)

// Config wires a Navigator. Zero-value registries default to permissive or
// empty implementations.
type Config struct {
	Scopes       registry.ScopeRegistry
	Containers   registry.ContainerRegistry
	PaneRoles    registry.PaneRoleRegistry
	DeepLinks    *registry.DeepLinkRegistry
	BackHandlers *registry.BackHandlerRegistry

	SizeClass   service.WindowSizeClass
	InitialRoot entity.NavNode
	GenerateKey func() entity.NodeKey
	// AnimationDurationMS is forwarded on every InProgress transition
	// state as a hint to renderers; zero means no hint.
	AnimationDurationMS int
	// Logger is optional; nil disables operational logging.
	Logger       *zerolog.Logger
	ErrorHandler ErrorHandler
}

// Navigator is the single source of truth for navigation state. All
// mutating methods must run on one goroutine; observers attach from
// anywhere. Within one operation the ordering is: tree publication, result
// cancellation, lifecycle detach, transition publication.
type Navigator struct {
	mu sync.Mutex

	mutator  *service.Mutator
	resolver *service.Resolver

	containers   registry.ContainerRegistry
	deepLinks    *registry.DeepLinkRegistry
	backHandlers *registry.BackHandlerRegistry

	results *ResultChannel
	logger  zerolog.Logger
	onError ErrorHandler

	state        *Signal[entity.NavNode]
	currentDest  *Signal[entity.Destination]
	previousDest *Signal[entity.Destination]
	canBack      *Signal[bool]
	transition   *Signal[TransitionState]

	detachFns   []DetachFunc
	eventFns    []EventFunc
	seq         uint64
	animationMS int
}

// keyCounter is the default key generator: a mutex-guarded counter.
type keyCounter struct {
	mu sync.Mutex
	n  uint64
}

func (k *keyCounter) next() entity.NodeKey {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.n++
	return entity.NodeKey(fmt.Sprintf("n%d", k.n))
}

// New creates a Navigator from cfg.
func New(cfg Config) *Navigator {
	if cfg.Scopes == nil {
		cfg.Scopes = registry.PermissiveScopeRegistry{}
	}
	if cfg.Containers == nil {
		cfg.Containers = registry.NoContainers{}
	}
	if cfg.PaneRoles == nil {
		cfg.PaneRoles = registry.NoPaneRoles{}
	}
	if cfg.DeepLinks == nil {
		cfg.DeepLinks = registry.NewDeepLinkRegistry()
	}
	if cfg.BackHandlers == nil {
		cfg.BackHandlers = registry.NewBackHandlerRegistry()
	}
	if cfg.GenerateKey == nil {
		counter := &keyCounter{}
		cfg.GenerateKey = counter.next
	}
	logger := logging.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	n := &Navigator{
		mutator:      service.NewMutator(cfg.Scopes, cfg.PaneRoles, cfg.GenerateKey),
		resolver:     service.NewResolver(cfg.SizeClass),
		containers:   cfg.Containers,
		deepLinks:    cfg.DeepLinks,
		backHandlers: cfg.BackHandlers,
		results:      NewResultChannel(),
		logger:       logger,
		state:        NewSignal[entity.NavNode](cfg.InitialRoot),
		currentDest:  NewSignal(destinationOf(entity.ActiveLeaf(cfg.InitialRoot))),
		previousDest: NewSignal(previousDestination(cfg.InitialRoot)),
		transition:   NewSignal(idleTransition()),
		animationMS:  cfg.AnimationDurationMS,
	}
	n.canBack = NewSignal(n.computeCanBack(cfg.InitialRoot))
	n.onError = cfg.ErrorHandler
	if n.onError == nil {
		n.onError = n.logError
	}
	return n
}

// logError is the default error handler: log and recover.
func (n *Navigator) logError(op string, dest *entity.Destination, err error) {
	event := n.logger.Warn().Str("op", op).Err(err)
	if dest != nil {
		event = event.Str("dest_kind", dest.Kind).Str("dest_route", dest.Route)
	}
	event.Msg("navigation operation failed")
}

// State is the observable current root.
func (n *Navigator) State() *Signal[entity.NavNode] { return n.state }

// CurrentDestination observes the active leaf's destination; the zero
// destination means no active leaf.
func (n *Navigator) CurrentDestination() *Signal[entity.Destination] { return n.currentDest }

// PreviousDestination observes the destination revealed by one back step in
// the active stack; zero when the stack bottoms out.
func (n *Navigator) PreviousDestination() *Signal[entity.Destination] { return n.previousDest }

// CanNavigateBack observes whether the tree can consume a back action.
func (n *Navigator) CanNavigateBack() *Signal[bool] { return n.canBack }

// TransitionState observes the transition machine.
func (n *Navigator) TransitionState() *Signal[TransitionState] { return n.transition }

// Results exposes the parent-child result channel.
func (n *Navigator) Results() *ResultChannel { return n.results }

// BackHandlers exposes the runtime back-handler registry. Mutations belong
// on the write goroutine.
func (n *Navigator) BackHandlers() *registry.BackHandlerRegistry { return n.backHandlers }

// OnDetach registers a lifecycle detach callback.
func (n *Navigator) OnDetach(fn DetachFunc) {
	n.detachFns = append(n.detachFns, fn)
}

// OnEvent registers an applied-operation observer.
func (n *Navigator) OnEvent(fn EventFunc) {
	n.eventFns = append(n.eventFns, fn)
}

func destinationOf(leaf *entity.ScreenNode) entity.Destination {
	if leaf == nil {
		return entity.Destination{}
	}
	return leaf.Destination
}

func activeLeafKey(root entity.NavNode) entity.NodeKey {
	if leaf := entity.ActiveLeaf(root); leaf != nil {
		return leaf.Key()
	}
	return ""
}

// previousDestination derives the destination one back step away in the
// active stack.
func previousDestination(root entity.NavNode) entity.Destination {
	stack := entity.ActiveStack(root)
	if stack == nil || len(stack.Children) < 2 {
		return entity.Destination{}
	}
	under := stack.Children[len(stack.Children)-2]
	return destinationOf(entity.ActiveLeaf(under))
}

// inProgress builds the InProgress state for one navigation, carrying the
// configured duration hint.
func (n *Navigator) inProgress(transition string, from, to entity.NodeKey) TransitionState {
	return TransitionState{
		Phase:      PhaseInProgress,
		Transition: transition,
		DurationMS: n.animationMS,
		FromKey:    from,
		ToKey:      to,
	}
}

func (n *Navigator) computeCanBack(root entity.NavNode) bool {
	result := n.resolver.Resolve(root)
	if result.Resolution == service.ResolutionCannotHandle {
		result = n.resolver.ResolveCompact(root)
	}
	return result.Resolution == service.ResolutionHandled
}

// apply is the single sequencing point for every mutation: publish the new
// tree and derived signals, cancel results for removed screens, run detach
// callbacks leaf-to-root, then publish the transition. Steps never
// interleave across operations.
func (n *Navigator) apply(op string, dest *entity.Destination, oldRoot, newRoot entity.NavNode, next TransitionState) {
	diff := service.Diff(oldRoot, newRoot)

	n.state.publish(newRoot)
	n.currentDest.publish(destinationOf(entity.ActiveLeaf(newRoot)))
	n.previousDest.publish(previousDestination(newRoot))
	n.canBack.publish(n.computeCanBack(newRoot))

	for key := range diff.RemovedScreenKeys {
		n.results.Cancel(key)
	}
	for _, node := range diff.RemovedLifecycleNodes {
		for _, fn := range n.detachFns {
			fn(node)
		}
	}

	n.transition.publish(next)

	n.seq++
	event := repository.JournalEvent{
		Seq:          n.seq,
		Op:           op,
		RemovedCount: len(diff.RemovedScreenKeys),
		CreatedAt:    time.Now(),
	}
	if dest != nil {
		event.DestKind = dest.Kind
		event.DestRoute = dest.Route
	}
	for _, fn := range n.eventFns {
		fn(event)
	}

	n.logger.Debug().
		Str("op", op).
		Str("active_leaf", string(activeLeafKey(newRoot))).
		Int("removed", len(diff.RemovedScreenKeys)).
		Msg("navigation applied")
}
