package registry

// BackHandler is a predicate-callback registered by a currently rendered
// screen. Returning true consumes the back event before tree resolution
// runs.
type BackHandler func() bool

type backHandlerEntry struct {
	id int
	fn BackHandler
}

// BackHandlerRegistry holds the ordered collection of screen back handlers.
// Registration order is render order: the most recently registered handler
// is consulted first. Register, the returned remove func, and Handle must
// all be called from the navigator's write goroutine.
type BackHandlerRegistry struct {
	nextID   int
	handlers []backHandlerEntry
}

// NewBackHandlerRegistry creates an empty registry.
func NewBackHandlerRegistry() *BackHandlerRegistry {
	return &BackHandlerRegistry{}
}

// Register appends a handler and returns its removal func. Removal is
// idempotent and typically deferred by the registering screen.
func (r *BackHandlerRegistry) Register(fn BackHandler) func() {
	r.nextID++
	id := r.nextID
	r.handlers = append(r.handlers, backHandlerEntry{id: id, fn: fn})
	return func() {
		for i, entry := range r.handlers {
			if entry.id == id {
				r.handlers = append(r.handlers[:i], r.handlers[i+1:]...)
				return
			}
		}
	}
}

// Handle consults handlers topmost-first and reports whether one consumed
// the back event.
func (r *BackHandlerRegistry) Handle() bool {
	for i := len(r.handlers) - 1; i >= 0; i-- {
		if r.handlers[i].fn() {
			return true
		}
	}
	return false
}

// Len returns the number of registered handlers.
func (r *BackHandlerRegistry) Len() int {
	return len(r.handlers)
}
