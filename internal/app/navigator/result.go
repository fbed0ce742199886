package navigator

import (
	"sync"

	"github.com/bnema/navtree/internal/domain/entity"
)

// Result is what a child screen hands back to the parent that launched it.
type Result struct {
	Value     any
	Cancelled bool
}

// ResultChannel passes one-shot typed results from child screens to their
// parents, keyed by the child's node key. Each key is a cold rendezvous:
// the parent subscribes before pushing the child, exactly one of Deliver or
// Cancel resolves it, and destruction of the child's node cancels it
// automatically through the lifecycle diff.
type ResultChannel struct {
	mu      sync.Mutex
	pending map[entity.NodeKey]chan Result
}

// NewResultChannel creates an empty channel.
func NewResultChannel() *ResultChannel {
	return &ResultChannel{pending: make(map[entity.NodeKey]chan Result)}
}

// Expect registers interest in the result for key and returns the future.
// The returned channel is buffered and receives exactly one Result. A
// second Expect for the same key cancels the first subscription.
func (c *ResultChannel) Expect(key entity.NodeKey) <-chan Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	if prior, ok := c.pending[key]; ok {
		prior <- Result{Cancelled: true}
	}
	ch := make(chan Result, 1)
	c.pending[key] = ch
	return ch
}

// Deliver resolves the pending future for key with value. Delivering to an
// unknown key is a no-op and reports false.
func (c *ResultChannel) Deliver(key entity.NodeKey, value any) bool {
	return c.resolve(key, Result{Value: value})
}

// Cancel resolves the pending future for key as cancelled. Idempotent;
// reports whether a future was pending.
func (c *ResultChannel) Cancel(key entity.NodeKey) bool {
	return c.resolve(key, Result{Cancelled: true})
}

// Pending reports whether a future is waiting on key.
func (c *ResultChannel) Pending(key entity.NodeKey) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.pending[key]
	return ok
}

func (c *ResultChannel) resolve(key entity.NodeKey, result Result) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch, ok := c.pending[key]
	if !ok {
		return false
	}
	delete(c.pending, key)
	ch <- result
	return true
}
