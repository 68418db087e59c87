// Package viewstate holds the live state behind each screen. A holder
// subscribes to the queries its screen needs and hands every new snapshot to
// a listener, which runs on the feed's dispatcher goroutine.
package viewstate

import (
	"context"
	"sync"

	"github.com/sangkips/mobileshop-erp/internal/observe"
)

type holder[S any] struct {
	mu       sync.Mutex
	state    S
	listener func(S)
	sub      *observe.Subscription
}

// start subscribes q; apply folds each result into the state
func start[S, T any](ctx context.Context, h *holder[S], q *observe.Query[T], listener func(S), apply func(*S, T, error)) {
	h.mu.Lock()
	h.listener = listener
	h.mu.Unlock()

	sub := q.Subscribe(ctx, func(v T, err error) {
		h.update(func(s *S) { apply(s, v, err) })
	})

	h.mu.Lock()
	h.sub = sub
	h.mu.Unlock()
}

func (h *holder[S]) update(fn func(*S)) {
	h.mu.Lock()
	fn(&h.state)
	state, listener := h.state, h.listener
	h.mu.Unlock()

	if listener != nil {
		listener(state)
	}
}

func (h *holder[S]) refresh() {
	h.mu.Lock()
	sub := h.sub
	h.mu.Unlock()
	if sub != nil {
		sub.Refresh()
	}
}

// State returns the latest snapshot
func (h *holder[S]) State() S {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Stop ends the subscription; cancelling the start context does the same
func (h *holder[S]) Stop() {
	h.mu.Lock()
	sub := h.sub
	h.sub = nil
	h.mu.Unlock()
	if sub != nil {
		sub.Unsubscribe()
	}
}
