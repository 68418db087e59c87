package observe

import (
	"context"
)

// Query is a loader bound to the tables it reads
type Query[T any] struct {
	feed   *Feed
	tables []Table
	load   func(ctx context.Context) (T, error)
}

// NewQuery binds load to tables on feed
func NewQuery[T any](feed *Feed, load func(ctx context.Context) (T, error), tables ...Table) *Query[T] {
	return &Query[T]{
		feed:   feed,
		tables: tables,
		load:   load,
	}
}

// Get runs the loader once on the caller's goroutine
func (q *Query[T]) Get(ctx context.Context) (T, error) {
	return q.load(ctx)
}

// Subscription is a live Query subscription
type Subscription struct {
	feed *Feed
	sub  *subscriber
	stop func() bool
}

// Unsubscribe ends the subscription. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	s.stop()
	s.feed.remove(s.sub)
}

// Subscribe delivers the current value, then a fresh one after every change
// to the query's tables, until ctx is cancelled. fn runs on the feed's
// dispatcher goroutine.
func (q *Query[T]) Subscribe(ctx context.Context, fn func(T, error)) *Subscription {
	refresh := func() {
		if ctx.Err() != nil {
			return
		}
		v, err := q.load(ctx)
		if ctx.Err() != nil {
			return
		}
		fn(v, err)
	}

	s := q.feed.add(q.tables, refresh)
	stop := context.AfterFunc(ctx, func() { q.feed.remove(s) })

	return &Subscription{feed: q.feed, sub: s, stop: stop}
}

// Refresh re-runs the loader for this subscription alone, for when an input
// the loader reads (such as a search box) changed rather than a table.
func (s *Subscription) Refresh() {
	s.feed.enqueue(func() {
		if s.sub.active.Load() {
			s.sub.refresh()
		}
	})
}
