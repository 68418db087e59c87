// Package observe turns committed writes into fresh query results.
//
// Services publish the tables they touched after their transaction commits.
// A Query re-runs its loader whenever one of its tables changes and hands the
// result to every subscriber. All loads and callbacks for a Feed run on its
// single dispatcher goroutine, in publish order, so subscribers never see an
// older value after a newer one.
package observe

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// Table names a table whose changes can be observed
type Table string

const (
	TableShopProfile  Table = "shop_profile"
	TableProducts     Table = "products"
	TableSales        Table = "sales"
	TableCustomers    Table = "customer_khata"
	TableTransactions Table = "khata_transactions"
	TableOldPhones    Table = "old_phone_purchases"
)

// AllTables is published after a factory reset
var AllTables = []Table{
	TableShopProfile, TableProducts, TableSales,
	TableCustomers, TableTransactions, TableOldPhones,
}

// ErrClosed is returned when waiting on a feed that has been closed
var ErrClosed = errors.New("observe: feed closed")

type subscriber struct {
	id      uint64
	tables  map[Table]struct{}
	refresh func()
	active  atomic.Bool
}

func (s *subscriber) watches(tables []Table) bool {
	for _, t := range tables {
		if _, ok := s.tables[t]; ok {
			return true
		}
	}
	return false
}

// Feed fans table-change events out to subscribers
type Feed struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []func()
	subs   []*subscriber
	nextID uint64
	closed bool
	done   chan struct{}
}

// NewFeed starts a feed and its dispatcher goroutine
func NewFeed() *Feed {
	f := &Feed{done: make(chan struct{})}
	f.cond = sync.NewCond(&f.mu)
	go f.run()
	return f
}

func (f *Feed) run() {
	defer close(f.done)
	for {
		f.mu.Lock()
		for len(f.queue) == 0 && !f.closed {
			f.cond.Wait()
		}
		if f.closed {
			f.mu.Unlock()
			return
		}
		job := f.queue[0]
		f.queue[0] = nil
		f.queue = f.queue[1:]
		f.mu.Unlock()

		job()
	}
}

// enqueue never blocks, so a subscriber callback may write and publish
func (f *Feed) enqueue(job func()) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return false
	}
	f.queue = append(f.queue, job)
	f.cond.Signal()
	return true
}

// Publish announces that tables changed. Call it after the write committed.
func (f *Feed) Publish(tables ...Table) {
	if len(tables) == 0 {
		return
	}
	changed := append([]Table(nil), tables...)
	f.enqueue(func() { f.dispatch(changed) })
}

func (f *Feed) dispatch(tables []Table) {
	f.mu.Lock()
	subs := append([]*subscriber(nil), f.subs...)
	f.mu.Unlock()

	for _, s := range subs {
		if s.active.Load() && s.watches(tables) {
			s.refresh()
		}
	}
}

func (f *Feed) add(tables []Table, refresh func()) *subscriber {
	s := &subscriber{
		tables:  make(map[Table]struct{}, len(tables)),
		refresh: refresh,
	}
	for _, t := range tables {
		s.tables[t] = struct{}{}
	}
	s.active.Store(true)

	f.mu.Lock()
	f.nextID++
	s.id = f.nextID
	f.subs = append(f.subs, s)
	f.mu.Unlock()

	f.enqueue(func() {
		if s.active.Load() {
			s.refresh()
		}
	})
	return s
}

func (f *Feed) remove(s *subscriber) {
	s.active.Store(false)

	f.mu.Lock()
	defer f.mu.Unlock()
	for i, cur := range f.subs {
		if cur.id == s.id {
			f.subs = append(f.subs[:i], f.subs[i+1:]...)
			return
		}
	}
}

// Subscribers returns the number of live subscriptions
func (f *Feed) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

// Sync waits until everything published before the call has been delivered
func (f *Feed) Sync(ctx context.Context) error {
	reached := make(chan struct{})
	if !f.enqueue(func() { close(reached) }) {
		return ErrClosed
	}
	select {
	case <-reached:
		return nil
	case <-f.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the dispatcher and drops pending deliveries. It must not be
// called from a subscriber callback.
func (f *Feed) Close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		<-f.done
		return
	}
	f.closed = true
	f.queue = nil
	for _, s := range f.subs {
		s.active.Store(false)
	}
	f.subs = nil
	f.cond.Broadcast()
	f.mu.Unlock()

	<-f.done
}
