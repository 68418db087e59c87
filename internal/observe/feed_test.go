package observe

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	values []string
}

func (r *recorder) add(v string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, v)
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.values...)
}

func waitIdle(t *testing.T, f *Feed) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, f.Sync(ctx))
}

func TestQuery_DeliversInitialValueAndChanges(t *testing.T) {
	feed := NewFeed()
	defer feed.Close()

	var counter atomic.Int64
	q := NewQuery(feed, func(context.Context) (int64, error) {
		return counter.Load(), nil
	}, TableProducts)

	var got []int64
	var mu sync.Mutex
	q.Subscribe(context.Background(), func(v int64, err error) {
		assert.NoError(t, err)
		mu.Lock()
		got = append(got, v)
		mu.Unlock()
	})
	waitIdle(t, feed)

	counter.Store(1)
	feed.Publish(TableProducts)
	waitIdle(t, feed)
	counter.Store(2)
	feed.Publish(TableSales) // not watched
	waitIdle(t, feed)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int64{0, 1}, got)
}

func TestFeed_SubscribersSeeChangesInSubscriptionOrder(t *testing.T) {
	feed := NewFeed()
	defer feed.Close()

	rec := &recorder{}
	q := NewQuery(feed, func(context.Context) (string, error) { return "v", nil }, TableCustomers)

	q.Subscribe(context.Background(), func(string, error) { rec.add("first") })
	q.Subscribe(context.Background(), func(string, error) { rec.add("second") })
	waitIdle(t, feed)

	feed.Publish(TableCustomers, TableTransactions)
	feed.Publish(TableCustomers)
	waitIdle(t, feed)

	assert.Equal(t, []string{
		"first", "second",
		"first", "second",
		"first", "second",
	}, rec.snapshot())
}

func TestQuery_CancelEndsSubscription(t *testing.T) {
	feed := NewFeed()
	defer feed.Close()

	var calls atomic.Int64
	q := NewQuery(feed, func(context.Context) (int, error) { return 0, nil }, TableOldPhones)

	ctx, cancel := context.WithCancel(context.Background())
	q.Subscribe(ctx, func(int, error) { calls.Add(1) })
	waitIdle(t, feed)
	require.Equal(t, int64(1), calls.Load())

	cancel()
	assert.Eventually(t, func() bool { return feed.Subscribers() == 0 }, time.Second, 5*time.Millisecond)

	feed.Publish(TableOldPhones)
	waitIdle(t, feed)
	assert.Equal(t, int64(1), calls.Load())
}

func TestSubscription_Unsubscribe(t *testing.T) {
	feed := NewFeed()
	defer feed.Close()

	var calls atomic.Int64
	q := NewQuery(feed, func(context.Context) (int, error) { return 0, nil }, TableSales)

	sub := q.Subscribe(context.Background(), func(int, error) { calls.Add(1) })
	waitIdle(t, feed)
	sub.Unsubscribe()
	sub.Unsubscribe()

	feed.Publish(TableSales)
	waitIdle(t, feed)
	assert.Equal(t, int64(1), calls.Load())
	assert.Equal(t, 0, feed.Subscribers())
}

func TestFeed_CallbackMayPublish(t *testing.T) {
	feed := NewFeed()
	defer feed.Close()

	var sales atomic.Int64
	salesQ := NewQuery(feed, func(context.Context) (int64, error) { return sales.Load(), nil }, TableSales)
	productsQ := NewQuery(feed, func(context.Context) (int, error) { return 0, nil }, TableProducts)

	var seen []int64
	var mu sync.Mutex
	salesQ.Subscribe(context.Background(), func(v int64, _ error) {
		mu.Lock()
		seen = append(seen, v)
		mu.Unlock()
	})

	fired := false
	productsQ.Subscribe(context.Background(), func(int, error) {
		if !fired {
			fired = true
			sales.Store(7)
			feed.Publish(TableSales)
		}
	})

	waitIdle(t, feed)
	waitIdle(t, feed)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int64{0, 7}, seen)
}

func TestFeed_Closed(t *testing.T) {
	feed := NewFeed()
	feed.Close()
	feed.Close()

	feed.Publish(TableSales)
	assert.ErrorIs(t, feed.Sync(context.Background()), ErrClosed)
}

func TestSubscription_Refresh(t *testing.T) {
	feed := NewFeed()
	defer feed.Close()

	var search atomic.Value
	search.Store("")
	q := NewQuery(feed, func(context.Context) (string, error) { return search.Load().(string), nil }, TableCustomers)

	rec := &recorder{}
	sub := q.Subscribe(context.Background(), func(v string, _ error) { rec.add(v) })
	waitIdle(t, feed)

	search.Store("ali")
	sub.Refresh()
	waitIdle(t, feed)

	assert.Equal(t, []string{"", "ali"}, rec.snapshot())
}
