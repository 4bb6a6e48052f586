package query

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frogshopping/PharmaCare-POS-sub001/internal/dto"
)

// countingFetcher records every issued fetch and returns a canned page.
type countingFetcher struct {
	calls    atomic.Int32
	lastTerm atomic.Value // string
	total    int64
	delay    func(p Params) time.Duration
}

func (f *countingFetcher) fetch(_ context.Context, p Params) (Page[string], error) {
	f.calls.Add(1)
	f.lastTerm.Store(p.Search)
	if f.delay != nil {
		time.Sleep(f.delay(p))
	}
	pg := dto.NewPagination(p.Page, p.Limit, f.total)
	items := make([]string, 0)
	for i := 0; i < p.Limit; i++ {
		items = append(items, p.Search)
	}
	return Page[string]{Items: items, Pagination: pg}, nil
}

func TestSearchDebounce_FiresOnceWithFinalTerm(t *testing.T) {
	f := &countingFetcher{total: 100}
	c := NewController(f.fetch, NewNotifications(), Config{Debounce: 60 * time.Millisecond})

	// Keystrokes inside the quiet period keep rescheduling the timer.
	c.SetSearchTerm("p")
	time.Sleep(20 * time.Millisecond)
	c.SetSearchTerm("pa")
	time.Sleep(20 * time.Millisecond)
	c.SetSearchTerm("par")

	// Before the quiet period elapses nothing has fired.
	assert.Equal(t, int32(0), f.calls.Load())

	time.Sleep(150 * time.Millisecond)
	c.Wait()

	assert.Equal(t, int32(1), f.calls.Load())
	assert.Equal(t, "par", f.lastTerm.Load().(string))
}

func TestSearchDebounce_ResetsPageToOne(t *testing.T) {
	f := &countingFetcher{total: 100}
	c := NewController(f.fetch, NewNotifications(), Config{Debounce: 10 * time.Millisecond})

	c.SetPage(3)
	c.Wait()
	c.SetSearchTerm("asp")
	time.Sleep(50 * time.Millisecond)
	c.Wait()

	assert.Equal(t, 1, c.Snapshot().Params.Page)
}

func TestSetPage_FetchesImmediately(t *testing.T) {
	f := &countingFetcher{total: 100}
	c := NewController(f.fetch, NewNotifications(), Config{})

	c.SetPage(2)
	c.Wait()

	assert.Equal(t, int32(1), f.calls.Load())
	assert.Equal(t, 2, c.Snapshot().Params.Page)
}

func TestPaginationClamp_BeyondLastPage(t *testing.T) {
	// 45 items at 20 per page = 3 pages; requesting page 10 lands on 3.
	f := &countingFetcher{total: 45}
	c := NewController(f.fetch, NewNotifications(), Config{})

	c.SetPage(10)
	c.Wait()

	snap := c.Snapshot()
	assert.Equal(t, 3, snap.Pagination.CurrentPage)
	assert.Equal(t, 3, snap.Pagination.TotalPages)
	assert.Equal(t, 3, snap.Params.Page)
}

func TestStaleResponse_Dropped(t *testing.T) {
	f := &countingFetcher{total: 100}
	f.delay = func(p Params) time.Duration {
		if p.Page == 1 {
			return 80 * time.Millisecond // the older request is the slow one
		}
		return 0
	}
	c := NewController(f.fetch, NewNotifications(), Config{})

	c.SetPage(1)
	time.Sleep(10 * time.Millisecond)
	c.SetPage(2)
	c.Wait()
	// Let the slow page-1 response arrive after the fast page-2 one.
	time.Sleep(120 * time.Millisecond)

	snap := c.Snapshot()
	assert.Equal(t, 2, snap.Pagination.CurrentPage, "slow stale response must not overwrite the newer one")
	assert.False(t, snap.Loading)
}

func TestFetchFailure_EmptyResultAndQueuedNotice(t *testing.T) {
	notices := NewNotifications()
	fetch := func(_ context.Context, p Params) (Page[string], error) {
		return Page[string]{}, errors.New("HTTP 500: internal error")
	}
	c := NewController(fetch, notices, Config{})

	c.Refresh()
	c.Wait()

	snap := c.Snapshot()
	assert.Empty(t, snap.Items)
	assert.Equal(t, dto.DefaultPagination(1, 20), snap.Pagination)
	require.Equal(t, 1, notices.Len())
	drained := notices.Drain()
	assert.Equal(t, LevelError, drained[0].Level)
	assert.Contains(t, drained[0].Message, "HTTP 500")
	assert.Zero(t, notices.Len())
}

func TestLoadingFlag_TracksInFlightRequest(t *testing.T) {
	f := &countingFetcher{total: 10}
	f.delay = func(Params) time.Duration { return 50 * time.Millisecond }
	c := NewController(f.fetch, NewNotifications(), Config{})

	c.Refresh()
	time.Sleep(10 * time.Millisecond)
	assert.True(t, c.Snapshot().Loading)

	c.Wait()
	assert.False(t, c.Snapshot().Loading)
}

func TestStructuredFilters_ApplyOnDemand(t *testing.T) {
	f := &countingFetcher{total: 10}
	c := NewController(f.fetch, NewNotifications(), Config{})

	// Staging filters never triggers a fetch on its own.
	c.SetDateRange("2025-01-01", "2025-01-31")
	c.SetStatus("completed")
	assert.Equal(t, int32(0), f.calls.Load())

	c.Apply()
	c.Wait()

	assert.Equal(t, int32(1), f.calls.Load())
	p := c.Snapshot().Params
	assert.Equal(t, "2025-01-01", p.DateFrom)
	assert.Equal(t, "completed", p.Status)
	assert.Equal(t, 1, p.Page)
}
