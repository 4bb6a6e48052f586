// Package query owns the filter/search/pagination state of one list view
// and decides when to refetch.
//
// Refetch policy:
//   - free-text search is debounced: a fixed quiet period measured from the
//     last keystroke, single-flight — a new keystroke cancels and replaces
//     the pending timer (debounce, not throttle);
//   - pagination and explicit filter application refetch immediately.
//
// Every fetch carries a monotonically increasing sequence number; a response
// is applied only when its sequence is the latest issued, so a slow early
// response can never overwrite a newer one.
package query

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/frogshopping/PharmaCare-POS-sub001/internal/dto"
)

// DefaultDebounce is the quiet period for free-text search.
const DefaultDebounce = 500 * time.Millisecond

// Params are the query parameters sent with each list fetch.
type Params struct {
	Search   string
	Page     int // 1-based
	Limit    int
	DateFrom string // YYYY-MM-DD, structured filters applied on demand
	DateTo   string
	Status   string
	Category string
}

// Page is one fetched page of a list view.
type Page[T any] struct {
	Items      []T
	Pagination dto.Pagination
}

// Fetcher loads one page for the current parameters — typically a thin
// wrapper over client.Service.GetAll.
type Fetcher[T any] func(ctx context.Context, p Params) (Page[T], error)

// Snapshot is a point-in-time copy of the view state for rendering.
type Snapshot[T any] struct {
	Items      []T
	Pagination dto.Pagination
	Loading    bool
	Params     Params
}

// Config tunes one controller instance.
type Config struct {
	Debounce time.Duration // 0 means DefaultDebounce
	PageSize int           // 0 means 20
}

// Controller owns the query state for a single list view. Each view creates
// its own instance on mount and drops it on unmount; no state is shared
// between views.
type Controller[T any] struct {
	mu         sync.Mutex
	fetch      Fetcher[T]
	notices    *Notifications
	params     Params
	debounce   time.Duration
	timer      *time.Timer
	seq        uint64 // latest issued fetch sequence
	loading    bool
	items      []T
	pagination dto.Pagination
	done       chan struct{} // closed per-fetch completion, for tests
}

func NewController[T any](fetch Fetcher[T], notices *Notifications, cfg Config) *Controller[T] {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 20
	}
	return &Controller[T]{
		fetch:    fetch,
		notices:  notices,
		debounce: cfg.Debounce,
		params:   Params{Page: 1, Limit: cfg.PageSize},
	}
}

// SetSearchTerm updates the term immediately and schedules a debounced
// refetch. A keystroke arriving before the quiet period elapses cancels and
// replaces the pending timer.
func (c *Controller[T]) SetSearchTerm(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.params.Search = term
	c.params.Page = 1 // new search always starts from the first page

	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.timer = nil
		c.refetchLocked()
	})
}

// SetPage refetches immediately — pagination is explicit user intent.
// The requested page is clamped against the last known page count.
func (c *Controller[T]) SetPage(page int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if page < 1 {
		page = 1
	}
	if c.pagination.TotalPages > 0 && page > c.pagination.TotalPages {
		page = c.pagination.TotalPages
	}
	c.params.Page = page
	c.refetchLocked()
}

// SetDateRange stages a structured filter; it takes effect on Apply.
func (c *Controller[T]) SetDateRange(from, to string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.params.DateFrom, c.params.DateTo = from, to
}

// SetStatus stages a status filter; it takes effect on Apply.
func (c *Controller[T]) SetStatus(status string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.params.Status = status
}

// SetCategory stages a category filter; it takes effect on Apply.
func (c *Controller[T]) SetCategory(category string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.params.Category = category
}

// Apply refetches with the staged structured filters — the explicit
// "Filter" button, not live filtering.
func (c *Controller[T]) Apply() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.params.Page = 1
	c.refetchLocked()
}

// Refresh refetches with the current parameters (view mount, manual reload).
func (c *Controller[T]) Refresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refetchLocked()
}

// Snapshot returns a copy of the current view state.
func (c *Controller[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]T, len(c.items))
	copy(items, c.items)
	return Snapshot[T]{
		Items:      items,
		Pagination: c.pagination,
		Loading:    c.loading,
		Params:     c.params,
	}
}

// Wait blocks until the fetch issued most recently has settled. Intended
// for tests and the console's synchronous rendering loop.
func (c *Controller[T]) Wait() {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()
	if done != nil {
		<-done
	}
}

// refetchLocked issues a new fetch under the caller-held lock. The sequence
// number is captured before releasing the lock; when the response arrives it
// is applied only if no newer fetch has been issued since.
func (c *Controller[T]) refetchLocked() {
	c.seq++
	mySeq := c.seq
	c.loading = true
	p := c.params
	done := make(chan struct{})
	c.done = done

	go func() {
		defer close(done)
		page, err := c.fetch(context.Background(), p)

		c.mu.Lock()
		defer c.mu.Unlock()
		if mySeq != c.seq {
			// Superseded — a newer fetch was issued while this one was in
			// flight. Drop the stale response.
			return
		}
		c.loading = false
		if err != nil {
			log.Error().Err(err).Str("search", p.Search).Int("page", p.Page).Msg("list refetch failed")
			if c.notices != nil {
				c.notices.Push(LevelError, "Could not load results: "+err.Error())
			}
			c.items = []T{}
			c.pagination = dto.DefaultPagination(p.Page, p.Limit)
			return
		}
		c.items = page.Items
		c.pagination = page.Pagination
		// Adopt the server-side clamp: requesting a page beyond the end
		// lands on the last valid page.
		if page.Pagination.CurrentPage > 0 {
			c.params.Page = page.Pagination.CurrentPage
		}
	}()
}
