package resource

import (
	"context"
	"sync"
	"time"

	"isiboard/internal/metrics"

	"github.com/rs/zerolog"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

// Snapshot is the published state of a resource: the data slot, the error
// slot, and when the data was last replaced. A failed fetch fills Err but
// never clears Data.
type Snapshot[T any] struct {
	Status    Status    `json:"status"`
	Data      T         `json:"data"`
	Err       string    `json:"error,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Resource holds one fetchable data slot shared by every consumer of that
// data. Concurrent refreshes are allowed; whichever fetch returns last wins
// the snapshot.
type Resource[T any] struct {
	name  string
	fetch func(ctx context.Context) (T, error)

	mu   sync.Mutex
	snap Snapshot[T]

	logger  zerolog.Logger
	metrics *metrics.Metrics
}

func New[T any](name string, fetch func(ctx context.Context) (T, error), logger zerolog.Logger, m *metrics.Metrics) *Resource[T] {
	return &Resource[T]{
		name:    name,
		fetch:   fetch,
		snap:    Snapshot[T]{Status: StatusIdle},
		logger:  logger.With().Str("component", "resource").Str("resource", name).Logger(),
		metrics: m,
	}
}

func (r *Resource[T]) Snapshot() Snapshot[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snap
}

// Refresh re-runs the fetch unconditionally. On success the data is replaced
// wholesale; on failure the error string is recorded and the previous data is
// left untouched.
func (r *Resource[T]) Refresh(ctx context.Context) error {
	r.mu.Lock()
	r.snap.Status = StatusLoading
	r.mu.Unlock()

	data, err := r.fetch(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.snap.Status = StatusFailed
		r.snap.Err = err.Error()
		if r.metrics != nil {
			r.metrics.IncResourceRefresh(r.name, "failure")
		}
		r.logger.Warn().Err(err).Msg("refresh failed")
		return err
	}
	r.snap.Status = StatusReady
	r.snap.Data = data
	r.snap.Err = ""
	r.snap.UpdatedAt = time.Now()
	if r.metrics != nil {
		r.metrics.IncResourceRefresh(r.name, "success")
	}
	return nil
}

// Ensure fetches unless a loaded snapshot is already available. A Failed
// snapshot retries on the next access; a Ready one is served as-is until an
// explicit Refresh.
func (r *Resource[T]) Ensure(ctx context.Context) error {
	r.mu.Lock()
	if r.snap.Status == StatusReady || r.snap.Status == StatusLoading {
		r.mu.Unlock()
		return nil
	}
	r.mu.Unlock()
	return r.Refresh(ctx)
}

// mutate applies fn to the data slot under the lock. Used for optimistic
// local removal after a successful delete.
func (r *Resource[T]) mutate(fn func(T) T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap.Data = fn(r.snap.Data)
}

// Refresher is the common surface of all resource kinds, used by the pair
// combinator and the background refresher.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Loader is the lazy counterpart of Refresher.
type Loader interface {
	Ensure(ctx context.Context) error
}

// RefreshPair refreshes two resources concurrently and joins the outcome: if
// either fails the pair reports failure, while each resource still keeps its
// own data and error slots.
func RefreshPair(ctx context.Context, first, second Refresher) error {
	var wg sync.WaitGroup
	var firstErr, secondErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		firstErr = first.Refresh(ctx)
	}()
	go func() {
		defer wg.Done()
		secondErr = second.Refresh(ctx)
	}()
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return secondErr
}

// EnsurePair is RefreshPair's lazy sibling: both resources load concurrently
// only if they have nothing to serve yet.
func EnsurePair(ctx context.Context, first, second Loader) error {
	var wg sync.WaitGroup
	var firstErr, secondErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		firstErr = first.Ensure(ctx)
	}()
	go func() {
		defer wg.Done()
		secondErr = second.Ensure(ctx)
	}()
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return secondErr
}
