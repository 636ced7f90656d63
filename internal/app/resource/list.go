package resource

import (
	"context"
	"sort"
	"sync"
	"time"

	"isiboard/internal/metrics"

	"github.com/rs/zerolog"
)

const deleteErrTTL = 5 * time.Second

// deleteTracker holds the in-flight deletion set and the transient delete
// error shared by the delete-capable resource kinds.
type deleteTracker struct {
	mu       sync.Mutex
	inflight map[string]struct{}
	errMsg   string
	timer    *time.Timer
	ttl      time.Duration
}

func newDeleteTracker() *deleteTracker {
	return &deleteTracker{inflight: make(map[string]struct{}), ttl: deleteErrTTL}
}

// begin marks id as in flight; false means a delete for id is already
// running.
func (t *deleteTracker) begin(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.inflight[id]; ok {
		return false
	}
	t.inflight[id] = struct{}{}
	return true
}

func (t *deleteTracker) end(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.inflight, id)
}

// fail records the transient error and arms the self-clear timer. A newer
// failure restarts the countdown.
func (t *deleteTracker) fail(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.errMsg = msg
	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = time.AfterFunc(t.ttl, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		t.errMsg = ""
	})
}

func (t *deleteTracker) state() ([]string, string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	ids := make([]string, 0, len(t.inflight))
	for id := range t.inflight {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, t.errMsg
}

// ListSnapshot extends a slice snapshot with the delete-side state.
type ListSnapshot[T any] struct {
	Snapshot[[]T]
	Deleting  []string `json:"deleting,omitempty"`
	DeleteErr string   `json:"delete_error,omitempty"`
}

// ListResource is a Resource over a slice with optimistic delete: a
// successful delete removes exactly the matching element locally with no
// confirming re-fetch, a failed one leaves the slice unchanged and surfaces a
// transient error that clears itself after 5 seconds.
type ListResource[T any] struct {
	res   *Resource[[]T]
	id    func(T) string
	del   func(ctx context.Context, id string) error
	track *deleteTracker
}

func NewList[T any](name string, fetch func(ctx context.Context) ([]T, error), id func(T) string, del func(ctx context.Context, id string) error, logger zerolog.Logger, m *metrics.Metrics) *ListResource[T] {
	return &ListResource[T]{
		res:   New(name, fetch, logger, m),
		id:    id,
		del:   del,
		track: newDeleteTracker(),
	}
}

func (l *ListResource[T]) Refresh(ctx context.Context) error { return l.res.Refresh(ctx) }
func (l *ListResource[T]) Ensure(ctx context.Context) error  { return l.res.Ensure(ctx) }

func (l *ListResource[T]) Snapshot() ListSnapshot[T] {
	deleting, deleteErr := l.track.state()
	return ListSnapshot[T]{Snapshot: l.res.Snapshot(), Deleting: deleting, DeleteErr: deleteErr}
}

func (l *ListResource[T]) Delete(ctx context.Context, id string) error {
	if !l.track.begin(id) {
		return nil
	}
	err := l.del(ctx, id)
	l.track.end(id)
	if err != nil {
		l.track.fail(err.Error())
		return err
	}
	l.res.mutate(func(items []T) []T {
		return removeByID(items, l.id, id)
	})
	return nil
}

// KeyedListResource is the per-key variant: a keyed slice (one student's
// files) with the same optimistic delete contract. The delete func receives
// the current key alongside the element ID.
type KeyedListResource[T any] struct {
	keyed *KeyedResource[[]T]
	id    func(T) string
	del   func(ctx context.Context, key, id string) error
	track *deleteTracker
}

func NewKeyedList[T any](name string, fetch func(ctx context.Context, key string) ([]T, error), id func(T) string, del func(ctx context.Context, key, id string) error, logger zerolog.Logger, m *metrics.Metrics) *KeyedListResource[T] {
	return &KeyedListResource[T]{
		keyed: NewKeyed(name, fetch, logger, m),
		id:    id,
		del:   del,
		track: newDeleteTracker(),
	}
}

func (l *KeyedListResource[T]) Key() string { return l.keyed.Key() }

func (l *KeyedListResource[T]) Load(ctx context.Context, key string) error {
	return l.keyed.Load(ctx, key)
}

func (l *KeyedListResource[T]) Refresh(ctx context.Context) error { return l.keyed.Refresh(ctx) }

func (l *KeyedListResource[T]) Snapshot() ListSnapshot[T] {
	deleting, deleteErr := l.track.state()
	return ListSnapshot[T]{Snapshot: l.keyed.Snapshot(), Deleting: deleting, DeleteErr: deleteErr}
}

func (l *KeyedListResource[T]) Delete(ctx context.Context, id string) error {
	key := l.keyed.Key()
	if !l.track.begin(id) {
		return nil
	}
	err := l.del(ctx, key, id)
	l.track.end(id)
	if err != nil {
		l.track.fail(err.Error())
		return err
	}
	l.keyed.mutateIfKey(key, func(items []T) []T {
		return removeByID(items, l.id, id)
	})
	return nil
}

// removeByID copies items without the matching element; siblings are carried
// over untouched.
func removeByID[T any](items []T, idOf func(T) string, id string) []T {
	next := make([]T, 0, len(items))
	for _, item := range items {
		if idOf(item) == id {
			continue
		}
		next = append(next, item)
	}
	return next
}
