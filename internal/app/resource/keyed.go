package resource

import (
	"context"
	"sync"
	"time"

	"isiboard/internal/metrics"

	"github.com/rs/zerolog"
)

// KeyedResource is a detail-fetch slot: one current key (a challenge ID, a
// student ID) and the snapshot for that key. Changing the key resets the
// snapshot so the consumer sees a fresh loading state instead of the previous
// item's data.
type KeyedResource[T any] struct {
	name  string
	fetch func(ctx context.Context, key string) (T, error)

	mu   sync.Mutex
	key  string
	snap Snapshot[T]

	logger  zerolog.Logger
	metrics *metrics.Metrics
}

func NewKeyed[T any](name string, fetch func(ctx context.Context, key string) (T, error), logger zerolog.Logger, m *metrics.Metrics) *KeyedResource[T] {
	return &KeyedResource[T]{
		name:    name,
		fetch:   fetch,
		snap:    Snapshot[T]{Status: StatusIdle},
		logger:  logger.With().Str("component", "resource").Str("resource", name).Logger(),
		metrics: m,
	}
}

func (k *KeyedResource[T]) Key() string {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.key
}

func (k *KeyedResource[T]) Snapshot() Snapshot[T] {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.snap
}

// Load points the resource at key and fetches unless that key's snapshot is
// already loaded or loading.
func (k *KeyedResource[T]) Load(ctx context.Context, key string) error {
	k.mu.Lock()
	if key != k.key {
		k.key = key
		k.snap = Snapshot[T]{Status: StatusIdle}
	}
	if k.snap.Status == StatusReady || k.snap.Status == StatusLoading {
		k.mu.Unlock()
		return nil
	}
	k.mu.Unlock()
	return k.refreshKey(ctx, key)
}

// Refresh refetches the current key unconditionally. A no-op before any key
// has been navigated to.
func (k *KeyedResource[T]) Refresh(ctx context.Context) error {
	k.mu.Lock()
	key := k.key
	k.mu.Unlock()
	if key == "" {
		return nil
	}
	return k.refreshKey(ctx, key)
}

func (k *KeyedResource[T]) refreshKey(ctx context.Context, key string) error {
	k.mu.Lock()
	k.snap.Status = StatusLoading
	k.mu.Unlock()

	data, err := k.fetch(ctx, key)

	k.mu.Lock()
	defer k.mu.Unlock()
	// A response for a superseded key is dropped; same-key races stay
	// last-write-wins.
	if k.key != key {
		return nil
	}
	if err != nil {
		k.snap.Status = StatusFailed
		k.snap.Err = err.Error()
		if k.metrics != nil {
			k.metrics.IncResourceRefresh(k.name, "failure")
		}
		k.logger.Warn().Err(err).Str("key", key).Msg("refresh failed")
		return err
	}
	k.snap.Status = StatusReady
	k.snap.Data = data
	k.snap.Err = ""
	k.snap.UpdatedAt = time.Now()
	if k.metrics != nil {
		k.metrics.IncResourceRefresh(k.name, "success")
	}
	return nil
}

// mutateIfKey applies fn to the data slot only if the resource still points
// at key.
func (k *KeyedResource[T]) mutateIfKey(key string, fn func(T) T) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.key != key {
		return
	}
	k.snap.Data = fn(k.snap.Data)
}
