// Package locks provides per-key exclusive locking for decision pipelines.
// A lock is held for the full duration of a multi-stage operation so that a
// second decision for the same key fails fast instead of queueing.
package locks

import (
	"context"
	"errors"
	"sync"
)

// ErrHeld indicates the key is already locked by an in-flight operation.
var ErrHeld = errors.New("lock already held")

// ReleaseFunc releases a previously acquired lock.
type ReleaseFunc func()

// Locker grants exclusive access to a key. Acquire fails with ErrHeld when
// the key is locked; it never blocks waiting for the holder.
type Locker interface {
	Acquire(ctx context.Context, key string) (ReleaseFunc, error)
}

type keyed struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// NewKeyed creates an in-process Locker suitable for single-instance deployments.
func NewKeyed() Locker {
	return &keyed{
		held: make(map[string]struct{}),
	}
}

func (k *keyed) Acquire(_ context.Context, key string) (ReleaseFunc, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if _, taken := k.held[key]; taken {
		return nil, ErrHeld
	}

	k.held[key] = struct{}{}
	return func() {
		k.mu.Lock()
		defer k.mu.Unlock()
		delete(k.held, key)
	}, nil
}
