package repository

import (
	"fmt"

	"github.com/gofrs/flock"
)

// ReleaseLock guards against two release runs racing on tag creation
// and output-directory cleanup in the same working tree. The original
// script simply assumed a single invocation; the lock makes that
// assumption explicit.
type ReleaseLock struct {
	lock *flock.Flock
}

// NewReleaseLock creates a lock backed by the given file path.
func NewReleaseLock(path string) *ReleaseLock {
	return &ReleaseLock{lock: flock.New(path)}
}

// Acquire takes the lock without blocking. A held lock means another
// release is in flight.
func (l *ReleaseLock) Acquire() error {
	locked, err := l.lock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire release lock %s: %w", l.lock.Path(), err)
	}
	if !locked {
		return fmt.Errorf("another release is already running (lock held: %s)", l.lock.Path())
	}
	return nil
}

// Release drops the lock. Safe to call when the lock was never taken.
func (l *ReleaseLock) Release() error {
	return l.lock.Unlock()
}
