package mcp

import "sync/atomic"

// ScrapeLock provides non-blocking lock semantics using atomic operations.
// Only one scrape may run at a time; concurrent scrape_dump calls are
// rejected instead of queued.
type ScrapeLock struct {
	state atomic.Int32 // 0 = unlocked, 1 = locked
}

// TryAcquire attempts to acquire the lock without blocking.
// Returns true if the lock was successfully acquired, false otherwise.
func (l *ScrapeLock) TryAcquire() bool {
	return l.state.CompareAndSwap(0, 1)
}

// Release releases the lock.
// Must only be called by the goroutine that successfully acquired the lock.
func (l *ScrapeLock) Release() {
	l.state.Store(0)
}
