// Package oplock serializes ledger mutations. Every registry and
// marketplace write runs under one shared lock so each operation commits
// as a whole unit: no two operations interleave their state changes and
// whichever acquires the lock first determines the binding state.
package oplock

import "sync"

type Lock struct {
	mu sync.Mutex
}

func New() *Lock {
	return &Lock{}
}

// Do runs fn while holding the commit lock.
func (l *Lock) Do(fn func() error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn()
}
