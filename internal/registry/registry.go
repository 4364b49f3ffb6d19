// Package registry implements the per-path lock registry: a map from request
// target path to the [rwlock.RWLock] guarding that path, created on first
// reference and never removed for the lifetime of the server process.
package registry

import (
	"sync"

	"fileserver/internal/rwlock"
)

// Registry hands out the [rwlock.RWLock] for a given path, creating it the
// first time that path is seen.
//
// Locks are never evicted: a path that has ever been requested keeps its
// entry (and therefore its fairness state) for the life of the process. The
// server's namespace is a flat, bounded set of files, so this is a fixed,
// small amount of memory rather than an unbounded leak — and it means two
// goroutines racing to request the same new path for the first time are
// guaranteed to end up sharing exactly one lock instead of each creating
// their own.
//
// The zero value is not usable; construct with [New].
type Registry struct {
	n     int
	locks sync.Map // string -> *rwlock.RWLock
}

// New returns a [Registry] whose locks use fairness parameter n.
func New(n int) *Registry {
	return &Registry{n: n}
}

// Lock returns the [rwlock.RWLock] for path, creating it on first use.
// Concurrent first-use calls for the same path are guaranteed to observe the
// same lock instance.
func (r *Registry) Lock(path string) *rwlock.RWLock {
	if l, ok := r.locks.Load(path); ok {
		return l.(*rwlock.RWLock)
	}

	l, _ := r.locks.LoadOrStore(path, rwlock.NewNWay(r.n))

	return l.(*rwlock.RWLock)
}
