// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package pool provides free lists for objects reused across frames.
//
// A Pool never constructs instances. Acquire reports an empty pool with
// ok == false and the caller builds a new value; Release hands a value back.
// Callers reset instances before or as part of Release so no stale
// references survive into the next use.
//
// Thread safety: Pool and Registry are safe for concurrent use.
package pool

import "sync"

// Pool is a mutex-guarded free list of T.
type Pool[T any] struct {
	mu      sync.Mutex
	free    []T
	maxSize int // max retained instances, 0 = unbounded

	acquired uint64
	misses   uint64
	released uint64
}

// New creates a pool retaining at most maxSize released instances.
// A maxSize of 0 means unbounded.
func New[T any](maxSize int) *Pool[T] {
	return &Pool[T]{maxSize: maxSize}
}

// Acquire pops a previously released instance.
// It returns the zero value and false when the pool is empty.
func (p *Pool[T]) Acquire() (T, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := len(p.free)
	if n == 0 {
		p.misses++
		var zero T
		return zero, false
	}
	v := p.free[n-1]
	var zero T
	p.free[n-1] = zero
	p.free = p.free[:n-1]
	p.acquired++
	return v, true
}

// Release pushes v onto the free list. When the pool is at capacity the
// instance is dropped and left to the garbage collector.
func (p *Pool[T]) Release(v T) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.maxSize > 0 && len(p.free) >= p.maxSize {
		return
	}
	p.free = append(p.free, v)
	p.released++
}

// Len returns the number of instances waiting in the free list.
func (p *Pool[T]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free)
}

// Stats is a snapshot of pool counters.
type Stats struct {
	// Acquired counts Acquire calls served from the free list.
	Acquired uint64

	// Misses counts Acquire calls that found the pool empty.
	Misses uint64

	// Released counts instances accepted by Release.
	Released uint64
}

// Stats returns the pool counters. A steady state with reuse shows Misses
// no longer growing.
func (p *Pool[T]) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Stats{Acquired: p.acquired, Misses: p.misses, Released: p.released}
}

// Clear drops every retained instance.
func (p *Pool[T]) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	clear(p.free)
	p.free = p.free[:0]
}
