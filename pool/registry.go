// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pool

import (
	"reflect"
	"sync"
)

// Registry holds one Pool per element type. A Registry is owned by whoever
// drives rendering and handed to collaborators, in place of package-level
// pool variables.
type Registry struct {
	mu    sync.RWMutex
	pools map[reflect.Type]any
	max   int
}

// NewRegistry creates an empty registry whose pools retain at most
// maxPerPool instances each (0 = unbounded).
func NewRegistry(maxPerPool int) *Registry {
	return &Registry{
		pools: make(map[reflect.Type]any),
		max:   maxPerPool,
	}
}

// Of returns the pool for T in r, creating it on first use.
func Of[T any](r *Registry) *Pool[T] {
	key := reflect.TypeFor[T]()

	r.mu.RLock()
	p, ok := r.pools[key]
	r.mu.RUnlock()
	if ok {
		return p.(*Pool[T])
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.pools[key]; ok {
		return p.(*Pool[T])
	}
	np := New[T](r.max)
	r.pools[key] = np
	return np
}

// Len returns the number of distinct pools in the registry.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.pools)
}
