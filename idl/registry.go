// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package idl

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// Registry maps a KnotID to the Type that is its mu-unfolding. It is the
// one piece of shared mutable state a serialization call touches: reads
// take a shared read lock, writes take the exclusive lock and are
// collapsed through
// a singleflight.Group so that two goroutines racing to compute the same
// recursive host type's unfolding run the builder closure only once.
//
// A Registry must not hold its lock while calling back into code that
// may itself try to register another knot id, or a self-recursive type
// would deadlock; Resolve takes care to release the lock before invoking
// the caller-supplied build function.
type Registry struct {
	mu      sync.RWMutex
	entries map[KnotID]Type
	group   singleflight.Group
}

// NewRegistry returns an empty Registry. Most callers use the
// process-wide DefaultRegistry instead; NewRegistry exists for tests and
// for callers that want per-call isolation instead of shared state.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[KnotID]Type)}
}

// DefaultRegistry is the process-wide knot registry used by TypeOf,
// ReflectStruct, Marshal, and DefineRecursive when no explicit Registry
// is supplied.
var DefaultRegistry = NewRegistry()

// Lookup returns the registered unfolding for id, if any.
func (r *Registry) Lookup(id KnotID) (Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.entries[id]
	return t, ok
}

// Register idempotently records t as the unfolding for id. Later calls
// with the same id are no-ops: each entry is written at most once with a
// fixed value, so readers may rely on "once observed, never changes".
func (r *Registry) Register(id KnotID, t Type) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; !ok {
		r.entries[id] = t
	}
}

// Resolve returns the unfolding registered for id, computing and
// registering it via build if this is the first observation of id.
// Concurrent first-observations of the same id are collapsed so build
// runs exactly once; build must not itself call Resolve on id (a knot
// cannot unfold to itself).
func (r *Registry) Resolve(id KnotID, build func() Type) Type {
	if t, ok := r.Lookup(id); ok {
		return t
	}
	v, _, _ := r.group.Do(string(id), func() (interface{}, error) {
		if t, ok := r.Lookup(id); ok {
			return t, nil
		}
		t := build()
		r.Register(id, t)
		return t, nil
	})
	return v.(Type)
}
