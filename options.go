// Copyright 2026 The Inthash Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package inthash

// MapOption provides an interface to do work on a Map while it is being
// created.
type MapOption[V any] interface {
	apply(m *Map[V])
}

// MapAllocator specifies an interface for allocating and releasing the
// backing arrays of a Map. The default allocator uses Go's builtin make()
// and allows the GC to reclaim memory.
//
// An Alloc method that fails must return a nil slice; the Map surfaces the
// failure as ErrAllocation and continues operating on its previous
// storage. If the allocator is manually managing memory, Map.Close must be
// called to ensure FreeBuckets and FreeEntries are invoked.
type MapAllocator[V any] interface {
	// AllocBuckets should return a slice equivalent to make([]int32, n).
	AllocBuckets(n int) ([]int32, error)

	// AllocEntries should return a slice equivalent to make([]Entry[V], n).
	AllocEntries(n int) ([]Entry[V], error)

	// FreeBuckets can optionally release the memory associated with the
	// supplied slice that is guaranteed to have been allocated by
	// AllocBuckets.
	FreeBuckets(v []int32)

	// FreeEntries can optionally release the memory associated with the
	// supplied slice that is guaranteed to have been allocated by
	// AllocEntries.
	FreeEntries(v []Entry[V])
}

type defaultMapAllocator[V any] struct{}

func (defaultMapAllocator[V]) AllocBuckets(n int) ([]int32, error) {
	return make([]int32, n), nil
}

func (defaultMapAllocator[V]) AllocEntries(n int) ([]Entry[V], error) {
	return make([]Entry[V], n), nil
}

func (defaultMapAllocator[V]) FreeBuckets(v []int32) {
}

func (defaultMapAllocator[V]) FreeEntries(v []Entry[V]) {
}

type mapAllocatorOption[V any] struct {
	alloc MapAllocator[V]
}

func (op mapAllocatorOption[V]) apply(m *Map[V]) {
	m.alloc = op.alloc
}

// WithMapAllocator is an option to specify the MapAllocator to use for a
// Map[V].
func WithMapAllocator[V any](alloc MapAllocator[V]) MapOption[V] {
	return mapAllocatorOption[V]{alloc}
}

// SetOption provides an interface to do work on a Set while it is being
// created.
type SetOption interface {
	apply(s *Set)
}

// SetAllocator specifies an interface for allocating and releasing the
// slot array of a Set. The default allocator uses Go's builtin make() and
// allows the GC to reclaim memory.
//
// AllocSlots must return slots in the empty state (the zero value), as
// make() does. An AllocSlots that fails must return a nil slice; the Set
// surfaces the failure as ErrAllocation and continues operating on its
// previous storage. If the allocator is manually managing memory, Set.Close
// must be called to ensure FreeSlots is invoked.
type SetAllocator interface {
	// AllocSlots should return a slice equivalent to make([]Slot, n).
	AllocSlots(n int) ([]Slot, error)

	// FreeSlots can optionally release the memory associated with the
	// supplied slice that is guaranteed to have been allocated by
	// AllocSlots.
	FreeSlots(v []Slot)
}

type defaultSetAllocator struct{}

func (defaultSetAllocator) AllocSlots(n int) ([]Slot, error) {
	return make([]Slot, n), nil
}

func (defaultSetAllocator) FreeSlots(v []Slot) {
}

type setAllocatorOption struct {
	alloc SetAllocator
}

func (op setAllocatorOption) apply(s *Set) {
	s.alloc = op.alloc
}

// WithSetAllocator is an option to specify the SetAllocator to use for a
// Set.
func WithSetAllocator(alloc SetAllocator) SetOption {
	return setAllocatorOption{alloc}
}

type loadFactorOption struct {
	f float64
}

func (op loadFactorOption) apply(s *Set) {
	s.growable = true
	s.loadFactor = op.f
}

// WithLoadFactor makes a Set growable: before an insert that would push
// size/capacity above f, the set doubles its capacity and rehashes every
// live key into a fresh slot array, dropping accumulated tombstones.
// NewSet fails with ErrInvalidLoadFactor unless f lies in the open
// interval (0, 1). Without this option the set's capacity is fixed.
func WithLoadFactor(f float64) SetOption {
	return loadFactorOption{f}
}
