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

import "fmt"

// slotState is the probe-relevant state of a set slot.
//
//	empty:    never held a key; terminates any probe.
//	occupied: holds a live key.
//	deleted:  tombstone; skipped by probes so that keys placed beyond it
//	          stay reachable. Reverts to empty only when a resize rebuilds
//	          the whole slot array.
type slotState uint8

const (
	slotEmpty slotState = iota
	slotOccupied
	slotDeleted
)

// Slot holds a key and its state. Slots are stored by value in a flat
// array; the set performs no per-element allocation.
type Slot struct {
	key   int64
	state slotState
}

// Set is a hash set of int64 keys using open addressing with linear
// probing. For any key in the set, a linear probe from mixHash(key) %
// capacity reaches the key before reaching an empty slot; removal
// therefore leaves a tombstone rather than clearing the slot, since an
// empty slot on another key's probe path would make that key unreachable.
//
// A Set runs in one of two modes. With WithLoadFactor the set doubles its
// capacity whenever an insert would push occupancy above the threshold,
// rebuilding the slot array and compacting tombstones away in the process.
// Without it the capacity is fixed: new keys are placed only into empty
// slots, and once insert/remove churn has consumed every empty slot Insert
// fails with ErrCapacityExhausted even if Len is small. There is no
// implicit compaction on exhaustion; callers that churn a fixed set are
// expected to size it for the churn or use a growable set.
//
// A Set is NOT goroutine-safe.
type Set struct {
	slots []Slot
	// size counts occupied slots only; tombstones are excluded, so
	// size < capacity always even when occupied+deleted saturates the
	// table.
	size int
	// loadFactor is the growth threshold. Meaningful only when growable.
	loadFactor float64
	growable   bool
	alloc      SetAllocator
}

// NewSet constructs a Set with the given capacity, all slots empty. A
// non-positive capacity falls back to a small default. Fails with
// ErrInvalidLoadFactor if WithLoadFactor was given a value outside (0, 1),
// and with ErrAllocation if the slot array cannot be obtained.
func NewSet(capacity int, opts ...SetOption) (*Set, error) {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	s := &Set{alloc: defaultSetAllocator{}}
	for _, op := range opts {
		op.apply(s)
	}
	if s.growable && (s.loadFactor <= 0 || s.loadFactor >= 1) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidLoadFactor, s.loadFactor)
	}
	slots, err := s.alloc.AllocSlots(capacity)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAllocation, err)
	}
	s.slots = slots
	return s, nil
}

// Insert adds key to the set. It reports (true, nil) if the key was added
// and (false, nil) if the key was already present, in which case nothing is
// mutated. A growable set fails with ErrAllocation if the resize it needed
// could not allocate; a fixed set fails with ErrCapacityExhausted once no
// empty slot is reachable for a new key. In either failure the set is
// unchanged.
func (s *Set) Insert(key int64) (bool, error) {
	if s.growable && float64(s.size+1)/float64(len(s.slots)) > s.loadFactor {
		if err := s.resize(2 * len(s.slots)); err != nil {
			return false, err
		}
	}
	n := uint64(len(s.slots))
	home := mixHash(key) % n
	target := -1
	for i := uint64(0); i < n; i++ {
		probe := (home + i) % n
		sl := &s.slots[probe]
		if sl.state == slotOccupied {
			if sl.key == key {
				return false, nil
			}
			continue
		}
		if sl.state == slotDeleted {
			// The duplicate scan must continue past tombstones: the key
			// may have been placed beyond this slot while it was still
			// occupied. A growable set remembers the first tombstone and
			// will reclaim it; a fixed set has no rebuild that could ever
			// drop tombstones, so it leaves them alone and places new
			// keys into empty slots only.
			if s.growable && target < 0 {
				target = int(probe)
			}
			continue
		}
		// Empty terminates the probe: the key cannot live beyond it.
		if target < 0 {
			target = int(probe)
		}
		break
	}
	if target < 0 {
		return false, ErrCapacityExhausted
	}
	s.slots[target] = Slot{key: key, state: slotOccupied}
	s.size++
	s.checkInvariants()
	return true, nil
}

// Contains reports whether key is in the set. The probe skips tombstones
// and stops at the first empty slot, bounded by one full cycle of the
// table for the saturated no-empty-slot case.
func (s *Set) Contains(key int64) bool {
	n := uint64(len(s.slots))
	home := mixHash(key) % n
	for i := uint64(0); i < n; i++ {
		sl := &s.slots[(home+i)%n]
		if sl.state == slotEmpty {
			return false
		}
		if sl.state == slotOccupied && sl.key == key {
			return true
		}
	}
	return false
}

// Remove deletes key from the set, reporting whether it was present. The
// slot becomes a tombstone, not empty, preserving probe reachability for
// every other key whose probe sequence passes through it.
func (s *Set) Remove(key int64) bool {
	n := uint64(len(s.slots))
	home := mixHash(key) % n
	for i := uint64(0); i < n; i++ {
		sl := &s.slots[(home+i)%n]
		if sl.state == slotEmpty {
			return false
		}
		if sl.state == slotOccupied && sl.key == key {
			sl.state = slotDeleted
			s.size--
			s.checkInvariants()
			return true
		}
	}
	return false
}

// Len returns the number of keys in the set. Tombstones are not counted.
func (s *Set) Len() int {
	return s.size
}

// Close releases the slot array back to the configured allocator. It is
// unnecessary to close a set using the default allocator. Close is
// idempotent, though it is invalid to use a Set after it has been closed.
func (s *Set) Close() {
	if s.slots != nil {
		s.alloc.FreeSlots(s.slots)
		s.slots = nil
	}
	s.size = 0
}

// resize rebuilds the set at newCapacity. Only occupied keys are carried
// over, so every tombstone is compacted away. The old slot array is
// released only after the rebuild completes, so on allocation failure the
// set is untouched.
func (s *Set) resize(newCapacity int) error {
	slots, err := s.alloc.AllocSlots(newCapacity)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAllocation, err)
	}
	n := uint64(newCapacity)
	for _, sl := range s.slots {
		if sl.state != slotOccupied {
			continue
		}
		home := mixHash(sl.key) % n
		for i := uint64(0); ; i++ {
			probe := (home + i) % n
			if slots[probe].state != slotOccupied {
				slots[probe] = Slot{key: sl.key, state: slotOccupied}
				break
			}
		}
	}
	s.alloc.FreeSlots(s.slots)
	s.slots = slots
	s.checkInvariants()
	return nil
}

func (s *Set) checkInvariants() {
	if !invariants {
		return
	}
	occupied := 0
	for i := range s.slots {
		if s.slots[i].state != slotOccupied {
			continue
		}
		occupied++
		if !s.Contains(s.slots[i].key) {
			panic(fmt.Sprintf("invariant failed: slot %d holds key %d but a probe cannot reach it",
				i, s.slots[i].key))
		}
	}
	if occupied != s.size {
		panic(fmt.Sprintf("invariant failed: found %d occupied slots, but size is %d", occupied, s.size))
	}
}
