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

import "errors"

var (
	// ErrAllocation is returned when a container's allocator could not
	// obtain backing storage, during construction, growth, or entry
	// creation. The container that reported it is left in its previous
	// state and remains fully usable. Test with errors.Is; the returned
	// error wraps the allocator's own error.
	ErrAllocation = errors.New("inthash: allocation failed")

	// ErrInvalidLoadFactor is returned by NewSet when WithLoadFactor was
	// given a value outside the open interval (0, 1).
	ErrInvalidLoadFactor = errors.New("inthash: load factor must be in (0, 1)")

	// ErrCapacityExhausted is returned by Set.Insert on a fixed-capacity
	// set when probing finds no empty slot for a new key. Tombstones count
	// against capacity here: a fixed set has no rebuild that could reclaim
	// them, so heavy insert/remove churn exhausts it even while Len is far
	// below capacity.
	ErrCapacityExhausted = errors.New("inthash: set capacity exhausted")
)
