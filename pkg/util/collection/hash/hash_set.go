// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package hash

import (
	"fmt"
	"strings"
)

// Set defines a generic set implementation backed by a map.  This is a true
// hashset in that collisions are handle gracefully using buckets, rather than
// simply discarding them.
type Set[T Hasher[T]] struct {
	items *Map[T, struct{}]
}

// NewSet creates a new HashSet with a given underlying capacity.
func NewSet[T Hasher[T]](size uint) *Set[T] {
	return &Set[T]{NewMap[T, struct{}](size)}
}

// Size returns the number of unique items stored in this HashSet.
//
//nolint:revive
func (p *Set[T]) Size() uint {
	return p.items.Size()
}

// MaxBucket returns the size of the largest bucket.
//
//nolint:revive
func (p *Set[T]) MaxBucket() uint {
	return p.items.MaxBucket()
}

// Insert a new item into this set, returning true if it was already contained
// and false otherwise.
//
//nolint:revive
func (p *Set[T]) Insert(item T) bool {
	return p.items.Insert(item, struct{}{})
}

// Remove an item from this set, returning true if it was contained.
//
//nolint:revive
func (p *Set[T]) Remove(item T) bool {
	return p.items.Remove(item)
}

// Contains checks whether the given item is contained within this set, or not.
//
//nolint:revive
func (p *Set[T]) Contains(item T) bool {
	return p.items.ContainsKey(item)
}

// Items returns the items of this set in an unspecified order.
//
//nolint:revive
func (p *Set[T]) Items() []T {
	return p.items.Keys()
}

//nolint:revive
func (p *Set[T]) String() string {
	var r strings.Builder
	// Write opening brace
	r.WriteString("{")
	// Iterate all items
	for i, item := range p.items.Keys() {
		if i != 0 {
			r.WriteString(",")
		}

		r.WriteString(fmt.Sprintf("%v", any(item)))
	}
	// Write closing brace
	r.WriteString("}")
	// Done
	return r.String()
}
