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
package set

import (
	"cmp"
	"fmt"
	"sort"
	"strings"

	"github.com/consensys/go-resolve/pkg/util/collection/iter"
)

// SortedSet is an array of unique sorted values (i.e. no duplicates).  Symbol
// name sets are represented this way, so that iterating them is deterministic.
type SortedSet[T cmp.Ordered] []T

// NewSortedSet returns a sorted set containing the given elements.
func NewSortedSet[T cmp.Ordered](elements ...T) *SortedSet[T] {
	var set SortedSet[T]
	//
	for _, e := range elements {
		set.Insert(e)
	}
	//
	return &set
}

// Size returns the number of elements in this set.
//
//nolint:revive
func (p *SortedSet[T]) Size() uint {
	return uint(len(*p))
}

// IsEmpty returns true if this set has no elements.
//
//nolint:revive
func (p *SortedSet[T]) IsEmpty() bool {
	return len(*p) == 0
}

// Contains returns true if a given element is in the set.
//
//nolint:revive
func (p *SortedSet[T]) Contains(element T) bool {
	data := *p
	// Find index where element either does occur, or should occur.
	i := sort.Search(len(*p), func(i int) bool {
		return element <= data[i]
	})
	// Check whether item existed or not.
	return i < len(data) && data[i] == element
}

// Insert an element into this sorted set.
//
//nolint:revive
func (p *SortedSet[T]) Insert(element T) {
	data := *p
	// Find index where element either does occur, or should occur.
	i := sort.Search(len(*p), func(i int) bool {
		return element <= data[i]
	})
	// Check whether item existed or not.
	if i >= len(data) || data[i] != element {
		// No, item was not found
		ndata := make([]T, len(data)+1)
		copy(ndata, data[0:i])
		ndata[i] = element
		copy(ndata[i+1:], data[i:])
		*p = ndata
	}
}

// Remove an element from this sorted set, returning true if it was present.
//
//nolint:revive
func (p *SortedSet[T]) Remove(element T) bool {
	data := *p
	i := sort.Search(len(data), func(i int) bool {
		return element <= data[i]
	})
	//
	if i >= len(data) || data[i] != element {
		return false
	}
	//
	ndata := make([]T, len(data)-1)
	copy(ndata, data[:i])
	copy(ndata[i:], data[i+1:])
	*p = ndata
	//
	return true
}

// InsertSorted inserts all elements in a given sorted set into this set.
//
//nolint:revive
func (p *SortedSet[T]) InsertSorted(q *SortedSet[T]) {
	left := *p
	right := *q
	// Check containment
	n := countDuplicates(left, right)
	// Check for total inclusion
	if n == len(right) {
		return
	}
	// Allocate space
	ndata := make([]T, len(left)+len(right)-n)
	// Merge
	mergeSorted(ndata, left, right)
	// Finally copy over new data
	*p = ndata
}

// Difference returns a new set containing those elements of this set which are
// not in the other.
//
//nolint:revive
func (p *SortedSet[T]) Difference(q *SortedSet[T]) *SortedSet[T] {
	var (
		left   = *p
		right  = *q
		result = make(SortedSet[T], 0, len(left))
		j      = 0
	)
	//
	for _, e := range left {
		for j < len(right) && right[j] < e {
			j++
		}
		//
		if j >= len(right) || right[j] != e {
			result = append(result, e)
		}
	}
	//
	return &result
}

// Intersects returns true if this set and the other have at least one element
// in common.
//
//nolint:revive
func (p *SortedSet[T]) Intersects(q *SortedSet[T]) bool {
	return countDuplicates(*p, *q) > 0
}

// ToArray returns the elements of this set in ascending order.  The returned
// slice must not be modified.
//
//nolint:revive
func (p *SortedSet[T]) ToArray() []T {
	return *p
}

// Iter returns an iterator over the elements of this sorted set.
//
//nolint:revive
func (p *SortedSet[T]) Iter() iter.Iterator[T] {
	return iter.NewArrayIterator(*p)
}

//nolint:revive
func (p *SortedSet[T]) String() string {
	var builder strings.Builder
	//
	builder.WriteString("{")
	//
	for i, e := range *p {
		if i != 0 {
			builder.WriteString(",")
		}
		//
		builder.WriteString(toString(e))
	}
	//
	builder.WriteString("}")
	//
	return builder.String()
}

// UnionSortedSets unions together a number of things which can be turn into a
// sorted set using a given mapping function.  At some level, this is a
// map/reduce function.
func UnionSortedSets[S any, T cmp.Ordered](elems []S, fn func(S) *SortedSet[T]) *SortedSet[T] {
	set := NewSortedSet[T]()
	//
	for _, elem := range elems {
		set.InsertSorted(fn(elem))
	}
	//
	return set
}

// Determine number of duplicate elements
func countDuplicates[T cmp.Ordered](left []T, right []T) int {
	// Check containment
	i := 0
	j := 0
	n := 0

	for i < len(left) && j < len(right) {
		if left[i] < right[j] {
			i++
		} else if left[i] > right[j] {
			j++
		} else {
			i++
			j++
			n++ // duplicate detected
		}
	}

	return n
}

// Merge two sets of sorted arrays (left and right) into a target array.  This
// assumes the target array is big enough.
func mergeSorted[T cmp.Ordered](target []T, left []T, right []T) {
	i := 0
	j := 0
	k := 0
	// Merge overlap of both sets
	for ; i < len(left) && j < len(right); k++ {
		if left[i] < right[j] {
			target[k] = left[i]
			i++
		} else if left[i] > right[j] {
			target[k] = right[j]
			j++
		} else {
			target[k] = left[i]
			i++
			j++
		}
	}
	// Handle anything left
	if i < len(left) {
		copy(target[k:], left[i:])
	} else if j < len(right) {
		copy(target[k:], right[j:])
	}
}

func toString(e any) string {
	if s, ok := e.(interface{ String() string }); ok {
		return s.String()
	} else if s, ok := e.(string); ok {
		return s
	}
	//
	return fmt.Sprintf("%v", e)
}
