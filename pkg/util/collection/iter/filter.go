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
package iter

// filterIterator visits only those items of an underlying iterator which
// satisfy a given predicate.
type filterIterator[T any] struct {
	iter      Iterator[T]
	predicate Predicate[T]
	next      T
	ready     bool
}

// NewFilterIterator constructs an iterator over those items of iter accepted by
// the given predicate.
func NewFilterIterator[T any](iter Iterator[T], predicate Predicate[T]) Iterator[T] {
	return &filterIterator[T]{iter: iter, predicate: predicate}
}

// HasNext checks whether or not there are any items remaining to visit.
//
//nolint:revive
func (p *filterIterator[T]) HasNext() bool {
	for !p.ready && p.iter.HasNext() {
		item := p.iter.Next()
		if p.predicate(item) {
			p.next, p.ready = item, true
		}
	}
	//
	return p.ready
}

// Next returns the next item, and advance the iterator.
//
//nolint:revive
func (p *filterIterator[T]) Next() T {
	var empty T
	//
	if !p.HasNext() {
		panic("iterator out-of-bounds")
	}
	//
	item := p.next
	p.next, p.ready = empty, false
	//
	return item
}

// Append another iterator onto the end of this iterator.
//
//nolint:revive
func (p *filterIterator[T]) Append(iter Iterator[T]) Iterator[T] {
	return NewAppendIterator[T](p, iter)
}

// Clone creates a copy of this iterator at the given cursor position.
//
//nolint:revive
func (p *filterIterator[T]) Clone() Iterator[T] {
	return &filterIterator[T]{p.iter.Clone(), p.predicate, p.next, p.ready}
}

// Collect allocates a new array containing all items of this iterator.
//
//nolint:revive
func (p *filterIterator[T]) Collect() []T {
	return Collect[T](p)
}

// Count returns the number of items left in the iterator
//
//nolint:revive
func (p *filterIterator[T]) Count() uint {
	return Count[T](p)
}

// Find returns the index of the first match for a given predicate, or
// return false if no match is found.
//
//nolint:revive
func (p *filterIterator[T]) Find(predicate Predicate[T]) (uint, bool) {
	return Find[T](p, predicate)
}

// Nth returns the nth item in this iterator
//
//nolint:revive
func (p *filterIterator[T]) Nth(n uint) T {
	return Nth[T](p, n)
}
