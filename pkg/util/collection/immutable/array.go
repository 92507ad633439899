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
package immutable

import "github.com/consensys/go-resolve/pkg/util/collection/iter"

// ============================================================================
// Array
// ============================================================================

// arrayList owns a fixed snapshot array, which is never modified after
// construction.
type arrayList[T any] struct {
	items []T
}

//nolint:revive
func (p *arrayList[T]) Get(index uint) T {
	checkIndex(index, p.Size())
	return p.items[index]
}

//nolint:revive
func (p *arrayList[T]) Size() uint {
	return uint(len(p.items))
}

//nolint:revive
func (p *arrayList[T]) Head(n uint) List[T] {
	return head[T](p, n)
}

//nolint:revive
func (p *arrayList[T]) Tail(start uint) List[T] {
	return tail[T](p, start)
}

//nolint:revive
func (p *arrayList[T]) SubList(start uint, length uint) List[T] {
	return subList[T](p, start, length)
}

//nolint:revive
func (p *arrayList[T]) Appended(item T) List[T] {
	return Concat[T](p, Singleton(item))
}

//nolint:revive
func (p *arrayList[T]) AppendedAll(other List[T]) List[T] {
	return Concat[T](p, other)
}

//nolint:revive
func (p *arrayList[T]) Inserted(index uint, item T) List[T] {
	return inserted[T](p, index, item)
}

//nolint:revive
func (p *arrayList[T]) Removed(index uint) List[T] {
	return removed[T](p, index)
}

// Set copies the array, since argument lists are short and are read far more
// often than they are rewritten.
//
//nolint:revive
func (p *arrayList[T]) Set(index uint, item T) List[T] {
	checkIndex(index, p.Size())
	//
	nitems := make([]T, len(p.items))
	copy(nitems, p.items)
	nitems[index] = item
	//
	return &arrayList[T]{nitems}
}

//nolint:revive
func (p *arrayList[T]) Iter() iter.Iterator[T] {
	return iter.NewArrayIterator(p.items)
}

//nolint:revive
func (p *arrayList[T]) ToArray() []T {
	items := make([]T, len(p.items))
	copy(items, p.items)
	//
	return items
}

// ============================================================================
// Subview
// ============================================================================

// subviewList is a window of length items, starting from a given offset, onto
// some underlying list.
type subviewList[T any] struct {
	source List[T]
	start  uint
	length uint
}

//nolint:revive
func (p *subviewList[T]) Get(index uint) T {
	checkIndex(index, p.length)
	return p.source.Get(p.start + index)
}

//nolint:revive
func (p *subviewList[T]) Size() uint {
	return p.length
}

//nolint:revive
func (p *subviewList[T]) Head(n uint) List[T] {
	return head[T](p, n)
}

//nolint:revive
func (p *subviewList[T]) Tail(start uint) List[T] {
	return tail[T](p, start)
}

// SubList views the same source, rather than stacking one window on another.
//
//nolint:revive
func (p *subviewList[T]) SubList(start uint, length uint) List[T] {
	checkRange(start, length, p.length)
	//
	return p.source.SubList(p.start+start, length)
}

//nolint:revive
func (p *subviewList[T]) Appended(item T) List[T] {
	return Concat[T](p, Singleton(item))
}

//nolint:revive
func (p *subviewList[T]) AppendedAll(other List[T]) List[T] {
	return Concat[T](p, other)
}

//nolint:revive
func (p *subviewList[T]) Inserted(index uint, item T) List[T] {
	return inserted[T](p, index, item)
}

//nolint:revive
func (p *subviewList[T]) Removed(index uint) List[T] {
	return removed[T](p, index)
}

//nolint:revive
func (p *subviewList[T]) Set(index uint, item T) List[T] {
	return set[T](p, index, item)
}

//nolint:revive
func (p *subviewList[T]) Iter() iter.Iterator[T] {
	if arr, ok := p.source.(*arrayList[T]); ok {
		return iter.NewArrayIterator(arr.items[p.start : p.start+p.length])
	}
	//
	return newIndexIterator[T](p)
}

//nolint:revive
func (p *subviewList[T]) ToArray() []T {
	return toArray[T](p)
}
