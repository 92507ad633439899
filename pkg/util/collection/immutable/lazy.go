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

import (
	"sync/atomic"

	"github.com/consensys/go-resolve/pkg/util/collection/iter"
)

// lazyList maps each item of a source list through a function, on first
// access, and caches the result.  The function must be referentially
// consistent, otherwise the list could appear to change between reads.  Each
// cache slot is set at most once, so concurrent readers of a shared list all
// observe the same item even if they race to compute it.
type lazyList[S, T any] struct {
	source List[S]
	fn     func(S) T
	cache  []atomic.Pointer[T]
}

// Map constructs a list whose items are those of source passed through fn.
// Items are computed on demand, and at most once each.
func Map[S, T any](source List[S], fn func(S) T) List[T] {
	if source.Size() == 0 {
		return Empty[T]()
	}
	//
	return &lazyList[S, T]{source, fn, make([]atomic.Pointer[T], source.Size())}
}

//nolint:revive
func (p *lazyList[S, T]) Get(index uint) T {
	checkIndex(index, p.Size())
	//
	slot := &p.cache[index]
	//
	if item := slot.Load(); item != nil {
		return *item
	}
	//
	item := p.fn(p.source.Get(index))
	// First writer wins
	if !slot.CompareAndSwap(nil, &item) {
		return *slot.Load()
	}
	//
	return item
}

//nolint:revive
func (p *lazyList[S, T]) Size() uint {
	return uint(len(p.cache))
}

//nolint:revive
func (p *lazyList[S, T]) Head(n uint) List[T] {
	return head[T](p, n)
}

//nolint:revive
func (p *lazyList[S, T]) Tail(start uint) List[T] {
	return tail[T](p, start)
}

//nolint:revive
func (p *lazyList[S, T]) SubList(start uint, length uint) List[T] {
	return subList[T](p, start, length)
}

//nolint:revive
func (p *lazyList[S, T]) Appended(item T) List[T] {
	return Concat[T](p, Singleton(item))
}

//nolint:revive
func (p *lazyList[S, T]) AppendedAll(other List[T]) List[T] {
	return Concat[T](p, other)
}

//nolint:revive
func (p *lazyList[S, T]) Inserted(index uint, item T) List[T] {
	return inserted[T](p, index, item)
}

//nolint:revive
func (p *lazyList[S, T]) Removed(index uint) List[T] {
	return removed[T](p, index)
}

//nolint:revive
func (p *lazyList[S, T]) Set(index uint, item T) List[T] {
	return set[T](p, index, item)
}

//nolint:revive
func (p *lazyList[S, T]) Iter() iter.Iterator[T] {
	return newIndexIterator[T](p)
}

//nolint:revive
func (p *lazyList[S, T]) ToArray() []T {
	return toArray[T](p)
}

// ============================================================================
// Index Iterator
// ============================================================================

// indexIterator visits the items of a list by index, via Get.
type indexIterator[T any] struct {
	list  List[T]
	index uint
}

func newIndexIterator[T any](list List[T]) iter.Iterator[T] {
	return &indexIterator[T]{list, 0}
}

func (p *indexIterator[T]) HasNext() bool {
	return p.index < p.list.Size()
}

func (p *indexIterator[T]) Next() T {
	item := p.list.Get(p.index)
	p.index++
	//
	return item
}

func (p *indexIterator[T]) Append(other iter.Iterator[T]) iter.Iterator[T] {
	return iter.NewAppendIterator[T](p, other)
}

func (p *indexIterator[T]) Clone() iter.Iterator[T] {
	return &indexIterator[T]{p.list, p.index}
}

func (p *indexIterator[T]) Collect() []T {
	return iter.Collect[T](p)
}

func (p *indexIterator[T]) Count() uint {
	return p.list.Size() - p.index
}

func (p *indexIterator[T]) Find(predicate iter.Predicate[T]) (uint, bool) {
	return iter.Find[T](p, predicate)
}

func (p *indexIterator[T]) Nth(n uint) T {
	p.index += n
	//
	return p.Next()
}
