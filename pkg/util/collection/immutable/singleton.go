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
// Singleton
// ============================================================================

type singletonList[T any] struct {
	item T
}

// Singleton constructs a list holding exactly one item.
func Singleton[T any](item T) List[T] {
	return &singletonList[T]{item}
}

//nolint:revive
func (p *singletonList[T]) Get(index uint) T {
	checkIndex(index, 1)
	return p.item
}

//nolint:revive
func (p *singletonList[T]) Size() uint {
	return 1
}

//nolint:revive
func (p *singletonList[T]) Head(n uint) List[T] {
	return head[T](p, n)
}

//nolint:revive
func (p *singletonList[T]) Tail(start uint) List[T] {
	return tail[T](p, start)
}

//nolint:revive
func (p *singletonList[T]) SubList(start uint, length uint) List[T] {
	return subList[T](p, start, length)
}

//nolint:revive
func (p *singletonList[T]) Appended(item T) List[T] {
	return &arrayList[T]{[]T{p.item, item}}
}

//nolint:revive
func (p *singletonList[T]) AppendedAll(other List[T]) List[T] {
	return Concat[T](p, other)
}

//nolint:revive
func (p *singletonList[T]) Inserted(index uint, item T) List[T] {
	switch index {
	case 0:
		return &arrayList[T]{[]T{item, p.item}}
	case 1:
		return p.Appended(item)
	}
	//
	panic("index out-of-bounds")
}

//nolint:revive
func (p *singletonList[T]) Removed(index uint) List[T] {
	checkIndex(index, 1)
	return Empty[T]()
}

//nolint:revive
func (p *singletonList[T]) Set(index uint, item T) List[T] {
	checkIndex(index, 1)
	return &singletonList[T]{item}
}

//nolint:revive
func (p *singletonList[T]) Iter() iter.Iterator[T] {
	return iter.NewUnitIterator(p.item)
}

//nolint:revive
func (p *singletonList[T]) ToArray() []T {
	return []T{p.item}
}

// ============================================================================
// Empty
// ============================================================================

type emptyList[T any] struct{}

// Empty returns a list with no items.
func Empty[T any]() List[T] {
	return emptyList[T]{}
}

//nolint:revive
func (p emptyList[T]) Get(index uint) T {
	checkIndex(index, 0)
	panic("unreachable")
}

//nolint:revive
func (p emptyList[T]) Size() uint {
	return 0
}

//nolint:revive
func (p emptyList[T]) Head(n uint) List[T] {
	checkRange(0, n, 0)
	return p
}

//nolint:revive
func (p emptyList[T]) Tail(start uint) List[T] {
	checkRange(start, 0, 0)
	return p
}

//nolint:revive
func (p emptyList[T]) SubList(start uint, length uint) List[T] {
	checkRange(start, length, 0)
	return p
}

//nolint:revive
func (p emptyList[T]) Appended(item T) List[T] {
	return Singleton(item)
}

//nolint:revive
func (p emptyList[T]) AppendedAll(other List[T]) List[T] {
	return other
}

//nolint:revive
func (p emptyList[T]) Inserted(index uint, item T) List[T] {
	if index != 0 {
		panic("index out-of-bounds")
	}
	//
	return Singleton(item)
}

//nolint:revive
func (p emptyList[T]) Removed(index uint) List[T] {
	checkIndex(index, 0)
	panic("unreachable")
}

//nolint:revive
func (p emptyList[T]) Set(index uint, _ T) List[T] {
	checkIndex(index, 0)
	panic("unreachable")
}

//nolint:revive
func (p emptyList[T]) Iter() iter.Iterator[T] {
	return iter.NewEmptyIterator[T]()
}

//nolint:revive
func (p emptyList[T]) ToArray() []T {
	return nil
}
