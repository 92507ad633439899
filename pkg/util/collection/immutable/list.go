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
	"fmt"
	"strings"

	"github.com/consensys/go-resolve/pkg/util/collection/iter"
)

// List is a persistent sequence.  Every operation which "modifies" a list
// instead returns a new list, leaving the receiver untouched.  Different
// representations share structure with the lists they were built from, so that
// (for example) appending to a long list does not copy it.  Indices are
// unsigned, hence negative positions cannot be expressed, and any index or
// range which falls outside the list results in a panic.
type List[T any] interface {
	// Get returns the item at a given index.
	Get(index uint) T
	// Size returns the number of items in this list.
	Size() uint
	// Head returns the first n items of this list.
	Head(n uint) List[T]
	// Tail returns all items from a given index onwards.
	Tail(start uint) List[T]
	// SubList returns the length items starting from a given index.
	SubList(start uint, length uint) List[T]
	// Appended returns this list with an item added at the end.
	Appended(item T) List[T]
	// AppendedAll returns this list followed by another.
	AppendedAll(other List[T]) List[T]
	// Inserted returns this list with an item inserted at the given index.
	// An index equal to the size appends.
	Inserted(index uint, item T) List[T]
	// Removed returns this list without the item at the given index.
	Removed(index uint) List[T]
	// Set returns this list with the item at the given index replaced.
	Set(index uint, item T) List[T]
	// Iter returns an iterator over the items of this list, in order.
	Iter() iter.Iterator[T]
	// ToArray returns a freshly allocated array holding the items of this
	// list.
	ToArray() []T
}

// New constructs a list from the given items.  The items are copied, so the
// caller may reuse its array.
func New[T any](items ...T) List[T] {
	switch len(items) {
	case 0:
		return Empty[T]()
	case 1:
		return Singleton(items[0])
	}
	//
	nitems := make([]T, len(items))
	copy(nitems, items)
	//
	return &arrayList[T]{nitems}
}

// Concat constructs the list holding the items of left followed by those of
// right.  Neither list is copied.
func Concat[T any](left List[T], right List[T]) List[T] {
	if left.Size() == 0 {
		return right
	} else if right.Size() == 0 {
		return left
	}
	//
	return &concatList[T]{left, right, left.Size() + right.Size()}
}

// FromIterator constructs a list from the remaining items of an iterator.
func FromIterator[T any](it iter.Iterator[T]) List[T] {
	items := it.Collect()
	if len(items) <= 1 {
		return New(items...)
	}
	//
	return &arrayList[T]{items}
}

// Equal determines whether two lists hold the same items in the same order,
// using a given equality on items.
func Equal[T any](left List[T], right List[T], eq func(T, T) bool) bool {
	if left == right {
		return true
	} else if left.Size() != right.Size() {
		return false
	}
	//
	for l, r := left.Iter(), right.Iter(); l.HasNext(); {
		if !eq(l.Next(), r.Next()) {
			return false
		}
	}
	//
	return true
}

// IndexOf returns the first index of an item in a list matching a given
// predicate, or false if there is none.
func IndexOf[T any](list List[T], predicate iter.Predicate[T]) (uint, bool) {
	return list.Iter().Find(predicate)
}

// String renders a list using the fmt representation of its items.
func String[T any](list List[T]) string {
	var builder strings.Builder
	//
	builder.WriteString("[")
	//
	for i, it := 0, list.Iter(); it.HasNext(); i++ {
		if i != 0 {
			builder.WriteString(", ")
		}
		//
		builder.WriteString(fmt.Sprintf("%v", any(it.Next())))
	}
	//
	builder.WriteString("]")
	//
	return builder.String()
}

// ============================================================================
// Shared implementations
// ============================================================================

func checkIndex(index uint, size uint) {
	if index >= size {
		panic(fmt.Sprintf("index %d out-of-bounds (size %d)", index, size))
	}
}

func checkRange(start uint, length uint, size uint) {
	if start > size || length > size-start {
		panic(fmt.Sprintf("range [%d, +%d) out-of-bounds (size %d)", start, length, size))
	}
}

func subList[T any](list List[T], start uint, length uint) List[T] {
	size := list.Size()
	//
	checkRange(start, length, size)
	//
	switch {
	case length == 0:
		return Empty[T]()
	case start == 0 && length == size:
		return list
	case length == 1:
		return Singleton(list.Get(start))
	}
	//
	return &subviewList[T]{list, start, length}
}

func head[T any](list List[T], n uint) List[T] {
	return list.SubList(0, n)
}

func tail[T any](list List[T], start uint) List[T] {
	if start > list.Size() {
		panic(fmt.Sprintf("index %d out-of-bounds (size %d)", start, list.Size()))
	}
	//
	return list.SubList(start, list.Size()-start)
}

func inserted[T any](list List[T], index uint, item T) List[T] {
	if index > list.Size() {
		panic(fmt.Sprintf("index %d out-of-bounds (size %d)", index, list.Size()))
	}
	//
	return Concat(Concat(list.Head(index), Singleton(item)), list.Tail(index))
}

func removed[T any](list List[T], index uint) List[T] {
	checkIndex(index, list.Size())
	//
	return Concat(list.Head(index), list.Tail(index+1))
}

func set[T any](list List[T], index uint, item T) List[T] {
	checkIndex(index, list.Size())
	//
	return Concat(Concat(list.Head(index), Singleton(item)), list.Tail(index+1))
}

func toArray[T any](list List[T]) []T {
	items := make([]T, list.Size())
	//
	for i, it := 0, list.Iter(); it.HasNext(); i++ {
		items[i] = it.Next()
	}
	//
	return items
}
