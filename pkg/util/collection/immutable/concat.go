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

// concatList glues two non-empty lists together.  Lookups dispatch to one side
// or the other by comparing the index against the size of the left side.
type concatList[T any] struct {
	left  List[T]
	right List[T]
	size  uint
}

//nolint:revive
func (p *concatList[T]) Get(index uint) T {
	checkIndex(index, p.size)
	//
	if n := p.left.Size(); index < n {
		return p.left.Get(index)
	} else {
		return p.right.Get(index - n)
	}
}

//nolint:revive
func (p *concatList[T]) Size() uint {
	return p.size
}

//nolint:revive
func (p *concatList[T]) Head(n uint) List[T] {
	return head[T](p, n)
}

//nolint:revive
func (p *concatList[T]) Tail(start uint) List[T] {
	return tail[T](p, start)
}

//nolint:revive
func (p *concatList[T]) SubList(start uint, length uint) List[T] {
	var (
		n   = p.left.Size()
		end = start + length
	)
	//
	checkRange(start, length, p.size)
	//
	switch {
	case length == 0:
		return Empty[T]()
	case start == 0 && length == p.size:
		return p
	case end <= n:
		return p.left.SubList(start, length)
	case start >= n:
		return p.right.SubList(start-n, length)
	}
	// Range straddles both sides
	return Concat(p.left.Tail(start), p.right.Head(end-n))
}

//nolint:revive
func (p *concatList[T]) Appended(item T) List[T] {
	return Concat[T](p, Singleton(item))
}

//nolint:revive
func (p *concatList[T]) AppendedAll(other List[T]) List[T] {
	return Concat[T](p, other)
}

//nolint:revive
func (p *concatList[T]) Inserted(index uint, item T) List[T] {
	if n := p.left.Size(); index < n {
		return Concat(p.left.Inserted(index, item), p.right)
	} else {
		return Concat(p.left, p.right.Inserted(index-n, item))
	}
}

//nolint:revive
func (p *concatList[T]) Removed(index uint) List[T] {
	checkIndex(index, p.size)
	//
	if n := p.left.Size(); index < n {
		return Concat(p.left.Removed(index), p.right)
	} else {
		return Concat(p.left, p.right.Removed(index-n))
	}
}

//nolint:revive
func (p *concatList[T]) Set(index uint, item T) List[T] {
	checkIndex(index, p.size)
	//
	if n := p.left.Size(); index < n {
		return Concat(p.left.Set(index, item), p.right)
	} else {
		return Concat(p.left, p.right.Set(index-n, item))
	}
}

//nolint:revive
func (p *concatList[T]) Iter() iter.Iterator[T] {
	return p.left.Iter().Append(p.right.Iter())
}

//nolint:revive
func (p *concatList[T]) ToArray() []T {
	return toArray[T](p)
}
