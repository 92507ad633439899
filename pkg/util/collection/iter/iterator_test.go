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

import (
	"slices"
	"testing"
)

func Test_Iter_01(t *testing.T) {
	check(t, NewArrayIterator([]int{1, 2, 3}), []int{1, 2, 3})
}

func Test_Iter_02(t *testing.T) {
	it := NewArrayIterator([]int{1, 2}).Append(NewUnitIterator(3))
	check(t, it, []int{1, 2, 3})
}

func Test_Iter_03(t *testing.T) {
	it := NewProjectIterator(NewArrayIterator([]int{1, 2, 3}), func(x int) int { return x * 10 })
	check(t, it, []int{10, 20, 30})
}

func Test_Iter_04(t *testing.T) {
	it := NewFilterIterator(NewArrayIterator([]int{1, 2, 3, 4, 5}), func(x int) bool { return x%2 == 1 })
	check(t, it, []int{1, 3, 5})
}

func Test_Iter_05(t *testing.T) {
	outer := NewArrayIterator([]int{0, 2, 1})
	it := NewFlattenIterator(outer, func(n int) Iterator[int] {
		items := make([]int, n)
		for i := range items {
			items[i] = n
		}

		return NewArrayIterator(items)
	})
	check(t, it, []int{2, 2, 1})
}

func Test_Iter_06(t *testing.T) {
	check(t, Chain(NewEmptyIterator[int](), NewUnitIterator(7), NewArrayIterator([]int{8})), []int{7, 8})
}

func Test_Iter_07(t *testing.T) {
	it := NewArrayIterator([]int{4, 5, 6})
	if idx, ok := it.Find(func(x int) bool { return x == 5 }); !ok || idx != 1 {
		t.Errorf("expected index 1, got %d (%t)", idx, ok)
	}
}

// check that the iterator yields exactly the expected items, and that counting
// and cloning leave it untouched.
func check(t *testing.T, it Iterator[int], expected []int) {
	t.Helper()
	//
	if it.Count() != uint(len(expected)) {
		t.Errorf("expected count %d, got %d", len(expected), it.Count())
	}
	//
	clone := it.Clone()
	//
	if actual := it.Collect(); !slices.Equal(actual, expected) {
		t.Errorf("expected %v, got %v", expected, actual)
	}
	//
	if actual := Collect[int](clone); !slices.Equal(actual, expected) {
		t.Errorf("clone expected %v, got %v", expected, actual)
	}
}
