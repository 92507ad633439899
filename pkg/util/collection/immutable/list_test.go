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
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_List_01(t *testing.T) {
	for _, list := range variants() {
		check_HeadTail(t, list)
	}
}

func Test_List_02(t *testing.T) {
	for _, list := range variants() {
		check_Mutators(t, list)
	}
}

func Test_List_03(t *testing.T) {
	var calls atomic.Int32
	//
	source := New(1, 2, 3, 4)
	list := Map(source, func(x int) int {
		calls.Add(1)
		return x * x
	})
	// Nothing computed yet
	assert.Equal(t, int32(0), calls.Load())
	assert.Equal(t, 9, list.Get(2))
	assert.Equal(t, 9, list.Get(2))
	assert.Equal(t, int32(1), calls.Load())
	// Iterating twice yields the same items, and computes the rest once
	assert.Equal(t, []int{1, 4, 9, 16}, list.Iter().Collect())
	assert.Equal(t, []int{1, 4, 9, 16}, list.Iter().Collect())
	assert.Equal(t, int32(4), calls.Load())
}

func Test_List_04(t *testing.T) {
	type box struct{ n int }
	// Pointers make identity observable
	list := Map(New(1, 2, 3), func(x int) *box { return &box{x} })
	//
	var (
		wg      sync.WaitGroup
		results [8]*box
	)
	//
	for i := range results {
		wg.Add(1)
		//
		go func() {
			defer wg.Done()
			results[i] = list.Get(1)
		}()
	}
	//
	wg.Wait()
	//
	for _, r := range results {
		assert.Same(t, results[0], r)
	}
}

func Test_List_05(t *testing.T) {
	list := New(1, 2, 3)
	//
	assert.Panics(t, func() { list.Get(3) })
	assert.Panics(t, func() { list.SubList(2, 2) })
	assert.Panics(t, func() { list.Tail(4) })
	assert.Panics(t, func() { list.Head(4) })
	assert.Panics(t, func() { list.Removed(3) })
	assert.Panics(t, func() { list.Inserted(4, 0) })
	assert.Panics(t, func() { Empty[int]().Get(0) })
	assert.Panics(t, func() { Singleton(1).Set(1, 2) })
	assert.Panics(t, func() { Concat(list, list).Set(6, 0) })
}

func Test_List_06(t *testing.T) {
	left := New(1, 2, 3)
	right := New(4, 5)
	list := Concat(left, right)
	// Operations on one side leave the other shared
	removed := list.Removed(4).(*concatList[int])
	assert.Same(t, left, removed.left)
	//
	set := list.Set(0, 9).(*concatList[int])
	assert.Same(t, right, set.right)
	assert.Equal(t, []int{9, 2, 3, 4, 5}, set.ToArray())
	// Receiver unchanged
	assert.Equal(t, []int{1, 2, 3, 4, 5}, list.ToArray())
}

func Test_List_07(t *testing.T) {
	eq := func(x, y int) bool { return x == y }
	//
	assert.True(t, Equal(New(1, 2, 3), Concat(Singleton(1), New(2, 3)), eq))
	assert.False(t, Equal(New(1, 2, 3), New(1, 2), eq))
	assert.False(t, Equal(New(1, 2, 3), New(1, 2, 4), eq))
	assert.Equal(t, "[1, 2, 3]", String(New(1, 2, 3)))
	//
	index, ok := IndexOf(New(5, 6, 7), func(x int) bool { return x == 7 })
	assert.True(t, ok)
	assert.Equal(t, uint(2), index)
}

// ===================================================================
// Test Helpers
// ===================================================================

// variants returns lists of each representation.
func variants() []List[int] {
	return []List[int]{
		Empty[int](),
		Singleton(0),
		New(0, 1, 2, 3, 4, 5),
		New(9, 0, 1, 2, 3, 9).SubList(1, 4),
		Concat(New(0, 1), New(2, 3, 4)),
		Concat(Concat(Singleton(0), New(1, 2)), New(3, 4).Appended(5)),
		Map(New(1, 2, 3, 4), func(x int) int { return x - 1 }),
		Map(Concat(New(0, 1), New(2)), func(x int) int { return x }).Tail(1),
	}
}

func check_HeadTail(t *testing.T, list List[int]) {
	t.Helper()
	//
	expected := list.ToArray()
	require.Equal(t, int(list.Size()), len(expected))
	//
	for i := uint(0); i <= list.Size(); i++ {
		rebuilt := list.Head(i).AppendedAll(list.Tail(i))
		assert.Equal(t, nilToEmpty(expected), nilToEmpty(rebuilt.ToArray()), "split at %d", i)
		assert.Equal(t, nilToEmpty(expected), nilToEmpty(rebuilt.Iter().Collect()), "split at %d", i)
		//
		for j := uint(0); j < list.Size(); j++ {
			assert.Equal(t, expected[j], rebuilt.Get(j))
		}
	}
}

func check_Mutators(t *testing.T, list List[int]) {
	t.Helper()
	//
	original := list.ToArray()
	n := list.Size()
	// Insert at every position
	for i := uint(0); i <= n; i++ {
		expected := append(append(append([]int{}, original[:i]...), -1), original[i:]...)
		assert.Equal(t, expected, list.Inserted(i, -1).ToArray())
	}
	// Remove and set every position
	for i := uint(0); i < n; i++ {
		expected := append(append([]int{}, original[:i]...), original[i+1:]...)
		assert.Equal(t, expected, nilToEmpty(list.Removed(i).ToArray()))
		//
		expected = append([]int{}, original...)
		expected[i] = -1
		assert.Equal(t, expected, list.Set(i, -1).ToArray())
	}
	// Sub lists of every shape
	for i := uint(0); i <= n; i++ {
		for l := uint(0); i+l <= n; l++ {
			assert.Equal(t, nilToEmpty(original[i:i+l]), nilToEmpty(list.SubList(i, l).ToArray()))
		}
	}
	// Receiver was never modified
	assert.Equal(t, nilToEmpty(original), nilToEmpty(list.ToArray()))
	assert.Equal(t, append(original, 7), list.Appended(7).ToArray())
}

func nilToEmpty(items []int) []int {
	if items == nil {
		return []int{}
	}
	//
	return items
}
