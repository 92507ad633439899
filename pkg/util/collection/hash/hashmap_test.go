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
package hash_test

import (
	"fmt"
	"testing"

	"github.com/consensys/go-resolve/pkg/absyn"
	"github.com/consensys/go-resolve/pkg/util/collection/hash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_HashMap_01(t *testing.T) {
	var (
		b = absyn.NewBuilder()
		a = b.Symbol("a", absyn.Entity)
	)
	//
	check_HashMap(t, []absyn.PExp{a, b.Apply("f", absyn.Entity, a), a, b.Apply("f", absyn.Entity, a), a})
}

func Test_HashMap_02(t *testing.T) {
	check_HashMap(t, randomTerms(absyn.NewBuilder(), 10, 32))
}

func Test_HashMap_03(t *testing.T) {
	check_HashMap(t, randomTerms(absyn.NewBuilder(), 100, 32))
}

func Test_HashMap_04(t *testing.T) {
	check_HashMap(t, randomTerms(absyn.NewBuilder(), 1000, 32))
}

func Test_HashMap_05(t *testing.T) {
	check_HashMap(t, randomTerms(absyn.NewBuilder(), 10000, 256))
}

func Test_HashMap_06(t *testing.T) {
	var (
		b       = absyn.NewBuilder()
		hmap    = hash.NewMap[weakKey, uint](0)
		buckets = make(map[uint64][]absyn.PExp)
		pair    []absyn.PExp
		other   []absyn.PExp
	)
	// Seventeen distinct terms across sixteen buckets must collide
	for i := 0; i < 17; i++ {
		term := b.Apply("g", absyn.Entity, b.Symbol(fmt.Sprintf("x%d", i), absyn.Entity))
		h := weakKey{term}.Hash()
		buckets[h] = append(buckets[h], term)
	}
	//
	for _, terms := range buckets {
		if len(terms) >= 2 && pair == nil {
			pair = terms[:2]
		} else if other == nil {
			other = terms[:1]
		}
	}
	//
	require.NotNil(t, pair)
	require.NotNil(t, other)
	//
	keys := []absyn.PExp{pair[0], pair[1], other[0]}
	// The first two keys collide
	for i, k := range keys {
		hmap.Insert(weakKey{k}, uint(i))
	}
	//
	assert.True(t, hmap.Remove(weakKey{keys[0]}))
	assert.False(t, hmap.Remove(weakKey{keys[0]}))
	assert.Equal(t, uint(2), hmap.Size())
	assert.False(t, hmap.ContainsKey(weakKey{keys[0]}))
	assert.True(t, hmap.ContainsKey(weakKey{keys[1]}))
	assert.True(t, hmap.ContainsKey(weakKey{keys[2]}))
}

func Test_HashMap_07(t *testing.T) {
	var (
		b    = absyn.NewBuilder()
		x    = b.Symbol("x", absyn.Entity)
		y    = b.Symbol("y", absyn.Entity)
		hmap = hash.NewMap[absyn.PExp, uint](0)
	)
	//
	hmap.Insert(x, 1)
	//
	clone := hmap.Clone()
	clone.Insert(y, 2)
	clone.Remove(x)
	//
	assert.Equal(t, uint(1), hmap.Size())
	assert.True(t, hmap.ContainsKey(x))
	assert.False(t, hmap.ContainsKey(y))
	assert.Equal(t, uint(1), clone.Size())
	assert.Len(t, clone.Keys(), 1)
}

func TestSlow_HashMap_08(t *testing.T) {
	check_HashMap(t, randomTerms(absyn.NewBuilder(), 100000, 1024))
}

// ===================================================================
// Test Helpers
// ===================================================================

// check_HashMap counts occurrences of each term, checking the result against
// a map keyed on the rendering of each term.
func check_HashMap(t *testing.T, terms []absyn.PExp) {
	t.Helper()
	//
	var (
		hmap   = hash.NewMap[weakKey, uint](0)
		counts = make(map[string]uint)
	)
	//
	for _, term := range terms {
		n, _ := hmap.Get(weakKey{term})
		hmap.Insert(weakKey{term}, n+1)
		counts[term.String()]++
	}
	//
	require.Equal(t, uint(len(counts)), hmap.Size(), hmap.String())
	//
	for _, term := range terms {
		n, ok := hmap.Get(weakKey{term})
		require.True(t, ok, "missing %s", term)
		assert.Equal(t, counts[term.String()], n, term.String())
	}
}
