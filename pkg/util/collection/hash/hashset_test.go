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
	"math/rand/v2"
	"testing"

	"github.com/consensys/go-resolve/pkg/absyn"
	"github.com/consensys/go-resolve/pkg/util/collection/hash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_HashSet_01(t *testing.T) {
	var (
		b     = absyn.NewBuilder()
		a     = b.Symbol("a", absyn.Entity)
		terms = []absyn.PExp{a, b.Apply("+", absyn.Entity, a, a), b.Apply("+", absyn.Entity, a, a), a}
	)
	//
	set := check_HashSet(t, terms)
	assert.Equal(t, uint(2), set.Size())
}

func Test_HashSet_02(t *testing.T) {
	check_HashSet(t, randomTerms(absyn.NewBuilder(), 10, 32))
}

func Test_HashSet_03(t *testing.T) {
	check_HashSet(t, randomTerms(absyn.NewBuilder(), 100, 32))
}

func Test_HashSet_04(t *testing.T) {
	check_HashSet(t, randomTerms(absyn.NewBuilder(), 1000, 32))
}

func Test_HashSet_05(t *testing.T) {
	check_HashSet(t, randomTerms(absyn.NewBuilder(), 10000, 256))
}

func Test_HashSet_06(t *testing.T) {
	var (
		b   = absyn.NewBuilder()
		set = hash.NewSet[absyn.PExp](0)
		lt  = b.Apply("<", absyn.Boolean, b.Symbol("a", absyn.Entity), b.Symbol("b", absyn.Entity))
	)
	// Structurally equal terms built separately are the same element
	assert.False(t, set.Insert(lt))
	assert.True(t, set.Insert(b.Apply("<", absyn.Boolean, b.Symbol("a", absyn.Entity), b.Symbol("b", absyn.Entity))))
	assert.True(t, set.Remove(lt))
	assert.False(t, set.Contains(lt))
	assert.Empty(t, set.Items())
}

func TestSlow_HashSet_07(t *testing.T) {
	check_HashSet(t, randomTerms(absyn.NewBuilder(), 100000, 1024))
}

// ===================================================================
// Test Helpers
// ===================================================================

// check_HashSet inserts the given terms into a set whose keys collide often,
// checking the result against a map keyed on the rendering of each term.
func check_HashSet(t *testing.T, terms []absyn.PExp) *hash.Set[weakKey] {
	t.Helper()
	//
	var (
		set    = hash.NewSet[weakKey](0)
		unique = make(map[string]bool)
		dups   = 0
	)
	//
	for _, term := range terms {
		if set.Insert(weakKey{term}) {
			dups++
		}
		//
		unique[term.String()] = true
	}
	//
	require.Equal(t, uint(len(unique)), set.Size(), set.String())
	assert.Equal(t, len(terms), len(unique)+dups)
	//
	for _, term := range terms {
		assert.True(t, set.Contains(weakKey{term}), "missing %s", term)
	}
	//
	return set
}

// randomTerms generates n terms of the form f(x_k) for k drawn from 0..m.
func randomTerms(b *absyn.Builder, n, m uint) []absyn.PExp {
	terms := make([]absyn.PExp, n)
	//
	for i := range terms {
		x := b.Symbol(fmt.Sprintf("x%d", rand.UintN(m)), absyn.Entity)
		terms[i] = b.Apply("f", absyn.Entity, x)
	}
	//
	return terms
}

// weakKey wraps a term with a deliberately poor hash, so that sets and maps
// keyed on it see plenty of collisions.
type weakKey struct {
	term absyn.PExp
}

func (p weakKey) Equals(other weakKey) bool {
	return p.term.Equals(other.term)
}

func (p weakKey) Hash() uint64 {
	return p.term.Hash() % 16
}

func (p weakKey) String() string {
	return p.term.String()
}
