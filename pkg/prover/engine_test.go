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
package prover

import (
	"context"
	"testing"

	"github.com/consensys/go-resolve/pkg/absyn"
	"github.com/consensys/go-resolve/pkg/prover/model"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Prove_01(t *testing.T) {
	r := check_Proved(t, nil, nil, []string{"true"})
	//
	assert.True(t, r.IsTrivial())
	assert.Empty(t, r.Proof)
	assert.Equal(t, int64(0), r.Attempted)
}

func Test_Prove_02(t *testing.T) {
	r := check_Proved(t, nil, []string{"(< a b)"}, []string{"(< a b)"})
	//
	require.NotEmpty(t, r.Proof)
	assert.Equal(t, DevelopedLabel, r.Proof[0].Label)
	assert.Equal(t, uint(2), r.Steps())
	assert.Equal(t, uint(0), r.SearchSteps)
}

func Test_Prove_03(t *testing.T) {
	check_Proved(t, nil, []string{"(= c a)", "(< a b)"}, []string{"(< c b)"})
}

func Test_Prove_04(t *testing.T) {
	library := []string{"(forall (x y) (implies (< x y) (<= x y)))"}
	check_Proved(t, library, []string{"(< a b)"}, []string{"(<= a b)"})
}

func Test_Prove_05(t *testing.T) {
	library := []string{"(forall (x) (= (+ x 0) x))"}
	check_Proved(t, library, []string{"(< a b)"}, []string{"(< (+ a 0) b)"})
}

func Test_Prove_06(t *testing.T) {
	check_Proved(t, nil, []string{"(and (< a b) (< b c))"}, []string{"(and (< b c) (< a b))"})
}

func Test_Prove_07(t *testing.T) {
	r := check_NotProved(t, DefaultConfig(), nil, []string{"(< a b)"}, []string{"(< b a)"})
	// Search space exhausted
	assert.NoError(t, r.Reason)
	assert.Empty(t, r.Proof)
}

func Test_Prove_08(t *testing.T) {
	config := DefaultConfig()
	config.MaxSteps = 5
	library := []string{"(forall (x) (= x (+ x 0)))"}
	//
	r := check_NotProved(t, config, library, nil, []string{"(< b a)"})
	assert.ErrorIs(t, r.Reason, ErrStepLimitExceeded)
	assert.Equal(t, int64(5), r.Attempted)
	// Trail of deepest path explored
	require.NotEmpty(t, r.Proof)
	assert.LessOrEqual(t, r.Steps(), uint(5))
	//
	for _, line := range r.Proof {
		assert.Empty(t, line.Label)
		assert.NotEmpty(t, line.Applied)
		assert.Contains(t, line.State, "-->")
	}
}

func Test_Prove_09(t *testing.T) {
	var (
		p           = newProver(t, DefaultConfig(), nil)
		ctx, cancel = context.WithCancel(context.Background())
	)
	//
	cancel()
	//
	r := p.Prove(ctx, newVC(t, p, "vc", []string{"(< a b)"}, []string{"(< b a)"}))
	assert.False(t, r.Proved)
	assert.ErrorIs(t, r.Reason, context.Canceled)
}

func Test_Prove_10(t *testing.T) {
	var (
		config = DefaultConfig()
		given  = []string{"(< a b)"}
	)
	// Requires exactly two steps
	config.MaxSteps = 2
	p := newProver(t, config, nil)
	r := p.Prove(context.Background(), newVC(t, p, "vc", given, given))
	//
	require.True(t, r.Proved)
	assert.Equal(t, uint(2), r.Steps())
	assert.Equal(t, int64(2), r.Attempted)
	// One step short
	config.MaxSteps = 1
	r = check_NotProved(t, config, nil, given, given)
	assert.ErrorIs(t, r.Reason, ErrStepLimitExceeded)
	assert.Equal(t, int64(1), r.Attempted)
	require.Len(t, r.Proof, 1)
	assert.NotEqual(t, r.Initial, r.Proof[0].State)
}

func Test_ProveAll_01(t *testing.T) {
	var (
		config = DefaultConfig()
		p      *Prover
	)
	//
	config.Workers = 2
	p = newProver(t, config, nil)
	//
	vcs := []VC{
		newVC(t, p, "0_1", nil, []string{"true"}),
		newVC(t, p, "0_2", []string{"(< a b)"}, []string{"(< b a)"}),
		newVC(t, p, "0_3", []string{"(< a b)"}, []string{"(< a b)"}),
	}
	//
	results, err := p.ProveAll(context.Background(), vcs)
	require.NoError(t, err)
	require.Len(t, results, 3)
	//
	for i, r := range results {
		assert.Equal(t, vcs[i].Name, r.Name)
	}
	//
	assert.True(t, results[0].Proved)
	assert.False(t, results[1].Proved)
	assert.True(t, results[2].Proved)
}

// ===================================================================
// Test Helpers
// ===================================================================

func check_Proved(t *testing.T, library []string, given []string, goal []string) Result {
	t.Helper()
	//
	p := newProver(t, DefaultConfig(), library)
	r := p.Prove(context.Background(), newVC(t, p, "vc", given, goal))
	//
	require.True(t, r.Proved, "expected proof of %v --> %v", given, goal)
	assert.NoError(t, r.Reason)
	//
	return r
}

func check_NotProved(t *testing.T, config Config, library []string, given []string, goal []string) Result {
	t.Helper()
	//
	p := newProver(t, config, library)
	r := p.Prove(context.Background(), newVC(t, p, "vc", given, goal))
	//
	require.False(t, r.Proved, "unexpected proof of %v --> %v", given, goal)
	assert.LessOrEqual(t, r.Steps(), uint(r.Attempted))
	//
	return r
}

func newProver(t *testing.T, config Config, library []string) *Prover {
	t.Helper()
	//
	var (
		builder  = absyn.NewBuilder()
		theorems = make([]*model.Theorem, len(library))
	)
	//
	for i, l := range library {
		theorems[i] = model.NewTheorem("T", parseExp(t, builder, l))
	}
	//
	return NewProver(config, builder, theorems, log.NewEntry(log.StandardLogger()))
}

func newVC(t *testing.T, p *Prover, name string, given []string, goal []string) VC {
	t.Helper()
	//
	vc := VC{Name: name}
	//
	for _, g := range given {
		vc.Antecedents = append(vc.Antecedents, parseExp(t, p.builder, g))
	}
	//
	for _, g := range goal {
		vc.Consequents = append(vc.Consequents, parseExp(t, p.builder, g))
	}
	//
	return vc
}

func parseExp(t *testing.T, builder *absyn.Builder, input string) absyn.PExp {
	t.Helper()
	//
	e, err := absyn.ParseExp(builder, input)
	require.NoError(t, err, input)
	//
	return e
}
