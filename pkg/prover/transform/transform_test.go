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
package transform

import (
	"testing"

	"github.com/consensys/go-resolve/pkg/absyn"
	"github.com/consensys/go-resolve/pkg/prover/model"
	"github.com/consensys/go-resolve/pkg/util/collection/immutable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===================================================================
// Strengthen Consequent
// ===================================================================

func Test_Strengthen_01(t *testing.T) {
	m := newModel(t, []string{"(implies A B)"}, []string{"(< c d)"}, []string{"B"})
	step := check_ApplyOnly(t, m, strengthenOf(t, m, 0))
	//
	require.Len(t, m.Consequents(), 1)
	assert.Equal(t, "A", m.Consequent(0).String())
	assert.True(t, AddsSomethingNew(m, step))
}

func Test_Strengthen_02(t *testing.T) {
	// A is already known, so nothing new
	m := newModel(t, []string{"(implies A B)"}, []string{"A"}, []string{"B"})
	step := check_ApplyOnly(t, m, strengthenOf(t, m, 0))
	//
	require.Len(t, m.Consequents(), 1)
	assert.Equal(t, "A", m.Consequent(0).String())
	assert.False(t, AddsSomethingNew(m, step))
}

func Test_Strengthen_03(t *testing.T) {
	m := newModel(t, []string{"(implies (and A C) B)"}, nil, []string{"B", "D"})
	before, hash := m.String(), m.StateHash()
	step := check_ApplyOnly(t, m, strengthenOf(t, m, 0))
	//
	assert.Equal(t, Stronger, step.Origin().(Transformation).Equivalence())
	assert.Equal(t, []string{"D", "A", "C"}, consequentStrings(m))
	assert.Equal(t, uint(1), m.ProofLength())
	// Undo restores everything
	m.UndoLastProofStep()
	assert.Equal(t, before, m.String())
	assert.Equal(t, hash, m.StateHash())
	assert.Equal(t, uint(0), m.ProofLength())
}

func Test_Strengthen_04(t *testing.T) {
	// Unbound antecedent variables become existential
	m := newModel(t, []string{"(forall (x y z) (implies (and (< x y) (< y z)) (< x z)))"}, nil, []string{"(< a b)"})
	check_ApplyOnly(t, m, strengthenOf(t, m, 0))
	//
	require.Len(t, m.Consequents(), 2)
	//
	for _, c := range m.Consequents() {
		assert.True(t, absyn.ContainsExistential(c.Expression()), c.String())
	}
}

// ===================================================================
// Expand Antecedent
// ===================================================================

func Test_Expand_01(t *testing.T) {
	m := newModel(t, []string{"(forall (x y) (implies (< x y) (<= x y)))"}, []string{"(< a b)"}, []string{"(<= a b)"})
	expand := FromTheorem(m.Library().Get(0))[0]
	step := check_ApplyOnly(t, m, expand)
	//
	require.Len(t, m.LocalTheorems(), 2)
	assert.True(t, m.LocalTheorem(1).Expression().Equals(parse(t, m, "(<= a b)")))
	assert.Equal(t, model.AppliedBy(expand), m.LocalTheorem(1).Justification())
	assert.True(t, AddsSomethingNew(m, step))
	// Discharge consequent using new local theorem
	check_ApplyOnly(t, m, ReplaceLocalTheoremsInConsequentWithTrue)
	assert.True(t, absyn.IsLiteralTrue(m.Consequent(0).Expression()))
	check_ApplyOnly(t, m, EliminateTrue)
	assert.True(t, m.IsProved())
	assert.Len(t, m.ProductiveProofSteps(), 3)
}

func Test_Expand_02(t *testing.T) {
	// Nothing to do with the consequent
	m := newModel(t, []string{"(forall (x) (implies (p x) (q x)))"}, []string{"(p c)"}, []string{"(r d)"})
	step := check_ApplyOnly(t, m, FromTheorem(m.Library().Get(0))[0])
	//
	assert.False(t, AddsSomethingNew(m, step))
}

func Test_Expand_03(t *testing.T) {
	m := newModel(t, []string{"(forall (x) (implies (p x) (q x)))"}, []string{"(p c)"}, []string{"(r c)"})
	expand := FromTheorem(m.Library().Get(0))[0]
	step := check_ApplyOnly(t, m, expand)
	assert.True(t, AddsSomethingNew(m, step))
	// Second time around is a duplicate
	step = check_ApplyOnly(t, m, expand)
	assert.False(t, AddsSomethingNew(m, step))
	m.UndoLastProofStep()
	assert.Len(t, m.LocalTheorems(), 2)
}

func Test_Expand_04(t *testing.T) {
	// Library facts alone cannot expand the antecedent
	m := newModel(t, []string{"(forall (x) (implies (p x) (q x)))", "(p c)"}, nil, []string{"(q c)"})
	expand := FromTheorem(m.Library().Get(0))[0]
	//
	assert.Equal(t, uint(0), expand.Applications(m).Count())
}

func Test_Expand_05(t *testing.T) {
	m := newModel(t, []string{"(forall (x) (= (+ x 0) x))"}, []string{"(< (+ b 0) c)"}, []string{"(< b c)"})
	expand := FromTheorem(m.Library().Get(0))[0]
	step := check_ApplyOnly(t, m, expand)
	//
	require.Len(t, m.LocalTheorems(), 2)
	assert.Equal(t, "(b + 0) < c", m.LocalTheorem(0).String())
	assert.Equal(t, "b < c", m.LocalTheorem(1).String())
	assert.True(t, AddsSomethingNew(m, step))
}

func Test_Expand_06(t *testing.T) {
	// Growth is fine when a new symbol is introduced
	m := newModel(t, []string{"(forall (x) (implies (p x) (q (f x))))"}, []string{"(p c)"}, []string{"(r c)"})
	expand := FromTheorem(m.Library().Get(0))[0]
	//
	assert.Equal(t, 1, expand.FunctionApplicationCountDelta())
	assert.True(t, AddsSomethingNew(m, check_ApplyOnly(t, m, expand)))
}

func Test_Expand_07(t *testing.T) {
	// Growth without anything new is not
	m := newModel(t, []string{"(forall (x) (implies (p x) (p (p x))))"}, []string{"(p c)"}, []string{"(r c)"})
	expand := FromTheorem(m.Library().Get(0))[0]
	//
	assert.False(t, AddsSomethingNew(m, check_ApplyOnly(t, m, expand)))
}

func Test_Expand_08(t *testing.T) {
	// Growth is fine when a symbol is eliminated
	m := newModel(t, []string{"(forall (x) (= (f x) (g (h x))))"}, []string{"(p (f c))"}, []string{"(r c)"})
	expand := FromTheorem(m.Library().Get(0))[0]
	require.IsType(t, &ExpandAntecedentBySubstitution{}, expand)
	//
	assert.Equal(t, 1, expand.FunctionApplicationCountDelta())
	assert.True(t, AddsSomethingNew(m, check_ApplyOnly(t, m, expand)))
	require.Len(t, m.LocalTheorems(), 2)
	assert.True(t, m.LocalTheorem(1).Expression().Equals(parse(t, m, "(p (g (h c)))")))
}

func Test_Expand_09(t *testing.T) {
	// Growth which eliminates nothing is not
	m := newModel(t, []string{"(forall (x) (= (+ x 0) x))"}, []string{"(p c)"}, []string{"(r c)"})
	expand := FromTheorem(m.Library().Get(0))[1]
	require.IsType(t, &ExpandAntecedentBySubstitution{}, expand)
	assert.Equal(t, 1, expand.FunctionApplicationCountDelta())
	//
	apps := expand.Applications(m).Collect()
	require.NotEmpty(t, apps)
	//
	step := apps[0].Apply(m)
	assert.Len(t, m.LocalTheorems(), 2)
	assert.False(t, AddsSomethingNew(m, step))
}

// ===================================================================
// Substitution
// ===================================================================

func Test_Substitute_01(t *testing.T) {
	m := newModel(t, []string{"(forall (x) (= (+ x 0) x))"}, []string{"(< b c)"}, []string{"(= (+ a 0) b)"})
	// Rewrite left-to-right in the consequent
	sub := FromTheorem(m.Library().Get(0))[2]
	step := check_ApplyOnly(t, m, sub)
	//
	assert.Equal(t, "a = b", m.Consequent(0).String())
	assert.True(t, AddsSomethingNew(m, step))
	assert.Equal(t, Equivalent, sub.Equivalence())
	assert.Equal(t, -1, sub.FunctionApplicationCountDelta())
}

func Test_Substitute_02(t *testing.T) {
	// Rewriting to something already known
	m := newModel(t, []string{"(forall (x) (= (+ x 0) x))"}, []string{"(= a b)"}, []string{"(= (+ a 0) b)"})
	step := check_ApplyOnly(t, m, FromTheorem(m.Library().Get(0))[2])
	//
	assert.False(t, AddsSomethingNew(m, step))
}

func Test_Substitute_03(t *testing.T) {
	m := newModel(t, nil, []string{"(= c (f a))"}, []string{"(< (f a) (g (f a)))"})
	subs := FromLocalTheorem(m.LocalTheorem(0))
	require.Len(t, subs, 2)
	// Two occurrences of the right-hand side
	apps := subs[1].Applications(m).Collect()
	require.Len(t, apps, 2)
	apps[1].Apply(m)
	assert.Equal(t, "f(a) < g(c)", m.Consequent(0).String())
}

func Test_Substitute_04(t *testing.T) {
	m := newModel(t, []string{"(forall (x) (= (+ x 0) x))"}, []string{"(< (+ b 0) c)"}, []string{"(< b c)"})
	rewrite := FromTheorem(m.Library().Get(0))[4]
	step := check_ApplyOnly(t, m, rewrite)
	//
	require.Len(t, m.LocalTheorems(), 1)
	assert.Equal(t, "b < c", m.LocalTheorem(0).String())
	assert.True(t, AddsSomethingNew(m, step))
	m.UndoLastProofStep()
	assert.Equal(t, "(b + 0) < c", m.LocalTheorem(0).String())
}

func Test_Propagate_01(t *testing.T) {
	m := newModel(t, nil, []string{"(= c (f a))"}, []string{"(< (f a) (g (f a)))", "(p b)", "(q (f a))"})
	lhs, rhs, ok := absyn.AsBinary(m.LocalTheorem(0).Expression(), "=")
	require.True(t, ok)
	// One application per consequent mentioning the match
	apps := NewPropagateInConsequent(m.LocalTheorem(0), rhs, lhs).Applications(m).Collect()
	require.Len(t, apps, 2)
	assert.Len(t, apps[0].InvolvedSites(), 2)
	assert.Len(t, apps[1].InvolvedSites(), 1)
	// Every occurrence goes at once
	apps[0].Apply(m)
	assert.Equal(t, []string{"c < g(c)", "p(b)", "q(f(a))"}, consequentStrings(m))
	m.UndoLastProofStep()
	assert.Equal(t, "f(a) < g(f(a))", m.Consequent(0).String())
}

func Test_Propagate_02(t *testing.T) {
	// Only the outermost of nested occurrences is rewritten
	m := newModel(t, []string{"(forall (x) (= (f x) x))"}, nil, []string{"(p (f (f c)))"})
	lhs, rhs, ok := absyn.AsBinary(m.Library().Get(0).Expression(), "=")
	require.True(t, ok)
	//
	propagate := NewPropagateInConsequent(m.Library().Get(0), lhs, rhs)
	step := check_ApplyOnly(t, m, propagate)
	//
	assert.Len(t, step.InvolvedSites(), 1)
	assert.Equal(t, "p(f(c))", m.Consequent(0).String())
	assert.Equal(t, -1, propagate.FunctionApplicationCountDelta())
}

// ===================================================================
// Existentials & Trivia
// ===================================================================

func Test_Existential_01(t *testing.T) {
	m := newModel(t, nil, []string{"(< a b)"}, []string{"(exists (y) (and (< a y) (/= y 0)))"})
	require.Len(t, m.Consequents(), 2)
	//
	apps := InstantiateExistential.Applications(m).Collect()
	require.Len(t, apps, 1)
	assert.Contains(t, apps[0].Description(), "y = b")
	//
	apps[0].Apply(m)
	require.Len(t, m.Consequents(), 1)
	assert.True(t, m.Consequent(0).Expression().Equals(parse(t, m, "(/= b 0)")))
	m.UndoLastProofStep()
	assert.Len(t, m.Consequents(), 2)
}

func Test_EliminateTrue_01(t *testing.T) {
	m := newModel(t, nil, nil, []string{"(= a a)", "(< a b)"})
	check_ApplyOnly(t, m, EliminateTrue)
	//
	assert.Equal(t, []string{"a < b"}, consequentStrings(m))
	assert.Equal(t, uint(0), EliminateTrue.Applications(m).Count())
}

func Test_ReplaceWithTrue_01(t *testing.T) {
	m := newModel(t, []string{"(forall (x) (<= x x))"}, nil, []string{"(and (<= c c) (< a b))"})
	replace := FromTheorem(m.Library().Get(0))[0]
	check_ApplyOnly(t, m, replace)
	//
	assert.Equal(t, []string{"true", "a < b"}, consequentStrings(m))
	assert.Equal(t, uint(0), replace.Applications(m).Count())
	// Only part of a consequent
	m = newModel(t, []string{"(<= 0 1)"}, nil, []string{"(or (<= 0 1) (< a b))"})
	replace = FromTheorem(m.Library().Get(0))[0]
	check_ApplyOnly(t, m, replace)
	assert.Equal(t, "true or (a < b)", m.Consequent(0).String())
}

func Test_Fitness_01(t *testing.T) {
	m := newModel(t, []string{"(implies (p c) (q c))", "(= (h e) e)"}, nil, []string{"(q c)"})
	ts := FromTheorem(m.Library().Get(0))
	strengthen, replace := ts[1], ts[2]
	unrelated := FromTheorem(m.Library().Get(1))[2]
	//
	assert.Less(t, Fitness(m, replace), Fitness(m, strengthen))
	assert.Less(t, Fitness(m, strengthen), Fitness(m, unrelated))
}

// ===================================================================
// Helpers
// ===================================================================

func newModel(t *testing.T, library []string, antecedents []string, consequents []string) *model.Model {
	t.Helper()
	//
	var (
		b        = absyn.NewBuilder()
		theorems = make([]*model.Theorem, len(library))
	)
	//
	for i, l := range library {
		theorems[i] = model.NewTheorem("T", parseWith(t, b, l))
	}
	//
	return model.NewModel("vc", b, immutable.New(theorems...), parseAll(t, b, antecedents),
		parseAll(t, b, consequents))
}

func strengthenOf(t *testing.T, m *model.Model, index uint) Transformation {
	t.Helper()
	//
	ts := FromTheorem(m.Library().Get(index))
	require.IsType(t, &StrengthenConsequent{}, ts[1])
	//
	return ts[1]
}

func parse(t *testing.T, m *model.Model, input string) absyn.PExp {
	t.Helper()
	//
	return parseWith(t, m.Builder(), input)
}

func parseWith(t *testing.T, b *absyn.Builder, input string) absyn.PExp {
	t.Helper()
	//
	e, err := absyn.ParseExp(b, input)
	require.NoError(t, err, input)
	//
	return e
}

func parseAll(t *testing.T, b *absyn.Builder, inputs []string) []absyn.PExp {
	t.Helper()
	//
	exps := make([]absyn.PExp, len(inputs))
	//
	for i, input := range inputs {
		exps[i] = parseWith(t, b, input)
	}
	//
	return exps
}

func consequentStrings(m *model.Model) []string {
	var strs []string
	//
	for _, c := range m.Consequents() {
		strs = append(strs, c.String())
	}
	//
	return strs
}

// check_ApplyOnly checks that a transformation has exactly one application, and
// applies it.
func check_ApplyOnly(t *testing.T, m *model.Model, transformation Transformation) *model.Step {
	t.Helper()
	//
	apps := transformation.Applications(m).Collect()
	require.Len(t, apps, 1, "%s", transformation)
	//
	step := apps[0].Apply(m)
	require.Same(t, step, m.LastProofStep())
	//
	return step
}
