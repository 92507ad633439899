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
	"github.com/consensys/go-resolve/pkg/absyn"
	"github.com/consensys/go-resolve/pkg/prover/model"
	"github.com/consensys/go-resolve/pkg/util/collection/set"
)

// AddsSomethingNew determines whether a step, which has just been applied to a
// model, moved the proof somewhere interesting.  A step is rejected when:
//
// 1. It introduced a local theorem which already existed, or a consequent which
// is already known to hold.
//
// 2. It expanded the antecedent with facts that mention none of the variables of
// the consequent.
//
// 3. It expanded the antecedent such that the number of function applications
// grew, without either eliminating a symbol (for substitutions) or introducing
// one (for implications).
func AddsSomethingNew(m *model.Model, step *model.Step) bool {
	var locals []absyn.PExp
	//
	for _, c := range step.AffectedConjuncts() {
		switch c := c.(type) {
		case *model.LocalTheorem:
			if m.LocalTheoremCount(c.Expression()) > 1 {
				return false
			}
			//
			locals = append(locals, c.Expression())
		case *model.Consequent:
			if m.ContainsLocalTheorem(c.Expression()) {
				return false
			}
		}
	}
	//
	t, ok := step.Origin().(Transformation)
	//
	if !ok || !t.CouldAffectAntecedent() {
		return true
	} else if !mentionsAny(locals, consequentVariableNames(m)) {
		return false
	} else if t.FunctionApplicationCountDelta() <= 0 {
		return true
	}
	//
	switch t.(type) {
	case *ExpandAntecedentBySubstitution:
		return !t.PatternSymbolNames().Difference(t.ReplacementSymbolNames()).IsEmpty()
	case *ExpandAntecedentByImplication:
		return !t.ReplacementSymbolNames().Difference(t.PatternSymbolNames()).IsEmpty()
	default:
		return false
	}
}

func consequentVariableNames(m *model.Model) *set.SortedSet[string] {
	return set.UnionSortedSets(m.Consequents(), func(c *model.Consequent) *set.SortedSet[string] {
		return absyn.VariableNames(c.Expression())
	})
}

func mentionsAny(exps []absyn.PExp, names *set.SortedSet[string]) bool {
	for _, e := range exps {
		if absyn.SymbolNames(e).Intersects(names) {
			return true
		}
	}
	//
	return false
}

// Fitness scores a transformation against the current state of a model, such
// that lower scores are tried first.  Transformations which shrink the
// consequent are preferred, whilst those which strengthen it, introduce
// quantified variables or have nothing in common with the consequent are
// penalised.
func Fitness(m *model.Model, t Transformation) int {
	score := 10 * t.FunctionApplicationCountDelta()
	//
	if t.Equivalence() == Stronger {
		score += 5
	}
	//
	if t.IntroducesQuantifiedVariables() {
		score += 20
	}
	//
	if names := t.PatternSymbolNames(); !names.IsEmpty() {
		consequent := set.UnionSortedSets(m.Consequents(), func(c *model.Consequent) *set.SortedSet[string] {
			return absyn.SymbolNames(c.Expression())
		})
		//
		if !names.Intersects(consequent) {
			score += 50
		}
	}
	//
	return score
}
