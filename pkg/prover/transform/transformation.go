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
	"github.com/consensys/go-resolve/pkg/util/collection/iter"
	"github.com/consensys/go-resolve/pkg/util/collection/set"
)

// Equivalence describes the logical relationship between a proof state and the
// state resulting from a transformation.
type Equivalence uint8

const (
	// Equivalent transformations neither weaken nor strengthen the state.
	Equivalent Equivalence = iota
	// Stronger transformations leave a consequent which is harder to prove.
	Stronger
	// Weaker transformations leave a consequent which is easier to prove.
	Weaker
)

func (e Equivalence) String() string {
	switch e {
	case Equivalent:
		return "equivalent"
	case Stronger:
		return "stronger"
	default:
		return "weaker"
	}
}

// Transformation is a rule which, matched against a proof model, yields zero or
// more concrete applications.  Most transformations derive from a single
// theorem.
type Transformation interface {
	// Applications iterates, lazily, every way this transformation applies to
	// the current state of a model.
	Applications(m *model.Model) iter.Iterator[Application]
	// CouldAffectAntecedent determines whether applications may change the
	// local theorems.
	CouldAffectAntecedent() bool
	// CouldAffectConsequent determines whether applications may change the
	// consequents.
	CouldAffectConsequent() bool
	// FunctionApplicationCountDelta estimates the change in the number of
	// function applications caused by an application.
	FunctionApplicationCountDelta() int
	// IntroducesQuantifiedVariables determines whether applications may
	// introduce quantified variables not previously present.
	IntroducesQuantifiedVariables() bool
	// PatternSymbolNames returns the symbols which must be present for this
	// transformation to apply.
	PatternSymbolNames() *set.SortedSet[string]
	// ReplacementSymbolNames returns the symbols introduced by applications.
	ReplacementSymbolNames() *set.SortedSet[string]
	// Equivalence returns the relationship between the state before and after
	// an application.
	Equivalence() Equivalence
	// Key identifies this transformation, such that transformations with the
	// same key are interchangeable.
	Key() string
	// String returns a human-readable description.
	String() string
}

// Application is a single, concrete application of a transformation.
type Application interface {
	// Description describes the result of this application.
	Description() string
	// Apply this application to a model, recording the resulting step in the
	// model's proof.
	Apply(m *model.Model) *model.Step
	// InvolvedSites returns the sites from which this application was derived.
	InvolvedSites() []*model.Site
}

// FromTheorem returns the transformations derived from a library theorem.  An
// implication yields transformations which expand the antecedent and which
// strengthen the consequent.  An equality yields substitutions in both
// directions.  Any theorem can discharge matching parts of the consequent.
func FromTheorem(t *model.Theorem) []Transformation {
	var (
		exp             = t.Expression()
		transformations []Transformation
	)
	//
	if lhs, rhs, ok := absyn.AsBinary(exp, "implies"); ok {
		antecedents := absyn.SplitIntoConjuncts(lhs).ToArray()
		consequents := absyn.SplitIntoConjuncts(rhs).ToArray()
		transformations = append(transformations,
			NewExpandAntecedentByImplication(t, antecedents, consequents),
			NewStrengthenConsequent(t, antecedents, consequents))
	} else if lhs, rhs, ok := absyn.AsBinary(exp, "="); ok && !lhs.Equals(rhs) {
		transformations = append(transformations,
			NewExpandAntecedentBySubstitution(t, lhs, rhs),
			NewExpandAntecedentBySubstitution(t, rhs, lhs),
			NewSubstituteInPlaceInConsequent(t, lhs, rhs),
			NewSubstituteInPlaceInConsequent(t, rhs, lhs),
			NewSubstituteInPlaceInAntecedent(t, lhs, rhs),
			NewSubstituteInPlaceInAntecedent(t, rhs, lhs))
	}
	//
	return append(transformations, NewReplaceTheoremInConsequentWithTrue(t))
}

// FromLocalTheorem returns the transformations derived from a local theorem.
// These are restricted to those which rewrite the consequent, since the
// antecedent is developed from the library.
func FromLocalTheorem(t *model.LocalTheorem) []Transformation {
	if lhs, rhs, ok := absyn.AsBinary(t.Expression(), "="); ok && !lhs.Equals(rhs) {
		return []Transformation{
			NewSubstituteInPlaceInConsequent(t, lhs, rhs),
			NewSubstituteInPlaceInConsequent(t, rhs, lhs),
		}
	}
	//
	return nil
}

// ============================================================================
// Helpers
// ============================================================================

func symbolNamesOf(exps []absyn.PExp) *set.SortedSet[string] {
	return set.UnionSortedSets(exps, absyn.SymbolNames)
}

func functionApplicationsOf(exps []absyn.PExp) int {
	count := 0
	//
	for _, e := range exps {
		count += absyn.FunctionApplicationCount(e)
	}
	//
	return count
}

// introducesQuantifiedVariables determines whether the replacement has
// quantified variables not present in the pattern.
func introducesQuantifiedVariables(pattern []absyn.PExp, replacement []absyn.PExp) bool {
	names := set.NewSortedSet[string]()
	//
	for _, e := range pattern {
		for _, v := range absyn.QuantifiedVariables(e) {
			names.Insert(v.Name().Text())
		}
	}
	//
	for _, e := range replacement {
		for _, v := range absyn.QuantifiedVariables(e) {
			if !names.Contains(v.Name().Text()) {
				return true
			}
		}
	}
	//
	return false
}

func conjunctListString(exps []absyn.PExp) string {
	switch len(exps) {
	case 0:
		return "true"
	case 1:
		return exps[0].String()
	}
	//
	var str string
	//
	for i, e := range exps {
		if i != 0 {
			str += " and "
		}
		//
		str += e.String()
	}
	//
	return str
}

// bindingsToApplications maps a function over binding results.
func bindingsToApplications(results iter.Iterator[model.BindResult],
	fn func(model.BindResult) Application) iter.Iterator[Application] {
	return iter.NewProjectIterator(results, fn)
}
