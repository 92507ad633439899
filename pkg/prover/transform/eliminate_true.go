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

// EliminateTrueConjunctInConsequent removes any consequent which is obviously
// true.
type EliminateTrueConjunctInConsequent struct{}

// EliminateTrue is the one and only instance of its transformation.
var EliminateTrue = &EliminateTrueConjunctInConsequent{}

// Applications iterates every way this transformation applies.
//
//nolint:revive
func (p *EliminateTrueConjunctInConsequent) Applications(m *model.Model) iter.Iterator[Application] {
	trivial := iter.NewFilterIterator(m.ConsequentSites(), func(s *model.Site) bool {
		return absyn.IsObviouslyTrue(s.Exp())
	})
	//
	return iter.NewProjectIterator(trivial, func(s *model.Site) Application {
		app := &generalApplication{origin: p, involved: []*model.Site{s}}
		app.remove(s.Conjunct())
		//
		return app
	})
}

// CouldAffectAntecedent determines whether applications may change the local
// theorems.
//
//nolint:revive
func (p *EliminateTrueConjunctInConsequent) CouldAffectAntecedent() bool {
	return false
}

// CouldAffectConsequent determines whether applications may change the
// consequents.
//
//nolint:revive
func (p *EliminateTrueConjunctInConsequent) CouldAffectConsequent() bool {
	return true
}

// FunctionApplicationCountDelta estimates the change in function applications.
//
//nolint:revive
func (p *EliminateTrueConjunctInConsequent) FunctionApplicationCountDelta() int {
	return -1
}

// IntroducesQuantifiedVariables determines whether applications may introduce
// quantified variables.
//
//nolint:revive
func (p *EliminateTrueConjunctInConsequent) IntroducesQuantifiedVariables() bool {
	return false
}

// PatternSymbolNames returns the symbols which must be present.
//
//nolint:revive
func (p *EliminateTrueConjunctInConsequent) PatternSymbolNames() *set.SortedSet[string] {
	return set.NewSortedSet[string]()
}

// ReplacementSymbolNames returns the symbols introduced by applications.
//
//nolint:revive
func (p *EliminateTrueConjunctInConsequent) ReplacementSymbolNames() *set.SortedSet[string] {
	return set.NewSortedSet[string]()
}

// Equivalence returns the relationship between states.
//
//nolint:revive
func (p *EliminateTrueConjunctInConsequent) Equivalence() Equivalence {
	return Equivalent
}

// Key identifies this transformation.
//
//nolint:revive
func (p *EliminateTrueConjunctInConsequent) Key() string {
	return "eliminate-true"
}

//nolint:revive
func (p *EliminateTrueConjunctInConsequent) String() string {
	return "Eliminate true conjunct in consequent"
}
