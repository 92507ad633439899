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
	"fmt"

	"github.com/consensys/go-resolve/pkg/absyn"
	"github.com/consensys/go-resolve/pkg/prover/model"
	"github.com/consensys/go-resolve/pkg/util/collection/iter"
	"github.com/consensys/go-resolve/pkg/util/collection/set"
)

// ExpandAntecedentByImplication adds the consequents of an implication as new
// local theorems, wherever all of its antecedents are known.  At least one
// antecedent must be matched by a local theorem.
type ExpandAntecedentByImplication struct {
	theorem     *model.Theorem
	antecedents []absyn.PExp
	consequents []absyn.PExp
}

// NewExpandAntecedentByImplication constructs an expansion for a theorem of
// the form "antecedents implies consequents".
func NewExpandAntecedentByImplication(theorem *model.Theorem, antecedents []absyn.PExp,
	consequents []absyn.PExp) *ExpandAntecedentByImplication {
	return &ExpandAntecedentByImplication{theorem, antecedents, consequents}
}

// Applications iterates every way this transformation applies.
//
//nolint:revive
func (p *ExpandAntecedentByImplication) Applications(m *model.Model) iter.Iterator[Application] {
	binders := make([]model.Binder, len(p.antecedents))
	//
	for i, a := range p.antecedents {
		binders[i] = model.NewAtLeastOneLocalTheoremBinder(a, uint(len(p.antecedents)))
	}
	//
	return bindingsToApplications(m.Bind(binders...), func(r model.BindResult) Application {
		app := &generalApplication{origin: p, theorem: p.theorem, involved: r.Sites}
		//
		for _, c := range p.consequents {
			substituted := absyn.Substitute(c, r.Bindings)
			//
			for it := absyn.SplitIntoConjuncts(substituted).Iter(); it.HasNext(); {
				app.addLocalTheorem(it.Next(), atEnd)
			}
		}
		//
		return app
	})
}

// CouldAffectAntecedent determines whether applications may change the local
// theorems.
//
//nolint:revive
func (p *ExpandAntecedentByImplication) CouldAffectAntecedent() bool {
	return true
}

// CouldAffectConsequent determines whether applications may change the
// consequents.
//
//nolint:revive
func (p *ExpandAntecedentByImplication) CouldAffectConsequent() bool {
	return false
}

// FunctionApplicationCountDelta estimates the change in function applications.
//
//nolint:revive
func (p *ExpandAntecedentByImplication) FunctionApplicationCountDelta() int {
	return functionApplicationsOf(p.consequents) - functionApplicationsOf(p.antecedents)
}

// IntroducesQuantifiedVariables determines whether applications may introduce
// quantified variables.
//
//nolint:revive
func (p *ExpandAntecedentByImplication) IntroducesQuantifiedVariables() bool {
	return introducesQuantifiedVariables(p.antecedents, p.consequents)
}

// PatternSymbolNames returns the symbols which must be present.
//
//nolint:revive
func (p *ExpandAntecedentByImplication) PatternSymbolNames() *set.SortedSet[string] {
	return symbolNamesOf(p.antecedents)
}

// ReplacementSymbolNames returns the symbols introduced by applications.
//
//nolint:revive
func (p *ExpandAntecedentByImplication) ReplacementSymbolNames() *set.SortedSet[string] {
	return symbolNamesOf(p.consequents)
}

// Equivalence returns the relationship between states.
//
//nolint:revive
func (p *ExpandAntecedentByImplication) Equivalence() Equivalence {
	return Equivalent
}

// Key identifies this transformation.
//
//nolint:revive
func (p *ExpandAntecedentByImplication) Key() string {
	return fmt.Sprintf("%s expand-implication", p.theorem.Expression())
}

//nolint:revive
func (p *ExpandAntecedentByImplication) String() string {
	return fmt.Sprintf("Expand with %s", p.theorem.Expression())
}
