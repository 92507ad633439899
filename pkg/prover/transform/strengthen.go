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

// StrengthenConsequent uses an implication backwards: wherever its consequents
// all appear among the consequents of the model, they are replaced by its
// (suitably instantiated) antecedents.  Antecedent variables left unbound
// become existentially quantified.
type StrengthenConsequent struct {
	theorem     *model.Theorem
	antecedents []absyn.PExp
	consequents []absyn.PExp
}

// NewStrengthenConsequent constructs a strengthening for a theorem of the form
// "antecedents implies consequents".
func NewStrengthenConsequent(theorem *model.Theorem, antecedents []absyn.PExp,
	consequents []absyn.PExp) *StrengthenConsequent {
	return &StrengthenConsequent{theorem, antecedents, consequents}
}

// Applications iterates every way this transformation applies.
//
//nolint:revive
func (p *StrengthenConsequent) Applications(m *model.Model) iter.Iterator[Application] {
	binders := make([]model.Binder, len(p.consequents))
	//
	for i, c := range p.consequents {
		binders[i] = model.NewTopLevelConsequentBinder(c)
	}
	//
	return bindingsToApplications(m.Bind(binders...), func(r model.BindResult) Application {
		app := &generalApplication{origin: p, theorem: p.theorem, involved: r.Sites}
		//
		for _, s := range r.Sites {
			app.remove(s.Conjunct())
		}
		//
		for _, a := range p.antecedents {
			app.addConsequent(absyn.FlipQuantifiers(absyn.Substitute(a, r.Bindings)))
		}
		//
		return app
	})
}

// CouldAffectAntecedent determines whether applications may change the local
// theorems.
//
//nolint:revive
func (p *StrengthenConsequent) CouldAffectAntecedent() bool {
	return false
}

// CouldAffectConsequent determines whether applications may change the
// consequents.
//
//nolint:revive
func (p *StrengthenConsequent) CouldAffectConsequent() bool {
	return true
}

// FunctionApplicationCountDelta estimates the change in function applications.
//
//nolint:revive
func (p *StrengthenConsequent) FunctionApplicationCountDelta() int {
	return functionApplicationsOf(p.antecedents) - functionApplicationsOf(p.consequents)
}

// IntroducesQuantifiedVariables determines whether applications may introduce
// quantified variables.
//
//nolint:revive
func (p *StrengthenConsequent) IntroducesQuantifiedVariables() bool {
	return introducesQuantifiedVariables(p.consequents, p.antecedents)
}

// PatternSymbolNames returns the symbols which must be present.
//
//nolint:revive
func (p *StrengthenConsequent) PatternSymbolNames() *set.SortedSet[string] {
	return symbolNamesOf(p.consequents)
}

// ReplacementSymbolNames returns the symbols introduced by applications.
//
//nolint:revive
func (p *StrengthenConsequent) ReplacementSymbolNames() *set.SortedSet[string] {
	return symbolNamesOf(p.antecedents)
}

// Equivalence returns the relationship between states.
//
//nolint:revive
func (p *StrengthenConsequent) Equivalence() Equivalence {
	return Stronger
}

// Key identifies this transformation.
//
//nolint:revive
func (p *StrengthenConsequent) Key() string {
	return fmt.Sprintf("%s strengthen", p.theorem.Expression())
}

//nolint:revive
func (p *StrengthenConsequent) String() string {
	return fmt.Sprintf("Strengthen to %s", conjunctListString(p.antecedents))
}
