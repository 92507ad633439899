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

// ExpandAntecedentBySubstitution adds new local theorems obtained by rewriting
// existing ones with an equality, leaving the originals in place.
type ExpandAntecedentBySubstitution struct {
	theorem           model.Conjunct
	match             absyn.PExp
	matchConjuncts    []absyn.PExp
	template          absyn.PExp
	templateConjuncts []absyn.PExp
}

// NewExpandAntecedentBySubstitution constructs an expansion which rewrites
// occurrences of match with template.
func NewExpandAntecedentBySubstitution(theorem model.Conjunct, match absyn.PExp,
	template absyn.PExp) *ExpandAntecedentBySubstitution {
	return &ExpandAntecedentBySubstitution{
		theorem:           theorem,
		match:             match,
		matchConjuncts:    absyn.SplitIntoConjuncts(match).ToArray(),
		template:          template,
		templateConjuncts: absyn.SplitIntoConjuncts(template).ToArray(),
	}
}

// Applications iterates every way this transformation applies.  A match may
// lie anywhere inside a local theorem or, when the match is itself a
// conjunction, span several theorems.
//
//nolint:revive
func (p *ExpandAntecedentBySubstitution) Applications(m *model.Model) iter.Iterator[Application] {
	binder := model.NewSkipOneTopLevelAntecedentBinder(p.match, p.theorem)
	apps := bindingsToApplications(m.Bind(binder), p.toApplication)
	//
	if n := len(p.matchConjuncts); n > 1 {
		binders := make([]model.Binder, n)
		//
		for i, c := range p.matchConjuncts {
			binders[i] = model.NewAtLeastOneLocalTheoremBinder(c, uint(n))
		}
		//
		apps = apps.Append(bindingsToApplications(m.Bind(binders...), p.toApplication))
	}
	//
	return apps
}

func (p *ExpandAntecedentBySubstitution) toApplication(r model.BindResult) Application {
	app := &generalApplication{origin: p, theorem: p.theorem, involved: r.Sites}
	//
	if len(r.Sites) > 1 {
		// Add the new, transformed conjuncts
		for _, c := range p.templateConjuncts {
			app.addLocalTheorem(absyn.Substitute(c, r.Bindings), atEnd)
		}
	} else {
		site := r.Sites[0]
		transformed := absyn.Substitute(p.template, r.Bindings)
		root := absyn.WithSiteAltered(site.Root().Exp(), site.Path(), transformed)
		//
		for it := absyn.SplitIntoConjuncts(root).Iter(); it.HasNext(); {
			app.addLocalTheorem(it.Next(), atEnd)
		}
	}
	//
	return app
}

// CouldAffectAntecedent determines whether applications may change the local
// theorems.
//
//nolint:revive
func (p *ExpandAntecedentBySubstitution) CouldAffectAntecedent() bool {
	return true
}

// CouldAffectConsequent determines whether applications may change the
// consequents.
//
//nolint:revive
func (p *ExpandAntecedentBySubstitution) CouldAffectConsequent() bool {
	return false
}

// FunctionApplicationCountDelta estimates the change in function applications.
//
//nolint:revive
func (p *ExpandAntecedentBySubstitution) FunctionApplicationCountDelta() int {
	return absyn.FunctionApplicationCount(p.template) - absyn.FunctionApplicationCount(p.match)
}

// IntroducesQuantifiedVariables determines whether applications may introduce
// quantified variables.
//
//nolint:revive
func (p *ExpandAntecedentBySubstitution) IntroducesQuantifiedVariables() bool {
	return introducesQuantifiedVariables([]absyn.PExp{p.match}, []absyn.PExp{p.template})
}

// PatternSymbolNames returns the symbols which must be present.
//
//nolint:revive
func (p *ExpandAntecedentBySubstitution) PatternSymbolNames() *set.SortedSet[string] {
	return absyn.SymbolNames(p.match)
}

// ReplacementSymbolNames returns the symbols introduced by applications.
//
//nolint:revive
func (p *ExpandAntecedentBySubstitution) ReplacementSymbolNames() *set.SortedSet[string] {
	return absyn.SymbolNames(p.template)
}

// Equivalence returns the relationship between states.
//
//nolint:revive
func (p *ExpandAntecedentBySubstitution) Equivalence() Equivalence {
	return Equivalent
}

// Key identifies this transformation.
//
//nolint:revive
func (p *ExpandAntecedentBySubstitution) Key() string {
	return fmt.Sprintf("%s = %s expand-substitution", p.match, p.template)
}

//nolint:revive
func (p *ExpandAntecedentBySubstitution) String() string {
	return fmt.Sprintf("Expand %s to %s", p.match, p.template)
}
