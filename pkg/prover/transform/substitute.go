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

// substitution is the common part of the in-place rewrites, which replace
// occurrences of a match with a template.
type substitution struct {
	theorem           model.Conjunct
	match             absyn.PExp
	matchConjuncts    []absyn.PExp
	template          absyn.PExp
	templateConjuncts []absyn.PExp
}

func newSubstitution(theorem model.Conjunct, match absyn.PExp, template absyn.PExp) substitution {
	return substitution{
		theorem:           theorem,
		match:             match,
		matchConjuncts:    absyn.SplitIntoConjuncts(match).ToArray(),
		template:          template,
		templateConjuncts: absyn.SplitIntoConjuncts(template).ToArray(),
	}
}

// FunctionApplicationCountDelta estimates the change in function applications.
//
//nolint:revive
func (p *substitution) FunctionApplicationCountDelta() int {
	return absyn.FunctionApplicationCount(p.template) - absyn.FunctionApplicationCount(p.match)
}

// IntroducesQuantifiedVariables determines whether applications may introduce
// quantified variables.
//
//nolint:revive
func (p *substitution) IntroducesQuantifiedVariables() bool {
	return introducesQuantifiedVariables([]absyn.PExp{p.match}, []absyn.PExp{p.template})
}

// PatternSymbolNames returns the symbols which must be present.
//
//nolint:revive
func (p *substitution) PatternSymbolNames() *set.SortedSet[string] {
	return absyn.SymbolNames(p.match)
}

// ReplacementSymbolNames returns the symbols introduced by applications.
//
//nolint:revive
func (p *substitution) ReplacementSymbolNames() *set.SortedSet[string] {
	return absyn.SymbolNames(p.template)
}

// Equivalence returns the relationship between states.
//
//nolint:revive
func (p *substitution) Equivalence() Equivalence {
	return Equivalent
}

// ============================================================================
// Consequent
// ============================================================================

// SubstituteInPlaceInConsequent rewrites occurrences of a match anywhere
// within the consequents.
type SubstituteInPlaceInConsequent struct {
	substitution
}

// NewSubstituteInPlaceInConsequent constructs a rewrite of match to template
// justified by a given theorem.
func NewSubstituteInPlaceInConsequent(theorem model.Conjunct, match absyn.PExp,
	template absyn.PExp) *SubstituteInPlaceInConsequent {
	return &SubstituteInPlaceInConsequent{newSubstitution(theorem, match, template)}
}

// Applications iterates every way this transformation applies.
//
//nolint:revive
func (p *SubstituteInPlaceInConsequent) Applications(m *model.Model) iter.Iterator[Application] {
	binder := model.NewInductiveConsequentBinder(p.match)
	//
	return bindingsToApplications(m.Bind(binder), func(r model.BindResult) Application {
		var (
			site        = r.Sites[0]
			transformed = absyn.Substitute(p.template, r.Bindings)
			root        = absyn.WithSiteAltered(site.Root().Exp(), site.Path(), transformed)
			app         = &generalApplication{origin: p, theorem: p.theorem, involved: r.Sites}
		)
		//
		alterConsequent(app, site.Conjunct(), root)
		//
		return app
	})
}

// alterConsequent replaces a consequent, splitting the replacement if it has
// become a conjunction.
func alterConsequent(app *generalApplication, c model.Conjunct, root absyn.PExp) {
	conjuncts := absyn.SplitIntoConjuncts(root)
	//
	if conjuncts.Size() == 1 {
		app.alter(c, root)
		return
	}
	//
	app.remove(c)
	//
	for it := conjuncts.Iter(); it.HasNext(); {
		app.addConsequent(it.Next())
	}
}

// CouldAffectAntecedent determines whether applications may change the local
// theorems.
//
//nolint:revive
func (p *SubstituteInPlaceInConsequent) CouldAffectAntecedent() bool {
	return false
}

// CouldAffectConsequent determines whether applications may change the
// consequents.
//
//nolint:revive
func (p *SubstituteInPlaceInConsequent) CouldAffectConsequent() bool {
	return true
}

// Key identifies this transformation.
//
//nolint:revive
func (p *SubstituteInPlaceInConsequent) Key() string {
	return fmt.Sprintf("%s = %s substitute-consequent", p.match, p.template)
}

//nolint:revive
func (p *SubstituteInPlaceInConsequent) String() string {
	return fmt.Sprintf("Substitute %s for %s", p.template, p.match)
}

// ============================================================================
// Propagation
// ============================================================================

// PropagateInConsequent rewrites every occurrence of a match within a
// consequent in a single step.  Where occurrences nest, only the outermost is
// rewritten.
type PropagateInConsequent struct {
	substitution
}

// NewPropagateInConsequent constructs a rewrite of every occurrence of match to
// template, justified by a given theorem.
func NewPropagateInConsequent(theorem model.Conjunct, match absyn.PExp, template absyn.PExp) *PropagateInConsequent {
	return &PropagateInConsequent{newSubstitution(theorem, match, template)}
}

// Applications yields one application for each consequent containing the
// match.
//
//nolint:revive
func (p *PropagateInConsequent) Applications(m *model.Model) iter.Iterator[Application] {
	var (
		tags  = make(map[model.Conjunct]*model.TaggedSites[absyn.PExp])
		order []model.Conjunct
		apps  []Application
	)
	//
	for it := m.Bind(model.NewInductiveConsequentBinder(p.match)); it.HasNext(); {
		var (
			r    = it.Next()
			site = r.Sites[0]
		)
		//
		sites, ok := tags[site.Conjunct()]
		//
		if !ok {
			sites = model.NewTaggedSites[absyn.PExp](site)
			tags[site.Conjunct()] = sites
			order = append(order, site.Conjunct())
		}
		//
		sites.Put(site, absyn.Substitute(p.template, r.Bindings))
	}
	//
	for _, c := range order {
		apps = append(apps, p.toApplication(c, tags[c]))
	}
	//
	return iter.NewArrayIterator(apps)
}

func (p *PropagateInConsequent) toApplication(c model.Conjunct, tags *model.TaggedSites[absyn.PExp]) Application {
	var (
		outermost = tags.TopLevel()
		root      = outermost[0].Root().Exp()
	)
	// Disjoint sites keep their paths when a sibling is replaced
	for _, site := range outermost {
		replacement, _ := tags.Get(site)
		root = absyn.WithSiteAltered(root, site.Path(), replacement)
	}
	//
	app := &generalApplication{origin: p, theorem: p.theorem, involved: outermost}
	alterConsequent(app, c, root)
	//
	return app
}

// CouldAffectAntecedent determines whether applications may change the local
// theorems.
//
//nolint:revive
func (p *PropagateInConsequent) CouldAffectAntecedent() bool {
	return false
}

// CouldAffectConsequent determines whether applications may change the
// consequents.
//
//nolint:revive
func (p *PropagateInConsequent) CouldAffectConsequent() bool {
	return true
}

// Key identifies this transformation.
//
//nolint:revive
func (p *PropagateInConsequent) Key() string {
	return fmt.Sprintf("%s = %s propagate-consequent", p.match, p.template)
}

//nolint:revive
func (p *PropagateInConsequent) String() string {
	return fmt.Sprintf("Propagate %s for %s", p.template, p.match)
}

// ============================================================================
// Antecedent
// ============================================================================

// SubstituteInPlaceInAntecedent rewrites local theorems in place, replacing
// occurrences of a match with a template.  When the match is a conjunction,
// the local theorems it spans are replaced by the conjuncts of the template.
type SubstituteInPlaceInAntecedent struct {
	substitution
}

// NewSubstituteInPlaceInAntecedent constructs a rewrite of match to template
// justified by a given theorem.
func NewSubstituteInPlaceInAntecedent(theorem model.Conjunct, match absyn.PExp,
	template absyn.PExp) *SubstituteInPlaceInAntecedent {
	return &SubstituteInPlaceInAntecedent{newSubstitution(theorem, match, template)}
}

// Applications iterates every way this transformation applies.
//
//nolint:revive
func (p *SubstituteInPlaceInAntecedent) Applications(m *model.Model) iter.Iterator[Application] {
	var binders []model.Binder
	//
	if n := len(p.matchConjuncts); n == 1 {
		binders = append(binders, model.NewInductiveAntecedentBinder(p.match))
	} else {
		for _, c := range p.matchConjuncts {
			binders = append(binders, model.NewAtLeastOneLocalTheoremBinder(c, uint(n)))
		}
	}
	//
	return bindingsToApplications(m.Bind(binders...), func(r model.BindResult) Application {
		app := &generalApplication{origin: p, theorem: p.theorem, involved: r.Sites}
		//
		if len(p.matchConjuncts) > 1 {
			p.replaceSpanned(m, app, r)
		} else {
			p.replaceInPlace(m, app, r)
		}
		//
		return app
	})
}

// replace the editable theorems matched by the conjuncts of the pattern with
// the conjuncts of the template, positioned after the last of them.
func (p *SubstituteInPlaceInAntecedent) replaceSpanned(m *model.Model, app *generalApplication, r model.BindResult) {
	index := atEnd
	//
	for _, s := range r.Sites {
		if s.Conjunct().Editable() {
			index = max(index, indexOf(m, s.Conjunct()))
			app.remove(s.Conjunct())
		}
	}
	//
	for _, c := range p.templateConjuncts {
		app.addLocalTheorem(absyn.Substitute(c, r.Bindings), index)
		index = next(index)
	}
}

// replace the match within a single theorem, splitting the result if it has
// become a conjunction.
func (p *SubstituteInPlaceInAntecedent) replaceInPlace(m *model.Model, app *generalApplication, r model.BindResult) {
	var (
		site        = r.Sites[0]
		transformed = absyn.Substitute(p.template, r.Bindings)
		root        = absyn.WithSiteAltered(site.Root().Exp(), site.Path(), transformed)
		conjuncts   = absyn.SplitIntoConjuncts(root)
	)
	//
	if conjuncts.Size() == 1 {
		app.alter(site.Conjunct(), root)
		return
	}
	//
	app.remove(site.Conjunct())
	//
	index := indexOf(m, site.Conjunct())
	//
	for it := conjuncts.Iter(); it.HasNext(); {
		app.addLocalTheorem(it.Next(), index)
		index = next(index)
	}
}

// indexOf returns the position of a conjunct within the model, or atEnd if it
// has since been removed.
func indexOf(m *model.Model, c model.Conjunct) int {
	if !m.HasConjunct(c) {
		return atEnd
	}
	//
	return int(m.ConjunctIndex(c))
}

func next(index int) int {
	if index == atEnd {
		return atEnd
	}
	//
	return index + 1
}

// CouldAffectAntecedent determines whether applications may change the local
// theorems.
//
//nolint:revive
func (p *SubstituteInPlaceInAntecedent) CouldAffectAntecedent() bool {
	return true
}

// CouldAffectConsequent determines whether applications may change the
// consequents.
//
//nolint:revive
func (p *SubstituteInPlaceInAntecedent) CouldAffectConsequent() bool {
	return false
}

// Key identifies this transformation.
//
//nolint:revive
func (p *SubstituteInPlaceInAntecedent) Key() string {
	return fmt.Sprintf("%s = %s substitute-antecedent", p.match, p.template)
}

//nolint:revive
func (p *SubstituteInPlaceInAntecedent) String() string {
	return fmt.Sprintf("Rewrite %s as %s", p.match, p.template)
}
