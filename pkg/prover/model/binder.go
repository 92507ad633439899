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
package model

import (
	"errors"

	"github.com/consensys/go-resolve/pkg/absyn"
	"github.com/consensys/go-resolve/pkg/util/collection/iter"
)

// Binder is one slot of a simultaneous binding.  It proposes the sites it is
// prepared to bind to, given the sites bound by earlier slots, and binds its
// pattern to them.
type Binder interface {
	// Pattern returns the pattern this binder matches.
	Pattern() absyn.PExp
	// Sites returns the sites to consider, in order, given the sites bound by
	// previous binders.
	Sites(m *Model, bound []*Site) iter.Iterator[*Site]
}

// BindResult is one successful simultaneous binding.  Sites holds the site
// bound by each binder, in binder order.
type BindResult struct {
	Sites    []*Site
	Bindings *absyn.Substitution
}

// Bind iterates, lazily, every way of simultaneously binding a sequence of
// binders to sites of this model, such that the free variables of all patterns
// are bound consistently.  Library theorems containing quantified variables are
// never bound.
func (p *Model) Bind(binders ...Binder) iter.Iterator[BindResult] {
	return p.bind(binders, absyn.NewSubstitution(), nil)
}

func (p *Model) bind(binders []Binder, assumed *absyn.Substitution, bound []*Site) iter.Iterator[BindResult] {
	if len(binders) == 0 {
		return iter.NewUnitIterator(BindResult{nil, assumed})
	}
	//
	first, rest := binders[0], binders[1:]
	//
	return iter.NewFlattenIterator(first.Sites(p, bound), func(site *Site) iter.Iterator[BindResult] {
		bindings := assumed.Clone()
		//
		if site.conjunct.IsLibraryTheorem() && absyn.HasQuantifiedVariables(site.exp) {
			return iter.NewEmptyIterator[BindResult]()
		} else if err := ConsiderSite(first.Pattern(), site, bindings); err != nil {
			return iter.NewEmptyIterator[BindResult]()
		}
		//
		inner := p.bind(rest, bindings, append(bound[:len(bound):len(bound)], site))
		//
		return iter.NewProjectIterator(inner, func(r BindResult) BindResult {
			sites := make([]*Site, 0, len(r.Sites)+1)
			sites = append(sites, site)
			//
			return BindResult{append(sites, r.Sites...), r.Bindings}
		})
	})
}

// ConsiderSite attempts to bind a pattern to the expression at a given site,
// extending some existing bindings.  As a quick check, a site is only
// considered when the pattern is a quantified variable, or the site mentions
// the pattern's top-level operation.
func ConsiderSite(pattern absyn.PExp, site *Site, bindings *absyn.Substitution) error {
	pattern = absyn.Substitute(pattern, bindings)
	//
	if app, ok := pattern.(*absyn.Apply); ok && app.IsQuantifiedVariable() {
		return absyn.BindInto(pattern, site.exp, bindings)
	} else if absyn.SymbolNames(site.exp).Contains(absyn.TopLevelOperation(pattern)) {
		return absyn.BindInto(pattern, site.exp, bindings)
	}
	//
	return absyn.ErrBindingFailed
}

// IsBindingFailure determines whether an error arose because a pattern did not
// match.
func IsBindingFailure(err error) bool {
	return errors.Is(err, absyn.ErrBindingFailed)
}

// ============================================================================
// Binders
// ============================================================================

type patternBinder struct {
	pattern absyn.PExp
}

//nolint:revive
func (p patternBinder) Pattern() absyn.PExp {
	return p.pattern
}

// TopLevelAntecedentBinder binds to whole local theorems.
type TopLevelAntecedentBinder struct{ patternBinder }

// NewTopLevelAntecedentBinder constructs a binder for whole local theorems.
func NewTopLevelAntecedentBinder(pattern absyn.PExp) *TopLevelAntecedentBinder {
	return &TopLevelAntecedentBinder{patternBinder{pattern}}
}

// Sites returns the sites to consider.
//
//nolint:revive
func (p *TopLevelAntecedentBinder) Sites(m *Model, _ []*Site) iter.Iterator[*Site] {
	return m.LocalTheoremSites()
}

// TopLevelConsequentBinder binds to whole consequents.
type TopLevelConsequentBinder struct{ patternBinder }

// NewTopLevelConsequentBinder constructs a binder for whole consequents.
func NewTopLevelConsequentBinder(pattern absyn.PExp) *TopLevelConsequentBinder {
	return &TopLevelConsequentBinder{patternBinder{pattern}}
}

// Sites returns the sites to consider.
//
//nolint:revive
func (p *TopLevelConsequentBinder) Sites(m *Model, _ []*Site) iter.Iterator[*Site] {
	return m.ConsequentSites()
}

// InductiveAntecedentBinder binds to any sub-expression of a local theorem.
type InductiveAntecedentBinder struct{ patternBinder }

// NewInductiveAntecedentBinder constructs a binder for sub-expressions of local
// theorems.
func NewInductiveAntecedentBinder(pattern absyn.PExp) *InductiveAntecedentBinder {
	return &InductiveAntecedentBinder{patternBinder{pattern}}
}

// Sites returns the sites to consider.
//
//nolint:revive
func (p *InductiveAntecedentBinder) Sites(m *Model, _ []*Site) iter.Iterator[*Site] {
	return Inductively(m.LocalTheoremSites())
}

// InductiveConsequentBinder binds to any sub-expression of a consequent.
type InductiveConsequentBinder struct{ patternBinder }

// NewInductiveConsequentBinder constructs a binder for sub-expressions of
// consequents.
func NewInductiveConsequentBinder(pattern absyn.PExp) *InductiveConsequentBinder {
	return &InductiveConsequentBinder{patternBinder{pattern}}
}

// Sites returns the sites to consider.
//
//nolint:revive
func (p *InductiveConsequentBinder) Sites(m *Model, _ []*Site) iter.Iterator[*Site] {
	return Inductively(m.ConsequentSites())
}

// SkipOneTopLevelAntecedentBinder binds to any sub-expression of a local
// theorem, other than a given conjunct (typically, the theorem from which the
// pattern itself came).
type SkipOneTopLevelAntecedentBinder struct {
	patternBinder
	skip Conjunct
}

// NewSkipOneTopLevelAntecedentBinder constructs a binder for sub-expressions of
// local theorems other than skip.
func NewSkipOneTopLevelAntecedentBinder(pattern absyn.PExp, skip Conjunct) *SkipOneTopLevelAntecedentBinder {
	return &SkipOneTopLevelAntecedentBinder{patternBinder{pattern}, skip}
}

// Sites returns the sites to consider.
//
//nolint:revive
func (p *SkipOneTopLevelAntecedentBinder) Sites(m *Model, _ []*Site) iter.Iterator[*Site] {
	sites := iter.NewFilterIterator(m.LocalTheoremSites(), func(s *Site) bool {
		return s.conjunct != p.skip
	})
	//
	return Inductively(sites)
}

// AtLeastOneLocalTheoremBinder is one of several binders which together bind
// whole conjuncts from either the local theorems or the library.  Should every
// earlier slot have bound a library theorem, the final slot considers only
// local theorems.  Thus, every binding makes use of at least one fact from
// within the proof.
type AtLeastOneLocalTheoremBinder struct {
	patternBinder
	// total number of binders in the group
	total uint
}

// NewAtLeastOneLocalTheoremBinder constructs one binder of a group of a given
// size.
func NewAtLeastOneLocalTheoremBinder(pattern absyn.PExp, total uint) *AtLeastOneLocalTheoremBinder {
	return &AtLeastOneLocalTheoremBinder{patternBinder{pattern}, total}
}

// Sites returns the sites to consider.
//
//nolint:revive
func (p *AtLeastOneLocalTheoremBinder) Sites(m *Model, bound []*Site) iter.Iterator[*Site] {
	if uint(len(bound)) == p.total-1 && allLibraryTheorems(bound) {
		return m.LocalTheoremSites()
	}
	//
	return m.LocalTheoremAndLibrarySites()
}

func allLibraryTheorems(sites []*Site) bool {
	for _, s := range sites {
		if !s.conjunct.IsLibraryTheorem() {
			return false
		}
	}
	//
	return true
}

// ConjunctBinder binds the whole expression of a given conjunct, which may be
// altered before binding, to whole local theorems or library theorems.
type ConjunctBinder struct {
	patternBinder
	conjunct Conjunct
}

// NewConjunctBinder constructs a binder matching (a variant of) a given
// conjunct's expression.
func NewConjunctBinder(pattern absyn.PExp, conjunct Conjunct) *ConjunctBinder {
	return &ConjunctBinder{patternBinder{pattern}, conjunct}
}

// Conjunct returns the conjunct from which this binder's pattern came.
func (p *ConjunctBinder) Conjunct() Conjunct {
	return p.conjunct
}

// Sites returns the sites to consider.
//
//nolint:revive
func (p *ConjunctBinder) Sites(m *Model, _ []*Site) iter.Iterator[*Site] {
	return m.LocalTheoremAndLibrarySites()
}
