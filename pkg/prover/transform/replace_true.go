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

// ReplaceTheoremInConsequentWithTrue replaces any part of a consequent matching
// a known theorem with true.  Without a theorem, this applies every local
// theorem in turn.
type ReplaceTheoremInConsequentWithTrue struct {
	theorem *model.Theorem
}

// NewReplaceTheoremInConsequentWithTrue constructs a replacement for a given
// library theorem.
func NewReplaceTheoremInConsequentWithTrue(theorem *model.Theorem) *ReplaceTheoremInConsequentWithTrue {
	return &ReplaceTheoremInConsequentWithTrue{theorem}
}

// ReplaceLocalTheoremsInConsequentWithTrue replaces parts of the consequent
// matching any local theorem.
var ReplaceLocalTheoremsInConsequentWithTrue = &ReplaceTheoremInConsequentWithTrue{nil}

// Applications iterates every way this transformation applies.
//
//nolint:revive
func (p *ReplaceTheoremInConsequentWithTrue) Applications(m *model.Model) iter.Iterator[Application] {
	if p.theorem != nil {
		return p.applicationsOf(m, p.theorem, p.theorem.Expression())
	}
	//
	return iter.NewFlattenIterator(m.LocalTheoremSites(), func(s *model.Site) iter.Iterator[Application] {
		return p.applicationsOf(m, s.Conjunct(), s.Exp())
	})
}

func (p *ReplaceTheoremInConsequentWithTrue) applicationsOf(m *model.Model, theorem model.Conjunct,
	pattern absyn.PExp) iter.Iterator[Application] {
	binder := model.NewInductiveConsequentBinder(pattern)
	//
	return bindingsToApplications(m.Bind(binder), func(r model.BindResult) Application {
		site := r.Sites[0]
		root := absyn.WithSiteAltered(site.Root().Exp(), site.Path(), m.Builder().True())
		app := &generalApplication{origin: p, theorem: theorem, involved: r.Sites}
		//
		app.alter(site.Conjunct(), root)
		//
		return app
	})
}

// CouldAffectAntecedent determines whether applications may change the local
// theorems.
//
//nolint:revive
func (p *ReplaceTheoremInConsequentWithTrue) CouldAffectAntecedent() bool {
	return false
}

// CouldAffectConsequent determines whether applications may change the
// consequents.
//
//nolint:revive
func (p *ReplaceTheoremInConsequentWithTrue) CouldAffectConsequent() bool {
	return true
}

// FunctionApplicationCountDelta estimates the change in function applications.
//
//nolint:revive
func (p *ReplaceTheoremInConsequentWithTrue) FunctionApplicationCountDelta() int {
	if p.theorem == nil {
		return -1
	}
	//
	return -absyn.FunctionApplicationCount(p.theorem.Expression())
}

// IntroducesQuantifiedVariables determines whether applications may introduce
// quantified variables.
//
//nolint:revive
func (p *ReplaceTheoremInConsequentWithTrue) IntroducesQuantifiedVariables() bool {
	return false
}

// PatternSymbolNames returns the symbols which must be present.
//
//nolint:revive
func (p *ReplaceTheoremInConsequentWithTrue) PatternSymbolNames() *set.SortedSet[string] {
	if p.theorem == nil {
		return set.NewSortedSet[string]()
	}
	//
	return absyn.SymbolNames(p.theorem.Expression())
}

// ReplacementSymbolNames returns the symbols introduced by applications.
//
//nolint:revive
func (p *ReplaceTheoremInConsequentWithTrue) ReplacementSymbolNames() *set.SortedSet[string] {
	return set.NewSortedSet("true")
}

// Equivalence returns the relationship between states.
//
//nolint:revive
func (p *ReplaceTheoremInConsequentWithTrue) Equivalence() Equivalence {
	return Equivalent
}

// Key identifies this transformation.
//
//nolint:revive
func (p *ReplaceTheoremInConsequentWithTrue) Key() string {
	if p.theorem == nil {
		return "local replace-with-true"
	}
	//
	return fmt.Sprintf("%s replace-with-true", p.theorem.Expression())
}

//nolint:revive
func (p *ReplaceTheoremInConsequentWithTrue) String() string {
	if p.theorem == nil {
		return "Replace local theorem with true"
	}
	//
	return fmt.Sprintf("Replace %s with true", p.theorem.Expression())
}
