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
	"slices"
	"strings"

	"github.com/consensys/go-resolve/pkg/absyn"
	"github.com/consensys/go-resolve/pkg/prover/model"
	"github.com/consensys/go-resolve/pkg/util/collection/iter"
	"github.com/consensys/go-resolve/pkg/util/collection/set"
)

// ExistentialInstantiation discharges a consequent containing existential
// variables by finding a known fact which it matches.  The witnesses found are
// then substituted into the remaining consequents, which share the same
// existential scope.
type ExistentialInstantiation struct{}

// InstantiateExistential is the one and only instance of its transformation.
var InstantiateExistential = &ExistentialInstantiation{}

// Applications iterates every way this transformation applies.
//
//nolint:revive
func (p *ExistentialInstantiation) Applications(m *model.Model) iter.Iterator[Application] {
	candidates := iter.NewFilterIterator(iter.NewArrayIterator(slices.Clone(m.Consequents())),
		func(c *model.Consequent) bool {
			return absyn.ContainsExistential(c.Expression())
		})
	//
	return iter.NewFlattenIterator(candidates, func(c *model.Consequent) iter.Iterator[Application] {
		binder := model.NewConjunctBinder(absyn.FlipQuantifiers(c.Expression()), c)
		//
		return bindingsToApplications(m.Bind(binder), func(r model.BindResult) Application {
			return &instantiation{p, c, r.Sites, existentialBindings(r.Bindings)}
		})
	})
}

// existentialBindings converts bindings of the (flipped) pattern back into
// bindings for the existential variables of the original consequent.
func existentialBindings(bindings *absyn.Substitution) *absyn.Substitution {
	result := absyn.NewSubstitution()
	//
	for _, kv := range bindings.KeyValues().Collect() {
		if v, ok := kv.Left.(*absyn.Apply); ok && v.Quantification() == absyn.ForAll {
			result.Insert(v.WithQuantification(absyn.Exists), kv.Right)
		} else {
			result.Insert(kv.Left, kv.Right)
		}
	}
	//
	return result
}

// CouldAffectAntecedent determines whether applications may change the local
// theorems.
//
//nolint:revive
func (p *ExistentialInstantiation) CouldAffectAntecedent() bool {
	return false
}

// CouldAffectConsequent determines whether applications may change the
// consequents.
//
//nolint:revive
func (p *ExistentialInstantiation) CouldAffectConsequent() bool {
	return true
}

// FunctionApplicationCountDelta estimates the change in function applications.
//
//nolint:revive
func (p *ExistentialInstantiation) FunctionApplicationCountDelta() int {
	return -2
}

// IntroducesQuantifiedVariables determines whether applications may introduce
// quantified variables.
//
//nolint:revive
func (p *ExistentialInstantiation) IntroducesQuantifiedVariables() bool {
	return false
}

// PatternSymbolNames returns the symbols which must be present.
//
//nolint:revive
func (p *ExistentialInstantiation) PatternSymbolNames() *set.SortedSet[string] {
	return set.NewSortedSet[string]()
}

// ReplacementSymbolNames returns the symbols introduced by applications.
//
//nolint:revive
func (p *ExistentialInstantiation) ReplacementSymbolNames() *set.SortedSet[string] {
	return set.NewSortedSet[string]()
}

// Equivalence returns the relationship between states.
//
//nolint:revive
func (p *ExistentialInstantiation) Equivalence() Equivalence {
	return Equivalent
}

// Key identifies this transformation.
//
//nolint:revive
func (p *ExistentialInstantiation) Key() string {
	return "instantiate-existential"
}

//nolint:revive
func (p *ExistentialInstantiation) String() string {
	return "Existential instantiation"
}

// ============================================================================
// Application
// ============================================================================

type instantiation struct {
	origin     *ExistentialInstantiation
	consequent *model.Consequent
	involved   []*model.Site
	bindings   *absyn.Substitution
}

// Description describes the witnesses chosen.
//
//nolint:revive
func (p *instantiation) Description() string {
	var (
		pairs = p.bindings.KeyValues().Collect()
		items = make([]string, len(pairs))
	)
	//
	for i, kv := range pairs {
		items[i] = fmt.Sprintf("%s = %s", kv.Left, kv.Right)
	}
	//
	slices.Sort(items)
	//
	return fmt.Sprintf("Instantiate existential: %s", strings.Join(items, ", "))
}

// InvolvedSites returns the sites from which this application was derived.
//
//nolint:revive
func (p *instantiation) InvolvedSites() []*model.Site {
	return p.involved
}

// Apply this application to a model.
//
//nolint:revive
func (p *instantiation) Apply(m *model.Model) *model.Step {
	step := model.NewStep(p.origin, p.Description(), p.involved)
	//
	for _, s := range p.involved {
		step.Requires(s.Conjunct())
	}
	//
	step.RemoveConjunct(m, p.consequent)
	// Witnesses apply throughout the remaining consequents
	for _, c := range slices.Clone(m.Consequents()) {
		exp := absyn.Substitute(c.Expression(), p.bindings)
		//
		if !exp.Equals(c.Expression()) {
			step.AlterConjunct(m, c, exp)
		}
	}
	//
	m.AddProofStep(step)
	//
	return step
}
