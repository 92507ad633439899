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
	"fmt"

	"github.com/consensys/go-resolve/pkg/absyn"
)

// Step records a single change to a proof model, along with enough information
// to undo it.  Steps are built up by applying edits through them, after which
// they are added to the model's proof.
type Step struct {
	// transformation responsible for this step
	origin fmt.Stringer
	// description of the specific application
	description string
	// sites involved in the application
	involved []*Site
	// conjuncts used by this step
	prerequisites []Conjunct
	// conjuncts established by this step
	affected []Conjunct
	// undo operations, in order of application
	undo []func(*Model)
}

// NewStep constructs an empty step for a given transformation.
func NewStep(origin fmt.Stringer, description string, involved []*Site) *Step {
	return &Step{origin: origin, description: description, involved: involved}
}

// Origin returns the transformation responsible for this step.
func (p *Step) Origin() fmt.Stringer {
	return p.origin
}

// Description returns a description of this step.
func (p *Step) Description() string {
	return p.description
}

// InvolvedSites returns the sites from which this step was derived.
func (p *Step) InvolvedSites() []*Site {
	return p.involved
}

// PrerequisiteConjuncts returns the conjuncts upon which this step depends.
func (p *Step) PrerequisiteConjuncts() []Conjunct {
	return p.prerequisites
}

// AffectedConjuncts returns the conjuncts which this step established or
// modified.
func (p *Step) AffectedConjuncts() []Conjunct {
	return p.affected
}

// Requires records a conjunct upon which this step depends.
func (p *Step) Requires(c Conjunct) {
	p.prerequisites = appendConjunct(p.prerequisites, c)
}

// Affects records a conjunct established, or modified, by this step.
func (p *Step) Affects(c Conjunct) {
	p.affected = appendConjunct(p.affected, c)
}

// AddLocalTheorem adds a new local theorem to the model at a given index.
func (p *Step) AddLocalTheorem(m *Model, exp absyn.PExp, index uint) *LocalTheorem {
	t := NewLocalTheorem(exp, AppliedBy(p.origin), false)
	m.InsertLocalTheorem(t, index)
	p.Affects(t)
	p.undo = append(p.undo, func(m *Model) { m.RemoveLocalTheorem(t) })
	//
	return t
}

// AddConsequent adds a new consequent at the end of the model's consequents.
func (p *Step) AddConsequent(m *Model, exp absyn.PExp) *Consequent {
	c := m.AddConsequent(exp)
	p.Affects(c)
	p.undo = append(p.undo, func(m *Model) { m.RemoveConsequent(c) })
	//
	return c
}

// RemoveConjunct removes an editable conjunct from the model.
func (p *Step) RemoveConjunct(m *Model, c Conjunct) {
	index := m.RemoveConjunct(c)
	p.Requires(c)
	p.undo = append(p.undo, func(m *Model) { m.InsertConjunct(c, index) })
}

// AlterConjunct replaces the expression of an editable conjunct.
func (p *Step) AlterConjunct(m *Model, c Conjunct, exp absyn.PExp) {
	original := m.AlterConjunct(c, exp)
	p.Requires(c)
	p.Affects(c)
	p.undo = append(p.undo, func(m *Model) { m.AlterConjunct(c, original) })
}

// Undo reverses the edits of this step, most recent first.
func (p *Step) Undo(m *Model) {
	for i := len(p.undo); i > 0; i-- {
		p.undo[i-1](m)
	}
}

//nolint:revive
func (p *Step) String() string {
	return fmt.Sprintf("%s (%s)", p.origin, p.description)
}

func appendConjunct(conjuncts []Conjunct, c Conjunct) []Conjunct {
	for _, d := range conjuncts {
		if d == c {
			return conjuncts
		}
	}
	//
	return append(conjuncts, c)
}
