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
)

// atEnd marks an addition which goes after all existing conjuncts.
const atEnd = -1

// update replaces (or, when exp is nil, removes) an existing conjunct.
type update struct {
	conjunct model.Conjunct
	exp      absyn.PExp
}

// addition introduces a new conjunct.  Local theorems are inserted at a given
// index, whilst consequents are always appended.
type addition struct {
	exp        absyn.PExp
	index      int
	consequent bool
}

// generalApplication adds some conjuncts, then updates or removes others.  All
// of the theorem-driven transformations reduce to one of these.
type generalApplication struct {
	origin    Transformation
	theorem   model.Conjunct
	involved  []*model.Site
	additions []addition
	updates   []update
}

func (p *generalApplication) addLocalTheorem(exp absyn.PExp, index int) {
	p.additions = append(p.additions, addition{exp, index, false})
}

func (p *generalApplication) addConsequent(exp absyn.PExp) {
	p.additions = append(p.additions, addition{exp, atEnd, true})
}

func (p *generalApplication) alter(c model.Conjunct, exp absyn.PExp) {
	p.updates = append(p.updates, update{c, exp})
}

func (p *generalApplication) remove(c model.Conjunct) {
	for _, u := range p.updates {
		if u.conjunct == c && u.exp == nil {
			return
		}
	}
	//
	p.updates = append(p.updates, update{c, nil})
}

// Description describes the result of this application.
//
//nolint:revive
func (p *generalApplication) Description() string {
	if len(p.additions) > 0 {
		return fmt.Sprintf("To %s", p.additions[0].exp)
	}
	//
	for _, u := range p.updates {
		if u.exp != nil {
			return fmt.Sprintf("To %s", u.exp)
		}
	}
	//
	return fmt.Sprintf("Remove %s", p.updates[0].conjunct)
}

// InvolvedSites returns the sites from which this application was derived.
//
//nolint:revive
func (p *generalApplication) InvolvedSites() []*model.Site {
	return p.involved
}

// Apply this application to a model.
//
//nolint:revive
func (p *generalApplication) Apply(m *model.Model) *model.Step {
	step := model.NewStep(p.origin, p.Description(), p.involved)
	//
	for _, s := range p.involved {
		step.Requires(s.Conjunct())
	}
	//
	if p.theorem != nil {
		step.Requires(p.theorem)
	}
	// First, do any adding
	for _, a := range p.additions {
		switch {
		case a.consequent:
			step.AddConsequent(m, a.exp)
		case a.index == atEnd:
			step.AddLocalTheorem(m, a.exp, uint(len(m.LocalTheorems())))
		default:
			step.AddLocalTheorem(m, a.exp, uint(a.index))
		}
	}
	// Now, make any changes and removals
	for _, u := range p.updates {
		if u.exp == nil {
			step.RemoveConjunct(m, u.conjunct)
		} else {
			step.AlterConjunct(m, u.conjunct, u.exp)
		}
	}
	//
	m.AddProofStep(step)
	//
	return step
}
