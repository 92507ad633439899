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
	"slices"
	"strings"

	"github.com/consensys/go-resolve/pkg/absyn"
	"github.com/consensys/go-resolve/pkg/util/collection/hash"
	"github.com/consensys/go-resolve/pkg/util/collection/immutable"
	"github.com/consensys/go-resolve/pkg/util/collection/iter"
	"github.com/consensys/go-resolve/pkg/util/collection/stack"
)

// Model holds the evolving state of an attempt to prove a single verification
// condition: the local theorems known so far (the antecedent), the consequents
// remaining to be proved, and the steps taken to get here.  The proof is
// complete once no consequents remain.  A model is owned by exactly one proof
// attempt at a time; only the theorem library is shared.
type Model struct {
	name    string
	builder *absyn.Builder
	library immutable.List[*Theorem]
	// local theorems in the order they were introduced
	locals []*LocalTheorem
	// multiset of local theorem expressions
	localSet *hash.Map[absyn.PExp, uint]
	// consequents remaining to be proved
	consequents []*Consequent
	// running hashes of both sides, used to recognise repeated states
	localsHash      uint64
	consequentsHash uint64
	// the proof so far
	steps *stack.Stack[*Step]
}

// NewModel constructs a model for proving that some antecedents imply some
// consequents, in the context of a given theorem library.  Both sides are split
// into their conjuncts, and consequents which are literally true are dropped.
func NewModel(name string, builder *absyn.Builder, library immutable.List[*Theorem],
	antecedents []absyn.PExp, consequents []absyn.PExp) *Model {
	m := &Model{
		name:     name,
		builder:  builder,
		library:  library,
		localSet: hash.NewMap[absyn.PExp, uint](16),
		steps:    stack.NewStack[*Step](),
	}
	//
	for _, a := range antecedents {
		for it := absyn.SplitIntoConjuncts(a).Iter(); it.HasNext(); {
			m.AddLocalTheorem(it.Next(), Given, false)
		}
	}
	//
	for _, c := range consequents {
		for it := absyn.SplitIntoConjuncts(c).Iter(); it.HasNext(); {
			if ith := it.Next(); !absyn.IsLiteralTrue(ith) {
				m.AddConsequent(ith)
			}
		}
	}
	//
	return m
}

// Name returns the name of the verification condition being proved.
func (p *Model) Name() string {
	return p.name
}

// Builder returns the expression builder used by this model.
func (p *Model) Builder() *absyn.Builder {
	return p.builder
}

// Library returns the theorem library.
func (p *Model) Library() immutable.List[*Theorem] {
	return p.library
}

// IsProved determines whether all consequents have been established.
func (p *Model) IsProved() bool {
	return len(p.consequents) == 0
}

// ============================================================================
// Local Theorems
// ============================================================================

// LocalTheorems returns the local theorems in order.  The returned slice must
// not be modified.
func (p *Model) LocalTheorems() []*LocalTheorem {
	return p.locals
}

// LocalTheorem returns the ith local theorem.
func (p *Model) LocalTheorem(i uint) *LocalTheorem {
	return p.locals[i]
}

// ContainsLocalTheorem determines whether some local theorem has a given
// expression.
func (p *Model) ContainsLocalTheorem(exp absyn.PExp) bool {
	return p.localSet.ContainsKey(exp)
}

// LocalTheoremCount returns the number of local theorems with a given
// expression.
func (p *Model) LocalTheoremCount(exp absyn.PExp) uint {
	count, _ := p.localSet.Get(exp)
	return count
}

// AddLocalTheorem appends a new local theorem.
func (p *Model) AddLocalTheorem(exp absyn.PExp, justification Justification, tryingToProveThis bool) *LocalTheorem {
	t := NewLocalTheorem(exp, justification, tryingToProveThis)
	p.InsertLocalTheorem(t, uint(len(p.locals)))
	//
	return t
}

// InsertLocalTheorem inserts a local theorem at a given index.
func (p *Model) InsertLocalTheorem(t *LocalTheorem, index uint) {
	if index > uint(len(p.locals)) {
		panic(fmt.Sprintf("invalid local theorem index %d", index))
	}
	//
	exp := t.Expression()
	p.locals = slices.Insert(p.locals, int(index), t)
	p.localsHash += exp.Hash()
	//
	count, _ := p.localSet.Get(exp)
	p.localSet.Insert(exp, count+1)
}

// RemoveLocalTheorem removes a local theorem, returning its former index.
func (p *Model) RemoveLocalTheorem(t *LocalTheorem) uint {
	index := p.ConjunctIndex(t)
	exp := t.Expression()
	p.locals = slices.Delete(p.locals, int(index), int(index)+1)
	p.localsHash -= exp.Hash()
	//
	if count, _ := p.localSet.Get(exp); count > 1 {
		p.localSet.Insert(exp, count-1)
	} else {
		p.localSet.Remove(exp)
	}
	//
	return index
}

// ============================================================================
// Consequents
// ============================================================================

// Consequents returns the consequents remaining to be proved.  The returned
// slice must not be modified.
func (p *Model) Consequents() []*Consequent {
	return p.consequents
}

// Consequent returns the ith consequent.
func (p *Model) Consequent(i uint) *Consequent {
	return p.consequents[i]
}

// AddConsequent appends a new consequent.
func (p *Model) AddConsequent(exp absyn.PExp) *Consequent {
	c := NewConsequent(exp)
	p.InsertConsequent(c, uint(len(p.consequents)))
	//
	return c
}

// InsertConsequent inserts a consequent at a given index.
func (p *Model) InsertConsequent(c *Consequent, index uint) {
	if index > uint(len(p.consequents)) {
		panic(fmt.Sprintf("invalid consequent index %d", index))
	}
	//
	p.consequents = slices.Insert(p.consequents, int(index), c)
	p.consequentsHash += c.Expression().Hash()
}

// RemoveConsequent removes a consequent, returning its former index.
func (p *Model) RemoveConsequent(c *Consequent) uint {
	index := p.ConjunctIndex(c)
	p.consequents = slices.Delete(p.consequents, int(index), int(index)+1)
	p.consequentsHash -= c.Expression().Hash()
	//
	return index
}

// ============================================================================
// Conjuncts
// ============================================================================

// ConjunctIndex returns the position of an editable conjunct within its side
// of the model.  It is an error if the conjunct is not part of this model.
func (p *Model) ConjunctIndex(c Conjunct) uint {
	switch c := c.(type) {
	case *LocalTheorem:
		if i := slices.Index(p.locals, c); i >= 0 {
			return uint(i)
		}
	case *Consequent:
		if i := slices.Index(p.consequents, c); i >= 0 {
			return uint(i)
		}
	}
	//
	panic(fmt.Sprintf("conjunct %s is not part of this model", c))
}

// HasConjunct determines whether an editable conjunct is currently part of
// this model.
func (p *Model) HasConjunct(c Conjunct) bool {
	switch c := c.(type) {
	case *LocalTheorem:
		return slices.Contains(p.locals, c)
	case *Consequent:
		return slices.Contains(p.consequents, c)
	default:
		return false
	}
}

// RemoveConjunct removes an editable conjunct, returning its former index.
func (p *Model) RemoveConjunct(c Conjunct) uint {
	switch c := c.(type) {
	case *LocalTheorem:
		return p.RemoveLocalTheorem(c)
	case *Consequent:
		return p.RemoveConsequent(c)
	default:
		panic(fmt.Sprintf("cannot remove conjunct %s", c))
	}
}

// InsertConjunct inserts an editable conjunct at a given index.
func (p *Model) InsertConjunct(c Conjunct, index uint) {
	switch c := c.(type) {
	case *LocalTheorem:
		p.InsertLocalTheorem(c, index)
	case *Consequent:
		p.InsertConsequent(c, index)
	default:
		panic(fmt.Sprintf("cannot insert conjunct %s", c))
	}
}

// AlterConjunct replaces the expression of an editable conjunct, returning the
// original expression.  Any site previously derived for the conjunct becomes
// stale.
func (p *Model) AlterConjunct(c Conjunct, exp absyn.PExp) absyn.PExp {
	original := c.Expression()
	index := p.RemoveConjunct(c)
	c.setExpression(exp)
	p.InsertConjunct(c, index)
	//
	return original
}

// AlterSite replaces the sub-expression at a given site, returning the original
// expression of the site's conjunct.  The site must be current.
func (p *Model) AlterSite(site *Site, exp absyn.PExp) absyn.PExp {
	if site.model != p {
		panic("site does not belong to this model")
	} else if site.IsStale() {
		panic(fmt.Sprintf("site %s is stale", site))
	}
	//
	return p.AlterConjunct(site.conjunct, absyn.WithSiteAltered(site.Root().exp, site.path, exp))
}

// ============================================================================
// Proof Steps
// ============================================================================

// AddProofStep records a step which has just been applied.
func (p *Model) AddProofStep(step *Step) {
	p.steps.Push(step)
}

// ProofSteps returns the steps applied so far, in order.
func (p *Model) ProofSteps() []*Step {
	return p.steps.Items()
}

// ProofLength returns the number of steps applied so far.
func (p *Model) ProofLength() uint {
	return p.steps.Len()
}

// LastProofStep returns the most recently applied step.
func (p *Model) LastProofStep() *Step {
	return p.steps.Peek(0)
}

// UndoLastProofStep reverses the most recently applied step.
func (p *Model) UndoLastProofStep() {
	p.steps.Pop().Undo(p)
}

// ProductiveProofSteps returns those steps which contributed to the current
// state of the consequent.  Working backwards from the current consequents, a
// step is kept if it established something later required, or if it operated
// on a consequent.
func (p *Model) ProductiveProofSteps() []*Step {
	var (
		steps    = p.steps.Items()
		required = make(map[Conjunct]struct{})
		result   []*Step
	)
	//
	for _, c := range p.consequents {
		required[c] = struct{}{}
	}
	//
	for i := len(steps) - 1; i >= 0; i-- {
		step := steps[i]
		//
		if !isProductive(step, required) {
			continue
		}
		//
		for _, c := range step.affected {
			delete(required, c)
		}
		//
		for _, c := range step.prerequisites {
			required[c] = struct{}{}
		}
		//
		result = append(result, step)
	}
	//
	slices.Reverse(result)
	//
	return result
}

func isProductive(step *Step, required map[Conjunct]struct{}) bool {
	for _, c := range step.affected {
		if _, ok := required[c]; ok {
			return true
		}
	}
	//
	for _, c := range step.prerequisites {
		if _, ok := c.(*Consequent); ok {
			return true
		}
	}
	//
	return false
}

// StateHash returns a hash of the current antecedent and consequent.  This is
// independent of the order of conjuncts on either side.
func (p *Model) StateHash() uint64 {
	return p.localsHash + 51*p.consequentsHash
}

// ============================================================================
// Sites
// ============================================================================

// LocalTheoremSites iterates the root sites of the local theorems.
func (p *Model) LocalTheoremSites() iter.Iterator[*Site] {
	return rootSites(p, p.locals)
}

// ConsequentSites iterates the root sites of the consequents.
func (p *Model) ConsequentSites() iter.Iterator[*Site] {
	return rootSites(p, p.consequents)
}

// LibrarySites iterates the root sites of the theorem library.
func (p *Model) LibrarySites() iter.Iterator[*Site] {
	return rootSites(p, p.library.ToArray())
}

// LocalTheoremAndLibrarySites iterates the root sites of the local theorems,
// followed by those of the theorem library.
func (p *Model) LocalTheoremAndLibrarySites() iter.Iterator[*Site] {
	return p.LocalTheoremSites().Append(p.LibrarySites())
}

// rootSites iterates (lazily) the root sites of a snapshot of some conjuncts.
func rootSites[C Conjunct](m *Model, conjuncts []C) iter.Iterator[*Site] {
	snapshot := iter.NewArrayIterator(slices.Clone(conjuncts))
	//
	return iter.NewProjectIterator(snapshot, func(c C) *Site { return NewRootSite(m, c) })
}

//nolint:revive
func (p *Model) String() string {
	var builder strings.Builder
	//
	for i, t := range p.locals {
		if i != 0 {
			builder.WriteString(" and\n")
		}
		//
		builder.WriteString(t.String())
	}
	//
	builder.WriteString("\n  -->\n")
	//
	for i, c := range p.consequents {
		if i != 0 {
			builder.WriteString(" and\n")
		}
		//
		builder.WriteString(c.String())
	}
	//
	return builder.String()
}
