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
	"sync/atomic"

	"github.com/consensys/go-resolve/pkg/absyn"
)

// Conjunct is a single statement known, or wanting to be proved, within a
// proof model.  A conjunct is identified by its handle rather than by its
// expression: the expression held by an editable conjunct is swapped as the
// proof proceeds, whilst sites referring to the conjunct remain meaningful.
type Conjunct interface {
	// Expression returns the current expression of this conjunct.
	Expression() absyn.PExp
	// Editable determines whether the expression of this conjunct can be
	// changed.  Library theorems cannot.
	Editable() bool
	// IsLibraryTheorem determines whether this conjunct belongs to the
	// (shared) theorem library.
	IsLibraryTheorem() bool
	// ID returns a number unique to this conjunct.
	ID() uint64
	// String returns a human-readable representation of this conjunct.
	String() string
	// swap the expression cell.  Only the model does this.
	setExpression(absyn.PExp)
}

var conjunctIds atomic.Uint64

// cell holds the mutable expression slot of a conjunct.
type cell struct {
	id  uint64
	exp absyn.PExp
}

func newCell(exp absyn.PExp) cell {
	if exp == nil {
		panic("conjunct expression cannot be nil")
	}
	//
	return cell{conjunctIds.Add(1), exp}
}

// Expression returns the current expression of this conjunct.
//
//nolint:revive
func (p *cell) Expression() absyn.PExp {
	return p.exp
}

// ID returns a number unique to this conjunct.
//
//nolint:revive
func (p *cell) ID() uint64 {
	return p.id
}

func (p *cell) setExpression(exp absyn.PExp) {
	if exp == nil {
		panic("conjunct expression cannot be nil")
	}
	//
	p.exp = exp
}

// ============================================================================
// Theorem
// ============================================================================

// Theorem is an entry of the theorem library.  Theorems are shared between
// proof models and, hence, are never modified.
type Theorem struct {
	cell
	name string
}

// NewTheorem constructs a library theorem with a given name and assertion.
func NewTheorem(name string, assertion absyn.PExp) *Theorem {
	return &Theorem{newCell(assertion), name}
}

// Name returns the name of this theorem.
func (p *Theorem) Name() string {
	return p.name
}

// Editable determines whether the expression of this conjunct can be changed.
//
//nolint:revive
func (p *Theorem) Editable() bool {
	return false
}

// IsLibraryTheorem determines whether this conjunct belongs to the library.
//
//nolint:revive
func (p *Theorem) IsLibraryTheorem() bool {
	return true
}

//nolint:revive
func (p *Theorem) setExpression(absyn.PExp) {
	panic(fmt.Sprintf("library theorem %s cannot be modified", p.name))
}

//nolint:revive
func (p *Theorem) String() string {
	return p.exp.String()
}

// ============================================================================
// Local Theorem
// ============================================================================

// Justification records why a local theorem is known.
type Justification string

const (
	// Given identifies an antecedent of the original verification condition.
	Given Justification = "Given"
)

// AppliedBy is the justification for a local theorem derived by a
// transformation.
func AppliedBy(transformation fmt.Stringer) Justification {
	return Justification(fmt.Sprintf("Applied %s", transformation))
}

// LocalTheorem is a fact established within a single proof, either given as an
// antecedent or derived along the way.
type LocalTheorem struct {
	cell
	justification Justification
	// records that this was originally a conjunct of the goal.
	tryingToProveThis bool
}

// NewLocalTheorem constructs a local theorem, without adding it to any model.
func NewLocalTheorem(assertion absyn.PExp, justification Justification, tryingToProveThis bool) *LocalTheorem {
	return &LocalTheorem{newCell(assertion), justification, tryingToProveThis}
}

// Justification returns the reason this theorem is known.
func (p *LocalTheorem) Justification() Justification {
	return p.justification
}

// TryingToProveThis determines whether this theorem restates part of the
// original goal.
func (p *LocalTheorem) TryingToProveThis() bool {
	return p.tryingToProveThis
}

// Editable determines whether the expression of this conjunct can be changed.
//
//nolint:revive
func (p *LocalTheorem) Editable() bool {
	return true
}

// IsLibraryTheorem determines whether this conjunct belongs to the library.
//
//nolint:revive
func (p *LocalTheorem) IsLibraryTheorem() bool {
	return false
}

//nolint:revive
func (p *LocalTheorem) String() string {
	return p.exp.String()
}

// ============================================================================
// Consequent
// ============================================================================

// Consequent is a conjunct of the goal remaining to be established.
type Consequent struct {
	cell
}

// NewConsequent constructs a consequent, without adding it to any model.
func NewConsequent(exp absyn.PExp) *Consequent {
	return &Consequent{newCell(exp)}
}

// Editable determines whether the expression of this conjunct can be changed.
//
//nolint:revive
func (p *Consequent) Editable() bool {
	return true
}

// IsLibraryTheorem determines whether this conjunct belongs to the library.
//
//nolint:revive
func (p *Consequent) IsLibraryTheorem() bool {
	return false
}

//nolint:revive
func (p *Consequent) String() string {
	return p.exp.String()
}
