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
package vcgen

import (
	"github.com/consensys/go-resolve/pkg/absyn"
)

// Declaration is a declaration of a module for which verification conditions
// are generated.  Each kind carries only those clauses which its proof rules
// need.
type Declaration interface {
	// DeclName returns the name being declared.
	DeclName() string
}

// MathVar is a mathematical variable, such as a shared state variable or a
// definition variable of a type family.
type MathVar struct {
	Name string
	Type *absyn.MathType
}

// ProgramVar is a variable declared in a block of code, whose type is a
// program type.
type ProgramVar struct {
	Name string
	// Type names the program type of this variable.
	Type string
}

// SpecItem is the specification of an initialization or finalization of a
// type family: which shared variables it may modify, and what holds
// afterwards.
type SpecItem struct {
	Affects []string
	Ensures absyn.PExp
}

// CodeItem is the realization of an initialization or finalization: which
// shared variables it may modify, its local variables and its code.
type CodeItem struct {
	Affects    []string
	Variables  []ProgramVar
	Statements []Statement
}

// ============================================================================
// Concept declarations
// ============================================================================

// TypeFamily is a type declared by a concept, which is modelled by some
// mathematical type and constrained by its exemplar.
type TypeFamily struct {
	Name string
	// Exemplar stands for an arbitrary value of this type in its clauses.
	Exemplar string
	// Model is the mathematical type modelling this type.
	Model          *absyn.MathType
	Constraint     absyn.PExp
	DefinitionVars []MathVar
	Initialization SpecItem
	Finalization   SpecItem
}

// DeclName returns the name of this type family.
//
//nolint:revive
func (p *TypeFamily) DeclName() string {
	return p.Name
}

// SharedState is a block of shared state variables declared by a concept.
type SharedState struct {
	Name       string
	Vars       []MathVar
	Constraint absyn.PExp
}

//nolint:revive
func (p *SharedState) DeclName() string {
	return p.Name
}

// ============================================================================
// Realization declarations
// ============================================================================

// TypeRepresentation realizes a type family of the concept.
type TypeRepresentation struct {
	Name string
	// Representation names the program type used to represent values.
	Representation string
	Convention     absyn.PExp
	Correspondence absyn.PExp
	Initialization CodeItem
	Finalization   CodeItem
}

//nolint:revive
func (p *TypeRepresentation) DeclName() string {
	return p.Name
}

// SharedStateRealization realizes the shared state of the concept.
type SharedStateRealization struct {
	Name           string
	Convention     absyn.PExp
	Correspondence absyn.PExp
}

//nolint:revive
func (p *SharedStateRealization) DeclName() string {
	return p.Name
}

// Facility is an instantiated facility, bringing the shared state and types
// of some concept into scope under a qualifying name.
type Facility struct {
	Name         string
	Concept      string
	SharedStates []*SharedState
	Types        []*TypeFamily
}

//nolint:revive
func (p *Facility) DeclName() string {
	return p.Name
}

// ============================================================================
// Modules
// ============================================================================

// ModuleKind distinguishes concepts from their realizations.
type ModuleKind uint8

const (
	// Concept is a module which specifies types, shared state and operations.
	Concept ModuleKind = iota
	// Realization is a module which implements a concept.
	Realization
)

// Module is a concept or realization, along with its module level clauses and
// declarations.
type Module struct {
	Name string
	Kind ModuleKind
	// Implements names the concept being realized (realizations only).
	Implements   string
	Requires     []absyn.PExp
	Constraints  []absyn.PExp
	Declarations []Declaration
}

// TypeFamilies returns the type families declared in this module.
func (p *Module) TypeFamilies() []*TypeFamily {
	return declarationsOf[*TypeFamily](p)
}

// SharedStates returns the shared state declared in this module.
func (p *Module) SharedStates() []*SharedState {
	return declarationsOf[*SharedState](p)
}

// TypeRepresentations returns the type representations declared in this
// module.
func (p *Module) TypeRepresentations() []*TypeRepresentation {
	return declarationsOf[*TypeRepresentation](p)
}

// SharedStateRealizations returns the shared state realizations declared in
// this module.
func (p *Module) SharedStateRealizations() []*SharedStateRealization {
	return declarationsOf[*SharedStateRealization](p)
}

// Facilities returns the facilities declared in this module.
func (p *Module) Facilities() []*Facility {
	return declarationsOf[*Facility](p)
}

func declarationsOf[T Declaration](m *Module) []T {
	var decls []T
	//
	for _, d := range m.Declarations {
		if t, ok := d.(T); ok {
			decls = append(decls, t)
		}
	}
	//
	return decls
}
