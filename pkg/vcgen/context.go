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
	"fmt"

	"github.com/consensys/go-resolve/pkg/absyn"
)

// Flags determine optional behaviour of the verification condition generator.
type Flags struct {
	// AddConstraints assumes the constraints of shared state (both local and
	// from facilities) at the top level of every block.
	AddConstraints bool
	// Simplify drops verification conditions which are trivially true, or
	// whose consequent is one of their antecedents.
	Simplify bool
}

// VerificationContext accumulates what is known about the module being
// verified: its module level clauses, the declarations of the concept it
// realizes, its own realizations and the facilities it instantiates.
type VerificationContext struct {
	builder *absyn.Builder
	name    string
	flags   Flags
	// Module level clauses
	requires    Assertions
	constraints Assertions
	// Concept declarations
	types        []*TypeFamily
	sharedStates []*SharedState
	// Local realizations
	sharedRealizations []*SharedStateRealization
	typeReps           []*TypeRepresentation
	facilities         []*Facility
}

// NewVerificationContext constructs an empty context for a given module.
func NewVerificationContext(name string, builder *absyn.Builder, flags Flags) *VerificationContext {
	return &VerificationContext{builder: builder, name: name, flags: flags}
}

// Builder returns the builder used for constructing expressions.
func (p *VerificationContext) Builder() *absyn.Builder {
	return p.builder
}

// Name returns the name of the module being verified.
func (p *VerificationContext) Name() string {
	return p.name
}

// Flags returns the flags in force.
func (p *VerificationContext) Flags() Flags {
	return p.flags
}

// ============================================================================
// Storing
// ============================================================================

// StoreConcept stores the clauses and declarations of a concept.
func (p *VerificationContext) StoreConcept(m *Module) {
	p.StoreRequires(m.Name, m.Requires...)
	p.StoreConstraints(m.Name, m.Constraints...)
	//
	for _, t := range m.TypeFamilies() {
		p.StoreTypeFamily(t)
	}
	//
	for _, s := range m.SharedStates() {
		p.StoreSharedState(s)
	}
}

// StoreRealization stores the clauses and declarations of a realization.
func (p *VerificationContext) StoreRealization(m *Module) {
	p.StoreRequires(m.Name, m.Requires...)
	//
	for _, d := range m.Declarations {
		switch d := d.(type) {
		case *SharedStateRealization:
			p.StoreSharedStateRealization(d)
		case *TypeRepresentation:
			p.StoreTypeRepresentation(d)
		case *Facility:
			p.StoreFacility(d)
		}
	}
}

// StoreRequires stores the requires clauses of a module.
func (p *VerificationContext) StoreRequires(module string, clauses ...absyn.PExp) {
	for _, c := range clauses {
		p.requires = conjoin(p.requires, c, fmt.Sprintf("Requires Clause of %s", module))
	}
}

// StoreConstraints stores the constraint clauses of a module.
func (p *VerificationContext) StoreConstraints(module string, clauses ...absyn.PExp) {
	for _, c := range clauses {
		p.constraints = conjoin(p.constraints, c, fmt.Sprintf("Constraint Clause of %s", module))
	}
}

// StoreTypeFamily stores a type family of the concept being realized.
func (p *VerificationContext) StoreTypeFamily(dec *TypeFamily) {
	p.types = append(p.types, dec)
}

// StoreSharedState stores shared state of the concept being realized.
func (p *VerificationContext) StoreSharedState(dec *SharedState) {
	p.sharedStates = append(p.sharedStates, dec)
}

// StoreSharedStateRealization stores a realization of shared state.
func (p *VerificationContext) StoreSharedStateRealization(dec *SharedStateRealization) {
	p.sharedRealizations = append(p.sharedRealizations, dec)
}

// StoreTypeRepresentation stores a representation of a type family.
func (p *VerificationContext) StoreTypeRepresentation(dec *TypeRepresentation) {
	p.typeReps = append(p.typeReps, dec)
}

// StoreFacility stores an instantiated facility.
func (p *VerificationContext) StoreFacility(dec *Facility) {
	p.facilities = append(p.facilities, dec)
}

// ============================================================================
// Querying
// ============================================================================

// TypeFamilies returns the type families of the concept being realized.
func (p *VerificationContext) TypeFamilies() []*TypeFamily {
	return p.types
}

// SharedStates returns the shared state of the concept being realized.
func (p *VerificationContext) SharedStates() []*SharedState {
	return p.sharedStates
}

// SharedStateRealizations returns the local shared state realizations.
func (p *VerificationContext) SharedStateRealizations() []*SharedStateRealization {
	return p.sharedRealizations
}

// TypeRepresentations returns the local type representations.
func (p *VerificationContext) TypeRepresentations() []*TypeRepresentation {
	return p.typeReps
}

// Facilities returns the instantiated facilities, in declaration order.
func (p *VerificationContext) Facilities() []*Facility {
	return p.facilities
}

// Facility returns the facility with a given name, or nil if there is none.
func (p *VerificationContext) Facility(name string) *Facility {
	for _, f := range p.facilities {
		if f.Name == name {
			return f
		}
	}
	//
	return nil
}

// TypeFamily returns the type family with a given name, or nil if there is
// none.
func (p *VerificationContext) TypeFamily(name string) *TypeFamily {
	for _, t := range p.types {
		if t.Name == name {
			return t
		}
	}
	//
	for _, f := range p.facilities {
		for _, t := range f.Types {
			if t.Name == name {
				return t
			}
		}
	}
	//
	return nil
}

// TypeFamilyOf returns the type family realized by a given representation.
// A representation without a type family indicates a malformed module, and is
// fatal.
func (p *VerificationContext) TypeFamilyOf(dec *TypeRepresentation) *TypeFamily {
	for _, t := range p.types {
		if t.Name == dec.Name {
			return t
		}
	}
	//
	panic(fmt.Sprintf("no type family %s for representation in %s", dec.Name, p.name))
}

// ============================================================================
// Assertions
// ============================================================================

// SharedStateConvention conjoins the conventions of the local shared state
// realizations.
func (p *VerificationContext) SharedStateConvention() Assertions {
	var assertions Assertions
	//
	for _, r := range p.sharedRealizations {
		assertions = conjoin(assertions, r.Convention, "Shared Variable Convention")
	}
	//
	return assertions
}

// SharedStateCorrespondence conjoins the correspondences of the local shared
// state realizations.
func (p *VerificationContext) SharedStateCorrespondence() Assertions {
	var assertions Assertions
	//
	for _, r := range p.sharedRealizations {
		assertions = conjoin(assertions, r.Correspondence, "Shared Variable Correspondence")
	}
	//
	return assertions
}

// TopLevelAssume conjoins everything which can be assumed at the start of any
// block: the module level requires and constraint clauses, the constraints of
// shared state (when enabled), and optionally the shared state convention and
// correspondence.
func (p *VerificationContext) TopLevelAssume(addConvention bool, addCorrespondence bool) Assertions {
	assertions := append(Assertions(nil), p.requires...)
	assertions = append(assertions, p.constraints...)
	//
	if p.flags.AddConstraints {
		for _, f := range p.facilities {
			for _, s := range f.SharedStates {
				detail := fmt.Sprintf("Constraint Clause of %s.%s", f.Name, s.Name)
				assertions = conjoin(assertions, p.qualify(f, s.Constraint), detail)
			}
		}
		//
		for _, s := range p.sharedStates {
			assertions = conjoin(assertions, s.Constraint, fmt.Sprintf("Constraint Clause of %s", s.Name))
		}
	}
	//
	if addConvention {
		assertions = append(assertions, p.SharedStateConvention()...)
	}
	//
	if addCorrespondence {
		assertions = append(assertions, p.SharedStateCorrespondence()...)
	}
	//
	return assertions
}

// qualify replaces the shared variables of a facility with their qualified
// forms, such as F.x for x.
func (p *VerificationContext) qualify(f *Facility, e absyn.PExp) absyn.PExp {
	if e == nil {
		return nil
	}
	//
	subs := absyn.NewSubstitution()
	//
	for _, s := range f.SharedStates {
		for _, v := range s.Vars {
			subs.Insert(p.builder.Symbol(v.Name, v.Type), p.builder.Qualified(f.Name, v.Name, v.Type))
		}
	}
	//
	return absyn.Substitute(e, subs)
}
