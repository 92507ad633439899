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

// ProofRule is a single-shot rule which populates an assertive code block for
// some declaration.
type ProofRule interface {
	// Apply this rule to its block.
	Apply()
	// Block returns the block populated by this rule.
	Block() *AssertiveCodeBlock
	// Description returns a human readable description of this rule.
	Description() string
}

// ============================================================================
// Type representation correspondence
// ============================================================================

// TypeRepresentationCorrRule checks that the correspondence of a type
// representation is well defined.  That is, any representation satisfying the
// convention corresponds to a conceptual value satisfying the constraint of
// the type family.
type TypeRepresentationCorrRule struct {
	dec   *TypeRepresentation
	block *AssertiveCodeBlock
	ctx   *VerificationContext
}

// NewTypeRepresentationCorrRule constructs the correspondence rule for a type
// representation.
func NewTypeRepresentationCorrRule(dec *TypeRepresentation, block *AssertiveCodeBlock,
	ctx *VerificationContext) *TypeRepresentationCorrRule {
	return &TypeRepresentationCorrRule{dec, block, ctx}
}

// Apply generates:
//
//	Assume <context> and <shared convention> and <convention>;
//	Assume <correspondence>;
//	Confirm <type constraint>;
//
//nolint:revive
func (p *TypeRepresentationCorrRule) Apply() {
	var (
		name   = p.dec.Name
		family = p.ctx.TypeFamilyOf(p.dec)
		subs   = absyn.NewSubstitution()
	)
	// Assume CPC and RPC and DC and RDC and SS_RC and RC
	assume := p.ctx.TopLevelAssume(true, false)
	assume = conjoin(assume, p.dec.Convention, fmt.Sprintf("Type: %s's Convention", name))
	p.block.AddStatement(&Assume{assume, false})
	// Assume Cor_Exp
	corr := conjoin(nil, p.dec.Correspondence, fmt.Sprintf("Type: %s's Correspondence", name))
	p.block.AddStatement(&Assume{corr, false})
	// Confirm TC, which is about the conceptual exemplar
	conceptual(p.ctx.Builder(), subs, MathVar{family.Exemplar, family.Model})
	//
	confirm := conjoin(nil, family.Constraint, fmt.Sprintf("Well Defined Correspondence for %s", name))
	p.block.AddStatement(NewConfirm(confirm.Substitute(subs)))
	//
	p.block.RecordStep(p.Description())
}

//nolint:revive
func (p *TypeRepresentationCorrRule) Block() *AssertiveCodeBlock {
	return p.block
}

//nolint:revive
func (p *TypeRepresentationCorrRule) Description() string {
	return "Well Defined Correspondence Rule (Concept Type Realization)"
}

// ============================================================================
// Type representation initialization
// ============================================================================

// TypeRepresentationInitRule checks that the initialization of a type
// representation establishes its convention, and the initialization ensures
// clause of its type family.
type TypeRepresentationInitRule struct {
	dec   *TypeRepresentation
	block *AssertiveCodeBlock
	ctx   *VerificationContext
}

// NewTypeRepresentationInitRule constructs the initialization rule for a type
// representation.
func NewTypeRepresentationInitRule(dec *TypeRepresentation, block *AssertiveCodeBlock,
	ctx *VerificationContext) *TypeRepresentationInitRule {
	return &TypeRepresentationInitRule{dec, block, ctx}
}

//nolint:revive
func (p *TypeRepresentationInitRule) Apply() {
	var (
		name   = p.dec.Name
		item   = p.dec.Initialization
		family = p.ctx.TypeFamilyOf(p.dec)
	)
	// Assume CPC and RPC and DC and RDC and SS_RC and SS_Cor_Exp and Cor_Exp
	assume := p.ctx.TopLevelAssume(true, true)
	assume = conjoin(assume, p.dec.Correspondence, fmt.Sprintf("Type %s's Correspondence", name))
	p.block.AddStatement(&Assume{assume, false})
	// The exemplar is the variable being initialized
	p.block.AddStatement(&InitializeVar{ProgramVar{family.Exemplar, p.dec.Representation},
		p.ctx.TypeFamily(p.dec.Representation)})
	addCode(p.ctx, p.block, item)
	// Confirm SS_RC and RC
	confirm := p.ctx.SharedStateConvention()
	confirm = conjoin(confirm, p.dec.Convention, fmt.Sprintf("Type: %s's Convention is Satisfied.", name))
	p.block.AddStatement(NewConfirm(confirm))
	// Assume SS_Cor_Exp and Cor_Exp
	corr := p.ctx.SharedStateCorrespondence()
	corr = conjoin(corr, p.dec.Correspondence, fmt.Sprintf("Type: %s's Correspondence.", name))
	p.block.AddStatement(&Assume{corr, false})
	// Confirm the initialization ensures clause, and that non-affected
	// variables are restored.
	p.block.AddStatement(NewConfirm(p.finalConfirm(family)))
	//
	p.block.RecordStep(p.Description())
}

func (p *TypeRepresentationInitRule) finalConfirm(family *TypeFamily) Assertions {
	var (
		subs    = absyn.NewSubstitution()
		detail  = fmt.Sprintf("Initialization Ensures Clause of %s", family.Name)
		ensures = conjoin(nil, family.Initialization.Ensures, detail)
	)
	//
	conceptual(p.ctx.Builder(), subs, MathVar{family.Exemplar, family.Model})
	conceptualAffected(p.ctx, subs, p.dec.Initialization.Affects)
	//
	ensures = ensures.Substitute(subs)
	//
	return nonAffectedRestores(p.ctx, p.dec.Name, ensures, family, p.dec.Initialization.Affects)
}

//nolint:revive
func (p *TypeRepresentationInitRule) Block() *AssertiveCodeBlock {
	return p.block
}

//nolint:revive
func (p *TypeRepresentationInitRule) Description() string {
	return "Initialization Rule (Concept Type Realization)"
}

// ============================================================================
// Type representation finalization
// ============================================================================

// TypeRepresentationFinalRule checks that the finalization of a type
// representation establishes the finalization ensures clause of its type
// family.
type TypeRepresentationFinalRule struct {
	dec   *TypeRepresentation
	block *AssertiveCodeBlock
	ctx   *VerificationContext
}

// NewTypeRepresentationFinalRule constructs the finalization rule for a type
// representation.
func NewTypeRepresentationFinalRule(dec *TypeRepresentation, block *AssertiveCodeBlock,
	ctx *VerificationContext) *TypeRepresentationFinalRule {
	return &TypeRepresentationFinalRule{dec, block, ctx}
}

//nolint:revive
func (p *TypeRepresentationFinalRule) Apply() {
	var (
		name   = p.dec.Name
		family = p.ctx.TypeFamilyOf(p.dec)
	)
	// The convention can be assumed before finalization
	assume := p.ctx.TopLevelAssume(true, true)
	assume = conjoin(assume, p.dec.Convention, fmt.Sprintf("Type %s's Convention", name))
	assume = conjoin(assume, p.dec.Correspondence, fmt.Sprintf("Type %s's Correspondence", name))
	p.block.AddStatement(&Assume{assume, false})
	addCode(p.ctx, p.block, p.dec.Finalization)
	// The exemplar is the variable being finalized
	p.block.AddStatement(&FinalizeVar{ProgramVar{family.Exemplar, p.dec.Representation},
		p.ctx.TypeFamily(p.dec.Representation)})
	// Confirm SS_RC
	p.block.AddStatement(NewConfirm(p.ctx.SharedStateConvention()))
	// Assume SS_Cor_Exp and Cor_Exp
	corr := p.ctx.SharedStateCorrespondence()
	corr = conjoin(corr, p.dec.Correspondence, fmt.Sprintf("Type %s's Correspondence", name))
	p.block.AddStatement(&Assume{corr, false})
	//
	p.block.AddStatement(NewConfirm(p.finalConfirm(family)))
	//
	p.block.RecordStep(p.Description())
}

func (p *TypeRepresentationFinalRule) finalConfirm(family *TypeFamily) Assertions {
	var (
		subs    = absyn.NewSubstitution()
		detail  = fmt.Sprintf("Finalization Ensures Clause of %s", family.Name)
		ensures = conjoin(nil, family.Finalization.Ensures, detail)
		// Both the type family and the realization can affect shared state
		affects = append(append([]string(nil), family.Finalization.Affects...), p.dec.Finalization.Affects...)
	)
	//
	conceptual(p.ctx.Builder(), subs, MathVar{family.Exemplar, family.Model})
	conceptualAffected(p.ctx, subs, family.Finalization.Affects)
	//
	ensures = ensures.Substitute(subs)
	//
	return nonAffectedRestores(p.ctx, p.dec.Name, ensures, family, affects)
}

//nolint:revive
func (p *TypeRepresentationFinalRule) Block() *AssertiveCodeBlock {
	return p.block
}

//nolint:revive
func (p *TypeRepresentationFinalRule) Description() string {
	return "Finalization Rule (Concept Type Realization)"
}

// ============================================================================
// Shared state correspondence
// ============================================================================

// SharedStateCorrRule checks that the correspondence of a shared state
// realization is well defined.  That is, any realization satisfying the
// convention corresponds to conceptual shared state satisfying its
// constraint.
type SharedStateCorrRule struct {
	dec    *SharedStateRealization
	shared *SharedState
	block  *AssertiveCodeBlock
	ctx    *VerificationContext
}

// NewSharedStateCorrRule constructs the correspondence rule for a shared state
// realization, given the shared state it realizes.
func NewSharedStateCorrRule(dec *SharedStateRealization, shared *SharedState, block *AssertiveCodeBlock,
	ctx *VerificationContext) *SharedStateCorrRule {
	return &SharedStateCorrRule{dec, shared, block, ctx}
}

//nolint:revive
func (p *SharedStateCorrRule) Apply() {
	var (
		builder = p.ctx.Builder()
		subs    = absyn.NewSubstitution()
	)
	// Assume CPC and RPC and DC and RDC and SS_RC
	p.block.AddStatement(&Assume{p.ctx.TopLevelAssume(true, false), false})
	// Assume SS_Cor_Exp
	p.block.AddStatement(&Assume{conjoin(nil, p.dec.Correspondence, "Shared Variable Correspondence"), false})
	// Confirm the shared variables' constraint, about their conceptual values
	for _, v := range p.shared.Vars {
		subs.Insert(builder.Symbol(v.Name, v.Type), builder.Qualified(conc, v.Name, v.Type))
	}
	//
	confirm := conjoin(nil, p.shared.Constraint, "Well Defined Correspondence for Shared Variables")
	p.block.AddStatement(NewConfirm(confirm.Substitute(subs)))
	//
	p.block.RecordStep(p.Description())
}

//nolint:revive
func (p *SharedStateCorrRule) Block() *AssertiveCodeBlock {
	return p.block
}

//nolint:revive
func (p *SharedStateCorrRule) Description() string {
	return "Well Defined Correspondence Rule (Shared State)"
}

// ============================================================================
// Helpers
// ============================================================================

// addCode adds the code of an initialization or finalization block, bracketed
// by the initialization and finalization of its local variables.
func addCode(ctx *VerificationContext, block *AssertiveCodeBlock, item CodeItem) {
	for _, v := range item.Variables {
		block.AddStatement(&InitializeVar{v, ctx.TypeFamily(v.Type)})
	}
	//
	block.AddStatements(item.Statements...)
	//
	for _, v := range item.Variables {
		block.AddStatement(&FinalizeVar{v, ctx.TypeFamily(v.Type)})
	}
}
