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
	"github.com/consensys/go-resolve/pkg/util"
	log "github.com/sirupsen/logrus"
)

// Generator applies the proof rules for the declarations of a realization,
// one block per rule, and names the verification conditions which result.
type Generator struct {
	ctx    *VerificationContext
	blocks []*AssertiveCodeBlock
	logger *log.Entry
}

// NewGenerator constructs a generator for a given verification context.
func NewGenerator(ctx *VerificationContext, logger *log.Entry) *Generator {
	return &Generator{ctx: ctx, logger: logger}
}

// NewGeneratorFor constructs a generator for a realization of a given concept,
// from which the context is populated.
func NewGeneratorFor(builder *absyn.Builder, concept *Module, realization *Module, flags Flags,
	logger *log.Entry) *Generator {
	ctx := NewVerificationContext(realization.Name, builder, flags)
	ctx.StoreConcept(concept)
	ctx.StoreRealization(realization)
	//
	return NewGenerator(ctx, logger)
}

// Context returns the verification context of this generator.
func (p *Generator) Context() *VerificationContext {
	return p.ctx
}

// Blocks returns the blocks populated so far.
func (p *Generator) Blocks() []*AssertiveCodeBlock {
	return p.blocks
}

// Apply a proof rule, keeping its block.
func (p *Generator) Apply(rule ProofRule) {
	stats := util.NewPerfStats()
	//
	rule.Apply()
	p.blocks = append(p.blocks, rule.Block())
	//
	p.logger.Debugf("applied %s to %s (%d statements)", rule.Description(), rule.Block().Name(), rule.Block().Len())
	stats.Log(fmt.Sprintf("Applying %s", rule.Description()))
}

// GenerateAll applies the proof rules for every shared state realization and
// type representation in the context.
func (p *Generator) GenerateAll() {
	for _, dec := range p.ctx.SharedStateRealizations() {
		block := NewAssertiveCodeBlock(dec.Name)
		p.Apply(NewSharedStateCorrRule(dec, p.sharedStateOf(dec), block, p.ctx))
	}
	//
	for _, dec := range p.ctx.TypeRepresentations() {
		p.Apply(NewTypeRepresentationCorrRule(dec, NewAssertiveCodeBlock(dec.Name), p.ctx))
		p.Apply(NewTypeRepresentationInitRule(dec, NewAssertiveCodeBlock(dec.Name+"_Init"), p.ctx))
		p.Apply(NewTypeRepresentationFinalRule(dec, NewAssertiveCodeBlock(dec.Name+"_Final"), p.ctx))
	}
}

// VCs returns the verification conditions of all blocks so far, named
// <block>_<vc>.  Blocks are numbered from 0, counting only those blocks which
// produced conditions, and conditions within a block from 1.
func (p *Generator) VCs() []VerificationCondition {
	var (
		vcs        []VerificationCondition
		blockCount = 0
	)
	//
	for _, block := range p.blocks {
		vcCount := 1
		//
		for _, s := range block.Sequents(p.ctx.Builder()) {
			for _, c := range s.Consequents {
				if p.ctx.Flags().Simplify && isTrivial(s, c.Exp) {
					continue
				}
				//
				name := fmt.Sprintf("%d_%d", blockCount, vcCount)
				vcs = append(vcs, VerificationCondition{name, s.Antecedents, c.Exp, c.Detail})
				vcCount++
			}
		}
		//
		if vcCount > 1 {
			blockCount++
		}
	}
	//
	return vcs
}

// sharedStateOf determines the shared state realized by a shared state
// realization.  This is the concept's shared state of the same name or,
// failing that, its only shared state.
func (p *Generator) sharedStateOf(dec *SharedStateRealization) *SharedState {
	shared := p.ctx.SharedStates()
	//
	for _, s := range shared {
		if s.Name == dec.Name {
			return s
		}
	}
	//
	if len(shared) != 1 {
		panic(fmt.Sprintf("no shared state for realization %s in %s", dec.Name, p.ctx.Name()))
	}
	//
	return shared[0]
}

// isTrivial determines whether a consequent obviously follows from its
// antecedents.
func isTrivial(s *Sequent, consequent absyn.PExp) bool {
	if absyn.IsObviouslyTrue(consequent) {
		return true
	}
	//
	for _, a := range s.Antecedents {
		if a.Equals(consequent) {
			return true
		}
	}
	//
	return false
}
