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
	"slices"
	"strings"

	"github.com/consensys/go-resolve/pkg/absyn"
)

// AssertiveCodeBlock is an ordered sequence of statements, built up by the
// proof rules applied to a single declaration, from which verification
// conditions are generated.  A block is owned by the rule populating it.
type AssertiveCodeBlock struct {
	name       string
	statements []Statement
	// Description of each rule applied, and the block afterwards
	steps []BlockStep
}

// BlockStep records the application of a proof rule to a block.
type BlockStep struct {
	Rule  string
	State string
}

// NewAssertiveCodeBlock constructs an empty block with a given name.
func NewAssertiveCodeBlock(name string) *AssertiveCodeBlock {
	return &AssertiveCodeBlock{name: name}
}

// Name returns the name of this block.
func (p *AssertiveCodeBlock) Name() string {
	return p.name
}

// AddStatement appends a statement to this block.
func (p *AssertiveCodeBlock) AddStatement(stmt Statement) {
	p.statements = append(p.statements, stmt)
}

// AddStatements appends zero or more statements to this block.
func (p *AssertiveCodeBlock) AddStatements(stmts ...Statement) {
	p.statements = append(p.statements, stmts...)
}

// Statements returns the statements of this block.  The returned slice must
// not be modified.
func (p *AssertiveCodeBlock) Statements() []Statement {
	return p.statements
}

// Statement returns the ith statement of this block.
func (p *AssertiveCodeBlock) Statement(i uint) Statement {
	return p.statements[i]
}

// Len returns the number of statements in this block.
func (p *AssertiveCodeBlock) Len() uint {
	return uint(len(p.statements))
}

// RecordStep notes that a given rule was applied to this block, along with
// the resulting state of the block.
func (p *AssertiveCodeBlock) RecordStep(rule string) {
	p.steps = append(p.steps, BlockStep{rule, p.String()})
}

// Steps returns the rules applied to this block, in order.
func (p *AssertiveCodeBlock) Steps() []BlockStep {
	return p.steps
}

// Sequents processes the statements of this block backwards, returning the
// resulting sequents in program order.
func (p *AssertiveCodeBlock) Sequents(builder *absyn.Builder) []*Sequent {
	var sequents []*Sequent
	//
	for i := len(p.statements) - 1; i >= 0; i-- {
		sequents = p.statements[i].Backward(builder, sequents)
	}
	//
	slices.Reverse(sequents)
	//
	return sequents
}

func (p *AssertiveCodeBlock) String() string {
	var builder strings.Builder
	//
	for _, stmt := range p.statements {
		builder.WriteString(stmt.String())
		builder.WriteString("\n")
	}
	//
	return builder.String()
}

// ============================================================================
// Sequents
// ============================================================================

// Sequent is a set of antecedents from which one or more consequents must
// follow.
type Sequent struct {
	Antecedents []absyn.PExp
	Consequents Assertions
}

// assume prepends some facts to the antecedents, since statements are
// processed backwards.
func (p *Sequent) assume(assertions Assertions) {
	exps := make([]absyn.PExp, 0, len(assertions)+len(p.Antecedents))
	//
	for _, a := range assertions {
		exps = append(exps, a.Exp)
	}
	//
	p.Antecedents = append(exps, p.Antecedents...)
}

func (p *Sequent) String() string {
	antecedents := make([]string, len(p.Antecedents))
	//
	for i, a := range p.Antecedents {
		antecedents[i] = a.String()
	}
	//
	return fmt.Sprintf("%s ==> %s", strings.Join(antecedents, ", "), p.Consequents)
}

// VerificationCondition is a single consequent which must follow from some
// antecedents, named <block>_<index>.
type VerificationCondition struct {
	Name        string
	Antecedents []absyn.PExp
	Consequent  absyn.PExp
	// Detail describes the origin of the consequent.
	Detail string
}

func (p *VerificationCondition) String() string {
	var builder strings.Builder
	//
	fmt.Fprintf(&builder, "VC %s: %s\n\n", p.Name, p.Detail)
	//
	for i, a := range p.Antecedents {
		fmt.Fprintf(&builder, "%d: %s\n", i+1, a)
	}
	//
	fmt.Fprintf(&builder, "---------------------\n%s\n", p.Consequent)
	//
	return builder.String()
}
