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
	"strings"

	"github.com/consensys/go-resolve/pkg/absyn"
)

// Assertion is a single conjunct of an assumed or confirmed expression,
// together with a description of where it came from.
type Assertion struct {
	Exp    absyn.PExp
	Detail string
}

func (p Assertion) String() string {
	return p.Exp.String()
}

// Assertions is an ordered conjunction of assertions.  The empty conjunction
// is true.
type Assertions []Assertion

// Exp conjoins these assertions into a single expression.
func (p Assertions) Exp(builder *absyn.Builder) absyn.PExp {
	exps := make([]absyn.PExp, len(p))
	//
	for i, a := range p {
		exps[i] = a.Exp
	}
	//
	return builder.Conjoin(exps...)
}

// IsTrue determines whether these assertions are trivially true.
func (p Assertions) IsTrue() bool {
	for _, a := range p {
		if !absyn.IsLiteralTrue(a.Exp) {
			return false
		}
	}
	//
	return true
}

// Substitute applies a substitution to every assertion.
func (p Assertions) Substitute(subs *absyn.Substitution) Assertions {
	nassertions := make(Assertions, len(p))
	//
	for i, a := range p {
		nassertions[i] = Assertion{absyn.Substitute(a.Exp, subs), a.Detail}
	}
	//
	return nassertions
}

func (p Assertions) String() string {
	if len(p) == 0 {
		return "true"
	}
	//
	strs := make([]string, len(p))
	//
	for i, a := range p {
		strs[i] = a.String()
	}
	//
	return strings.Join(strs, " and ")
}

// conjoin adds the conjuncts of a clause to a conjunction, each with the given
// detail.  Literal true conjuncts are dropped.
func conjoin(assertions Assertions, clause absyn.PExp, detail string) Assertions {
	if clause == nil {
		return assertions
	}
	//
	for it := absyn.SplitIntoConjuncts(clause).Iter(); it.HasNext(); {
		if c := it.Next(); !absyn.IsLiteralTrue(c) {
			assertions = append(assertions, Assertion{c, detail})
		}
	}
	//
	return assertions
}

// ============================================================================
// Statements
// ============================================================================

// Statement is a statement of an assertive code block.
type Statement interface {
	fmt.Stringer
	// Backward applies this statement to the sequents which follow it.
	Backward(builder *absyn.Builder, sequents []*Sequent) []*Sequent
}

// Assume is a statement which introduces facts.  A stipulated assumption is
// one which no confirm before it could discharge.
type Assume struct {
	Assertions Assertions
	Stipulate  bool
}

// Backward adds the assumed facts to every pending sequent.
//
//nolint:revive
func (p *Assume) Backward(_ *absyn.Builder, sequents []*Sequent) []*Sequent {
	for _, s := range sequents {
		s.assume(p.Assertions)
	}
	//
	return sequents
}

//nolint:revive
func (p *Assume) String() string {
	if p.Stipulate {
		return fmt.Sprintf("Stipulate %s;", p.Assertions)
	}
	//
	return fmt.Sprintf("Assume %s;", p.Assertions)
}

// Confirm is a statement whose assertions must hold.  A confirm is simplified
// away when it is trivially true.
type Confirm struct {
	Assertions Assertions
	Simplify   bool
}

// NewConfirm constructs a confirm statement, which is marked as simplifiable
// when it is trivially true.
func NewConfirm(assertions Assertions) *Confirm {
	return &Confirm{assertions, assertions.IsTrue()}
}

// Backward opens a new sequent for the confirmed assertions.
//
//nolint:revive
func (p *Confirm) Backward(_ *absyn.Builder, sequents []*Sequent) []*Sequent {
	if p.Simplify {
		return sequents
	}
	//
	return append(sequents, &Sequent{Consequents: p.Assertions})
}

//nolint:revive
func (p *Confirm) String() string {
	return fmt.Sprintf("Confirm %s;", p.Assertions)
}

// InitializeVar initializes a program variable of some type family, after
// which the initialization ensures of that type holds for it.  The type is nil
// for a variable of a generic type, about which nothing is known.
type InitializeVar struct {
	Var  ProgramVar
	Type *TypeFamily
}

//nolint:revive
func (p *InitializeVar) Backward(builder *absyn.Builder, sequents []*Sequent) []*Sequent {
	if p.Type != nil {
		assumeFor(builder, p.Var, p.Type, p.Type.Initialization.Ensures, sequents)
	}
	//
	return sequents
}

//nolint:revive
func (p *InitializeVar) String() string {
	return fmt.Sprintf("_Initialize(%s);", p.Var.Name)
}

// FinalizeVar finalizes a program variable, after which the finalization
// ensures of its type holds for it.
type FinalizeVar struct {
	Var  ProgramVar
	Type *TypeFamily
}

//nolint:revive
func (p *FinalizeVar) Backward(builder *absyn.Builder, sequents []*Sequent) []*Sequent {
	if p.Type != nil {
		assumeFor(builder, p.Var, p.Type, p.Type.Finalization.Ensures, sequents)
	}
	//
	return sequents
}

//nolint:revive
func (p *FinalizeVar) String() string {
	return fmt.Sprintf("_Finalize(%s);", p.Var.Name)
}

// assumeFor assumes an ensures clause of a type family, instantiated for a
// given variable.
func assumeFor(builder *absyn.Builder, v ProgramVar, t *TypeFamily, ensures absyn.PExp, sequents []*Sequent) {
	if ensures == nil {
		return
	}
	//
	var (
		exemplar = builder.Symbol(t.Exemplar, t.Model)
		variable = builder.Symbol(v.Name, t.Model)
		exp      = absyn.SubstituteOne(ensures, exemplar, variable)
		detail   = fmt.Sprintf("Ensures Clause of %s for %s", t.Name, v.Name)
	)
	//
	for _, s := range sequents {
		s.assume(conjoin(nil, exp, detail))
	}
}
