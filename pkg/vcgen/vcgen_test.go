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
	"testing"

	"github.com/consensys/go-resolve/pkg/absyn"
	"github.com/consensys/go-resolve/pkg/util/source"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const counterConcept = `
(concept Counter_Template
  (type-family T (exemplar T) (model Z) (constraint true)
    (initialization (ensures (= T 0)))))`

const counterRealization = `
(realization Counter_Realiz (implements Counter_Template)
  (type-rep T (rep R) (convention true) (correspondence (= Conc.T R))))`

const sharedConcept = `
(concept Pool_Template
  (requires (> Max 0))
  (shared-state Pool (vars (S Z)) (constraint (<= S Max)))
  (type-family T (exemplar T) (model Z) (constraint (<= T Max))
    (initialization (ensures (= T 0)))
    (finalization (affects S) (ensures (= S (+ (# S) 1))))))`

const sharedRealization = `
(realization Pool_Realiz (implements Pool_Template)
  (shared-rep Pool (convention (>= x 0)) (correspondence (= Conc.S x)))
  (type-rep T (rep R) (convention (>= R 0)) (correspondence (= Conc.T R))
    (initialization (vars (i Integer)) (assume (= R 0)))))`

func Test_Init_01(t *testing.T) {
	g := newGenerator(t, counterConcept, counterRealization, Flags{})
	g.GenerateAll()
	//
	blocks := g.Blocks()
	require.Len(t, blocks, 3)
	// Correspondence, initialization, finalization
	assert.Equal(t, "Well Defined Correspondence Rule (Concept Type Realization)", blocks[0].Steps()[0].Rule)
	assert.Equal(t, "Initialization Rule (Concept Type Realization)", blocks[1].Steps()[0].Rule)
	assert.Equal(t, "Finalization Rule (Concept Type Realization)", blocks[2].Steps()[0].Rule)
	//
	confirm := lastConfirm(t, blocks[1])
	assert.Equal(t, "Conc.T = 0", confirm.Assertions.Exp(g.Context().Builder()).String())
	require.Len(t, confirm.Assertions, 1)
	assert.Equal(t, "Initialization Ensures Clause of T", confirm.Assertions[0].Detail)
}

func Test_Init_02(t *testing.T) {
	g := newGenerator(t, counterConcept, counterRealization, Flags{})
	g.GenerateAll()
	//
	vcs := g.VCs()
	require.Len(t, vcs, 1)
	// Correspondence block has no conditions, so is not counted
	assert.Equal(t, "0_1", vcs[0].Name)
	assert.Equal(t, "Conc.T = 0", vcs[0].Consequent.String())
	assert.Equal(t, []string{"Conc.T = R", "Conc.T = R"}, expStrings(vcs[0].Antecedents))
}

func Test_Init_03(t *testing.T) {
	g := newGenerator(t, sharedConcept, sharedRealization, Flags{})
	block := NewAssertiveCodeBlock("T")
	rule := NewTypeRepresentationInitRule(g.Context().TypeRepresentations()[0], block, g.Context())
	rule.Apply()
	// Shared variable S is not affected, so is restored
	confirm := lastConfirm(t, block)
	require.Len(t, confirm.Assertions, 2)
	assert.Equal(t, "Conc.T = 0", confirm.Assertions[0].String())
	assert.Equal(t, "Conc.S = #Conc.S", confirm.Assertions[1].String())
	assert.Equal(t, "Ensures Clause of T (Condition from Non-Affected Shared Variable)", confirm.Assertions[1].Detail)
	// Local variables are initialized and finalized around the code
	assert.IsType(t, &InitializeVar{}, block.Statement(2))
	assert.IsType(t, &Assume{}, block.Statement(3))
	assert.IsType(t, &FinalizeVar{}, block.Statement(4))
}

func Test_Final_01(t *testing.T) {
	g := newGenerator(t, sharedConcept, sharedRealization, Flags{})
	block := NewAssertiveCodeBlock("T")
	NewTypeRepresentationFinalRule(g.Context().TypeRepresentations()[0], block, g.Context()).Apply()
	// S is affected by finalization, so no restores
	confirm := lastConfirm(t, block)
	require.Len(t, confirm.Assertions, 1)
	assert.Equal(t, "Conc.S = (#Conc.S + 1)", confirm.Assertions[0].String())
	assert.Equal(t, "Finalization Ensures Clause of T", confirm.Assertions[0].Detail)
}

func Test_Corr_01(t *testing.T) {
	g := newGenerator(t, sharedConcept, sharedRealization, Flags{})
	block := NewAssertiveCodeBlock("T")
	NewTypeRepresentationCorrRule(g.Context().TypeRepresentations()[0], block, g.Context()).Apply()
	//
	require.Equal(t, uint(3), block.Len())
	assert.Equal(t, "Assume Max > 0 and x >= 0 and R >= 0;", block.Statement(0).String())
	assert.Equal(t, "Assume Conc.T = R;", block.Statement(1).String())
	assert.Equal(t, "Confirm Conc.T <= Max;", block.Statement(2).String())
}

func Test_SharedCorr_01(t *testing.T) {
	g := newGenerator(t, sharedConcept, sharedRealization, Flags{})
	g.GenerateAll()
	//
	blocks := g.Blocks()
	require.Len(t, blocks, 4)
	assert.Equal(t, "Well Defined Correspondence Rule (Shared State)", blocks[0].Steps()[0].Rule)
	//
	vcs := g.VCs()
	require.NotEmpty(t, vcs)
	assert.Equal(t, "0_1", vcs[0].Name)
	assert.Equal(t, "Conc.S <= Max", vcs[0].Consequent.String())
	assert.Equal(t, "Well Defined Correspondence for Shared Variables", vcs[0].Detail)
	assert.Equal(t, []string{"Max > 0", "x >= 0", "Conc.S = x"}, expStrings(vcs[0].Antecedents))
	// Type correspondence is the second block
	assert.Equal(t, "1_1", vcs[1].Name)
}

func Test_Restores_01(t *testing.T) {
	ctx := newContext(t, sharedConcept, sharedRealization, Flags{})
	ensures := nonAffectedRestores(ctx, "T", nil, nil, []string{"S"})
	//
	assert.Empty(t, ensures)
}

func Test_Restores_02(t *testing.T) {
	var (
		ctx     = newContext(t, sharedConcept, sharedRealization, Flags{})
		b       = ctx.Builder()
		ensures = Assertions{{b.True(), ""}}
	)
	// Literal true is replaced
	ensures = nonAffectedRestores(ctx, "T", ensures, nil, nil)
	require.Len(t, ensures, 1)
	assert.Equal(t, "Conc.S = #Conc.S", ensures[0].String())
}

func Test_Restores_03(t *testing.T) {
	var (
		ctx     = newContext(t, sharedConcept, sharedRealization, Flags{})
		b       = ctx.Builder()
		ensures = Assertions{{b.Equal(b.Symbol("S", absyn.Integer), b.Symbol("0", absyn.Natural)), ""}}
	)
	//
	ctx.StoreFacility(&Facility{Name: "F", SharedStates: []*SharedState{
		{Name: "G", Vars: []MathVar{{"y", absyn.Integer}}},
	}})
	//
	ensures = nonAffectedRestores(ctx, "T", ensures, nil, nil)
	assert.Equal(t, []string{"Conc.S = 0", "Conc.S = #Conc.S", "F.y = #F.y"}, assertionStrings(ensures))
	// Affected facility variables are not restored
	ensures = nonAffectedRestores(ctx, "T", nil, nil, []string{"F.y", "S"})
	assert.Empty(t, ensures)
}

func Test_TopLevel_01(t *testing.T) {
	ctx := newContext(t, sharedConcept, sharedRealization, Flags{AddConstraints: true})
	ctx.StoreFacility(&Facility{Name: "F", SharedStates: []*SharedState{
		{Name: "G", Vars: []MathVar{{"y", absyn.Integer}}, Constraint: parse(t, ctx, "(> y 0)")},
	}})
	//
	assume := ctx.TopLevelAssume(false, true)
	assert.Equal(t, []string{"Max > 0", "F.y > 0", "S <= Max", "Conc.S = x"}, assertionStrings(assume))
	assert.Equal(t, "Requires Clause of Pool_Template", assume[0].Detail)
	assert.Equal(t, "Constraint Clause of F.G", assume[1].Detail)
}

func Test_Sequents_01(t *testing.T) {
	var (
		ctx   = NewVerificationContext("M", absyn.NewBuilder(), Flags{})
		block = NewAssertiveCodeBlock("B")
	)
	//
	block.AddStatements(
		&Assume{assertions(t, ctx, "(< a b)"), false},
		NewConfirm(assertions(t, ctx, "(< a c)")),
		&Assume{assertions(t, ctx, "(and (< c d) (< d e))"), false},
		NewConfirm(assertions(t, ctx, "(and (< a e) true)")),
		NewConfirm(assertions(t, ctx, "true")),
	)
	//
	sequents := block.Sequents(ctx.Builder())
	require.Len(t, sequents, 2)
	assert.Equal(t, "a < b ==> a < c", sequents[0].String())
	assert.Equal(t, "a < b, c < d, d < e ==> a < e", sequents[1].String())
}

func Test_Sequents_02(t *testing.T) {
	var (
		ctx   = NewVerificationContext("M", absyn.NewBuilder(), Flags{})
		block = NewAssertiveCodeBlock("B")
		b     = ctx.Builder()
		typ   = &TypeFamily{Name: "Stack", Exemplar: "S", Model: absyn.Integer,
			Initialization: SpecItem{Ensures: b.Equal(b.Symbol("S", absyn.Integer), b.Symbol("0", absyn.Natural))}}
	)
	//
	block.AddStatements(
		&InitializeVar{ProgramVar{"x", "Stack"}, typ},
		&InitializeVar{ProgramVar{"y", "Generic"}, nil},
		NewConfirm(assertions(t, ctx, "(= x 0)")),
	)
	//
	sequents := block.Sequents(ctx.Builder())
	require.Len(t, sequents, 1)
	assert.Equal(t, "x = 0 ==> x = 0", sequents[0].String())
}

func Test_Simplify_01(t *testing.T) {
	g := newGenerator(t, counterConcept, counterRealization, Flags{Simplify: true})
	block := NewAssertiveCodeBlock("B")
	block.AddStatements(
		&Assume{assertions(t, g.Context(), "(< a b)"), false},
		NewConfirm(assertions(t, g.Context(), "(and (< a b) (= c c))")),
	)
	g.Apply(fixedRule{block})
	//
	assert.Empty(t, g.VCs())
}

func Test_Missing_01(t *testing.T) {
	ctx := newContext(t, counterConcept, counterRealization, Flags{})
	dec := &TypeRepresentation{Name: "Unknown"}
	//
	assert.Panics(t, func() {
		NewTypeRepresentationCorrRule(dec, NewAssertiveCodeBlock("B"), ctx).Apply()
	})
}

func Test_Reader_01(t *testing.T) {
	modules := readModules(t, sharedConcept+sharedRealization)
	require.Len(t, modules, 2)
	//
	concept, realization := modules[0], modules[1]
	assert.Equal(t, Concept, concept.Kind)
	assert.Len(t, concept.SharedStates(), 1)
	require.Len(t, concept.TypeFamilies(), 1)
	assert.Equal(t, []string{"S"}, concept.TypeFamilies()[0].Finalization.Affects)
	assert.Equal(t, absyn.Integer, concept.TypeFamilies()[0].Model)
	//
	assert.Equal(t, Realization, realization.Kind)
	assert.Equal(t, "Pool_Template", realization.Implements)
	require.Len(t, realization.TypeRepresentations(), 1)
	rep := realization.TypeRepresentations()[0]
	assert.Equal(t, "R", rep.Representation)
	assert.Equal(t, []ProgramVar{{"i", "Integer"}}, rep.Initialization.Variables)
	assert.Len(t, rep.Initialization.Statements, 1)
}

func Test_Reader_02(t *testing.T) {
	for _, input := range []string{
		"(module M)",
		"(concept)",
		"(concept C (type-family T (model Z)))",
		"(concept C (shared-state S (vars S)))",
		"(realization R (type-rep T (unknown x)))",
		"(concept C (requires (= a b))",
	} {
		_, errs := ReadModules(absyn.NewBuilder(), source.NewSourceFile("test.mod", []byte(input)))
		assert.NotEmpty(t, errs, input)
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

// fixedRule is a rule whose block is already populated.
type fixedRule struct {
	block *AssertiveCodeBlock
}

func (p fixedRule) Apply()                     {}
func (p fixedRule) Block() *AssertiveCodeBlock { return p.block }
func (p fixedRule) Description() string        { return "Fixed" }

func newGenerator(t *testing.T, concept string, realization string, flags Flags) *Generator {
	t.Helper()
	//
	return NewGenerator(newContext(t, concept, realization, flags), log.NewEntry(log.StandardLogger()))
}

func newContext(t *testing.T, concept string, realization string, flags Flags) *VerificationContext {
	t.Helper()
	//
	var (
		builder = absyn.NewBuilder()
		modules = readModulesWith(t, builder, concept+realization)
		ctx     = NewVerificationContext(modules[1].Name, builder, flags)
	)
	//
	ctx.StoreConcept(modules[0])
	ctx.StoreRealization(modules[1])
	//
	return ctx
}

func readModules(t *testing.T, input string) []*Module {
	t.Helper()
	//
	return readModulesWith(t, absyn.NewBuilder(), input)
}

func readModulesWith(t *testing.T, builder *absyn.Builder, input string) []*Module {
	t.Helper()
	//
	modules, errs := ReadModules(builder, source.NewSourceFile("test.mod", []byte(input)))
	require.Empty(t, errs)
	//
	return modules
}

func lastConfirm(t *testing.T, block *AssertiveCodeBlock) *Confirm {
	t.Helper()
	//
	require.Positive(t, block.Len())
	confirm, ok := block.Statement(block.Len() - 1).(*Confirm)
	require.True(t, ok)
	//
	return confirm
}

func parse(t *testing.T, ctx *VerificationContext, input string) absyn.PExp {
	t.Helper()
	//
	e, err := absyn.ParseExp(ctx.Builder(), input)
	require.NoError(t, err)
	//
	return e
}

func assertions(t *testing.T, ctx *VerificationContext, input string) Assertions {
	t.Helper()
	//
	return conjoin(nil, parse(t, ctx, input), "")
}

func assertionStrings(assertions Assertions) []string {
	strs := make([]string, len(assertions))
	//
	for i, a := range assertions {
		strs[i] = a.String()
	}
	//
	return strs
}

func expStrings(exps []absyn.PExp) []string {
	strs := make([]string, len(exps))
	//
	for i, e := range exps {
		strs[i] = e.String()
	}
	//
	return strs
}
