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
package absyn

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_PExp_01(t *testing.T) {
	check_Render(t, "(= (+ x 1) y)", "(x + 1) = y")
	check_Render(t, "(implies (and a b) (not c))", "(a and b) implies not(c)")
	check_Render(t, "(= (# Conc.S) (f S 0))", "#Conc.S = f(S, 0)")
	check_Render(t, "(outfix | (+ x y) |)", "|x + y|")
	check_Render(t, "(postfix ' S)", "S'")
	check_Render(t, "(alt (1 (> x 0)) (otherwise 0))", "{{ 1 if x > 0; 0 otherwise; }}")
	check_Render(t, "(lambda ((: x Z)) (+ x 1))", "lambda(x: Z).(x + 1)")
}

func Test_PExp_02(t *testing.T) {
	b := NewBuilder()
	e := parse(t, b, "(and (= a b) (= c d))").(*Apply)
	// Only the path to the replaced node is rebuilt
	r := SubstituteOne(e, b.Symbol("a", Entity), b.Symbol("z", Entity)).(*Apply)
	//
	assert.Equal(t, "(z = b) and (c = d)", r.String())
	assert.Same(t, e.Arg(1), r.Arg(1))
	assert.Equal(t, "(a = b) and (c = d)", e.String())
	// Nothing replaced means nothing rebuilt
	assert.Same(t, e, SubstituteOne(e, b.Symbol("q", Entity), b.True()))
}

func Test_PExp_03(t *testing.T) {
	b := NewBuilder()
	// Substitution is outermost first
	e := parse(t, b, "(f (g x) x)")
	subs := SubstitutionOf(parse(t, b, "(g x)"), b.Symbol("y", Entity), b.Symbol("x", Entity), b.Symbol("w", Entity))
	//
	assert.Equal(t, "f(y, w)", Substitute(e, subs).String())
}

func Test_PExp_04(t *testing.T) {
	b := NewBuilder()
	//
	for _, input := range []string{"(and (and a b) c)", "(and a b)", "(and (and (and a (= x y)) b) (f c))"} {
		e := parse(t, b, input)
		conjuncts := SplitIntoConjuncts(e)
		//
		assert.Greater(t, conjuncts.Size(), uint(1))
		assert.True(t, e.Equals(b.ConjoinList(conjuncts)), "resynthesis of %s", input)
	}
	// Non conjunctions
	single := SplitIntoConjuncts(parse(t, b, "(or a b)"))
	assert.Equal(t, uint(1), single.Size())
	// Right nesting is flattened as well
	assert.Equal(t, uint(3), SplitIntoConjuncts(parse(t, b, "(and a (and b c))")).Size())
}

func Test_PExp_05(t *testing.T) {
	b := NewBuilder()
	pattern := parse(t, b, "(forall (x) (= (+ x 0) x))")
	// Consistent binding
	bindings, err := BindTo(pattern, parse(t, b, "(= (+ (f y) 0) (f y))"))
	require.NoError(t, err)
	assert.Equal(t, uint(1), bindings.Size())
	assert.True(t, Substitute(pattern, bindings).Equals(parse(t, b, "(= (+ (f y) 0) (f y))")))
	// Inconsistent binding
	_, err = BindTo(pattern, parse(t, b, "(= (+ y 0) z)"))
	assert.True(t, errors.Is(err, ErrBindingFailed))
	// Structural mismatch
	_, err = BindTo(pattern, parse(t, b, "(= (* y 0) y)"))
	assert.True(t, errors.Is(err, ErrBindingFailed))
}

func Test_PExp_06(t *testing.T) {
	b := NewBuilder()
	x := b.Var("x", Entity, ForAll)
	acc := SubstitutionOf(x, b.Symbol("a", Entity))
	// Existing bindings are respected
	assert.NoError(t, BindInto(parse(t, b, "(forall (x) (f x))"), parse(t, b, "(f a)"), acc))
	assert.ErrorIs(t, BindInto(parse(t, b, "(forall (x) (f x))"), parse(t, b, "(f c)"), acc), ErrBindingFailed)
}

func Test_PExp_07(t *testing.T) {
	b := NewBuilder()
	// Typed variables only bind to subsets of their type
	pattern := parse(t, b, "(forall ((: n N)) (p n))")
	//
	_, err := BindTo(pattern, parse(t, b, "(p 3)"))
	assert.NoError(t, err)
	//
	_, err = BindTo(pattern, parse(t, b, "(p -3)"))
	assert.ErrorIs(t, err, ErrBindingFailed)
	// Untyped variables bind to anything
	_, err = BindTo(parse(t, b, "(forall (v) (p v))"), parse(t, b, "(p -3)"))
	assert.NoError(t, err)
}

func Test_PExp_08(t *testing.T) {
	b := NewBuilder()
	// Function variables
	pattern := parse(t, b, "(forall (f y) (= (f y) y))")
	target := parse(t, b, "(= (g 1) 1)")
	//
	bindings, err := BindTo(pattern, target)
	require.NoError(t, err)
	assert.True(t, Substitute(pattern, bindings).Equals(target))
}

func Test_PExp_09(t *testing.T) {
	b := NewBuilder()
	e := parse(t, b, "(forall (x) (exists (y) (< x y)))")
	//
	assert.True(t, ContainsExistential(e))
	assert.Len(t, QuantifiedVariables(e), 2)
	//
	flipped := FlipQuantifiers(e)
	vars := QuantifiedVariables(flipped)
	require.Len(t, vars, 2)
	assert.Equal(t, Exists, vars[0].Quantification())
	assert.Equal(t, ForAll, vars[1].Quantification())
	assert.True(t, e.Equals(FlipQuantifiers(flipped)))
	// No quantifiers means no change
	plain := parse(t, b, "(< a b)")
	assert.Same(t, plain, FlipQuantifiers(plain))
}

func Test_PExp_10(t *testing.T) {
	b := NewBuilder()
	e := parse(t, b, "(forall (x) (= (f x (g a)) (+ x b)))")
	//
	assert.Equal(t, []string{"+", "=", "a", "b", "f", "g"}, SymbolNames(e).ToArray())
	assert.Equal(t, 4, FunctionApplicationCount(e))
	assert.Equal(t, "=", TopLevelOperation(e))
	assert.True(t, HasQuantifiedVariables(e))
	assert.False(t, HasQuantifiedVariables(parse(t, b, "(f a)")))
	assert.True(t, ContainsName(e, "g"))
	assert.False(t, ContainsName(e, "h"))
}

func Test_PExp_11(t *testing.T) {
	b := NewBuilder()
	//
	assert.True(t, IsObviouslyTrue(parse(t, b, "true")))
	assert.True(t, IsObviouslyTrue(parse(t, b, "(= (f x) (f x))")))
	assert.False(t, IsObviouslyTrue(parse(t, b, "(= (f x) (f y))")))
	assert.True(t, IsLiteralTrue(b.True()))
	assert.False(t, IsLiteralTrue(parse(t, b, "(= x x)")))
	assert.True(t, IsLiteralFalse(b.False()))
	assert.True(t, IsLiteralTrue(b.Conjoin()))
	assert.True(t, b.ConjoinNonTrivial(b.True(), b.Symbol("p", Boolean)).Equals(b.Symbol("p", Boolean)))
}

func Test_PExp_12(t *testing.T) {
	b := NewBuilder()
	e := parse(t, b, "(and (= a (f b c)) d)")
	path := []uint{0, 1, 1}
	//
	assert.Equal(t, "c", SubExpressionAt(e, path).String())
	//
	altered := WithSiteAltered(e, path, b.Symbol("z", Entity))
	assert.Equal(t, "(a = f(b, z)) and d", altered.String())
	assert.Same(t, e.SubExpressions().Get(1), altered.SubExpressions().Get(1))
	//
	tt := b.True()
	assert.Same(t, tt, WithSiteAltered(e, nil, tt))
}

func Test_PExp_13(t *testing.T) {
	b := NewBuilder()
	// Equality ignores types, but not quantification
	assert.True(t, b.Symbol("x", Integer).Equals(b.Symbol("x", Boolean)))
	assert.False(t, b.Symbol("x", Entity).Equals(b.Var("x", Entity, ForAll)))
	assert.Equal(t, b.Symbol("x", Integer).Hash(), b.Symbol("x", Boolean).Hash())
	// Alternatives and lambdas
	alt := parse(t, b, "(alt (1 (> x 0)) (otherwise 0))")
	assert.True(t, alt.Equals(parse(t, b, "(alt (1 (> x 0)) (otherwise 0))")))
	assert.False(t, alt.Equals(parse(t, b, "(alt (1 (> x 1)) (otherwise 0))")))
	assert.Equal(t, "{{ 1 if y > 0; 0 otherwise; }}",
		SubstituteOne(alt, b.Symbol("x", Entity), b.Symbol("y", Entity)).String())
	//
	lambda := parse(t, b, "(lambda (x) (+ x 1))")
	assert.True(t, lambda.Equals(parse(t, b, "(lambda (x) (+ x 1))")))
	assert.False(t, lambda.Equals(parse(t, b, "(lambda (y) (+ y 1))")))
}

func Test_PExp_14(t *testing.T) {
	b := NewBuilder()
	//
	for _, input := range []string{"(forall x y)", "(alt (1 c))", "(: (lambda (x) x) Z)", "((f) x)", "(infix + x)", "(f"} {
		_, err := ParseExp(b, input)
		assert.Error(t, err, input)
	}
}

func Test_PExp_15(t *testing.T) {
	interner := NewInterner()
	b1 := NewBuilderWith(interner)
	b2 := NewBuilderWith(interner)
	//
	assert.Same(t, b1.Symbol("x", Entity).Name(), b2.Symbol("x", Entity).Name())
	assert.Equal(t, Infix, interner.FixityOf("=", 2))
	assert.Equal(t, Prefix, interner.FixityOf("=", 3))
	assert.Equal(t, Prefix, interner.FixityOf("f", 2))
	//
	interner.SetFixity("union", Infix)
	assert.Equal(t, "s union t", b1.Apply("union", Entity, b1.Symbol("s", Entity), b1.Symbol("t", Entity)).String())
}

func Test_PExp_16(t *testing.T) {
	assert.True(t, Natural.IsSubtypeOf(Integer))
	assert.True(t, Natural.IsSubtypeOf(Entity))
	assert.False(t, Integer.IsSubtypeOf(Natural))
	assert.True(t, NewMathType("Str").IsSubtypeOf(NewMathType("Str")))
	assert.False(t, Boolean.IsSubtypeOf(Integer))
}

// ===================================================================
// Test Helpers
// ===================================================================

func parse(t *testing.T, b *Builder, input string) PExp {
	t.Helper()
	//
	e, err := ParseExp(b, input)
	require.NoError(t, err, input)
	//
	return e
}

func check_Render(t *testing.T, input string, expected string) {
	t.Helper()
	//
	assert.Equal(t, expected, parse(t, NewBuilder(), input).String())
}
