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
package sexp

import (
	"strconv"
	"testing"

	"github.com/consensys/go-resolve/pkg/util/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_SExp_01(t *testing.T) {
	check_Parse(t, "(a b)", "(a b)")
}

func Test_SExp_02(t *testing.T) {
	check_Parse(t, "  (forall (x y)\n   (= x y)) ; comment", "(forall (x y) (= x y))")
}

func Test_SExp_03(t *testing.T) {
	check_Parse(t, "(a ; inner comment\n b)", "(a b)")
}

func Test_SExp_04(t *testing.T) {
	check_ParseError(t, "(a b", "unexpected end-of-file")
	check_ParseError(t, ")", "unexpected end-of-list")
	check_ParseError(t, "(a) b", "unexpected remainder")
}

func Test_SExp_05(t *testing.T) {
	srcfile := source.NewSourceFile("test", []byte("(theorem a) (theorem b)\n(vc c)"))
	terms, _, err := ParseAll(srcfile)
	//
	require.Nil(t, err)
	require.Len(t, terms, 3)
	assert.Equal(t, "theorem", terms[1].AsList().Head())
	assert.Equal(t, "(vc c)", terms[2].String())
}

func Test_SExp_06(t *testing.T) {
	srcfile := source.NewSourceFile("test", []byte("(+ 1 (* 2 3))"))
	sexp, srcmap, err := Parse(srcfile)
	require.Nil(t, err)
	//
	translator := NewTranslator[*int](srcfile, srcmap)
	translator.AddSymbolRule(func(s string) (*int, bool, error) {
		n, err := strconv.Atoi(s)
		return &n, true, err
	})
	translator.AddRecursiveListRule("+", fold(func(x, y int) int { return x + y }))
	translator.AddRecursiveListRule("*", fold(func(x, y int) int { return x * y }))
	//
	result, errs := translator.Translate(sexp)
	require.Empty(t, errs)
	assert.Equal(t, 7, *result)
	assert.True(t, translator.SourceMap().Has(result))
	// Unknown list
	sexp, srcmap, _ = Parse(source.NewSourceFile("test", []byte("(- 1 2)")))
	translator = NewTranslator[*int](srcmap.Source(), srcmap)
	_, errs = translator.Translate(sexp)
	require.Len(t, errs, 1)
	assert.Equal(t, "unknown list encountered", errs[0].Message())
}

// ===================================================================
// Test Helpers
// ===================================================================

func check_Parse(t *testing.T, input string, expected string) {
	t.Helper()
	//
	sexp, srcmap, err := Parse(source.NewSourceFile("test", []byte(input)))
	//
	require.Nil(t, err)
	assert.Equal(t, expected, sexp.String())
	assert.True(t, srcmap.Has(sexp))
}

func check_ParseError(t *testing.T, input string, msg string) {
	t.Helper()
	//
	_, _, err := Parse(source.NewSourceFile("test", []byte(input)))
	//
	require.NotNil(t, err)
	assert.Equal(t, msg, err.Message())
}

func fold(fn func(int, int) int) RecursiveRule[*int] {
	return func(_ string, args []*int) (*int, error) {
		acc := *args[0]
		for _, arg := range args[1:] {
			acc = fn(acc, *arg)
		}
		//
		return &acc, nil
	}
}
