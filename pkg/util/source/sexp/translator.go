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
	"fmt"

	"github.com/consensys/go-resolve/pkg/util/source"
)

// SymbolRule is responsible for converting a terminating expression (i.e. a
// symbol) into a term of type T.  The boolean indicates whether the rule
// applied.
type SymbolRule[T comparable] func(string) (T, bool, error)

// ListRule is responsible for converting a list into a term of type T.  The
// rule is given the translator, so that it can recursively translate elements
// as it sees fit.
type ListRule[T comparable] func(*Translator[T], *List) (T, []source.SyntaxError)

// RecursiveRule is a wrapper for translating lists whose elements can be built
// by recursively reusing the enclosing translator.
type RecursiveRule[T comparable] func(string, []T) (T, error)

// ===================================================================
// Translator
// ===================================================================

// Translator is a generic mechanism for translating S-Expressions into a
// structured form.  Lists are dispatched on their head symbol and, failing
// that, on a default rule.
type Translator[T comparable] struct {
	srcfile *source.File
	// Rules for parsing lists
	lists map[string]ListRule[T]
	// Fallback rule for generic user-defined lists.
	listDefault ListRule[T]
	// Rules for parsing symbols
	symbols []SymbolRule[T]
	// Maps S-Expressions to their spans in the original source file.
	oldSrcmap *source.Map[SExp]
	// Maps translated terms to their spans in the original source file.
	newSrcmap *source.Map[T]
}

// NewTranslator constructs a new Translator instance.
func NewTranslator[T comparable](srcfile *source.File, srcmap *source.Map[SExp]) *Translator[T] {
	return &Translator[T]{
		srcfile:   srcfile,
		lists:     make(map[string]ListRule[T]),
		symbols:   make([]SymbolRule[T], 0),
		oldSrcmap: srcmap,
		newSrcmap: source.NewSourceMap[T](srcfile),
	}
}

// SourceMap returns the source map maintained for terms constructed by this
// translator.
func (p *Translator[T]) SourceMap() *source.Map[T] {
	return p.newSrcmap
}

// Translate a given S-Expression into a given structured representation T.
func (p *Translator[T]) Translate(sexp SExp) (T, []source.SyntaxError) {
	var empty T
	//
	switch e := sexp.(type) {
	case *List:
		return p.translateList(e)
	case *Symbol:
		for _, rule := range p.symbols {
			node, ok, err := rule(e.Value)
			if ok && err != nil {
				return empty, p.SyntaxErrors(sexp, err.Error())
			} else if ok {
				p.newSrcmap.Put(node, p.oldSrcmap.Get(sexp))
				return node, nil
			}
		}
		//
		return empty, p.SyntaxErrors(sexp, fmt.Sprintf("unknown symbol \"%s\"", e.Value))
	}
	// Unreachable, unless a new kind of S-Expression is added.
	panic(fmt.Sprintf("invalid s-expression (%T)", sexp))
}

// TranslateAll translates a sequence of S-Expressions, accumulating any errors.
func (p *Translator[T]) TranslateAll(sexps []SExp) ([]T, []source.SyntaxError) {
	var (
		terms  = make([]T, len(sexps))
		errors []source.SyntaxError
	)
	//
	for i, s := range sexps {
		var errs []source.SyntaxError
		terms[i], errs = p.Translate(s)
		errors = append(errors, errs...)
	}
	//
	return terms, errors
}

// AddListRule adds a raw list rule to this translator.
func (p *Translator[T]) AddListRule(name string, rule ListRule[T]) {
	p.lists[name] = rule
}

// AddRecursiveListRule adds a list rule whose arguments are first translated
// recursively.
func (p *Translator[T]) AddRecursiveListRule(name string, t RecursiveRule[T]) {
	p.lists[name] = createRecursiveListRule(t)
}

// AddDefaultListRule adds a default rule to be applied when no other list rules
// apply.
func (p *Translator[T]) AddDefaultListRule(rule ListRule[T]) {
	p.listDefault = rule
}

// AddSymbolRule adds a new symbol translator to this translator.
func (p *Translator[T]) AddSymbolRule(t SymbolRule[T]) {
	p.symbols = append(p.symbols, t)
}

// SyntaxError constructs a suitable syntax error for a given S-Expression.
//
//nolint:revive
func (p *Translator[T]) SyntaxError(s SExp, msg string) *source.SyntaxError {
	return p.srcfile.SyntaxError(p.oldSrcmap.Get(s), msg)
}

// SyntaxErrors constructs a suitable syntax error for a given S-Expression,
// wrapped in an array of size one.
//
//nolint:revive
func (p *Translator[T]) SyntaxErrors(s SExp, msg string) []source.SyntaxError {
	return []source.SyntaxError{*p.SyntaxError(s, msg)}
}

// ===================================================================
// Private
// ===================================================================

func createRecursiveListRule[T comparable](t RecursiveRule[T]) ListRule[T] {
	return func(p *Translator[T], l *List) (T, []source.SyntaxError) {
		var empty T
		// Translate arguments
		args, errors := p.TranslateAll(l.Elements[1:])
		//
		if len(errors) > 0 {
			return empty, errors
		}
		// Apply constructor
		term, err := t(l.Head(), args)
		// Check error
		if err != nil {
			return empty, p.SyntaxErrors(l, err.Error())
		}
		//
		return term, nil
	}
}

// Translate a list of S-Expressions.  The kind of term is determined by the
// first element of the list.
func (p *Translator[T]) translateList(l *List) (T, []source.SyntaxError) {
	var (
		empty  T
		node   T
		errors []source.SyntaxError
	)
	// Lookup appropriate translator
	if t, ok := p.lists[l.Head()]; ok && l.Head() != "" {
		node, errors = t(p, l)
	} else if p.listDefault != nil {
		node, errors = p.listDefault(p, l)
	} else {
		return empty, p.SyntaxErrors(l, "unknown list encountered")
	}
	// Map source node
	if len(errors) == 0 {
		p.newSrcmap.Put(node, p.oldSrcmap.Get(l))
	}
	// Done
	return node, errors
}
