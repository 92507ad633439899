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
	"fmt"
	"strconv"

	"github.com/consensys/go-resolve/pkg/util/source"
	"github.com/consensys/go-resolve/pkg/util/source/sexp"
)

// Reader translates S-expressions into prover expressions.  Quantifiers bind
// the named variables throughout their body:
//
//	(forall (x (: y Z)) (implies (< x y) (<= x y)))
//
// Other special forms are lambda, alt, the type annotation ":", outfix and the
// explicit fixity forms infix, prefix and postfix.  Any other list is an
// application of its head symbol.
type Reader struct {
	builder    *Builder
	types      map[string]*MathType
	translator *sexp.Translator[PExp]
}

// NewReader constructs a reader for S-expressions parsed from a given file.
func NewReader(builder *Builder, srcfile *source.File, srcmap *source.Map[sexp.SExp]) *Reader {
	reader := &Reader{
		builder: builder,
		types: map[string]*MathType{
			Entity.name: Entity, Boolean.name: Boolean, Integer.name: Integer, Natural.name: Natural,
		},
		translator: sexp.NewTranslator[PExp](srcfile, srcmap),
	}
	//
	t := reader.translator
	t.AddSymbolRule(reader.symbolRule)
	t.AddListRule("forall", reader.quantifierRule(ForAll))
	t.AddListRule("exists", reader.quantifierRule(Exists))
	t.AddListRule("lambda", reader.lambdaRule)
	t.AddListRule("alt", reader.alternativesRule)
	t.AddListRule(":", reader.annotationRule)
	t.AddListRule("outfix", reader.outfixRule)
	t.AddListRule("infix", reader.fixityRule(Infix))
	t.AddListRule("prefix", reader.fixityRule(Prefix))
	t.AddListRule("postfix", reader.fixityRule(Postfix))
	t.AddDefaultListRule(reader.applicationRule)
	//
	return reader
}

// ParseExp parses a single expression from a given string.
func ParseExp(builder *Builder, text string) (PExp, error) {
	srcfile := source.NewSourceFile("<input>", []byte(text))
	//
	s, srcmap, err := sexp.Parse(srcfile)
	if err != nil {
		return nil, err
	} else if s == nil {
		return nil, fmt.Errorf("empty expression")
	}
	//
	e, errs := NewReader(builder, srcfile, srcmap).Read(s)
	if len(errs) > 0 {
		return nil, &errs[0]
	}
	//
	return e, nil
}

// Read translates a given S-expression.
func (r *Reader) Read(s sexp.SExp) (PExp, []source.SyntaxError) {
	return r.translator.Translate(s)
}

// ReadAll translates a sequence of S-expressions.
func (r *Reader) ReadAll(s []sexp.SExp) ([]PExp, []source.SyntaxError) {
	return r.translator.TranslateAll(s)
}

// Builder returns the builder used by this reader.
func (r *Reader) Builder() *Builder {
	return r.builder
}

// SyntaxErrors constructs an error for a given S-expression.
func (r *Reader) SyntaxErrors(s sexp.SExp, msg string) []source.SyntaxError {
	return r.translator.SyntaxErrors(s, msg)
}

// TypeOf returns the type of a given name, creating it if necessary.
func (r *Reader) TypeOf(name string) *MathType {
	if t, ok := r.types[name]; ok {
		return t
	}
	//
	t := NewMathType(name)
	r.types[name] = t
	//
	return t
}

// ============================================================================
// Rules
// ============================================================================

func (r *Reader) symbolRule(name string) (PExp, bool, error) {
	return r.builder.Symbol(name, literalType(name)), true, nil
}

func (r *Reader) quantifierRule(quant Quantification) sexp.ListRule[PExp] {
	return func(t *sexp.Translator[PExp], l *sexp.List) (PExp, []source.SyntaxError) {
		if l.Len() != 3 || l.Get(1).AsList() == nil {
			return nil, t.SyntaxErrors(l, "expected (quantifier (variables) body)")
		}
		//
		params, errs := r.readParameters(t, l.Get(1).AsList())
		if len(errs) > 0 {
			return nil, errs
		}
		//
		body, errs := t.Translate(l.Get(2))
		if len(errs) > 0 {
			return nil, errs
		}
		// Bind the free occurrences of each variable
		subs := NewSubstitution()
		//
		for _, p := range params {
			subs.Insert(r.builder.Symbol(p.Name, Entity), r.builder.Var(p.Name, p.Type, quant))
		}
		//
		return Substitute(body, subs), nil
	}
}

func (r *Reader) lambdaRule(t *sexp.Translator[PExp], l *sexp.List) (PExp, []source.SyntaxError) {
	if l.Len() != 3 || l.Get(1).AsList() == nil {
		return nil, t.SyntaxErrors(l, "expected (lambda (parameters) body)")
	}
	//
	params, errs := r.readParameters(t, l.Get(1).AsList())
	if len(errs) > 0 {
		return nil, errs
	}
	//
	body, errs := t.Translate(l.Get(2))
	if len(errs) > 0 {
		return nil, errs
	}
	//
	return r.builder.Lambda(params, body, Entity), nil
}

func (r *Reader) alternativesRule(t *sexp.Translator[PExp], l *sexp.List) (PExp, []source.SyntaxError) {
	var (
		alternatives []Alternative
		otherwise    PExp
	)
	//
	if l.Len() < 3 {
		return nil, t.SyntaxErrors(l, "expected (alt (result condition)... (otherwise result))")
	}
	//
	for i, element := range l.Elements[1:] {
		item := element.AsList()
		last := i == l.Len()-2
		//
		switch {
		case item == nil || item.Len() != 2:
			return nil, t.SyntaxErrors(element, "malformed alternative")
		case last && !item.MatchSymbols(1, "otherwise"):
			return nil, t.SyntaxErrors(element, "expected (otherwise result)")
		case last:
			var errs []source.SyntaxError
			if otherwise, errs = t.Translate(item.Get(1)); len(errs) > 0 {
				return nil, errs
			}
		default:
			pair, errs := t.TranslateAll(item.Elements)
			if len(errs) > 0 {
				return nil, errs
			}
			//
			alternatives = append(alternatives, Alternative{pair[0], pair[1]})
		}
	}
	//
	return r.builder.Alternatives(alternatives, otherwise, alternatives[0].Result.Type()), nil
}

func (r *Reader) annotationRule(t *sexp.Translator[PExp], l *sexp.List) (PExp, []source.SyntaxError) {
	if l.Len() != 3 || l.Get(2).AsSymbol() == nil {
		return nil, t.SyntaxErrors(l, "expected (: expression type)")
	}
	//
	e, errs := t.Translate(l.Get(1))
	if len(errs) > 0 {
		return nil, errs
	}
	//
	app, ok := e.(*Apply)
	if !ok {
		return nil, t.SyntaxErrors(l, "only symbols and applications can be annotated")
	}
	//
	return app.WithType(r.TypeOf(l.Get(2).AsSymbol().Value)), nil
}

func (r *Reader) outfixRule(t *sexp.Translator[PExp], l *sexp.List) (PExp, []source.SyntaxError) {
	if l.Len() < 4 || l.Get(1).AsSymbol() == nil || l.Get(l.Len()-1).AsSymbol() == nil {
		return nil, t.SyntaxErrors(l, "expected (outfix left argument... right)")
	}
	//
	args, errs := t.TranslateAll(l.Elements[2 : l.Len()-1])
	if len(errs) > 0 {
		return nil, errs
	}
	//
	left, right := l.Get(1).AsSymbol().Value, l.Get(l.Len()-1).AsSymbol().Value
	//
	return r.builder.Outfix(left, right, Entity, args...), nil
}

func (r *Reader) fixityRule(fixity Fixity) sexp.ListRule[PExp] {
	return func(t *sexp.Translator[PExp], l *sexp.List) (PExp, []source.SyntaxError) {
		if l.Len() < 3 || l.Get(1).AsSymbol() == nil {
			return nil, t.SyntaxErrors(l, "expected (fixity operator argument...)")
		}
		//
		args, errs := t.TranslateAll(l.Elements[2:])
		if len(errs) > 0 {
			return nil, errs
		} else if fixity == Infix && len(args) != 2 {
			return nil, t.SyntaxErrors(l, "infix operators require two arguments")
		}
		//
		name := l.Get(1).AsSymbol().Value
		//
		return r.builder.ApplyWithFixity(name, fixity, operatorType(name), args...), nil
	}
}

func (r *Reader) applicationRule(t *sexp.Translator[PExp], l *sexp.List) (PExp, []source.SyntaxError) {
	name := l.Head()
	//
	if name == "" {
		return nil, t.SyntaxErrors(l, "invalid application")
	}
	//
	args, errs := t.TranslateAll(l.Elements[1:])
	if len(errs) > 0 {
		return nil, errs
	}
	//
	return r.builder.Apply(name, operatorType(name), args...), nil
}

func (r *Reader) readParameters(t *sexp.Translator[PExp], l *sexp.List) ([]Parameter, []source.SyntaxError) {
	params := make([]Parameter, l.Len())
	//
	for i, element := range l.Elements {
		if s := element.AsSymbol(); s != nil {
			params[i] = Parameter{s.Value, Entity}
		} else if d := element.AsList(); d != nil && d.Len() == 3 && d.MatchSymbols(3, ":") {
			params[i] = Parameter{d.Get(1).AsSymbol().Value, r.TypeOf(d.Get(2).AsSymbol().Value)}
		} else {
			return nil, t.SyntaxErrors(element, "expected variable or (: variable type)")
		}
	}
	//
	return params, nil
}

// ============================================================================
// Types of literals and operators
// ============================================================================

func literalType(name string) *MathType {
	if name == "true" || name == "false" {
		return Boolean
	} else if n, err := strconv.ParseInt(name, 10, 64); err == nil {
		if n >= 0 {
			return Natural
		}
		//
		return Integer
	}
	//
	return Entity
}

func operatorType(name string) *MathType {
	switch name {
	case "=", "/=", "<", "<=", ">", ">=", "and", "or", "implies", "iff", "not", "is_in":
		return Boolean
	case "+", "-", "*", "/":
		return Integer
	}
	//
	return Entity
}
