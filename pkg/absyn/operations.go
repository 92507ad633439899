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
	"strings"

	"github.com/consensys/go-resolve/pkg/util/collection/hash"
	"github.com/consensys/go-resolve/pkg/util/collection/immutable"
	"github.com/consensys/go-resolve/pkg/util/collection/set"
)

// ErrBindingFailed indicates that a pattern does not match a given target.  It
// is expected, and is routinely absorbed while searching for candidate
// bindings.
var ErrBindingFailed = errors.New("binding failed")

// ============================================================================
// Substitution
// ============================================================================

// Substitution maps expressions to their replacements.
type Substitution = hash.Map[PExp, PExp]

// NewSubstitution constructs an empty substitution.
func NewSubstitution() *Substitution {
	return hash.NewMap[PExp, PExp](4)
}

// SubstitutionOf constructs a substitution from alternating keys and values.
func SubstitutionOf(pairs ...PExp) *Substitution {
	if len(pairs)%2 != 0 {
		panic("substitution requires key / value pairs")
	}
	//
	subs := NewSubstitution()
	//
	for i := 0; i < len(pairs); i += 2 {
		subs.Insert(pairs[i], pairs[i+1])
	}
	//
	return subs
}

// Substitute replaces every sub-expression of e which is a key of subs with its
// value.  Matching is outermost first, and replaced sub-expressions are not
// themselves searched.  Only the paths from replaced nodes to the root are
// rebuilt, and e itself is returned if nothing was replaced.  A function
// variable which is a key also renames applications of that function.
func Substitute(e PExp, subs *Substitution) PExp {
	if subs.Size() == 0 {
		return e
	} else if v, ok := subs.Get(e); ok {
		return v
	}
	//
	if app, ok := e.(*Apply); ok {
		return substituteApply(app, subs)
	}
	//
	children := e.SubExpressions()
	//
	if nchildren := substituteAll(children, subs); nchildren != children {
		return e.WithSubExpressions(nchildren)
	}
	//
	return e
}

// SubstituteOne replaces every occurrence of from in e with to.
func SubstituteOne(e PExp, from PExp, to PExp) PExp {
	return Substitute(e, SubstitutionOf(from, to))
}

func substituteApply(e *Apply, subs *Substitution) PExp {
	name, quant := e.name, e.quant
	// Check for function renaming
	if e.Arity() > 0 && e.fixity == Prefix {
		asVar := newApply(e.name, Prefix, e.quant, immutable.Empty[PExp](), e.typ)
		//
		if f, ok := subs.Get(asVar); ok {
			if fn, ok := f.(*Apply); ok && fn.IsVariable() {
				name, quant = fn.name, fn.quant
			}
		}
	}
	//
	args := substituteAll(e.args, subs)
	//
	if args == e.args && name == e.name && quant == e.quant {
		return e
	}
	//
	return newApply(name, e.fixity, quant, args, e.typ)
}

func substituteAll(items immutable.List[PExp], subs *Substitution) immutable.List[PExp] {
	result := items
	//
	for i := uint(0); i < items.Size(); i++ {
		ith := items.Get(i)
		//
		if nith := Substitute(ith, subs); nith != ith {
			result = result.Set(i, nith)
		}
	}
	//
	return result
}

// ============================================================================
// Binding
// ============================================================================

// BindTo matches a pattern against a target, where universally quantified
// variables of the pattern bind to sub-expressions of the target.  A variable
// occurring more than once must bind to equal sub-expressions each time.  The
// resulting bindings, when substituted into the pattern, give the target.
func BindTo(pattern PExp, target PExp) (*Substitution, error) {
	acc := NewSubstitution()
	//
	if err := BindInto(pattern, target, acc); err != nil {
		return nil, err
	}
	//
	return acc, nil
}

// BindInto is BindTo, except that bindings are accumulated into an existing
// substitution.  Variables already bound there must match consistently.  On
// failure, the accumulator may have been partially extended.
func BindInto(pattern PExp, target PExp, acc *Substitution) error {
	return bind(Substitute(pattern, acc), target, acc)
}

func bind(pattern PExp, target PExp, acc *Substitution) error {
	switch p := pattern.(type) {
	case *Apply:
		return bindApply(p, target, acc)
	case *Lambda:
		t, ok := target.(*Lambda)
		//
		if !ok || len(p.params) != len(t.params) || !t.typ.IsSubtypeOf(p.typ) {
			return ErrBindingFailed
		}
		//
		return bind(p.body, t.body, acc)
	default:
		// Alternatives only bind to identical things
		if !pattern.Equals(target) {
			return ErrBindingFailed
		}
		//
		return nil
	}
}

func bindApply(p *Apply, target PExp, acc *Substitution) error {
	t, ok := target.(*Apply)
	//
	if !ok {
		return ErrBindingFailed
	} else if p.quant == ForAll {
		if !t.typ.IsSubtypeOf(p.typ) {
			return ErrBindingFailed
		} else if p.IsVariable() {
			acc.Insert(p, t)
			return nil
		} else if p.Arity() != t.Arity() {
			return ErrBindingFailed
		}
		// Bind function name, then arguments
		fn := newApply(p.name, Prefix, p.quant, immutable.Empty[PExp](), p.typ)
		acc.Insert(fn, newApply(t.name, Prefix, None, immutable.Empty[PExp](), t.typ))
	} else if !p.typ.IsSubtypeOf(t.typ) && !t.typ.IsSubtypeOf(p.typ) {
		return ErrBindingFailed
	} else if !p.name.Equals(t.name) || p.Arity() != t.Arity() {
		return ErrBindingFailed
	}
	//
	for i := uint(0); i < p.Arity(); i++ {
		if err := bind(Substitute(p.args.Get(i), acc), t.args.Get(i), acc); err != nil {
			return err
		}
	}
	//
	return nil
}

// ============================================================================
// Structure
// ============================================================================

// IsAnd determines whether e is a binary conjunction.
func IsAnd(e PExp) bool {
	_, _, ok := AsBinary(e, "and")
	return ok
}

// AsBinary returns the operands of e, if it is an application of a given
// binary operator.
func AsBinary(e PExp, op string) (PExp, PExp, bool) {
	if app, ok := e.(*Apply); ok && app.Arity() == 2 && app.name.text == op {
		return app.args.Get(0), app.args.Get(1), true
	}
	//
	return nil, nil, false
}

// IsEquality determines whether e is of the form x = y.
func IsEquality(e PExp) bool {
	_, _, ok := AsBinary(e, "=")
	return ok
}

// SplitIntoConjuncts returns the top-level conjuncts of e, in order.  An
// expression which is not a conjunction is its only conjunct.
func SplitIntoConjuncts(e PExp) immutable.List[PExp] {
	var acc []PExp
	//
	splitInto(e, &acc)
	//
	return immutable.New(acc...)
}

func splitInto(e PExp, acc *[]PExp) {
	if lhs, rhs, ok := AsBinary(e, "and"); ok {
		splitInto(lhs, acc)
		splitInto(rhs, acc)
	} else {
		*acc = append(*acc, e)
	}
}

// SubExpressionAt returns the sub-expression of e found by following a path of
// child indices.
func SubExpressionAt(e PExp, path []uint) PExp {
	for _, i := range path {
		e = e.SubExpressions().Get(i)
	}
	//
	return e
}

// WithSiteAltered returns e with the sub-expression at a given path replaced.
// Only the nodes along the path are rebuilt.
func WithSiteAltered(e PExp, path []uint, value PExp) PExp {
	if len(path) == 0 {
		return value
	}
	//
	children := e.SubExpressions()
	child := WithSiteAltered(children.Get(path[0]), path[1:], value)
	//
	return e.WithSubExpressions(children.Set(path[0], child))
}

// FlipQuantifiers exchanges universal and existential quantification of every
// variable in e.
func FlipQuantifiers(e PExp) PExp {
	app, ok := e.(*Apply)
	//
	if !ok {
		return e
	}
	//
	args := app.args
	//
	for i := uint(0); i < args.Size(); i++ {
		ith := args.Get(i)
		if nith := FlipQuantifiers(ith); nith != ith {
			args = args.Set(i, nith)
		}
	}
	//
	if flipped := app.quant.Flipped(); args != app.args || flipped != app.quant {
		return newApply(app.name, app.fixity, flipped, args, app.typ)
	}
	//
	return e
}

// TopLevelOperation returns the name of the outermost operation of e.
func TopLevelOperation(e PExp) string {
	switch e := e.(type) {
	case *Apply:
		return e.name.text
	case *Lambda:
		return "lambda"
	default:
		return "alternatives"
	}
}

// ============================================================================
// Queries
// ============================================================================

// SymbolNames returns the names of all unquantified symbols occurring in e.
// The returned set is shared, and must not be modified.
func SymbolNames(e PExp) *set.SortedSet[string] {
	app, ok := e.(*Apply)
	//
	if !ok {
		return symbolNames(e)
	} else if names := app.symbols.Load(); names != nil {
		return names
	}
	//
	names := symbolNames(e)
	app.symbols.Store(names)
	//
	return names
}

func symbolNames(e PExp) *set.SortedSet[string] {
	names := set.NewSortedSet[string]()
	//
	if app, ok := e.(*Apply); ok && app.quant == None {
		names.Insert(app.name.text)
	}
	//
	for it := e.SubExpressions().Iter(); it.HasNext(); {
		names.InsertSorted(SymbolNames(it.Next()))
	}
	//
	return names
}

// VariableNames returns the names of the unquantified variables occurring in
// e.
func VariableNames(e PExp) *set.SortedSet[string] {
	names := set.NewSortedSet[string]()
	//
	visit(e, func(e PExp) {
		if IsVariableSymbol(e) {
			names.Insert(e.(*Apply).name.text)
		}
	})
	//
	return names
}

// IsVariableSymbol determines whether e is an unquantified symbol without
// arguments, other than a boolean or numeric literal.
func IsVariableSymbol(e PExp) bool {
	app, ok := e.(*Apply)
	//
	return ok && app.IsVariable() && app.quant == None && literalType(app.name.text) == Entity
}

// QuantifiedVariables returns the distinct quantified variables of e, in the
// order first encountered.  Quantified function symbols are returned as
// variables of the same name.
func QuantifiedVariables(e PExp) []*Apply {
	var (
		seen = hash.NewSet[PExp](4)
		vars []*Apply
	)
	//
	visit(e, func(e PExp) {
		if app, ok := e.(*Apply); ok && app.quant != None {
			v := app
			if !app.IsVariable() {
				v = newApply(app.name, Prefix, app.quant, immutable.Empty[PExp](), app.typ)
			}
			//
			if !seen.Insert(v) {
				vars = append(vars, v)
			}
		}
	})
	//
	return vars
}

// HasQuantifiedVariables determines whether any quantified variable occurs in
// e.
func HasQuantifiedVariables(e PExp) bool {
	return anyNode(e, func(e PExp) bool {
		app, ok := e.(*Apply)
		return ok && app.quant != None
	})
}

// ContainsExistential determines whether any existentially quantified variable
// occurs in e.
func ContainsExistential(e PExp) bool {
	return anyNode(e, func(e PExp) bool {
		app, ok := e.(*Apply)
		return ok && app.quant == Exists
	})
}

// ContainsName determines whether a symbol of a given name occurs in e.
func ContainsName(e PExp, name string) bool {
	return anyNode(e, func(e PExp) bool {
		app, ok := e.(*Apply)
		return ok && app.name.text == name
	})
}

// FunctionApplications returns every application of e with at least one
// argument, in pre-order.
func FunctionApplications(e PExp) []PExp {
	var apps []PExp
	//
	visit(e, func(e PExp) {
		if app, ok := e.(*Apply); ok && app.Arity() > 0 {
			apps = append(apps, e)
		}
	})
	//
	return apps
}

// FunctionApplicationCount returns the number of function applications in e.
func FunctionApplicationCount(e PExp) int {
	return len(FunctionApplications(e))
}

// IsObviouslyTrue determines whether e is literally true, or an equality
// between identical sides.
func IsObviouslyTrue(e PExp) bool {
	switch e := e.(type) {
	case *Apply:
		if e.IsVariable() {
			return strings.EqualFold(e.name.text, "true")
		}
		//
		lhs, rhs, ok := AsBinary(e, "=")
		//
		return ok && lhs.Equals(rhs)
	case *Lambda:
		return IsObviouslyTrue(e.body)
	default:
		return false
	}
}

// IsLiteralTrue determines whether e is the symbol true.
func IsLiteralTrue(e PExp) bool {
	app, ok := e.(*Apply)
	return ok && app.IsVariable() && app.quant == None && app.name.text == "true"
}

// IsLiteralFalse determines whether e is the symbol false.
func IsLiteralFalse(e PExp) bool {
	app, ok := e.(*Apply)
	return ok && app.IsVariable() && app.quant == None && app.name.text == "false"
}

// visit every node of e in pre-order.
func visit(e PExp, fn func(PExp)) {
	fn(e)
	//
	for it := e.SubExpressions().Iter(); it.HasNext(); {
		visit(it.Next(), fn)
	}
}

// anyNode determines whether some node of e satisfies a predicate.
func anyNode(e PExp, predicate func(PExp) bool) bool {
	if predicate(e) {
		return true
	}
	//
	for it := e.SubExpressions().Iter(); it.HasNext(); {
		if anyNode(it.Next(), predicate) {
			return true
		}
	}
	//
	return false
}
