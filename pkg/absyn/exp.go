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
	"sync/atomic"

	"github.com/consensys/go-resolve/pkg/util/collection/hash"
	"github.com/consensys/go-resolve/pkg/util/collection/immutable"
	"github.com/consensys/go-resolve/pkg/util/collection/set"
)

// PExp is an immutable mathematical expression used by the prover.  Nodes are
// shared freely between expressions, so a rewrite rebuilds only the path from
// the rewritten node up to the root.  Equality is structural, and ignores
// types.
type PExp interface {
	hash.Hasher[PExp]
	// Type returns the mathematical type of this expression.
	Type() *MathType
	// SubExpressions returns the immediate children of this expression, in
	// order.
	SubExpressions() immutable.List[PExp]
	// WithSubExpressions returns this expression with its children replaced.
	// The number of children must match.
	WithSubExpressions(immutable.List[PExp]) PExp
	// String renders this expression in a human-readable form.
	String() string
}

// ============================================================================
// Apply
// ============================================================================

// Apply is a symbol applied to zero or more arguments.  A symbol with no
// arguments is a constant or variable.
type Apply struct {
	name   *Name
	fixity Fixity
	quant  Quantification
	args   immutable.List[PExp]
	typ    *MathType
	hash   uint64
	// lazily computed symbol names
	symbols atomic.Pointer[set.SortedSet[string]]
}

func newApply(name *Name, fixity Fixity, quant Quantification, args immutable.List[PExp], typ *MathType) *Apply {
	hashes := make([]uint64, 0, args.Size()+1)
	hashes = append(hashes, uint64(quant))
	//
	for it := args.Iter(); it.HasNext(); {
		hashes = append(hashes, it.Next().Hash())
	}
	//
	return &Apply{
		name:   name,
		fixity: fixity,
		quant:  quant,
		args:   args,
		typ:    typ,
		hash:   hash.Combine(name.hash, hashes...),
	}
}

// Name returns the name of the applied symbol.
func (p *Apply) Name() *Name {
	return p.name
}

// Fixity returns the display fixity of this application.
func (p *Apply) Fixity() Fixity {
	return p.fixity
}

// Quantification returns the quantification of this symbol.
func (p *Apply) Quantification() Quantification {
	return p.quant
}

// Args returns the arguments of this application.
func (p *Apply) Args() immutable.List[PExp] {
	return p.args
}

// Arg returns the ith argument of this application.
func (p *Apply) Arg(i uint) PExp {
	return p.args.Get(i)
}

// Arity returns the number of arguments.
func (p *Apply) Arity() uint {
	return p.args.Size()
}

// IsVariable returns true for symbols without arguments.
func (p *Apply) IsVariable() bool {
	return p.args.Size() == 0
}

// IsQuantifiedVariable returns true for quantified symbols without arguments.
func (p *Apply) IsQuantifiedVariable() bool {
	return p.quant != None && p.args.Size() == 0
}

// Type returns the mathematical type of this application.
//
//nolint:revive
func (p *Apply) Type() *MathType {
	return p.typ
}

// SubExpressions returns the arguments of this application.
//
//nolint:revive
func (p *Apply) SubExpressions() immutable.List[PExp] {
	return p.args
}

// WithSubExpressions returns this application with different arguments.
//
//nolint:revive
func (p *Apply) WithSubExpressions(args immutable.List[PExp]) PExp {
	if args.Size() != p.args.Size() {
		panic("incorrect number of arguments")
	} else if args == p.args {
		return p
	}
	//
	return newApply(p.name, p.fixity, p.quant, args, p.typ)
}

// WithName returns this application with a different name and quantification.
func (p *Apply) WithName(name *Name, quant Quantification) *Apply {
	return newApply(name, p.fixity, quant, p.args, p.typ)
}

// WithQuantification returns this application with a different
// quantification.
func (p *Apply) WithQuantification(quant Quantification) *Apply {
	if quant == p.quant {
		return p
	}
	//
	return newApply(p.name, p.fixity, quant, p.args, p.typ)
}

// WithType returns this application with a different type.
func (p *Apply) WithType(typ *MathType) *Apply {
	return newApply(p.name, p.fixity, p.quant, p.args, typ)
}

// Equals compares the name, quantification and arguments of two applications.
//
//nolint:revive
func (p *Apply) Equals(other PExp) bool {
	o, ok := other.(*Apply)
	//
	switch {
	case !ok:
		return false
	case p == o:
		return true
	case p.hash != o.hash || p.quant != o.quant || !p.name.Equals(o.name):
		return false
	}
	//
	return immutable.Equal(p.args, o.args, PExp.Equals)
}

// Hash returns the structural hash of this application.
//
//nolint:revive
func (p *Apply) Hash() uint64 {
	return p.hash
}

//nolint:revive
func (p *Apply) String() string {
	return render(p)
}

// ============================================================================
// Alternatives
// ============================================================================

// Alternative is a single guarded case of an Alternatives expression.
type Alternative struct {
	Result    PExp
	Condition PExp
}

// Alternatives selects the result of the first alternative whose condition
// holds, or the otherwise result if none does.
type Alternatives struct {
	alternatives []Alternative
	otherwise    PExp
	typ          *MathType
	hash         uint64
}

const alternativesSeed = 0x616c74

func newAlternatives(alternatives []Alternative, otherwise PExp, typ *MathType) *Alternatives {
	hashes := make([]uint64, 0, 2*len(alternatives)+1)
	//
	for _, a := range alternatives {
		hashes = append(hashes, a.Result.Hash(), a.Condition.Hash())
	}
	//
	hashes = append(hashes, otherwise.Hash())
	//
	return &Alternatives{alternatives, otherwise, typ, hash.Combine(alternativesSeed, hashes...)}
}

// Alternatives returns the guarded cases, in order.
func (p *Alternatives) Alternatives() []Alternative {
	return p.alternatives
}

// Otherwise returns the result when no condition holds.
func (p *Alternatives) Otherwise() PExp {
	return p.otherwise
}

//nolint:revive
func (p *Alternatives) Type() *MathType {
	return p.typ
}

// SubExpressions flattens the alternatives into result / condition pairs,
// followed by the otherwise result.
//
//nolint:revive
func (p *Alternatives) SubExpressions() immutable.List[PExp] {
	items := make([]PExp, 0, 2*len(p.alternatives)+1)
	//
	for _, a := range p.alternatives {
		items = append(items, a.Result, a.Condition)
	}
	//
	return immutable.New(append(items, p.otherwise)...)
}

//nolint:revive
func (p *Alternatives) WithSubExpressions(items immutable.List[PExp]) PExp {
	if items.Size() != uint(2*len(p.alternatives)+1) {
		panic("incorrect number of alternatives")
	}
	//
	alternatives := make([]Alternative, len(p.alternatives))
	//
	for i := range alternatives {
		alternatives[i] = Alternative{items.Get(uint(2 * i)), items.Get(uint(2*i + 1))}
	}
	//
	return newAlternatives(alternatives, items.Get(items.Size()-1), p.typ)
}

//nolint:revive
func (p *Alternatives) Equals(other PExp) bool {
	o, ok := other.(*Alternatives)
	//
	switch {
	case !ok:
		return false
	case p == o:
		return true
	case p.hash != o.hash || len(p.alternatives) != len(o.alternatives):
		return false
	}
	//
	for i, a := range p.alternatives {
		b := o.alternatives[i]
		if !a.Result.Equals(b.Result) || !a.Condition.Equals(b.Condition) {
			return false
		}
	}
	//
	return p.otherwise.Equals(o.otherwise)
}

//nolint:revive
func (p *Alternatives) Hash() uint64 {
	return p.hash
}

//nolint:revive
func (p *Alternatives) String() string {
	return render(p)
}

// ============================================================================
// Lambda
// ============================================================================

// Parameter is a bound parameter of a lambda expression.
type Parameter struct {
	Name string
	Type *MathType
}

// Lambda is an anonymous function over one or more parameters.
type Lambda struct {
	params []Parameter
	body   PExp
	typ    *MathType
	hash   uint64
}

const lambdaSeed = 0x6c616d

func newLambda(params []Parameter, body PExp, typ *MathType) *Lambda {
	hashes := make([]uint64, 0, len(params)+1)
	//
	for _, p := range params {
		hashes = append(hashes, hash.StringKey(p.Name).Hash())
	}
	//
	hashes = append(hashes, body.Hash())
	//
	return &Lambda{params, body, typ, hash.Combine(lambdaSeed, hashes...)}
}

// Parameters returns the bound parameters of this lambda.
func (p *Lambda) Parameters() []Parameter {
	return p.params
}

// Body returns the body of this lambda.
func (p *Lambda) Body() PExp {
	return p.body
}

//nolint:revive
func (p *Lambda) Type() *MathType {
	return p.typ
}

//nolint:revive
func (p *Lambda) SubExpressions() immutable.List[PExp] {
	return immutable.Singleton(p.body)
}

//nolint:revive
func (p *Lambda) WithSubExpressions(items immutable.List[PExp]) PExp {
	if items.Size() != 1 {
		panic("lambda has exactly one subexpression")
	} else if items.Get(0) == p.body {
		return p
	}
	//
	return newLambda(p.params, items.Get(0), p.typ)
}

//nolint:revive
func (p *Lambda) Equals(other PExp) bool {
	o, ok := other.(*Lambda)
	//
	switch {
	case !ok:
		return false
	case p == o:
		return true
	case p.hash != o.hash || len(p.params) != len(o.params):
		return false
	}
	//
	for i, param := range p.params {
		if param.Name != o.params[i].Name {
			return false
		}
	}
	//
	return p.body.Equals(o.body)
}

//nolint:revive
func (p *Lambda) Hash() uint64 {
	return p.hash
}

//nolint:revive
func (p *Lambda) String() string {
	return render(p)
}
