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
	"strings"

	"github.com/consensys/go-resolve/pkg/util/collection/immutable"
)

// Builder constructs expressions, interning their names through a given
// interner.
type Builder struct {
	interner *Interner
}

// NewBuilder constructs a builder over a fresh interner.
func NewBuilder() *Builder {
	return &Builder{NewInterner()}
}

// NewBuilderWith constructs a builder over a given interner.
func NewBuilderWith(interner *Interner) *Builder {
	return &Builder{interner}
}

// Interner returns the interner used by this builder.
func (b *Builder) Interner() *Interner {
	return b.interner
}

// Symbol constructs an (unquantified) symbol with no arguments.
func (b *Builder) Symbol(name string, typ *MathType) *Apply {
	return newApply(b.interner.Intern(name), Prefix, None, immutable.Empty[PExp](), typ)
}

// Var constructs a quantified variable.
func (b *Builder) Var(name string, typ *MathType, quant Quantification) *Apply {
	return newApply(b.interner.Intern(name), Prefix, quant, immutable.Empty[PExp](), typ)
}

// Apply constructs an application of a named function using its default
// fixity.
func (b *Builder) Apply(name string, typ *MathType, args ...PExp) *Apply {
	fixity := b.interner.FixityOf(name, len(args))
	return newApply(b.interner.Intern(name), fixity, None, immutable.New(args...), typ)
}

// ApplyWithFixity constructs an application with an explicit fixity.
func (b *Builder) ApplyWithFixity(name string, fixity Fixity, typ *MathType, args ...PExp) *Apply {
	return newApply(b.interner.Intern(name), fixity, None, immutable.New(args...), typ)
}

// Outfix constructs an outfix application, such as |x|, between a given pair
// of delimiters.
func (b *Builder) Outfix(left string, right string, typ *MathType, args ...PExp) *Apply {
	return b.ApplyWithFixity(left+"_"+right, Outfix, typ, args...)
}

// True returns the literal true.
func (b *Builder) True() *Apply {
	return b.Symbol("true", Boolean)
}

// False returns the literal false.
func (b *Builder) False() *Apply {
	return b.Symbol("false", Boolean)
}

// Equal constructs lhs = rhs.
func (b *Builder) Equal(lhs PExp, rhs PExp) *Apply {
	return b.Apply("=", Boolean, lhs, rhs)
}

// And constructs lhs and rhs.
func (b *Builder) And(lhs PExp, rhs PExp) *Apply {
	return b.Apply("and", Boolean, lhs, rhs)
}

// Implies constructs lhs implies rhs.
func (b *Builder) Implies(lhs PExp, rhs PExp) *Apply {
	return b.Apply("implies", Boolean, lhs, rhs)
}

// Not constructs not(e).
func (b *Builder) Not(e PExp) *Apply {
	return b.Apply("not", Boolean, e)
}

// Old constructs #e, the incoming value of e.
func (b *Builder) Old(e PExp) *Apply {
	return b.Apply("#", e.Type(), e)
}

// Qualified constructs the symbol for a qualified name such as Conc.x, or
// F.x.
func (b *Builder) Qualified(qualifier string, name string, typ *MathType) *Apply {
	return b.Symbol(qualifier+"."+name, typ)
}

// Alternatives constructs a guarded case expression.
func (b *Builder) Alternatives(alternatives []Alternative, otherwise PExp, typ *MathType) *Alternatives {
	if len(alternatives) == 0 {
		panic("alternatives requires at least one guarded case")
	}
	//
	return newAlternatives(append([]Alternative(nil), alternatives...), otherwise, typ)
}

// Lambda constructs an anonymous function.
func (b *Builder) Lambda(params []Parameter, body PExp, typ *MathType) *Lambda {
	return newLambda(append([]Parameter(nil), params...), body, typ)
}

// Conjoin combines zero or more expressions into a left-nested conjunction.
// The empty conjunction is true.
func (b *Builder) Conjoin(conjuncts ...PExp) PExp {
	if len(conjuncts) == 0 {
		return b.True()
	}
	//
	result := conjuncts[0]
	//
	for _, c := range conjuncts[1:] {
		result = b.And(result, c)
	}
	//
	return result
}

// ConjoinNonTrivial is Conjoin, except that literal true conjuncts are
// dropped.
func (b *Builder) ConjoinNonTrivial(conjuncts ...PExp) PExp {
	var nontrivial []PExp
	//
	for _, c := range conjuncts {
		if !IsLiteralTrue(c) {
			nontrivial = append(nontrivial, c)
		}
	}
	//
	return b.Conjoin(nontrivial...)
}

// ConjoinList is Conjoin over an immutable list.
func (b *Builder) ConjoinList(conjuncts immutable.List[PExp]) PExp {
	return b.Conjoin(conjuncts.ToArray()...)
}

// outfixDelimiters splits the canonical name of an outfix operator back into
// its left and right delimiters.
func outfixDelimiters(name string) (string, string) {
	if i := strings.Index(name, "_"); i >= 0 {
		return name[:i], name[i+1:]
	}
	//
	return name, name
}
