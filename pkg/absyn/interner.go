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
	"sync"

	"github.com/consensys/go-resolve/pkg/util/collection/hash"
)

// Fixity determines how an application is displayed.
type Fixity uint8

const (
	// Prefix displays as f(x, y).
	Prefix Fixity = iota
	// Infix displays as (x + y).
	Infix
	// Outfix displays as |x|.
	Outfix
	// Postfix displays as x'.
	Postfix
)

// Quantification records whether a symbol is a universally or existentially
// quantified variable.  Quantifiers have no node of their own: a variable is
// quantified over the whole of the top-level expression in which it occurs.
type Quantification uint8

const (
	// None indicates an ordinary (free) symbol.
	None Quantification = iota
	// ForAll indicates a universally quantified variable.
	ForAll
	// Exists indicates an existentially quantified variable.
	Exists
)

// Flipped returns the dual quantification, leaving None unchanged.
func (q Quantification) Flipped() Quantification {
	switch q {
	case ForAll:
		return Exists
	case Exists:
		return ForAll
	default:
		return None
	}
}

func (q Quantification) String() string {
	switch q {
	case ForAll:
		return "forall"
	case Exists:
		return "exists"
	default:
		return ""
	}
}

// Name is an interned symbol name.  Hashes are computed once, at interning
// time.
type Name struct {
	text string
	hash uint64
}

// Text returns the underlying text of this name.
func (p *Name) Text() string {
	return p.text
}

// Equals compares two names by text, so that names from different interners
// still agree.
func (p *Name) Equals(other *Name) bool {
	return p == other || p.text == other.text
}

func (p *Name) String() string {
	return p.text
}

// Interner owns the symbol names (and their default fixities) of a single run.
// It is safe for concurrent use, as provers working on different conditions
// share it.
type Interner struct {
	mu       sync.RWMutex
	names    map[string]*Name
	fixities map[string]Fixity
}

var defaultFixities = map[string]Fixity{
	"=": Infix, "/=": Infix, "<": Infix, "<=": Infix, ">": Infix, ">=": Infix,
	"+": Infix, "-": Infix, "*": Infix, "and": Infix, "or": Infix,
	"implies": Infix, "iff": Infix, "o": Infix, "is_in": Infix,
	"not": Prefix, "#": Prefix,
	"'": Postfix,
}

// NewInterner constructs an interner with the standard operator fixities.
func NewInterner() *Interner {
	fixities := make(map[string]Fixity, len(defaultFixities))
	for k, v := range defaultFixities {
		fixities[k] = v
	}
	//
	return &Interner{names: make(map[string]*Name), fixities: fixities}
}

// Intern returns the unique name record for a given text.
func (p *Interner) Intern(text string) *Name {
	p.mu.RLock()
	name, ok := p.names[text]
	p.mu.RUnlock()
	//
	if ok {
		return name
	}
	//
	p.mu.Lock()
	defer p.mu.Unlock()
	//
	if name, ok = p.names[text]; !ok {
		name = &Name{text, hash.StringKey(text).Hash()}
		p.names[text] = name
	}
	//
	return name
}

// SetFixity declares the default fixity of a given operator.
func (p *Interner) SetFixity(text string, fixity Fixity) {
	p.mu.Lock()
	defer p.mu.Unlock()
	//
	p.fixities[text] = fixity
}

// FixityOf returns the default fixity for a given operator applied to a given
// number of arguments.  Undeclared operators are prefix, and declared infix
// operators applied to anything other than two arguments fall back to prefix.
func (p *Interner) FixityOf(text string, arity int) Fixity {
	p.mu.RLock()
	fixity, ok := p.fixities[text]
	p.mu.RUnlock()
	//
	switch {
	case !ok:
		return Prefix
	case fixity == Infix && arity != 2:
		return Prefix
	case fixity == Postfix && arity != 1:
		return Prefix
	}
	//
	return fixity
}

// Size returns the number of names interned so far.
func (p *Interner) Size() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	//
	return len(p.names)
}
