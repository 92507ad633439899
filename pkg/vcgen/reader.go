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
	"github.com/consensys/go-resolve/pkg/absyn"
	"github.com/consensys/go-resolve/pkg/util/source"
	"github.com/consensys/go-resolve/pkg/util/source/sexp"
)

// ReadModules reads concepts and realizations from a file of forms such as:
//
//	(concept Counter_Template
//	  (requires (> Max 0))
//	  (type-family Counter (exemplar C) (model N) (constraint (<= C Max))
//	    (initialization (ensures (= C 0)))))
//
//	(realization Array_Realiz (implements Counter_Template)
//	  (type-rep Counter (rep Rec) (convention true) (correspondence (= Conc.C Rec.n))
//	    (initialization (vars (i Integer)) (assume (= Rec.n 0)))))
//
// Each declaration is a list whose head names its kind, and whose clauses are
// lists headed by the clause name.
func ReadModules(builder *absyn.Builder, srcfile *source.File) ([]*Module, []source.SyntaxError) {
	terms, srcmap, err := sexp.ParseAll(srcfile)
	if err != nil {
		return nil, []source.SyntaxError{*err}
	}
	//
	r := &moduleReader{absyn.NewReader(builder, srcfile, srcmap), nil}
	modules := make([]*Module, 0, len(terms))
	//
	for _, term := range terms {
		if m := r.readModule(term); m != nil {
			modules = append(modules, m)
		}
	}
	//
	return modules, r.errors
}

// moduleReader accumulates errors whilst reading, so that as many as possible
// are reported at once.
type moduleReader struct {
	reader *absyn.Reader
	errors []source.SyntaxError
}

func (r *moduleReader) error(s sexp.SExp, msg string) {
	r.errors = append(r.errors, r.reader.SyntaxErrors(s, msg)...)
}

func (r *moduleReader) readModule(s sexp.SExp) *Module {
	l := s.AsList()
	//
	if l == nil || l.Len() < 2 || l.Get(1).AsSymbol() == nil {
		r.error(s, "expected (concept name ...) or (realization name ...)")
		return nil
	}
	//
	m := &Module{Name: l.Get(1).AsSymbol().Value}
	//
	switch l.Head() {
	case "concept":
		m.Kind = Concept
		r.readClauses(l, 2, map[string]func(*sexp.List){
			"requires":     func(c *sexp.List) { m.Requires = append(m.Requires, r.readExps(c, 1)...) },
			"constraint":   func(c *sexp.List) { m.Constraints = append(m.Constraints, r.readExps(c, 1)...) },
			"shared-state": func(c *sexp.List) { m.Declarations = appendNonNil(m.Declarations, r.readSharedState(c)) },
			"type-family":  func(c *sexp.List) { m.Declarations = appendNonNil(m.Declarations, r.readTypeFamily(c)) },
		})
	case "realization":
		m.Kind = Realization
		r.readClauses(l, 2, map[string]func(*sexp.List){
			"implements": func(c *sexp.List) { m.Implements = r.readName(c) },
			"requires":   func(c *sexp.List) { m.Requires = append(m.Requires, r.readExps(c, 1)...) },
			"shared-rep": func(c *sexp.List) { m.Declarations = appendNonNil(m.Declarations, r.readSharedRep(c)) },
			"type-rep":   func(c *sexp.List) { m.Declarations = appendNonNil(m.Declarations, r.readTypeRep(c)) },
			"facility":   func(c *sexp.List) { m.Declarations = appendNonNil(m.Declarations, r.readFacility(c)) },
		})
	default:
		r.error(s, "unknown module kind")
		return nil
	}
	//
	return m
}

// ============================================================================
// Concept declarations
// ============================================================================

func (r *moduleReader) readSharedState(l *sexp.List) Declaration {
	if l.Len() < 2 || l.Get(1).AsSymbol() == nil {
		r.error(l, "expected (shared-state name ...)")
		return nil
	}
	//
	dec := &SharedState{Name: l.Get(1).AsSymbol().Value}
	//
	r.readClauses(l, 2, map[string]func(*sexp.List){
		"vars":       func(c *sexp.List) { dec.Vars = r.readMathVars(c) },
		"constraint": func(c *sexp.List) { dec.Constraint = r.readExp(c) },
	})
	//
	return dec
}

func (r *moduleReader) readTypeFamily(l *sexp.List) Declaration {
	if l.Len() < 2 || l.Get(1).AsSymbol() == nil {
		r.error(l, "expected (type-family name ...)")
		return nil
	}
	//
	dec := &TypeFamily{Name: l.Get(1).AsSymbol().Value, Model: absyn.Entity}
	//
	r.readClauses(l, 2, map[string]func(*sexp.List){
		"exemplar":        func(c *sexp.List) { dec.Exemplar = r.readName(c) },
		"model":           func(c *sexp.List) { dec.Model = r.readType(c) },
		"constraint":      func(c *sexp.List) { dec.Constraint = r.readExp(c) },
		"definition-vars": func(c *sexp.List) { dec.DefinitionVars = r.readMathVars(c) },
		"initialization":  func(c *sexp.List) { dec.Initialization = r.readSpecItem(c) },
		"finalization":    func(c *sexp.List) { dec.Finalization = r.readSpecItem(c) },
	})
	//
	if dec.Exemplar == "" {
		r.error(l, "missing exemplar")
	}
	//
	return dec
}

func (r *moduleReader) readSpecItem(l *sexp.List) SpecItem {
	var item SpecItem
	//
	r.readClauses(l, 1, map[string]func(*sexp.List){
		"affects": func(c *sexp.List) { item.Affects = r.readNames(c) },
		"ensures": func(c *sexp.List) { item.Ensures = r.readExp(c) },
	})
	//
	return item
}

// ============================================================================
// Realization declarations
// ============================================================================

func (r *moduleReader) readSharedRep(l *sexp.List) Declaration {
	if l.Len() < 2 || l.Get(1).AsSymbol() == nil {
		r.error(l, "expected (shared-rep name ...)")
		return nil
	}
	//
	dec := &SharedStateRealization{Name: l.Get(1).AsSymbol().Value}
	//
	r.readClauses(l, 2, map[string]func(*sexp.List){
		"convention":     func(c *sexp.List) { dec.Convention = r.readExp(c) },
		"correspondence": func(c *sexp.List) { dec.Correspondence = r.readExp(c) },
	})
	//
	return dec
}

func (r *moduleReader) readTypeRep(l *sexp.List) Declaration {
	if l.Len() < 2 || l.Get(1).AsSymbol() == nil {
		r.error(l, "expected (type-rep name ...)")
		return nil
	}
	//
	dec := &TypeRepresentation{Name: l.Get(1).AsSymbol().Value}
	//
	r.readClauses(l, 2, map[string]func(*sexp.List){
		"rep":            func(c *sexp.List) { dec.Representation = r.readName(c) },
		"convention":     func(c *sexp.List) { dec.Convention = r.readExp(c) },
		"correspondence": func(c *sexp.List) { dec.Correspondence = r.readExp(c) },
		"initialization": func(c *sexp.List) { dec.Initialization = r.readCodeItem(c) },
		"finalization":   func(c *sexp.List) { dec.Finalization = r.readCodeItem(c) },
	})
	//
	return dec
}

func (r *moduleReader) readFacility(l *sexp.List) Declaration {
	if l.Len() < 2 || l.Get(1).AsSymbol() == nil {
		r.error(l, "expected (facility name ...)")
		return nil
	}
	//
	dec := &Facility{Name: l.Get(1).AsSymbol().Value}
	//
	r.readClauses(l, 2, map[string]func(*sexp.List){
		"concept": func(c *sexp.List) { dec.Concept = r.readName(c) },
		"shared-state": func(c *sexp.List) {
			if s, ok := r.readSharedState(c).(*SharedState); ok {
				dec.SharedStates = append(dec.SharedStates, s)
			}
		},
		"type-family": func(c *sexp.List) {
			if t, ok := r.readTypeFamily(c).(*TypeFamily); ok {
				dec.Types = append(dec.Types, t)
			}
		},
	})
	//
	return dec
}

func (r *moduleReader) readCodeItem(l *sexp.List) CodeItem {
	var item CodeItem
	//
	r.readClauses(l, 1, map[string]func(*sexp.List){
		"affects": func(c *sexp.List) { item.Affects = r.readNames(c) },
		"vars":    func(c *sexp.List) { item.Variables = r.readProgramVars(c) },
		"assume": func(c *sexp.List) {
			item.Statements = append(item.Statements, &Assume{conjoin(nil, r.readExp(c), "Assume Statement"), false})
		},
		"confirm": func(c *sexp.List) {
			item.Statements = append(item.Statements, NewConfirm(conjoin(nil, r.readExp(c), "Confirm Statement")))
		},
	})
	//
	return item
}

// ============================================================================
// Helpers
// ============================================================================

// readClauses dispatches each clause of a list, from a given index, on its
// head.
func (r *moduleReader) readClauses(l *sexp.List, from int, handlers map[string]func(*sexp.List)) {
	for _, e := range l.Elements[from:] {
		c := e.AsList()
		//
		if c == nil {
			r.error(e, "expected clause")
		} else if handler, ok := handlers[c.Head()]; !ok {
			r.error(e, "unknown clause")
		} else {
			handler(c)
		}
	}
}

// readName reads a clause of the form (clause name).
func (r *moduleReader) readName(l *sexp.List) string {
	if l.Len() != 2 || l.Get(1).AsSymbol() == nil {
		r.error(l, "expected a name")
		return ""
	}
	//
	return l.Get(1).AsSymbol().Value
}

// readNames reads a clause of the form (clause name...).
func (r *moduleReader) readNames(l *sexp.List) []string {
	var names []string
	//
	for _, e := range l.Elements[1:] {
		if s := e.AsSymbol(); s == nil {
			r.error(e, "expected a name")
		} else {
			names = append(names, s.Value)
		}
	}
	//
	return names
}

// readType reads a clause of the form (clause type).
func (r *moduleReader) readType(l *sexp.List) *absyn.MathType {
	if name := r.readName(l); name != "" {
		return r.typeOf(name)
	}
	//
	return absyn.Entity
}

func (r *moduleReader) typeOf(name string) *absyn.MathType {
	switch name {
	case "B":
		return absyn.Boolean
	case "Z":
		return absyn.Integer
	case "N":
		return absyn.Natural
	}
	//
	return r.reader.TypeOf(name)
}

// readMathVars reads a clause of the form (clause (name type)...).
func (r *moduleReader) readMathVars(l *sexp.List) []MathVar {
	var vars []MathVar
	//
	for _, e := range l.Elements[1:] {
		if name, typ, ok := r.readTyped(e); ok {
			vars = append(vars, MathVar{name, r.typeOf(typ)})
		}
	}
	//
	return vars
}

// readProgramVars reads a clause of the form (clause (name type)...).
func (r *moduleReader) readProgramVars(l *sexp.List) []ProgramVar {
	var vars []ProgramVar
	//
	for _, e := range l.Elements[1:] {
		if name, typ, ok := r.readTyped(e); ok {
			vars = append(vars, ProgramVar{name, typ})
		}
	}
	//
	return vars
}

func (r *moduleReader) readTyped(e sexp.SExp) (string, string, bool) {
	l := e.AsList()
	//
	if l == nil || l.Len() != 2 || l.Get(0).AsSymbol() == nil || l.Get(1).AsSymbol() == nil {
		r.error(e, "expected (name type)")
		return "", "", false
	}
	//
	return l.Get(0).AsSymbol().Value, l.Get(1).AsSymbol().Value, true
}

// readExp reads a clause of the form (clause exp).
func (r *moduleReader) readExp(l *sexp.List) absyn.PExp {
	if l.Len() != 2 {
		r.error(l, "expected a single expression")
		return nil
	}
	//
	exp, errs := r.reader.Read(l.Get(1))
	r.errors = append(r.errors, errs...)
	//
	return exp
}

// readExps reads a clause of the form (clause exp...).
func (r *moduleReader) readExps(l *sexp.List, from int) []absyn.PExp {
	exps, errs := r.reader.ReadAll(l.Elements[from:])
	r.errors = append(r.errors, errs...)
	//
	return exps
}

func appendNonNil(decls []Declaration, dec Declaration) []Declaration {
	if dec == nil {
		return decls
	}
	//
	return append(decls, dec)
}
