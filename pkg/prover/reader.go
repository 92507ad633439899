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
package prover

import (
	"github.com/consensys/go-resolve/pkg/absyn"
	"github.com/consensys/go-resolve/pkg/prover/model"
	"github.com/consensys/go-resolve/pkg/util/source"
	"github.com/consensys/go-resolve/pkg/util/source/sexp"
)

// ReadTheories reads a library of theorems from a file of forms such as:
//
//	(theorem plus_zero (forall (x) (= (+ x 0) x)))
func ReadTheories(builder *absyn.Builder, srcfile *source.File) ([]*model.Theorem, []source.SyntaxError) {
	var theorems []*model.Theorem
	//
	errs := readForms(builder, srcfile, "theorem", func(r *absyn.Reader, l *sexp.List) []source.SyntaxError {
		if l.Len() != 3 || l.Get(1).AsSymbol() == nil {
			return r.SyntaxErrors(l, "expected (theorem name expression)")
		}
		//
		exp, errs := r.Read(l.Get(2))
		if len(errs) == 0 {
			theorems = append(theorems, model.NewTheorem(l.Get(1).AsSymbol().Value, exp))
		}
		//
		return errs
	})
	//
	return theorems, errs
}

// ReadVCs reads verification conditions from a file of forms such as:
//
//	(vc 0_1 (given (< a b) (= c a)) (goal (< c b)))
func ReadVCs(builder *absyn.Builder, srcfile *source.File) ([]VC, []source.SyntaxError) {
	var vcs []VC
	//
	errs := readForms(builder, srcfile, "vc", func(r *absyn.Reader, l *sexp.List) []source.SyntaxError {
		if l.Len() != 4 || l.Get(1).AsSymbol() == nil {
			return r.SyntaxErrors(l, "expected (vc name (given ...) (goal ...))")
		}
		//
		given, errs1 := readSection(r, l.Get(2), "given")
		goal, errs2 := readSection(r, l.Get(3), "goal")
		//
		if errs := append(errs1, errs2...); len(errs) > 0 {
			return errs
		}
		//
		vcs = append(vcs, VC{l.Get(1).AsSymbol().Value, given, goal})
		//
		return nil
	})
	//
	return vcs, errs
}

func readForms(builder *absyn.Builder, srcfile *source.File, kind string,
	fn func(*absyn.Reader, *sexp.List) []source.SyntaxError) []source.SyntaxError {
	terms, srcmap, err := sexp.ParseAll(srcfile)
	if err != nil {
		return []source.SyntaxError{*err}
	}
	//
	var (
		reader = absyn.NewReader(builder, srcfile, srcmap)
		errors []source.SyntaxError
	)
	//
	for _, term := range terms {
		if l := term.AsList(); l == nil || l.Head() != kind {
			errors = append(errors, reader.SyntaxErrors(term, "expected ("+kind+" ...)")...)
		} else {
			errors = append(errors, fn(reader, l)...)
		}
	}
	//
	return errors
}

func readSection(r *absyn.Reader, s sexp.SExp, name string) ([]absyn.PExp, []source.SyntaxError) {
	l := s.AsList()
	//
	if l == nil || l.Head() != name {
		return nil, r.SyntaxErrors(s, "expected ("+name+" ...)")
	}
	//
	return r.ReadAll(l.Elements[1:])
}
