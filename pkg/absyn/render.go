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
)

// render an expression as text.  Nested infix applications are parenthesised,
// whilst the outermost one is not.
func render(e PExp) string {
	var builder strings.Builder
	//
	writeExp(&builder, e, false)
	//
	return builder.String()
}

func writeExp(builder *strings.Builder, e PExp, nested bool) {
	switch e := e.(type) {
	case *Apply:
		writeApply(builder, e, nested)
	case *Alternatives:
		builder.WriteString("{{")
		//
		for _, a := range e.alternatives {
			builder.WriteString(" ")
			writeExp(builder, a.Result, false)
			builder.WriteString(" if ")
			writeExp(builder, a.Condition, false)
			builder.WriteString(";")
		}
		//
		builder.WriteString(" ")
		writeExp(builder, e.otherwise, false)
		builder.WriteString(" otherwise; }}")
	case *Lambda:
		builder.WriteString("lambda(")
		//
		for i, p := range e.params {
			if i != 0 {
				builder.WriteString(", ")
			}
			//
			builder.WriteString(p.Name)
			builder.WriteString(": ")
			builder.WriteString(p.Type.String())
		}
		//
		builder.WriteString(").(")
		writeExp(builder, e.body, false)
		builder.WriteString(")")
	default:
		panic("unknown expression")
	}
}

func writeApply(builder *strings.Builder, e *Apply, nested bool) {
	name := e.name.text
	//
	if e.IsVariable() {
		builder.WriteString(name)
		return
	}
	//
	switch e.fixity {
	case Infix:
		if nested {
			builder.WriteString("(")
		}
		//
		writeArgs(builder, e, " "+name+" ", true)
		//
		if nested {
			builder.WriteString(")")
		}
	case Outfix:
		left, right := outfixDelimiters(name)
		builder.WriteString(left)
		writeArgs(builder, e, ", ", false)
		builder.WriteString(right)
	case Postfix:
		writeArgs(builder, e, ", ", true)
		builder.WriteString(name)
	default:
		builder.WriteString(name)
		// Unary symbolic operators, such as #x, need no brackets
		if e.Arity() == 1 && isSymbolic(name) && isAtomic(e.args.Get(0)) {
			writeExp(builder, e.args.Get(0), true)
			return
		}
		//
		builder.WriteString("(")
		writeArgs(builder, e, ", ", false)
		builder.WriteString(")")
	}
}

// writeArgs writes the arguments of an application, emitting a separator
// between each.
func writeArgs(builder *strings.Builder, e *Apply, separator string, nested bool) {
	for i, it := 0, e.args.Iter(); it.HasNext(); i++ {
		if i != 0 {
			builder.WriteString(separator)
		}
		//
		writeExp(builder, it.Next(), nested)
	}
}

func isAtomic(e PExp) bool {
	app, ok := e.(*Apply)
	return ok && app.IsVariable()
}

func isSymbolic(name string) bool {
	for _, r := range name {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_' {
			return false
		}
	}
	//
	return true
}
