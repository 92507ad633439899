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
	"fmt"
	"slices"

	"github.com/consensys/go-resolve/pkg/absyn"
)

// conc is the qualifier of the conceptual (abstract) value of a variable.
const conc = "Conc"

// conceptual records in a substitution that a variable, and its incoming
// value, should be replaced by their conceptual versions.
func conceptual(builder *absyn.Builder, subs *absyn.Substitution, v MathVar) {
	var (
		variable   = builder.Symbol(v.Name, v.Type)
		conceptual = builder.Qualified(conc, v.Name, v.Type)
	)
	//
	subs.Insert(variable, conceptual)
	subs.Insert(builder.Old(variable), builder.Old(conceptual))
}

// conceptualAffected records conceptual versions of those shared variables
// named in an affects clause.
func conceptualAffected(ctx *VerificationContext, subs *absyn.Substitution, affects []string) {
	for _, s := range ctx.SharedStates() {
		for _, v := range s.Vars {
			if slices.Contains(affects, v.Name) {
				conceptual(ctx.Builder(), subs, v)
			}
		}
	}
}

// withRestores adds to an ensures clause the condition that a variable is
// restored to its incoming value.  A trivially true ensures clause is replaced
// by this condition, rather than conjoined with it.
func withRestores(builder *absyn.Builder, ensures Assertions, variable absyn.PExp, detail string) Assertions {
	restores := Assertion{builder.Equal(variable, builder.Old(variable)), detail}
	//
	if ensures.IsTrue() {
		return Assertions{restores}
	}
	//
	return append(ensures, restores)
}

// nonAffectedRestores adds to the ensures clause of some declaration a
// restores condition for every shared variable and definition variable which
// its affects clause does not name.  The shared variables of the concept, and
// the definition variables of the given type family (if any), are then replaced
// by their conceptual versions.
func nonAffectedRestores(ctx *VerificationContext, declName string, ensures Assertions, family *TypeFamily,
	affects []string) Assertions {
	var (
		builder      = ctx.Builder()
		subs         = absyn.NewSubstitution()
		sharedDetail = fmt.Sprintf("Ensures Clause of %s (Condition from Non-Affected Shared Variable)", declName)
		defDetail    = fmt.Sprintf("Ensures Clause of %s (Condition from Non-Affected Definition Variable)", declName)
	)
	//
	for _, s := range ctx.SharedStates() {
		for _, v := range s.Vars {
			if !slices.Contains(affects, v.Name) {
				ensures = withRestores(builder, ensures, builder.Symbol(v.Name, v.Type), sharedDetail)
				conceptual(builder, subs, v)
			}
		}
	}
	//
	if family != nil {
		for _, v := range family.DefinitionVars {
			if !slices.Contains(affects, v.Name) {
				ensures = withRestores(builder, ensures, builder.Symbol(v.Name, v.Type), defDetail)
				conceptual(builder, subs, v)
			}
		}
	}
	// Facility variables are qualified by their facility
	for _, f := range ctx.Facilities() {
		for _, s := range f.SharedStates {
			for _, v := range s.Vars {
				if name := f.Name + "." + v.Name; !slices.Contains(affects, name) {
					ensures = withRestores(builder, ensures, builder.Qualified(f.Name, v.Name, v.Type), sharedDetail)
				}
			}
		}
		//
		for _, t := range f.Types {
			for _, v := range t.DefinitionVars {
				if name := f.Name + "." + v.Name; !slices.Contains(affects, name) {
					ensures = withRestores(builder, ensures, builder.Qualified(f.Name, v.Name, v.Type), defDetail)
				}
			}
		}
	}
	//
	return ensures.Substitute(subs)
}
