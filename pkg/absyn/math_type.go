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

// MathType is the mathematical type attached to every expression.  Only the
// structure needed for matching is retained: a name, and an optional supertype
// through which subset relationships are decided.
type MathType struct {
	name  string
	super *MathType
}

var (
	// Entity is the universal type, of which every other type is a subset.
	Entity = &MathType{"Entity", nil}
	// Boolean is the type of propositions.
	Boolean = &MathType{"B", Entity}
	// Integer is the type of (mathematical) integers.
	Integer = &MathType{"Z", Entity}
	// Natural is the type of natural numbers, a subset of the integers.
	Natural = &MathType{"N", Integer}
)

// NewMathType constructs a named type whose supertype is Entity.
func NewMathType(name string) *MathType {
	return &MathType{name, Entity}
}

// NewSubType constructs a named type which is a subset of a given type.
func NewSubType(name string, super *MathType) *MathType {
	return &MathType{name, super}
}

// Name returns the name of this type.
func (p *MathType) Name() string {
	return p.name
}

// IsSubtypeOf determines whether every value of this type is a value of the
// other.  Types are compared by name, so that equally named types from
// different files agree.
func (p *MathType) IsSubtypeOf(other *MathType) bool {
	for t := p; t != nil; t = t.super {
		if t.name == other.name {
			return true
		}
	}
	//
	return other.name == Entity.name
}

func (p *MathType) String() string {
	return p.name
}
