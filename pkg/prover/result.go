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
	"time"

	"github.com/consensys/go-resolve/pkg/absyn"
)

const (
	// DevelopedLabel marks the end of antecedent development in a proof.
	DevelopedLabel = "--- Done Developing Antecedent ---"
	// MinimisedLabel marks the end of consequent minimisation in a proof.
	MinimisedLabel = "--- Done Minimizing Consequent ---"
)

// VC is a verification condition to be proved: the conjunction of its
// antecedents must imply the conjunction of its consequents.
type VC struct {
	Name        string
	Antecedents []absyn.PExp
	Consequents []absyn.PExp
}

// ProofLine is one line of a proof, which is either a label separating the
// phases of the search or a step.
type ProofLine struct {
	// Label is non-empty for a label.
	Label string
	// Applied describes the transformation applied.
	Applied string
	// State is the state of the model after the step.
	State string
}

// Result records the outcome of trying to prove a single condition.
type Result struct {
	Name   string
	Proved bool
	// Duration is the time spent on this condition.
	Duration time.Duration
	// Initial is the state of the model before any steps.
	Initial string
	// Proof holds the productive steps of a successful proof or, for an
	// unproved condition, the deepest sequence of steps explored.
	Proof []ProofLine
	// SearchSteps counts the steps of the proof taken by the main search,
	// excluding those which simply discharge true conjuncts.
	SearchSteps uint
	// Attempted counts all candidate steps tried.
	Attempted int64
	// Reason explains why an unproved condition was abandoned.  This is nil
	// when the search space was exhausted.
	Reason error
}

// Steps returns the number of steps in the proof (or trail), excluding labels.
func (r *Result) Steps() uint {
	count := uint(0)
	//
	for _, line := range r.Proof {
		if line.Label == "" {
			count++
		}
	}
	//
	return count
}

// IsTrivial determines whether this condition was proved without any steps.
func (r *Result) IsTrivial() bool {
	return r.Proved && r.Steps() == 0
}
