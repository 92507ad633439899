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
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/consensys/go-resolve/pkg/absyn"
	"github.com/consensys/go-resolve/pkg/prover/model"
	"github.com/consensys/go-resolve/pkg/prover/transform"
	"github.com/consensys/go-resolve/pkg/util"
	"github.com/consensys/go-resolve/pkg/util/collection/immutable"
	log "github.com/sirupsen/logrus"
)

// Prover attempts to prove verification conditions against a fixed library of
// theorems.  The search for each condition proceeds in phases: first the
// antecedent is developed with facts derived from the library; then the
// consequent is minimised by rewrites which shrink it; finally, a bounded
// depth-first search over rewrites of the consequent is performed, most
// promising first.  A single prover can be used from many goroutines at once.
type Prover struct {
	config  Config
	builder *absyn.Builder
	library immutable.List[*model.Theorem]
	// Transformations which develop the antecedent
	developers []transform.Transformation
	// Transformations which shrink the consequent without strengthening it
	minimisers []transform.Transformation
	// Transformations which discharge parts of the consequent
	dischargers []transform.Transformation
	// Transformations which rewrite the consequent
	rewriters []transform.Transformation
	logger    *log.Entry
}

// NewProver constructs a prover for a given library of theorems.
func NewProver(config Config, builder *absyn.Builder, library []*model.Theorem, logger *log.Entry) *Prover {
	p := &Prover{
		config:      config,
		builder:     builder,
		library:     immutable.New(library...),
		dischargers: []transform.Transformation{transform.ReplaceLocalTheoremsInConsequentWithTrue},
		logger:      logger,
	}
	//
	for _, theorem := range library {
		for _, t := range transform.FromTheorem(theorem) {
			switch {
			case isDischarge(t):
				p.dischargers = append(p.dischargers, t)
			case t.CouldAffectAntecedent():
				p.developers = append(p.developers, t)
			default:
				if t.Equivalence() == transform.Equivalent && t.FunctionApplicationCountDelta() < 0 {
					p.minimisers = append(p.minimisers, t)
				}
				//
				p.rewriters = append(p.rewriters, t)
			}
		}
	}
	//
	p.dischargers = append(p.dischargers, transform.EliminateTrue)
	//
	return p
}

// Config returns the configuration of this prover.
func (p *Prover) Config() Config {
	return p.config
}

// Prove attempts to prove a single condition.  Running out of time or steps is
// not an error, but simply yields an unproved result.
func (p *Prover) Prove(ctx context.Context, vc VC) Result {
	var (
		stats  = util.NewPerfStats()
		m      = model.NewModel(vc.Name, p.builder, p.library, vc.Antecedents, vc.Consequents)
		s      = newSearch(ctx, p, m)
		before = m.String()
	)
	//
	s.run()
	//
	result := s.result(before)
	p.logger.Debugf("vc %s: proved=%t after %d candidates (%d steps)", vc.Name, result.Proved, result.Attempted,
		result.Steps())
	stats.Log(fmt.Sprintf("Proving %s", vc.Name))
	//
	return result
}

// ProveAll attempts to prove a number of conditions in parallel, returning
// their results in the same order.
func (p *Prover) ProveAll(ctx context.Context, vcs []VC) ([]Result, error) {
	return util.ParMap(ctx, p.config.Workers, vcs, func(ctx context.Context, vc VC) (Result, error) {
		return p.Prove(ctx, vc), nil
	})
}

// ============================================================================
// Search
// ============================================================================

// search holds the state of an attempt to prove a single condition.
type search struct {
	prover *Prover
	model  *model.Model
	budget *Budget
	// hashes of states already reached
	visited map[uint64]struct{}
	// state of the model after each step
	states map[*model.Step]string
	// longest sequence of steps reached so far
	deepest []ProofLine
	// proof length at the end of each phase, or -1 if not reached
	developed int
	minimised int
}

func newSearch(ctx context.Context, p *Prover, m *model.Model) *search {
	return &search{
		prover:    p,
		model:     m,
		budget:    NewBudget(ctx, p.config),
		visited:   make(map[uint64]struct{}),
		states:    make(map[*model.Step]string),
		developed: -1,
		minimised: -1,
	}
}

func (s *search) run() {
	if s.model.IsProved() {
		return
	}
	//
	s.visited[s.model.StateHash()] = struct{}{}
	// Develop antecedent
	for i := uint(0); i < s.prover.config.DevelopmentRounds && !s.stopped(); i++ {
		s.propagate()
		s.develop()
	}
	//
	s.propagate()
	s.developed = int(s.model.ProofLength())
	// Minimise consequent
	for !s.stopped() && s.applyFirst(s.prover.minimisers, false) {
	}
	//
	s.simplify()
	s.minimised = int(s.model.ProofLength())
	//
	if !s.model.IsProved() {
		s.search(0)
	}
}

func (s *search) stopped() bool {
	return s.budget.Exhausted()
}

// propagate substitutes variables defined by local equalities into the
// consequent.
func (s *search) propagate() {
	for !s.stopped() && s.applyFirst(propagations(s.model), false) {
	}
}

// develop the antecedent by one level, adding whatever new facts follow from
// the local theorems as they stand.
func (s *search) develop() {
	for _, t := range s.prover.developers {
		for it := t.Applications(s.model); it.HasNext() && !s.stopped(); {
			if app := it.Next(); s.isCurrent(app) {
				s.try(app, true)
			}
		}
	}
}

// simplify discharges whatever parts of the consequent are already known,
// without any choice being involved.
func (s *search) simplify() {
	for s.applyFirst(s.prover.dischargers, false) {
	}
}

// search for a proof by rewriting the consequent, most promising rewrites
// first.
func (s *search) search(depth uint) bool {
	if s.model.IsProved() {
		return true
	} else if depth >= s.prover.config.MaxDepth {
		return false
	}
	//
	for _, t := range s.candidates() {
		for it := t.Applications(s.model); it.HasNext(); {
			if s.stopped() {
				return false
			}
			//
			mark := s.model.ProofLength()
			//
			if !s.try(it.Next(), false) {
				continue
			}
			//
			s.simplify()
			//
			if s.search(depth + 1) {
				return true
			}
			// Backtrack
			for s.model.ProofLength() > mark {
				s.undo()
			}
		}
	}
	//
	return false
}

// candidates returns the rewrites applicable in the current state, ordered by
// fitness.
func (s *search) candidates() []transform.Transformation {
	candidates := slices.Clone(s.prover.rewriters)
	//
	for _, t := range s.model.LocalTheorems() {
		candidates = append(candidates, transform.FromLocalTheorem(t)...)
	}
	//
	candidates = append(candidates, transform.InstantiateExistential)
	fitness := make(map[transform.Transformation]int, len(candidates))
	//
	for _, t := range candidates {
		fitness[t] = transform.Fitness(s.model, t)
	}
	//
	slices.SortStableFunc(candidates, func(l, r transform.Transformation) int {
		return cmp.Compare(fitness[l], fitness[r])
	})
	//
	return candidates
}

// applyFirst applies the first acceptable application of any of the given
// transformations, returning true if there was one.
func (s *search) applyFirst(transformations []transform.Transformation, filter bool) bool {
	for _, t := range transformations {
		for it := t.Applications(s.model); it.HasNext(); {
			if s.try(it.Next(), filter) {
				return true
			} else if s.stopped() {
				return false
			}
		}
	}
	//
	return false
}

// try applying a candidate, keeping it only if it reaches a new state and
// (when filtering) passes the acceptance test.  Only developments of the
// antecedent are filtered.
func (s *search) try(app transform.Application, filter bool) bool {
	if s.budget.RecordStep() != nil {
		return false
	}
	//
	step := app.Apply(s.model)
	hash := s.model.StateHash()
	//
	if _, ok := s.visited[hash]; ok || (filter && !transform.AddsSomethingNew(s.model, step)) {
		s.prover.logger.Tracef("vc %s: rejected %s", s.model.Name(), step)
		s.model.UndoLastProofStep()
		//
		return false
	}
	//
	s.visited[hash] = struct{}{}
	s.states[step] = s.model.String()
	s.prover.logger.Debugf("vc %s: step %d %s", s.model.Name(), s.model.ProofLength(), step)
	//
	if n := int(s.model.ProofLength()); n > len(s.deepest) {
		s.deepest = s.trail()
	}
	//
	return true
}

// trail returns the steps leading to the current state of the model.
func (s *search) trail() []ProofLine {
	steps := s.model.ProofSteps()
	lines := make([]ProofLine, len(steps))
	//
	for i, step := range steps {
		lines[i] = ProofLine{Applied: step.Origin().String(), State: s.states[step]}
	}
	//
	return lines
}

func (s *search) undo() {
	delete(s.states, s.model.LastProofStep())
	s.model.UndoLastProofStep()
}

// isCurrent checks that an application was derived from the model as it
// stands.
func (s *search) isCurrent(app transform.Application) bool {
	for _, site := range app.InvolvedSites() {
		if c := site.Conjunct(); site.IsStale() || (!c.IsLibraryTheorem() && !s.model.HasConjunct(c)) {
			return false
		}
	}
	//
	return true
}

func (s *search) result(initial string) Result {
	r := Result{
		Name:      s.model.Name(),
		Proved:    s.model.IsProved(),
		Duration:  s.budget.Elapsed(),
		Initial:   initial,
		Attempted: s.budget.Steps(),
	}
	//
	if !r.Proved {
		r.Reason = s.budget.ExhaustedBy()
		r.Proof = s.deepest
		//
		return r
	}
	//
	var (
		steps    = s.model.ProofSteps()
		position = make(map[*model.Step]int, len(steps))
		labels   = []struct {
			at   int
			text string
		}{{s.developed, DevelopedLabel}, {s.minimised, MinimisedLabel}}
	)
	//
	for i, step := range steps {
		position[step] = i
	}
	//
	for _, step := range s.model.ProductiveProofSteps() {
		i := position[step]
		//
		for len(labels) > 0 && labels[0].at >= 0 && labels[0].at <= i {
			r.Proof = append(r.Proof, ProofLine{Label: labels[0].text})
			labels = labels[1:]
		}
		//
		r.Proof = append(r.Proof, ProofLine{Applied: step.Origin().String(), State: s.states[step]})
		//
		if s.minimised >= 0 && i >= s.minimised && !isDischarge(step.Origin()) {
			r.SearchSteps++
		}
	}
	// Labels for phases which produced nothing
	for _, label := range labels {
		if label.at >= 0 {
			r.Proof = append(r.Proof, ProofLine{Label: label.text})
		}
	}
	//
	return r
}

// ============================================================================
// Helpers
// ============================================================================

// propagations returns substitutions of variables defined by local equalities,
// such as "x = f(y)", into the consequent.
func propagations(m *model.Model) []transform.Transformation {
	var ts []transform.Transformation
	//
	for _, t := range m.LocalTheorems() {
		lhs, rhs, ok := absyn.AsBinary(t.Expression(), "=")
		//
		if !ok || lhs.Equals(rhs) {
			continue
		} else if isDefinedBy(lhs, rhs) {
			ts = append(ts, transform.NewPropagateInConsequent(t, lhs, rhs))
		} else if isDefinedBy(rhs, lhs) {
			ts = append(ts, transform.NewPropagateInConsequent(t, rhs, lhs))
		}
	}
	//
	return ts
}

func isDefinedBy(variable absyn.PExp, definition absyn.PExp) bool {
	return absyn.IsVariableSymbol(variable) && !absyn.ContainsName(definition, variable.(*absyn.Apply).Name().Text())
}

func isDischarge(origin any) bool {
	switch origin.(type) {
	case *transform.EliminateTrueConjunctInConsequent, *transform.ReplaceTheoremInConsequentWithTrue:
		return true
	default:
		return false
	}
}
