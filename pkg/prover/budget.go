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
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var (
	// ErrBudgetExhausted indicates that some limit has already been reached.
	ErrBudgetExhausted = errors.New("budget exhausted")
	// ErrTimeLimitExceeded indicates that the time limit was reached.
	ErrTimeLimitExceeded = errors.New("time limit exceeded")
	// ErrStepLimitExceeded indicates that the step limit was reached.
	ErrStepLimitExceeded = errors.New("step limit exceeded")
)

// Budget tracks the resources consumed whilst proving a single condition.
//
// Thread Safety: Safe for concurrent use.
type Budget struct {
	ctx       context.Context
	maxSteps  int64
	timeLimit time.Duration
	startTime time.Time
	// Atomic counters
	steps atomic.Int64
	// Exhaustion (protected by mu)
	mu          sync.RWMutex
	exhaustedBy error
}

// NewBudget creates a new budget tracker, whose clock starts now.  The budget
// is also exhausted when the given context is done.
func NewBudget(ctx context.Context, config Config) *Budget {
	return &Budget{
		ctx:       ctx,
		maxSteps:  int64(config.MaxSteps),
		timeLimit: config.Timeout,
		startTime: time.Now(),
	}
}

// Steps returns the number of candidate steps tried so far.
func (b *Budget) Steps() int64 {
	return b.steps.Load()
}

// RecordStep records that a candidate step is about to be tried, returning an
// error (and recording nothing) if the budget does not permit another step.
func (b *Budget) RecordStep() error {
	if err := b.checkLimits(); err != nil {
		return err
	}
	//
	b.steps.Add(1)
	//
	return nil
}

// Elapsed returns time elapsed since the budget was created.
func (b *Budget) Elapsed() time.Duration {
	return time.Since(b.startTime)
}

// Exhausted returns whether the budget has been exhausted, meaning no further
// step can be tried.
func (b *Budget) Exhausted() bool {
	return b.checkLimits() != nil
}

// ExhaustedBy returns the reason for exhaustion, or nil if the budget is not
// exhausted.
func (b *Budget) ExhaustedBy() error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	//
	return b.exhaustedBy
}

func (b *Budget) checkLimits() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	//
	switch {
	case b.exhaustedBy != nil:
		return ErrBudgetExhausted
	case b.ctx.Err() != nil:
		b.exhaustedBy = b.ctx.Err()
	case b.timeLimit > 0 && time.Since(b.startTime) >= b.timeLimit:
		b.exhaustedBy = ErrTimeLimitExceeded
	case b.maxSteps > 0 && b.steps.Load() >= b.maxSteps:
		b.exhaustedBy = ErrStepLimitExceeded
	}
	//
	return b.exhaustedBy
}
