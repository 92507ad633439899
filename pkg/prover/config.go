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
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"
)

// Config determines how hard the prover works on each verification condition.
type Config struct {
	// Timeout is the wall-clock limit for a single condition.
	Timeout time.Duration `yaml:"timeout"`
	// MaxSteps bounds the number of candidate steps tried for a single
	// condition, across all phases.
	MaxSteps uint `yaml:"max-steps"`
	// MaxDepth bounds the depth of the main search.
	MaxDepth uint `yaml:"max-depth"`
	// Workers is the number of conditions proved in parallel.
	Workers uint `yaml:"workers"`
	// DevelopmentRounds is the number of times the antecedent is developed
	// before the consequent is attacked.
	DevelopmentRounds uint `yaml:"development-rounds"`
	// SkipTrivial omits conditions proved without any steps from the detailed
	// part of a report.
	SkipTrivial bool `yaml:"skip-trivial"`
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		Timeout:           5 * time.Second,
		MaxSteps:          1000,
		MaxDepth:          8,
		Workers:           uint(runtime.NumCPU()),
		DevelopmentRounds: 3,
		SkipTrivial:       false,
	}
}

// LoadConfig reads a configuration from a YAML file.  Settings missing from the
// file keep their default values, whilst unknown settings are an error.
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()
	//
	f, err := os.Open(filename)
	if err != nil {
		return config, err
	}
	//
	defer f.Close()
	//
	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	//
	if err = decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return config, fmt.Errorf("%s: %w", filename, err)
	}
	//
	return config, config.Validate()
}

// Validate checks that a configuration makes sense.
func (c Config) Validate() error {
	switch {
	case c.Timeout <= 0:
		return fmt.Errorf("invalid timeout %s", c.Timeout)
	case c.MaxSteps == 0:
		return errors.New("max-steps must be positive")
	case c.Workers == 0:
		return errors.New("workers must be positive")
	}
	//
	return nil
}
