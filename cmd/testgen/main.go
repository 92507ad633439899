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
package main

import (
	"fmt"
	"os"
	"strings"

	util "github.com/consensys/go-resolve/pkg/cmd"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Uint("min-length", 1, "Minimum length of a chain")
	rootCmd.Flags().Uint("max-length", 4, "Maximum length of a chain")
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "testgen",
	Short: "Test generation utility for go-resolve.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		var cfg TestGenConfig
		// Lookup model
		cfg.model = findModel(args[0])
		cfg.minLength = util.GetUint(cmd, "min-length")
		cfg.maxLength = util.GetUint(cmd, "max-length")
		// Generate & split conditions
		valid, invalid := generateTestConditions(cfg)
		// Write out
		writeTestConditions(cfg.model, "accepts", valid)
		writeTestConditions(cfg.model, "rejects", invalid)
		os.Exit(0)
	},
}

// TestGenConfig encapsulates configuration related to test generation.
type TestGenConfig struct {
	model     Model
	minLength uint
	maxLength uint
}

// Condition is a verification condition, written as S-expressions.
type Condition struct {
	Given []string
	Goal  []string
}

// GeneratorFn generates conditions of a given length, split into those which
// should be proved and those which should not.
type GeneratorFn = func(n uint) (Condition, Condition)

// Model represents a hard-coded family of conditions for a given test.
type Model struct {
	// Name of the model in question
	Name string
	// Generator of conditions for the model
	Generator GeneratorFn
}

var models []Model = []Model{
	{"propagation", propagationModel},
	{"plus_zero", plusZeroModel},
	{"conjunction", conjunctionModel},
}

func findModel(name string) Model {
	for _, m := range models {
		if m.Name == name {
			return m
		}
	}
	//
	panic(fmt.Sprintf("unknown model \"%s\"", name))
}

// Generate test conditions
func generateTestConditions(cfg TestGenConfig) ([]Condition, []Condition) {
	valid := make([]Condition, 0)
	invalid := make([]Condition, 0)
	//
	for n := cfg.minLength; n <= cfg.maxLength; n++ {
		accept, reject := cfg.model.Generator(n)
		valid = append(valid, accept)
		invalid = append(invalid, reject)
	}
	// Done
	return valid, invalid
}

func writeTestConditions(model Model, ext string, conditions []Condition) {
	var sb strings.Builder
	// Construct filename
	filename := fmt.Sprintf("testdata/%s.auto.%s", model.Name, ext)
	// Generate lines
	for i, c := range conditions {
		sb.WriteString(fmt.Sprintf("(vc %d_%d (given %s) (goal %s))\n", 0, i+1,
			strings.Join(c.Given, " "), strings.Join(c.Goal, " ")))
	}
	// Write the file
	if err := os.WriteFile(filename, []byte(sb.String()), 0644); err != nil {
		panic(err)
	}
	// Log what happened
	log.Infof("Wrote %s (%d conditions)\n", filename, len(conditions))
}

// ============================================================================
// Models
// ============================================================================

// x1 = x0, ..., xn = x(n-1), x0 < b implies xn < b.
func propagationModel(n uint) (Condition, Condition) {
	given := []string{"(< x0 b)"}
	//
	for i := uint(1); i <= n; i++ {
		given = append(given, fmt.Sprintf("(= x%d x%d)", i, i-1))
	}
	//
	return Condition{given, []string{fmt.Sprintf("(< x%d b)", n)}},
		Condition{given, []string{fmt.Sprintf("(< b x%d)", n)}}
}

// a < b implies (a + 0 ... + 0) < b.
func plusZeroModel(n uint) (Condition, Condition) {
	exp := "a"
	//
	for i := uint(0); i < n; i++ {
		exp = fmt.Sprintf("(+ %s 0)", exp)
	}
	//
	return Condition{[]string{"(< a b)"}, []string{fmt.Sprintf("(< %s b)", exp)}},
		Condition{[]string{"(< a b)"}, []string{fmt.Sprintf("(< b %s)", exp)}}
}

// The conjunction of x0 < x1, ..., x(n-1) < xn implies each conjunct, in
// reverse.
func conjunctionModel(n uint) (Condition, Condition) {
	var conjuncts []string
	//
	for i := uint(0); i < n; i++ {
		conjuncts = append(conjuncts, fmt.Sprintf("(< x%d x%d)", i, i+1))
	}
	//
	given := conjoin(conjuncts)
	//
	for i, j := 0, len(conjuncts)-1; i < j; i, j = i+1, j-1 {
		conjuncts[i], conjuncts[j] = conjuncts[j], conjuncts[i]
	}
	//
	reject := fmt.Sprintf("(< x%d x0)", n)
	//
	return Condition{[]string{given}, []string{conjoin(conjuncts)}},
		Condition{[]string{given}, []string{reject}}
}

func conjoin(conjuncts []string) string {
	if len(conjuncts) == 1 {
		return conjuncts[0]
	}
	//
	return fmt.Sprintf("(and %s %s)", conjuncts[0], conjoin(conjuncts[1:]))
}
