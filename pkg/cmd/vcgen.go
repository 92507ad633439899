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
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/consensys/go-resolve/pkg/absyn"
	"github.com/consensys/go-resolve/pkg/util/termio"
	"github.com/consensys/go-resolve/pkg/vcgen"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var vcgenCmd = &cobra.Command{
	Use:   "vcgen [flags] module_file",
	Short: "Generate verification conditions for realizations.",
	Long: `Generate the verification conditions for each realization in a file of
	concepts and realizations.  Each realization must name the concept it
	implements, which must be given in the same file.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		var (
			builder = absyn.NewBuilder()
			logger  = newLogger("vcgen")
			steps   = GetFlag(cmd, "steps")
			width   = termio.TerminalWidth(os.Stdout, 80)
		)
		//
		for _, g := range generateAll(cmd, builder, args[0], logger) {
			if steps {
				printSteps(g, width)
			}
			//
			for _, vc := range g.VCs() {
				fmt.Print(vc.String())
				fmt.Println(strings.Repeat("=", int(width)))
			}
		}
	},
}

// addGeneratorFlags registers the flags which configure the generator.
func addGeneratorFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("add-constraints", false, "assume shared state constraints at the start of every block")
	cmd.Flags().Bool("simplify", false, "omit trivially true verification conditions")
}

// generateAll reads a file of modules, and applies the proof rules to every
// realization within, returning one generator per realization.
func generateAll(cmd *cobra.Command, builder *absyn.Builder, filename string, logger *log.Entry) []*vcgen.Generator {
	var (
		generators []*vcgen.Generator
		concepts   = make(map[string]*vcgen.Module)
		flags      = vcgen.Flags{
			AddConstraints: GetFlag(cmd, "add-constraints"),
			Simplify:       GetFlag(cmd, "simplify"),
		}
	)
	//
	modules, errs := vcgen.ReadModules(builder, readSourceFile(filename))
	checkSyntaxErrors(errs)
	//
	for _, m := range modules {
		if m.Kind == vcgen.Concept {
			concepts[m.Name] = m
		}
	}
	//
	for _, m := range modules {
		if m.Kind != vcgen.Realization {
			continue
		}
		//
		concept, ok := concepts[m.Implements]
		if !ok {
			fmt.Printf("%s: unknown concept \"%s\" implemented by %s\n", filename, m.Implements, m.Name)
			os.Exit(4)
		}
		//
		g := vcgen.NewGeneratorFor(builder, concept, m, flags, logger.WithField("module", m.Name))
		g.GenerateAll()
		//
		logger.Infof("generated %d blocks for %s", len(g.Blocks()), m.Name)
		//
		generators = append(generators, g)
	}
	//
	return generators
}

// Print the rules applied to each block of a generator, along with the state
// of the block afterwards.
func printSteps(g *vcgen.Generator, width uint) {
	for _, block := range g.Blocks() {
		for _, step := range block.Steps() {
			fmt.Printf("%s: %s\n\n", block.Name(), step.Rule)
			fmt.Print(step.State)
			fmt.Println(strings.Repeat("-", int(width)))
		}
	}
}

func init() {
	rootCmd.AddCommand(vcgenCmd)
	addGeneratorFlags(vcgenCmd)
	vcgenCmd.Flags().Bool("steps", false, "print the rules applied to each block")
}
