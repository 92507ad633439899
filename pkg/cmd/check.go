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

	"github.com/consensys/go-resolve/pkg/absyn"
	"github.com/consensys/go-resolve/pkg/prover"
	"github.com/consensys/go-resolve/pkg/vcgen"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] module_file theory_file",
	Short: "Generate and prove verification conditions for realizations.",
	Long: `Generate the verification conditions for each realization in a file of
	concepts and realizations, and then attempt to prove them using a library
	of theorems.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 2 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		var (
			config  = readProverConfig(cmd)
			logger  = newLogger("check")
			builder = absyn.NewBuilder()
			library = readTheories(builder, args[1])
			ok      = true
		)
		//
		for _, g := range generateAll(cmd, builder, args[0], logger) {
			vcs := toProverVCs(g.VCs())
			ok = proveAll(cmd, config, builder, library, vcs, g.Context().Name(), logger) && ok
		}
		//
		if !ok {
			os.Exit(3)
		}
	},
}

// toProverVCs converts generated verification conditions into the form
// expected by the prover.
func toProverVCs(vcs []vcgen.VerificationCondition) []prover.VC {
	nvcs := make([]prover.VC, len(vcs))
	//
	for i, vc := range vcs {
		nvcs[i] = prover.VC{Name: vc.Name, Antecedents: vc.Antecedents, Consequents: []absyn.PExp{vc.Consequent}}
	}
	//
	return nvcs
}

func init() {
	rootCmd.AddCommand(checkCmd)
	addGeneratorFlags(checkCmd)
	addProverFlags(checkCmd)
}
