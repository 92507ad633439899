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
	"context"
	"fmt"
	"os"
	"os/signal"
	"path"
	"time"

	"github.com/consensys/go-resolve/pkg/absyn"
	"github.com/consensys/go-resolve/pkg/prover"
	"github.com/consensys/go-resolve/pkg/prover/model"
	"github.com/consensys/go-resolve/pkg/util/termio"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var proveCmd = &cobra.Command{
	Use:   "prove [flags] theory_file vc_file...",
	Short: "Prove verification conditions using a library of theorems.",
	Long: `Attempt to prove one or more files of verification conditions.
	Theorems are given as (theorem name exp) forms, and conditions as
	(vc name (given exp...) (goal exp...)) forms.`,
	Run: func(cmd *cobra.Command, args []string) {
		var vcs []prover.VC
		//
		if len(args) < 2 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		var (
			config  = readProverConfig(cmd)
			logger  = newLogger("prove")
			builder = absyn.NewBuilder()
			library = readTheories(builder, args[0])
		)
		//
		for _, filename := range args[1:] {
			vcs = append(vcs, readVCs(builder, filename)...)
		}
		//
		title := path.Base(args[1])
		if len(args) > 2 {
			title = fmt.Sprintf("%s (and %d more)", title, len(args)-2)
		}
		//
		if !proveAll(cmd, config, builder, library, vcs, title, logger) {
			os.Exit(3)
		}
	},
}

// addProverFlags registers the flags which configure the prover.
func addProverFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "read prover configuration from a YAML file")
	cmd.Flags().Duration("timeout", 0, "time limit for each verification condition")
	cmd.Flags().Uint("max-steps", 0, "limit on the candidate steps tried for each verification condition")
	cmd.Flags().Uint("max-depth", 0, "limit on the depth of the main search")
	cmd.Flags().Uint("workers", 0, "number of verification conditions proved in parallel")
	cmd.Flags().Bool("skip-trivial", false, "omit trivial proofs from the report")
	cmd.Flags().Bool("table", false, "print a summary table after the report")
	cmd.Flags().Bool("ansi-escapes", true, "use ANSI escapes when writing to a terminal")
}

// readProverConfig determines the prover configuration, starting from the
// configuration file (if given) or defaults, and overriding with any flags
// given explicitly.
func readProverConfig(cmd *cobra.Command) prover.Config {
	config := prover.DefaultConfig()
	//
	if filename := GetString(cmd, "config"); filename != "" {
		var err error
		//
		if config, err = prover.LoadConfig(filename); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
	}
	//
	if cmd.Flags().Changed("timeout") {
		config.Timeout = GetDuration(cmd, "timeout")
	}
	//
	if cmd.Flags().Changed("max-steps") {
		config.MaxSteps = GetUint(cmd, "max-steps")
	}
	//
	if cmd.Flags().Changed("max-depth") {
		config.MaxDepth = GetUint(cmd, "max-depth")
	}
	//
	if cmd.Flags().Changed("workers") {
		config.Workers = GetUint(cmd, "workers")
	}
	//
	if cmd.Flags().Changed("skip-trivial") {
		config.SkipTrivial = GetFlag(cmd, "skip-trivial")
	}
	//
	if err := config.Validate(); err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return config
}

func readTheories(builder *absyn.Builder, filename string) []*model.Theorem {
	library, errs := prover.ReadTheories(builder, readSourceFile(filename))
	checkSyntaxErrors(errs)
	//
	return library
}

func readVCs(builder *absyn.Builder, filename string) []prover.VC {
	vcs, errs := prover.ReadVCs(builder, readSourceFile(filename))
	checkSyntaxErrors(errs)
	//
	return vcs
}

// proveAll attempts to prove a set of verification conditions, writing a
// report of the outcome.  This returns true if every condition was proved.
// An interrupt abandons any conditions not yet proved.
func proveAll(cmd *cobra.Command, config prover.Config, builder *absyn.Builder, library []*model.Theorem,
	vcs []prover.VC, title string, logger *log.Entry) bool {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	//
	var (
		colour = GetFlag(cmd, "ansi-escapes") && termio.IsTerminal(os.Stdout)
		p      = prover.NewProver(config, builder, library, logger)
	)
	//
	logger.Infof("proving %d conditions with %d theorems", len(vcs), len(library))
	//
	results, err := p.ProveAll(ctx, vcs)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	opts := prover.ReportOptions{Title: title, Date: time.Now(), Colour: colour, SkipTrivial: config.SkipTrivial}
	if err = prover.WriteReport(os.Stdout, results, opts); err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	if GetFlag(cmd, "table") {
		if err = prover.WriteSummaryTable(os.Stdout, results, colour); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
	}
	//
	proved := 0
	//
	for _, r := range results {
		if r.Proved {
			proved++
		}
	}
	//
	logger.Infof("proved %d of %d conditions", proved, len(results))
	//
	return proved == len(results)
}

func init() {
	rootCmd.AddCommand(proveCmd)
	addProverFlags(proveCmd)
}
