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
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/consensys/go-resolve/pkg/util/termio"
)

const banner = "==================================="

// ReportOptions determines how a proof report is written.
type ReportOptions struct {
	// Title names the module whose conditions were proved.
	Title string
	// Date is the time at which the report was generated.
	Date time.Time
	// Colour enables ANSI escapes for the status of each condition.
	Colour bool
	// SkipTrivial omits the proofs of conditions proved without any steps.
	SkipTrivial bool
}

// WriteReport writes a textual report of some results: a summary line for each
// condition, followed by the proof of each condition which was proved.
func WriteReport(w io.Writer, results []Result, opts ReportOptions) error {
	var builder strings.Builder
	//
	fmt.Fprintf(&builder, "Proofs for %s generated %s\n\n", opts.Title, opts.Date.Format(time.UnixDate))
	fmt.Fprintf(&builder, "%s Summary %s\n\n", banner, banner)
	//
	for _, r := range results {
		fmt.Fprintf(&builder, "\t%s\t......... %s\n", r.Name, summaryOf(&r, opts.Colour))
	}
	//
	builder.WriteString("\n")
	//
	for _, r := range results {
		if !opts.SkipTrivial || !r.IsTrivial() {
			writeProof(&builder, &r, opts.Colour)
		}
	}
	//
	_, err := io.WriteString(w, builder.String())
	//
	return err
}

func summaryOf(r *Result, colour bool) string {
	ms := r.Duration.Milliseconds()
	//
	if r.Proved {
		return fmt.Sprintf("proved in %dms via %d steps (%d search)", ms, r.Steps(), r.SearchSteps)
	}
	//
	return fmt.Sprintf("%s after %dms", notProvedEscape.Format("[SKIPPED]", colour), ms)
}

func writeProof(builder *strings.Builder, r *Result, colour bool) {
	fmt.Fprintf(builder, "%s %s %s\n\n", banner, r.Name, banner)
	//
	if !r.Proved {
		fmt.Fprintf(builder, "%s\n\n", notProvedEscape.Format("[NOT PROVED]", colour))
		//
		if r.Reason != nil {
			fmt.Fprintf(builder, "Abandoned: %s\n\n", r.Reason)
		}
		//
		if len(r.Proof) > 0 {
			fmt.Fprintf(builder, "Deepest path explored:\n\n%s\n\n", r.Initial)
			writeLines(builder, r.Proof)
		}
		//
		return
	}
	//
	fmt.Fprintf(builder, "%s via:\n\n", provedEscape.Format("[PROVED]", colour))
	fmt.Fprintf(builder, "%s\n\n", r.Initial)
	writeLines(builder, r.Proof)
	builder.WriteString("Q.E.D.\n\n")
}

func writeLines(builder *strings.Builder, lines []ProofLine) {
	for _, line := range lines {
		if line.Label != "" {
			fmt.Fprintf(builder, "%s\n\n", line.Label)
		} else {
			fmt.Fprintf(builder, "Applied %s\n\n%s\n\n", line.Applied, line.State)
		}
	}
}

// WriteSummaryTable writes a table with one row per condition, giving its
// status, the time taken and the number of candidate steps tried.
func WriteSummaryTable(w io.Writer, results []Result, colour bool) error {
	table := termio.NewTablePrinter(4, uint(len(results)+1))
	table.AnsiEscapes(colour)
	table.SetRow(0, "VC", "Status", "Time", "Tried")
	table.SetEscape(0, 0, termio.BoldAnsiEscape())
	//
	for i, r := range results {
		row := uint(i + 1)
		status, escape := "proved", provedEscape
		//
		if !r.Proved {
			status, escape = "not proved", notProvedEscape
		}
		//
		table.SetRow(row, r.Name, status, r.Duration.Round(time.Millisecond).String(), fmt.Sprintf("%d", r.Attempted))
		table.SetEscape(1, row, escape)
	}
	//
	table.SetMaxWidth(0, 40)
	//
	return table.Print(w)
}

var (
	provedEscape    = termio.BoldAnsiEscape().FgColour(termio.TERM_GREEN)
	notProvedEscape = termio.BoldAnsiEscape().FgColour(termio.TERM_RED)
)
