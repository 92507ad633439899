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
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Report_01(t *testing.T) {
	results := []Result{
		{Name: "0_1", Proved: true, Duration: 3 * time.Millisecond, Initial: "\n  -->\n"},
		{Name: "0_2", Proved: false, Duration: 12 * time.Millisecond},
	}
	//
	report := check_Report(t, results, ReportOptions{Title: "Stack_Template"})
	//
	assert.True(t, strings.HasPrefix(report, "Proofs for Stack_Template generated "))
	assert.Contains(t, report, "\t0_1\t......... proved in 3ms via 0 steps (0 search)\n")
	assert.Contains(t, report, "\t0_2\t......... [SKIPPED] after 12ms\n")
	assert.Contains(t, report, "[PROVED] via:")
	assert.Contains(t, report, "[NOT PROVED]")
	assert.Contains(t, report, "Q.E.D.")
}

func Test_Report_02(t *testing.T) {
	results := []Result{
		{Name: "0_1", Proved: true, Initial: "a < b\n  -->\na < b", Proof: []ProofLine{
			{Label: DevelopedLabel},
			{Applied: "Replace local theorem with true", State: "a < b\n  -->\ntrue"},
			{Applied: "Eliminate true conjunct in consequent", State: "a < b\n  -->\n"},
			{Label: MinimisedLabel},
		}},
	}
	//
	report := check_Report(t, results, ReportOptions{Title: "T"})
	//
	assert.Contains(t, report, "\t0_1\t......... proved in 0ms via 2 steps (0 search)\n")
	assert.Contains(t, report, DevelopedLabel+"\n\nApplied Replace local theorem with true\n\na < b\n  -->\ntrue\n\n")
	// Labels appear in order
	assert.Less(t, strings.Index(report, DevelopedLabel), strings.Index(report, MinimisedLabel))
}

func Test_Report_03(t *testing.T) {
	results := []Result{{Name: "0_1", Proved: true}}
	//
	report := check_Report(t, results, ReportOptions{Title: "T", SkipTrivial: true})
	//
	assert.Contains(t, report, "\t0_1\t")
	assert.NotContains(t, report, "=== 0_1 ===")
}

func Test_Report_04(t *testing.T) {
	results := []Result{{Name: "0_1", Proved: false}}
	//
	plain := check_Report(t, results, ReportOptions{Title: "T"})
	coloured := check_Report(t, results, ReportOptions{Title: "T", Colour: true})
	//
	assert.NotContains(t, plain, "\033[")
	assert.Contains(t, coloured, "\033[")
}

func Test_Report_05(t *testing.T) {
	results := []Result{
		{Name: "0_1", Proved: false, Reason: ErrStepLimitExceeded, Initial: "\n  -->\nb < a", Proof: []ProofLine{
			{Applied: "Substitute b with b + 0", State: "\n  -->\nb + 0 < a"},
		}},
	}
	//
	report := check_Report(t, results, ReportOptions{Title: "T"})
	//
	assert.Contains(t, report, "Abandoned: step limit exceeded\n\n")
	assert.Contains(t, report, "Deepest path explored:\n\n\n  -->\nb < a\n\n")
	assert.Contains(t, report, "Applied Substitute b with b + 0\n\n\n  -->\nb + 0 < a\n\n")
	assert.NotContains(t, report, "Q.E.D.")
}

func Test_SummaryTable_01(t *testing.T) {
	var (
		buf     bytes.Buffer
		results = []Result{
			{Name: "0_1", Proved: true, Attempted: 7},
			{Name: "0_2", Proved: false, Attempted: 1000},
		}
	)
	//
	require.NoError(t, WriteSummaryTable(&buf, results, false))
	//
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Status")
	assert.Contains(t, lines[1], "proved")
	assert.Contains(t, lines[2], "not proved")
	assert.Contains(t, lines[2], "1000")
}

func check_Report(t *testing.T, results []Result, opts ReportOptions) string {
	t.Helper()
	//
	var buf bytes.Buffer
	//
	opts.Date = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, WriteReport(&buf, results, opts))
	//
	return buf.String()
}
