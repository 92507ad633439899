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
package termio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Escape_01(t *testing.T) {
	escape := BoldAnsiEscape().FgColour(TERM_RED)
	//
	assert.Equal(t, "\033[1;31m", escape.Build())
	assert.Equal(t, "\033[1;31mhello\033[0m", escape.Format("hello", true))
	assert.Equal(t, "hello", escape.Format("hello", false))
}

func Test_Escape_02(t *testing.T) {
	bold := BoldAnsiEscape()
	// Extending an escape leaves the original unchanged
	_ = bold.FgColour(TERM_GREEN)
	//
	assert.Equal(t, "\033[1m", bold.Build())
	assert.Equal(t, "\033[1;44m", bold.BgColour(TERM_BLUE).Build())
}

func Test_Table_01(t *testing.T) {
	table := NewTablePrinter(2, 2)
	table.SetRow(0, "VC", "Status")
	table.SetRow(1, "0_1", "proved")
	//
	assert.Equal(t, " VC  | Status |\n 0_1 | proved |\n", check_Print(t, table))
	assert.Equal(t, "0_1", table.Get(0, 1))
	assert.Equal(t, uint(2), table.Height())
}

func Test_Table_02(t *testing.T) {
	table := NewTablePrinter(1, 1)
	table.SetRow(0, "abcdefgh")
	table.SetMaxWidth(0, 5)
	//
	assert.Equal(t, " abc.. |\n", check_Print(t, table))
}

func Test_Table_03(t *testing.T) {
	table := NewTablePrinter(1, 1)
	table.SetRow(0, "ok")
	table.SetEscape(0, 0, BoldAnsiEscape())
	//
	assert.Equal(t, "\033[1m ok\033[0m |\n", check_Print(t, table))
	//
	table.AnsiEscapes(false)
	assert.Equal(t, " ok |\n", check_Print(t, table))
}

func Test_Table_04(t *testing.T) {
	table := NewTablePrinter(2, 1)
	//
	assert.Panics(t, func() { table.SetRow(0, "only one") })
}

func Test_Terminal_01(t *testing.T) {
	var buf bytes.Buffer
	// A buffer is never a terminal
	assert.False(t, IsTerminal(&buf))
	assert.Equal(t, uint(80), TerminalWidth(&buf, 80))
}

func check_Print(t *testing.T, table *TablePrinter) string {
	var buf bytes.Buffer
	//
	require.NoError(t, table.Print(&buf))
	//
	return buf.String()
}
