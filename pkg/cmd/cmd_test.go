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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/consensys/go-resolve/pkg/absyn"
	"github.com/consensys/go-resolve/pkg/prover"
	"github.com/consensys/go-resolve/pkg/vcgen"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ProverConfig_01(t *testing.T) {
	config := check_ProverConfig(t)
	//
	assert.Equal(t, prover.DefaultConfig(), config)
}

func Test_ProverConfig_02(t *testing.T) {
	config := check_ProverConfig(t, "--timeout", "2s", "--max-steps", "10", "--workers", "3")
	//
	assert.Equal(t, 2*time.Second, config.Timeout)
	assert.Equal(t, uint(10), config.MaxSteps)
	assert.Equal(t, uint(3), config.Workers)
	assert.Equal(t, prover.DefaultConfig().MaxDepth, config.MaxDepth)
}

func Test_ProverConfig_03(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "prover.yaml")
	require.NoError(t, os.WriteFile(filename, []byte("max-steps: 42\nmax-depth: 3\n"), 0600))
	// Flags override the file
	config := check_ProverConfig(t, "--config", filename, "--max-depth", "5", "--skip-trivial")
	//
	assert.Equal(t, uint(42), config.MaxSteps)
	assert.Equal(t, uint(5), config.MaxDepth)
	assert.True(t, config.SkipTrivial)
}

func Test_ProverVCs_01(t *testing.T) {
	var (
		b   = absyn.NewBuilder()
		a   = b.Symbol("a", absyn.Entity)
		c   = b.Symbol("c", absyn.Entity)
		vcs = []vcgen.VerificationCondition{
			{Name: "0_1", Antecedents: []absyn.PExp{a}, Consequent: c, Detail: "Requires Clause of M"},
		}
	)
	//
	nvcs := toProverVCs(vcs)
	require.Len(t, nvcs, 1)
	assert.Equal(t, "0_1", nvcs[0].Name)
	assert.Equal(t, []absyn.PExp{a}, nvcs[0].Antecedents)
	assert.Equal(t, []absyn.PExp{c}, nvcs[0].Consequents)
}

// ===================================================================
// Test Helpers
// ===================================================================

func check_ProverConfig(t *testing.T, args ...string) prover.Config {
	t.Helper()
	//
	cmd := &cobra.Command{Use: "test"}
	addProverFlags(cmd)
	require.NoError(t, cmd.Flags().Parse(args))
	//
	return readProverConfig(cmd)
}
