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
package test

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"testing"

	"github.com/consensys/go-resolve/pkg/absyn"
	"github.com/consensys/go-resolve/pkg/prover"
	"github.com/consensys/go-resolve/pkg/prover/model"
	"github.com/consensys/go-resolve/pkg/util/source"
	"github.com/consensys/go-resolve/pkg/vcgen"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDir determines the (relative) location of the test directory.  That is
// where the theory files, module files and the corresponding conditions
// (accepts/rejects) are found.
const TestDir = "../../testdata"

// TestFileExtension describes a kind of test file, and whether the conditions
// within should be proved.
type TestFileExtension struct {
	extension string
	expected  bool
}

// TESTFILE_EXTENSIONS identifies the possible file extensions used for
// conditions.
var TESTFILE_EXTENSIONS []TestFileExtension = []TestFileExtension{
	{"accepts", true},
	{"auto.accepts", true},
	{"rejects", false},
	{"auto.rejects", false},
}

// Check that all conditions which we expect to be proved are proved using a
// given theory, and all those we expect not to be proved are not.
func Check(t *testing.T, test string) {
	var (
		builder = absyn.NewBuilder()
		library = readTheoryFile(t, builder, test)
		p       = prover.NewProver(testConfig(), builder, library, log.NewEntry(log.StandardLogger()))
	)
	// Record how many tests executed.
	nTests := 0
	// Iterate possible testfile extensions
	for _, ext := range TESTFILE_EXTENSIONS {
		filename := fmt.Sprintf("%s/%s.%s", TestDir, test, ext.extension)
		// Skip missing files
		srcfile := readTestFile(t, filename)
		if srcfile == nil {
			continue
		}
		//
		vcs, errs := prover.ReadVCs(builder, srcfile)
		require.Empty(t, errs, filename)
		//
		checkResults(t, filename, ext.expected, p, vcs)
		// Record how many tests we found
		nTests += len(vcs)
	}
	// Sanity check at least one condition found.
	if nTests == 0 {
		panic(fmt.Sprintf("missing any tests for %s", test))
	}
}

// CheckModule generates the conditions for each realization in a module
// file, and checks whether or not they are all proved using a given theory.
func CheckModule(t *testing.T, test string, theory string, expected bool) {
	var (
		builder  = absyn.NewBuilder()
		library  = readTheoryFile(t, builder, theory)
		p        = prover.NewProver(testConfig(), builder, library, log.NewEntry(log.StandardLogger()))
		filename = fmt.Sprintf("%s/%s.mod", TestDir, test)
		srcfile  = readTestFile(t, filename)
		vcs      []prover.VC
	)
	//
	require.NotNil(t, srcfile, "missing module file %s", filename)
	//
	modules, errs := vcgen.ReadModules(builder, srcfile)
	require.Empty(t, errs, filename)
	require.Len(t, modules, 2, filename)
	//
	g := vcgen.NewGeneratorFor(builder, modules[0], modules[1], vcgen.Flags{}, log.NewEntry(log.StandardLogger()))
	g.GenerateAll()
	//
	for _, vc := range g.VCs() {
		vcs = append(vcs, prover.VC{Name: vc.Name, Antecedents: vc.Antecedents, Consequents: []absyn.PExp{vc.Consequent}})
	}
	//
	require.NotEmpty(t, vcs, filename)
	//
	results, err := p.ProveAll(context.Background(), vcs)
	require.NoError(t, err)
	//
	proved := true
	for _, r := range results {
		proved = proved && r.Proved
	}
	//
	assert.Equal(t, expected, proved, filename)
}

func checkResults(t *testing.T, filename string, expected bool, p *prover.Prover, vcs []prover.VC) {
	results, err := p.ProveAll(context.Background(), vcs)
	require.NoError(t, err)
	//
	for i, r := range results {
		if r.Proved != expected {
			t.Errorf("%s: condition %s (%s) should be proved: %t", filename, r.Name, r.Initial, expected)
		}
		//
		assert.Equal(t, vcs[i].Name, r.Name)
	}
}

// readTheoryFile reads the theory for a given test, which is empty when there
// is no such file.
func readTheoryFile(t *testing.T, builder *absyn.Builder, test string) []*model.Theorem {
	filename := fmt.Sprintf("%s/%s.thy", TestDir, test)
	srcfile := readTestFile(t, filename)
	//
	if srcfile == nil {
		return nil
	}
	//
	library, errs := prover.ReadTheories(builder, srcfile)
	require.Empty(t, errs, filename)
	//
	return library
}

// readTestFile reads a given file, returning nil if it does not exist.
func readTestFile(t *testing.T, filename string) *source.File {
	bytes, err := os.ReadFile(filename)
	//
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	//
	require.NoError(t, err)
	//
	return source.NewSourceFile(filename, bytes)
}

// testConfig bounds the effort spent on each condition, such that rejected
// conditions fail quickly.
func testConfig() prover.Config {
	config := prover.DefaultConfig()
	config.MaxSteps = 500
	//
	return config
}
