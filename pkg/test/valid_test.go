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
	"testing"
)

func Test_Propagation_01(t *testing.T) {
	Check(t, "propagation")
}

func Test_PlusZero_01(t *testing.T) {
	Check(t, "plus_zero")
}

func Test_Conjunction_01(t *testing.T) {
	Check(t, "conjunction")
}

func Test_LtLe_01(t *testing.T) {
	Check(t, "lt_le")
}

func Test_Module_Counter_01(t *testing.T) {
	CheckModule(t, "counter", "plus_zero", true)
}

func Test_Module_Counter_02(t *testing.T) {
	CheckModule(t, "counter_invalid", "plus_zero", false)
}
