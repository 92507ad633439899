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
package hash

import (
	"hash/fnv"
)

// A reasonably simple hashmap implementation which permits collisions.  Keys
// are expression trees in most uses, whose structural hash is cached but not
// unique.  Hence, a key's hash can only narrow down a bucket, and equality
// decides membership within it.

// Hasher provides a generic definition of a hashing function suitable for use
// within the hashmap, which additionally includes equality.
type Hasher[T any] interface {
	// Check whether two items are equal (or not).
	Equals(T) bool
	// Return a suitable hashcode.
	Hash() uint64
}

// ============================================================================
// StringKey Implementation
// ============================================================================

var _ Hasher[StringKey] = StringKey("")

// StringKey wraps a string as something which can be safely placed into a
// hash map or set.
type StringKey string

// Equals compares two StringKeys.
func (p StringKey) Equals(other StringKey) bool {
	return p == other
}

// Hash generates a 64-bit hashcode from the underlying string.
func (p StringKey) Hash() uint64 {
	hash := fnv.New64a()
	hash.Write([]byte(p))
	// Done
	return hash.Sum64()
}

// ============================================================================
// Combining hashes
// ============================================================================

const (
	offset64 uint64 = 14695981039346656037
	prime64  uint64 = 1099511628211
)

// Combine folds a sequence of hashcodes into a single hashcode, sensitive to
// the order in which they appear.
func Combine(seed uint64, hashes ...uint64) uint64 {
	// FNV1a hash implementation
	hash := offset64 ^ seed
	//
	for _, c := range hashes {
		hash ^= c
		hash *= prime64
	}
	//
	return hash
}

// Array provides a mechanism for hashing a sequence of hashable elements.
type Array[F Hasher[F]] struct {
	elements []F
}

// NewArray constructs a new array key.
func NewArray[F Hasher[F]](elements []F) Array[F] {
	return Array[F]{elements}
}

// Equals compares two arrays element-wise.
func (p Array[F]) Equals(other Array[F]) bool {
	if len(p.elements) != len(other.elements) {
		return false
	}
	//
	for i := range p.elements {
		if !p.elements[i].Equals(other.elements[i]) {
			return false
		}
	}
	//
	return true
}

// Hash generates a 64-bit hashcode from the element hashes.
func (p Array[F]) Hash() uint64 {
	hash := offset64
	//
	for _, c := range p.elements {
		hash ^= c.Hash()
		hash *= prime64
	}
	//
	return hash
}
