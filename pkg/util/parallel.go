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
package util

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ParMap applies a function to every item of a given array using a bounded
// number of go-routines, returning the results in the same order as the items.
// The first error encountered cancels the context passed to any outstanding
// calls, and is returned.
func ParMap[S, T any](ctx context.Context, workers uint, items []S, fn func(context.Context, S) (T, error)) ([]T,
	error) {
	results := make([]T, len(items))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(int(max(workers, 1)))
	//
	for i, item := range items {
		group.Go(func() error {
			result, err := fn(ctx, item)
			if err != nil {
				return err
			}
			// Each go-routine writes a distinct slot
			results[i] = result
			//
			return nil
		})
	}
	//
	if err := group.Wait(); err != nil {
		return nil, err
	}
	//
	return results, nil
}
