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
package model

import (
	"fmt"
	"slices"
	"strings"

	"github.com/consensys/go-resolve/pkg/absyn"
	"github.com/consensys/go-resolve/pkg/util/collection/hash"
	"github.com/consensys/go-resolve/pkg/util/collection/iter"
)

// Site is the address of a sub-expression within a conjunct of a given model.
// A site records the expression of its conjunct at the time it was derived.
// Should the conjunct subsequently be altered, the site becomes stale and must
// be refreshed before use.
type Site struct {
	model    *Model
	conjunct Conjunct
	// child indices from the root expression of the conjunct
	path []uint
	// sub-expression at the path
	exp absyn.PExp
	// root site, or nil if this is a root site.
	root *Site
}

// NewRootSite constructs the site addressing the whole of a conjunct's current
// expression.
func NewRootSite(model *Model, conjunct Conjunct) *Site {
	return &Site{model, conjunct, nil, conjunct.Expression(), nil}
}

// Model returns the model to which this site belongs.
func (p *Site) Model() *Model {
	return p.model
}

// Conjunct returns the conjunct this site addresses.
func (p *Site) Conjunct() Conjunct {
	return p.conjunct
}

// Path returns the child indices leading from the root of the conjunct's
// expression to this site.
func (p *Site) Path() []uint {
	return slices.Clone(p.path)
}

// Exp returns the sub-expression at this site.
func (p *Site) Exp() absyn.PExp {
	return p.exp
}

// Root returns the root site of this site's conjunct.
func (p *Site) Root() *Site {
	if p.root == nil {
		return p
	}
	//
	return p.root
}

// IsRoot determines whether this site addresses a whole conjunct.
func (p *Site) IsRoot() bool {
	return len(p.path) == 0
}

// Child returns the site of the ith sub-expression of this site.
func (p *Site) Child(i uint) *Site {
	path := make([]uint, len(p.path)+1)
	copy(path, p.path)
	path[len(p.path)] = i
	//
	return &Site{p.model, p.conjunct, path, p.exp.SubExpressions().Get(i), p.Root()}
}

// Children returns the sites of the immediate sub-expressions of this site.
func (p *Site) Children() []*Site {
	n := p.exp.SubExpressions().Size()
	children := make([]*Site, n)
	//
	for i := uint(0); i < n; i++ {
		children[i] = p.Child(i)
	}
	//
	return children
}

// IsStale determines whether the conjunct of this site has been altered since
// the site was derived.
func (p *Site) IsStale() bool {
	return p.Root().exp != p.conjunct.Expression()
}

// Refresh re-derives this site from the current expression of its conjunct.
// This fails if the path of this site no longer exists.
func (p *Site) Refresh() (*Site, bool) {
	site := NewRootSite(p.model, p.conjunct)
	//
	for _, i := range p.path {
		if i >= site.exp.SubExpressions().Size() {
			return nil, false
		}
		//
		site = site.Child(i)
	}
	//
	return site, true
}

// Inside determines whether this site lies within another, meaning both address
// the same conjunct and the other's path is a prefix of this one.  Every site
// lies inside itself.  Sites of different models cannot be compared.
func (p *Site) Inside(other *Site) bool {
	if p.model != other.model {
		panic("cannot compare sites from different models")
	} else if p.conjunct != other.conjunct || len(other.path) > len(p.path) {
		return false
	}
	//
	return slices.Equal(other.path, p.path[:len(other.path)])
}

// Equals determines whether two sites address the same position of the same
// conjunct.
//
//nolint:revive
func (p *Site) Equals(other *Site) bool {
	return p.model == other.model && p.conjunct == other.conjunct && slices.Equal(p.path, other.path)
}

// Hash returns a hash code consistent with Equals.
//
//nolint:revive
func (p *Site) Hash() uint64 {
	hashes := make([]uint64, len(p.path))
	//
	for i, j := range p.path {
		hashes[i] = uint64(j)
	}
	//
	return hash.Combine(p.conjunct.ID(), hashes...)
}

//nolint:revive
func (p *Site) String() string {
	var builder strings.Builder
	//
	builder.WriteString(fmt.Sprintf("%d:[", p.conjunct.ID()))
	//
	for i, j := range p.path {
		if i != 0 {
			builder.WriteString(",")
		}
		//
		builder.WriteString(fmt.Sprintf("%d", j))
	}
	//
	builder.WriteString(fmt.Sprintf("] %s", p.exp))
	//
	return builder.String()
}

// Descendants returns an iterator over this site and every site inside it, in
// pre-order.
func Descendants(site *Site) iter.Iterator[*Site] {
	children := iter.NewArrayIterator(site.Children())
	//
	return iter.NewAppendIterator(iter.NewUnitIterator(site), iter.NewFlattenIterator(children, Descendants))
}

// Inductively extends an iterator over sites into one over those sites and all
// of their descendants.
func Inductively(sites iter.Iterator[*Site]) iter.Iterator[*Site] {
	return iter.NewFlattenIterator(sites, Descendants)
}
