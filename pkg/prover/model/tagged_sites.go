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
	"github.com/consensys/go-resolve/pkg/util/collection/hash"
)

// TaggedSites associates data with sites inside a common root, arranging them
// by nesting.  The top layer holds exactly those tagged sites which have no
// tagged ancestor, and each tagged site holds a layer of the tagged sites
// immediately inside it.
type TaggedSites[T any] struct {
	root     *Site
	topLevel []*taggedSite[T]
	nodes    *hash.Map[*Site, *taggedSite[T]]
}

type taggedSite[T any] struct {
	site     *Site
	data     T
	children []*taggedSite[T]
}

// NewTaggedSites constructs an empty set of tagged sites under a given root.
func NewTaggedSites[T any](root *Site) *TaggedSites[T] {
	return &TaggedSites[T]{root.Root(), nil, hash.NewMap[*Site, *taggedSite[T]](16)}
}

// Size returns the number of tagged sites.
func (p *TaggedSites[T]) Size() uint {
	return p.nodes.Size()
}

// Put tags a site with some data, replacing any existing data for that site.
// Any tagged sites inside the new site are moved beneath it.
func (p *TaggedSites[T]) Put(site *Site, data T) {
	if !site.Root().Equals(p.root) {
		panic("site does not share the root of these tagged sites")
	}
	//
	if node, ok := p.nodes.Get(site); ok {
		node.data = data
		return
	}
	//
	var (
		node  = &taggedSite[T]{site: site, data: data}
		layer = &p.topLevel
	)
	// Find the layer of the smallest tagged ancestor
	if ancestors := p.ancestors(site); len(ancestors) > 0 {
		layer = &ancestors[len(ancestors)-1].children
	}
	// Absorb any siblings inside the new site
	siblings := (*layer)[:0]
	//
	for _, sibling := range *layer {
		if sibling.site.Inside(site) {
			node.children = append(node.children, sibling)
		} else {
			siblings = append(siblings, sibling)
		}
	}
	//
	*layer = append(siblings, node)
	p.nodes.Insert(site, node)
}

// Get returns the data tagging a given site, if any.
func (p *TaggedSites[T]) Get(site *Site) (T, bool) {
	var empty T
	//
	if node, ok := p.nodes.Get(site); ok {
		return node.data, true
	}
	//
	return empty, false
}

// TopLevel returns the tagged sites which have no tagged ancestor.
func (p *TaggedSites[T]) TopLevel() []*Site {
	return sitesOf(p.topLevel)
}

// ChildrenOf returns the tagged sites immediately inside a given tagged site.
func (p *TaggedSites[T]) ChildrenOf(site *Site) []*Site {
	if node, ok := p.nodes.Get(site); ok {
		return sitesOf(node.children)
	}
	//
	panic("site is not tagged")
}

// Ancestors returns the tagged sites containing a given site, outermost first.
// A tagged site counts as its own ancestor.
func (p *TaggedSites[T]) Ancestors(site *Site) []*Site {
	return sitesOf(p.ancestors(site))
}

// LargestAncestor returns the outermost tagged site containing a given site.
func (p *TaggedSites[T]) LargestAncestor(site *Site) (*Site, bool) {
	if container := containerOf(site, p.topLevel); container != nil {
		return container.site, true
	}
	//
	return nil, false
}

// SmallestAncestor returns the innermost tagged site containing a given site.
func (p *TaggedSites[T]) SmallestAncestor(site *Site) (*Site, bool) {
	if ancestors := p.ancestors(site); len(ancestors) > 0 {
		return ancestors[len(ancestors)-1].site, true
	}
	//
	return nil, false
}

// Traverse visits every tagged site, each before those inside it.
func (p *TaggedSites[T]) Traverse(fn func(*Site, T)) {
	traverse(p.topLevel, fn)
}

func (p *TaggedSites[T]) ancestors(site *Site) []*taggedSite[T] {
	var (
		ancestors []*taggedSite[T]
		layer     = p.topLevel
	)
	//
	for container := containerOf(site, layer); container != nil; container = containerOf(site, layer) {
		ancestors = append(ancestors, container)
		layer = container.children
	}
	//
	return ancestors
}

// containerOf returns the tagged site of a layer which contains a given site.
// Since tagged sites in the same layer are never nested, there is at most one.
func containerOf[T any](site *Site, layer []*taggedSite[T]) *taggedSite[T] {
	for _, node := range layer {
		if site.Inside(node.site) {
			return node
		}
	}
	//
	return nil
}

func traverse[T any](layer []*taggedSite[T], fn func(*Site, T)) {
	for _, node := range layer {
		fn(node.site, node.data)
		traverse(node.children, fn)
	}
}

func sitesOf[T any](layer []*taggedSite[T]) []*Site {
	sites := make([]*Site, len(layer))
	//
	for i, node := range layer {
		sites[i] = node.site
	}
	//
	return sites
}
