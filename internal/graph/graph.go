// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package graph

import (
	"errors"
	"fmt"
	"sort"

	"github.com/specialistvlad/controlrig/internal/stream"
)

// ErrCycle reports that the wired topology is not a DAG.
var ErrCycle = errors.New("graph: cycle detected")

// Graph is a named collection of updatable nodes plus the dependency edges
// between them. It is populated once at build time and read-only afterwards.
type Graph struct {
	nodes map[string]stream.Updatable
	deps  map[string]map[string]struct{}
}

// New constructs an empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]stream.Updatable),
		deps:  make(map[string]map[string]struct{}),
	}
}

// AddNode registers a node under a unique name.
func (g *Graph) AddNode(name string, node stream.Updatable) error {
	if _, exists := g.nodes[name]; exists {
		return fmt.Errorf("graph: duplicate node %q", name)
	}
	g.nodes[name] = node
	g.deps[name] = make(map[string]struct{})
	return nil
}

// AddEdge records that `to` reads from `from`, so `from` must update first.
func (g *Graph) AddEdge(from, to string) error {
	if _, ok := g.nodes[from]; !ok {
		return fmt.Errorf("graph: edge references unknown node %q", from)
	}
	if _, ok := g.nodes[to]; !ok {
		return fmt.Errorf("graph: edge references unknown node %q", to)
	}
	if from == to {
		return fmt.Errorf("graph: node %q cannot depend on itself", from)
	}
	g.deps[to][from] = struct{}{}
	return nil
}

// Node returns the registered node by name.
func (g *Graph) Node(name string) (stream.Updatable, bool) {
	n, ok := g.nodes[name]
	return n, ok
}

// Len returns the number of registered nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Names returns all node names in lexicographic order.
func (g *Graph) Names() []string {
	names := make([]string, 0, len(g.nodes))
	for name := range g.nodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DependenciesOf returns the names of the nodes `name` reads from, sorted.
func (g *Graph) DependenciesOf(name string) []string {
	deps := make([]string, 0, len(g.deps[name]))
	for dep := range g.deps[name] {
		deps = append(deps, dep)
	}
	sort.Strings(deps)
	return deps
}

// TopoOrder returns a deterministic update order: inputs before dependents,
// ties broken lexicographically. Returns ErrCycle if the edges do not form
// a DAG.
func (g *Graph) TopoOrder() ([]string, error) {
	remaining := make(map[string]int, len(g.nodes))
	dependents := make(map[string][]string, len(g.nodes))
	for name, deps := range g.deps {
		remaining[name] = len(deps)
		for dep := range deps {
			dependents[dep] = append(dependents[dep], name)
		}
	}

	var ready []string
	for name, count := range remaining {
		if count == 0 {
			ready = append(ready, name)
		}
	}
	sort.Strings(ready)

	order := make([]string, 0, len(g.nodes))
	for len(ready) > 0 {
		name := ready[0]
		ready = ready[1:]
		order = append(order, name)
		unlocked := false
		for _, dependent := range dependents[name] {
			remaining[dependent]--
			if remaining[dependent] == 0 {
				ready = append(ready, dependent)
				unlocked = true
			}
		}
		if unlocked {
			sort.Strings(ready)
		}
	}

	if len(order) != len(g.nodes) {
		var stuck []string
		for name, count := range remaining {
			if count > 0 {
				stuck = append(stuck, name)
			}
		}
		sort.Strings(stuck)
		return nil, fmt.Errorf("%w involving %v", ErrCycle, stuck)
	}
	return order, nil
}
