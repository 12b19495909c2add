// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file turns a validated Rig into a live, runnable graph.
//
// Why lazy recursion?
//
// A node cannot be constructed until its inputs exist, and declaration order
// in the .hcl files carries no meaning. The builder therefore recurses into
// a node's inputs on demand, memoizing what it has built. A cycle in the
// declarations shows up as re-entering a node that is still being built.
package rig

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/specialistvlad/controlrig/internal/ctxlog"
	"github.com/specialistvlad/controlrig/internal/datum"
	"github.com/specialistvlad/controlrig/internal/graph"
	"github.com/specialistvlad/controlrig/internal/stream"
)

// BuildResult bundles everything needed to run a built rig.
type BuildResult struct {
	Graph  *graph.Graph
	Driver *graph.Driver
	Clock  *graph.Clock
	Ticks  int

	closers []interface{ Close() }
}

// Close releases any external connections held by sink nodes.
func (r *BuildResult) Close() {
	for _, c := range r.closers {
		c.Close()
	}
}

// Build constructs every declared node, wires the dependency edges, and
// prepares a driver for the configured tick count.
func Build(ctx context.Context, r *Rig) (*BuildResult, error) {
	logger := ctxlog.FromContext(ctx)

	g := graph.New()
	clock := graph.NewClock(datum.Time(r.Settings.TickInterval))
	if err := g.AddNode(ClockName, clock); err != nil {
		return nil, err
	}

	b := &builder{
		rig:      r,
		graph:    g,
		clock:    clock,
		logger:   logger,
		built:    make(map[string]stream.Updatable, len(r.Nodes)),
		building: make(map[string]bool),
	}

	names := make([]string, 0, len(r.Nodes))
	for _, n := range r.Nodes {
		names = append(names, n.Name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := b.node(name); err != nil {
			return nil, err
		}
	}

	driver, err := graph.NewDriver(g, clock)
	if err != nil {
		return nil, err
	}
	logger.Debug("Rig built.", "nodes", g.Len(), "ticks", r.Settings.Ticks)
	return &BuildResult{
		Graph:   g,
		Driver:  driver,
		Clock:   clock,
		Ticks:   r.Settings.Ticks,
		closers: b.closers,
	}, nil
}

type builder struct {
	rig      *Rig
	graph    *graph.Graph
	clock    *graph.Clock
	logger   *slog.Logger
	built    map[string]stream.Updatable
	building map[string]bool
	closers  []interface{ Close() }
}

func (b *builder) node(name string) (stream.Updatable, error) {
	if n, ok := b.built[name]; ok {
		return n, nil
	}
	if b.building[name] {
		return nil, fmt.Errorf("rig: dependency cycle through node %q", name)
	}
	b.building[name] = true
	defer delete(b.building, name)

	decl, ok := b.rig.Node(name)
	if !ok {
		return nil, fmt.Errorf("rig: unknown node %q", name)
	}
	kind, ok := LookupKind(decl.Kind)
	if !ok {
		return nil, fmt.Errorf("rig: node %q has unknown kind %q (%s)", name, decl.Kind, decl.File)
	}
	if err := kind.checkArity(len(decl.Inputs)); err != nil {
		return nil, fmt.Errorf("rig: node %q: %w (%s)", name, err, decl.File)
	}

	inputs := make([]BuildInput, 0, len(decl.Inputs))
	for _, dep := range decl.Inputs {
		upstream, err := b.node(dep)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, BuildInput{Name: dep, Node: upstream})
	}

	node, err := kind.Build(&BuildRequest{
		Name:   name,
		Clock:  b.clock,
		Inputs: inputs,
		Params: decl.Params,
		Logger: b.logger.With("node", name),
	})
	if err != nil {
		return nil, fmt.Errorf("rig: failed to build node %q: %w (%s)", name, err, decl.File)
	}

	if err := b.graph.AddNode(name, node); err != nil {
		return nil, err
	}
	for _, dep := range decl.Inputs {
		if err := b.graph.AddEdge(dep, name); err != nil {
			return nil, err
		}
	}
	if c, ok := node.(interface{ Close() }); ok {
		b.closers = append(b.closers, c)
	}

	b.built[name] = node
	return node, nil
}
