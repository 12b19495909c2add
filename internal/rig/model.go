// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Rig structure, the root container for everything
// loaded from a user's .hcl files.
//
// Why have a Rig?
//
// A control setup may be split across several files: the motion plan in
// one, the filter chain in another, the telemetry sinks in a third. The Rig
// consolidates every node block discovered under a path into a single view
// so the builder can resolve input references that span files.
package rig

import "fmt"

// ClockName is the reserved node name under which the driver's clock is
// registered in every built graph.
const ClockName = "clock"

const (
	defaultTicks        = 10
	defaultTickInterval = 1
)

// Settings holds the rig-wide run parameters from the `rig {}` block.
type Settings struct {
	// Ticks is how many driver ticks to run.
	Ticks int `hcl:"ticks,optional"`
	// TickInterval is the clock step per tick, in time units.
	TickInterval int64 `hcl:"tick_interval,optional"`
}

// Node is the format-agnostic representation of a `node "<kind>" "<name>"`
// block.
type Node struct {
	Kind   string
	Name   string
	Inputs []string
	Params Params

	// File is where the block was declared, for error messages.
	File string
}

// Rig is the consolidated model of a control setup.
type Rig struct {
	Settings Settings
	Nodes    []*Node
}

// Node returns the declared node by name.
func (r *Rig) Node(name string) (*Node, bool) {
	for _, n := range r.Nodes {
		if n.Name == name {
			return n, true
		}
	}
	return nil, false
}

func (r *Rig) validate() error {
	if r.Settings.Ticks <= 0 {
		return fmt.Errorf("rig: ticks must be positive, got %d", r.Settings.Ticks)
	}
	if r.Settings.TickInterval <= 0 {
		return fmt.Errorf("rig: tick_interval must be positive, got %d", r.Settings.TickInterval)
	}
	seen := make(map[string]string, len(r.Nodes))
	for _, n := range r.Nodes {
		if n.Name == ClockName {
			return fmt.Errorf("rig: node name %q is reserved (%s)", ClockName, n.File)
		}
		if prev, ok := seen[n.Name]; ok {
			return fmt.Errorf("rig: duplicate node %q declared in %s and %s", n.Name, prev, n.File)
		}
		seen[n.Name] = n.File
	}
	for _, n := range r.Nodes {
		for _, input := range n.Inputs {
			if _, ok := seen[input]; !ok {
				return fmt.Errorf("rig: node %q references unknown input %q (%s)", n.Name, input, n.File)
			}
		}
	}
	return nil
}
