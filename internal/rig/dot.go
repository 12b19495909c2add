// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package rig

import (
	"fmt"
	"strconv"

	"github.com/awalterschulze/gographviz"
)

// ExportDOT renders the declared wiring as a Graphviz digraph, one box per
// node labelled with its name and kind.
func ExportDOT(r *Rig) (string, error) {
	g := gographviz.NewGraph()
	if err := g.SetName("rig"); err != nil {
		return "", fmt.Errorf("rig: failed to start DOT graph: %w", err)
	}
	if err := g.SetDir(true); err != nil {
		return "", fmt.Errorf("rig: failed to start DOT graph: %w", err)
	}
	for _, n := range r.Nodes {
		attrs := map[string]string{
			"shape": "box",
			"label": strconv.Quote(n.Name + "\n" + n.Kind),
		}
		if err := g.AddNode("rig", strconv.Quote(n.Name), attrs); err != nil {
			return "", fmt.Errorf("rig: failed to add DOT node %q: %w", n.Name, err)
		}
	}
	for _, n := range r.Nodes {
		for _, input := range n.Inputs {
			if err := g.AddEdge(strconv.Quote(input), strconv.Quote(n.Name), true, nil); err != nil {
				return "", fmt.Errorf("rig: failed to add DOT edge %q -> %q: %w", input, n.Name, err)
			}
		}
	}
	return g.String(), nil
}
