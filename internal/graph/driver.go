// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package graph

import (
	"context"
	"fmt"

	"github.com/specialistvlad/controlrig/internal/ctxlog"
	"github.com/specialistvlad/controlrig/internal/datum"
)

// Clock is the driver's time source. It advances by a fixed interval at the
// start of every tick and satisfies the stream.TimeGetter contract so any
// node can read "now" from it. The zero time is before the first tick.
type Clock struct {
	now      datum.Time
	interval datum.Time
}

// NewClock constructs a Clock stepping by interval per tick.
func NewClock(interval datum.Time) *Clock {
	return &Clock{interval: interval}
}

// Advance moves the clock forward one interval.
func (c *Clock) Advance() { c.now += c.interval }

func (c *Clock) Update() error             { return nil }
func (c *Clock) Time() (datum.Time, error) { return c.now, nil }

// Driver steps a graph through ticks. Each tick advances the clock and then
// calls Update on every node, inputs before dependents. The first node
// failure ends the tick with the failing node named in the error.
type Driver struct {
	graph *Graph
	clock *Clock
	order []string
}

// NewDriver computes the update order for the graph once and binds it to a
// clock.
func NewDriver(g *Graph, clock *Clock) (*Driver, error) {
	order, err := g.TopoOrder()
	if err != nil {
		return nil, err
	}
	return &Driver{graph: g, clock: clock, order: order}, nil
}

// Order returns the update order the driver will use.
func (d *Driver) Order() []string {
	return append([]string(nil), d.order...)
}

// Now returns the clock's current time.
func (d *Driver) Now() (datum.Time, error) {
	return d.clock.Time()
}

// Tick advances the clock and updates every node once.
func (d *Driver) Tick(ctx context.Context) error {
	d.clock.Advance()
	now, _ := d.clock.Time()
	ctxlog.FromContext(ctx).Debug("Tick started.", "time", int64(now))
	for _, name := range d.order {
		node, _ := d.graph.Node(name)
		if err := node.Update(); err != nil {
			return fmt.Errorf("node %q: %w", name, err)
		}
	}
	return nil
}

// Run executes the given number of ticks, stopping at the first failed tick
// or on context cancellation.
func (d *Driver) Run(ctx context.Context, ticks int) error {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Driver starting.", "ticks", ticks, "nodes", d.graph.Len())
	for i := 0; i < ticks; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := d.Tick(ctx); err != nil {
			return fmt.Errorf("tick %d: %w", i+1, err)
		}
	}
	logger.Info("Driver finished.", "ticks", ticks)
	return nil
}
