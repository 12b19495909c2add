package graph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/controlrig/internal/datum"
	"github.com/specialistvlad/controlrig/internal/stream"
)

func TestDriverRunsPipeline(t *testing.T) {
	clock := NewClock(1)
	source := stream.NewConstant[float32](clock, 5.0)
	integral := stream.NewIntegral(source)

	g := New()
	require.NoError(t, g.AddNode("source", source))
	require.NoError(t, g.AddNode("integral", integral))
	require.NoError(t, g.AddEdge("source", "integral"))

	d, err := NewDriver(g, clock)
	require.NoError(t, err)
	assert.Equal(t, []string{"source", "integral"}, d.Order())

	// Three ticks sample the constant at t=1,2,3; the first only primes
	// the integral, so the total is 5 over each of the last two steps.
	require.NoError(t, d.Run(t.Context(), 3))
	got, err := integral.Get()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, datum.New[float32](3, 10.0), *got)
}

type failingNode struct{ err error }

func (f failingNode) Update() error { return f.err }

func TestDriverAttributesFailure(t *testing.T) {
	errBoom := errors.New("sensor offline")
	g := New()
	require.NoError(t, g.AddNode("sensor", failingNode{err: errBoom}))

	d, err := NewDriver(g, NewClock(1))
	require.NoError(t, err)

	err = d.Run(t.Context(), 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)
	assert.ErrorContains(t, err, `node "sensor"`)
	assert.ErrorContains(t, err, "tick 1")
}

func TestDriverRejectsCyclicGraph(t *testing.T) {
	g := New()
	require.NoError(t, g.AddNode("a", noopNode{}))
	require.NoError(t, g.AddNode("b", noopNode{}))
	require.NoError(t, g.AddEdge("a", "b"))
	require.NoError(t, g.AddEdge("b", "a"))

	_, err := NewDriver(g, NewClock(1))
	assert.ErrorIs(t, err, ErrCycle)
}
