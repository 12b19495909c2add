package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/controlrig/internal/datum"
)

func TestEWMA(t *testing.T) {
	in := &manual[float32]{}
	e := NewEWMA(in, 0.1)

	// First sample seeds the filter unchanged.
	in.set(0, 10.0)
	require.NoError(t, e.Update())
	got, err := e.Get()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, datum.New[float32](0, 10.0), *got)

	// dt=2, weight=0.2: 10 + 0.2*(20-10) = 12.
	in.set(2, 20.0)
	require.NoError(t, e.Update())
	got, err = e.Get()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, datum.Time(2), got.Time)
	assert.InDelta(t, 12.0, float64(got.Value), 1e-6)

	// dt=18, weight=1.8: snap to the input after a long gap.
	in.set(20, 0.0)
	require.NoError(t, e.Update())
	got, err = e.Get()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, datum.New[float32](20, 0.0), *got)
}

func TestEWMAResetsOnAbsence(t *testing.T) {
	in := &manual[float32]{}
	e := NewEWMA(in, 0.1)

	in.set(0, 10.0)
	require.NoError(t, e.Update())
	in.clear()
	require.NoError(t, e.Update())
	got, err := e.Get()
	require.NoError(t, err)
	assert.Nil(t, got)

	// Re-seeds from the next sample instead of blending with the pre-gap
	// value.
	in.set(30, 7.0)
	require.NoError(t, e.Update())
	got, err = e.Get()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, datum.New[float32](30, 7.0), *got)
}

func TestEWMAResetsOnError(t *testing.T) {
	in := &manual[float32]{}
	e := NewEWMA(in, 0.1)

	in.set(0, 10.0)
	require.NoError(t, e.Update())
	in.fail(errBroken)
	require.ErrorIs(t, e.Update(), errBroken)
	_, err := e.Get()
	assert.ErrorIs(t, err, errBroken)

	in.set(40, 3.0)
	require.NoError(t, e.Update())
	got, err := e.Get()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, datum.New[float32](40, 3.0), *got)
}

func TestMovingAverage(t *testing.T) {
	in := &manual[float32]{}
	m := NewMovingAverage(in, 10)

	// One sample spans the whole window.
	in.set(5, 1.0)
	require.NoError(t, m.Update())
	got, err := m.Get()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, datum.Time(5), got.Time)
	assert.InDelta(t, 1.0, float64(got.Value), 1e-6)

	// Weights: 1.0 over [0,5], 2.0 over [5,10] -> 1.5.
	in.set(10, 2.0)
	require.NoError(t, m.Update())
	got, err = m.Get()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.InDelta(t, 1.5, float64(got.Value), 1e-6)

	// Both earlier samples fall out of the [10,20] window.
	in.set(20, 4.0)
	require.NoError(t, m.Update())
	got, err = m.Get()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.InDelta(t, 4.0, float64(got.Value), 1e-6)
}

func TestMovingAverageHoldsThroughAbsence(t *testing.T) {
	in := &manual[float32]{}
	m := NewMovingAverage(in, 10)

	in.set(5, 2.0)
	require.NoError(t, m.Update())
	in.clear()
	require.NoError(t, m.Update())
	got, err := m.Get()
	require.NoError(t, err)
	require.NotNil(t, got, "a gap in the input keeps the last average")
	assert.InDelta(t, 2.0, float64(got.Value), 1e-6)
}

func TestMovingAverageErrorClearsBuffer(t *testing.T) {
	in := &manual[float32]{}
	m := NewMovingAverage(in, 10)

	in.set(5, 100.0)
	require.NoError(t, m.Update())
	in.fail(errBroken)
	require.ErrorIs(t, m.Update(), errBroken)
	_, err := m.Get()
	assert.ErrorIs(t, err, errBroken)

	// The pre-error sample must not contribute after recovery.
	in.set(25, 3.0)
	require.NoError(t, m.Update())
	got, err := m.Get()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.InDelta(t, 3.0, float64(got.Value), 1e-6)
}
