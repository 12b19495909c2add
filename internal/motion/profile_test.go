package motion

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/controlrig/internal/datum"
)

func TestNewProfileMilestones(t *testing.T) {
	cases := []struct {
		name           string
		start, end     State
		maxVel, maxAcc float32
		t1, t2, t3     datum.Time
		wantAcc        float32
	}{
		{"rest to rest", NewState(0, 0, 0), NewState(3, 0, 0), 0.1, 0.01, 10, 30, 40, 0.01},
		{"offset start", NewState(1, 0, 0), NewState(3, 0, 0), 0.1, 0.01, 10, 20, 30, 0.01},
		{"already at cruise", NewState(0, 0.1, 0), NewState(3, 0, 0), 0.1, 0.01, 0, 25, 35, 0.01},
		{"start acceleration ignored", NewState(0, 0, 0.01), NewState(3, 0, 0), 0.1, 0.01, 10, 30, 40, 0.01},
		{"faster cruise", NewState(0, 0, 0), NewState(6, 0, 0), 0.2, 0.01, 20, 30, 50, 0.01},
		{"harder acceleration", NewState(0, 0, 0), NewState(3, 0, 0), 0.1, 0.02, 5, 30, 35, 0.02},
		{"reverse travel", NewState(0, 0, 0), NewState(-3, 0, 0), 0.1, 0.01, 10, 30, 40, -0.01},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := NewProfile(tc.start, tc.end, tc.maxVel, tc.maxAcc)
			require.NoError(t, err)
			t1, t2, t3 := p.Milestones()
			assert.Equal(t, tc.t1, t1)
			assert.Equal(t, tc.t2, t2)
			assert.Equal(t, tc.t3, t3)
			assert.Equal(t, tc.wantAcc, p.MaxAcceleration())
		})
	}
}

func TestNewProfileUnreachable(t *testing.T) {
	// Start velocity above the cruise limit: phase one would need to
	// accelerate backwards.
	_, err := NewProfile(NewState(0, 0.5, 0), NewState(3, 0, 0), 0.1, 0.01)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreachable)

	// End so close that decelerating from cruise overshoots it.
	_, err = NewProfile(NewState(0, 0.1, 0), NewState(0.1, 0, 0), 0.1, 0.01)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreachable)
}

// Degenerate limits used to slip past the feasibility checks because NaN
// and Inf phase durations compare false against zero, yielding a profile
// with garbage milestones instead of an error.
func TestNewProfileDegenerateLimits(t *testing.T) {
	cases := []struct {
		name           string
		start, end     State
		maxVel, maxAcc float32
	}{
		{"zero velocity limit", NewState(0, 0, 0), NewState(3, 0, 0), 0, 0.01},
		{"zero acceleration limit at cruise", NewState(0, 0.1, 0), NewState(3, 0.1, 0), 0.1, 0},
		{"both limits zero", NewState(0, 0, 0), NewState(3, 0, 0), 0, 0},
		{"nan velocity limit", NewState(0, 0, 0), NewState(3, 0, 0), float32(math.NaN()), 0.01},
		{"inf velocity limit", NewState(0, 0, 0), NewState(3, 0, 0), float32(math.Inf(1)), 0.01},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewProfile(tc.start, tc.end, tc.maxVel, tc.maxAcc)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnreachable)
		})
	}
}

func TestProfilePieces(t *testing.T) {
	p, err := NewProfile(NewState(0, 0, 0), NewState(3, 0, 0), 0.1, 0.01)
	require.NoError(t, err)

	assert.Equal(t, PieceBeforeStart, p.PieceAt(-1))
	assert.Equal(t, PieceInitialAcceleration, p.PieceAt(0))
	assert.Equal(t, PieceInitialAcceleration, p.PieceAt(9))
	assert.Equal(t, PieceConstantVelocity, p.PieceAt(10))
	assert.Equal(t, PieceEndAcceleration, p.PieceAt(30))
	assert.Equal(t, PieceComplete, p.PieceAt(40))
	assert.Equal(t, PieceComplete, p.PieceAt(1000))
}

// Position and velocity must be continuous across every phase boundary.
func TestProfileContinuity(t *testing.T) {
	p, err := NewProfile(NewState(0, 0, 0), NewState(3, 0, 0), 0.1, 0.01)
	require.NoError(t, err)
	t1, t2, t3 := p.Milestones()

	for _, boundary := range []datum.Time{t1, t2, t3} {
		before, okB := p.Position(boundary - 1)
		at, okA := p.Position(boundary)
		require.True(t, okB)
		require.True(t, okA)
		assert.InDelta(t, float64(at), float64(before), 0.11, "position jump at t=%d", boundary)

		vBefore, okB := p.Velocity(boundary - 1)
		vAt, okA := p.Velocity(boundary)
		require.True(t, okB)
		require.True(t, okA)
		assert.InDelta(t, float64(vAt), float64(vBefore), 0.011, "velocity jump at t=%d", boundary)
	}
}

func TestProfileEvaluation(t *testing.T) {
	p, err := NewProfile(NewState(0, 0, 0), NewState(3, 0, 0), 0.1, 0.01)
	require.NoError(t, err)

	acc, ok := p.Acceleration(5)
	require.True(t, ok)
	assert.Equal(t, float32(0.01), acc)

	vel, ok := p.Velocity(20)
	require.True(t, ok)
	assert.InDelta(t, 0.1, float64(vel), 1e-6)

	acc, ok = p.Acceleration(35)
	require.True(t, ok)
	assert.Equal(t, float32(-0.01), acc)

	// Complete: the end state is all-zero, so the profile holds position 3.
	pos, ok := p.Position(100)
	require.True(t, ok)
	assert.InDelta(t, 3.0, float64(pos), 1e-4)
	vel, ok = p.Velocity(100)
	require.True(t, ok)
	assert.Equal(t, float32(0), vel)
}

func TestProfileAt(t *testing.T) {
	p, err := NewProfile(NewState(0, 0, 0), NewState(3, 0, 0), 0.1, 0.01)
	require.NoError(t, err)

	assert.Nil(t, p.At(-5))

	d := p.At(5)
	require.NotNil(t, d)
	assert.Equal(t, datum.Time(5), d.Time)
	assert.Equal(t, NewCommand(Acceleration, 0.01), d.Value)

	d = p.At(20)
	require.NotNil(t, d)
	assert.Equal(t, Velocity, d.Value.Kind)
	assert.InDelta(t, 0.1, float64(d.Value.Value), 1e-6)

	d = p.At(500)
	require.NotNil(t, d)
	assert.Equal(t, Position, d.Value.Kind)
	assert.InDelta(t, 3.0, float64(d.Value.Value), 1e-4)
}
