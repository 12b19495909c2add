// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file implements the trapezoidal motion profile: the standard way to
// move an axis from one state to another without exceeding velocity and
// acceleration limits. The planner solves a three-phase boundary-value
// problem once at construction; evaluation at any time afterwards is O(1)
// closed-form arithmetic.
package motion

import (
	"errors"
	"fmt"
	"math"

	"github.com/specialistvlad/controlrig/internal/datum"
)

// ErrUnreachable is returned when the requested start/end states cannot be
// connected in the commanded direction within the given velocity and
// acceleration limits.
var ErrUnreachable = errors.New("motion: trajectory not reachable within limits")

// Piece identifies where in a profile a given time falls.
type Piece int

const (
	PieceBeforeStart Piece = iota
	PieceInitialAcceleration
	PieceConstantVelocity
	PieceEndAcceleration
	PieceComplete
)

// String returns a human-readable phase name.
func (p Piece) String() string {
	switch p {
	case PieceBeforeStart:
		return "before_start"
	case PieceInitialAcceleration:
		return "initial_acceleration"
	case PieceConstantVelocity:
		return "constant_velocity"
	case PieceEndAcceleration:
		return "end_acceleration"
	case PieceComplete:
		return "complete"
	}
	return fmt.Sprintf("piece(%d)", int(p))
}

// Profile is a three-segment trapezoidal-velocity trajectory: accelerate to a
// cruise velocity, cruise, decelerate to the end velocity, then hold the end
// command forever. Immutable once constructed.
type Profile struct {
	startPos float32
	startVel float32
	t1       datum.Time
	t2       datum.Time
	t3       datum.Time
	maxAcc   float32 // signed: matches travel direction
	end      Command
}

// NewProfile plans a trapezoidal trajectory from start to end. maxVel and
// maxAcc are magnitude limits; their signs are forced to match the direction
// of travel. The start state's acceleration is ignored for planning.
//
// An ErrUnreachable result means the limits cannot connect the two states in
// the commanded direction, for example a start velocity above the cruise
// velocity, an end position that cruising would overshoot, or a zero limit.
func NewProfile(start, end State, maxVel, maxAcc float32) (*Profile, error) {
	if maxVel == 0 || maxAcc == 0 {
		return nil, fmt.Errorf("%w: velocity and acceleration limits must be nonzero", ErrUnreachable)
	}

	sign := float32(1)
	if end.Position < start.Position {
		sign = -1
	}
	maxVel = abs32(maxVel) * sign
	maxAcc = abs32(maxAcc) * sign

	dT1 := (maxVel - start.Velocity) / maxAcc
	if dT1 < 0 {
		return nil, fmt.Errorf("%w: cruise velocity %g not reachable from start velocity %g", ErrUnreachable, maxVel, start.Velocity)
	}
	dT1Pos := (start.Velocity + maxVel) / 2 * dT1

	dT3 := (end.Velocity - maxVel) / -maxAcc
	if dT3 < 0 {
		return nil, fmt.Errorf("%w: end velocity %g not reachable from cruise velocity %g", ErrUnreachable, end.Velocity, maxVel)
	}
	dT3Pos := (maxVel + end.Velocity) / 2 * dT3

	dT2Pos := (end.Position - start.Position) - (dT1Pos + dT3Pos)
	dT2 := dT2Pos / maxVel
	if dT2 < 0 {
		return nil, fmt.Errorf("%w: no room to cruise (overshoot of %g)", ErrUnreachable, -dT2Pos)
	}

	// NaN and Inf sail past the feasibility comparisons above; a profile
	// with non-finite phase durations must never be constructed.
	if !finite32(dT1) || !finite32(dT2) || !finite32(dT3) {
		return nil, fmt.Errorf("%w: non-finite phase durations (%g, %g, %g)", ErrUnreachable, dT1, dT2, dT3)
	}

	t1 := datum.Time(math.Round(float64(dT1)))
	t2 := t1 + datum.Time(math.Round(float64(dT2)))
	t3 := t2 + datum.Time(math.Round(float64(dT3)))
	return &Profile{
		startPos: start.Position,
		startVel: start.Velocity,
		t1:       t1,
		t2:       t2,
		t3:       t3,
		maxAcc:   maxAcc,
		end:      CommandFromState(end),
	}, nil
}

// Milestones returns the absolute phase boundaries: end of acceleration, end
// of cruise, end of deceleration.
func (p *Profile) Milestones() (t1, t2, t3 datum.Time) {
	return p.t1, p.t2, p.t3
}

// MaxAcceleration returns the signed acceleration used during phase one.
func (p *Profile) MaxAcceleration() float32 {
	return p.maxAcc
}

// EndCommand returns the command held once the profile completes.
func (p *Profile) EndCommand() Command {
	return p.end
}

// PieceAt returns which phase of the profile t falls in.
func (p *Profile) PieceAt(t datum.Time) Piece {
	switch {
	case t < 0:
		return PieceBeforeStart
	case t < p.t1:
		return PieceInitialAcceleration
	case t < p.t2:
		return PieceConstantVelocity
	case t < p.t3:
		return PieceEndAcceleration
	}
	return PieceComplete
}

// Mode returns which derivative of position the profile is commanding at t.
// The second return is false before the profile starts.
func (p *Profile) Mode(t datum.Time) (Derivative, bool) {
	switch p.PieceAt(t) {
	case PieceBeforeStart:
		return 0, false
	case PieceConstantVelocity:
		return Velocity, true
	case PieceComplete:
		return p.end.Kind, true
	}
	return Acceleration, true
}

// Acceleration returns the intended acceleration at t.
func (p *Profile) Acceleration(t datum.Time) (float32, bool) {
	switch p.PieceAt(t) {
	case PieceBeforeStart:
		return 0, false
	case PieceInitialAcceleration:
		return p.maxAcc, true
	case PieceConstantVelocity:
		return 0, true
	case PieceEndAcceleration:
		return -p.maxAcc, true
	}
	return p.end.Acceleration(), true
}

// Velocity returns the intended velocity at t. The second return is false
// before the profile starts and after completion of an acceleration-kind end
// command, where no constant velocity exists.
func (p *Profile) Velocity(t datum.Time) (float32, bool) {
	tf := float32(t)
	switch p.PieceAt(t) {
	case PieceBeforeStart:
		return 0, false
	case PieceInitialAcceleration:
		return p.maxAcc*tf + p.startVel, true
	case PieceConstantVelocity:
		return p.maxAcc*float32(p.t1) + p.startVel, true
	case PieceEndAcceleration:
		// Velocity ramps back down: mirror of phase one about the cruise.
		return p.maxAcc*float32(p.t1+p.t2-t) + p.startVel, true
	}
	return p.end.Velocity()
}

// Position returns the intended position at t. The second return is false
// before the profile starts and after completion of a non-position end
// command, where no constant position exists.
func (p *Profile) Position(t datum.Time) (float32, bool) {
	tf := float32(t)
	t1 := float32(p.t1)
	t2 := float32(p.t2)
	switch p.PieceAt(t) {
	case PieceBeforeStart:
		return 0, false
	case PieceInitialAcceleration:
		return 0.5*p.maxAcc*tf*tf + p.startVel*tf + p.startPos, true
	case PieceConstantVelocity:
		return p.maxAcc*t1*(tf-t1/2) + p.startVel*tf + p.startPos, true
	case PieceEndAcceleration:
		return p.maxAcc*t1*(t2-t1/2) -
			0.5*p.maxAcc*(tf-t2)*(tf-2*t1-t2) +
			p.startVel*tf + p.startPos, true
	}
	return p.end.Position()
}

// At evaluates the profile as a Command history: the commanded derivative and
// value at time t, or nil before the start. This is what lets a profile act
// as a graph source for a controller's setpoint input.
func (p *Profile) At(t datum.Time) *datum.Datum[Command] {
	mode, ok := p.Mode(t)
	if !ok {
		return nil
	}
	var value float32
	switch mode {
	case Position:
		value, _ = p.Position(t)
	case Velocity:
		value, _ = p.Velocity(t)
	case Acceleration:
		value, _ = p.Acceleration(t)
	}
	return datum.Ptr(t, NewCommand(mode, value))
}

func abs32(v float32) float32 {
	return float32(math.Abs(float64(v)))
}

func finite32(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
