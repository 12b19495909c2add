// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package motion

import (
	"fmt"

	"github.com/specialistvlad/controlrig/internal/datum"
)

// Derivative identifies which derivative of position a value refers to.
type Derivative int

const (
	Position Derivative = iota
	Velocity
	Acceleration
)

// String returns the lowercase name of the derivative.
func (d Derivative) String() string {
	switch d {
	case Position:
		return "position"
	case Velocity:
		return "velocity"
	case Acceleration:
		return "acceleration"
	}
	return fmt.Sprintf("derivative(%d)", int(d))
}

// State is a one-dimensional motion state: where you are, how fast you are
// going, and how fast that is changing.
type State struct {
	Position     float32
	Velocity     float32
	Acceleration float32
}

// NewState constructs a State.
func NewState(position, velocity, acceleration float32) State {
	return State{Position: position, Velocity: velocity, Acceleration: acceleration}
}

// Project advances the state by deltaTime assuming constant acceleration.
// Position integrates the average of the old and new velocity over the step
// (trapezoid rule) rather than forward-Euler, halving the discretization
// error per step.
func (s *State) Project(deltaTime datum.Time) {
	dt := float32(deltaTime)
	newVelocity := s.Velocity + dt*s.Acceleration
	s.Position += dt * (s.Velocity + newVelocity) / 2.0
	s.Velocity = newVelocity
}

// SetConstantAcceleration sets the acceleration.
func (s *State) SetConstantAcceleration(acceleration float32) {
	s.Acceleration = acceleration
}

// SetConstantVelocity sets the velocity and zeroes the acceleration.
func (s *State) SetConstantVelocity(velocity float32) {
	s.Acceleration = 0
	s.Velocity = velocity
}

// SetConstantPosition sets the position and zeroes velocity and acceleration.
func (s *State) SetConstantPosition(position float32) {
	s.Acceleration = 0
	s.Velocity = 0
	s.Position = position
}

// Value returns the field selected by the given derivative.
func (s State) Value(d Derivative) float32 {
	switch d {
	case Position:
		return s.Position
	case Velocity:
		return s.Velocity
	}
	return s.Acceleration
}

// Neg returns the state with every field negated.
func (s State) Neg() State {
	return NewState(-s.Position, -s.Velocity, -s.Acceleration)
}

// Add returns the field-wise sum of two states.
func (s State) Add(o State) State {
	return NewState(s.Position+o.Position, s.Velocity+o.Velocity, s.Acceleration+o.Acceleration)
}

// Sub returns the field-wise difference of two states.
func (s State) Sub(o State) State {
	return s.Add(o.Neg())
}

// Scale returns the state with every field multiplied by coef.
func (s State) Scale(coef float32) State {
	return NewState(s.Position*coef, s.Velocity*coef, s.Acceleration*coef)
}
