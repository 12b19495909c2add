// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Command, the value a controller hands to an actuator:
// hold a position, run at a velocity, or accelerate at a rate.
//
// Why a tagged value instead of three numbers?
//
// A motor being told "5" needs to know whether that is millimeters,
// millimeters per second, or millimeters per second squared; each demands
// an entirely different drive strategy. Keeping the tag with the number makes
// mixing them up a detectable error instead of a silent unit bug, which is
// why Add and Sub refuse mismatched kinds.
package motion

import (
	"errors"
	"fmt"
)

// ErrKindMismatch is returned when arithmetic is attempted between Commands
// of different derivative kinds.
var ErrKindMismatch = errors.New("motion: command kinds do not match")

// Command tells an actuator what derivative of position to hold constant and
// at what value.
type Command struct {
	Kind  Derivative
	Value float32
}

// NewCommand constructs a Command.
func NewCommand(kind Derivative, value float32) Command {
	return Command{Kind: kind, Value: value}
}

// CommandFromState derives the Command a state implies: a nonzero
// acceleration dominates, then a nonzero velocity, then position.
func CommandFromState(s State) Command {
	if s.Acceleration != 0 {
		return NewCommand(Acceleration, s.Acceleration)
	}
	if s.Velocity != 0 {
		return NewCommand(Velocity, s.Velocity)
	}
	return NewCommand(Position, s.Position)
}

// Position returns the commanded constant position if there is one. A
// velocity or acceleration command has no constant position.
func (c Command) Position() (float32, bool) {
	if c.Kind == Position {
		return c.Value, true
	}
	return 0, false
}

// Velocity returns the commanded constant velocity if there is one. A
// position command implies zero velocity; an acceleration command has no
// constant velocity.
func (c Command) Velocity() (float32, bool) {
	switch c.Kind {
	case Position:
		return 0, true
	case Velocity:
		return c.Value, true
	}
	return 0, false
}

// Acceleration returns the commanded constant acceleration. Position and
// velocity commands imply zero acceleration.
func (c Command) Acceleration() float32 {
	if c.Kind == Acceleration {
		return c.Value
	}
	return 0
}

// Add returns the sum of two Commands of the same kind.
func (c Command) Add(o Command) (Command, error) {
	if c.Kind != o.Kind {
		return Command{}, fmt.Errorf("%w: %v + %v", ErrKindMismatch, c.Kind, o.Kind)
	}
	return NewCommand(c.Kind, c.Value+o.Value), nil
}

// Sub returns the difference of two Commands of the same kind.
func (c Command) Sub(o Command) (Command, error) {
	if c.Kind != o.Kind {
		return Command{}, fmt.Errorf("%w: %v - %v", ErrKindMismatch, c.Kind, o.Kind)
	}
	return NewCommand(c.Kind, c.Value-o.Value), nil
}

// Scale returns the command with its value multiplied by coef.
func (c Command) Scale(coef float32) Command {
	return NewCommand(c.Kind, c.Value*coef)
}

// Neg returns the command with its value negated.
func (c Command) Neg() Command {
	return NewCommand(c.Kind, -c.Value)
}

// String renders the command for logs, e.g. "velocity=0.25".
func (c Command) String() string {
	return fmt.Sprintf("%v=%g", c.Kind, c.Value)
}
