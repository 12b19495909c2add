// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package stream

import (
	"github.com/specialistvlad/controlrig/internal/datum"
	"github.com/specialistvlad/controlrig/internal/motion"
)

// Map applies a pure function to every value of a stream, preserving
// timestamps. Absence and errors pass through untouched.
type Map[T, O any] struct {
	input Getter[T]
	op    func(T) O
}

// NewMap constructs a Map.
func NewMap[T, O any](input Getter[T], op func(T) O) *Map[T, O] {
	return &Map[T, O]{input: input, op: op}
}

func (m *Map[T, O]) Update() error { return nil }

func (m *Map[T, O]) Get() (*datum.Datum[O], error) {
	d, err := m.input.Get()
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, nil
	}
	mapped := datum.Map(*d, m.op)
	return &mapped, nil
}

// NoneToError converts absence into ErrNoValue, for consumers that must
// have a value and want the absence surfaced loudly.
type NoneToError[T any] struct {
	input Getter[T]
}

// NewNoneToError constructs a NoneToError.
func NewNoneToError[T any](input Getter[T]) *NoneToError[T] {
	return &NoneToError[T]{input: input}
}

func (n *NoneToError[T]) Update() error { return nil }

func (n *NoneToError[T]) Get() (*datum.Datum[T], error) {
	d, err := n.input.Get()
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, ErrNoValue
	}
	return d, nil
}

// NoneToValue substitutes a default for absence, stamped with an external
// time source. This is the one sanctioned place absence becomes a value:
// a coefficient feeding a sum must contribute an explicit zero during a
// derivative's bootstrap window rather than silently dropping out.
type NoneToValue[T any] struct {
	input Getter[T]
	clock TimeGetter
	value T
}

// NewNoneToValue constructs a NoneToValue.
func NewNoneToValue[T any](input Getter[T], clock TimeGetter, value T) *NoneToValue[T] {
	return &NoneToValue[T]{input: input, clock: clock, value: value}
}

func (n *NoneToValue[T]) Update() error { return nil }

func (n *NoneToValue[T]) Get() (*datum.Datum[T], error) {
	d, err := n.input.Get()
	if err != nil {
		return nil, err
	}
	if d != nil {
		return d, nil
	}
	t, err := n.clock.Time()
	if err != nil {
		return nil, err
	}
	return datum.Ptr(t, n.value), nil
}

// PositionToState differentiates a position stream twice to reconstruct a
// full kinematic state. Mostly useful for encoders. The state is reported
// only once three samples have arrived, since acceleration needs two
// velocity estimates.
//
// An absent input is skipped without disturbing accumulated samples; an
// input error clears them.
type PositionToState struct {
	input Getter[float32]
	last  *datum.Datum[float32]
	vel   *float32
	acc   *float32
}

// NewPositionToState constructs a PositionToState.
func NewPositionToState(input Getter[float32]) *PositionToState {
	return &PositionToState{input: input}
}

func (c *PositionToState) Get() (*datum.Datum[motion.State], error) {
	if c.last == nil || c.vel == nil || c.acc == nil {
		return nil, nil
	}
	return datum.Ptr(c.last.Time, motion.NewState(c.last.Value, *c.vel, *c.acc)), nil
}

func (c *PositionToState) Update() error {
	in, err := c.input.Get()
	if err != nil {
		c.last, c.vel, c.acc = nil, nil, nil
		return err
	}
	if in == nil {
		return nil
	}
	if c.last == nil {
		c.last = in
		return nil
	}
	deltaTime := float32(in.Time - c.last.Time)
	vel := (in.Value - c.last.Value) / deltaTime
	if c.vel != nil {
		acc := (vel - *c.vel) / deltaTime
		c.acc = &acc
	}
	c.vel = &vel
	c.last = in
	return nil
}

// VelocityToState integrates and differentiates a velocity stream to
// reconstruct a full kinematic state. Position is relative to zero at the
// first sample. Ready after two samples.
type VelocityToState struct {
	input Getter[float32]
	last  *datum.Datum[float32]
	pos   *float32
	acc   *float32
}

// NewVelocityToState constructs a VelocityToState.
func NewVelocityToState(input Getter[float32]) *VelocityToState {
	return &VelocityToState{input: input}
}

func (c *VelocityToState) Get() (*datum.Datum[motion.State], error) {
	if c.last == nil || c.pos == nil || c.acc == nil {
		return nil, nil
	}
	return datum.Ptr(c.last.Time, motion.NewState(*c.pos, c.last.Value, *c.acc)), nil
}

func (c *VelocityToState) Update() error {
	in, err := c.input.Get()
	if err != nil {
		c.last, c.pos, c.acc = nil, nil, nil
		return err
	}
	if in == nil {
		return nil
	}
	if c.last == nil {
		c.last = in
		return nil
	}
	deltaTime := float32(in.Time - c.last.Time)
	acc := (in.Value - c.last.Value) / deltaTime
	posAdd := (c.last.Value + in.Value) / 2 * deltaTime
	pos := posAdd
	if c.pos != nil {
		pos = *c.pos + posAdd
	}
	c.pos, c.acc = &pos, &acc
	c.last = in
	return nil
}

// AccelerationToState integrates an acceleration stream twice to
// reconstruct a full kinematic state. Velocity and position are relative to
// zero at the first sample. Ready after three samples.
type AccelerationToState struct {
	input Getter[float32]
	last  *datum.Datum[float32]
	vel   *float32
	pos   *float32
}

// NewAccelerationToState constructs an AccelerationToState.
func NewAccelerationToState(input Getter[float32]) *AccelerationToState {
	return &AccelerationToState{input: input}
}

func (c *AccelerationToState) Get() (*datum.Datum[motion.State], error) {
	if c.last == nil || c.vel == nil || c.pos == nil {
		return nil, nil
	}
	return datum.Ptr(c.last.Time, motion.NewState(*c.pos, *c.vel, c.last.Value)), nil
}

func (c *AccelerationToState) Update() error {
	in, err := c.input.Get()
	if err != nil {
		c.last, c.vel, c.pos = nil, nil, nil
		return err
	}
	if in == nil {
		return nil
	}
	if c.last == nil {
		c.last = in
		return nil
	}
	deltaTime := float32(in.Time - c.last.Time)
	velAdd := (c.last.Value + in.Value) / 2 * deltaTime
	if c.vel == nil {
		c.vel = &velAdd
		c.last = in
		return nil
	}
	vel := *c.vel + velAdd
	posAdd := (*c.vel + vel) / 2 * deltaTime
	pos := posAdd
	if c.pos != nil {
		pos = *c.pos + posAdd
	}
	c.vel, c.pos = &vel, &pos
	c.last = in
	return nil
}
