// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package stream

import (
	"github.com/specialistvlad/controlrig/internal/datum"
	"github.com/specialistvlad/controlrig/internal/pid"
)

// PID drives a pid.Controller from a process-variable stream. The output is
// the control variable stamped with the input's timestamp.
//
// An error or absence from the input resets the controller: a gap in the
// process variable invalidates the integral and derivative memory, and
// resuming from stale state would kick the control output.
type PID struct {
	input Getter[float32]
	ctrl  *pid.Controller
	out   *datum.Datum[float32]
	err   error
}

// NewPID constructs a PID node.
func NewPID(input Getter[float32], setpoint float32, gains pid.Gains) *PID {
	return &PID{input: input, ctrl: pid.New(setpoint, gains)}
}

// SetSetpoint changes the target without clearing controller memory.
func (p *PID) SetSetpoint(setpoint float32) {
	p.ctrl.SetSetpoint(setpoint)
}

func (p *PID) Get() (*datum.Datum[float32], error) { return p.out, p.err }

func (p *PID) Update() error {
	in, err := p.input.Get()
	if err != nil {
		p.ctrl.Reset()
		p.out, p.err = nil, err
		return err
	}
	if in == nil {
		p.ctrl.Reset()
		p.out, p.err = nil, nil
		return nil
	}
	p.out = datum.Ptr(in.Time, p.ctrl.Update(in.Time, in.Value))
	p.err = nil
	return nil
}

// PIDShift is PID with the control variable integrated a fixed number of
// times, for plants that respond to a derivative of the controlled
// quantity. Order zero is equivalent to PID.
type PIDShift struct {
	input Getter[float32]
	ctrl  *pid.Shift
	out   *datum.Datum[float32]
	err   error
}

// NewPIDShift constructs a PIDShift of the given integration order.
func NewPIDShift(input Getter[float32], setpoint float32, gains pid.Gains, order int) *PIDShift {
	return &PIDShift{input: input, ctrl: pid.NewShift(setpoint, gains, order)}
}

func (p *PIDShift) Get() (*datum.Datum[float32], error) { return p.out, p.err }

func (p *PIDShift) Update() error {
	in, err := p.input.Get()
	if err != nil {
		p.ctrl.Reset()
		p.out, p.err = nil, err
		return err
	}
	if in == nil {
		p.ctrl.Reset()
		p.out, p.err = nil, nil
		return nil
	}
	p.out = datum.Ptr(in.Time, p.ctrl.Update(in.Time, in.Value))
	p.err = nil
	return nil
}
