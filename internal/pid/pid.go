// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package pid implements the proportional-integral-derivative recurrence
// shared by the stream-level controller node.
//
// Why does the first update return only the proportional term?
//
// With a single sample there is no elapsed time, so neither the backward
// difference nor the trapezoidal integral is defined. Rather than invent a
// delta, the controller bootstraps: the first update records state and
// contributes zero integral and derivative terms. Every later update
// integrates error with the trapezoid rule (average of the previous and
// current error over the elapsed time) and differentiates with a backward
// difference over the same span.
package pid

import "github.com/specialistvlad/controlrig/internal/datum"

// Gains holds the three controller coefficients.
type Gains struct {
	KP float32
	KI float32
	KD float32
}

// NewGains constructs a Gains value.
func NewGains(kp, ki, kd float32) Gains {
	return Gains{KP: kp, KI: ki, KD: kd}
}

// Controller is a PID controller over absolute timestamps. The zero value is
// not usable; construct with New.
type Controller struct {
	setpoint  float32
	gains     Gains
	hasPrev   bool
	prevTime  datum.Time
	prevError float32
	integral  float32
}

// New constructs a Controller.
func New(setpoint float32, gains Gains) *Controller {
	return &Controller{setpoint: setpoint, gains: gains}
}

// Setpoint returns the current setpoint.
func (c *Controller) Setpoint() float32 {
	return c.setpoint
}

// SetSetpoint changes the setpoint without clearing accumulated state.
func (c *Controller) SetSetpoint(setpoint float32) {
	c.setpoint = setpoint
}

// Reset clears accumulated state so the next update bootstraps like the
// first ever.
func (c *Controller) Reset() {
	c.hasPrev = false
	c.prevError = 0
	c.integral = 0
}

// Update feeds a new timestamped process-variable sample and returns the new
// control-variable value.
func (c *Controller) Update(t datum.Time, process float32) float32 {
	err := c.setpoint - process
	var drvError float32
	if c.hasPrev {
		deltaTime := float32(t - c.prevTime)
		drvError = (err - c.prevError) / deltaTime
		c.integral += deltaTime * (c.prevError + err) / 2
	}
	c.prevTime = t
	c.prevError = err
	c.hasPrev = true
	return c.gains.KP*err + c.gains.KI*c.integral + c.gains.KD*drvError
}

// Shift is a PID controller whose control variable is integrated a fixed
// number of times, which simplifies driving systems that respond to a
// derivative of the controlled quantity (a voltage-driven motor tracking
// position, for example). Order is the number of integrations.
type Shift struct {
	inner  Controller
	shifts []float32
}

// NewShift constructs a Shift of the given order. Order zero behaves exactly
// like a plain Controller.
func NewShift(setpoint float32, gains Gains, order int) *Shift {
	return &Shift{
		inner:  *New(setpoint, gains),
		shifts: make([]float32, order+1),
	}
}

// Reset clears accumulated state, including every integration stage.
func (s *Shift) Reset() {
	s.inner.Reset()
	for i := range s.shifts {
		s.shifts[i] = 0
	}
}

// Update feeds a new sample and returns the control value integrated through
// every stage.
func (s *Shift) Update(t datum.Time, process float32) float32 {
	var deltaTime float32
	if s.inner.hasPrev {
		deltaTime = float32(t - s.inner.prevTime)
	}
	control := s.inner.Update(t, process)

	next := make([]float32, len(s.shifts))
	next[0] = control
	for i := 1; i < len(next); i++ {
		next[i] = s.shifts[i] + deltaTime*(s.shifts[i-1]+next[i-1])/2
	}
	s.shifts = next
	return s.shifts[len(s.shifts)-1]
}
