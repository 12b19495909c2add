// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package stream

import "github.com/specialistvlad/controlrig/internal/datum"

// Constant reports a fixed value stamped with the current time. It is
// settable, which makes it the standard adapter for externally written
// values: setpoints, sensor injections, operator overrides.
type Constant[T any] struct {
	clock TimeGetter
	value T
}

// NewConstant constructs a Constant read off the given time source.
func NewConstant[T any](clock TimeGetter, value T) *Constant[T] {
	return &Constant[T]{clock: clock, value: value}
}

func (c *Constant[T]) Update() error { return nil }

func (c *Constant[T]) Get() (*datum.Datum[T], error) {
	t, err := c.clock.Time()
	if err != nil {
		return nil, err
	}
	return datum.Ptr(t, c.value), nil
}

// Set replaces the reported value.
func (c *Constant[T]) Set(value T) error {
	c.value = value
	return nil
}

// None never has a value. Useful as a placeholder input.
type None[T any] struct{}

func (None[T]) Update() error                 { return nil }
func (None[T]) Get() (*datum.Datum[T], error) { return nil, nil }

// TimeFromGetter re-exposes just the timestamp of an existing stream,
// turning any getter into a time source. An absent value from the
// underlying stream means there is no timestamp to report, which for a time
// source is a failure, not an absence.
type TimeFromGetter[T any] struct {
	input Getter[T]
}

// NewTimeFromGetter constructs a TimeFromGetter.
func NewTimeFromGetter[T any](input Getter[T]) *TimeFromGetter[T] {
	return &TimeFromGetter[T]{input: input}
}

func (g *TimeFromGetter[T]) Update() error { return nil }

func (g *TimeFromGetter[T]) Time() (datum.Time, error) {
	d, err := g.input.Get()
	if err != nil {
		return 0, err
	}
	if d == nil {
		return 0, ErrNoValue
	}
	return d.Time, nil
}

// FromHistory evaluates a History at "now" each poll. This is the bridge
// that lets a planned motion profile act as a graph source for a
// controller's setpoint input.
type FromHistory[T any] struct {
	history History[T]
	clock   TimeGetter
}

// NewFromHistory constructs a FromHistory.
func NewFromHistory[T any](history History[T], clock TimeGetter) *FromHistory[T] {
	return &FromHistory[T]{history: history, clock: clock}
}

func (f *FromHistory[T]) Update() error { return nil }

func (f *FromHistory[T]) Get() (*datum.Datum[T], error) {
	now, err := f.clock.Time()
	if err != nil {
		return nil, err
	}
	return f.history.At(now), nil
}
