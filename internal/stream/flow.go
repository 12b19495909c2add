// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package stream

import (
	"fmt"

	"github.com/specialistvlad/controlrig/internal/datum"
)

// If propagates its input while the condition is definitely true. A false
// or undecided condition suppresses the output.
type If[T any] struct {
	condition Getter[bool]
	input     Getter[T]
}

// NewIf constructs an If.
func NewIf[T any](condition Getter[bool], input Getter[T]) *If[T] {
	return &If[T]{condition: condition, input: input}
}

func (s *If[T]) Update() error { return nil }

func (s *If[T]) Get() (*datum.Datum[T], error) {
	c, err := s.condition.Get()
	if err != nil {
		return nil, err
	}
	if c == nil || !c.Value {
		return nil, nil
	}
	return s.input.Get()
}

// IfElse selects between two inputs on a boolean condition. An undecided
// condition yields no value, since neither branch can be justified.
type IfElse[T any] struct {
	condition Getter[bool]
	ifTrue    Getter[T]
	ifFalse   Getter[T]
}

// NewIfElse constructs an IfElse.
func NewIfElse[T any](condition Getter[bool], ifTrue, ifFalse Getter[T]) *IfElse[T] {
	return &IfElse[T]{condition: condition, ifTrue: ifTrue, ifFalse: ifFalse}
}

func (s *IfElse[T]) Update() error { return nil }

func (s *IfElse[T]) Get() (*datum.Datum[T], error) {
	c, err := s.condition.Get()
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	if c.Value {
		return s.ifTrue.Get()
	}
	return s.ifFalse.Get()
}

// Freeze passes its input through while the condition is false and holds
// the last passed value while the condition is true. An undecided condition
// drops the held value.
type Freeze[T any] struct {
	condition Getter[bool]
	input     Getter[T]
	held      *datum.Datum[T]
	err       error
}

// NewFreeze constructs a Freeze.
func NewFreeze[T any](condition Getter[bool], input Getter[T]) *Freeze[T] {
	return &Freeze[T]{condition: condition, input: input}
}

func (f *Freeze[T]) Get() (*datum.Datum[T], error) { return f.held, f.err }

func (f *Freeze[T]) Update() error {
	c, err := f.condition.Get()
	if err != nil {
		f.held, f.err = nil, err
		return err
	}
	if c == nil {
		f.held, f.err = nil, nil
		return nil
	}
	if !c.Value {
		f.held, f.err = f.input.Get()
		return f.err
	}
	return nil
}

// Latest reports the value of whichever input has the newest timestamp.
// Failing and absent inputs are skipped rather than propagated, which makes
// Latest the standard way to prefer a live sensor over a fallback source.
type Latest[T any] struct {
	inputs []Getter[T]
}

// NewLatest constructs a Latest. At least one input is required.
func NewLatest[T any](inputs ...Getter[T]) (*Latest[T], error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("latest: %w", ErrNoInputs)
	}
	return &Latest[T]{inputs: inputs}, nil
}

func (l *Latest[T]) Update() error { return nil }

func (l *Latest[T]) Get() (*datum.Datum[T], error) {
	var best *datum.Datum[T]
	for _, in := range l.inputs {
		d, err := in.Get()
		if err != nil || d == nil {
			continue
		}
		if best == nil || d.Time > best.Time {
			best = d
		}
	}
	return best, nil
}

// Expirer suppresses data older than a maximum age, judged against an
// external time source. Stale data becomes absence, not an error.
type Expirer[T any] struct {
	input  Getter[T]
	clock  TimeGetter
	maxAge datum.Time
}

// NewExpirer constructs an Expirer.
func NewExpirer[T any](input Getter[T], clock TimeGetter, maxAge datum.Time) *Expirer[T] {
	return &Expirer[T]{input: input, clock: clock, maxAge: maxAge}
}

func (e *Expirer[T]) Update() error { return nil }

func (e *Expirer[T]) Get() (*datum.Datum[T], error) {
	d, err := e.input.Get()
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, nil
	}
	now, err := e.clock.Time()
	if err != nil {
		return nil, err
	}
	if now-d.Time > e.maxAge {
		return nil, nil
	}
	return d, nil
}
