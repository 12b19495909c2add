// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Three-valued boolean combinators. An absent input is "unknown", never
// assumed to be its absorbing value: a conjunction with one definite false
// is definitely false no matter how many inputs are unknown, but a
// conjunction of trues and unknowns cannot be decided yet.
package stream

import (
	"fmt"

	"github.com/specialistvlad/controlrig/internal/datum"
)

// And is an n-ary three-valued conjunction.
//
//	false AND unknown = false
//	true  AND unknown = unknown
//	true  AND true    = true
//
// The output timestamp is the newest among inputs that reported a value,
// regardless of that value.
type And struct {
	inputs []Getter[bool]
}

// NewAnd constructs an And. At least one input is required.
func NewAnd(inputs ...Getter[bool]) (*And, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("and: %w", ErrNoInputs)
	}
	return &And{inputs: inputs}, nil
}

func (a *And) Update() error { return nil }

func (a *And) Get() (*datum.Datum[bool], error) {
	var t *datum.Time
	sawUnknown := false
	result := true
	for _, in := range a.inputs {
		d, err := in.Get()
		if err != nil {
			return nil, err
		}
		if d == nil {
			sawUnknown = true
			continue
		}
		if t == nil || d.Time > *t {
			tt := d.Time
			t = &tt
		}
		if !d.Value {
			result = false
		}
	}
	if t == nil {
		return nil, nil
	}
	if !result {
		return datum.Ptr(*t, false), nil
	}
	if sawUnknown {
		return nil, nil
	}
	return datum.Ptr(*t, true), nil
}

// Or is the dual of And: a definite true decides the result, unknowns
// otherwise leave it undecided, and only an all-false input set yields
// false.
type Or struct {
	inputs []Getter[bool]
}

// NewOr constructs an Or. At least one input is required.
func NewOr(inputs ...Getter[bool]) (*Or, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("or: %w", ErrNoInputs)
	}
	return &Or{inputs: inputs}, nil
}

func (o *Or) Update() error { return nil }

func (o *Or) Get() (*datum.Datum[bool], error) {
	var t *datum.Time
	sawUnknown := false
	result := false
	for _, in := range o.inputs {
		d, err := in.Get()
		if err != nil {
			return nil, err
		}
		if d == nil {
			sawUnknown = true
			continue
		}
		if t == nil || d.Time > *t {
			tt := d.Time
			t = &tt
		}
		if d.Value {
			result = true
		}
	}
	if t == nil {
		return nil, nil
	}
	if result {
		return datum.Ptr(*t, true), nil
	}
	if sawUnknown {
		return nil, nil
	}
	return datum.Ptr(*t, false), nil
}

// Not negates a boolean stream. Unknown stays unknown.
type Not struct {
	input Getter[bool]
}

// NewNot constructs a Not.
func NewNot(input Getter[bool]) *Not {
	return &Not{input: input}
}

func (n *Not) Update() error { return nil }

func (n *Not) Get() (*datum.Datum[bool], error) {
	d, err := n.input.Get()
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, nil
	}
	return datum.Ptr(d.Time, !d.Value), nil
}
