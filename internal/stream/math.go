// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package stream

import (
	"fmt"
	"math"

	"github.com/specialistvlad/controlrig/internal/datum"
)

// Sum adds all of its inputs. Absent inputs are excluded (identity 0); an
// all-absent input set yields no value rather than a zero with an invented
// timestamp. The output timestamp is the newest among contributing inputs.
type Sum struct {
	addends []Getter[float32]
}

// NewSum constructs a Sum. At least one addend is required.
func NewSum(addends ...Getter[float32]) (*Sum, error) {
	if len(addends) == 0 {
		return nil, fmt.Errorf("sum: %w", ErrNoInputs)
	}
	return &Sum{addends: addends}, nil
}

func (s *Sum) Update() error { return nil }

func (s *Sum) Get() (*datum.Datum[float32], error) {
	var total float32
	var t *datum.Time
	for _, in := range s.addends {
		d, err := in.Get()
		if err != nil {
			return nil, err
		}
		if d == nil {
			continue
		}
		total += d.Value
		if t == nil || d.Time > *t {
			tt := d.Time
			t = &tt
		}
	}
	if t == nil {
		return nil, nil
	}
	return datum.Ptr(*t, total), nil
}

// Product multiplies all of its inputs. Absent inputs are excluded
// (identity 1); wrap inputs in NoneToValue or NoneToError if a coefficient
// must not silently drop out of the product.
type Product struct {
	factors []Getter[float32]
}

// NewProduct constructs a Product. At least one factor is required.
func NewProduct(factors ...Getter[float32]) (*Product, error) {
	if len(factors) == 0 {
		return nil, fmt.Errorf("product: %w", ErrNoInputs)
	}
	return &Product{factors: factors}, nil
}

func (p *Product) Update() error { return nil }

func (p *Product) Get() (*datum.Datum[float32], error) {
	total := float32(1)
	var t *datum.Time
	for _, in := range p.factors {
		d, err := in.Get()
		if err != nil {
			return nil, err
		}
		if d == nil {
			continue
		}
		total *= d.Value
		if t == nil || d.Time > *t {
			tt := d.Time
			t = &tt
		}
	}
	if t == nil {
		return nil, nil
	}
	return datum.Ptr(*t, total), nil
}

// asymmetric implements the shared shape of the binary operations: both
// inputs are polled so either error propagates; an absent first operand
// yields no value; an absent second operand passes the first operand
// through unchanged.
func asymmetric(first, second Getter[float32], op func(a, b float32) float32) (*datum.Datum[float32], error) {
	a, err := first.Get()
	if err != nil {
		return nil, err
	}
	b, err := second.Get()
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, nil
	}
	if b == nil {
		return a, nil
	}
	d := datum.Combine(*a, *b, op)
	return &d, nil
}

// Difference subtracts the subtrahend stream from the minuend stream. An
// absent subtrahend passes the minuend through; an absent minuend yields no
// value. The asymmetry is deliberate: "nothing to subtract" and "nothing to
// subtract from" are different situations.
type Difference struct {
	minuend    Getter[float32]
	subtrahend Getter[float32]
}

// NewDifference constructs a Difference.
func NewDifference(minuend, subtrahend Getter[float32]) *Difference {
	return &Difference{minuend: minuend, subtrahend: subtrahend}
}

func (d *Difference) Update() error { return nil }

func (d *Difference) Get() (*datum.Datum[float32], error) {
	return asymmetric(d.minuend, d.subtrahend, func(a, b float32) float32 { return a - b })
}

// Quotient divides the dividend stream by the divisor stream, with the same
// asymmetry as Difference.
type Quotient struct {
	dividend Getter[float32]
	divisor  Getter[float32]
}

// NewQuotient constructs a Quotient.
func NewQuotient(dividend, divisor Getter[float32]) *Quotient {
	return &Quotient{dividend: dividend, divisor: divisor}
}

func (q *Quotient) Update() error { return nil }

func (q *Quotient) Get() (*datum.Datum[float32], error) {
	return asymmetric(q.dividend, q.divisor, func(a, b float32) float32 { return a / b })
}

// Exponent raises the base stream to the exponent stream, with the same
// asymmetry as Difference.
type Exponent struct {
	base     Getter[float32]
	exponent Getter[float32]
}

// NewExponent constructs an Exponent.
func NewExponent(base, exponent Getter[float32]) *Exponent {
	return &Exponent{base: base, exponent: exponent}
}

func (e *Exponent) Update() error { return nil }

func (e *Exponent) Get() (*datum.Datum[float32], error) {
	return asymmetric(e.base, e.exponent, func(a, b float32) float32 {
		return float32(math.Pow(float64(a), float64(b)))
	})
}

// Derivative computes the backward-difference numerical derivative of its
// input. The first valid sample only primes the node, so a freshly
// constructed or freshly reset Derivative reports no value until its second
// sample. An error or absence from the input clears the stored sample.
type Derivative struct {
	input Getter[float32]
	prev  *datum.Datum[float32]
	out   *datum.Datum[float32]
	err   error
}

// NewDerivative constructs a Derivative.
func NewDerivative(input Getter[float32]) *Derivative {
	return &Derivative{input: input}
}

func (d *Derivative) Get() (*datum.Datum[float32], error) { return d.out, d.err }

func (d *Derivative) Update() error {
	in, err := d.input.Get()
	if err != nil {
		d.prev, d.out, d.err = nil, nil, err
		return err
	}
	if in == nil {
		d.prev, d.out, d.err = nil, nil, nil
		return nil
	}
	if d.prev == nil {
		d.prev, d.out, d.err = in, nil, nil
		return nil
	}
	slope := (in.Value - d.prev.Value) / float32(in.Time-d.prev.Time)
	d.out = datum.Ptr(in.Time, slope)
	d.prev = in
	d.err = nil
	return nil
}

// Integral computes the trapezoidal numerical integral of its input. Like
// Derivative it primes on the first valid sample and reports no value until
// the second; an error or absence from the input clears the running total.
type Integral struct {
	input Getter[float32]
	prev  *datum.Datum[float32]
	total float32
	out   *datum.Datum[float32]
	err   error
}

// NewIntegral constructs an Integral.
func NewIntegral(input Getter[float32]) *Integral {
	return &Integral{input: input}
}

func (i *Integral) Get() (*datum.Datum[float32], error) { return i.out, i.err }

func (i *Integral) Update() error {
	in, err := i.input.Get()
	if err != nil {
		i.prev, i.total, i.out, i.err = nil, 0, nil, err
		return err
	}
	if in == nil {
		i.prev, i.total, i.out, i.err = nil, 0, nil, nil
		return nil
	}
	if i.prev == nil {
		i.prev, i.total, i.out, i.err = in, 0, nil, nil
		return nil
	}
	i.total += float32(in.Time-i.prev.Time) * (i.prev.Value + in.Value) / 2
	i.out = datum.Ptr(in.Time, i.total)
	i.prev = in
	i.err = nil
	return nil
}
