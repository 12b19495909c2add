// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package stream

import "github.com/specialistvlad/controlrig/internal/datum"

// EWMA is an exponentially weighted moving average over an irregularly
// sampled stream. A fixed weighting factor assumes samples arrive at a
// fixed interval, so the blend weight here is elapsed time multiplied by
// the smoothing constant. When that product reaches 1 the filter snaps
// straight to the input: after a long gap the old average carries no
// information worth blending in, and extrapolating the weight past 1 would
// overshoot.
//
// An error or absence from the input drops the running value, so the filter
// re-seeds from the next valid sample.
type EWMA struct {
	input     Getter[float32]
	smoothing float32
	value     *datum.Datum[float32]
	err       error
}

// NewEWMA constructs an EWMA with the given smoothing constant per time
// unit.
func NewEWMA(input Getter[float32], smoothing float32) *EWMA {
	return &EWMA{input: input, smoothing: smoothing}
}

func (e *EWMA) Get() (*datum.Datum[float32], error) { return e.value, e.err }

func (e *EWMA) Update() error {
	in, err := e.input.Get()
	if err != nil {
		e.value, e.err = nil, err
		return err
	}
	if in == nil {
		e.value, e.err = nil, nil
		return nil
	}
	if e.value == nil {
		e.value, e.err = in, nil
		return nil
	}
	w := float32(in.Time-e.value.Time) * e.smoothing
	v := in.Value
	if w < 1 {
		v = e.value.Value + w*(in.Value-e.value.Value)
	}
	e.value = datum.Ptr(in.Time, v)
	e.err = nil
	return nil
}

// MovingAverage is a time-weighted average over a sliding window. Each
// retained sample is weighted by the span since the previous retained
// sample, with the window's left edge standing in for the sample before the
// oldest, and the weighted sum is divided by the window length. Weighting
// by span rather than by count keeps a burst of closely spaced samples from
// dominating the average.
//
// An absent input leaves the buffer and the reported value alone. An error
// clears the buffer and propagates.
type MovingAverage struct {
	input  Getter[float32]
	window datum.Time
	buf    []datum.Datum[float32]
	out    *datum.Datum[float32]
	err    error
}

// NewMovingAverage constructs a MovingAverage over the given window.
func NewMovingAverage(input Getter[float32], window datum.Time) *MovingAverage {
	return &MovingAverage{input: input, window: window}
}

func (m *MovingAverage) Get() (*datum.Datum[float32], error) { return m.out, m.err }

func (m *MovingAverage) Update() error {
	in, err := m.input.Get()
	if err != nil {
		m.buf = m.buf[:0]
		m.out, m.err = nil, err
		return err
	}
	if in == nil {
		if m.err != nil {
			m.out, m.err = nil, nil
		}
		return nil
	}

	m.buf = append(m.buf, *in)
	keep := 0
	for keep < len(m.buf) && m.buf[keep].Time <= in.Time-m.window {
		keep++
	}
	m.buf = append(m.buf[:0], m.buf[keep:]...)

	var sum float32
	prev := in.Time - m.window
	for _, s := range m.buf {
		sum += s.Value * float32(s.Time-prev)
		prev = s.Time
	}
	m.out = datum.Ptr(in.Time, sum/float32(m.window))
	m.err = nil
	return nil
}
