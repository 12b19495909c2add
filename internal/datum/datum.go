// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Datum, the timestamped value that every node in a control
// rig produces and consumes.
//
// Why carry timestamps on every value?
//
// Sensor readings, filter outputs and controller commands are only meaningful
// relative to when they were observed. Forcing every value through Datum means
// a derivative node can always compute a delta time, a staleness check can
// always expire old data, and a combinator merging two inputs has a defined
// answer for "when is the result from": the later of the two operands.
package datum

// Time is an absolute timestamp expressed as a monotonically comparable tick
// count. Nanosecond resolution is recommended: integer ticks avoid the
// floating-point precision loss that creeps into long-running float clocks.
type Time int64

// Datum pairs a value with the Time it was observed. A Datum is immutable
// once constructed.
type Datum[T any] struct {
	Time  Time
	Value T
}

// New constructs a Datum.
func New[T any](t Time, value T) Datum[T] {
	return Datum[T]{Time: t, Value: value}
}

// Ptr constructs a Datum and returns its address. Node implementations return
// *Datum so that nil can represent "valid but no data yet".
func Ptr[T any](t Time, value T) *Datum[T] {
	d := New(t, value)
	return &d
}

// Newest returns the newer of two Datums. The first operand wins ties.
func Newest[T any](a, b Datum[T]) Datum[T] {
	if a.Time >= b.Time {
		return a
	}
	return b
}

// MergeTime returns the timestamp a combined value should carry: the later of
// the two operand timestamps.
func MergeTime(a, b Time) Time {
	if a >= b {
		return a
	}
	return b
}

// Combine applies op to two Datum values. The result carries the later of the
// two timestamps; the first operand wins ties.
func Combine[A, B, O any](a Datum[A], b Datum[B], op func(A, B) O) Datum[O] {
	return New(MergeTime(a.Time, b.Time), op(a.Value, b.Value))
}

// Map applies op to a Datum's value, keeping its timestamp.
func Map[T, O any](d Datum[T], op func(T) O) Datum[O] {
	return New(d.Time, op(d.Value))
}
