// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package stream implements the pull-based dataflow nodes the graph driver
// wires together: sources, arithmetic and logic combinators, filters, and
// the controller node.
//
// Why a two-method contract instead of plain functions?
//
// Every node is both pollable and steppable. Update advances whatever
// internal state the node keeps (integrals, sample history, controller
// memory) and reports failure; Get returns the node's current timestamped
// value without mutating anything, so it can be polled repeatedly between
// ticks. Pure combinators recompute lazily in Get and their Update is a
// no-op; stateful nodes do all their work in Update and Get just reads the
// stored result.
//
// The poll result is deliberately three-way. (nil, err) means the node
// failed and has nothing. (nil, nil) means the node is healthy but has not
// produced a value yet, like a derivative waiting for its second sample.
// (d, nil) is a valid timestamped value. Absence is not an error and must
// never be silently promoted to a number; NoneToValue exists for the one
// place that substitution is legitimate.
//
// Stateful nodes clear their memory when an input fails so that recovery
// starts from a clean bootstrap instead of blending with stale pre-error
// samples.
package stream

import (
	"errors"

	"github.com/specialistvlad/controlrig/internal/datum"
)

// ErrNoValue reports that a node which was required to produce a value had
// none. NoneToError returns it; TimeFromGetter returns it when the
// underlying stream has no timestamp to offer.
var ErrNoValue = errors.New("stream: no value")

// ErrNoInputs reports a variadic node constructed with zero inputs. This is
// a wiring mistake and is rejected at construction, never at poll time.
var ErrNoInputs = errors.New("stream: at least one input required")

// Updatable is the steppable half of the node contract. The driver calls
// Update once per tick, inputs before dependents.
type Updatable interface {
	Update() error
}

// Getter is a pollable node. Get must be idempotent between Update calls.
type Getter[T any] interface {
	Updatable
	Get() (*datum.Datum[T], error)
}

// TimeGetter is a node exposing only a timestamp, for nodes that need "now"
// but have no natural value source. Unlike Getter there is no absent state:
// a time source either knows the time or fails.
type TimeGetter interface {
	Updatable
	Time() (datum.Time, error)
}

// Settable is a getter that also accepts externally pushed values. This is
// the actuator-facing boundary: device code writes the last commanded value
// through Set and the graph reads it back like any other node.
type Settable[T any] interface {
	Getter[T]
	Set(value T) error
}

// History is anything evaluable at an arbitrary time, such as a planned
// motion profile. FromHistory adapts a History into a graph source.
type History[T any] interface {
	At(t datum.Time) *datum.Datum[T]
}
