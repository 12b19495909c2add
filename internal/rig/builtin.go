// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file registers every built-in node kind. A kind maps one
// `node "<kind>" "<name>"` block to one live graph node; its build function
// checks parameters and input types so that every wiring mistake is caught
// before the first tick.
package rig

import (
	"fmt"
	"time"

	"github.com/specialistvlad/controlrig/internal/datum"
	"github.com/specialistvlad/controlrig/internal/motion"
	"github.com/specialistvlad/controlrig/internal/pid"
	"github.com/specialistvlad/controlrig/internal/stream"
	"github.com/specialistvlad/controlrig/internal/telemetry"
)

func init() {
	RegisterKind(Kind{Name: "constant", MinInputs: 0, MaxInputs: 0, Build: buildConstant})
	RegisterKind(Kind{Name: "profile", MinInputs: 0, MaxInputs: 0, Build: buildProfile})

	RegisterKind(Kind{Name: "command_value", MinInputs: 1, MaxInputs: 1, Build: buildCommandValue})
	RegisterKind(Kind{Name: "state_value", MinInputs: 1, MaxInputs: 1, Build: buildStateValue})
	RegisterKind(Kind{Name: "state_to_command", MinInputs: 1, MaxInputs: 1, Build: buildStateToCommand})

	RegisterKind(Kind{Name: "sum", MinInputs: 1, MaxInputs: -1, Build: buildSum})
	RegisterKind(Kind{Name: "product", MinInputs: 1, MaxInputs: -1, Build: buildProduct})
	RegisterKind(Kind{Name: "difference", MinInputs: 2, MaxInputs: 2, Build: buildDifference})
	RegisterKind(Kind{Name: "quotient", MinInputs: 2, MaxInputs: 2, Build: buildQuotient})
	RegisterKind(Kind{Name: "exponent", MinInputs: 2, MaxInputs: 2, Build: buildExponent})
	RegisterKind(Kind{Name: "derivative", MinInputs: 1, MaxInputs: 1, Build: buildDerivative})
	RegisterKind(Kind{Name: "integral", MinInputs: 1, MaxInputs: 1, Build: buildIntegral})

	RegisterKind(Kind{Name: "not", MinInputs: 1, MaxInputs: 1, Build: buildNot})
	RegisterKind(Kind{Name: "and", MinInputs: 1, MaxInputs: -1, Build: buildAnd})
	RegisterKind(Kind{Name: "or", MinInputs: 1, MaxInputs: -1, Build: buildOr})

	RegisterKind(Kind{Name: "pid", MinInputs: 1, MaxInputs: 1, Build: buildPID})
	RegisterKind(Kind{Name: "ewma", MinInputs: 1, MaxInputs: 1, Build: buildEWMA})
	RegisterKind(Kind{Name: "moving_average", MinInputs: 1, MaxInputs: 1, Build: buildMovingAverage})

	RegisterKind(Kind{Name: "latest", MinInputs: 1, MaxInputs: -1, Build: buildLatest})
	RegisterKind(Kind{Name: "if", MinInputs: 2, MaxInputs: 2, Build: buildIf})
	RegisterKind(Kind{Name: "if_else", MinInputs: 3, MaxInputs: 3, Build: buildIfElse})
	RegisterKind(Kind{Name: "freeze", MinInputs: 2, MaxInputs: 2, Build: buildFreeze})
	RegisterKind(Kind{Name: "expirer", MinInputs: 1, MaxInputs: 1, Build: buildExpirer})

	RegisterKind(Kind{Name: "none_to_error", MinInputs: 1, MaxInputs: 1, Build: buildNoneToError})
	RegisterKind(Kind{Name: "none_to_value", MinInputs: 1, MaxInputs: 1, Build: buildNoneToValue})
	RegisterKind(Kind{Name: "position_to_state", MinInputs: 1, MaxInputs: 1, Build: buildPositionToState})
	RegisterKind(Kind{Name: "velocity_to_state", MinInputs: 1, MaxInputs: 1, Build: buildVelocityToState})
	RegisterKind(Kind{Name: "acceleration_to_state", MinInputs: 1, MaxInputs: 1, Build: buildAccelerationToState})

	RegisterKind(Kind{Name: "print", MinInputs: 1, MaxInputs: -1, Build: buildPrint})
	RegisterKind(Kind{Name: "emit", MinInputs: 1, MaxInputs: -1, Build: buildEmit})
}

// getterOf reports whether an input carries values of type T.
func getterOf[T any](in BuildInput) (stream.Getter[T], bool) {
	g, ok := in.Node.(stream.Getter[T])
	return g, ok
}

// gettersOf coerces every input to type T, or reports that it cannot.
func gettersOf[T any](ins []BuildInput) ([]stream.Getter[T], bool) {
	out := make([]stream.Getter[T], 0, len(ins))
	for _, in := range ins {
		g, ok := getterOf[T](in)
		if !ok {
			return nil, false
		}
		out = append(out, g)
	}
	return out, true
}

func buildConstant(req *BuildRequest) (stream.Updatable, error) {
	if req.Params.IsBool("value") {
		v, err := req.Params.BoolOr("value", false)
		if err != nil {
			return nil, err
		}
		return stream.NewConstant(req.Clock, v), nil
	}
	v, err := req.Params.Float("value")
	if err != nil {
		return nil, err
	}
	return stream.NewConstant(req.Clock, v), nil
}

func buildProfile(req *BuildRequest) (stream.Updatable, error) {
	read := func(prefix string) (motion.State, error) {
		pos, err := req.Params.FloatOr(prefix+"_position", 0)
		if err != nil {
			return motion.State{}, err
		}
		vel, err := req.Params.FloatOr(prefix+"_velocity", 0)
		if err != nil {
			return motion.State{}, err
		}
		acc, err := req.Params.FloatOr(prefix+"_acceleration", 0)
		if err != nil {
			return motion.State{}, err
		}
		return motion.NewState(pos, vel, acc), nil
	}
	start, err := read("start")
	if err != nil {
		return nil, err
	}
	end, err := read("end")
	if err != nil {
		return nil, err
	}
	maxVel, err := req.Params.Float("max_velocity")
	if err != nil {
		return nil, err
	}
	maxAcc, err := req.Params.Float("max_acceleration")
	if err != nil {
		return nil, err
	}
	profile, err := motion.NewProfile(start, end, maxVel, maxAcc)
	if err != nil {
		return nil, err
	}
	return stream.NewFromHistory[motion.Command](profile, req.Clock), nil
}

func buildCommandValue(req *BuildRequest) (stream.Updatable, error) {
	g, err := commandInput(req.Inputs[0])
	if err != nil {
		return nil, err
	}
	return stream.NewMap(g, func(c motion.Command) float32 { return c.Value }), nil
}

func buildStateValue(req *BuildRequest) (stream.Updatable, error) {
	g, err := stateInput(req.Inputs[0])
	if err != nil {
		return nil, err
	}
	name, err := req.Params.String("derivative")
	if err != nil {
		return nil, err
	}
	var d motion.Derivative
	switch name {
	case "position":
		d = motion.Position
	case "velocity":
		d = motion.Velocity
	case "acceleration":
		d = motion.Acceleration
	default:
		return nil, fmt.Errorf("parameter \"derivative\" must be position, velocity or acceleration, got %q", name)
	}
	return stream.NewMap(g, func(s motion.State) float32 { return s.Value(d) }), nil
}

func buildStateToCommand(req *BuildRequest) (stream.Updatable, error) {
	g, err := stateInput(req.Inputs[0])
	if err != nil {
		return nil, err
	}
	return stream.NewMap(g, motion.CommandFromState), nil
}

func buildSum(req *BuildRequest) (stream.Updatable, error) {
	gs, err := floatInputs(req.Inputs)
	if err != nil {
		return nil, err
	}
	return stream.NewSum(gs...)
}

func buildProduct(req *BuildRequest) (stream.Updatable, error) {
	gs, err := floatInputs(req.Inputs)
	if err != nil {
		return nil, err
	}
	return stream.NewProduct(gs...)
}

func buildDifference(req *BuildRequest) (stream.Updatable, error) {
	minuend, err := floatInput(req.Inputs[0])
	if err != nil {
		return nil, err
	}
	subtrahend, err := floatInput(req.Inputs[1])
	if err != nil {
		return nil, err
	}
	return stream.NewDifference(minuend, subtrahend), nil
}

func buildQuotient(req *BuildRequest) (stream.Updatable, error) {
	dividend, err := floatInput(req.Inputs[0])
	if err != nil {
		return nil, err
	}
	divisor, err := floatInput(req.Inputs[1])
	if err != nil {
		return nil, err
	}
	return stream.NewQuotient(dividend, divisor), nil
}

func buildExponent(req *BuildRequest) (stream.Updatable, error) {
	base, err := floatInput(req.Inputs[0])
	if err != nil {
		return nil, err
	}
	exponent, err := floatInput(req.Inputs[1])
	if err != nil {
		return nil, err
	}
	return stream.NewExponent(base, exponent), nil
}

func buildDerivative(req *BuildRequest) (stream.Updatable, error) {
	g, err := floatInput(req.Inputs[0])
	if err != nil {
		return nil, err
	}
	return stream.NewDerivative(g), nil
}

func buildIntegral(req *BuildRequest) (stream.Updatable, error) {
	g, err := floatInput(req.Inputs[0])
	if err != nil {
		return nil, err
	}
	return stream.NewIntegral(g), nil
}

func buildNot(req *BuildRequest) (stream.Updatable, error) {
	g, err := boolInput(req.Inputs[0])
	if err != nil {
		return nil, err
	}
	return stream.NewNot(g), nil
}

func buildAnd(req *BuildRequest) (stream.Updatable, error) {
	gs, err := boolInputs(req.Inputs)
	if err != nil {
		return nil, err
	}
	return stream.NewAnd(gs...)
}

func buildOr(req *BuildRequest) (stream.Updatable, error) {
	gs, err := boolInputs(req.Inputs)
	if err != nil {
		return nil, err
	}
	return stream.NewOr(gs...)
}

func buildPID(req *BuildRequest) (stream.Updatable, error) {
	g, err := floatInput(req.Inputs[0])
	if err != nil {
		return nil, err
	}
	setpoint, err := req.Params.Float("setpoint")
	if err != nil {
		return nil, err
	}
	kp, err := req.Params.FloatOr("kp", 0)
	if err != nil {
		return nil, err
	}
	ki, err := req.Params.FloatOr("ki", 0)
	if err != nil {
		return nil, err
	}
	kd, err := req.Params.FloatOr("kd", 0)
	if err != nil {
		return nil, err
	}
	order, err := req.Params.IntOr("order", 0)
	if err != nil {
		return nil, err
	}
	if order < 0 {
		return nil, fmt.Errorf("parameter \"order\" must not be negative, got %d", order)
	}
	gains := pid.NewGains(kp, ki, kd)
	if order == 0 {
		return stream.NewPID(g, setpoint, gains), nil
	}
	return stream.NewPIDShift(g, setpoint, gains, int(order)), nil
}

func buildEWMA(req *BuildRequest) (stream.Updatable, error) {
	g, err := floatInput(req.Inputs[0])
	if err != nil {
		return nil, err
	}
	smoothing, err := req.Params.Float("smoothing")
	if err != nil {
		return nil, err
	}
	return stream.NewEWMA(g, smoothing), nil
}

func buildMovingAverage(req *BuildRequest) (stream.Updatable, error) {
	g, err := floatInput(req.Inputs[0])
	if err != nil {
		return nil, err
	}
	window, err := req.Params.Int("window")
	if err != nil {
		return nil, err
	}
	if window <= 0 {
		return nil, fmt.Errorf("parameter \"window\" must be positive, got %d", window)
	}
	return stream.NewMovingAverage(g, datum.Time(window)), nil
}

func buildLatest(req *BuildRequest) (stream.Updatable, error) {
	if gs, ok := gettersOf[float32](req.Inputs); ok {
		return stream.NewLatest(gs...)
	}
	if gs, ok := gettersOf[bool](req.Inputs); ok {
		return stream.NewLatest(gs...)
	}
	if gs, ok := gettersOf[motion.Command](req.Inputs); ok {
		return stream.NewLatest(gs...)
	}
	if gs, ok := gettersOf[motion.State](req.Inputs); ok {
		return stream.NewLatest(gs...)
	}
	return nil, fmt.Errorf("inputs do not share a stream type")
}

func buildIf(req *BuildRequest) (stream.Updatable, error) {
	cond, err := boolInput(req.Inputs[0])
	if err != nil {
		return nil, err
	}
	in := req.Inputs[1]
	if g, ok := getterOf[float32](in); ok {
		return stream.NewIf(cond, g), nil
	}
	if g, ok := getterOf[bool](in); ok {
		return stream.NewIf(cond, g), nil
	}
	if g, ok := getterOf[motion.Command](in); ok {
		return stream.NewIf(cond, g), nil
	}
	if g, ok := getterOf[motion.State](in); ok {
		return stream.NewIf(cond, g), nil
	}
	return nil, fmt.Errorf("input %q is not a stream", in.Name)
}

func buildIfElse(req *BuildRequest) (stream.Updatable, error) {
	cond, err := boolInput(req.Inputs[0])
	if err != nil {
		return nil, err
	}
	branches := req.Inputs[1:]
	if gs, ok := gettersOf[float32](branches); ok {
		return stream.NewIfElse(cond, gs[0], gs[1]), nil
	}
	if gs, ok := gettersOf[bool](branches); ok {
		return stream.NewIfElse(cond, gs[0], gs[1]), nil
	}
	if gs, ok := gettersOf[motion.Command](branches); ok {
		return stream.NewIfElse(cond, gs[0], gs[1]), nil
	}
	if gs, ok := gettersOf[motion.State](branches); ok {
		return stream.NewIfElse(cond, gs[0], gs[1]), nil
	}
	return nil, fmt.Errorf("branch inputs do not share a stream type")
}

func buildFreeze(req *BuildRequest) (stream.Updatable, error) {
	cond, err := boolInput(req.Inputs[0])
	if err != nil {
		return nil, err
	}
	in := req.Inputs[1]
	if g, ok := getterOf[float32](in); ok {
		return stream.NewFreeze(cond, g), nil
	}
	if g, ok := getterOf[bool](in); ok {
		return stream.NewFreeze(cond, g), nil
	}
	if g, ok := getterOf[motion.Command](in); ok {
		return stream.NewFreeze(cond, g), nil
	}
	if g, ok := getterOf[motion.State](in); ok {
		return stream.NewFreeze(cond, g), nil
	}
	return nil, fmt.Errorf("input %q is not a stream", in.Name)
}

func buildExpirer(req *BuildRequest) (stream.Updatable, error) {
	maxAge, err := req.Params.Int("max_age")
	if err != nil {
		return nil, err
	}
	if maxAge < 0 {
		return nil, fmt.Errorf("parameter \"max_age\" must not be negative, got %d", maxAge)
	}
	in := req.Inputs[0]
	if g, ok := getterOf[float32](in); ok {
		return stream.NewExpirer(g, req.Clock, datum.Time(maxAge)), nil
	}
	if g, ok := getterOf[bool](in); ok {
		return stream.NewExpirer(g, req.Clock, datum.Time(maxAge)), nil
	}
	if g, ok := getterOf[motion.Command](in); ok {
		return stream.NewExpirer(g, req.Clock, datum.Time(maxAge)), nil
	}
	if g, ok := getterOf[motion.State](in); ok {
		return stream.NewExpirer(g, req.Clock, datum.Time(maxAge)), nil
	}
	return nil, fmt.Errorf("input %q is not a stream", in.Name)
}

func buildNoneToError(req *BuildRequest) (stream.Updatable, error) {
	in := req.Inputs[0]
	if g, ok := getterOf[float32](in); ok {
		return stream.NewNoneToError(g), nil
	}
	if g, ok := getterOf[bool](in); ok {
		return stream.NewNoneToError(g), nil
	}
	if g, ok := getterOf[motion.Command](in); ok {
		return stream.NewNoneToError(g), nil
	}
	if g, ok := getterOf[motion.State](in); ok {
		return stream.NewNoneToError(g), nil
	}
	return nil, fmt.Errorf("input %q is not a stream", in.Name)
}

func buildNoneToValue(req *BuildRequest) (stream.Updatable, error) {
	in := req.Inputs[0]
	if req.Params.IsBool("value") {
		g, err := boolInput(in)
		if err != nil {
			return nil, err
		}
		v, err := req.Params.BoolOr("value", false)
		if err != nil {
			return nil, err
		}
		return stream.NewNoneToValue(g, req.Clock, v), nil
	}
	g, err := floatInput(in)
	if err != nil {
		return nil, err
	}
	v, err := req.Params.Float("value")
	if err != nil {
		return nil, err
	}
	return stream.NewNoneToValue(g, req.Clock, v), nil
}

func buildPositionToState(req *BuildRequest) (stream.Updatable, error) {
	g, err := floatInput(req.Inputs[0])
	if err != nil {
		return nil, err
	}
	return stream.NewPositionToState(g), nil
}

func buildVelocityToState(req *BuildRequest) (stream.Updatable, error) {
	g, err := floatInput(req.Inputs[0])
	if err != nil {
		return nil, err
	}
	return stream.NewVelocityToState(g), nil
}

func buildAccelerationToState(req *BuildRequest) (stream.Updatable, error) {
	g, err := floatInput(req.Inputs[0])
	if err != nil {
		return nil, err
	}
	return stream.NewAccelerationToState(g), nil
}

func buildPrint(req *BuildRequest) (stream.Updatable, error) {
	return newPrintSink(req.Logger, req.Inputs), nil
}

func buildEmit(req *BuildRequest) (stream.Updatable, error) {
	urlStr, err := req.Params.String("url")
	if err != nil {
		return nil, err
	}
	namespace, err := req.Params.StringOr("namespace", "")
	if err != nil {
		return nil, err
	}
	event, err := req.Params.StringOr("event", "")
	if err != nil {
		return nil, err
	}
	timeoutStr, err := req.Params.StringOr("timeout", "")
	if err != nil {
		return nil, err
	}
	var timeout time.Duration
	if timeoutStr != "" {
		timeout, err = time.ParseDuration(timeoutStr)
		if err != nil {
			return nil, fmt.Errorf("parameter \"timeout\": %w", err)
		}
	}
	insecure, err := req.Params.BoolOr("insecure_skip_verify", false)
	if err != nil {
		return nil, err
	}
	emitter, err := telemetry.NewEmitter(telemetry.Config{
		URL:                urlStr,
		Namespace:          namespace,
		Event:              event,
		Timeout:            timeout,
		InsecureSkipVerify: insecure,
	})
	if err != nil {
		return nil, err
	}
	return newEmitSink(req.Logger, emitter, req.Inputs), nil
}
