// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package rig

import (
	"context"
	"log/slog"

	"github.com/specialistvlad/controlrig/internal/ctxlog"
	"github.com/specialistvlad/controlrig/internal/motion"
	"github.com/specialistvlad/controlrig/internal/stream"
	"github.com/specialistvlad/controlrig/internal/telemetry"
)

// sampleOf polls one upstream node and captures whatever tri-state outcome
// it produced. Sinks observe; they never alter what flows past them.
func sampleOf(in BuildInput) telemetry.Sample {
	switch g := in.Node.(type) {
	case stream.Getter[float32]:
		return sampleGetter(in.Name, g)
	case stream.Getter[bool]:
		return sampleGetter(in.Name, g)
	case stream.Getter[motion.Command]:
		return sampleGetter(in.Name, g)
	case stream.Getter[motion.State]:
		return sampleGetter(in.Name, g)
	}
	return telemetry.Sample{Node: in.Name, State: "error", Value: "unsampleable stream type"}
}

func sampleGetter[T any](name string, g stream.Getter[T]) telemetry.Sample {
	d, err := g.Get()
	switch {
	case err != nil:
		return telemetry.Sample{Node: name, State: "error", Value: err.Error()}
	case d == nil:
		return telemetry.Sample{Node: name, State: "absent"}
	default:
		return telemetry.Sample{Node: name, Time: d.Time, State: "ok", Value: d.Value}
	}
}

// printSink logs each input's value once per tick.
type printSink struct {
	logger *slog.Logger
	inputs []BuildInput
}

func newPrintSink(logger *slog.Logger, inputs []BuildInput) *printSink {
	return &printSink{logger: logger, inputs: inputs}
}

func (s *printSink) Update() error {
	for _, in := range s.inputs {
		smp := sampleOf(in)
		switch smp.State {
		case "error":
			s.logger.Warn("Sample.", "source", smp.Node, "state", smp.State, "error", smp.Value)
		case "absent":
			s.logger.Info("Sample.", "source", smp.Node, "state", smp.State)
		default:
			s.logger.Info("Sample.", "source", smp.Node, "state", smp.State, "time", int64(smp.Time), "value", smp.Value)
		}
	}
	return nil
}

// emitSink batches each input's sample per tick and ships the batch to a
// telemetry collector.
type emitSink struct {
	ctx     context.Context
	emitter *telemetry.Emitter
	inputs  []BuildInput
}

func newEmitSink(logger *slog.Logger, emitter *telemetry.Emitter, inputs []BuildInput) *emitSink {
	// Update has no context parameter, so the sink carries one for the
	// emitter's connect timeout and logging.
	return &emitSink{
		ctx:     ctxlog.WithLogger(context.Background(), logger),
		emitter: emitter,
		inputs:  inputs,
	}
}

func (s *emitSink) Update() error {
	samples := make([]telemetry.Sample, 0, len(s.inputs))
	for _, in := range s.inputs {
		samples = append(samples, sampleOf(in))
	}
	return s.emitter.Emit(s.ctx, samples)
}

// Close disconnects the sink's emitter.
func (s *emitSink) Close() {
	s.emitter.Close()
}
