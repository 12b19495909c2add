// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package rig

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/specialistvlad/controlrig/internal/motion"
	"github.com/specialistvlad/controlrig/internal/stream"
)

// BuildInput is a built upstream node handed to a kind's build function.
type BuildInput struct {
	Name string
	Node stream.Updatable
}

// BuildRequest carries everything a kind needs to construct its node.
type BuildRequest struct {
	Name   string
	Clock  stream.TimeGetter
	Inputs []BuildInput
	Params Params
	Logger *slog.Logger
}

// BuildFunc constructs a node from its resolved inputs and parameters.
type BuildFunc func(req *BuildRequest) (stream.Updatable, error)

// Kind describes one registered node kind.
type Kind struct {
	Name      string
	MinInputs int
	// MaxInputs of -1 means unbounded.
	MaxInputs int
	Build     BuildFunc
}

var kinds = map[string]Kind{}

// RegisterKind adds a kind to the global registry. A duplicate registration
// is a programmer error and panics at startup.
func RegisterKind(k Kind) {
	if _, exists := kinds[k.Name]; exists {
		panic(fmt.Sprintf("rig: kind %q registered twice", k.Name))
	}
	kinds[k.Name] = k
}

// LookupKind returns a registered kind by name.
func LookupKind(name string) (Kind, bool) {
	k, ok := kinds[name]
	return k, ok
}

// KindNames returns every registered kind name, sorted.
func KindNames() []string {
	names := make([]string, 0, len(kinds))
	for name := range kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (k Kind) checkArity(n int) error {
	if n < k.MinInputs {
		return fmt.Errorf("kind %q needs at least %d input(s), got %d", k.Name, k.MinInputs, n)
	}
	if k.MaxInputs >= 0 && n > k.MaxInputs {
		return fmt.Errorf("kind %q takes at most %d input(s), got %d", k.Name, k.MaxInputs, n)
	}
	return nil
}

// The coercion helpers turn wiring mistakes (a boolean stream fed into an
// arithmetic node) into named build-time errors.

func floatInput(in BuildInput) (stream.Getter[float32], error) {
	g, ok := in.Node.(stream.Getter[float32])
	if !ok {
		return nil, fmt.Errorf("input %q is not a numeric stream", in.Name)
	}
	return g, nil
}

func floatInputs(ins []BuildInput) ([]stream.Getter[float32], error) {
	out := make([]stream.Getter[float32], 0, len(ins))
	for _, in := range ins {
		g, err := floatInput(in)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

func boolInput(in BuildInput) (stream.Getter[bool], error) {
	g, ok := in.Node.(stream.Getter[bool])
	if !ok {
		return nil, fmt.Errorf("input %q is not a boolean stream", in.Name)
	}
	return g, nil
}

func boolInputs(ins []BuildInput) ([]stream.Getter[bool], error) {
	out := make([]stream.Getter[bool], 0, len(ins))
	for _, in := range ins {
		g, err := boolInput(in)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

func commandInput(in BuildInput) (stream.Getter[motion.Command], error) {
	g, ok := in.Node.(stream.Getter[motion.Command])
	if !ok {
		return nil, fmt.Errorf("input %q is not a command stream", in.Name)
	}
	return g, nil
}

func stateInput(in BuildInput) (stream.Getter[motion.State], error) {
	g, ok := in.Node.(stream.Getter[motion.State])
	if !ok {
		return nil, fmt.Errorf("input %q is not a state stream", in.Name)
	}
	return g, nil
}
