// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package rig

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Params wraps a node block's `params = { ... }` object with typed,
// validating accessors. All type errors surface at build time with the
// parameter named, never at tick time.
type Params struct {
	vals map[string]cty.Value
}

// newParams validates and unpacks the raw decoded params value. An absent
// attribute yields empty Params.
func newParams(v cty.Value) (Params, error) {
	if v == cty.NilVal || v.IsNull() {
		return Params{}, nil
	}
	if !v.Type().IsObjectType() && !v.Type().IsMapType() {
		return Params{}, fmt.Errorf("params must be an object, got %s", v.Type().FriendlyName())
	}
	vals := make(map[string]cty.Value)
	for name, val := range v.AsValueMap() {
		vals[name] = val
	}
	return Params{vals: vals}, nil
}

// Has reports whether the parameter was provided.
func (p Params) Has(name string) bool {
	_, ok := p.vals[name]
	return ok
}

// Names returns the provided parameter names, unordered.
func (p Params) Names() []string {
	names := make([]string, 0, len(p.vals))
	for name := range p.vals {
		names = append(names, name)
	}
	return names
}

func (p Params) value(name string) (cty.Value, error) {
	v, ok := p.vals[name]
	if !ok {
		return cty.NilVal, fmt.Errorf("missing required parameter %q", name)
	}
	return v, nil
}

// Float returns a required numeric parameter.
func (p Params) Float(name string) (float32, error) {
	v, err := p.value(name)
	if err != nil {
		return 0, err
	}
	return ctyFloat(name, v)
}

// FloatOr returns a numeric parameter or a default when absent.
func (p Params) FloatOr(name string, def float32) (float32, error) {
	if !p.Has(name) {
		return def, nil
	}
	return p.Float(name)
}

// Int returns a required integer parameter.
func (p Params) Int(name string) (int64, error) {
	v, err := p.value(name)
	if err != nil {
		return 0, err
	}
	converted, err := convert.Convert(v, cty.Number)
	if err != nil {
		return 0, fmt.Errorf("parameter %q: %w", name, err)
	}
	var out int64
	if err := gocty.FromCtyValue(converted, &out); err != nil {
		return 0, fmt.Errorf("parameter %q: %w", name, err)
	}
	return out, nil
}

// IntOr returns an integer parameter or a default when absent.
func (p Params) IntOr(name string, def int64) (int64, error) {
	if !p.Has(name) {
		return def, nil
	}
	return p.Int(name)
}

// String returns a required string parameter.
func (p Params) String(name string) (string, error) {
	v, err := p.value(name)
	if err != nil {
		return "", err
	}
	converted, err := convert.Convert(v, cty.String)
	if err != nil {
		return "", fmt.Errorf("parameter %q: %w", name, err)
	}
	return converted.AsString(), nil
}

// StringOr returns a string parameter or a default when absent.
func (p Params) StringOr(name, def string) (string, error) {
	if !p.Has(name) {
		return def, nil
	}
	return p.String(name)
}

// BoolOr returns a boolean parameter or a default when absent.
func (p Params) BoolOr(name string, def bool) (bool, error) {
	if !p.Has(name) {
		return def, nil
	}
	v := p.vals[name]
	converted, err := convert.Convert(v, cty.Bool)
	if err != nil {
		return false, fmt.Errorf("parameter %q: %w", name, err)
	}
	return converted.True(), nil
}

// IsBool reports whether the parameter was provided as a boolean.
func (p Params) IsBool(name string) bool {
	v, ok := p.vals[name]
	return ok && v.Type() == cty.Bool
}

func ctyFloat(name string, v cty.Value) (float32, error) {
	converted, err := convert.Convert(v, cty.Number)
	if err != nil {
		return 0, fmt.Errorf("parameter %q: %w", name, err)
	}
	var out float32
	if err := gocty.FromCtyValue(converted, &out); err != nil {
		return 0, fmt.Errorf("parameter %q: %w", name, err)
	}
	return out, nil
}
