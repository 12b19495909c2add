// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package rig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestParamsAccessors(t *testing.T) {
	p, err := newParams(cty.ObjectVal(map[string]cty.Value{
		"setpoint": cty.NumberFloatVal(5),
		"order":    cty.NumberIntVal(3),
		"mode":     cty.StringVal("fast"),
		"enabled":  cty.True,
	}))
	require.NoError(t, err)

	f, err := p.Float("setpoint")
	require.NoError(t, err)
	assert.Equal(t, float32(5), f)

	i, err := p.Int("order")
	require.NoError(t, err)
	assert.Equal(t, int64(3), i)

	s, err := p.String("mode")
	require.NoError(t, err)
	assert.Equal(t, "fast", s)

	b, err := p.BoolOr("enabled", false)
	require.NoError(t, err)
	assert.True(t, b)

	assert.True(t, p.Has("setpoint"))
	assert.False(t, p.Has("missing"))
	assert.True(t, p.IsBool("enabled"))
	assert.False(t, p.IsBool("setpoint"))
}

func TestParamsDefaults(t *testing.T) {
	p, err := newParams(cty.NilVal)
	require.NoError(t, err)

	f, err := p.FloatOr("kp", 1.5)
	require.NoError(t, err)
	assert.Equal(t, float32(1.5), f)

	i, err := p.IntOr("order", 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), i)

	s, err := p.StringOr("event", "samples")
	require.NoError(t, err)
	assert.Equal(t, "samples", s)

	_, err = p.Float("kp")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing required parameter "kp"`)
}

func TestParamsTypeErrorsAreNamed(t *testing.T) {
	p, err := newParams(cty.ObjectVal(map[string]cty.Value{
		"window": cty.StringVal("wide"),
	}))
	require.NoError(t, err)

	_, err = p.Int("window")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `parameter "window"`)
}

func TestParamsRejectsNonObject(t *testing.T) {
	_, err := newParams(cty.NumberIntVal(7))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "params must be an object")
}
