// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmitterRequiresURL(t *testing.T) {
	_, err := NewEmitter(Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "url is required")
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{URL: "http://localhost:3000/socket.io"}.withDefaults()
	assert.Equal(t, "samples", cfg.Event)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
}

func TestEmitNothingIsNoop(t *testing.T) {
	e, err := NewEmitter(Config{URL: "http://localhost:1/socket.io"})
	require.NoError(t, err)
	defer e.Close()

	// An empty batch must not trigger a connection attempt.
	require.NoError(t, e.Emit(t.Context(), nil))
}
