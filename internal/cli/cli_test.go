package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePositionalPath(t *testing.T) {
	out := &bytes.Buffer{}
	cfg, shouldExit, err := Parse([]string{"loop.hcl"}, out)
	require.NoError(t, err)
	assert.False(t, shouldExit)
	assert.Equal(t, "loop.hcl", cfg.RigPath)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestParseFlagsWin(t *testing.T) {
	out := &bytes.Buffer{}
	cfg, _, err := Parse([]string{"-rig", "a.hcl", "-log-format", "text", "-ticks", "7", "-export-dot", "out.dot"}, out)
	require.NoError(t, err)
	assert.Equal(t, "a.hcl", cfg.RigPath)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 7, cfg.Ticks)
	assert.Equal(t, "out.dot", cfg.DotPath)
}

func TestParseShorthand(t *testing.T) {
	out := &bytes.Buffer{}
	cfg, _, err := Parse([]string{"-r", "b.hcl"}, out)
	require.NoError(t, err)
	assert.Equal(t, "b.hcl", cfg.RigPath)
}

func TestParseNoPathPrintsUsage(t *testing.T) {
	out := &bytes.Buffer{}
	cfg, shouldExit, err := Parse(nil, out)
	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParseInvalidValues(t *testing.T) {
	testCases := []struct {
		name string
		args []string
	}{
		{name: "bad log format", args: []string{"-log-format", "xml", "a.hcl"}},
		{name: "bad log level", args: []string{"-log-level", "loud", "a.hcl"}},
		{name: "negative ticks", args: []string{"-ticks", "-3", "a.hcl"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			_, _, err := Parse(tc.args, out)
			require.Error(t, err)
			exitErr, ok := err.(*ExitError)
			require.True(t, ok)
			assert.Equal(t, 2, exitErr.Code)
		})
	}
}
