package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/controlrig/internal/datum"
)

func boolPtr(v bool) *bool { return &v }

func setBool(m *manual[bool], t datum.Time, v *bool) {
	if v == nil {
		m.clear()
		return
	}
	m.set(t, *v)
}

func TestAndTruthTable(t *testing.T) {
	cases := []struct {
		name string
		a, b *bool
		want *bool
	}{
		{"false false", boolPtr(false), boolPtr(false), boolPtr(false)},
		{"unknown false", nil, boolPtr(false), boolPtr(false)},
		{"true false", boolPtr(true), boolPtr(false), boolPtr(false)},
		{"false unknown", boolPtr(false), nil, boolPtr(false)},
		{"unknown unknown", nil, nil, nil},
		{"true unknown", boolPtr(true), nil, nil},
		{"false true", boolPtr(false), boolPtr(true), boolPtr(false)},
		{"unknown true", nil, boolPtr(true), nil},
		{"true true", boolPtr(true), boolPtr(true), boolPtr(true)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := &manual[bool]{}
			b := &manual[bool]{}
			and, err := NewAnd(a, b)
			require.NoError(t, err)
			setBool(a, 1, tc.a)
			setBool(b, 2, tc.b)
			got, err := and.Get()
			require.NoError(t, err)
			if tc.want == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, *tc.want, got.Value)
			}
		})
	}
}

func TestOrTruthTable(t *testing.T) {
	cases := []struct {
		name string
		a, b *bool
		want *bool
	}{
		{"false false", boolPtr(false), boolPtr(false), boolPtr(false)},
		{"unknown false", nil, boolPtr(false), nil},
		{"true false", boolPtr(true), boolPtr(false), boolPtr(true)},
		{"false unknown", boolPtr(false), nil, nil},
		{"unknown unknown", nil, nil, nil},
		{"true unknown", boolPtr(true), nil, boolPtr(true)},
		{"false true", boolPtr(false), boolPtr(true), boolPtr(true)},
		{"unknown true", nil, boolPtr(true), boolPtr(true)},
		{"true true", boolPtr(true), boolPtr(true), boolPtr(true)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := &manual[bool]{}
			b := &manual[bool]{}
			or, err := NewOr(a, b)
			require.NoError(t, err)
			setBool(a, 1, tc.a)
			setBool(b, 2, tc.b)
			got, err := or.Get()
			require.NoError(t, err)
			if tc.want == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, *tc.want, got.Value)
			}
		})
	}
}

// The output timestamp is the newest among valued inputs, independent of
// which input decided the result.
func TestAndTimestamp(t *testing.T) {
	a := &manual[bool]{}
	b := &manual[bool]{}
	and, err := NewAnd(a, b)
	require.NoError(t, err)

	a.set(1, false)
	b.set(9, true)
	got, err := and.Get()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, datum.New(9, false), *got)
}

func TestNot(t *testing.T) {
	in := &manual[bool]{}
	not := NewNot(in)

	in.set(4, true)
	got, err := not.Get()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, datum.New(4, false), *got)

	in.clear()
	got, err = not.Get()
	require.NoError(t, err)
	assert.Nil(t, got)

	in.fail(errBroken)
	_, err = not.Get()
	assert.ErrorIs(t, err, errBroken)
}
