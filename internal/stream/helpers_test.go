package stream

import "github.com/specialistvlad/controlrig/internal/datum"

// manual is a hand-driven getter for tests: set, clear, or fail it between
// updates to script an input's behavior.
type manual[T any] struct {
	d   *datum.Datum[T]
	err error
}

func (m *manual[T]) Update() error                 { return nil }
func (m *manual[T]) Get() (*datum.Datum[T], error) { return m.d, m.err }

func (m *manual[T]) set(t datum.Time, v T) { m.d, m.err = datum.Ptr(t, v), nil }
func (m *manual[T]) clear()                { m.d, m.err = nil, nil }
func (m *manual[T]) fail(err error)        { m.d, m.err = nil, err }

type manualClock struct {
	t   datum.Time
	err error
}

func (c *manualClock) Update() error             { return nil }
func (c *manualClock) Time() (datum.Time, error) { return c.t, c.err }
