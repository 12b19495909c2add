package pid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestControllerBootstrap(t *testing.T) {
	c := New(5.0, NewGains(1.0, 0.01, 0.1))

	// First update: no elapsed time, proportional term only.
	assert.Equal(t, float32(5.0), c.Update(1, 0.0))
}

func TestControllerSubsequentUpdate(t *testing.T) {
	c := New(5.0, NewGains(1.0, 0.01, 0.1))
	_ = c.Update(1, 0.0)

	// error=4, dt=2, drv=(4-5)/2=-0.5, integral=2*(5+4)/2=9
	// control = 1*4 + 0.01*9 + 0.1*(-0.5) = 4.04
	assert.InDelta(t, 4.04, float64(c.Update(3, 1.0)), 1e-6)
	assert.InDelta(t, 9.0, float64(c.integral), 1e-6)
}

func TestControllerReset(t *testing.T) {
	c := New(5.0, NewGains(1.0, 0.01, 0.1))
	_ = c.Update(1, 0.0)
	_ = c.Update(3, 1.0)
	c.Reset()

	// After a reset the controller behaves like a fresh one.
	fresh := New(5.0, NewGains(1.0, 0.01, 0.1))
	assert.Equal(t, fresh.Update(10, 0.0), c.Update(10, 0.0))
	assert.Equal(t, fresh.Update(12, 1.0), c.Update(12, 1.0))
}

func TestShiftOrderZeroMatchesController(t *testing.T) {
	s := NewShift(5.0, NewGains(1.0, 0.01, 0.1), 0)
	_ = s.Update(1, 0.0)
	assert.InDelta(t, 4.04, float64(s.Update(3, 1.0)), 1e-6)
}

func TestShiftIntegratesOnce(t *testing.T) {
	s := NewShift(5.0, NewGains(1.0, 0.01, 0.1), 1)
	first := s.Update(1, 0.0)
	// Stage one starts at zero; nothing has accumulated yet.
	assert.Equal(t, float32(0), first)

	// dt=2, control=4.04, stage1 += 2*(5.0+4.04)/2 = 9.04.
	assert.InDelta(t, 9.04, float64(s.Update(3, 1.0)), 1e-5)
}
