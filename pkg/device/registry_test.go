package device

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry_Defaults(t *testing.T) {
	r := NewRegistry()

	states := r.AllStates()
	assert.Len(t, states, len(Names))
	assert.True(t, states.AllOff())
	assert.Equal(t, DefaultFanSpeed, r.FanSpeed())
}

func TestSetThenGet(t *testing.T) {
	for _, n := range Names {
		for _, want := range []bool{true, false} {
			r := NewRegistry()
			_, err := r.Set(n, want)
			require.NoError(t, err)

			got, err := r.Get(n)
			require.NoError(t, err)
			assert.Equal(t, want, got, "device %s", n)
		}
	}
}

func TestSet_ReturnsPrevious(t *testing.T) {
	r := NewRegistry()

	prev, err := r.Set(Light, true)
	require.NoError(t, err)
	assert.False(t, prev)

	prev, err = r.Set(Light, false)
	require.NoError(t, err)
	assert.True(t, prev)
}

func TestToggle_Involution(t *testing.T) {
	r := NewRegistry()
	_, err := r.Set(Fan, true)
	require.NoError(t, err)

	on, err := r.Toggle(Fan)
	require.NoError(t, err)
	assert.False(t, on)

	on, err = r.Toggle(Fan)
	require.NoError(t, err)
	assert.True(t, on)
}

func TestInvalidDevice(t *testing.T) {
	r := NewRegistry()

	_, err := r.Set("oven", true)
	assert.True(t, errors.Is(err, ErrInvalidDevice))

	_, err = r.Toggle("oven")
	assert.ErrorIs(t, err, ErrInvalidDevice)

	_, err = r.Get("oven")
	assert.ErrorIs(t, err, ErrInvalidDevice)

	_, err = r.CompareAndSet("oven", false, true)
	assert.ErrorIs(t, err, ErrInvalidDevice)

	assert.NotContains(t, r.AllStates(), Name("oven"))
}

func TestCompareAndSet(t *testing.T) {
	r := NewRegistry()

	swapped, err := r.CompareAndSet(AC, false, true)
	require.NoError(t, err)
	assert.True(t, swapped)

	swapped, err = r.CompareAndSet(AC, false, true)
	require.NoError(t, err)
	assert.False(t, swapped)

	on, _ := r.Get(AC)
	assert.True(t, on)
}

func TestAllStates_IsSnapshot(t *testing.T) {
	r := NewRegistry()
	snap := r.AllStates()
	snap[Light] = true

	on, err := r.Get(Light)
	require.NoError(t, err)
	assert.False(t, on)
}

func TestAllOff(t *testing.T) {
	r := NewRegistry()
	_, _ = r.Set(Light, true)
	_, _ = r.Set(AC, true)

	prev := r.AllOff()
	assert.True(t, prev[Light])
	assert.True(t, prev[AC])
	assert.False(t, prev[Fan])
	assert.True(t, r.AllStates().AllOff())
}

func TestSetFanSpeed(t *testing.T) {
	r := NewRegistry()

	for _, v := range []int{-1, 101} {
		err := r.SetFanSpeed(v)
		assert.ErrorIs(t, err, ErrInvalidRange, "speed %d", v)
	}
	assert.Equal(t, DefaultFanSpeed, r.FanSpeed())

	for _, v := range []int{0, 50, 100} {
		require.NoError(t, r.SetFanSpeed(v))
		assert.Equal(t, v, r.FanSpeed())
	}
}

func TestFanSpeedIndependentOfFanState(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.SetFanSpeed(80))
	_, _ = r.Toggle(Fan)
	_ = r.AllOff()
	assert.Equal(t, 80, r.FanSpeed())
}

func TestConcurrentToggles(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = r.Toggle(Light)
		}()
	}
	wg.Wait()

	// an even number of toggles lands back on the initial state
	on, err := r.Get(Light)
	require.NoError(t, err)
	assert.False(t, on)
}

func TestParseName(t *testing.T) {
	n, err := ParseName(" Light ")
	require.NoError(t, err)
	assert.Equal(t, Light, n)

	_, err = ParseName("oven")
	assert.ErrorIs(t, err, ErrInvalidDevice)

	assert.Equal(t, "AC", AC.Label())
	assert.Equal(t, "fan", Fan.Label())
}
