package scroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribeAndRelease(t *testing.T) {
	w := NewWatcher()
	var got []Position
	release := w.Subscribe(func(p Position) { got = append(got, p) })
	require.Equal(t, 1, w.Len())

	w.Report(Position{ContentHeight: 10, ViewportHeight: 5, Offset: 1})
	release()
	release()
	w.Report(Position{ContentHeight: 10, ViewportHeight: 5, Offset: 2})

	assert.Equal(t, 0, w.Len())
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Offset)
}

func TestRemountDoesNotLeak(t *testing.T) {
	w := NewWatcher()
	calls := 0
	for i := 0; i < 5; i++ {
		release := w.Subscribe(func(Position) { calls++ })
		release()
	}
	release := w.Subscribe(func(Position) { calls++ })
	defer release()

	w.Report(Position{})
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, w.Len())
}

func TestReportOrder(t *testing.T) {
	w := NewWatcher()
	var order []int
	for i := 0; i < 4; i++ {
		i := i
		w.Subscribe(func(Position) { order = append(order, i) })
	}
	w.Report(Position{})
	assert.Equal(t, []int{0, 1, 2, 3}, order)
}

func TestListenerMayReleaseDuringReport(t *testing.T) {
	w := NewWatcher()
	var second int
	var releaseSecond func()
	w.Subscribe(func(Position) { releaseSecond() })
	releaseSecond = w.Subscribe(func(Position) { second++ })

	w.Report(Position{})
	assert.Equal(t, 0, second)
	assert.Equal(t, 1, w.Len())
}

func TestPositionNearEnd(t *testing.T) {
	p := Position{ContentHeight: 300, ViewportHeight: 40, Offset: 100}
	assert.False(t, p.NearEnd(100)) // 160 left
	p.Offset = 161
	assert.True(t, p.NearEnd(100)) // 99 left
	p.Offset = 160
	assert.False(t, p.NearEnd(100)) // exactly 100 left
}
