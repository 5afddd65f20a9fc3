package profiler

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestTickLogsOncePerInterval(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	var lines []string
	p := NewProfiler(
		WithClock(clock.now),
		WithInterval(time.Second),
		WithLogger(func(format string, args ...any) { lines = append(lines, fmt.Sprintf(format, args...)) }),
	)

	for range 3 {
		clock.t = clock.t.Add(200 * time.Millisecond)
		assert.False(t, p.Tick("mono"))
	}
	clock.t = clock.t.Add(200 * time.Millisecond)
	assert.False(t, p.Tick("stereo"))
	clock.t = clock.t.Add(200 * time.Millisecond)
	assert.True(t, p.Tick("stereo"))

	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "FPS: 5.00")
	assert.Contains(t, lines[0], "mono 3, stereo 2")

	clock.t = clock.t.Add(100 * time.Millisecond)
	assert.False(t, p.Tick("mono"), "counters restart after logging")
}
