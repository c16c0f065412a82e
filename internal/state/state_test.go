package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordZeroValueIsPending(t *testing.T) {
	var w Word
	assert.Equal(t, Pending, w.Load())
}

func TestTryRunFromPendingAndPaused(t *testing.T) {
	var w Word
	require.True(t, w.TryRun())
	assert.Equal(t, Running, w.Load())

	// already running: a second TryRun must lose
	assert.False(t, w.TryRun())

	require.True(t, w.TryPause())
	assert.Equal(t, Paused, w.Load())

	require.True(t, w.TryRun())
	assert.Equal(t, Running, w.Load())
}

func TestTryDoneOnlyFromRunning(t *testing.T) {
	var w Word
	assert.False(t, w.TryDone())

	require.True(t, w.TryRun())
	require.True(t, w.TryDone())
	assert.True(t, w.IsDone())

	// terminal: no further transition succeeds
	assert.False(t, w.TryRun())
	assert.False(t, w.TryPause())
	assert.False(t, w.TryDone())
}

func TestOnlyOneGoroutineWinsTryRun(t *testing.T) {
	var w Word
	const n = 64
	var wins int32
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			if w.TryRun() {
				wins++
			}
		}()
	}
	wg.Wait()
	// wins is racy to read concurrently with writes above, but by the time
	// Wait returns every goroutine has finished, so this read is safe.
	assert.Equal(t, int32(1), wins)
	assert.Equal(t, Running, w.Load())
}

func TestString(t *testing.T) {
	assert.Equal(t, "pending", String(Pending))
	assert.Equal(t, "running", String(Running))
	assert.Equal(t, "paused", String(Paused))
	assert.Equal(t, "done", String(Done))
	assert.Equal(t, "<unknown state>", String(99))
}
