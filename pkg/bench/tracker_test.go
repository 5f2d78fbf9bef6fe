package bench

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTracker_RecordSuccess(t *testing.T) {
	tracker := NewTracker([]string{"node1"})

	tracker.RecordSuccess("node1", &NodeResult{
		Duration:    20 * time.Millisecond,
		BlockHeight: 100,
		GasPrice:    3,
	})

	e := tracker.Endpoints()[0]
	assert.True(t, e.Healthy)
	assert.Equal(t, uint64(100), e.BlockHeight)
	assert.Equal(t, uint64(3), e.GasPrice)
	assert.Empty(t, e.LastError)
	assert.Equal(t, int64(1), e.Stats.TotalRuns)
	assert.Equal(t, int64(0), e.Stats.TotalErrors)
	assert.Equal(t, 20*time.Millisecond, e.Stats.AvgLatency)
}

func TestTracker_RecordFailure(t *testing.T) {
	tracker := NewTracker([]string{"node1"})

	tracker.RecordFailure("node1", errors.New("timeout"))

	e := tracker.Endpoints()[0]
	assert.False(t, e.Healthy)
	assert.Equal(t, "timeout", e.LastError)
	assert.Equal(t, int64(1), e.Stats.TotalRuns)
	assert.Equal(t, int64(1), e.Stats.TotalErrors)
}

func TestTracker_UnknownURLIgnored(t *testing.T) {
	tracker := NewTracker([]string{"node1"})

	tracker.RecordFailure("node2", errors.New("timeout"))

	e := tracker.Endpoints()[0]
	assert.Equal(t, int64(0), e.Stats.TotalRuns)
}

func TestLatencyStats_Window(t *testing.T) {
	ls := &LatencyStats{}

	ls.recordLatency(10 * time.Millisecond)
	ls.recordLatency(30 * time.Millisecond)

	assert.Equal(t, 20*time.Millisecond, ls.AvgLatency)
	assert.Equal(t, 10*time.Millisecond, ls.MinLatency)
	assert.Equal(t, 30*time.Millisecond, ls.MaxLatency)
}

func TestLatencyStats_WindowBounded(t *testing.T) {
	ls := &LatencyStats{}

	for i := 0; i < LatencyWindowSize; i++ {
		ls.recordLatency(time.Second)
	}
	// Pushing past the window evicts the oldest samples
	for i := 0; i < LatencyWindowSize; i++ {
		ls.recordLatency(time.Millisecond)
	}

	assert.Len(t, ls.LatencyHistory, LatencyWindowSize)
	assert.Equal(t, time.Millisecond, ls.MaxLatency)
}
