package perf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudposse/tfmatrix/pkg/schema"
)

func withTracking(t *testing.T, on bool) {
	t.Helper()
	prev := IsTrackingEnabled()
	EnableTracking(on)
	Reset()
	t.Cleanup(func() {
		EnableTracking(prev)
		Reset()
	})
}

func TestTrackDisabledRecordsNothing(t *testing.T) {
	withTracking(t, false)

	Track(nil, "noop")()

	assert.Empty(t, Snapshot())
}

func TestTrackRecordsCalls(t *testing.T) {
	withTracking(t, true)

	for i := 0; i < 3; i++ {
		Track(nil, "fast")()
	}
	done := Track(nil, "slow")
	time.Sleep(5 * time.Millisecond)
	done()

	metrics := Snapshot()
	require.Len(t, metrics, 2)

	assert.Equal(t, "slow", metrics[0].Name)
	assert.Equal(t, int64(1), metrics[0].Count)
	assert.GreaterOrEqual(t, metrics[0].Max, 4*time.Millisecond)

	assert.Equal(t, "fast", metrics[1].Name)
	assert.Equal(t, int64(3), metrics[1].Count)
}

func TestTrackEnabledFromConfig(t *testing.T) {
	withTracking(t, false)

	cfg := &schema.Configuration{Perf: schema.Perf{Enabled: true}}
	Track(cfg, "configured")()

	assert.True(t, IsTrackingEnabled())
	metrics := Snapshot()
	require.Len(t, metrics, 1)
	assert.Equal(t, "configured", metrics[0].Name)
}

func TestLogSummaryDoesNotPanic(t *testing.T) {
	withTracking(t, true)
	Track(nil, "x")()

	assert.NotPanics(t, LogSummary)
}
