package sampling_test

import (
	"testing"

	"codeberg.org/mutker/procmon/internal/errors"
	"codeberg.org/mutker/procmon/internal/sampling"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBoundaries(t *testing.T) {
	tests := []struct {
		hours    int
		interval int
		points   int
	}{
		{3, 30, 6},
		{6, 30, 12},
		{7, 60, 7},
		{12, 60, 12},
		{13, 120, 6},
		{15, 120, 7},
		{24, 120, 12},
	}

	for _, tc := range tests {
		res := sampling.Resolve(tc.hours)
		assert.Equal(t, tc.interval, res.IntervalMinutes, "interval for %dh", tc.hours)
		assert.Equal(t, tc.points, res.PointCount, "points for %dh", tc.hours)
		assert.Equal(t, tc.points+1, res.Samples())
		assert.Equal(t, tc.hours, res.WindowHours)
	}
}

func TestResolveDashboardRangeIsBounded(t *testing.T) {
	for hours := sampling.DashboardMinHours; hours <= sampling.DashboardMaxHours; hours++ {
		res := sampling.Resolve(hours)
		if hours <= 12 {
			assert.Contains(t, []int{30, 60}, res.IntervalMinutes)
		} else {
			assert.Equal(t, 120, res.IntervalMinutes)
		}
		assert.GreaterOrEqual(t, res.PointCount, 6, "hours=%d", hours)
		assert.LessOrEqual(t, res.PointCount, 12, "hours=%d", hours)
	}
}

func TestResolveNegativeWindow(t *testing.T) {
	res := sampling.Resolve(-4)
	assert.Equal(t, 30, res.IntervalMinutes)
	assert.Equal(t, 0, res.PointCount)
}

func TestValidateWindow(t *testing.T) {
	require.NoError(t, sampling.ValidateWindow(1))
	require.NoError(t, sampling.ValidateWindow(24))
	require.NoError(t, sampling.ValidateWindow(168))

	for _, hours := range []int{0, -1, 169} {
		err := sampling.ValidateWindow(hours)
		require.Error(t, err, "hours=%d", hours)
		assert.True(t, errors.HasCode(err, sampling.ErrInvalidWindow))
	}
}

func TestClampDashboardWindow(t *testing.T) {
	assert.Equal(t, 3, sampling.ClampDashboardWindow(1))
	assert.Equal(t, 12, sampling.ClampDashboardWindow(12))
	assert.Equal(t, 24, sampling.ClampDashboardWindow(48))
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "00:00", sampling.FormatElapsed(0))
	assert.Equal(t, "00:30", sampling.FormatElapsed(30))
	assert.Equal(t, "02:00", sampling.FormatElapsed(120))
	assert.Equal(t, "24:00", sampling.FormatElapsed(24*60))
	assert.Equal(t, "100:30", sampling.FormatElapsed(100*60+30))
}
