// Package sampling maps an observation window onto a sampling interval and
// point count. Longer windows are sampled more coarsely so rendered series
// stay short.
package sampling

import (
	"fmt"

	"codeberg.org/mutker/procmon/internal/errors"
)

const (
	// MinWindowHours and MaxWindowHours bound the windows accepted by
	// ValidateWindow.
	MinWindowHours = 1
	MaxWindowHours = 168

	// DashboardMinHours and DashboardMaxHours bound the dashboard slider.
	DashboardMinHours = 3
	DashboardMaxHours = 24

	fineIntervalMinutes   = 30
	mediumIntervalMinutes = 60
	coarseIntervalMinutes = 120

	fineLimitHours   = 6
	mediumLimitHours = 12
)

// Resolution is the sampling grid for one window.
type Resolution struct {
	WindowHours     int `json:"window_hours"`
	IntervalMinutes int `json:"interval_minutes"`
	PointCount      int `json:"point_count"`
}

// Samples returns the number of samples in a series on this grid.
func (r Resolution) Samples() int {
	return r.PointCount + 1
}

// ElapsedMinutes returns the offset of sample i from the window start.
func (r Resolution) ElapsedMinutes(i int) int {
	return i * r.IntervalMinutes
}

// Resolve computes the grid for windowHours. It never fails: callers are
// expected to run ValidateWindow first. Negative windows resolve to zero
// points.
func Resolve(windowHours int) Resolution {
	interval := coarseIntervalMinutes
	switch {
	case windowHours <= fineLimitHours:
		interval = fineIntervalMinutes
	case windowHours <= mediumLimitHours:
		interval = mediumIntervalMinutes
	}

	return Resolution{
		WindowHours:     windowHours,
		IntervalMinutes: interval,
		PointCount:      max(windowHours*60/interval, 0),
	}
}

// ValidateWindow reports an invalid_window error for windows outside
// [MinWindowHours, MaxWindowHours].
func ValidateWindow(windowHours int) error {
	if windowHours < MinWindowHours || windowHours > MaxWindowHours {
		return errors.New().WithData(ErrInvalidWindow, fmt.Sprintf(
			"%d hours (supported %d-%d)", windowHours, MinWindowHours, MaxWindowHours))
	}

	return nil
}

// ClampDashboardWindow clamps windowHours into the dashboard slider range.
func ClampDashboardWindow(windowHours int) int {
	return min(max(windowHours, DashboardMinHours), DashboardMaxHours)
}

// FormatElapsed renders elapsed minutes as HH:MM. Hours are not wrapped at
// 24: the label is time since window start, not wall-clock time.
func FormatElapsed(elapsedMinutes int) string {
	return fmt.Sprintf("%02d:%02d", elapsedMinutes/60, elapsedMinutes%60)
}
