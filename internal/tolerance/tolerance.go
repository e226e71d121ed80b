// Package tolerance classifies readings against a narrow tolerance band
// and a wider critical band and computes deviation and percent-of-target.
package tolerance

import (
	"fmt"
	"math"

	"codeberg.org/mutker/procmon/internal/errors"
)

// Status is the classification of a reading.
type Status string

const (
	StatusNormal   Status = "normal"
	StatusHigh     Status = "high"
	StatusLow      Status = "low"
	StatusCritical Status = "critical"
)

// Severity orders statuses from normal to critical.
func (s Status) Severity() int {
	switch s {
	case StatusCritical:
		return 2
	case StatusHigh, StatusLow:
		return 1
	default:
		return 0
	}
}

// Band holds the target and the two independently configured ranges.
// Lower/Upper bound the tolerance zone shaded on charts; CriticalLower and
// CriticalUpper bound the acceptance zone beyond which a reading is
// critical.
type Band struct {
	Target        float64 `json:"target" mapstructure:"target"`
	Lower         float64 `json:"lower" mapstructure:"lower"`
	Upper         float64 `json:"upper" mapstructure:"upper"`
	CriticalLower float64 `json:"critical_lower" mapstructure:"critical_lower"`
	CriticalUpper float64 `json:"critical_upper" mapstructure:"critical_upper"`
}

// Validate rejects degenerate bands.
func (b Band) Validate() error {
	errFactory := errors.New()

	bounds := []struct {
		name  string
		value float64
	}{
		{"target", b.Target},
		{"lower", b.Lower},
		{"upper", b.Upper},
		{"critical_lower", b.CriticalLower},
		{"critical_upper", b.CriticalUpper},
	}
	for _, bound := range bounds {
		if !isFinite(bound.value) {
			return errFactory.WithData(ErrDomain, bound.name+" is not finite")
		}
	}

	switch {
	case b.Target == 0:
		return errFactory.WithData(ErrDomain, "target is zero")
	case b.Lower > b.Upper:
		return errFactory.WithData(ErrDomain, fmt.Sprintf("lower bound %g above upper bound %g", b.Lower, b.Upper))
	case b.CriticalLower > b.Lower || b.CriticalUpper < b.Upper:
		return errFactory.WithData(ErrDomain, fmt.Sprintf(
			"critical band [%g, %g] does not enclose tolerance band [%g, %g]",
			b.CriticalLower, b.CriticalUpper, b.Lower, b.Upper))
	}

	return nil
}

// Contains reports whether current lies inside the tolerance band, bounds
// included.
func (b Band) Contains(current float64) bool {
	return current >= b.Lower && current <= b.Upper
}

// Classify returns the status of current without validating the band.
// Both bands are inclusive: a reading on a bound is inside it.
func (b Band) Classify(current float64) Status {
	switch {
	case current < b.CriticalLower || current > b.CriticalUpper:
		return StatusCritical
	case current > b.Upper:
		return StatusHigh
	case current < b.Lower:
		return StatusLow
	default:
		return StatusNormal
	}
}

// Result is the outcome of evaluating one reading.
type Result struct {
	Status          Status  `json:"status"`
	Deviation       float64 `json:"deviation"`
	PercentOfTarget float64 `json:"percent_of_target"`
}

// GaugeFill is PercentOfTarget clamped to [0, 100].
func (r Result) GaugeFill() float64 {
	return clampPercent(r.PercentOfTarget)
}

// Evaluate validates band and classifies current against it.
func Evaluate(band Band, current float64) (Result, error) {
	if err := band.Validate(); err != nil {
		return Result{}, err
	}

	if !isFinite(current) {
		return Result{}, errors.New().WithData(ErrDomain, "current value is not finite")
	}

	return Result{
		Status:          band.Classify(current),
		Deviation:       current - band.Target,
		PercentOfTarget: current / band.Target * 100,
	}, nil
}

// Classify is Evaluate with the band given as individual bounds.
func Classify(current, target, lower, upper, criticalLower, criticalUpper float64) (Result, error) {
	return Evaluate(Band{
		Target:        target,
		Lower:         lower,
		Upper:         upper,
		CriticalLower: criticalLower,
		CriticalUpper: criticalUpper,
	}, current)
}

// PercentOfTarget returns current as an unclamped percentage of target.
func PercentOfTarget(current, target float64) (float64, error) {
	if target == 0 || !isFinite(target) || !isFinite(current) {
		return 0, errors.New().WithData(ErrDomain, "percent of a zero or non-finite target")
	}

	return current / target * 100, nil
}

// GaugeFill returns current as a percentage of maxScale clamped to
// [0, 100], the fraction of a gauge arc that is drawn.
func GaugeFill(current, maxScale float64) (float64, error) {
	pct, err := PercentOfTarget(current, maxScale)
	if err != nil {
		return 0, err
	}

	return clampPercent(pct), nil
}

func clampPercent(pct float64) float64 {
	return math.Min(math.Max(pct, 0), 100)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
