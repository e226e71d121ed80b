package tolerance_test

import (
	"math"
	"testing"

	"codeberg.org/mutker/procmon/internal/errors"
	"codeberg.org/mutker/procmon/internal/tolerance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var phBand = tolerance.Band{
	Target:        7.0,
	Lower:         6.5,
	Upper:         7.5,
	CriticalLower: 6.0,
	CriticalUpper: 8.0,
}

func TestEvaluateAtTarget(t *testing.T) {
	bands := []tolerance.Band{
		phBand,
		{Target: 2.0, Lower: 1.9, Upper: 2.1, CriticalLower: 1.5, CriticalUpper: 2.5},
		{Target: 95, Lower: 94, Upper: 98, CriticalLower: 90, CriticalUpper: 100},
		{Target: 12, Lower: 12, Upper: 12, CriticalLower: 12, CriticalUpper: 12},
	}

	for _, band := range bands {
		res, err := tolerance.Evaluate(band, band.Target)
		require.NoError(t, err)
		assert.Equal(t, tolerance.StatusNormal, res.Status)
		assert.Zero(t, res.Deviation)
		assert.InDelta(t, 100, res.PercentOfTarget, 1e-9)
	}
}

func TestClassifyCriticalPH(t *testing.T) {
	res, err := tolerance.Classify(5.8, 7.0, 6.5, 7.5, 6.0, 8.0)
	require.NoError(t, err)

	assert.Equal(t, tolerance.StatusCritical, res.Status)
	assert.InDelta(t, -1.2, res.Deviation, 1e-9)
	assert.InDelta(t, 82.857, res.PercentOfTarget, 1e-3)
}

func TestClassifyUpperBoundIsInclusive(t *testing.T) {
	res, err := tolerance.Classify(2.1, 2.0, 1.9, 2.1, 1.5, 2.5)
	require.NoError(t, err)

	assert.Equal(t, tolerance.StatusNormal, res.Status)
	assert.InDelta(t, 0.1, res.Deviation, 1e-9)
}

func TestClassifyStatuses(t *testing.T) {
	tests := []struct {
		name    string
		current float64
		want    tolerance.Status
	}{
		{"inside", 7.2, tolerance.StatusNormal},
		{"lower bound", 6.5, tolerance.StatusNormal},
		{"upper bound", 7.5, tolerance.StatusNormal},
		{"high", 7.6, tolerance.StatusHigh},
		{"low", 6.4, tolerance.StatusLow},
		{"critical floor", 6.0, tolerance.StatusLow},
		{"critical ceiling", 8.0, tolerance.StatusHigh},
		{"below critical", 5.99, tolerance.StatusCritical},
		{"above critical", 8.01, tolerance.StatusCritical},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := tolerance.Evaluate(phBand, tc.current)
			require.NoError(t, err)
			assert.Equal(t, tc.want, res.Status)
			assert.Equal(t, tc.want, phBand.Classify(tc.current))
		})
	}
}

func TestPercentOfTargetUnclampedAndGaugeFillClamped(t *testing.T) {
	pct, err := tolerance.PercentOfTarget(35.2, 34.8)
	require.NoError(t, err)
	assert.InDelta(t, 101.149, pct, 1e-3)

	fill, err := tolerance.GaugeFill(35.2, 34.8)
	require.NoError(t, err)
	assert.Equal(t, 100.0, fill)

	fill, err = tolerance.GaugeFill(12.4, 13)
	require.NoError(t, err)
	assert.InDelta(t, 95.38, fill, 1e-2)

	fill, err = tolerance.GaugeFill(-1, 13)
	require.NoError(t, err)
	assert.Zero(t, fill)

	res := tolerance.Result{PercentOfTarget: 101.15}
	assert.Equal(t, 100.0, res.GaugeFill())
}

func TestDomainErrors(t *testing.T) {
	tests := []struct {
		name    string
		band    tolerance.Band
		current float64
	}{
		{"zero target", tolerance.Band{Target: 0, Lower: -1, Upper: 1, CriticalLower: -2, CriticalUpper: 2}, 0.5},
		{"inverted tolerance band", tolerance.Band{Target: 7, Lower: 7.5, Upper: 6.5, CriticalLower: 6, CriticalUpper: 8}, 7},
		{"critical inside tolerance", tolerance.Band{Target: 7, Lower: 6.5, Upper: 7.5, CriticalLower: 6.8, CriticalUpper: 8}, 7},
		{"nan target", tolerance.Band{Target: math.NaN(), Lower: 6.5, Upper: 7.5, CriticalLower: 6, CriticalUpper: 8}, 7},
		{"nan current", phBand, math.NaN()},
		{"infinite current", phBand, math.Inf(1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tolerance.Evaluate(tc.band, tc.current)
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, tolerance.ErrDomain))
		})
	}

	_, err := tolerance.PercentOfTarget(1, 0)
	assert.True(t, errors.HasCode(err, tolerance.ErrDomain))

	_, err = tolerance.GaugeFill(1, 0)
	assert.True(t, errors.HasCode(err, tolerance.ErrDomain))
}

func TestSeverityOrdering(t *testing.T) {
	assert.Less(t, tolerance.StatusNormal.Severity(), tolerance.StatusHigh.Severity())
	assert.Equal(t, tolerance.StatusHigh.Severity(), tolerance.StatusLow.Severity())
	assert.Less(t, tolerance.StatusLow.Severity(), tolerance.StatusCritical.Severity())
}
