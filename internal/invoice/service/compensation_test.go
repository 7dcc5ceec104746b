package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevenueShareTierBoundaries(t *testing.T) {
	cases := []struct {
		revenue  float64
		wantPct  float64
		wantAmnt float64
	}{
		{0, 35, 0},
		{999.99, 35, 350.00},
		{1000, 40, 400.00},
		{1200, 40, 480.00},
		{1499.99, 40, 600.00},
		{1500, 45, 675.00},
		{1800, 45, 810.00},
	}
	for _, tc := range cases {
		pct, amount := computeRevenueShare(tc.revenue)
		assert.Equal(t, tc.wantPct, pct, "revenue %.2f", tc.revenue)
		assert.Equal(t, tc.wantAmnt, amount, "revenue %.2f", tc.revenue)
	}
}

func TestRevenueShareIdempotent(t *testing.T) {
	p1, a1 := computeRevenueShare(1234.56)
	p2, a2 := computeRevenueShare(1234.56)
	assert.Equal(t, p1, p2)
	assert.Equal(t, a1, a2)
}

func TestComputeHourly(t *testing.T) {
	assert.Equal(t, 150.00, computeHourly(1, 30, 100))
	assert.Equal(t, 95.25, computeHourly(0, 45, 127))
	assert.Equal(t, 0.0, computeHourly(0, 0, 85))
	assert.Equal(t, 212.50, computeHourly(2, 30, 85))
}

func TestParseDuration(t *testing.T) {
	hours, minutes, err := parseDuration("1:30")
	require.NoError(t, err)
	assert.Equal(t, 1, hours)
	assert.Equal(t, 30, minutes)

	hours, minutes, err = parseDuration("12:05")
	require.NoError(t, err)
	assert.Equal(t, 12, hours)
	assert.Equal(t, 5, minutes)
}

func TestParseDurationRejectsMalformed(t *testing.T) {
	for _, raw := range []string{"1:75", "130", "1:5", ":30", "1:", "a:30", "1:bc", "-1:30", "111:30", ""} {
		_, _, err := parseDuration(raw)
		assert.Error(t, err, "duration %q", raw)
	}
}
