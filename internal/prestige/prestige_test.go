package prestige

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateReward_Thresholds(t *testing.T) {
	l := NewLedger(0, 0)

	cases := []struct {
		name   string
		earned float64
		level  int
		can    bool
		points int
	}{
		{"comfortably eligible", 400000, 12, true, 2},
		{"earnings just short", 49999, 10, false, 0},
		{"level just short", 50000, 9, false, 0},
		{"exactly at both minimums", 50000, 10, true, 1},
		{"sub-point earnings still grant one", 90000, 15, true, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := l.CalculateReward(tc.earned, tc.level)
			assert.Equal(t, tc.can, r.CanPrestige)
			assert.Equal(t, tc.points, r.Points)
		})
	}
}

func TestApply_AccumulatesAcrossRuns(t *testing.T) {
	l := NewLedger(0, 0)

	l.Apply(l.CalculateReward(400000, 12))
	assert.Equal(t, 1, l.Level())
	assert.Equal(t, 2, l.Points())
	assert.InDelta(t, 1.04, l.Multiplier(), 1e-9)

	l.Apply(l.CalculateReward(1000000, 20))
	assert.Equal(t, 2, l.Level())
	assert.Equal(t, 5, l.Points())
	assert.InDelta(t, 1.10, l.Multiplier(), 1e-9)
}

func TestApply_IgnoresIneligibleReward(t *testing.T) {
	l := NewLedger(1, 3)
	l.Apply(l.CalculateReward(100, 1))
	assert.Equal(t, 1, l.Level())
	assert.Equal(t, 3, l.Points())
}

func TestNewLedger_ClampsNegatives(t *testing.T) {
	l := NewLedger(-2, -5)
	assert.Equal(t, 0, l.Level())
	assert.Equal(t, 0, l.Points())
	assert.InDelta(t, 1.0, l.Multiplier(), 1e-9)
}
