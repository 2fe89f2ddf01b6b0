package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize_ClampsJunk(t *testing.T) {
	b := Balance{
		BoostMultiplier:  0,
		RushMultiplier:   -2,
		MaxOfflineHours:  -1,
		GrillSlotCount:   9,
		FlipReadySeconds: 5,
		CookSeconds:      4,
		BurnSeconds:      1,
	}
	b.Sanitize()

	assert.InDelta(t, 1, b.BoostMultiplier, 1e-9)
	assert.InDelta(t, 1, b.RushMultiplier, 1e-9)
	assert.Zero(t, b.MaxOfflineHours)
	assert.Equal(t, 4, b.GrillSlotCount)
	// Cook ordering: flip < cook < burn must always hold.
	assert.Greater(t, b.CookSeconds, b.FlipReadySeconds)
	assert.Greater(t, b.BurnSeconds, b.CookSeconds)
}

func TestDefault_SurvivesSanitize(t *testing.T) {
	b := Default()
	before := b
	b.Sanitize()
	assert.Equal(t, before, b)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("KBBQ_MAX_OFFLINE_HOURS", "4")
	t.Setenv("KBBQ_OFFLINE_RATE", "0.5")
	t.Setenv("KBBQ_GRILL_SLOTS", "3")
	t.Setenv("KBBQ_MISSIONS_PER_DAY", "not a number")

	b := FromEnv()

	assert.Equal(t, 4, b.MaxOfflineHours)
	assert.InDelta(t, 0.5, b.OfflineRate, 1e-9)
	assert.Equal(t, 3, b.GrillSlotCount)
	assert.Equal(t, Default().MissionsPerDay, b.MissionsPerDay)
}
