package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_RecordAndFilter(t *testing.T) {
	repo := NewMemoryRepository()

	require.NoError(t, repo.RecordEvent(EventIncomeGained, EventMetadata{"amount": 12.5}))
	require.NoError(t, repo.RecordEvent(EventServeCompleted, EventMetadata{"menu_id": "pork_belly"}))
	require.NoError(t, repo.RecordEvent(EventBoostUsed, nil))

	all, err := repo.GetEvents(time.Time{}, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, 1, all[0].ID)
	assert.Equal(t, 3, all[2].ID)

	serves, err := repo.GetEvents(time.Time{}, []EventType{EventServeCompleted})
	require.NoError(t, err)
	require.Len(t, serves, 1)
	assert.Contains(t, serves[0].Metadata, "pork_belly")

	require.NoError(t, repo.Clear())
	all, err = repo.GetEvents(time.Time{}, nil)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCalculateStats(t *testing.T) {
	repo := NewMemoryRepository()
	require.NoError(t, repo.RecordEvent(EventIncomeGained, EventMetadata{"amount": 100.0}))
	require.NoError(t, repo.RecordEvent(EventIncomeGained, EventMetadata{"amount": 50.0}))
	require.NoError(t, repo.RecordEvent(EventServeCompleted, EventMetadata{"menu_id": "pork_belly"}))
	require.NoError(t, repo.RecordEvent(EventServeCompleted, EventMetadata{"menu_id": "pork_belly"}))
	require.NoError(t, repo.RecordEvent(EventServeCompleted, EventMetadata{"menu_id": "beef_brisket"}))
	require.NoError(t, repo.RecordEvent(EventCustomerAbandoned, nil))
	require.NoError(t, repo.RecordEvent(EventUpgradePurchased, EventMetadata{"upgrade_id": "better_tongs"}))
	require.NoError(t, repo.RecordEvent(EventBoostUsed, nil))
	require.NoError(t, repo.RecordEvent(EventRushUsed, nil))

	events, err := repo.GetEvents(time.Time{}, nil)
	require.NoError(t, err)

	stats, err := CalculateStats(events, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, "2026-05-01", stats.Period)
	assert.InDelta(t, 150, stats.IncomeTotal, 1e-9)
	assert.Equal(t, 3, stats.ServeCount)
	assert.Equal(t, 1, stats.AbandonCount)
	assert.InDelta(t, 0.25, stats.ServeAbandonPct, 1e-9)
	assert.Equal(t, 1, stats.UpgradesBought)
	assert.Equal(t, 2, stats.BoostsUsed)
	assert.Equal(t, 2, stats.ServesByMenu["pork_belly"])
	assert.Equal(t, 1, stats.UpgradesByID["better_tongs"])
	assert.Equal(t, 2, stats.EventCounts[EventIncomeGained])
}

func TestCalculateStats_BatchedAbandons(t *testing.T) {
	repo := NewMemoryRepository()
	require.NoError(t, repo.RecordEvent(EventCustomerAbandoned, EventMetadata{"count": 3}))
	require.NoError(t, repo.RecordEvent(EventCustomerAbandoned, nil))
	require.NoError(t, repo.RecordEvent(EventServeCompleted, EventMetadata{"menu_id": "pork_belly"}))

	events, err := repo.GetEvents(time.Time{}, nil)
	require.NoError(t, err)

	stats, err := CalculateStats(events, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 4, stats.AbandonCount)
	assert.InDelta(t, 0.8, stats.ServeAbandonPct, 1e-9)
}

func TestCalculateStats_EmptyEvents(t *testing.T) {
	stats, err := CalculateStats(nil, time.Now())
	require.NoError(t, err)
	assert.Zero(t, stats.ServeCount)
	assert.Zero(t, stats.ServeAbandonPct)
}
