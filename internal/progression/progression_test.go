package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KIM3310/kbbq-idle/internal/catalog"
)

func testTable() *Table {
	return NewTable(catalog.Tuning{MaxLevel: 10, BaseRequirement: 100, RequirementGrowth: 2})
}

func TestLevelForIncome_Thresholds(t *testing.T) {
	tab := testTable()

	assert.Equal(t, 1, tab.LevelForIncome(0))
	assert.Equal(t, 1, tab.LevelForIncome(99.99))
	// Level 2 requires exactly 100.
	assert.Equal(t, 2, tab.LevelForIncome(100))
	assert.Equal(t, 3, tab.LevelForIncome(200))
	assert.Equal(t, 3, tab.LevelForIncome(399))
	assert.Equal(t, 4, tab.LevelForIncome(400))
}

func TestLevelForIncome_CapsAtMaxLevel(t *testing.T) {
	tab := testTable()
	assert.Equal(t, 10, tab.LevelForIncome(1e12))
}

func TestLevelForIncome_MonotonicNonDecreasing(t *testing.T) {
	tab := NewTable(catalog.Tuning{})
	prev := tab.LevelForIncome(0)
	for total := float64(0); total < 5e6; total += 1337 {
		lvl := tab.LevelForIncome(total)
		assert.GreaterOrEqual(t, lvl, prev, "level dropped at total=%f", total)
		prev = lvl
	}
}

func TestNextRequirement(t *testing.T) {
	tab := testTable()
	assert.InDelta(t, 100, tab.NextRequirement(1), 1e-9)
	assert.InDelta(t, 200, tab.NextRequirement(2), 1e-9)
	// Clamped at the last threshold for out of range levels.
	assert.InDelta(t, tab.NextRequirement(10), tab.NextRequirement(99), 1e-9)
	assert.InDelta(t, 100, tab.NextRequirement(-3), 1e-9)
}

func TestNewTable_DefaultsOnJunkTuning(t *testing.T) {
	tab := NewTable(catalog.Tuning{MaxLevel: -1, BaseRequirement: 0, RequirementGrowth: 0.5})
	assert.Equal(t, 100, tab.MaxLevel())
	assert.Equal(t, 1, tab.LevelForIncome(49))
	assert.Equal(t, 2, tab.LevelForIncome(50))
}
