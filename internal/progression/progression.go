package progression

import (
	"sort"

	"github.com/KIM3310/kbbq-idle/internal/catalog"
)

// Table maps lifetime earnings to player level. Thresholds are precomputed
// once at startup; level L requires baseRequirement * requirementGrowth^(L-1)
// total earned.
type Table struct {
	thresholds []float64
	maxLevel   int
}

// NewTable builds the threshold table from tuning values, falling back to
// sane defaults when the catalog carries junk.
func NewTable(t catalog.Tuning) *Table {
	maxLevel := t.MaxLevel
	if maxLevel < 1 {
		maxLevel = 100
	}
	base := t.BaseRequirement
	if base <= 0 {
		base = 50
	}
	growth := t.RequirementGrowth
	if growth <= 1 {
		growth = 1.28
	}

	thresholds := make([]float64, maxLevel)
	req := base
	for i := range thresholds {
		thresholds[i] = req
		req *= growth
	}
	return &Table{thresholds: thresholds, maxLevel: maxLevel}
}

// LevelForIncome returns the highest level whose threshold total has met,
// starting at level 1 for a fresh player and capped at max level.
func (t *Table) LevelForIncome(total float64) int {
	// thresholds is ascending; find the first one not yet met.
	n := sort.Search(len(t.thresholds), func(i int) bool { return t.thresholds[i] > total })
	level := 1 + n
	if level > t.maxLevel {
		level = t.maxLevel
	}
	return level
}

// NextRequirement returns the total earnings needed to advance past the
// given level.
func (t *Table) NextRequirement(level int) float64 {
	if level < 1 {
		level = 1
	}
	idx := level - 1
	if idx >= len(t.thresholds) {
		idx = len(t.thresholds) - 1
	}
	return t.thresholds[idx]
}

// MaxLevel reports the level cap.
func (t *Table) MaxLevel() int { return t.maxLevel }
