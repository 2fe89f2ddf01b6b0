package tier

import "github.com/KIM3310/kbbq-idle/internal/catalog"

// Ladder tracks the current store tier. Tiers advance one rung at a time as
// the player level crosses each unlock threshold; they never regress except
// through a prestige reset.
type Ladder struct {
	tiers []catalog.StoreTier
	index int
}

// NewLadder restores the ladder from a persisted tier index, clamped into
// the catalog range.
func NewLadder(tiers []catalog.StoreTier, index int) *Ladder {
	l := &Ladder{}
	for _, t := range tiers {
		if t.ID == "" {
			continue
		}
		l.tiers = append(l.tiers, t)
	}
	if index < 0 {
		index = 0
	}
	if index >= len(l.tiers) && len(l.tiers) > 0 {
		index = len(l.tiers) - 1
	}
	l.index = index
	return l
}

// Index reports the current tier position.
func (l *Ladder) Index() int { return l.index }

// Current returns the current tier row.
func (l *Ladder) Current() (catalog.StoreTier, bool) {
	if len(l.tiers) == 0 {
		return catalog.StoreTier{}, false
	}
	return l.tiers[l.index], true
}

// StoreMultiplier is the income multiplier of the current tier, 1 with an
// empty catalog.
func (l *Ladder) StoreMultiplier() float64 {
	cur, ok := l.Current()
	if !ok {
		return 1
	}
	return cur.IncomeMultiplier
}

// TryAdvance moves up one rung if the player level unlocks the next tier.
func (l *Ladder) TryAdvance(playerLevel int) bool {
	next := l.index + 1
	if next >= len(l.tiers) {
		return false
	}
	if playerLevel < l.tiers[next].UnlockLevel {
		return false
	}
	l.index = next
	return true
}

// Reset drops back to the first tier (prestige).
func (l *Ladder) Reset() { l.index = 0 }
