package menu

import (
	"math/rand"

	"github.com/KIM3310/kbbq-idle/internal/catalog"
)

// MenuMultipliers supplies the per-item menu upgrade multiplier.
type MenuMultipliers interface {
	MenuMultiplier(menuID string) float64
}

// UnlockSet tracks which catalog menu items the player has unlocked. The set
// only grows (until a prestige reset rebuilds it from level 1).
type UnlockSet struct {
	items    []catalog.MenuItem
	unlocked map[string]bool
	mults    MenuMultipliers
}

// NewUnlockSet restores the unlock set from persisted ids and applies the
// level-based unlocks on top. If nothing ends up unlocked, the first catalog
// item is, so the menu is never empty.
func NewUnlockSet(items []catalog.MenuItem, mults MenuMultipliers, unlockedIDs []string, playerLevel int) *UnlockSet {
	s := &UnlockSet{
		unlocked: make(map[string]bool),
		mults:    mults,
	}
	for _, it := range items {
		if it.ID == "" {
			continue
		}
		s.items = append(s.items, it)
	}
	for _, id := range unlockedIDs {
		if id != "" {
			s.unlocked[id] = true
		}
	}
	s.UnlockByLevel(playerLevel)
	if len(s.unlocked) == 0 && len(s.items) > 0 {
		s.unlocked[s.items[0].ID] = true
	}
	return s
}

// BaseMenuIncome is the passive income contributed by the unlocked menu:
// sum of basePrice * bonus * per-item upgrade multiplier.
func (s *UnlockSet) BaseMenuIncome() float64 {
	total := 0.0
	for _, it := range s.items {
		if !s.unlocked[it.ID] {
			continue
		}
		mult := 1.0
		if s.mults != nil {
			mult = s.mults.MenuMultiplier(it.ID)
		}
		total += it.BasePrice * it.BonusMultiplier * mult
	}
	return total
}

// UnlockByLevel unlocks every item at or below the player level and returns
// the ids unlocked by this call, in catalog order.
func (s *UnlockSet) UnlockByLevel(playerLevel int) []string {
	var added []string
	for _, it := range s.items {
		if it.UnlockLevel <= playerLevel && !s.unlocked[it.ID] {
			s.unlocked[it.ID] = true
			added = append(added, it.ID)
		}
	}
	return added
}

// Unlocked reports whether a menu id is unlocked.
func (s *UnlockSet) Unlocked(id string) bool { return s.unlocked[id] }

// UnlockedIDs returns the persisted form of the set, in catalog order.
func (s *UnlockSet) UnlockedIDs() []string {
	out := make([]string, 0, len(s.unlocked))
	for _, it := range s.items {
		if s.unlocked[it.ID] {
			out = append(out, it.ID)
		}
	}
	return out
}

// UnlockedItems returns the unlocked catalog rows in catalog order.
func (s *UnlockSet) UnlockedItems() []catalog.MenuItem {
	out := make([]catalog.MenuItem, 0, len(s.unlocked))
	for _, it := range s.items {
		if s.unlocked[it.ID] {
			out = append(out, it)
		}
	}
	return out
}

// FirstUnlocked returns the first unlocked item in catalog order.
func (s *UnlockSet) FirstUnlocked() (catalog.MenuItem, bool) {
	for _, it := range s.items {
		if s.unlocked[it.ID] {
			return it, true
		}
	}
	return catalog.MenuItem{}, false
}

// RandomUnlocked picks a random unlocked item; with nothing unlocked it
// falls back to the first catalog row.
func (s *UnlockSet) RandomUnlocked(rng *rand.Rand) (catalog.MenuItem, bool) {
	unlocked := s.UnlockedItems()
	if len(unlocked) == 0 {
		if len(s.items) == 0 {
			return catalog.MenuItem{}, false
		}
		return s.items[0], true
	}
	return unlocked[rng.Intn(len(unlocked))], true
}
