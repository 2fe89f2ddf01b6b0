package upgrade

import (
	"math"
	"sort"
	"strings"

	"github.com/KIM3310/kbbq-idle/internal/catalog"
)

// Wallet is the spending side of the economy engine.
type Wallet interface {
	Spend(amount float64) bool
}

// PurchasedFunc is notified after a successful purchase with the upgrade id
// and its new level.
type PurchasedFunc func(id string, level int)

// LevelEntry is the persisted form of one upgrade's level.
type LevelEntry struct {
	ID    string `json:"id"`
	Level int    `json:"level"`
}

// Ledger tracks per-upgrade purchase levels against the static upgrade
// catalog. Cost grows geometrically with level; each level multiplies the
// upgrade's category by (1+effect).
type Ledger struct {
	byID        map[string]catalog.Upgrade
	order       []string
	levels      map[string]int
	onPurchased PurchasedFunc
}

// NewLedger builds a ledger from catalog rows and persisted levels. Rows and
// entries with empty ids are ignored; negative levels clamp to zero.
func NewLedger(upgrades []catalog.Upgrade, saved []LevelEntry) *Ledger {
	l := &Ledger{
		byID:   make(map[string]catalog.Upgrade, len(upgrades)),
		levels: make(map[string]int),
	}
	for _, u := range upgrades {
		if u.ID == "" {
			continue
		}
		if _, dup := l.byID[u.ID]; !dup {
			l.order = append(l.order, u.ID)
		}
		l.byID[u.ID] = u
	}
	for _, e := range saved {
		if e.ID == "" {
			continue
		}
		if e.Level < 0 {
			e.Level = 0
		}
		l.levels[e.ID] = e.Level
	}
	return l
}

// SetPurchasedFunc installs the purchase notification callback.
func (l *Ledger) SetPurchasedFunc(fn PurchasedFunc) { l.onPurchased = fn }

// Level reports the purchased level of an upgrade, 0 for unknown ids.
func (l *Ledger) Level(id string) int { return l.levels[id] }

// Cost reports the price of the next level. Unknown ids are unaffordable.
func (l *Ledger) Cost(id string) float64 {
	u, ok := l.byID[id]
	if !ok {
		return math.MaxFloat64
	}
	return u.BaseCost * math.Pow(u.CostMultiplier, float64(l.Level(id)))
}

// Purchase buys one level of an upgrade through the wallet. Unknown ids and
// insufficient funds both fail with zero mutation.
func (l *Ledger) Purchase(id string, w Wallet) bool {
	if id == "" || w == nil {
		return false
	}
	if _, ok := l.byID[id]; !ok {
		return false
	}
	if !w.Spend(l.Cost(id)) {
		return false
	}
	next := l.Level(id) + 1
	l.levels[id] = next
	if l.onPurchased != nil {
		l.onPurchased(id, next)
	}
	return true
}

// CategoryMultiplier is the product of (1+effect)^level over every upgrade in
// the category. With targetID set, target-scoped upgrades only count when
// their target matches; untargeted upgrades always count. Level-0 upgrades
// contribute 1.
func (l *Ledger) CategoryMultiplier(cat catalog.Category, targetID string) float64 {
	mult := 1.0
	for id, u := range l.byID {
		if u.Category != cat {
			continue
		}
		if targetID != "" && u.TargetID != "" && !strings.EqualFold(u.TargetID, targetID) {
			continue
		}
		level := l.levels[id]
		if level <= 0 {
			continue
		}
		mult *= math.Pow(1+u.EffectValue, float64(level))
	}
	return mult
}

// GlobalMultiplier is the income-category multiplier.
func (l *Ledger) GlobalMultiplier() float64 {
	return l.CategoryMultiplier(catalog.CategoryIncome, "")
}

// MenuMultiplier is the menu-category multiplier scoped to one menu id.
func (l *Ledger) MenuMultiplier(menuID string) float64 {
	return l.CategoryMultiplier(catalog.CategoryMenu, menuID)
}

// ExportLevels returns the persisted form, sorted by id for stable saves.
func (l *Ledger) ExportLevels() []LevelEntry {
	out := make([]LevelEntry, 0, len(l.levels))
	for id, level := range l.levels {
		out = append(out, LevelEntry{ID: id, Level: level})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Reset drops all purchased levels (prestige).
func (l *Ledger) Reset() {
	l.levels = make(map[string]int)
}

// Entry is one row of the upgrade list snapshot handed to the UI layer.
type Entry struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"display_name"`
	Category    string  `json:"category"`
	Level       int     `json:"level"`
	Cost        float64 `json:"cost"`
	Score       float64 `json:"score"`
	Affordable  bool    `json:"affordable"`
	Best        bool    `json:"best"`
}

// categoryWeight biases the best-upgrade score toward raw income lines.
// Tuning values, not derived.
func categoryWeight(cat catalog.Category) float64 {
	switch cat {
	case catalog.CategoryIncome:
		return 1.0
	case catalog.CategoryMenu:
		return 0.9
	case catalog.CategoryStaff, catalog.CategoryService:
		return 0.8
	case catalog.CategorySizzle:
		return 0.6
	}
	return 0.75
}

// Entries builds the snapshot rows, marks the best affordable upgrade by
// score, and sorts by category then cost.
func (l *Ledger) Entries(currency float64) []Entry {
	out := make([]Entry, 0, len(l.order))
	bestIdx := -1
	bestScore := -1.0
	for _, id := range l.order {
		u := l.byID[id]
		cost := l.Cost(id)
		score := 0.0
		if cost > 0 {
			score = u.EffectValue * categoryWeight(u.Category) / cost
		}
		e := Entry{
			ID:          u.ID,
			DisplayName: u.DisplayName,
			Category:    string(u.Category),
			Level:       l.Level(id),
			Cost:        cost,
			Score:       score,
			Affordable:  currency >= cost,
		}
		if e.Affordable && score > bestScore {
			bestScore = score
			bestIdx = len(out)
		}
		out = append(out, e)
	}
	if bestIdx >= 0 {
		out[bestIdx].Best = true
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Cost < out[j].Cost
	})
	return out
}

// BestAffordable returns the id of the highest-scoring upgrade the wallet
// can currently afford, breaking near-ties toward the cheaper line.
func (l *Ledger) BestAffordable(currency float64) (string, bool) {
	bestID := ""
	bestScore := 0.0
	bestCost := 0.0
	for _, id := range l.order {
		u := l.byID[id]
		cost := l.Cost(id)
		if cost <= 0 || cost > currency {
			continue
		}
		score := u.EffectValue * categoryWeight(u.Category) / cost
		if bestID == "" || score > bestScore || (math.Abs(score-bestScore) < 1e-6 && cost < bestCost) {
			bestID = id
			bestScore = score
			bestCost = cost
		}
	}
	return bestID, bestID != ""
}
