package mission

import (
	"fmt"
	"strings"
	"time"
)

// Type names a daily objective kind.
type Type string

const (
	TypeEarnCurrency    Type = "earn_currency"
	TypeUseBoost        Type = "use_boost"
	TypePurchaseUpgrade Type = "purchase_upgrade"
)

// rotation is the mission generation order for a day.
var rotation = []Type{TypeEarnCurrency, TypeUseBoost, TypePurchaseUpgrade}

// State is one daily mission, persisted as-is in the save.
type State struct {
	ID        string  `json:"id"`
	Type      Type    `json:"type"`
	Target    float64 `json:"target"`
	Progress  float64 `json:"progress"`
	Reward    float64 `json:"reward"`
	Completed bool    `json:"completed"`
	Claimed   bool    `json:"claimed"`
}

// DayStamp encodes a UTC calendar day as yyyymmdd, the rollover key for
// missions and login streaks.
func DayStamp(t time.Time) int {
	u := t.UTC()
	return u.Year()*10000 + int(u.Month())*100 + u.Day()
}

// Tracker owns the rotating daily objectives. It never touches the wallet
// itself; Claim returns the reward and the caller credits it.
type Tracker struct {
	perDay   int
	day      int
	missions []State
}

// NewTracker restores the tracker from persisted missions and the day they
// were generated for.
func NewTracker(perDay int, day int, missions []State) *Tracker {
	if perDay < 1 {
		perDay = 1
	}
	kept := make([]State, 0, len(missions))
	for _, m := range missions {
		if m.ID == "" {
			continue
		}
		if m.Progress < 0 {
			m.Progress = 0
		}
		if m.Progress > m.Target {
			m.Progress = m.Target
		}
		kept = append(kept, m)
	}
	return &Tracker{perDay: perDay, day: day, missions: kept}
}

// EnsureForDay regenerates the mission set when the UTC day has rolled over
// or the restored set is empty. Targets and rewards scale with the current
// income rate so objectives stay meaningful at any progression depth.
func (t *Tracker) EnsureForDay(now time.Time, incomePerSec float64) bool {
	today := DayStamp(now)
	if t.day == today && len(t.missions) > 0 {
		return false
	}
	t.day = today
	base := incomePerSec
	if base < 1 {
		base = 1
	}
	t.missions = t.missions[:0]
	for i := 0; i < t.perDay; i++ {
		typ := rotation[min(i, len(rotation)-1)]
		t.missions = append(t.missions, newMission(typ, base, i))
	}
	return true
}

func newMission(typ Type, baseIncome float64, index int) State {
	m := State{
		ID:   fmt.Sprintf("%s_%d", strings.ReplaceAll(string(typ), "_", ""), index),
		Type: typ,
	}
	switch typ {
	case TypeEarnCurrency:
		m.Target = baseIncome * 120
		m.Reward = baseIncome * 25
	case TypeUseBoost:
		m.Target = 5
		m.Reward = baseIncome * 20
	case TypePurchaseUpgrade:
		m.Target = 3
		m.Reward = baseIncome * 30
	default:
		m.Target = 1
		m.Reward = baseIncome * 10
	}
	return m
}

// RecordEarnings advances every incomplete earn-currency mission.
func (t *Tracker) RecordEarnings(amount float64) bool {
	if amount <= 0 {
		return false
	}
	return t.applyProgress(TypeEarnCurrency, amount)
}

// RecordBoost advances every incomplete use-boost mission by one.
func (t *Tracker) RecordBoost() bool { return t.applyProgress(TypeUseBoost, 1) }

// RecordUpgrade advances every incomplete purchase-upgrade mission by one.
func (t *Tracker) RecordUpgrade() bool { return t.applyProgress(TypePurchaseUpgrade, 1) }

func (t *Tracker) applyProgress(typ Type, amount float64) bool {
	changed := false
	for i := range t.missions {
		m := &t.missions[i]
		if m.Type != typ || m.Completed {
			continue
		}
		m.Progress += amount
		if m.Progress >= m.Target {
			m.Progress = m.Target
			m.Completed = true
		}
		changed = true
	}
	return changed
}

// Claim marks a completed mission as claimed and returns its reward. Fails
// on unknown, incomplete or already claimed ids.
func (t *Tracker) Claim(id string) (float64, bool) {
	if id == "" {
		return 0, false
	}
	for i := range t.missions {
		m := &t.missions[i]
		if m.ID != id {
			continue
		}
		if !m.Completed || m.Claimed {
			return 0, false
		}
		m.Claimed = true
		return m.Reward, true
	}
	return 0, false
}

// Missions returns a copy of the current mission set.
func (t *Tracker) Missions() []State {
	out := make([]State, len(t.missions))
	copy(out, t.missions)
	return out
}

// Day reports the UTC day stamp the current set was generated for.
func (t *Tracker) Day() int { return t.day }
