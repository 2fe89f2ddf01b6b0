package prestige

import "math"

const (
	minLevel    = 10
	minEarnings = 50_000
	pointBase   = 100_000
	pointBonus  = 0.02
)

// Reward is the outcome of an eligibility check.
type Reward struct {
	CanPrestige bool
	Points      int
}

// Ledger tracks the permanent prestige progress. Points and level survive
// every reset.
type Ledger struct {
	level  int
	points int
}

// NewLedger restores a ledger from persisted values, clamping negatives.
func NewLedger(level, points int) *Ledger {
	if level < 0 {
		level = 0
	}
	if points < 0 {
		points = 0
	}
	return &Ledger{level: level, points: points}
}

// CalculateReward checks eligibility and computes the point award. The
// player must be at least level 10 with 50k lifetime earnings; points scale
// with the square root of earnings so late resets stay worthwhile.
func (l *Ledger) CalculateReward(totalEarned float64, playerLevel int) Reward {
	if playerLevel < minLevel || totalEarned < minEarnings {
		return Reward{}
	}
	pts := int(math.Floor(math.Sqrt(totalEarned / pointBase)))
	if pts < 1 {
		pts = 1
	}
	return Reward{CanPrestige: true, Points: pts}
}

// Apply banks the reward: one prestige level and its points. The caller
// resets the rest of the game state.
func (l *Ledger) Apply(r Reward) {
	if !r.CanPrestige {
		return
	}
	l.level++
	l.points += r.Points
}

// Multiplier is the permanent income bonus: 2% per point.
func (l *Ledger) Multiplier() float64 { return 1 + float64(l.points)*pointBonus }

// Level reports how many times the player has prestiged.
func (l *Ledger) Level() int { return l.level }

// Points reports the banked prestige points.
func (l *Ledger) Points() int { return l.points }
