package game

import (
	"github.com/KIM3310/kbbq-idle/internal/catalog"
	"github.com/KIM3310/kbbq-idle/internal/kitchen"
	"github.com/KIM3310/kbbq-idle/internal/mission"
	"github.com/KIM3310/kbbq-idle/internal/queue"
	"github.com/KIM3310/kbbq-idle/internal/upgrade"
)

// Read-only queries. Everything returns values, never internal slices, so a
// host layer can hold a snapshot across ticks.

func (g *Game) State() State           { return g.machine.State() }
func (g *Game) Currency() float64      { return g.economy.Currency() }
func (g *Game) TotalEarned() float64   { return g.economy.TotalEarned() }
func (g *Game) IncomePerSec() float64  { return g.economy.IncomePerSec() }
func (g *Game) PlayerLevel() int       { return g.data.PlayerLevel }
func (g *Game) Satisfaction() float64  { return g.queue.Satisfaction() }
func (g *Game) ComboCount() int        { return g.queue.ComboCount() }
func (g *Game) PrestigeLevel() int     { return g.prestige.Level() }
func (g *Game) PrestigePoints() int    { return g.prestige.Points() }
func (g *Game) TutorialDone() bool     { return g.data.TutorialCompleted }
func (g *Game) LifetimeEarned() float64 { return g.data.LifetimeEarned }

// QueueSnapshot returns the waiting customers, head first.
func (g *Game) QueueSnapshot() []queue.Entry { return g.queue.Snapshot() }

// QueueMetrics reports rolling queue health.
func (g *Game) QueueMetrics() queue.Metrics { return g.queue.GetMetrics() }

// UpgradeEntries lists every upgrade with level, cost and best-buy marking.
func (g *Game) UpgradeEntries() []upgrade.Entry {
	return g.upgrades.Entries(g.economy.Currency())
}

// GrillSlotStates returns the per-slot grill view.
func (g *Game) GrillSlotStates() []kitchen.SlotView { return g.kitchen.Slots() }

// MeatInventory returns the stock rows for the unlocked menu.
func (g *Game) MeatInventory() []kitchen.StockView {
	return g.kitchen.Inventory(g.menu.UnlockedItems(), g.data.PlayerLevel)
}

// Missions returns the current daily mission set.
func (g *Game) Missions() []mission.State { return g.missions.Missions() }

// CurrentTier returns the active store tier row.
func (g *Game) CurrentTier() (catalog.StoreTier, bool) { return g.tiers.Current() }

// UnlockedMenu returns the unlocked menu rows in catalog order.
func (g *Game) UnlockedMenu() []catalog.MenuItem { return g.menu.UnlockedItems() }

// Snapshot is the aggregate read model pushed to stream consumers.
type Snapshot struct {
	State          State              `json:"state"`
	Currency       float64            `json:"currency"`
	TotalEarned    float64            `json:"total_earned"`
	LifetimeEarned float64            `json:"lifetime_earned"`
	IncomePerSec   float64            `json:"income_per_sec"`
	PlayerLevel    int                `json:"player_level"`
	Satisfaction   float64            `json:"satisfaction"`
	ComboCount     int                `json:"combo_count"`
	PrestigeLevel  int                `json:"prestige_level"`
	PrestigePoints int                `json:"prestige_points"`
	CanPrestige    bool               `json:"can_prestige"`
	StoreTierID    string             `json:"store_tier_id"`
	Queue          []queue.Entry      `json:"queue"`
	QueueMetrics   queue.Metrics      `json:"queue_metrics"`
	Upgrades       []upgrade.Entry    `json:"upgrades"`
	GrillSlots     []kitchen.SlotView `json:"grill_slots"`
	MeatInventory  []kitchen.StockView `json:"meat_inventory"`
	Missions       []mission.State    `json:"missions"`
}

// BuildSnapshot assembles the full read model.
func (g *Game) BuildSnapshot() Snapshot {
	s := Snapshot{
		State:          g.machine.State(),
		Currency:       g.economy.Currency(),
		TotalEarned:    g.economy.TotalEarned(),
		LifetimeEarned: g.data.LifetimeEarned,
		IncomePerSec:   g.economy.IncomePerSec(),
		PlayerLevel:    g.data.PlayerLevel,
		Satisfaction:   g.queue.Satisfaction(),
		ComboCount:     g.queue.ComboCount(),
		PrestigeLevel:  g.prestige.Level(),
		PrestigePoints: g.prestige.Points(),
		CanPrestige:    g.CanPrestige(),
		Queue:          g.queue.Snapshot(),
		QueueMetrics:   g.queue.GetMetrics(),
		Upgrades:       g.upgrades.Entries(g.economy.Currency()),
		GrillSlots:     g.kitchen.Slots(),
		MeatInventory:  g.MeatInventory(),
		Missions:       g.missions.Missions(),
	}
	if cur, ok := g.tiers.Current(); ok {
		s.StoreTierID = cur.ID
	}
	return s
}
