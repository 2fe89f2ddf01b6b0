package save

import (
	"github.com/KIM3310/kbbq-idle/internal/kitchen"
	"github.com/KIM3310/kbbq-idle/internal/mission"
	"github.com/KIM3310/kbbq-idle/internal/upgrade"
)

// CurrentVersion is stamped into every written save. Older versions load
// through the same sanitize path; missing fields take their defaults.
const CurrentVersion = 2

// Data is the full persisted snapshot of a restaurant. Everything the
// simulation needs to resume a session lives here; catalogs and balance are
// loaded separately and never saved.
type Data struct {
	Version           int     `json:"version"`
	PlayerLevel       int     `json:"player_level"`
	PrestigeLevel     int     `json:"prestige_level"`
	PrestigePoints    int     `json:"prestige_points"`
	Currency          float64 `json:"currency"`
	TotalEarned       float64 `json:"total_earned"`
	LifetimeEarned    float64 `json:"lifetime_earned"`
	LastOnlineTs      int64   `json:"last_online_ts"`
	TutorialCompleted bool    `json:"tutorial_completed"`
	StoreTierIndex    int     `json:"store_tier_index"`

	LastLoginDay   int `json:"last_login_day"`
	LoginStreak    int `json:"login_streak"`
	LastMissionDay int `json:"last_mission_day"`

	SpawnRateMultiplier   float64 `json:"spawn_rate_multiplier"`
	ServiceRateMultiplier float64 `json:"service_rate_multiplier"`

	UnlockedMenuIDs []string             `json:"unlocked_menu_ids"`
	UpgradeLevels   []upgrade.LevelEntry `json:"upgrade_levels"`
	DailyMissions   []mission.State      `json:"daily_missions"`
	MeatStock       []kitchen.StockEntry `json:"meat_stock"`
	GrillSlots      []kitchen.SlotEntry  `json:"grill_slots"`
}

// NewData returns the fresh-player snapshot.
func NewData() *Data {
	d := &Data{Version: CurrentVersion}
	d.Sanitize()
	return d
}

// Sanitize clamps every field into a range the simulation can run with. It
// is applied on every save and load so a hand-edited or partially migrated
// snapshot can never wedge the engine.
func (d *Data) Sanitize() {
	if d.Version < 1 {
		d.Version = 1
	}
	if d.PlayerLevel < 1 {
		d.PlayerLevel = 1
	}
	if d.PrestigeLevel < 0 {
		d.PrestigeLevel = 0
	}
	if d.PrestigePoints < 0 {
		d.PrestigePoints = 0
	}
	if d.Currency < 0 {
		d.Currency = 0
	}
	if d.TotalEarned < 0 {
		d.TotalEarned = 0
	}
	if d.LifetimeEarned < d.TotalEarned {
		d.LifetimeEarned = d.TotalEarned
	}
	if d.LastOnlineTs < 0 {
		d.LastOnlineTs = 0
	}
	if d.StoreTierIndex < 0 {
		d.StoreTierIndex = 0
	}
	if d.LoginStreak < 0 {
		d.LoginStreak = 0
	}
	if d.SpawnRateMultiplier <= 0 {
		d.SpawnRateMultiplier = 1
	}
	if d.ServiceRateMultiplier <= 0 {
		d.ServiceRateMultiplier = 1
	}
	if d.UnlockedMenuIDs == nil {
		d.UnlockedMenuIDs = []string{}
	}
	if d.UpgradeLevels == nil {
		d.UpgradeLevels = []upgrade.LevelEntry{}
	}
	if d.DailyMissions == nil {
		d.DailyMissions = []mission.State{}
	}
	if d.MeatStock == nil {
		d.MeatStock = []kitchen.StockEntry{}
	}
	if d.GrillSlots == nil {
		d.GrillSlots = []kitchen.SlotEntry{}
	}
}

// ResetProgressForPrestige wipes the run-scoped progress. Prestige level,
// points, lifetime earnings, login streak and tutorial flag all survive.
func (d *Data) ResetProgressForPrestige() {
	d.PlayerLevel = 1
	d.Currency = 0
	d.TotalEarned = 0
	d.StoreTierIndex = 0
	d.UnlockedMenuIDs = []string{}
	d.UpgradeLevels = []upgrade.LevelEntry{}
	d.MeatStock = []kitchen.StockEntry{}
	d.GrillSlots = []kitchen.SlotEntry{}
}
