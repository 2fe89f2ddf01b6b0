package game

import (
	"math/rand"
	"time"

	"github.com/KIM3310/kbbq-idle/internal/catalog"
	"github.com/KIM3310/kbbq-idle/internal/config"
	"github.com/KIM3310/kbbq-idle/internal/economy"
	"github.com/KIM3310/kbbq-idle/internal/kitchen"
	"github.com/KIM3310/kbbq-idle/internal/menu"
	"github.com/KIM3310/kbbq-idle/internal/mission"
	"github.com/KIM3310/kbbq-idle/internal/offline"
	"github.com/KIM3310/kbbq-idle/internal/prestige"
	"github.com/KIM3310/kbbq-idle/internal/progression"
	"github.com/KIM3310/kbbq-idle/internal/queue"
	"github.com/KIM3310/kbbq-idle/internal/save"
	"github.com/KIM3310/kbbq-idle/internal/telemetry"
	"github.com/KIM3310/kbbq-idle/internal/tier"
	"github.com/KIM3310/kbbq-idle/internal/upgrade"
)

const missionRefreshInterval = 30.0

// Game is the simulation root. It owns every subsystem, is the only thing a
// host layer talks to, and is not safe for concurrent use: the host
// serializes Tick, commands and queries.
type Game struct {
	cfg    config.Balance
	cat    *catalog.Catalog
	clock  Clock
	rng    *rand.Rand
	store  save.Store
	events telemetry.Repository

	data    *save.Data
	machine *Machine

	economy  *economy.Engine
	upgrades *upgrade.Ledger
	menu     *menu.UnlockSet
	tiers    *tier.Ladder
	queue    *queue.Simulator
	kitchen  *kitchen.Station
	prestige *prestige.Ledger
	table    *progression.Table
	missions *mission.Tracker
	login    *mission.Login

	missionTimer     float64
	unreportedIncome float64
}

// New loads the save from the store and builds a ready-to-boot game. A nil
// events repository records into memory; a nil clock runs on wall time.
func New(cfg config.Balance, cat *catalog.Catalog, store save.Store, events telemetry.Repository, clock Clock, rng *rand.Rand) (*Game, error) {
	cfg.Sanitize()
	if clock == nil {
		clock = RealClock{}
	}
	if events == nil {
		events = telemetry.NewMemoryRepository()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	data, err := store.Load()
	if err != nil {
		return nil, err
	}
	data.Sanitize()

	g := &Game{
		cfg:     cfg,
		cat:     cat,
		clock:   clock,
		rng:     rng,
		store:   store,
		events:  events,
		data:    data,
		machine: NewMachine(),
		table:   progression.NewTable(cat.Tuning),
	}
	g.initSystems()
	return g, nil
}

// initSystems rebuilds every run-scoped subsystem from the current save
// snapshot. Called once at startup and again after a prestige reset.
func (g *Game) initSystems() {
	d := g.data
	g.prestige = prestige.NewLedger(d.PrestigeLevel, d.PrestigePoints)
	g.upgrades = upgrade.NewLedger(g.cat.Upgrades, d.UpgradeLevels)
	g.upgrades.SetPurchasedFunc(func(id string, level int) {
		g.record(telemetry.EventUpgradePurchased, telemetry.EventMetadata{"upgrade_id": id, "level": level})
	})
	g.menu = menu.NewUnlockSet(g.cat.MenuItems, g.upgrades, d.UnlockedMenuIDs, d.PlayerLevel)
	g.tiers = tier.NewLadder(g.cat.StoreTiers, d.StoreTierIndex)
	g.queue = queue.NewSimulator(g.cfg, g.cat.Customers, g.rng)
	g.queue.SetSpawnRateMultiplier(d.SpawnRateMultiplier)
	g.queue.SetServiceRateMultiplier(d.ServiceRateMultiplier)
	g.kitchen = kitchen.NewStation(g.cfg, g.cat, d.MeatStock, d.GrillSlots)
	g.kitchen.EnsureStarterStock(g.menu.UnlockedItems())
	if first, ok := g.menu.FirstUnlocked(); ok {
		g.kitchen.EnsureEmergencyStock(first)
	}
	g.economy = economy.NewEngine(modifiers{g}, d.Currency, d.TotalEarned)
	g.economy.SetIncomeFunc(g.handleIncome)
	g.missions = mission.NewTracker(g.cfg.MissionsPerDay, d.LastMissionDay, d.DailyMissions)
	g.login = mission.NewLogin(d.LastLoginDay, d.LoginStreak)
	g.missionTimer = 0
}

// modifiers feeds the economy engine from the other subsystems.
type modifiers struct{ g *Game }

func (m modifiers) BaseMenuIncome() float64     { return m.g.menu.BaseMenuIncome() }
func (m modifiers) GlobalMultiplier() float64   { return m.g.upgrades.GlobalMultiplier() }
func (m modifiers) StaffMultiplier() float64    { return m.g.categoryMult(catalog.CategoryStaff) }
func (m modifiers) ServiceMultiplier() float64  { return m.g.categoryMult(catalog.CategoryService) }
func (m modifiers) StoreMultiplier() float64    { return m.g.tiers.StoreMultiplier() }
func (m modifiers) TipMultiplier() float64      { return m.g.queue.TipMultiplier() }
func (m modifiers) ComboMultiplier() float64    { return m.g.queue.ComboMultiplier() }
func (m modifiers) PrestigeMultiplier() float64 { return m.g.prestige.Multiplier() }

func (g *Game) categoryMult(cat catalog.Category) float64 {
	return g.upgrades.CategoryMultiplier(cat, "")
}

// Boot runs the session start sequence: offline earnings, the daily login
// bonus, mission rollover, then the tutorial gate.
func (g *Game) Boot() BootResult {
	g.machine.TransitionTo(StateOfflineCalc)

	res := BootResult{Offline: g.applyOfflineEarnings()}
	res.Login = g.login.TryClaim(g.clock.Now(), g.economy.IncomePerSec())
	if res.Login.Granted {
		g.economy.AddCurrency(res.Login.Currency)
		g.record(telemetry.EventLoginReward, telemetry.EventMetadata{
			"amount": res.Login.Currency, "streak_day": res.Login.StreakDay,
		})
	}
	g.ensureMissions()

	if g.data.TutorialCompleted {
		g.machine.TransitionTo(StateMainLoop)
	} else {
		g.machine.TransitionTo(StateTutorial)
	}
	res.State = g.machine.State()
	return res
}

// BootResult reports what happened during session start.
type BootResult struct {
	Offline offline.Result
	Login   mission.LoginReward
	State   State
}

func (g *Game) applyOfflineEarnings() offline.Result {
	now := g.clock.Now()
	if g.data.LastOnlineTs <= 0 {
		g.data.LastOnlineTs = now.Unix()
		return offline.Result{}
	}
	res := offline.Calculate(time.Unix(g.data.LastOnlineTs, 0), now, g.economy.IncomePerSec(), g.cfg.MaxOfflineHours, g.cfg.OfflineRate)
	if res.Earned > 0 {
		g.economy.AddCurrency(res.Earned)
		g.record(telemetry.EventOfflineEarnings, telemetry.EventMetadata{
			"amount": res.Earned, "capped_sec": res.CappedSec,
		})
	}
	g.data.LastOnlineTs = now.Unix()
	return res
}

// Tick advances the simulation by dt seconds. Ticks while paused or during
// offline calculation are dropped.
func (g *Game) Tick(dt float64) {
	if dt <= 0 || g.machine.Suspended() {
		return
	}

	g.economy.Tick(dt)
	g.queue.Tick(dt, g.categoryMult(catalog.CategoryService), g.menu)
	g.kitchen.Tick(dt, g.categoryMult(catalog.CategorySizzle))

	if n := g.queue.TakeAbandoned(); n > 0 {
		g.record(telemetry.EventCustomerAbandoned, telemetry.EventMetadata{"count": n})
	}

	g.missionTimer -= dt
	if g.missionTimer <= 0 {
		g.ensureMissions()
		g.flushIncome()
		g.missionTimer = missionRefreshInterval
	}
}

// handleIncome runs synchronously on every earned amount: lifetime totals
// first, then missions, then progression. Income telemetry is batched into
// flushIncome to keep the event log out of the per-tick path.
func (g *Game) handleIncome(amount float64) {
	g.data.LifetimeEarned += amount
	g.data.TotalEarned = g.economy.TotalEarned()
	g.unreportedIncome += amount
	g.missions.RecordEarnings(amount)
	g.updateProgression()
}

// flushIncome records the income earned since the last flush as one event.
func (g *Game) flushIncome() {
	if g.unreportedIncome <= 0 {
		return
	}
	g.record(telemetry.EventIncomeGained, telemetry.EventMetadata{"amount": g.unreportedIncome})
	g.unreportedIncome = 0
}

func (g *Game) updateProgression() {
	newLevel := g.table.LevelForIncome(g.data.TotalEarned)
	if newLevel <= g.data.PlayerLevel {
		return
	}
	g.data.PlayerLevel = newLevel
	for _, id := range g.menu.UnlockByLevel(newLevel) {
		g.record(telemetry.EventMenuUnlocked, telemetry.EventMetadata{"menu_id": id, "level": newLevel})
	}
	for g.tiers.TryAdvance(newLevel) {
		g.record(telemetry.EventTierAdvanced, telemetry.EventMetadata{"tier_index": g.tiers.Index()})
	}
	g.kitchen.EnsureStarterStock(g.menu.UnlockedItems())
	g.record(telemetry.EventLevelUp, telemetry.EventMetadata{"level": newLevel})
}

func (g *Game) ensureMissions() {
	if g.missions.EnsureForDay(g.clock.Now(), g.economy.IncomePerSec()) {
		g.record(telemetry.EventMissionUpdated, telemetry.EventMetadata{"day": g.missions.Day()})
	}
}

// PurchaseUpgrade buys one level of an upgrade if the wallet covers its
// current cost.
func (g *Game) PurchaseUpgrade(id string) bool {
	if !g.upgrades.Purchase(id, g.economy) {
		return false
	}
	g.missions.RecordUpgrade()
	return true
}

// BuyBestUpgrade picks the best-value affordable upgrade and buys it.
func (g *Game) BuyBestUpgrade() (string, bool) {
	id, ok := g.upgrades.BestAffordable(g.economy.Currency())
	if !ok {
		return "", false
	}
	return id, g.PurchaseUpgrade(id)
}

// ServeOutcome describes one manual serve attempt.
type ServeOutcome struct {
	Served      bool    `json:"served"`
	Substituted bool    `json:"substituted"`
	Quality     float64 `json:"quality"`
	Tip         float64 `json:"tip"`
	ComboCount  int     `json:"combo_count"`
	MenuID      string  `json:"menu_id,omitempty"`
}

// ServeNextCustomer hands the head customer their dish. It needs a cooked
// unit of the ordered item, or any cooked cut as a penalized substitute;
// with nothing cooked the serve fails and the customer keeps waiting.
func (g *Game) ServeNextCustomer() ServeOutcome {
	next, ok := g.queue.Peek()
	if !ok {
		return ServeOutcome{}
	}

	requiredID := next.MenuID
	if requiredID == "" {
		if first, firstOK := g.menu.FirstUnlocked(); firstOK {
			requiredID = first.ID
		}
	}
	consumed, substituted := g.kitchen.ConsumeCooked(requiredID)
	if !consumed {
		return ServeOutcome{}
	}

	result := g.queue.ForceServe(g.categoryMult(catalog.CategoryService))
	if !result.Served {
		return ServeOutcome{}
	}
	if substituted {
		result.TipMultiplier = maxFloat(0.5, result.TipMultiplier*0.78)
		result.Quality = clamp01(result.Quality - 0.22)
		if result.Quality < 0.6 {
			g.queue.BreakCombo()
			result.ComboCount = 0
		}
	}

	tip := g.grantServeTip(result)
	g.record(telemetry.EventServeCompleted, telemetry.EventMetadata{
		"menu_id": result.MenuID, "quality": result.Quality, "tip": tip, "substituted": substituted,
	})
	return ServeOutcome{
		Served:      true,
		Substituted: substituted,
		Quality:     result.Quality,
		Tip:         tip,
		ComboCount:  result.ComboCount,
		MenuID:      result.MenuID,
	}
}

// grantServeTip pays the manual-serve tip: a share of the dish price scaled
// by quality, the customer's tip factor and the running combo.
func (g *Game) grantServeTip(result queue.ServeResult) float64 {
	base := result.BasePrice
	if base > 0 {
		base *= g.upgrades.MenuMultiplier(result.MenuID)
	} else {
		base = g.economy.IncomePerSec() * 0.5
	}
	qualityBonus := lerp(0.6, 1.25, result.Quality)
	combo := result.ComboCount
	if combo > g.cfg.ComboMax {
		combo = g.cfg.ComboMax
	}
	if combo < 0 {
		combo = 0
	}
	comboBonus := 1 + float64(combo)*g.cfg.ComboStepBonus
	tip := base * 0.35 * qualityBonus * result.TipMultiplier * comboBonus
	if tip <= 0.01 {
		return 0
	}
	g.economy.AddCurrency(tip)
	return tip
}

// TriggerSizzleBoost starts the manual income boost, amplified by sizzle
// upgrades.
func (g *Game) TriggerSizzleBoost() {
	mult := g.cfg.BoostMultiplier * g.categoryMult(catalog.CategorySizzle)
	g.economy.ApplyBoost(mult, g.cfg.BoostDuration)
	g.missions.RecordBoost()
	g.record(telemetry.EventBoostUsed, telemetry.EventMetadata{"multiplier": mult})
}

// TriggerRushService speeds the service timer for a short window.
func (g *Game) TriggerRushService() {
	g.queue.ApplyRush(g.cfg.RushMultiplier, g.cfg.RushDuration)
	g.record(telemetry.EventRushUsed, telemetry.EventMetadata{"multiplier": g.cfg.RushMultiplier})
}

// ApplyRewardBoost applies an externally granted boost (ad rewards and
// similar host-side grants).
func (g *Game) ApplyRewardBoost(multiplier, duration float64) {
	g.economy.ApplyBoost(multiplier, duration)
	g.record(telemetry.EventBoostUsed, telemetry.EventMetadata{"multiplier": multiplier, "source": "reward"})
}

// GrantCurrency credits an externally granted reward.
func (g *Game) GrantCurrency(amount float64) {
	g.economy.AddCurrency(amount)
}

// CanPrestige reports eligibility without applying anything.
func (g *Game) CanPrestige() bool {
	return g.prestige.CalculateReward(g.data.TotalEarned, g.data.PlayerLevel).CanPrestige
}

// TryPrestige resets the run in exchange for permanent points. Everything
// except prestige progress, lifetime earnings, the login streak and the
// tutorial flag goes back to defaults; the reset state is saved immediately.
func (g *Game) TryPrestige() (prestige.Reward, bool) {
	reward := g.prestige.CalculateReward(g.data.TotalEarned, g.data.PlayerLevel)
	if !reward.CanPrestige {
		return reward, false
	}
	g.prestige.Apply(reward)
	g.data.PrestigeLevel = g.prestige.Level()
	g.data.PrestigePoints = g.prestige.Points()
	g.data.ResetProgressForPrestige()
	g.initSystems()
	g.record(telemetry.EventPrestigeApplied, telemetry.EventMetadata{
		"points": reward.Points, "prestige_level": g.prestige.Level(),
	})
	_ = g.Save()
	return reward, true
}

// ClaimDailyMission pays out a completed mission.
func (g *Game) ClaimDailyMission(id string) bool {
	reward, ok := g.missions.Claim(id)
	if !ok {
		return false
	}
	g.economy.AddCurrency(reward)
	g.record(telemetry.EventMissionClaimed, telemetry.EventMetadata{"mission_id": id, "reward": reward})
	return true
}

// BuyRawMeat purchases raw units for the grill.
func (g *Game) BuyRawMeat(menuID string, amount int) bool {
	if amount <= 0 {
		return false
	}
	item, ok := g.cat.MenuItemByID(menuID)
	if !ok {
		return false
	}
	cost := g.kitchen.RawBuyCost(item, g.data.PlayerLevel) * float64(amount)
	if !g.economy.Spend(cost) {
		return false
	}
	g.kitchen.AddRaw(item.ID, amount)
	return true
}

// PlaceRawMeatOnGrill loads one raw unit onto an empty slot.
func (g *Game) PlaceRawMeatOnGrill(slotIndex int, menuID string) bool {
	return g.kitchen.PlaceRaw(slotIndex, menuID)
}

// FlipMeat flips a slot once it has cooked long enough.
func (g *Game) FlipMeat(slotIndex int) bool {
	return g.kitchen.Flip(slotIndex)
}

// CollectFromGrill takes a slot's meat. Ready meat becomes cooked stock and
// pays the sale reward; burnt meat is discarded. Either way the slot is
// handled and the call reports true; still-cooking meat reports false.
func (g *Game) CollectFromGrill(slotIndex int) bool {
	outcome, reward := g.kitchen.Collect(slotIndex)
	switch outcome {
	case kitchen.CollectReady:
		if reward > 0 {
			g.economy.AddCurrency(reward)
		}
		g.record(telemetry.EventGrillCollected, telemetry.EventMetadata{"slot": slotIndex, "reward": reward})
		return true
	case kitchen.CollectBurnt:
		g.record(telemetry.EventGrillBurnt, telemetry.EventMetadata{"slot": slotIndex})
		return true
	default:
		return false
	}
}

// CompleteTutorial marks the tutorial done and enters the main loop.
func (g *Game) CompleteTutorial() {
	g.data.TutorialCompleted = true
	g.machine.TransitionTo(StateMainLoop)
}

// Pause suspends the simulation and saves.
func (g *Game) Pause() error {
	g.machine.TransitionTo(StatePause)
	return g.Save()
}

// Resume leaves pause, granting offline earnings for the time away and
// re-checking the daily systems.
func (g *Game) Resume() BootResult {
	if g.machine.State() != StatePause {
		return BootResult{State: g.machine.State()}
	}
	return g.Boot()
}

// SetSpawnRateMultiplier overrides arrival pacing for tuning sessions.
func (g *Game) SetSpawnRateMultiplier(v float64) { g.queue.SetSpawnRateMultiplier(v) }

// SetServiceRateMultiplier overrides auto-service pacing.
func (g *Game) SetServiceRateMultiplier(v float64) { g.queue.SetServiceRateMultiplier(v) }

// SetAutoServe toggles timer-driven serving.
func (g *Game) SetAutoServe(enabled bool) { g.queue.SetAutoServe(enabled) }

// Save flushes the full snapshot to the store.
func (g *Game) Save() error {
	g.flushIncome()
	d := g.data
	d.Currency = g.economy.Currency()
	d.TotalEarned = g.economy.TotalEarned()
	d.StoreTierIndex = g.tiers.Index()
	d.UnlockedMenuIDs = g.menu.UnlockedIDs()
	d.UpgradeLevels = g.upgrades.ExportLevels()
	d.PrestigeLevel = g.prestige.Level()
	d.PrestigePoints = g.prestige.Points()
	d.SpawnRateMultiplier = g.queue.SpawnRateMultiplier()
	d.ServiceRateMultiplier = g.queue.ServiceRateMultiplier()
	d.DailyMissions = g.missions.Missions()
	d.LastMissionDay = g.missions.Day()
	d.LastLoginDay = g.login.LastDay()
	d.LoginStreak = g.login.Streak()
	d.MeatStock = g.kitchen.ExportStock()
	d.GrillSlots = g.kitchen.ExportSlots()
	d.LastOnlineTs = g.clock.Now().Unix()
	d.Sanitize()
	return g.store.Save(d)
}

func (g *Game) record(eventType telemetry.EventType, metadata telemetry.EventMetadata) {
	_ = g.events.RecordEvent(eventType, metadata)
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func lerp(a, b, t float64) float64 { return a + (b-a)*clamp01(t) }
