package kitchen

import (
	"sort"

	"github.com/KIM3310/kbbq-idle/internal/catalog"
	"github.com/KIM3310/kbbq-idle/internal/config"
)

// stock is the raw/cooked unit count for one menu id.
type stock struct {
	raw    int
	cooked int
}

// slot is one grill position. A slot holding a menu id advances cookTime
// every tick; the meat must be flipped once before it can be collected.
type slot struct {
	menuID   string
	cookTime float64
	flipped  bool
}

// StockEntry is the persisted form of one menu id's meat inventory.
type StockEntry struct {
	MenuID      string `json:"menu_id"`
	RawCount    int    `json:"raw_count"`
	CookedCount int    `json:"cooked_count"`
}

// SlotEntry is the persisted form of one occupied grill slot.
type SlotEntry struct {
	SlotIndex int     `json:"slot_index"`
	MenuID    string  `json:"menu_id"`
	CookTime  float64 `json:"cook_time"`
	Flipped   bool    `json:"flipped"`
}

// SlotView is the read-only slot state handed to the UI layer.
type SlotView struct {
	SlotIndex      int     `json:"slot_index"`
	Occupied       bool    `json:"occupied"`
	MenuID         string  `json:"menu_id,omitempty"`
	DisplayName    string  `json:"display_name,omitempty"`
	CookProgress   float64 `json:"cook_progress"`
	SecondsToReady float64 `json:"seconds_to_ready"`
	CanFlip        bool    `json:"can_flip"`
	Flipped        bool    `json:"flipped"`
	ReadyToCollect bool    `json:"ready_to_collect"`
	Burned         bool    `json:"burned"`
}

// StockView is the read-only inventory row handed to the UI layer.
type StockView struct {
	MenuID      string  `json:"menu_id"`
	DisplayName string  `json:"display_name"`
	RawCount    int     `json:"raw_count"`
	CookedCount int     `json:"cooked_count"`
	BuyCost     float64 `json:"buy_cost"`
}

// CollectOutcome reports what CollectFromGrill did with the slot.
type CollectOutcome int

const (
	CollectFailed CollectOutcome = iota
	CollectBurnt
	CollectReady
)

// Station is the short-order grill: a fixed set of slots over a per-menu
// raw/cooked inventory.
type Station struct {
	cfg   config.Balance
	cat   *catalog.Catalog
	slots []slot
	meat  map[string]stock
}

// NewStation restores the grill from persisted inventory and slot entries.
// Entries for out-of-range slots or empty menu ids are discarded; counts
// clamp at zero.
func NewStation(cfg config.Balance, cat *catalog.Catalog, meat []StockEntry, slots []SlotEntry) *Station {
	st := &Station{
		cfg:   cfg,
		cat:   cat,
		slots: make([]slot, cfg.GrillSlotCount),
		meat:  make(map[string]stock),
	}
	for _, e := range meat {
		if e.MenuID == "" {
			continue
		}
		st.meat[e.MenuID] = stock{raw: max0(e.RawCount), cooked: max0(e.CookedCount)}
	}
	for _, e := range slots {
		if e.SlotIndex < 0 || e.SlotIndex >= len(st.slots) || e.MenuID == "" {
			continue
		}
		ct := e.CookTime
		if ct < 0 {
			ct = 0
		}
		st.slots[e.SlotIndex] = slot{menuID: e.MenuID, cookTime: ct, flipped: e.Flipped}
	}
	return st
}

// Tick advances cook time on every occupied slot. The sizzle upgrade speeds
// cooking, clamped so the mini-game stays playable.
func (st *Station) Tick(dt float64, sizzleMult float64) {
	if dt <= 0 {
		return
	}
	step := dt * clamp(sizzleMult, 0.8, 3.5)
	for i := range st.slots {
		if st.slots[i].menuID == "" {
			continue
		}
		st.slots[i].cookTime += step
	}
}

// EnsureStarterStock seeds raw stock for newly unlocked menu items that have
// no inventory row yet.
func (st *Station) EnsureStarterStock(unlocked []catalog.MenuItem) {
	for _, it := range unlocked {
		if it.ID == "" {
			continue
		}
		if _, ok := st.meat[it.ID]; !ok {
			st.meat[it.ID] = stock{raw: st.cfg.StarterRawStock}
		}
	}
}

// EnsureEmergencyStock tops up the fallback item when the whole inventory is
// empty, so a restored save can always cook something.
func (st *Station) EnsureEmergencyStock(fallback catalog.MenuItem) {
	total := 0
	for _, s := range st.meat {
		total += max0(s.raw) + max0(s.cooked)
	}
	if total > 0 || fallback.ID == "" {
		return
	}
	s := st.meat[fallback.ID]
	if s.raw < 2 {
		s.raw = 2
	}
	st.meat[fallback.ID] = s
}

// RawBuyCost prices one raw unit: the menu base price discounted by the buy
// factor, pushed up by player level market pressure.
func (st *Station) RawBuyCost(item catalog.MenuItem, playerLevel int) float64 {
	base := item.BasePrice * clampLow(st.cfg.MeatBuyCostFactor, 0.2)
	if base < 1 {
		base = 1
	}
	pressure := float64(playerLevel) * 0.03
	if pressure > 0.6 {
		pressure = 0.6
	}
	return base * (1 + pressure)
}

// AddRaw credits purchased raw units.
func (st *Station) AddRaw(menuID string, amount int) {
	if menuID == "" || amount <= 0 {
		return
	}
	s := st.meat[menuID]
	s.raw += amount
	st.meat[menuID] = s
}

// RawCount reports the raw stock for a menu id.
func (st *Station) RawCount(menuID string) int { return st.meat[menuID].raw }

// CookedCount reports the cooked stock for a menu id.
func (st *Station) CookedCount(menuID string) int { return st.meat[menuID].cooked }

// PlaceRaw loads one raw unit onto an empty slot. Fails if the slot is
// occupied, out of range, or raw stock is empty.
func (st *Station) PlaceRaw(slotIndex int, menuID string) bool {
	if !st.validSlot(slotIndex) || menuID == "" {
		return false
	}
	if st.slots[slotIndex].menuID != "" {
		return false
	}
	s := st.meat[menuID]
	if s.raw <= 0 {
		return false
	}
	s.raw--
	st.meat[menuID] = s
	st.slots[slotIndex] = slot{menuID: menuID}
	return true
}

// Flip turns the meat once it has cooked past the flip-ready point. A slot
// can only be flipped once.
func (st *Station) Flip(slotIndex int) bool {
	if !st.validSlot(slotIndex) {
		return false
	}
	sl := &st.slots[slotIndex]
	if sl.menuID == "" || sl.flipped || sl.cookTime < st.cfg.FlipReadySeconds {
		return false
	}
	sl.flipped = true
	return true
}

// Collect takes the meat off the grill. Burnt meat clears the slot with no
// reward; flipped meat in the done window becomes cooked stock and returns
// the sale reward. Anything else is still cooking and fails.
func (st *Station) Collect(slotIndex int) (CollectOutcome, float64) {
	if !st.validSlot(slotIndex) {
		return CollectFailed, 0
	}
	sl := st.slots[slotIndex]
	if sl.menuID == "" {
		return CollectFailed, 0
	}
	item, ok := st.cat.MenuItemByID(sl.menuID)
	if !ok {
		// Catalog changed under the save; just free the slot.
		st.slots[slotIndex] = slot{}
		return CollectFailed, 0
	}

	if st.burned(sl) {
		st.slots[slotIndex] = slot{}
		return CollectBurnt, 0
	}
	if !st.ready(sl) {
		return CollectFailed, 0
	}

	s := st.meat[sl.menuID]
	s.cooked++
	st.meat[sl.menuID] = s
	st.slots[slotIndex] = slot{}

	reward := item.BasePrice * item.BonusMultiplier * clampLow(st.cfg.MeatSaleFactor, 0.2)
	return CollectReady, reward
}

// ConsumeCooked takes one cooked unit of the requested menu id. With none in
// stock it falls back to any cooked unit; the caller applies the substitute
// penalty. Returns (consumed, substituted).
func (st *Station) ConsumeCooked(menuID string) (bool, bool) {
	if menuID != "" {
		s := st.meat[menuID]
		if s.cooked > 0 {
			s.cooked--
			st.meat[menuID] = s
			return true, false
		}
	}
	ids := make([]string, 0, len(st.meat))
	for id := range st.meat {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		s := st.meat[id]
		if s.cooked <= 0 {
			continue
		}
		s.cooked--
		st.meat[id] = s
		return true, true
	}
	return false, false
}

// Slots returns the read-only slot states for the UI layer.
func (st *Station) Slots() []SlotView {
	out := make([]SlotView, len(st.slots))
	for i, sl := range st.slots {
		v := SlotView{SlotIndex: i}
		if sl.menuID == "" {
			out[i] = v
			continue
		}
		v.Occupied = true
		v.MenuID = sl.menuID
		if item, ok := st.cat.MenuItemByID(sl.menuID); ok {
			v.DisplayName = item.DisplayName
		} else {
			v.DisplayName = sl.menuID
		}
		if st.cfg.CookSeconds > 0 {
			v.CookProgress = clamp(sl.cookTime/st.cfg.CookSeconds, 0, 1)
		}
		v.SecondsToReady = st.cfg.CookSeconds - sl.cookTime
		if v.SecondsToReady < 0 {
			v.SecondsToReady = 0
		}
		v.CanFlip = !sl.flipped && sl.cookTime >= st.cfg.FlipReadySeconds && sl.cookTime < st.cfg.BurnSeconds
		v.Flipped = sl.flipped
		v.ReadyToCollect = st.ready(sl)
		v.Burned = st.burned(sl)
		out[i] = v
	}
	return out
}

// Inventory returns the read-only stock rows for the unlocked menu, sorted
// by unlock level then name.
func (st *Station) Inventory(unlocked []catalog.MenuItem, playerLevel int) []StockView {
	items := make([]catalog.MenuItem, len(unlocked))
	copy(items, unlocked)
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].UnlockLevel != items[j].UnlockLevel {
			return items[i].UnlockLevel < items[j].UnlockLevel
		}
		return items[i].DisplayName < items[j].DisplayName
	})
	out := make([]StockView, 0, len(items))
	for _, it := range items {
		if it.ID == "" {
			continue
		}
		s := st.meat[it.ID]
		out = append(out, StockView{
			MenuID:      it.ID,
			DisplayName: it.DisplayName,
			RawCount:    s.raw,
			CookedCount: s.cooked,
			BuyCost:     st.RawBuyCost(it, playerLevel),
		})
	}
	return out
}

// ExportStock returns the persisted inventory, dropping empty rows, sorted
// by menu id for stable saves.
func (st *Station) ExportStock() []StockEntry {
	out := make([]StockEntry, 0, len(st.meat))
	for id, s := range st.meat {
		if id == "" || (s.raw <= 0 && s.cooked <= 0) {
			continue
		}
		out = append(out, StockEntry{MenuID: id, RawCount: s.raw, CookedCount: s.cooked})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MenuID < out[j].MenuID })
	return out
}

// ExportSlots returns the persisted form of the occupied slots.
func (st *Station) ExportSlots() []SlotEntry {
	out := make([]SlotEntry, 0, len(st.slots))
	for i, sl := range st.slots {
		if sl.menuID == "" {
			continue
		}
		out = append(out, SlotEntry{SlotIndex: i, MenuID: sl.menuID, CookTime: sl.cookTime, Flipped: sl.flipped})
	}
	return out
}

// Reset clears all slots and stock (prestige).
func (st *Station) Reset() {
	st.slots = make([]slot, st.cfg.GrillSlotCount)
	st.meat = make(map[string]stock)
}

func (st *Station) validSlot(i int) bool { return i >= 0 && i < len(st.slots) }

func (st *Station) ready(sl slot) bool {
	return sl.flipped && sl.cookTime >= st.cfg.CookSeconds && sl.cookTime < st.cfg.BurnSeconds
}

func (st *Station) burned(sl slot) bool { return sl.cookTime >= st.cfg.BurnSeconds }

func max0(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampLow(v, lo float64) float64 {
	if v < lo {
		return lo
	}
	return v
}
