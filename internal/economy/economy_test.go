package economy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedMods is a Modifiers with every multiplier pinned to 1 except the ones
// a test overrides.
type fixedMods struct {
	base                                                  float64
	global, staff, service, store, tip, combo, prestige   float64
}

func newFixedMods(base float64) *fixedMods {
	return &fixedMods{base: base, global: 1, staff: 1, service: 1, store: 1, tip: 1, combo: 1, prestige: 1}
}

func (m *fixedMods) BaseMenuIncome() float64     { return m.base }
func (m *fixedMods) GlobalMultiplier() float64   { return m.global }
func (m *fixedMods) StaffMultiplier() float64    { return m.staff }
func (m *fixedMods) ServiceMultiplier() float64  { return m.service }
func (m *fixedMods) StoreMultiplier() float64    { return m.store }
func (m *fixedMods) TipMultiplier() float64      { return m.tip }
func (m *fixedMods) ComboMultiplier() float64    { return m.combo }
func (m *fixedMods) PrestigeMultiplier() float64 { return m.prestige }

func TestIncomePerSec_MultiplierChain(t *testing.T) {
	mods := newFixedMods(10)
	e := NewEngine(mods, 0, 0)

	assert.InDelta(t, 10, e.IncomePerSec(), 1e-9)

	mods.global = 1.5
	mods.prestige = 1.1
	assert.InDelta(t, 10*1.5*1.1, e.IncomePerSec(), 1e-9)
}

func TestTick_AccruesIncomeAndNotifies(t *testing.T) {
	e := NewEngine(newFixedMods(4), 0, 0)
	var earned float64
	e.SetIncomeFunc(func(amount float64) { earned += amount })

	e.Tick(0.5)
	e.Tick(0.5)

	assert.InDelta(t, 4, e.Currency(), 1e-9)
	assert.InDelta(t, 4, e.TotalEarned(), 1e-9)
	assert.InDelta(t, 4, earned, 1e-9)
}

func TestBoost_MultipliesThenExpires(t *testing.T) {
	e := NewEngine(newFixedMods(10), 0, 0)

	e.ApplyBoost(2, 3)
	assert.InDelta(t, 20, e.IncomePerSec(), 1e-9)

	e.Tick(1)
	assert.InDelta(t, 2, e.BoostRemaining(), 1e-9)
	assert.InDelta(t, 20, e.Currency(), 1e-9)

	e.Tick(2)
	assert.Zero(t, e.BoostRemaining())
	assert.InDelta(t, 1, e.BoostMultiplier(), 1e-9)

	// Past expiry income runs at the base rate again.
	e.Tick(1)
	assert.InDelta(t, 20+20+10, e.Currency(), 1e-9)
}

func TestBoost_ReplacesRunningBoost(t *testing.T) {
	e := NewEngine(newFixedMods(10), 0, 0)
	e.ApplyBoost(2, 30)
	e.ApplyBoost(3, 5)

	assert.InDelta(t, 3, e.BoostMultiplier(), 1e-9)
	assert.InDelta(t, 5, e.BoostRemaining(), 1e-9)
}

func TestSpend(t *testing.T) {
	e := NewEngine(newFixedMods(0), 100, 100)

	require.True(t, e.Spend(60))
	assert.InDelta(t, 40, e.Currency(), 1e-9)

	assert.False(t, e.Spend(41))
	assert.InDelta(t, 40, e.Currency(), 1e-9)

	// Spending never touches totalEarned.
	assert.InDelta(t, 100, e.TotalEarned(), 1e-9)
}

func TestAddCurrency_IgnoresNonPositive(t *testing.T) {
	e := NewEngine(newFixedMods(0), 0, 0)
	var calls int
	e.SetIncomeFunc(func(float64) { calls++ })

	e.AddCurrency(0)
	e.AddCurrency(-5)
	assert.Zero(t, e.Currency())
	assert.Zero(t, calls)

	e.AddCurrency(7.5)
	assert.InDelta(t, 7.5, e.Currency(), 1e-9)
	assert.Equal(t, 1, calls)
}

func TestNewEngine_ClampsNegatives(t *testing.T) {
	e := NewEngine(newFixedMods(1), -50, -10)
	assert.Zero(t, e.Currency())
	assert.Zero(t, e.TotalEarned())
}
