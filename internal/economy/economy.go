package economy

// Modifiers supplies every multiplier that feeds the income rate. The
// orchestrator implements it by delegating to the other subsystems; tests
// implement it with fixed values.
type Modifiers interface {
	BaseMenuIncome() float64
	GlobalMultiplier() float64
	StaffMultiplier() float64
	ServiceMultiplier() float64
	StoreMultiplier() float64
	TipMultiplier() float64
	ComboMultiplier() float64
	PrestigeMultiplier() float64
}

// IncomeFunc is notified whenever currency is earned (per-tick income,
// grants, tips). Spending does not trigger it.
type IncomeFunc func(amount float64)

// Engine owns the currency wallet and the active boost. Currency never goes
// negative: Spend fails instead of overdrafting.
type Engine struct {
	mods     Modifiers
	onIncome IncomeFunc

	currency    float64
	totalEarned float64
	boost       boostState
}

// NewEngine restores an engine from persisted currency/totalEarned values.
// Negative inputs are clamped to zero.
func NewEngine(mods Modifiers, currency, totalEarned float64) *Engine {
	if currency < 0 {
		currency = 0
	}
	if totalEarned < 0 {
		totalEarned = 0
	}
	return &Engine{mods: mods, currency: currency, totalEarned: totalEarned}
}

// SetIncomeFunc installs the earned-income callback. The orchestrator uses it
// to drive missions and progression in order, synchronously.
func (e *Engine) SetIncomeFunc(fn IncomeFunc) { e.onIncome = fn }

func (e *Engine) Currency() float64    { return e.currency }
func (e *Engine) TotalEarned() float64 { return e.totalEarned }

// BoostMultiplier reports the active boost factor, 1 when no boost runs.
func (e *Engine) BoostMultiplier() float64 { return e.boost.factor() }

// BoostRemaining reports the seconds left on the active boost.
func (e *Engine) BoostRemaining() float64 { return e.boost.timer }

// IncomePerSec aggregates the full multiplier chain over the unlocked menu.
func (e *Engine) IncomePerSec() float64 {
	return e.mods.BaseMenuIncome() *
		e.mods.GlobalMultiplier() *
		e.mods.StaffMultiplier() *
		e.mods.ServiceMultiplier() *
		e.mods.StoreMultiplier() *
		e.boost.factor() *
		e.mods.TipMultiplier() *
		e.mods.ComboMultiplier() *
		e.mods.PrestigeMultiplier()
}

// Tick advances the boost timer and accrues passive income for dt seconds.
func (e *Engine) Tick(dt float64) {
	e.boost.tick(dt)
	income := e.IncomePerSec() * dt
	if income > 0 {
		e.currency += income
		e.totalEarned += income
		if e.onIncome != nil {
			e.onIncome(income)
		}
	}
}

// AddCurrency grants earned currency (tips, rewards, offline earnings).
// Non-positive amounts are ignored.
func (e *Engine) AddCurrency(amount float64) {
	if amount <= 0 {
		return
	}
	e.currency += amount
	e.totalEarned += amount
	if e.onIncome != nil {
		e.onIncome(amount)
	}
}

// Spend removes currency if the balance covers it. Returns false with no
// mutation otherwise. Non-positive amounts always succeed.
func (e *Engine) Spend(amount float64) bool {
	if amount <= 0 {
		return true
	}
	if e.currency < amount {
		return false
	}
	e.currency -= amount
	return true
}

// ApplyBoost starts (or replaces) the temporary income boost. Boosts do not
// stack: a new boost overwrites the running one.
func (e *Engine) ApplyBoost(multiplier, duration float64) {
	e.boost.start(multiplier, duration)
}

type boostState struct {
	timer      float64
	multiplier float64
}

func (b *boostState) factor() float64 {
	if b.timer <= 0 || b.multiplier < 1 {
		return 1
	}
	return b.multiplier
}

func (b *boostState) start(multiplier, duration float64) {
	if multiplier < 1 {
		multiplier = 1
	}
	if duration < 0 {
		duration = 0
	}
	b.multiplier = multiplier
	b.timer = duration
}

func (b *boostState) tick(dt float64) {
	if b.multiplier == 0 {
		b.multiplier = 1
	}
	if b.timer <= 0 {
		b.multiplier = 1
		return
	}
	b.timer -= dt
	if b.timer <= 0 {
		b.timer = 0
		b.multiplier = 1
	}
}
