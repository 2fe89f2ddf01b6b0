package queue

import (
	"math/rand"

	"github.com/KIM3310/kbbq-idle/internal/catalog"
	"github.com/KIM3310/kbbq-idle/internal/config"
)

// MenuPicker supplies the dish a newly arrived customer orders.
type MenuPicker interface {
	RandomUnlocked(rng *rand.Rand) (catalog.MenuItem, bool)
}

// Entry is one waiting customer. WaitTime grows each tick; the customer
// abandons the queue once it reaches Patience.
type Entry struct {
	CustomerName  string  `json:"customer_name"`
	MenuID        string  `json:"menu_id"`
	MenuName      string  `json:"menu_name"`
	MenuBasePrice float64 `json:"menu_base_price"`
	Patience      float64 `json:"patience"`
	WaitTime      float64 `json:"wait_time"`
	TipMultiplier float64 `json:"tip_multiplier"`
}

// ServeResult describes one completed serve.
type ServeResult struct {
	Served        bool
	Quality       float64
	WaitRatio     float64
	TipMultiplier float64
	MenuID        string
	MenuName      string
	BasePrice     float64
	ComboCount    int
}

// Metrics is the rolling queue health snapshot.
type Metrics struct {
	QueueCount      int     `json:"queue_count"`
	AvgWaitSeconds  float64 `json:"avg_wait_seconds"`
	ServedPerMinute int     `json:"served_per_minute"`
}

type serveSample struct {
	time float64
	wait float64
}

// Simulator runs the customer arrival/service queue, the satisfaction
// scalar and the manual-serve combo streak.
type Simulator struct {
	cfg       config.Balance
	rng       *rand.Rand
	customers []catalog.CustomerArchetype

	entries      []Entry
	satisfaction float64
	spawnTimer   float64
	serviceTimer float64

	rushTimer      float64
	rushMultiplier float64

	spawnRateMultiplier   float64
	serviceRateMultiplier float64
	autoServe             bool

	runtime      float64
	serveSamples []serveSample
	serveWaitSum float64

	comboCount int
	comboTimer float64

	abandoned int
}

const (
	satisfactionDecay  = 0.01
	abandonPenalty     = 0.06
	sampleWindow       = 60.0
	minRateMultiplier  = 0.25
	maxRateMultiplier  = 3.0
	fastServeRatio     = 0.4
	strongQualityFloor = 0.82
	weakQualityCeil    = 0.6
	slowServeRatio     = 0.75
)

// NewSimulator builds a queue over the customer archetypes. The rng drives
// spawn jitter and archetype selection so a fixed seed replays exactly.
func NewSimulator(cfg config.Balance, customers []catalog.CustomerArchetype, rng *rand.Rand) *Simulator {
	s := &Simulator{
		cfg:                   cfg,
		rng:                   rng,
		satisfaction:          0.75,
		spawnTimer:            cfg.BaseSpawnInterval,
		serviceTimer:          cfg.BaseServiceInterval,
		rushMultiplier:        1,
		spawnRateMultiplier:   1,
		serviceRateMultiplier: 1,
	}
	for _, c := range customers {
		if c.ID == "" {
			continue
		}
		s.customers = append(s.customers, c)
	}
	return s
}

func (s *Simulator) Satisfaction() float64          { return s.satisfaction }
func (s *Simulator) ComboCount() int                { return s.comboCount }
func (s *Simulator) ComboTimeRemaining() float64    { return s.comboTimer }
func (s *Simulator) SpawnRateMultiplier() float64   { return s.spawnRateMultiplier }
func (s *Simulator) ServiceRateMultiplier() float64 { return s.serviceRateMultiplier }

// ComboMultiplier is the streak income bonus, 1 with no streak.
func (s *Simulator) ComboMultiplier() float64 {
	return 1 + float64(s.comboCount)*s.cfg.ComboStepBonus
}

// Snapshot returns the queue contents by value, head first.
func (s *Simulator) Snapshot() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Peek returns the head entry without removing it.
func (s *Simulator) Peek() (Entry, bool) {
	if len(s.entries) == 0 {
		return Entry{}, false
	}
	return s.entries[0], true
}

// SetSpawnRateMultiplier overrides arrival pacing, clamped to [0.25, 3].
func (s *Simulator) SetSpawnRateMultiplier(v float64) {
	s.spawnRateMultiplier = clamp(v, minRateMultiplier, maxRateMultiplier)
}

// SetServiceRateMultiplier overrides auto-service pacing, clamped to [0.25, 3].
func (s *Simulator) SetServiceRateMultiplier(v float64) {
	s.serviceRateMultiplier = clamp(v, minRateMultiplier, maxRateMultiplier)
}

// SetAutoServe toggles the auto-service timer. Manual-serve builds disable
// it so every serve goes through ForceServe.
func (s *Simulator) SetAutoServe(enabled bool) { s.autoServe = enabled }

// ApplyRush speeds up the service timer for a limited window. Not additive;
// a new rush replaces the running one.
func (s *Simulator) ApplyRush(multiplier, duration float64) {
	if multiplier < 1 {
		multiplier = 1
	}
	if duration < 0 {
		duration = 0
	}
	s.rushMultiplier = multiplier
	s.rushTimer = duration
}

// Tick advances waits, expiries, spawns, the combo decay window and the
// optional auto-service. serviceMult is the service upgrade multiplier.
func (s *Simulator) Tick(dt float64, serviceMult float64, picker MenuPicker) {
	if dt > 0 {
		s.runtime += dt
	}
	s.tickRush(dt)

	serviceBoost := clamp01(serviceMult - 1)
	s.satisfaction = clamp01(s.satisfaction + serviceBoost*0.015 - satisfactionDecay*dt)

	s.tickCombo(dt)
	s.cullSamples()
	s.tickQueue(dt, serviceMult, picker)
}

// TipMultiplier blends the satisfaction tip base with the average archetype
// tip of the customers currently waiting.
func (s *Simulator) TipMultiplier() float64 {
	baseTip := lerp(0.9, 1.25, s.satisfaction)
	if len(s.entries) == 0 {
		return baseTip
	}
	total := 0.0
	for _, e := range s.entries {
		total += e.TipMultiplier
	}
	avg := clamp(total/float64(len(s.entries)), 0.9, 1.15)
	return baseTip * avg
}

// ForceServe serves the head entry on demand. This is the only path that
// can grow the combo streak: fast high-quality serves extend it, slow or
// sloppy serves break it.
func (s *Simulator) ForceServe(serviceMult float64) ServeResult {
	if len(s.entries) == 0 {
		return ServeResult{}
	}
	served := s.entries[0]
	s.entries = s.entries[1:]

	waitRatio := 0.0
	if served.Patience > 0 {
		waitRatio = clamp01(served.WaitTime / served.Patience)
	}
	quality := serveQuality(serviceMult, waitRatio)
	s.registerService(quality)
	s.recordServe(served.WaitTime)
	s.updateCombo(quality, waitRatio)

	return ServeResult{
		Served:        true,
		Quality:       quality,
		WaitRatio:     waitRatio,
		TipMultiplier: served.TipMultiplier,
		MenuID:        served.MenuID,
		MenuName:      served.MenuName,
		BasePrice:     served.MenuBasePrice,
		ComboCount:    s.comboCount,
	}
}

// TakeAbandoned drains the count of customers who walked since the last
// call.
func (s *Simulator) TakeAbandoned() int {
	n := s.abandoned
	s.abandoned = 0
	return n
}

// BreakCombo resets the streak without serving (fallback-cut serves that
// drop below the weak-serve threshold).
func (s *Simulator) BreakCombo() {
	s.comboCount = 0
	s.comboTimer = 0
}

// GetMetrics reports queue health over the rolling sample window.
func (s *Simulator) GetMetrics() Metrics {
	n := len(s.serveSamples)
	m := Metrics{QueueCount: len(s.entries), ServedPerMinute: n}
	if n > 0 {
		m.AvgWaitSeconds = s.serveWaitSum / float64(n)
	}
	return m
}

func (s *Simulator) registerService(quality float64) {
	s.satisfaction = clamp01((s.satisfaction + clamp01(quality)) * 0.5)
}

func serveQuality(serviceMult, waitRatio float64) float64 {
	return clamp01(0.8 + (serviceMult-1)*0.2 - waitRatio*0.4)
}

func (s *Simulator) tickRush(dt float64) {
	if s.rushTimer <= 0 {
		s.rushMultiplier = 1
		return
	}
	s.rushTimer -= dt
	if s.rushTimer <= 0 {
		s.rushTimer = 0
		s.rushMultiplier = 1
	}
}

func (s *Simulator) tickQueue(dt float64, serviceMult float64, picker MenuPicker) {
	if dt <= 0 {
		return
	}

	// Walk backwards so an expiry removes exactly one entry once.
	for i := len(s.entries) - 1; i >= 0; i-- {
		s.entries[i].WaitTime += dt
		if s.entries[i].WaitTime >= s.entries[i].Patience {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			s.satisfaction = clamp01(s.satisfaction - abandonPenalty)
			s.abandoned++
		}
	}

	s.spawnTimer -= dt
	if s.spawnTimer <= 0 {
		if len(s.entries) < s.cfg.MaxQueue {
			s.entries = append(s.entries, s.generateEntry(picker))
		}
		satisfactionFactor := lerp(1.25, 0.65, s.satisfaction)
		spawnMult := s.spawnRateMultiplier
		if spawnMult < minRateMultiplier {
			spawnMult = minRateMultiplier
		}
		s.spawnTimer = s.cfg.BaseSpawnInterval * satisfactionFactor * s.jitter() / spawnMult
	}

	drain := serviceMult
	if drain < 1 {
		drain = 1
	}
	s.serviceTimer -= dt * drain * s.rushMultiplier * s.serviceRateMultiplier
	if s.autoServe && s.serviceTimer <= 0 && len(s.entries) > 0 {
		served := s.entries[0]
		s.entries = s.entries[1:]
		waitRatio := 0.0
		if served.Patience > 0 {
			waitRatio = clamp01(served.WaitTime / served.Patience)
		}
		s.registerService(serveQuality(serviceMult, waitRatio))
		s.recordServe(served.WaitTime)
		serviceRate := s.serviceRateMultiplier
		if serviceRate < minRateMultiplier {
			serviceRate = minRateMultiplier
		}
		s.serviceTimer = s.cfg.BaseServiceInterval * s.jitter() / serviceRate
	}
}

func (s *Simulator) jitter() float64 {
	return 0.85 + s.rng.Float64()*(1.2-0.85)
}

func (s *Simulator) generateEntry(picker MenuPicker) Entry {
	e := Entry{
		CustomerName:  "Guest",
		MenuName:      "BBQ Set",
		MenuBasePrice: 1,
		Patience:      10,
		TipMultiplier: 1,
	}
	if len(s.customers) > 0 {
		c := s.customers[s.rng.Intn(len(s.customers))]
		if c.DisplayName != "" {
			e.CustomerName = c.DisplayName
		}
		if c.Patience > 3 {
			e.Patience = c.Patience
		} else {
			e.Patience = 3
		}
		if c.TipMultiplier > 0.8 {
			e.TipMultiplier = c.TipMultiplier
		} else {
			e.TipMultiplier = 0.8
		}
	}
	if picker != nil {
		if item, ok := picker.RandomUnlocked(s.rng); ok {
			e.MenuID = item.ID
			if item.DisplayName != "" {
				e.MenuName = item.DisplayName
			}
			e.MenuBasePrice = item.BasePrice * item.BonusMultiplier
		}
	}
	return e
}

func (s *Simulator) recordServe(waitTime float64) {
	if waitTime < 0 {
		waitTime = 0
	}
	s.serveSamples = append(s.serveSamples, serveSample{time: s.runtime, wait: waitTime})
	s.serveWaitSum += waitTime
}

func (s *Simulator) cullSamples() {
	for len(s.serveSamples) > 0 && s.runtime-s.serveSamples[0].time > sampleWindow {
		s.serveWaitSum -= s.serveSamples[0].wait
		s.serveSamples = s.serveSamples[1:]
	}
}

func (s *Simulator) tickCombo(dt float64) {
	if s.comboCount <= 0 {
		s.comboTimer = 0
		return
	}
	s.comboTimer -= dt
	if s.comboTimer <= 0 {
		s.comboTimer = 0
		s.comboCount = 0
	}
}

func (s *Simulator) updateCombo(quality, waitRatio float64) {
	fast := waitRatio <= fastServeRatio
	strong := quality >= strongQualityFloor
	weak := quality < weakQualityCeil || waitRatio >= slowServeRatio

	if strong && fast {
		s.comboCount++
		if s.comboCount > s.cfg.ComboMax {
			s.comboCount = s.cfg.ComboMax
		}
		s.comboTimer = s.cfg.ComboDuration
		return
	}
	if weak {
		s.comboCount = 0
		s.comboTimer = 0
	}
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

func clamp01(v float64) float64 { return clamp(v, 0, 1) }

func lerp(a, b, t float64) float64 { return a + (b-a)*clamp01(t) }
