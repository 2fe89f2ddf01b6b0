package config

// Balance holds the gameplay balance knobs that are not part of the data
// catalog: pacing, kitchen timings, boost windows and offline caps.
type Balance struct {
	// Manual boost
	BoostMultiplier float64 `yaml:"boost_multiplier" json:"boost_multiplier"`
	BoostDuration   float64 `yaml:"boost_duration_seconds" json:"boost_duration_seconds"`

	// Rush service
	RushMultiplier float64 `yaml:"rush_multiplier" json:"rush_multiplier"`
	RushDuration   float64 `yaml:"rush_duration_seconds" json:"rush_duration_seconds"`

	// Offline earnings
	MaxOfflineHours int     `yaml:"max_offline_hours" json:"max_offline_hours"`
	OfflineRate     float64 `yaml:"offline_rate" json:"offline_rate"`

	// Queue pacing
	BaseSpawnInterval   float64 `yaml:"base_spawn_interval_seconds" json:"base_spawn_interval_seconds"`
	BaseServiceInterval float64 `yaml:"base_service_interval_seconds" json:"base_service_interval_seconds"`
	MaxQueue            int     `yaml:"max_queue" json:"max_queue"`

	// Combo streak
	ComboDuration  float64 `yaml:"combo_duration_seconds" json:"combo_duration_seconds"`
	ComboMax       int     `yaml:"combo_max" json:"combo_max"`
	ComboStepBonus float64 `yaml:"combo_step_bonus" json:"combo_step_bonus"`

	// Kitchen
	GrillSlotCount    int     `yaml:"grill_slot_count" json:"grill_slot_count"`
	FlipReadySeconds  float64 `yaml:"flip_ready_seconds" json:"flip_ready_seconds"`
	CookSeconds       float64 `yaml:"cook_seconds" json:"cook_seconds"`
	BurnSeconds       float64 `yaml:"burn_seconds" json:"burn_seconds"`
	StarterRawStock   int     `yaml:"starter_raw_stock" json:"starter_raw_stock"`
	MeatBuyCostFactor float64 `yaml:"meat_buy_cost_factor" json:"meat_buy_cost_factor"`
	MeatSaleFactor    float64 `yaml:"meat_sale_factor" json:"meat_sale_factor"`

	// Missions
	MissionsPerDay int `yaml:"missions_per_day" json:"missions_per_day"`
}

// Default returns the shipping balance.
func Default() Balance {
	return Balance{
		BoostMultiplier:     2,
		BoostDuration:       3,
		RushMultiplier:      2,
		RushDuration:        3,
		MaxOfflineHours:     8,
		OfflineRate:         0.6,
		BaseSpawnInterval:   6,
		BaseServiceInterval: 4,
		MaxQueue:            6,
		ComboDuration:       6,
		ComboMax:            8,
		ComboStepBonus:      0.05,
		GrillSlotCount:      2,
		FlipReadySeconds:    3,
		CookSeconds:         7,
		BurnSeconds:         12,
		StarterRawStock:     2,
		MeatBuyCostFactor:   0.95,
		MeatSaleFactor:      1.15,
		MissionsPerDay:      3,
	}
}

// Sanitize clamps the balance into ranges the simulation can run with.
func (b *Balance) Sanitize() {
	if b.BoostMultiplier < 1 {
		b.BoostMultiplier = 1
	}
	if b.BoostDuration < 0 {
		b.BoostDuration = 0
	}
	if b.RushMultiplier < 1 {
		b.RushMultiplier = 1
	}
	if b.RushDuration < 0 {
		b.RushDuration = 0
	}
	if b.MaxOfflineHours < 0 {
		b.MaxOfflineHours = 0
	}
	if b.OfflineRate < 0 {
		b.OfflineRate = 0
	}
	if b.BaseSpawnInterval <= 0 {
		b.BaseSpawnInterval = 6
	}
	if b.BaseServiceInterval <= 0 {
		b.BaseServiceInterval = 4
	}
	if b.MaxQueue < 1 {
		b.MaxQueue = 6
	}
	if b.ComboDuration <= 0 {
		b.ComboDuration = 6
	}
	if b.ComboMax < 1 {
		b.ComboMax = 8
	}
	if b.ComboStepBonus < 0 {
		b.ComboStepBonus = 0.05
	}
	if b.GrillSlotCount < 1 {
		b.GrillSlotCount = 1
	}
	if b.GrillSlotCount > 4 {
		b.GrillSlotCount = 4
	}
	if b.FlipReadySeconds <= 0 {
		b.FlipReadySeconds = 3
	}
	if b.CookSeconds <= b.FlipReadySeconds {
		b.CookSeconds = b.FlipReadySeconds + 4
	}
	if b.BurnSeconds <= b.CookSeconds {
		b.BurnSeconds = b.CookSeconds + 5
	}
	if b.StarterRawStock < 0 {
		b.StarterRawStock = 0
	}
	if b.MeatBuyCostFactor < 0.2 {
		b.MeatBuyCostFactor = 0.2
	}
	if b.MeatSaleFactor < 0.2 {
		b.MeatSaleFactor = 0.2
	}
	if b.MissionsPerDay < 1 {
		b.MissionsPerDay = 1
	}
}
