package catalog

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Category is the closed set of upgrade categories. Unknown categories are
// rejected at catalog load rather than silently treated as neutral.
type Category string

const (
	CategoryIncome  Category = "income"
	CategoryMenu    Category = "menu"
	CategoryStaff   Category = "staff"
	CategoryService Category = "service"
	CategorySizzle  Category = "sizzle"
)

// ParseCategory normalizes a raw category string.
func ParseCategory(raw string) (Category, bool) {
	switch Category(strings.ToLower(strings.TrimSpace(raw))) {
	case CategoryIncome:
		return CategoryIncome, true
	case CategoryMenu:
		return CategoryMenu, true
	case CategoryStaff:
		return CategoryStaff, true
	case CategoryService:
		return CategoryService, true
	case CategorySizzle:
		return CategorySizzle, true
	}
	return "", false
}

// MenuItem is one sellable dish. Unlocked by player level.
type MenuItem struct {
	ID              string  `yaml:"id" json:"id"`
	DisplayName     string  `yaml:"display_name" json:"display_name"`
	UnlockLevel     int     `yaml:"unlock_level" json:"unlock_level"`
	BasePrice       float64 `yaml:"base_price" json:"base_price"`
	BonusMultiplier float64 `yaml:"bonus_multiplier" json:"bonus_multiplier"`
}

// Upgrade is one purchasable upgrade line. Cost at level L is
// BaseCost * CostMultiplier^L; its multiplier contribution is
// (1+EffectValue)^L.
type Upgrade struct {
	ID             string   `yaml:"id" json:"id"`
	DisplayName    string   `yaml:"display_name" json:"display_name"`
	Category       Category `yaml:"category" json:"category"`
	TargetID       string   `yaml:"target_id" json:"target_id,omitempty"`
	BaseCost       float64  `yaml:"base_cost" json:"base_cost"`
	CostMultiplier float64  `yaml:"cost_multiplier" json:"cost_multiplier"`
	EffectValue    float64  `yaml:"effect_value" json:"effect_value"`
}

// StoreTier is one store-location rung. Tiers are ordered by UnlockLevel and
// the current tier scales all income.
type StoreTier struct {
	ID               string  `yaml:"id" json:"id"`
	DisplayName      string  `yaml:"display_name" json:"display_name"`
	UnlockLevel      int     `yaml:"unlock_level" json:"unlock_level"`
	IncomeMultiplier float64 `yaml:"income_multiplier" json:"income_multiplier"`
}

// CustomerArchetype drives queue entry generation.
type CustomerArchetype struct {
	ID            string  `yaml:"id" json:"id"`
	DisplayName   string  `yaml:"display_name" json:"display_name"`
	Patience      float64 `yaml:"patience" json:"patience"`
	TipMultiplier float64 `yaml:"tip_multiplier" json:"tip_multiplier"`
}

// Tuning holds the geometric progression curves.
type Tuning struct {
	MaxLevel          int     `yaml:"max_level" json:"max_level"`
	BaseRequirement   float64 `yaml:"base_requirement" json:"base_requirement"`
	RequirementGrowth float64 `yaml:"requirement_growth" json:"requirement_growth"`
	BaseIncomePerSec  float64 `yaml:"base_income_per_sec" json:"base_income_per_sec"`
	IncomeGrowth      float64 `yaml:"income_growth" json:"income_growth"`
	BaseUpgradeCost   float64 `yaml:"base_upgrade_cost" json:"base_upgrade_cost"`
	UpgradeGrowth     float64 `yaml:"upgrade_growth" json:"upgrade_growth"`
}

// Catalog is the full set of static game data, loaded once at startup and
// never mutated afterwards.
type Catalog struct {
	MenuItems  []MenuItem          `yaml:"menu_items" json:"menu_items"`
	Upgrades   []Upgrade           `yaml:"upgrades" json:"upgrades"`
	StoreTiers []StoreTier         `yaml:"store_tiers" json:"store_tiers"`
	Customers  []CustomerArchetype `yaml:"customers" json:"customers"`
	Tuning     Tuning              `yaml:"tuning" json:"tuning"`
}

// Normalize drops invalid rows, clamps numeric fields into sane ranges and
// sorts tiers by unlock level. Empty sections fall back to the built-in
// defaults so the engine never starts unplayable. It returns the list of
// rows that were skipped, for the host to log.
func (c *Catalog) Normalize() []string {
	var skipped []string

	items := c.MenuItems[:0]
	for _, it := range c.MenuItems {
		if strings.TrimSpace(it.ID) == "" {
			skipped = append(skipped, "menu item with empty id")
			continue
		}
		if it.DisplayName == "" {
			it.DisplayName = it.ID
		}
		if it.UnlockLevel < 1 {
			it.UnlockLevel = 1
		}
		if it.BasePrice <= 0 {
			it.BasePrice = 1
		}
		if it.BonusMultiplier <= 0 {
			it.BonusMultiplier = 1
		}
		items = append(items, it)
	}
	c.MenuItems = items

	ups := c.Upgrades[:0]
	for _, u := range c.Upgrades {
		if strings.TrimSpace(u.ID) == "" {
			skipped = append(skipped, "upgrade with empty id")
			continue
		}
		cat, ok := ParseCategory(string(u.Category))
		if !ok {
			skipped = append(skipped, fmt.Sprintf("upgrade %q with unknown category %q", u.ID, u.Category))
			continue
		}
		u.Category = cat
		if u.DisplayName == "" {
			u.DisplayName = u.ID
		}
		if u.BaseCost <= 0 {
			u.BaseCost = 1
		}
		if u.CostMultiplier <= 1 {
			u.CostMultiplier = 1.3
		}
		if u.EffectValue <= 0 || math.IsNaN(u.EffectValue) {
			u.EffectValue = 0.05
		}
		ups = append(ups, u)
	}
	c.Upgrades = ups

	tiers := c.StoreTiers[:0]
	for _, tr := range c.StoreTiers {
		if strings.TrimSpace(tr.ID) == "" {
			skipped = append(skipped, "store tier with empty id")
			continue
		}
		if tr.DisplayName == "" {
			tr.DisplayName = tr.ID
		}
		if tr.UnlockLevel < 1 {
			tr.UnlockLevel = 1
		}
		if tr.IncomeMultiplier <= 0 {
			tr.IncomeMultiplier = 1
		}
		tiers = append(tiers, tr)
	}
	sort.SliceStable(tiers, func(i, j int) bool { return tiers[i].UnlockLevel < tiers[j].UnlockLevel })
	c.StoreTiers = tiers

	custs := c.Customers[:0]
	for _, cu := range c.Customers {
		if strings.TrimSpace(cu.ID) == "" {
			skipped = append(skipped, "customer archetype with empty id")
			continue
		}
		if cu.DisplayName == "" {
			cu.DisplayName = cu.ID
		}
		if cu.Patience < 3 {
			cu.Patience = 3
		}
		if cu.TipMultiplier < 0.8 {
			cu.TipMultiplier = 0.8
		}
		custs = append(custs, cu)
	}
	c.Customers = custs

	def := Default()
	if len(c.MenuItems) == 0 {
		c.MenuItems = def.MenuItems
	}
	if len(c.Upgrades) == 0 {
		c.Upgrades = def.Upgrades
	}
	if len(c.StoreTiers) == 0 {
		c.StoreTiers = def.StoreTiers
	}
	if len(c.Customers) == 0 {
		c.Customers = def.Customers
	}
	c.Tuning.normalize()

	return skipped
}

func (t *Tuning) normalize() {
	if t.MaxLevel < 1 {
		t.MaxLevel = 100
	}
	if t.BaseRequirement < 1 {
		t.BaseRequirement = 50
	}
	if t.RequirementGrowth < 1.01 {
		t.RequirementGrowth = 1.28
	}
	if t.BaseIncomePerSec <= 0 {
		t.BaseIncomePerSec = 1
	}
	if t.IncomeGrowth < 1.01 {
		t.IncomeGrowth = 1.22
	}
	if t.BaseUpgradeCost < 1 {
		t.BaseUpgradeCost = 10
	}
	if t.UpgradeGrowth < 1.01 {
		t.UpgradeGrowth = 1.3
	}
}

// MenuItemByID returns the catalog row for a menu id, case-insensitive.
func (c *Catalog) MenuItemByID(id string) (MenuItem, bool) {
	for _, it := range c.MenuItems {
		if strings.EqualFold(it.ID, id) {
			return it, true
		}
	}
	return MenuItem{}, false
}
