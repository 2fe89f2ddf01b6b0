package catalog

// Default returns the built-in catalog. Used whenever no catalog file is
// provided, or a provided file leaves a section empty.
func Default() Catalog {
	return Catalog{
		MenuItems: []MenuItem{
			{ID: "pork_belly", DisplayName: "Pork Belly", UnlockLevel: 1, BasePrice: 1.2, BonusMultiplier: 1.0},
			{ID: "pork_shoulder", DisplayName: "Pork Shoulder", UnlockLevel: 2, BasePrice: 1.5, BonusMultiplier: 1.05},
			{ID: "rib", DisplayName: "Pork Rib", UnlockLevel: 3, BasePrice: 2.0, BonusMultiplier: 1.1},
			{ID: "spicy_pork", DisplayName: "Spicy Pork", UnlockLevel: 4, BasePrice: 2.6, BonusMultiplier: 1.15},
			{ID: "kimchi_stew", DisplayName: "Kimchi Stew", UnlockLevel: 5, BasePrice: 3.0, BonusMultiplier: 1.18},
			{ID: "beef_brisket", DisplayName: "Beef Brisket", UnlockLevel: 6, BasePrice: 3.8, BonusMultiplier: 1.2},
			{ID: "premium_beef", DisplayName: "Premium Beef", UnlockLevel: 7, BasePrice: 4.5, BonusMultiplier: 1.22},
			{ID: "signature_sauce", DisplayName: "Signature Sauce", UnlockLevel: 8, BasePrice: 5.5, BonusMultiplier: 1.25},
			{ID: "cold_noodle", DisplayName: "Cold Noodle", UnlockLevel: 9, BasePrice: 6.5, BonusMultiplier: 1.28},
			{ID: "seafood_set", DisplayName: "Seafood Set", UnlockLevel: 10, BasePrice: 8.0, BonusMultiplier: 1.3},
			{ID: "mushroom_platter", DisplayName: "Mushroom Platter", UnlockLevel: 11, BasePrice: 9.5, BonusMultiplier: 1.32},
			{ID: "rice_set", DisplayName: "Rice Set", UnlockLevel: 12, BasePrice: 11.0, BonusMultiplier: 1.35},
			{ID: "soju", DisplayName: "Soju", UnlockLevel: 13, BasePrice: 12.5, BonusMultiplier: 1.38},
			{ID: "makgeolli", DisplayName: "Makgeolli", UnlockLevel: 14, BasePrice: 14.0, BonusMultiplier: 1.4},
			{ID: "bingsu", DisplayName: "Bingsu", UnlockLevel: 15, BasePrice: 16.0, BonusMultiplier: 1.45},
		},
		Upgrades: []Upgrade{
			{ID: "grill_upgrade", DisplayName: "Grill Upgrade", Category: CategoryIncome, BaseCost: 10, CostMultiplier: 1.3, EffectValue: 0.06},
			{ID: "ventilation", DisplayName: "Ventilation", Category: CategoryIncome, BaseCost: 25, CostMultiplier: 1.28, EffectValue: 0.05},
			{ID: "sizzle_master", DisplayName: "Sizzle Master", Category: CategorySizzle, BaseCost: 15, CostMultiplier: 1.25, EffectValue: 0.03},
			{ID: "staff_training", DisplayName: "Staff Training", Category: CategoryStaff, BaseCost: 18, CostMultiplier: 1.26, EffectValue: 0.04},
			{ID: "service_flow", DisplayName: "Service Flow", Category: CategoryService, BaseCost: 22, CostMultiplier: 1.27, EffectValue: 0.05},
			{ID: "pork_belly_recipe", DisplayName: "Pork Belly Recipe", Category: CategoryMenu, TargetID: "pork_belly", BaseCost: 12, CostMultiplier: 1.32, EffectValue: 0.08},
			{ID: "beef_brisket_recipe", DisplayName: "Beef Brisket Recipe", Category: CategoryMenu, TargetID: "beef_brisket", BaseCost: 18, CostMultiplier: 1.33, EffectValue: 0.08},
			{ID: "premium_beef_recipe", DisplayName: "Premium Beef Recipe", Category: CategoryMenu, TargetID: "premium_beef", BaseCost: 30, CostMultiplier: 1.35, EffectValue: 0.09},
			{ID: "signature_sauce_recipe", DisplayName: "Signature Sauce Recipe", Category: CategoryMenu, TargetID: "signature_sauce", BaseCost: 35, CostMultiplier: 1.36, EffectValue: 0.1},
		},
		StoreTiers: []StoreTier{
			{ID: "alley", DisplayName: "Alley", UnlockLevel: 1, IncomeMultiplier: 1.0},
			{ID: "hongdae", DisplayName: "Hongdae", UnlockLevel: 4, IncomeMultiplier: 1.3},
			{ID: "gangnam", DisplayName: "Gangnam", UnlockLevel: 7, IncomeMultiplier: 1.6},
			{ID: "hanok", DisplayName: "Hanok", UnlockLevel: 10, IncomeMultiplier: 1.95},
			{ID: "global", DisplayName: "Global", UnlockLevel: 14, IncomeMultiplier: 2.4},
		},
		Customers: []CustomerArchetype{
			{ID: "local", DisplayName: "Local", Patience: 10, TipMultiplier: 1.0},
			{ID: "tourist", DisplayName: "Tourist", Patience: 12, TipMultiplier: 1.1},
			{ID: "foodie", DisplayName: "Foodie", Patience: 8, TipMultiplier: 1.2},
		},
		Tuning: Tuning{
			MaxLevel:          100,
			BaseRequirement:   50,
			RequirementGrowth: 1.28,
			BaseIncomePerSec:  1,
			IncomeGrowth:      1.22,
			BaseUpgradeCost:   10,
			UpgradeGrowth:     1.3,
		},
	}
}
