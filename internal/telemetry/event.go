package telemetry

import "time"

type EventType string

const (
	EventIncomeGained      EventType = "income_gained"
	EventUpgradePurchased  EventType = "upgrade_purchased"
	EventServeCompleted    EventType = "serve_completed"
	EventBoostUsed         EventType = "boost_used"
	EventRushUsed          EventType = "rush_used"
	EventPrestigeApplied   EventType = "prestige_applied"
	EventMissionUpdated    EventType = "mission_updated"
	EventMissionClaimed    EventType = "mission_claimed"
	EventLoginReward       EventType = "login_reward"
	EventOfflineEarnings   EventType = "offline_earnings"
	EventLevelUp           EventType = "level_up"
	EventTierAdvanced      EventType = "tier_advanced"
	EventMenuUnlocked      EventType = "menu_unlocked"
	EventGrillCollected    EventType = "grill_collected"
	EventGrillBurnt        EventType = "grill_burnt"
	EventCustomerAbandoned EventType = "customer_abandoned"
)

type Event struct {
	ID        int       `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  string    `json:"metadata"`
}

type EventMetadata map[string]interface{}
