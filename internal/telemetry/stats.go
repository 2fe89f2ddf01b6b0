package telemetry

import (
	"encoding/json"
	"time"
)

type Stats struct {
	Period          string            `json:"period"`
	EventCounts     map[EventType]int `json:"event_counts"`
	IncomeTotal     float64           `json:"income_total"`
	ServeCount      int               `json:"serve_count"`
	AbandonCount    int               `json:"abandon_count"`
	ServeAbandonPct float64           `json:"serve_abandon_pct"`
	UpgradesBought  int               `json:"upgrades_bought"`
	BoostsUsed      int               `json:"boosts_used"`
	UpgradesByID    map[string]int    `json:"upgrades_by_id"`
	ServesByMenu    map[string]int    `json:"serves_by_menu"`
}

// CalculateStats computes session balance stats from events.
func CalculateStats(events []Event, since time.Time) (Stats, error) {
	stats := Stats{
		Period:       since.Format("2006-01-02"),
		EventCounts:  make(map[EventType]int),
		UpgradesByID: make(map[string]int),
		ServesByMenu: make(map[string]int),
	}

	for _, event := range events {
		stats.EventCounts[event.Type]++

		var metadata EventMetadata
		if err := json.Unmarshal([]byte(event.Metadata), &metadata); err != nil {
			continue
		}

		switch event.Type {
		case EventIncomeGained:
			if amount, ok := metadata["amount"].(float64); ok {
				stats.IncomeTotal += amount
			}
		case EventServeCompleted:
			stats.ServeCount++
			if menuID, ok := metadata["menu_id"].(string); ok {
				stats.ServesByMenu[menuID]++
			}
		case EventCustomerAbandoned:
			// Abandons are batched per tick, count carries the batch size.
			if count, ok := metadata["count"].(float64); ok && count > 0 {
				stats.AbandonCount += int(count)
			} else {
				stats.AbandonCount++
			}
		case EventUpgradePurchased:
			stats.UpgradesBought++
			if id, ok := metadata["upgrade_id"].(string); ok {
				stats.UpgradesByID[id]++
			}
		case EventBoostUsed, EventRushUsed:
			stats.BoostsUsed++
		}
	}

	if total := stats.ServeCount + stats.AbandonCount; total > 0 {
		stats.ServeAbandonPct = float64(stats.AbandonCount) / float64(total)
	}

	return stats, nil
}
