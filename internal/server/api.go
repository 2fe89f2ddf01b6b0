package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/KIM3310/kbbq-idle/internal/config"
	"github.com/KIM3310/kbbq-idle/internal/game"
	"github.com/KIM3310/kbbq-idle/internal/telemetry"
)

// App wraps the single-threaded simulation for HTTP access. The mutex is
// the serialization point: every handler and the tick loop go through it.
type App struct {
	mu      sync.Mutex
	Game    *game.Game
	Events  telemetry.Repository
	Balance config.Balance
	BootNow time.Time
}

// Step advances the simulation under the lock.
func (a *App) Step(dt float64) {
	a.mu.Lock()
	a.Game.Tick(dt)
	a.mu.Unlock()
}

// RunLoop drives real-time ticks until stop is closed.
func (a *App) RunLoop(stop <-chan struct{}, interval time.Duration) {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	last := time.Now()
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			a.Step(dt)
		}
	}
}

// snapshot builds the read model under the lock.
func (a *App) snapshot() game.Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Game.BuildSnapshot()
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return false
	}
	return true
}

// RegisterAPIRoutes wires the whole command and query surface.
func RegisterAPIRoutes(mux *http.ServeMux, rr *RouteRegistry, app *App) {
	Handle(mux, rr, "GET /api/state", "Full game snapshot", "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, app.snapshot())
	})

	Handle(mux, rr, "GET /api/queue", "Waiting customers", "", func(w http.ResponseWriter, r *http.Request) {
		app.mu.Lock()
		entries := app.Game.QueueSnapshot()
		app.mu.Unlock()
		writeJSON(w, entries)
	})

	Handle(mux, rr, "GET /api/queue/metrics", "Rolling queue health", "", func(w http.ResponseWriter, r *http.Request) {
		app.mu.Lock()
		m := app.Game.QueueMetrics()
		app.mu.Unlock()
		writeJSON(w, m)
	})

	Handle(mux, rr, "GET /api/upgrades", "Upgrade list with costs and best-buy marking", "", func(w http.ResponseWriter, r *http.Request) {
		app.mu.Lock()
		entries := app.Game.UpgradeEntries()
		app.mu.Unlock()
		writeJSON(w, entries)
	})

	Handle(mux, rr, "POST /api/upgrades/buy", "Buy one upgrade level", `{"id":"grill_income_1"}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ID string `json:"id"`
		}
		if !decodeBody(w, r, &body) {
			return
		}
		if body.ID == "" {
			http.Error(w, "id is required", http.StatusBadRequest)
			return
		}
		app.mu.Lock()
		ok := app.Game.PurchaseUpgrade(body.ID)
		app.mu.Unlock()
		writeJSON(w, map[string]any{"purchased": ok, "id": body.ID})
	})

	Handle(mux, rr, "POST /api/upgrades/buy-best", "Buy the best affordable upgrade", "", func(w http.ResponseWriter, r *http.Request) {
		app.mu.Lock()
		id, ok := app.Game.BuyBestUpgrade()
		app.mu.Unlock()
		writeJSON(w, map[string]any{"purchased": ok, "id": id})
	})

	Handle(mux, rr, "POST /api/serve", "Serve the next customer", "", func(w http.ResponseWriter, r *http.Request) {
		app.mu.Lock()
		outcome := app.Game.ServeNextCustomer()
		app.mu.Unlock()
		writeJSON(w, outcome)
	})

	Handle(mux, rr, "POST /api/boost", "Trigger the sizzle boost", "", func(w http.ResponseWriter, r *http.Request) {
		app.mu.Lock()
		app.Game.TriggerSizzleBoost()
		app.mu.Unlock()
		writeJSON(w, map[string]any{"ok": true})
	})

	Handle(mux, rr, "POST /api/rush", "Trigger rush service", "", func(w http.ResponseWriter, r *http.Request) {
		app.mu.Lock()
		app.Game.TriggerRushService()
		app.mu.Unlock()
		writeJSON(w, map[string]any{"ok": true})
	})

	Handle(mux, rr, "POST /api/prestige", "Reset the run for permanent points", "", func(w http.ResponseWriter, r *http.Request) {
		app.mu.Lock()
		reward, ok := app.Game.TryPrestige()
		app.mu.Unlock()
		writeJSON(w, map[string]any{"applied": ok, "points": reward.Points})
	})

	Handle(mux, rr, "GET /api/missions", "Daily mission set", "", func(w http.ResponseWriter, r *http.Request) {
		app.mu.Lock()
		missions := app.Game.Missions()
		app.mu.Unlock()
		writeJSON(w, missions)
	})

	Handle(mux, rr, "POST /api/missions/claim", "Claim a completed mission", `{"id":"earncurrency_0"}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ID string `json:"id"`
		}
		if !decodeBody(w, r, &body) {
			return
		}
		app.mu.Lock()
		ok := app.Game.ClaimDailyMission(body.ID)
		app.mu.Unlock()
		writeJSON(w, map[string]any{"claimed": ok, "id": body.ID})
	})

	Handle(mux, rr, "GET /api/kitchen", "Grill slots and meat inventory", "", func(w http.ResponseWriter, r *http.Request) {
		app.mu.Lock()
		slots := app.Game.GrillSlotStates()
		inventory := app.Game.MeatInventory()
		app.mu.Unlock()
		writeJSON(w, map[string]any{"slots": slots, "inventory": inventory})
	})

	Handle(mux, rr, "POST /api/kitchen/buy", "Buy raw meat", `{"menu_id":"pork_belly","amount":2}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			MenuID string `json:"menu_id"`
			Amount int    `json:"amount"`
		}
		if !decodeBody(w, r, &body) {
			return
		}
		app.mu.Lock()
		ok := app.Game.BuyRawMeat(body.MenuID, body.Amount)
		app.mu.Unlock()
		writeJSON(w, map[string]any{"bought": ok})
	})

	Handle(mux, rr, "POST /api/kitchen/place", "Load raw meat onto a grill slot", `{"slot":0,"menu_id":"pork_belly"}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Slot   int    `json:"slot"`
			MenuID string `json:"menu_id"`
		}
		if !decodeBody(w, r, &body) {
			return
		}
		app.mu.Lock()
		ok := app.Game.PlaceRawMeatOnGrill(body.Slot, body.MenuID)
		app.mu.Unlock()
		writeJSON(w, map[string]any{"placed": ok})
	})

	Handle(mux, rr, "POST /api/kitchen/flip", "Flip a grill slot", `{"slot":0}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Slot int `json:"slot"`
		}
		if !decodeBody(w, r, &body) {
			return
		}
		app.mu.Lock()
		ok := app.Game.FlipMeat(body.Slot)
		app.mu.Unlock()
		writeJSON(w, map[string]any{"flipped": ok})
	})

	Handle(mux, rr, "POST /api/kitchen/collect", "Collect a grill slot", `{"slot":0}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Slot int `json:"slot"`
		}
		if !decodeBody(w, r, &body) {
			return
		}
		app.mu.Lock()
		ok := app.Game.CollectFromGrill(body.Slot)
		app.mu.Unlock()
		writeJSON(w, map[string]any{"collected": ok})
	})

	Handle(mux, rr, "POST /api/tutorial/complete", "Finish the tutorial", "", func(w http.ResponseWriter, r *http.Request) {
		app.mu.Lock()
		app.Game.CompleteTutorial()
		app.mu.Unlock()
		writeJSON(w, map[string]any{"ok": true})
	})

	Handle(mux, rr, "POST /api/pause", "Pause the simulation and save", "", func(w http.ResponseWriter, r *http.Request) {
		app.mu.Lock()
		err := app.Game.Pause()
		app.mu.Unlock()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]any{"ok": true})
	})

	Handle(mux, rr, "POST /api/resume", "Resume from pause", "", func(w http.ResponseWriter, r *http.Request) {
		app.mu.Lock()
		res := app.Game.Resume()
		app.mu.Unlock()
		writeJSON(w, res)
	})

	Handle(mux, rr, "POST /api/save", "Flush the save snapshot", "", func(w http.ResponseWriter, r *http.Request) {
		app.mu.Lock()
		err := app.Game.Save()
		app.mu.Unlock()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]any{"ok": true})
	})

	Handle(mux, rr, "POST /api/queue/pacing", "Override spawn/service pacing", `{"spawn":1.5,"service":1.0}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Spawn   float64 `json:"spawn"`
			Service float64 `json:"service"`
		}
		if !decodeBody(w, r, &body) {
			return
		}
		app.mu.Lock()
		if body.Spawn > 0 {
			app.Game.SetSpawnRateMultiplier(body.Spawn)
		}
		if body.Service > 0 {
			app.Game.SetServiceRateMultiplier(body.Service)
		}
		app.mu.Unlock()
		writeJSON(w, map[string]any{"ok": true})
	})

	Handle(mux, rr, "GET /api/telemetry/stats", "Session balance stats", "", func(w http.ResponseWriter, r *http.Request) {
		events, err := app.Events.GetEvents(app.BootNow, nil)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		stats, err := telemetry.CalculateStats(events, app.BootNow)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, stats)
	})

	Handle(mux, rr, "GET /api/config", "Active balance configuration", "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, app.Balance)
	})

	Handle(mux, rr, "GET /api/routes", "List registered routes", "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, rr.List())
	})
}
