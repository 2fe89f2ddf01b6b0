package server

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KIM3310/kbbq-idle/internal/catalog"
	"github.com/KIM3310/kbbq-idle/internal/config"
	"github.com/KIM3310/kbbq-idle/internal/game"
	"github.com/KIM3310/kbbq-idle/internal/save"
	"github.com/KIM3310/kbbq-idle/internal/telemetry"
)

func newTestServer(t *testing.T) (*httptest.Server, *App) {
	t.Helper()
	cat := catalog.Default()
	events := telemetry.NewMemoryRepository()
	clock := game.NewFakeClock(time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC))
	g, err := game.New(config.Default(), &cat, save.NewMemoryStore(), events, clock, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	g.CompleteTutorial()
	g.Boot()

	app := &App{Game: g, Events: events, Balance: config.Default(), BootNow: time.Now().Add(-time.Hour)}
	mux := http.NewServeMux()
	rr := &RouteRegistry{}
	RegisterAPIRoutes(mux, rr, app)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, app
}

func getJSON(t *testing.T, srv *httptest.Server, path string, v any) {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func postJSON(t *testing.T, srv *httptest.Server, path, body string, v any) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	if v != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	}
	return resp
}

func TestStateEndpoint(t *testing.T) {
	srv, app := newTestServer(t)
	app.Step(1)

	var snap game.Snapshot
	getJSON(t, srv, "/api/state", &snap)

	assert.Equal(t, game.StateMainLoop, snap.State)
	assert.Positive(t, snap.Currency)
	assert.NotEmpty(t, snap.Missions)
}

func TestBuyUpgradeEndpoint(t *testing.T) {
	srv, app := newTestServer(t)
	app.mu.Lock()
	app.Game.GrantCurrency(10000)
	id := app.Game.UpgradeEntries()[0].ID
	app.mu.Unlock()

	var out struct {
		Purchased bool   `json:"purchased"`
		ID        string `json:"id"`
	}
	postJSON(t, srv, "/api/upgrades/buy", `{"id":"`+id+`"}`, &out)
	assert.True(t, out.Purchased)
	assert.Equal(t, id, out.ID)

	resp := postJSON(t, srv, "/api/upgrades/buy", `{}`, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = postJSON(t, srv, "/api/upgrades/buy", `not json`, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBuyBestEndpoint(t *testing.T) {
	srv, app := newTestServer(t)
	app.mu.Lock()
	app.Game.GrantCurrency(10000)
	app.mu.Unlock()

	var out struct {
		Purchased bool   `json:"purchased"`
		ID        string `json:"id"`
	}
	postJSON(t, srv, "/api/upgrades/buy-best", "", &out)
	assert.True(t, out.Purchased)
	assert.NotEmpty(t, out.ID)
}

func TestKitchenEndpoints(t *testing.T) {
	srv, app := newTestServer(t)
	app.mu.Lock()
	app.Game.GrantCurrency(10000)
	menuID := app.Game.UnlockedMenu()[0].ID
	app.mu.Unlock()

	var bought struct {
		Bought bool `json:"bought"`
	}
	postJSON(t, srv, "/api/kitchen/buy", `{"menu_id":"`+menuID+`","amount":2}`, &bought)
	assert.True(t, bought.Bought)

	var placed struct {
		Placed bool `json:"placed"`
	}
	postJSON(t, srv, "/api/kitchen/place", `{"slot":0,"menu_id":"`+menuID+`"}`, &placed)
	assert.True(t, placed.Placed)

	// Too early to flip or collect.
	var flipped struct {
		Flipped bool `json:"flipped"`
	}
	postJSON(t, srv, "/api/kitchen/flip", `{"slot":0}`, &flipped)
	assert.False(t, flipped.Flipped)

	app.Step(5)
	postJSON(t, srv, "/api/kitchen/flip", `{"slot":0}`, &flipped)
	assert.True(t, flipped.Flipped)

	app.Step(5)
	var collected struct {
		Collected bool `json:"collected"`
	}
	postJSON(t, srv, "/api/kitchen/collect", `{"slot":0}`, &collected)
	assert.True(t, collected.Collected)

	var kitchenView struct {
		Slots     []json.RawMessage `json:"slots"`
		Inventory []json.RawMessage `json:"inventory"`
	}
	getJSON(t, srv, "/api/kitchen", &kitchenView)
	assert.Len(t, kitchenView.Slots, config.Default().GrillSlotCount)
	assert.NotEmpty(t, kitchenView.Inventory)
}

func TestPauseResumeAndSaveEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	var ok struct {
		OK bool `json:"ok"`
	}
	postJSON(t, srv, "/api/pause", "", &ok)
	assert.True(t, ok.OK)

	var snap game.Snapshot
	getJSON(t, srv, "/api/state", &snap)
	assert.Equal(t, game.StatePause, snap.State)

	var res game.BootResult
	postJSON(t, srv, "/api/resume", "", &res)
	assert.Equal(t, game.StateMainLoop, res.State)

	postJSON(t, srv, "/api/save", "", &ok)
	assert.True(t, ok.OK)
}

func TestTelemetryStatsEndpoint(t *testing.T) {
	srv, app := newTestServer(t)
	postJSON(t, srv, "/api/boost", "", nil)
	app.Step(1)

	var stats telemetry.Stats
	getJSON(t, srv, "/api/telemetry/stats", &stats)
	assert.GreaterOrEqual(t, stats.BoostsUsed, 1)
}

func TestRoutesEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	var routes []RouteDoc
	getJSON(t, srv, "/api/routes", &routes)
	require.NotEmpty(t, routes)

	patterns := make(map[string]bool)
	for _, r := range routes {
		patterns[r.Method+" "+r.Pattern] = true
	}
	assert.True(t, patterns["GET /api/state"])
	assert.True(t, patterns["POST /api/prestige"])
}

func TestPacingEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	postJSON(t, srv, "/api/queue/pacing", `{"spawn":2.0,"service":0.5}`, nil)

	var m struct {
		QueueCount int `json:"queue_count"`
	}
	getJSON(t, srv, "/api/queue/metrics", &m)
	assert.GreaterOrEqual(t, m.QueueCount, 0)
}
