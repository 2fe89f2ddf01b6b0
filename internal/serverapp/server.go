package serverapp

import (
	"encoding/json"
	"log"
	"math/rand"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/KIM3310/kbbq-idle/internal/catalog"
	"github.com/KIM3310/kbbq-idle/internal/config"
	"github.com/KIM3310/kbbq-idle/internal/game"
	"github.com/KIM3310/kbbq-idle/internal/httpmw"
	"github.com/KIM3310/kbbq-idle/internal/save"
	"github.com/KIM3310/kbbq-idle/internal/server"
	"github.com/KIM3310/kbbq-idle/internal/telemetry"
)

type Options struct {
	Balance     config.Balance
	CatalogPath string
	DataDir     string
	Store       string // "file" or "sqlite"
	AutoServe   bool
	Seed        int64
	Logger      *log.Logger
}

// NewHandler builds the full HTTP surface over a freshly booted game and
// returns it together with the app so the caller can run the tick loop.
func NewHandler(opts Options) (http.Handler, *server.App, error) {
	if strings.TrimSpace(opts.DataDir) == "" {
		opts.DataDir = "data"
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	cat, skipped, err := catalog.LoadFile(opts.CatalogPath)
	if err != nil {
		return nil, nil, err
	}
	for _, msg := range skipped {
		opts.Logger.Printf("catalog: %s", msg)
	}

	var store save.Store
	switch strings.ToLower(strings.TrimSpace(opts.Store)) {
	case "sqlite":
		store, err = save.OpenSQLite(filepath.Join(opts.DataDir, "save.db"))
	default:
		store, err = save.NewFileStore(opts.DataDir)
	}
	if err != nil {
		return nil, nil, err
	}

	events := telemetry.NewMemoryRepository()
	var rng *rand.Rand
	if opts.Seed != 0 {
		rng = rand.New(rand.NewSource(opts.Seed))
	}

	g, err := game.New(opts.Balance, &cat, store, events, game.RealClock{}, rng)
	if err != nil {
		return nil, nil, err
	}
	g.SetAutoServe(opts.AutoServe)
	boot := g.Boot()
	opts.Logger.Printf("boot: state=%s offline_earned=%.2f login_streak=%d",
		boot.State, boot.Offline.Earned, boot.Login.StreakDay)

	app := &server.App{
		Game:    g,
		Events:  events,
		Balance: opts.Balance,
		BootNow: time.Now(),
	}

	mux := http.NewServeMux()
	rr := &server.RouteRegistry{}

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"ok":      true,
			"service": "kbbq-idle",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if _, lerr := store.Load(); lerr != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			writeJSON(w, map[string]any{"ok": false, "error": "save storage unavailable"})
			return
		}
		writeJSON(w, map[string]any{
			"ok":      true,
			"service": "kbbq-idle",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	server.RegisterAPIRoutes(mux, rr, app)
	server.RegisterStream(mux, rr, app, opts.Logger)

	handler := httpmw.Chain(
		mux,
		httpmw.WithAccessLog(opts.Logger),
		httpmw.WithRequestID,
		httpmw.WithRecover(opts.Logger),
	)
	return handler, app, nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(v)
}
