package server

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const defaultStreamInterval = 250 * time.Millisecond

// RegisterStream wires the websocket snapshot feed. Each client gets the
// full read model on connect and again on every interval; client messages
// are drained and ignored.
func RegisterStream(mux *http.ServeMux, rr *RouteRegistry, app *App, logger *log.Logger) {
	if logger == nil {
		logger = log.Default()
	}
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	rr.Add(RouteDoc{Method: "GET", Pattern: "/api/stream", Summary: "Websocket snapshot stream"})
	mux.HandleFunc("GET /api/stream", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Printf("stream upgrade failed: %v", err)
			return
		}

		interval := defaultStreamInterval
		if raw := r.URL.Query().Get("interval_ms"); raw != "" {
			if d, perr := time.ParseDuration(raw + "ms"); perr == nil && d >= 50*time.Millisecond {
				interval = d
			}
		}

		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, rerr := conn.ReadMessage(); rerr != nil {
					return
				}
			}
		}()

		go func() {
			defer conn.Close()
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				if werr := conn.WriteJSON(app.snapshot()); werr != nil {
					return
				}
				select {
				case <-done:
					return
				case <-ticker.C:
				}
			}
		}()
	})
}
