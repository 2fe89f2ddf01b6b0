package main

import (
	"log"
	"net/http"

	"github.com/KIM3310/kbbq-idle/internal/config"
	"github.com/KIM3310/kbbq-idle/internal/serverapp"
)

// Quick-start entry: file-backed save in ./data, catalog defaults, balance
// from env. cmd/server is the configurable entrypoint.
func main() {
	handler, app, err := serverapp.NewHandler(serverapp.Options{
		Balance: config.FromEnv(),
		DataDir: "data",
		Logger:  log.Default(),
	})
	if err != nil {
		log.Fatalf("build server: %v", err)
	}

	stop := make(chan struct{})
	defer close(stop)
	go app.RunLoop(stop, 0)

	addr := ":8420"
	log.Printf("kbbq-idle listening on http://localhost%s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
