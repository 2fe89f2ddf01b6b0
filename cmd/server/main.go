package main

import (
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/KIM3310/kbbq-idle/internal/config"
	"github.com/KIM3310/kbbq-idle/internal/serverapp"
)

func main() {
	addr := flag.String("addr", ":8420", "listen address")
	dataDir := flag.String("data-dir", "data", "save directory")
	catalogPath := flag.String("catalog", "", "catalog YAML path (empty = built-in defaults)")
	storeKind := flag.String("store", "file", "save backend: file or sqlite")
	autoServe := flag.Bool("auto-serve", false, "serve customers on the service timer instead of manual serves")
	seed := flag.Int64("seed", 0, "rng seed for reproducible sessions (0 = time-based)")
	tickMs := flag.Int("tick-ms", 100, "simulation tick interval in milliseconds")
	flag.Parse()

	handler, app, err := serverapp.NewHandler(serverapp.Options{
		Balance:     config.FromEnv(),
		CatalogPath: *catalogPath,
		DataDir:     *dataDir,
		Store:       *storeKind,
		AutoServe:   *autoServe,
		Seed:        *seed,
		Logger:      log.Default(),
	})
	if err != nil {
		log.Fatalf("build server: %v", err)
	}

	stop := make(chan struct{})
	defer close(stop)
	go app.RunLoop(stop, time.Duration(*tickMs)*time.Millisecond)

	log.Printf("kbbq-idle listening on %s (store=%s)", *addr, *storeKind)
	log.Fatal(http.ListenAndServe(*addr, handler))
}
