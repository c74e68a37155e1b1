package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Alecbossard/PathPlanning/internal/api"
	"github.com/Alecbossard/PathPlanning/internal/config"
	"github.com/Alecbossard/PathPlanning/internal/db"
	"github.com/Alecbossard/PathPlanning/internal/pipeline"
	"github.com/Alecbossard/PathPlanning/internal/units"
	"github.com/Alecbossard/PathPlanning/internal/version"
)

var (
	listen     = flag.String("listen", ":8080", "Listen address")
	dbFile     = flag.String("db", "trackdata.db", "SQLite database file")
	configFile = flag.String("config", "", "Optional tuning config JSON file")
	unitsFlag  = flag.String("units", units.MPS, "Display units for speeds (mps, mph, kmph)")
)

func main() {
	flag.Parse()

	if *listen == "" {
		log.Fatal("Listen address is required")
	}
	if !units.IsValid(*unitsFlag) {
		log.Fatalf("invalid units %q (valid: %s)", *unitsFlag, units.GetValidUnitsString())
	}

	log.Printf("pathplanning %s (%s)", version.Version, version.GitSHA)

	tuning := config.EmptyTuningConfig()
	if *configFile != "" {
		var err error
		tuning, err = config.LoadTuningConfig(*configFile)
		if err != nil {
			log.Fatalf("failed to load tuning config: %v", err)
		}
		log.Printf("loaded tuning config from %s", *configFile)
	}

	store, err := db.NewDB(*dbFile)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer store.Close()

	runner := pipeline.NewRunner(tuning)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mux := api.NewServer(store, runner, *unitsFlag).ServeMux()
	server := &http.Server{
		Addr:    *listen,
		Handler: api.LoggingMiddleware(mux),
	}

	// Start server in a goroutine so it doesn't block
	go func() {
		log.Printf("listening on %s", *listen)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Wait for context cancellation to shut down server
	<-ctx.Done()
	log.Println("shutting down HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}
	log.Printf("graceful shutdown complete")
}
