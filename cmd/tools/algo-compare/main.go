// Command algo-compare runs every optimizer over one marker file and
// compares the resulting lap metadata. Runs are independent pure
// computations, so they execute concurrently.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/Alecbossard/PathPlanning/internal/config"
	"github.com/Alecbossard/PathPlanning/internal/optimize"
	"github.com/Alecbossard/PathPlanning/internal/pipeline"
	"github.com/Alecbossard/PathPlanning/internal/profile"
)

var (
	input      = flag.String("input", "", "Marker CSV file (required)")
	seed       = flag.Int64("seed", 1, "Base random seed for stochastic optimizers")
	jsonOut    = flag.Bool("json", false, "Emit JSON instead of a table")
	configFile = flag.String("config", "", "Optional tuning config JSON file")
)

// AlgoResult holds per-optimizer comparison output.
type AlgoResult struct {
	Name             string                `json:"name"`
	Metadata         profile.TrackMetadata `json:"metadata"`
	ProcessingTimeMs int64                 `json:"processing_time_ms"`
}

func main() {
	flag.Parse()

	if *input == "" {
		flag.Usage()
		os.Exit(2)
	}

	source, err := os.ReadFile(*input)
	if err != nil {
		log.Fatalf("failed to read marker file: %v", err)
	}

	tuning := config.EmptyTuningConfig()
	if *configFile != "" {
		tuning, err = config.LoadTuningConfig(*configFile)
		if err != nil {
			log.Fatalf("failed to load tuning config: %v", err)
		}
	}
	runner := pipeline.NewRunner(tuning)

	// One optimizer per goroutine. The stochastic optimizers each get
	// their own derived seed so runs stay reproducible and race-free.
	type job struct {
		name string
		opt  optimize.Optimizer
	}
	jobs := []job{
		{name: "centerline"},
		{name: "laplacian", opt: optimize.NewLaplacian()},
		{name: "shortcut", opt: optimize.NewShortcutter(rand.New(rand.NewSource(*seed)))},
		{name: "biharmonic", opt: optimize.NewBiharmonic()},
		{name: "hybrid", opt: optimize.NewHybrid()},
		{name: "search-refine", opt: optimize.NewSearchRefine(rand.New(rand.NewSource(*seed + 1)))},
		{name: "horizon", opt: optimize.NewHorizonPlanner()},
	}

	results := make([]AlgoResult, len(jobs))
	var wg sync.WaitGroup
	for i, j := range jobs {
		wg.Add(1)
		go func(i int, j job) {
			defer wg.Done()
			start := time.Now()
			res := runner.Run(string(source), j.opt)
			results[i] = AlgoResult{
				Name:             j.name,
				Metadata:         res.Metadata,
				ProcessingTimeMs: time.Since(start).Milliseconds(),
			}
		}(i, j)
	}
	wg.Wait()

	sort.Slice(results, func(a, b int) bool {
		return results[a].Metadata.LapTime < results[b].Metadata.LapTime
	})

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			log.Fatalf("failed to encode results: %v", err)
		}
		return
	}

	fmt.Printf("%-14s %10s %9s %9s %9s %9s %8s\n",
		"optimizer", "length(m)", "lap(s)", "avg(m/s)", "lat(g)", "long(g)", "time(ms)")
	for _, r := range results {
		m := r.Metadata
		fmt.Printf("%-14s %10.1f %9.2f %9.1f %9.2f %9.2f %8d\n",
			r.Name, m.TotalLength, m.LapTime, m.AverageSpeed,
			m.PeakLateralG, m.PeakLongG, r.ProcessingTimeMs)
	}
}
