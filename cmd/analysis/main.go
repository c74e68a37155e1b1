// Command analysis runs the trajectory pipeline offline over a marker
// file: centerline reconstruction, optional optimization, speed profile,
// CSV export and optional PNG plots.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/Alecbossard/PathPlanning/internal/config"
	"github.com/Alecbossard/PathPlanning/internal/optimize"
	"github.com/Alecbossard/PathPlanning/internal/pipeline"
	"github.com/Alecbossard/PathPlanning/internal/profile"
)

var (
	input      = flag.String("input", "", "Marker CSV file (required)")
	optName    = flag.String("optimizer", "search-refine", "Optimizer: centerline, laplacian, shortcut, biharmonic, hybrid, search-refine, horizon")
	seed       = flag.Int64("seed", 0, "Random seed for stochastic optimizers (0 = time-based)")
	output     = flag.String("out", "", "Trajectory CSV output file (default: stdout)")
	plotPrefix = flag.String("plot", "", "Optional PNG plot file prefix (writes <prefix>-speed.png and <prefix>-map.png)")
	configFile = flag.String("config", "", "Optional tuning config JSON file")
)

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

	var rng *rand.Rand
	if *seed != 0 {
		rng = rand.New(rand.NewSource(*seed))
	}

	var opt optimize.Optimizer
	if *optName != "centerline" {
		var ok bool
		opt, ok = optimize.ByName(*optName, rng)
		if !ok {
			log.Fatalf("unknown optimizer %q", *optName)
		}
	}

	res := pipeline.NewRunner(tuning).Run(string(source), opt)
	if len(res.Points) == 0 {
		log.Fatalf("no trajectory: %d markers parsed, %d centerline points built",
			len(res.Markers), len(res.Centerline))
	}

	out := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			log.Fatalf("failed to create output file: %v", err)
		}
		defer f.Close()
		out = f
	}
	if err := profile.WriteCSV(out, res.Points); err != nil {
		log.Fatalf("failed to write trajectory: %v", err)
	}

	if *plotPrefix != "" {
		if err := profile.SaveSpeedPlot(res.Points, *plotPrefix+"-speed.png"); err != nil {
			log.Fatalf("failed to save speed plot: %v", err)
		}
		if err := profile.SaveMapPlot(res.Points, *plotPrefix+"-map.png"); err != nil {
			log.Fatalf("failed to save map plot: %v", err)
		}
	}

	m := res.Metadata
	fmt.Fprintf(os.Stderr,
		"optimizer=%s samples=%d length=%.1fm lap=%.2fs avg=%.1fm/s peak_lat=%.2fg long=[%.2fg, %.2fg]\n",
		res.Optimizer, m.SampleCount, m.TotalLength, m.LapTime, m.AverageSpeed,
		m.PeakLateralG, m.MinLongG, m.PeakLongG)
}
