// Command query prints a stored match run: the reconstruction summary
// and, optionally, the full per-token report as JSON.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/lyrictalk-backend/internal/app"
	"github.com/heartmarshall/lyrictalk-backend/internal/domain"
)

func main() {
	var (
		runID   = flag.String("run", "", "run id to inspect (required)")
		asJSON  = flag.Bool("json", false, "print the full report as JSON")
		verbose = flag.Bool("v", false, "print per-token steps")
	)
	flag.Parse()

	if *runID == "" {
		log.Fatal("-run is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	a, err := app.Bootstrap(ctx)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	defer a.Close()

	report, err := a.Query.GetRun(ctx, *runID)
	if err != nil {
		a.Log.Error("get run", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			log.Fatalf("encode report: %v", err)
		}
		return
	}

	fmt.Printf("run:     %s\n", report.RunID)
	fmt.Printf("corpus:  %s\n", report.CorpusID)
	fmt.Printf("input:   %s\n", report.InputText)
	fmt.Printf("surface: %s\n", report.Surface)
	fmt.Printf("reading: %s\n", report.Reading)
	for _, mt := range domain.AllMatchTypes() {
		if n := report.Stats[mt]; n > 0 {
			fmt.Printf("  %-16s %d\n", mt, n)
		}
	}

	if *verbose {
		for _, step := range report.Steps {
			fmt.Printf("[%d] %s (%s) -> %s", step.Index, step.InputSurface, step.InputReading, step.Type)
			if step.SimilarWord != "" {
				fmt.Printf(" via %q (%.2f)", step.SimilarWord, step.SimilarityScore)
			}
			fmt.Println()
			for _, ref := range step.MatchedTokens {
				fmt.Printf("      %s %s (%s)\n", ref.ID, ref.Surface, ref.Reading)
			}
		}
	}
}
