// Command match runs an input text against a registered corpus and
// persists the outcome as a match run.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/lyrictalk-backend/internal/app"
	"github.com/heartmarshall/lyrictalk-backend/internal/domain"
	"github.com/heartmarshall/lyrictalk-backend/internal/service/match"
)

func main() {
	var (
		corpusID = flag.String("corpus", "", "corpus id to match against (required)")
		text     = flag.String("text", "", "input text given inline")
		file     = flag.String("file", "", "path to an input text file")
	)
	flag.Parse()

	if *corpusID == "" {
		log.Fatal("-corpus is required")
	}

	inputText := *text
	if inputText == "" && *file != "" {
		data, err := os.ReadFile(*file)
		if err != nil {
			log.Fatalf("read input file: %v", err)
		}
		inputText = string(data)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	a, err := app.Bootstrap(ctx)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	defer a.Close()

	res, err := a.Match.Run(ctx, match.RunInput{CorpusID: *corpusID, Text: inputText})
	if err != nil {
		a.Log.Error("match run", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Printf("run: %s (%d results)\n", res.RunID, res.ResultCount)
	for _, mt := range domain.AllMatchTypes() {
		if n := res.Stats[mt]; n > 0 {
			fmt.Printf("  %-16s %d\n", mt, n)
		}
	}
}
