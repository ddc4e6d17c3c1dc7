// Command evaluate scores reconstruction quality for one corpus over
// the ITA sentence set and writes a JSON report.
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
	"github.com/heartmarshall/lyrictalk-backend/internal/eval/ita"
)

func main() {
	var (
		corpusID   = flag.String("corpus", "", "corpus id to evaluate (required)")
		corpusFile = flag.String("sentences", "", "ITA corpus file (defaults to configuration)")
		worst      = flag.Int("worst", 5, "print the n lowest-scoring sentences")
	)
	flag.Parse()

	if *corpusID == "" {
		log.Fatal("-corpus is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	a, err := app.Bootstrap(ctx)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	defer a.Close()

	file := *corpusFile
	if file == "" {
		file = a.Cfg.Eval.CorpusFile
	}
	sentences, err := ita.ParseFile(file)
	if err != nil {
		a.Log.Error("parse sentences", slog.String("error", err.Error()))
		os.Exit(1)
	}

	report, err := a.Eval.Evaluate(ctx, *corpusID, sentences)
	if err != nil {
		a.Log.Error("evaluate", slog.String("error", err.Error()))
		os.Exit(1)
	}

	path, err := a.Eval.WriteReport(report)
	if err != nil {
		a.Log.Error("write report", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Printf("sentences: %d\n", len(report.Sentences))
	fmt.Printf("mean:      %.4f\n", report.MeanScore)
	fmt.Printf("min/max:   %.4f / %.4f\n", report.MinScore, report.MaxScore)
	fmt.Printf("report:    %s\n", path)

	if *worst > 0 {
		fmt.Println("worst sentences:")
		for _, s := range report.WorstSentences(*worst) {
			fmt.Printf("  %.4f  %s\n", s.Score, s.SentenceID)
		}
	}
}
