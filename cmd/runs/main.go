// Command runs lists and deletes stored match runs.
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
)

func main() {
	var (
		limit    = flag.Int("limit", 20, "maximum runs to list")
		deleteID = flag.String("delete", "", "delete a run and its results by id")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	a, err := app.Bootstrap(ctx)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	defer a.Close()

	if *deleteID != "" {
		if err := a.Query.DeleteRun(ctx, *deleteID); err != nil {
			a.Log.Error("delete run", slog.String("error", err.Error()))
			os.Exit(1)
		}
		fmt.Printf("deleted: %s\n", *deleteID)
		return
	}

	summaries, err := a.Query.ListRuns(ctx, *limit)
	if err != nil {
		a.Log.Error("list runs", slog.String("error", err.Error()))
		os.Exit(1)
	}
	for _, s := range summaries {
		input := s.InputText
		if len([]rune(input)) > 30 {
			input = string([]rune(input)[:30]) + "…"
		}
		fmt.Printf("%s  %s  %3d results  %s\n",
			s.ID, s.CorpusID, s.ResultCount, input)
	}
}
