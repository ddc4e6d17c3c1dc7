// Command corpora lists, inspects and deletes registered corpora.
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
)

func main() {
	var (
		search   = flag.String("search", "", "filter the listing by title substring")
		limit    = flag.Int("limit", 20, "maximum corpora to list")
		get      = flag.String("get", "", "show a single corpus by id")
		deleteID = flag.String("delete", "", "delete a corpus and its tokens by id")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	a, err := app.Bootstrap(ctx)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	defer a.Close()

	switch {
	case *deleteID != "":
		if err := a.Lyrics.DeleteCorpus(ctx, *deleteID); err != nil {
			a.Log.Error("delete corpus", slog.String("error", err.Error()))
			os.Exit(1)
		}
		fmt.Printf("deleted: %s\n", *deleteID)

	case *get != "":
		c, count, err := a.Lyrics.GetCorpus(ctx, *get)
		if err != nil {
			a.Log.Error("get corpus", slog.String("error", err.Error()))
			os.Exit(1)
		}
		fmt.Printf("id:      %s\n", c.ID)
		fmt.Printf("title:   %s\n", strOrDash(c.Title))
		fmt.Printf("artist:  %s\n", strOrDash(c.Artist))
		fmt.Printf("tokens:  %d\n", count)
		fmt.Printf("created: %s\n", c.CreatedAt.Format(time.RFC3339))

	default:
		f := domain.CorpusFilter{TitleSearch: *search, Limit: *limit}
		summaries, err := a.Lyrics.ListCorpora(ctx, f)
		if err != nil {
			a.Log.Error("list corpora", slog.String("error", err.Error()))
			os.Exit(1)
		}
		for _, s := range summaries {
			fmt.Printf("%s  %-20s %4d tokens  %s\n",
				s.ID, strOrDash(s.Title), s.TokenCount, s.Preview)
		}
	}
}

func strOrDash(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
