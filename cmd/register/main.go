// Command register tokenizes lyrics and stores them as corpora, from
// an inline text, a plain text file, or a directory of corpus JSON
// files produced by the collect command. Re-registering identical text
// resolves to the existing corpus.
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
	"path/filepath"
	"time"

	"github.com/heartmarshall/lyrictalk-backend/internal/app"
	"github.com/heartmarshall/lyrictalk-backend/internal/service/lyrics"
)

// corpusFile mirrors the JSON document the collect command writes.
type corpusFile struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	URL    string `json:"url"`
	Lyrics string `json:"lyrics"`
}

func main() {
	var (
		file   = flag.String("file", "", "path to a lyrics text file")
		text   = flag.String("text", "", "lyrics text given inline (overrides -file)")
		dir    = flag.String("dir", "", "directory of corpus JSON files to ingest")
		title  = flag.String("title", "", "corpus title")
		artist = flag.String("artist", "", "corpus artist")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	a, err := app.Bootstrap(ctx)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	defer a.Close()

	if *dir != "" {
		if err := registerDir(ctx, a, *dir); err != nil {
			a.Log.Error("register directory", slog.String("error", err.Error()))
			os.Exit(1)
		}
		return
	}

	lyricsText := *text
	if lyricsText == "" && *file != "" {
		data, err := os.ReadFile(*file)
		if err != nil {
			log.Fatalf("read lyrics file: %v", err)
		}
		lyricsText = string(data)
	}
	if lyricsText == "" {
		log.Fatal("one of -file, -text or -dir is required")
	}

	in := lyrics.RegisterCorpusInput{Text: lyricsText}
	if *title != "" {
		in.Title = title
	}
	if *artist != "" {
		in.Artist = artist
	}

	res, err := a.Lyrics.RegisterCorpus(ctx, in)
	if err != nil {
		a.Log.Error("register corpus", slog.String("error", err.Error()))
		os.Exit(1)
	}
	printResult(res)
}

// registerDir ingests every *.json corpus file in dir. A malformed
// file is reported and skipped; the rest of the batch proceeds.
func registerDir(ctx context.Context, a *app.App, dir string) error {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return fmt.Errorf("glob %s: %w", dir, err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no corpus files in %s", dir)
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			a.Log.Warn("skip corpus file", slog.String("path", path), slog.String("error", err.Error()))
			continue
		}
		var doc corpusFile
		if err := json.Unmarshal(data, &doc); err != nil {
			a.Log.Warn("skip malformed corpus file", slog.String("path", path), slog.String("error", err.Error()))
			continue
		}

		in := lyrics.RegisterCorpusInput{Text: doc.Lyrics}
		if doc.Title != "" {
			in.Title = &doc.Title
		}
		if doc.Artist != "" {
			in.Artist = &doc.Artist
		}

		res, err := a.Lyrics.RegisterCorpus(ctx, in)
		if err != nil {
			a.Log.Warn("skip corpus file", slog.String("path", path), slog.String("error", err.Error()))
			continue
		}
		fmt.Printf("%s: ", filepath.Base(path))
		printResult(res)
	}
	return nil
}

func printResult(res *lyrics.RegisterResult) {
	if res.AlreadyRegistered {
		fmt.Printf("already registered: %s (%d tokens)\n", res.CorpusID, res.TokenCount)
		return
	}
	fmt.Printf("registered: %s (%d tokens)\n", res.CorpusID, res.TokenCount)
}
