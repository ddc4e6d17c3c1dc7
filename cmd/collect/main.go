// Command collect fetches a lyrics page, strips furigana markup,
// extracts the main text and either prints it or registers it as a
// corpus straight away.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/go-shiori/go-readability"

	"github.com/heartmarshall/lyrictalk-backend/internal/app"
	"github.com/heartmarshall/lyrictalk-backend/internal/service/lyrics"
)

// corpusFile is the JSON document collect writes and "register -dir"
// ingests.
type corpusFile struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	URL    string `json:"url"`
	Lyrics string `json:"lyrics"`
}

// maxBodySize caps the fetched HTML; lyrics pages are small and an
// oversized response is a broken target, not a bigger song.
const maxBodySize = 10 * 1024 * 1024

func main() {
	var (
		pageURL  = flag.String("url", "", "lyrics page URL (required)")
		out      = flag.String("out", "", "write a corpus JSON file (for register -dir) instead of stdout")
		register = flag.Bool("register", false, "register the extracted text as a corpus")
		artist   = flag.String("artist", "", "artist for -register")
	)
	flag.Parse()

	if *pageURL == "" {
		log.Fatal("-url is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	title, text, err := collect(ctx, *pageURL)
	if err != nil {
		log.Fatalf("collect: %v", err)
	}

	switch {
	case *register:
		a, err := app.Bootstrap(ctx)
		if err != nil {
			log.Fatalf("bootstrap: %v", err)
		}
		defer a.Close()

		in := lyrics.RegisterCorpusInput{Text: text}
		if title != "" {
			in.Title = &title
		}
		if *artist != "" {
			in.Artist = artist
		}
		res, err := a.Lyrics.RegisterCorpus(ctx, in)
		if err != nil {
			a.Log.Error("register corpus", slog.String("error", err.Error()))
			os.Exit(1)
		}
		fmt.Printf("registered: %s (%d tokens)\n", res.CorpusID, res.TokenCount)

	case *out != "":
		doc := corpusFile{Title: title, Artist: *artist, URL: *pageURL, Lyrics: text}
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			log.Fatalf("marshal corpus file: %v", err)
		}
		if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
			log.Fatalf("create output dir: %v", err)
		}
		if err := os.WriteFile(*out, data, 0o644); err != nil {
			log.Fatalf("write output: %v", err)
		}
		fmt.Printf("wrote %s (%d bytes of lyrics)\n", *out, len(text))

	default:
		fmt.Println(text)
	}
}

// collect fetches the page and extracts its readable text.
func collect(ctx context.Context, pageURL string) (title, text string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept-Language", "ja,en;q=0.8")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("fetch page: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", "", fmt.Errorf("read body: %w", err)
	}
	if len(body) >= maxBodySize {
		return "", "", fmt.Errorf("page exceeds %d bytes", maxBodySize)
	}

	body = stripRuby(body)

	parsed, err := url.Parse(pageURL)
	if err != nil {
		return "", "", fmt.Errorf("parse url: %w", err)
	}
	article, err := readability.FromReader(bytes.NewReader(body), parsed)
	if err != nil {
		return "", "", fmt.Errorf("extract article: %w", err)
	}

	return article.Title, article.TextContent, nil
}
