// Package eval scores reconstruction quality: every evaluation sentence
// is matched against a corpus, the reconstructed reading is compared to
// the reference reading, and the scores are aggregated into a report.
package eval

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/heartmarshall/lyrictalk-backend/internal/adapter/similarity/levenshtein"
	"github.com/heartmarshall/lyrictalk-backend/internal/config"
	"github.com/heartmarshall/lyrictalk-backend/internal/domain"
	"github.com/heartmarshall/lyrictalk-backend/internal/eval/ita"
	"github.com/heartmarshall/lyrictalk-backend/internal/service/match"
	"github.com/heartmarshall/lyrictalk-backend/internal/service/query"
)

type matchRunner interface {
	Run(ctx context.Context, in match.RunInput) (*match.RunResult, error)
}

type runReader interface {
	GetRun(ctx context.Context, runID string) (*query.RunReport, error)
}

// SentenceScore is the evaluation outcome for one sentence.
type SentenceScore struct {
	SentenceID    string  `json:"sentence_id"`
	RunID         string  `json:"run_id"`
	Reference     string  `json:"reference_reading"`
	Reconstructed string  `json:"reconstructed_reading"`
	Score         float64 `json:"score"`
}

// Report aggregates one evaluation over one corpus.
type Report struct {
	CorpusID   string                   `json:"corpus_id"`
	CreatedAt  time.Time                `json:"created_at"`
	Sentences  []SentenceScore          `json:"sentences"`
	MeanScore  float64                  `json:"mean_score"`
	MinScore   float64                  `json:"min_score"`
	MaxScore   float64                  `json:"max_score"`
	TypeTotals map[domain.MatchType]int `json:"type_totals"`
}

// Pipeline runs sentence evaluations through the match and query
// services with a bounded worker pool.
type Pipeline struct {
	matcher matchRunner
	reader  runReader
	cfg     config.EvalConfig
	log     *slog.Logger
}

// NewPipeline creates an evaluation pipeline.
func NewPipeline(log *slog.Logger, matcher matchRunner, reader runReader, cfg config.EvalConfig) *Pipeline {
	return &Pipeline{
		matcher: matcher,
		reader:  reader,
		cfg:     cfg,
		log:     log.With(slog.String("component", "eval")),
	}
}

// Evaluate matches every sentence against the corpus and scores the
// reconstructed reading with normalized edit similarity. Sentences are
// processed by cfg.Workers goroutines; the report lists them in input
// order regardless of completion order. The first failure cancels the
// remaining work.
func (p *Pipeline) Evaluate(ctx context.Context, corpusID string, sentences []ita.Sentence) (*Report, error) {
	if len(sentences) == 0 {
		return nil, domain.NewValidationError("sentences", "empty evaluation set")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type job struct {
		idx int
		s   ita.Sentence
	}
	jobs := make(chan job)
	scores := make([]SentenceScore, len(sentences))
	errs := make(chan error, p.cfg.Workers)

	var wg sync.WaitGroup
	for w := 0; w < p.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				score, err := p.evaluateOne(ctx, corpusID, j.s)
				if err != nil {
					select {
					case errs <- fmt.Errorf("sentence %s: %w", j.s.ID, err):
					default:
					}
					cancel()
					return
				}
				scores[j.idx] = score
			}
		}()
	}

	for i, s := range sentences {
		select {
		case jobs <- job{idx: i, s: s}:
		case <-ctx.Done():
		}
	}
	close(jobs)
	wg.Wait()

	select {
	case err := <-errs:
		return nil, err
	default:
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &Report{
		CorpusID:   corpusID,
		CreatedAt:  time.Now().UTC(),
		Sentences:  scores,
		TypeTotals: make(map[domain.MatchType]int, len(domain.AllMatchTypes())),
	}
	for _, mt := range domain.AllMatchTypes() {
		report.TypeTotals[mt] = 0
	}
	p.aggregate(ctx, report)

	return report, nil
}

func (p *Pipeline) evaluateOne(ctx context.Context, corpusID string, s ita.Sentence) (SentenceScore, error) {
	res, err := p.matcher.Run(ctx, match.RunInput{CorpusID: corpusID, Text: s.Text})
	if err != nil {
		return SentenceScore{}, fmt.Errorf("match: %w", err)
	}
	report, err := p.reader.GetRun(ctx, res.RunID)
	if err != nil {
		return SentenceScore{}, fmt.Errorf("read run: %w", err)
	}

	reference := domain.NormalizeReading(s.Reading)
	return SentenceScore{
		SentenceID:    s.ID,
		RunID:         res.RunID,
		Reference:     reference,
		Reconstructed: report.Reading,
		Score:         levenshtein.Similarity(reference, report.Reading),
	}, nil
}

func (p *Pipeline) aggregate(ctx context.Context, r *Report) {
	r.MinScore = 1
	var sum float64
	for _, s := range r.Sentences {
		sum += s.Score
		if s.Score < r.MinScore {
			r.MinScore = s.Score
		}
		if s.Score > r.MaxScore {
			r.MaxScore = s.Score
		}
	}
	r.MeanScore = sum / float64(len(r.Sentences))

	// Re-read each run's stats for the type totals.
	for _, s := range r.Sentences {
		report, err := p.reader.GetRun(ctx, s.RunID)
		if err != nil {
			p.log.WarnContext(ctx, "skip stats for run",
				slog.String("run_id", s.RunID), slog.String("error", err.Error()))
			continue
		}
		for mt, n := range report.Stats {
			r.TypeTotals[mt] += n
		}
	}
}

// WriteReport stores the report as JSON under cfg.OutputDir and returns
// the file path.
func (p *Pipeline) WriteReport(r *Report) (string, error) {
	if err := os.MkdirAll(p.cfg.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	name := fmt.Sprintf("eval_%s_%s.json", r.CorpusID, r.CreatedAt.Format("20060102T150405"))
	path := filepath.Join(p.cfg.OutputDir, name)

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	return path, nil
}

// WorstSentences returns the n lowest-scoring sentences, ascending.
func (r *Report) WorstSentences(n int) []SentenceScore {
	sorted := make([]SentenceScore, len(r.Sentences))
	copy(sorted, r.Sentences)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score < sorted[j].Score })
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}
