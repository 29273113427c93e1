// Package runner drives one batch analysis: it walks the source directory,
// parses each transcript, runs the analyzer, folds results into the
// aggregator, and renders the outputs.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/suporteware/chatminer/internal/aggregate"
	"github.com/suporteware/chatminer/internal/analyze"
	"github.com/suporteware/chatminer/internal/report"
	"github.com/suporteware/chatminer/internal/taxonomy"
	"github.com/suporteware/chatminer/internal/transcript"
)

// Sink receives each conversation's full result after analysis. The Postgres
// store implements this; a nil sink means no datastore export.
type Sink interface {
	WriteResult(ctx context.Context, res analyze.Result) error
}

// Config holds one run's inputs and outputs.
type Config struct {
	SourceDir    string
	KBPath       string // knowledge-base markdown; empty disables
	RefundPath   string // refund-analysis markdown; empty disables
	TrainingPath string // training-data JSON; empty disables
	DryRun       bool   // analyze and summarize without writing anything
}

// Summary is the final accounting of one run.
type Summary struct {
	Files     int
	Processed int
	Skipped   int
	Report    *aggregate.Report
}

// Runner wires the engine together for one batch.
type Runner struct {
	cfg    Config
	tax    *taxonomy.Taxonomy
	an     *analyze.Analyzer
	agg    *aggregate.Aggregator
	sink   Sink
	logger *slog.Logger
}

func New(cfg Config, tax *taxonomy.Taxonomy, an *analyze.Analyzer, agg *aggregate.Aggregator, sink Sink, logger *slog.Logger) *Runner {
	return &Runner{cfg: cfg, tax: tax, an: an, agg: agg, sink: sink, logger: logger}
}

// Run executes the batch. A missing source directory fails before any
// processing; individual bad files are skipped and counted.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	files, err := r.discoverFiles()
	if err != nil {
		return nil, err
	}
	r.logger.Info("transcripts discovered", "dir", r.cfg.SourceDir, "files", len(files))

	sum := &Summary{Files: len(files)}

	for _, path := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		conv, err := transcript.ParseFile(path)
		if err != nil {
			var fe *transcript.FormatError
			switch {
			case errors.As(err, &fe):
				r.logger.Warn("skipping unreadable transcript", "path", path, "error", err)
			case errors.Is(err, transcript.ErrEmptyConversation):
				r.logger.Warn("skipping empty conversation", "path", path)
			default:
				r.logger.Warn("skipping transcript", "path", path, "error", err)
			}
			sum.Skipped++
			continue
		}

		res := r.an.Analyze(conv)
		r.agg.Add(res)
		sum.Processed++

		if r.sink != nil && !r.cfg.DryRun {
			if err := r.sink.WriteResult(ctx, res); err != nil {
				// The aggregate already holds this conversation; only the
				// datastore copy failed.
				r.logger.Error("datastore write failed", "path", path, "error", err)
			}
		}

		r.logger.Debug("conversation analyzed",
			"path", path,
			"issues", len(res.Issues),
			"refund", res.Refund != nil,
		)
	}

	sum.Report = r.agg.Finalize()

	if !r.cfg.DryRun {
		if err := r.writeOutputs(sum.Report); err != nil {
			return nil, err
		}
	}

	r.logger.Info("run complete",
		"files", sum.Files,
		"processed", sum.Processed,
		"skipped", sum.Skipped,
		"issues", sum.Report.TotalIssues,
		"refund_cases", sum.Report.RefundCases,
	)
	return sum, nil
}

// discoverFiles lists the *.json transcripts directly under the source
// directory, sorted by name so exemplar insertion order is deterministic run
// to run. Subdirectories are not descended into; exports put every transcript
// at the top level and nested strays must not skew the aggregates.
func (r *Runner) discoverFiles() ([]string, error) {
	info, err := os.Stat(r.cfg.SourceDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("source directory not found: %s", r.cfg.SourceDir)
	}

	entries, err := os.ReadDir(r.cfg.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("read source directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		files = append(files, filepath.Join(r.cfg.SourceDir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func (r *Runner) writeOutputs(rep *aggregate.Report) error {
	now := time.Now()

	if r.cfg.KBPath != "" {
		doc := report.KnowledgeBase(rep, r.tax, now)
		if err := os.WriteFile(r.cfg.KBPath, []byte(doc), 0o644); err != nil {
			return fmt.Errorf("write knowledge base: %w", err)
		}
		r.logger.Info("knowledge base written", "path", r.cfg.KBPath)
	}

	if r.cfg.RefundPath != "" {
		doc := report.RefundAnalysis(rep, now)
		if err := os.WriteFile(r.cfg.RefundPath, []byte(doc), 0o644); err != nil {
			return fmt.Errorf("write refund analysis: %w", err)
		}
		r.logger.Info("refund analysis written", "path", r.cfg.RefundPath)
	}

	if r.cfg.TrainingPath != "" {
		data, err := report.TrainingJSON(rep)
		if err != nil {
			return err
		}
		if err := os.WriteFile(r.cfg.TrainingPath, data, 0o644); err != nil {
			return fmt.Errorf("write training data: %w", err)
		}
		r.logger.Info("training data written", "path", r.cfg.TrainingPath)
	}

	return nil
}
