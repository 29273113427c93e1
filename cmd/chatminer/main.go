package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/suporteware/chatminer/internal/aggregate"
	"github.com/suporteware/chatminer/internal/analyze"
	"github.com/suporteware/chatminer/internal/api"
	"github.com/suporteware/chatminer/internal/config"
	"github.com/suporteware/chatminer/internal/events"
	"github.com/suporteware/chatminer/internal/runner"
	"github.com/suporteware/chatminer/internal/store"
	"github.com/suporteware/chatminer/internal/taxonomy"
)

func main() {
	var (
		srcDir       = flag.String("src", "", "directory of transcript JSON files (required)")
		kbPath       = flag.String("kb", "customer_support_knowledge_base.md", "knowledge base output path (empty to disable)")
		refundPath   = flag.String("refund", "refund_analysis_knowledge_base.md", "refund analysis output path (empty to disable)")
		trainingPath = flag.String("training", "knowledge_base_training_data.json", "training data JSON output path (empty to disable)")
		taxonomyPath = flag.String("taxonomy", "", "taxonomy YAML file (built-in default when empty)")
		dryRun       = flag.Bool("dry-run", false, "analyze without writing outputs or datastore rows")
		serve        = flag.Bool("serve", false, "serve the finished report over HTTP after the batch")
	)
	flag.Parse()

	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	if *srcDir == "" {
		fmt.Fprintln(os.Stderr, "error: -src is required")
		flag.Usage()
		os.Exit(2)
	}

	tax, err := taxonomy.Load(*taxonomyPath)
	if err != nil {
		slog.Error("failed to load taxonomy", "path", *taxonomyPath, "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	an := analyze.New(tax, analyze.Options{
		ResolutionWindow: cfg.ResolutionWindow,
		RetentionWindow:  cfg.RetentionWindow,
		MinIssueLen:      cfg.MinIssueLen,
	})
	agg := aggregate.New(aggregate.Options{
		ResolvedExemplars:   cfg.ResolvedExemplars,
		UnresolvedExemplars: cfg.UnresolvedExemplars,
		ComplaintExemplars:  cfg.ComplaintExemplars,
		MinStrategyUses:     cfg.MinStrategyUses,
		MinTransitionCases:  cfg.MinTransitionCases,
	})

	// Datastore export is optional; the batch works without it.
	var sink runner.Sink
	if cfg.DatabaseURL != "" {
		db, err := store.New(ctx, cfg.DatabaseURL, tax)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		slog.Info("database connected")
		sink = db
	}

	run := runner.New(runner.Config{
		SourceDir:    *srcDir,
		KBPath:       *kbPath,
		RefundPath:   *refundPath,
		TrainingPath: *trainingPath,
		DryRun:       *dryRun,
	}, tax, an, agg, sink, slog.Default())

	sum, err := run.Run(ctx)
	if err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}

	printSummary(sum, *dryRun)

	if cfg.NatsURL != "" && !*dryRun {
		publishRunEvent(cfg, sum)
	}

	if *serve {
		srv := api.NewServer(cfg.Port, sum.Report)
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}
}

func printSummary(sum *runner.Summary, dryRun bool) {
	rep := sum.Report
	fmt.Printf("\n=== Analysis Summary ===\n")
	fmt.Printf("Files found: %d\n", sum.Files)
	fmt.Printf("Processed: %d\n", sum.Processed)
	fmt.Printf("Skipped: %d\n", sum.Skipped)
	fmt.Printf("Issues: %d (%d resolved, %.1f%%)\n", rep.TotalIssues, rep.TotalResolved, rep.OverallRate*100)
	fmt.Printf("Refund cases: %d (%d retained, %.1f%%)\n", rep.RefundCases, rep.RefundRetained, rep.OverallRetentionRate*100)
	if dryRun {
		fmt.Printf("Mode: DRY RUN (no files or DB writes)\n")
	}
}

func publishRunEvent(cfg config.Config, sum *runner.Summary) {
	pub, err := events.NewPublisher(cfg.NatsURL, cfg.NatsToken, slog.Default())
	if err != nil {
		slog.Warn("failed to connect to NATS, skipping run event", "error", err)
		return
	}
	defer pub.Close()

	evt := events.RunCompleted{
		RunID:         uuid.New().String(),
		Files:         sum.Files,
		Processed:     sum.Processed,
		Skipped:       sum.Skipped,
		TotalIssues:   sum.Report.TotalIssues,
		TotalResolved: sum.Report.TotalResolved,
		OverallRate:   sum.Report.OverallRate,
		RefundCases:   sum.Report.RefundCases,
		RetentionRate: sum.Report.OverallRetentionRate,
	}
	if err := pub.PublishRunCompleted(evt); err != nil {
		slog.Warn("failed to publish run event", "error", err)
	}
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
