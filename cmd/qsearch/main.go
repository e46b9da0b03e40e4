package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/qdna-labs/quantum-pattern-search/internal/search"
	"github.com/qdna-labs/quantum-pattern-search/internal/sequence"
	"github.com/qdna-labs/quantum-pattern-search/pkg/config"
	apperrors "github.com/qdna-labs/quantum-pattern-search/pkg/errors"
	"github.com/qdna-labs/quantum-pattern-search/pkg/logger"
	"github.com/qdna-labs/quantum-pattern-search/pkg/metrics"
)

const barWidth = 40

func main() {
	configPath := flag.String("config", "", "path to config file")
	text := flag.String("text", "", "text to search (in-memory sequence)")
	textFile := flag.String("text-file", "", "file containing the text sequence")
	pattern := flag.String("pattern", "", "pattern to search for")
	trials := flag.Int("trials", 0, "override quantum.trials")
	seed := flag.Int64("seed", 0, "override quantum.seed")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *trials > 0 {
		cfg.Quantum.Trials = *trials
	}
	if *seed != 0 {
		cfg.Quantum.Seed = *seed
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)

	searchText := *text
	if *textFile != "" {
		data, err := os.ReadFile(*textFile)
		if err != nil {
			slog.Error("failed to read text file", "path", *textFile, "error", err)
			os.Exit(1)
		}
		searchText = strings.ToUpper(strings.TrimSpace(string(data)))
	}
	if searchText == "" || *pattern == "" {
		fmt.Fprintln(os.Stderr, "usage: qsearch --text ACGTACGT --pattern ACGT [--config file]")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("starting search",
		"text_length", len(searchText),
		"pattern", *pattern,
		"gc_content", sequence.GCContent(searchText),
		"trials", cfg.Quantum.Trials,
		"seed", cfg.Quantum.Seed,
	)

	searcher, err := search.New(cfg)
	if err != nil {
		slog.Error("failed to build searcher", "error", err)
		os.Exit(apperrors.ExitCode(err))
	}

	result, err := searcher.Search(ctx, searchText, *pattern)
	if result == nil {
		slog.Error("search failed", "error", err)
		os.Exit(apperrors.ExitCode(err))
	}
	printResult(result)
	if err != nil {
		slog.Warn("search completed with degraded confidence", "error", err)
	}

	if cfg.Metrics.Enabled {
		dump, dumpErr := metrics.Dump()
		if dumpErr != nil {
			slog.Error("failed to gather metrics", "error", dumpErr)
		} else {
			fmt.Println("\n--- operation counters ---")
			fmt.Print(dump)
		}
	}
	os.Exit(apperrors.ExitCode(err))
}

func printResult(result *search.Result) {
	fmt.Printf("classical positions: %v\n", result.ClassicalPositions)
	if result.NoMatch {
		fmt.Println("quantum engine: no match found (marked set empty, amplification skipped)")
		return
	}
	q := result.Quantum
	fmt.Printf("quantum best position: %d (confidence %.4f, theoretical %.4f, %d iterations, %d trials)\n",
		q.BestPosition, q.Confidence, q.Theoretical, q.Iterations, q.Trials)
	fmt.Printf("agreement with classical matcher: %v\n", result.Agreement)
	fmt.Println("amplified distribution:")
	for pos, p := range q.Distribution {
		fmt.Printf("  %4d  %6.4f  %s\n", pos, p, strings.Repeat("#", int(p*barWidth)))
	}
}
