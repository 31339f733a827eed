package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joseph-ayodele/blind-rankings/internal/common"
	"github.com/joseph-ayodele/blind-rankings/internal/core"
	"github.com/joseph-ayodele/blind-rankings/internal/entity"
	"github.com/joseph-ayodele/blind-rankings/internal/export"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		dir       = flag.String("dir", "", "build from daily reports saved in this directory instead of downloading")
		out       = flag.String("out", "", "output directory (defaults to OUTPUT_DIR)")
		days      = flag.Int("days", 0, "number of latest daily reports to rank (defaults to HARVEST_WINDOW_DAYS)")
		noWeather = flag.Bool("no-weather", false, "skip weather enrichment")
		verbose   = flag.Bool("v", false, "debug logging")
		timeout   = flag.Duration("timeout", 5*time.Minute, "overall run timeout")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if *out != "" {
		cfg.Output.Dir = *out
	}
	if *days > 0 {
		cfg.Source.WindowDays = *days
	}
	if *noWeather {
		cfg.Weather.Enabled = false
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := common.WithTimeout(ctx, *timeout)
	defer cancel()
	ctx, runID := common.NewRun(ctx)

	proc, closeFn, err := core.New(ctx, cfg, logger)
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}
	defer closeFn()

	var report *entity.Report
	if *dir != "" {
		report, err = proc.RunDirectory(ctx, *dir)
	} else {
		report, err = proc.Run(ctx)
	}
	if err != nil {
		logger.Error("run failed", "run_id", runID, "error", err)
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	paths, err := export.NewService(logger).WriteAll(ctx, report, cfg.Output.Dir)
	if err != nil {
		logger.Error("export failed", "run_id", runID, "error", err)
		printError("Error: %v\n", err)
		os.Exit(1)
	}
	for _, p := range paths {
		fmt.Println(p)
	}
}
