package main

import (
	"context"
	"flag"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/joseph-ayodele/blind-rankings/internal/async"
	"github.com/joseph-ayodele/blind-rankings/internal/common"
	"github.com/joseph-ayodele/blind-rankings/internal/core"
	"github.com/joseph-ayodele/blind-rankings/internal/entity"
	"github.com/joseph-ayodele/blind-rankings/internal/export"
	"github.com/joseph-ayodele/blind-rankings/internal/ingest"
	"github.com/joseph-ayodele/blind-rankings/internal/server"
)

func main() {
	var (
		watchDir = flag.String("watch", "", "rank the daily reports dropped in this directory, rebuilding on change")
		write    = flag.Bool("write", false, "write the report outputs to OUTPUT_DIR after every build")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	proc, closeFn, err := core.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to wire processor", "error", err)
		os.Exit(1)
	}
	defer closeFn()

	exporter := export.NewService(logger)
	build := func(ctx context.Context) (*entity.Report, error) {
		ctx, _ = common.NewRun(ctx)
		var (
			report *entity.Report
			err    error
		)
		if *watchDir != "" {
			report, err = proc.RunDirectory(ctx, *watchDir)
		} else {
			report, err = proc.Run(ctx)
		}
		if err != nil {
			return nil, err
		}
		if *write {
			if _, err := exporter.WriteAll(ctx, report, cfg.Output.Dir); err != nil {
				logger.Warn("export failed", "error", err)
			}
		}
		return report, nil
	}

	svc := server.NewRankingsService(build, logger)
	gs, hs := server.NewGRPCServer(svc, logger)

	if *watchDir != "" {
		events, errs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
			Roots:    []string{*watchDir},
			Debounce: 2 * time.Second,
		}, logger)
		if err != nil {
			logger.Error("failed to start watcher", "dir", *watchDir, "error", err)
			os.Exit(1)
		}
		queue := async.NewRebuildQueue(svc, logger)
		defer queue.Shutdown(context.Background())
		go func() {
			for {
				select {
				case path, ok := <-events:
					if !ok {
						return
					}
					logger.Info("daily report changed", "path", path)
					queue.Enqueue(ctx, async.Job{Path: path})
				case err, ok := <-errs:
					if !ok {
						return
					}
					logger.Warn("watcher error", "error", err)
				}
			}
		}()
	}

	lis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
	if err != nil {
		logger.Error("listen failed", "addr", cfg.Server.GRPCAddr, "error", err)
		os.Exit(1)
	}
	logger.Info("gRPC serving", "addr", lis.Addr().String(), "service", server.ServiceName)

	go func() {
		if err := gs.Serve(lis); err != nil {
			logger.Error("grpc serve failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	gs.GracefulStop()
}
