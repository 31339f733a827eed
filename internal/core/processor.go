package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/blind-rankings/internal/common"
	"github.com/joseph-ayodele/blind-rankings/internal/entity"
	"github.com/joseph-ayodele/blind-rankings/internal/ingest"
)

// DocumentSource yields the newest n daily reports.
type DocumentSource interface {
	Latest(ctx context.Context, n int) ([]entity.SourceDocument, error)
}

// ReportBuilder parses and ranks a set of daily reports.
type ReportBuilder interface {
	Build(ctx context.Context, docs []entity.SourceDocument) (*entity.Report, error)
}

// Enricher decorates a finished report. It must not fail the run.
type Enricher interface {
	Enrich(ctx context.Context, report *entity.Report)
}

// Processor coordinates download, parsing, ranking and weather enrichment.
type Processor struct {
	logger  *slog.Logger
	source  DocumentSource
	builder ReportBuilder
	weather Enricher
	window  int
}

// NewProcessor wires the stages. weather may be nil to skip enrichment.
func NewProcessor(
	logger *slog.Logger,
	source DocumentSource,
	builder ReportBuilder,
	weather Enricher,
	window int,
) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if window <= 0 {
		window = 3
	}
	return &Processor{
		logger:  logger,
		source:  source,
		builder: builder,
		weather: weather,
		window:  window,
	}
}

// Run builds the report over the newest daily reports published.
func (p *Processor) Run(ctx context.Context) (*entity.Report, error) {
	ctx, runID := ensureRun(ctx)
	start := time.Now()

	docs, err := p.source.Latest(ctx, p.window)
	if err != nil {
		p.logger.Error("processor.fetch.failed", "run_id", runID, "error", err)
		return nil, err
	}
	p.logger.Info("processor.fetch.ok", "run_id", runID, "documents", len(docs), "requested", p.window)

	report, err := p.RunDocuments(ctx, docs, fmt.Sprintf("latest %d daily harvest reports from ODFW", len(docs)))
	if err != nil {
		return nil, err
	}
	p.logger.Info("processor.run.ok", "run_id", runID, "elapsed_ms", time.Since(start).Milliseconds())
	return report, nil
}

// RunDirectory builds the report from the newest window of daily reports saved
// under root.
func (p *Processor) RunDirectory(ctx context.Context, root string) (*entity.Report, error) {
	ctx, runID := ensureRun(ctx)

	docs, results, stats, err := ingest.LoadDirectory(ctx, root, true, p.logger)
	if err != nil {
		return nil, err
	}
	for _, r := range results {
		if r.Err != "" {
			p.logger.Warn("processor.load.skipped", "run_id", runID, "path", r.Path, "error", r.Err)
		}
	}
	p.logger.Info("processor.load.ok", "run_id", runID, "root", root,
		"scanned", stats.Scanned, "loaded", len(docs), "failed", stats.Failed)
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: no daily reports under %s", common.ErrNoDocuments, root)
	}
	if len(docs) > p.window {
		p.logger.Info("processor.load.windowed", "run_id", runID, "kept", p.window, "dropped", len(docs)-p.window)
		docs = docs[:p.window]
	}
	return p.RunDocuments(ctx, docs, fmt.Sprintf("%d daily harvest reports from %s", len(docs), root))
}

// RunDocuments parses and ranks docs, labels the report with source and
// enriches it. A document that cannot be read fails the run.
func (p *Processor) RunDocuments(ctx context.Context, docs []entity.SourceDocument, source string) (*entity.Report, error) {
	ctx, runID := ensureRun(ctx)

	report, err := p.builder.Build(ctx, docs)
	if err != nil {
		p.logger.Error("processor.parse.failed", "run_id", runID, "error", err)
		return nil, err
	}
	report.Source = source

	if p.weather != nil {
		p.weather.Enrich(ctx, report)
	}
	p.logger.Debug("processor report ready",
		"run_id", runID,
		"dates", len(report.Dates),
		"eastside", len(report.Eastside.AreaBlinds)+len(report.Eastside.UnitBlinds),
		"westside", len(report.Westside.AreaBlinds)+len(report.Westside.UnitBlinds),
		"weather_days", len(report.Weather),
	)
	return report, nil
}

func ensureRun(ctx context.Context) (context.Context, string) {
	if id := common.RunIDFromContext(ctx); id != "" {
		return ctx, id
	}
	return common.NewRun(ctx)
}
