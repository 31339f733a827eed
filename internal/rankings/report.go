package rankings

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/joseph-ayodele/blind-rankings/constants"
	"github.com/joseph-ayodele/blind-rankings/internal/common"
	"github.com/joseph-ayodele/blind-rankings/internal/entity"
)

// DocumentParser extracts the harvests of one daily report.
type DocumentParser interface {
	ParseBytes(ctx context.Context, name string, data []byte) ([]entity.Harvest, error)
}

// Builder parses daily reports and turns them into a ranked report.
type Builder struct {
	parser  DocumentParser
	workers int
	logger  *slog.Logger
}

func NewBuilder(parser DocumentParser, workers int, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	if workers <= 0 {
		workers = 1
	}
	return &Builder{parser: parser, workers: workers, logger: logger}
}

// Build parses every document and ranks the result. Documents are parsed
// concurrently; any unreadable document fails the whole build.
func (b *Builder) Build(ctx context.Context, docs []entity.SourceDocument) (*entity.Report, error) {
	agg, err := b.Aggregate(ctx, docs)
	if err != nil {
		return nil, err
	}
	return ReportFromAggregation(agg), nil
}

// Aggregate parses the documents into a single aggregation.
func (b *Builder) Aggregate(ctx context.Context, docs []entity.SourceDocument) (*Aggregation, error) {
	for i, d := range docs {
		v := common.NewValidator().
			Field(fmt.Sprintf("documents[%d].date", i), d.Date, common.DateLabel).
			Field(fmt.Sprintf("documents[%d].data", i), d.Data, common.Required)
		if err := v.Error(); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	partials := make([]*Aggregation, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)
	for i, d := range docs {
		g.Go(func() error {
			name := d.Name
			if name == "" {
				name = d.Date
			}
			harvests, err := b.parser.ParseBytes(gctx, name, d.Data)
			if err != nil {
				return fmt.Errorf("parse %s: %w", name, err)
			}
			partials[i] = Aggregate([]entity.DayHarvest{{Date: d.Date, Harvests: harvests}})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	agg := NewAggregation()
	for _, p := range partials {
		agg.Merge(p)
	}
	b.logger.Info("reports aggregated",
		"documents", len(docs),
		"blinds", agg.Len(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return agg, nil
}

// AggregateReport folds already-parsed days straight into a ranked report.
func AggregateReport(days []entity.DayHarvest) *entity.Report {
	return ReportFromAggregation(Aggregate(days))
}

// ReportFromAggregation derives and ranks both sides.
func ReportFromAggregation(agg *Aggregation) *entity.Report {
	return &entity.Report{
		Dates:    agg.Dates(),
		Eastside: Rank(agg.Derive(constants.Eastside)),
		Westside: Rank(agg.Derive(constants.Westside)),
	}
}
