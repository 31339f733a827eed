package core

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/joseph-ayodele/blind-rankings/internal/common"
	"github.com/joseph-ayodele/blind-rankings/internal/document"
	"github.com/joseph-ayodele/blind-rankings/internal/extract"
	"github.com/joseph-ayodele/blind-rankings/internal/ingest"
	"github.com/joseph-ayodele/blind-rankings/internal/rankings"
	"github.com/joseph-ayodele/blind-rankings/internal/repository"
	"github.com/joseph-ayodele/blind-rankings/internal/weather"
)

// New builds a Processor from configuration. The returned close func
// releases the artifact cache.
func New(ctx context.Context, cfg *common.Config, logger *slog.Logger) (*Processor, func(), error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, func() {}, err
	}

	store, closeStore, err := repository.OpenArtifacts(ctx, repository.Config{
		DSN:         cfg.Cache.DSN,
		DialTimeout: cfg.Cache.DialTimeout,
	}, cfg.Cache.Dir, logger)
	if err != nil {
		return nil, func() {}, common.WrapError(err, "open artifact cache")
	}

	fetcher := ingest.NewFetcher(&http.Client{Timeout: cfg.Source.HTTPTimeout}, cfg.Source.UserAgent, logger)
	index := ingest.NewIndex(fetcher, cfg.Source.IndexURL, logger)
	source := ingest.NewSource(index, fetcher, store, cfg.Parse.Workers, logger)

	extractor := document.NewExtractor(document.Config{Pdftotext: cfg.Parse.Pdftotext}, logger)
	builder := rankings.NewBuilder(extract.NewParser(extractor, logger), cfg.Parse.Workers, logger)

	var enricher Enricher
	if cfg.Weather.Enabled {
		getter := ingest.NewFetcher(&http.Client{Timeout: cfg.Weather.Timeout}, cfg.Source.UserAgent, logger)
		enricher = weather.NewClient(weather.Config{
			BaseURL:   cfg.Weather.BaseURL,
			Latitude:  cfg.Weather.Latitude,
			Longitude: cfg.Weather.Longitude,
			Timezone:  cfg.Weather.Timezone,
			Timeout:   cfg.Weather.Timeout,
		}, getter, logger)
	}

	return NewProcessor(logger, source, builder, enricher, cfg.Source.WindowDays), closeStore, nil
}
