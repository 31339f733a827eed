package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/joseph-ayodele/blind-rankings/internal/common"
	"github.com/joseph-ayodele/blind-rankings/internal/entity"
)

// Source downloads the latest daily reports, reading through the artifact cache.
type Source struct {
	index   *Index
	fetcher *Fetcher
	store   ArtifactStore
	workers int
	logger  *slog.Logger
}

func NewSource(index *Index, fetcher *Fetcher, store ArtifactStore, workers int, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	if workers <= 0 {
		workers = 1
	}
	return &Source{index: index, fetcher: fetcher, store: store, workers: workers, logger: logger}
}

// Latest discovers the newest n reports and returns those that could be
// downloaded, newest first. Failed downloads are skipped; the call fails only
// when nothing is left.
func (s *Source) Latest(ctx context.Context, n int) ([]entity.SourceDocument, error) {
	refs, err := s.index.Latest(ctx, n)
	if err != nil {
		return nil, err
	}
	if len(refs) == 0 {
		return nil, fmt.Errorf("%w: index lists no daily reports", common.ErrNoDocuments)
	}
	docs := s.Fetch(ctx, refs)
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: all %d downloads failed", common.ErrNoDocuments, len(refs))
	}
	return docs, nil
}

// Fetch downloads every reference concurrently and keeps the input order.
func (s *Source) Fetch(ctx context.Context, refs []entity.DocumentRef) []entity.SourceDocument {
	results := make([]*entity.SourceDocument, len(refs))
	var g errgroup.Group
	g.SetLimit(s.workers)
	for i, ref := range refs {
		g.Go(func() error {
			data, err := s.load(ctx, ref)
			if err != nil {
				s.logger.Warn("report skipped", "url", ref.URL, "date", ref.Date, "error", err)
				return nil
			}
			results[i] = &entity.SourceDocument{Date: ref.Date, Name: ref.Filename, Data: data}
			return nil
		})
	}
	_ = g.Wait()

	docs := make([]entity.SourceDocument, 0, len(refs))
	for _, d := range results {
		if d != nil {
			docs = append(docs, *d)
		}
	}
	return docs
}

func (s *Source) load(ctx context.Context, ref entity.DocumentRef) ([]byte, error) {
	if s.store != nil {
		data, err := s.store.Get(ctx, ref.Filename)
		switch {
		case err == nil:
			s.logger.Debug("report cache hit", "name", ref.Filename, "bytes", len(data))
			return data, nil
		case !errors.Is(err, common.ErrNotFound):
			s.logger.Warn("report cache read failed", "name", ref.Filename, "error", err)
		}
	}

	data, err := s.fetcher.Get(ctx, ref.URL)
	if err != nil {
		return nil, err
	}
	if s.store != nil {
		if err := s.store.Put(ctx, ref.Filename, data); err != nil {
			s.logger.Warn("report cache write failed", "name", ref.Filename, "error", err)
		}
	}
	return data, nil
}
