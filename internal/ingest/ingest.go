package ingest

import (
	"context"
)

// ArtifactStore caches downloaded reports by file name.
type ArtifactStore interface {
	Get(ctx context.Context, name string) ([]byte, error)
	Put(ctx context.Context, name string, data []byte) error
}

// FileResult is the per-file outcome of a directory load.
type FileResult struct {
	Path         string
	Date         string
	HashHex      string
	Deduplicated bool
	Err          string
}

// DirStats summarizes a directory load.
type DirStats struct {
	Scanned      uint32
	Matched      uint32
	Succeeded    uint32
	Deduplicated uint32
	Failed       uint32
}
