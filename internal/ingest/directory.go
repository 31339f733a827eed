package ingest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joseph-ayodele/blind-rankings/internal/entity"
	"github.com/joseph-ayodele/blind-rankings/internal/utils"
)

// LoadDirectory walks root and loads every daily report found by file name.
// Identical contents and repeated dates are loaded once. Documents are
// returned newest first alongside per-file results and stats.
func LoadDirectory(ctx context.Context, root string, skipHidden bool, logger *slog.Logger) ([]entity.SourceDocument, []FileResult, DirStats, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(root) == "" {
		return nil, nil, DirStats{}, errors.New("root path is required")
	}

	var (
		docs    []entity.SourceDocument
		results []FileResult
		stats   DirStats
	)
	seenHash := make(map[string]struct{})
	seenDate := make(map[string]struct{})

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		stats.Scanned++
		if walkErr != nil {
			results = append(results, FileResult{Path: path, Err: walkErr.Error()})
			stats.Failed++
			return nil
		}
		if skipHidden && path != root && IsHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !AllowedExt(filepath.Ext(path)) {
			return nil
		}
		date, ok := ReportDate(path)
		if !ok {
			logger.Debug("not a daily report name; skipping", "path", path)
			return nil
		}
		stats.Matched++

		data, err := os.ReadFile(path)
		if err != nil {
			results = append(results, FileResult{Path: path, Date: date, Err: err.Error()})
			stats.Failed++
			return nil
		}
		hash := utils.ContentHash(data)
		res := FileResult{Path: path, Date: date, HashHex: hash}

		_, dupHash := seenHash[hash]
		_, dupDate := seenDate[date]
		if dupHash || dupDate {
			res.Deduplicated = true
			stats.Deduplicated++
			results = append(results, res)
			return nil
		}
		seenHash[hash] = struct{}{}
		seenDate[date] = struct{}{}

		docs = append(docs, entity.SourceDocument{Date: date, Name: filepath.Base(path), Data: data})
		results = append(results, res)
		stats.Succeeded++
		return nil
	})
	if err != nil {
		return docs, results, stats, fmt.Errorf("walk: %w", err)
	}

	sort.SliceStable(docs, func(i, j int) bool { return docs[i].Date > docs[j].Date })
	logger.Info("directory loaded",
		"root", root,
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"loaded", stats.Succeeded,
		"deduplicated", stats.Deduplicated,
		"failed", stats.Failed,
	)
	return docs, results, stats, nil
}
