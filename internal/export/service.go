package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joseph-ayodele/blind-rankings/internal/entity"
)

// Output file names written by Service.WriteAll.
const (
	TextFile = "blinds_by_ducks_per_hunter.txt"
	JSONFile = "blinds_data.json"
	HTMLFile = "index.html"
	XLSXFile = "blinds_by_ducks_per_hunter.xlsx"
)

// Service renders a report into every output format.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// Render produces the named output in memory.
func (s *Service) Render(ctx context.Context, name string, report *entity.Report) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch name {
	case TextFile:
		var b strings.Builder
		if err := RenderText(&b, report); err != nil {
			return nil, err
		}
		return []byte(b.String()), nil
	case JSONFile:
		return RenderJSON(report)
	case HTMLFile:
		return RenderHTML(report)
	case XLSXFile:
		return RenderXLSX(report)
	default:
		return nil, fmt.Errorf("unknown output %q", name)
	}
}

// WriteAll renders every output into dir and returns the written paths.
func (s *Service) WriteAll(ctx context.Context, report *entity.Report, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	var paths []string
	for _, name := range []string{TextFile, JSONFile, HTMLFile, XLSXFile} {
		start := time.Now()
		data, err := s.Render(ctx, name, report)
		if err != nil {
			s.logger.Error("export.render.failed", "output", name, "error", err)
			return paths, fmt.Errorf("render %s: %w", name, err)
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
		s.logger.Info("export."+strings.TrimPrefix(filepath.Ext(name), ".")+".ok",
			"path", path,
			"bytes", len(data),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
	}
	return paths, nil
}
