package document

import (
	"context"
	"os"
	"strings"
)

// pdfToText runs `pdftotext -layout` over the whole file and returns one text
// per page (pdftotext separates pages with a form feed).
func (e *Extractor) pdfToText(ctx context.Context, data []byte) ([]string, error) {
	f, err := os.CreateTemp(e.cfg.TempDir, "br-pdf-*.pdf")
	if err != nil {
		return nil, err
	}
	path := f.Name()
	defer func() {
		if err := os.Remove(path); err != nil {
			e.logger.Warn("failed to remove temp file", "path", path, "error", err)
		}
	}()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}

	out, err := e.runner.Run(ctx, Command{
		Name: e.cfg.Pdftotext,
		Args: []string{"-layout", "-enc", "UTF-8", "-eol", "unix", path, "-"},
	})
	if err != nil {
		return nil, err
	}
	pages := strings.Split(string(out), "\f")
	for i := range pages {
		pages[i] = Normalize(pages[i])
	}
	return pages, nil
}
