package document

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ledongthuc/pdf"

	"github.com/joseph-ayodele/blind-rankings/internal/common"
)

type Config struct {
	Pdftotext string // optional binary; when set, page text comes from `pdftotext -layout`
	MaxPages  int    // 0 = no limit
	TempDir   string // scratch space for external tools; "" = os.TempDir()
}

type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{cfg: cfg, runner: execRunner{logger: logger}, logger: logger}
}

// WithRunner swaps the command runner used for external tools.
func (e *Extractor) WithRunner(r Runner) *Extractor {
	e.runner = r
	return e
}

// Extract opens a PDF held in memory and lays out every page. Any failure to
// decode the file, including a panic inside the PDF reader, is reported as an
// unreadable document.
func (e *Extractor) Extract(ctx context.Context, name string, data []byte) (doc *Document, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("pdf reader panicked", "name", name, "panic", r)
			doc, err = nil, common.UnreadableDocument(name, fmt.Errorf("pdf: %v", r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, common.UnreadableDocument(name, err)
	}
	n := reader.NumPage()
	if n == 0 {
		return nil, common.UnreadableDocument(name, fmt.Errorf("no pages"))
	}
	if e.cfg.MaxPages > 0 && n > e.cfg.MaxPages {
		n = e.cfg.MaxPages
	}

	doc = &Document{Name: name, Pages: make([]Page, 0, n)}
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := reader.Page(i)
		if p.V.IsNull() {
			doc.Pages = append(doc.Pages, Page{Number: i})
			continue
		}
		content := p.Content()
		hs, vs := pageRulings(p)
		page := Page{
			Number: i,
			Text:   pageText(content.Text),
			Tables: extractTables(content.Text, hs, vs),
		}
		e.logger.Debug("page laid out", "name", name, "page", i, "glyphs", len(content.Text), "rulings", len(hs)+len(vs), "tables", len(page.Tables))
		doc.Pages = append(doc.Pages, page)
	}

	if e.cfg.Pdftotext != "" {
		texts, err := e.pdfToText(ctx, data)
		if err != nil {
			e.logger.Warn("pdftotext failed; keeping layout text", "name", name, "error", err)
		} else {
			for i := range doc.Pages {
				if i < len(texts) {
					doc.Pages[i].Text = texts[i]
				}
			}
		}
	}

	e.logger.Debug("document extracted",
		"name", name,
		"pages", len(doc.Pages),
		"bytes", len(data),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return doc, nil
}
