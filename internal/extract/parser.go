package extract

import (
	"context"
	"log/slog"
	"strings"

	"github.com/joseph-ayodele/blind-rankings/constants"
	"github.com/joseph-ayodele/blind-rankings/internal/document"
	"github.com/joseph-ayodele/blind-rankings/internal/entity"
)

// Parser turns daily report bytes into harvests.
type Parser struct {
	docs   DocumentSource
	logger *slog.Logger
}

func NewParser(docs DocumentSource, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{docs: docs, logger: logger}
}

// ParseBytes opens the report and extracts its harvests. A report that cannot
// be opened is an error, never an empty result.
func (p *Parser) ParseBytes(ctx context.Context, name string, data []byte) ([]entity.Harvest, error) {
	doc, err := p.docs.Extract(ctx, name, data)
	if err != nil {
		p.logger.Error("document unreadable", "name", name, "error", err)
		return nil, err
	}
	for _, dp := range constants.DetailPageSides {
		if pg, ok := doc.Page(dp.Page); ok && strings.TrimSpace(pg.Text) != "" && len(pg.Tables) == 0 {
			p.logger.Warn("detail page has text but no ruled tables", "name", name, "page", pg.Number, "side", dp.Side)
		}
	}
	out := ParseDocument(doc)
	p.logger.Debug("document parsed", "name", name, "pages", len(doc.Pages), "harvests", len(out))
	return out, nil
}

// ParseDocument returns the page-1 summary harvests followed by the detail
// table harvests. Duplicates are kept; aggregation sums them.
func ParseDocument(doc *document.Document) []entity.Harvest {
	var text string
	if pg, ok := doc.Page(0); ok {
		text = pg.Text
	}
	out := ParseSummary(text)
	return append(out, ParseDetail(DetailPages(doc))...)
}

// DetailPages pairs the detail table pages with their sides. Missing pages
// yield no tables.
func DetailPages(doc *document.Document) []SidePage {
	pages := make([]SidePage, 0, len(constants.DetailPageSides))
	for _, dp := range constants.DetailPageSides {
		sp := SidePage{Side: dp.Side}
		if pg, ok := doc.Page(dp.Page); ok {
			sp.Tables = pg.Tables
		}
		pages = append(pages, sp)
	}
	return pages
}
