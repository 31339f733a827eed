package extract

import (
	"context"

	"github.com/joseph-ayodele/blind-rankings/constants"
	"github.com/joseph-ayodele/blind-rankings/internal/document"
)

// DocumentSource opens raw report bytes into laid-out pages.
type DocumentSource interface {
	Extract(ctx context.Context, name string, data []byte) (*document.Document, error)
}

// SidePage is a detail page together with the side its tables report on.
type SidePage struct {
	Side   constants.Side
	Tables []document.Table
}
