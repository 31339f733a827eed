package extract

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/joseph-ayodele/blind-rankings/constants"
	"github.com/joseph-ayodele/blind-rankings/internal/common"
	"github.com/joseph-ayodele/blind-rankings/internal/document"
)

type fakeSource struct {
	doc *document.Document
	err error
}

func (f fakeSource) Extract(context.Context, string, []byte) (*document.Document, error) {
	return f.doc, f.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func sampleDocument() *document.Document {
	detail := document.Table{
		row(text("Unit"), "Blind", "Hunters", "Ducks", "Geese", "Other"),
		row(text(johnson), "3", "4", "2", "0", "0"),
		row(absent(), "7", "9", "1", "0", "0"),
	}
	return &document.Document{Name: "12012025s.pdf", Pages: []document.Page{
		{Number: 1, Text: "EASTSIDE HUNTERS\nNorth Pond 12 34 5 6 2.83\nEASTSIDE TOTALS 12 34 5 6 2.83"},
		{Number: 2, Tables: []document.Table{detail}},
		{Number: 3},
	}}
}

func TestParseDocumentOrder(t *testing.T) {
	got := ParseDocument(sampleDocument())
	names := make([]string, 0, len(got))
	for _, h := range got {
		names = append(names, h.Blind)
	}
	want := []string{"North Pond", "Johnson #3", "Johnson #7"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("got %v, want %v", names, want)
		}
	}
	if got[1].Side != constants.Eastside {
		t.Errorf("page 2 tables belong to Eastside, got %s", got[1].Side)
	}
}

func TestParseDocumentSummaryOnly(t *testing.T) {
	doc := &document.Document{Pages: []document.Page{{Number: 1, Text: "WESTSIDE HUNTERS\nCoon Point 3 1 0 0 0.33\nWESTSIDE TOTALS"}}}
	got := ParseDocument(doc)
	if len(got) != 1 || got[0].Side != constants.Westside {
		t.Fatalf("unexpected harvests %+v", got)
	}
}

func TestParseBytes(t *testing.T) {
	p := NewParser(fakeSource{doc: sampleDocument()}, quietLogger())
	got, err := p.ParseBytes(context.Background(), "12012025s.pdf", []byte("%PDF"))
	if err != nil {
		t.Fatalf("ParseBytes failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 harvests, got %d", len(got))
	}
}

func TestParseBytesUnreadable(t *testing.T) {
	cause := common.UnreadableDocument("bad.pdf", errors.New("not a PDF file"))
	p := NewParser(fakeSource{err: cause}, quietLogger())
	got, err := p.ParseBytes(context.Background(), "bad.pdf", []byte("junk"))
	if err == nil || got != nil {
		t.Fatalf("expected failure, got %v / %v", got, err)
	}
	if !errors.Is(err, common.ErrUnreadableDocument) {
		t.Fatalf("expected ErrUnreadableDocument, got %v", err)
	}
}

func TestParseBytesWarnsOnUntabledDetailPage(t *testing.T) {
	tests := []struct {
		name string
		page document.Page
		warn bool
	}{
		{name: "text without tables", page: document.Page{Number: 3, Text: "WESTSIDE UNIT\nBlind Hunters Ducks"}, warn: true},
		{name: "blank page", page: document.Page{Number: 3}, warn: false},
		{name: "tables present", page: document.Page{Number: 3, Text: "Blind", Tables: []document.Table{{row(text("Unit"), "Blind")}}}, warn: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := sampleDocument()
			doc.Pages[2] = tt.page
			var buf bytes.Buffer
			p := NewParser(fakeSource{doc: doc}, slog.New(slog.NewTextHandler(&buf, nil)))
			if _, err := p.ParseBytes(context.Background(), doc.Name, []byte("%PDF")); err != nil {
				t.Fatalf("ParseBytes failed: %v", err)
			}
			got := strings.Contains(buf.String(), "detail page has text but no ruled tables")
			if got != tt.warn {
				t.Fatalf("warned = %v, want %v; log:\n%s", got, tt.warn, buf.String())
			}
			if tt.warn && !strings.Contains(buf.String(), "side=Westside") {
				t.Errorf("warning should name the side: %s", buf.String())
			}
		})
	}
}
