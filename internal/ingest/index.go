package ingest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/joseph-ayodele/blind-rankings/internal/entity"
	"github.com/joseph-ayodele/blind-rankings/internal/utils"
)

// reportPathRe matches report uploads: .../YYYY-MM/MMDDYYYYs.pdf or ..._0.pdf.
var reportPathRe = regexp.MustCompile(`/\d{4}-\d{2}/(\d{8})s(?:_0)?\.pdf$`)

// Index discovers the daily report PDFs linked from the harvest statistics page.
type Index struct {
	fetcher *Fetcher
	pageURL string
	logger  *slog.Logger
}

func NewIndex(fetcher *Fetcher, pageURL string, logger *slog.Logger) *Index {
	if logger == nil {
		logger = slog.Default()
	}
	return &Index{fetcher: fetcher, pageURL: pageURL, logger: logger}
}

// Latest returns up to n report references, newest first.
func (i *Index) Latest(ctx context.Context, n int) ([]entity.DocumentRef, error) {
	body, err := i.fetcher.Get(ctx, i.pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch index: %w", err)
	}
	refs, err := ParseIndex(bytes.NewReader(body), i.pageURL)
	if err != nil {
		return nil, err
	}
	out := Window(refs, n)
	i.logger.Info("index parsed", "url", i.pageURL, "found", len(refs), "selected", len(out))
	return out, nil
}

// ParseIndex collects report links from an HTML page. Relative links resolve
// against base. One reference is kept per date; the result is newest first.
func ParseIndex(r io.Reader, base string) ([]entity.DocumentRef, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse index html: %w", err)
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse index url: %w", err)
	}

	var refs []entity.DocumentRef
	seen := make(map[string]struct{})
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		u, err := baseURL.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}
		m := reportPathRe.FindStringSubmatch(u.Path)
		if m == nil {
			return
		}
		date, ok := utils.MMDDYYYYToISO(m[1])
		if !ok {
			return
		}
		if _, dup := seen[date]; dup {
			return
		}
		seen[date] = struct{}{}
		refs = append(refs, entity.DocumentRef{URL: u.String(), Date: date, Filename: path.Base(u.Path)})
	})

	// ISO labels order chronologically as strings
	sort.SliceStable(refs, func(a, b int) bool { return refs[a].Date > refs[b].Date })
	return refs, nil
}

// Window keeps the newest n references; n <= 0 keeps all.
func Window(refs []entity.DocumentRef, n int) []entity.DocumentRef {
	if n <= 0 || len(refs) <= n {
		return refs
	}
	return refs[:n]
}
