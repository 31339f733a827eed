package ingest

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/joseph-ayodele/blind-rankings/internal/common"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestFetcherGet(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		if r.URL.Path == "/missing.pdf" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("%PDF-1.4 body"))
	}))
	defer srv.Close()

	f := NewFetcher(srv.Client(), "blind-rankings/test", quietLogger())
	body, err := f.Get(context.Background(), srv.URL+"/12012025s.pdf")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(body) != "%PDF-1.4 body" {
		t.Errorf("body = %q", body)
	}
	if gotUA != "blind-rankings/test" {
		t.Errorf("user agent = %q", gotUA)
	}

	_, err = f.Get(context.Background(), srv.URL+"/missing.pdf")
	if !errors.Is(err, common.ErrFetch) {
		t.Fatalf("expected ErrFetch, got %v", err)
	}
}

func TestFetcherTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewFetcher(nil, "", quietLogger()).Get(context.Background(), url+"/x.pdf")
	if !errors.Is(err, common.ErrFetch) {
		t.Fatalf("expected ErrFetch, got %v", err)
	}
}

func TestFetcherBodyTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", len(r.URL.Path))))
	}))
	defer srv.Close()

	f := NewFetcher(srv.Client(), "", quietLogger())
	f.maxBody = 12

	// "/exactly12.p" is 12 bytes long, so the body fits the cap exactly.
	body, err := f.Get(context.Background(), srv.URL+"/exactly12.p")
	if err != nil || len(body) != 12 {
		t.Fatalf("body at the cap: %d bytes, %v", len(body), err)
	}

	_, err = f.Get(context.Background(), srv.URL+"/12012025s.pdf")
	if !errors.Is(err, common.ErrFetch) {
		t.Fatalf("expected ErrFetch, got %v", err)
	}
	if !strings.Contains(err.Error(), "body too large") {
		t.Errorf("error = %v", err)
	}
}
