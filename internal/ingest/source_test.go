package ingest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/joseph-ayodele/blind-rankings/internal/common"
)

type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
	puts int
}

func (m *memStore) Get(_ context.Context, name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[name]
	if !ok {
		return nil, common.ErrNotFound
	}
	return b, nil
}

func (m *memStore) Put(_ context.Context, name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[name] = data
	m.puts++
	return nil
}

func reportServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/harvest", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<a href="/files/2025-12/12032025s.pdf">3</a>
<a href="/files/2025-12/12022025s.pdf">2</a>
<a href="/files/2025-12/12012025s.pdf">1</a>
<a href="/files/2025-11/11302025s.pdf">old</a>`)
	})
	mux.HandleFunc("/files/", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path == "/files/2025-12/12022025s.pdf" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		fmt.Fprintf(w, "pdf:%s", r.URL.Path)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestSourceLatestSkipsFailedDownloads(t *testing.T) {
	var hits atomic.Int32
	srv := reportServer(t, &hits)
	fetcher := NewFetcher(srv.Client(), "", quietLogger())
	store := &memStore{data: map[string][]byte{}}
	src := NewSource(NewIndex(fetcher, srv.URL+"/harvest", quietLogger()), fetcher, store, 3, quietLogger())

	docs, err := src.Latest(context.Background(), 3)
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].Date != "2025-12-03" || docs[1].Date != "2025-12-01" {
		t.Errorf("dates = %s, %s", docs[0].Date, docs[1].Date)
	}
	if string(docs[1].Data) != "pdf:/files/2025-12/12012025s.pdf" || docs[1].Name != "12012025s.pdf" {
		t.Errorf("doc = %+v", docs[1])
	}
	if store.puts != 2 {
		t.Errorf("expected 2 cache writes, got %d", store.puts)
	}

	// second run reads cached reports and only retries the failed one
	before := hits.Load()
	if _, err := src.Latest(context.Background(), 3); err != nil {
		t.Fatalf("second Latest failed: %v", err)
	}
	if got := hits.Load() - before; got != 1 {
		t.Errorf("expected 1 download on cached run, got %d", got)
	}
}

func TestSourceLatestNothingFetched(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/harvest" {
			fmt.Fprint(w, `<a href="/files/2025-12/12012025s.pdf">1</a>`)
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	fetcher := NewFetcher(srv.Client(), "", quietLogger())
	src := NewSource(NewIndex(fetcher, srv.URL+"/harvest", quietLogger()), fetcher, nil, 1, quietLogger())
	_, err := src.Latest(context.Background(), 3)
	if !errors.Is(err, common.ErrNoDocuments) {
		t.Fatalf("expected ErrNoDocuments, got %v", err)
	}
}
