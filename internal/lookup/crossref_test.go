package lookup

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"bibmend/internal/logging"
)

func transformDOI(r *http.Request) string {
	return strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/v1/works/"), "/transform")
}

func newCrossrefForTest(t *testing.T, baseURL string) *Crossref {
	t.Helper()
	s := NewCrossref(baseURL, 5*time.Second, logging.NewNop())
	s.limiter = rate.NewLimiter(rate.Inf, 1)
	return s
}

func TestCrossrefFetchCandidatesTwoPhase(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/works", func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if got := query.Get("rows"); got != "2" {
			t.Errorf("rows = %q, want 2", got)
		}
		if got := query.Get("query.title"); got != "Deep Residual Learning" {
			t.Errorf("query.title = %q, want normalized title", got)
		}
		fmt.Fprint(w, `{"message":{"items":[{"DOI":"10.1/aaa"},{"DOI":"10.1/bbb"},{"DOI":"10.1/aaa"}]}}`)
	})
	mux.HandleFunc("/v1/works/", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "application/x-bibtex" {
			t.Errorf("Accept = %q, want application/x-bibtex", got)
		}
		switch doi := transformDOI(r); doi {
		case "10.1/aaa":
			fmt.Fprint(w, "@article{He2016,\n  title = {Deep Residual Learning},\n  doi = {10.1/aaa},\n}\n")
		case "10.1/bbb":
			fmt.Fprint(w, "@inproceedings{He2016CVPR,\n  title = {Deep Residual Learning for Image Recognition},\n  doi = {10.1/bbb},\n}\n")
		default:
			t.Errorf("unexpected transform DOI %q", doi)
			http.NotFound(w, r)
		}
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	s := newCrossrefForTest(t, server.URL)
	records := s.FetchCandidates(context.Background(), inputRecord("Deep Residual Learning"), 2)
	if len(records) != 2 {
		t.Fatalf("got %d candidates, want 2", len(records))
	}
	if records[0].ID != "He2016" || records[1].ID != "He2016CVPR" {
		t.Errorf("candidate order = %q, %q", records[0].ID, records[1].ID)
	}
}

func TestCrossrefDropsFailedTransform(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/works", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"message":{"items":[{"DOI":"10.1/aaa"},{"DOI":"10.1/bbb"}]}}`)
	})
	mux.HandleFunc("/v1/works/", func(w http.ResponseWriter, r *http.Request) {
		if transformDOI(r) == "10.1/bbb" {
			http.Error(w, "gone", http.StatusNotFound)
			return
		}
		fmt.Fprint(w, "@article{kept1,\n  title = {Kept},\n  doi = {10.1/aaa},\n}\n")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	s := newCrossrefForTest(t, server.URL)
	records := s.FetchCandidates(context.Background(), inputRecord("Kept"), 5)
	if len(records) != 1 {
		t.Fatalf("got %d candidates, want 1", len(records))
	}
	if records[0].ID != "kept1" {
		t.Errorf("candidate = %q, want kept1", records[0].ID)
	}
}

func TestCrossrefSearchFailureYieldsNoCandidates(t *testing.T) {
	var transformCalls int64
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/works", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	mux.HandleFunc("/v1/works/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&transformCalls, 1)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	s := newCrossrefForTest(t, server.URL)
	if got := s.FetchCandidates(context.Background(), inputRecord("any title"), 5); got != nil {
		t.Fatalf("candidates = %v, want nil", got)
	}
	if n := atomic.LoadInt64(&transformCalls); n != 0 {
		t.Fatalf("transform calls = %d, want 0", n)
	}
}

func TestCrossrefDeduplicatesByParsedDOI(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/works", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"message":{"items":[{"DOI":"10.1/x1"},{"DOI":"10.1/x2"}]}}`)
	})
	mux.HandleFunc("/v1/works/", func(w http.ResponseWriter, r *http.Request) {
		// Two DOIs resolve to the same work.
		id := "first1"
		if transformDOI(r) == "10.1/x2" {
			id = "second1"
		}
		fmt.Fprintf(w, "@article{%s,\n  title = {Same Work},\n  doi = {10.1/shared},\n}\n", id)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	s := newCrossrefForTest(t, server.URL)
	records := s.FetchCandidates(context.Background(), inputRecord("Same Work"), 5)
	if len(records) != 1 {
		t.Fatalf("got %d candidates, want 1", len(records))
	}
	if records[0].ID != "first1" {
		t.Errorf("candidate = %q, want first occurrence", records[0].ID)
	}
}
