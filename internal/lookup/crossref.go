package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"bibmend/internal/bibtex"
	"bibmend/internal/logging"
	"bibmend/internal/normalize"
)

// Crossref queries the Crossref REST API in two phases: a metadata search
// that yields DOIs, then one BibTeX transform fetch per unique DOI.
type Crossref struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewCrossref creates a client for the Crossref REST API at baseURL.
func NewCrossref(baseURL string, timeout time.Duration, logger *slog.Logger) *Crossref {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Crossref{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Every(crossrefRateInterval), 5),
		logger:  logging.NewComponentLogger(logger, "lookup").With(logging.FieldService, "crossref"),
	}
}

// Name returns the configuration identifier of the service.
func (s *Crossref) Name() string { return "crossref" }

// crossrefSearchResponse mirrors the fields used from the works search reply.
type crossrefSearchResponse struct {
	Message struct {
		Items []struct {
			DOI string `json:"DOI"`
		} `json:"items"`
	} `json:"message"`
}

// FetchCandidates searches Crossref for the entry's normalized title and
// fetches a BibTeX rendition for every unique DOI in the result, all
// concurrently. A DOI whose transform fetch fails is dropped from the
// merged set; partial results are acceptable.
func (s *Crossref) FetchCandidates(ctx context.Context, record bibtex.Record, limit int) []bibtex.Record {
	dois := s.searchDOIs(ctx, record, limit)
	if len(dois) == 0 {
		return nil
	}

	fetched := make([]*bibtex.Record, len(dois))
	var wg sync.WaitGroup
	for i, doi := range dois {
		i, doi := i, doi
		wg.Add(1)
		go func() {
			defer wg.Done()
			if rec, ok := s.fetchBibTeX(ctx, doi); ok {
				fetched[i] = &rec
			}
		}()
	}
	wg.Wait()

	// The transform endpoint occasionally serves the same work under two
	// DOIs. Keep the first occurrence of each parsed doi field.
	seen := make(map[string]struct{}, len(dois))
	records := make([]bibtex.Record, 0, len(dois))
	for _, rec := range fetched {
		if rec == nil {
			continue
		}
		if doi := rec.Value("doi"); doi != "" {
			if _, dup := seen[doi]; dup {
				continue
			}
			seen[doi] = struct{}{}
		}
		records = append(records, *rec)
	}
	return records
}

// searchDOIs runs the metadata search and returns the unique DOIs of its
// hits in result order.
func (s *Crossref) searchDOIs(ctx context.Context, record bibtex.Record, limit int) []string {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil
	}
	query := url.QueryEscape(normalize.Title(record.Value("title")))
	searchURL := fmt.Sprintf("%s/v1/works?rows=%d&query.title=%s", s.baseURL, limit, query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		s.logger.Warn("building search request failed", logging.Error(err))
		return nil
	}
	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("search request failed",
			logging.String(logging.FieldEntryID, record.ID),
			logging.Error(err))
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("search returned non-success status",
			logging.String(logging.FieldEntryID, record.ID),
			logging.Int(logging.FieldStatusCode, resp.StatusCode))
		return nil
	}
	var payload crossrefSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		s.logger.Warn("search response unparsable",
			logging.String(logging.FieldEntryID, record.ID),
			logging.Error(err))
		return nil
	}

	seen := make(map[string]struct{}, len(payload.Message.Items))
	dois := make([]string, 0, len(payload.Message.Items))
	for _, item := range payload.Message.Items {
		if item.DOI == "" {
			continue
		}
		if _, dup := seen[item.DOI]; dup {
			continue
		}
		seen[item.DOI] = struct{}{}
		dois = append(dois, item.DOI)
	}
	return dois
}

// fetchBibTeX fetches the BibTeX transform of one DOI.
func (s *Crossref) fetchBibTeX(ctx context.Context, doi string) (bibtex.Record, bool) {
	if err := s.limiter.Wait(ctx); err != nil {
		return bibtex.Record{}, false
	}
	transformURL := fmt.Sprintf("%s/v1/works/%s/transform", s.baseURL, url.QueryEscape(doi))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, transformURL, nil)
	if err != nil {
		s.logger.Warn("building transform request failed", logging.Error(err))
		return bibtex.Record{}, false
	}
	req.Header.Set("Accept", "application/x-bibtex")
	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("transform fetch failed",
			logging.String(logging.FieldURL, transformURL),
			logging.Error(err))
		return bibtex.Record{}, false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("transform fetch returned non-success status",
			logging.String(logging.FieldURL, transformURL),
			logging.Int(logging.FieldStatusCode, resp.StatusCode))
		return bibtex.Record{}, false
	}
	records, err := bibtex.Parse(resp.Body)
	if err != nil || len(records) == 0 {
		s.logger.Warn("transform response unparsable",
			logging.String(logging.FieldURL, transformURL),
			logging.Error(err))
		return bibtex.Record{}, false
	}
	return records[0], true
}
