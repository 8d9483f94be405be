package lookup

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"bibmend/internal/bibtex"
	"bibmend/internal/logging"
	"bibmend/internal/normalize"
)

// DBLP queries the dblp publication search API, which returns matches
// directly as BibTeX in a single round trip.
type DBLP struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewDBLP creates a client for the dblp search endpoint at baseURL.
func NewDBLP(baseURL string, timeout time.Duration, logger *slog.Logger) *DBLP {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &DBLP{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Every(dblpRateInterval), 2),
		logger:  logging.NewComponentLogger(logger, "lookup").With(logging.FieldService, "dblp"),
	}
}

// Name returns the configuration identifier of the service.
func (s *DBLP) Name() string { return "dblp" }

// FetchCandidates searches dblp for the entry's normalized title and parses
// the BibTeX payload.
func (s *DBLP) FetchCandidates(ctx context.Context, record bibtex.Record, limit int) []bibtex.Record {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil
	}
	query := url.QueryEscape(normalize.Title(record.Value("title")))
	searchURL := fmt.Sprintf("%s/search/publ/api?format=bibtex&h=%d&q=%s", s.baseURL, limit, query)
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
	records, err := bibtex.Parse(resp.Body)
	if err != nil {
		s.logger.Warn("search response unparsable",
			logging.String(logging.FieldEntryID, record.ID),
			logging.Error(err))
		return nil
	}
	return records
}
