package lookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"bibmend/internal/bibtex"
	"bibmend/internal/config"
)

// ErrUnknownService reports a configured service name with no implementation.
var ErrUnknownService = errors.New("unknown lookup service")

const (
	defaultRequestTimeout = 15 * time.Second

	// Spacing between requests to the public APIs. Neither endpoint
	// requires authentication, so stay well under their documented
	// politeness thresholds.
	dblpRateInterval     = 300 * time.Millisecond
	crossrefRateInterval = 100 * time.Millisecond
)

// Service fetches candidate records for one bibliography entry.
type Service interface {
	// Name returns the configuration identifier of the service.
	Name() string

	// FetchCandidates queries the service for up to limit records matching
	// the entry's title. A failed lookup returns an empty slice.
	FetchCandidates(ctx context.Context, record bibtex.Record, limit int) []bibtex.Record
}

// FromConfig builds one Service per configured name. An unknown name is a
// configuration error and fails the run before any request is made.
func FromConfig(online config.Online, logger *slog.Logger) ([]Service, error) {
	timeout := time.Duration(online.RequestTimeout) * time.Second
	services := make([]Service, 0, len(online.Services))
	for _, name := range online.Services {
		switch name {
		case "dblp":
			services = append(services, NewDBLP(online.DBLPBaseURL, timeout, logger))
		case "crossref":
			services = append(services, NewCrossref(online.CrossrefBaseURL, timeout, logger))
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownService, name)
		}
	}
	return services, nil
}
