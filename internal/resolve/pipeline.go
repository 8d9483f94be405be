package resolve

import (
	"context"
	"log/slog"
	"sync"

	"bibmend/internal/bibtex"
	"bibmend/internal/config"
	"bibmend/internal/logging"
	"bibmend/internal/lookup"
)

// Pipeline fans unresolved entries out to the lookup services and streams
// one CandidateSet per entry, in input order, over a bounded channel.
type Pipeline struct {
	services    []lookup.Service
	suggestions int
	parallelism int
	bufferSize  int
	logger      *slog.Logger
}

// NewPipeline creates a pipeline over the given services, sized by the
// online configuration.
func NewPipeline(services []lookup.Service, online config.Online, logger *slog.Logger) *Pipeline {
	p := &Pipeline{
		services:    services,
		suggestions: online.SuggestionsPerService,
		parallelism: online.ParallelRequests,
		bufferSize:  online.BufferSize,
		logger:      logging.NewComponentLogger(logger, "resolve"),
	}
	if p.parallelism < 1 {
		p.parallelism = 1
	}
	if p.bufferSize < 1 {
		p.bufferSize = 1
	}
	return p
}

// Resolve streams one CandidateSet per record, in record order. The first
// record is resolved alone so the consumer has something to work with
// immediately; the rest proceed in batches of the configured parallelism,
// and a batch starts only after the previous one has fully completed. The
// channel is closed after the last set. Cancelling ctx ends the stream
// early; sets completed after cancellation are discarded.
func (p *Pipeline) Resolve(ctx context.Context, records []bibtex.Record) <-chan CandidateSet {
	out := make(chan CandidateSet, p.bufferSize)
	go func() {
		defer close(out)
		if len(records) == 0 {
			return
		}
		if !p.send(ctx, out, p.resolveOne(ctx, records[0])) {
			return
		}
		rest := records[1:]
		for start := 0; start < len(rest); start += p.parallelism {
			end := min(start+p.parallelism, len(rest))
			batch := rest[start:end]
			sets := make([]CandidateSet, len(batch))
			var wg sync.WaitGroup
			for i, record := range batch {
				i, record := i, record
				wg.Add(1)
				go func() {
					defer wg.Done()
					sets[i] = p.resolveOne(ctx, record)
				}()
			}
			wg.Wait()
			if ctx.Err() != nil {
				return
			}
			for _, set := range sets {
				if !p.send(ctx, out, set) {
					return
				}
			}
		}
	}()
	return out
}

func (p *Pipeline) send(ctx context.Context, out chan<- CandidateSet, set CandidateSet) bool {
	select {
	case out <- set:
		return true
	case <-ctx.Done():
		return false
	}
}

// resolveOne queries every service concurrently and merges their candidates
// in service order. Journal entries tagged CoRR are dropped: they are
// preprint stand-ins of works the services already return as postprints.
func (p *Pipeline) resolveOne(ctx context.Context, record bibtex.Record) CandidateSet {
	fetched := make([][]bibtex.Record, len(p.services))
	var wg sync.WaitGroup
	for i, service := range p.services {
		i, service := i, service
		wg.Add(1)
		go func() {
			defer wg.Done()
			fetched[i] = service.FetchCandidates(ctx, record, p.suggestions)
		}()
	}
	wg.Wait()

	current := NewReference(record)
	var candidates []Reference
	for _, records := range fetched {
		for _, candidate := range records {
			if candidate.Value("journal") == "CoRR" {
				continue
			}
			candidates = append(candidates, NewReference(candidate))
		}
	}
	p.logger.Debug("entry resolved",
		logging.String(logging.FieldEntryID, record.ID),
		logging.Int(logging.FieldCount, len(candidates)))
	return NewCandidateSet(current, candidates)
}
