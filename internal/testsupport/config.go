package testsupport

import (
	"testing"

	"bibmend/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t   testing.TB
	cfg *config.Config
}

// NewConfig produces a config seeded with a unique temp corpus directory per
// test. Online lookups default to disabled so tests opt in explicitly.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfgVal := config.Default()
	cfgVal.Paths.CorpusDir = t.TempDir()
	cfgVal.Online.Enabled = false

	builder := &configBuilder{
		t:   t,
		cfg: &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithCorpusDir overrides the corpus directory on the test config.
func WithCorpusDir(dir string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.CorpusDir = dir
	}
}

// WithDBLP enables online lookups against a dblp stub at the provided base URL.
func WithDBLP(baseURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Online.Enabled = true
		b.cfg.Online.Services = []string{"dblp"}
		b.cfg.Online.DBLPBaseURL = baseURL
	}
}

// WithCrossref enables online lookups against a crossref stub at the provided
// base URL.
func WithCrossref(baseURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Online.Enabled = true
		b.cfg.Online.Services = []string{"crossref"}
		b.cfg.Online.CrossrefBaseURL = baseURL
	}
}
