package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeOnline()
	c.normalizeOutput()
	c.normalizeCorpus()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.CorpusDir) == "" {
		c.Paths.CorpusDir = defaultCorpusDir
	}
	if c.Paths.CorpusDir, err = expandPath(c.Paths.CorpusDir); err != nil {
		return fmt.Errorf("paths.corpus_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeOnline() {
	services := make([]string, 0, len(c.Online.Services))
	seen := make(map[string]struct{}, len(c.Online.Services))
	for _, service := range c.Online.Services {
		normalized := strings.ToLower(strings.TrimSpace(service))
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		services = append(services, normalized)
	}
	if len(services) == 0 {
		services = defaultServices()
	}
	c.Online.Services = services

	if c.Online.SuggestionsPerService <= 0 {
		c.Online.SuggestionsPerService = defaultSuggestionsPerService
	}
	if c.Online.ParallelRequests <= 0 {
		c.Online.ParallelRequests = defaultParallelRequests
	}
	if c.Online.BufferSize <= 0 {
		c.Online.BufferSize = defaultBufferSize
	}
	if c.Online.RequestTimeout <= 0 {
		c.Online.RequestTimeout = defaultRequestTimeout
	}

	c.Online.DBLPBaseURL = normalizeBaseURL(c.Online.DBLPBaseURL, defaultDBLPBaseURL)
	c.Online.CrossrefBaseURL = normalizeBaseURL(c.Online.CrossrefBaseURL, defaultCrossrefBaseURL)
}

func (c *Config) normalizeOutput() {
	fields := make([]string, 0, len(c.Output.RemoveFields))
	seen := make(map[string]struct{}, len(c.Output.RemoveFields))
	for _, field := range c.Output.RemoveFields {
		normalized := strings.ToLower(strings.TrimSpace(field))
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		fields = append(fields, normalized)
	}
	c.Output.RemoveFields = fields

	normalizations := make([]NameNormalization, 0, len(c.Output.NameNormalizations))
	for _, nn := range c.Output.NameNormalizations {
		nn.Name = strings.TrimSpace(nn.Name)
		if nn.Name == "" || len(nn.AlternativeNames) == 0 {
			continue
		}
		normalizations = append(normalizations, nn)
	}
	c.Output.NameNormalizations = normalizations
}

func (c *Config) normalizeCorpus() {
	c.Corpus.DownloadURL = strings.TrimSpace(c.Corpus.DownloadURL)
	if c.Corpus.DownloadTimeout <= 0 {
		c.Corpus.DownloadTimeout = defaultDownloadTimeout
	}
	if c.Corpus.DownloadAttempts <= 0 {
		c.Corpus.DownloadAttempts = defaultDownloadAttempts
	}

	if len(c.Corpus.Aliases) > 0 {
		aliases := make(map[string]string, len(c.Corpus.Aliases))
		for name, url := range c.Corpus.Aliases {
			name = strings.ToLower(strings.TrimSpace(name))
			url = strings.TrimSpace(url)
			if name == "" || url == "" {
				continue
			}
			aliases[name] = url
		}
		c.Corpus.Aliases = aliases
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func normalizeBaseURL(value, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		trimmed = fallback
	}
	return strings.TrimRight(trimmed, "/")
}
