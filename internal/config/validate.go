package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable. Lookup service names are not
// checked here; the lookup registry rejects unknown names before any network
// activity starts.
func (c *Config) Validate() error {
	if err := c.validateOnline(); err != nil {
		return err
	}
	if err := c.validateCorpus(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateOnline() error {
	if !c.Online.Enabled {
		return nil
	}
	if len(c.Online.Services) == 0 {
		return errors.New("online.services must include at least one service when online.enabled is true")
	}
	return ensurePositiveMap(map[string]int{
		"online.suggestions_per_service": c.Online.SuggestionsPerService,
		"online.parallel_requests":       c.Online.ParallelRequests,
		"online.buffer_size":             c.Online.BufferSize,
		"online.request_timeout":         c.Online.RequestTimeout,
	})
}

func (c *Config) validateCorpus() error {
	return ensurePositiveMap(map[string]int{
		"corpus.download_timeout":  c.Corpus.DownloadTimeout,
		"corpus.download_attempts": c.Corpus.DownloadAttempts,
	})
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
