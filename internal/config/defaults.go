package config

const (
	defaultCorpusDir             = "~/.local/share/bibmend/corpus"
	defaultSuggestionsPerService = 3
	defaultParallelRequests      = 5
	defaultBufferSize            = 15
	defaultRequestTimeout        = 30
	defaultDBLPBaseURL           = "https://dblp.org"
	defaultCrossrefBaseURL       = "https://api.crossref.org"
	defaultDownloadTimeout       = 300
	defaultDownloadAttempts      = 10
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
)

func defaultServices() []string {
	return []string{"dblp", "crossref"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CorpusDir: defaultCorpusDir,
		},
		Online: Online{
			Enabled:               true,
			Services:              defaultServices(),
			SuggestionsPerService: defaultSuggestionsPerService,
			ParallelRequests:      defaultParallelRequests,
			BufferSize:            defaultBufferSize,
			RequestTimeout:        defaultRequestTimeout,
			DBLPBaseURL:           defaultDBLPBaseURL,
			CrossrefBaseURL:       defaultCrossrefBaseURL,
		},
		Output: Output{
			Sort:               false,
			Deduplicate:        true,
			NormalizePreprints: true,
		},
		Corpus: Corpus{
			DownloadTimeout:  defaultDownloadTimeout,
			DownloadAttempts: defaultDownloadAttempts,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
