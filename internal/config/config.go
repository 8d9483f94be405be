package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	CorpusDir string `toml:"corpus_dir"`
}

// Online contains configuration for the online lookup pipeline.
type Online struct {
	Enabled               bool     `toml:"enabled"`
	Services              []string `toml:"services"`
	SuggestionsPerService int      `toml:"suggestions_per_service"`
	ParallelRequests      int      `toml:"parallel_requests"`
	BufferSize            int      `toml:"buffer_size"`
	RequestTimeout        int      `toml:"request_timeout"`
	DBLPBaseURL           string   `toml:"dblp_base_url"`
	CrossrefBaseURL       string   `toml:"crossref_base_url"`
}

// NameNormalization maps a canonical venue name to the patterns that should
// collapse onto it.
type NameNormalization struct {
	Name             string   `toml:"name"`
	AlternativeNames []string `toml:"alternative_names"`
}

// Output contains configuration for the output processing stages.
type Output struct {
	Sort               bool                `toml:"sort"`
	Deduplicate        bool                `toml:"deduplicate"`
	NormalizePreprints bool                `toml:"normalize_preprints"`
	RemoveFields       []string            `toml:"remove_fields"`
	NameNormalizations []NameNormalization `toml:"name_normalizations"`
}

// Corpus contains configuration for fetching offline corpus archives.
type Corpus struct {
	DownloadURL      string            `toml:"download_url"`
	DownloadTimeout  int               `toml:"download_timeout"`
	DownloadAttempts int               `toml:"download_attempts"`
	Aliases          map[string]string `toml:"aliases"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for bibmend.
//
// Configuration sections by subsystem:
//   - Paths: offline corpus directory
//   - Online: lookup services, concurrency, and endpoints
//   - Output: processing stages applied to the final record set
//   - Corpus: corpus archive download settings
//   - Logging: log format and level
type Config struct {
	Paths   Paths   `toml:"paths"`
	Online  Online  `toml:"online"`
	Output  Output  `toml:"output"`
	Corpus  Corpus  `toml:"corpus"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/bibmend/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("bibmend.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the corpus directory when it is missing.
func (c *Config) EnsureDirectories() error {
	if strings.TrimSpace(c.Paths.CorpusDir) == "" {
		return nil
	}
	if err := os.MkdirAll(c.Paths.CorpusDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.CorpusDir, err)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
