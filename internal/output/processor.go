package output

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"sort"

	"bibmend/internal/bibtex"
	"bibmend/internal/config"
	"bibmend/internal/logging"
)

// ErrInvalidPattern reports an unusable name normalization regex.
var ErrInvalidPattern = errors.New("invalid name normalization pattern")

// containerFields are the fields a name normalization rule applies to.
var containerFields = []string{"journal", "booktitle"}

// Stats counts what a processing pass changed.
type Stats struct {
	DuplicatesRemoved   int
	PreprintsNormalized int
	FieldsRemoved       int
}

type nameRule struct {
	canonical string
	patterns  []*regexp.Regexp
}

// Processor applies the configured output stages to a record list.
type Processor struct {
	cfg    config.Output
	rules  []nameRule
	logger *slog.Logger
}

// New compiles the name normalization rules and returns a ready processor.
// An invalid pattern is a configuration error: it fails the run here,
// before any resolution work starts.
func New(cfg config.Output, logger *slog.Logger) (*Processor, error) {
	rules := make([]nameRule, 0, len(cfg.NameNormalizations))
	for _, normalization := range cfg.NameNormalizations {
		rule := nameRule{canonical: normalization.Name}
		for _, pattern := range normalization.AlternativeNames {
			re, err := regexp.Compile(pattern)
			if err != nil {
				return nil, fmt.Errorf("%w %q for %q: %v", ErrInvalidPattern, pattern, normalization.Name, err)
			}
			rule.patterns = append(rule.patterns, re)
		}
		rules = append(rules, rule)
	}
	return &Processor{
		cfg:    cfg,
		rules:  rules,
		logger: logging.NewComponentLogger(logger, "output"),
	}, nil
}

// Process runs the stages in their fixed order over private copies of the
// records and reports what changed.
func (p *Processor) Process(records []bibtex.Record) ([]bibtex.Record, Stats) {
	working := make([]bibtex.Record, len(records))
	for i, record := range records {
		working[i] = record.Clone()
	}

	var stats Stats
	if p.cfg.Sort {
		sort.SliceStable(working, func(i, j int) bool {
			return working[i].ID < working[j].ID
		})
	}
	p.normalizeNames(working)
	if p.cfg.NormalizePreprints {
		p.normalizePreprints(working, &stats)
	}
	stats.FieldsRemoved = p.removeFields(working)
	if p.cfg.Deduplicate {
		working = p.deduplicate(working, &stats)
	}
	return working, stats
}

// normalizeNames rewrites container fields whose value starts with a match
// of a configured alternative pattern. The match anchors at the beginning
// of the value only; a hit anywhere later leaves the field alone.
func (p *Processor) normalizeNames(records []bibtex.Record) {
	for _, rule := range p.rules {
		for _, re := range rule.patterns {
			for i := range records {
				for _, field := range containerFields {
					value, ok := records[i].Get(field)
					if !ok {
						continue
					}
					if loc := re.FindStringIndex(value); loc != nil && loc[0] == 0 {
						records[i].Set(field, rule.canonical)
					}
				}
			}
		}
	}
}

func (p *Processor) removeFields(records []bibtex.Record) int {
	removed := 0
	for i := range records {
		for _, key := range p.cfg.RemoveFields {
			if records[i].Delete(key) {
				removed++
			}
		}
	}
	return removed
}
