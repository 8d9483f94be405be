package bibtex

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
)

// Parse reads every entry from a BibTeX document. Entry types and field keys
// are lowercased; citation keys and field values are kept verbatim (values
// lose only their outer braces or quotes). @comment, @preamble, and @string
// blocks are skipped. Text between entries is ignored.
func Parse(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read bibtex input: %w", err)
	}
	return parseEntries(string(data))
}

// ParseString parses BibTeX entries from an in-memory document.
func ParseString(input string) ([]Record, error) {
	return parseEntries(input)
}

// ParseFile parses every entry in the named BibTeX file.
func ParseFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bibtex file: %w", err)
	}
	defer f.Close()
	records, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return records, nil
}

type parser struct {
	input string
	pos   int
	line  int
}

func parseEntries(input string) ([]Record, error) {
	p := &parser{input: input, line: 1}
	var records []Record
	for {
		if !p.seekEntry() {
			return records, nil
		}
		entryType, err := p.readEntryType()
		if err != nil {
			return nil, err
		}
		switch entryType {
		case "comment", "preamble", "string":
			if err := p.skipBlock(); err != nil {
				return nil, err
			}
			continue
		}
		record, err := p.readEntry(entryType)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
}

// seekEntry advances to the next '@' and consumes it.
func (p *parser) seekEntry() bool {
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		p.advance()
		if c == '@' {
			return true
		}
	}
	return false
}

func (p *parser) readEntryType() (string, error) {
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c == '{' || c == '(' {
			name := strings.ToLower(strings.TrimSpace(p.input[start:p.pos]))
			p.advance() // consume the opening brace
			if name == "" {
				return "", p.errorf("entry type missing before %q", string(c))
			}
			return name, nil
		}
		if c == '@' || c == '}' {
			return "", p.errorf("malformed entry header")
		}
		p.advance()
	}
	return "", p.errorf("unexpected end of input in entry header")
}

// skipBlock consumes a brace-balanced block body, used for @comment and friends.
func (p *parser) skipBlock() error {
	depth := 1
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				p.advance()
				return nil
			}
		}
		p.advance()
	}
	return p.errorf("unterminated block")
}

func (p *parser) readEntry(entryType string) (Record, error) {
	id, err := p.readCitationKey()
	if err != nil {
		return Record{}, err
	}
	record := NewRecord(entryType, id)
	for {
		p.skipSpace()
		if p.pos >= len(p.input) {
			return Record{}, p.errorf("unexpected end of input in entry %q", id)
		}
		if p.input[p.pos] == '}' {
			p.advance()
			return record, nil
		}
		key, err := p.readFieldKey(id)
		if err != nil {
			return Record{}, err
		}
		if key == "" {
			// A trailing comma before the closing brace.
			continue
		}
		value, err := p.readFieldValue(id)
		if err != nil {
			return Record{}, err
		}
		record.Set(key, value)
		p.skipSpace()
		if p.pos < len(p.input) && p.input[p.pos] == ',' {
			p.advance()
		}
	}
}

func (p *parser) readCitationKey() (string, error) {
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c == ',' {
			key := strings.TrimSpace(p.input[start:p.pos])
			p.advance()
			if key == "" {
				return "", p.errorf("empty citation key")
			}
			return key, nil
		}
		if c == '}' {
			return "", p.errorf("entry has no fields and no citation key terminator")
		}
		p.advance()
	}
	return "", p.errorf("unexpected end of input in citation key")
}

func (p *parser) readFieldKey(id string) (string, error) {
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		switch c {
		case '=':
			key := strings.ToLower(strings.TrimSpace(p.input[start:p.pos]))
			p.advance()
			return key, nil
		case '}':
			// End of entry with no further field; leave the brace in place.
			if strings.TrimSpace(p.input[start:p.pos]) != "" {
				return "", p.errorf("field without value in entry %q", id)
			}
			return "", nil
		case ',':
			if strings.TrimSpace(p.input[start:p.pos]) != "" {
				return "", p.errorf("field without value in entry %q", id)
			}
			start = p.pos + 1
		}
		p.advance()
	}
	return "", p.errorf("unexpected end of input in field of entry %q", id)
}

func (p *parser) readFieldValue(id string) (string, error) {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return "", p.errorf("unexpected end of input in value of entry %q", id)
	}
	switch p.input[p.pos] {
	case '{':
		return p.readBracedValue(id)
	case '"':
		return p.readQuotedValue(id)
	default:
		return p.readBareValue(), nil
	}
}

// readBracedValue consumes a {...} value, keeping interior braces balanced and
// intact. The outer braces are stripped.
func (p *parser) readBracedValue(id string) (string, error) {
	p.advance() // opening brace
	start := p.pos
	depth := 1
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				value := p.input[start:p.pos]
				p.advance()
				return value, nil
			}
		}
		p.advance()
	}
	return "", p.errorf("unterminated braced value in entry %q", id)
}

func (p *parser) readQuotedValue(id string) (string, error) {
	p.advance() // opening quote
	start := p.pos
	depth := 0
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case '{':
			depth++
		case '}':
			depth--
		case '"':
			if depth == 0 {
				value := p.input[start:p.pos]
				p.advance()
				return value, nil
			}
		}
		p.advance()
	}
	return "", p.errorf("unterminated quoted value in entry %q", id)
}

// readBareValue consumes an unbraced value such as a year or a macro name.
func (p *parser) readBareValue() string {
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c == ',' || c == '}' {
			break
		}
		p.advance()
	}
	return strings.TrimSpace(p.input[start:p.pos])
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && unicode.IsSpace(rune(p.input[p.pos])) {
		p.advance()
	}
}

func (p *parser) advance() {
	if p.pos < len(p.input) {
		if p.input[p.pos] == '\n' {
			p.line++
		}
		p.pos++
	}
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("bibtex: line %d: %s", p.line, fmt.Sprintf(format, args...))
}
