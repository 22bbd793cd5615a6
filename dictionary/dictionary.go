// Package dictionary reads keyword dictionaries from disk and turns them into
// lexer.KeywordTables.
//
// Two formats are understood. The text format has one `<lexeme> <kind>` pair
// per line:
//
//	if      PALABRA_RESERVADA
//	while   PALABRA_RESERVADA
//	+       OPERADOR_SUMA
//
// The YAML format (used for .yml and .yaml files) is a single mapping from
// lexeme to kind. In both formats a repeated lexeme takes the last kind given
// for it, and entries that don't fit the format are skipped with a warning.
package dictionary

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/buildkite/lexan/lexer"
	"github.com/buildkite/lexan/logger"
	"github.com/buildkite/lexan/source"
	"gopkg.in/yaml.v3"
)

// ErrEmpty is wrapped in a LoadError when a dictionary has no content at all.
var ErrEmpty = errors.New("dictionary is empty")

// LoadError is returned when a dictionary can't be turned into a table. It is
// always fatal: no partial table accompanies it.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("couldn't load dictionary %q: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

type Format int

const (
	FormatText Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatYAML:
		return "yaml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatForPath picks a format from the file extension.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FormatYAML
	default:
		return FormatText
	}
}

// Stats describes what happened while parsing a dictionary.
type Stats struct {
	// Lines is the number of non-blank lines (or YAML mapping pairs) seen.
	Lines int
	// Loaded is the number of well-formed entries, duplicates included.
	Loaded int
	// Malformed is the number of entries that were skipped.
	Malformed int
}

type loadOptions struct {
	allowEmpty bool
	format     *Format
}

type Option func(*loadOptions)

// AllowEmpty makes Load return an empty table for a dictionary with no
// content instead of failing with ErrEmpty.
func AllowEmpty() Option {
	return func(o *loadOptions) {
		o.allowEmpty = true
	}
}

// WithFormat overrides the format detected from the file extension.
func WithFormat(f Format) Option {
	return func(o *loadOptions) {
		o.format = &f
	}
}

// Load reads the dictionary at path and builds a keyword table from it.
func Load(l logger.Logger, path string, opts ...Option) (*lexer.KeywordTable, Stats, error) {
	o := &loadOptions{}
	for _, opt := range opts {
		opt(o)
	}

	format := FormatForPath(path)
	if o.format != nil {
		format = *o.format
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, &LoadError{Path: path, Err: err}
	}
	defer f.Close() //nolint:errcheck // it's only open for reading

	l = l.WithFields(logger.StringField("dictionary", path))
	l.Debug("Reading %s dictionary", format)

	entries, stats, err := Parse(l, f, format)
	if err != nil {
		return nil, stats, &LoadError{Path: path, Err: err}
	}

	if stats.Lines == 0 && !o.allowEmpty {
		return nil, stats, &LoadError{Path: path, Err: ErrEmpty}
	}

	table, _ := lexer.NewKeywordTable(entries)
	return table, stats, nil
}

// Parse reads dictionary entries from r. Malformed entries are logged as
// warnings and counted in Stats; they never cause an error. Errors are only
// returned when r can't be read or (for YAML) isn't a mapping.
func Parse(l logger.Logger, r io.Reader, format Format) ([]lexer.Entry, Stats, error) {
	switch format {
	case FormatText:
		return parseText(l, r)
	case FormatYAML:
		return parseYAML(l, r)
	default:
		return nil, Stats{}, fmt.Errorf("unknown dictionary format %v", format)
	}
}

func parseText(l logger.Logger, r io.Reader) ([]lexer.Entry, Stats, error) {
	var (
		entries []lexer.Entry
		stats   Stats
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), source.MaxScanSize)
	lineNum := 0
	for scanner.Scan() {
		lineNum++

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		stats.Lines++

		if len(fields) != 2 {
			stats.Malformed++
			l.WithFields(logger.IntField("line", lineNum)).Warn("Skipping malformed dictionary line %q (expected \"<lexeme> <kind>\", got %d fields)", strings.TrimSpace(scanner.Text()), len(fields))
			continue
		}

		entries = append(entries, lexer.Entry{Lexeme: fields[0], Kind: fields[1]})
		stats.Loaded++
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("reading line %d: %w", lineNum+1, err)
	}

	return entries, stats, nil
}

func parseYAML(l logger.Logger, r io.Reader) ([]lexer.Entry, Stats, error) {
	var stats Stats

	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, stats, nil
		}
		return nil, stats, fmt.Errorf("parsing YAML: %w", err)
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, stats, nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return nil, stats, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, stats, fmt.Errorf("line %d, col %d: dictionary must be a mapping of lexeme to kind", root.Line, root.Column)
	}

	// Walk the pairs ourselves rather than decoding into a map so that
	// duplicate lexemes follow the same last-wins rule as the text format.
	entries := make([]lexer.Entry, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		stats.Lines++

		if !isNonEmptyScalar(key) || !isNonEmptyScalar(val) {
			stats.Malformed++
			l.WithFields(logger.IntField("line", key.Line)).Warn("Skipping malformed dictionary entry: lexeme and kind must both be non-empty scalars")
			continue
		}

		entries = append(entries, lexer.Entry{Lexeme: key.Value, Kind: val.Value})
		stats.Loaded++
	}

	return entries, stats, nil
}

func isNonEmptyScalar(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag != "!!null" && n.Value != "" && !strings.ContainsAny(n.Value, " \t\r\n")
}
