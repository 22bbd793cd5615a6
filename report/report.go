// Package report renders classification results as tables or structured
// documents, and writes them to the console and to files.
package report

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/buildkite/lexan/internal/tempfile"
	"github.com/buildkite/lexan/lexer"
	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
	"gopkg.in/yaml.v3"
)

const (
	columnWidth = 20
	ruleWidth   = 2 * columnWidth
)

// Reporter renders a sequence of results. Results are always rendered in the
// order given.
type Reporter interface {
	Report(w io.Writer, results []lexer.Result) error
}

// New returns the Reporter for format. Structured formats are stamped with a
// fresh run ID.
func New(format Format) (Reporter, error) {
	switch format {
	case FormatTable:
		return &TableReporter{}, nil
	case FormatConsole:
		return &TableReporter{Framed: true}, nil
	case FormatJSON:
		return &DocumentReporter{RunID: uuid.NewString()}, nil
	case FormatYAML:
		return &DocumentReporter{RunID: uuid.NewString(), YAML: true}, nil
	default:
		return nil, fmt.Errorf("unknown report format %v", format)
	}
}

// TableReporter renders two fixed-width columns, token kind and lexeme.
type TableReporter struct {
	// Framed puts rules of '=' above and below the header and after the last
	// row, instead of a single rule of '-' under the header.
	Framed bool
}

func (r *TableReporter) Report(w io.Writer, results []lexer.Result) error {
	bw := bufio.NewWriter(w)

	if r.Framed {
		fmt.Fprintln(bw, strings.Repeat("=", ruleWidth))
		writeRow(bw, "Token", "Lexema")
		fmt.Fprintln(bw, strings.Repeat("=", ruleWidth))
	} else {
		writeRow(bw, "Token", "Lexema")
		fmt.Fprintln(bw, strings.Repeat("-", ruleWidth))
	}

	for _, res := range results {
		writeRow(bw, res.Kind, res.Lexeme)
	}

	if r.Framed {
		fmt.Fprintln(bw, strings.Repeat("=", ruleWidth))
	}

	return bw.Flush()
}

// WriteEntries renders a keyword table as lexeme and kind columns, in
// dictionary order.
func WriteEntries(w io.Writer, entries []lexer.Entry) error {
	bw := bufio.NewWriter(w)
	writeRow(bw, "Lexema", "Token")
	fmt.Fprintln(bw, strings.Repeat("-", ruleWidth))
	for _, e := range entries {
		writeRow(bw, e.Lexeme, e.Kind)
	}
	return bw.Flush()
}

// WriteKeywords renders a keyword table in format. The structured formats
// encode it as a single lexeme to kind mapping, in dictionary order, which
// can be loaded back as a dictionary.
func WriteKeywords(w io.Writer, table *lexer.KeywordTable, format Format) error {
	switch format {
	case FormatTable, FormatConsole:
		return WriteEntries(w, table.Entries())
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(table); err != nil {
			return fmt.Errorf("encoding JSON keywords: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(table); err != nil {
			return fmt.Errorf("encoding YAML keywords: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown report format %v", format)
	}
}

func writeRow(w io.Writer, left, right string) {
	fmt.Fprintf(w, "%-*s %-*s\n", columnWidth, left, columnWidth, right)
}

// DocumentReporter renders results, plus a summary, as a single JSON or YAML
// document.
type DocumentReporter struct {
	RunID string
	YAML  bool
}

type document struct {
	RunID   string      `json:"run_id" yaml:"run_id"`
	Tokens  []token     `json:"tokens" yaml:"tokens"`
	Summary lexer.Stats `json:"summary" yaml:"summary"`
}

type token struct {
	Kind    string        `json:"kind" yaml:"kind"`
	Lexeme  string        `json:"lexeme" yaml:"lexeme"`
	Outcome lexer.Outcome `json:"outcome" yaml:"outcome"`
}

func (r *DocumentReporter) Report(w io.Writer, results []lexer.Result) error {
	doc := document{
		RunID:   r.RunID,
		Tokens:  make([]token, 0, len(results)),
		Summary: lexer.TallyResults(results),
	}
	for _, res := range results {
		doc.Tokens = append(doc.Tokens, token{Kind: res.Kind, Lexeme: res.Lexeme, Outcome: res.Outcome})
	}

	if r.YAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding YAML report: %w", err)
		}
		return enc.Close()
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON report: %w", err)
	}
	if err := ValidateDocument(context.Background(), data); err != nil {
		return err
	}

	_, err = w.Write(append(data, '\n'))
	return err
}

// WriteFile renders results into the file at path, replacing it atomically.
// Paths ending in .gz are gzip compressed.
func WriteFile(path string, r Reporter, results []lexer.Result) error {
	err := tempfile.WriteFile(path, 0o644, func(w io.Writer) error {
		if !strings.HasSuffix(path, ".gz") {
			return r.Report(w, results)
		}

		zw := gzip.NewWriter(w)
		if err := r.Report(zw, results); err != nil {
			return err
		}
		return zw.Close()
	})
	if err != nil {
		return fmt.Errorf("writing report to %s: %w", path, err)
	}
	return nil
}
