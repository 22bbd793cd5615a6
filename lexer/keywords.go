// Package lexer classifies whitespace-delimited tokens against a keyword
// table, falling back to a generic identifier pattern and finally to a
// lexical error.
package lexer

import "github.com/buildkite/lexan/internal/ordered"

// Entry is a single dictionary line: a lexeme and the kind it maps to.
type Entry struct {
	Lexeme string
	Kind   string
}

// Valid reports whether both halves of the entry are present.
func (e Entry) Valid() bool {
	return e.Lexeme != "" && e.Kind != ""
}

// KeywordTable maps lexemes to token kinds. It is built once and never
// modified afterwards, so a single *KeywordTable can be shared by any number
// of goroutines without locking. A nil *KeywordTable is an empty table.
type KeywordTable struct {
	kinds *ordered.MapSS
}

// NewKeywordTable builds a table from entries, returning it along with the
// number of distinct lexemes it holds. Later entries for the same lexeme
// replace earlier ones. Invalid entries are skipped.
func NewKeywordTable(entries []Entry) (*KeywordTable, int) {
	kinds := ordered.NewMap[string, string](len(entries))
	for _, e := range entries {
		if !e.Valid() {
			continue
		}
		kinds.Set(e.Lexeme, e.Kind)
	}

	t := &KeywordTable{kinds: kinds}
	return t, t.Len()
}

// Lookup returns the kind recorded for lexeme. The match is exact and case
// sensitive.
func (t *KeywordTable) Lookup(lexeme string) (string, bool) {
	if t == nil {
		return "", false
	}
	return t.kinds.Get(lexeme)
}

// Len returns the number of distinct lexemes in the table.
func (t *KeywordTable) Len() int {
	if t == nil {
		return 0
	}
	return t.kinds.Len()
}

// Entries returns the table contents in the order lexemes were first seen,
// each carrying its final kind.
func (t *KeywordTable) Entries() []Entry {
	if t == nil {
		return nil
	}
	entries := make([]Entry, 0, t.kinds.Len())
	_ = t.kinds.Range(func(lexeme, kind string) error {
		entries = append(entries, Entry{Lexeme: lexeme, Kind: kind})
		return nil
	})
	return entries
}

// MarshalJSON encodes the table as an object of lexeme to kind, in the same
// order as Entries.
func (t *KeywordTable) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("{}"), nil
	}
	return t.kinds.MarshalJSON()
}

// MarshalYAML encodes the table as a mapping of lexeme to kind, in the same
// order as Entries. The result can be loaded back as a YAML dictionary.
func (t *KeywordTable) MarshalYAML() (any, error) {
	if t == nil {
		return map[string]string{}, nil
	}
	return t.kinds.MarshalYAML()
}
