package lexer_test

import (
	"encoding/json"
	"testing"

	"github.com/buildkite/lexan/lexer"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gopkg.in/yaml.v3"
)

func TestNewKeywordTable(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name        string
		entries     []lexer.Entry
		wantSize    int
		wantEntries []lexer.Entry
	}{
		{
			name:     "empty",
			entries:  nil,
			wantSize: 0,
		},
		{
			name: "distinct lexemes",
			entries: []lexer.Entry{
				{Lexeme: "if", Kind: "KW_IF"},
				{Lexeme: "while", Kind: "KW_WHILE"},
			},
			wantSize: 2,
			wantEntries: []lexer.Entry{
				{Lexeme: "if", Kind: "KW_IF"},
				{Lexeme: "while", Kind: "KW_WHILE"},
			},
		},
		{
			name: "duplicate lexeme keeps last kind in first position",
			entries: []lexer.Entry{
				{Lexeme: "x", Kind: "A"},
				{Lexeme: "y", Kind: "C"},
				{Lexeme: "x", Kind: "B"},
			},
			wantSize: 2,
			wantEntries: []lexer.Entry{
				{Lexeme: "x", Kind: "B"},
				{Lexeme: "y", Kind: "C"},
			},
		},
		{
			name: "invalid entries are skipped",
			entries: []lexer.Entry{
				{Lexeme: "", Kind: "KW_EMPTY"},
				{Lexeme: "else", Kind: ""},
				{Lexeme: "for", Kind: "KW_FOR"},
			},
			wantSize: 1,
			wantEntries: []lexer.Entry{
				{Lexeme: "for", Kind: "KW_FOR"},
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			table, size := lexer.NewKeywordTable(tc.entries)
			if size != tc.wantSize {
				t.Errorf("NewKeywordTable(%v) size = %d, want %d", tc.entries, size, tc.wantSize)
			}
			if got := table.Len(); got != size {
				t.Errorf("table.Len() = %d, want %d", got, size)
			}
			if diff := cmp.Diff(tc.wantEntries, table.Entries(), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("table.Entries() diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestKeywordTableLookup(t *testing.T) {
	t.Parallel()

	table, _ := lexer.NewKeywordTable([]lexer.Entry{
		{Lexeme: "x", Kind: "A"},
		{Lexeme: "x", Kind: "B"},
		{Lexeme: "if", Kind: "PALABRA_RESERVADA"},
	})

	for _, tc := range []struct {
		lexeme   string
		wantKind string
		wantOK   bool
	}{
		{lexeme: "x", wantKind: "B", wantOK: true},
		{lexeme: "if", wantKind: "PALABRA_RESERVADA", wantOK: true},
		{lexeme: "IF", wantOK: false},
		{lexeme: " if", wantOK: false},
		{lexeme: "", wantOK: false},
	} {
		kind, ok := table.Lookup(tc.lexeme)
		if kind != tc.wantKind || ok != tc.wantOK {
			t.Errorf("table.Lookup(%q) = (%q, %t), want (%q, %t)", tc.lexeme, kind, ok, tc.wantKind, tc.wantOK)
		}
	}
}

func TestNilKeywordTable(t *testing.T) {
	t.Parallel()

	var table *lexer.KeywordTable
	if kind, ok := table.Lookup("if"); ok {
		t.Errorf("nil table Lookup(%q) = (%q, true), want not found", "if", kind)
	}
	if got := table.Len(); got != 0 {
		t.Errorf("nil table Len() = %d, want 0", got)
	}
	if got := table.Entries(); got != nil {
		t.Errorf("nil table Entries() = %v, want nil", got)
	}
}

func TestKeywordTableMarshal(t *testing.T) {
	t.Parallel()

	table, _ := lexer.NewKeywordTable([]lexer.Entry{
		{Lexeme: "while", Kind: "KW_WHILE"},
		{Lexeme: "if", Kind: "KW_IF"},
		{Lexeme: "while", Kind: "LOOP"},
	})

	gotJSON, err := json.Marshal(table)
	if err != nil {
		t.Fatalf("json.Marshal(table) error = %v", err)
	}
	if got, want := string(gotJSON), `{"while":"LOOP","if":"KW_IF"}`; got != want {
		t.Errorf("json.Marshal(table) = %s, want %s", got, want)
	}

	gotYAML, err := yaml.Marshal(table)
	if err != nil {
		t.Fatalf("yaml.Marshal(table) error = %v", err)
	}
	if diff := cmp.Diff("while: LOOP\nif: KW_IF\n", string(gotYAML)); diff != "" {
		t.Errorf("yaml.Marshal(table) diff (-want +got):\n%s", diff)
	}

	var empty *lexer.KeywordTable
	gotJSON, err = empty.MarshalJSON()
	if err != nil {
		t.Fatalf("nil table MarshalJSON() error = %v", err)
	}
	if got, want := string(gotJSON), "{}"; got != want {
		t.Errorf("nil table MarshalJSON() = %s, want %s", got, want)
	}
}
