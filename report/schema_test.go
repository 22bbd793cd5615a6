package report_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/buildkite/lexan/lexer"
	"github.com/buildkite/lexan/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDocument(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	r, err := report.New(report.FormatJSON)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Report(&buf, results))
	assert.NoError(t, report.ValidateDocument(ctx, buf.Bytes()))

	buf.Reset()
	require.NoError(t, r.Report(&buf, nil))
	assert.NoError(t, report.ValidateDocument(ctx, buf.Bytes()), "empty reports are still valid")
}

func TestValidateDocumentRejects(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	for name, doc := range map[string]string{
		"missing summary": `{"run_id": "x", "tokens": []}`,
		"bad outcome":     `{"run_id": "x", "tokens": [{"kind": "K", "lexeme": "k", "outcome": "maybe"}], "summary": {"total": 1, "keywords": 1, "identifiers": 0, "errors": 0, "by_kind": {"K": 1}}}`,
		"empty kind":      `{"run_id": "x", "tokens": [{"kind": "", "lexeme": "k", "outcome": "keyword"}], "summary": {"total": 1, "keywords": 1, "identifiers": 0, "errors": 0, "by_kind": {"": 1}}}`,
	} {
		assert.Error(t, report.ValidateDocument(ctx, []byte(doc)), name)
	}

	assert.Error(t, report.ValidateDocument(ctx, []byte("{not json")))
}

func TestDocumentReporterEmptyLexeme(t *testing.T) {
	t.Parallel()

	table, _ := lexer.NewKeywordTable(nil)
	res := lexer.NewClassifier(table).Classify("")

	var buf bytes.Buffer
	require.NoError(t, (&report.DocumentReporter{RunID: "run-3"}).Report(&buf, []lexer.Result{res}))
	assert.NoError(t, report.ValidateDocument(context.Background(), buf.Bytes()))
}

func TestDocumentReporterRejectsInvalidDocument(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := (&report.DocumentReporter{RunID: "run-4"}).Report(&buf, []lexer.Result{
		{Outcome: lexer.OutcomeKeyword, Kind: "", Lexeme: "if"},
	})
	assert.ErrorContains(t, err, "invalid report")
	assert.Zero(t, buf.Len(), "nothing is written for an invalid document")
}
