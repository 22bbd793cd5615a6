package clicommand

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintMessageAndReturnExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantOut  string
	}{
		{name: "nil", err: nil, wantCode: 0, wantOut: ""},
		{name: "plain", err: errors.New("boom"), wantCode: 1, wantOut: "lexan: fatal: boom\n"},
		{name: "exit error", err: NewExitError(2, errors.New("found 3 lexical errors")), wantCode: 2, wantOut: "lexan: fatal: found 3 lexical errors\n"},
		{name: "wrapped exit error", err: fmt.Errorf("analyze: %w", NewExitError(3, errors.New("x"))), wantCode: 3, wantOut: "lexan: fatal: analyze: x\n"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			assert.Equal(t, test.wantCode, PrintMessageAndReturnExitCode(&out, test.err))
			assert.Equal(t, test.wantOut, out.String())
		})
	}
}

func TestExitErrorIs(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("wrapped: %w", NewExitError(2, errors.New("inner")))
	assert.ErrorIs(t, err, NewExitError(2, nil))
	assert.NotErrorIs(t, err, NewExitError(1, nil))
}
