package clicommand

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestKeywordsListsDictionaryOrder(t *testing.T) {
	workdir(t, "while WHILE\nif IF\nbroken\nwhile LOOP\n")

	var stdout bytes.Buffer
	app := testApp(t, &stdout, KeywordsCommand)
	require.NoError(t, app.Run([]string{"lexan", "keywords"}))

	want := strings.Join([]string{
		"Lexema               Token",
		strings.Repeat("-", 40),
		"while                LOOP",
		"if                   IF",
		"",
	}, "\n")
	if diff := cmp.Diff(want, trimLines(stdout.String())); diff != "" {
		t.Errorf("stdout diff (-want +got):\n%s", diff)
	}
}

func TestKeywordsYAMLRoundTrips(t *testing.T) {
	dir := workdir(t, "while WHILE\nif IF\n")

	var stdout bytes.Buffer
	app := testApp(t, &stdout, KeywordsCommand)
	require.NoError(t, app.Run([]string{"lexan", "keywords", "--format", "yaml"}))
	require.Equal(t, "while: WHILE\nif: IF\n", stdout.String())

	path := filepath.Join(dir, "keywords.yml")
	require.NoError(t, os.WriteFile(path, stdout.Bytes(), 0o600))

	stdout.Reset()
	app = testApp(t, &stdout, KeywordsCommand)
	require.NoError(t, app.Run([]string{"lexan", "keywords", "--dictionary", path}))
	require.Contains(t, stdout.String(), "while                WHILE")
}

func TestKeywordsMissingDictionary(t *testing.T) {
	workdir(t, "if IF\n")

	var stdout bytes.Buffer
	app := testApp(t, &stdout, KeywordsCommand)
	err := app.Run([]string{"lexan", "keywords", "--dictionary", "missing.txt"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "couldn't load dictionary")
}
