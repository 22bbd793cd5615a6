package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/buildkite/lexan/clicommand"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runApp runs lexan with args in dir and returns stdout and the exit code.
func runApp(t *testing.T, dir string, args ...string) (string, int) {
	t.Helper()
	t.Chdir(dir)
	t.Setenv("HOME", dir)

	var stdout, stderr bytes.Buffer
	app := newApp()
	app.Writer = &stdout
	app.ErrWriter = &stderr

	code := clicommand.PrintMessageAndReturnExitCode(&stderr, app.Run(append([]string{"lexan"}, args...)))
	t.Logf("stderr: %s", stderr.String())
	return stdout.String(), code
}

func writeFixtures(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "diccionario.txt"), []byte("if IF\nwhile WHILE\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "texto_entrada.txt"), []byte("if x1 1x while\n"), 0o600))
}

func TestAnalyzeWithDefaultFiles(t *testing.T) {
	dir := t.TempDir()
	writeFixtures(t, dir)

	stdout, code := runApp(t, dir, "analyze", "--no-color")
	require.Equal(t, 0, code)

	assert.Contains(t, stdout, "LEXICAL ANALYZER")
	assert.Contains(t, stdout, "Analysis complete: 4 tokens processed (2 keywords, 1 identifier, 1 lexical error)")
	assert.Contains(t, stdout, "Results saved to: tokens_salida.txt")

	got, err := os.ReadFile(filepath.Join(dir, "tokens_salida.txt"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(got)), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "IF                   if", strings.TrimRight(lines[2], " "))
	assert.Equal(t, "IDENTIFICADOR        x1", strings.TrimRight(lines[3], " "))
	assert.Equal(t, "ERROR_LEXICO         1x", strings.TrimRight(lines[4], " "))
	assert.Equal(t, "WHILE                while", strings.TrimRight(lines[5], " "))
}

func TestAnalyzeStrict(t *testing.T) {
	dir := t.TempDir()
	writeFixtures(t, dir)

	_, code := runApp(t, dir, "analyze", "--strict", "--destination", "console")
	assert.Equal(t, 2, code)
	assert.NoFileExists(t, filepath.Join(dir, "tokens_salida.txt"))
}

func TestAnalyzeMissingDictionary(t *testing.T) {
	dir := t.TempDir()

	_, code := runApp(t, dir, "analyze", "--dictionary", "nope.txt")
	assert.Equal(t, 1, code)
}

func TestAnalyzeConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeFixtures(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lexan.cfg"), []byte("destination=file\nformat=json\noutput=tokens.json\nquiet=true\n"), 0o600))

	stdout, code := runApp(t, dir, "analyze")
	require.Equal(t, 0, code)
	assert.Empty(t, stdout)

	got, err := os.ReadFile(filepath.Join(dir, "tokens.json"))
	require.NoError(t, err)
	assert.Contains(t, string(got), `"kind": "IDENTIFICADOR"`)
}
