// Package source splits input text into the whitespace-delimited tokens the
// lexer classifies.
package source

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
)

// MaxScanSize lifts bufio.Scanner's 64KiB limit on a single token or line;
// only available memory bounds it.
const MaxScanSize = math.MaxInt

// Stdin is the path that makes ReadFile read standard input.
const Stdin = "-"

// LoadError is returned when the input text can't be read.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("couldn't read input %q: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Tokenize returns the whitespace-separated words of r in order.
func Tokenize(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxScanSize)
	scanner.Split(bufio.ScanWords)

	var tokens []string
	for scanner.Scan() {
		tokens = append(tokens, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("tokenizing after %d tokens: %w", len(tokens), err)
	}
	return tokens, nil
}

// ReadFile tokenizes the file at path, or stdin if path is "-".
func ReadFile(path string) ([]string, error) {
	return readFile(path, os.Stdin)
}

func readFile(path string, stdin io.Reader) ([]string, error) {
	if path == Stdin {
		tokens, err := Tokenize(stdin)
		if err != nil {
			return nil, &LoadError{Path: "(stdin)", Err: err}
		}
		return tokens, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close() //nolint:errcheck // it's only open for reading

	tokens, err := Tokenize(f)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return tokens, nil
}
