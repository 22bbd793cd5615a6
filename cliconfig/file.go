package cliconfig

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/buildkite/lexan/internal/osutil"
)

// File is a lexan config file: one `key=value` (or `key: value`) pair per
// line, where each key is the long name of a command line flag.
type File struct {
	Path string

	// Config holds the parsed pairs once Load has been called.
	Config map[string]string
}

func (f *File) Load() error {
	f.Config = map[string]string{}

	absolutePath, err := f.AbsolutePath()
	if err != nil {
		return fmt.Errorf("getting absolute path for %s: %w", f.Path, err)
	}

	file, err := os.Open(absolutePath)
	if err != nil {
		return fmt.Errorf("opening file %s: %w", f.Path, err)
	}
	defer file.Close() //nolint:errcheck // it's only open for reading

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if isIgnoredLine(line) {
			continue
		}

		key, value, err := parseLine(line)
		if err != nil {
			return fmt.Errorf("parsing config line %d: %w", lineNum, err)
		}
		f.Config[key] = value
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading file %s: %w", f.Path, err)
	}
	return nil
}

func (f File) AbsolutePath() (string, error) {
	return osutil.NormalizeFilePath(f.Path)
}

// Exists reports whether the file is present. A path that can't be made
// absolute is treated as missing.
func (f File) Exists() bool {
	absolutePath, err := f.AbsolutePath()
	if err != nil {
		return false
	}
	return osutil.FileExists(absolutePath)
}

// This file parsing code was adapted from:
// https://github.com/joho/godotenv/blob/master/godotenv.go
//
// The project is released under an MIT License, which can be seen here:
// https://github.com/joho/godotenv/blob/master/LICENCE
func parseLine(line string) (key, value string, err error) {
	if len(line) == 0 {
		return "", "", errors.New("zero length string")
	}

	line = stripComment(line)

	k, v, ok := strings.Cut(line, "=")
	if !ok {
		k, v, ok = strings.Cut(line, ":")
	}
	if !ok {
		return "", "", fmt.Errorf("can't separate key from value in string %q, no valid separators (= or :) found", line)
	}

	key = strings.TrimSpace(strings.TrimPrefix(k, "export"))
	if key == "" {
		return "", "", fmt.Errorf("missing key in string %q", line)
	}

	value = strings.TrimSpace(v)
	if strings.Count(value, "\"") == 2 || strings.Count(value, "'") == 2 {
		value = strings.Trim(value, "\"'")
		value = strings.ReplaceAll(value, "\\\"", "\"")
		value = strings.ReplaceAll(value, "\\n", "\n")
	}

	return key, value, nil
}

// stripComment drops a trailing `# comment`, leaving hashes inside quotes
// alone.
func stripComment(line string) string {
	var quote rune
	for i, r := range line {
		switch {
		case quote != 0 && r == quote:
			quote = 0
		case quote == 0 && (r == '"' || r == '\''):
			quote = r
		case quote == 0 && r == '#':
			return line[:i]
		}
	}
	return line
}

func isIgnoredLine(line string) bool {
	trimmedLine := strings.TrimSpace(line)
	return len(trimmedLine) == 0 || strings.HasPrefix(trimmedLine, "#")
}
