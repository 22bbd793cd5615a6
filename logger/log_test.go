package logger_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/buildkite/lexan/logger"
)

func TestConsoleLogger(t *testing.T) {
	t.Parallel()

	b := &bytes.Buffer{}
	exitCode := 0

	printer := logger.NewTextPrinter(b)
	printer.Colors = false

	l := logger.NewConsoleLogger(printer, func(c int) {
		exitCode = c
	})
	l.SetLevel(logger.INFO)

	l.Debug("Debug %q", "llamas")
	l.Info("Info %q", "llamas")
	l.Warn("Warn %q", "llamas")
	l.Error("Error %q", "llamas")
	l.Fatal("Fatal %q", "llamas")

	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")

	if len(lines) != 4 {
		t.Fatalf("bad number of lines, got %d", len(lines))
	}

	for i, want := range []string{`Info "llamas"`, `Warn "llamas"`, `Error "llamas"`, `Fatal "llamas"`} {
		if !strings.HasSuffix(lines[i], want) {
			t.Errorf("line %d = %q, want suffix %q", i, lines[i], want)
		}
	}

	if exitCode != 1 {
		t.Fatalf("exit code bad, got %d", exitCode)
	}
}

func TestConsoleLoggerWithFields(t *testing.T) {
	t.Parallel()

	b := &bytes.Buffer{}
	printer := logger.NewTextPrinter(b)
	printer.Colors = false

	l := logger.NewConsoleLogger(printer, func(int) {})
	l = l.WithFields(logger.StringField("dictionary", "diccionario.txt"))
	l.Notice("Loaded")

	if msg := b.String(); !strings.HasSuffix(msg, "Loaded dictionary=diccionario.txt\n") {
		t.Fatalf("bad message, got %q", msg)
	}
}

func TestTextPrinter(t *testing.T) {
	t.Parallel()

	b := &bytes.Buffer{}

	printer := logger.NewTextPrinter(b)
	printer.Colors = false

	printer.Print(logger.INFO, "tokens classified", logger.Fields{logger.IntField("count", 4)})

	if msg := b.String(); !strings.HasSuffix(msg, "tokens classified count=4\n") {
		t.Fatalf("bad message, got %q", msg)
	}
}

func TestJSONPrinter(t *testing.T) {
	t.Parallel()

	b := &bytes.Buffer{}

	printer := logger.NewJSONPrinter(b)
	printer.Print(logger.INFO, "tokens classified", logger.Fields{logger.StringField("key", "val")})

	var results map[string]any
	if err := json.Unmarshal(b.Bytes(), &results); err != nil {
		t.Fatalf("bad json: %v", err)
	}

	if val, ok := results["key"]; !ok || val != "val" {
		t.Fatalf("bad key, got %v", val)
	}

	if val, ok := results["msg"]; !ok || val != "tokens classified" {
		t.Fatalf("bad msg, got %v", val)
	}

	if val, ok := results["ts"]; !ok || val == "" {
		t.Fatalf("bad ts, got %v", val)
	}

	if val, ok := results["level"]; !ok || val != "INFO" {
		t.Fatalf("bad level, got %v", val)
	}
}

func TestJSONPrinterSpecialCharacters(t *testing.T) {
	t.Parallel()

	b := &bytes.Buffer{}

	printer := logger.NewJSONPrinter(b)
	printer.Print(logger.INFO, "\x1b", logger.Fields{logger.StringField("key", "val")})

	var results map[string]any
	if err := json.Unmarshal(b.Bytes(), &results); err != nil {
		t.Fatalf("bad json: %v", err)
	}
}

func TestLevelFromString(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		in      string
		want    logger.Level
		wantErr bool
	}{
		{in: "debug", want: logger.DEBUG},
		{in: "NOTICE", want: logger.NOTICE},
		{in: "Warn", want: logger.WARN},
		{in: "fatal", want: logger.FATAL},
		{in: "llamas", wantErr: true},
	} {
		got, err := logger.LevelFromString(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("LevelFromString(%q) error = nil, want error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("LevelFromString(%q) error = %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("LevelFromString(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestColorsSupportedFollowsWriter(t *testing.T) {
	t.Parallel()

	if logger.ColorsSupported(&bytes.Buffer{}) {
		t.Error("ColorsSupported(buffer) = true, want false")
	}

	// A redirected stderr is a plain file, not a terminal.
	f, err := os.Create(filepath.Join(t.TempDir(), "log.txt"))
	if err != nil {
		t.Fatalf("os.Create() = %v", err)
	}
	defer f.Close() //nolint:errcheck // test file

	if logger.ColorsSupported(f) {
		t.Error("ColorsSupported(file) = true, want false")
	}
	if logger.NewTextPrinter(f).Colors {
		t.Error("NewTextPrinter(file).Colors = true, want false")
	}
}
