// Package logger provides the leveled console logger used by lexan.
//
// Log lines go to stderr by default so that reports printed to stdout stay
// clean enough to pipe into other tools.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

const (
	nocolor   = "0"
	red       = "31"
	green     = "38;5;48"
	yellow    = "33"
	gray      = "38;5;251"
	graybold  = "1;38;5;251"
	lightgray = "38;5;243"
	cyan      = "1;36"
)

const DateFormat = "2006-01-02 15:04:05"

var windowsColors bool

// Logger is the logging interface every lexan component accepts.
type Logger interface {
	Debug(format string, v ...any)
	Error(format string, v ...any)
	Fatal(format string, v ...any)
	Notice(format string, v ...any)
	Warn(format string, v ...any)
	Info(format string, v ...any)

	WithFields(fields ...Field) Logger
	SetLevel(level Level)
	Level() Level
}

// ConsoleLogger is a Logger that filters by level and hands each line to a
// Printer.
type ConsoleLogger struct {
	level   Level
	exitFn  func(int)
	fields  Fields
	printer Printer
}

// NewConsoleLogger returns a ConsoleLogger at NOTICE level. exitFn is called
// with status 1 after a Fatal message.
func NewConsoleLogger(printer Printer, exitFn func(int)) Logger {
	return &ConsoleLogger{
		level:   NOTICE,
		printer: printer,
		exitFn:  exitFn,
	}
}

// WithFields returns a copy of the logger with the provided fields appended.
func (l *ConsoleLogger) WithFields(fields ...Field) Logger {
	clone := *l
	clone.fields = make(Fields, 0, len(l.fields)+len(fields))
	clone.fields.Add(l.fields...)
	clone.fields.Add(fields...)
	return &clone
}

// SetLevel sets the minimum level that will be printed.
func (l *ConsoleLogger) SetLevel(level Level) {
	l.level = level
}

func (l *ConsoleLogger) Level() Level {
	return l.level
}

func (l *ConsoleLogger) Debug(format string, v ...any) {
	if l.level == DEBUG {
		l.printer.Print(DEBUG, fmt.Sprintf(format, v...), l.fields)
	}
}

func (l *ConsoleLogger) Error(format string, v ...any) {
	if l.level <= ERROR {
		l.printer.Print(ERROR, fmt.Sprintf(format, v...), l.fields)
	}
}

func (l *ConsoleLogger) Fatal(format string, v ...any) {
	l.printer.Print(FATAL, fmt.Sprintf(format, v...), l.fields)
	l.exitFn(1)
}

func (l *ConsoleLogger) Notice(format string, v ...any) {
	if l.level <= NOTICE {
		l.printer.Print(NOTICE, fmt.Sprintf(format, v...), l.fields)
	}
}

func (l *ConsoleLogger) Info(format string, v ...any) {
	if l.level <= INFO {
		l.printer.Print(INFO, fmt.Sprintf(format, v...), l.fields)
	}
}

func (l *ConsoleLogger) Warn(format string, v ...any) {
	if l.level <= WARN {
		l.printer.Print(WARN, fmt.Sprintf(format, v...), l.fields)
	}
}

// Printer renders a single log line.
type Printer interface {
	Print(level Level, msg string, fields Fields)
}

// TextPrinter prints human readable lines, colored when Colors is set.
type TextPrinter struct {
	Colors bool
	Writer io.Writer

	mu sync.Mutex
}

func NewTextPrinter(w io.Writer) *TextPrinter {
	return &TextPrinter{
		Writer: w,
		Colors: ColorsSupported(w),
	}
}

func (l *TextPrinter) Print(level Level, msg string, fields Fields) {
	now := time.Now().Format(DateFormat)

	var line strings.Builder

	if l.Colors {
		levelColor := green
		messageColor := nocolor
		fieldColor := graybold

		switch level {
		case DEBUG:
			levelColor = gray
			messageColor = gray
		case NOTICE:
			levelColor = cyan
		case WARN:
			levelColor = yellow
		case ERROR, FATAL:
			levelColor = red
			if level == FATAL {
				messageColor = red
			}
		}

		fmt.Fprintf(&line, "\x1b[%sm%s %-6s\x1b[0m \x1b[%sm%s\x1b[0m", levelColor, now, level, messageColor, msg)

		for _, field := range fields {
			fmt.Fprintf(&line, " \x1b[%sm%s=\x1b[0m\x1b[%sm%s\x1b[0m", fieldColor, field.Key(), lightgray, field.String())
		}
	} else {
		fmt.Fprintf(&line, "%s %-6s %s", now, level, msg)

		for _, field := range fields {
			fmt.Fprintf(&line, " %s=%s", field.Key(), field.String())
		}
	}

	line.WriteByte('\n')

	// Make sure we're only outputting a line one at a time
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprint(l.Writer, line.String())
}

// JSONPrinter prints one JSON object per line with ts, level and msg keys
// alongside any fields.
type JSONPrinter struct {
	Writer io.Writer

	mu sync.Mutex
}

func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{
		Writer: w,
	}
}

func (p *JSONPrinter) Print(level Level, msg string, fields Fields) {
	line := make(map[string]string, len(fields)+3)
	line["ts"] = time.Now().Format(time.RFC3339)
	line["level"] = level.String()
	line["msg"] = msg

	for _, field := range fields {
		line[field.Key()] = field.String()
	}

	b, err := json.Marshal(line)
	if err != nil {
		b = fmt.Appendf(nil, `{"level":"ERROR","msg":"marshalling log line: %v"}`, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.Writer, "%s\n", b)
}

// ColorsSupported reports whether w is a terminal that understands ANSI
// escape codes.
func ColorsSupported(w io.Writer) bool {
	// Color support for windows is set in init
	if runtime.GOOS == "windows" && !windowsColors {
		return false
	}

	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Discard is a Logger that throws away every message.
var Discard = &ConsoleLogger{
	level:   FATAL + 1,
	printer: &TextPrinter{Writer: io.Discard},
	exitFn:  func(int) {},
}
