package logger

import (
	"fmt"
	"strings"
	"sync"
)

// Buffer is a Logger implementation intended for testing;
// messages are stored internally.
type Buffer struct {
	mu       sync.Mutex
	Messages []string
}

// NewBuffer creates a new Buffer with Messages slice initialized.
// This makes it simpler to assert empty []string when no log messages
// have been sent; otherwise Messages would be nil.
func NewBuffer() *Buffer {
	return &Buffer{
		Messages: make([]string, 0),
	}
}

func (b *Buffer) record(level Level, fields Fields, format string, v ...any) {
	var msg strings.Builder
	msg.WriteString("[" + strings.ToLower(level.String()) + "] " + fmt.Sprintf(format, v...))
	for _, field := range fields {
		fmt.Fprintf(&msg, " %s=%s", field.Key(), field.String())
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.Messages = append(b.Messages, msg.String())
}

func (b *Buffer) Debug(format string, v ...any)  { b.record(DEBUG, nil, format, v...) }
func (b *Buffer) Error(format string, v ...any)  { b.record(ERROR, nil, format, v...) }
func (b *Buffer) Fatal(format string, v ...any)  { b.record(FATAL, nil, format, v...) }
func (b *Buffer) Notice(format string, v ...any) { b.record(NOTICE, nil, format, v...) }
func (b *Buffer) Warn(format string, v ...any)   { b.record(WARN, nil, format, v...) }
func (b *Buffer) Info(format string, v ...any)   { b.record(INFO, nil, format, v...) }

// Filter returns the recorded messages at the given level.
func (b *Buffer) Filter(level Level) []string {
	prefix := "[" + strings.ToLower(level.String()) + "] "

	b.mu.Lock()
	defer b.mu.Unlock()

	var out []string
	for _, msg := range b.Messages {
		if strings.HasPrefix(msg, prefix) {
			out = append(out, msg)
		}
	}
	return out
}

// WithFields returns a Logger that records into b, with the fields appended
// to each message as key=value pairs.
func (b *Buffer) WithFields(fields ...Field) Logger {
	return &fieldBuffer{buf: b, fields: fields}
}

func (b *Buffer) SetLevel(level Level) {}
func (b *Buffer) Level() Level {
	return 0
}

type fieldBuffer struct {
	buf    *Buffer
	fields Fields
}

func (f *fieldBuffer) Debug(format string, v ...any)  { f.buf.record(DEBUG, f.fields, format, v...) }
func (f *fieldBuffer) Error(format string, v ...any)  { f.buf.record(ERROR, f.fields, format, v...) }
func (f *fieldBuffer) Fatal(format string, v ...any)  { f.buf.record(FATAL, f.fields, format, v...) }
func (f *fieldBuffer) Notice(format string, v ...any) { f.buf.record(NOTICE, f.fields, format, v...) }
func (f *fieldBuffer) Warn(format string, v ...any)   { f.buf.record(WARN, f.fields, format, v...) }
func (f *fieldBuffer) Info(format string, v ...any)   { f.buf.record(INFO, f.fields, format, v...) }

func (f *fieldBuffer) WithFields(fields ...Field) Logger {
	combined := make(Fields, 0, len(f.fields)+len(fields))
	combined.Add(f.fields...)
	combined.Add(fields...)
	return &fieldBuffer{buf: f.buf, fields: combined}
}

func (f *fieldBuffer) SetLevel(level Level) {}
func (f *fieldBuffer) Level() Level {
	return 0
}
