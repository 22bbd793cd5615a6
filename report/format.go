package report

import (
	"fmt"
	"slices"
	"strings"
)

// Format selects how results are rendered.
type Format int

const (
	// FormatTable is the plain fixed-width table written to report files.
	FormatTable Format = iota
	// FormatConsole is the table framed with rules of '=', as echoed to the
	// terminal.
	FormatConsole
	FormatJSON
	FormatYAML
)

var formatNames = []string{"table", "console", "json", "yaml"}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// ParseFormat parses a format name as given on the command line.
func ParseFormat(s string) (Format, error) {
	i := slices.Index(formatNames, strings.ToLower(strings.TrimSpace(s)))
	if i < 0 {
		return 0, fmt.Errorf("invalid report format %q, must be one of %q", s, formatNames)
	}
	return Format(i), nil
}

// Destination says where a report goes.
type Destination int

const (
	DestinationBoth Destination = iota
	DestinationConsole
	DestinationFile
)

var destinationNames = []string{"both", "console", "file"}

func (d Destination) String() string {
	if d < 0 || int(d) >= len(destinationNames) {
		return fmt.Sprintf("Destination(%d)", int(d))
	}
	return destinationNames[d]
}

// ParseDestination parses a destination name as given on the command line.
func ParseDestination(s string) (Destination, error) {
	i := slices.Index(destinationNames, strings.ToLower(strings.TrimSpace(s)))
	if i < 0 {
		return 0, fmt.Errorf("invalid report destination %q, must be one of %q", s, destinationNames)
	}
	return Destination(i), nil
}

// Console reports whether the report should be printed.
func (d Destination) Console() bool {
	return d == DestinationBoth || d == DestinationConsole
}

// File reports whether the report should be written to a file.
func (d Destination) File() bool {
	return d == DestinationBoth || d == DestinationFile
}
