package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format represents the output format type
type Format int

const (
	// FormatText renders human readable output, styled when the terminal allows it
	FormatText Format = iota
	// FormatJSON renders indented JSON
	FormatJSON
	// FormatYAML renders YAML
	FormatYAML
	// FormatTOML renders TOML
	FormatTOML
)

// Formats lists the accepted --output-format values.
var Formats = []string{"text", "json", "yaml", "toml"}

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	default:
		return "unknown"
	}
}

// ParseFormat parses a string into a Format value
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "plain", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return FormatText, fmt.Errorf("unknown output format %q (expected one of %s)", s, strings.Join(Formats, ", "))
	}
}

// ColorSupported reports whether styled output should be written to f.
func ColorSupported(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	return termenv.NewOutput(f).ColorProfile() != termenv.Ascii
}
