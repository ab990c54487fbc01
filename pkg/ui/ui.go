// Package ui renders command results in the format selected with
// --output-format: styled text for people, JSON, YAML or TOML for scripts.
package ui

import (
	"fmt"
	"io"

	"github.com/typst-community/utpm/pkg/ui/structured"
	"github.com/typst-community/utpm/pkg/ui/text"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// RenderResult renders a command result
	RenderResult(result interface{}) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a renderer writing format to output.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatText:
		return text.New(output), nil
	case FormatJSON:
		return structured.New(output, structured.JSON), nil
	case FormatYAML:
		return structured.New(output, structured.YAML), nil
	case FormatTOML:
		return structured.New(output, structured.TOML), nil
	default:
		return nil, fmt.Errorf("unknown format: %v", format)
	}
}
