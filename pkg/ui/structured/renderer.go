// Package structured renders results as JSON, YAML or TOML for scripts.
package structured

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/typst-community/utpm/pkg/errors"
)

// Encoding selects the serialisation.
type Encoding int

const (
	JSON Encoding = iota
	YAML
	TOML
)

// Renderer serialises results. Errors and messages are wrapped in a one-key
// document so the output always parses.
type Renderer struct {
	output   io.Writer
	encoding Encoding
}

// New creates a structured renderer
func New(output io.Writer, encoding Encoding) *Renderer {
	return &Renderer{output: output, encoding: encoding}
}

// RenderResult serialises result
func (r *Renderer) RenderResult(result interface{}) error {
	return r.encode(result)
}

type errorDoc struct {
	Error   string                 `json:"error" yaml:"error" toml:"error"`
	Code    errors.ErrorCode       `json:"code,omitempty" yaml:"code,omitempty" toml:"code,omitempty"`
	Details map[string]interface{} `json:"details,omitempty" yaml:"details,omitempty" toml:"details,omitempty"`
}

// RenderError serialises err under an "error" key. Coded errors also carry their
// code and details.
func (r *Renderer) RenderError(err error) error {
	doc := errorDoc{Error: err.Error()}
	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		doc.Code = code
		doc.Details = errors.GetErrorDetails(err)
	}
	return r.encode(doc)
}

// RenderMessage serialises msg under a "message" key
func (r *Renderer) RenderMessage(msg string) error {
	return r.encode(map[string]string{"message": msg})
}

func (r *Renderer) encode(v interface{}) error {
	switch r.encoding {
	case JSON:
		enc := json.NewEncoder(r.output)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case YAML:
		enc := yaml.NewEncoder(r.output)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case TOML:
		return toml.NewEncoder(r.output).Encode(v)
	default:
		return fmt.Errorf("unknown encoding %d", r.encoding)
	}
}
