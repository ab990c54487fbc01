// Package styles holds the lipgloss styles used by the text renderer.
//
// Styles have semantic names (Success, Package, Path, ...) and adaptive colours,
// both read from the embedded styles.yaml. Rendering falls back to plain text
// when styling is disabled, which the CLI does when stdout is not a terminal.
package styles

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

//go:embed styles.yaml
var defaultStyles []byte

// ColorDef represents an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef represents a style definition in YAML
type StyleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Underline  bool   `yaml:"underline,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
	Background string `yaml:"background,omitempty"`
	MarginLeft int    `yaml:"marginLeft,omitempty"`
}

// Config represents the complete styles configuration
type Config struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

var (
	mu       sync.RWMutex
	registry map[string]lipgloss.Style
	enabled  = true
)

func init() {
	if err := Load(defaultStyles); err != nil {
		panic(fmt.Sprintf("failed to load embedded styles: %v", err))
	}
}

// Load replaces the registry with the styles described by data.
func Load(data []byte) error {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("failed to parse styles: %w", err)
	}

	colors := make(map[string]lipgloss.AdaptiveColor, len(config.Colors))
	for name, def := range config.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	built := make(map[string]lipgloss.Style, len(config.Styles))
	for name, def := range config.Styles {
		built[name] = buildStyle(def, colors)
	}

	mu.Lock()
	registry = built
	mu.Unlock()
	return nil
}

// LoadFile loads a user supplied styles file.
func LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read styles file %s: %w", path, err)
	}
	return Load(data)
}

func buildStyle(def StyleDef, colors map[string]lipgloss.AdaptiveColor) lipgloss.Style {
	style := lipgloss.NewStyle()
	if def.Bold {
		style = style.Bold(true)
	}
	if def.Italic {
		style = style.Italic(true)
	}
	if def.Underline {
		style = style.Underline(true)
	}
	if c, ok := colors[def.Foreground]; ok {
		style = style.Foreground(c)
	}
	if c, ok := colors[def.Background]; ok {
		style = style.Background(c)
	}
	if def.MarginLeft > 0 {
		style = style.MarginLeft(def.MarginLeft)
	}
	return style
}

// SetEnabled turns styling on or off globally.
func SetEnabled(on bool) {
	mu.Lock()
	enabled = on
	mu.Unlock()
}

// Enabled reports whether Render applies styles.
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// Get returns the named style, or an empty style when unknown.
func Get(name string) (lipgloss.Style, bool) {
	mu.RLock()
	defer mu.RUnlock()
	s, ok := registry[name]
	return s, ok
}

// Render applies the named style to text. Unknown names and disabled styling
// return text unchanged.
func Render(name, text string) string {
	if !Enabled() {
		return text
	}
	s, ok := Get(name)
	if !ok {
		return text
	}
	return s.Render(text)
}
