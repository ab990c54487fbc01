// Package guide serves the markdown topics of the utpm guide.
package guide

import (
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/typst-community/utpm/pkg/errors"
)

// DefaultTopic is shown by `utpm guide` without arguments.
const DefaultTopic = "guide"

// Renderer formats topic content for the terminal.
type Renderer interface {
	Render(content string) string
}

// PlainRenderer returns the markdown unchanged.
type PlainRenderer struct{}

func (PlainRenderer) Render(content string) string {
	return content
}

// GlamourRenderer renders markdown with glamour.
type GlamourRenderer struct {
	// Style is a glamour style name or path. Empty means auto-detect.
	Style string
	Width int
}

func (r GlamourRenderer) Render(content string) string {
	var options []glamour.TermRendererOption
	if r.Style != "" && r.Style != "auto" {
		options = append(options, glamour.WithStylePath(r.Style))
	} else {
		options = append(options, glamour.WithAutoStyle())
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// Guide holds the topics found in a filesystem.
type Guide struct {
	topics map[string]string
}

// Load reads every .md file of fsys as a topic named after the file.
func Load(fsys fs.FS) (*Guide, error) {
	g := &Guide{topics: make(map[string]string)}
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ".md" {
			return nil
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		g.topics[strings.ToLower(strings.TrimSuffix(path.Base(p), ".md"))] = string(data)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrIO, "failed to read guide")
	}
	return g, nil
}

// Topic returns the markdown of a topic. Names are case-insensitive.
func (g *Guide) Topic(name string) (string, error) {
	if name == "" {
		name = DefaultTopic
	}
	content, ok := g.topics[strings.ToLower(name)]
	if !ok {
		return "", errors.Newf(errors.ErrNotFound, "no guide topic %q (available: %s)",
			name, strings.Join(g.Topics(), ", ")).
			WithDetail("topic", name)
	}
	return content, nil
}

// Topics lists the topic names in order.
func (g *Guide) Topics() []string {
	names := make([]string, 0, len(g.topics))
	for name := range g.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
