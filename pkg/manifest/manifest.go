// Package manifest reads and writes typst.toml.
package manifest

import (
	"bytes"
	"os"

	"github.com/Masterminds/semver/v3"
	"github.com/pelletier/go-toml/v2"

	"github.com/typst-community/utpm/pkg/errors"
	"github.com/typst-community/utpm/pkg/paths"
)

// ToolKey is the [tool.<key>] section utpm owns.
const ToolKey = "utpm"

// Manifest mirrors typst.toml. Tool sections other than [tool.utpm] are kept as raw
// tables so they survive a read/write cycle.
type Manifest struct {
	Package  Package                `toml:"package" json:"package" yaml:"package"`
	Template *Template              `toml:"template,omitempty" json:"template,omitempty" yaml:"template,omitempty"`
	Tool     map[string]interface{} `toml:"tool,omitempty" json:"tool,omitempty" yaml:"tool,omitempty"`
}

// Package is the [package] table.
type Package struct {
	Name        string   `toml:"name" json:"name" yaml:"name"`
	Version     string   `toml:"version" json:"version" yaml:"version"`
	Entrypoint  string   `toml:"entrypoint" json:"entrypoint" yaml:"entrypoint"`
	Authors     []string `toml:"authors,omitempty" json:"authors,omitempty" yaml:"authors,omitempty"`
	License     string   `toml:"license,omitempty" json:"license,omitempty" yaml:"license,omitempty"`
	Description string   `toml:"description,omitempty" json:"description,omitempty" yaml:"description,omitempty"`
	Homepage    string   `toml:"homepage,omitempty" json:"homepage,omitempty" yaml:"homepage,omitempty"`
	Repository  string   `toml:"repository,omitempty" json:"repository,omitempty" yaml:"repository,omitempty"`
	Keywords    []string `toml:"keywords,omitempty" json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Categories  []string `toml:"categories,omitempty" json:"categories,omitempty" yaml:"categories,omitempty"`
	Disciplines []string `toml:"disciplines,omitempty" json:"disciplines,omitempty" yaml:"disciplines,omitempty"`
	Compiler    string   `toml:"compiler,omitempty" json:"compiler,omitempty" yaml:"compiler,omitempty"`
	Exclude     []string `toml:"exclude,omitempty" json:"exclude,omitempty" yaml:"exclude,omitempty"`
}

// Template is the optional [template] table.
type Template struct {
	Path       string `toml:"path" json:"path" yaml:"path"`
	Entrypoint string `toml:"entrypoint" json:"entrypoint" yaml:"entrypoint"`
	Thumbnail  string `toml:"thumbnail,omitempty" json:"thumbnail,omitempty" yaml:"thumbnail,omitempty"`
}

// Extra is the [tool.utpm] table.
type Extra struct {
	Namespace    string   `toml:"namespace,omitempty" json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Dependencies []string `toml:"dependencies,omitempty" json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	Exclude      []string `toml:"exclude,omitempty" json:"exclude,omitempty" yaml:"exclude,omitempty"`
}

// DefaultExtra is what init writes.
func DefaultExtra() Extra {
	return Extra{Namespace: "local"}
}

// Exists reports whether dir holds a typst.toml.
func Exists(dir string) bool {
	return paths.IsFile(paths.ManifestPath(dir))
}

// Load reads dir/typst.toml.
func Load(dir string) (*Manifest, error) {
	data, err := os.ReadFile(paths.ManifestPath(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrManifest, "").WithDetail("dir", dir)
		}
		return nil, errors.Wrapf(err, errors.ErrIO, "failed to read %s", paths.ManifestPath(dir))
	}
	return Parse(data)
}

// Parse decodes typst.toml content.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, errors.ErrDeserialize, "failed to parse typst.toml")
	}
	return &m, nil
}

// Marshal encodes the manifest as TOML.
func (m *Manifest) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(false)
	if err := enc.Encode(m); err != nil {
		return nil, errors.Wrap(err, errors.ErrSerialize, "failed to encode typst.toml")
	}
	return buf.Bytes(), nil
}

// Write stores the manifest as dir/typst.toml.
func Write(dir string, m *Manifest) error {
	data, err := m.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(paths.ManifestPath(dir), data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to write %s", paths.ManifestPath(dir))
	}
	return nil
}

// Extra decodes [tool.utpm]. A manifest without it yields a zero Extra.
func (m *Manifest) Extra() (Extra, error) {
	var extra Extra
	raw, ok := m.Tool[ToolKey]
	if !ok {
		return extra, nil
	}
	data, err := toml.Marshal(raw)
	if err != nil {
		return extra, errors.Wrap(err, errors.ErrSerialize, "failed to encode [tool.utpm]")
	}
	if err := toml.Unmarshal(data, &extra); err != nil {
		return extra, errors.Wrap(err, errors.ErrDeserialize, "failed to parse [tool.utpm]")
	}
	return extra, nil
}

// SetExtra replaces [tool.utpm], creating the [tool] table when needed.
func (m *Manifest) SetExtra(extra Extra) error {
	data, err := toml.Marshal(extra)
	if err != nil {
		return errors.Wrap(err, errors.ErrSerialize, "failed to encode [tool.utpm]")
	}
	var table map[string]interface{}
	if err := toml.Unmarshal(data, &table); err != nil {
		return errors.Wrap(err, errors.ErrDeserialize, "failed to decode [tool.utpm]")
	}
	if m.Tool == nil {
		m.Tool = make(map[string]interface{})
	}
	m.Tool[ToolKey] = table
	return nil
}

// Namespace returns the namespace from [tool.utpm], or fallback when none is set.
func (m *Manifest) Namespace(fallback string) string {
	extra, err := m.Extra()
	if err != nil || extra.Namespace == "" {
		return fallback
	}
	return extra.Namespace
}

// Semver parses the package version.
func (m *Manifest) Semver() (*semver.Version, error) {
	v, err := semver.StrictNewVersion(m.Package.Version)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrSemver, "invalid package version %q", m.Package.Version)
	}
	return v, nil
}

// Validate checks the fields Typst requires.
func (m *Manifest) Validate() error {
	if m.Package.Name == "" {
		return errors.New(errors.ErrManifest, "package name is not set")
	}
	if m.Package.Entrypoint == "" {
		return errors.New(errors.ErrManifest, "package entrypoint is not set")
	}
	if _, err := m.Semver(); err != nil {
		return err
	}
	if len(m.Package.Categories) > MaxCategories {
		return errors.Newf(errors.ErrManifest, "at most %d categories are allowed", MaxCategories)
	}
	for _, c := range m.Package.Categories {
		if !IsCategory(c) {
			return errors.Newf(errors.ErrManifest, "unknown category %q", c)
		}
	}
	for _, d := range m.Package.Disciplines {
		if !IsDiscipline(d) {
			return errors.Newf(errors.ErrManifest, "unknown discipline %q", d)
		}
	}
	return nil
}
