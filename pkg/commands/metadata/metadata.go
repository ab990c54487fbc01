package metadata

import (
	"strings"

	"github.com/typst-community/utpm/pkg/commands/internal"
	"github.com/typst-community/utpm/pkg/errors"
	"github.com/typst-community/utpm/pkg/logging"
	"github.com/typst-community/utpm/pkg/manifest"
	"github.com/typst-community/utpm/pkg/types"
)

// Fields lists the manifest fields metadata knows, in display order.
var Fields = []string{
	"name",
	"version",
	"entrypoint",
	"authors",
	"license",
	"description",
	"repository",
	"homepage",
	"keywords",
	"categories",
	"disciplines",
	"compiler",
	"exclude",
}

// MetadataOptions defines the options for the Metadata command.
type MetadataOptions struct {
	Env  *types.Env
	Path string
	// Field restricts the output to one field.
	Field string
}

// Metadata reads package fields from typst.toml, mostly for scripts and CI.
func Metadata(opts MetadataOptions) (*types.MetadataResult, error) {
	log := logging.GetLogger("commands.metadata")
	log.Debug().Str("command", "Metadata").Str("field", opts.Field).Msg("Executing command")

	m, err := internal.LoadWorkspace(opts.Env.Dir(opts.Path))
	if err != nil {
		return nil, err
	}

	names := Fields
	if opts.Field != "" {
		field := strings.ToLower(strings.TrimSpace(opts.Field))
		if _, ok := value(m, field); !ok {
			return nil, errors.Newf(errors.ErrInvalidInput, "unknown field %q", opts.Field).
				WithDetail("fields", strings.Join(Fields, ", "))
		}
		names = []string{field}
	}

	result := &types.MetadataResult{}
	for _, name := range names {
		v, _ := value(m, name)
		result.Fields = append(result.Fields, types.MetadataField{Name: name, Value: v, Set: v != ""})
	}

	log.Info().Str("command", "Metadata").Int("fields", len(result.Fields)).Msg("Command finished")
	return result, nil
}

func value(m *manifest.Manifest, field string) (string, bool) {
	p := m.Package
	switch field {
	case "name":
		return p.Name, true
	case "version":
		return p.Version, true
	case "entrypoint":
		return p.Entrypoint, true
	case "authors":
		return strings.Join(p.Authors, ", "), true
	case "license":
		return p.License, true
	case "description":
		return p.Description, true
	case "repository":
		return p.Repository, true
	case "homepage":
		return p.Homepage, true
	case "keywords":
		return strings.Join(p.Keywords, ", "), true
	case "categories":
		return strings.Join(p.Categories, ", "), true
	case "disciplines":
		return strings.Join(p.Disciplines, ", "), true
	case "compiler":
		return p.Compiler, true
	case "exclude":
		return strings.Join(p.Exclude, ", "), true
	}
	return "", false
}
