package bump

import (
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/typst-community/utpm/pkg/errors"
	"github.com/typst-community/utpm/pkg/logging"
	"github.com/typst-community/utpm/pkg/manifest"
	"github.com/typst-community/utpm/pkg/paths"
	"github.com/typst-community/utpm/pkg/types"
)

// BumpOptions defines the options for the Bump command.
type BumpOptions struct {
	Env *types.Env
	// Version is the new package version.
	Version string
	// Include lists extra files, relative to the workspace, in which every
	// occurrence of the old version is replaced.
	Include []string
}

// Bump sets the package version in typst.toml and the included files.
func Bump(opts BumpOptions) (*types.BumpResult, error) {
	log := logging.GetLogger("commands.bump")
	log.Debug().Str("command", "Bump").Str("version", opts.Version).Msg("Executing command")

	next, err := semver.StrictNewVersion(strings.TrimPrefix(strings.TrimSpace(opts.Version), "v"))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrSemver, "invalid version %q", opts.Version)
	}

	dir := opts.Env.Paths.CurrentDir()
	m, err := manifest.Load(dir)
	if err != nil {
		return nil, err
	}
	// the old version is the search string for included files
	if _, err := m.Semver(); err != nil {
		return nil, err
	}

	result := &types.BumpResult{
		From:   m.Package.Version,
		To:     next.String(),
		Files:  []types.BumpedFile{{Path: paths.ManifestFile, Replacements: 1}},
		DryRun: opts.Env.DryRun,
	}

	type pending struct {
		path    string
		content string
	}
	var writes []pending
	for _, rel := range opts.Include {
		path := filepath.Join(dir, rel)
		data, err := opts.Env.FS.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrIO, "failed to read %s", rel)
		}
		n := strings.Count(string(data), result.From)
		result.Files = append(result.Files, types.BumpedFile{Path: rel, Replacements: n})
		if n > 0 {
			writes = append(writes, pending{path: path, content: strings.ReplaceAll(string(data), result.From, result.To)})
		}
	}

	if opts.Env.DryRun {
		log.Info().Str("from", result.From).Str("to", result.To).Msg("dry-run, nothing written")
		return result, nil
	}

	m.Package.Version = result.To
	if err := manifest.Write(dir, m); err != nil {
		return nil, err
	}
	for _, w := range writes {
		if err := opts.Env.FS.WriteFile(w.path, []byte(w.content), 0644); err != nil {
			return nil, errors.Wrapf(err, errors.ErrIO, "failed to write %s", w.path)
		}
	}

	log.Info().Str("command", "Bump").Str("version", result.To).Msg("Command finished")
	return result, nil
}
