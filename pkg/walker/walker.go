// Package walker lists the files of a workspace that belong in a package, honouring
// git-style ignore files and the manifest's exclude globs.
package walker

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/rs/zerolog"

	"github.com/typst-community/utpm/pkg/errors"
	"github.com/typst-community/utpm/pkg/logging"
)

// Ignore file names looked up in every directory.
const (
	GitIgnoreFile   = ".gitignore"
	IgnoreFile      = ".ignore"
	TypstIgnoreFile = ".typstignore"
)

// Options selects which ignore sources apply. Later sources take precedence:
// global gitignore, .git/info/exclude, .gitignore, .ignore, .typstignore, the custom
// ignore file, then Excludes.
type Options struct {
	GitIgnore   bool
	GitGlobal   bool
	GitExclude  bool
	Ignore      bool
	TypstIgnore bool
	// CustomIgnore is an extra ignore file name looked up like .gitignore.
	CustomIgnore string
	// Excludes are gitignore-style globs relative to the root.
	Excludes []string
	// Hidden includes dotfiles. .git is skipped regardless.
	Hidden bool
}

// DefaultOptions mirrors the defaults of link and publish.
func DefaultOptions() Options {
	return Options{
		GitIgnore:   true,
		GitGlobal:   true,
		GitExclude:  true,
		TypstIgnore: true,
	}
}

// Entry is a path relative to the walked root.
type Entry struct {
	Path  string
	IsDir bool
}

type walker struct {
	fs        billy.Filesystem
	opts      Options
	patterns  []gitignore.Pattern
	overrides []gitignore.Pattern
	logger    zerolog.Logger
}

// Walk returns every entry under root that survives the ignore rules, in lexical order.
func Walk(root string, opts Options) ([]Entry, error) {
	w := &walker{
		fs:     osfs.New(root),
		opts:   opts,
		logger: logging.GetLogger("walker"),
	}

	if err := w.loadRootPatterns(); err != nil {
		return nil, err
	}

	var entries []Entry
	err := util.Walk(w.fs, ".", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path == "." {
			return w.loadDirPatterns(nil)
		}

		parts := strings.Split(filepath.ToSlash(path), "/")
		name := parts[len(parts)-1]

		if w.skipName(name) || w.matcher().Match(parts, info.IsDir()) {
			w.logger.Trace().Str("path", path).Msg("ignored")
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		entries = append(entries, Entry{Path: path, IsDir: info.IsDir()})
		if info.IsDir() {
			return w.loadDirPatterns(parts)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrIO, "failed to walk %s", root)
	}

	w.logger.Debug().Str("root", root).Int("entries", len(entries)).Msg("walk complete")
	return entries, nil
}

// Paths flattens entries to their relative paths.
func Paths(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Path
	}
	return out
}

func (w *walker) skipName(name string) bool {
	if name == ".git" {
		return true
	}
	return !w.opts.Hidden && strings.HasPrefix(name, ".")
}

func (w *walker) matcher() gitignore.Matcher {
	all := make([]gitignore.Pattern, 0, len(w.patterns)+len(w.overrides))
	all = append(all, w.patterns...)
	all = append(all, w.overrides...)
	return gitignore.NewMatcher(all)
}

func (w *walker) loadRootPatterns() error {
	if w.opts.GitGlobal {
		global, err := gitignore.LoadGlobalPatterns(osfs.New("/"))
		if err != nil {
			w.logger.Debug().Err(err).Msg("no global gitignore")
		}
		w.patterns = append(w.patterns, global...)
	}

	if w.opts.GitExclude {
		ps, err := w.readPatterns(filepath.Join(".git", "info", "exclude"), nil)
		if err != nil {
			return err
		}
		w.patterns = append(w.patterns, ps...)
	}

	for _, glob := range w.opts.Excludes {
		glob = strings.TrimSpace(glob)
		if glob == "" {
			continue
		}
		w.overrides = append(w.overrides, gitignore.ParsePattern(glob, nil))
	}
	return nil
}

func (w *walker) loadDirPatterns(domain []string) error {
	var names []string
	if w.opts.GitIgnore {
		names = append(names, GitIgnoreFile)
	}
	if w.opts.Ignore {
		names = append(names, IgnoreFile)
	}
	if w.opts.TypstIgnore {
		names = append(names, TypstIgnoreFile)
	}
	if w.opts.CustomIgnore != "" {
		names = append(names, filepath.Base(w.opts.CustomIgnore))
	}

	dir := filepath.Join(domain...)
	for _, name := range names {
		ps, err := w.readPatterns(filepath.Join(dir, name), domain)
		if err != nil {
			return err
		}
		w.patterns = append(w.patterns, ps...)
	}
	return nil
}

// readPatterns parses one ignore file. A missing file yields no patterns.
func (w *walker) readPatterns(path string, domain []string) ([]gitignore.Pattern, error) {
	f, err := w.fs.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var ps []gitignore.Pattern
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ps = append(ps, gitignore.ParsePattern(line, domain))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	w.logger.Trace().Str("file", path).Int("patterns", len(ps)).Msg("loaded ignore file")
	return ps, nil
}
