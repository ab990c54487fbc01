// Package spec parses the package references utpm accepts on the command line and
// finds in Typst sources.
package spec

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/typst-community/utpm/pkg/errors"
)

var (
	// PackageRegex matches a fully qualified @namespace/name:major.minor.patch.
	PackageRegex = regexp.MustCompile(`^@([a-z]+)/([a-zA-Z]+(?:-[a-zA-Z]+)?):(\d+)\.(\d+)\.(\d+)$`)
	// NamespaceRegex matches a bare @namespace.
	NamespaceRegex = regexp.MustCompile(`^@([a-z]+)$`)
	// PackageNameRegex matches @namespace/name without a version.
	PackageNameRegex = regexp.MustCompile(`^@([a-z]+)/([a-zA-Z]+(?:-[a-zA-Z]+)?)$`)
	// ImportRegex matches a versioned import inside a Typst source file.
	ImportRegex = regexp.MustCompile(`#import "@([a-zA-Z]+)/([a-zA-Z]+(?:-[a-zA-Z]+)?):(\d+)\.(\d+)\.(\d+)"`)

	// NameRegex matches a package name on its own.
	NameRegex = regexp.MustCompile(`^[a-zA-Z]+(?:-[a-zA-Z]+)?$`)
	// NamespaceNameRegex matches a namespace on its own, without the leading @.
	NamespaceNameRegex = regexp.MustCompile(`^[a-z]+$`)

	bareRegex = regexp.MustCompile(`^([a-zA-Z]+(?:-[a-zA-Z]+)?)(?::(\d+\.\d+\.\d+))?$`)
)

// Spec identifies a single version of a package.
type Spec struct {
	Namespace string `json:"namespace" yaml:"namespace" toml:"namespace"`
	Name      string `json:"name" yaml:"name" toml:"name"`
	Version   string `json:"version,omitempty" yaml:"version,omitempty" toml:"version,omitempty"`
}

// String renders @namespace/name:version, or @namespace/name when no version is set.
func (s Spec) String() string {
	if s.Version == "" {
		return fmt.Sprintf("@%s/%s", s.Namespace, s.Name)
	}
	return fmt.Sprintf("@%s/%s:%s", s.Namespace, s.Name, s.Version)
}

// Import renders the line a Typst document uses to import the package.
func (s Spec) Import() string {
	return fmt.Sprintf("#import %q: *", s.String())
}

// Validate checks that the namespace and name can be used as directory names in
// the package tree. A set version must be strict semver.
func (s Spec) Validate() error {
	if !NamespaceNameRegex.MatchString(s.Namespace) {
		return errors.Newf(errors.ErrPackageNotValid, "invalid namespace %q", s.Namespace).
			WithDetail("namespace", s.Namespace)
	}
	if !NameRegex.MatchString(s.Name) {
		return errors.Newf(errors.ErrPackageNotValid, "invalid package name %q", s.Name).
			WithDetail("name", s.Name)
	}
	if s.Version != "" {
		if _, err := s.Semver(); err != nil {
			return errors.Wrapf(err, errors.ErrPackageNotValid, "invalid version %q", s.Version)
		}
	}
	return nil
}

// Semver parses the version.
func (s Spec) Semver() (*semver.Version, error) {
	v, err := semver.StrictNewVersion(s.Version)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrSemver, "invalid version %q", s.Version)
	}
	return v, nil
}

// ParseSpec parses a fully qualified @namespace/name:version.
func ParseSpec(s string) (Spec, error) {
	m := PackageRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Spec{}, errors.New(errors.ErrPackageNotValid, "").WithDetail("input", s)
	}
	return Spec{
		Namespace: m[1],
		Name:      m[2],
		Version:   m[3] + "." + m[4] + "." + m[5],
	}, nil
}

// TargetKind says how much of the package tree a Target covers.
type TargetKind int

const (
	// TargetNamespace covers every package of a namespace.
	TargetNamespace TargetKind = iota
	// TargetPackage covers every version of a package.
	TargetPackage
	// TargetVersion covers a single installed version.
	TargetVersion
)

// Target is what unlink and bulk-delete operate on.
type Target struct {
	Kind TargetKind
	Spec Spec
}

// ParseTarget accepts @ns, @ns/name, @ns/name:ver, name and name:ver. The bare forms
// resolve against defaultNamespace.
func ParseTarget(s, defaultNamespace string) (Target, error) {
	s = strings.TrimSpace(s)

	if m := NamespaceRegex.FindStringSubmatch(s); m != nil {
		return Target{Kind: TargetNamespace, Spec: Spec{Namespace: m[1]}}, nil
	}
	if m := PackageNameRegex.FindStringSubmatch(s); m != nil {
		return Target{Kind: TargetPackage, Spec: Spec{Namespace: m[1], Name: m[2]}}, nil
	}
	if sp, err := ParseSpec(s); err == nil {
		return Target{Kind: TargetVersion, Spec: sp}, nil
	}
	if m := bareRegex.FindStringSubmatch(s); m != nil {
		t := Target{Kind: TargetPackage, Spec: Spec{Namespace: defaultNamespace, Name: m[1]}}
		if m[2] != "" {
			t.Kind = TargetVersion
			t.Spec.Version = m[2]
		}
		return t, nil
	}

	return Target{}, errors.New(errors.ErrPackageNotValid, "").WithDetail("input", s)
}

// ParseCloneRef accepts @ns/name:ver, name:ver and name. Bare names refer to the
// preview namespace; an empty Version means "latest".
func ParseCloneRef(s string) (Spec, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "@") {
		return ParseSpec(s)
	}
	m := bareRegex.FindStringSubmatch(s)
	if m == nil {
		return Spec{}, errors.New(errors.ErrPackageNotValid, "").WithDetail("input", s)
	}
	return Spec{Namespace: "preview", Name: m[1], Version: m[2]}, nil
}

// Import is a versioned import found in a Typst source.
type Import struct {
	Spec
	// Start and End are byte offsets of the quoted reference within the source.
	Start int
	End   int
}

// FindImports returns every versioned import in src, in order.
func FindImports(src string) []Import {
	var out []Import
	for _, loc := range ImportRegex.FindAllStringSubmatchIndex(src, -1) {
		out = append(out, Import{
			Spec: Spec{
				Namespace: src[loc[2]:loc[3]],
				Name:      src[loc[4]:loc[5]],
				Version:   src[loc[6]:loc[7]] + "." + src[loc[8]:loc[9]] + "." + src[loc[10]:loc[11]],
			},
			Start: loc[0],
			End:   loc[1],
		})
	}
	return out
}
