package types

// PackageTree is every namespace found under a packages root.
type PackageTree struct {
	Path       string      `json:"path" yaml:"path" toml:"path"`
	Namespaces []Namespace `json:"namespaces" yaml:"namespaces" toml:"namespaces"`
}

// Namespace groups the packages of one namespace.
type Namespace struct {
	Name     string    `json:"name" yaml:"name" toml:"name"`
	Packages []Package `json:"packages" yaml:"packages" toml:"packages"`
}

// Package lists the installed versions of a package, lowest first.
type Package struct {
	Name     string   `json:"name" yaml:"name" toml:"name"`
	Versions []string `json:"versions" yaml:"versions" toml:"versions"`
}

// Count returns how many package versions the tree holds.
func (t *PackageTree) Count() int {
	n := 0
	for _, ns := range t.Namespaces {
		for _, p := range ns.Packages {
			n += len(p.Versions)
		}
	}
	return n
}
