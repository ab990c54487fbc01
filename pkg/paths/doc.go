// Package paths provides centralized path handling for utpm.
//
// Typst resolves imports from two trees, and utpm writes into both:
//
//   - Local packages: <data>/typst/packages/<namespace>/<name>/<version>
//   - Downloaded @preview packages: <cache>/typst/packages/preview/<name>/<version>
//
// utpm keeps its own working state under <data>/utpm (a tmp dir for installs and a
// clone of the typst/packages repository used for publishing).
//
// # Environment Variables
//
//   - UTPM_DATA_DIR: override the data home (default: $XDG_DATA_HOME)
//   - UTPM_CACHE_DIR: override the cache home (default: $XDG_CACHE_HOME)
//   - UTPM_CURRENT_DIR: override the working directory commands operate on
//
// Relative overrides are made absolute against the process working directory.
package paths
