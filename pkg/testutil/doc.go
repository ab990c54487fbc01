// Package testutil provides utilities for testing utpm commands.
//
// Key components:
//   - Environment: isolated data, cache and current directories wired into a types.Env
//   - Workspace helpers: write typst.toml workspaces and installed package versions
//   - Prompter: a scripted types.Prompter
//   - Registry: an httptest server that serves a Typst Universe index and archives
//
// Usage guidelines:
//   - Every test gets its own Environment; nothing is shared between tests
//   - Test data is defined inline, not in external files
package testutil
