// Package types holds the interfaces and result types shared between the command
// library (pkg/commands) and the CLI layer.
package types
