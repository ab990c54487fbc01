// Package dependencies edits the [tool.utpm].dependencies list of the current
// workspace (ws add, ws delete).
package dependencies
