// Package registry reads the Typst Universe package index and downloads
// @preview package archives.
//
// The index is a single JSON document listing every published version. It is
// cached on disk for registry.cache_ttl so that repeated `utpm pkg get` or
// `utpm ws sync` invocations do not refetch it.
package registry
