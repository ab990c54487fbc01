// pkg/testutil/registry.go
// DEPENDENCIES: klauspost/compress
// PURPOSE: Fake Typst Universe serving an index and package archives

package testutil

import (
	"archive/tar"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path"
	"sync/atomic"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"

	"github.com/typst-community/utpm/pkg/registry"
)

// RegistryPackage is a package version served by Registry.
type RegistryPackage struct {
	registry.RawPackage
	// Files become the archive content. typst.toml is generated when absent.
	Files map[string]string
}

// Registry is an httptest server laid out like packages.typst.org.
type Registry struct {
	*httptest.Server
	IndexHits   atomic.Int32
	ArchiveHits atomic.Int32
	archives    map[string][]byte
	index       []byte
}

// NewRegistry starts a fake registry serving pkgs.
func NewRegistry(t *testing.T, pkgs ...RegistryPackage) *Registry {
	t.Helper()

	r := &Registry{archives: make(map[string][]byte)}
	raw := make([]registry.RawPackage, 0, len(pkgs))
	for _, p := range pkgs {
		if p.Entrypoint == "" {
			p.Entrypoint = "main.typ"
		}
		raw = append(raw, p.RawPackage)

		files := map[string]string{"typst.toml": Manifest(p.Name, p.Version), p.Entrypoint: "// " + p.Name + "\n"}
		for name, content := range p.Files {
			files[name] = content
		}
		r.archives[p.Name+"-"+p.Version+".tar.gz"] = Archive(t, files)
	}

	var err error
	r.index, err = json.Marshal(raw)
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.HandleFunc("/preview/index.json", func(w http.ResponseWriter, req *http.Request) {
		r.IndexHits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(r.index)
	})
	mux.HandleFunc("/preview/", func(w http.ResponseWriter, req *http.Request) {
		data, ok := r.archives[path.Base(req.URL.Path)]
		if !ok {
			http.NotFound(w, req)
			return
		}
		r.ArchiveHits.Add(1)
		_, _ = w.Write(data)
	})

	r.Server = httptest.NewServer(mux)
	t.Cleanup(r.Close)
	return r
}

// Archive builds a .tar.gz holding files.
func Archive(t *testing.T, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for name, content := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     name,
			Mode:     0644,
			Size:     int64(len(content)),
			Typeflag: tar.TypeReg,
		}))
		_, err := tw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return buf.Bytes()
}
