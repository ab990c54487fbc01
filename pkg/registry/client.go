package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog"

	"github.com/typst-community/utpm/internal/version"
	"github.com/typst-community/utpm/pkg/config"
	"github.com/typst-community/utpm/pkg/errors"
	"github.com/typst-community/utpm/pkg/logging"
)

// RawPackage is one entry of the registry index.
type RawPackage struct {
	Name        string   `json:"name" yaml:"name" toml:"name"`
	Version     string   `json:"version" yaml:"version" toml:"version"`
	Entrypoint  string   `json:"entrypoint" yaml:"entrypoint" toml:"entrypoint"`
	Authors     []string `json:"authors" yaml:"authors" toml:"authors"`
	License     string   `json:"license" yaml:"license" toml:"license"`
	Description string   `json:"description" yaml:"description" toml:"description"`
	Homepage    string   `json:"homepage,omitempty" yaml:"homepage,omitempty" toml:"homepage,omitempty"`
	Repository  string   `json:"repository,omitempty" yaml:"repository,omitempty" toml:"repository,omitempty"`
	Keywords    []string `json:"keywords,omitempty" yaml:"keywords,omitempty" toml:"keywords,omitempty"`
	Categories  []string `json:"categories,omitempty" yaml:"categories,omitempty" toml:"categories,omitempty"`
	Disciplines []string `json:"disciplines,omitempty" yaml:"disciplines,omitempty" toml:"disciplines,omitempty"`
	Compiler    string   `json:"compiler,omitempty" yaml:"compiler,omitempty" toml:"compiler,omitempty"`
	Exclude     []string `json:"exclude,omitempty" yaml:"exclude,omitempty" toml:"exclude,omitempty"`
	UpdatedAt   int64    `json:"updatedAt" yaml:"updatedAt" toml:"updatedAt"`
}

// Key returns name:version.
func (p RawPackage) Key() string {
	return p.Name + ":" + p.Version
}

// Client fetches the index and package archives.
type Client struct {
	indexURL   string
	archiveURL string
	http       *http.Client
	cache      *Cache
	progress   io.Writer
	logger     zerolog.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithCache enables caching of the index.
func WithCache(cache *Cache) Option {
	return func(c *Client) { c.cache = cache }
}

// WithProgress sets where download progress is drawn. Nil disables it.
func WithProgress(w io.Writer) Option {
	return func(c *Client) { c.progress = w }
}

// New creates a Client from the registry configuration.
func New(cfg config.RegistryConfig, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	c := &Client{
		indexURL:   cfg.IndexURL,
		archiveURL: cfg.ArchiveURL,
		http:       &http.Client{Timeout: timeout},
		progress:   os.Stderr,
		logger:     logging.GetLogger("registry"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewDefault creates a Client whose index cache lives under cacheDir/utpm/registry.
// Nothing is written until the index is first fetched.
func NewDefault(cfg config.RegistryConfig, cacheDir string, opts ...Option) *Client {
	cache := NewCache(filepath.Join(cacheDir, "utpm", "registry"), cfg.CacheTTL)
	return New(cfg, append([]Option{WithCache(cache)}, opts...)...)
}

// ClearCache drops the cached index so the next Index call hits the network.
func (c *Client) ClearCache() error {
	if c.cache == nil {
		return nil
	}
	if err := c.cache.Clear(); err != nil {
		return errors.Wrap(err, errors.ErrIO, "failed to clear registry cache")
	}
	return nil
}

// Index returns every package version published on the registry.
func (c *Client) Index(ctx context.Context) ([]RawPackage, error) {
	data, ok := c.cache.Get(c.indexURL)
	if ok {
		c.logger.Debug().Str("url", c.indexURL).Msg("index served from cache")
	} else {
		var err error
		data, err = c.get(ctx, c.indexURL)
		if err != nil {
			return nil, err
		}
		if err := c.cache.Set(c.indexURL, data); err != nil {
			c.logger.Warn().Err(err).Msg("failed to cache index")
		}
	}

	var packages []RawPackage
	if err := json.Unmarshal(data, &packages); err != nil {
		return nil, errors.Wrap(err, errors.ErrDeserialize, "failed to parse registry index")
	}
	c.logger.Debug().Int("packages", len(packages)).Msg("index loaded")
	return packages, nil
}

// Lookup indexes packages by name (newest version wins) and by name:version.
func (c *Client) Lookup(ctx context.Context) (map[string]RawPackage, error) {
	packages, err := c.Index(ctx)
	if err != nil {
		return nil, err
	}
	return BuildLookup(packages), nil
}

// BuildLookup indexes packages by name (newest version wins) and by name:version.
func BuildLookup(packages []RawPackage) map[string]RawPackage {
	lookup := make(map[string]RawPackage, len(packages)*2)
	for _, p := range packages {
		lookup[p.Key()] = p
		current, ok := lookup[p.Name]
		if !ok || newer(p.Version, current.Version) {
			lookup[p.Name] = p
		}
	}
	return lookup
}

// Latest returns the newest published version of name.
func (c *Client) Latest(ctx context.Context, name string) (RawPackage, error) {
	lookup, err := c.Lookup(ctx)
	if err != nil {
		return RawPackage{}, err
	}
	p, ok := lookup[name]
	if !ok {
		return RawPackage{}, errors.New(errors.ErrPackageNotExist, "").WithDetail("name", name)
	}
	return p, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.open(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrHTTP, "failed to read %s", url)
	}
	return data, nil
}

func (c *Client) open(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrHTTP, "invalid url %s", url)
	}
	req.Header.Set("User-Agent", "utpm/"+version.Version)

	c.logger.Debug().Str("url", url).Msg("GET")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrHTTP, "request to %s failed", url)
	}
	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, errors.New(errors.ErrPackageNotExist, "").WithDetail("url", url)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, errors.Newf(errors.ErrHTTP, "unexpected status %s from %s", resp.Status, url).
			WithDetail("status", resp.StatusCode)
	}
	return resp, nil
}

func newer(a, b string) bool {
	va, erra := semver.NewVersion(a)
	vb, errb := semver.NewVersion(b)
	if erra != nil || errb != nil {
		return a > b
	}
	return va.GreaterThan(vb)
}

// ArchiveURL returns where the tarball of name:version is served.
func (c *Client) ArchiveURL(name, version string) string {
	return fmt.Sprintf("%s/%s-%s.tar.gz", c.archiveURL, name, version)
}
