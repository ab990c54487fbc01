package config

import (
	_ "embed"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	utpmerrors "github.com/typst-community/utpm/pkg/errors"
)

const (
	// EnvPrefix is stripped from environment variables before they are mapped to keys.
	EnvPrefix = "UTPM_"
	// EnvConfigFile points at an alternative user configuration file.
	EnvConfigFile = "UTPM_CONFIG_FILE"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// LoadOptions tweaks where configuration is read from.
type LoadOptions struct {
	// ConfigFile replaces the default user config path when set.
	ConfigFile string
	// Overrides are applied last, keyed by dotted path (e.g. "registry.index_url").
	Overrides map[string]interface{}
}

// Load resolves the configuration from every layer.
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, utpmerrors.Wrap(err, utpmerrors.ErrConfigLoad, "failed to load defaults")
	}

	path := opts.ConfigFile
	if path == "" {
		path = UserConfigPath()
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, utpmerrors.Wrapf(err, utpmerrors.ErrConfigLoad, "failed to load config from %s", path)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, utpmerrors.Wrap(err, utpmerrors.ErrConfigLoad, "failed to load env vars")
	}

	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, utpmerrors.Wrap(err, utpmerrors.ErrConfigLoad, "failed to load overrides")
		}
	}

	return unmarshal(k)
}

// Default returns the embedded defaults, ignoring user files and the environment.
func Default() *Config {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		panic(err)
	}
	cfg, err := unmarshal(k)
	if err != nil {
		panic(err)
	}
	return cfg
}

// UserConfigPath returns UTPM_CONFIG_FILE or $XDG_CONFIG_HOME/utpm/config.toml.
func UserConfigPath() string {
	if p := os.Getenv(EnvConfigFile); p != "" {
		return p
	}
	return filepath.Join(xdg.ConfigHome, "utpm", "config.toml")
}

// DefaultsContent returns the embedded defaults, used to seed a user config file.
func DefaultsContent() string {
	return string(defaultConfig)
}

// sections are the top-level tables of Config. Other UTPM_ variables (directories,
// the GitHub token, UTPM_DEBUG) are read where they are used and never enter the
// config tree.
var sections = map[string]bool{
	"namespace": true,
	"registry":  true,
	"publish":   true,
	"git":       true,
	"link":      true,
	"test":      true,
	"ui":        true,
}

// envKey maps UTPM_REGISTRY_INDEX_URL to registry.index_url: the first segment is the
// section, the remainder is the key. Variables outside a config section map to "",
// which the env provider skips.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, key, found := strings.Cut(s, "_")
	if !found || key == "" || !sections[section] {
		return ""
	}
	return section + "." + key
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, utpmerrors.Wrap(err, utpmerrors.ErrConfigLoad, "failed to unmarshal configuration")
	}
	return &cfg, nil
}
