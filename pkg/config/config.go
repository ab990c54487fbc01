package config

import "time"

// Config is the fully resolved utpm configuration.
type Config struct {
	Namespace NamespaceConfig `koanf:"namespace"`
	Registry  RegistryConfig  `koanf:"registry"`
	Publish   PublishConfig   `koanf:"publish"`
	Git       GitConfig       `koanf:"git"`
	Link      LinkConfig      `koanf:"link"`
	Test      TestConfig      `koanf:"test"`
	UI        UIConfig        `koanf:"ui"`
}

// NamespaceConfig controls where workspaces are linked when typst.toml names no namespace.
type NamespaceConfig struct {
	Default string `koanf:"default"`
}

// RegistryConfig points at the Typst Universe index and archives.
type RegistryConfig struct {
	IndexURL   string        `koanf:"index_url"`
	ArchiveURL string        `koanf:"archive_url"`
	CacheTTL   time.Duration `koanf:"cache_ttl"`
	Timeout    time.Duration `koanf:"timeout"`
}

// PublishConfig describes the upstream packages repository.
type PublishConfig struct {
	PackagesRepo  string `koanf:"packages_repo"`
	UpstreamOwner string `koanf:"upstream_owner"`
	UpstreamRepo  string `koanf:"upstream_repo"`
	BaseBranch    string `koanf:"base_branch"`
}

// GitConfig holds git transport settings.
type GitConfig struct {
	KeyPath string `koanf:"key_path"`
}

// LinkConfig controls how workspaces are copied into the package tree.
type LinkConfig struct {
	IgnoreFiles []string `koanf:"ignore_files"`
}

// TestConfig names the external test runner.
type TestConfig struct {
	Runner string `koanf:"runner"`
}

// UIConfig customises terminal output.
type UIConfig struct {
	// StylesFile replaces the built-in text styles. Same format as the embedded styles.yaml.
	StylesFile string `koanf:"styles_file"`
}
