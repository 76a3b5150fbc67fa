// Package am holds the dojodts configuration ("am" is what the generator is
// told it is working on). Values come from built-in defaults, the system,
// user and project TOML files, and DOJODTS_* environment variables, in that
// order of precedence.
package am

import (
	"time"

	"github.com/teranos/dojodts/classify"
)

// File and directory permissions
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)

// Config represents the dojodts configuration
type Config struct {
	Input    InputConfig    `mapstructure:"input" json:"input" yaml:"input" toml:"input"`
	Output   OutputConfig   `mapstructure:"output" json:"output" yaml:"output" toml:"output"`
	Generate GenerateConfig `mapstructure:"generate" json:"generate" yaml:"generate" toml:"generate"`
	Verify   VerifyConfig   `mapstructure:"verify" json:"verify" yaml:"verify" toml:"verify"`
	Watch    WatchConfig    `mapstructure:"watch" json:"watch" yaml:"watch" toml:"watch"`
}

// InputConfig names the API documentation to read
type InputConfig struct {
	DetailsPath string `mapstructure:"details_path" json:"details_path" yaml:"details_path" toml:"details_path"`
	APIVersion  string `mapstructure:"api_version" json:"api_version" yaml:"api_version" toml:"api_version"`
}

// OutputConfig controls where declaration files go and how they are grouped
type OutputConfig struct {
	Dir       string   `mapstructure:"dir" json:"dir" yaml:"dir" toml:"dir"`
	ExtrasDir string   `mapstructure:"extras_dir" json:"extras_dir" yaml:"extras_dir" toml:"extras_dir"`
	Prefixes  []string `mapstructure:"prefixes" json:"prefixes" yaml:"prefixes" toml:"prefixes"`
}

// GenerateConfig tunes synthesis
type GenerateConfig struct {
	Workers           int      `mapstructure:"workers" json:"workers" yaml:"workers" toml:"workers"`
	MaxStrayOptionals int      `mapstructure:"max_stray_optionals" json:"max_stray_optionals" yaml:"max_stray_optionals" toml:"max_stray_optionals"`
	Strict            bool     `mapstructure:"strict" json:"strict" yaml:"strict" toml:"strict"`
	AliasFile         string   `mapstructure:"alias_file" json:"alias_file" yaml:"alias_file" toml:"alias_file"`
	PatchFile         string   `mapstructure:"patch_file" json:"patch_file" yaml:"patch_file" toml:"patch_file"`
	ForcedNamespace   []string `mapstructure:"forced_namespace" json:"forced_namespace" yaml:"forced_namespace" toml:"forced_namespace"`
	ForcedInterface   []string `mapstructure:"forced_interface" json:"forced_interface" yaml:"forced_interface" toml:"forced_interface"`
	ForcedClass       []string `mapstructure:"forced_class" json:"forced_class" yaml:"forced_class" toml:"forced_class"`
	CacheSize         int      `mapstructure:"cache_size" json:"cache_size" yaml:"cache_size" toml:"cache_size"`
}

// VerifyConfig controls checks run over generated files
type VerifyConfig struct {
	Syntax  bool   `mapstructure:"syntax" json:"syntax" yaml:"syntax" toml:"syntax"`
	Command string `mapstructure:"command" json:"command" yaml:"command" toml:"command"`
}

// WatchConfig controls watch mode
type WatchConfig struct {
	DebounceMS int `mapstructure:"debounce_ms" json:"debounce_ms" yaml:"debounce_ms" toml:"debounce_ms"`
}

// Patterns returns the classifier override tables
func (c *Config) Patterns() classify.Patterns {
	return classify.Patterns{
		ForcedNamespace: c.Generate.ForcedNamespace,
		ForcedInterface: c.Generate.ForcedInterface,
		ForcedClass:     c.Generate.ForcedClass,
	}
}

// Debounce returns the watch debounce as a duration
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Watch.DebounceMS) * time.Millisecond
}

// InputFiles returns the files a generation run reads besides the config
// itself. Unset optional files are omitted.
func (c *Config) InputFiles() []string {
	files := []string{c.Input.DetailsPath}
	if c.Generate.AliasFile != "" {
		files = append(files, c.Generate.AliasFile)
	}
	if c.Generate.PatchFile != "" {
		files = append(files, c.Generate.PatchFile)
	}
	return files
}
