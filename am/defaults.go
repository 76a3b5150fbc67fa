package am

import (
	"runtime"

	"github.com/spf13/viper"

	"github.com/teranos/dojodts/classify"
	"github.com/teranos/dojodts/overload"
)

// Default values
const (
	DefaultDetailsPath = "data/details-1.10.json"
	DefaultAPIVersion  = "1.10"
	DefaultOutputDir   = "output"
	DefaultExtrasDir   = "extras"
	DefaultCacheSize   = 4096
	DefaultDebounceMS  = 500
)

// DefaultPrefixes are the fixed output groups; dojox subpackages are discovered
var DefaultPrefixes = []string{"dojo", "doh", "dijit"}

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Input
	v.SetDefault("input.details_path", DefaultDetailsPath)
	v.SetDefault("input.api_version", DefaultAPIVersion)

	// Output
	v.SetDefault("output.dir", DefaultOutputDir)
	v.SetDefault("output.extras_dir", DefaultExtrasDir)
	v.SetDefault("output.prefixes", DefaultPrefixes)

	// Generation
	v.SetDefault("generate.workers", runtime.GOMAXPROCS(0))
	v.SetDefault("generate.max_stray_optionals", overload.DefaultMaxStray)
	v.SetDefault("generate.strict", false)
	v.SetDefault("generate.alias_file", "")
	v.SetDefault("generate.patch_file", "")
	v.SetDefault("generate.forced_namespace", classify.DefaultForcedNamespace)
	v.SetDefault("generate.forced_interface", classify.DefaultForcedInterface)
	v.SetDefault("generate.forced_class", classify.DefaultForcedClass)
	v.SetDefault("generate.cache_size", DefaultCacheSize)

	// Verification
	v.SetDefault("verify.syntax", true)
	v.SetDefault("verify.command", "")

	// Watch mode
	v.SetDefault("watch.debounce_ms", DefaultDebounceMS)
}
