package am

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/dojodts/errors"
)

// EnvPrefix is prepended to every environment override, e.g.
// DOJODTS_OUTPUT_DIR for output.dir.
const EnvPrefix = "DOJODTS"

// SystemConfigPath is the lowest-precedence configuration file
var SystemConfigPath = "/etc/dojodts/config.toml"

var globalConfig *Config
var viperInstance *viper.Viper

// ConfigSources records which file supplied each key during the last load.
// Keys absent from the map come from defaults or the environment.
var ConfigSources = map[string]SourceInfo{}

// Load reads the dojodts configuration using Viper
func Load() (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	v := initViper()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	globalConfig = &config
	return globalConfig, nil
}

// GetViper returns the Viper instance for advanced configuration access
func GetViper() *viper.Viper {
	return initViper()
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &config, nil
}

// LoadFromFile loads configuration from a specific file path, on top of defaults
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	// Defaults only; environment is not consulted for an explicit file
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal config from %s", configPath)
	}

	return &config, nil
}

// Reset clears the cached configuration (useful for testing)
func Reset() {
	globalConfig = nil
	viperInstance = nil
	ConfigSources = map[string]SourceInfo{}
}

// initViper initializes Viper with configuration sources and defaults
func initViper() *viper.Viper {
	if viperInstance != nil {
		return viperInstance
	}

	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	// system -> user -> project -> env vars
	mergeConfigFiles(v)

	viperInstance = v
	return v
}

// findProjectConfig searches for am.toml by walking up the directory tree.
// Returns the first one found, or empty string.
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		amPath := filepath.Join(dir, "am.toml")
		if _, err := os.Stat(amPath); err == nil {
			return amPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

type configLayer struct {
	path   string
	source ConfigSource
}

// configLayers lists candidate files lowest precedence first
func configLayers() []configLayer {
	layers := []configLayer{{path: SystemConfigPath, source: SourceSystem}}

	if homeDir, err := os.UserHomeDir(); err == nil {
		layers = append(layers, configLayer{
			path:   filepath.Join(homeDir, ".dojodts", "am.toml"),
			source: SourceUser,
		})
	}

	if projectConfig := findProjectConfig(); projectConfig != "" {
		layers = append(layers, configLayer{path: projectConfig, source: SourceProject})
	}
	return layers
}

// existingLayers drops missing files and files already listed under
// another layer, e.g. a project am.toml that is also the user file.
func existingLayers() []configLayer {
	var out []configLayer
	seen := make(map[string]bool)
	for _, layer := range configLayers() {
		abs, err := filepath.Abs(layer.path)
		if err != nil || seen[abs] {
			continue
		}
		if _, err := os.Stat(layer.path); err != nil {
			continue
		}
		seen[abs] = true
		out = append(out, layer)
	}
	return out
}

// ConfigFiles returns the configuration files that exist, lowest precedence first
func ConfigFiles() []string {
	var files []string
	for _, layer := range existingLayers() {
		files = append(files, layer.path)
	}
	return files
}

// mergeConfigFiles merges configuration files in precedence order and records
// where every key came from. Unreadable files are skipped.
func mergeConfigFiles(v *viper.Viper) {
	for _, layer := range existingLayers() {
		tempViper := viper.New()
		tempViper.SetConfigFile(layer.path)
		tempViper.SetConfigType("toml")
		if err := tempViper.ReadInConfig(); err != nil {
			continue
		}

		// Config layer: environment variables still win
		if err := v.MergeConfigMap(tempViper.AllSettings()); err != nil {
			continue
		}
		for _, key := range tempViper.AllKeys() {
			ConfigSources[key] = SourceInfo{Source: layer.source, Path: layer.path}
		}
	}
}

// Get returns a configuration value using dot notation
func Get(key string) interface{} {
	return initViper().Get(key)
}

// GetString returns a configuration value as string using dot notation
func GetString(key string) string {
	return initViper().GetString(key)
}

// GetBool returns a configuration value as bool using dot notation
func GetBool(key string) bool {
	return initViper().GetBool(key)
}

// GetInt returns a configuration value as int using dot notation
func GetInt(key string) int {
	return initViper().GetInt(key)
}
