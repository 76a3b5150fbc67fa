package am

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/dojodts/classify"
	"github.com/teranos/dojodts/overload"
)

// isolate points HOME and the working directory at a fresh temp dir
func isolate(t *testing.T) string {
	t.Helper()
	Reset()
	t.Cleanup(Reset)

	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)

	old := SystemConfigPath
	SystemConfigPath = filepath.Join(dir, "etc", "config.toml")
	t.Cleanup(func() { SystemConfigPath = old })
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultDetailsPath, cfg.Input.DetailsPath)
	assert.Equal(t, DefaultAPIVersion, cfg.Input.APIVersion)
	assert.Equal(t, DefaultOutputDir, cfg.Output.Dir)
	assert.Equal(t, DefaultExtrasDir, cfg.Output.ExtrasDir)
	assert.Equal(t, []string{"dojo", "doh", "dijit"}, cfg.Output.Prefixes)
	assert.Equal(t, runtime.GOMAXPROCS(0), cfg.Generate.Workers)
	assert.Equal(t, overload.DefaultMaxStray, cfg.Generate.MaxStrayOptionals)
	assert.Equal(t, classify.DefaultForcedInterface, cfg.Generate.ForcedInterface)
	assert.True(t, cfg.Verify.Syntax)
	assert.Empty(t, cfg.Verify.Command)
	assert.Equal(t, DefaultDebounceMS, cfg.Watch.DebounceMS)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Cached(t *testing.T) {
	isolate(t)

	a, err := Load()
	require.NoError(t, err)
	b, err := Load()
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestLoad_Precedence(t *testing.T) {
	dir := isolate(t)

	writeFile(t, SystemConfigPath, `
[output]
dir = "system-out"
extras_dir = "system-extras"

[input]
api_version = "1.9"
`)
	writeFile(t, filepath.Join(dir, ".dojodts", "am.toml"), `
[output]
dir = "user-out"
`)
	project := filepath.Join(dir, "work", "nested")
	writeFile(t, filepath.Join(dir, "work", "am.toml"), `
[generate]
workers = 3
strict = true
`)
	require.NoError(t, os.MkdirAll(project, 0755))
	t.Chdir(project)
	t.Setenv("DOJODTS_INPUT_API_VERSION", "1.10.4")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "user-out", cfg.Output.Dir, "user file overrides system file")
	assert.Equal(t, "system-extras", cfg.Output.ExtrasDir)
	assert.Equal(t, 3, cfg.Generate.Workers, "project file found by upward search")
	assert.True(t, cfg.Generate.Strict)
	assert.Equal(t, "1.10.4", cfg.Input.APIVersion, "environment overrides every file")

	assert.Equal(t, SourceUser, ConfigSources["output.dir"].Source)
	assert.Equal(t, SourceSystem, ConfigSources["output.extras_dir"].Source)
	assert.Equal(t, SourceProject, ConfigSources["generate.workers"].Source)
	assert.Contains(t, ConfigSources["generate.workers"].Path, filepath.Join("work", "am.toml"))
}

func TestLoad_UserFileAlsoProjectFile(t *testing.T) {
	dir := isolate(t)

	userFile := filepath.Join(dir, ".dojodts", "am.toml")
	writeFile(t, userFile, "[output]\ndir = \"once\"\n")
	t.Chdir(filepath.Join(dir, ".dojodts"))

	files := ConfigFiles()
	require.Len(t, files, 1)
	assert.Equal(t, userFile, files[0])
}

func TestLoadFromFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	writeFile(t, path, `
[input]
details_path = "api/details.json"

[output]
prefixes = ["dojo"]
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "api/details.json", cfg.Input.DetailsPath)
	assert.Equal(t, []string{"dojo"}, cfg.Output.Prefixes)
	assert.Equal(t, DefaultOutputDir, cfg.Output.Dir)

	_, err = LoadFromFile(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}

func TestGetters(t *testing.T) {
	isolate(t)
	t.Setenv("DOJODTS_GENERATE_CACHE_SIZE", "16")

	assert.Equal(t, DefaultOutputDir, GetString("output.dir"))
	assert.True(t, GetBool("verify.syntax"))
	assert.Equal(t, 16, GetInt("generate.cache_size"))
	assert.Equal(t, DefaultAPIVersion, Get("input.api_version"))
}

func validConfig(t *testing.T) *Config {
	t.Helper()
	isolate(t)
	cfg, err := Load()
	require.NoError(t, err)
	copied := *cfg
	return &copied
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "patch version", mutate: func(c *Config) { c.Input.APIVersion = "1.10.4" }},
		{name: "no details", mutate: func(c *Config) { c.Input.DetailsPath = "" }, wantErr: "input.details_path"},
		{name: "bad version", mutate: func(c *Config) { c.Input.APIVersion = "ten" }, wantErr: "input.api_version"},
		{name: "empty prefix", mutate: func(c *Config) { c.Output.Prefixes = []string{"dojo", ""} }, wantErr: "output.prefixes"},
		{name: "zero workers", mutate: func(c *Config) { c.Generate.Workers = 0 }, wantErr: "generate.workers"},
		{name: "zero stray", mutate: func(c *Config) { c.Generate.MaxStrayOptionals = 0 }, wantErr: "max_stray_optionals"},
		{name: "huge stray", mutate: func(c *Config) { c.Generate.MaxStrayOptionals = 64 }, wantErr: "max_stray_optionals"},
		{name: "cache disabled", mutate: func(c *Config) { c.Generate.CacheSize = 0 }},
		{name: "negative cache", mutate: func(c *Config) { c.Generate.CacheSize = -1 }, wantErr: "generate.cache_size"},
		{name: "bad regexp", mutate: func(c *Config) { c.Generate.ForcedClass = []string{"(unclosed"} }, wantErr: "forced class"},
		{name: "negative debounce", mutate: func(c *Config) { c.Watch.DebounceMS = -5 }, wantErr: "watch.debounce_ms"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfigHelpers(t *testing.T) {
	cfg := &Config{
		Input: InputConfig{DetailsPath: "details.json"},
		Generate: GenerateConfig{
			PatchFile:       "patches.yaml",
			ForcedNamespace: []string{"^a$"},
			ForcedClass:     []string{"^b$"},
		},
		Watch: WatchConfig{DebounceMS: 250},
	}

	assert.Equal(t, []string{"details.json", "patches.yaml"}, cfg.InputFiles())
	assert.Equal(t, 250_000_000, int(cfg.Debounce()))
	assert.Equal(t, classify.Patterns{
		ForcedNamespace: []string{"^a$"},
		ForcedClass:     []string{"^b$"},
	}, cfg.Patterns())
}

func TestGetConfigIntrospection(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "am.toml"), "[output]\ndir = \"project-out\"\n")
	t.Setenv("DOJODTS_VERIFY_COMMAND", "tsc --noEmit")

	ci, err := GetConfigIntrospection()
	require.NoError(t, err)
	require.Len(t, ci.ConfigFiles, 1)

	byKey := make(map[string]SettingInfo)
	for _, s := range ci.Settings {
		byKey[s.Key] = s
	}

	assert.Equal(t, SourceProject, byKey["output.dir"].Source)
	assert.Equal(t, "project-out", byKey["output.dir"].Value)
	assert.Equal(t, SourceEnvironment, byKey["verify.command"].Source)
	assert.Equal(t, "DOJODTS_VERIFY_COMMAND", byKey["verify.command"].SourcePath)
	assert.Equal(t, SourceDefault, byKey["input.details_path"].Source)

	counts := ci.CountBySource()
	assert.Equal(t, 1, counts[SourceProject])
	assert.Equal(t, 1, counts[SourceEnvironment])
	assert.Equal(t, len(ci.Settings)-2, counts[SourceDefault])
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "DOJODTS_GENERATE_MAX_STRAY_OPTIONALS", EnvKey("generate.max_stray_optionals"))
}
