package am

import (
	"github.com/Masterminds/semver/v3"

	"github.com/teranos/dojodts/classify"
	"github.com/teranos/dojodts/errors"
)

// maxStrayLimit caps generate.max_stray_optionals; 2^20 signatures per method
// is already far beyond anything a compiler will accept.
const maxStrayLimit = 20

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Input.DetailsPath == "" {
		return errors.New("input.details_path cannot be empty")
	}
	if _, err := semver.NewVersion(c.Input.APIVersion); err != nil {
		return errors.Wrapf(err, "input.api_version %q is not a version", c.Input.APIVersion)
	}

	for _, p := range c.Output.Prefixes {
		if p == "" {
			return errors.New("output.prefixes cannot contain an empty prefix")
		}
	}

	// Workers: at least one goroutine must synthesize
	if c.Generate.Workers <= 0 {
		return errors.Newf("generate.workers must be > 0, got %d", c.Generate.Workers)
	}
	if c.Generate.MaxStrayOptionals <= 0 || c.Generate.MaxStrayOptionals > maxStrayLimit {
		return errors.Newf("generate.max_stray_optionals must be between 1 and %d, got %d",
			maxStrayLimit, c.Generate.MaxStrayOptionals)
	}
	// Cache size: 0 disables the resolver cache, negative is invalid
	if c.Generate.CacheSize < 0 {
		return errors.Newf("generate.cache_size must be >= 0, got %d", c.Generate.CacheSize)
	}
	if _, err := classify.New(c.Patterns()); err != nil {
		return errors.Wrap(err, "generate")
	}

	if c.Watch.DebounceMS < 0 {
		return errors.Newf("watch.debounce_ms must be >= 0, got %d", c.Watch.DebounceMS)
	}

	return nil
}
