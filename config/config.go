// Package config loads vtree settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"github.com/signadot/vtree"
	"github.com/signadot/vtree/search"
	"github.com/signadot/vtree/tree"
)

const EnvPrefix = "VTREE_"

var ErrConfig = errors.New("config error")

type Config struct {
	Tree   TreeConfig   `yaml:"tree"`
	Search SearchConfig `yaml:"search"`
	// Color is one of auto, always and never.
	Color string `yaml:"color"`
}

type TreeConfig struct {
	MaxDepth     int  `yaml:"maxDepth"`
	PreviewDepth int  `yaml:"previewDepth"`
	PreviewLimit int  `yaml:"previewLimit"`
	SortKeys     bool `yaml:"sortKeys"`
}

type SearchConfig struct {
	Mode          search.Mode  `yaml:"mode"`
	Scope         search.Scope `yaml:"scope"`
	CaseSensitive bool         `yaml:"caseSensitive"`
	// MaxDepth is unbounded when absent.
	MaxDepth      *int         `yaml:"maxDepth"`
	CacheSize     int          `yaml:"cacheSize"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Tree: TreeConfig{
			MaxDepth:     tree.DefaultMaxDepth,
			PreviewLimit: tree.DefaultPreviewLimit,
		},
		Search: SearchConfig{
			Mode:      search.Contains,
			Scope:     search.AllScope,
			CacheSize: search.DefaultCacheSize,
		},
		Color: "auto",
	}
}

// Load reads the file at path over the defaults and then applies the
// environment. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		d, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.UnmarshalWithOptions(d, cfg, yaml.DisallowUnknownField()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrConfig, path, err)
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEnvFile adds the variables of .env style files to the environment,
// keeping variables which are already set. Missing files are skipped.
func LoadEnvFile(paths ...string) error {
	var present []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			present = append(present, p)
		}
	}
	if len(present) == 0 {
		return nil
	}
	if err := godotenv.Load(present...); err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return nil
}

// ApplyEnv overrides settings from VTREE_ variables found with lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	ints := map[string]*int{
		"MAX_DEPTH":        &c.Tree.MaxDepth,
		"PREVIEW_DEPTH":    &c.Tree.PreviewDepth,
		"PREVIEW_LIMIT":    &c.Tree.PreviewLimit,
		"CACHE_SIZE":       &c.Search.CacheSize,
	}
	for name, p := range ints {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			continue
		}
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s%s: %w", ErrConfig, EnvPrefix, name, err)
		}
		*p = i
	}
	if v, ok := lookup(EnvPrefix + "SEARCH_MAX_DEPTH"); ok {
		v = strings.TrimSpace(v)
		if strings.EqualFold(v, "unbounded") {
			c.Search.MaxDepth = nil
		} else {
			i, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%w: %sSEARCH_MAX_DEPTH: %w", ErrConfig, EnvPrefix, err)
			}
			c.Search.MaxDepth = search.Depth(i)
		}
	}
	bools := map[string]*bool{
		"SORT_KEYS":      &c.Tree.SortKeys,
		"CASE_SENSITIVE": &c.Search.CaseSensitive,
	}
	for name, p := range bools {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s%s: %w", ErrConfig, EnvPrefix, name, err)
		}
		*p = b
	}
	if v, ok := lookup(EnvPrefix + "SEARCH_MODE"); ok {
		if err := c.Search.Mode.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("%w: %sSEARCH_MODE: %w", ErrConfig, EnvPrefix, err)
		}
	}
	if v, ok := lookup(EnvPrefix + "SEARCH_SCOPE"); ok {
		if err := c.Search.Scope.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("%w: %sSEARCH_SCOPE: %w", ErrConfig, EnvPrefix, err)
		}
	}
	if v, ok := lookup(EnvPrefix + "COLOR"); ok {
		c.Color = strings.ToLower(strings.TrimSpace(v))
	}
	return nil
}

func (c *Config) Validate() error {
	switch {
	case c.Tree.MaxDepth < 1:
		return fmt.Errorf("%w: tree.maxDepth must be positive, got %d", ErrConfig, c.Tree.MaxDepth)
	case c.Tree.PreviewDepth < 0:
		return fmt.Errorf("%w: tree.previewDepth is negative", ErrConfig)
	case c.Tree.PreviewLimit < 1:
		return fmt.Errorf("%w: tree.previewLimit must be positive, got %d", ErrConfig, c.Tree.PreviewLimit)
	case c.Search.MaxDepth != nil && *c.Search.MaxDepth < 0:
		return fmt.Errorf("%w: search.maxDepth is negative", ErrConfig)
	case c.Search.CacheSize < 0:
		return fmt.Errorf("%w: search.cacheSize is negative", ErrConfig)
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("%w: color must be auto, always or never, got %q", ErrConfig, c.Color)
	}
	return nil
}

func (c *Config) TreeOptions() []tree.Option {
	return []tree.Option{
		tree.MaxDepth(c.Tree.MaxDepth),
		tree.PreviewDepth(c.Tree.PreviewDepth),
		tree.PreviewLimit(c.Tree.PreviewLimit),
		tree.SortKeys(c.Tree.SortKeys),
	}
}

// Filter returns a search filter for pattern with the configured defaults.
func (c *Config) Filter(pattern string) search.Filter {
	f := search.Filter{
		Pattern:       pattern,
		Mode:          c.Search.Mode,
		Scope:         c.Search.Scope,
		CaseSensitive: c.Search.CaseSensitive,
		PreviewDepth:  c.Tree.PreviewDepth,
	}
	if c.Search.MaxDepth != nil {
		f.MaxDepth = search.Depth(*c.Search.MaxDepth)
	}
	return f
}

func (c *Config) SessionOptions() []vtree.Option {
	return []vtree.Option{
		vtree.TreeOptions(c.TreeOptions()...),
		vtree.WithEngine(search.NewEngine(search.CacheSize(c.Search.CacheSize))),
	}
}
