package tree

import (
	"log/slog"

	"github.com/signadot/vtree/ir/addr"
)

const (
	DefaultMaxDepth     = 3
	DefaultPreviewLimit = 80
)

// Visibility restricts the rows a Model exposes. The root is always visible.
type Visibility interface {
	Visible(a addr.Address) bool
}

// VisibilityFunc adapts a function to Visibility.
type VisibilityFunc func(addr.Address) bool

func (f VisibilityFunc) Visible(a addr.Address) bool {
	return f(a)
}

type Config struct {
	// MaxDepth caps automatic expansion, measured from the root.
	MaxDepth int
	// PreviewDepth is how many container levels previews render inline.
	PreviewDepth int
	// PreviewLimit is the preview length in runes, 0 for no limit.
	PreviewLimit int
	SortKeys     bool
	Visibility   Visibility
	Logger       *slog.Logger
}

type Option func(*Config)

func MaxDepth(d int) Option {
	return func(c *Config) { c.MaxDepth = d }
}

func PreviewDepth(d int) Option {
	return func(c *Config) { c.PreviewDepth = d }
}

func PreviewLimit(n int) Option {
	return func(c *Config) { c.PreviewLimit = n }
}

// SortKeys orders map children by key. Lists keep their order.
func SortKeys(v bool) Option {
	return func(c *Config) { c.SortKeys = v }
}

func WithVisibility(v Visibility) Option {
	return func(c *Config) { c.Visibility = v }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

func newConfig(opts []Option) *Config {
	c := &Config{
		MaxDepth:     DefaultMaxDepth,
		PreviewLimit: DefaultPreviewLimit,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}
