package vtree

import (
	"log/slog"

	"github.com/signadot/vtree/search"
	"github.com/signadot/vtree/tree"
)

type Config struct {
	Logger *slog.Logger
	// Tree configures the row model of a session.
	Tree []tree.Option
	// Engine runs searches. Sessions of a Workspace share one engine and so
	// one compiled pattern cache.
	Engine *search.Engine
	// Filter is the search filter a session starts with, if any.
	Filter *search.Filter
}

type Option func(*Config)

func WithLogger(l *slog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

func TreeOptions(opts ...tree.Option) Option {
	return func(c *Config) { c.Tree = append(c.Tree, opts...) }
}

func WithEngine(e *search.Engine) Option {
	return func(c *Config) { c.Engine = e }
}

func WithFilter(f search.Filter) Option {
	return func(c *Config) { c.Filter = &f }
}

func newConfig(opts []Option) *Config {
	c := &Config{}
	for _, opt := range opts {
		opt(c)
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Engine == nil {
		c.Engine = search.NewEngine(search.WithLogger(c.Logger))
	}
	return c
}
