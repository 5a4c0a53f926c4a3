// Package search finds the nodes of a dynamic value whose key, value or type
// text satisfies a filter.
//
// A search is a linear depth first scan, parents before children, bounded by
// the filter's MaxDepth. The value text of a list or map is its preview, as
// shown in tree rows. The root is not a candidate: it has no key and is never
// a row of its own. Results are not maintained across mutations; a changed
// value needs a fresh pass.
package search

import (
	"context"
	"fmt"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/signadot/vtree/debug"
	"github.com/signadot/vtree/ir"
	"github.com/signadot/vtree/ir/addr"
)

const DefaultCacheSize = 64

// nodes visited between cancellation checks.
const pollInterval = 256

type matcherKey struct {
	pattern       string
	mode          Mode
	caseSensitive bool
}

type Engine struct {
	cacheSize int
	cache     *lru.Cache[matcherKey, Matcher]
	log       *slog.Logger
}

type Option func(*Engine)

// CacheSize sets how many compiled patterns are kept. 0 disables caching.
func CacheSize(n int) Option {
	return func(e *Engine) { e.cacheSize = n }
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{cacheSize: DefaultCacheSize}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = slog.Default()
	}
	if e.cacheSize > 0 {
		// only fails on a non positive size.
		e.cache, _ = lru.New[matcherKey, Matcher](e.cacheSize)
	}
	return e
}

// Matcher returns the compiled matcher of f, from the cache when possible.
func (e *Engine) Matcher(f Filter) (Matcher, error) {
	key := matcherKey{pattern: f.Pattern, mode: f.Mode, caseSensitive: f.CaseSensitive}
	if e.cache != nil {
		if m, ok := e.cache.Get(key); ok {
			return m, nil
		}
	}
	m, err := Compile(f.Pattern, f.Mode, f.CaseSensitive)
	if err != nil {
		return nil, err
	}
	if e.cache != nil {
		e.cache.Add(key, m)
	}
	return m, nil
}

// Hit is a matching node and the fields of it which matched.
type Hit struct {
	Address addr.Address
	Fields  Scope
}

type Result struct {
	Filter  Filter
	Hits    []Hit
	Visited int
}

// Search scans root with f. A canceled ctx stops the scan with ctx's error.
func (e *Engine) Search(ctx context.Context, root *ir.Node, f Filter) (*Result, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}
	m, err := e.Matcher(f)
	if err != nil {
		return nil, err
	}
	s := &scan{ctx: ctx, m: m, f: f, scope: f.scope(), res: &Result{Filter: f}}
	if !f.exceeds(1) {
		for tok, child := range root.Entries() {
			if err := s.visit(addr.New(tok), tok, child); err != nil {
				return nil, err
			}
		}
	}
	e.log.Debug("search", "filter", f.String(), "visited", s.res.Visited, "matches", len(s.res.Hits))
	return s.res, nil
}

type scan struct {
	ctx   context.Context
	m     Matcher
	f     Filter
	scope Scope
	res   *Result
}

func (s *scan) visit(a addr.Address, tok addr.Token, n *ir.Node) error {
	if s.res.Visited%pollInterval == 0 {
		if err := s.ctx.Err(); err != nil {
			return fmt.Errorf("search canceled after %d nodes: %w", s.res.Visited, err)
		}
	}
	s.res.Visited++
	if fields := s.match(tok, n); fields != 0 {
		s.res.Hits = append(s.res.Hits, Hit{Address: a, Fields: fields})
		if debug.Search() {
			debug.Logf("search: %s matched %s\n", a, fields)
		}
	}
	if s.f.exceeds(a.Depth() + 1) {
		return nil
	}
	for ctok, child := range n.Entries() {
		if err := s.visit(a.Child(ctok), ctok, child); err != nil {
			return err
		}
	}
	return nil
}

func (s *scan) match(tok addr.Token, n *ir.Node) Scope {
	var res Scope
	if s.scope&KeyScope != 0 && s.m.Match(tok.Label()) {
		res |= KeyScope
	}
	if s.scope&ValueScope != 0 && s.m.Match(s.valueText(n)) {
		res |= ValueScope
	}
	if s.scope&TypeScope != 0 && s.m.Match(n.Type.String()) {
		res |= TypeScope
	}
	return res
}

// valueText is the unquoted text of a scalar, or the row preview of a list
// or map.
func (s *scan) valueText(n *ir.Node) string {
	if n.IsLeaf() {
		return ir.Text(n)
	}
	return ir.Preview(n, s.f.PreviewDepth, 0)
}

func (r *Result) Len() int {
	return len(r.Hits)
}

// Matches returns the matching addresses in traversal order.
func (r *Result) Matches() []addr.Address {
	res := make([]addr.Address, len(r.Hits))
	for i := range r.Hits {
		res[i] = r.Hits[i].Address
	}
	return res
}

// Contains reports whether a is a match.
func (r *Result) Contains(a addr.Address) bool {
	for i := range r.Hits {
		if r.Hits[i].Address.Equal(a) {
			return true
		}
	}
	return false
}
