package main

import (
	"context"
	"fmt"
	"math"

	"github.com/signadot/vtree"
	"github.com/signadot/vtree/encode"
	"github.com/signadot/vtree/ir"
	"github.com/signadot/vtree/ir/addr"
	"github.com/signadot/vtree/search"
	"github.com/signadot/vtree/tree"

	"github.com/scott-cotton/cli"
)

func find(cfg *FindConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Find.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: find requires a pattern and a file", cli.ErrUsage)
	}
	f, err := cfg.filter(args[0])
	if err != nil {
		return err
	}
	var opts []vtree.Option
	if cfg.Tree {
		opts = append(opts, vtree.TreeOptions(tree.MaxDepth(math.MaxInt32)))
	}
	s, err := cfg.open(cc, args[1], opts...)
	if err != nil {
		return err
	}
	ctx := context.Background()
	p := newPainter(cfg.colors(cc.Out))
	if cfg.Tree {
		if err := s.SetFilter(ctx, f); err != nil {
			return err
		}
		res := s.LastResult()
		return printTree(cc.Out, s, addr.Root, -1, p, res.Contains)
	}
	res, err := s.Search(ctx, f)
	if err != nil {
		return err
	}
	for _, hit := range res.Hits {
		n, err := s.Resolve(hit.Address)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(cc.Out, "%s\t%s\t%s\n",
			p.paint(n.Type, encode.MatchColor, hit.Address.KPath()),
			p.paint(n.Type, encode.ValueColor, ir.Preview(n, 0, 60)),
			p.paint(n.Type, encode.TypeColor, hit.Fields.String()))
		if err != nil {
			return err
		}
	}
	return nil
}

// filter starts from the configured search defaults and applies the
// command line.
func (cfg *FindConfig) filter(pattern string) (search.Filter, error) {
	f := cfg.Settings.Filter(pattern)
	if cfg.Mode != "" {
		m, err := search.ParseMode(cfg.Mode)
		if err != nil {
			return f, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		f.Mode = m
	}
	if cfg.Scope != "" {
		sc, err := search.ParseScope(cfg.Scope)
		if err != nil {
			return f, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		f.Scope = sc
	}
	if cfg.Case {
		f.CaseSensitive = true
	}
	if cfg.Depth >= 0 {
		f.MaxDepth = search.Depth(cfg.Depth)
	}
	return f, nil
}
