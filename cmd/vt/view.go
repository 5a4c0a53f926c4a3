package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/signadot/vtree"
	"github.com/signadot/vtree/encode"
	"github.com/signadot/vtree/ir"
	"github.com/signadot/vtree/ir/addr"
	"github.com/signadot/vtree/tree"

	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 || len(args) > 2 {
		return fmt.Errorf("%w: view requires a file and an optional address", cli.ErrUsage)
	}
	at := addr.Root
	if len(args) == 2 {
		if at, err = parseAddr(args[1]); err != nil {
			return err
		}
	}
	var tOpts []tree.Option
	if cfg.Sort {
		tOpts = append(tOpts, tree.SortKeys(true))
	}
	if cfg.PreviewDepth >= 0 {
		tOpts = append(tOpts, tree.PreviewDepth(cfg.PreviewDepth))
	}
	depth := cfg.Depth
	if depth >= 0 {
		// let -depth go past the configured cap below at
		tOpts = append(tOpts, tree.MaxDepth(at.Depth()+depth))
	}
	s, err := cfg.open(cc, args[0], vtree.TreeOptions(tOpts...))
	if err != nil {
		return err
	}
	return printTree(cc.Out, s, at, depth, newPainter(cfg.colors(cc.Out)), nil)
}

func printTree(w io.Writer, s *vtree.Session, at addr.Address, depth int, p *painter, isMatch func(addr.Address) bool) error {
	top, err := s.Row(at)
	if err != nil {
		return err
	}
	rows, err := s.Expand(at, depth)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, p.row(top, 0, false, isMatch)); err != nil {
		return err
	}
	for i := range rows {
		r := &rows[i]
		last := i == len(rows)-1 || rows[i+1].Depth <= r.Depth
		folded := r.HasChildren() && last
		if _, err := fmt.Fprintln(w, p.row(*r, r.Depth-at.Depth(), folded, isMatch)); err != nil {
			return err
		}
	}
	return nil
}

type painter struct {
	colors *encode.Colors
}

func newPainter(c *encode.Colors) *painter {
	return &painter{colors: c}
}

func (p *painter) paint(t ir.Type, a encode.ColorAttr, s string) string {
	if p.colors == nil {
		return s
	}
	return p.colors.Color(t, a, s)
}

// row renders r as "label: preview <Type>", indented by level. Folded rows
// have children which were not expanded.
func (p *painter) row(r tree.Row, level int, folded bool, isMatch func(addr.Address) bool) string {
	var buf strings.Builder
	buf.WriteString(strings.Repeat("  ", level))
	marker := "  "
	if folded {
		marker = "+ "
	}
	buf.WriteString(p.paint(r.Type, encode.SepColor, marker))
	attr := encode.FieldColor
	if isMatch != nil && isMatch(r.Address) {
		attr = encode.MatchColor
	}
	buf.WriteString(p.paint(r.Type, attr, r.Label))
	buf.WriteString(p.paint(r.Type, encode.SepColor, ": "))
	buf.WriteString(p.paint(r.Type, encode.ValueColor, r.Preview))
	buf.WriteString(" " + p.paint(r.Type, encode.TypeColor, "<"+r.TypeName+">"))
	return buf.String()
}
