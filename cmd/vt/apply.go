package main

import (
	"fmt"

	"github.com/signadot/vtree"
	"github.com/signadot/vtree/edit"
	"github.com/signadot/vtree/format"

	"github.com/scott-cotton/cli"
)

func apply(cfg *ApplyConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Apply.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Ops {
		fmt.Fprintf(cc.Out, "available ops:\n")
		for _, name := range edit.Names() {
			fmt.Fprintf(cc.Out, "\t- %s\n", name)
		}
		return nil
	}
	if cfg.File == "" || len(args) != 1 {
		return fmt.Errorf("%w: apply requires -f opsfile and a file", cli.ErrUsage)
	}
	d, err := readInput(cc, cfg.File)
	if err != nil {
		return err
	}
	codec, err := vtree.CodecFor(cfg.File)
	if err != nil {
		codec = vtree.NewCodec(format.YAMLFormat)
	}
	spec, err := codec.Decode(d)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", cfg.File, err)
	}
	ops, err := edit.DecodeList(spec)
	if err != nil {
		return fmt.Errorf("error in %s: %w", cfg.File, err)
	}
	s, err := cfg.open(cc, args[0])
	if err != nil {
		return err
	}
	if _, err := s.Apply(ops...); err != nil {
		return err
	}
	return cfg.finish(cc, args[0], s, EditFlags{Write: cfg.Write, Show: cfg.Show})
}
