package main

import (
	"fmt"

	"github.com/signadot/vtree/edit"
	"github.com/signadot/vtree/ir"
	"github.com/signadot/vtree/ir/addr"
	"github.com/signadot/vtree/libdiff"

	"github.com/scott-cotton/cli"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.File == "" || len(args) != 1 {
		return fmt.Errorf("%w: patch requires -f patchfile and a file", cli.ErrUsage)
	}
	p, err := readInput(cc, cfg.File)
	if err != nil {
		return err
	}
	s, err := cfg.open(cc, args[0])
	if err != nil {
		return err
	}
	var res *ir.Node
	if cfg.Merge {
		res, err = libdiff.ApplyMergePatch(s.SnapshotRoot(), p)
	} else {
		res, err = libdiff.ApplyJSONPatch(s.SnapshotRoot(), p)
	}
	if err != nil {
		return fmt.Errorf("error patching %s with %s: %w", args[0], cfg.File, err)
	}
	if _, err := s.Mutate(edit.SetValue{At: addr.Root, Value: res}); err != nil {
		return err
	}
	return cfg.finish(cc, args[0], s, EditFlags{Write: cfg.Write, Show: cfg.Show})
}
