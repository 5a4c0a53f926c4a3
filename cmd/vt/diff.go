package main

import (
	"fmt"

	"github.com/signadot/vtree/libdiff"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 files", cli.ErrUsage)
	}
	from, err := cfg.open(cc, args[0])
	if err != nil {
		return err
	}
	to, err := cfg.open(cc, args[1])
	if err != nil {
		return err
	}
	if cfg.Merge {
		p, err := libdiff.MergePatch(from.SnapshotRoot(), to.SnapshotRoot())
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(cc.Out, "%s\n", p)
		return err
	}
	edits := libdiff.Diff(from.SnapshotRoot(), to.SnapshotRoot())
	paint := map[libdiff.Kind]func(string, ...any) string{}
	if cfg.colors(cc.Out) != nil {
		paint[libdiff.Insert] = color.GreenString
		paint[libdiff.Delete] = color.RedString
		paint[libdiff.Replace] = color.YellowString
	}
	for _, e := range edits {
		line := e.String()
		if f := paint[e.Kind]; f != nil {
			line = f("%s", line)
		}
		if _, err := fmt.Fprintln(cc.Out, line); err != nil {
			return err
		}
	}
	if len(edits) != 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}
