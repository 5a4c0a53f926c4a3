package main

import (
	"fmt"

	"github.com/signadot/vtree/edit"
	"github.com/signadot/vtree/ir"

	"github.com/scott-cotton/cli"
)

// mutate opens file, applies op and writes the result.
func (cfg *MainConfig) mutate(cc *cli.Context, file string, op edit.Op, flags EditFlags) error {
	s, err := cfg.open(cc, file)
	if err != nil {
		return err
	}
	if _, err := s.Mutate(op); err != nil {
		return fmt.Errorf("%s on %s: %w", op, file, err)
	}
	return cfg.finish(cc, file, s, flags)
}

func set(cfg *SetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Set.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 3 {
		return fmt.Errorf("%w: set requires a file, an address and a value", cli.ErrUsage)
	}
	at, err := parseAddr(args[1])
	if err != nil {
		return err
	}
	var op edit.Op = edit.SetValue{At: at, Value: parseValue(args[2])}
	if cfg.Text || cfg.As != "" {
		as := edit.KeepType
		if cfg.As != "" {
			if as, err = ir.ParseType(cfg.As); err != nil {
				return fmt.Errorf("%w: %w", cli.ErrUsage, err)
			}
		}
		op = edit.SetText{At: at, Text: args[2], As: as}
	}
	return cfg.mutate(cc, args[0], op, EditFlags{Write: cfg.Write, Show: cfg.Show})
}

func setType(cfg *SetTypeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.SetType.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 3 {
		return fmt.Errorf("%w: settype requires a file, an address and a type", cli.ErrUsage)
	}
	at, err := parseAddr(args[1])
	if err != nil {
		return err
	}
	to, err := ir.ParseType(args[2])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	op := edit.SetType{At: at, To: to, Force: cfg.Force}
	return cfg.mutate(cc, args[0], op, EditFlags{Write: cfg.Write, Show: cfg.Show})
}

func insert(cfg *InsertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Insert.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 3 {
		return fmt.Errorf("%w: insert requires a file, an address and a value", cli.ErrUsage)
	}
	if cfg.Before && cfg.After {
		return fmt.Errorf("%w: at most one of -before and -after", cli.ErrUsage)
	}
	at, err := parseAddr(args[1])
	if err != nil {
		return err
	}
	v := parseValue(args[2])
	var op edit.Op
	switch {
	case cfg.Before:
		op = edit.InsertBefore{At: at, Value: v}
	case cfg.After:
		op = edit.InsertAfter{At: at, Value: v}
	case cfg.Key != "":
		key := cfg.Key
		op = edit.InsertInto{At: at, Key: &key, Value: v}
	default:
		op = edit.InsertInto{At: at, Value: v}
	}
	return cfg.mutate(cc, args[0], op, EditFlags{Write: cfg.Write, Show: cfg.Show})
}

func remove(cfg *RemoveConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Remove.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: rm requires a file and an address", cli.ErrUsage)
	}
	at, err := parseAddr(args[1])
	if err != nil {
		return err
	}
	return cfg.mutate(cc, args[0], edit.Remove{At: at}, EditFlags{Write: cfg.Write, Show: cfg.Show})
}

func rename(cfg *RenameConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Rename.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 3 {
		return fmt.Errorf("%w: rename requires a file, an address and a key", cli.ErrUsage)
	}
	at, err := parseAddr(args[1])
	if err != nil {
		return err
	}
	op := edit.SetKey{At: at, Key: args[2]}
	return cfg.mutate(cc, args[0], op, EditFlags{Write: cfg.Write, Show: cfg.Show})
}
