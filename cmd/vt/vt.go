package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/signadot/vtree"
	"github.com/signadot/vtree/config"
	"github.com/signadot/vtree/ir"
	"github.com/signadot/vtree/ir/addr"
	"github.com/signadot/vtree/parse"

	"github.com/gofrs/flock"
	"github.com/scott-cotton/cli"
)

func vtMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.J && cfg.Y {
		return fmt.Errorf("%w: must specify at most one of -j[son] -y[aml]", cli.ErrUsage)
	}
	if err := config.LoadEnvFile(cfg.Env); err != nil {
		return err
	}
	settings, err := config.Load(cfg.Config)
	if err != nil {
		return err
	}
	cfg.Settings = settings
	slog.SetDefault(newLog(cfg.Verbose))
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

func readInput(cc *cli.Context, path string) ([]byte, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return d, nil
}

func (cfg *MainConfig) open(cc *cli.Context, path string, opts ...vtree.Option) (*vtree.Session, error) {
	d, err := readInput(cc, path)
	if err != nil {
		return nil, err
	}
	opts = append(cfg.Settings.SessionOptions(), opts...)
	s, err := vtree.Open(d, cfg.inCodec(path), opts...)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", path, err)
	}
	return s, nil
}

func parseAddr(a string) (addr.Address, error) {
	res, err := addr.Parse(a)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	return res, nil
}

// parseValue reads a command line value as JSON, falling back to a string.
func parseValue(v string) *ir.Node {
	n, err := parse.Parse([]byte(v), parse.ParseJSON())
	if err != nil {
		return ir.FromString(v)
	}
	return n
}

// finish writes the edited session back to path or to the output.
func (cfg *MainConfig) finish(cc *cli.Context, path string, s *vtree.Session, flags EditFlags) error {
	if flags.Show {
		for _, e := range s.Changes() {
			fmt.Fprintln(os.Stderr, e)
		}
	}
	if !flags.Write {
		d, err := cfg.outCodec(path, cc.Out).Encode(s.SnapshotRoot())
		if err != nil {
			return err
		}
		_, err = cc.Out.Write(d)
		return err
	}
	if path == "-" {
		return fmt.Errorf("%w: cannot write back to stdin", cli.ErrUsage)
	}
	return save(path, s, cfg.inCodec(path))
}

const lockWait = 2 * time.Second

func save(path string, s *vtree.Session, enc vtree.Encoder) error {
	lock := flock.New(path + ".lock")
	ctx, cancel := context.WithTimeout(context.Background(), lockWait)
	defer cancel()
	ok, err := lock.TryLockContext(ctx, 50*time.Millisecond)
	if err != nil {
		return fmt.Errorf("could not lock %s: %w", path, err)
	}
	if !ok {
		return fmt.Errorf("%s is locked by another process", path)
	}
	defer lock.Unlock()
	mode := os.FileMode(0644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}
	buf := bytes.NewBuffer(nil)
	if err := s.Save(buf, enc); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), mode)
}
