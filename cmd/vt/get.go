package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: get requires a file and an address", cli.ErrUsage)
	}
	at, err := parseAddr(args[1])
	if err != nil {
		return err
	}
	s, err := cfg.open(cc, args[0])
	if err != nil {
		return err
	}
	n, err := s.Resolve(at)
	if err != nil {
		return fmt.Errorf("error getting %s from %s: %w", at, args[0], err)
	}
	d, err := cfg.outCodec(args[0], cc.Out).Encode(n)
	if err != nil {
		return err
	}
	_, err = cc.Out.Write(d)
	return err
}
