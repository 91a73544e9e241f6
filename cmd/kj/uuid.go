package main

import (
	"fmt"

	"github.com/signadot/kjson-format/kjson/ir"

	"github.com/scott-cotton/cli"
)

func genUUID(cfg *UUIDConfig, cc *cli.Context, args []string) error {
	args, err := cfg.UUID.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: uuid takes no arguments", cli.ErrUsage)
	}
	if cfg.N < 1 {
		return fmt.Errorf("%w: -n must be positive", cli.ErrUsage)
	}
	gen := ir.NewUUIDv4
	if cfg.V7 {
		gen = ir.NewUUIDv7
	}
	for range cfg.N {
		node, err := gen()
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(cc.Out, node.UUID); err != nil {
			return err
		}
	}
	return nil
}
