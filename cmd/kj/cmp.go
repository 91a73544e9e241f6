package main

import (
	"fmt"

	"github.com/signadot/kjson-format/kjson/ir"

	"github.com/scott-cotton/cli"
)

func cmpDocs(cfg *CmpConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Cmp.Parse(cc, args)
	if err != nil {
		return err
	}
	a, b, err := getPair(cfg.MainConfig, cc, "cmp", args)
	if err != nil {
		return err
	}
	res := ir.Compare(a, b)
	if cfg.Ordered && res == 0 && !ir.EqualOrdered(a, b) {
		// same members in a different order
		res = 1
	}
	_, err = fmt.Fprintln(cc.Out, res)
	return err
}

func contains(cfg *ContainsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Contains.Parse(cc, args)
	if err != nil {
		return err
	}
	a, b, err := getPair(cfg.MainConfig, cc, "contains", args)
	if err != nil {
		return err
	}
	if !ir.Contains(a, b) {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func getPair(cfg *MainConfig, cc *cli.Context, name string, args []string) (*ir.Node, *ir.Node, error) {
	if len(args) != 2 {
		return nil, nil, fmt.Errorf("%w: %s requires 2 args, got %v", cli.ErrUsage, name, args)
	}
	a, err := getObjFile(cfg, cc, args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	b, err := getObjFile(cfg, cc, args[1])
	if err != nil {
		return nil, nil, fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	return a, b, nil
}
