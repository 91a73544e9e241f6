package main

import (
	"fmt"

	"github.com/signadot/kjson-format/kjson/ir"

	"github.com/scott-cotton/cli"
)

func list(cfg *ListConfig, cc *cli.Context, args []string) error {
	args, err := cfg.List.Parse(cc, args)
	if err != nil {
		cfg.List.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: list requires one argument, a kpath", cli.ErrUsage)
	}
	kp := args[0]
	return eachFile(cc, args[1:], func(name string, d []byte) error {
		docs, err := parseDocs(cfg.MainConfig, d)
		if err != nil {
			return err
		}
		var res []*ir.Node
		for _, doc := range docs {
			vs, err := doc.ListKPath(nil, kp)
			if err != nil {
				return fmt.Errorf("error executing list on %s: %w", name, err)
			}
			// detach so FromSlice can adopt them
			for _, v := range vs {
				c := v.Clone()
				c.Parent = nil
				res = append(res, c)
			}
		}
		return writeDocs(cfg.MainConfig, cc.Out, []*ir.Node{ir.FromSlice(res)})
	})
}
