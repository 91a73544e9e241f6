package main

import (
	"errors"
	"fmt"

	"github.com/signadot/kjson-format/kjson/ir"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a kpath", cli.ErrUsage)
	}
	kp := args[0]
	return eachFile(cc, args[1:], func(name string, d []byte) error {
		docs, err := parseDocs(cfg.MainConfig, d)
		if err != nil {
			return err
		}
		var res []*ir.Node
		for _, doc := range docs {
			v, err := doc.GetKPath(kp)
			if errors.Is(err, ir.ErrNotFound) {
				// don't encode anything and don't yell either
				continue
			}
			if err != nil {
				return fmt.Errorf("error executing get on %s: %w", name, err)
			}
			res = append(res, v)
		}
		return writeDocs(cfg.MainConfig, cc.Out, res)
	})
}
