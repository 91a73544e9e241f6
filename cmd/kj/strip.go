package main

import (
	"github.com/signadot/kjson-format/kjson/ir"

	"github.com/scott-cotton/cli"
)

func strip(cfg *StripConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Strip.Parse(cc, args)
	if err != nil {
		return err
	}
	var res []*ir.Node
	err = eachFile(cc, args, func(_ string, d []byte) error {
		docs, err := parseDocs(cfg.MainConfig, d)
		if err != nil {
			return err
		}
		for _, doc := range docs {
			res = append(res, ir.StripNulls(doc))
		}
		return nil
	})
	if err != nil {
		return err
	}
	return writeDocs(cfg.MainConfig, cc.Out, res)
}
