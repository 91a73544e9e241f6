package main

import (
	"fmt"

	"github.com/signadot/kjson-format/kjson"
	"github.com/signadot/kjson-format/kjson/ir"

	"github.com/scott-cotton/cli"
)

func match(cfg *MatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Command.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: match requires 1 argument, a pattern", cli.ErrUsage)
	}
	pattern, err := getish(cfg.MainConfig, cfg.String, cfg.File, cc, args[0])
	if err != nil {
		return err
	}
	var res []*ir.Node
	err = eachFile(cc, args[1:], func(_ string, d []byte) error {
		docs, err := parseDocs(cfg.MainConfig, d)
		if err != nil {
			return err
		}
		for _, doc := range docs {
			if !kjson.Match(doc, pattern, kjson.MatchArraySubset(cfg.Subset)) {
				continue
			}
			if cfg.Trim {
				doc = kjson.Trim(pattern, doc)
			}
			res = append(res, doc)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return writeDocs(cfg.MainConfig, cc.Out, res)
}
