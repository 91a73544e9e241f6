package main

import (
	"github.com/signadot/kjson-format/kjson/encode"

	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	var opts []encode.EncodeOption
	if cfg.Indent == 0 {
		opts = append(opts, encode.EncodeIndent(2))
	}
	first := true
	return eachFile(cc, args, func(_ string, d []byte) error {
		docs, err := parseDocs(cfg.MainConfig, d)
		if err != nil {
			return err
		}
		if !first {
			if err := writeSep(cc.Out); err != nil {
				return err
			}
		}
		first = false
		return writeDocs(cfg.MainConfig, cc.Out, docs, opts...)
	})
}
