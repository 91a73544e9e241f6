package main

import (
	"bytes"
	"fmt"

	"github.com/signadot/kjson-format/kjson/ir"

	"github.com/goccy/go-json"
	"github.com/scott-cotton/cli"
)

func dump(cfg *DumpConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dump.Parse(cc, args)
	if err != nil {
		return err
	}
	return eachFile(cc, args, func(_ string, d []byte) error {
		docs, err := parseDocs(cfg.MainConfig, d)
		if err != nil {
			return err
		}
		for i, doc := range docs {
			if i > 0 {
				if err := writeSep(cc.Out); err != nil {
					return err
				}
			}
			j, err := ir.ToJSON(doc)
			if err != nil {
				return fmt.Errorf("internal error: %w", err)
			}
			var buf []byte
			if buf, err = indentJSON(j); err != nil {
				return err
			}
			if _, err := cc.Out.Write(append(buf, '\n')); err != nil {
				return err
			}
		}
		return nil
	})
}

func indentJSON(d []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, d, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
