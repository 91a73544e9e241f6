package main

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/scott-cotton/cli"
)

func conv(cfg *ConvConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Conv.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Hex && !cfg.outFormat().IsBinary() {
		return fmt.Errorf("%w: -x requires kjsonb output", cli.ErrUsage)
	}
	return eachFile(cc, args, func(_ string, d []byte) error {
		if cfg.inFormat().IsBinary() && isHex(d) {
			if d, err = hex.DecodeString(string(bytes.TrimRight(d, "\r\n"))); err != nil {
				return err
			}
		}
		docs, err := parseDocs(cfg.MainConfig, d)
		if err != nil {
			return err
		}
		if !cfg.Hex {
			return writeDocs(cfg.MainConfig, cc.Out, docs)
		}
		var buf bytes.Buffer
		if err := writeDocs(cfg.MainConfig, &buf, docs); err != nil {
			return err
		}
		_, err = fmt.Fprintln(cc.Out, hex.EncodeToString(buf.Bytes()))
		return err
	})
}

// isHex reports whether d looks like hex text rather than kjsonb bytes.
// Only trailing line endings are dropped: 0x20 and 0x09 are kjsonb tag
// and payload bytes.
func isHex(d []byte) bool {
	d = bytes.TrimRight(d, "\r\n")
	if len(d) == 0 || len(d)%2 != 0 {
		return false
	}
	for _, c := range d {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
