package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/signadot/kjson-format/kjson/encode"

	"github.com/scott-cotton/cli"
)

func fmtDocs(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Write && len(args) == 0 {
		return fmt.Errorf("%w: fmt -w requires files", cli.ErrUsage)
	}
	// files are rewritten in their own format
	mCfg := *cfg.MainConfig
	mCfg.OutFormat = nil
	f := mCfg.inFormat()
	mCfg.OutFormat = &f
	var opts []encode.EncodeOption
	if cfg.Indent == 0 && !f.IsBinary() {
		opts = append(opts, encode.EncodeIndent(2))
	}
	if cfg.Write {
		opts = append(opts, encode.EncodeColors(nil))
	}
	return eachFile(cc, args, func(name string, d []byte) error {
		docs, err := parseDocs(&mCfg, d)
		if err != nil {
			return err
		}
		if !cfg.Write {
			return writeDocs(&mCfg, cc.Out, docs, opts...)
		}
		var buf bytes.Buffer
		if err := writeDocs(&mCfg, &buf, docs, opts...); err != nil {
			return err
		}
		if bytes.Equal(buf.Bytes(), d) {
			return nil
		}
		info, err := os.Stat(name)
		if err != nil {
			return err
		}
		if err := os.WriteFile(name, buf.Bytes(), info.Mode().Perm()); err != nil {
			return err
		}
		theLog.Info("formatted", "file", name)
		return nil
	})
}
