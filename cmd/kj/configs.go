package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/signadot/kjson-format/kjson/encode"
	"github.com/signadot/kjson-format/kjson/eval"
	"github.com/signadot/kjson-format/kjson/format"
	"github.com/signadot/kjson-format/kjson/parse"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color     bool `cli:"name=color desc='encode with color'"`
	Indent    int  `cli:"name=indent desc='indent output by n spaces, 0 for one line'"`
	QuoteKeys bool `cli:"name=k desc='quote every object key'"`
	Strict    bool `cli:"name=strict desc='reject number literals that overflow a float64'"`

	J bool `cli:"name=j aliases=json desc='do i/o in json'"`
	Y bool `cli:"name=y aliases=yaml desc='do i/o in yaml'"`
	B bool `cli:"name=b aliases=bin desc='do i/o in kjsonb'"`

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) flagFormat() format.Format {
	switch {
	case cfg.J:
		return format.JSONFormat
	case cfg.Y:
		return format.YAMLFormat
	case cfg.B:
		return format.KJSONBFormat
	}
	return format.KJSONFormat
}

func (cfg *MainConfig) inFormat() format.Format {
	if cfg.InFormat != nil {
		return *cfg.InFormat
	}
	return cfg.flagFormat()
}

func (cfg *MainConfig) outFormat() format.Format {
	if cfg.OutFormat != nil {
		return *cfg.OutFormat
	}
	return cfg.flagFormat()
}

func (cfg *MainConfig) parseOpts() []parse.ParseOption {
	return []parse.ParseOption{
		parse.ParseFormat(cfg.inFormat()),
		parse.StrictNumbers(cfg.Strict),
	}
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeFormat(cfg.outFormat()),
		encode.EncodeIndent(cfg.Indent),
		encode.EncodeQuoteKeys(cfg.QuoteKeys),
	}
	if cfg.Color {
		res = append(res, encode.EncodeColors(encode.NewColors()))
		return res
	}
	colorsSet := false
	if cfg.Main != nil {
		for _, opt := range cfg.Main.Opts {
			if opt.Name != "color" {
				continue
			}
			colorsSet = opt.Value != nil
			break
		}
	}
	if colorsSet || cfg.outFormat().IsBinary() {
		return res
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

type ViewConfig struct {
	*MainConfig

	View *cli.Command
}

type FmtConfig struct {
	*MainConfig
	Write bool `cli:"name=w desc='write the result to the source file instead of the output'"`

	Fmt *cli.Command
}

type ConvConfig struct {
	*MainConfig
	Hex bool `cli:"name=x desc='write kjsonb output as hex'"`

	Conv *cli.Command
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type ListConfig struct {
	*MainConfig

	List *cli.Command
}

type MatchConfig struct {
	*cli.Command
	*MainConfig

	Trim   bool `cli:"name=trim desc='trim the results to the match'"`
	Subset bool `cli:"name=subset desc='match array patterns as subsets'"`
	String bool `cli:"name=s desc='consider match a string argument'"`
	File   bool `cli:"name=f desc='consider match a file path'"`
}

type DiffConfig struct {
	*MainConfig
	Reverse   bool   `cli:"name=r desc='reverse the diff'"`
	Loop      string `cli:"name=loop desc='command to produce objects to diff in a loop'"`
	LoopEvery time.Duration
	LoopLim   int `cli:"name=loopLim desc='max number of times to loop'"`

	Diff *cli.Command
}

func (cfg *DiffConfig) mkLoopEvery() func(cc *cli.Context, a string) (any, error) {
	return func(_ *cli.Context, a string) (any, error) {
		d, err := time.ParseDuration(a)
		if err != nil {
			return nil, err
		}
		cfg.LoopEvery = d
		return d, nil
	}
}

type CmpConfig struct {
	*MainConfig
	Ordered bool `cli:"name=ordered desc='compare object members in order'"`

	Cmp *cli.Command
}

type ContainsConfig struct {
	*MainConfig

	Contains *cli.Command
}

type EvalConfig struct {
	*MainConfig
	Env    eval.Env
	Expand bool `cli:"name=x desc='expand $[expr] and .[expr] in the string values of the files'"`
	Funcs  bool `cli:"name=funcs desc='show available functions'"`
	// NoInput evaluates the expression once without reading documents.
	NoInput bool `cli:"name=n desc='evaluate without input documents'"`

	Eval *cli.Command
}

type PatchConfig struct {
	*MainConfig
	Merge   bool `cli:"name=m desc='apply an RFC 7386 merge patch'"`
	Diff    bool `cli:"name=d desc='apply a diff produced by kj diff'"`
	Reverse bool `cli:"name=r desc='apply diff reversed'"`
	String  bool `cli:"name=s desc='patch arg as string'"`
	File    bool `cli:"name=f desc='patch arg as file'"`

	Patch *cli.Command
}

type StripConfig struct {
	*MainConfig

	Strip *cli.Command
}

type UUIDConfig struct {
	*MainConfig
	V7 bool `cli:"name=v7 desc='generate time ordered version 7 uuids'"`
	N  int  `cli:"name=n desc='number of uuids to generate'"`

	UUID *cli.Command
}

type DumpConfig struct {
	*MainConfig

	Dump *cli.Command
}
