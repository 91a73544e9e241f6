package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/signadot/kjson-format/kjson"
	"github.com/signadot/kjson-format/kjson/encode"
	"github.com/signadot/kjson-format/kjson/ir"
	"github.com/signadot/kjson-format/kjson/kjsonb"
	"github.com/signadot/kjson-format/kjson/parse"

	"github.com/scott-cotton/cli"
)

var docSep = []byte("\n---\n")

// eachFile calls fn with the contents of each file, "-" or no files
// meaning the command input.
func eachFile(cc *cli.Context, files []string, fn func(name string, d []byte) error) error {
	if len(files) == 0 {
		files = []string{"-"}
	}
	for _, file := range files {
		d, err := readFile(cc, file)
		if err != nil {
			return err
		}
		if err := fn(file, d); err != nil {
			return fmt.Errorf("error processing %s: %w", file, err)
		}
	}
	return nil
}

func readFile(cc *cli.Context, file string) ([]byte, error) {
	var r io.Reader
	if file == "-" {
		r = cc.In
	} else {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("could not open %q: %w", file, err)
		}
		defer f.Close()
		r = f
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", file, err)
	}
	return d, nil
}

// parseDocs decodes d in the input format. Text input may hold several
// documents separated by a "---" line.
func parseDocs(cfg *MainConfig, d []byte) ([]*ir.Node, error) {
	if cfg.inFormat().IsBinary() {
		node, err := kjsonb.Decode(d)
		if err != nil {
			return nil, err
		}
		return []*ir.Node{node}, nil
	}
	docs := bytes.Split(d, docSep)
	res := make([]*ir.Node, 0, len(docs))
	for i, doc := range docs {
		node, err := parse.Parse(doc, cfg.parseOpts()...)
		if err != nil {
			if len(docs) == 1 {
				return nil, err
			}
			return nil, fmt.Errorf("error decoding document %d: %w", i, err)
		}
		res = append(res, node)
	}
	return res, nil
}

// getObjFile reads the single document in path.
func getObjFile(cfg *MainConfig, cc *cli.Context, path string) (*ir.Node, error) {
	d, err := readFile(cc, path)
	if err != nil {
		return nil, err
	}
	return kjson.Load(d, cfg.inFormat())
}

// getish reads a document given as an argument, either literally with
// -s or from a file with -f. Without either it is read literally.
func getish(cfg *MainConfig, s, f bool, cc *cli.Context, arg string) (*ir.Node, error) {
	if s == f && s {
		return nil, fmt.Errorf("%w: only one of -s, -f may be specified", cli.ErrUsage)
	}
	if f {
		return getObjFile(cfg, cc, arg)
	}
	res, err := parse.Parse([]byte(arg), cfg.parseOpts()...)
	if err != nil {
		return nil, fmt.Errorf("error decoding %q: %w", strings.TrimSpace(arg), err)
	}
	return res, nil
}

// writeDocs writes nodes in the output format. Text documents are
// separated by "---" lines and end with a newline.
func writeDocs(cfg *MainConfig, w io.Writer, nodes []*ir.Node, opts ...encode.EncodeOption) error {
	encOpts := append(cfg.encOpts(w), opts...)
	binary := encode.FormatFromOpts(encOpts...).IsBinary()
	if binary && len(nodes) > 1 {
		return fmt.Errorf("kjsonb output holds one document, got %d", len(nodes))
	}
	for i, node := range nodes {
		if i > 0 {
			if err := writeSep(w); err != nil {
				return err
			}
		}
		if err := kjson.Dump(node, w, encOpts...); err != nil {
			return fmt.Errorf("error encoding result %d: %w", i, err)
		}
		if !binary {
			if _, err := w.Write([]byte{'\n'}); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeSep(w io.Writer) error {
	_, err := w.Write([]byte("---\n"))
	return err
}
