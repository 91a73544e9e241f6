package main

import (
	"fmt"

	"github.com/signadot/kjson-format/kjson"
	"github.com/signadot/kjson-format/kjson/encode"
	"github.com/signadot/kjson-format/kjson/format"
	"github.com/signadot/kjson-format/kjson/ir"
	"github.com/signadot/kjson-format/kjson/libdiff"
	"github.com/signadot/kjson-format/kjson/parse"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/scott-cotton/cli"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: patch requires a patch argument and optional files to which to apply it", cli.ErrUsage)
	}
	if cfg.Merge && cfg.Diff {
		return fmt.Errorf("%w: only one of -m, -d may be specified", cli.ErrUsage)
	}
	if cfg.Reverse && !cfg.Diff {
		return fmt.Errorf("%w: -r requires -d", cli.ErrUsage)
	}
	pNode, err := getish(cfg.MainConfig, cfg.String, cfg.File, cc, args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	apply, err := patcher(cfg, pNode)
	if err != nil {
		return err
	}
	var res []*ir.Node
	err = eachFile(cc, args[1:], func(name string, d []byte) error {
		docs, err := parseDocs(cfg.MainConfig, d)
		if err != nil {
			return err
		}
		for _, doc := range docs {
			out, err := apply(doc)
			if err != nil {
				return fmt.Errorf("error patching %s: %w", name, err)
			}
			res = append(res, out)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return writeDocs(cfg.MainConfig, cc.Out, res)
}

// patcher returns the function applying the patch in pNode.
func patcher(cfg *PatchConfig, pNode *ir.Node) (func(*ir.Node) (*ir.Node, error), error) {
	if cfg.Diff {
		c, err := libdiff.FromNode(pNode)
		if err != nil {
			return nil, err
		}
		if cfg.Reverse {
			c = libdiff.Reverse(c)
		}
		return func(doc *ir.Node) (*ir.Node, error) {
			return kjson.Patch(doc, c)
		}, nil
	}
	pJSON, err := toJSON(pNode)
	if err != nil {
		return nil, err
	}
	if cfg.Merge {
		return func(doc *ir.Node) (*ir.Node, error) {
			return viaJSON(doc, func(d []byte) ([]byte, error) {
				return jsonpatch.MergePatch(d, pJSON)
			})
		}, nil
	}
	ops, err := jsonpatch.DecodePatch(pJSON)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	return func(doc *ir.Node) (*ir.Node, error) {
		return viaJSON(doc, ops.Apply)
	}, nil
}

func toJSON(node *ir.Node) ([]byte, error) {
	s, err := encode.String(node, encode.EncodeFormat(format.JSONFormat))
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// viaJSON applies f to the JSON projection of doc. Extended scalars
// come back as the strings and numbers they project to.
func viaJSON(doc *ir.Node, f func([]byte) ([]byte, error)) (*ir.Node, error) {
	d, err := toJSON(doc)
	if err != nil {
		return nil, err
	}
	out, err := f(d)
	if err != nil {
		return nil, err
	}
	return parse.Parse(out, parse.ParseJSON())
}
