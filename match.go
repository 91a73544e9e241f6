package kjson

import (
	"github.com/signadot/kjson-format/kjson/debug"
	"github.com/signadot/kjson-format/kjson/ir"
)

type MatchConfig struct {
	// ArraySubset matches an array pattern when each of its elements
	// matches some element of the document, instead of position by
	// position.
	ArraySubset bool
}

type MatchOpt func(*MatchConfig)

func MatchArraySubset(v bool) MatchOpt {
	return func(c *MatchConfig) { c.ArraySubset = v }
}

// Match reports whether doc matches pattern. A null pattern matches
// anything, an object pattern matches an object having each of its
// keys with a matching value, an array pattern matches an array of the
// same length element by element and any other pattern must be Equal to
// doc.
func Match(doc, pattern *ir.Node, opts ...MatchOpt) bool {
	cfg := &MatchConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return match(doc, pattern, cfg)
}

func match(doc, pattern *ir.Node, cfg *MatchConfig) bool {
	if debug.Match() {
		debug.Logf("match %s at %q against %s\n", doc.Type, doc.KPath(), pattern)
	}
	if pattern.Type == ir.NullType {
		return true
	}
	if doc.Type != pattern.Type {
		return false
	}
	switch pattern.Type {
	case ir.ObjectType:
		return matchObj(doc, pattern, cfg)
	case ir.ArrayType:
		return matchArray(doc, pattern, cfg)
	}
	return ir.Equal(doc, pattern)
}

func matchObj(doc, pattern *ir.Node, cfg *MatchConfig) bool {
	for field, pv := range ir.ToMap(pattern) {
		dv := doc.Get(field)
		if dv == nil || !match(dv, pv, cfg) {
			return false
		}
	}
	return true
}

func matchArray(doc, pattern *ir.Node, cfg *MatchConfig) bool {
	if cfg.ArraySubset {
		return matchIndexes(doc, pattern, cfg) != nil
	}
	if len(doc.Values) != len(pattern.Values) {
		return false
	}
	for i := range doc.Values {
		if !match(doc.Values[i], pattern.Values[i], cfg) {
			return false
		}
	}
	return true
}

// matchIndexes pairs each pattern element with the first unused doc
// element it matches, returning nil if some element has no match.
func matchIndexes(doc, pattern *ir.Node, cfg *MatchConfig) []int {
	res := make([]int, 0, len(pattern.Values))
	used := make([]bool, len(doc.Values))
outer:
	for _, pv := range pattern.Values {
		for i, dv := range doc.Values {
			if used[i] || !match(dv, pv, cfg) {
				continue
			}
			used[i] = true
			res = append(res, i)
			continue outer
		}
		return nil
	}
	return res
}

// Trim filters doc to the members present in pattern. Objects keep the
// members of doc whose keys are in pattern, in doc's order. Arrays keep,
// for each pattern element, the first unused doc element it matches.
// Other values are copied.
func Trim(pattern, doc *ir.Node) *ir.Node {
	switch {
	case pattern.Type == ir.ObjectType && doc.Type == ir.ObjectType:
		pMap := ir.ToMap(pattern)
		kvs := make([]ir.KeyVal, 0, len(doc.Fields))
		for i, field := range doc.Fields {
			pv := pMap[field]
			if pv == nil {
				continue
			}
			kvs = append(kvs, ir.KeyVal{Key: field, Val: Trim(pv, doc.Values[i])})
		}
		return ir.FromKeyVals(kvs)
	case pattern.Type == ir.ArrayType && doc.Type == ir.ArrayType:
		cfg := &MatchConfig{ArraySubset: true}
		res := []*ir.Node{}
		used := make([]bool, len(doc.Values))
		for _, pv := range pattern.Values {
			for i, dv := range doc.Values {
				if used[i] || !match(dv, pv, cfg) {
					continue
				}
				used[i] = true
				res = append(res, Trim(pv, dv))
				break
			}
		}
		return ir.FromSlice(res)
	}
	res := doc.Clone()
	res.Parent = nil
	return res
}
