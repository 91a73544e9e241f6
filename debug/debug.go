// Package debug holds debugging switches read from KJSON_DEBUG_*
// environment variables at start up, and Logf for writing debug output
// to stderr.
package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Decode bool
	Diff   bool
	Patch  bool
	Eval   bool
	GoMap  bool
	LSP    bool
	Match  bool

	LoadEnv bool
}

var d *debug

func init() {
	d = &debug{}
	d.Decode = boolEnv("KJSON_DEBUG_DECODE")
	d.Diff = boolEnv("KJSON_DEBUG_DIFF")
	d.Patch = boolEnv("KJSON_DEBUG_PATCH")
	d.Eval = boolEnv("KJSON_DEBUG_EVAL")
	d.GoMap = boolEnv("KJSON_DEBUG_GOMAP")
	d.LSP = boolEnv("KJSON_DEBUG_LSP")
	d.Match = boolEnv("KJSON_DEBUG_MATCH")
	d.LoadEnv = boolEnv("KJSON_DEBUG_LOAD_ENV")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Decode() bool {
	return d.Decode
}
func Diff() bool {
	return d.Diff
}
func Patch() bool {
	return d.Patch
}
func Eval() bool {
	return d.Eval
}
func GoMap() bool {
	return d.GoMap
}
func LSP() bool {
	return d.LSP
}
func Match() bool {
	return d.Match
}
func LoadEnv() bool {
	return d.LoadEnv
}
