package eval

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

var (
	mu sync.RWMutex
	d  = map[string]Func{}
)

var ErrFuncExists = errors.New("function exists")

// Register makes f available to all expressions compiled afterwards.
func Register(f Func) error {
	mu.Lock()
	defer mu.Unlock()
	_, present := d[f.Name]
	if present {
		return fmt.Errorf("%s: %w", f, ErrFuncExists)
	}
	d[f.Name] = f
	return nil
}

func init() {
	for _, f := range [][]Func{numericFuncs, valueFuncs, {osEnvFunc, execFunc}} {
		for _, fn := range f {
			if err := Register(fn); err != nil {
				panic(err)
			}
		}
	}
}

func Lookup(name string) (Func, bool) {
	mu.RLock()
	defer mu.RUnlock()
	f, ok := d[name]
	return f, ok
}

// Funcs returns the registered functions sorted by name.
func Funcs() []Func {
	mu.RLock()
	defer mu.RUnlock()
	res := make([]Func, 0, len(d))
	for _, f := range d {
		res = append(res, f)
	}
	slices.SortFunc(res, func(a, b Func) int { return strings.Compare(a.Name, b.Name) })
	return res
}
