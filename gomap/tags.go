package gomap

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"
)

type fieldInfo struct {
	name      string
	index     []int
	omitEmpty bool
}

type structInfo struct {
	fields []fieldInfo
	byName map[string]int
	err    error
}

var structCache sync.Map // reflect.Type -> *structInfo

func getStructInfo(typ reflect.Type) (*structInfo, error) {
	if si, ok := structCache.Load(typ); ok {
		return si.(*structInfo), si.(*structInfo).err
	}
	si := &structInfo{byName: map[string]int{}}
	si.err = collectFields(typ, nil, si)
	actual, _ := structCache.LoadOrStore(typ, si)
	return actual.(*structInfo), actual.(*structInfo).err
}

func collectFields(typ reflect.Type, index []int, si *structInfo) error {
	for i := range typ.NumField() {
		f := typ.Field(i)
		name, omitEmpty, skip := parseTag(f)
		if skip {
			continue
		}
		idx := append(slices.Clone(index), i)
		if f.Anonymous && name == "" {
			ft := f.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct && !isSpecial(ft) &&
				(f.IsExported() || f.Type.Kind() != reflect.Pointer) {
				if err := collectFields(ft, idx, si); err != nil {
					return err
				}
				continue
			}
		}
		if !f.IsExported() {
			continue
		}
		if name == "" {
			name = f.Name
		}
		if _, dup := si.byName[name]; dup {
			return fmt.Errorf("field name conflict: %q in %s", name, typ)
		}
		si.byName[name] = len(si.fields)
		si.fields = append(si.fields, fieldInfo{name: name, index: idx, omitEmpty: omitEmpty})
	}
	return nil
}

// parseTag reads the kjson tag of f, or its json tag if it has none.
func parseTag(f reflect.StructField) (name string, omitEmpty, skip bool) {
	tag, ok := f.Tag.Lookup("kjson")
	if !ok {
		tag = f.Tag.Get("json")
	}
	if tag == "-" {
		return "", false, true
	}
	name, rest, _ := strings.Cut(tag, ",")
	for rest != "" {
		var opt string
		opt, rest, _ = strings.Cut(rest, ",")
		if opt == "omitempty" || opt == "omitzero" {
			omitEmpty = true
		}
	}
	return name, omitEmpty, false
}

// fieldByIndex walks index from v, allocating nil embedded pointers if
// alloc is set. It reports false when it meets a nil pointer it may not
// allocate.
func fieldByIndex(v reflect.Value, index []int, alloc bool) (reflect.Value, bool) {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				if !alloc || !v.CanSet() {
					return reflect.Value{}, false
				}
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v, true
}

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Slice, reflect.Map, reflect.String:
		return v.Len() == 0
	}
	return v.IsZero()
}
