package gomap

import (
	"bytes"
	"encoding"
	"encoding/base64"
	"fmt"
	"math/big"
	"reflect"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/uuid"
	"github.com/signadot/kjson-format/kjson/debug"
	"github.com/signadot/kjson-format/kjson/encode"
	"github.com/signadot/kjson-format/kjson/ir"
)

// Marshaler is implemented by types that convert themselves to a tree.
type Marshaler interface {
	MarshalKJSON() (*ir.Node, error)
}

// maxExact is the largest integer magnitude from which every smaller
// integer is exactly representable as a float64.
const maxExact = 1 << 53

var (
	nodeType          = reflect.TypeFor[ir.Node]()
	bigIntType        = reflect.TypeFor[big.Int]()
	apdType           = reflect.TypeFor[apd.Decimal]()
	uuidType          = reflect.TypeFor[uuid.UUID]()
	timeType          = reflect.TypeFor[time.Time]()
	timeDurationType  = reflect.TypeFor[time.Duration]()
	durationType      = reflect.TypeFor[ir.Duration]()
	instantType       = reflect.TypeFor[ir.Instant]()
	irBigIntType      = reflect.TypeFor[ir.BigInt]()
	irDecimalType     = reflect.TypeFor[ir.Decimal]()
	marshalerType     = reflect.TypeFor[Marshaler]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
)

func isSpecial(t reflect.Type) bool {
	switch t {
	case nodeType, bigIntType, apdType, uuidType, timeType, timeDurationType,
		durationType, instantType, irBigIntType, irDecimalType:
		return true
	}
	return false
}

// Marshal converts v to kJSON text.
func Marshal(v any, opts ...MapOption) ([]byte, error) {
	node, err := ToIR(v, opts...)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := encode.Encode(node, &buf, newMapConfig(opts).encodeOpts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ToIR converts a Go value to a tree.
func ToIR(v any, opts ...MapOption) (*ir.Node, error) {
	if v == nil {
		return ir.Null(), nil
	}
	visited := make(map[uintptr]string)
	return toIRValue(reflect.ValueOf(v), "", visited)
}

// toIRValue converts val. fieldPath is used for error reporting and
// visited tracks the pointers on the current path to detect cycles.
func toIRValue(val reflect.Value, fieldPath string, visited map[uintptr]string) (*ir.Node, error) {
	if !val.IsValid() {
		return ir.Null(), nil
	}
	typ := val.Type()
	if debug.GoMap() {
		debug.Logf("gomap: %s to ir at %q\n", typ, fieldPath)
	}
	switch typ.Kind() {
	case reflect.Pointer:
		if val.IsNil() {
			return ir.Null(), nil
		}
		if typ.Implements(marshalerType) {
			return callMarshaler(val, fieldPath)
		}
		ptrAddr := val.Pointer()
		if prevPath, seen := visited[ptrAddr]; seen {
			return nil, &MarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("circular reference detected: %s -> %s (previously seen at %s)", prevPath, fieldPath, prevPath),
			}
		}
		visited[ptrAddr] = fieldPath
		node, err := toIRValue(val.Elem(), fieldPath, visited)
		delete(visited, ptrAddr)
		return node, err
	case reflect.Interface:
		if val.IsNil() {
			return ir.Null(), nil
		}
		return toIRValue(val.Elem(), fieldPath, visited)
	}

	if typ.Implements(marshalerType) {
		return callMarshaler(val, fieldPath)
	}
	if reflect.PointerTo(typ).Implements(marshalerType) {
		return callMarshaler(addressable(val).Addr(), fieldPath)
	}
	if isSpecial(typ) {
		node, err := specialToIR(val)
		if err != nil {
			return nil, &MarshalError{FieldPath: fieldPath, Message: err.Error(), Err: err}
		}
		return node, nil
	}
	if typ.Implements(textMarshalerType) || reflect.PointerTo(typ).Implements(textMarshalerType) {
		tm := addressable(val).Addr().Interface().(encoding.TextMarshaler)
		text, err := tm.MarshalText()
		if err != nil {
			return nil, &MarshalError{FieldPath: fieldPath, Message: err.Error(), Err: err}
		}
		return ir.FromString(string(text)), nil
	}

	switch typ.Kind() {
	case reflect.String:
		return ir.FromString(val.String()), nil
	case reflect.Bool:
		return ir.FromBool(val.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := val.Int()
		if v > maxExact || v < -maxExact {
			return ir.FromBigIntValue(big.NewInt(v)), nil
		}
		return ir.FromInt(v), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		v := val.Uint()
		if v > maxExact {
			return ir.FromBigIntValue(new(big.Int).SetUint64(v)), nil
		}
		return ir.FromInt(int64(v)), nil
	case reflect.Float32, reflect.Float64:
		node, err := ir.NewNumber(val.Float())
		if err != nil {
			return nil, &MarshalError{FieldPath: fieldPath, Message: err.Error(), Err: err}
		}
		return node, nil
	case reflect.Slice:
		if val.IsNil() {
			return ir.Null(), nil
		}
		if typ.Elem().Kind() == reflect.Uint8 {
			return ir.FromString(base64.StdEncoding.EncodeToString(val.Bytes())), nil
		}
		return toIRSlice(val, fieldPath, visited)
	case reflect.Array:
		return toIRSlice(val, fieldPath, visited)
	case reflect.Map:
		return toIRMap(val, fieldPath, visited)
	case reflect.Struct:
		return toIRStruct(val, fieldPath, visited)
	}
	return nil, &MarshalError{
		FieldPath: fieldPath,
		Message:   fmt.Sprintf("unsupported type: %s", typ),
		Err:       ir.ErrUnsupportedType,
	}
}

// addressable returns val, or an addressable copy of it.
func addressable(val reflect.Value) reflect.Value {
	if val.CanAddr() {
		return val
	}
	p := reflect.New(val.Type())
	p.Elem().Set(val)
	return p.Elem()
}

func callMarshaler(val reflect.Value, fieldPath string) (*ir.Node, error) {
	node, err := val.Interface().(Marshaler).MarshalKJSON()
	if err != nil {
		return nil, &MarshalError{FieldPath: fieldPath, Message: err.Error(), Err: err}
	}
	if node == nil {
		return ir.Null(), nil
	}
	return node, nil
}

func specialToIR(val reflect.Value) (*ir.Node, error) {
	switch val.Type() {
	case nodeType:
		n := val.Interface().(ir.Node)
		res := n.Clone()
		res.Parent = nil
		return res, nil
	case bigIntType:
		return ir.FromBigIntValue(addressable(val).Addr().Interface().(*big.Int)), nil
	case apdType:
		return ir.FromApd(addressable(val).Addr().Interface().(*apd.Decimal))
	case uuidType:
		return ir.FromUUID(val.Interface().(uuid.UUID)), nil
	case timeType:
		return ir.FromTime(val.Interface().(time.Time))
	case timeDurationType:
		return ir.FromTimeDuration(time.Duration(val.Int())), nil
	case durationType:
		d := val.Interface().(ir.Duration)
		if !d.Valid() {
			return nil, fmt.Errorf("%w: negative component", ir.ErrInvalidDuration)
		}
		return ir.FromDuration(d), nil
	case instantType:
		i := val.Interface().(ir.Instant)
		if _, err := ir.NewInstant(i.Nanos, i.Offset); err != nil {
			return nil, err
		}
		return ir.FromInstant(i), nil
	case irBigIntType:
		return ir.FromBigInt(val.Interface().(ir.BigInt))
	case irDecimalType:
		return ir.FromDecimal(val.Interface().(ir.Decimal))
	}
	panic("gomap: not a special type: " + val.Type().String())
}

func toIRSlice(val reflect.Value, fieldPath string, visited map[uintptr]string) (*ir.Node, error) {
	if val.Kind() == reflect.Slice && val.Len() > 0 {
		slicePtr := val.Pointer()
		if prevPath, seen := visited[slicePtr]; seen {
			return nil, &MarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("circular reference detected: %s -> %s (previously seen at %s)", prevPath, fieldPath, prevPath),
			}
		}
		visited[slicePtr] = fieldPath
		defer delete(visited, slicePtr)
	}
	elements := make([]*ir.Node, val.Len())
	for i := range elements {
		elemNode, err := toIRValue(val.Index(i), fmt.Sprintf("%s[%d]", fieldPath, i), visited)
		if err != nil {
			return nil, err
		}
		elements[i] = elemNode
	}
	return ir.FromSlice(elements), nil
}

// toIRMap converts a map to an object with its keys sorted. Keys must
// be strings, integers or implement encoding.TextMarshaler.
func toIRMap(val reflect.Value, fieldPath string, visited map[uintptr]string) (*ir.Node, error) {
	if val.IsNil() {
		return ir.Null(), nil
	}
	mapPtr := val.Pointer()
	if prevPath, seen := visited[mapPtr]; seen {
		return nil, &MarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("circular reference detected: %s -> %s (previously seen at %s)", prevPath, fieldPath, prevPath),
		}
	}
	visited[mapPtr] = fieldPath
	defer delete(visited, mapPtr)

	irMap := make(map[string]*ir.Node, val.Len())
	iter := val.MapRange()
	for iter.Next() {
		key, err := mapKeyString(iter.Key())
		if err != nil {
			return nil, &MarshalError{FieldPath: fieldPath, Message: err.Error(), Err: err}
		}
		valueNode, err := toIRValue(iter.Value(), joinPath(fieldPath, key), visited)
		if err != nil {
			return nil, err
		}
		irMap[key] = valueNode
	}
	return ir.FromMap(irMap), nil
}

func mapKeyString(k reflect.Value) (string, error) {
	if k.Kind() == reflect.String {
		return k.String(), nil
	}
	if tm, ok := k.Interface().(encoding.TextMarshaler); ok {
		text, err := tm.MarshalText()
		return string(text), err
	}
	switch k.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fmt.Sprint(k.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return fmt.Sprint(k.Uint()), nil
	}
	return "", fmt.Errorf("%w: map key type %s", ir.ErrUnsupportedType, k.Type())
}

// toIRStruct converts a struct to an object with its fields in
// declaration order, embedded structs flattened.
func toIRStruct(val reflect.Value, fieldPath string, visited map[uintptr]string) (*ir.Node, error) {
	si, err := getStructInfo(val.Type())
	if err != nil {
		return nil, &MarshalError{FieldPath: fieldPath, Message: err.Error(), Err: err}
	}
	kvs := make([]ir.KeyVal, 0, len(si.fields))
	for i := range si.fields {
		f := &si.fields[i]
		fieldVal, ok := fieldByIndex(val, f.index, false)
		if !ok || (f.omitEmpty && isEmpty(fieldVal)) {
			continue
		}
		fieldNode, err := toIRValue(fieldVal, joinPath(fieldPath, f.name), visited)
		if err != nil {
			return nil, err
		}
		kvs = append(kvs, ir.KeyVal{Key: f.name, Val: fieldNode})
	}
	return ir.FromKeyVals(kvs), nil
}

func joinPath(fieldPath, name string) string {
	if fieldPath == "" {
		return name
	}
	return fieldPath + "." + name
}
