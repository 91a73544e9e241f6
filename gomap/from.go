package gomap

import (
	"encoding"
	"encoding/base64"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/uuid"
	"github.com/signadot/kjson-format/kjson/debug"
	"github.com/signadot/kjson-format/kjson/ir"
	"github.com/signadot/kjson-format/kjson/parse"
)

// Unmarshaler is implemented by types that set themselves from a tree.
type Unmarshaler interface {
	UnmarshalKJSON(*ir.Node) error
}

// maxDecimalExponent bounds the zeros appended when a Decimal is read as
// an integer.
const maxDecimalExponent = 4096

var (
	unmarshalerType     = reflect.TypeFor[Unmarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
	nodePtrType         = reflect.PointerTo(nodeType)
)

// Unmarshal parses d and stores the result in the value pointed to by p.
func Unmarshal(d []byte, p any, opts ...UnmapOption) error {
	cfg := newUnmapConfig(opts)
	node, err := parse.Parse(d, cfg.parseOpts...)
	if err != nil {
		return err
	}
	return fromIR(node, p, cfg)
}

// FromIR stores node in the value pointed to by p, which must be a
// non-nil pointer.
func FromIR(node *ir.Node, p any, opts ...UnmapOption) error {
	return fromIR(node, p, newUnmapConfig(opts))
}

func fromIR(node *ir.Node, p any, cfg *unmapConfig) error {
	val := reflect.ValueOf(p)
	if val.Kind() != reflect.Pointer || val.IsNil() {
		return &UnmarshalError{Message: fmt.Sprintf("destination must be a non-nil pointer, got %T", p)}
	}
	return fromIRValue(node, val.Elem(), "", cfg)
}

func fromIRValue(node *ir.Node, val reflect.Value, fieldPath string, cfg *unmapConfig) error {
	typ := val.Type()
	if debug.GoMap() {
		debug.Logf("gomap: %s from %s at %q\n", typ, node.Type, fieldPath)
	}
	if typ == nodePtrType {
		res := node.Clone()
		res.Parent = nil
		val.Set(reflect.ValueOf(res))
		return nil
	}
	if typ.Kind() == reflect.Pointer {
		if node.Type == ir.NullType {
			val.Set(reflect.Zero(typ))
			return nil
		}
		if val.IsNil() {
			val.Set(reflect.New(typ.Elem()))
		}
		return fromIRValue(node, val.Elem(), fieldPath, cfg)
	}
	if reflect.PointerTo(typ).Implements(unmarshalerType) {
		if err := val.Addr().Interface().(Unmarshaler).UnmarshalKJSON(node); err != nil {
			return &UnmarshalError{FieldPath: fieldPath, Message: err.Error(), Err: err}
		}
		return nil
	}
	if isSpecial(typ) {
		return specialFromIR(node, val, fieldPath)
	}
	if node.Type == ir.NullType {
		val.Set(reflect.Zero(typ))
		return nil
	}
	if node.Type == ir.StringType && reflect.PointerTo(typ).Implements(textUnmarshalerType) {
		tu := val.Addr().Interface().(encoding.TextUnmarshaler)
		if err := tu.UnmarshalText([]byte(node.String)); err != nil {
			return &UnmarshalError{FieldPath: fieldPath, Message: err.Error(), Err: err}
		}
		return nil
	}

	switch typ.Kind() {
	case reflect.String:
		switch node.Type {
		case ir.StringType:
			val.SetString(node.String)
		case ir.BigIntType:
			val.SetString(node.BigInt.String())
		case ir.DecimalType:
			val.SetString(node.Decimal.String())
		case ir.UUIDType:
			val.SetString(node.UUID.String())
		case ir.InstantType:
			val.SetString(node.Instant.String())
		case ir.DurationType:
			val.SetString(node.Duration.String())
		default:
			return typeError(fieldPath, "string", node)
		}
	case reflect.Bool:
		if node.Type != ir.BoolType {
			return typeError(fieldPath, "bool", node)
		}
		val.SetBool(node.Bool)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		b, err := integer(node, fieldPath)
		if err != nil {
			return err
		}
		if !b.IsInt64() || val.OverflowInt(b.Int64()) {
			return overflow(fieldPath, node, typ)
		}
		val.SetInt(b.Int64())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		b, err := integer(node, fieldPath)
		if err != nil {
			return err
		}
		if !b.IsUint64() || val.OverflowUint(b.Uint64()) {
			return overflow(fieldPath, node, typ)
		}
		val.SetUint(b.Uint64())
	case reflect.Float32, reflect.Float64:
		var f float64
		switch node.Type {
		case ir.NumberType:
			f = node.Number
		case ir.BigIntType:
			f, _ = new(big.Float).SetInt(node.BigInt.Big()).Float64()
		case ir.DecimalType:
			var err error
			if f, err = node.Decimal.Apd().Float64(); err != nil {
				return &UnmarshalError{FieldPath: fieldPath, Message: err.Error(), Err: err}
			}
		default:
			return typeError(fieldPath, "number", node)
		}
		if math.IsInf(f, 0) || val.OverflowFloat(f) {
			return overflow(fieldPath, node, typ)
		}
		val.SetFloat(f)
	case reflect.Slice:
		if typ.Elem().Kind() == reflect.Uint8 {
			if node.Type != ir.StringType {
				return typeError(fieldPath, "base64 string", node)
			}
			d, err := base64.StdEncoding.DecodeString(node.String)
			if err != nil {
				return &UnmarshalError{FieldPath: fieldPath, Message: err.Error(), Err: err}
			}
			val.SetBytes(d)
			return nil
		}
		if node.Type != ir.ArrayType {
			return typeError(fieldPath, "array", node)
		}
		res := reflect.MakeSlice(typ, len(node.Values), len(node.Values))
		for i, v := range node.Values {
			if err := fromIRValue(v, res.Index(i), fmt.Sprintf("%s[%d]", fieldPath, i), cfg); err != nil {
				return err
			}
		}
		val.Set(res)
	case reflect.Array:
		if node.Type != ir.ArrayType {
			return typeError(fieldPath, "array", node)
		}
		if len(node.Values) > typ.Len() {
			return &TypeError{
				FieldPath: fieldPath,
				Expected:  typ.String(),
				Actual:    fmt.Sprintf("array of %d elements", len(node.Values)),
			}
		}
		val.Set(reflect.Zero(typ))
		for i, v := range node.Values {
			if err := fromIRValue(v, val.Index(i), fmt.Sprintf("%s[%d]", fieldPath, i), cfg); err != nil {
				return err
			}
		}
	case reflect.Map:
		if node.Type != ir.ObjectType {
			return typeError(fieldPath, "object", node)
		}
		if val.IsNil() {
			val.Set(reflect.MakeMapWithSize(typ, len(node.Values)))
		}
		for i, v := range node.Values {
			field := node.Fields[i]
			key, err := mapKey(field, typ.Key())
			if err != nil {
				return &UnmarshalError{FieldPath: fieldPath, Message: err.Error(), Err: err}
			}
			elem := reflect.New(typ.Elem()).Elem()
			if err := fromIRValue(v, elem, joinPath(fieldPath, field), cfg); err != nil {
				return err
			}
			val.SetMapIndex(key, elem)
		}
	case reflect.Struct:
		if node.Type != ir.ObjectType {
			return typeError(fieldPath, "object", node)
		}
		si, err := getStructInfo(typ)
		if err != nil {
			return &UnmarshalError{FieldPath: fieldPath, Message: err.Error(), Err: err}
		}
		for i, v := range node.Values {
			field := node.Fields[i]
			j, ok := si.byName[field]
			if !ok {
				if cfg.disallowUnknown {
					return &UnmarshalError{
						FieldPath: joinPath(fieldPath, field),
						Message:   fmt.Sprintf("unknown field %q in %s", field, typ),
					}
				}
				continue
			}
			fv, ok := fieldByIndex(val, si.fields[j].index, true)
			if !ok {
				return &UnmarshalError{
					FieldPath: joinPath(fieldPath, field),
					Message:   "cannot set field through embedded pointer to unexported struct",
				}
			}
			if err := fromIRValue(v, fv, joinPath(fieldPath, field), cfg); err != nil {
				return err
			}
		}
	case reflect.Interface:
		if typ.NumMethod() != 0 {
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("cannot unmarshal into non-empty interface %s", typ),
				Err:       ir.ErrUnsupportedType,
			}
		}
		val.Set(reflect.ValueOf(ir.ToAny(node)))
	default:
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("unsupported type: %s", typ),
			Err:       ir.ErrUnsupportedType,
		}
	}
	return nil
}

func typeError(fieldPath, expected string, node *ir.Node) error {
	return &TypeError{FieldPath: fieldPath, Expected: expected, Actual: node.Type.String()}
}

func overflow(fieldPath string, node *ir.Node, typ reflect.Type) error {
	return &UnmarshalError{
		FieldPath: fieldPath,
		Message:   fmt.Sprintf("%s value out of range for %s", node.Type, typ),
		Err:       ir.ErrOverflow,
	}
}

// integer returns the integral value of a Number, BigInt or Decimal.
func integer(node *ir.Node, fieldPath string) (*big.Int, error) {
	switch node.Type {
	case ir.BigIntType:
		return node.BigInt.Big(), nil
	case ir.NumberType:
		f := node.Number
		if f != math.Trunc(f) {
			return nil, &TypeError{FieldPath: fieldPath, Expected: "integer", Actual: "fractional Number"}
		}
		b, _ := big.NewFloat(f).Int(nil)
		return b, nil
	case ir.DecimalType:
		d := node.Decimal
		digits := d.Digits
		switch {
		case d.Exponent > maxDecimalExponent:
			return nil, &UnmarshalError{FieldPath: fieldPath, Message: "decimal exponent too large", Err: ir.ErrOverflow}
		case d.Exponent > 0:
			digits += strings.Repeat("0", int(d.Exponent))
		case d.Exponent < 0:
			n := len(digits) + int(d.Exponent)
			if n < 0 || strings.Trim(digits[n:], "0") != "" {
				if digits != "0" {
					return nil, &TypeError{FieldPath: fieldPath, Expected: "integer", Actual: "fractional Decimal"}
				}
				n = 1
			}
			digits = digits[:n]
			if digits == "" {
				digits = "0"
			}
		}
		return ir.BigInt{Negative: d.Negative, Digits: digits}.Big(), nil
	}
	return nil, typeError(fieldPath, "integer", node)
}

func mapKey(field string, keyType reflect.Type) (reflect.Value, error) {
	if keyType.Kind() == reflect.String {
		return reflect.ValueOf(field).Convert(keyType), nil
	}
	if reflect.PointerTo(keyType).Implements(textUnmarshalerType) {
		k := reflect.New(keyType)
		if err := k.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(field)); err != nil {
			return reflect.Value{}, err
		}
		return k.Elem(), nil
	}
	k := reflect.New(keyType).Elem()
	switch keyType.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(field, 10, 64)
		if err != nil || k.OverflowInt(n) {
			return reflect.Value{}, fmt.Errorf("invalid %s map key %q", keyType, field)
		}
		k.SetInt(n)
		return k, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n, err := strconv.ParseUint(field, 10, 64)
		if err != nil || k.OverflowUint(n) {
			return reflect.Value{}, fmt.Errorf("invalid %s map key %q", keyType, field)
		}
		k.SetUint(n)
		return k, nil
	}
	return reflect.Value{}, fmt.Errorf("%w: map key type %s", ir.ErrUnsupportedType, keyType)
}

func specialFromIR(node *ir.Node, val reflect.Value, fieldPath string) error {
	typ := val.Type()
	mismatch := func(expected string) error { return typeError(fieldPath, expected, node) }
	switch typ {
	case nodeType:
		res := node.Clone()
		res.Parent = nil
		val.Set(reflect.ValueOf(res).Elem())
	case bigIntType:
		b, err := integer(node, fieldPath)
		if err != nil {
			return err
		}
		val.Addr().Interface().(*big.Int).Set(b)
	case irBigIntType:
		b, err := integer(node, fieldPath)
		if err != nil {
			return err
		}
		val.Set(reflect.ValueOf(ir.BigIntOf(b)))
	case apdType, irDecimalType:
		var d *apd.Decimal
		switch node.Type {
		case ir.DecimalType:
			d = node.Decimal.Apd()
		case ir.BigIntType:
			d, _, _ = apd.NewFromString(node.BigInt.String())
		case ir.NumberType:
			d = new(apd.Decimal)
			if _, err := d.SetFloat64(node.Number); err != nil {
				return &UnmarshalError{FieldPath: fieldPath, Message: err.Error(), Err: err}
			}
		default:
			return mismatch("decimal")
		}
		if typ == apdType {
			val.Addr().Interface().(*apd.Decimal).Set(d)
			return nil
		}
		dec, err := ir.DecimalOf(d)
		if err != nil {
			return &UnmarshalError{FieldPath: fieldPath, Message: err.Error(), Err: err}
		}
		val.Set(reflect.ValueOf(dec))
	case uuidType:
		var u uuid.UUID
		switch node.Type {
		case ir.UUIDType:
			u = node.UUID
		case ir.StringType:
			var err error
			if u, err = ir.ParseUUID(node.String); err != nil {
				return &UnmarshalError{FieldPath: fieldPath, Message: err.Error(), Err: err}
			}
		default:
			return mismatch("uuid")
		}
		val.Set(reflect.ValueOf(u))
	case timeType, instantType:
		var i ir.Instant
		switch node.Type {
		case ir.InstantType:
			i = node.Instant
		case ir.StringType:
			t, err := time.Parse(time.RFC3339Nano, node.String)
			if err == nil {
				i, err = ir.InstantOf(t)
			}
			if err != nil {
				return &UnmarshalError{FieldPath: fieldPath, Message: err.Error(), Err: err}
			}
		default:
			return mismatch("instant")
		}
		if typ == timeType {
			val.Set(reflect.ValueOf(i.Time()))
		} else {
			val.Set(reflect.ValueOf(i))
		}
	case timeDurationType, durationType:
		var d ir.Duration
		switch node.Type {
		case ir.DurationType:
			d = node.Duration
		case ir.StringType:
			var err error
			if d, err = ir.ParseDuration(node.String); err != nil {
				return &UnmarshalError{FieldPath: fieldPath, Message: err.Error(), Err: err}
			}
		default:
			return mismatch("duration")
		}
		if typ == timeDurationType {
			val.SetInt(d.ApproxNanos())
		} else {
			val.Set(reflect.ValueOf(d))
		}
	default:
		panic("gomap: not a special type: " + typ.String())
	}
	return nil
}
