package kjsonb

import "fmt"

// Tag is the first byte of every encoded value.
type Tag byte

const (
	TagNull      Tag = 0x00
	TagFalse     Tag = 0x01
	TagTrue      Tag = 0x02
	TagInt8      Tag = 0x10
	TagInt16     Tag = 0x11
	TagInt32     Tag = 0x12
	TagInt64     Tag = 0x13
	TagUint64    Tag = 0x14
	TagFloat32   Tag = 0x15
	TagFloat64   Tag = 0x16
	TagBigInt    Tag = 0x17
	TagDecimal   Tag = 0x18
	TagString    Tag = 0x20
	TagBinary    Tag = 0x21
	TagInstant   Tag = 0x30
	TagDuration  Tag = 0x31
	TagUUID      Tag = 0x32
	TagArray     Tag = 0x40
	TagObject    Tag = 0x41
	TagUndefined Tag = 0xF0
)

var tagNames = map[Tag]string{
	TagNull:      "null",
	TagFalse:     "false",
	TagTrue:      "true",
	TagInt8:      "int8",
	TagInt16:     "int16",
	TagInt32:     "int32",
	TagInt64:     "int64",
	TagUint64:    "uint64",
	TagFloat32:   "float32",
	TagFloat64:   "float64",
	TagBigInt:    "bigint",
	TagDecimal:   "decimal",
	TagString:    "string",
	TagBinary:    "binary",
	TagInstant:   "instant",
	TagDuration:  "duration",
	TagUUID:      "uuid",
	TagArray:     "array",
	TagObject:    "object",
	TagUndefined: "undefined",
}

func (t Tag) String() string {
	if s, ok := tagNames[t]; ok {
		return s
	}
	return fmt.Sprintf("tag(0x%02x)", byte(t))
}

// Known reports whether t is one of the tags above.
func (t Tag) Known() bool {
	_, ok := tagNames[t]
	return ok
}
