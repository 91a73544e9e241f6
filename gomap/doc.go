// Package gomap converts between Go values and kJSON trees by reflection.
//
// # Usage
//
//	type Order struct {
//	    ID      uuid.UUID     `kjson:"id"`
//	    Price   apd.Decimal   `kjson:"price"`
//	    Created time.Time     `kjson:"created"`
//	    TTL     ir.Duration   `kjson:"ttl,omitempty"`
//	    Note    string        `json:"note,omitempty"`
//	}
//
//	node, err := gomap.ToIR(order)
//	d, err := gomap.Marshal(order)
//
//	var back Order
//	err = gomap.FromIR(node, &back)
//	err = gomap.Unmarshal(d, &back)
//
// Struct fields are named by a kjson tag, falling back to a json tag and
// then to the Go field name, and are emitted in declaration order.
// Embedded structs without a tag are flattened. Only exported fields
// are mapped and names match case-sensitively.
//
// Go types map onto kJSON types as follows:
//
//	bool, string               Bool, String
//	ints, uints, floats        Number, or BigInt beyond 2^53
//	*big.Int, ir.BigInt        BigInt
//	*apd.Decimal, ir.Decimal   Decimal
//	uuid.UUID                  UUID
//	time.Time, ir.Instant      Instant
//	time.Duration, ir.Duration Duration
//	[]byte                     String (base64)
//	slices, arrays             Array
//	maps, structs              Object
//	*ir.Node                   the tree itself
//
// Types implementing Marshaler and Unmarshaler convert themselves, and
// other types implementing encoding.TextMarshaler map to Strings.
//
// # Related Packages
//
//   - github.com/signadot/kjson-format/kjson/ir - tree representation
//   - github.com/signadot/kjson-format/kjson/encode - text output of Marshal
//   - github.com/signadot/kjson-format/kjson/parse - text input of Unmarshal
package gomap
