package ir

import (
	"fmt"

	"github.com/goccy/go-json"
)

// irBase is the JSON debug form of a node. Extended payloads are held as
// their kJSON text so the form can be read without a kJSON parser.
type irBase struct {
	Type   Type     `json:"type"`
	Fields []string `json:"fields,omitempty"`
	Values []*Node  `json:"values,omitempty"`

	String   *string  `json:"string,omitempty"`
	Bool     *bool    `json:"bool,omitempty"`
	Number   *float64 `json:"number,omitempty"`
	BigInt   string   `json:"bigint,omitempty"`
	Decimal  string   `json:"decimal,omitempty"`
	UUID     string   `json:"uuid,omitempty"`
	Instant  *Instant `json:"instant,omitempty"`
	Duration string   `json:"duration,omitempty"`
}

func (y *Node) MarshalJSON() ([]byte, error) {
	base := &irBase{Type: y.Type, Fields: y.Fields, Values: y.Values}
	switch y.Type {
	case StringType:
		base.String = &y.String
	case BoolType:
		base.Bool = &y.Bool
	case NumberType:
		base.Number = &y.Number
	case BigIntType:
		base.BigInt = y.BigInt.String()
	case DecimalType:
		base.Decimal = y.Decimal.String()
	case UUIDType:
		base.UUID = y.UUID.String()
	case InstantType:
		base.Instant = &y.Instant
	case DurationType:
		base.Duration = y.Duration.String()
	}
	return json.Marshal(base)
}

func (y *Node) UnmarshalJSON(d []byte) error {
	tmp := &irBase{}
	if err := json.Unmarshal(d, tmp); err != nil {
		return err
	}
	*y = Node{Type: tmp.Type, Fields: tmp.Fields, Values: tmp.Values}
	var err error
	switch y.Type {
	case StringType:
		if tmp.String != nil {
			y.String = *tmp.String
		}
	case BoolType:
		y.Bool = tmp.Bool != nil && *tmp.Bool
	case NumberType:
		if tmp.Number != nil {
			y.Number = *tmp.Number
		}
	case BigIntType:
		y.BigInt, err = ParseBigInt(tmp.BigInt)
	case DecimalType:
		y.Decimal, err = ParseDecimal(tmp.Decimal)
	case UUIDType:
		y.UUID, err = ParseUUID(tmp.UUID)
	case InstantType:
		if tmp.Instant != nil {
			y.Instant, err = NewInstant(tmp.Instant.Nanos, tmp.Instant.Offset)
		}
	case DurationType:
		y.Duration, err = ParseDuration(tmp.Duration)
	case ObjectType:
		if len(y.Fields) != len(y.Values) {
			return fmt.Errorf("object with %d fields and %d values", len(y.Fields), len(y.Values))
		}
		for i, v := range y.Values {
			v.Parent = y
			v.ParentIndex = i
			v.ParentField = y.Fields[i]
		}
	case ArrayType:
		for i, v := range y.Values {
			v.Parent = y
			v.ParentIndex = i
		}
	}
	return err
}

// ToJSON returns the JSON debug form of node.
func ToJSON(node *Node) ([]byte, error) {
	return json.Marshal(node)
}

// FromJSON decodes the JSON debug form produced by ToJSON.
func FromJSON(d []byte) (*Node, error) {
	res := &Node{}
	if err := json.Unmarshal(d, res); err != nil {
		return nil, err
	}
	return res, nil
}
