package ir

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/signadot/kjson-format/kjson/token"
)

// BigInt is an arbitrary precision integer held as its decimal digits.
// Digits has no leading zeros, and zero is never negative.
type BigInt struct {
	Negative bool
	Digits   string
}

// ParseBigInt parses an optionally signed run of decimal digits, with
// an optional n suffix.
func ParseBigInt(s string) (BigInt, error) {
	s = strings.TrimSuffix(s, "n")
	neg := false
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		neg, s = true, rest
	}
	if !token.ValidInteger(s) {
		return BigInt{}, fmt.Errorf("%w: bigint %q", ErrInvalidNumber, s)
	}
	return BigInt{Negative: neg && s != "0", Digits: s}, nil
}

func (b BigInt) Valid() bool {
	return token.ValidInteger(b.Digits) && !(b.Negative && b.Digits == "0")
}

// String returns b without suffix.
func (b BigInt) String() string {
	if b.Negative {
		return "-" + b.Digits
	}
	return b.Digits
}

func (b BigInt) Big() *big.Int {
	v, _ := new(big.Int).SetString(b.String(), 10)
	return v
}

func BigIntOf(v *big.Int) BigInt {
	return BigInt{Negative: v.Sign() < 0, Digits: new(big.Int).Abs(v).String()}
}

// Compare orders by sign, then magnitude.
func (b BigInt) Compare(o BigInt) int {
	if b.Negative != o.Negative {
		if b.Negative {
			return -1
		}
		return 1
	}
	c := compareMagnitude(b.Digits, o.Digits)
	if b.Negative {
		return -c
	}
	return c
}

func compareMagnitude(a, b string) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

func FromBigInt(b BigInt) (*Node, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("%w: bigint %q", ErrInvalidNumber, b.String())
	}
	return &Node{Type: BigIntType, BigInt: b}, nil
}

// NewBigInt returns a BigInt node from its text.
func NewBigInt(s string) (*Node, error) {
	b, err := ParseBigInt(s)
	if err != nil {
		return nil, err
	}
	return &Node{Type: BigIntType, BigInt: b}, nil
}

func FromBigIntValue(v *big.Int) *Node {
	return &Node{Type: BigIntType, BigInt: BigIntOf(v)}
}
