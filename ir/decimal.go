package ir

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/apd/v3"
	"github.com/signadot/kjson-format/kjson/token"
)

// Decimal is (-1)^Negative × Digits × 10^Exponent. Digits has no
// leading zeros; zero is {false, "0", 0}. Trailing zeros are kept, so
// 1.50m and 1.5m are different values.
type Decimal struct {
	Negative bool
	Digits   string
	Exponent int32
}

// ParseDecimal parses a number literal, with an optional m suffix.
func ParseDecimal(s string) (Decimal, error) {
	s = strings.TrimSuffix(s, "m")
	lit, n, err := token.ScanNumber([]byte(s))
	if err != nil || n != len(s) || lit.Kind != token.FloatNumber {
		return Decimal{}, fmt.Errorf("%w: decimal %q", ErrInvalidNumber, s)
	}
	neg, digits, exp, err := lit.Decimal()
	if err != nil {
		return Decimal{}, fmt.Errorf("decimal %q: %w", s, err)
	}
	return Decimal{Negative: neg, Digits: digits, Exponent: exp}, nil
}

func (d Decimal) Valid() bool {
	if !token.ValidInteger(d.Digits) {
		return false
	}
	return d.Digits != "0" || !d.Negative && d.Exponent == 0
}

// String returns d without suffix.
func (d Decimal) String() string {
	return string(token.AppendDecimal(nil, d.Negative, d.Digits, d.Exponent))
}

// Apd returns d as an apd decimal.
func (d Decimal) Apd() *apd.Decimal {
	coeff, ok := new(apd.BigInt).SetString(d.Digits, 10)
	if !ok {
		coeff = new(apd.BigInt)
	}
	res := apd.NewWithBigInt(coeff, d.Exponent)
	res.Negative = d.Negative && coeff.Sign() != 0
	return res
}

// DecimalOf converts a finite apd decimal.
func DecimalOf(a *apd.Decimal) (Decimal, error) {
	if a.Form != apd.Finite {
		return Decimal{}, fmt.Errorf("%w: %s", ErrNonFinite, a.String())
	}
	neg, digits, exp, err := token.NormalizeDecimal(a.Negative, a.Coeff.String(), int64(a.Exponent))
	if err != nil {
		return Decimal{}, err
	}
	return Decimal{Negative: neg, Digits: digits, Exponent: exp}, nil
}

// Compare orders decimals by numeric value, then by exponent so that
// only equal representations compare equal.
func (d Decimal) Compare(o Decimal) int {
	if c := d.Apd().Cmp(o.Apd()); c != 0 {
		return c
	}
	switch {
	case d.Exponent < o.Exponent:
		return -1
	case d.Exponent > o.Exponent:
		return 1
	}
	return 0
}

func FromDecimal(d Decimal) (*Node, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: decimal %q", ErrInvalidNumber, d.String())
	}
	return &Node{Type: DecimalType, Decimal: d}, nil
}

// NewDecimal returns a Decimal node from its text.
func NewDecimal(s string) (*Node, error) {
	d, err := ParseDecimal(s)
	if err != nil {
		return nil, err
	}
	return &Node{Type: DecimalType, Decimal: d}, nil
}

func FromApd(a *apd.Decimal) (*Node, error) {
	d, err := DecimalOf(a)
	if err != nil {
		return nil, err
	}
	return &Node{Type: DecimalType, Decimal: d}, nil
}
