package token

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

type NumberKind int

const (
	FloatNumber NumberKind = iota
	BigIntNumber
	DecimalNumber
)

// NumberLit is a scanned numeric literal.
type NumberLit struct {
	Kind     NumberKind
	Negative bool
	Int      string // integer digits
	Frac     string // fraction digits
	Exp      int64
	HasExp   bool
	// Text is the literal without its suffix.
	Text string
}

const maxExpDigits = 12

// ScanNumber scans
//
//	-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?[nm]?
//
// at the start of d. The literal must end at a token boundary.
func ScanNumber(d []byte) (*NumberLit, int, error) {
	lit := &NumberLit{}
	i := 0
	if i < len(d) && d[i] == '-' {
		lit.Negative = true
		i++
	}
	if i >= len(d) {
		return nil, i, scanErr(i, ErrIncomplete)
	}
	if !asciiDigit(d[i]) {
		return nil, i, scanErrf(i, ErrInvalidNumber, "expected digit, got %q", d[i])
	}
	start := i
	i += asciiDigits(d[i:])
	if d[start] == '0' && i-start > 1 {
		return nil, start, scanErr(start, ErrNumberLeadingZero)
	}
	lit.Int = string(d[start:i])
	if i < len(d) && d[i] == '.' {
		i++
		n := asciiDigits(d[i:])
		if n == 0 {
			if i >= len(d) {
				return nil, i, scanErr(i, ErrIncomplete)
			}
			return nil, i, scanErrf(i, ErrInvalidNumber, "expected fraction digit, got %q", d[i])
		}
		lit.Frac = string(d[i : i+n])
		i += n
	}
	if i < len(d) && (d[i] == 'e' || d[i] == 'E') {
		i++
		neg := false
		if i < len(d) && (d[i] == '+' || d[i] == '-') {
			neg = d[i] == '-'
			i++
		}
		n := asciiDigits(d[i:])
		if n == 0 {
			if i >= len(d) {
				return nil, i, scanErr(i, ErrIncomplete)
			}
			return nil, i, scanErrf(i, ErrInvalidNumber, "expected exponent digit, got %q", d[i])
		}
		digits := strings.TrimLeft(string(d[i:i+n]), "0")
		if len(digits) > maxExpDigits {
			return nil, i, scanErrf(i, ErrOverflow, "exponent %s", d[i:i+n])
		}
		if digits != "" {
			lit.Exp, _ = strconv.ParseInt(digits, 10, 64)
		}
		if neg {
			lit.Exp = -lit.Exp
		}
		lit.HasExp = true
		i += n
	}
	lit.Text = string(d[:i])
	if i < len(d) {
		switch d[i] {
		case 'n':
			if lit.Frac != "" || lit.HasExp {
				return nil, i, scanErrf(i, ErrNumberSuffix, "bigint literal %s must be an integer", lit.Text)
			}
			lit.Kind = BigIntNumber
			i++
		case 'm':
			lit.Kind = DecimalNumber
			i++
		}
	}
	if i < len(d) && (IsIdentPart(d[i]) || d[i] == '.') {
		return nil, i, scanErrf(i, ErrNumberSuffix, "unexpected %q after %s", d[i], d[:i])
	}
	return lit, i, nil
}

// Float returns the value of a FloatNumber literal. Values beyond the
// range of a float64 give ErrOverflow.
func (l *NumberLit) Float() (float64, error) {
	f, err := strconv.ParseFloat(l.Text, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) && math.IsInf(f, 0) {
			return 0, ErrOverflow
		}
		return 0, ErrInvalidNumber
	}
	return f, nil
}

// BigInt returns the sign and digits of an integer literal.
func (l *NumberLit) BigInt() (bool, string) {
	return l.Negative && l.Int != "0", l.Int
}

// Decimal returns the normalized decimal parts of the literal.
func (l *NumberLit) Decimal() (bool, string, int32, error) {
	return NormalizeDecimal(l.Negative, l.Int+l.Frac, l.Exp-int64(len(l.Frac)))
}

// NormalizeDecimal strips leading zeros from digits and checks the
// exponent range. Zero is always {false, "0", 0}.
func NormalizeDecimal(neg bool, digits string, exp int64) (bool, string, int32, error) {
	if !AllDigits(digits) {
		return false, "", 0, ErrInvalidNumber
	}
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return false, "0", 0, nil
	}
	if exp < math.MinInt32 || exp > math.MaxInt32 {
		return false, "", 0, ErrOverflow
	}
	return neg, digits, int32(exp), nil
}

// ValidInteger reports whether digits is a non-empty digit string
// without leading zeros.
func ValidInteger(digits string) bool {
	if !AllDigits(digits) {
		return false
	}
	return digits == "0" || digits[0] != '0'
}

func AllDigits(v string) bool {
	if v == "" {
		return false
	}
	for i := 0; i < len(v); i++ {
		if !asciiDigit(v[i]) {
			return false
		}
	}
	return true
}

func asciiDigits(d []byte) int {
	i := 0
	for i < len(d) {
		if !asciiDigit(d[i]) {
			return i
		}
		i++
	}
	return i
}

func asciiDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// AppendNumber appends the shortest text which parses back to f, in
// plain notation for magnitudes in [1e-6, 1e21) and exponent notation
// otherwise.
func AppendNumber(dst []byte, f float64) []byte {
	abs := math.Abs(f)
	fmt := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		fmt = 'e'
	}
	dst = strconv.AppendFloat(dst, f, fmt, -1, 64)
	if fmt == 'e' {
		// e-09 to e-9
		n := len(dst)
		if n >= 4 && dst[n-4] == 'e' && dst[n-3] == '-' && dst[n-2] == '0' {
			dst[n-2] = dst[n-1]
			dst = dst[:n-1]
		}
	}
	return dst
}

// maxPointZeros bounds the zeros written between the point and the
// digits of a decimal before switching to exponent notation.
const maxPointZeros = 6

// AppendDecimal appends a decimal without suffix. A negative exponent
// is rendered by placing the point within or before the digits; other
// exponents use e notation so the digits and exponent survive a parse.
func AppendDecimal(dst []byte, neg bool, digits string, exp int32) []byte {
	if neg {
		dst = append(dst, '-')
	}
	switch {
	case exp == 0:
		return append(dst, digits...)
	case exp > 0:
		dst = append(dst, digits...)
		dst = append(dst, 'e')
		return strconv.AppendInt(dst, int64(exp), 10)
	}
	point := len(digits) + int(exp)
	switch {
	case point > 0:
		dst = append(dst, digits[:point]...)
		dst = append(dst, '.')
		return append(dst, digits[point:]...)
	case -point <= maxPointZeros:
		dst = append(dst, '0', '.')
		for range -point {
			dst = append(dst, '0')
		}
		return append(dst, digits...)
	default:
		dst = append(dst, digits...)
		dst = append(dst, 'e')
		return strconv.AppendInt(dst, int64(exp), 10)
	}
}
