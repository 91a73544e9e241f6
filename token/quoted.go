package token

import (
	"unicode/utf16"
	"unicode/utf8"
)

// QuoteStrategy selects the delimiter used when writing a string.
type QuoteStrategy int

const (
	// QuoteMinCost picks the delimiter needing the fewest escapes,
	// preferring ' then " then `.
	QuoteMinCost QuoteStrategy = iota
	// QuoteSQL is QuoteMinCost with ' counted twice, for text which will
	// itself be embedded in a single quoted SQL literal. Ties prefer
	// " then ` then '.
	QuoteSQL
	QuoteDouble
	QuoteSingle
	QuoteBacktick
)

func IsQuote(c byte) bool {
	return c == '"' || c == '\'' || c == '`'
}

// SelectQuote returns the delimiter to use for v under s.
func SelectQuote(v string, s QuoteStrategy) byte {
	var sq, dq, bt, bs int
	for i := 0; i < len(v); i++ {
		switch v[i] {
		case '\'':
			sq++
		case '"':
			dq++
		case '`':
			bt++
		case '\\':
			bs++
		}
	}
	switch s {
	case QuoteDouble:
		return '"'
	case QuoteSingle:
		return '\''
	case QuoteBacktick:
		return '`'
	case QuoteSQL:
		q, cost := byte('"'), dq+bs
		if bt+bs < cost {
			q, cost = '`', bt+bs
		}
		if 2*sq+bs < cost {
			q = '\''
		}
		return q
	default:
		q, cost := byte('\''), sq+bs
		if dq+bs < cost {
			q, cost = '"', dq+bs
		}
		if bt+bs < cost {
			q = '`'
		}
		return q
	}
}

const hexDigits = "0123456789abcdef"

// AppendQuoted appends v delimited by q, escaping q, backslashes and
// control characters. With escapeUnicode, non-ASCII runes are written
// as \uXXXX escapes, using surrogate pairs outside the BMP.
func AppendQuoted(dst []byte, v string, q byte, escapeUnicode bool) []byte {
	dst = append(dst, q)
	for i := 0; i < len(v); {
		c := v[i]
		if c < utf8.RuneSelf {
			i++
			switch c {
			case q, '\\':
				dst = append(dst, '\\', c)
			case '\b':
				dst = append(dst, '\\', 'b')
			case '\f':
				dst = append(dst, '\\', 'f')
			case '\n':
				dst = append(dst, '\\', 'n')
			case '\r':
				dst = append(dst, '\\', 'r')
			case '\t':
				dst = append(dst, '\\', 't')
			default:
				if c < 0x20 || c == 0x7f {
					dst = appendU(dst, rune(c))
				} else {
					dst = append(dst, c)
				}
			}
			continue
		}
		r, sz := utf8.DecodeRuneInString(v[i:])
		switch {
		case r == utf8.RuneError && sz == 1:
			dst = append(dst, c)
		case escapeUnicode && r > 0xffff:
			r1, r2 := utf16.EncodeRune(r)
			dst = appendU(dst, r1)
			dst = appendU(dst, r2)
		case escapeUnicode:
			dst = appendU(dst, r)
		default:
			dst = append(dst, v[i:i+sz]...)
		}
		i += sz
	}
	return append(dst, q)
}

func appendU(dst []byte, r rune) []byte {
	return append(dst, '\\', 'u',
		hexDigits[r>>12&0xf], hexDigits[r>>8&0xf],
		hexDigits[r>>4&0xf], hexDigits[r&0xf])
}

// Quote quotes v with the minimal cost delimiter.
func Quote(v string) string {
	return string(AppendQuoted(nil, v, SelectQuote(v, QuoteMinCost), false))
}

// ScanString decodes the quoted string at the start of d, returning the
// decoded text and the number of bytes consumed including delimiters.
// A maxLen > 0 bounds the decoded length.
func ScanString(d []byte, maxLen int) (string, int, error) {
	if len(d) == 0 {
		return "", 0, scanErr(0, ErrIncomplete)
	}
	q := d[0]
	if !IsQuote(q) {
		return "", 0, scanErrf(0, ErrInvalidString, "expected quote, got %q", q)
	}
	buf := make([]byte, 0, 16)
	i := 1
	for {
		if maxLen > 0 && len(buf) > maxLen {
			return "", i, scanErrf(0, ErrSizeExceeded, "string longer than %d", maxLen)
		}
		if i >= len(d) {
			return "", i, scanErr(i, ErrUnterminated)
		}
		c := d[i]
		switch {
		case c == q:
			return string(buf), i + 1, nil
		case c == '\\':
			r, n, err := scanEscape(d[i:])
			if err != nil {
				return "", i, shiftErr(err, i)
			}
			buf = utf8.AppendRune(buf, r)
			i += n
		case c < utf8.RuneSelf:
			buf = append(buf, c)
			i++
		default:
			r, sz := utf8.DecodeRune(d[i:])
			if r == utf8.RuneError && sz <= 1 {
				return "", i, scanErr(i, ErrInvalidUTF8)
			}
			buf = append(buf, d[i:i+sz]...)
			i += sz
		}
	}
}

// Unquote decodes v, which must consist of exactly one quoted string.
func Unquote(v string) (string, error) {
	s, n, err := ScanString([]byte(v), 0)
	if err != nil {
		return "", err
	}
	if n != len(v) {
		return "", scanErr(n, ErrTrailingData)
	}
	return s, nil
}

func scanEscape(d []byte) (rune, int, error) {
	if len(d) < 2 {
		return 0, len(d), scanErr(len(d), ErrIncomplete)
	}
	switch d[1] {
	case '"', '\'', '`', '\\', '/':
		return rune(d[1]), 2, nil
	case 'b':
		return '\b', 2, nil
	case 'f':
		return '\f', 2, nil
	case 'n':
		return '\n', 2, nil
	case 'r':
		return '\r', 2, nil
	case 't':
		return '\t', 2, nil
	case 'u':
	default:
		return 0, 0, scanErrf(0, ErrInvalidEscape, "\\%c", d[1])
	}
	r1, err := hex4(d[2:])
	if err != nil {
		return 0, 0, shiftErr(err, 2)
	}
	switch {
	case r1 >= 0xdc00 && r1 <= 0xdfff:
		return 0, 0, scanErrf(0, ErrInvalidEscape, "lone low surrogate \\u%04x", r1)
	case r1 < 0xd800 || r1 > 0xdbff:
		return r1, 6, nil
	}
	if len(d) < 8 {
		if len(d) == 6 || len(d) == 7 && d[6] == '\\' {
			return 0, 0, scanErr(len(d), ErrIncomplete)
		}
		return 0, 0, scanErrf(0, ErrInvalidEscape, "lone high surrogate \\u%04x", r1)
	}
	if d[6] != '\\' || d[7] != 'u' {
		return 0, 0, scanErrf(0, ErrInvalidEscape, "lone high surrogate \\u%04x", r1)
	}
	r2, err := hex4(d[8:])
	if err != nil {
		return 0, 0, shiftErr(err, 8)
	}
	if r2 < 0xdc00 || r2 > 0xdfff {
		return 0, 0, scanErrf(6, ErrInvalidEscape, "expected low surrogate, got \\u%04x", r2)
	}
	return utf16.DecodeRune(r1, r2), 12, nil
}

func hex4(d []byte) (rune, error) {
	var r rune
	for i := range 4 {
		if i >= len(d) {
			return 0, scanErr(i, ErrIncomplete)
		}
		v := hexVal(d[i])
		if v < 0 {
			return 0, scanErrf(i, ErrInvalidEscape, "bad hex digit %q", d[i])
		}
		r = r<<4 | rune(v)
	}
	return r, nil
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}

func shiftErr(err error, by int) error {
	if se, ok := err.(*ScanErr); ok {
		return &ScanErr{Err: se.Err, Off: se.Off + by}
	}
	return err
}
