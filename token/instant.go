package token

import (
	"math"
	"time"
)

const nanosPerSec = int64(1e9)

// MaxOffset is the largest timezone offset in minutes, 23:59.
const MaxOffset = 23*60 + 59

// DateShape reports whether d starts with DDDD-DD-DD.
func DateShape(d []byte) bool {
	if len(d) < 10 {
		return false
	}
	for i := range 10 {
		switch i {
		case 4, 7:
			if d[i] != '-' {
				return false
			}
		default:
			if !asciiDigit(d[i]) {
				return false
			}
		}
	}
	return true
}

// ScanInstant scans
//
//	DDDD-DD-DD[THH:MM[:SS[.fraction]][Z|(+|-)HH:MM]]
//
// at the start of d, returning nanoseconds since the Unix epoch and the
// offset in minutes. An instant without a zone is UTC.
func ScanInstant(d []byte) (int64, int16, int, error) {
	if !DateShape(d) {
		return 0, 0, 0, scanErrf(0, ErrInvalidInstant, "expected DDDD-DD-DD")
	}
	year := digitsVal(d[0:4])
	month := digitsVal(d[5:7])
	day := digitsVal(d[8:10])
	if month < 1 || month > 12 {
		return 0, 0, 5, scanErrf(5, ErrInvalidInstant, "month %02d", month)
	}
	if day < 1 || day > daysIn(year, month) {
		return 0, 0, 8, scanErrf(8, ErrInvalidInstant, "day %02d", day)
	}
	var (
		hour, minute, sec, frac int
		offset                  int
	)
	i := 10
	if i < len(d) && d[i] == 'T' {
		i++
		var err error
		if hour, i, err = scan2(d, i, 23, "hour"); err != nil {
			return 0, 0, i, err
		}
		if i >= len(d) || d[i] != ':' {
			return 0, 0, i, instantErr(d, i, "expected ':'")
		}
		if minute, i, err = scan2(d, i+1, 59, "minute"); err != nil {
			return 0, 0, i, err
		}
		if i < len(d) && d[i] == ':' {
			if sec, i, err = scan2(d, i+1, 59, "second"); err != nil {
				return 0, 0, i, err
			}
			if i < len(d) && d[i] == '.' {
				i++
				n := asciiDigits(d[i:])
				if n == 0 || n > 9 {
					return 0, 0, i, instantErr(d, i, "fraction must have 1 to 9 digits")
				}
				frac = digitsVal(d[i : i+n])
				for range 9 - n {
					frac *= 10
				}
				i += n
			}
		}
		if i < len(d) {
			switch d[i] {
			case 'Z':
				i++
			case '+', '-':
				sign := 1
				if d[i] == '-' {
					sign = -1
				}
				var oh, om int
				if oh, i, err = scan2(d, i+1, 23, "offset hour"); err != nil {
					return 0, 0, i, err
				}
				if i >= len(d) || d[i] != ':' {
					return 0, 0, i, instantErr(d, i, "expected ':' in offset")
				}
				if om, i, err = scan2(d, i+1, 59, "offset minute"); err != nil {
					return 0, 0, i, err
				}
				offset = sign * (oh*60 + om)
			}
		}
	}
	if i < len(d) && (IsIdentPart(d[i]) || d[i] == '.' || d[i] == ':' || d[i] == '-' || d[i] == '+') {
		return 0, 0, i, scanErrf(i, ErrInvalidInstant, "unexpected %q", d[i])
	}
	secs := time.Date(year, time.Month(month), day, hour, minute, sec, 0, time.UTC).Unix()
	secs -= int64(offset) * 60
	nanos, ok := epochNanos(secs, int64(frac))
	if !ok {
		return 0, 0, 0, scanErrf(0, ErrInvalidInstant, "%s out of range", d[:i])
	}
	return nanos, int16(offset), i, nil
}

// epochNanos computes secs*1e9+frac, reporting whether it fits in an
// int64.
func epochNanos(secs, frac int64) (int64, bool) {
	if secs < 0 && frac > 0 {
		secs++
		frac -= nanosPerSec
	}
	if secs < math.MinInt64/nanosPerSec || secs > math.MaxInt64/nanosPerSec {
		return 0, false
	}
	n := secs * nanosPerSec
	if frac > 0 && n > math.MaxInt64-frac || frac < 0 && n < math.MinInt64-frac {
		return 0, false
	}
	return n + frac, true
}

func instantErr(d []byte, i int, msg string) error {
	if i >= len(d) {
		return scanErr(i, ErrIncomplete)
	}
	return scanErrf(i, ErrInvalidInstant, "%s", msg)
}

func scan2(d []byte, i, hi int, what string) (int, int, error) {
	if i+2 > len(d) {
		return 0, len(d), scanErr(len(d), ErrIncomplete)
	}
	if !asciiDigit(d[i]) || !asciiDigit(d[i+1]) {
		return 0, i, scanErrf(i, ErrInvalidInstant, "expected 2 digit %s", what)
	}
	v := digitsVal(d[i : i+2])
	if v > hi {
		return 0, i, scanErrf(i, ErrInvalidInstant, "%s %02d", what, v)
	}
	return v, i + 2, nil
}

func digitsVal(d []byte) int {
	v := 0
	for _, c := range d {
		v = v*10 + int(c-'0')
	}
	return v
}

func daysIn(year, month int) int {
	switch month {
	case 2:
		if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	}
	return 31
}

// AppendInstant appends the ISO-8601 form of an instant in its offset,
// with a 9 digit fraction when the instant is not on a second.
func AppendInstant(dst []byte, nanos int64, offset int16) []byte {
	t := time.Unix(0, nanos).In(time.FixedZone("", int(offset)*60))
	dst = t.AppendFormat(dst, "2006-01-02T15:04:05")
	if ns := t.Nanosecond(); ns != 0 {
		dst = append(dst, '.')
		dst = appendPadded(dst, int64(ns), 9)
	}
	if offset == 0 {
		return append(dst, 'Z')
	}
	off := int(offset)
	if off < 0 {
		dst = append(dst, '-')
		off = -off
	} else {
		dst = append(dst, '+')
	}
	dst = appendPadded(dst, int64(off/60), 2)
	dst = append(dst, ':')
	return appendPadded(dst, int64(off%60), 2)
}

func appendPadded(dst []byte, v int64, width int) []byte {
	var buf [20]byte
	i := len(buf)
	for v > 0 || width > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
		width--
	}
	return append(dst, buf[i:]...)
}
