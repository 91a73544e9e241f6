package token

import (
	"math"
	"strconv"
)

// DurationParts are the components of an ISO-8601 duration. Components
// are non-negative; Negative applies to the whole duration. Nanos holds
// the seconds and their fraction.
type DurationParts struct {
	Negative bool
	Years    int32
	Months   int32
	Days     int32
	Hours    int32
	Minutes  int32
	Nanos    int64
}

func (p DurationParts) IsZero() bool {
	return p.Years == 0 && p.Months == 0 && p.Days == 0 &&
		p.Hours == 0 && p.Minutes == 0 && p.Nanos == 0
}

// designators in the order they may appear, date part then time part.
const (
	desY = iota
	desMo
	desW
	desD
	desH
	desMi
	desS
)

// ScanDuration scans
//
//	-?P(nY)?(nM)?(nW)?(nD)?(T(nH)?(nM)?(n(.fraction)?S)?)?
//
// at the start of d. At least one component must be present, and a T
// must be followed by at least one time component. Weeks are counted as
// 7 days.
func ScanDuration(d []byte) (DurationParts, int, error) {
	var p DurationParts
	i := 0
	if i < len(d) && d[i] == '-' {
		p.Negative = true
		i++
	}
	if i >= len(d) {
		return p, i, scanErr(i, ErrIncomplete)
	}
	if d[i] != 'P' {
		return p, i, scanErrf(i, ErrInvalidDuration, "expected 'P'")
	}
	i++
	last := -1
	timePart := false
	timeStart := 0
	n := 0
	for i < len(d) {
		if d[i] == 'T' {
			if timePart {
				return p, i, scanErrf(i, ErrInvalidDuration, "repeated 'T'")
			}
			timePart = true
			timeStart = n
			i++
			continue
		}
		if !asciiDigit(d[i]) {
			break
		}
		start := i
		i += asciiDigits(d[i:])
		whole := d[start:i]
		var frac []byte
		if i < len(d) && d[i] == '.' {
			i++
			k := asciiDigits(d[i:])
			if k == 0 || k > 9 {
				return p, i, durationErr(d, i, "fraction must have 1 to 9 digits")
			}
			frac = d[i : i+k]
			i += k
		}
		if i >= len(d) {
			return p, i, scanErr(i, ErrIncomplete)
		}
		des := -1
		switch d[i] {
		case 'Y':
			des = desY
		case 'M':
			des = desMo
			if timePart {
				des = desMi
			}
		case 'W':
			des = desW
		case 'D':
			des = desD
		case 'H':
			des = desH
		case 'S':
			des = desS
		default:
			return p, i, scanErrf(i, ErrInvalidDuration, "unexpected %q", d[i])
		}
		if timePart != (des >= desH) {
			return p, i, scanErrf(i, ErrInvalidDuration, "%c in wrong part", d[i])
		}
		if des <= last {
			return p, i, scanErrf(i, ErrInvalidDuration, "%c out of order", d[i])
		}
		if frac != nil && des != desS {
			return p, start, scanErrf(start, ErrInvalidDuration, "fraction on %c", d[i])
		}
		if err := p.set(des, whole, frac); err != nil {
			return p, start, scanErrf(start, ErrInvalidDuration, "%s%c: %v", d[start:i], d[i], err)
		}
		last = des
		n++
		i++
	}
	switch {
	case n == 0:
		return p, i, durationErr(d, i, "no components")
	case timePart && n == timeStart:
		return p, i, durationErr(d, i, "no time components after 'T'")
	}
	if i < len(d) && (IsIdentPart(d[i]) || d[i] == '.') {
		return p, i, scanErrf(i, ErrInvalidDuration, "unexpected %q", d[i])
	}
	return p, i, nil
}

func durationErr(d []byte, i int, msg string) error {
	if i >= len(d) {
		return scanErr(i, ErrIncomplete)
	}
	return scanErrf(i, ErrInvalidDuration, "%s", msg)
}

func (p *DurationParts) set(des int, whole, frac []byte) error {
	if des == desS {
		v, err := strconv.ParseInt(string(whole), 10, 64)
		if err != nil {
			return ErrOverflow
		}
		ns := int64(0)
		if len(frac) > 0 {
			ns = int64(digitsVal(frac))
			for range 9 - len(frac) {
				ns *= 10
			}
		}
		if v > (math.MaxInt64-ns)/nanosPerSec {
			return ErrOverflow
		}
		p.Nanos = v*nanosPerSec + ns
		return nil
	}
	v, err := strconv.ParseInt(string(whole), 10, 32)
	if err != nil {
		return ErrOverflow
	}
	switch des {
	case desY:
		p.Years = int32(v)
	case desMo:
		p.Months = int32(v)
	case desW:
		if v > math.MaxInt32/7 {
			return ErrOverflow
		}
		p.Days = int32(v * 7)
	case desD:
		if int64(p.Days)+v > math.MaxInt32 {
			return ErrOverflow
		}
		p.Days += int32(v)
	case desH:
		p.Hours = int32(v)
	case desMi:
		p.Minutes = int32(v)
	}
	return nil
}

// AppendDuration appends the ISO-8601 form of p, omitting zero
// components. The zero duration is PT0S.
func AppendDuration(dst []byte, p DurationParts) []byte {
	if p.Negative {
		dst = append(dst, '-')
	}
	dst = append(dst, 'P')
	if p.IsZero() {
		return append(dst, 'T', '0', 'S')
	}
	dst = appendComponent(dst, int64(p.Years), 'Y')
	dst = appendComponent(dst, int64(p.Months), 'M')
	dst = appendComponent(dst, int64(p.Days), 'D')
	if p.Hours == 0 && p.Minutes == 0 && p.Nanos == 0 {
		return dst
	}
	dst = append(dst, 'T')
	dst = appendComponent(dst, int64(p.Hours), 'H')
	dst = appendComponent(dst, int64(p.Minutes), 'M')
	if p.Nanos != 0 {
		dst = strconv.AppendInt(dst, p.Nanos/nanosPerSec, 10)
		if ns := p.Nanos % nanosPerSec; ns != 0 {
			dst = append(dst, '.')
			dst = appendPadded(dst, ns, 9)
		}
		dst = append(dst, 'S')
	}
	return dst
}

func appendComponent(dst []byte, v int64, des byte) []byte {
	if v == 0 {
		return dst
	}
	dst = strconv.AppendInt(dst, v, 10)
	return append(dst, des)
}
