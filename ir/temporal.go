package ir

import (
	"fmt"
	"math"
	"time"

	"github.com/signadot/kjson-format/kjson/token"
)

// Instant is a point in time in nanoseconds since the Unix epoch, with
// the timezone offset in minutes it is displayed in.
type Instant struct {
	Nanos  int64
	Offset int16
}

// InstantOf converts t, keeping its zone offset rounded to the minute.
// Times outside the range of int64 nanoseconds are rejected.
func InstantOf(t time.Time) (Instant, error) {
	if t.Year() < 1678 || t.Year() > 2261 {
		return Instant{}, fmt.Errorf("%w: %s out of range", ErrInvalidInstant, t)
	}
	_, off := t.Zone()
	return NewInstant(t.UnixNano(), int16(off/60))
}

func NewInstant(nanos int64, offset int16) (Instant, error) {
	if offset < -token.MaxOffset || offset > token.MaxOffset {
		return Instant{}, fmt.Errorf("%w: offset %d minutes", ErrInvalidInstant, offset)
	}
	return Instant{Nanos: nanos, Offset: offset}, nil
}

func (i Instant) Time() time.Time {
	return time.Unix(0, i.Nanos).In(time.FixedZone("", int(i.Offset)*60))
}

// EpochMillis returns i in milliseconds since the epoch, rounded down.
func (i Instant) EpochMillis() int64 {
	ms := i.Nanos / 1e6
	if i.Nanos%1e6 < 0 {
		ms--
	}
	return ms
}

func (i Instant) String() string {
	return string(token.AppendInstant(nil, i.Nanos, i.Offset))
}

// Compare orders by time, then by offset.
func (i Instant) Compare(o Instant) int {
	switch {
	case i.Nanos < o.Nanos:
		return -1
	case i.Nanos > o.Nanos:
		return 1
	case i.Offset < o.Offset:
		return -1
	case i.Offset > o.Offset:
		return 1
	}
	return 0
}

// FromTime returns an Instant node for t.
func FromTime(t time.Time) (*Node, error) {
	i, err := InstantOf(t)
	if err != nil {
		return nil, err
	}
	return FromInstant(i), nil
}

// Duration is an ISO-8601 duration. Components are non-negative and
// Negative applies to the whole. Years and months have no fixed length,
// so a Duration is not reducible to a time.Duration.
type Duration struct {
	Negative bool
	Years    int32
	Months   int32
	Days     int32
	Hours    int32
	Minutes  int32
	Nanos    int64
}

// ParseDuration parses ISO-8601 duration text.
func ParseDuration(s string) (Duration, error) {
	p, n, err := token.ScanDuration([]byte(s))
	if err != nil {
		return Duration{}, err
	}
	if n != len(s) {
		return Duration{}, fmt.Errorf("%w: trailing %q", ErrInvalidDuration, s[n:])
	}
	return Duration(p), nil
}

func (d Duration) Valid() bool {
	return d.Years >= 0 && d.Months >= 0 && d.Days >= 0 &&
		d.Hours >= 0 && d.Minutes >= 0 && d.Nanos >= 0
}

func (d Duration) IsZero() bool {
	return token.DurationParts(d).IsZero()
}

func (d Duration) String() string {
	return string(token.AppendDuration(nil, token.DurationParts(d)))
}

const (
	approxDay   = 24 * time.Hour
	approxMonth = 30 * approxDay
	approxYear  = 365 * approxDay
)

// ApproxNanos returns d in nanoseconds counting a year as 365 days and a
// month as 30 days. The result saturates at the int64 range.
func (d Duration) ApproxNanos() int64 {
	var sum int64
	add := func(v int64, unit time.Duration) {
		if v != 0 && (v > math.MaxInt64/int64(unit) || sum > math.MaxInt64-v*int64(unit)) {
			sum = math.MaxInt64
			return
		}
		sum += v * int64(unit)
	}
	add(int64(d.Years), approxYear)
	add(int64(d.Months), approxMonth)
	add(int64(d.Days), approxDay)
	add(int64(d.Hours), time.Hour)
	add(int64(d.Minutes), time.Minute)
	add(d.Nanos, 1)
	if d.Negative {
		return -sum
	}
	return sum
}

// Compare orders by approximate length, then component by component.
func (d Duration) Compare(o Duration) int {
	a, b := d.ApproxNanos(), o.ApproxNanos()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	for _, c := range [...][2]int64{
		{boolInt(d.Negative), boolInt(o.Negative)},
		{int64(d.Years), int64(o.Years)},
		{int64(d.Months), int64(o.Months)},
		{int64(d.Days), int64(o.Days)},
		{int64(d.Hours), int64(o.Hours)},
		{int64(d.Minutes), int64(o.Minutes)},
		{d.Nanos, o.Nanos},
	} {
		if c[0] != c[1] {
			if c[0] < c[1] {
				return -1
			}
			return 1
		}
	}
	return 0
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// DurationOf splits t into hours, minutes and nanoseconds.
func DurationOf(t time.Duration) Duration {
	var d Duration
	if t < 0 {
		d.Negative = true
		if t == math.MinInt64 {
			t = math.MaxInt64
		} else {
			t = -t
		}
	}
	d.Hours = int32(t / time.Hour)
	t %= time.Hour
	d.Minutes = int32(t / time.Minute)
	d.Nanos = int64(t % time.Minute)
	return d
}

// FromTimeDuration returns a Duration node for t.
func FromTimeDuration(t time.Duration) *Node {
	return FromDuration(DurationOf(t))
}
