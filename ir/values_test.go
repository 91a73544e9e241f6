package ir

import (
	"errors"
	"math"
	"math/big"
	"testing"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

func TestBigInt(t *testing.T) {
	tests := []struct {
		in   string
		want BigInt
		err  bool
	}{
		{"0", BigInt{Digits: "0"}, false},
		{"-0", BigInt{Digits: "0"}, false},
		{"12n", BigInt{Digits: "12"}, false},
		{"-123456789012345678901234567890", BigInt{Negative: true, Digits: "123456789012345678901234567890"}, false},
		{"", BigInt{}, true},
		{"01", BigInt{}, true},
		{"1.5", BigInt{}, true},
		{"--1", BigInt{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBigInt(tt.in)
			if tt.err {
				if !errors.Is(err, ErrInvalidNumber) {
					t.Fatalf("got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %+v", got)
			}
			if !got.Valid() {
				t.Error("not valid")
			}
			if got.Big().String() != got.String() {
				t.Errorf("Big = %s, String = %s", got.Big(), got.String())
			}
			if BigIntOf(got.Big()) != got {
				t.Error("BigIntOf(Big) changed value")
			}
		})
	}
	if (BigInt{Negative: true, Digits: "0"}).Valid() {
		t.Error("negative zero is not valid")
	}
	if _, err := FromBigInt(BigInt{Digits: "007"}); !errors.Is(err, ErrInvalidNumber) {
		t.Errorf("got %v", err)
	}
	v, _ := new(big.Int).SetString("-98765432109876543210", 10)
	if n := FromBigIntValue(v); n.BigInt.String() != "-98765432109876543210" {
		t.Errorf("got %s", n.BigInt)
	}
}

func TestDecimal(t *testing.T) {
	tests := []struct {
		in   string
		want Decimal
		text string
	}{
		{"19.99", Decimal{Digits: "1999", Exponent: -2}, "19.99"},
		{"1.50m", Decimal{Digits: "150", Exponent: -2}, "1.50"},
		{"-0.001", Decimal{Negative: true, Digits: "1", Exponent: -3}, "-0.001"},
		{"0.00", Decimal{Digits: "0"}, "0"},
		{"-0", Decimal{Digits: "0"}, "0"},
		{"12e3", Decimal{Digits: "12", Exponent: 3}, "12e3"},
		{"1e-8", Decimal{Digits: "1", Exponent: -8}, "1e-8"},
		{"100", Decimal{Digits: "100"}, "100"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDecimal(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
			if s := got.String(); s != tt.text {
				t.Errorf("String = %s, want %s", s, tt.text)
			}
			back, err := DecimalOf(got.Apd())
			if err != nil {
				t.Fatal(err)
			}
			if back != got {
				t.Errorf("DecimalOf(Apd) = %+v", back)
			}
		})
	}
	for _, bad := range []string{"", "1.", "abc", "1n", "01.5"} {
		if _, err := ParseDecimal(bad); err == nil {
			t.Errorf("%q: expected error", bad)
		}
	}
	if _, err := DecimalOf(&apd.Decimal{Form: apd.Infinite}); !errors.Is(err, ErrNonFinite) {
		t.Errorf("got %v", err)
	}
	if _, err := FromDecimal(Decimal{Negative: true, Digits: "0"}); !errors.Is(err, ErrInvalidNumber) {
		t.Errorf("got %v", err)
	}
	a, _, err := apd.NewFromString("-3.14159")
	if err != nil {
		t.Fatal(err)
	}
	n, err := FromApd(a)
	if err != nil {
		t.Fatal(err)
	}
	if n.Decimal.String() != "-3.14159" {
		t.Errorf("got %s", n.Decimal)
	}
}

func TestInstant(t *testing.T) {
	tm := time.Date(2024, 1, 15, 10, 30, 0, 123, time.FixedZone("", 5*3600+45*60))
	i, err := InstantOf(tm)
	if err != nil {
		t.Fatal(err)
	}
	if i.Offset != 345 || i.Nanos != tm.UnixNano() {
		t.Errorf("got %+v", i)
	}
	if !i.Time().Equal(tm) {
		t.Errorf("Time = %s", i.Time())
	}
	if _, off := i.Time().Zone(); off != 345*60 {
		t.Errorf("zone offset %d", off)
	}
	if s := i.String(); s != "2024-01-15T10:30:00.000000123+05:45" {
		t.Errorf("String = %s", s)
	}
	if ms := (Instant{Nanos: -1}).EpochMillis(); ms != -1 {
		t.Errorf("EpochMillis = %d", ms)
	}
	if ms := (Instant{Nanos: 1999999}).EpochMillis(); ms != 1 {
		t.Errorf("EpochMillis = %d", ms)
	}
	if _, err := InstantOf(time.Date(3000, 1, 1, 0, 0, 0, 0, time.UTC)); !errors.Is(err, ErrInvalidInstant) {
		t.Errorf("got %v", err)
	}
	if _, err := NewInstant(0, 1440); !errors.Is(err, ErrInvalidInstant) {
		t.Errorf("got %v", err)
	}
	if _, err := FromTime(tm); err != nil {
		t.Error(err)
	}
}

func TestDuration(t *testing.T) {
	tests := []struct {
		in     string
		want   Duration
		text   string
		approx int64
	}{
		{"PT0S", Duration{}, "PT0S", 0},
		{"-PT0S", Duration{Negative: true}, "-PT0S", 0},
		{"P1Y", Duration{Years: 1}, "P1Y", int64(365 * 24 * time.Hour)},
		{"P1M", Duration{Months: 1}, "P1M", int64(30 * 24 * time.Hour)},
		{"PT1M", Duration{Minutes: 1}, "PT1M", int64(time.Minute)},
		{"P2W", Duration{Days: 14}, "P14D", int64(14 * 24 * time.Hour)},
		{"-PT1H30M0.5S", Duration{Negative: true, Hours: 1, Minutes: 30, Nanos: 5e8}, "-PT1H30M0.500000000S", -int64(90*time.Minute + 500*time.Millisecond)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDuration(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
			if s := got.String(); s != tt.text {
				t.Errorf("String = %s, want %s", s, tt.text)
			}
			if a := got.ApproxNanos(); a != tt.approx {
				t.Errorf("ApproxNanos = %d, want %d", a, tt.approx)
			}
		})
	}
	for _, bad := range []string{"P", "PT", "1D", "P1H", "PT1D", "P1S", "P1DX"} {
		if _, err := ParseDuration(bad); err == nil {
			t.Errorf("%q: expected error", bad)
		}
	}
	if a := (Duration{Years: math.MaxInt32}).ApproxNanos(); a != math.MaxInt64 {
		t.Errorf("saturation: %d", a)
	}
	if !(Duration{}).IsZero() || !(Duration{Negative: true}).IsZero() || (Duration{Nanos: 1}).IsZero() {
		t.Error("IsZero")
	}
	if (Duration{Days: -1}).Valid() {
		t.Error("negative component is not valid")
	}
}

func TestDurationOf(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want Duration
	}{
		{0, Duration{}},
		{90*time.Minute + time.Second, Duration{Hours: 1, Minutes: 30, Nanos: int64(time.Second)}},
		{-time.Nanosecond, Duration{Negative: true, Nanos: 1}},
		{100 * time.Hour, Duration{Hours: 100}},
	}
	for _, tt := range tests {
		got := DurationOf(tt.in)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("%s (-want +got):\n%s", tt.in, diff)
		}
		if got.ApproxNanos() != int64(tt.in) {
			t.Errorf("%s: ApproxNanos = %d", tt.in, got.ApproxNanos())
		}
	}
	if n := FromTimeDuration(time.Minute); n.Type != DurationType || n.Duration.Minutes != 1 {
		t.Errorf("got %+v", n.Duration)
	}
}

func TestUUID(t *testing.T) {
	v4, err := NewUUIDv4()
	if err != nil {
		t.Fatal(err)
	}
	if v4.UUID.Version() != 4 {
		t.Errorf("version %d", v4.UUID.Version())
	}
	v7, err := NewUUIDv7()
	if err != nil {
		t.Fatal(err)
	}
	if v7.UUID.Version() != 7 {
		t.Errorf("version %d", v7.UUID.Version())
	}
	u, err := ParseUUID("550E8400-E29B-41D4-A716-446655440000")
	if err != nil {
		t.Fatal(err)
	}
	if u.String() != "550e8400-e29b-41d4-a716-446655440000" {
		t.Errorf("got %s", u)
	}
	for _, bad := range []string{
		"{550e8400-e29b-41d4-a716-446655440000}",
		"urn:uuid:550e8400-e29b-41d4-a716-446655440000",
		"550e8400e29b41d4a716446655440000",
		"550e8400-e29b-41d4-a716-44665544000g",
	} {
		if _, err := ParseUUID(bad); !errors.Is(err, ErrInvalidUUID) {
			t.Errorf("%s: got %v", bad, err)
		}
	}
	if _, err := uuid.Parse("550e8400-e29b-41d4-a716-446655440000"); err != nil {
		t.Fatal(err)
	}
}

func TestErrorKindName(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrInvalidDuration, "InvalidDuration"},
		{ErrNonFinite, "NonFinite"},
		{ErrSyntax, "SyntaxError"},
		{ErrIncomplete, "Incomplete"},
		{ErrInvalidUUID, "InvalidUuid"},
		{errors.New("other"), ""},
	}
	for _, tt := range tests {
		if got := ErrorKindName(tt.err); got != tt.want {
			t.Errorf("%v: got %q want %q", tt.err, got, tt.want)
		}
	}
}
