package ir

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParseAs(t *testing.T) {
	tm := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	tests := []struct {
		typ     Type
		text    string
		want    *Node
		wantErr bool
	}{
		{typ: NullType, text: "null", want: Null()},
		{typ: BoolType, text: "true", want: FromBool(true)},
		{typ: BoolType, text: " 0 ", want: FromBool(false)},
		{typ: BoolType, text: "yes", wantErr: true},
		{typ: IntType, text: "-42", want: FromInt(-42)},
		{typ: IntType, text: "4.2", wantErr: true},
		{typ: IntType, text: "abc", wantErr: true},
		{typ: UintType, text: "18446744073709551615", want: FromUint(math.MaxUint64)},
		{typ: UintType, text: "-1", wantErr: true},
		{typ: FloatType, text: "1.5", want: FromFloat(1.5)},
		{typ: FloatType, text: "x", wantErr: true},
		{typ: StringType, text: " as is ", want: FromString(" as is ")},
		{typ: BytesType, text: "68690a", want: FromBytes([]byte("hi\n"))},
		{typ: BytesType, text: "zz", wantErr: true},
		{typ: TimeType, text: "2024-03-01T12:30:00Z", want: FromTime(tm)},
		{typ: TimeType, text: "2024-03-01", want: FromTime(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))},
		{typ: TimeType, text: "yesterday", wantErr: true},
		{typ: ListType, text: "[]", wantErr: true},
		{typ: UnsupportedType, text: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String()+"/"+tt.text, func(t *testing.T) {
			got, err := ParseAs(tt.typ, tt.text)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidFormat) {
					t.Fatalf("expected ErrInvalidFormat, got %v %v", got, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Error(diff)
			}
		})
	}
}

func TestTextParseAsRoundTrip(t *testing.T) {
	vals := []*Node{
		Null(),
		FromBool(true),
		FromInt(math.MinInt64),
		FromUint(7),
		FromFloat(0.1),
		FromFloat(1e300),
		FromString("  spaced  "),
		FromBytes([]byte{0, 255}),
		FromTime(time.Date(2001, 2, 3, 4, 5, 6, 789, time.UTC)),
	}
	for _, v := range vals {
		got, err := ParseAs(v.Type, Text(v))
		if err != nil {
			t.Errorf("%s %q: %v", v.Type, Text(v), err)
			continue
		}
		if !Equal(v, got) {
			t.Errorf("%s: %q round tripped to %q", v.Type, Text(v), Text(got))
		}
	}
}

func TestConvert(t *testing.T) {
	tests := []struct {
		in      *Node
		to      Type
		want    *Node
		wantErr bool
	}{
		{in: FromInt(3), to: FloatType, want: FromFloat(3)},
		{in: FromInt(-3), to: UintType, wantErr: true},
		{in: FromInt(0), to: BoolType, want: FromBool(false)},
		{in: FromFloat(2), to: IntType, want: FromInt(2)},
		{in: FromFloat(2.5), to: IntType, wantErr: true},
		{in: FromUint(math.MaxUint64), to: IntType, wantErr: true},
		{in: FromBool(true), to: UintType, want: FromUint(1)},
		{in: FromString("12"), to: IntType, want: FromInt(12)},
		{in: FromString("twelve"), to: IntType, wantErr: true},
		{in: FromInt(12), to: StringType, want: FromString("12")},
		{in: FromString("hi"), to: BytesType, want: FromBytes([]byte("hi"))},
		{in: FromBytes([]byte("hi")), to: StringType, want: FromString("hi")},
		{in: FromInt(0), to: TimeType, want: FromTime(time.Unix(0, 0).UTC())},
		{in: ints(1), to: NullType, want: Null()},
		{in: ints(1), to: StringType, wantErr: true},
		{in: FromString("x"), to: MapType, wantErr: true},
	}
	for _, tt := range tests {
		got, err := Convert(tt.in, tt.to)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidFormat) {
				t.Errorf("%s -> %s: expected ErrInvalidFormat, got %v %v", Text(tt.in), tt.to, got, err)
			}
			if !Equal(ConvertOrZero(tt.in, tt.to), Zero(tt.to)) {
				t.Errorf("%s -> %s: expected zero fallback", Text(tt.in), tt.to)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s -> %s: %v", Text(tt.in), tt.to, err)
			continue
		}
		if !Equal(tt.want, got) {
			t.Errorf("%s -> %s: got %s", Text(tt.in), tt.to, Text(got))
		}
	}
}

func TestParseType(t *testing.T) {
	for _, typ := range Types() {
		got, err := ParseType(typ.String())
		if err != nil || got != typ {
			t.Errorf("%s: got %v %v", typ, got, err)
		}
	}
	if got, _ := ParseType("object"); got != MapType {
		t.Errorf("alias: got %v", got)
	}
	if _, err := ParseType("Quaternion"); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("unknown type: %v", err)
	}
}
