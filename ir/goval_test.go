package ir

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFromAny(t *testing.T) {
	type point struct{ X, Y int }
	tests := []struct {
		name string
		in   any
		want *Node
	}{
		{name: "nil", in: nil, want: Null()},
		{name: "int", in: 3, want: FromInt(3)},
		{name: "uint8", in: uint8(3), want: FromUint(3)},
		{name: "json int", in: json.Number("-7"), want: FromInt(-7)},
		{name: "json big", in: json.Number("18446744073709551615"), want: FromUint(18446744073709551615)},
		{name: "json float", in: json.Number("1e3"), want: FromFloat(1000)},
		{name: "sorted map", in: map[string]any{"b": true, "a": "x"}, want: FromKeyVals([]KeyVal{
			{Key: "a", Val: FromString("x")},
			{Key: "b", Val: FromBool(true)},
		})},
		{name: "typed slice", in: []string{"p", "q"}, want: FromSlice([]*Node{FromString("p"), FromString("q")})},
		{name: "int keyed map", in: map[int]int{2: 20, 1: 10}, want: FromKeyVals([]KeyVal{
			{Key: "1", Val: FromInt(10)},
			{Key: "2", Val: FromInt(20)},
		})},
		{name: "struct", in: point{1, 2}, want: FromUnsupported("ir.point", []byte("{1 2}"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, FromAny(tt.in)); diff != "" {
				t.Error(diff)
			}
		})
	}
}

func TestToAny(t *testing.T) {
	got := ToAny(sample())
	want := map[string]any{
		"a": []any{int64(1), int64(2), int64(3)},
		"b": "hello",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Error(diff)
	}
	if diff := cmp.Diff(sample().Values[0], FromAny(got.(map[string]any)["a"])); diff != "" {
		t.Error(diff)
	}
}
