package ir

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestIRJSONRoundTrip(t *testing.T) {
	root := FromKeyVals([]KeyVal{
		{Key: "null", Val: Null()},
		{Key: "bool", Val: FromBool(false)},
		{Key: "int", Val: FromInt(-1)},
		{Key: "uint", Val: FromUint(math.MaxUint64)},
		{Key: "float", Val: FromFloat(1)},
		{Key: "nan", Val: FromFloat(math.Inf(-1))},
		{Key: "string", Val: FromString("")},
		{Key: "bytes", Val: FromBytes([]byte("raw"))},
		{Key: "empty bytes", Val: FromBytes(nil)},
		{Key: "time", Val: FromTime(time.Date(1999, 12, 31, 23, 59, 59, 0, time.UTC))},
		{Key: "list", Val: FromSlice([]*Node{ints(), ints(1)})},
		{Key: "map", Val: FromKeyVals([]KeyVal{{Key: "z", Val: Null()}, {Key: "a", Val: Null()}})},
		{Key: "opaque", Val: FromUnsupported("QColor", []byte{0xff, 0, 0})},
	})
	d, err := ToJSON(root)
	require.NoError(t, err)
	got, err := FromJSON(d)
	require.NoError(t, err)
	require.True(t, Equal(root, got), "round trip differs: %s", d)
}

func TestIRJSONUnknownType(t *testing.T) {
	in := `{"type": "Matrix", "rows": [[1, 0], [0, 1]]}`
	n, err := FromJSON([]byte(in))
	require.NoError(t, err)
	require.Equal(t, UnsupportedType, n.Type)
	require.Equal(t, "Matrix", n.Opaque.TypeName)

	out, err := ToJSON(n)
	require.NoError(t, err)
	if diff := cmp.Diff(`{"type":"Matrix","rows":[[1,0],[0,1]]}`, string(out)); diff != "" {
		t.Error(diff)
	}
}

func TestIRJSONErrors(t *testing.T) {
	for _, in := range []string{
		`{"type": "Map", "fields": ["a"], "values": []}`,
		`{"type": "Map", "fields": ["a", "a"], "values": [{"type": "Null"}, {"type": "Null"}]}`,
		`{"type": "List", "values": [null]}`,
		`{"type": "Float64", "float": "many"}`,
	} {
		_, err := FromJSON([]byte(in))
		require.Error(t, err, in)
	}
}
