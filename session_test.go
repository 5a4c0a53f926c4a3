package vtree

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/vtree/edit"
	"github.com/signadot/vtree/format"
	"github.com/signadot/vtree/ir"
	"github.com/signadot/vtree/ir/addr"
	"github.com/signadot/vtree/libdiff"
	"github.com/signadot/vtree/search"
	"github.com/signadot/vtree/tree"
	"github.com/stretchr/testify/require"
)

func sampleRoot() *ir.Node {
	return ir.FromKeyVals([]ir.KeyVal{
		{Key: "a", Val: ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromInt(2), ir.FromInt(3)})},
		{Key: "b", Val: ir.FromString("hello")},
	})
}

var (
	atA  = addr.New(addr.Key("a"))
	atB  = addr.New(addr.Key("b"))
	atA1 = atA.Index(1)
)

func TestAppendScenario(t *testing.T) {
	s := Load(sampleRoot())
	n, err := s.RowCount(atA)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	_, err = s.Mutate(edit.InsertInto{At: atA, Value: ir.FromInt(4)})
	require.NoError(t, err)

	got, err := s.Resolve(atA.Index(3))
	require.NoError(t, err)
	require.True(t, ir.Equal(got, ir.FromInt(4)))
	n, err = s.RowCount(atA)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.True(t, s.IsDirty())
}

func TestWildcardScenario(t *testing.T) {
	s := Load(sampleRoot())
	res, err := s.Search(context.Background(), search.Filter{Pattern: "h*o", Mode: search.Wildcard, Scope: search.ValueScope})
	require.NoError(t, err)
	require.Equal(t, []addr.Address{atB}, res.Matches())
	require.Same(t, res, s.LastResult())
	require.False(t, s.IsDirty())
}

func TestRemoveScenario(t *testing.T) {
	s := Load(sampleRoot())
	// materialize the row being removed first
	_, err := s.RowAt(atA, 2)
	require.NoError(t, err)

	_, err = s.Mutate(edit.Remove{At: atA1})
	require.NoError(t, err)

	got, err := s.Resolve(atA1)
	require.NoError(t, err)
	require.True(t, ir.Equal(got, ir.FromInt(3)))
	n, err := s.RowCount(atA)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	_, err = s.RowAt(atA, 2)
	require.ErrorIs(t, err, ir.ErrNotFound)
	row, err := s.RowAt(atA, 1)
	require.NoError(t, err)
	require.Equal(t, "3", row.Preview)
}

func TestFailedMutationIsClean(t *testing.T) {
	s := Load(sampleRoot())
	before, err := s.Children(addr.Root)
	require.NoError(t, err)

	_, err = s.Mutate(edit.SetKey{At: atA, Key: "b"})
	require.ErrorIs(t, err, ir.ErrKeyConflict)
	_, err = s.Mutate(edit.Remove{At: addr.Root})
	require.ErrorIs(t, err, ir.ErrInvalidOperation)

	require.False(t, s.IsDirty())
	require.True(t, ir.Equal(sampleRoot(), s.SnapshotRoot()))
	after, err := s.Children(addr.Root)
	require.NoError(t, err)
	if diff := cmp.Diff(before, after); diff != "" {
		t.Error(diff)
	}
}

func TestApplyStops(t *testing.T) {
	s := Load(sampleRoot())
	changes, err := s.Apply(
		edit.SetValue{At: atB, Value: ir.FromString("bye")},
		edit.Remove{At: addr.New(addr.Key("zz"))},
		edit.Remove{At: atB},
	)
	require.ErrorIs(t, err, ir.ErrNotFound)
	require.Len(t, changes, 1)
	got, err := s.Resolve(atB)
	require.NoError(t, err)
	require.Equal(t, "bye", got.String)
}

func TestSelfRenameIsClean(t *testing.T) {
	s := Load(sampleRoot())
	_, err := s.Row(atB)
	require.NoError(t, err)
	c, err := s.Mutate(edit.SetKey{At: atB, Key: "b"})
	require.NoError(t, err)
	require.True(t, c.Unchanged)
	require.False(t, s.IsDirty())
	require.Empty(t, s.Changes())

	c, err = s.Mutate(edit.SetKey{At: atB, Key: "c"})
	require.NoError(t, err)
	require.False(t, c.Unchanged)
	require.True(t, s.IsDirty())
}

func TestSearchContainerPreviews(t *testing.T) {
	f := search.Filter{Pattern: "[1, 2, 3]", Mode: search.FixedString, Scope: search.ValueScope}
	res, err := Load(sampleRoot()).Search(context.Background(), f)
	require.NoError(t, err)
	require.Empty(t, res.Hits)

	res, err = Load(sampleRoot(), TreeOptions(tree.PreviewDepth(1))).Search(context.Background(), f)
	require.NoError(t, err)
	require.Equal(t, []addr.Address{atA}, res.Matches())
}

func TestResolveIsACopy(t *testing.T) {
	s := Load(sampleRoot())
	got, err := s.Resolve(atA)
	require.NoError(t, err)
	got.Values[0].Int64 = 100
	again, err := s.Resolve(atA.Index(0))
	require.NoError(t, err)
	require.Equal(t, int64(1), again.Int64)
	require.False(t, s.IsDirty())
}

func TestFilterFollowsMutations(t *testing.T) {
	s := Load(sampleRoot(), TreeOptions(tree.MaxDepth(4)))
	f := search.Filter{Pattern: "hello", Mode: search.FixedString, Scope: search.ValueScope}
	require.NoError(t, s.SetFilter(context.Background(), f))

	rows, err := s.Expand(addr.Root, -1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "b", rows[0].Label)

	_, err = s.Mutate(edit.InsertInto{At: atA, Value: ir.FromString("hello")})
	require.NoError(t, err)
	rows, err = s.Expand(addr.Root, -1)
	require.NoError(t, err)
	var kps []string
	for _, r := range rows {
		kps = append(kps, r.Address.KPath())
	}
	require.Equal(t, []string{"a", "a[3]", "b"}, kps)

	got, err := s.Filter()
	require.NoError(t, err)
	require.Equal(t, f, got)
	s.ClearFilter()
	_, err = s.Filter()
	require.ErrorIs(t, err, ErrNoFilter)
	n, err := s.RowCount(atA)
	require.NoError(t, err)
	require.Equal(t, 4, n)
}

func TestFailedSearchKeepsLastResult(t *testing.T) {
	s := Load(sampleRoot())
	ctx := context.Background()
	first, err := s.Search(ctx, search.Filter{Pattern: "a"})
	require.NoError(t, err)
	_, err = s.Search(ctx, search.Filter{Pattern: "(", Mode: search.Regex})
	require.ErrorIs(t, err, search.ErrInvalidPattern)
	require.Same(t, first, s.LastResult())
	require.Error(t, s.SetFilter(ctx, search.Filter{Pattern: "[", Mode: search.Regex}))
	_, err = s.Filter()
	require.ErrorIs(t, err, ErrNoFilter)
}

func TestInitialFilter(t *testing.T) {
	s := Load(sampleRoot(), WithFilter(search.Filter{Pattern: "b", Mode: search.FixedString, Scope: search.KeyScope}))
	n, err := s.RowCount(addr.Root)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	s = Load(sampleRoot(), WithFilter(search.Filter{Pattern: "(", Mode: search.Regex}))
	n, err = s.RowCount(addr.Root)
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestChangesAndSave(t *testing.T) {
	s := Load(sampleRoot())
	require.Empty(t, s.Changes())
	_, err := s.Apply(
		edit.SetValue{At: atB, Value: ir.FromString("help")},
		edit.Remove{At: atA.Index(0)},
	)
	require.NoError(t, err)
	var got []string
	for _, e := range s.Changes() {
		got = append(got, e.Kind.String()+" "+e.At.KPath())
	}
	require.Equal(t, []string{"delete a[0]", "replace b"}, got)
	p, err := s.MergePatch()
	require.NoError(t, err)
	require.JSONEq(t, `{"a": [2, 3], "b": "help"}`, string(p))

	buf := bytes.NewBuffer(nil)
	require.NoError(t, s.Save(buf, NewCodec(format.JSONFormat)))
	require.False(t, s.IsDirty())
	require.Empty(t, s.Changes())

	s2, err := Open(buf.Bytes(), NewCodec(format.JSONFormat))
	require.NoError(t, err)
	require.Empty(t, libdiff.Diff(s.SnapshotRoot(), s2.SnapshotRoot()))
}

func TestOpenErrors(t *testing.T) {
	_, err := Open([]byte("{"), NewCodec(format.JSONFormat))
	require.Error(t, err)
	_, err = CodecFor("x.txt")
	require.ErrorIs(t, err, format.ErrBadFormat)
	c, err := CodecFor("x.yml")
	require.NoError(t, err)
	s, err := Open([]byte("k: [1, 2]\n"), c)
	require.NoError(t, err)
	n, err := s.RowCount(addr.MustParse("k"))
	require.NoError(t, err)
	require.Equal(t, 2, n)
	if !errors.Is(s.Save(bytes.NewBuffer(nil), NewCodec(format.Format(8))), format.ErrBadFormat) {
		t.Error("expected ErrBadFormat")
	}
}

func TestNilRoot(t *testing.T) {
	s := Load(nil)
	row, err := s.Row(addr.Root)
	require.NoError(t, err)
	require.Equal(t, ir.NullType, row.Type)
}
