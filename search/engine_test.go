package search

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/signadot/vtree/ir"
	"github.com/signadot/vtree/ir/addr"
)

func ints(vs ...int64) *ir.Node {
	res := make([]*ir.Node, len(vs))
	for i, v := range vs {
		res[i] = ir.FromInt(v)
	}
	return ir.FromSlice(res)
}

func sample() *ir.Node {
	return ir.FromKeyVals([]ir.KeyVal{
		{Key: "a", Val: ints(1, 2, 3)},
		{Key: "b", Val: ir.FromString("hello")},
	})
}

func nested() *ir.Node {
	return ir.FromKeyVals([]ir.KeyVal{
		{Key: "users", Val: ir.FromSlice([]*ir.Node{
			ir.FromKeyVals([]ir.KeyVal{
				{Key: "name", Val: ir.FromString("Ada")},
				{Key: "tags", Val: ir.FromSlice([]*ir.Node{ir.FromString("admin"), ir.FromString("Hello")})},
			}),
			ir.FromKeyVals([]ir.KeyVal{
				{Key: "name", Val: ir.FromString("Bob")},
				{Key: "age", Val: ir.FromUint(40)},
			}),
		})},
		{Key: "greeting", Val: ir.FromString("hello world")},
		{Key: "Name", Val: ir.Null()},
	})
}

func kpaths(as []addr.Address) []string {
	res := make([]string, len(as))
	for i := range as {
		res[i] = as[i].KPath()
	}
	return res
}

func run(t *testing.T, root *ir.Node, f Filter) []string {
	t.Helper()
	res, err := NewEngine().Search(context.Background(), root, f)
	if err != nil {
		t.Fatal(err)
	}
	return kpaths(res.Matches())
}

func TestSearch(t *testing.T) {
	tests := []struct {
		name   string
		root   *ir.Node
		filter Filter
		want   []string
	}{
		{
			name:   "wildcard value",
			root:   sample(),
			filter: Filter{Pattern: "h*o", Mode: Wildcard, Scope: ValueScope},
			want:   []string{"b"},
		},
		{
			name:   "wildcard is anchored",
			root:   nested(),
			filter: Filter{Pattern: "h?llo", Mode: Wildcard, Scope: ValueScope},
			want:   []string{"users[0].tags[1]"},
		},
		{
			name:   "wildcard case sensitive",
			root:   nested(),
			filter: Filter{Pattern: "h*", Mode: Wildcard, Scope: ValueScope, CaseSensitive: true},
			want:   []string{"greeting"},
		},
		{
			name:   "contains ignores case",
			root:   nested(),
			filter: Filter{Pattern: "HELLO", Mode: Contains, Scope: ValueScope},
			want:   []string{"users[0].tags[1]", "greeting"},
		},
		{
			name:   "fixed keys",
			root:   nested(),
			filter: Filter{Pattern: "name", Mode: FixedString, Scope: KeyScope},
			want:   []string{"users[0].name", "users[1].name", "Name"},
		},
		{
			name:   "fixed keys case sensitive",
			root:   nested(),
			filter: Filter{Pattern: "name", Mode: FixedString, Scope: KeyScope, CaseSensitive: true},
			want:   []string{"users[0].name", "users[1].name"},
		},
		{
			name:   "index labels",
			root:   sample(),
			filter: Filter{Pattern: "1", Mode: FixedString, Scope: KeyScope},
			want:   []string{"a[1]"},
		},
		{
			name:   "type names",
			root:   nested(),
			filter: Filter{Pattern: "UInt64", Mode: FixedString, Scope: TypeScope},
			want:   []string{"users[1].age"},
		},
		{
			name:   "root excluded",
			root:   sample(),
			filter: Filter{Pattern: "Map", Mode: FixedString, Scope: TypeScope},
			want:   nil,
		},
		{
			name:   "container value is its preview",
			root:   sample(),
			filter: Filter{Pattern: "List", Mode: Contains, Scope: ValueScope},
			want:   []string{"a"},
		},
		{
			name:   "container preview fixed",
			root:   sample(),
			filter: Filter{Pattern: "List[3]", Mode: FixedString, Scope: ValueScope},
			want:   []string{"a"},
		},
		{
			name:   "container preview folded",
			root:   sample(),
			filter: Filter{Pattern: "[1, 2, 3]", Mode: FixedString, Scope: ValueScope, PreviewDepth: 1},
			want:   []string{"a"},
		},
		{
			name:   "container preview under all scope",
			root:   nested(),
			filter: Filter{Pattern: "map{2}", Mode: FixedString},
			want:   []string{"users[0]", "users[1]"},
		},
		{
			name:   "regex anchored",
			root:   sample(),
			filter: Filter{Pattern: "hel", Mode: Regex, Scope: ValueScope},
			want:   nil,
		},
		{
			name:   "regex full",
			root:   sample(),
			filter: Filter{Pattern: "[0-9]|hel+o", Mode: Regex, Scope: ValueScope},
			want:   []string{"a[0]", "a[1]", "a[2]", "b"},
		},
		{
			name:   "regex metacharacters are literal in fixed mode",
			root:   ir.FromKeyVals([]ir.KeyVal{{Key: "k", Val: ir.FromString("a.*")}, {Key: "l", Val: ir.FromString("abc")}}),
			filter: Filter{Pattern: "a.*", Mode: FixedString, Scope: ValueScope},
			want:   []string{"k"},
		},
		{
			name:   "all scope any field",
			root:   sample(),
			filter: Filter{Pattern: "b", Mode: Contains},
			want:   []string{"b"},
		},
		{
			name:   "max depth",
			root:   nested(),
			filter: Filter{Pattern: "*", Mode: Wildcard, Scope: KeyScope, MaxDepth: Depth(2)},
			want:   []string{"users", "users[0]", "users[1]", "greeting", "Name"},
		},
		{
			name:   "max depth 1",
			root:   nested(),
			filter: Filter{Pattern: "*", Mode: Wildcard, Scope: KeyScope, MaxDepth: Depth(1)},
			want:   []string{"users", "greeting", "Name"},
		},
		{
			name:   "max depth 0 matches nothing",
			root:   nested(),
			filter: Filter{Pattern: "admin", Mode: FixedString, MaxDepth: Depth(0)},
			want:   nil,
		},
		{
			name:   "nil max depth is unbounded",
			root:   nested(),
			filter: Filter{Pattern: "admin", Mode: FixedString},
			want:   []string{"users[0].tags[0]"},
		},
		{
			name:   "parents before children",
			root:   nested(),
			filter: Filter{Pattern: "*", Mode: Wildcard, Scope: KeyScope},
			want: []string{
				"users", "users[0]", "users[0].name", "users[0].tags", "users[0].tags[0]", "users[0].tags[1]",
				"users[1]", "users[1].name", "users[1].age", "greeting", "Name",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := run(t, tt.root, tt.filter)
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Error(diff)
			}
		})
	}
}

func TestContainsSupersetOfFixed(t *testing.T) {
	root := nested()
	for _, p := range []string{"hello", "Hello", "name", "0", "Ada", "String", "", "admin"} {
		for _, cs := range []bool{true, false} {
			fixed := run(t, root, Filter{Pattern: p, Mode: FixedString, CaseSensitive: cs})
			contains := run(t, root, Filter{Pattern: p, Mode: Contains, CaseSensitive: cs})
			set := map[string]bool{}
			for _, c := range contains {
				set[c] = true
			}
			for _, f := range fixed {
				if !set[f] {
					t.Errorf("%q cs=%t: fixed match %s missing from contains", p, cs, f)
				}
			}
		}
	}
}

func TestInvalidPattern(t *testing.T) {
	_, err := NewEngine().Search(context.Background(), sample(), Filter{Pattern: "(", Mode: Regex})
	if !errors.Is(err, ErrInvalidPattern) {
		t.Fatalf("expected ErrInvalidPattern, got %v", err)
	}
	for _, f := range []Filter{{Mode: Mode(9)}, {MaxDepth: Depth(-1)}, {PreviewDepth: -1}} {
		_, err = NewEngine().Search(context.Background(), sample(), f)
		if !errors.Is(err, ErrInvalidFilter) {
			t.Fatalf("%s: expected ErrInvalidFilter, got %v", f, err)
		}
	}
}

func TestSearchIsRepeatable(t *testing.T) {
	e := NewEngine()
	f := Filter{Pattern: "*l*", Mode: Wildcard}
	root := nested()
	first, err := e.Search(context.Background(), root, f)
	if err != nil {
		t.Fatal(err)
	}
	second, err := e.Search(context.Background(), root, f)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Error(diff)
	}
	if e.cache.Len() != 1 {
		t.Errorf("cache holds %d matchers", e.cache.Len())
	}
}

func TestSearchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewEngine(CacheSize(0)).Search(ctx, nested(), Filter{Pattern: "x"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestFilteredView(t *testing.T) {
	res, err := NewEngine().Search(context.Background(), nested(), Filter{Pattern: "hello", Mode: FixedString, Scope: ValueScope})
	if err != nil {
		t.Fatal(err)
	}
	v := res.Filtered()
	want := []string{"users", "users[0]", "users[0].tags", "users[0].tags[1]"}
	if diff := cmp.Diff(want, kpaths(v.Addresses())); diff != "" {
		t.Error(diff)
	}
	if diff := cmp.Diff(want[:3], kpaths(v.Ancestors())); diff != "" {
		t.Error(diff)
	}
	for _, kp := range []string{"", "users", "users[0].tags[1]"} {
		if !v.Visible(addr.MustParse(kp)) {
			t.Errorf("%q should be visible", kp)
		}
	}
	for _, kp := range []string{"greeting", "users[1]", "users[0].name", "users[0].tags[0]"} {
		if v.Visible(addr.MustParse(kp)) {
			t.Errorf("%q should be hidden", kp)
		}
	}
	if s, ok := v.IsMatch(addr.MustParse("users[0].tags[1]")); !ok || s != ValueScope {
		t.Errorf("match fields %v %v", s, ok)
	}
	if _, ok := v.IsMatch(addr.MustParse("users")); ok {
		t.Error("ancestor is not a match")
	}
}

func TestParseModeScope(t *testing.T) {
	for _, m := range []Mode{Contains, Wildcard, Regex, FixedString} {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Errorf("%s: %v %v", m, got, err)
		}
	}
	s, err := ParseScope("key, type")
	if err != nil || s != KeyScope|TypeScope {
		t.Errorf("scope %v %v", s, err)
	}
	if s.String() != "key,type" {
		t.Errorf("scope string %q", s)
	}
	if _, err := ParseScope("colour"); !errors.Is(err, ErrInvalidFilter) {
		t.Errorf("bad scope: %v", err)
	}
	if AllScope.String() != "all" {
		t.Errorf("all scope %q", AllScope)
	}
}
