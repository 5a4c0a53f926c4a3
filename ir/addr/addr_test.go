package addr

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Address
		wantErr bool
	}{
		{name: "empty path", input: "", want: Root},
		{name: "dollar root", input: "$", want: Root},
		{name: "simple key", input: "a", want: New(Key("a"))},
		{name: "dollar prefix", input: "$.a", want: New(Key("a"))},
		{name: "nested keys", input: "a.b.c", want: New(Key("a"), Key("b"), Key("c"))},
		{name: "index after key", input: "a[0]", want: New(Key("a"), Index(0))},
		{name: "leading index", input: "[2].name", want: New(Index(2), Key("name"))},
		{name: "adjacent indices", input: "[1][12]", want: New(Index(1), Index(12))},
		{name: "quoted key", input: `a."x.y"[3]`, want: New(Key("a"), Key("x.y"), Index(3))},
		{name: "quoted escapes", input: `"a\"b"`, want: New(Key(`a"b`))},
		{name: "digit key", input: "0", want: New(Key("0"))},
		{name: "unterminated index", input: "a[1", wantErr: true},
		{name: "negative index", input: "a[-1]", wantErr: true},
		{name: "empty index", input: "a[]", wantErr: true},
		{name: "empty key", input: "a..b", wantErr: true},
		{name: "trailing dot", input: "a.", wantErr: true},
		{name: "unterminated quote", input: `"abc`, wantErr: true},
		{name: "junk after index", input: "[0]x", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				if !errors.Is(err, ErrSyntax) {
					t.Errorf("expected ErrSyntax, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("%s", cmp.Diff(tt.want, got))
			}
		})
	}
}

func TestKPathRoundTrip(t *testing.T) {
	addrs := []Address{
		Root,
		New(Key("a")),
		New(Index(0)),
		New(Index(3), Key("name"), Index(1)),
		New(Key("with space"), Key("dot.ted"), Key(""), Key("$")),
		New(Key(`q"uote`), Key("[br]")),
	}
	for _, a := range addrs {
		kp := a.KPath()
		got, err := Parse(kp)
		if err != nil {
			t.Errorf("parse %q: %v", kp, err)
			continue
		}
		if !got.Equal(a) {
			t.Errorf("round trip %q: %s", kp, cmp.Diff(a, got))
		}
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		a    Address
		want string
	}{
		{Root, "<Root>"},
		{New(Index(2), Key("name")), `<Root> > 2 > "name"`},
		{New(Key("a b")), `<Root> > "a b"`},
	}
	for _, tt := range tests {
		if got := tt.a.String(); got != tt.want {
			t.Errorf("got %q want %q", got, tt.want)
		}
	}
	if got := New(Index(2), Key("name")).KPath(); got != "[2].name" {
		t.Errorf("kpath got %q", got)
	}
}

func TestAncestry(t *testing.T) {
	a := New(Key("a"), Index(1))
	b := a.Key("c")
	if !a.IsAncestorOf(b) {
		t.Error("a should be an ancestor of b")
	}
	if a.IsAncestorOf(a) {
		t.Error("ancestry must be strict")
	}
	if !Root.IsAncestorOf(a) {
		t.Error("root is an ancestor of everything else")
	}
	if b.IsAncestorOf(a) {
		t.Error("b is not an ancestor of a")
	}
	if !b.HasPrefix(a) || !a.HasPrefix(a) {
		t.Error("HasPrefix")
	}
	if New(Key("a"), Key("1")).IsAncestorOf(b) {
		t.Error("index and key tokens must differ")
	}

	p, ok := b.Parent()
	if !ok || !p.Equal(a) {
		t.Errorf("parent: %v %v", p, ok)
	}
	if _, ok := Root.Parent(); ok {
		t.Error("root has no parent")
	}
	last, ok := b.Last()
	if !ok || last != Key("c") {
		t.Errorf("last: %v", last)
	}
	want := []Address{Root, New(Key("a")), a}
	got := b.Ancestors()
	if len(got) != len(want) {
		t.Fatalf("ancestors: %v", got)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("ancestor %d: got %v want %v", i, got[i], want[i])
		}
	}
}

func TestChildDoesNotAlias(t *testing.T) {
	base := make(Address, 1, 4)
	base[0] = Key("a")
	x := base.Index(0)
	y := base.Index(1)
	if x.Equal(y) {
		t.Fatalf("siblings alias: %v %v", x, y)
	}
}
