package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/signadot/vtree"
	"github.com/signadot/vtree/edit"
	"github.com/signadot/vtree/format"
	"github.com/signadot/vtree/ir"
	"github.com/signadot/vtree/ir/addr"
	"github.com/signadot/vtree/parse"

	"github.com/gofrs/flock"
)

func TestParseValue(t *testing.T) {
	cases := []struct {
		in   string
		want ir.Type
	}{
		{"1", ir.IntType},
		{"1.5", ir.FloatType},
		{"true", ir.BoolType},
		{"null", ir.NullType},
		{`"quoted"`, ir.StringType},
		{"plain text", ir.StringType},
		{`{"a": [1]}`, ir.MapType},
		{"[1, 2", ir.StringType},
	}
	for _, c := range cases {
		if got := parseValue(c.in).Type; got != c.want {
			t.Errorf("parseValue(%q): got %s want %s", c.in, got, c.want)
		}
	}
	if got := parseValue("plain text").String; got != "plain text" {
		t.Errorf("got %q", got)
	}
}

func treeRoot() *ir.Node {
	return ir.FromKeyVals([]ir.KeyVal{
		{Key: "a", Val: ir.FromKeyVals([]ir.KeyVal{{Key: "b", Val: ir.FromInt(1)}})},
		{Key: "c", Val: ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromInt(2)})},
	})
}

func TestPrintTree(t *testing.T) {
	s := vtree.Load(treeRoot())
	buf := bytes.NewBuffer(nil)
	if err := printTree(buf, s, addr.Root, -1, newPainter(nil), nil); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected 6 lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[1], "    a: ") || !strings.HasSuffix(lines[1], "<Map>") {
		t.Errorf("unexpected row %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "      b: 1") {
		t.Errorf("unexpected row %q", lines[2])
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("escape sequences without colors")
	}
}

func TestPrintTreeFolded(t *testing.T) {
	s := vtree.Load(treeRoot())
	buf := bytes.NewBuffer(nil)
	if err := printTree(buf, s, addr.Root, 1, newPainter(nil), nil); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), buf.String())
	}
	for _, line := range lines[1:] {
		if !strings.HasPrefix(line, "  + ") {
			t.Errorf("expected folded row, got %q", line)
		}
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	if err := os.WriteFile(path, []byte(`{"a": 1}`), 0600); err != nil {
		t.Fatal(err)
	}
	s := vtree.Load(ir.FromKeyVals([]ir.KeyVal{{Key: "a", Val: ir.FromInt(1)}}))
	if _, err := s.Mutate(edit.SetValue{At: addr.New(addr.Key("a")), Value: ir.FromInt(2)}); err != nil {
		t.Fatal(err)
	}
	if err := save(path, s, vtree.NewCodec(format.JSONFormat)); err != nil {
		t.Fatal(err)
	}
	if s.IsDirty() {
		t.Errorf("still dirty after save")
	}
	d, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	got, err := parse.Parse(d)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(got, s.SnapshotRoot()) {
		t.Errorf("saved %s", d)
	}
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if fi.Mode().Perm() != 0600 {
		t.Errorf("mode changed to %v", fi.Mode().Perm())
	}
}

func TestSaveLocked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil || !ok {
		t.Fatalf("could not take lock: %v", err)
	}
	defer lock.Unlock()
	s := vtree.Load(ir.FromInt(1))
	if err := save(path, s, vtree.NewCodec(format.JSONFormat)); err == nil {
		t.Fatal("expected a lock error")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file written while locked")
	}
}
