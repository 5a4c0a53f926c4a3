package format

import (
	"errors"
	"testing"
)

func TestFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{path: "a.json", want: JSONFormat},
		{path: "dir/a.YAML", want: YAMLFormat},
		{path: "a.yml", want: YAMLFormat},
		{path: "a.ir.json", want: IRFormat},
		{path: "Makefile", wantErr: true},
		{path: "a.toml", wantErr: true},
	}
	for _, tt := range tests {
		got, err := FromPath(tt.path)
		if tt.wantErr {
			if !errors.Is(err, ErrBadFormat) {
				t.Errorf("%s: expected ErrBadFormat, got %v %v", tt.path, got, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("%s: got %v %v", tt.path, got, err)
		}
	}
}

func TestTextRoundTrip(t *testing.T) {
	for _, f := range AllFormats() {
		var g Format
		d, err := f.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		if err := g.UnmarshalText(d); err != nil || g != f {
			t.Errorf("%s: got %v %v", f, g, err)
		}
	}
}
