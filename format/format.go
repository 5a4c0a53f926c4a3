// Package format names the serialization formats of dynamic values.
package format

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

type Format int

const (
	JSONFormat Format = iota
	YAMLFormat
	// IRFormat is the JSON encoding of the IR itself, which preserves every
	// value type.
	IRFormat
)

var ErrBadFormat = errors.New("bad format")

type info struct {
	name    string
	aliases []string
	suffix  string
}

// indexed by Format, in preference order.
var infos = []info{
	JSONFormat: {name: "json", aliases: []string{"j"}, suffix: ".json"},
	YAMLFormat: {name: "yaml", aliases: []string{"y", "yml"}, suffix: ".yaml"},
	IRFormat:   {name: "ir", aliases: []string{"i"}, suffix: ".ir.json"},
}

func (f Format) info() (info, bool) {
	if f < 0 || int(f) >= len(infos) {
		return info{}, false
	}
	return infos[f], true
}

// ParseFormat accepts a format name or one of its short aliases, in any case.
func ParseFormat(v string) (Format, error) {
	lv := strings.ToLower(v)
	for i, in := range infos {
		if in.name == lv {
			return Format(i), nil
		}
		for _, a := range in.aliases {
			if a == lv {
				return Format(i), nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

// FromPath guesses the format of a file from its extension.
func FromPath(p string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(p), ".")
	if ext == "" {
		return 0, fmt.Errorf("%w: no extension in %q", ErrBadFormat, p)
	}
	if strings.HasSuffix(strings.ToLower(p), IRFormat.Suffix()) {
		return IRFormat, nil
	}
	return ParseFormat(ext)
}

func (f Format) String() string {
	in, ok := f.info()
	if !ok {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return in.name
}

func (f Format) MarshalText() ([]byte, error) {
	in, ok := f.info()
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrBadFormat, int(f))
	}
	return []byte(in.name), nil
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

func (f Format) IsJSON() bool { return f == JSONFormat }
func (f Format) IsYAML() bool { return f == YAMLFormat }
func (f Format) IsIR() bool   { return f == IRFormat }

// Suffix is the file extension written for f, dot included.
func (f Format) Suffix() string {
	in, _ := f.info()
	return in.suffix
}

func AllFormats() []Format {
	res := make([]Format, len(infos))
	for i := range infos {
		res[i] = Format(i)
	}
	return res
}
