package search

import (
	"fmt"
	"strconv"
	"strings"
)

type Mode int

const (
	Contains Mode = iota
	Wildcard
	Regex
	FixedString
)

var modeNames = map[Mode]string{
	Contains:    "contains",
	Wildcard:    "wildcard",
	Regex:       "regex",
	FixedString: "fixed",
}

var modeAliases = map[string]Mode{
	"contains":    Contains,
	"substring":   Contains,
	"wildcard":    Wildcard,
	"glob":        Wildcard,
	"regex":       Regex,
	"regexp":      Regex,
	"fixed":       FixedString,
	"fixedstring": FixedString,
	"exact":       FixedString,
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return "<unknown mode>"
}

func ParseMode(s string) (Mode, error) {
	m, ok := modeAliases[strings.ToLower(s)]
	if !ok {
		return Contains, fmt.Errorf("%w: unknown mode %q", ErrInvalidFilter, s)
	}
	return m, nil
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(d []byte) error {
	mm, err := ParseMode(string(d))
	if err != nil {
		return err
	}
	*m = mm
	return nil
}

// Scope is the set of node fields a filter is evaluated against.
type Scope uint8

const (
	// KeyScope is the key or index label.
	KeyScope Scope = 1 << iota
	// ValueScope is the text of the value.
	ValueScope
	// TypeScope is the type name.
	TypeScope

	AllScope = KeyScope | ValueScope | TypeScope
)

var scopeNames = []struct {
	s    Scope
	name string
}{
	{KeyScope, "key"},
	{ValueScope, "value"},
	{TypeScope, "type"},
}

func (s Scope) String() string {
	if s == AllScope {
		return "all"
	}
	var parts []string
	for _, sn := range scopeNames {
		if s&sn.s != 0 {
			parts = append(parts, sn.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ",")
}

// ParseScope parses a comma separated list of key, index, value, type and
// all.
func ParseScope(str string) (Scope, error) {
	var res Scope
	for _, part := range strings.Split(str, ",") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "all":
			res |= AllScope
		case "key", "index", "keyindex":
			res |= KeyScope
		case "value":
			res |= ValueScope
		case "type":
			res |= TypeScope
		default:
			return 0, fmt.Errorf("%w: unknown scope %q", ErrInvalidFilter, part)
		}
	}
	return res, nil
}

func (s Scope) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Scope) UnmarshalText(d []byte) error {
	ss, err := ParseScope(string(d))
	if err != nil {
		return err
	}
	*s = ss
	return nil
}

// Filter describes one search pass. The zero Scope means AllScope and a nil
// MaxDepth means unbounded. The children of the root are at depth 1, so a
// MaxDepth of 0 matches nothing.
type Filter struct {
	Pattern       string `json:"pattern" yaml:"pattern"`
	Mode          Mode   `json:"mode" yaml:"mode"`
	Scope         Scope  `json:"scope" yaml:"scope"`
	CaseSensitive bool   `json:"caseSensitive" yaml:"caseSensitive"`
	MaxDepth      *int   `json:"maxDepth,omitempty" yaml:"maxDepth,omitempty"`
	// PreviewDepth is the folding depth of the value text of lists and
	// maps, as for ir.Preview.
	PreviewDepth  int    `json:"previewDepth,omitempty" yaml:"previewDepth,omitempty"`
}

// Depth returns d for use as a Filter's MaxDepth.
func Depth(d int) *int {
	return &d
}

// exceeds reports whether nodes at depth are too deep for f.
func (f Filter) exceeds(depth int) bool {
	return f.MaxDepth != nil && depth > *f.MaxDepth
}

func (f Filter) scope() Scope {
	if f.Scope == 0 {
		return AllScope
	}
	return f.Scope
}

func (f Filter) String() string {
	cs := "i"
	if f.CaseSensitive {
		cs = "c"
	}
	depth := "*"
	if f.MaxDepth != nil {
		depth = strconv.Itoa(*f.MaxDepth)
	}
	return fmt.Sprintf("%s/%s/%s/%s %q", f.Mode, f.scope(), cs, depth, f.Pattern)
}

func (f Filter) validate() error {
	if _, ok := modeNames[f.Mode]; !ok {
		return fmt.Errorf("%w: mode %d", ErrInvalidFilter, f.Mode)
	}
	if f.Scope&^AllScope != 0 {
		return fmt.Errorf("%w: scope %d", ErrInvalidFilter, f.Scope)
	}
	if f.MaxDepth != nil && *f.MaxDepth < 0 {
		return fmt.Errorf("%w: negative max depth %d", ErrInvalidFilter, *f.MaxDepth)
	}
	if f.PreviewDepth < 0 {
		return fmt.Errorf("%w: negative preview depth %d", ErrInvalidFilter, f.PreviewDepth)
	}
	return nil
}
