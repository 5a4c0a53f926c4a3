package encode

import (
	"strings"

	"github.com/fatih/color"
	"github.com/signadot/vtree/ir"
)

// Colorable selects a color by value type and the part of the output being
// written.
type Colorable struct {
	Type ir.Type
	Attr ColorAttr
}

type ColorAttr int

const (
	FieldColor ColorAttr = iota
	ValueColor
	SepColor
	TypeColor
	MatchColor
)

// Colors maps a Colorable to a printf style function. Missing entries use
// Default.
type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

type paint struct {
	attr  ColorAttr
	types []ir.Type // nil for all types
	c     *color.Color
}

// later entries win.
var palette = []paint{
	{attr: SepColor, c: color.RGB(255, 0, 196)},
	{attr: TypeColor, c: color.RGB(74, 92, 138)},
	{attr: MatchColor, c: color.New(color.Bold, color.FgHiYellow)},
	{attr: FieldColor, c: color.RGB(196, 96, 16)},
	{attr: ValueColor, types: []ir.Type{ir.IntType, ir.UintType, ir.FloatType}, c: color.RGB(128, 216, 236)},
	{attr: ValueColor, types: []ir.Type{ir.NullType}, c: color.RGB(168, 0, 196)},
	{attr: ValueColor, types: []ir.Type{ir.BoolType}, c: color.New(color.FgCyan)},
	{attr: ValueColor, types: []ir.Type{ir.StringType}, c: color.RGB(8, 196, 16)},
	{attr: ValueColor, types: []ir.Type{ir.BytesType}, c: color.RGB(198, 198, 46)},
	{attr: ValueColor, types: []ir.Type{ir.TimeType}, c: color.RGB(88, 158, 86)},
	{attr: ValueColor, types: []ir.Type{ir.UnsupportedType}, c: color.RGB(96, 96, 96)},
	{attr: FieldColor, types: []ir.Type{ir.MapType}, c: color.RGB(128, 168, 196)},
	{attr: SepColor, types: []ir.Type{ir.MapType}, c: color.RGB(196, 128, 128)},
}

func NewColors() *Colors {
	res := &Colors{
		Default: plain,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	for _, p := range palette {
		types := p.types
		if types == nil {
			types = ir.Types()
		}
		f := literal(p.c.SprintfFunc())
		for _, t := range types {
			res.Map[Colorable{Type: t, Attr: p.attr}] = f
		}
	}
	return res
}

// literal keeps % in the colored text from being read as a verb.
func literal(f func(string, ...any) string) func(string, ...any) string {
	return func(v string, _ ...any) string {
		return f(strings.ReplaceAll(v, "%", "%%"))
	}
}

func plain(v string, _ ...any) string { return v }

func (c *Colors) Color(t ir.Type, a ColorAttr, s string) string {
	return c.Get(t, a)(s)
}

func (c *Colors) Get(t ir.Type, a ColorAttr) func(string, ...any) string {
	if f, ok := c.Map[Colorable{Type: t, Attr: a}]; ok {
		return f
	}
	return c.Default
}

// affixes returns the escape sequences surrounding text colored as (t, a).
func (c *Colors) affixes(t ir.Type, a ColorAttr) (string, string) {
	pre, suf, _ := strings.Cut(c.Color(t, a, "\x00"), "\x00")
	return pre, suf
}
