package encode

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/lexer"
	"github.com/goccy/go-yaml/printer"
	"github.com/signadot/vtree/ir"
	"github.com/signadot/vtree/parse"
)

// yamlFloat keeps integral floats and the IEEE special values intact.
type yamlFloat float64

func (f yamlFloat) MarshalYAML() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return []byte(".nan"), nil
	case math.IsInf(v, 1):
		return []byte(".inf"), nil
	case math.IsInf(v, -1):
		return []byte("-.inf"), nil
	}
	return []byte(formatFloat(v)), nil
}

func encodeYAML(node *ir.Node, w io.Writer, es *EncState) error {
	v, err := toYAML(node)
	if err != nil {
		return err
	}
	yOpts := []yaml.EncodeOption{yaml.Indent(es.indent)}
	if es.wire {
		yOpts = append(yOpts, yaml.Flow(true))
	}
	d, err := yaml.MarshalWithOptions(v, yOpts...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	if es.colors == nil {
		_, err = w.Write(d)
		return err
	}
	return writeString(w, colorYAML(string(d), es.colors)+"\n")
}

func toYAML(node *ir.Node) (any, error) {
	switch node.Type {
	case ir.NullType:
		return nil, nil
	case ir.BoolType:
		return node.Bool, nil
	case ir.IntType:
		return node.Int64, nil
	case ir.UintType:
		return node.Uint64, nil
	case ir.FloatType:
		return yamlFloat(node.Float64), nil
	case ir.StringType:
		return node.String, nil
	case ir.BytesType:
		return base64.StdEncoding.EncodeToString(node.Bytes), nil
	case ir.TimeType:
		return node.Time.Format(time.RFC3339Nano), nil
	case ir.ListType:
		res := make([]any, len(node.Values))
		for i, v := range node.Values {
			y, err := toYAML(v)
			if err != nil {
				return nil, err
			}
			res[i] = y
		}
		return res, nil
	case ir.MapType:
		res := make(yaml.MapSlice, len(node.Values))
		for i, v := range node.Values {
			y, err := toYAML(v)
			if err != nil {
				return nil, err
			}
			res[i] = yaml.MapItem{Key: node.Fields[i], Value: y}
		}
		return res, nil
	case ir.UnsupportedType:
		if node.Opaque != nil && json.Valid(node.Opaque.Data) {
			raw, err := parse.Parse(node.Opaque.Data, parse.ParseJSON())
			if err == nil {
				return toYAML(raw)
			}
		}
		return nil, fmt.Errorf("%w: unsupported value %s", ErrEncoding, ir.Text(node))
	}
	return nil, fmt.Errorf("%w: unknown type %d", ErrEncoding, node.Type)
}

func colorYAML(src string, c *Colors) string {
	prop := func(t ir.Type, a ColorAttr) printer.PrintFunc {
		pre, suf := c.affixes(t, a)
		return func() *printer.Property {
			return &printer.Property{Prefix: pre, Suffix: suf}
		}
	}
	p := printer.Printer{
		MapKey: prop(ir.MapType, FieldColor),
		Bool:   prop(ir.BoolType, ValueColor),
		String: prop(ir.StringType, ValueColor),
		Number: prop(ir.FloatType, ValueColor),
	}
	return p.PrintTokens(lexer.Tokenize(src))
}
