// Package encode writes dynamic values as JSON, YAML or IR.
package encode

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/signadot/vtree/debug"
	"github.com/signadot/vtree/format"
	"github.com/signadot/vtree/ir"
)

type EncState struct {
	col           int
	depth, indent int

	format format.Format
	wire   bool

	colors *Colors
}

func (es *EncState) color(t ir.Type, a ColorAttr, s string) string {
	if es.colors == nil {
		return s
	}
	return es.colors.Color(t, a, s)
}

func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 2,
	}
	for _, opt := range opts {
		opt(es)
	}
	var err error
	switch es.format {
	case format.JSONFormat:
		err = encodeJSON(node, w, es)
		if err == nil {
			err = writeString(w, "\n")
		}
	case format.YAMLFormat:
		err = encodeYAML(node, w, es)
	case format.IRFormat:
		err = encodeIR(node, w, es)
	default:
		return fmt.Errorf("%w: %d", format.ErrBadFormat, es.format)
	}
	if err != nil {
		return err
	}
	if debug.Codec() {
		debug.Logf("encode %s: %s\n", es.format, node.Type)
	}
	return nil
}

func encodeIR(node *ir.Node, w io.Writer, es *EncState) error {
	d, err := ir.ToJSON(node)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	if !es.wire {
		buf := bytes.NewBuffer(nil)
		if err := json.Indent(buf, d, "", strings.Repeat(" ", es.indent)); err != nil {
			return fmt.Errorf("%w: %w", ErrEncoding, err)
		}
		d = buf.Bytes()
	}
	_, err = w.Write(append(d, '\n'))
	return err
}

func writeNL(w io.Writer, es *EncState) error {
	if es.wire {
		return nil
	}
	indentString := strings.Repeat(strings.Repeat(" ", es.indent), es.depth)
	if err := writeString(w, "\n"+indentString); err != nil {
		return err
	}
	es.col = len(indentString)
	return nil
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}
