package encode

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/signadot/vtree/ir"
)

func encodeJSON(node *ir.Node, w io.Writer, es *EncState) error {
	switch node.Type {
	case ir.ListType:
		return encodeJSONList(node, w, es)
	case ir.MapType:
		return encodeJSONMap(node, w, es)
	}
	lit, err := jsonScalar(node)
	if err != nil {
		return err
	}
	return writeString(w, es.color(node.Type, ValueColor, lit))
}

func encodeJSONList(node *ir.Node, w io.Writer, es *EncState) error {
	sep := func(s string) string { return es.color(ir.ListType, SepColor, s) }
	if len(node.Values) == 0 {
		return writeString(w, sep("[]"))
	}
	if err := writeString(w, sep("[")); err != nil {
		return err
	}
	es.depth++
	for i, v := range node.Values {
		if i > 0 {
			if err := writeString(w, sep(",")); err != nil {
				return err
			}
		}
		if err := writeNL(w, es); err != nil {
			return err
		}
		if err := encodeJSON(v, w, es); err != nil {
			return err
		}
	}
	es.depth--
	if err := writeNL(w, es); err != nil {
		return err
	}
	return writeString(w, sep("]"))
}

func encodeJSONMap(node *ir.Node, w io.Writer, es *EncState) error {
	sep := func(s string) string { return es.color(ir.MapType, SepColor, s) }
	if len(node.Values) == 0 {
		return writeString(w, sep("{}"))
	}
	if err := writeString(w, sep("{")); err != nil {
		return err
	}
	es.depth++
	colon := ":"
	if !es.wire {
		colon = ": "
	}
	for i, v := range node.Values {
		if i > 0 {
			if err := writeString(w, sep(",")); err != nil {
				return err
			}
		}
		if err := writeNL(w, es); err != nil {
			return err
		}
		key := es.color(v.Type, FieldColor, jsonString(node.Fields[i]))
		if err := writeString(w, key+sep(colon)); err != nil {
			return err
		}
		if err := encodeJSON(v, w, es); err != nil {
			return err
		}
	}
	es.depth--
	if err := writeNL(w, es); err != nil {
		return err
	}
	return writeString(w, sep("}"))
}

// jsonScalar renders a leaf as a JSON literal. Byte sequences become base64
// strings and times RFC 3339 strings. Unsupported values are emitted verbatim
// when they hold valid JSON.
func jsonScalar(node *ir.Node) (string, error) {
	switch node.Type {
	case ir.NullType:
		return "null", nil
	case ir.BoolType:
		return strconv.FormatBool(node.Bool), nil
	case ir.IntType:
		return strconv.FormatInt(node.Int64, 10), nil
	case ir.UintType:
		return strconv.FormatUint(node.Uint64, 10), nil
	case ir.FloatType:
		if math.IsNaN(node.Float64) || math.IsInf(node.Float64, 0) {
			return "", fmt.Errorf("%w: %v has no JSON representation", ErrEncoding, node.Float64)
		}
		return formatFloat(node.Float64), nil
	case ir.StringType:
		return jsonString(node.String), nil
	case ir.BytesType:
		return jsonString(base64.StdEncoding.EncodeToString(node.Bytes)), nil
	case ir.TimeType:
		return jsonString(node.Time.Format(time.RFC3339Nano)), nil
	case ir.UnsupportedType:
		if node.Opaque != nil && json.Valid(node.Opaque.Data) {
			buf := bytes.NewBuffer(nil)
			if err := json.Compact(buf, node.Opaque.Data); err == nil {
				return buf.String(), nil
			}
		}
		return "", fmt.Errorf("%w: unsupported value %s", ErrEncoding, ir.Text(node))
	}
	return "", fmt.Errorf("%w: %s is not a leaf", ErrEncoding, node.Type)
}

// formatFloat keeps integral floats distinguishable from integers.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

func jsonString(s string) string {
	buf := bytes.NewBuffer(nil)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	// strings always encode
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}
