// Package parse decodes JSON, YAML and IR documents into dynamic values.
//
// Map key order is preserved in every format. JSON numbers become Int64 when
// they fit, then UInt64, then Float64.
package parse

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/signadot/vtree/debug"
	"github.com/signadot/vtree/format"
	"github.com/signadot/vtree/ir"
	"github.com/signadot/vtree/ir/addr"
)

func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	pOpts := &parseOpts{format: format.JSONFormat}
	for _, f := range opts {
		f(pOpts)
	}
	var (
		res *ir.Node
		err error
	)
	switch pOpts.format {
	case format.JSONFormat:
		res, err = parseJSON(d)
	case format.YAMLFormat:
		res, err = parseYAML(d, pOpts)
	case format.IRFormat:
		res, err = ir.FromJSON(d)
		if err != nil {
			err = fmt.Errorf("%w: %w", ErrParse, err)
		}
	default:
		return nil, fmt.Errorf("%w: %d", format.ErrBadFormat, pOpts.format)
	}
	if err != nil {
		return nil, err
	}
	if debug.Codec() {
		debug.Logf("parse %s: %d bytes to %s\n", pOpts.format, len(d), res.Type)
	}
	return res, nil
}

func parseJSON(d []byte) (*ir.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	res, err := jsonValue(dec)
	if err != nil {
		return nil, jsonErr(dec, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after offset %d", ErrParse, dec.InputOffset())
	}
	return res, nil
}

func jsonErr(dec *json.Decoder, err error) error {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return fmt.Errorf("%w at offset %d: %w", ErrParse, dec.InputOffset(), err)
}

func jsonValue(dec *json.Decoder) (*ir.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch x := tok.(type) {
	case nil:
		return ir.Null(), nil
	case bool:
		return ir.FromBool(x), nil
	case string:
		return ir.FromString(x), nil
	case json.Number:
		return ir.FromNumber(string(x)), nil
	case json.Delim:
		switch x {
		case '[':
			res := &ir.Node{Type: ir.ListType, Values: []*ir.Node{}}
			for dec.More() {
				v, err := jsonValue(dec)
				if err != nil {
					return nil, err
				}
				res.Values = append(res.Values, v)
			}
			_, err := dec.Token()
			return res, err
		case '{':
			res := &ir.Node{Type: ir.MapType, Fields: []string{}, Values: []*ir.Node{}}
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := kt.(string)
				if !ok {
					return nil, fmt.Errorf("expected object key, got %v", kt)
				}
				v, err := jsonValue(dec)
				if err != nil {
					return nil, err
				}
				setEntry(res, key, v)
			}
			_, err := dec.Token()
			return res, err
		}
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

// setEntry appends key: v to m, a later duplicate replacing the earlier value
// in place.
func setEntry(m *ir.Node, key string, v *ir.Node) {
	if i := m.IndexOf(addr.Key(key)); i != -1 {
		m.Values[i] = v
		return
	}
	m.Fields = append(m.Fields, key)
	m.Values = append(m.Values, v)
}
