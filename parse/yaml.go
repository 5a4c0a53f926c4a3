package parse

import (
	"fmt"
	"math"

	"github.com/goccy/go-yaml"
	"github.com/signadot/vtree/ir"
)

func parseYAML(d []byte, opts *parseOpts) (*ir.Node, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(d, &v, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return fromYAML(v, opts)
}

func fromYAML(v any, opts *parseOpts) (*ir.Node, error) {
	switch x := v.(type) {
	case yaml.MapSlice:
		res := &ir.Node{Type: ir.MapType, Fields: []string{}, Values: []*ir.Node{}}
		for _, item := range x {
			key, err := yamlKey(item.Key, opts)
			if err != nil {
				return nil, err
			}
			val, err := fromYAML(item.Value, opts)
			if err != nil {
				return nil, err
			}
			setEntry(res, key, val)
		}
		return res, nil
	case []any:
		res := &ir.Node{Type: ir.ListType, Values: make([]*ir.Node, len(x))}
		for i, e := range x {
			val, err := fromYAML(e, opts)
			if err != nil {
				return nil, err
			}
			res.Values[i] = val
		}
		return res, nil
	case uint64:
		if x <= math.MaxInt64 {
			return ir.FromInt(int64(x)), nil
		}
		return ir.FromUint(x), nil
	}
	return ir.FromAny(v), nil
}

func yamlKey(k any, opts *parseOpts) (string, error) {
	switch x := k.(type) {
	case string:
		return x, nil
	case nil:
		if opts.strictKeys {
			return "", fmt.Errorf("%w: null map key", ErrParse)
		}
		return "null", nil
	case yaml.MapSlice, []any:
		return "", fmt.Errorf("%w: complex map key %v", ErrParse, k)
	}
	if opts.strictKeys {
		return "", fmt.Errorf("%w: non-string map key %v (%T)", ErrParse, k, k)
	}
	return fmt.Sprint(k), nil
}
