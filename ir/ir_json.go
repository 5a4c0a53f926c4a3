package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

type irBase struct {
	Type   string   `json:"type"`
	Fields []string `json:"fields,omitempty"`
	Values []*Node  `json:"values,omitempty"`

	Bool     *bool      `json:"bool,omitempty"`
	Int64    *int64     `json:"int,omitempty"`
	Uint64   *uint64    `json:"uint,omitempty"`
	Float64  *irFloat   `json:"float,omitempty"`
	String   *string    `json:"string,omitempty"`
	Bytes    []byte     `json:"bytes,omitempty"`
	Time     *time.Time `json:"time,omitempty"`
	TypeName string     `json:"typeName,omitempty"`
	Data     []byte     `json:"data,omitempty"`
}

// irFloat carries the non finite values JSON numbers cannot.
type irFloat float64

func (f irFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return []byte(`"NaN"`), nil
	case math.IsInf(v, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Inf"`), nil
	}
	return []byte(strconv.FormatFloat(v, 'g', -1, 64)), nil
}

func (f *irFloat) UnmarshalJSON(d []byte) error {
	s := string(d)
	if uq, err := strconv.Unquote(s); err == nil {
		s = uq
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("%w: float %s", ErrInvalidFormat, d)
	}
	*f = irFloat(v)
	return nil
}

func (y *Node) MarshalJSON() ([]byte, error) {
	base := &irBase{Type: y.Type.String()}
	switch y.Type {
	case BoolType:
		base.Bool = &y.Bool
	case IntType:
		base.Int64 = &y.Int64
	case UintType:
		base.Uint64 = &y.Uint64
	case FloatType:
		f := irFloat(y.Float64)
		base.Float64 = &f
	case StringType:
		base.String = &y.String
	case BytesType:
		base.Bytes = y.Bytes
		if base.Bytes == nil {
			base.Bytes = []byte{}
		}
	case TimeType:
		base.Time = &y.Time
	case ListType:
		base.Values = y.Values
	case MapType:
		base.Fields = y.Fields
		base.Values = y.Values
	case UnsupportedType:
		if y.Opaque != nil {
			if isForeignIR(y.Opaque) {
				return y.Opaque.Data, nil
			}
			base.TypeName = y.Opaque.TypeName
			base.Data = y.Opaque.Data
		}
	}
	return json.Marshal(base)
}

func (y *Node) UnmarshalJSON(d []byte) error {
	tmp := &irBase{}
	if err := json.Unmarshal(d, tmp); err != nil {
		return err
	}
	t, err := ParseType(tmp.Type)
	if err != nil {
		// an IR node from a newer or foreign producer, kept verbatim.
		compact := &bytes.Buffer{}
		if err := json.Compact(compact, d); err != nil {
			return err
		}
		*y = *FromUnsupported(tmp.Type, compact.Bytes())
		return nil
	}
	*y = Node{Type: t}
	switch t {
	case BoolType:
		if tmp.Bool != nil {
			y.Bool = *tmp.Bool
		}
	case IntType:
		if tmp.Int64 != nil {
			y.Int64 = *tmp.Int64
		}
	case UintType:
		if tmp.Uint64 != nil {
			y.Uint64 = *tmp.Uint64
		}
	case FloatType:
		if tmp.Float64 != nil {
			y.Float64 = float64(*tmp.Float64)
		}
	case StringType:
		if tmp.String != nil {
			y.String = *tmp.String
		}
	case BytesType:
		y.Bytes = tmp.Bytes
	case TimeType:
		if tmp.Time != nil {
			y.Time = *tmp.Time
		}
	case ListType:
		y.Values = tmp.Values
		if y.Values == nil {
			y.Values = []*Node{}
		}
	case MapType:
		if len(tmp.Fields) != len(tmp.Values) {
			return fmt.Errorf("%w: map with %d fields and %d values", ErrInvalidFormat, len(tmp.Fields), len(tmp.Values))
		}
		seen := make(map[string]bool, len(tmp.Fields))
		for _, f := range tmp.Fields {
			if seen[f] {
				return fmt.Errorf("%w: duplicate map key %q", ErrInvalidFormat, f)
			}
			seen[f] = true
		}
		y.Fields = tmp.Fields
		y.Values = tmp.Values
		if y.Values == nil {
			y.Fields = []string{}
			y.Values = []*Node{}
		}
	case UnsupportedType:
		y.Opaque = &Opaque{TypeName: tmp.TypeName, Data: tmp.Data}
	}
	for i, v := range y.Values {
		if v == nil {
			return fmt.Errorf("%w: nil child at %d", ErrInvalidFormat, i)
		}
	}
	return nil
}

// isForeignIR reports whether o holds an IR object with a type tag this
// package does not know.
func isForeignIR(o *Opaque) bool {
	if o.TypeName == "" || !json.Valid(o.Data) {
		return false
	}
	if _, err := ParseType(o.TypeName); err == nil {
		return false
	}
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(o.Data, &probe); err != nil {
		return false
	}
	return probe.Type == o.TypeName
}

func ToJSON(n *Node) ([]byte, error) {
	return json.Marshal(n)
}

func FromJSON(d []byte) (*Node, error) {
	n := &Node{}
	if err := json.Unmarshal(d, n); err != nil {
		return nil, err
	}
	return n, nil
}
