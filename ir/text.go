package ir

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	humanize "github.com/dustin/go-humanize"
)

// Text returns the unquoted text of a scalar, as used by search and typed
// edits. Containers render as their summary.
func Text(n *Node) string {
	switch n.Type {
	case NullType:
		return "null"
	case BoolType:
		return strconv.FormatBool(n.Bool)
	case IntType:
		return strconv.FormatInt(n.Int64, 10)
	case UintType:
		return strconv.FormatUint(n.Uint64, 10)
	case FloatType:
		return strconv.FormatFloat(n.Float64, 'g', -1, 64)
	case StringType:
		return n.String
	case BytesType:
		return hex.EncodeToString(n.Bytes)
	case TimeType:
		return n.Time.Format(time.RFC3339Nano)
	case UnsupportedType:
		return opaqueSummary(n.Opaque)
	default:
		return summary(n)
	}
}

// Preview returns a one line rendering of n for display. Strings are quoted.
// Containers nested deeper than depth are summarized as List[n] or Map{n} at
// the top level and folded to [...] or {...} below it. The result is cut to
// limit runes when limit is positive.
func Preview(n *Node, depth, limit int) string {
	buf := &strings.Builder{}
	preview(buf, n, depth, true)
	res := buf.String()
	if limit > 0 && utf8.RuneCountInString(res) > limit {
		rs := []rune(res)
		res = string(rs[:max(limit-1, 0)]) + "…"
	}
	return res
}

const bytesPreviewLen = 8

func preview(buf *strings.Builder, n *Node, depth int, top bool) {
	switch n.Type {
	case StringType:
		buf.WriteString(strconv.Quote(n.String))
	case BytesType:
		buf.WriteString(humanize.Bytes(uint64(len(n.Bytes))))
		if len(n.Bytes) == 0 {
			return
		}
		buf.WriteByte(' ')
		buf.WriteString(hex.EncodeToString(n.Bytes[:min(len(n.Bytes), bytesPreviewLen)]))
		if len(n.Bytes) > bytesPreviewLen {
			buf.WriteString("…")
		}
	case ListType, MapType:
		if depth <= 0 {
			if top {
				buf.WriteString(summary(n))
			} else if len(n.Values) == 0 {
				buf.WriteString(emptyFold(n.Type))
			} else if n.Type == ListType {
				buf.WriteString("[...]")
			} else {
				buf.WriteString("{...}")
			}
			return
		}
		open, close := "[", "]"
		if n.Type == MapType {
			open, close = "{", "}"
		}
		buf.WriteString(open)
		for i, v := range n.Values {
			if i > 0 {
				buf.WriteString(", ")
			}
			if n.Type == MapType {
				buf.WriteString(strconv.Quote(n.Fields[i]))
				buf.WriteString(": ")
			}
			preview(buf, v, depth-1, false)
		}
		buf.WriteString(close)
	default:
		buf.WriteString(Text(n))
	}
}

func emptyFold(t Type) string {
	if t == ListType {
		return "[]"
	}
	return "{}"
}

func summary(n *Node) string {
	if n.Type == MapType {
		return fmt.Sprintf("Map{%d}", len(n.Values))
	}
	return fmt.Sprintf("List[%d]", len(n.Values))
}

func opaqueSummary(o *Opaque) string {
	if o == nil {
		return "<?>"
	}
	name := o.TypeName
	if name == "" {
		name = "?"
	}
	return fmt.Sprintf("<%s: %s>", name, humanize.Bytes(uint64(len(o.Data))))
}
