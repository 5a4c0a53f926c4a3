package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/signadot/vtree/ir"
	"github.com/signadot/vtree/ir/addr"
)

type debug struct {
	Tree   bool
	Edit   bool
	Search bool
	Codec  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Tree = boolEnv("VTREE_DEBUG_TREE")
	d.Edit = boolEnv("VTREE_DEBUG_EDIT")
	d.Search = boolEnv("VTREE_DEBUG_SEARCH")
	d.Codec = boolEnv("VTREE_DEBUG_CODEC")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Tree() bool {
	return d.Tree
}
func Edit() bool {
	return d.Edit
}
func Search() bool {
	return d.Search
}
func Codec() bool {
	return d.Codec
}

// Logf writes to stderr, rendering nodes as IR JSON and addresses as
// breadcrumbs.
func Logf(msg string, args ...any) {
	for i := range args {
		switch x := args[i].(type) {
		case *ir.Node:
			d, err := ir.ToJSON(x)
			if err != nil {
				args[i] = fmt.Sprintf("[raw *ir.Node] %v", x)
				continue
			}
			args[i] = string(d)
		case addr.Address:
			args[i] = x.String()
		case map[string]any, []any:
			d, err := json.MarshalIndent(x, "   |", "  ")
			if err != nil {
				continue
			}
			args[i] = string(d)
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(d)
}
