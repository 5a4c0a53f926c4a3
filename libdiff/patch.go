package libdiff

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/signadot/vtree/encode"
	"github.com/signadot/vtree/ir"
	"github.com/signadot/vtree/parse"

	jsonpatch "github.com/evanphx/json-patch"
)

var ErrPatch = errors.New("patch error")

func marshalJSON(n *ir.Node) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(n, buf, encode.EncodeWire(true)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MergePatch returns the RFC 7386 merge patch turning from into to. Both
// values must be representable in JSON.
func MergePatch(from, to *ir.Node) ([]byte, error) {
	fd, err := marshalJSON(from)
	if err != nil {
		return nil, err
	}
	td, err := marshalJSON(to)
	if err != nil {
		return nil, err
	}
	res, err := jsonpatch.CreateMergePatch(fd, td)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	return res, nil
}

// ApplyMergePatch applies an RFC 7386 merge patch to doc. The result is a new
// value whose map keys come out sorted.
func ApplyMergePatch(doc *ir.Node, patch []byte) (*ir.Node, error) {
	d, err := marshalJSON(doc)
	if err != nil {
		return nil, err
	}
	out, err := jsonpatch.MergePatch(d, patch)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	return parse.Parse(out, parse.ParseJSON())
}

// ApplyJSONPatch applies an RFC 6902 patch to doc. The result is a new value
// whose map keys come out sorted.
func ApplyJSONPatch(doc *ir.Node, patch []byte) (*ir.Node, error) {
	ops, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	d, err := marshalJSON(doc)
	if err != nil {
		return nil, err
	}
	out, err := ops.Apply(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	return parse.Parse(out, parse.ParseJSON())
}
