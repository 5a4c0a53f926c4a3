package vtree

import (
	"bytes"

	"github.com/signadot/vtree/encode"
	"github.com/signadot/vtree/format"
	"github.com/signadot/vtree/ir"
	"github.com/signadot/vtree/parse"
)

type Decoder interface {
	Decode([]byte) (*ir.Node, error)
}

type Encoder interface {
	Encode(*ir.Node) ([]byte, error)
}

// Codec decodes and encodes one format.
type Codec struct {
	Format     format.Format
	ParseOpts  []parse.ParseOption
	EncodeOpts []encode.EncodeOption
}

func NewCodec(f format.Format) *Codec {
	return &Codec{Format: f}
}

// CodecFor returns the codec of the format named by the extension of path.
func CodecFor(path string) (*Codec, error) {
	f, err := format.FromPath(path)
	if err != nil {
		return nil, err
	}
	return NewCodec(f), nil
}

func (c *Codec) Decode(d []byte) (*ir.Node, error) {
	opts := append([]parse.ParseOption{parse.ParseFormat(c.Format)}, c.ParseOpts...)
	return parse.Parse(d, opts...)
}

func (c *Codec) Encode(n *ir.Node) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	opts := append([]encode.EncodeOption{encode.EncodeFormat(c.Format)}, c.EncodeOpts...)
	if err := encode.Encode(n, buf, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
