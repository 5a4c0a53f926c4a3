package parse

import (
	"github.com/signadot/vtree/format"
)

type parseOpts struct {
	format format.Format
	// maps whose keys are not strings fail instead of being stringified.
	strictKeys bool
}

type ParseOption func(*parseOpts)

func ParseYAML() ParseOption {
	return ParseFormat(format.YAMLFormat)
}
func ParseJSON() ParseOption {
	return ParseFormat(format.JSONFormat)
}
func ParseIR() ParseOption {
	return ParseFormat(format.IRFormat)
}
func ParseFormat(f format.Format) ParseOption {
	return func(o *parseOpts) { o.format = f }
}
func StrictKeys(v bool) ParseOption {
	return func(o *parseOpts) { o.strictKeys = v }
}
