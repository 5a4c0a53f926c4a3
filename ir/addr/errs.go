package addr

import "errors"

var ErrSyntax = errors.New("address syntax error")
