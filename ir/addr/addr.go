// Package addr provides addresses of nodes in a dynamic value tree.
//
// An Address is an ordered sequence of tokens leading from the root of a tree
// to one of its nodes. Each token is either an index, for list parents, or a
// key, for map parents. The empty address denotes the root.
//
// Addresses name positions, not values: after a mutation the same address may
// name different content, or nothing at all.
//
// Addresses have two textual forms:
//
//   - a breadcrumb, for display: <Root> > 2 > "name"
//   - a kinded path, for input and output: [2].name, a."field with spaces"[0]
package addr

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// RootLabel is the breadcrumb label of the root address.
const RootLabel = "<Root>"

// Token is a single step in an Address.
type Token struct {
	Index int
	Key   string
	IsKey bool
}

// Index returns a list index token.
func Index(i int) Token {
	return Token{Index: i}
}

// Key returns a map key token.
func Key(k string) Token {
	return Token{Key: k, IsKey: true}
}

// Label returns the raw text of the token: the decimal index or the key.
func (t Token) Label() string {
	if t.IsKey {
		return t.Key
	}
	return strconv.Itoa(t.Index)
}

// String returns the breadcrumb form of the token, keys are quoted.
func (t Token) String() string {
	if t.IsKey {
		return strconv.Quote(t.Key)
	}
	return strconv.Itoa(t.Index)
}

// Address is a path of tokens from the root of a tree.
type Address []Token

// Root is the empty address.
var Root = Address(nil)

// New returns an address made of toks.
func New(toks ...Token) Address {
	if len(toks) == 0 {
		return Root
	}
	return append(Address(nil), toks...)
}

func (a Address) IsRoot() bool {
	return len(a) == 0
}

func (a Address) Depth() int {
	return len(a)
}

// Child returns a new address descending from a by tok. The receiver is
// never modified, so addresses may be shared freely.
func (a Address) Child(tok Token) Address {
	res := make(Address, len(a), len(a)+1)
	copy(res, a)
	return append(res, tok)
}

func (a Address) Index(i int) Address {
	return a.Child(Index(i))
}

func (a Address) Key(k string) Address {
	return a.Child(Key(k))
}

// Parent returns the address of the parent of a. The root has no parent and
// reports false.
func (a Address) Parent() (Address, bool) {
	if len(a) == 0 {
		return Root, false
	}
	return New(a[:len(a)-1]...), true
}

// Last returns the last token of a, or false for the root.
func (a Address) Last() (Token, bool) {
	if len(a) == 0 {
		return Token{}, false
	}
	return a[len(a)-1], true
}

func (a Address) Equal(b Address) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether p is a, or an ancestor of a.
func (a Address) HasPrefix(p Address) bool {
	if len(p) > len(a) {
		return false
	}
	return a[:len(p)].Equal(p)
}

// IsAncestorOf reports whether a is a strict ancestor of b.
func (a Address) IsAncestorOf(b Address) bool {
	return len(a) < len(b) && b.HasPrefix(a)
}

// Ancestors returns the strict ancestors of a, root first.
func (a Address) Ancestors() []Address {
	res := make([]Address, 0, len(a))
	for i := range a {
		res = append(res, New(a[:i]...))
	}
	return res
}

// String returns the breadcrumb form of a, for example <Root> > 2 > "name".
func (a Address) String() string {
	buf := bytes.NewBufferString(RootLabel)
	for _, tok := range a {
		buf.WriteString(" > ")
		buf.WriteString(tok.String())
	}
	return buf.String()
}

// KPath returns the kinded path form of a. The root is the empty string.
func (a Address) KPath() string {
	buf := bytes.NewBuffer(nil)
	for i, tok := range a {
		if !tok.IsKey {
			fmt.Fprintf(buf, "[%d]", tok.Index)
			continue
		}
		if i > 0 {
			buf.WriteByte('.')
		}
		if quoteKey(tok.Key) {
			buf.WriteString(strconv.Quote(tok.Key))
		} else {
			buf.WriteString(tok.Key)
		}
	}
	return buf.String()
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.KPath()), nil
}

func (a *Address) UnmarshalText(d []byte) error {
	p, err := Parse(string(d))
	if err != nil {
		return err
	}
	*a = p
	return nil
}

func quoteKey(k string) bool {
	if k == "" || k[0] == '$' {
		return true
	}
	return strings.ContainsAny(k, ".[]\"' \t\r\n\\")
}

// Parse parses a kinded path.
//
//   - "" or "$" → root
//   - "a.b" → keys a then b
//   - "a[0]" → key a then index 0
//   - "[1].\"x y\"" → index 1 then key "x y"
//
// A leading "$" or "$." is accepted and ignored.
func Parse(kp string) (Address, error) {
	frag := strings.TrimPrefix(kp, "$")
	frag = strings.TrimPrefix(frag, ".")
	if frag == "" {
		return Root, nil
	}
	var res Address
	first := true
	for len(frag) > 0 {
		switch frag[0] {
		case '[':
			i := strings.IndexByte(frag, ']')
			if i == -1 {
				return nil, fmt.Errorf("%w: expected '[' <index> ']' in %q", ErrSyntax, kp)
			}
			index, err := strconv.ParseUint(frag[1:i], 10, 31)
			if err != nil {
				return nil, fmt.Errorf("%w: bad index %q in %q", ErrSyntax, frag[1:i], kp)
			}
			res = append(res, Index(int(index)))
			frag = frag[i+1:]
		case '.':
			if first {
				return nil, fmt.Errorf("%w: unexpected '.' in %q", ErrSyntax, kp)
			}
			key, rest, err := parseKey(frag[1:])
			if err != nil {
				return nil, fmt.Errorf("%w in %q", err, kp)
			}
			res = append(res, Key(key))
			frag = rest
		default:
			if !first {
				return nil, fmt.Errorf("%w: expected '.' or '[' at %q in %q", ErrSyntax, frag, kp)
			}
			key, rest, err := parseKey(frag)
			if err != nil {
				return nil, fmt.Errorf("%w in %q", err, kp)
			}
			res = append(res, Key(key))
			frag = rest
		}
		first = false
	}
	return res, nil
}

// MustParse is like Parse but panics on error.
func MustParse(kp string) Address {
	a, err := Parse(kp)
	if err != nil {
		panic(err)
	}
	return a
}

func parseKey(frag string) (key, rest string, err error) {
	if len(frag) == 0 {
		return "", "", fmt.Errorf("%w: expected key at end of path", ErrSyntax)
	}
	if frag[0] != '"' {
		i := strings.IndexAny(frag, ".[")
		if i == 0 {
			return "", "", fmt.Errorf("%w: empty key", ErrSyntax)
		}
		if i == -1 {
			return frag, "", nil
		}
		return frag[:i], frag[i:], nil
	}
	escaped := false
	for i := 1; i < len(frag); i++ {
		switch {
		case escaped:
			escaped = false
		case frag[i] == '\\':
			escaped = true
		case frag[i] == '"':
			key, err := strconv.Unquote(frag[:i+1])
			if err != nil {
				return "", "", fmt.Errorf("%w: %w", ErrSyntax, err)
			}
			return key, frag[i+1:], nil
		}
	}
	return "", "", fmt.Errorf("%w: unterminated quoted key", ErrSyntax)
}
