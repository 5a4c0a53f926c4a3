package vtree

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/signadot/vtree/edit"
	"github.com/signadot/vtree/ir"
	"github.com/signadot/vtree/ir/addr"
	"github.com/signadot/vtree/libdiff"
	"github.com/signadot/vtree/search"
	"github.com/signadot/vtree/tree"
)

type Session struct {
	root *ir.Node
	// saved is a copy of root as of the last load or save.
	saved *ir.Node
	dirty bool

	model  *tree.Model
	engine *search.Engine
	last   *search.Result
	filter *search.Filter
	log    *slog.Logger
}

// Load opens root in a new session. The session takes ownership of root; a
// nil root is opened as null.
//
// An initial filter given with WithFilter which fails to compile is logged
// and dropped.
func Load(root *ir.Node, opts ...Option) *Session {
	cfg := newConfig(opts)
	if root == nil {
		root = ir.Null()
	}
	s := &Session{
		root:   root,
		saved:  root.Clone(),
		engine: cfg.Engine,
		log:    cfg.Logger,
	}
	treeOpts := append([]tree.Option{tree.WithLogger(cfg.Logger)}, cfg.Tree...)
	s.model = tree.New(func() *ir.Node { return s.root }, treeOpts...)
	if cfg.Filter != nil {
		if err := s.SetFilter(context.Background(), *cfg.Filter); err != nil {
			s.log.Warn("dropping initial filter", "filter", cfg.Filter.String(), "error", err)
		}
	}
	return s
}

// Open decodes d with dec and loads the result.
func Open(d []byte, dec Decoder, opts ...Option) (*Session, error) {
	root, err := dec.Decode(d)
	if err != nil {
		return nil, err
	}
	return Load(root, opts...), nil
}

func (s *Session) Model() *tree.Model {
	return s.model
}

func (s *Session) RowCount(a addr.Address) (int, error) {
	return s.model.RowCount(a)
}

func (s *Session) RowAt(a addr.Address, i int) (tree.Row, error) {
	return s.model.RowAt(a, i)
}

func (s *Session) Row(a addr.Address) (tree.Row, error) {
	return s.model.Row(a)
}

func (s *Session) Children(a addr.Address) ([]tree.Row, error) {
	return s.model.Children(a)
}

func (s *Session) Expand(a addr.Address, depth int) ([]tree.Row, error) {
	return s.model.Expand(a, depth)
}

// Invalidate drops cached rows at and below a. Mutate does this itself; it
// is only needed by callers which change the value some other way.
func (s *Session) Invalidate(a addr.Address) {
	s.model.Invalidate(a)
}

// Resolve returns a copy of the value at a.
func (s *Session) Resolve(a addr.Address) (*ir.Node, error) {
	n, err := s.root.Resolve(a)
	if err != nil {
		return nil, err
	}
	return n.Clone(), nil
}

// SnapshotRoot returns a deep copy of the whole value, for saving.
func (s *Session) SnapshotRoot() *ir.Node {
	return s.root.Clone()
}

// Mutate applies op. On failure, or when op changes nothing, the value, the
// rows and the dirty flag are unchanged.
func (s *Session) Mutate(op edit.Op) (edit.Change, error) {
	c, err := op.Apply(s.root)
	if err != nil {
		s.log.Debug("mutate failed", "op", op.String(), "error", err)
		return edit.Change{}, err
	}
	if c.Unchanged {
		s.log.Debug("mutate unchanged", "op", op.String())
		return c, nil
	}
	s.model.Invalidate(c.Parent)
	s.dirty = true
	s.log.Debug("mutate", "op", op.String(), "change", c.Kind.String(), "addr", c.At.KPath())
	s.refilter()
	return c, nil
}

// Apply mutates with each op in turn, stopping at the first failure. Ops
// applied before the failure stay applied.
func (s *Session) Apply(ops ...edit.Op) ([]edit.Change, error) {
	res := make([]edit.Change, 0, len(ops))
	for i, op := range ops {
		c, err := s.Mutate(op)
		if err != nil {
			return res, fmt.Errorf("op %d (%s): %w", i, op, err)
		}
		res = append(res, c)
	}
	return res, nil
}

// Search runs f over the value. A successful result is remembered as the
// last result; a failing search leaves the last result as it was.
func (s *Session) Search(ctx context.Context, f search.Filter) (*search.Result, error) {
	res, err := s.Find(ctx, f)
	if err != nil {
		return nil, err
	}
	s.last = res
	return res, nil
}

// Find is Search without remembering the result. Lists and maps are
// matched on the previews shown in their rows.
func (s *Session) Find(ctx context.Context, f search.Filter) (*search.Result, error) {
	f.PreviewDepth = s.model.Config().PreviewDepth
	return s.engine.Search(ctx, s.root, f)
}

func (s *Session) LastResult() *search.Result {
	return s.last
}

// SetFilter searches with f and hides every row which is neither a match
// nor an ancestor of one. The filter is rerun after each mutation.
func (s *Session) SetFilter(ctx context.Context, f search.Filter) error {
	res, err := s.Search(ctx, f)
	if err != nil {
		return err
	}
	s.filter = &f
	s.model.SetVisibility(res.Filtered())
	return nil
}

func (s *Session) ClearFilter() {
	s.filter = nil
	s.model.SetVisibility(nil)
}

// Filter returns the active filter.
func (s *Session) Filter() (search.Filter, error) {
	if s.filter == nil {
		return search.Filter{}, ErrNoFilter
	}
	return *s.filter, nil
}

func (s *Session) refilter() {
	if s.filter == nil {
		return
	}
	if err := s.SetFilter(context.Background(), *s.filter); err != nil {
		s.log.Warn("refilter", "filter", s.filter.String(), "error", err)
	}
}

func (s *Session) IsDirty() bool {
	return s.dirty
}

// MarkSaved clears the dirty flag and makes the current value the base of
// Changes.
func (s *Session) MarkSaved() {
	s.dirty = false
	s.saved = s.root.Clone()
}

// Changes returns the differences between the value as last loaded or saved
// and the current value.
func (s *Session) Changes() []libdiff.Edit {
	if !s.dirty {
		return nil
	}
	return libdiff.Diff(s.saved, s.root)
}

// MergePatch returns the JSON merge patch of Changes.
func (s *Session) MergePatch() ([]byte, error) {
	return libdiff.MergePatch(s.saved, s.root)
}

// Save encodes the value with enc to w and marks the session saved.
func (s *Session) Save(w io.Writer, enc Encoder) error {
	d, err := enc.Encode(s.root)
	if err != nil {
		return err
	}
	if _, err := w.Write(d); err != nil {
		return err
	}
	s.MarkSaved()
	s.log.Debug("saved", "bytes", len(d))
	return nil
}
