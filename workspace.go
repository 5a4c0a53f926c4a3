package vtree

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/signadot/vtree/ir"
	"github.com/signadot/vtree/ir/addr"
	"github.com/signadot/vtree/search"
)

// Reader is the read only part of a Session, safe for concurrent use while
// nothing writes.
type Reader interface {
	Resolve(addr.Address) (*ir.Node, error)
	Find(context.Context, search.Filter) (*search.Result, error)
	SnapshotRoot() *ir.Node
	IsDirty() bool
}

var _ Reader = (*Session)(nil)

// Document is a session guarded by a readers/writer lock.
type Document struct {
	ID   uuid.UUID
	Name string

	mu   sync.RWMutex
	sess *Session
}

// Read runs f with shared access.
func (d *Document) Read(f func(Reader) error) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return f(d.sess)
}

// Write runs f with exclusive access. Row queries fill the row caches of the
// session and so need Write as well.
func (d *Document) Write(f func(*Session) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return f(d.sess)
}

// Workspace holds open documents. Its sessions share one search engine.
type Workspace struct {
	mu   sync.Mutex
	docs map[uuid.UUID]*Document
	opts []Option
}

func NewWorkspace(opts ...Option) *Workspace {
	cfg := newConfig(opts)
	return &Workspace{
		docs: map[uuid.UUID]*Document{},
		opts: append(slices.Clone(opts), WithEngine(cfg.Engine)),
	}
}

// Open loads root as a new document.
func (w *Workspace) Open(name string, root *ir.Node, opts ...Option) *Document {
	doc := &Document{
		ID:   uuid.New(),
		Name: name,
		sess: Load(root, append(slices.Clone(w.opts), opts...)...),
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.docs[doc.ID] = doc
	return doc
}

func (w *Workspace) Get(id uuid.UUID) (*Document, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	doc := w.docs[id]
	if doc == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoDocument, id)
	}
	return doc, nil
}

// Close forgets the document with the given id and returns it.
func (w *Workspace) Close(id uuid.UUID) (*Document, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	doc := w.docs[id]
	if doc == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoDocument, id)
	}
	delete(w.docs, id)
	return doc, nil
}

// Documents returns the open documents ordered by name.
func (w *Workspace) Documents() []*Document {
	w.mu.Lock()
	res := make([]*Document, 0, len(w.docs))
	for _, doc := range w.docs {
		res = append(res, doc)
	}
	w.mu.Unlock()
	slices.SortFunc(res, func(a, b *Document) int {
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.ID.String(), b.ID.String())
	})
	return res
}

// Dirty returns the documents with unsaved changes.
func (w *Workspace) Dirty() []*Document {
	var res []*Document
	for _, doc := range w.Documents() {
		_ = doc.Read(func(r Reader) error {
			if r.IsDirty() {
				res = append(res, doc)
			}
			return nil
		})
	}
	return res
}
