package vtree

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/signadot/vtree/edit"
	"github.com/signadot/vtree/ir"
	"github.com/signadot/vtree/search"
	"github.com/stretchr/testify/require"
)

func TestWorkspace(t *testing.T) {
	w := NewWorkspace()
	b := w.Open("b.json", sampleRoot())
	a := w.Open("a.json", ir.FromInt(1))
	require.NotEqual(t, a.ID, b.ID)

	docs := w.Documents()
	require.Len(t, docs, 2)
	require.Equal(t, "a.json", docs[0].Name)

	got, err := w.Get(b.ID)
	require.NoError(t, err)
	require.Same(t, b, got)
	_, err = w.Get(uuid.New())
	require.ErrorIs(t, err, ErrNoDocument)

	require.Empty(t, w.Dirty())
	err = b.Write(func(s *Session) error {
		_, err := s.Mutate(edit.Remove{At: atB})
		return err
	})
	require.NoError(t, err)
	dirty := w.Dirty()
	require.Len(t, dirty, 1)
	require.Equal(t, b.ID, dirty[0].ID)

	closed, err := w.Close(a.ID)
	require.NoError(t, err)
	require.Same(t, a, closed)
	_, err = w.Close(a.ID)
	require.ErrorIs(t, err, ErrNoDocument)
}

func TestDocumentConcurrentReads(t *testing.T) {
	w := NewWorkspace()
	doc := w.Open("d", sampleRoot())
	f := search.Filter{Pattern: "*", Mode: search.Wildcard, Scope: search.KeyScope}

	var wg sync.WaitGroup
	counts := make([]int, 8)
	for i := range counts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = doc.Read(func(r Reader) error {
				res, err := r.Find(context.Background(), f)
				if err != nil {
					return err
				}
				counts[i] = res.Len()
				return nil
			})
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = doc.Write(func(s *Session) error {
			_, err := s.Mutate(edit.InsertInto{At: atA, Value: ir.FromInt(4)})
			return err
		})
	}()
	wg.Wait()
	for _, c := range counts {
		// before or after the append
		require.Contains(t, []int{5, 6}, c)
	}
	require.NoError(t, doc.Read(func(r Reader) error {
		require.True(t, r.IsDirty())
		return nil
	}))
}
