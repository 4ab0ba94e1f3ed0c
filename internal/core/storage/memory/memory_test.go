package memory

import (
	"context"
	"sync"
	"testing"

	v1 "github.com/hauspet-lab/hauspet-intake/internal/api/v1"
	"github.com/stretchr/testify/require"
)

func TestStore_AppendAndList(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	id, err := s.Append(ctx, &v1.Submission{ID: "1", Name: "Jane Doe", Email: "jane@example.com"})
	require.NoError(t, err)
	require.Equal(t, "1", id)

	_, err = s.Append(ctx, &v1.Submission{ID: "2", Name: "John Smith", Email: "john@example.com"})
	require.NoError(t, err)

	subs, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	require.Equal(t, "1", subs[0].ID)
	require.Equal(t, "2", subs[1].ID)
}

func TestStore_ListReturnsCopies(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	_, err := s.Append(ctx, &v1.Submission{ID: "1", Name: "Jane Doe"})
	require.NoError(t, err)

	subs, err := s.ListAll(ctx)
	require.NoError(t, err)
	subs[0].Name = "mutated"

	again, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Equal(t, "Jane Doe", again[0].Name)
}

func TestStore_ReplaceAllAndReset(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	_, err := s.Append(ctx, &v1.Submission{ID: "1"})
	require.NoError(t, err)

	err = s.ReplaceAll(ctx, []*v1.Submission{{ID: "1"}, {ID: "2"}, {ID: "3"}})
	require.NoError(t, err)

	subs, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 3)

	s.Reset()
	subs, err = s.ListAll(ctx)
	require.NoError(t, err)
	require.Empty(t, subs)
}

func TestStore_NotDurable(t *testing.T) {
	require.False(t, NewStore().Durable())
}

func TestStore_ConcurrentAppends(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	const writers = 20
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func(n int) {
			defer wg.Done()
			_, err := s.Append(ctx, &v1.Submission{ID: string(rune('a' + n))})
			require.NoError(t, err)
		}(i)
	}
	wg.Wait()

	subs, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, subs, writers)
}
