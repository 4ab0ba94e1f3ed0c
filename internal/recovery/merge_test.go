package recovery

import (
	"testing"

	v1 "github.com/hauspet-lab/hauspet-intake/internal/api/v1"
	"github.com/stretchr/testify/require"
)

func sub(id, email string) *v1.Submission {
	return &v1.Submission{ID: id, Email: email}
}

func TestMerge_DedupByEmailCaseInsensitive(t *testing.T) {
	existing := []*v1.Submission{sub("1", "jane@example.com")}
	candidates := []*v1.Submission{
		sub("rec-a", "JANE@Example.COM"),
		sub("rec-b", "john@example.com"),
	}

	result := Merge(existing, candidates, false)

	require.Len(t, result.ToAdd, 1)
	require.Equal(t, "rec-b", result.ToAdd[0].ID)
	require.Len(t, result.NewTotal, 2)
}

func TestMerge_DedupByID(t *testing.T) {
	existing := []*v1.Submission{sub("100", "jane@example.com")}
	candidates := []*v1.Submission{
		sub("100", "other@example.com"),   // same id, different email
		sub("200", "john@example.com"),    // new
		sub("300", "jane@example.com"),    // new id, duplicate email
	}

	result := Merge(existing, candidates, true)

	require.Len(t, result.ToAdd, 1)
	require.Equal(t, "200", result.ToAdd[0].ID)
}

func TestMerge_AppendOnlyAndOrderPreserving(t *testing.T) {
	existing := []*v1.Submission{
		sub("1", "a@example.com"),
		sub("2", "b@example.com"),
	}
	candidates := []*v1.Submission{
		sub("rec-x", "c@example.com"),
		sub("rec-y", "d@example.com"),
	}

	result := Merge(existing, candidates, false)

	require.Len(t, result.NewTotal, 4)
	// Existing prefix untouched, candidates appended in original order.
	require.Same(t, existing[0], result.NewTotal[0])
	require.Same(t, existing[1], result.NewTotal[1])
	require.Equal(t, "rec-x", result.NewTotal[2].ID)
	require.Equal(t, "rec-y", result.NewTotal[3].ID)
}

func TestMerge_Idempotent(t *testing.T) {
	existing := []*v1.Submission{sub("1", "a@example.com")}
	candidates := []*v1.Submission{
		sub("rec-x", "b@example.com"),
		sub("rec-y", "c@example.com"),
	}

	for _, byID := range []bool{false, true} {
		first := Merge(existing, candidates, byID)
		require.Len(t, first.ToAdd, 2)

		second := Merge(first.NewTotal, candidates, byID)
		require.Empty(t, second.ToAdd)
		require.Equal(t, first.NewTotal, second.NewTotal)
	}
}

func TestMerge_EmptyInputs(t *testing.T) {
	result := Merge(nil, nil, true)
	require.Empty(t, result.ToAdd)
	require.Empty(t, result.NewTotal)

	result = Merge(nil, []*v1.Submission{sub("1", "a@example.com")}, false)
	require.Len(t, result.ToAdd, 1)
	require.Len(t, result.NewTotal, 1)
}
