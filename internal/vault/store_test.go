package vault

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNoteStoreHasAll(t *testing.T) {
	s := NewNoteStore()
	assert.True(t, s.HasCategory(CategoryAll))
	assert.Equal(t, 0, s.Count(CategoryAll))
}

func TestEnsureCategoryIdempotent(t *testing.T) {
	s := NewNoteStore()
	s.EnsureCategory("work")
	s.Append("work", "one @ ts")
	s.EnsureCategory("work")
	assert.Equal(t, []string{"one @ ts"}, s.Entries("work"))
}

func TestCategoriesExcludesAllAndSorts(t *testing.T) {
	s := NewNoteStore()
	s.EnsureCategory("zeta")
	s.EnsureCategory("alpha")
	s.EnsureCategory("empty")
	assert.Equal(t, []string{"alpha", "empty", "zeta"}, s.Categories())
}

func TestNonEmptyCategoriesAllFirst(t *testing.T) {
	s := NewNoteStore()
	s.Append(CategoryAll, "e1")
	s.Append("zeta", "e1")
	s.Append("beta", "e1")
	s.EnsureCategory("empty")
	assert.Equal(t, []string{"all", "beta", "zeta"}, s.NonEmptyCategories())
}

func TestDeleteCategory(t *testing.T) {
	s := NewNoteStore()
	s.Append(CategoryAll, "keep @ ts")
	s.Append("work", "keep @ ts")

	assert.ErrorIs(t, s.DeleteCategory(CategoryAll), ErrProtectedCategory)
	assert.ErrorIs(t, s.DeleteCategory("nonexistent"), ErrNotFound)

	require.NoError(t, s.DeleteCategory("work"))
	assert.False(t, s.HasCategory("work"))
	// Entries survive in all.
	assert.Equal(t, []string{"keep @ ts"}, s.Entries(CategoryAll))
}

func TestDeleteNoteAt(t *testing.T) {
	s := NewNoteStore()
	s.Append(CategoryAll, "first @ ts")
	s.Append(CategoryAll, "second @ ts")
	s.Append("work", "first @ ts")
	s.Append("work", "second @ ts")
	s.Append("urgent", "second @ ts")

	removed, err := s.DeleteNoteAt("work", 1)
	require.NoError(t, err)
	assert.Equal(t, "second @ ts", removed)
	assert.Equal(t, []string{"first @ ts"}, s.Entries("work"))
	assert.Equal(t, []string{"first @ ts"}, s.Entries(CategoryAll))
	// Removal is per-category: the urgent copy stays.
	assert.Equal(t, []string{"second @ ts"}, s.Entries("urgent"))
}

func TestDeleteNoteAtBounds(t *testing.T) {
	s := NewNoteStore()
	s.Append("work", "only @ ts")

	_, err := s.DeleteNoteAt("work", 1)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.DeleteNoteAt("work", -1)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.DeleteNoteAt("missing", 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteNoteAtFromAllRemovesOnce(t *testing.T) {
	s := NewNoteStore()
	s.Append(CategoryAll, "dup @ ts")
	s.Append(CategoryAll, "dup @ ts")

	removed, err := s.DeleteNoteAt(CategoryAll, 0)
	require.NoError(t, err)
	assert.Equal(t, "dup @ ts", removed)
	// Positional pop first, then the first-equal scan removes the duplicate.
	assert.Empty(t, s.Entries(CategoryAll))
}
