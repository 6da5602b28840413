package catalog

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	t.Run("creates top-level category", func(t *testing.T) {
		category, err := NewCategory("Travel Posters", nil)
		require.NoError(t, err)
		require.NotNil(t, category)

		assert.Equal(t, "Travel Posters", category.Name)
		assert.Equal(t, "travel-posters", category.Slug)
		assert.True(t, category.IsTopLevel())
		assert.NotEqual(t, uuid.Nil, category.ID)
	})

	t.Run("creates subcategory", func(t *testing.T) {
		parent := uuid.New()
		category, err := NewCategory("Europe", &parent)
		require.NoError(t, err)
		require.NotNil(t, category.ParentID)
		assert.Equal(t, parent, *category.ParentID)
		assert.False(t, category.IsTopLevel())
	})

	t.Run("publishes CategoryCreated event", func(t *testing.T) {
		category, err := NewCategory("Abstract", nil)
		require.NoError(t, err)

		events := category.Events()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeCategoryCreated, events[0].EventType())
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewCategory("  ", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Name is required")
	})

	t.Run("fails when name has no slug characters", func(t *testing.T) {
		_, err := NewCategory("***", nil)
		require.Error(t, err)
	})

	t.Run("fails with overlong name", func(t *testing.T) {
		_, err := NewCategory(strings.Repeat("a", 101), nil)
		require.Error(t, err)
	})

	t.Run("name limit counts characters", func(t *testing.T) {
		category, err := NewCategory("Café "+strings.Repeat("é", 95), nil)
		require.NoError(t, err)
		assert.Equal(t, "cafe-"+strings.Repeat("e", 95), category.Slug)

		_, err = NewCategory(strings.Repeat("é", 101), nil)
		require.Error(t, err)
	})
}

func TestCategory_Rename(t *testing.T) {
	category, err := NewCategory("Abstract", nil)
	require.NoError(t, err)

	require.NoError(t, category.Rename("Abstract Art"))
	assert.Equal(t, "Abstract Art", category.Name)
	assert.Equal(t, "abstract-art", category.Slug)

	require.Error(t, category.Rename(""))
	assert.Equal(t, "Abstract Art", category.Name)
}

func TestCategory_SetParent(t *testing.T) {
	category, err := NewCategory("Europe", nil)
	require.NoError(t, err)

	err = category.SetParent(&category.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "own parent")

	parent := uuid.New()
	require.NoError(t, category.SetParent(&parent))
	assert.False(t, category.IsTopLevel())

	require.NoError(t, category.SetParent(nil))
	assert.True(t, category.IsTopLevel())
}
