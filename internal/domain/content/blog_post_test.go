package content

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostSlug(t *testing.T) {
	assert.Equal(t, "styling-a-gallery-wall", PostSlug("Styling a Gallery Wall"))
	assert.Equal(t, "5-tips-for-small-spaces", PostSlug("  5 Tips -- for Small Spaces!  "))
	assert.Equal(t, "caf-culture", PostSlug("Café Culture"))
	assert.Equal(t, "", PostSlug("***"))
}

func TestNewBlogPost(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		post, err := NewBlogPost(PostDetails{Title: "Gallery Walls", Content: "Body"})
		require.NoError(t, err)

		assert.Equal(t, "gallery-walls", post.Slug)
		assert.Equal(t, DefaultAuthor, post.Author)
		assert.Equal(t, PostStatusPublished, post.Status)
		require.NotNil(t, post.PublishedAt)

		events := post.Events()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeBlogPostPublished, events[0].EventType())
	})

	t.Run("draft has no published date", func(t *testing.T) {
		post, err := NewBlogPost(PostDetails{Title: "Draft", Content: "Body", Status: PostStatusDraft})
		require.NoError(t, err)

		assert.Nil(t, post.PublishedAt)
		assert.Empty(t, post.Events())
	})

	t.Run("keeps explicit published date", func(t *testing.T) {
		at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
		post, err := NewBlogPost(PostDetails{Title: "Old", Content: "Body", PublishedAt: &at})
		require.NoError(t, err)
		assert.Equal(t, at, *post.PublishedAt)
	})

	t.Run("normalises explicit slug", func(t *testing.T) {
		post, err := NewBlogPost(PostDetails{Title: "T", Content: "Body", Slug: "My Custom Slug"})
		require.NoError(t, err)
		assert.Equal(t, "my-custom-slug", post.Slug)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		_, err := NewBlogPost(PostDetails{Title: "T", Content: "Body", Status: "scheduled"})
		require.Error(t, err)
	})

	t.Run("requires title and content", func(t *testing.T) {
		_, err := NewBlogPost(PostDetails{Content: "Body"})
		require.Error(t, err)

		_, err = NewBlogPost(PostDetails{Title: "T"})
		require.Error(t, err)
	})
}

func TestBlogPost_Update(t *testing.T) {
	post, err := NewBlogPost(PostDetails{Title: "Draft", Content: "Body", Status: PostStatusDraft, Author: "editor@archerandash.com"})
	require.NoError(t, err)

	require.NoError(t, post.Update(PostDetails{Title: "Now Live", Content: "Body", Status: PostStatusPublished}))

	assert.Equal(t, "now-live", post.Slug)
	assert.Equal(t, "editor@archerandash.com", post.Author)
	require.NotNil(t, post.PublishedAt)
	require.Len(t, post.Events(), 1)
	assert.Equal(t, EventTypeBlogPostPublished, post.Events()[0].EventType())
}
