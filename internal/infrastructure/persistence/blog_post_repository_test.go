package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/archerandash/storefront/internal/domain/content"
	"github.com/archerandash/storefront/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPost(t *testing.T, title string, status content.PostStatus, publishedAt *time.Time) *content.BlogPost {
	t.Helper()
	post, err := content.NewBlogPost(content.PostDetails{
		Title:       title,
		Content:     "<p>" + title + "</p>",
		Status:      status,
		PublishedAt: publishedAt,
	})
	require.NoError(t, err)
	return post
}

func TestGormBlogPostRepository_FindAllOrdering(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormBlogPostRepository(db)
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	march := base
	april := base.AddDate(0, 1, 0)

	posts := []*content.BlogPost{
		newTestPost(t, "Styling Your Hallway", content.PostStatusPublished, &march),
		newTestPost(t, "Unfinished Thoughts", content.PostStatusDraft, nil),
		newTestPost(t, "Spring Collection", content.PostStatusPublished, &april),
	}
	for _, p := range posts {
		require.NoError(t, repo.Save(ctx, p))
	}

	all, err := repo.FindAll(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Spring Collection", all[0].Title)
	assert.Equal(t, "Styling Your Hallway", all[1].Title)
	assert.Equal(t, "Unfinished Thoughts", all[2].Title, "drafts without a published date sort last")

	published, err := repo.FindAll(ctx, content.PostStatusPublished)
	require.NoError(t, err)
	assert.Len(t, published, 2)

	drafts, err := repo.FindAll(ctx, content.PostStatusDraft)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Nil(t, drafts[0].PublishedAt)
}

func TestGormBlogPostRepository_SlugLookupAndDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormBlogPostRepository(db)
	ctx := context.Background()

	post := newTestPost(t, "Choosing Frames", content.PostStatusPublished, nil)
	require.NoError(t, repo.Save(ctx, post))

	found, err := repo.FindBySlug(ctx, "choosing-frames")
	require.NoError(t, err)
	assert.Equal(t, post.ID, found.ID)
	assert.Equal(t, content.DefaultAuthor, found.Author)

	duplicate := newTestPost(t, "Choosing  Frames!", content.PostStatusPublished, nil)
	assert.ErrorIs(t, repo.Save(ctx, duplicate), shared.ErrAlreadyExists)

	require.NoError(t, repo.Delete(ctx, post.ID))
	_, err = repo.FindByID(ctx, post.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, post.ID), shared.ErrNotFound)
}
