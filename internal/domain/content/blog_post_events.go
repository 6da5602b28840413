package content

import (
	"github.com/archerandash/storefront/internal/domain/shared"
	"github.com/google/uuid"
)

const (
	AggregateTypeBlogPost      = "BlogPost"
	EventTypeBlogPostPublished = "BlogPostPublished"
)

// BlogPostPublishedEvent is published when a post becomes publicly visible
type BlogPostPublishedEvent struct {
	shared.BaseDomainEvent
	PostID uuid.UUID `json:"post_id"`
	Slug   string    `json:"slug"`
}

// NewBlogPostPublishedEvent creates a new BlogPostPublishedEvent
func NewBlogPostPublishedEvent(post *BlogPost) *BlogPostPublishedEvent {
	return &BlogPostPublishedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBlogPostPublished, AggregateTypeBlogPost, post.ID),
		PostID:          post.ID,
		Slug:            post.Slug,
	}
}
