package content

import (
	"time"

	"github.com/archerandash/storefront/internal/domain/content"
	"github.com/google/uuid"
)

// PostRequest is the body of blog post create and update
type PostRequest struct {
	Title       string     `json:"title" binding:"required,max=200"`
	Slug        string     `json:"slug" binding:"max=200"`
	Excerpt     string     `json:"excerpt" binding:"max=1000"`
	Content     string     `json:"content" binding:"required"`
	CoverImage  string     `json:"coverImage"`
	Author      string     `json:"author" binding:"max=200"`
	Status      string     `json:"status" binding:"omitempty,oneof=draft published"`
	PublishedAt *time.Time `json:"publishedAt"`
}

func (r PostRequest) details(author string) content.PostDetails {
	if r.Author != "" {
		author = r.Author
	}
	return content.PostDetails{
		Title:       r.Title,
		Slug:        r.Slug,
		Excerpt:     r.Excerpt,
		Content:     r.Content,
		CoverImage:  r.CoverImage,
		Author:      author,
		Status:      content.PostStatus(r.Status),
		PublishedAt: r.PublishedAt,
	}
}

// PostResponse represents a blog post in API responses
type PostResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	Content     string     `json:"content"`
	CoverImage  string     `json:"coverImage"`
	Author      string     `json:"author"`
	Status      string     `json:"status"`
	PublishedAt *time.Time `json:"publishedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ToPostResponse converts a domain post
func ToPostResponse(p *content.BlogPost) PostResponse {
	return PostResponse{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Excerpt:     p.Excerpt,
		Content:     p.Content,
		CoverImage:  p.CoverImage,
		Author:      p.Author,
		Status:      string(p.Status),
		PublishedAt: p.PublishedAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
