package content

import (
	"regexp"
	"strings"
	"time"

	"github.com/archerandash/storefront/internal/domain/shared"
)

// DefaultAuthor is used when a post is created without an author
const DefaultAuthor = "Archer & Ash"

// PostStatus represents the publication state of a blog post
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

// IsValid checks if the status is a known value
func (s PostStatus) IsValid() bool {
	return s == PostStatusDraft || s == PostStatusPublished
}

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// BlogPost is an editorial article shown in the inspiration section
type BlogPost struct {
	shared.BaseAggregateRoot
	Title       string
	Slug        string
	Excerpt     string
	Content     string
	CoverImage  string
	Author      string
	Status      PostStatus
	PublishedAt *time.Time
}

// PostDetails carries the editable fields of a blog post
type PostDetails struct {
	Title       string
	Slug        string
	Excerpt     string
	Content     string
	CoverImage  string
	Author      string
	Status      PostStatus
	PublishedAt *time.Time
}

// PostSlug lowercases the title and replaces every run of characters
// outside [a-z0-9] with a single hyphen.
func PostSlug(title string) string {
	s := nonAlphanumeric.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(s, "-")
}

// NewBlogPost creates a post. Empty status means published, empty author
// means DefaultAuthor and an empty slug is derived from the title.
func NewBlogPost(details PostDetails) (*BlogPost, error) {
	post := &BlogPost{BaseAggregateRoot: shared.NewBaseAggregateRoot()}
	if err := post.apply(details); err != nil {
		return nil, err
	}
	if post.Author == "" {
		post.Author = DefaultAuthor
	}
	post.stampPublished()

	if post.IsPublished() {
		post.Raise(NewBlogPostPublishedEvent(post))
	}

	return post, nil
}

// Update replaces the editable fields. An empty author keeps the current one.
func (p *BlogPost) Update(details PostDetails) error {
	author := p.Author
	wasPublished := p.IsPublished()
	if err := p.apply(details); err != nil {
		return err
	}
	if p.Author == "" {
		p.Author = author
	}
	p.stampPublished()
	p.Touch()

	if !wasPublished && p.IsPublished() {
		p.Raise(NewBlogPostPublishedEvent(p))
	}

	return nil
}

// IsPublished returns true if the post is publicly visible
func (p *BlogPost) IsPublished() bool {
	return p.Status == PostStatusPublished
}

func (p *BlogPost) apply(d PostDetails) error {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Title is required")
	}
	if strings.TrimSpace(d.Content) == "" {
		return shared.NewDomainError("INVALID_CONTENT", "Content is required")
	}
	status := d.Status
	if status == "" {
		status = PostStatusPublished
	}
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Status must be draft or published")
	}

	slug := PostSlug(d.Slug)
	if slug == "" {
		slug = PostSlug(title)
	}
	if slug == "" {
		return shared.NewDomainError("INVALID_SLUG", "Title must contain letters or digits")
	}

	p.Title = title
	p.Slug = slug
	p.Excerpt = d.Excerpt
	p.Content = d.Content
	p.CoverImage = d.CoverImage
	p.Author = strings.TrimSpace(d.Author)
	p.Status = status
	if d.PublishedAt != nil {
		p.PublishedAt = d.PublishedAt
	}
	return nil
}

func (p *BlogPost) stampPublished() {
	if p.IsPublished() && p.PublishedAt == nil {
		now := time.Now()
		p.PublishedAt = &now
	}
}
