package models

import (
	"time"

	"github.com/archerandash/storefront/internal/domain/content"
)

// BlogPostModel is the persistence model for the BlogPost aggregate.
type BlogPostModel struct {
	BaseModel
	Title       string             `gorm:"type:varchar(250);not null"`
	Slug        string             `gorm:"type:varchar(250);not null;uniqueIndex"`
	Excerpt     string             `gorm:"type:text"`
	Content     string             `gorm:"type:text;not null"`
	CoverImage  string             `gorm:"type:text"`
	Author      string             `gorm:"type:varchar(200);not null"`
	Status      content.PostStatus `gorm:"type:varchar(20);not null;default:'published';index"`
	PublishedAt *time.Time         `gorm:"index"`
}

// TableName returns the table name for GORM
func (BlogPostModel) TableName() string {
	return "blog_posts"
}

// ToDomain converts the persistence model to a domain BlogPost.
func (m *BlogPostModel) ToDomain() *content.BlogPost {
	return &content.BlogPost{
		BaseAggregateRoot: m.aggregate(),
		Title:             m.Title,
		Slug:              m.Slug,
		Excerpt:           m.Excerpt,
		Content:           m.Content,
		CoverImage:        m.CoverImage,
		Author:            m.Author,
		Status:            m.Status,
		PublishedAt:       m.PublishedAt,
	}
}

// BlogPostModelFromDomain creates a new persistence model from a domain BlogPost.
func BlogPostModelFromDomain(p *content.BlogPost) *BlogPostModel {
	m := &BlogPostModel{
		Title:       p.Title,
		Slug:        p.Slug,
		Excerpt:     p.Excerpt,
		Content:     p.Content,
		CoverImage:  p.CoverImage,
		Author:      p.Author,
		Status:      p.Status,
		PublishedAt: p.PublishedAt,
	}
	m.BaseModel = baseFrom(p.BaseEntity)
	return m
}
