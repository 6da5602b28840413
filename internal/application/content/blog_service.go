package content

import (
	"context"
	"errors"

	"github.com/archerandash/storefront/internal/domain/content"
	"github.com/archerandash/storefront/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Blog errors
var (
	ErrSlugTaken     = shared.NewDomainError("SLUG_EXISTS", "A post with this slug already exists")
	ErrInvalidStatus = shared.NewDomainError("INVALID_STATUS", "Status must be draft or published")
)

// BlogService handles the inspiration blog
type BlogService struct {
	repo      content.BlogPostRepository
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewBlogService creates a new BlogService. publisher may be nil.
func NewBlogService(repo content.BlogPostRepository, publisher shared.EventPublisher, logger *zap.Logger) *BlogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BlogService{repo: repo, publisher: publisher, logger: logger}
}

// List returns posts by publish date, newest first. An empty status returns all posts.
func (s *BlogService) List(ctx context.Context, status string) ([]PostResponse, error) {
	st := content.PostStatus(status)
	if st != "" && !st.IsValid() {
		return nil, ErrInvalidStatus
	}
	posts, err := s.repo.FindAll(ctx, st)
	if err != nil {
		return nil, err
	}
	out := make([]PostResponse, len(posts))
	for i := range posts {
		out[i] = ToPostResponse(&posts[i])
	}
	return out, nil
}

// Get returns a post by id, or by slug when term is not a UUID
func (s *BlogService) Get(ctx context.Context, term string) (*PostResponse, error) {
	var (
		post *content.BlogPost
		err  error
	)
	if id, parseErr := uuid.Parse(term); parseErr == nil {
		post, err = s.repo.FindByID(ctx, id)
	} else {
		post, err = s.repo.FindBySlug(ctx, term)
	}
	if err != nil {
		return nil, err
	}
	resp := ToPostResponse(post)
	return &resp, nil
}

// Create creates a post. author is the signed-in user's email and is used
// when the request names no author.
func (s *BlogService) Create(ctx context.Context, req PostRequest, author string) (*PostResponse, error) {
	post, err := content.NewBlogPost(req.details(author))
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, post); err != nil {
		return nil, err
	}
	resp := ToPostResponse(post)
	return &resp, nil
}

// Update replaces the fields of a post
func (s *BlogService) Update(ctx context.Context, id uuid.UUID, req PostRequest) (*PostResponse, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := post.Update(req.details("")); err != nil {
		return nil, err
	}
	if err := s.save(ctx, post); err != nil {
		return nil, err
	}
	resp := ToPostResponse(post)
	return &resp, nil
}

// Delete removes a post
func (s *BlogService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *BlogService) save(ctx context.Context, post *content.BlogPost) error {
	taken, err := s.repo.ExistsBySlug(ctx, post.Slug, post.ID)
	if err != nil {
		return err
	}
	if taken {
		return ErrSlugTaken
	}
	if err := s.repo.Save(ctx, post); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return ErrSlugTaken
		}
		return err
	}

	events := post.PullEvents()
	if s.publisher != nil && len(events) > 0 {
		if err := s.publisher.Publish(ctx, events...); err != nil {
			s.logger.Warn("Failed to publish blog events", zap.Error(err))
		}
	}
	return nil
}
