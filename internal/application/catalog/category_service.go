package catalog

import (
	"context"
	"errors"

	"github.com/archerandash/storefront/internal/domain/catalog"
	"github.com/archerandash/storefront/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Category errors
var (
	ErrCategoryNameTaken  = shared.NewDomainError("CATEGORY_EXISTS", "Category with this name already exists")
	ErrParentNotFound     = shared.NewDomainError("INVALID_PARENT", "Parent category not found")
	ErrCategoryIDRequired = shared.NewDomainError("INVALID_INPUT", "Category ID is required")
)

// CategoryService handles categories and the category-driven storefront pages
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
	productRepo  catalog.ProductRepository
	serviceOptions
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(
	categoryRepo catalog.CategoryRepository,
	productRepo catalog.ProductRepository,
	opts ...ServiceOption,
) *CategoryService {
	return &CategoryService{
		categoryRepo:   categoryRepo,
		productRepo:    productRepo,
		serviceOptions: buildOptions(opts),
	}
}

// List returns every category sorted by name
func (s *CategoryService) List(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToCategoryResponses(categories), nil
}

// Create creates a category whose slug is derived from its name
func (s *CategoryService) Create(ctx context.Context, req CategoryRequest) (*CategoryResponse, error) {
	if err := s.checkParent(ctx, req.ParentID); err != nil {
		return nil, err
	}
	category, err := catalog.NewCategory(req.Name, req.ParentID)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, category); err != nil {
		return nil, err
	}
	publishEvents(ctx, s.publisher, s.logger, category)

	resp := ToCategoryResponse(category)
	return &resp, nil
}

// Update renames a category, regenerating its slug, and moves it under parentId
func (s *CategoryService) Update(ctx context.Context, req UpdateCategoryRequest) (*CategoryResponse, error) {
	if req.ID == uuid.Nil {
		return nil, ErrCategoryIDRequired
	}
	category, err := s.categoryRepo.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if err := category.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := category.SetParent(req.ParentID); err != nil {
		return nil, err
	}
	if err := s.checkParent(ctx, req.ParentID); err != nil {
		return nil, err
	}
	if err := s.save(ctx, category); err != nil {
		return nil, err
	}

	resp := ToCategoryResponse(category)
	return &resp, nil
}

// Delete removes a category. Its products lose the link and its children
// become top-level.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrCategoryIDRequired
	}
	return s.categoryRepo.Delete(ctx, id)
}

// Collection returns the category page for slug
func (s *CategoryService) Collection(ctx context.Context, slug string) (*CollectionResponse, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	children, err := s.categoryRepo.FindChildren(ctx, category.ID)
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.FindByCategoryIDs(ctx, withChildren(category.ID, children))
	if err != nil {
		return nil, err
	}
	return &CollectionResponse{
		Category:      ToCategoryResponse(category),
		Subcategories: ToCategoryResponses(children),
		Products:      ToProductResponses(products),
	}, nil
}

// Collections returns the top-level categories with their children
func (s *CategoryService) Collections(ctx context.Context) ([]CollectionSummary, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	children := make(map[uuid.UUID][]CategoryResponse)
	for i := range categories {
		if parent := categories[i].ParentID; parent != nil {
			children[*parent] = append(children[*parent], ToCategoryResponse(&categories[i]))
		}
	}

	out := make([]CollectionSummary, 0)
	for i := range categories {
		if !categories[i].IsTopLevel() {
			continue
		}
		kids := children[categories[i].ID]
		if kids == nil {
			kids = []CategoryResponse{}
		}
		out = append(out, CollectionSummary{CategoryResponse: ToCategoryResponse(&categories[i]), Children: kids})
	}
	return out, nil
}

// Shop returns the shop page. Products are filtered by the subcategory when
// given, else by the category and its children, else unfiltered. An unknown
// slug selects nothing.
func (s *CategoryService) Shop(ctx context.Context, q ShopQuery) (*ShopResponse, error) {
	var (
		topLevel      []catalog.Category
		subcategories []catalog.Category
		products      []catalog.Product
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		topLevel, err = s.categoryRepo.FindTopLevel(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		subcategories, products, err = s.shopProducts(gctx, q)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &ShopResponse{
		Categories:    ToCategoryResponses(topLevel),
		Subcategories: ToCategoryResponses(subcategories),
		Products:      ToProductResponses(products),
	}, nil
}

func (s *CategoryService) shopProducts(ctx context.Context, q ShopQuery) ([]catalog.Category, []catalog.Product, error) {
	if q.Category == "" && q.Subcategory == "" {
		products, err := s.productRepo.FindAll(ctx)
		return nil, products, err
	}

	var children []catalog.Category
	var parentIDs []uuid.UUID
	if q.Category != "" {
		parent, err := s.findBySlug(ctx, q.Category)
		if err != nil || parent == nil {
			return nil, nil, err
		}
		if children, err = s.categoryRepo.FindChildren(ctx, parent.ID); err != nil {
			return nil, nil, err
		}
		parentIDs = withChildren(parent.ID, children)
	}

	ids := parentIDs
	if q.Subcategory != "" {
		sub, err := s.findBySlug(ctx, q.Subcategory)
		if err != nil || sub == nil {
			return children, nil, err
		}
		ids = []uuid.UUID{sub.ID}
	}

	products, err := s.productRepo.FindByCategoryIDs(ctx, ids)
	return children, products, err
}

// findBySlug returns nil without error when no category has slug
func (s *CategoryService) findBySlug(ctx context.Context, slug string) (*catalog.Category, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, slug)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, nil
	}
	return category, err
}

func (s *CategoryService) checkParent(ctx context.Context, parentID *uuid.UUID) error {
	if parentID == nil {
		return nil
	}
	if _, err := s.categoryRepo.FindByID(ctx, *parentID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return ErrParentNotFound
		}
		return err
	}
	return nil
}

func (s *CategoryService) save(ctx context.Context, category *catalog.Category) error {
	taken, err := s.categoryRepo.ExistsBySlug(ctx, category.Slug, category.ID)
	if err != nil {
		return err
	}
	if taken {
		return ErrCategoryNameTaken
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return ErrCategoryNameTaken
		}
		return err
	}
	return nil
}

func withChildren(id uuid.UUID, children []catalog.Category) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(children)+1)
	ids = append(ids, id)
	for _, c := range children {
		ids = append(ids, c.ID)
	}
	return ids
}
