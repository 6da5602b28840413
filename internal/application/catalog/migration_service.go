package catalog

import (
	"context"
	"strings"

	"github.com/archerandash/storefront/internal/domain/catalog"
	"go.uber.org/zap"
)

// MigrationService backfills legacy product data
type MigrationService struct {
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewMigrationService creates a new MigrationService
func NewMigrationService(productRepo catalog.ProductRepository, logger *zap.Logger) *MigrationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MigrationService{productRepo: productRepo, logger: logger}
}

// CategoryStatus counts products that still only have the legacy category
func (s *MigrationService) CategoryStatus(ctx context.Context) (*CategoryMigrationStatus, error) {
	n, err := s.productRepo.CountNeedingCategoryMigration(ctx)
	if err != nil {
		return nil, err
	}
	return &CategoryMigrationStatus{NeedsMigration: n}, nil
}

// MigrateCategories moves each legacy category into the product's categories.
// A failed product is reported and the rest continue.
func (s *MigrationService) MigrateCategories(ctx context.Context) (*CategoryMigrationReport, error) {
	products, err := s.productRepo.FindNeedingCategoryMigration(ctx)
	if err != nil {
		return nil, err
	}

	report := &CategoryMigrationReport{Results: make([]MigrationResult, 0, len(products))}
	for i := range products {
		p := &products[i]
		result := MigrationResult{ID: p.ID, Title: p.Title, Status: MigrationMigrated}
		if !p.MigrateLegacyCategory() {
			result.Status = MigrationSkipped
		} else if err := s.productRepo.Save(ctx, p); err != nil {
			s.logger.Error("Category migration failed", zap.String("product_id", p.ID.String()), zap.Error(err))
			result.Status = MigrationError
			result.Reason = err.Error()
		} else {
			report.Migrated++
		}
		report.Results = append(report.Results, result)
	}

	s.logger.Info("Category migration finished",
		zap.Int("found", len(products)),
		zap.Int("migrated", report.Migrated),
	)
	return report, nil
}

// BackfillSlugs generates a unique slug for every product without one
func (s *MigrationService) BackfillSlugs(ctx context.Context) (*SlugBackfillReport, error) {
	products, err := s.productRepo.FindWithoutSlug(ctx)
	if err != nil {
		return nil, err
	}

	report := &SlugBackfillReport{
		Message: "Migration completed",
		Summary: SlugBackfillSummary{TotalFound: len(products)},
		Details: make([]MigrationResult, 0, len(products)),
	}
	for i := range products {
		p := &products[i]
		result := MigrationResult{ID: p.ID, Title: p.Title}

		if strings.TrimSpace(p.Title) == "" {
			result.Status = MigrationSkipped
			result.Reason = "No title"
			report.Details = append(report.Details, result)
			continue
		}

		id := p.ID
		slug, err := catalog.UniqueSlug(ctx, catalog.ProductSlug(p.Title), func(ctx context.Context, candidate string) (bool, error) {
			return s.productRepo.ExistsBySlug(ctx, candidate, id)
		})
		if err == nil {
			p.AssignSlug(slug)
			err = s.productRepo.Save(ctx, p)
		}
		if err != nil {
			s.logger.Error("Slug backfill failed", zap.String("product_id", p.ID.String()), zap.Error(err))
			result.Status = MigrationError
			result.Reason = err.Error()
			report.Summary.Errors++
		} else {
			result.Status = MigrationUpdated
			result.Slug = slug
			report.Summary.Updated++
		}
		report.Details = append(report.Details, result)
	}

	s.logger.Info("Slug backfill finished",
		zap.Int("found", report.Summary.TotalFound),
		zap.Int("updated", report.Summary.Updated),
		zap.Int("errors", report.Summary.Errors),
	)
	return report, nil
}
