package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	catalogapp "github.com/archerandash/storefront/internal/application/catalog"
	"github.com/archerandash/storefront/internal/infrastructure/config"
	"github.com/archerandash/storefront/internal/infrastructure/persistence"
	"github.com/archerandash/storefront/internal/infrastructure/persistence/models"
)

func useSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(models.All()...))

	prev := connect
	connect = func(*config.Config, *zap.Logger) (*gorm.DB, func() error, error) {
		return db, func() error { return nil }, nil
	}
	t.Cleanup(func() { connect = prev })

	t.Setenv("STOREFRONT_REDIS_HOST", "")
	t.Setenv(adminPasswordEnv, "")
	return db
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSeedAdmin(t *testing.T) {
	db := useSQLite(t)
	users := persistence.NewGormUserRepository(db)

	out, err := execute(t, "seed-admin", "--email", "Owner@ArcherAndAsh.com", "--password", "first-password")
	require.NoError(t, err)
	assert.Contains(t, out, "Created admin owner@archerandash.com")

	out, err = execute(t, "seed-admin", "--email", "owner@archerandash.com", "--password", "second-password")
	require.NoError(t, err)
	assert.Contains(t, out, "Reset password for owner@archerandash.com")
	assert.Contains(t, out, "Redis is not configured")

	user, err := users.FindByEmail(context.Background(), "owner@archerandash.com")
	require.NoError(t, err)
	assert.True(t, user.VerifyPassword("second-password"))
	assert.False(t, user.VerifyPassword("first-password"))
}

func TestSeedAdmin_PasswordFromEnvironment(t *testing.T) {
	db := useSQLite(t)
	t.Setenv(adminPasswordEnv, "from-the-environment")

	_, err := execute(t, "seed-admin", "--email", "owner@archerandash.com")
	require.NoError(t, err)

	user, err := persistence.NewGormUserRepository(db).FindByEmail(context.Background(), "owner@archerandash.com")
	require.NoError(t, err)
	assert.True(t, user.VerifyPassword("from-the-environment"))
}

func TestSeedAdmin_Validation(t *testing.T) {
	useSQLite(t)

	_, err := execute(t, "seed-admin", "--email", "owner@archerandash.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password is required")

	_, err = execute(t, "seed-admin", "--password", "long-enough-password")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"email"`)

	_, err = execute(t, "seed-admin", "--email", "owner@archerandash.com", "--password", "short")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 8 characters")
}

func createProduct(t *testing.T, db *gorm.DB, title string) catalogapp.ProductResponse {
	t.Helper()
	svc := catalogapp.NewProductService(persistence.NewGormProductRepository(db), persistence.NewGormCategoryRepository(db))
	p, err := svc.Create(context.Background(), catalogapp.ProductRequest{
		Title:       title,
		Description: "Giclée print",
		Variants:    []catalogapp.VariantInput{{Size: "A3", Price: decimal.NewFromInt(40)}},
	})
	require.NoError(t, err)
	return *p
}

func TestBackfillSlugs(t *testing.T) {
	db := useSQLite(t)
	p := createProduct(t, db, "Quiet Harbour")
	require.NoError(t, db.Model(&models.ProductModel{}).Where("id = ?", p.ID).Update("slug", "").Error)

	out, err := execute(t, "backfill-slugs")
	require.NoError(t, err)
	assert.Contains(t, out, "-> quiet-harbour")
	assert.Contains(t, out, "Migration completed: 1 found, 1 updated, 0 failed")

	out, err = execute(t, "backfill-slugs")
	require.NoError(t, err)
	assert.Contains(t, out, "0 found")
}

func TestMigrateCategories(t *testing.T) {
	db := useSQLite(t)
	category, err := catalogapp.NewCategoryService(persistence.NewGormCategoryRepository(db), persistence.NewGormProductRepository(db)).
		Create(context.Background(), catalogapp.CategoryRequest{Name: "Prints"})
	require.NoError(t, err)
	p := createProduct(t, db, "Harbour Lights")
	require.NoError(t, db.Model(&models.ProductModel{}).Where("id = ?", p.ID).Update("category_id", category.ID).Error)

	out, err := execute(t, "migrate-categories", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "1 product still on the legacy category field")

	out, err = execute(t, "migrate-categories")
	require.NoError(t, err)
	assert.Contains(t, out, "Migrated 1 of 1 product")

	out, err = execute(t, "migrate-categories", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "0 products still on the legacy category field")
}
