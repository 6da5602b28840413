package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	catalogapp "github.com/archerandash/storefront/internal/application/catalog"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) createCategory(session *http.Cookie, name string, parent *uuid.UUID) catalogapp.CategoryResponse {
	e.t.Helper()
	body := map[string]any{"name": name}
	if parent != nil {
		body["parentId"] = parent.String()
	}
	w := e.request(http.MethodPost, "/api/categories", body, session)
	require.Equal(e.t, http.StatusCreated, w.Code, w.Body.String())

	var resp CategoryResponse
	require.NoError(e.t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(e.t, resp.Success)
	return resp.Category
}

func TestCategoryHandler_CreateAndList(t *testing.T) {
	env := newTestEnv(t)
	session := env.login()

	prints := env.createCategory(session, "Wall Art", nil)
	assert.Equal(t, "wall-art", prints.Slug)
	env.createCategory(session, "Abstract", &prints.ID)

	w := env.request(http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list CategoriesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.True(t, list.Success)
	require.Len(t, list.Categories, 2)
	assert.Equal(t, "Abstract", list.Categories[0].Name)
	assert.Equal(t, &prints.ID, list.Categories[0].ParentID)
}

func TestCategoryHandler_DuplicateName(t *testing.T) {
	env := newTestEnv(t)
	session := env.login()
	env.createCategory(session, "Wall Art", nil)

	w := env.request(http.MethodPost, "/api/categories", map[string]string{"name": "wall  art"}, session)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Category with this name already exists", decodeResponse(t, w).Error.Message)
}

func TestCategoryHandler_UnknownParent(t *testing.T) {
	env := newTestEnv(t)
	session := env.login()

	w := env.request(http.MethodPost, "/api/categories", map[string]string{
		"name":     "Orphan",
		"parentId": uuid.NewString(),
	}, session)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCategoryHandler_Update(t *testing.T) {
	env := newTestEnv(t)
	session := env.login()
	category := env.createCategory(session, "Landscapes", nil)
	env.createCategory(session, "Seascapes", nil)

	w := env.request(http.MethodPut, "/api/categories", map[string]string{
		"id":   category.ID.String(),
		"name": "Mountain Landscapes",
	}, session)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp CategoryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "mountain-landscapes", resp.Category.Slug)

	w = env.request(http.MethodPut, "/api/categories", map[string]string{
		"id":   category.ID.String(),
		"name": "Seascapes",
	}, session)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCategoryHandler_Delete(t *testing.T) {
	env := newTestEnv(t)
	session := env.login()
	category := env.createCategory(session, "Botanical", nil)

	w := env.request(http.MethodDelete, "/api/categories", nil, session)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.request(http.MethodDelete, "/api/categories?id="+category.ID.String(), nil, session)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"success": true}, decodeMap(t, w))
}

func TestCategoryHandler_CollectionAndShop(t *testing.T) {
	env := newTestEnv(t)
	session := env.login()
	parent := env.createCategory(session, "Wall Art", nil)
	child := env.createCategory(session, "Abstract", &parent.ID)

	w := env.request(http.MethodPost, "/api/products", map[string]any{
		"title":       "Shapes in Blue",
		"description": "Abstract canvas",
		"categories":  []string{child.ID.String()},
		"variants":    []map[string]any{{"size": "A3", "price": "35"}},
	}, session)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	env.createProduct("Uncategorised Print", variant("A4", "20"))

	t.Run("collection includes child category products", func(t *testing.T) {
		w := env.request(http.MethodGet, "/api/collections/wall-art", nil)
		require.Equal(t, http.StatusOK, w.Code)
		collection := decodeData[catalogapp.CollectionResponse](t, w.Body.Bytes())
		assert.Equal(t, parent.ID, collection.Category.ID)
		require.Len(t, collection.Subcategories, 1)
		require.Len(t, collection.Products, 1)
		assert.Equal(t, "Shapes in Blue", collection.Products[0].Title)
	})

	t.Run("unknown collection", func(t *testing.T) {
		w := env.request(http.MethodGet, "/api/collections/nope", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("collections index", func(t *testing.T) {
		w := env.request(http.MethodGet, "/api/collections", nil)
		require.Equal(t, http.StatusOK, w.Code)
		index := decodeData[[]catalogapp.CollectionSummary](t, w.Body.Bytes())
		require.Len(t, index, 1)
		require.Len(t, index[0].Children, 1)
		assert.Equal(t, child.ID, index[0].Children[0].ID)
	})

	t.Run("shop filtered by category", func(t *testing.T) {
		w := env.request(http.MethodGet, "/api/shop?category=wall-art", nil)
		require.Equal(t, http.StatusOK, w.Code)
		shop := decodeData[catalogapp.ShopResponse](t, w.Body.Bytes())
		assert.Len(t, shop.Categories, 1)
		assert.Len(t, shop.Subcategories, 1)
		assert.Len(t, shop.Products, 1)
	})

	t.Run("shop unfiltered", func(t *testing.T) {
		w := env.request(http.MethodGet, "/api/shop", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeData[catalogapp.ShopResponse](t, w.Body.Bytes()).Products, 2)
	})

	t.Run("shop with unknown slug is empty", func(t *testing.T) {
		w := env.request(http.MethodGet, "/api/shop?category=nope", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decodeData[catalogapp.ShopResponse](t, w.Body.Bytes()).Products)
	})
}
