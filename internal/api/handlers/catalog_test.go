package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/fashionhub/internal/api/handlers"
	"github.com/aaravmahajanofficial/fashionhub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListProducts(t *testing.T) {

	catalogHandler := handlers.NewCatalogHandler(loadedCatalog(t))

	t.Run("All Products", func(t *testing.T) {
		rr := httptest.NewRecorder()

		catalogHandler.ListProducts().ServeHTTP(rr, newTestRequest(http.MethodGet, "/api/v1/products", ""))

		var products []models.Product
		resp := decode(t, rr, &products)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, resp.Success)
		assert.Len(t, products, 12)
	})

	t.Run("By Category", func(t *testing.T) {
		rr := httptest.NewRecorder()

		catalogHandler.ListProducts().ServeHTTP(rr, newTestRequest(http.MethodGet, "/api/v1/products?category=Womens", ""))

		var products []models.Product
		decode(t, rr, &products)
		assert.Len(t, products, 3)
	})

	t.Run("Name Search", func(t *testing.T) {
		rr := httptest.NewRecorder()

		catalogHandler.ListProducts().ServeHTTP(rr, newTestRequest(http.MethodGet, "/api/v1/products?q=shirt", ""))

		var products []models.Product
		decode(t, rr, &products)
		require.Len(t, products, 1)
		assert.Equal(t, "Classic Oxford Shirt", products[0].Name)
	})

	t.Run("Name Search With Category", func(t *testing.T) {
		rr := httptest.NewRecorder()

		catalogHandler.ListProducts().ServeHTTP(rr, newTestRequest(http.MethodGet, "/api/v1/products?q=S&category=womens", ""))

		var products []models.Product
		decode(t, rr, &products)
		assert.Len(t, products, 3)
	})

	t.Run("All Category Lists Everything", func(t *testing.T) {
		rr := httptest.NewRecorder()

		catalogHandler.ListProducts().ServeHTTP(rr, newTestRequest(http.MethodGet, "/api/v1/products?category=all", ""))

		var products []models.Product
		decode(t, rr, &products)
		assert.Len(t, products, 12)
	})

	t.Run("Unknown Category Is An Empty List", func(t *testing.T) {
		rr := httptest.NewRecorder()

		catalogHandler.ListProducts().ServeHTTP(rr, newTestRequest(http.MethodGet, "/api/v1/products?category=shoes", ""))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"data":[]`)
	})
}

func TestGetProduct(t *testing.T) {

	catalogHandler := handlers.NewCatalogHandler(loadedCatalog(t))

	t.Run("Success", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := newTestRequest(http.MethodGet, "/api/v1/products/7", "")
		req.SetPathValue("id", "7")

		catalogHandler.GetProduct().ServeHTTP(rr, req)

		var product models.Product
		decode(t, rr, &product)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Kids Rainbow Hoodie", product.Name)
	})

	t.Run("Not Found", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := newTestRequest(http.MethodGet, "/api/v1/products/404", "")
		req.SetPathValue("id", "404")

		catalogHandler.GetProduct().ServeHTTP(rr, req)

		resp := decode(t, rr, nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	})
}

func TestCreateProduct(t *testing.T) {

	t.Run("Success - Product Created", func(t *testing.T) {
		// Arrange
		catalog := loadedCatalog(t)
		catalogHandler := handlers.NewCatalogHandler(catalog)
		body := jsonBody(t, map[string]any{
			"name": "Beanie", "price": 15, "category": "accessories",
			"image": "https://images.fashionhub.io/products/beanie.jpg", "description": "Warm knit beanie.",
		})
		rr := httptest.NewRecorder()

		// Act
		catalogHandler.CreateProduct().ServeHTTP(rr, newTestRequest(http.MethodPost, "/api/v1/products", body))

		// Assert
		var product models.Product
		decode(t, rr, &product)
		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "13", product.ID)
		_, ok := catalog.GetByID(t.Context(), "13")
		assert.True(t, ok)
	})

	t.Run("Invalid Input - Bad JSON", func(t *testing.T) {
		catalogHandler := handlers.NewCatalogHandler(loadedCatalog(t))
		rr := httptest.NewRecorder()

		catalogHandler.CreateProduct().ServeHTTP(rr, newTestRequest(http.MethodPost, "/api/v1/products", "{invalid json"))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Invalid Input - Validation Error", func(t *testing.T) {
		// Arrange
		catalog := loadedCatalog(t)
		catalogHandler := handlers.NewCatalogHandler(catalog)
		body := jsonBody(t, map[string]any{"name": "Beanie", "price": -1, "category": "shoes", "image": "not a url"})
		rr := httptest.NewRecorder()

		// Act
		catalogHandler.CreateProduct().ServeHTTP(rr, newTestRequest(http.MethodPost, "/api/v1/products", body))

		// Assert
		resp := decode(t, rr, nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
		assert.Contains(t, resp.Error.Details, "Field Price must be greater than or equal to 0")
		assert.Contains(t, resp.Error.Details, "Field Description is required")
		assert.Len(t, catalog.List(t.Context()), 12)
	})

	t.Run("Invalid Input - Markup Rejected", func(t *testing.T) {
		// Arrange
		catalog := loadedCatalog(t)
		catalogHandler := handlers.NewCatalogHandler(catalog)
		body := jsonBody(t, map[string]any{
			"name": "Tee <Limited>", "price": 15, "category": "mens",
			"image": "https://images.fashionhub.io/products/tee.jpg", "description": "<b>Soft</b> cotton",
		})
		rr := httptest.NewRecorder()

		// Act
		catalogHandler.CreateProduct().ServeHTTP(rr, newTestRequest(http.MethodPost, "/api/v1/products", body))

		// Assert
		resp := decode(t, rr, nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, resp.Error.Details, "Field Name must not contain markup")
		assert.Contains(t, resp.Error.Details, "Field Description must not contain markup")
		assert.Len(t, catalog.List(t.Context()), 12)
	})

	t.Run("Invalid Input - Category Must Match Exactly", func(t *testing.T) {
		catalogHandler := handlers.NewCatalogHandler(loadedCatalog(t))
		body := jsonBody(t, map[string]any{
			"name": "Beanie", "price": 15, "category": "Accessories",
			"image": "https://images.fashionhub.io/products/beanie.jpg", "description": "Warm knit beanie.",
		})
		rr := httptest.NewRecorder()

		catalogHandler.CreateProduct().ServeHTTP(rr, newTestRequest(http.MethodPost, "/api/v1/products", body))

		resp := decode(t, rr, nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, resp.Error.Details, "Field Category must be one of [mens womens children accessories]")
	})

	t.Run("Invalid Input - Missing Price", func(t *testing.T) {
		catalogHandler := handlers.NewCatalogHandler(loadedCatalog(t))
		body := jsonBody(t, map[string]any{
			"name": "Beanie", "category": "accessories",
			"image": "https://images.fashionhub.io/products/beanie.jpg", "description": "Warm knit beanie.",
		})
		rr := httptest.NewRecorder()

		catalogHandler.CreateProduct().ServeHTTP(rr, newTestRequest(http.MethodPost, "/api/v1/products", body))

		resp := decode(t, rr, nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, resp.Error.Details, "Field Price is required")
	})
}

func TestUpdateProduct(t *testing.T) {

	t.Run("Success - Partial Update", func(t *testing.T) {
		catalogHandler := handlers.NewCatalogHandler(loadedCatalog(t))
		rr := httptest.NewRecorder()
		req := newTestRequest(http.MethodPatch, "/api/v1/products/1", `{"price": 44.5}`)
		req.SetPathValue("id", "1")

		catalogHandler.UpdateProduct().ServeHTTP(rr, req)

		var product models.Product
		decode(t, rr, &product)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, 44.5, product.Price)
		assert.Equal(t, "Classic Oxford Shirt", product.Name)
	})

	t.Run("Invalid Input - Markup Rejected", func(t *testing.T) {
		catalog := loadedCatalog(t)
		catalogHandler := handlers.NewCatalogHandler(catalog)
		rr := httptest.NewRecorder()
		req := newTestRequest(http.MethodPatch, "/api/v1/products/1", `{"name": "<i>Oxford</i>"}`)
		req.SetPathValue("id", "1")

		catalogHandler.UpdateProduct().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		product, _ := catalog.GetByID(t.Context(), "1")
		assert.Equal(t, "Classic Oxford Shirt", product.Name)
	})

	t.Run("Not Found", func(t *testing.T) {
		catalogHandler := handlers.NewCatalogHandler(loadedCatalog(t))
		rr := httptest.NewRecorder()
		req := newTestRequest(http.MethodPatch, "/api/v1/products/404", `{"price": 44.5}`)
		req.SetPathValue("id", "404")

		catalogHandler.UpdateProduct().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestDeleteProduct(t *testing.T) {

	catalog := loadedCatalog(t)
	catalogHandler := handlers.NewCatalogHandler(catalog)

	for _, id := range []string{"3", "404"} {
		rr := httptest.NewRecorder()
		req := newTestRequest(http.MethodDelete, "/api/v1/products/"+id, "")
		req.SetPathValue("id", id)

		catalogHandler.DeleteProduct().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
	}

	assert.Len(t, catalog.List(t.Context()), 11)
}

func TestSeedCatalog_LocalIsNoop(t *testing.T) {

	catalogHandler := handlers.NewCatalogHandler(loadedCatalog(t))
	rr := httptest.NewRecorder()

	catalogHandler.SeedCatalog().ServeHTTP(rr, newTestRequest(http.MethodPost, "/api/v1/admin/catalog/seed", ""))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"inserted":0`)
}
