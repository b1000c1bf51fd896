package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/fashionhub/internal/api/middleware"
	"github.com/aaravmahajanofficial/fashionhub/internal/errors"
	"github.com/aaravmahajanofficial/fashionhub/internal/models"
	service "github.com/aaravmahajanofficial/fashionhub/internal/services"
	"github.com/aaravmahajanofficial/fashionhub/internal/utils"
	"github.com/aaravmahajanofficial/fashionhub/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CatalogHandler struct {
	catalog   *service.CatalogService
	validator *validator.Validate
}

func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, validator: utils.NewValidator()}
}

// ListProducts godoc
//	@Summary		List products
//	@Description	Lists the catalog in stored order. q filters by a case-insensitive substring of the name, category by department (all matches every department).
//	@Tags			Products
//	@Produce		json
//	@Param			q	query	string	false	"Name search"
//	@Param			category	query	string	false	"Category or all"
//	@Success		200	{array}	models.Product	"Matching products"
//	@Router			/products [get]
func (h *CatalogHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		query := r.URL.Query()
		category := query.Get("category")

		if q := query.Get("q"); q != "" {
			response.Success(w, http.StatusOK, h.catalog.Search(r.Context(), q, category))
			return
		}

		if category != "" && category != service.AllCategories {
			response.Success(w, http.StatusOK, h.catalog.GetByCategory(r.Context(), category))
			return
		}

		response.Success(w, http.StatusOK, h.catalog.List(r.Context()))
	}
}

// GetProduct godoc
//	@Summary		Get a product by ID
//	@Description	Retrieves a single product from the catalog.
//	@Tags			Products
//	@Produce		json
//	@Param			id	path	string	true	"Product ID"
//	@Success		200	{object}	models.Product	"Product found"
//	@Failure		404	{object}	response.ErrorResponse	"Product not found"
//	@Router			/products/{id} [get]
func (h *CatalogHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		product, ok := h.catalog.GetByID(r.Context(), r.PathValue("id"))
		if !ok {
			response.Error(w, errors.NotFoundError("Product not found"))
			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

// CreateProduct godoc
//	@Summary		Create a new product
//	@Description	Adds a product under a fresh id. Requires an administrator.
//	@Tags			Products
//	@Accept			json
//	@Produce		json
//	@Param			product	body	models.CreateProductRequest	true	"Product details"
//	@Success		201	{object}	models.Product	"Product created"
//	@Failure		400	{object}	response.ErrorResponse	"Validation error"
//	@Failure		401	{object}	response.ErrorResponse	"Sign in required"
//	@Failure		403	{object}	response.ErrorResponse	"Administrator access required"
//	@Failure		500	{object}	response.ErrorResponse	"Store write failed"
//	@Router			/products [post]
func (h *CatalogHandler) CreateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		product, err := h.catalog.Add(r.Context(), req.Input())
		if err != nil {
			logger.Error("Error during product creation", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Product created successfully", slog.String("productId", product.ID))
		response.Success(w, http.StatusCreated, product)
	}
}

// UpdateProduct godoc
//	@Summary		Update a product
//	@Description	Merges the given fields into the product. Requires an administrator.
//	@Tags			Products
//	@Accept			json
//	@Produce		json
//	@Param			id	path	string	true	"Product ID"
//	@Param			product	body	models.UpdateProductRequest	true	"Fields to change"
//	@Success		200	{object}	models.Product	"Product updated"
//	@Failure		400	{object}	response.ErrorResponse	"Validation error"
//	@Failure		401	{object}	response.ErrorResponse	"Sign in required"
//	@Failure		403	{object}	response.ErrorResponse	"Administrator access required"
//	@Failure		404	{object}	response.ErrorResponse	"Product not found"
//	@Failure		500	{object}	response.ErrorResponse	"Store write failed"
//	@Router			/products/{id} [patch]
func (h *CatalogHandler) UpdateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())
		id := r.PathValue("id")

		var req models.UpdateProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if _, ok := h.catalog.GetByID(r.Context(), id); !ok {
			response.Error(w, errors.NotFoundError("Product not found"))
			return
		}

		if err := h.catalog.Update(r.Context(), id, &req); err != nil {
			logger.Error("Error during product update", slog.String("productId", id), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		product, ok := h.catalog.GetByID(r.Context(), id)
		if !ok {
			response.Error(w, errors.NotFoundError("Product not found"))
			return
		}

		logger.Info("Product updated successfully", slog.String("productId", id))
		response.Success(w, http.StatusOK, product)
	}
}

// DeleteProduct godoc
//	@Summary		Delete a product
//	@Description	Removes the product. Deleting an unknown id succeeds. Requires an administrator.
//	@Tags			Products
//	@Param			id	path	string	true	"Product ID"
//	@Success		204	"Product deleted"
//	@Failure		401	{object}	response.ErrorResponse	"Sign in required"
//	@Failure		403	{object}	response.ErrorResponse	"Administrator access required"
//	@Failure		500	{object}	response.ErrorResponse	"Store write failed"
//	@Router			/products/{id} [delete]
func (h *CatalogHandler) DeleteProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())
		id := r.PathValue("id")

		if err := h.catalog.Delete(r.Context(), id); err != nil {
			logger.Error("Error during product deletion", slog.String("productId", id), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// ListCategories godoc
//	@Summary		List categories
//	@Description	Lists the fixed storefront departments.
//	@Tags			Products
//	@Produce		json
//	@Success		200	{array}	string	"Categories"
//	@Router			/categories [get]
func (h *CatalogHandler) ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, h.catalog.Categories())
	}
}

type seedResponse struct {
	Inserted int `json:"inserted"`
}

// SeedCatalog godoc
//	@Summary		Seed the catalog
//	@Description	Copies the bundled dataset into the product store. Requires an administrator.
//	@Tags			Admin
//	@Produce		json
//	@Success		200	{object}	handlers.seedResponse	"Rows inserted"
//	@Failure		401	{object}	response.ErrorResponse	"Sign in required"
//	@Failure		403	{object}	response.ErrorResponse	"Administrator access required"
//	@Failure		500	{object}	response.ErrorResponse	"Store write failed"
//	@Router			/admin/catalog/seed [post]
func (h *CatalogHandler) SeedCatalog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		inserted, err := h.catalog.Seed(r.Context())
		if err != nil {
			logger.Error("Error during catalog seeding", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Catalog seeded", slog.Int("inserted", inserted))
		response.Success(w, http.StatusOK, seedResponse{Inserted: inserted})
	}
}
