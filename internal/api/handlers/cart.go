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

type CartHandler struct {
	cart      *service.CartService
	catalog   *service.CatalogService
	validator *validator.Validate
}

func NewCartHandler(cart *service.CartService, catalog *service.CatalogService) *CartHandler {
	return &CartHandler{cart: cart, catalog: catalog, validator: utils.NewValidator()}
}

// GetCart godoc
//	@Summary		Get the cart
//	@Description	Returns the cart lines with item count and total.
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	models.CartSnapshot	"Current cart"
//	@Router			/cart [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, h.cart.Snapshot())
	}
}

// AddItem godoc
//	@Summary		Add a product to the cart
//	@Description	Adds one unit of a catalog product, merging with an existing line.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body	models.AddItemRequest	true	"Product to add"
//	@Success		200	{object}	models.CartSnapshot	"Updated cart"
//	@Failure		400	{object}	response.ErrorResponse	"Validation error"
//	@Failure		404	{object}	response.ErrorResponse	"Product not found"
//	@Router			/cart/items [post]
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		product, ok := h.catalog.GetByID(r.Context(), req.ProductID)
		if !ok {
			response.Error(w, errors.NotFoundError("Product not found"))
			return
		}

		h.cart.Add(*product)

		response.Success(w, http.StatusOK, h.cart.Snapshot())
	}
}

// UpdateQuantity godoc
//	@Summary		Set a line quantity
//	@Description	Sets the quantity exactly. Zero or less removes the line.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			id	path	string	true	"Product ID"
//	@Param			quantity	body	models.UpdateQuantityRequest	true	"New quantity"
//	@Success		200	{object}	models.CartSnapshot	"Updated cart"
//	@Failure		400	{object}	response.ErrorResponse	"Validation error"
//	@Router			/cart/items/{id} [put]
func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.UpdateQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		h.cart.UpdateQuantity(r.PathValue("id"), *req.Quantity)

		response.Success(w, http.StatusOK, h.cart.Snapshot())
	}
}

// RemoveItem godoc
//	@Summary		Remove a cart line
//	@Description	Removes the line for the product.
//	@Tags			Cart
//	@Produce		json
//	@Param			id	path	string	true	"Product ID"
//	@Success		200	{object}	models.CartSnapshot	"Updated cart"
//	@Router			/cart/items/{id} [delete]
func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		h.cart.Remove(r.PathValue("id"))

		response.Success(w, http.StatusOK, h.cart.Snapshot())
	}
}

// ClearCart godoc
//	@Summary		Clear the cart
//	@Description	Removes every line.
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	models.CartSnapshot	"Empty cart"
//	@Router			/cart [delete]
func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		h.cart.Clear()

		response.Success(w, http.StatusOK, h.cart.Snapshot())
	}
}

// Checkout godoc
//	@Summary		Check out
//	@Description	Returns a receipt for the current lines and clears the cart.
//	@Tags			Cart
//	@Produce		json
//	@Success		201	{object}	models.Receipt	"Receipt"
//	@Failure		400	{object}	response.ErrorResponse	"Cart is empty"
//	@Router			/cart/checkout [post]
func (h *CartHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		receipt, err := h.cart.Checkout()
		if err != nil {
			logger.Warn("Checkout rejected", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Checkout completed", slog.Int("items", receipt.TotalItems), slog.Float64("total", receipt.TotalPrice))
		response.Success(w, http.StatusCreated, receipt)
	}
}
