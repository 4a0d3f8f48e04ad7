package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"unimarket/internal/delivery/http/middleware"
	"unimarket/internal/delivery/http/response"
	"unimarket/internal/domain/entity"
	"unimarket/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProductHandler holds dependencies for listing-related handlers.
type ProductHandler struct {
	uc     usecase.ProductUsecase
	logger *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler, injected by Fx.
func NewProductHandler(uc usecase.ProductUsecase, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: logger,
	}
}

// ListProducts returns listings matching the query parameters.
func (h *ProductHandler) ListProducts(c echo.Context) error {
	input := usecase.ListProductsInput{
		SellerID: c.QueryParam("sellerId"),
		Status:   c.QueryParam("status"),
		Category: c.QueryParam("category"),
	}

	if raw := c.QueryParam("minPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "minPrice must be a number")
		}
		input.MinPrice = &v
	}
	if raw := c.QueryParam("maxPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "maxPrice must be a number")
		}
		input.MaxPrice = &v
	}

	products, err := h.uc.ListProducts(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, products, "Products retrieved successfully")
}

// GetProduct returns one listing by id.
func (h *ProductHandler) GetProduct(c echo.Context) error {
	product, err := h.uc.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Product retrieved successfully")
}

type createProductRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Images      []string `json:"images"`
	Category    string   `json:"category"`
}

// CreateProduct stores a new listing owned by the current account.
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	email, ok := middleware.UserEmail(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account in token")
	}

	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	product, err := h.uc.CreateProduct(c.Request().Context(), email, usecase.CreateProductInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Images:      req.Images,
		Category:    req.Category,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, product, "Product created successfully")
}

type updateProductRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Images      []string `json:"images"`
	Category    *string  `json:"category"`
}

// UpdateProduct applies a partial update to an owned listing.
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	email, ok := middleware.UserEmail(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account in token")
	}

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}

	product, err := h.uc.UpdateProduct(c.Request().Context(), email, c.Param("id"), usecase.UpdateProductInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Images:      req.Images,
		Category:    req.Category,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Product updated successfully")
}

type changeStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ChangeStatus flips a listing between available and sold.
func (h *ProductHandler) ChangeStatus(c echo.Context) error {
	email, ok := middleware.UserEmail(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account in token")
	}

	var req changeStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}

	err := h.uc.ChangeStatus(c.Request().Context(), email, c.Param("id"), entity.ProductStatus(req.Status))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Product status updated successfully")
}

// DeleteProduct removes an owned listing.
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	email, ok := middleware.UserEmail(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account in token")
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), email, c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Product deleted successfully")
}

// ShareQR renders a PNG QR code that links to the listing.
func (h *ProductHandler) ShareQR(c echo.Context) error {
	png, err := h.uc.GenerateShareQR(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
