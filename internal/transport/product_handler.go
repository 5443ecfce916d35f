package transport

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"shopfront/internal/catalog"
	"shopfront/internal/domain"
	"shopfront/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CatalogService is the slice of the catalog store the handlers consume
type CatalogService interface {
	ListProducts(ctx context.Context, params catalog.ListParams) (*catalog.ProductPage, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	ListProductsBySeller(ctx context.Context, sellerID uuid.UUID) ([]*domain.Product, error)
	SaveProduct(ctx context.Context, draft catalog.ProductDraft) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) (bool, error)
	ListCategories(ctx context.Context) ([]*domain.Category, error)
}

// CreateProductRequest represents the create payload. Validation lives here
// in the transport layer; the catalog store accepts drafts as-is.
type CreateProductRequest struct {
	Name           string            `json:"name" validate:"required"`
	Description    string            `json:"description"`
	Price          float64           `json:"price" validate:"gte=0"`
	DiscountPrice  *float64          `json:"discount_price" validate:"omitempty,gte=0"`
	Stock          int               `json:"stock" validate:"gte=0"`
	SKU            string            `json:"sku"`
	CategoryID     uuid.UUID         `json:"category_id" validate:"required"`
	Images         []string          `json:"images" validate:"min=1,dive,url"`
	Specifications map[string]string `json:"specifications"`
	Tags           []string          `json:"tags"`
	Rating         float64           `json:"rating" validate:"gte=0,lte=5"`
	IsActive       *bool             `json:"is_active"`
}

// UpdateProductRequest represents the update payload. Absent fields are left
// unchanged on the stored record.
type UpdateProductRequest struct {
	Name           *string           `json:"name" validate:"omitempty,min=1"`
	Description    *string           `json:"description"`
	Price          *float64          `json:"price" validate:"omitempty,gte=0"`
	DiscountPrice  *float64          `json:"discount_price" validate:"omitempty,gte=0"`
	Stock          *int              `json:"stock" validate:"omitempty,gte=0"`
	SKU            *string           `json:"sku"`
	CategoryID     *uuid.UUID        `json:"category_id"`
	Images         []string          `json:"images" validate:"omitempty,min=1,dive,url"`
	Specifications map[string]string `json:"specifications"`
	Tags           []string          `json:"tags"`
	Rating         *float64          `json:"rating" validate:"omitempty,gte=0,lte=5"`
	IsActive       *bool             `json:"is_active"`
}

// ProductHandler handles HTTP requests for catalog operations
type ProductHandler struct {
	catalog CatalogService
	logger  *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(catalog CatalogService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// RegisterRoutes registers all catalog routes. Mutations sit behind auth plus
// the seller role check.
func (h *ProductHandler) RegisterRoutes(r chi.Router, authMiddleware, sellerMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(sellerMiddleware)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})

	r.Get("/api/categories", h.ListCategories)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(sellerMiddleware)
		r.Get("/api/seller/products", h.ListMine)
	})
}

// List handles the paginated, searchable, sortable product listing.
// Malformed page or page_size values fall back to defaults rather than
// erroring, matching the catalog's permissive query contract.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("page_size"))

	params := catalog.ListParams{
		Page:     page,
		PageSize: pageSize,
		Search:   q.Get("search"),
		Sort:     catalog.SortKey(q.Get("sort")),
	}

	result, err := h.catalog.ListProducts(r.Context(), params)
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, result)
}

// Get handles product detail lookups
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to get product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// ListMine returns the authenticated seller's own products, inactive ones
// included, in most-recently-created order.
func (h *ProductHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	products, err := h.catalog.ListProductsBySeller(r.Context(), claims.UserID)
	if err != nil {
		h.logger.Error("Failed to list seller products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// Create handles product creation. The authenticated seller becomes the owner.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreateProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Create product validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.DiscountPrice != nil && *req.DiscountPrice > req.Price {
		middleware.RespondWithError(w, http.StatusBadRequest, "discount price must not exceed price")
		return
	}

	sellerID := claims.UserID
	draft := catalog.ProductDraft{
		Name:           &req.Name,
		Description:    &req.Description,
		Price:          &req.Price,
		DiscountPrice:  req.DiscountPrice,
		Stock:          &req.Stock,
		SKU:            &req.SKU,
		CategoryID:     &req.CategoryID,
		SellerID:       &sellerID,
		Images:         req.Images,
		Specifications: req.Specifications,
		Tags:           req.Tags,
		Rating:         &req.Rating,
		IsActive:       req.IsActive,
	}

	product, err := h.catalog.SaveProduct(r.Context(), draft)
	if err != nil {
		h.logger.Error("Failed to create product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create product")
		return
	}

	h.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("seller_id", sellerID.String()),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// Update handles product edits. Sellers may only edit their own products;
// admins may edit any.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req UpdateProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Update product validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	existing, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to get product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update product")
		return
	}

	if claims.Role != domain.RoleAdmin && existing.SellerID != claims.UserID {
		middleware.RespondWithError(w, http.StatusForbidden, "you do not own this product")
		return
	}

	price := existing.Price
	if req.Price != nil {
		price = *req.Price
	}
	if req.DiscountPrice != nil && *req.DiscountPrice > price {
		middleware.RespondWithError(w, http.StatusBadRequest, "discount price must not exceed price")
		return
	}

	draft := catalog.ProductDraft{
		ID:             id,
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		DiscountPrice:  req.DiscountPrice,
		Stock:          req.Stock,
		SKU:            req.SKU,
		CategoryID:     req.CategoryID,
		Images:         req.Images,
		Specifications: req.Specifications,
		Tags:           req.Tags,
		Rating:         req.Rating,
		IsActive:       req.IsActive,
	}

	product, err := h.catalog.SaveProduct(r.Context(), draft)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to update product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update product")
		return
	}

	h.logger.Info("Product updated", zap.String("product_id", product.ID.String()))
	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Delete handles product removal. Deleting an unknown ID is a 404, but a
// repeat delete of a just-removed ID still resolves the same way because the
// catalog reports whether the collection shrank.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if claims.Role != domain.RoleAdmin {
		existing, err := h.catalog.GetProduct(r.Context(), id)
		if err == nil && existing.SellerID != claims.UserID {
			middleware.RespondWithError(w, http.StatusForbidden, "you do not own this product")
			return
		}
	}

	removed, err := h.catalog.DeleteProduct(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to delete product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete product")
		return
	}

	if !removed {
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		return
	}

	h.logger.Info("Product deleted", zap.String("product_id", id.String()))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// ListCategories returns the full read-only category collection
func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		h.logger.Error("Failed to list categories", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, categories)
}
