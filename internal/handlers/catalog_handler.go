package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"dropship-catalog-service/internal/catalog"
	"dropship-catalog-service/internal/clients"
	"dropship-catalog-service/internal/middleware"
	"dropship-catalog-service/internal/models"
	"dropship-catalog-service/internal/repository"
)

type CatalogHandler struct {
	repo          *repository.CatalogRepository
	inventoryRepo *repository.InventoryRepository
	shipping      *clients.ShippingClient
}

func NewCatalogHandler(repo *repository.CatalogRepository, inventoryRepo *repository.InventoryRepository, shipping *clients.ShippingClient) *CatalogHandler {
	return &CatalogHandler{
		repo:          repo,
		inventoryRepo: inventoryRepo,
		shipping:      shipping,
	}
}

func validationError(c *gin.Context, message, field string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Success: false,
		Error: models.Error{
			Code:    "VALIDATION_ERROR",
			Message: message,
			Field:   field,
		},
	})
}

func notFoundError(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, models.ErrorResponse{
		Success: false,
		Error: models.Error{
			Code:    "NOT_FOUND",
			Message: message,
		},
	})
}

func internalError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Success: false,
		Error: models.Error{
			Code:    "INTERNAL_ERROR",
			Message: err.Error(),
		},
	})
}

func paginationInfo(page, limit int, total int64) *models.PaginationInfo {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &models.PaginationInfo{
		Page:        page,
		Limit:       limit,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}
}

// CreateProduct lists a new supplier product
// @Summary Create a supplier product
// @Tags catalog
// @Accept json
// @Produce json
// @Param product body models.CreateProductRequest true "Product"
// @Success 201 {object} models.ProductResponse
// @Router /catalog [post]
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	userID := middleware.GetUserID(c)

	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err.Error(), "")
		return
	}

	product := &models.SupplierProduct{
		TenantID:    tenantID,
		SupplierID:  req.SupplierID,
		Name:        req.Name,
		SKU:         req.SKU,
		Description: req.Description,
		Brand:       req.Brand,
		CategoryID:  req.CategoryID,
		Status:      models.ProductStatusDraft,
		Tags:        req.Tags,
		CreatedBy:   &userID,
	}
	if req.ShippingCost != nil {
		product.ShippingCost = *req.ShippingCost
	}
	for _, v := range req.Variants {
		model := v.Model
		if model == "" {
			model = catalog.FallbackModel
		}
		product.Variants = append(product.Variants, &models.ProductVariant{
			SKU:            v.SKU,
			Name:           v.Name,
			Model:          model,
			Color:          v.Color,
			Images:         v.Images,
			SuggestedPrice: v.SuggestedPrice,
			Stock:          v.Stock,
			Status:         "ACTIVE",
		})
	}

	if err := h.repo.CreateProduct(c.Request.Context(), product); err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.ProductResponse{Success: true, Data: product})
}

// GetProducts lists the supplier catalog
// @Summary Browse the supplier catalog
// @Tags catalog
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Param status query string false "Status filter"
// @Param search query string false "Name/SKU search"
// @Success 200 {object} models.ProductListResponse
// @Router /catalog [get]
func (h *CatalogHandler) GetProducts(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := models.ListProductsQuery{
		Page:       page,
		Limit:      limit,
		Status:     c.Query("status"),
		SupplierID: c.Query("supplierId"),
		CategoryID: c.Query("categoryId"),
		Search:     c.Query("search"),
	}

	products, total, err := h.repo.ListProducts(c.Request.Context(), tenantID, query)
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ProductListResponse{
		Success:    true,
		Data:       products,
		Pagination: paginationInfo(page, limit, total),
	})
}

// GetProductDetail returns the product page payload: variant records in
// their source shape, shipping cost, the source discriminator, and the
// grouping classification with its default selection.
// @Summary Get product detail for the dropshipper product page
// @Tags catalog
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.ProductDetailResponse
// @Router /catalog/{id} [get]
func (h *CatalogHandler) GetProductDetail(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	userID := middleware.GetUserID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		validationError(c, "Invalid product ID", "id")
		return
	}

	product, err := h.repo.GetProduct(c.Request.Context(), tenantID, id)
	if err != nil {
		if repository.IsNotFound(err) {
			notFoundError(c, "Product not found")
			return
		}
		internalError(c, err)
		return
	}

	// A product the caller has already imported renders from their own
	// inventory; otherwise it renders from the supplier catalog.
	source := models.ProductSourceCatalog
	var records []catalog.RawVariantRecord
	item, invErr := h.inventoryRepo.GetByProduct(c.Request.Context(), tenantID, userID, id)
	if invErr == nil {
		source = models.ProductSourceOwned
		records = models.OwnedRawRecords(item)
	} else {
		records = models.CatalogRawRecords(product)
	}

	shippingCost := product.ShippingCost
	if shippingCost <= 0 {
		shippingCost = h.shipping.GetShippingCost(tenantID, id.String())
	}

	detail := &models.ProductDetail{
		Product:      product,
		Type:         source,
		ShippingCost: shippingCost,
		Variants:     records,
		Grouping:     models.NewGroupingView(catalog.NormalizeAll(records)),
	}

	c.JSON(http.StatusOK, models.ProductDetailResponse{Success: true, Data: detail})
}

// UpdateProduct applies a partial update to a supplier product
// @Summary Update a supplier product
// @Tags catalog
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param product body models.UpdateProductRequest true "Fields to update"
// @Success 200 {object} models.ProductResponse
// @Router /catalog/{id} [put]
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		validationError(c, "Invalid product ID", "id")
		return
	}

	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err.Error(), "")
		return
	}

	product, err := h.repo.UpdateProduct(c.Request.Context(), tenantID, id, req)
	if err != nil {
		if repository.IsNotFound(err) {
			notFoundError(c, "Product not found")
			return
		}
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ProductResponse{Success: true, Data: product})
}

// DeleteProduct soft-deletes a supplier product
// @Summary Delete a supplier product
// @Tags catalog
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.SuccessResponse
// @Router /catalog/{id} [delete]
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		validationError(c, "Invalid product ID", "id")
		return
	}

	if err := h.repo.DeleteProduct(c.Request.Context(), tenantID, id); err != nil {
		if repository.IsNotFound(err) {
			notFoundError(c, "Product not found")
			return
		}
		internalError(c, err)
		return
	}

	message := "Product deleted"
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: &message})
}
