package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"dropship-catalog-service/internal/events"
	"dropship-catalog-service/internal/middleware"
	"dropship-catalog-service/internal/models"
	"dropship-catalog-service/internal/repository"
)

type InventoryHandler struct {
	repo        *repository.InventoryRepository
	catalogRepo *repository.CatalogRepository
	publisher   *events.Publisher
}

func NewInventoryHandler(repo *repository.InventoryRepository, catalogRepo *repository.CatalogRepository, publisher *events.Publisher) *InventoryHandler {
	return &InventoryHandler{
		repo:        repo,
		catalogRepo: catalogRepo,
		publisher:   publisher,
	}
}

// ImportProduct copies a supplier product into the caller's inventory
// @Summary Import a catalog product into personal inventory
// @Tags inventory
// @Accept json
// @Produce json
// @Param request body models.ImportInventoryRequest true "Import request"
// @Success 201 {object} models.InventoryItemResponse
// @Router /inventory/import [post]
func (h *InventoryHandler) ImportProduct(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	userID := middleware.GetUserID(c)

	var req models.ImportInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err.Error(), "")
		return
	}

	// The product and every referenced variant must exist and each
	// selling price must cover the supplier's suggested price.
	product, err := h.catalogRepo.GetProduct(c.Request.Context(), tenantID, req.ProductID)
	if err != nil {
		if repository.IsNotFound(err) {
			notFoundError(c, "Product not found")
			return
		}
		internalError(c, err)
		return
	}

	known := make(map[string]float64, len(product.Variants))
	for _, v := range product.Variants {
		known[v.ID.String()] = v.SuggestedPrice
	}
	for i, v := range req.Variants {
		suggested, ok := known[v.VariantID.String()]
		if !ok {
			validationError(c, fmt.Sprintf("Variant %s does not belong to product", v.VariantID), fmt.Sprintf("variants[%d].variantId", i))
			return
		}
		if v.Price < suggested {
			validationError(c, "Selling price cannot be below the product price", fmt.Sprintf("variants[%d].price", i))
			return
		}
	}

	item, err := h.repo.Import(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyImported) {
			c.JSON(http.StatusConflict, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "ALREADY_IMPORTED",
					Message: "Product is already in your inventory",
				},
			})
			return
		}
		internalError(c, err)
		return
	}

	h.publisher.PublishProductImported(c.Request.Context(), tenantID, userID, req.ProductID.String(), len(req.Variants))

	c.JSON(http.StatusCreated, models.InventoryItemResponse{Success: true, Data: item})
}

// GetInventory lists the caller's imported products
// @Summary List personal inventory
// @Tags inventory
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Param deleted query bool false "List soft-deleted items instead"
// @Success 200 {object} models.InventoryListResponse
// @Router /inventory [get]
func (h *InventoryHandler) GetInventory(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	userID := middleware.GetUserID(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	includeDeleted, _ := strconv.ParseBool(c.DefaultQuery("deleted", "false"))

	query := models.ListInventoryQuery{
		Page:           page,
		Limit:          limit,
		Status:         c.Query("status"),
		IncludeDeleted: includeDeleted,
	}

	items, total, err := h.repo.List(c.Request.Context(), tenantID, userID, query)
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.InventoryListResponse{
		Success:    true,
		Data:       items,
		Pagination: paginationInfo(page, limit, total),
	})
}

// GetInventoryItem returns one imported product
// @Summary Get an inventory item
// @Tags inventory
// @Produce json
// @Param id path string true "Inventory item ID"
// @Success 200 {object} models.InventoryItemResponse
// @Router /inventory/{id} [get]
func (h *InventoryHandler) GetInventoryItem(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	userID := middleware.GetUserID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		validationError(c, "Invalid inventory item ID", "id")
		return
	}

	item, err := h.repo.Get(c.Request.Context(), tenantID, userID, id)
	if err != nil {
		if repository.IsNotFound(err) {
			notFoundError(c, "Inventory item not found")
			return
		}
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.InventoryItemResponse{Success: true, Data: item})
}

// DeleteInventoryItem soft-deletes an imported product
// @Summary Remove an inventory item (soft delete)
// @Tags inventory
// @Produce json
// @Param id path string true "Inventory item ID"
// @Success 200 {object} models.SuccessResponse
// @Router /inventory/{id} [delete]
func (h *InventoryHandler) DeleteInventoryItem(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	userID := middleware.GetUserID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		validationError(c, "Invalid inventory item ID", "id")
		return
	}

	if err := h.repo.SoftDelete(c.Request.Context(), tenantID, userID, id); err != nil {
		if repository.IsNotFound(err) {
			notFoundError(c, "Inventory item not found")
			return
		}
		internalError(c, err)
		return
	}

	message := "Inventory item removed"
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: &message})
}

// RestoreInventoryItem restores a soft-deleted item
// @Summary Restore a removed inventory item
// @Tags inventory
// @Produce json
// @Param id path string true "Inventory item ID"
// @Success 200 {object} models.InventoryItemResponse
// @Router /inventory/{id}/restore [post]
func (h *InventoryHandler) RestoreInventoryItem(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	userID := middleware.GetUserID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		validationError(c, "Invalid inventory item ID", "id")
		return
	}

	item, err := h.repo.Restore(c.Request.Context(), tenantID, userID, id)
	if err != nil {
		if repository.IsNotFound(err) {
			notFoundError(c, "No removed inventory item to restore")
			return
		}
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.InventoryItemResponse{Success: true, Data: item})
}

var exportHeaders = []string{"Product", "SKU", "Variant", "Model", "Color", "Suggested Price", "Selling Price", "Stock", "Status"}

// ExportInventory downloads the caller's inventory as CSV or XLSX
// @Summary Export personal inventory
// @Tags inventory
// @Produce octet-stream
// @Param format query string false "csv or xlsx" default(xlsx)
// @Success 200 {file} binary
// @Router /inventory/export [get]
func (h *InventoryHandler) ExportInventory(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	userID := middleware.GetUserID(c)

	items, _, err := h.repo.List(c.Request.Context(), tenantID, userID, models.ListInventoryQuery{Page: 1, Limit: 1000})
	if err != nil {
		internalError(c, err)
		return
	}

	rows := exportRows(items)

	switch c.DefaultQuery("format", "xlsx") {
	case "csv":
		h.writeCSV(c, rows)
	case "xlsx":
		h.writeXLSX(c, rows)
	default:
		validationError(c, "Format must be csv or xlsx", "format")
	}
}

func exportRows(items []models.InventoryItem) [][]string {
	rows := [][]string{}
	for _, item := range items {
		productName, productSKU := "", ""
		if item.Product != nil {
			productName = item.Product.Name
			productSKU = item.Product.SKU
		}
		for _, iv := range item.Variants {
			name, model, color, suggested := "", "", "", ""
			if iv.Variant != nil {
				name = iv.Variant.Name
				model = iv.Variant.Model
				if iv.Variant.Color != nil {
					color = *iv.Variant.Color
				}
				suggested = strconv.FormatFloat(iv.Variant.SuggestedPrice, 'f', 2, 64)
			}
			rows = append(rows, []string{
				productName,
				productSKU,
				name,
				model,
				color,
				suggested,
				strconv.FormatFloat(iv.Price, 'f', 2, 64),
				strconv.Itoa(iv.Stock),
				iv.Status,
			})
		}
	}
	return rows
}

func (h *InventoryHandler) writeCSV(c *gin.Context, rows [][]string) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=inventory_export.csv")

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeaders)
	for _, row := range rows {
		writer.Write(row)
	}
}

func (h *InventoryHandler) writeXLSX(c *gin.Context, rows [][]string) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Inventory"
	f.SetSheetName("Sheet1", sheet)

	for col, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, header)
	}
	for i, row := range rows {
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=inventory_export.xlsx")

	if err := f.Write(c.Writer); err != nil {
		internalError(c, err)
	}
}
