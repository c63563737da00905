package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"dropship-catalog-service/internal/catalog"
	"dropship-catalog-service/internal/clients/shopify"
	"dropship-catalog-service/internal/events"
	"dropship-catalog-service/internal/middleware"
	"dropship-catalog-service/internal/models"
	"dropship-catalog-service/internal/repository"
)

type PushHandler struct {
	storeRepo     *repository.StoreRepository
	inventoryRepo *repository.InventoryRepository
	catalogRepo   *repository.CatalogRepository
	publisher     *events.Publisher
	logger        *logrus.Entry
	newClient     func(store *models.ConnectedStore) *shopify.Client
}

func NewPushHandler(storeRepo *repository.StoreRepository, inventoryRepo *repository.InventoryRepository, catalogRepo *repository.CatalogRepository, publisher *events.Publisher, logger *logrus.Logger) *PushHandler {
	return &PushHandler{
		storeRepo:     storeRepo,
		inventoryRepo: inventoryRepo,
		catalogRepo:   catalogRepo,
		publisher:     publisher,
		logger:        logger.WithField("component", "push"),
		newClient: func(store *models.ConnectedStore) *shopify.Client {
			return shopify.NewClient(store.ShopDomain, store.AccessToken)
		},
	}
}

// ListStores returns the caller's connected stores
// @Summary List connected stores
// @Tags stores
// @Produce json
// @Success 200 {object} models.StoreListResponse
// @Router /stores [get]
func (h *PushHandler) ListStores(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	userID := middleware.GetUserID(c)

	stores, err := h.storeRepo.List(c.Request.Context(), tenantID, userID)
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.StoreListResponse{Success: true, Data: stores})
}

// PushProduct pushes an imported product's current selection to a store.
// The payload shape follows the product's grouping case: the sole
// variant, the whole single model, the selected model's variant, or the
// active tab's variants.
// @Summary Push a product selection to a connected store
// @Tags stores
// @Accept json
// @Produce json
// @Param storeId path string true "Store ID"
// @Param request body models.PushRequest true "Push request"
// @Success 200 {object} models.PushResponse
// @Router /stores/{storeId}/push [post]
func (h *PushHandler) PushProduct(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	userID := middleware.GetUserID(c)

	storeID, err := uuid.Parse(c.Param("storeId"))
	if err != nil {
		validationError(c, "Invalid store ID", "storeId")
		return
	}

	var req models.PushRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err.Error(), "")
		return
	}

	store, err := h.storeRepo.Get(c.Request.Context(), tenantID, storeID)
	if err != nil {
		if repository.IsNotFound(err) {
			notFoundError(c, "Store not found")
			return
		}
		internalError(c, err)
		return
	}
	if store.Status != models.StoreStatusConnected {
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "STORE_NOT_CONNECTED",
				Message: "Store is not connected",
			},
		})
		return
	}

	// Only imported products can be pushed; the import carries the
	// dropshipper's selling prices.
	item, err := h.inventoryRepo.GetByProduct(c.Request.Context(), tenantID, userID, req.ProductID)
	if err != nil {
		if repository.IsNotFound(err) {
			notFoundError(c, "Product is not in your inventory")
			return
		}
		internalError(c, err)
		return
	}

	records := models.OwnedRawRecords(item)
	grouping := catalog.GroupByModel(catalog.NormalizeAll(records))
	kind := catalog.Classify(grouping)
	selection := catalog.Selection{Model: req.Model, VariantID: req.VariantID}

	prices := models.SellingPrices(item)
	payload := catalog.BuildPushPayload(grouping, kind, selection, func(v catalog.NormalizedVariant) float64 {
		if p, ok := prices[v.ID]; ok {
			return p
		}
		return v.SuggestedPrice
	})
	if len(payload) == 0 {
		validationError(c, "Nothing to push for the given selection", "")
		return
	}

	input := h.buildProductInput(item, grouping, kind, selection, prices)

	client := h.newClient(store)
	externalID, err := client.CreateProduct(c.Request.Context(), input)
	if err != nil {
		h.logger.WithError(err).WithFields(logrus.Fields{
			"store_id":   storeID,
			"product_id": req.ProductID,
		}).Error("Store push failed")
		_ = h.storeRepo.MarkStatus(c.Request.Context(), storeID, models.StoreStatusError)
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "PUSH_FAILED",
				Message: "Failed to push product to store",
			},
		})
		return
	}

	now := time.Now().UTC()
	if err := h.storeRepo.TouchLastPush(c.Request.Context(), storeID, now); err != nil {
		h.logger.WithError(err).Warn("Failed to record push timestamp")
	}

	h.publisher.PublishProductPushed(c.Request.Context(), tenantID, userID, req.ProductID.String(), storeID.String(), externalID)

	c.JSON(http.StatusOK, models.PushResponse{
		Success: true,
		Data: &models.PushResult{
			StoreID:           storeID,
			ProductID:         req.ProductID,
			CaseKind:          kind,
			ExternalProductID: externalID,
			Variants:          payload,
			PushedAt:          now,
		},
	})
}

// buildProductInput maps the push selection onto the Shopify product
// payload, carrying stock and price per variant.
func (h *PushHandler) buildProductInput(item *models.InventoryItem, grouping catalog.ModelGroups, kind catalog.CaseKind, selection catalog.Selection, prices map[string]float64) shopify.ProductInput {
	stock := models.StockLevels(item)

	detailed := catalog.BuildDetailedPushPayload(grouping, kind, selection, func(v catalog.NormalizedVariant) (int, float64, string) {
		price := v.SuggestedPrice
		if p, ok := prices[v.ID]; ok {
			price = p
		}
		return stock[v.ID], price, "active"
	})

	title := "Imported product"
	var description string
	if item.Product != nil {
		title = item.Product.Name
		if item.Product.Description != nil {
			description = *item.Product.Description
		}
	}

	input := shopify.ProductInput{
		Title:    title,
		BodyHTML: description,
		Status:   "active",
	}

	variantsForPush := catalog.VariantsForPush(grouping, kind, selection)
	var images []shopify.ImageInput
	seen := map[string]bool{}
	for i, v := range variantsForPush {
		input.Variants = append(input.Variants, shopify.VariantInput{
			SKU:               v.ID,
			Price:             fmt.Sprintf("%.2f", detailed[i].Price),
			Option1:           strings.TrimSpace(v.Name),
			InventoryQuantity: detailed[i].Stock,
		})
		if v.Image != "" && !seen[v.Image] {
			images = append(images, shopify.ImageInput{Src: v.Image})
			seen[v.Image] = true
		}
	}
	input.Images = images

	return input
}
