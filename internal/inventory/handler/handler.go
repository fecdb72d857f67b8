package handler

import (
	"net/http"
	"strconv"

	"github.com/fekuna/omnipos-booth-service/internal/command"
	"github.com/fekuna/omnipos-booth-service/internal/inventory"
	"github.com/fekuna/omnipos-booth-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-booth-service/pkg/errx"
	"github.com/fekuna/omnipos-booth-service/pkg/logger"
	"github.com/fekuna/omnipos-booth-service/pkg/response"
	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	uc     inventory.UseCase
	logger logger.ZapLogger
}

func NewInventoryHandler(uc inventory.UseCase, log logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/inventory", h.ListInventory)
	rg.GET("/inventory/movements", h.ListMovements)
	rg.PUT("/inventory/:productID", h.CorrectStock)
}

func (h *InventoryHandler) ListInventory(c *gin.Context) {
	overview, err := h.uc.ListInventory(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, overview)
}

func (h *InventoryHandler) CorrectStock(c *gin.Context) {
	var input dto.CorrectStockInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, errx.BadRequest(err, "invalid request payload"))
		return
	}
	input.ProductID = command.Field(c.Param("productID"))

	inv, err := h.uc.CorrectStock(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, inv)
}

func (h *InventoryHandler) ListMovements(c *gin.Context) {
	filters := &dto.MovementFilters{
		MovementType: c.Query("movement_type"),
		Page:         queryInt(c, "page"),
		PageSize:     queryInt(c, "page_size"),
	}
	if raw := c.Query("product_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(c, errx.BadRequest(err, "product_id must be an integer"))
			return
		}
		filters.ProductID = id
	}

	mvs, total, err := h.uc.ListMovements(c.Request.Context(), filters)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, mvs, response.PageMeta{
		Page:     filters.Page,
		PageSize: filters.PageSize,
		Total:    total,
	})
}

func queryInt(c *gin.Context, key string) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return v
}
