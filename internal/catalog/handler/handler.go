package handler

import (
	"net/http"
	"strconv"

	"github.com/fekuna/omnipos-booth-service/internal/catalog"
	"github.com/fekuna/omnipos-booth-service/internal/catalog/dto"
	"github.com/fekuna/omnipos-booth-service/pkg/errx"
	"github.com/fekuna/omnipos-booth-service/pkg/logger"
	"github.com/fekuna/omnipos-booth-service/pkg/response"
	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	uc     catalog.UseCase
	logger logger.ZapLogger
}

func NewCatalogHandler(uc catalog.UseCase, log logger.ZapLogger) *CatalogHandler {
	return &CatalogHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/catalog", h.ListCatalog)
	rg.GET("/catalog/:productID/quote", h.Quote)
}

func (h *CatalogHandler) ListCatalog(c *gin.Context) {
	filters := &dto.CatalogFilters{
		Category:    c.Query("category"),
		InStockOnly: c.Query("in_stock") == "true",
	}
	items, err := h.uc.ListCatalog(c.Request.Context(), filters)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *CatalogHandler) Quote(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("productID"), 10, 64)
	if err != nil {
		response.Error(c, errx.BadRequest(err, "product id must be an integer"))
		return
	}
	quantity, err := strconv.Atoi(c.DefaultQuery("quantity", "1"))
	if err != nil {
		response.Error(c, errx.BadRequest(err, "quantity must be an integer"))
		return
	}

	quote, err := h.uc.Quote(c.Request.Context(), productID, quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, quote)
}
