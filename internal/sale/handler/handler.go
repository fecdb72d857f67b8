package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/fekuna/omnipos-booth-service/internal/sale"
	"github.com/fekuna/omnipos-booth-service/internal/sale/dto"
	"github.com/fekuna/omnipos-booth-service/pkg/errx"
	"github.com/fekuna/omnipos-booth-service/pkg/logger"
	"github.com/fekuna/omnipos-booth-service/pkg/response"
	"github.com/gin-gonic/gin"
)

type SaleHandler struct {
	uc     sale.UseCase
	logger logger.ZapLogger
}

func NewSaleHandler(uc sale.UseCase, log logger.ZapLogger) *SaleHandler {
	return &SaleHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *SaleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sessions := rg.Group("/sessions/:sessionID")
	sessions.GET("/cart", h.GetCart)
	sessions.DELETE("/cart", h.ClearCart)
	sessions.POST("/cart/:productID/increment", h.AddItem)
	sessions.POST("/cart/:productID/decrement", h.RemoveItem)
	sessions.POST("/checkout", h.Checkout)

	rg.GET("/sales", h.ListSales)
}

func (h *SaleHandler) GetCart(c *gin.Context) {
	response.Success(c, http.StatusOK, h.uc.Cart(c.Request.Context(), c.Param("sessionID")))
}

func (h *SaleHandler) ClearCart(c *gin.Context) {
	response.Success(c, http.StatusOK, h.uc.ClearCart(c.Request.Context(), c.Param("sessionID")))
}

func (h *SaleHandler) AddItem(c *gin.Context) {
	h.mutate(c, h.uc.AddItem)
}

func (h *SaleHandler) RemoveItem(c *gin.Context) {
	h.mutate(c, h.uc.RemoveItem)
}

// mutate answers 200 even when the change was a no-op; the view's Changed
// flag tells the terminal whether to flash the tile.
func (h *SaleHandler) mutate(c *gin.Context, fn func(ctx context.Context, sessionID string, productID int64) *dto.CartView) {
	productID, err := strconv.ParseInt(c.Param("productID"), 10, 64)
	if err != nil {
		response.Error(c, errx.BadRequest(err, "product id must be an integer"))
		return
	}
	response.Success(c, http.StatusOK, fn(c.Request.Context(), c.Param("sessionID"), productID))
}

func (h *SaleHandler) Checkout(c *gin.Context) {
	result, err := h.uc.Checkout(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

func (h *SaleHandler) ListSales(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	sales, err := h.uc.ListSales(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, sales)
}
