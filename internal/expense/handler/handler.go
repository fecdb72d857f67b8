package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-booth-service/internal/expense"
	"github.com/fekuna/omnipos-booth-service/internal/expense/dto"
	"github.com/fekuna/omnipos-booth-service/pkg/errx"
	"github.com/fekuna/omnipos-booth-service/pkg/logger"
	"github.com/fekuna/omnipos-booth-service/pkg/response"
	"github.com/gin-gonic/gin"
)

type ExpenseHandler struct {
	uc     expense.UseCase
	logger logger.ZapLogger
}

func NewExpenseHandler(uc expense.UseCase, log logger.ZapLogger) *ExpenseHandler {
	return &ExpenseHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ExpenseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/expenses", h.ListExpenses)
	rg.POST("/expenses/restock", h.RecordRestock)
	rg.POST("/expenses/misc", h.RecordMisc)
}

func (h *ExpenseHandler) RecordRestock(c *gin.Context) {
	var input dto.RestockInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, errx.BadRequest(err, "invalid request payload"))
		return
	}
	rec, err := h.uc.RecordRestock(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, rec)
}

func (h *ExpenseHandler) RecordMisc(c *gin.Context) {
	var input dto.MiscInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, errx.BadRequest(err, "invalid request payload"))
		return
	}
	rec, err := h.uc.RecordMisc(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, rec)
}

func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	list, err := h.uc.ListExpenses(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}
