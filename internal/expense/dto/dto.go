package dto

import (
	"github.com/fekuna/omnipos-booth-service/internal/command"
	"github.com/fekuna/omnipos-booth-service/internal/model"
	"github.com/shopspring/decimal"
)

type RestockInput struct {
	ProductID command.Field `json:"product_id"`
	Quantity  command.Field `json:"quantity"`
	TotalCost command.Field `json:"total_cost"`
	Label     command.Field `json:"label"`
}

type MiscInput struct {
	Label     command.Field `json:"label"`
	TotalCost command.Field `json:"total_cost"`
}

type ExpenseList struct {
	Items      []model.ExpenseRecord `json:"items"`
	Total      decimal.Decimal       `json:"total"`
	TotalLabel string                `json:"total_label"`
}
