package dto

import "github.com/fekuna/omnipos-booth-service/internal/command"

// CorrectStockInput carries the raw operator values; the use case validates
// them before any write.
type CorrectStockInput struct {
	ProductID       command.Field `json:"-"`
	CurrentQuantity command.Field `json:"current_quantity"`
	InitialQuantity command.Field `json:"initial_total_quantity"`
}
