package dto

type MovementFilters struct {
	ProductID    int64
	MovementType string
	Page         int
	PageSize     int
}

// StockLevel is one product's row on the stock screen.
type StockLevel struct {
	ProductID            int64   `json:"product_id"`
	Name                 string  `json:"name"`
	CurrentQuantity      int     `json:"current_quantity"`
	InitialTotalQuantity int     `json:"initial_total_quantity"`
	FillPercent          float64 `json:"fill_percent"`
	Low                  bool    `json:"low"`
	OutOfStock           bool    `json:"out_of_stock"`
}

type StockOverview struct {
	TotalCurrent int          `json:"total_current"`
	TotalInitial int          `json:"total_initial"`
	Items        []StockLevel `json:"items"`
}
