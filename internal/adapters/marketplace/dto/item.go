package dto

import "github.com/shopspring/decimal"

// ItemResponse is the per-SKU marketplace payload. Price stays nil when the
// listing publishes no price (JSON null or missing field); decimal accepts
// both numeric and quoted values.
type ItemResponse struct {
	Sku   string           `json:"sku,omitempty"`
	Price *decimal.Decimal `json:"price,omitempty"`
}
