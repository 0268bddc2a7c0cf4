package dto

import "github.com/invoicepdf/invoice-api/internal/domain/invoice"

// SellerPresetListResponse every stored seller preset.
type SellerPresetListResponse struct {
	Items []invoice.Seller `json:"items"`
}
