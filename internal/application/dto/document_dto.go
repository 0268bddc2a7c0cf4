package dto

import "github.com/invoicepdf/invoice-api/internal/domain/invoice"

// DocumentResponse the current document plus which carrier produced it
// ("url", "storage" or "default").
type DocumentResponse struct {
	Document *invoice.Document `json:"document"`
	Source   string            `json:"source"`
}

// EditResponse outcome of one edit cycle.
type EditResponse struct {
	Document       *invoice.Document `json:"document"`
	Recomputed     bool              `json:"recomputed"`
	ShareLinkStale bool              `json:"shareLinkStale"`
	Persisted      bool              `json:"persisted"`
}

// ShareResponse the compressed URL parameter of a share link.
type ShareResponse struct {
	Param string `json:"param"`
}
