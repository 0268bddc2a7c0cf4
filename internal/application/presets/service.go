// Package presets manages stored seller records, reusable across invoices.
package presets

import (
	"context"

	"github.com/google/uuid"

	"github.com/invoicepdf/invoice-api/internal/domain/invoice"
	"github.com/invoicepdf/invoice-api/pkg/logger"
)

// Repository persists seller presets.
type Repository interface {
	ListSellers(ctx context.Context) ([]invoice.Seller, error)
	// GetSeller returns domain.ErrNotFound when no preset has the id.
	GetSeller(ctx context.Context, id string) (*invoice.Seller, error)
	SaveSeller(ctx context.Context, s invoice.Seller) error
	DeleteSeller(ctx context.Context, id string) error
}

// Service are the seller preset use cases: CRUD on stored sellers and
// applying one onto a document.
type Service struct {
	repo Repository
	log  *logger.Logger
}

func NewService(repo Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create validates a raw seller record, assigns it an id and stores it.
func (s *Service) Create(ctx context.Context, raw []byte) (*invoice.Seller, error) {
	seller, err := invoice.ValidateSeller(raw)
	if err != nil {
		return nil, err
	}
	seller.ID = uuid.New().String()
	if err := s.repo.SaveSeller(ctx, *seller); err != nil {
		return nil, err
	}
	return seller, nil
}

// Update replaces the stored preset id with a validated record.
func (s *Service) Update(ctx context.Context, id string, raw []byte) (*invoice.Seller, error) {
	if _, err := s.repo.GetSeller(ctx, id); err != nil {
		return nil, err
	}
	seller, err := invoice.ValidateSeller(raw)
	if err != nil {
		return nil, err
	}
	seller.ID = id
	if err := s.repo.SaveSeller(ctx, *seller); err != nil {
		return nil, err
	}
	return seller, nil
}

// List returns every stored seller preset.
func (s *Service) List(ctx context.Context) ([]invoice.Seller, error) {
	return s.repo.ListSellers(ctx)
}

// Get returns one preset by id.
func (s *Service) Get(ctx context.Context, id string) (*invoice.Seller, error) {
	return s.repo.GetSeller(ctx, id)
}

// Delete removes a preset by id.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteSeller(ctx, id)
}

// Apply returns a copy of doc with its seller replaced by the stored
// preset. The document itself is not persisted here; the edit cycle is.
func (s *Service) Apply(ctx context.Context, doc *invoice.Document, presetID string) (*invoice.Document, error) {
	seller, err := s.repo.GetSeller(ctx, presetID)
	if err != nil {
		return nil, err
	}
	out := doc.Clone()
	out.Seller = *seller
	return out, nil
}
