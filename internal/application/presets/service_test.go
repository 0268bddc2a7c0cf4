package presets_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoicepdf/invoice-api/internal/application/presets"
	"github.com/invoicepdf/invoice-api/internal/domain"
	"github.com/invoicepdf/invoice-api/internal/domain/invoice"
	"github.com/invoicepdf/invoice-api/pkg/logger"
)

type memoryRepo struct {
	sellers map[string]invoice.Seller
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{sellers: map[string]invoice.Seller{}}
}

func (m *memoryRepo) ListSellers(context.Context) ([]invoice.Seller, error) {
	out := make([]invoice.Seller, 0, len(m.sellers))
	for _, s := range m.sellers {
		out = append(out, s)
	}
	return out, nil
}

func (m *memoryRepo) GetSeller(_ context.Context, id string) (*invoice.Seller, error) {
	s, ok := m.sellers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (m *memoryRepo) SaveSeller(_ context.Context, s invoice.Seller) error {
	m.sellers[s.ID] = s
	return nil
}

func (m *memoryRepo) DeleteSeller(_ context.Context, id string) error {
	delete(m.sellers, id)
	return nil
}

func sellerJSON(t *testing.T, name string) []byte {
	t.Helper()
	raw, err := json.Marshal(invoice.Seller{
		Name:    name,
		Address: "Seller address",
		Email:   "seller@example.com",

		VatNoFieldIsVisible:         true,
		AccountNumberFieldIsVisible: true,
		SwiftBicFieldIsVisible:      true,
	})
	require.NoError(t, err)
	return raw
}

func TestCreate_AssignsID(t *testing.T) {
	repo := newMemoryRepo()
	svc := presets.NewService(repo, logger.Nop())

	created, err := svc.Create(context.Background(), sellerJSON(t, "Acme Sp. z o.o."))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Acme Sp. z o.o.", created.Name)

	stored, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, stored)
}

func TestCreate_RejectsInvalidSeller(t *testing.T) {
	svc := presets.NewService(newMemoryRepo(), logger.Nop())

	_, err := svc.Create(context.Background(), []byte(`{"name": "", "address": "x", "email": "bad"}`))
	var verr *invoice.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestCreate_RejectsUnknownKey(t *testing.T) {
	svc := presets.NewService(newMemoryRepo(), logger.Nop())

	_, err := svc.Create(context.Background(),
		[]byte(`{"name": "A", "address": "B", "email": "a@b.co", "iban": "PL00"}`))
	var verr *invoice.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), `unrecognized key "iban"`)
}

func TestUpdate_KeepsID(t *testing.T) {
	repo := newMemoryRepo()
	svc := presets.NewService(repo, logger.Nop())

	created, err := svc.Create(context.Background(), sellerJSON(t, "Before"))
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, sellerJSON(t, "After"))
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "After", updated.Name)
}

func TestUpdate_UnknownIDFails(t *testing.T) {
	svc := presets.NewService(newMemoryRepo(), logger.Nop())

	_, err := svc.Update(context.Background(), "missing", sellerJSON(t, "X"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete(t *testing.T) {
	repo := newMemoryRepo()
	svc := presets.NewService(repo, logger.Nop())

	created, err := svc.Create(context.Background(), sellerJSON(t, "Acme"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	_, err = svc.Get(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApply_ReplacesSellerWithoutMutatingInput(t *testing.T) {
	repo := newMemoryRepo()
	svc := presets.NewService(repo, logger.Nop())

	created, err := svc.Create(context.Background(), sellerJSON(t, "Preset seller"))
	require.NoError(t, err)

	doc := invoice.DefaultDocument(time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC))
	originalName := doc.Seller.Name

	applied, err := svc.Apply(context.Background(), doc, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Preset seller", applied.Seller.Name)
	assert.Equal(t, created.ID, applied.Seller.ID)
	assert.Equal(t, originalName, doc.Seller.Name, "input document must stay untouched")
}
