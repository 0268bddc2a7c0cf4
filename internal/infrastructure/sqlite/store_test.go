package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoicepdf/invoice-api/internal/domain"
	"github.com/invoicepdf/invoice-api/internal/domain/invoice"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "data", "invoices.db"))
	require.NoError(t, err, "New must create parent directories")
	t.Cleanup(func() { store.Close() })
	return store
}

func TestDocumentSlot(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.LoadDocument(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound, "empty store has no document")

	require.NoError(t, store.SaveDocument(ctx, []byte(`{"invoiceNumber":"1/08-2026"}`)))
	payload, err := store.LoadDocument(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"invoiceNumber":"1/08-2026"}`, string(payload))

	// the slot is overwritten, not appended to
	require.NoError(t, store.SaveDocument(ctx, []byte(`{"invoiceNumber":"2/08-2026"}`)))
	payload, err = store.LoadDocument(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"invoiceNumber":"2/08-2026"}`, string(payload))
}

func TestSellerPresets(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	beta := invoice.Seller{ID: uuid.New().String(), Name: "Beta", Address: "B st", Email: "b@example.com"}
	alpha := invoice.Seller{ID: uuid.New().String(), Name: "Alpha", Address: "A st", Email: "a@example.com"}
	require.NoError(t, store.SaveSeller(ctx, beta))
	require.NoError(t, store.SaveSeller(ctx, alpha))

	list, err := store.ListSellers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Alpha", list[0].Name, "presets come back ordered by name")
	assert.Equal(t, "Beta", list[1].Name)

	got, err := store.GetSeller(ctx, beta.ID)
	require.NoError(t, err)
	assert.Equal(t, beta, *got)

	// upsert on the same id
	beta.Address = "New address"
	require.NoError(t, store.SaveSeller(ctx, beta))
	got, err = store.GetSeller(ctx, beta.ID)
	require.NoError(t, err)
	assert.Equal(t, "New address", got.Address)

	require.NoError(t, store.DeleteSeller(ctx, beta.ID))
	_, err = store.GetSeller(ctx, beta.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, store.DeleteSeller(ctx, beta.ID), domain.ErrNotFound)
}
