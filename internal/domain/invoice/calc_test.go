package invoice_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoicepdf/invoice-api/internal/domain/invoice"
)

func buildItem(amount, netPrice string, vat invoice.VatValue) invoice.LineItem {
	return invoice.LineItem{
		Name:     "Consulting",
		Amount:   decimal.RequireFromString(amount),
		NetPrice: decimal.RequireFromString(netPrice),
		Vat:      vat,
	}
}

func rate(s string) invoice.VatValue {
	return invoice.VatRate(decimal.RequireFromString(s))
}

// TestRecomputeItem_ConcreteScenario pins the reference derivation:
// 2 × 100 at 23% VAT → net 200.00, VAT 46.00, gross 246.00.
func TestRecomputeItem_ConcreteScenario(t *testing.T) {
	item := invoice.RecomputeItem(buildItem("2", "100", rate("23")))

	assert.True(t, item.NetAmount.Equal(decimal.RequireFromString("200")), "net amount: %s", item.NetAmount)
	assert.True(t, item.VatAmount.Equal(decimal.RequireFromString("46")), "vat amount: %s", item.VatAmount)
	assert.True(t, item.PreTaxAmount.Equal(decimal.RequireFromString("246")), "pre-tax amount: %s", item.PreTaxAmount)

	items, total := invoice.Recompute([]invoice.LineItem{item})
	require.Len(t, items, 1)
	assert.True(t, total.Equal(decimal.RequireFromString("246")), "total: %s", total)
}

// TestRecomputeItem_RoundingHalfAwayFromZero pins the rounding boundary:
// 3 × 10.005 = 30.015, which rounds half away from zero to 30.02.
func TestRecomputeItem_RoundingHalfAwayFromZero(t *testing.T) {
	item := invoice.RecomputeItem(buildItem("3", "10.005", rate("23")))

	assert.Equal(t, "30.02", item.NetAmount.StringFixed(2))
	// 30.02 × 0.23 = 6.9046 → 6.90
	assert.Equal(t, "6.90", item.VatAmount.StringFixed(2))
	assert.Equal(t, "36.92", item.PreTaxAmount.StringFixed(2))
}

// TestRecomputeItem_ExemptTags verifies that NP and OO always yield a zero
// vatAmount regardless of the net amount.
func TestRecomputeItem_ExemptTags(t *testing.T) {
	for _, tag := range []string{invoice.VatTagNP, invoice.VatTagOO} {
		item := invoice.RecomputeItem(buildItem("7", "1999.99", invoice.VatExempt(tag)))

		assert.True(t, item.VatAmount.IsZero(), "tag %s must produce zero vat", tag)
		assert.True(t, item.PreTaxAmount.Equal(item.NetAmount), "tag %s: gross must equal net", tag)
	}
}

// TestRecompute_Idempotent verifies that recomputing already-computed items
// yields identical derived values (no drift).
func TestRecompute_Idempotent(t *testing.T) {
	items := []invoice.LineItem{
		buildItem("3", "10.005", rate("23")),
		buildItem("1", "0.01", rate("7.5")),
		buildItem("12", "99.99", invoice.VatExempt(invoice.VatTagOO)),
	}

	once, totalOnce := invoice.Recompute(items)
	twice, totalTwice := invoice.Recompute(once)

	require.Len(t, twice, len(once))
	for i := range once {
		assert.True(t, once[i].NetAmount.Equal(twice[i].NetAmount))
		assert.True(t, once[i].VatAmount.Equal(twice[i].VatAmount))
		assert.True(t, once[i].PreTaxAmount.Equal(twice[i].PreTaxAmount))
	}
	assert.True(t, totalOnce.Equal(totalTwice))
}

// TestRecompute_TotalConsistency verifies total == round2(Σ preTaxAmount).
func TestRecompute_TotalConsistency(t *testing.T) {
	items, total := invoice.Recompute([]invoice.LineItem{
		buildItem("2", "100", rate("23")),
		buildItem("5", "19.99", rate("8")),
		buildItem("1", "49.50", invoice.VatExempt(invoice.VatTagNP)),
	})

	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.PreTaxAmount)
	}
	assert.True(t, total.Equal(sum.Round(2)), "total %s, sum %s", total, sum)
}

// TestRecompute_EmptyItems: the min-1-item invariant keeps this from
// happening in validated documents, but the boundary is still defined.
func TestRecompute_EmptyItems(t *testing.T) {
	items, total := invoice.Recompute(nil)

	assert.Empty(t, items)
	assert.True(t, total.IsZero())
}

// TestRecompute_NumericStringVatBehavesAsNumber: a vat arriving as "20"
// through the boundary is a 20% percentage, not a tag.
func TestRecompute_NumericStringVatBehavesAsNumber(t *testing.T) {
	v, err := invoice.ParseVat("20")
	require.NoError(t, err)
	require.False(t, v.IsExempt())

	item := invoice.RecomputeItem(buildItem("1", "100", v))
	assert.Equal(t, "20.00", item.VatAmount.StringFixed(2))
}

// TestRecomputeDocument_ChangeDetection verifies that a consistent document
// reports no change and an edited one reports exactly the recomputed state.
func TestRecomputeDocument_ChangeDetection(t *testing.T) {
	items, total := invoice.Recompute([]invoice.LineItem{buildItem("2", "100", rate("23"))})
	doc := &invoice.Document{Items: items, Total: total}

	same, changed := invoice.RecomputeDocument(doc)
	assert.False(t, changed, "already-consistent document must not report changes")
	assert.Equal(t, doc, same)

	doc.Items[0].NetPrice = decimal.RequireFromString("150")
	updated, changed := invoice.RecomputeDocument(doc)
	require.True(t, changed)
	assert.True(t, updated.Items[0].NetAmount.Equal(decimal.RequireFromString("300")))
	assert.True(t, updated.Total.Equal(decimal.RequireFromString("369")))
	// the input document is left untouched
	assert.True(t, doc.Items[0].NetAmount.Equal(decimal.RequireFromString("200")))
}
