package invoice

import "github.com/shopspring/decimal"

// The calculation engine. Pure functions, no I/O: given the base fields
// (amount, netPrice, vat) they derive the per-item monetary fields and the
// document total. Calling them again on already-computed items yields the
// same values, so the edit loop can invoke them at any cadence.
//
// Rounding rule: 2 decimals, half away from zero (decimal.Round), applied
// at every derivation step. This matches the fixed-point currency display
// of the invoices and avoids binary-float drift entirely.

var oneHundred = decimal.NewFromInt(100)

func round2(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

// RecomputeItem derives netAmount, vatAmount and preTaxAmount of a single
// line item:
//
//	netAmount    = round2(amount × netPrice)
//	vatAmount    = 0 when vat is NP/OO, else round2(netAmount × rate / 100)
//	preTaxAmount = round2(netAmount + vatAmount)
func RecomputeItem(item LineItem) LineItem {
	netAmount := round2(item.Amount.Mul(item.NetPrice))

	vatAmount := decimal.Zero
	if !item.Vat.IsExempt() {
		vatAmount = round2(netAmount.Mul(item.Vat.Rate()).Div(oneHundred))
	}

	item.NetAmount = netAmount
	item.VatAmount = round2(vatAmount)
	item.PreTaxAmount = round2(netAmount.Add(vatAmount))
	return item
}

// Recompute derives the monetary fields of every item and the document
// total. The total is always the rounded sum of the recomputed
// preTaxAmounts; an empty item list yields a zero total.
func Recompute(items []LineItem) ([]LineItem, decimal.Decimal) {
	if len(items) == 0 {
		return items, decimal.Zero.Round(2)
	}
	out := make([]LineItem, len(items))
	total := decimal.Zero
	for i, item := range items {
		out[i] = RecomputeItem(item)
		total = total.Add(out[i].PreTaxAmount)
	}
	return out, round2(total)
}

// RecomputeDocument returns a copy of doc with fresh derived fields, plus a
// flag reporting whether any derived value actually changed. Callers only
// persist when changed is true, which keeps the edit→persist loop from
// re-triggering itself on already-consistent documents.
func RecomputeDocument(doc *Document) (*Document, bool) {
	items, total := Recompute(doc.Items)

	changed := !doc.Total.Equal(total)
	for i := range items {
		if !itemDerivedEqual(items[i], doc.Items[i]) {
			changed = true
		}
	}
	if !changed {
		return doc, false
	}

	out := doc.Clone()
	out.Items = items
	out.Total = total
	return out, true
}

func itemDerivedEqual(a, b LineItem) bool {
	return a.NetAmount.Equal(b.NetAmount) &&
		a.VatAmount.Equal(b.VatAmount) &&
		a.PreTaxAmount.Equal(b.PreTaxAmount)
}
