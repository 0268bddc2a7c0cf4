package invoice_test

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoicepdf/invoice-api/internal/domain/invoice"
)

// validDocJSON returns the canonical default document serialized, with a
// mutation applied to the decoded map before re-serializing. Passing nil
// returns the default document untouched.
func validDocJSON(t *testing.T, mutate func(doc map[string]any)) []byte {
	t.Helper()

	raw, err := json.Marshal(invoice.DefaultDocument(time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	if mutate != nil {
		mutate(doc)
	}
	out, err := json.Marshal(doc)
	require.NoError(t, err)
	return out
}

func item0(doc map[string]any) map[string]any {
	return doc["items"].([]any)[0].(map[string]any)
}

func fieldMessages(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *invoice.ValidationError
	require.ErrorAs(t, err, &verr)
	out := make(map[string]string, len(verr.Fields))
	for _, f := range verr.Fields {
		out[f.Field] = f.Message
	}
	return out
}

func TestValidate_DefaultDocumentIsValid(t *testing.T) {
	doc, err := invoice.Validate(validDocJSON(t, nil))
	require.NoError(t, err)

	assert.Equal(t, "en", doc.Language)
	assert.Equal(t, "EUR", doc.Currency)
	assert.Equal(t, "1/08-2026", doc.InvoiceNumber)
	assert.Equal(t, "2026-08-31", doc.DateOfIssue)
	assert.Equal(t, "2026-08-31", doc.DateOfService)
	assert.Equal(t, "2026-09-14", doc.PaymentDue)
	require.Len(t, doc.Items, 1)
	assert.True(t, doc.Items[0].Vat.IsExempt())
}

func TestValidate_FillsDefaults(t *testing.T) {
	raw := validDocJSON(t, func(doc map[string]any) {
		delete(doc, "language")
		delete(doc, "currency")
		delete(doc, "dateFormat")
		delete(item0(doc), "nameFieldIsVisible")
		delete(item0(doc), "vatFieldIsVisible")
	})

	doc, err := invoice.Validate(raw)
	require.NoError(t, err)

	assert.Equal(t, "en", doc.Language)
	assert.Equal(t, "EUR", doc.Currency)
	assert.Equal(t, "YYYY-MM-DD", doc.DateFormat)
	assert.True(t, doc.Items[0].NameFieldIsVisible, "omitted visibility flags default to true")
	assert.True(t, doc.Items[0].VatFieldIsVisible)
}

func TestValidate_CoercesNumericStrings(t *testing.T) {
	raw := validDocJSON(t, func(doc map[string]any) {
		item0(doc)["amount"] = "3"
		item0(doc)["netPrice"] = "10.50"
		item0(doc)["vat"] = "20"
		doc["total"] = "31.50"
	})

	doc, err := invoice.Validate(raw)
	require.NoError(t, err)

	assert.Equal(t, "3", doc.Items[0].Amount.String())
	assert.Equal(t, "10.50", doc.Items[0].NetPrice.String())
	require.False(t, doc.Items[0].Vat.IsExempt(), `"20" behaves as a 20% rate`)
	assert.Equal(t, "20", doc.Items[0].Vat.Rate().String())
	assert.Equal(t, "31.50", doc.Total.String())
}

func TestValidate_RejectsZeroAmount(t *testing.T) {
	raw := validDocJSON(t, func(doc map[string]any) {
		item0(doc)["amount"] = 0
	})

	_, err := invoice.Validate(raw)
	msgs := fieldMessages(t, err)
	assert.Equal(t, "Amount must be positive", msgs["items[0].amount"])
}

func TestValidate_RejectsEmptyNumericString(t *testing.T) {
	raw := validDocJSON(t, func(doc map[string]any) {
		item0(doc)["amount"] = ""
		item0(doc)["netPrice"] = ""
	})

	_, err := invoice.Validate(raw)
	msgs := fieldMessages(t, err)
	assert.Equal(t, "Amount is required", msgs["items[0].amount"])
	assert.Equal(t, "Net price is required", msgs["items[0].netPrice"])
}

func TestValidate_RejectsInvalidVat(t *testing.T) {
	cases := map[string]struct {
		vat  any
		want string
	}{
		"non-numeric string": {"abc", "Must be a valid number (0-100) or NP or OO"},
		"lowercase tag":      {"np", "Must be a valid number (0-100) or NP or OO"},
		"over 100":           {101, "VAT must be between 0 and 100"},
		"negative":           {-1, "VAT must be between 0 and 100"},
		"empty string":       {"", "VAT is required (0-100 or NP or OO)"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			raw := validDocJSON(t, func(doc map[string]any) {
				item0(doc)["vat"] = tc.vat
			})
			_, err := invoice.Validate(raw)
			msgs := fieldMessages(t, err)
			assert.Equal(t, tc.want, msgs["items[0].vat"])
		})
	}
}

func TestValidate_RejectsUnknownItemField(t *testing.T) {
	raw := validDocJSON(t, func(doc map[string]any) {
		item0(doc)["legacyDiscount"] = 5
	})

	_, err := invoice.Validate(raw)
	msgs := fieldMessages(t, err)
	assert.Equal(t, `unrecognized key "legacyDiscount"`, msgs["items[0]"])
}

func TestValidate_RejectsUnknownPartyField(t *testing.T) {
	raw := validDocJSON(t, func(doc map[string]any) {
		// bank details belong to the seller record only
		doc["buyer"].(map[string]any)["accountNumber"] = "PL61 1090"
	})

	_, err := invoice.Validate(raw)
	msgs := fieldMessages(t, err)
	assert.Contains(t, msgs["buyer"], "unrecognized key")
}

func TestValidate_ToleratesUnknownTopLevelField(t *testing.T) {
	raw := validDocJSON(t, func(doc map[string]any) {
		doc["schemaVersion"] = 3
	})

	_, err := invoice.Validate(raw)
	assert.NoError(t, err, "only item and party records are closed shapes")
}

func TestValidate_RejectsEmptyItems(t *testing.T) {
	raw := validDocJSON(t, func(doc map[string]any) {
		doc["items"] = []any{}
	})

	_, err := invoice.Validate(raw)
	msgs := fieldMessages(t, err)
	assert.Equal(t, "At least one item is required", msgs["items"])
}

func TestValidate_RejectsInvalidEmail(t *testing.T) {
	for _, bad := range []string{"", "plainaddress", "a@b", "a b@mail.com"} {
		raw := validDocJSON(t, func(doc map[string]any) {
			doc["seller"].(map[string]any)["email"] = bad
		})
		_, err := invoice.Validate(raw)
		msgs := fieldMessages(t, err)
		assert.Equal(t, "Invalid email address", msgs["seller.email"], "email %q", bad)
	}
}

func TestValidate_EnforcesLengthLimits(t *testing.T) {
	long := func(n int) string {
		b := make([]byte, n)
		for i := range b {
			b[i] = 'x'
		}
		return string(b)
	}

	raw := validDocJSON(t, func(doc map[string]any) {
		item0(doc)["name"] = long(501)
		item0(doc)["typeOfGTU"] = long(51)
		doc["notes"] = long(3501)
	})

	_, err := invoice.Validate(raw)
	msgs := fieldMessages(t, err)
	assert.Equal(t, "Item name must not exceed 500 characters", msgs["items[0].name"])
	assert.Equal(t, "Type of GTU must not exceed 50 characters", msgs["items[0].typeOfGTU"])
	assert.Equal(t, "Notes must not exceed 3500 characters", msgs["notes"])
}

func TestValidate_CollectsEveryViolation(t *testing.T) {
	raw := validDocJSON(t, func(doc map[string]any) {
		doc["invoiceNumber"] = ""
		doc["seller"].(map[string]any)["name"] = ""
		item0(doc)["amount"] = -2
		item0(doc)["vat"] = "abc"
	})

	_, err := invoice.Validate(raw)
	msgs := fieldMessages(t, err)
	assert.Len(t, msgs, 4, "all-or-nothing validation reports every field: %v", msgs)
	assert.Equal(t, "Invoice number is required", msgs["invoiceNumber"])
	assert.Equal(t, "Seller name is required", msgs["seller.name"])
	assert.Equal(t, "Amount must be positive", msgs["items[0].amount"])
}

func TestValidate_RejectsNonObject(t *testing.T) {
	for _, raw := range []string{`[]`, `"nope"`, `42`, `{`} {
		_, err := invoice.Validate([]byte(raw))
		assert.Error(t, err, "input %s", raw)
	}
}

func TestValidate_TrimsStrings(t *testing.T) {
	raw := validDocJSON(t, func(doc map[string]any) {
		doc["invoiceNumber"] = "  7/08-2026  "
		item0(doc)["name"] = "  Item  name  "
	})

	doc, err := invoice.Validate(raw)
	require.NoError(t, err)
	assert.Equal(t, "7/08-2026", doc.InvoiceNumber)
	assert.Equal(t, "Item  name", doc.Items[0].Name)
}

// TestValidate_RoundTripStable: validate → marshal → validate yields a deep
// equal document, the property both persistence carriers rely on.
func TestValidate_RoundTripStable(t *testing.T) {
	raw := validDocJSON(t, func(doc map[string]any) {
		item0(doc)["amount"] = 3
		item0(doc)["netPrice"] = 10.005
		item0(doc)["vat"] = 23
	})

	first, err := invoice.Validate(raw)
	require.NoError(t, err)

	encoded, err := json.Marshal(first)
	require.NoError(t, err)

	second, err := invoice.Validate(encoded)
	require.NoError(t, err)
	assert.True(t, first.Equal(second), "expected stable round trip:\n%s\nvs\n%s",
		encoded, fmt.Sprintf("%+v", second))
}
