// Package invoice defines the canonical invoice document model, its
// validator and the calculation engine that derives the monetary fields.
//
// The document is the single source of truth of the application: every edit
// produces a new value through Validate + Recompute, and both persistence
// carriers (local store, share link) round-trip this exact shape.
package invoice

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

func init() {
	// Monetary fields travel as JSON numbers, matching the persisted and
	// URL-carried payloads produced by the web client.
	decimal.MarshalJSONWithoutQuotes = true
}

// Supported enum values for the document header.
var (
	SupportedLanguages  = []string{"en", "pl"}
	SupportedCurrencies = []string{"EUR", "USD", "GBP", "PLN"}

	// SupportedDateFormats lists the display patterns a document may select.
	// Dates are always stored as ISO YYYY-MM-DD; the pattern only affects
	// rendering.
	SupportedDateFormats = []string{
		"YYYY-MM-DD", // 2024-03-20
		"DD/MM/YYYY", // 20/03/2024
		"MM/DD/YYYY", // 03/20/2024
		"D MMMM YYYY", // 20 March 2024
		"MMMM D, YYYY", // March 20, 2024
		"DD.MM.YYYY", // 20.03.2024
		"DD-MM-YYYY", // 20-03-2024
		"YYYY.MM.DD", // 2024.03.20
	}
)

// Default enum values applied by the validator when the field is omitted.
const (
	DefaultLanguage   = "en"
	DefaultCurrency   = "EUR"
	DefaultDateFormat = "YYYY-MM-DD"
)

// Document is one invoice snapshot. Derived fields (item netAmount,
// vatAmount, preTaxAmount and the document Total) are never user-set; they
// are recomputed from the base fields by the calculation engine.
type Document struct {
	Language   string `json:"language"`
	DateFormat string `json:"dateFormat"`
	Currency   string `json:"currency"`

	InvoiceNumber string `json:"invoiceNumber"`
	DateOfIssue   string `json:"dateOfIssue"`
	DateOfService string `json:"dateOfService"`

	InvoiceType               string `json:"invoiceType,omitempty"`
	InvoiceTypeFieldIsVisible bool   `json:"invoiceTypeFieldIsVisible"`

	Seller Seller `json:"seller"`
	Buyer  Buyer  `json:"buyer"`

	Items []LineItem      `json:"items"`
	Total decimal.Decimal `json:"total"`

	VatTableSummaryIsVisible bool `json:"vatTableSummaryIsVisible"`

	PaymentMethod               string `json:"paymentMethod,omitempty"`
	PaymentMethodFieldIsVisible bool   `json:"paymentMethodFieldIsVisible"`

	PaymentDue string `json:"paymentDue"`

	Notes               string `json:"notes,omitempty"`
	NotesFieldIsVisible bool   `json:"notesFieldIsVisible"`

	PersonAuthorizedToReceiveFieldIsVisible bool `json:"personAuthorizedToReceiveFieldIsVisible"`
	PersonAuthorizedToIssueFieldIsVisible   bool `json:"personAuthorizedToIssueFieldIsVisible"`
}

// Seller is the issuing party. ID is only set when the record comes from a
// stored seller preset.
type Seller struct {
	ID string `json:"id,omitempty"`

	Name    string `json:"name"`
	Address string `json:"address"`

	VatNo               string `json:"vatNo,omitempty"`
	VatNoFieldIsVisible bool   `json:"vatNoFieldIsVisible"`

	Email string `json:"email"`

	AccountNumber               string `json:"accountNumber,omitempty"`
	AccountNumberFieldIsVisible bool   `json:"accountNumberFieldIsVisible"`

	SwiftBic               string `json:"swiftBic,omitempty"`
	SwiftBicFieldIsVisible bool   `json:"swiftBicFieldIsVisible"`
}

// Buyer is the receiving party. It carries no bank details; its record
// shape is closed, so a seller payload stored under buyer is rejected.
type Buyer struct {
	ID string `json:"id,omitempty"`

	Name    string `json:"name"`
	Address string `json:"address"`

	VatNo               string `json:"vatNo,omitempty"`
	VatNoFieldIsVisible bool   `json:"vatNoFieldIsVisible"`

	Email string `json:"email"`
}

// LineItem is one row of the invoice. Amount, NetPrice and Vat are the user
// inputs; NetAmount, VatAmount and PreTaxAmount are derived.
type LineItem struct {
	InvoiceItemNumberIsVisible bool `json:"invoiceItemNumberIsVisible"`

	Name               string `json:"name"`
	NameFieldIsVisible bool   `json:"nameFieldIsVisible"`

	TypeOfGTU               string `json:"typeOfGTU"`
	TypeOfGTUFieldIsVisible bool   `json:"typeOfGTUFieldIsVisible"`

	Amount               decimal.Decimal `json:"amount"`
	AmountFieldIsVisible bool            `json:"amountFieldIsVisible"`

	Unit               string `json:"unit,omitempty"`
	UnitFieldIsVisible bool   `json:"unitFieldIsVisible"`

	NetPrice               decimal.Decimal `json:"netPrice"`
	NetPriceFieldIsVisible bool            `json:"netPriceFieldIsVisible"`

	Vat               VatValue `json:"vat"`
	VatFieldIsVisible bool     `json:"vatFieldIsVisible"`

	NetAmount               decimal.Decimal `json:"netAmount"`
	NetAmountFieldIsVisible bool            `json:"netAmountFieldIsVisible"`

	VatAmount               decimal.Decimal `json:"vatAmount"`
	VatAmountFieldIsVisible bool            `json:"vatAmountFieldIsVisible"`

	PreTaxAmount               decimal.Decimal `json:"preTaxAmount"`
	PreTaxAmountFieldIsVisible bool            `json:"preTaxAmountFieldIsVisible"`
}

// Equal reports deep value equality between two documents. Decimal fields
// with different internal exponents marshal differently, so both documents
// are expected to have gone through Validate (which canonicalizes them).
func (d *Document) Equal(other *Document) bool {
	if d == nil || other == nil {
		return d == other
	}
	a, err := json.Marshal(d)
	if err != nil {
		return false
	}
	b, err := json.Marshal(other)
	if err != nil {
		return false
	}
	return bytes.Equal(a, b)
}

// Clone returns a deep copy. Decimal and VatValue are value types, so
// copying the items slice is enough.
func (d *Document) Clone() *Document {
	out := *d
	out.Items = make([]LineItem, len(d.Items))
	copy(out.Items, d.Items)
	return &out
}
