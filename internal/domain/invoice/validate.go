package invoice

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation limits from the document schema.
var (
	maxAmount   = decimal.RequireFromString("9999999999.99")
	maxNetPrice = decimal.RequireFromString("100000000000")
)

// Close to the classic schema email rule: local part, "@", dotted domain
// with a 2+ letter TLD.
var emailPattern = regexp.MustCompile(`(?i)^[a-z0-9_'+.-]*[a-z0-9_+-]@([a-z0-9][a-z0-9-]*\.)+[a-z]{2,}$`)

// FieldError is a single violated constraint, addressed by a dotted path
// such as "items[0].amount" or "seller.email".
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError enumerates every violated field of a document. Validation
// is all-or-nothing: when this error is returned, no part of the input has
// been applied.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid document"
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return "invalid document: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// numberInput accepts a JSON number or a numeric string, so values typed
// into text fields coerce the same way in every carrier. It records its
// state instead of failing, letting the validator keep collecting errors
// for the remaining fields.
type numberInput struct {
	present bool
	empty   bool
	valid   bool
	value   decimal.Decimal
}

func (n *numberInput) UnmarshalJSON(b []byte) error {
	n.present = true
	s := strings.TrimSpace(string(b))
	if s == "null" {
		n.empty = true
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return nil
		}
		s = strings.TrimSpace(str)
		if s == "" {
			n.empty = true
			return nil
		}
	}
	value, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	n.valid = true
	n.value = value
	return nil
}

// Raw shapes used only during validation. Items, seller and buyer are
// closed records: an unknown key rejects the document, so stale or foreign
// persisted shapes cannot round-trip junk fields silently. The top-level
// document itself tolerates extra keys.

type rawDocument struct {
	Language   *string `json:"language"`
	DateFormat *string `json:"dateFormat"`
	Currency   *string `json:"currency"`

	InvoiceNumber *string `json:"invoiceNumber"`
	DateOfIssue   *string `json:"dateOfIssue"`
	DateOfService *string `json:"dateOfService"`

	InvoiceType               *string `json:"invoiceType"`
	InvoiceTypeFieldIsVisible *bool   `json:"invoiceTypeFieldIsVisible"`

	Seller json.RawMessage `json:"seller"`
	Buyer  json.RawMessage `json:"buyer"`

	Items []json.RawMessage `json:"items"`
	Total numberInput       `json:"total"`

	VatTableSummaryIsVisible *bool `json:"vatTableSummaryIsVisible"`

	PaymentMethod               *string `json:"paymentMethod"`
	PaymentMethodFieldIsVisible *bool   `json:"paymentMethodFieldIsVisible"`

	PaymentDue *string `json:"paymentDue"`

	Notes               *string `json:"notes"`
	NotesFieldIsVisible *bool   `json:"notesFieldIsVisible"`

	PersonAuthorizedToReceiveFieldIsVisible *bool `json:"personAuthorizedToReceiveFieldIsVisible"`
	PersonAuthorizedToIssueFieldIsVisible   *bool `json:"personAuthorizedToIssueFieldIsVisible"`
}

type rawSeller struct {
	ID *string `json:"id"`

	Name    *string `json:"name"`
	Address *string `json:"address"`

	VatNo               *string `json:"vatNo"`
	VatNoFieldIsVisible *bool   `json:"vatNoFieldIsVisible"`

	Email *string `json:"email"`

	AccountNumber               *string `json:"accountNumber"`
	AccountNumberFieldIsVisible *bool   `json:"accountNumberFieldIsVisible"`

	SwiftBic               *string `json:"swiftBic"`
	SwiftBicFieldIsVisible *bool   `json:"swiftBicFieldIsVisible"`
}

type rawBuyer struct {
	ID *string `json:"id"`

	Name    *string `json:"name"`
	Address *string `json:"address"`

	VatNo               *string `json:"vatNo"`
	VatNoFieldIsVisible *bool   `json:"vatNoFieldIsVisible"`

	Email *string `json:"email"`
}

type rawLineItem struct {
	InvoiceItemNumberIsVisible *bool `json:"invoiceItemNumberIsVisible"`

	Name               *string `json:"name"`
	NameFieldIsVisible *bool   `json:"nameFieldIsVisible"`

	TypeOfGTU               *string `json:"typeOfGTU"`
	TypeOfGTUFieldIsVisible *bool   `json:"typeOfGTUFieldIsVisible"`

	Amount               numberInput `json:"amount"`
	AmountFieldIsVisible *bool       `json:"amountFieldIsVisible"`

	Unit               *string `json:"unit"`
	UnitFieldIsVisible *bool   `json:"unitFieldIsVisible"`

	NetPrice               numberInput `json:"netPrice"`
	NetPriceFieldIsVisible *bool       `json:"netPriceFieldIsVisible"`

	Vat               json.RawMessage `json:"vat"`
	VatFieldIsVisible *bool           `json:"vatFieldIsVisible"`

	NetAmount               numberInput `json:"netAmount"`
	NetAmountFieldIsVisible *bool       `json:"netAmountFieldIsVisible"`

	VatAmount               numberInput `json:"vatAmount"`
	VatAmountFieldIsVisible *bool       `json:"vatAmountFieldIsVisible"`

	PreTaxAmount               numberInput `json:"preTaxAmount"`
	PreTaxAmountFieldIsVisible *bool       `json:"preTaxAmountFieldIsVisible"`
}

// Validate parses and validates arbitrary JSON input against the document
// schema. It coerces numeric strings, trims text, fills defaults for
// omitted enum fields and visibility flags, and returns either a fully
// hydrated Document or a *ValidationError listing every violated field.
//
// Validate never recomputes derived fields; that is the calculation
// engine's job on the next edit cycle.
func Validate(raw []byte) (*Document, error) {
	var rd rawDocument
	if err := json.Unmarshal(raw, &rd); err != nil {
		verr := &ValidationError{}
		verr.add("document", "must be a JSON object")
		return nil, verr
	}
	return validateRaw(&rd)
}

func validateRaw(rd *rawDocument) (*Document, error) {
	verr := &ValidationError{}
	doc := &Document{}

	doc.Language = enumField(verr, "language", rd.Language, SupportedLanguages, DefaultLanguage)
	doc.DateFormat = enumField(verr, "dateFormat", rd.DateFormat, SupportedDateFormats, DefaultDateFormat)
	doc.Currency = enumField(verr, "currency", rd.Currency, SupportedCurrencies, DefaultCurrency)

	doc.InvoiceNumber = requiredString(verr, "invoiceNumber", rd.InvoiceNumber, "Invoice number is required")
	doc.DateOfIssue = requiredString(verr, "dateOfIssue", rd.DateOfIssue, "Date of issue is required")
	doc.DateOfService = requiredString(verr, "dateOfService", rd.DateOfService, "Date of service is required")
	doc.PaymentDue = requiredString(verr, "paymentDue", rd.PaymentDue, "Payment due is required")

	doc.InvoiceType = optionalString(verr, "invoiceType", rd.InvoiceType, 500, "Invoice type must not exceed 500 characters")
	doc.PaymentMethod = optionalString(verr, "paymentMethod", rd.PaymentMethod, 500, "Payment method must not exceed 500 characters")
	doc.Notes = optionalString(verr, "notes", rd.Notes, 3500, "Notes must not exceed 3500 characters")

	doc.InvoiceTypeFieldIsVisible = boolOrTrue(rd.InvoiceTypeFieldIsVisible)
	doc.VatTableSummaryIsVisible = boolOrTrue(rd.VatTableSummaryIsVisible)
	doc.PaymentMethodFieldIsVisible = boolOrTrue(rd.PaymentMethodFieldIsVisible)
	doc.NotesFieldIsVisible = boolOrTrue(rd.NotesFieldIsVisible)
	doc.PersonAuthorizedToReceiveFieldIsVisible = boolOrTrue(rd.PersonAuthorizedToReceiveFieldIsVisible)
	doc.PersonAuthorizedToIssueFieldIsVisible = boolOrTrue(rd.PersonAuthorizedToIssueFieldIsVisible)

	doc.Total = nonNegativeNumber(verr, "total", rd.Total, "Total is required", "Total must be non-negative")

	doc.Seller = validateSeller(verr, rd.Seller)
	doc.Buyer = validateBuyer(verr, rd.Buyer)

	if len(rd.Items) == 0 {
		verr.add("items", "At least one item is required")
	}
	doc.Items = make([]LineItem, 0, len(rd.Items))
	for i, rawItem := range rd.Items {
		doc.Items = append(doc.Items, validateItem(verr, i, rawItem))
	}

	if len(verr.Fields) > 0 {
		return nil, verr
	}
	return doc, nil
}

// ValidateSeller parses and validates a standalone seller record, the shape
// stored as a seller preset. Same closed-record rules as the embedded
// seller of a document.
func ValidateSeller(raw []byte) (*Seller, error) {
	verr := &ValidationError{}
	s := validateSeller(verr, raw)
	if len(verr.Fields) > 0 {
		return nil, verr
	}
	return &s, nil
}

func validateSeller(verr *ValidationError, raw json.RawMessage) Seller {
	var rs rawSeller
	if !decodeClosed(verr, "seller", raw, &rs) {
		return Seller{}
	}
	s := Seller{
		Name:    requiredBoundedString(verr, "seller.name", rs.Name, 500, "Seller name is required", "Seller name must not exceed 500 characters"),
		Address: requiredBoundedString(verr, "seller.address", rs.Address, 500, "Seller address is required", "Seller address must not exceed 500 characters"),
		VatNo:   optionalString(verr, "seller.vatNo", rs.VatNo, 200, "VAT number must not exceed 200 characters"),
		Email:   emailField(verr, "seller.email", rs.Email),

		AccountNumber: optionalString(verr, "seller.accountNumber", rs.AccountNumber, 200, "Account number must not exceed 200 characters"),
		SwiftBic:      optionalString(verr, "seller.swiftBic", rs.SwiftBic, 200, "SWIFT/BIC must not exceed 200 characters"),

		VatNoFieldIsVisible:         boolOrTrue(rs.VatNoFieldIsVisible),
		AccountNumberFieldIsVisible: boolOrTrue(rs.AccountNumberFieldIsVisible),
		SwiftBicFieldIsVisible:      boolOrTrue(rs.SwiftBicFieldIsVisible),
	}
	if rs.ID != nil {
		s.ID = strings.TrimSpace(*rs.ID)
	}
	return s
}

func validateBuyer(verr *ValidationError, raw json.RawMessage) Buyer {
	var rb rawBuyer
	if !decodeClosed(verr, "buyer", raw, &rb) {
		return Buyer{}
	}
	b := Buyer{
		Name:    requiredBoundedString(verr, "buyer.name", rb.Name, 500, "Buyer name is required", "Buyer name must not exceed 500 characters"),
		Address: requiredBoundedString(verr, "buyer.address", rb.Address, 500, "Buyer address is required", "Buyer address must not exceed 500 characters"),
		VatNo:   optionalString(verr, "buyer.vatNo", rb.VatNo, 200, "VAT number must not exceed 200 characters"),
		Email:   emailField(verr, "buyer.email", rb.Email),

		VatNoFieldIsVisible: boolOrTrue(rb.VatNoFieldIsVisible),
	}
	if rb.ID != nil {
		b.ID = strings.TrimSpace(*rb.ID)
	}
	return b
}

func validateItem(verr *ValidationError, index int, raw json.RawMessage) LineItem {
	path := fmt.Sprintf("items[%d]", index)

	var ri rawLineItem
	if !decodeClosed(verr, path, raw, &ri) {
		return LineItem{}
	}

	item := LineItem{
		Name:      requiredBoundedString(verr, path+".name", ri.Name, 500, "Item name is required", "Item name must not exceed 500 characters"),
		TypeOfGTU: optionalString(verr, path+".typeOfGTU", ri.TypeOfGTU, 50, "Type of GTU must not exceed 50 characters"),

		InvoiceItemNumberIsVisible: boolOrTrue(ri.InvoiceItemNumberIsVisible),
		NameFieldIsVisible:         boolOrTrue(ri.NameFieldIsVisible),
		TypeOfGTUFieldIsVisible:    boolOrTrue(ri.TypeOfGTUFieldIsVisible),
		AmountFieldIsVisible:       boolOrTrue(ri.AmountFieldIsVisible),
		UnitFieldIsVisible:         boolOrTrue(ri.UnitFieldIsVisible),
		NetPriceFieldIsVisible:     boolOrTrue(ri.NetPriceFieldIsVisible),
		VatFieldIsVisible:          boolOrTrue(ri.VatFieldIsVisible),
		NetAmountFieldIsVisible:    boolOrTrue(ri.NetAmountFieldIsVisible),
		VatAmountFieldIsVisible:    boolOrTrue(ri.VatAmountFieldIsVisible),
		PreTaxAmountFieldIsVisible: boolOrTrue(ri.PreTaxAmountFieldIsVisible),
	}
	if ri.Unit != nil {
		item.Unit = strings.TrimSpace(*ri.Unit)
	}

	// amount: required, strictly positive, bounded
	switch {
	case !ri.Amount.present || ri.Amount.empty:
		verr.add(path+".amount", "Amount is required")
	case !ri.Amount.valid:
		verr.add(path+".amount", "Amount must be a number")
	case ri.Amount.value.Sign() <= 0:
		verr.add(path+".amount", "Amount must be positive")
	case ri.Amount.value.GreaterThan(maxAmount):
		verr.add(path+".amount", "Amount must not exceed 9.999.999.999")
	default:
		item.Amount = ri.Amount.value
	}

	// netPrice: required, non-negative, bounded
	switch {
	case !ri.NetPrice.present || ri.NetPrice.empty:
		verr.add(path+".netPrice", "Net price is required")
	case !ri.NetPrice.valid:
		verr.add(path+".netPrice", "Net price must be a number")
	case ri.NetPrice.value.Sign() < 0:
		verr.add(path+".netPrice", "Net price must be >= 0")
	case ri.NetPrice.value.GreaterThan(maxNetPrice):
		verr.add(path+".netPrice", "Net price must not exceed 100 billion")
	default:
		item.NetPrice = ri.NetPrice.value
	}

	item.Vat = vatField(verr, path+".vat", ri.Vat)

	item.NetAmount = nonNegativeNumber(verr, path+".netAmount", ri.NetAmount, "Net amount is required", "Net amount must be non-negative")
	item.VatAmount = nonNegativeNumber(verr, path+".vatAmount", ri.VatAmount, "VAT amount is required", "VAT amount must be non-negative")
	item.PreTaxAmount = nonNegativeNumber(verr, path+".preTaxAmount", ri.PreTaxAmount, "Pre-tax amount is required", "Pre-tax amount must be non-negative")

	return item
}

// vatField parses the tagged vat union and enforces the percentage range.
func vatField(verr *ValidationError, path string, raw json.RawMessage) VatValue {
	if len(raw) == 0 || string(raw) == "null" {
		verr.add(path, "VAT is required (0-100 or NP or OO)")
		return VatValue{}
	}

	var v VatValue
	if err := json.Unmarshal(raw, &v); err != nil {
		msg := vatFormatMessage
		var s string
		if jerr := json.Unmarshal(raw, &s); jerr == nil && strings.TrimSpace(s) == "" {
			msg = "VAT is required (0-100 or NP or OO)"
		}
		verr.add(path, msg)
		return VatValue{}
	}
	if !v.IsExempt() {
		rate := v.Rate()
		if rate.Sign() < 0 || rate.GreaterThan(oneHundred) {
			verr.add(path, "VAT must be between 0 and 100")
			return VatValue{}
		}
	}
	return v
}

// decodeClosed decodes raw into dst rejecting unknown keys. A missing or
// malformed record is reported as a single field error on the record path.
func decodeClosed(verr *ValidationError, path string, raw json.RawMessage, dst any) bool {
	if len(raw) == 0 || string(raw) == "null" {
		verr.add(path, "is required")
		return false
	}
	dec := json.NewDecoder(strings.NewReader(string(raw)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if name, ok := unknownFieldName(err); ok {
			verr.add(path, fmt.Sprintf("unrecognized key %q", name))
		} else {
			verr.add(path, "must be a valid object")
		}
		return false
	}
	return true
}

// unknownFieldName extracts the offending key from the encoding/json
// unknown-field error.
func unknownFieldName(err error) (string, bool) {
	const prefix = `json: unknown field `
	msg := err.Error()
	if !strings.HasPrefix(msg, prefix) {
		return "", false
	}
	return strings.Trim(strings.TrimPrefix(msg, prefix), `"`), true
}

func boolOrTrue(b *bool) bool {
	if b == nil {
		return true
	}
	return *b
}

func enumField(verr *ValidationError, path string, value *string, allowed []string, fallback string) string {
	if value == nil {
		return fallback
	}
	v := strings.TrimSpace(*value)
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	verr.add(path, "must be one of: "+strings.Join(allowed, ", "))
	return fallback
}

func requiredString(verr *ValidationError, path string, value *string, requiredMsg string) string {
	if value == nil {
		verr.add(path, requiredMsg)
		return ""
	}
	v := strings.TrimSpace(*value)
	if v == "" {
		verr.add(path, requiredMsg)
	}
	return v
}

func requiredBoundedString(verr *ValidationError, path string, value *string, maxLen int, requiredMsg, maxMsg string) string {
	v := requiredString(verr, path, value, requiredMsg)
	if len([]rune(v)) > maxLen {
		verr.add(path, maxMsg)
	}
	return v
}

func optionalString(verr *ValidationError, path string, value *string, maxLen int, maxMsg string) string {
	if value == nil {
		return ""
	}
	v := strings.TrimSpace(*value)
	if len([]rune(v)) > maxLen {
		verr.add(path, maxMsg)
	}
	return v
}

func emailField(verr *ValidationError, path string, value *string) string {
	v := ""
	if value != nil {
		v = strings.TrimSpace(*value)
	}
	if !emailPattern.MatchString(v) {
		verr.add(path, "Invalid email address")
	}
	return v
}

func nonNegativeNumber(verr *ValidationError, path string, n numberInput, requiredMsg, negativeMsg string) decimal.Decimal {
	switch {
	case !n.present || n.empty:
		verr.add(path, requiredMsg)
	case !n.valid:
		verr.add(path, "must be a number")
	case n.value.Sign() < 0:
		verr.add(path, negativeMsg)
	default:
		return n.value
	}
	return decimal.Zero
}
