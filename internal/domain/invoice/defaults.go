package invoice

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const isoDate = "2006-01-02"

// DefaultDocument builds the canonical starting document used whenever no
// usable document can be loaded: issue date today, service date at the end
// of the current month, payment due in 14 days, invoice number 1/{MM-YYYY},
// one placeholder line item with quantity 1 and VAT "NP".
func DefaultDocument(now time.Time) *Document {
	endOfMonth := time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, now.Location()).AddDate(0, 0, -1)

	return &Document{
		Language:   DefaultLanguage,
		Currency:   DefaultCurrency,
		DateFormat: DefaultDateFormat,

		InvoiceNumber: fmt.Sprintf("1/%s", now.Format("01-2006")),
		DateOfIssue:   now.Format(isoDate),
		DateOfService: endOfMonth.Format(isoDate),
		PaymentDue:    now.AddDate(0, 0, 14).Format(isoDate),

		InvoiceType:               "Reverse Charge",
		InvoiceTypeFieldIsVisible: true,

		Seller: DefaultSeller(),
		Buyer: Buyer{
			Name:                "Buyer name",
			Address:             "Buyer address",
			VatNo:               "Buyer vat number",
			VatNoFieldIsVisible: true,
			Email:               "buyer@email.com",
		},

		Items: []LineItem{defaultLineItem()},
		Total: decimal.Zero,

		PaymentMethod:               "wire transfer",
		PaymentMethodFieldIsVisible: true,

		Notes:               "Reverse charge",
		NotesFieldIsVisible: true,

		VatTableSummaryIsVisible:                true,
		PersonAuthorizedToReceiveFieldIsVisible: true,
		PersonAuthorizedToIssueFieldIsVisible:   true,
	}
}

// DefaultSeller is the placeholder seller of the canonical document.
func DefaultSeller() Seller {
	return Seller{
		Name:    "Seller name",
		Address: "Seller address",

		VatNo:               "Seller vat number",
		VatNoFieldIsVisible: true,

		Email: "seller@email.com",

		AccountNumber:               "Seller account number",
		AccountNumberFieldIsVisible: true,

		SwiftBic:               "Seller swift bic",
		SwiftBicFieldIsVisible: true,
	}
}

func defaultLineItem() LineItem {
	return LineItem{
		InvoiceItemNumberIsVisible: true,

		Name:               "Item name",
		NameFieldIsVisible: true,

		TypeOfGTUFieldIsVisible: true,

		Amount:               decimal.NewFromInt(1),
		AmountFieldIsVisible: true,

		Unit:               "service",
		UnitFieldIsVisible: true,

		NetPrice:               decimal.Zero,
		NetPriceFieldIsVisible: true,

		Vat:               VatExempt(VatTagNP),
		VatFieldIsVisible: true,

		NetAmount:               decimal.Zero,
		NetAmountFieldIsVisible: true,

		VatAmount:               decimal.Zero,
		VatAmountFieldIsVisible: true,

		PreTaxAmount:               decimal.Zero,
		PreTaxAmountFieldIsVisible: true,
	}
}
