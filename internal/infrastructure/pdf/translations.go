package pdf

// labels are the printed field captions, per document language.
type labels struct {
	InvoiceNo     string
	DateOfIssue   string
	DateOfService string

	Seller        string
	Buyer         string
	VatNo         string
	Email         string
	AccountNumber string
	SwiftBic      string

	ItemNo    string
	ItemName  string
	TypeOfGTU string
	Amount    string
	Unit      string
	NetPrice  string
	Vat       string
	NetAmount string
	VatAmount string
	PreTax    string
	Sum       string

	VatRate    string
	NetValue   string
	GrossValue string

	TotalDue      string
	InWords       string
	PaymentMethod string
	PaymentDue    string
	Notes         string

	AuthorizedToReceive string
	AuthorizedToIssue   string
	SignatureHint       string
}

var labelSets = map[string]labels{
	"en": {
		InvoiceNo:     "Invoice No. of",
		DateOfIssue:   "Date of issue",
		DateOfService: "Date of sales/of executing the service",

		Seller:        "Seller",
		Buyer:         "Buyer",
		VatNo:         "VAT no",
		Email:         "e-mail",
		AccountNumber: "Account Number",
		SwiftBic:      "SWIFT/BIC number",

		ItemNo:    "No",
		ItemName:  "Name of goods/service",
		TypeOfGTU: "GTU",
		Amount:    "Amount",
		Unit:      "Unit",
		NetPrice:  "Net price",
		Vat:       "VAT",
		NetAmount: "Net amount",
		VatAmount: "VAT amount",
		PreTax:    "Pre-tax amount",
		Sum:       "Sum",

		VatRate:    "VAT rate",
		NetValue:   "Net value",
		GrossValue: "Gross value",

		TotalDue:      "Total to pay",
		InWords:       "In words",
		PaymentMethod: "Payment method",
		PaymentDue:    "Payment date",
		Notes:         "Notes",

		AuthorizedToReceive: "Person authorized to receive",
		AuthorizedToIssue:   "Person authorized to issue",
		SignatureHint:       "signature",
	},
	"pl": {
		InvoiceNo:     "Faktura nr",
		DateOfIssue:   "Data wystawienia",
		DateOfService: "Data sprzedaży / wykonania usługi",

		Seller:        "Sprzedawca",
		Buyer:         "Nabywca",
		VatNo:         "NIP",
		Email:         "E-mail",
		AccountNumber: "Nr konta",
		SwiftBic:      "Nr SWIFT/BIC",

		ItemNo:    "Lp.",
		ItemName:  "Nazwa towaru/usługi",
		TypeOfGTU: "GTU",
		Amount:    "Ilość",
		Unit:      "Jm.",
		NetPrice:  "Cena netto",
		Vat:       "VAT",
		NetAmount: "Wartość netto",
		VatAmount: "Kwota VAT",
		PreTax:    "Wartość brutto",
		Sum:       "Razem",

		VatRate:    "Stawka VAT",
		NetValue:   "Wartość netto",
		GrossValue: "Wartość brutto",

		TotalDue:      "Do zapłaty",
		InWords:       "Słownie",
		PaymentMethod: "Sposób płatności",
		PaymentDue:    "Termin płatności",
		Notes:         "Uwagi",

		AuthorizedToReceive: "Osoba upoważniona do odbioru",
		AuthorizedToIssue:   "Osoba upoważniona do wystawienia",
		SignatureHint:       "podpis",
	},
}

// labelsFor picks the caption set for a document language, English when
// the language has no set.
func labelsFor(lang string) labels {
	if l, ok := labelSets[lang]; ok {
		return l
	}
	return labelSets["en"]
}
