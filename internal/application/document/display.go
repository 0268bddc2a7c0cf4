package document

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/invoicepdf/invoice-api/internal/domain/invoice"
	"github.com/invoicepdf/invoice-api/pkg/numwords"
)

// RenderData is everything the PDF renderer needs: the validated document
// plus every derived display string, precomputed here so the renderer never
// re-derives business values.
type RenderData struct {
	Document *invoice.Document

	DateOfIssue   string
	DateOfService string
	PaymentDue    string

	Items []ItemDisplay

	Total         string
	TotalInWords  string
	TotalFraction string // cents as "NN/100"

	VatSummary      []VatSummaryRow
	VatSummaryTotal VatSummaryRow
}

// ItemDisplay carries the formatted monetary strings of one line item, in
// document item order.
type ItemDisplay struct {
	Amount       string
	NetPrice     string
	Vat          string // "23%", "NP", "OO"
	NetAmount    string
	VatAmount    string
	PreTaxAmount string
}

// VatSummaryRow is one row of the VAT summary table.
type VatSummaryRow struct {
	Rate   string
	Net    string
	Vat    string
	PreTax string
}

// Display layouts for the supported date patterns. Dates are stored as ISO
// strings and only formatted here.
var dateLayouts = map[string]string{
	"YYYY-MM-DD":   "2006-01-02",
	"DD/MM/YYYY":   "02/01/2006",
	"MM/DD/YYYY":   "01/02/2006",
	"D MMMM YYYY":  "2 January 2006",
	"MMMM D, YYYY": "January 2, 2006",
	"DD.MM.YYYY":   "02.01.2006",
	"DD-MM-YYYY":   "02-01-2006",
	"YYYY.MM.DD":   "2006.01.02",
}

var moneyPrinter = message.NewPrinter(language.English)

// BuildRenderData precomputes the display strings for doc. The document is
// expected to be validated and recomputed.
func BuildRenderData(doc *invoice.Document) *RenderData {
	data := &RenderData{
		Document:      doc,
		DateOfIssue:   FormatDate(doc.DateOfIssue, doc.DateFormat),
		DateOfService: FormatDate(doc.DateOfService, doc.DateFormat),
		PaymentDue:    FormatDate(doc.PaymentDue, doc.DateFormat),
		Total:         FormatMoney(doc.Total),
		TotalInWords:  AmountInWords(doc.Total, doc.Language),
		TotalFraction: FractionalPart(doc.Total),
	}

	data.Items = make([]ItemDisplay, len(doc.Items))
	for i, item := range doc.Items {
		data.Items[i] = ItemDisplay{
			Amount:       item.Amount.String(),
			NetPrice:     FormatMoney(item.NetPrice),
			Vat:          vatDisplay(item.Vat),
			NetAmount:    FormatMoney(item.NetAmount),
			VatAmount:    FormatMoney(item.VatAmount),
			PreTaxAmount: FormatMoney(item.PreTaxAmount),
		}
	}

	data.VatSummary, data.VatSummaryTotal = buildVatSummary(doc.Items, doc.Total)
	return data
}

// FormatDate renders an ISO date in the document's display pattern. An
// unparseable value is returned unchanged; stored dates are never mutated.
func FormatDate(iso, pattern string) string {
	layout, ok := dateLayouts[pattern]
	if !ok {
		layout = dateLayouts[invoice.DefaultDateFormat]
	}
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format(layout)
}

// FormatMoney renders a monetary value with two decimals and space-grouped
// thousands ("12 345.67"). Negative inputs render as zero; the validator
// rejects them before they reach display code.
func FormatMoney(d decimal.Decimal) string {
	if d.Sign() < 0 {
		d = decimal.Zero
	}
	f, _ := d.Float64()
	s := moneyPrinter.Sprintf("%v", number.Decimal(f,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
	return strings.ReplaceAll(s, ",", " ")
}

// AmountInWords spells out the integer part of the total in the document
// language, "-/-" when the value cannot be converted.
func AmountInWords(total decimal.Decimal, lang string) string {
	if total.Sign() < 0 {
		return "-/-"
	}
	words, err := numwords.Convert(total.Floor().IntPart(), lang)
	if err != nil {
		return "-/-"
	}
	return words
}

// FractionalPart renders the cents of the total, zero-padded ("07").
func FractionalPart(total decimal.Decimal) string {
	if total.Sign() < 0 {
		total = decimal.Zero
	}
	cents := total.Sub(total.Floor()).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	return fmt.Sprintf("%02d", cents)
}

func vatDisplay(v invoice.VatValue) string {
	if v.IsExempt() {
		return v.Tag()
	}
	return v.Rate().String() + "%"
}

// buildVatSummary orders items for the VAT summary table: numeric rates
// descending first, exemption tags last in alphabetical order, plus a
// totals row summing net and VAT amounts.
func buildVatSummary(items []invoice.LineItem, total decimal.Decimal) ([]VatSummaryRow, VatSummaryRow) {
	sorted := make([]invoice.LineItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Vat, sorted[j].Vat
		switch {
		case a.IsExempt() && b.IsExempt():
			return a.Tag() < b.Tag()
		case a.IsExempt():
			return false
		case b.IsExempt():
			return true
		default:
			return a.Rate().GreaterThan(b.Rate())
		}
	})

	rows := make([]VatSummaryRow, len(sorted))
	totalNet := decimal.Zero
	totalVat := decimal.Zero
	for i, item := range sorted {
		rows[i] = VatSummaryRow{
			Rate:   vatDisplay(item.Vat),
			Net:    FormatMoney(item.NetAmount),
			Vat:    FormatMoney(item.VatAmount),
			PreTax: FormatMoney(item.PreTaxAmount),
		}
		totalNet = totalNet.Add(item.NetAmount)
		totalVat = totalVat.Add(item.VatAmount)
	}

	totals := VatSummaryRow{
		Net:    FormatMoney(totalNet),
		Vat:    FormatMoney(totalVat),
		PreTax: FormatMoney(total),
	}
	return rows, totals
}
