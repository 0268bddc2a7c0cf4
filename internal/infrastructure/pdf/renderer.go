// Package pdf renders the printable invoice with Maroto v2.
//
// A4 page layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Invoice No + type        │  Date of issue/service  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SELLER (bank details)            │  BUYER                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: No | Name | GTU | Amount | ... | Pre-tax amount     │
//	│  VAT SUMMARY: rate | net | VAT | gross                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL TO PAY + amount in words + payment terms + notes     │
//	│  SIGNATURES: authorized to receive | authorized to issue    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/invoicepdf/invoice-api/internal/application/document"
	"github.com/invoicepdf/invoice-api/internal/domain/invoice"
)

var (
	colorPrimary = &props.Color{Red: 30, Green: 30, Blue: 30}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ document.PDFRenderer = (*Renderer)(nil)

// Renderer implements document.PDFRenderer using Maroto v2.
type Renderer struct{}

func NewRenderer() *Renderer { return &Renderer{} }

// Render produces the PDF bytes for precomputed render data.
func (r *Renderer) Render(_ context.Context, data *document.RenderData) ([]byte, error) {
	doc := data.Document
	l := labelsFor(doc.Language)

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(l.InvoiceNo+" "+doc.InvoiceNumber, true).
		WithAuthor(doc.Seller.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(l, doc, data))
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.4}))
	m.AddRows(partiesRow(l, doc))
	m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.3}))

	cols := itemColumns(l, doc)
	m.AddRows(itemsHeaderRow(cols))
	for _, r := range itemRows(cols, data) {
		m.AddRows(r)
	}

	if doc.VatTableSummaryIsVisible {
		m.AddRows(line.NewRow(3))
		for _, r := range vatSummaryRows(l, data) {
			m.AddRows(r)
		}
	}

	m.AddRows(line.NewRow(3))
	for _, r := range totalsRows(l, doc, data) {
		m.AddRows(r)
	}

	if doc.PersonAuthorizedToReceiveFieldIsVisible || doc.PersonAuthorizedToIssueFieldIsVisible {
		m.AddRows(line.NewRow(12))
		m.AddRows(signatureRow(l, doc))
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return out.GetBytes(), nil
}

// headerRow: invoice number and type on the left, dates on the right.
func headerRow(l labels, doc *invoice.Document, data *document.RenderData) core.Row {
	left := col.New(7).Add(
		text.New(l.InvoiceNo+" "+doc.InvoiceNumber, props.Text{
			Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
		}),
	)
	if doc.InvoiceTypeFieldIsVisible && doc.InvoiceType != "" {
		left.Add(text.New(doc.InvoiceType, props.Text{Size: 9, Top: 9, Color: colorGray}))
	}

	return row.New(18).Add(
		left,
		col.New(5).Add(
			text.New(l.DateOfIssue+": "+data.DateOfIssue, props.Text{
				Size: 9, Align: align.Right, Top: 2,
			}),
			text.New(l.DateOfService+": "+data.DateOfService, props.Text{
				Size: 9, Align: align.Right, Top: 8,
			}),
		),
	)
}

// partiesRow: seller (with bank details) and buyer side by side.
func partiesRow(l labels, doc *invoice.Document) core.Row {
	sellerLines := []string{doc.Seller.Name, doc.Seller.Address}
	if doc.Seller.VatNoFieldIsVisible && doc.Seller.VatNo != "" {
		sellerLines = append(sellerLines, l.VatNo+": "+doc.Seller.VatNo)
	}
	sellerLines = append(sellerLines, l.Email+": "+doc.Seller.Email)
	if doc.Seller.AccountNumberFieldIsVisible && doc.Seller.AccountNumber != "" {
		sellerLines = append(sellerLines, l.AccountNumber+": "+doc.Seller.AccountNumber)
	}
	if doc.Seller.SwiftBicFieldIsVisible && doc.Seller.SwiftBic != "" {
		sellerLines = append(sellerLines, l.SwiftBic+": "+doc.Seller.SwiftBic)
	}

	buyerLines := []string{doc.Buyer.Name, doc.Buyer.Address}
	if doc.Buyer.VatNoFieldIsVisible && doc.Buyer.VatNo != "" {
		buyerLines = append(buyerLines, l.VatNo+": "+doc.Buyer.VatNo)
	}
	buyerLines = append(buyerLines, l.Email+": "+doc.Buyer.Email)

	height := float64(10 + 6*max(len(sellerLines), len(buyerLines)))
	return row.New(height).Add(
		partyCol(l.Seller, sellerLines),
		partyCol(l.Buyer, buyerLines),
	)
}

func partyCol(title string, lines []string) core.Col {
	c := col.New(6).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1,
		}),
	)
	for i, l := range lines {
		style := fontstyle.Normal
		if i == 0 {
			style = fontstyle.Bold
		}
		c.Add(text.New(l, props.Text{Size: 8.5, Style: style, Top: float64(8 + i*6)}))
	}
	return c
}

// itemColumn is one column of the items table. Visibility follows the
// flags of the first item; the editor toggles them uniformly.
type itemColumn struct {
	width  int
	header string
	align  align.Type
	value  func(index int, it document.ItemDisplay, li invoice.LineItem) string
}

func itemColumns(l labels, doc *invoice.Document) []itemColumn {
	var flags invoice.LineItem
	if len(doc.Items) > 0 {
		flags = doc.Items[0]
	}

	all := []struct {
		visible bool
		col     itemColumn
	}{
		{flags.InvoiceItemNumberIsVisible, itemColumn{1, l.ItemNo, align.Center,
			func(i int, _ document.ItemDisplay, _ invoice.LineItem) string { return fmt.Sprintf("%d", i+1) }}},
		{flags.NameFieldIsVisible, itemColumn{0, l.ItemName, align.Left,
			func(_ int, _ document.ItemDisplay, li invoice.LineItem) string { return li.Name }}},
		{flags.TypeOfGTUFieldIsVisible && flags.TypeOfGTU != "", itemColumn{1, l.TypeOfGTU, align.Center,
			func(_ int, _ document.ItemDisplay, li invoice.LineItem) string { return li.TypeOfGTU }}},
		{flags.AmountFieldIsVisible, itemColumn{1, l.Amount, align.Center,
			func(_ int, it document.ItemDisplay, _ invoice.LineItem) string { return it.Amount }}},
		{flags.UnitFieldIsVisible, itemColumn{1, l.Unit, align.Center,
			func(_ int, _ document.ItemDisplay, li invoice.LineItem) string { return li.Unit }}},
		{flags.NetPriceFieldIsVisible, itemColumn{1, l.NetPrice, align.Right,
			func(_ int, it document.ItemDisplay, _ invoice.LineItem) string { return it.NetPrice }}},
		{flags.VatFieldIsVisible, itemColumn{1, l.Vat, align.Center,
			func(_ int, it document.ItemDisplay, _ invoice.LineItem) string { return it.Vat }}},
		{flags.NetAmountFieldIsVisible, itemColumn{1, l.NetAmount, align.Right,
			func(_ int, it document.ItemDisplay, _ invoice.LineItem) string { return it.NetAmount }}},
		{flags.VatAmountFieldIsVisible, itemColumn{1, l.VatAmount, align.Right,
			func(_ int, it document.ItemDisplay, _ invoice.LineItem) string { return it.VatAmount }}},
		{flags.PreTaxAmountFieldIsVisible, itemColumn{1, l.PreTax, align.Right,
			func(_ int, it document.ItemDisplay, _ invoice.LineItem) string { return it.PreTaxAmount }}},
	}

	used := 0
	var cols []itemColumn
	var nameIdx = -1
	for _, c := range all {
		if !c.visible {
			continue
		}
		if c.col.width == 0 {
			nameIdx = len(cols)
		}
		used += c.col.width
		cols = append(cols, c.col)
	}
	// the name column takes whatever width remains of the 12-unit grid
	if nameIdx >= 0 {
		cols[nameIdx].width = 12 - used
	}
	return cols
}

func itemsHeaderRow(cols []itemColumn) core.Row {
	r := row.New(8)
	for _, c := range cols {
		r.Add(col.New(c.width).Add(text.New(c.header, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align, Top: 2,
		})))
	}
	return r
}

func itemRows(cols []itemColumn, data *document.RenderData) []core.Row {
	doc := data.Document
	out := make([]core.Row, 0, len(data.Items))
	for i, it := range data.Items {
		r := row.New(7)
		for _, c := range cols {
			r.Add(col.New(c.width).Add(text.New(c.value(i, it, doc.Items[i]), props.Text{
				Size: 8, Align: c.align, Top: 1,
			})))
		}
		out = append(out, r)
	}
	return out
}

// vatSummaryRows: per-rate summary (rates descending, exemption tags
// last) plus a totals row.
func vatSummaryRows(l labels, data *document.RenderData) []core.Row {
	header := row.New(7).Add(
		col.New(4),
		summaryCell(l.VatRate, align.Center, true),
		summaryCell(l.NetValue, align.Right, true),
		summaryCell(l.Vat, align.Right, true),
		summaryCell(l.GrossValue, align.Right, true),
	)

	rows := []core.Row{header}
	for _, s := range data.VatSummary {
		rows = append(rows, row.New(6).Add(
			col.New(4),
			summaryCell(s.Rate, align.Center, false),
			summaryCell(s.Net, align.Right, false),
			summaryCell(s.Vat, align.Right, false),
			summaryCell(s.PreTax, align.Right, false),
		))
	}
	rows = append(rows, row.New(6).Add(
		col.New(4),
		summaryCell(l.Sum, align.Center, true),
		summaryCell(data.VatSummaryTotal.Net, align.Right, true),
		summaryCell(data.VatSummaryTotal.Vat, align.Right, true),
		summaryCell(data.VatSummaryTotal.PreTax, align.Right, true),
	))
	return rows
}

func summaryCell(value string, a align.Type, bold bool) core.Col {
	style := fontstyle.Normal
	if bold {
		style = fontstyle.Bold
	}
	return col.New(2).Add(text.New(value, props.Text{
		Size: 8, Align: a, Style: style, Top: 1,
	}))
}

// totalsRows: total due, amount in words and the payment terms block.
func totalsRows(l labels, doc *invoice.Document, data *document.RenderData) []core.Row {
	rows := []core.Row{
		row.New(10).Add(col.New(12).Add(
			text.New(l.TotalDue+": "+data.Total+" "+doc.Currency, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right,
				Color: colorPrimary, Top: 2,
			}),
		)),
		row.New(6).Add(col.New(12).Add(
			text.New(fmt.Sprintf("%s: %s %s %s/100", l.InWords, data.TotalInWords,
				doc.Currency, data.TotalFraction), props.Text{
				Size: 8.5, Align: align.Right, Color: colorGray,
			}),
		)),
	}

	if doc.PaymentMethodFieldIsVisible && doc.PaymentMethod != "" {
		rows = append(rows, captionRow(l.PaymentMethod, doc.PaymentMethod))
	}
	rows = append(rows, captionRow(l.PaymentDue, data.PaymentDue))
	if doc.NotesFieldIsVisible && doc.Notes != "" {
		rows = append(rows, captionRow(l.Notes, doc.Notes))
	}
	return rows
}

func captionRow(caption, value string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(caption+": "+value, props.Text{Size: 9, Top: 1}),
	))
}

// signatureRow: dotted signature lines for the authorized persons.
func signatureRow(l labels, doc *invoice.Document) core.Row {
	r := row.New(14)
	if doc.PersonAuthorizedToReceiveFieldIsVisible {
		r.Add(signatureCol(l.AuthorizedToReceive, l.SignatureHint))
	}
	if doc.PersonAuthorizedToIssueFieldIsVisible {
		r.Add(signatureCol(l.AuthorizedToIssue, l.SignatureHint))
	}
	return r
}

func signatureCol(caption, hint string) core.Col {
	return col.New(6).Add(
		text.New(".................................................", props.Text{
			Size: 9, Align: align.Center, Top: 2, Color: colorGray,
		}),
		text.New(caption, props.Text{Size: 8, Align: align.Center, Top: 7}),
		text.New("("+hint+")", props.Text{Size: 7, Align: align.Center, Top: 11, Color: colorGray}),
	)
}
