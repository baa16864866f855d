package billing

import (
	"fmt"
	"sort"
	"strconv"
)

// ComputeInvoice parses raw batch info leniently and computes the invoice.
func ComputeInvoice(raw RawBatchInfo, ctx InvoiceContext) *Invoice {
	b, _ := ReadBatchInfo(raw)
	return ComputeBatch(b, ctx)
}

// ComputeLines computes per-line breakdowns and invoice totals.
//
// Negative or non-finite quantities, prices and slabs are computed as 0 and
// reported in Invoice.Warnings. A slab above 100 is computed as 100. Any
// other slab outside the notified set is computed as given. Both are
// reported. Totals are running sums of the line amounts in input order.
func ComputeLines(items []LineItem, ctx InvoiceContext) *Invoice {
	return ComputeBatch(Batch{Items: items}, ctx)
}

// ComputeBatch is ComputeLines for leniently decoded batch info. The decode
// warnings of each line precede the warnings raised while computing it.
func ComputeBatch(b Batch, ctx InvoiceContext) *Invoice {
	items := b.Items
	inv := &Invoice{
		Context: ctx,
		Lines:   make([]Line, 0, len(items)),
	}

	decoded := make(map[int][]Warning)
	for _, w := range b.Warnings {
		decoded[w.Line] = append(decoded[w.Line], w)
	}

	slabs := make(map[float64]*SlabSummary)
	for i := range items {
		item, warnings := sanitizeLine(i, items[i])
		inv.Warnings = append(inv.Warnings, decoded[i]...)
		inv.Warnings = append(inv.Warnings, warnings...)

		amounts := ComputeLine(item.SellingPrice, item.BilledQuantity, item.GSTSlab)
		inv.Lines = append(inv.Lines, Line{
			Index:         i,
			Item:          items[i],
			TotalQuantity: item.BilledQuantity + item.FreeQuantity,
			LineAmounts:   amounts,
		})
		inv.Totals.add(amounts)

		s, ok := slabs[item.GSTSlab]
		if !ok {
			s = &SlabSummary{Slab: item.GSTSlab}
			slabs[item.GSTSlab] = s
		}
		s.add(amounts)
	}

	inv.Totals.Slabs = make([]SlabSummary, 0, len(slabs))
	for _, s := range slabs {
		inv.Totals.Slabs = append(inv.Totals.Slabs, *s)
	}
	sort.Slice(inv.Totals.Slabs, func(a, b int) bool {
		return inv.Totals.Slabs[a].Slab < inv.Totals.Slabs[b].Slab
	})
	inv.Totals.AmountInWords = AmountInWords(inv.Totals.Gross)

	return inv
}

// sanitizeLine returns the values used for computation. The original item is
// kept unchanged on the Line for display.
func sanitizeLine(idx int, item LineItem) (LineItem, []Warning) {
	var warnings []Warning
	warn := func(field, value, reason string) {
		warnings = append(warnings, Warning{Line: idx, Field: field, Value: value, Reason: reason})
	}

	if item.BilledQuantity < 0 {
		warn("billed_quantity", strconv.FormatInt(item.BilledQuantity, 10), "negative quantity computed as 0")
		item.BilledQuantity = 0
	}
	if item.FreeQuantity < 0 {
		warn("free_quantity", strconv.FormatInt(item.FreeQuantity, 10), "negative quantity computed as 0")
		item.FreeQuantity = 0
	}
	if !isFinite(item.SellingPrice) || item.SellingPrice < 0 {
		warn("selling_price", fmtFloat(item.SellingPrice), "invalid price computed as 0")
		item.SellingPrice = 0
	}
	switch {
	case !isFinite(item.GSTSlab) || item.GSTSlab < 0:
		warn("gst_slab", fmtFloat(item.GSTSlab), "invalid slab computed as 0")
		item.GSTSlab = 0
	case item.GSTSlab > maxSlab:
		warn("gst_slab", fmtFloat(item.GSTSlab), "slab above 100 computed as 100")
		item.GSTSlab = maxSlab
	case !IsKnownSlab(item.GSTSlab):
		warn("gst_slab", fmtFloat(item.GSTSlab), "slab is not a notified GST rate")
	}
	return item, warnings
}

func fmtFloat(v float64) string {
	return fmt.Sprintf("%g", v)
}
