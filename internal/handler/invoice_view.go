package handler

import (
	"distrobill/internal/billing"
)

// AmountsView is a LineAmounts block formatted to two decimals.
type AmountsView struct {
	Taxable string `json:"taxable" example:"1000.00"`
	SGST    string `json:"sgst" example:"90.00"`
	CGST    string `json:"cgst" example:"90.00"`
	Gross   string `json:"gross" example:"1180.00"`
}

// InvoiceLineView is one printable invoice row.
type InvoiceLineView struct {
	Index          int     `json:"index" example:"0"`
	ProductID      string  `json:"product_id" example:"p-1"`
	ProductName    string  `json:"product_name,omitempty" example:"Paracetamol 500"`
	HSNCode        string  `json:"hsn_code,omitempty" example:"3004"`
	BatchID        string  `json:"batch_id,omitempty" example:"B42"`
	ExpiryDate     string  `json:"expiry_date,omitempty" example:"2027-03"`
	BilledQuantity int64   `json:"billed_quantity" example:"10"`
	FreeQuantity   int64   `json:"free_quantity" example:"2"`
	TotalQuantity  int64   `json:"total_quantity" example:"12"`
	MRP            string  `json:"mrp" example:"150.00"`
	SellingPrice   string  `json:"selling_price" example:"118.00"`
	GSTSlab        float64 `json:"gst_slab" example:"18"`
	AmountsView
}

// SlabView is the tax summary row of one GST slab.
type SlabView struct {
	Slab float64 `json:"slab" example:"18"`
	AmountsView
}

// TotalsView holds the invoice totals ready for printing.
type TotalsView struct {
	AmountsView
	AmountInWords string     `json:"amount_in_words" example:"One Thousand One Hundred Eighty Rupees Only"`
	Slabs         []SlabView `json:"slabs"`
}

// InvoiceView is the rendered invoice returned by the API.
type InvoiceView struct {
	Context  billing.InvoiceContext `json:"context"`
	Lines    []InvoiceLineView      `json:"lines"`
	Totals   TotalsView             `json:"totals"`
	Warnings []billing.Warning      `json:"warnings,omitempty"`
}

func amountsView(a billing.LineAmounts) AmountsView {
	return AmountsView{
		Taxable: billing.FormatAmount(a.Taxable),
		SGST:    billing.FormatAmount(a.SGST),
		CGST:    billing.FormatAmount(a.CGST),
		Gross:   billing.FormatAmount(a.Gross),
	}
}

// NewInvoiceView formats every amount of inv for display.
func NewInvoiceView(inv *billing.Invoice) InvoiceView {
	v := InvoiceView{
		Context:  inv.Context,
		Lines:    make([]InvoiceLineView, 0, len(inv.Lines)),
		Warnings: inv.Warnings,
		Totals: TotalsView{
			AmountsView:   amountsView(inv.Totals.LineAmounts),
			AmountInWords: inv.Totals.AmountInWords,
			Slabs:         make([]SlabView, 0, len(inv.Totals.Slabs)),
		},
	}
	for _, l := range inv.Lines {
		v.Lines = append(v.Lines, InvoiceLineView{
			Index:          l.Index,
			ProductID:      l.Item.ProductID,
			ProductName:    l.Item.ProductName,
			HSNCode:        l.Item.HSNCode,
			BatchID:        l.Item.BatchID,
			ExpiryDate:     l.Item.ExpiryDate,
			BilledQuantity: l.Item.BilledQuantity,
			FreeQuantity:   l.Item.FreeQuantity,
			TotalQuantity:  l.TotalQuantity,
			MRP:            billing.FormatAmount(l.Item.MRP),
			SellingPrice:   billing.FormatAmount(l.Item.SellingPrice),
			GSTSlab:        l.Item.GSTSlab,
			AmountsView:    amountsView(l.LineAmounts),
		})
	}
	for _, s := range inv.Totals.Slabs {
		v.Totals.Slabs = append(v.Totals.Slabs, SlabView{Slab: s.Slab, AmountsView: amountsView(s.LineAmounts)})
	}
	return v
}
