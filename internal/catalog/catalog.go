// Package catalog reads product master spreadsheets into product records.
package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"distrobill/internal/billing"
	"distrobill/internal/domain"
)

// Product is one catalog row as stored in a products record.
type Product struct {
	Name         string  `json:"name"`
	HSNCode      string  `json:"hsn_code,omitempty"`
	GSTSlab      float64 `json:"gst_slab"`
	MRP          float64 `json:"mrp,omitempty"`
	SellingPrice float64 `json:"selling_price,omitempty"`
	Pack         string  `json:"pack,omitempty"`
	Manufacturer string  `json:"manufacturer,omitempty"`
}

// RowError reports a spreadsheet row that was skipped. Row is 1-based as
// shown by spreadsheet applications.
type RowError struct {
	Row    int
	Reason string
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}

// Header aliases, normalized to lower case with spaces and dots removed.
var columnAliases = map[string]string{
	"name":           "name",
	"productname":    "name",
	"product":        "name",
	"hsn":            "hsn_code",
	"hsncode":        "hsn_code",
	"gst":            "gst_slab",
	"gstslab":        "gst_slab",
	"gstrate":        "gst_slab",
	"gst%":           "gst_slab",
	"mrp":            "mrp",
	"rate":           "selling_price",
	"sellingprice":   "selling_price",
	"ptr":            "selling_price",
	"pack":           "pack",
	"packing":        "pack",
	"manufacturer":   "manufacturer",
	"company":        "manufacturer",
	"mfg":            "manufacturer",
	"manufacturedby": "manufacturer",
}

// ReadProducts parses the first sheet of a product master workbook. The
// first row holds column headers; a name column is required. Rows with a
// bad number or an unknown GST slab are returned as RowErrors.
func ReadProducts(f *excelize.File) ([]Product, []RowError, error) {
	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("workbook is empty")
	}

	cols := make(map[string]int)
	for i, h := range rows[0] {
		key := strings.NewReplacer(" ", "", "_", "", ".", "").Replace(strings.ToLower(strings.TrimSpace(h)))
		if field, ok := columnAliases[key]; ok {
			if _, dup := cols[field]; !dup {
				cols[field] = i
			}
		}
	}
	if _, ok := cols["name"]; !ok {
		return nil, nil, fmt.Errorf("no product name column in header %q", rows[0])
	}

	var (
		products []Product
		skipped  []RowError
	)
	for i, row := range rows[1:] {
		rowNum := i + 2
		cell := func(field string) string {
			idx, ok := cols[field]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		p := Product{
			Name:         cell("name"),
			HSNCode:      cell("hsn_code"),
			Pack:         cell("pack"),
			Manufacturer: cell("manufacturer"),
		}
		if p.Name == "" {
			continue
		}

		var reason string
		if p.GSTSlab, reason = number(cell("gst_slab"), "gst_slab"); reason == "" && !billing.IsKnownSlab(p.GSTSlab) {
			reason = fmt.Sprintf("unknown gst slab %v", p.GSTSlab)
		}
		if reason == "" {
			p.MRP, reason = number(cell("mrp"), "mrp")
		}
		if reason == "" {
			p.SellingPrice, reason = number(cell("selling_price"), "selling_price")
		}
		if reason != "" {
			skipped = append(skipped, RowError{Row: rowNum, Reason: reason})
			continue
		}
		products = append(products, p)
	}
	return products, skipped, nil
}

// number parses a cell such as "12", "12.50" or "18%". Blank is zero.
func number(s, field string) (float64, string) {
	s = strings.TrimSuffix(strings.ReplaceAll(s, ",", ""), "%")
	if s == "" {
		return 0, ""
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Sprintf("%s %q is not a number", field, s)
	}
	if d.IsNegative() {
		return 0, fmt.Sprintf("%s %q is negative", field, s)
	}
	return d.InexactFloat64(), ""
}

// Records converts products into records ready for RecordRepository.CreateBatch.
func Records(products []Product) ([]domain.Record, error) {
	out := make([]domain.Record, 0, len(products))
	for _, p := range products {
		data, err := json.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("encoding product %q: %w", p.Name, err)
		}
		out = append(out, domain.Record{Resource: domain.ResourceProducts, Data: data})
	}
	return out, nil
}
