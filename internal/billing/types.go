// Package billing computes GST-inclusive delivery challan invoices.
//
// Everything in this package is pure: no I/O, no shared mutable state.
// Callers resolve the stored batch info into a RawBatchInfo, hand it to
// ComputeInvoice together with header context, and render the result.
package billing

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is one product line of a challan's batch info.
type LineItem struct {
	ProductID       string  `json:"product_id" validate:"required"`
	ProductName     string  `json:"product_name,omitempty"`
	BilledQuantity  int64   `json:"billed_quantity" validate:"gte=0"`
	FreeQuantity    int64   `json:"free_quantity" validate:"gte=0"`
	SellingPrice    float64 `json:"selling_price" validate:"finite,gte=0"`
	GSTSlab         float64 `json:"gst_slab" validate:"finite,gte=0,lte=100"`
	HSNCode         string  `json:"hsn_code,omitempty"`
	BatchID         string  `json:"batch_id,omitempty"`
	ExpiryDate      string  `json:"expiry_date,omitempty"`
	MRP             float64 `json:"mrp,omitempty" validate:"finite,gte=0"`
	DiscountPercent float64 `json:"discount_percent,omitempty" validate:"finite,gte=0,lte=100"`
}

// errQuantityRange is reported for quantities that do not fit in an int64.
var errQuantityRange = errors.New("quantity out of range")

var (
	maxQuantity = decimal.NewFromInt(math.MaxInt64)
	minQuantity = decimal.NewFromInt(math.MinInt64)
)

// lineField decodes one JSON member into a LineItem. Numbers may arrive as
// JSON numbers or numeric strings, ids as strings or numbers.
type lineField struct {
	name string
	set  func(l *LineItem, raw json.RawMessage) error
}

// lineFields is in LineItem field order so reported problems are ordered.
var lineFields = []lineField{
	{"product_id", textField(func(l *LineItem, s string) { l.ProductID = s })},
	{"product_name", textField(func(l *LineItem, s string) { l.ProductName = s })},
	{"billed_quantity", quantityField(func(l *LineItem, n int64) { l.BilledQuantity = n })},
	{"free_quantity", quantityField(func(l *LineItem, n int64) { l.FreeQuantity = n })},
	{"selling_price", amountField(func(l *LineItem, v float64) { l.SellingPrice = v })},
	{"gst_slab", amountField(func(l *LineItem, v float64) { l.GSTSlab = v })},
	{"hsn_code", textField(func(l *LineItem, s string) { l.HSNCode = s })},
	{"batch_id", textField(func(l *LineItem, s string) { l.BatchID = s })},
	{"expiry_date", textField(func(l *LineItem, s string) { l.ExpiryDate = s })},
	{"mrp", amountField(func(l *LineItem, v float64) { l.MRP = v })},
	{"discount_percent", amountField(func(l *LineItem, v float64) { l.DiscountPercent = v })},
}

func textField(set func(*LineItem, string)) func(*LineItem, json.RawMessage) error {
	return func(l *LineItem, raw json.RawMessage) error {
		var s flexString
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		set(l, string(s))
		return nil
	}
}

func amountField(set func(*LineItem, float64)) func(*LineItem, json.RawMessage) error {
	return func(l *LineItem, raw json.RawMessage) error {
		var d flexDecimal
		if err := json.Unmarshal(raw, &d); err != nil {
			return err
		}
		set(l, d.InexactFloat64())
		return nil
	}
}

// quantityField truncates to whole units.
func quantityField(set func(*LineItem, int64)) func(*LineItem, json.RawMessage) error {
	return func(l *LineItem, raw json.RawMessage) error {
		var d flexDecimal
		if err := json.Unmarshal(raw, &d); err != nil {
			return err
		}
		if d.GreaterThan(maxQuantity) || d.LessThan(minQuantity) {
			return errQuantityRange
		}
		set(l, d.IntPart())
		return nil
	}
}

// decodeLine fills a LineItem from the members of a JSON object. A member
// that cannot be decoded keeps its zero value and is passed to fail.
func decodeLine(members map[string]json.RawMessage, fail func(field string, raw json.RawMessage, err error)) LineItem {
	var l LineItem
	for _, f := range lineFields {
		raw, ok := members[f.name]
		if !ok {
			continue
		}
		if err := f.set(&l, raw); err != nil {
			fail(f.name, raw, err)
		}
	}
	return l
}

// UnmarshalJSON decodes a line item strictly: the first member that cannot
// be decoded is returned as an error.
func (l *LineItem) UnmarshalJSON(b []byte) error {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(b, &members); err != nil {
		return err
	}
	var first error
	*l = decodeLine(members, func(field string, _ json.RawMessage, err error) {
		if first == nil {
			first = fmt.Errorf("%s: %w", field, err)
		}
	})
	return first
}

// flexDecimal accepts 12, 12.5, "12.5", "" and null.
type flexDecimal struct {
	decimal.Decimal
}

func (d *flexDecimal) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == `""` {
		d.Decimal = decimal.Zero
		return nil
	}
	return d.Decimal.UnmarshalJSON(b)
}

// flexString accepts a JSON string or number and keeps its text.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	var v interface{}
	dec := json.NewDecoder(strings.NewReader(string(b)))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return err
	}
	switch t := v.(type) {
	case nil:
		*s = ""
	case string:
		*s = flexString(t)
	case json.Number:
		*s = flexString(t.String())
	default:
		return fmt.Errorf("expected string or number, got %T", t)
	}
	return nil
}

// Party is a customer or distributor as printed on the invoice header.
type Party struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	GSTIN     string `json:"gstin,omitempty"`
	StateCode string `json:"state_code,omitempty"`
}

// InvoiceContext carries the challan header fields. None of them take part
// in the computation.
type InvoiceContext struct {
	ChallanID   string    `json:"challan_id,omitempty"`
	ChallanNo   string    `json:"challan_no,omitempty"`
	Date        time.Time `json:"date"`
	Customer    Party     `json:"customer"`
	Distributor Party     `json:"distributor"`
	SalesStaff  string    `json:"sales_staff,omitempty"`
}

// LineAmounts is the unrounded inclusive-GST breakdown of one line.
type LineAmounts struct {
	Taxable float64 `json:"taxable"`
	SGST    float64 `json:"sgst"`
	CGST    float64 `json:"cgst"`
	Gross   float64 `json:"gross"`
}

// Line is a computed invoice line.
type Line struct {
	Index         int      `json:"index"`
	Item          LineItem `json:"item"`
	TotalQuantity int64    `json:"total_quantity"`
	LineAmounts
}

// SlabSummary aggregates lines sharing one GST slab.
type SlabSummary struct {
	Slab float64 `json:"slab"`
	LineAmounts
}

// Totals holds invoice-level sums of the line amounts.
type Totals struct {
	LineAmounts
	AmountInWords string        `json:"amount_in_words"`
	Slabs         []SlabSummary `json:"slabs"`
}

// Warning records a line value that was replaced or flagged during
// computation.
type Warning struct {
	Line   int    `json:"line"`
	Field  string `json:"field"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

// Invoice is the fully computed invoice model handed to renderers.
type Invoice struct {
	Context  InvoiceContext `json:"context"`
	Lines    []Line         `json:"lines"`
	Totals   Totals         `json:"totals"`
	Warnings []Warning      `json:"warnings,omitempty"`
}
