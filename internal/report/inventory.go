// Package report holds pure aggregations over resource records.
package report

import (
	"sort"
	"time"
)

// StockEntry is one batch of one product on hand.
type StockEntry struct {
	ProductID   string
	ProductName string
	BatchID     string
	Quantity    int64
	ExpiryDate  time.Time
}

// InventoryRow is the stock of a single product across all its batches.
type InventoryRow struct {
	ProductID      string     `json:"product_id"`
	ProductName    string     `json:"product_name"`
	Quantity       int64      `json:"quantity"`
	Batches        int        `json:"batches"`
	EarliestExpiry *time.Time `json:"earliest_expiry,omitempty"`
}

// RollupInventory sums stock quantity per product. Entries without a product
// ID are grouped by product name. Rows are ordered by product name, then ID.
func RollupInventory(entries []StockEntry) []InventoryRow {
	rows := make(map[string]*InventoryRow)
	for _, e := range entries {
		key := e.ProductID
		if key == "" {
			key = "name:" + e.ProductName
		}
		row, ok := rows[key]
		if !ok {
			row = &InventoryRow{ProductID: e.ProductID, ProductName: e.ProductName}
			rows[key] = row
		}
		if row.ProductName == "" {
			row.ProductName = e.ProductName
		}
		row.Quantity += e.Quantity
		row.Batches++
		if !e.ExpiryDate.IsZero() && (row.EarliestExpiry == nil || e.ExpiryDate.Before(*row.EarliestExpiry)) {
			expiry := e.ExpiryDate
			row.EarliestExpiry = &expiry
		}
	}

	out := make([]InventoryRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProductName != out[j].ProductName {
			return out[i].ProductName < out[j].ProductName
		}
		return out[i].ProductID < out[j].ProductID
	})
	return out
}
