package report

import (
	"sort"
	"time"
)

// SaleEntry is the gross value of one sale on a date.
type SaleEntry struct {
	Date  time.Time
	Gross float64
}

// YearSales holds the monthly gross of one calendar year. Months[0] is
// January.
type YearSales struct {
	Year   int         `json:"year"`
	Months [12]float64 `json:"months"`
	Total  float64     `json:"total"`
}

// MonthlySalesByYear buckets sales by calendar month, grouped by year in
// ascending order. Entries with a zero date are skipped.
func MonthlySalesByYear(entries []SaleEntry) []YearSales {
	years := make(map[int]*YearSales)
	for _, e := range entries {
		if e.Date.IsZero() {
			continue
		}
		y := e.Date.Year()
		ys, ok := years[y]
		if !ok {
			ys = &YearSales{Year: y}
			years[y] = ys
		}
		ys.Months[e.Date.Month()-1] += e.Gross
		ys.Total += e.Gross
	}

	out := make([]YearSales, 0, len(years))
	for _, ys := range years {
		out = append(out, *ys)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}
