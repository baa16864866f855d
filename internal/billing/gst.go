package billing

import "math"

// knownSlabs lists the GST rates currently notified for goods.
var knownSlabs = []float64{0, 0.25, 3, 5, 12, 18, 28}

const (
	slabTolerance = 0.001
	maxSlab       = 100.0
)

// IsKnownSlab reports whether slab is one of the notified GST rates.
func IsKnownSlab(slab float64) bool {
	for _, s := range knownSlabs {
		if math.Abs(s-slab) < slabTolerance {
			return true
		}
	}
	return false
}

// ComputeLine backs GST out of a GST-inclusive price. Nothing is rounded;
// rounding happens only when amounts are formatted for display.
//
// A negative or non-finite slab is treated as 0 so the divisor is never
// below 1.
func ComputeLine(price float64, qty int64, slab float64) LineAmounts {
	if slab < 0 || !isFinite(slab) {
		slab = 0
	}
	gross := price * float64(qty)
	taxable := gross / (1 + slab/100)
	half := (gross - taxable) / 2
	return LineAmounts{
		Taxable: taxable,
		SGST:    half,
		CGST:    half,
		Gross:   gross,
	}
}

func (a *LineAmounts) add(b LineAmounts) {
	a.Taxable += b.Taxable
	a.SGST += b.SGST
	a.CGST += b.CGST
	a.Gross += b.Gross
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
