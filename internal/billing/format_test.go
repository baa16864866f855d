package billing_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"distrobill/internal/billing"
)

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{12.5, "12.50"},
		{1180, "1180.00"},
		{1000.0000000000001, "1000.00"},
		{89.999999999999, "90.00"},
		{1.005, "1.01"},
		{2.675, "2.68"},
		{0.004, "0.00"},
		{-12.345, "-12.35"},
		{math.Copysign(0, -1), "0.00"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, billing.FormatAmount(tc.in), "FormatAmount(%v)", tc.in)
	}
}

func TestFormatAmount_NonFinite(t *testing.T) {
	assert.Equal(t, "0.00", billing.FormatAmount(math.NaN()))
	assert.Equal(t, "0.00", billing.FormatAmount(math.Inf(1)))
	assert.Equal(t, "0.00", billing.FormatAmount(math.Inf(-1)))
}
