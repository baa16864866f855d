package billing

import (
	"math"
	"strings"
)

const (
	zeroWords = "Zero Only"

	crore = 10000000
	lakh  = 100000

	// Above this the paise can no longer be represented in a float64.
	maxWordsAmount = 1e15
)

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// AmountInWords renders an amount for the "amount chargeable" line of a tax
// invoice, e.g. 100.50 → "One Hundred Rupees and Fifty Paise Only".
// Rupees use the Indian system (Thousand, Lakh, Crore). Amounts of 1e15 and
// above, like negative or non-finite ones, render as "Zero Only".
func AmountInWords(amount float64) string {
	if !isFinite(amount) || amount < 0 || amount >= maxWordsAmount {
		return zeroWords
	}

	major := math.Floor(amount)
	minor := math.Round((amount - major) * 100)
	if minor >= 100 {
		major++
		minor = 0
	}

	rupees, paise := int64(major), int64(minor)
	switch {
	case rupees > 0 && paise > 0:
		return integerWords(rupees) + " Rupees and " + integerWords(paise) + " Paise Only"
	case rupees > 0:
		return integerWords(rupees) + " Rupees Only"
	case paise > 0:
		return integerWords(paise) + " Paise Only"
	default:
		return zeroWords
	}
}

func integerWords(n int64) string {
	var parts []string

	if n >= crore {
		parts = append(parts, integerWords(n/crore)+" Crore")
		n %= crore
	}
	if n >= lakh {
		parts = append(parts, under100(n/lakh)+" Lakh")
		n %= lakh
	}
	if n >= 1000 {
		parts = append(parts, under100(n/1000)+" Thousand")
		n %= 1000
	}
	if n >= 100 {
		parts = append(parts, ones[n/100]+" Hundred")
		n %= 100
	}
	if n > 0 {
		parts = append(parts, under100(n))
	}

	return strings.Join(parts, " ")
}

func under100(n int64) string {
	if n < 20 {
		return ones[n]
	}
	if n%10 == 0 {
		return tens[n/10]
	}
	return tens[n/10] + " " + ones[n%10]
}
