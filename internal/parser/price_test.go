package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePrice(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{"european with space grouping", "1 299,00 €", "1299.00 EUR", true},
		{"no-break space grouping", "1\u00a0299,00\u202f€", "1299.00 EUR", true},
		{"symbol prefix with comma grouping", "€1,299.00", "1299.00 EUR", true},
		{"dot grouping comma decimal", "1.299,50 €", "1299.50 EUR", true},
		{"comma decimal", "19,9 €", "19.90 EUR", true},
		{"comma thousands only", "1,299", "1299.00 EUR", true},
		{"integer", "25 €", "25.00 EUR", true},
		{"dot decimal", "19.99€", "19.99 EUR", true},
		{"repeated dot grouping", "1.299.000", "1299000.00 EUR", true},
		{"dot grouping without decimals", "1.299 €", "1299.00 EUR", true},
		{"dot grouping five digits", "12.345 €", "12345.00 EUR", true},
		{"three decimals beyond grouping shape", "1234.567", "1234.57 EUR", true},
		{"letters", "abc", "", false},
		{"empty", "", "", false},
		{"only symbol", "€", "", false},
		{"infinity spelled out", "inf", "", false},
		{"trailing garbage", "12,00 € / tk", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizePrice(tt.raw, "EUR")
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanonicalDecimal(t *testing.T) {
	assert.Equal(t, "1299.00", canonicalDecimal("1299,00"))
	assert.Equal(t, "1299.00", canonicalDecimal("1.299,00"))
	assert.Equal(t, "1299.00", canonicalDecimal("1,299.00"))
	assert.Equal(t, "12", canonicalDecimal("12"))
	assert.Equal(t, "1299", canonicalDecimal("1.299"))
	assert.Equal(t, "1234.567", canonicalDecimal("1234.567"))
}
