package services

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCalcEstimateTotals(t *testing.T) {
	tests := []struct {
		name string
		est  Estimate
		want EstimateTotals
	}{
		{
			name: "no lines",
			est:  Estimate{},
			want: EstimateTotals{},
		},
		{
			name: "lines only",
			est: Estimate{
				Lines: []LineItem{
					{Qty: 2, UnitPrice: 100},
					{Qty: 3, UnitPrice: 50.5},
				},
			},
			want: EstimateTotals{Subtotal: 351.5, PreTax: 351.5, Total: 351.5},
		},
		{
			name: "markup and tax",
			est: Estimate{
				MarkupPct: 10,
				TaxPct:    5,
				Lines:     []LineItem{{Qty: 10, UnitPrice: 100}},
			},
			want: EstimateTotals{
				Subtotal: 1000,
				Markup:   100,
				PreTax:   1100,
				Tax:      55,
				Total:    1155,
			},
		},
		{
			name: "discount applies before tax",
			est: Estimate{
				DiscountAmt: 100,
				TaxPct:      10,
				Lines:       []LineItem{{Qty: 1, UnitPrice: 500}},
			},
			want: EstimateTotals{
				Subtotal: 500,
				Discount: 100,
				PreTax:   400,
				Tax:      40,
				Total:    440,
			},
		},
		{
			name: "oversized discount floors pre-tax at zero",
			est: Estimate{
				DiscountAmt: 99999,
				TaxPct:      13,
				Lines:       []LineItem{{Qty: 1, UnitPrice: 250}},
			},
			want: EstimateTotals{
				Subtotal: 250,
				Discount: 99999,
				PreTax:   0,
				Tax:      0,
				Total:    0,
			},
		},
		{
			name: "zero-qty lines contribute nothing",
			est: Estimate{
				Lines: []LineItem{
					{Qty: 0, UnitPrice: 999},
					{Qty: 4, UnitPrice: 25},
				},
			},
			want: EstimateTotals{Subtotal: 100, PreTax: 100, Total: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalcEstimateTotals(tt.est)
			if !almostEqual(got.Subtotal, tt.want.Subtotal) {
				t.Errorf("Subtotal = %v, want %v", got.Subtotal, tt.want.Subtotal)
			}
			if !almostEqual(got.Markup, tt.want.Markup) {
				t.Errorf("Markup = %v, want %v", got.Markup, tt.want.Markup)
			}
			if !almostEqual(got.PreTax, tt.want.PreTax) {
				t.Errorf("PreTax = %v, want %v", got.PreTax, tt.want.PreTax)
			}
			if !almostEqual(got.Tax, tt.want.Tax) {
				t.Errorf("Tax = %v, want %v", got.Tax, tt.want.Tax)
			}
			if !almostEqual(got.Total, tt.want.Total) {
				t.Errorf("Total = %v, want %v", got.Total, tt.want.Total)
			}
		})
	}
}

// Pre-tax must never go negative and total must always equal pre-tax plus
// tax, no matter how the inputs are combined.
func TestCalcEstimateTotalsInvariants(t *testing.T) {
	cases := []Estimate{
		{DiscountAmt: 1e12, Lines: []LineItem{{Qty: 1, UnitPrice: 1}}},
		{MarkupPct: 50, DiscountAmt: 10000, TaxPct: 13, Lines: []LineItem{{Qty: 3, UnitPrice: 99.99}}},
		{MarkupPct: 0, DiscountAmt: 0, TaxPct: 0},
		{MarkupPct: 200, TaxPct: 25, Lines: []LineItem{{Qty: 999999, UnitPrice: 0.01}}},
	}

	for _, est := range cases {
		got := CalcEstimateTotals(est)
		if got.PreTax < 0 {
			t.Errorf("PreTax went negative (%v) for %+v", got.PreTax, est)
		}
		if !almostEqual(got.Total, got.PreTax+got.Tax) {
			t.Errorf("Total %v != PreTax %v + Tax %v", got.Total, got.PreTax, got.Tax)
		}
		if !almostEqual(got.Tax, got.PreTax*est.TaxPct/100) {
			t.Errorf("Tax %v not derived from clamped PreTax %v", got.Tax, got.PreTax)
		}
	}
}

func TestLineItemExtended(t *testing.T) {
	tests := []struct {
		name string
		line LineItem
		want float64
	}{
		{"basic", LineItem{Qty: 4, UnitPrice: 12.5}, 50},
		{"zero qty", LineItem{Qty: 0, UnitPrice: 100}, 0},
		{"zero price", LineItem{Qty: 7, UnitPrice: 0}, 0},
		{"fractional price", LineItem{Qty: 3, UnitPrice: 0.1}, 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.line.Extended(); !almostEqual(got, tt.want) {
				t.Errorf("Extended() = %v, want %v", got, tt.want)
			}
		})
	}
}
