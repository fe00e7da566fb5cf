package services

// EstimateTotals holds the computed money breakdown for an estimate. The JSON
// tags match the snapshot embedded in JSON exports and webhook payloads.
type EstimateTotals struct {
	Subtotal float64 `json:"sub"`
	Markup   float64 `json:"markup"`
	Discount float64 `json:"discount"`
	PreTax   float64 `json:"preTax"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// CalcEstimateTotals computes the full breakdown from scratch:
//
//	subtotal = sum(qty * unit_price)
//	markup   = subtotal * markup_pct/100
//	pre_tax  = max(0, subtotal + markup - discount)
//	tax      = pre_tax * tax_pct/100
//	total    = pre_tax + tax
//
// The pre-tax floor means a discount can never drive an estimate negative.
// Callers must recompute on every render; totals are never stored.
func CalcEstimateTotals(est Estimate) EstimateTotals {
	var subtotal float64
	for _, line := range est.Lines {
		subtotal += line.Extended()
	}

	markup := subtotal * est.MarkupPct / 100
	preTax := subtotal + markup - est.DiscountAmt
	if preTax < 0 {
		preTax = 0
	}
	tax := preTax * est.TaxPct / 100

	return EstimateTotals{
		Subtotal: subtotal,
		Markup:   markup,
		Discount: est.DiscountAmt,
		PreTax:   preTax,
		Tax:      tax,
		Total:    preTax + tax,
	}
}
